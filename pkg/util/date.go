package util

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// DateParseError reports date/time input the bot could not understand.
// Its message is shown to the user verbatim.
type DateParseError struct {
	Input string
}

func (e *DateParseError) Error() string {
	return fmt.Sprintf("Could not read %q as a delay. Try formats like 10m, 2h30m or 1d12h.", e.Input)
}

var dayPrefix = regexp.MustCompile(`^(\d+)d(.*)$`)

// ParseDelay parses a human delay like "10m", "2h30m" or "1d12h".
// Day units are expanded before handing off to time.ParseDuration, which
// stops at hours. Zero and negative delays are rejected.
func ParseDelay(input string) (time.Duration, error) {
	s := strings.ToLower(strings.TrimSpace(input))
	if s == "" {
		return 0, &DateParseError{Input: input}
	}

	var days time.Duration
	if m := dayPrefix.FindStringSubmatch(s); m != nil {
		n, err := strconv.Atoi(m[1])
		if err != nil {
			return 0, &DateParseError{Input: input}
		}
		days = time.Duration(n) * 24 * time.Hour
		s = m[2]
	}

	rest := time.Duration(0)
	if s != "" {
		var err error
		rest, err = time.ParseDuration(s)
		if err != nil {
			return 0, &DateParseError{Input: input}
		}
	}

	total := days + rest
	if total <= 0 {
		return 0, &DateParseError{Input: input}
	}
	return total, nil
}

// HumanDuration renders a duration in the largest two sensible units,
// e.g. "1d 2h" or "5m 30s".
func HumanDuration(d time.Duration) string {
	if d < time.Second {
		return "0s"
	}
	d = d.Round(time.Second)

	days := d / (24 * time.Hour)
	d -= days * 24 * time.Hour
	hours := d / time.Hour
	d -= hours * time.Hour
	minutes := d / time.Minute
	seconds := d - minutes*time.Minute

	switch {
	case days > 0:
		return fmt.Sprintf("%dd %dh", days, hours)
	case hours > 0:
		return fmt.Sprintf("%dh %dm", hours, minutes)
	case minutes > 0:
		return fmt.Sprintf("%dm %ds", minutes, seconds/time.Second)
	default:
		return fmt.Sprintf("%ds", seconds/time.Second)
	}
}
