package remind

import (
	"fmt"
	"strings"
	"time"

	"server-herald/internal/command"
	"server-herald/pkg/util"
)

// RemindCommand schedules a one-shot reminder. Scheduling is the
// handler's own timer; dispatch itself stays synchronous.
type RemindCommand struct{}

func (c *RemindCommand) Info() *command.Info {
	return &command.Info{
		Name:       "remind",
		Aliases:    []string{"remindme"},
		Help:       "remind <delay> <text> — e.g. remind 2h30m stretch your legs",
		HelpGroups: []string{"general"},
	}
}

func (c *RemindCommand) Run(ctx *command.Context) (bool, error) {
	if len(ctx.Args) < 2 {
		return false, nil
	}

	delay, err := util.ParseDelay(ctx.Args[0])
	if err != nil {
		return false, err
	}

	text := strings.Join(ctx.Args[1:], " ")
	reminder := *ctx // contexts are per-call values; keep a copy for the timer
	time.AfterFunc(delay, func() {
		reminder.RespondPinged("Reminder: " + text)
	})

	ctx.RespondPinged(fmt.Sprintf("Alright, I will remind you in %s.", util.HumanDuration(delay)))
	return true, nil
}
