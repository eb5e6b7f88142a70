package remind

import (
	"errors"
	"strings"
	"testing"
	"time"

	"server-herald/internal/command"
	"server-herald/pkg/util"
)

type captureResponder struct {
	pinged chan string
}

func (r *captureResponder) Respond(channel, sender, message string) {}

func (r *captureResponder) RespondPinged(channel, sender, message string) {
	r.pinged <- message
}

func TestRemind_DeclinesWithoutArgs(t *testing.T) {
	c := &RemindCommand{}
	out := &captureResponder{pinged: make(chan string, 4)}

	for _, args := range [][]string{nil, {"10m"}} {
		ok, err := c.Run(command.NewContext("#chan", "alice", "remind", args, "!", out))
		if ok || err != nil {
			t.Errorf("args %v: ok=%v err=%v, want decline", args, ok, err)
		}
	}
}

func TestRemind_BadDelay(t *testing.T) {
	c := &RemindCommand{}
	out := &captureResponder{pinged: make(chan string, 4)}

	_, err := c.Run(command.NewContext("#chan", "alice", "remind", []string{"tomorrow", "tea"}, "!", out))
	var parseErr *util.DateParseError
	if !errors.As(err, &parseErr) {
		t.Errorf("error = %v, want *util.DateParseError", err)
	}
}

func TestRemind_SchedulesReminder(t *testing.T) {
	c := &RemindCommand{}
	out := &captureResponder{pinged: make(chan string, 4)}

	ok, err := c.Run(command.NewContext("#chan", "alice", "remind", []string{"10ms", "drink water"}, "!", out))
	if err != nil || !ok {
		t.Fatalf("Run: ok=%v err=%v", ok, err)
	}

	confirmation := <-out.pinged
	if !strings.Contains(confirmation, "remind you") {
		t.Errorf("confirmation = %q", confirmation)
	}

	select {
	case reminder := <-out.pinged:
		if !strings.Contains(reminder, "drink water") {
			t.Errorf("reminder = %q", reminder)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("reminder never fired")
	}
}
