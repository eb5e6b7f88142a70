package announce

import (
	"strings"

	"server-herald/internal/command"
)

// AnnounceCommand posts a formatted announcement into the current
// channel. It is channel-only and gated to privileged senders by the
// permission checker.
type AnnounceCommand struct{}

func (c *AnnounceCommand) Info() *command.Info {
	return &command.Info{
		Name:         "announce",
		Aliases:      []string{"ann"},
		Help:         "announce <text> — post an announcement in this channel",
		HelpGroups:   []string{"admin"},
		NeedsChannel: true,
	}
}

func (c *AnnounceCommand) Run(ctx *command.Context) (bool, error) {
	if len(ctx.Args) == 0 {
		return false, nil
	}
	ctx.Respond("📢 **Announcement** — " + strings.Join(ctx.Args, " "))
	return true, nil
}
