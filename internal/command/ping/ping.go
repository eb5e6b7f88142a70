package ping

import (
	"fmt"
	"time"

	"server-herald/internal/command"
	"server-herald/pkg/util"
)

// PingCommand answers with uptime, mostly to confirm the bot is alive.
type PingCommand struct {
	Started time.Time
}

func (c *PingCommand) Info() *command.Info {
	return &command.Info{
		Name:       "ping",
		Aliases:    []string{"alive"},
		Help:       "ping — check the bot is responding",
		HelpGroups: []string{"core"},
	}
}

func (c *PingCommand) Run(ctx *command.Context) (bool, error) {
	ctx.RespondPinged(fmt.Sprintf("Pong! Up for %s.", util.HumanDuration(time.Since(c.Started))))
	return true, nil
}
