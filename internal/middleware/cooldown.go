package middleware

import (
	"time"

	"golang.org/x/time/rate"

	"server-herald/internal/command"
)

// WithCooldown applies a token-bucket cooldown to a handler: one token
// every interval, up to burst stacked invocations. An exhausted bucket
// answers politely and still counts as handled.
func WithCooldown(interval time.Duration, burst int) Middleware {
	lim := rate.NewLimiter(rate.Every(interval), burst)
	return func(cmd command.Command) command.Command {
		return &wrapped{
			Command: cmd,
			run: func(ctx *command.Context) (bool, error) {
				if !lim.Allow() {
					ctx.RespondPinged("That command is cooling down. Give it a moment.")
					return true, nil
				}
				return cmd.Run(ctx)
			},
		}
	}
}
