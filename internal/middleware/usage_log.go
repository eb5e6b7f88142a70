package middleware

import (
	"github.com/rs/zerolog"

	"server-herald/internal/command"
	"server-herald/internal/storage"
)

// WithUsageLog records every completed invocation to storage. Failures to
// record never affect the command outcome.
func WithUsageLog(store *storage.Storage, log zerolog.Logger) Middleware {
	log = log.With().Str("component", "usage").Logger()
	return func(cmd command.Command) command.Command {
		return &wrapped{
			Command: cmd,
			run: func(ctx *command.Context) (bool, error) {
				ok, err := cmd.Run(ctx)
				if err == nil && ok {
					if rerr := store.RecordUsage(ctx.Channel, ctx.Sender, ctx.Command); rerr != nil {
						log.Warn().Err(rerr).Str("command", ctx.Command).Msg("Failed to record command usage")
					}
				}
				return ok, err
			},
		}
	}
}
