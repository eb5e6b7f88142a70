// Package middleware wraps command handlers with cross-cutting behavior.
// A wrapped handler keeps its descriptor, so registry lookups and the
// group map see through the wrapping.
package middleware

import (
	"server-herald/internal/command"
)

// Middleware wraps a command handler.
type Middleware func(command.Command) command.Command

type wrapped struct {
	command.Command
	run func(ctx *command.Context) (bool, error)
}

func (w *wrapped) Run(ctx *command.Context) (bool, error) {
	return w.run(ctx)
}

// Apply applies middlewares in order; the last in the list is the
// outermost.
func Apply(cmd command.Command, mws ...Middleware) command.Command {
	for _, mw := range mws {
		cmd = mw(cmd)
	}
	return cmd
}
