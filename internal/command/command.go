// Package command implements the bot's command core: handler descriptors,
// the registry, token matching, and the dispatch pipeline. It knows nothing
// about Discord; transports feed raw text in and carry responses out through
// the Responder interface.
package command

import "strings"

// Info is the static descriptor attached to every handler. A handler whose
// Info() returns nil is never registered.
type Info struct {
	Name         string   // primary command name, unique, matched case-insensitively
	Aliases      []string // alternative names, exact-matched on dispatch
	Help         string   // short usage text shown in help and failure responses
	HelpGroups   []string // help listing groups; "all" is reserved and never mapped
	NeedsChannel bool     // command is refused in private messages
}

// GroupAll is the reserved help group excluded from the group map.
const GroupAll = "all"

// Command is one registered handler. Run returns ok=false when the command
// was recognized but could not be satisfied (bad arguments and the like);
// any error is routed through the classifier, never past dispatch.
type Command interface {
	Info() *Info
	Run(ctx *Context) (bool, error)
}

// Responder delivers responses back over whatever transport produced the
// message. An empty channel means the reply goes to the sender directly.
type Responder interface {
	Respond(channel, sender, message string)
	// RespondPinged addresses the message to the sender (a mention in a
	// channel; private messages are already addressed).
	RespondPinged(channel, sender, message string)
}

// PermissionChecker is the external permission oracle. It must be
// side-effect free; a denied check is normal control flow, not an error.
type PermissionChecker interface {
	CheckPermission(channel, sender, command string) bool
}

// DiagnosticSink receives failure snapshots for unclassified errors.
// An unconfigured sink degrades dispatch to local-only logging.
type DiagnosticSink interface {
	Configured() bool
	Upload(details string) (string, error)
}

// Context is the immutable per-invocation value handed to a handler.
// One is created per inbound message and discarded afterwards.
type Context struct {
	Channel string // "" when the message is a private one-to-one
	Sender  string
	Command string   // resolved command token, lower case
	Args    []string // remaining tokens, original case
	Prefix  string   // configured command prefix, for help text

	out Responder
}

// NewContext builds an invocation context. Transports normally go through
// Dispatcher.OnMessage instead; this exists for direct invocation and tests.
func NewContext(channel, sender, cmd string, args []string, prefix string, out Responder) *Context {
	return &Context{
		Channel: channel,
		Sender:  sender,
		Command: strings.ToLower(cmd),
		Args:    args,
		Prefix:  prefix,
		out:     out,
	}
}

// InPrivateMessage reports whether the invocation came without a channel.
func (c *Context) InPrivateMessage() bool { return c.Channel == "" }

// ArgsText returns the arguments joined back into a single string.
func (c *Context) ArgsText() string { return strings.Join(c.Args, " ") }

// Respond sends a plain response to wherever the command came from.
func (c *Context) Respond(message string) {
	if c.out != nil {
		c.out.Respond(c.Channel, c.Sender, message)
	}
}

// RespondPinged sends a response addressed to the sender.
func (c *Context) RespondPinged(message string) {
	if c.out != nil {
		c.out.RespondPinged(c.Channel, c.Sender, message)
	}
}
