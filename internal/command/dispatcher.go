package command

import (
	"fmt"
	"regexp"
	"runtime/debug"
	"strings"

	"github.com/rs/zerolog"
)

// controlCodes matches mIRC-style inline formatting: bold, reset, reverse,
// italic, underline, and color codes with optional fg[,bg] digits.
var (
	controlCodes = regexp.MustCompile("[\x02\x0f\x16\x1d\x1f]|\x03(?:\\d{1,2}(?:,\\d{1,2})?)?")
	whitespace   = regexp.MustCompile(`\s+`)
)

// Dispatcher turns raw message text into exactly one handler invocation.
// It performs no internal threading and holds no locks; it runs on
// whatever goroutine the transport delivers events from.
type Dispatcher struct {
	registry *Registry
	perms    PermissionChecker
	sink     DiagnosticSink
	prefix   string
	log      zerolog.Logger
}

// NewDispatcher wires the dispatcher to its collaborators. sink may be an
// unconfigured implementation but must not be nil.
func NewDispatcher(registry *Registry, perms PermissionChecker, sink DiagnosticSink, prefix string, log zerolog.Logger) *Dispatcher {
	return &Dispatcher{
		registry: registry,
		perms:    perms,
		sink:     sink,
		prefix:   prefix,
		log:      log.With().Str("component", "dispatch").Logger(),
	}
}

// Prefix returns the configured command prefix.
func (d *Dispatcher) Prefix() string { return d.prefix }

// Normalize prepares raw message text for dispatch: control codes are
// stripped, the command prefix is removed when present, whitespace runs
// collapse to single spaces, and the first token is lower-cased into the
// command name.
func (d *Dispatcher) Normalize(raw string) (cmd string, args []string) {
	text := controlCodes.ReplaceAllString(raw, "")
	if d.prefix != "" && strings.HasPrefix(text, d.prefix) {
		text = text[len(d.prefix):]
	}
	text = strings.TrimSpace(whitespace.ReplaceAllString(text, " "))
	if text == "" {
		return "", nil
	}
	split := strings.Split(text, " ")
	return strings.ToLower(split[0]), split[1:]
}

// OnMessage normalizes raw text and dispatches it. It reports whether the
// message was consumed as a command.
func (d *Dispatcher) OnMessage(channel, sender, raw string, out Responder) bool {
	cmd, args := d.Normalize(raw)
	if cmd == "" {
		return false
	}
	return d.Dispatch(NewContext(channel, sender, cmd, args, d.prefix, out))
}

// Dispatch resolves the context's command token and runs the full
// pipeline: lookup, context gating, permission gating, invocation, and
// failure classification. No error ever escapes; the return value only
// says whether the message was handled.
func (d *Dispatcher) Dispatch(ctx *Context) bool {
	module := d.registry.ModuleFor(ctx.Command)
	if module == nil {
		return false
	}
	info := module.Info()

	if !d.perms.CheckPermission(ctx.Channel, ctx.Sender, info.Name) {
		// Not an error: the handler simply does not apply to this caller.
		d.log.Debug().Str("command", info.Name).Str("sender", ctx.Sender).Msg("Permission denied")
		return false
	}

	if info.NeedsChannel && ctx.InPrivateMessage() {
		ctx.Respond(fmt.Sprintf("You cannot perform %s%s here.", d.prefix, info.Name))
		return true
	}

	res := d.invoke(module, ctx)
	switch res.kind {
	case resultSuccess:
		return true
	case resultDeclined:
		ctx.RespondPinged(fmt.Sprintf("Use %shelp %s for help (%s).", d.prefix, ctx.Command, info.Help))
		return true
	default:
		d.classify(res, ctx)
		return true
	}
}

// invoke runs the handler body and folds its outcome into a closed result
// variant. Panics are recovered into the unclassified variant so a broken
// handler cannot take the transport goroutine down.
func (d *Dispatcher) invoke(module Command, ctx *Context) (res invokeResult) {
	defer func() {
		if rec := recover(); rec != nil {
			res = invokeResult{
				kind: resultUnclassified,
				err:  fmt.Errorf("panic in %s: %v\n%s", ctx.Command, rec, debug.Stack()),
			}
		}
	}()

	ok, err := module.Run(ctx)
	if err != nil {
		return classifyError(err)
	}
	if !ok {
		return invokeResult{kind: resultDeclined}
	}
	return invokeResult{kind: resultSuccess}
}
