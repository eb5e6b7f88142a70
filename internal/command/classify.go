package command

import (
	"errors"
	"fmt"

	"server-herald/internal/github"
	"server-herald/pkg/util"
)

// resultKind is the closed set of outcomes an invocation can produce.
// Classification happens once, here, instead of being spread across
// error-type checks at every response site.
type resultKind int

const (
	resultSuccess resultKind = iota
	resultDeclined      // handler recognized the command but could not satisfy it
	resultBadCredential // invalid GitHub API key
	resultBadDate       // malformed date/time input
	resultRateLimited   // GitHub API rate limit exhausted
	resultUnclassified  // anything else, including recovered panics
)

type invokeResult struct {
	kind resultKind
	err  error
}

// classifyError maps a handler error onto a result variant. Order matters:
// the known domain kinds are checked before falling through to the
// unclassified bucket.
func classifyError(err error) invokeResult {
	var keyErr *github.APIKeyInvalidError
	var dateErr *util.DateParseError
	switch {
	case errors.As(err, &keyErr):
		return invokeResult{kind: resultBadCredential, err: err}
	case errors.As(err, &dateErr):
		return invokeResult{kind: resultBadDate, err: err}
	case errors.Is(err, github.ErrRateLimitExceeded):
		return invokeResult{kind: resultRateLimited, err: err}
	default:
		return invokeResult{kind: resultUnclassified, err: err}
	}
}

// classify turns a failed invocation into a user-facing response. Every
// branch responds pinged to the original sender; the caller reports the
// message as handled regardless.
func (d *Dispatcher) classify(res invokeResult, ctx *Context) {
	switch res.kind {
	case resultBadCredential:
		ctx.RespondPinged(fmt.Sprintf("%s Use %sghk to authenticate with GitHub.", res.err.Error(), d.prefix))
	case resultBadDate:
		ctx.RespondPinged(res.err.Error())
	case resultRateLimited:
		ctx.RespondPinged("Rate limit for this GitHub API key exceeded. Further requests cannot be executed on behalf of this user.")
	default:
		d.reportUnclassified(res.err, ctx)
	}
}

// reportUnclassified captures a diagnostic snapshot for an unknown
// failure. Without an upload credential it degrades to the local log and
// says so; an upload failure degrades the same way.
func (d *Dispatcher) reportUnclassified(err error, ctx *Context) {
	if !d.sink.Configured() {
		d.log.Error().Err(err).Str("command", ctx.Command).Str("sender", ctx.Sender).
			Msg("Command failed; diagnostic upload is not configured")
		ctx.RespondPinged("An error was encountered, but no diagnostic upload is configured. The details went to the bot's log.")
		return
	}

	ref, uploadErr := d.sink.Upload(diagnosticReport(ctx, err))
	if uploadErr != nil {
		d.log.Error().Err(err).AnErr("upload_error", uploadErr).Str("command", ctx.Command).
			Msg("Command failed and the diagnostic upload failed too")
		ctx.RespondPinged("An error was encountered and the diagnostic upload failed. The details went to the bot's log.")
		return
	}
	ctx.RespondPinged("Houston, we have a problem! Here is a conveniently provided diagnostic: " + ref)
}

// diagnosticReport renders the failure and its invocation context into the
// text uploaded to the diagnostic sink.
func diagnosticReport(ctx *Context, err error) string {
	where := ctx.Channel
	if where == "" {
		where = "(private message)"
	}
	return fmt.Sprintf(
		"command: %s\nargs: %s\nchannel: %s\nsender: %s\n\nerror:\n%v\n",
		ctx.Command, ctx.ArgsText(), where, ctx.Sender, err,
	)
}
