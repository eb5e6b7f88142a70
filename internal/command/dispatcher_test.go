package command

import (
	"reflect"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

// recordingResponder captures dispatcher output.
type recordingResponder struct {
	plain  []string
	pinged []string
}

func (r *recordingResponder) Respond(channel, sender, message string) {
	r.plain = append(r.plain, message)
}

func (r *recordingResponder) RespondPinged(channel, sender, message string) {
	r.pinged = append(r.pinged, message)
}

func (r *recordingResponder) all() []string {
	return append(append([]string(nil), r.plain...), r.pinged...)
}

// permFunc adapts a func to PermissionChecker.
type permFunc func(channel, sender, command string) bool

func (f permFunc) CheckPermission(channel, sender, command string) bool {
	return f(channel, sender, command)
}

var allowAll = permFunc(func(string, string, string) bool { return true })

// fakeSink is a scriptable DiagnosticSink.
type fakeSink struct {
	configured bool
	ref        string
	err        error
	uploads    []string
}

func (s *fakeSink) Configured() bool { return s.configured }

func (s *fakeSink) Upload(details string) (string, error) {
	s.uploads = append(s.uploads, details)
	return s.ref, s.err
}

func newTestDispatcher(r *Registry, perms PermissionChecker, sink DiagnosticSink) *Dispatcher {
	return NewDispatcher(r, perms, sink, "!", zerolog.Nop())
}

func TestNormalize(t *testing.T) {
	d := newTestDispatcher(NewRegistry(zerolog.Nop()), allowAll, &fakeSink{})

	tests := []struct {
		raw  string
		cmd  string
		args []string
	}{
		{"!help foo", "help", []string{"foo"}},
		{"!HELP Foo BAR", "help", []string{"Foo", "BAR"}},
		{"help foo", "help", []string{"foo"}}, // no prefix, no stripping
		{"!remind   2h30m    stretch", "remind", []string{"2h30m", "stretch"}},
		{"!ping\t\tnow", "ping", []string{"now"}},
		{"\x02!ping\x0f \x034,1colored\x03", "ping", []string{"colored"}},
		{"", "", nil},
		{"!", "", nil},
	}
	for _, tt := range tests {
		cmd, args := d.Normalize(tt.raw)
		if cmd != tt.cmd {
			t.Errorf("Normalize(%q) command = %q, want %q", tt.raw, cmd, tt.cmd)
		}
		if len(args) != len(tt.args) || (len(args) > 0 && !reflect.DeepEqual(args, tt.args)) {
			t.Errorf("Normalize(%q) args = %v, want %v", tt.raw, args, tt.args)
		}
	}
}

func TestDispatch_UnknownCommand(t *testing.T) {
	r := NewRegistry(zerolog.Nop())
	d := newTestDispatcher(r, allowAll, &fakeSink{})
	out := &recordingResponder{}

	if d.OnMessage("#chan", "alice", "!nosuch", out) {
		t.Error("unknown command must report unhandled")
	}
	if len(out.all()) != 0 {
		t.Errorf("unknown command must not respond, got %v", out.all())
	}
}

func TestDispatch_NeedsChannelInPrivate(t *testing.T) {
	r := NewRegistry(zerolog.Nop())
	cmd := &fakeCommand{info: &Info{Name: "announce", NeedsChannel: true, Help: "announce"}, ok: true}
	r.Register(cmd)
	d := newTestDispatcher(r, allowAll, &fakeSink{})
	out := &recordingResponder{}

	if !d.OnMessage("", "alice", "!announce hello", out) {
		t.Error("a rejected channel-only command still counts as handled")
	}
	if cmd.runs != 0 {
		t.Errorf("handler body must not run, ran %d times", cmd.runs)
	}
	if len(out.plain) != 1 || !strings.Contains(out.plain[0], "You cannot perform !announce here") {
		t.Errorf("unexpected response: %v", out.all())
	}
}

func TestDispatch_PermissionDenied(t *testing.T) {
	r := NewRegistry(zerolog.Nop())
	cmd := named("announce")
	r.Register(cmd)
	deny := permFunc(func(string, string, string) bool { return false })
	d := newTestDispatcher(r, deny, &fakeSink{})
	out := &recordingResponder{}

	if d.OnMessage("#chan", "alice", "!announce hi", out) {
		t.Error("a denied command falls through as unhandled")
	}
	if cmd.runs != 0 {
		t.Error("handler body must not run when permission is denied")
	}
	if len(out.all()) != 0 {
		t.Errorf("denial is silent at dispatch level, got %v", out.all())
	}
}

func TestDispatch_HandlerDeclined(t *testing.T) {
	r := NewRegistry(zerolog.Nop())
	cmd := &fakeCommand{info: &Info{Name: "remind", Help: "remind <delay> <text>"}, ok: false}
	r.Register(cmd)
	d := newTestDispatcher(r, allowAll, &fakeSink{})
	out := &recordingResponder{}

	if !d.OnMessage("#chan", "alice", "!remind", out) {
		t.Error("a declined command still counts as handled")
	}
	if len(out.pinged) != 1 {
		t.Fatalf("expected one pinged response, got %v", out.all())
	}
	msg := out.pinged[0]
	if !strings.Contains(msg, "!help remind") || !strings.Contains(msg, "remind <delay> <text>") {
		t.Errorf("decline response must name the prefix and help text, got %q", msg)
	}
}

func TestDispatch_Success(t *testing.T) {
	r := NewRegistry(zerolog.Nop())
	cmd := named("ping")
	r.Register(cmd)
	d := newTestDispatcher(r, allowAll, &fakeSink{})
	out := &recordingResponder{}

	if !d.OnMessage("#chan", "alice", "!ping", out) {
		t.Error("successful command must report handled")
	}
	if cmd.runs != 1 {
		t.Errorf("handler ran %d times, want 1", cmd.runs)
	}
}

func TestDispatch_AliasLookup(t *testing.T) {
	r := NewRegistry(zerolog.Nop())
	cmd := named("help", "commands")
	r.Register(cmd)
	d := newTestDispatcher(r, allowAll, &fakeSink{})

	if !d.OnMessage("#chan", "alice", "!COMMANDS", &recordingResponder{}) {
		t.Error("alias lookup must be exact and case-insensitive")
	}
	if cmd.runs != 1 {
		t.Errorf("handler ran %d times, want 1", cmd.runs)
	}
}
