package command

import (
	"testing"

	"github.com/rs/zerolog"
)

func TestMatch_ExactNameBeatsEarlierAliasPrefix(t *testing.T) {
	r := NewRegistry(zerolog.Nop())
	// "hi" has an alias "helpers" for which "help" is a prefix query hit,
	// and it is registered before the handler actually named "help".
	r.Register(named("hi", "helpers"))
	helpCmd := named("help")
	r.Register(helpCmd)

	if got := r.Match("help"); got != helpCmd {
		t.Errorf("Match(help) = %v, want the exact-name handler", got)
	}
	if got := r.Match("HELP"); got != helpCmd {
		t.Errorf("Match must stay case-insensitive on names, got %v", got)
	}
}

func TestMatch_AliasExactAndPrefix(t *testing.T) {
	r := NewRegistry(zerolog.Nop())
	cmd := named("remind", "remindme")
	r.Register(cmd)

	if got := r.Match("remindme"); got != cmd {
		t.Errorf("Match(remindme) = %v", got)
	}
	// token is a prefix of the alias
	if got := r.Match("remin"); got != cmd {
		t.Errorf("Match(remin) = %v", got)
	}
}

func TestMatch_AliasBeatsNamePrefixFallback(t *testing.T) {
	r := NewRegistry(zerolog.Nop())
	aliased := named("first", "general")
	prefixed := named("ghk")
	r.Register(aliased)
	r.Register(prefixed)

	// "g" prefixes both the alias "general" and the name "ghk"; the alias
	// hit returns immediately.
	if got := r.Match("g"); got != aliased {
		t.Errorf("Match(g) = %v, want the alias hit", got)
	}
}

func TestMatch_NamePrefixFallbackKeepsLast(t *testing.T) {
	r := NewRegistry(zerolog.Nop())
	r.Register(named("announce"))
	last := named("anagram")
	r.Register(last)

	if got := r.Match("an"); got != last {
		t.Errorf("Match(an) = %v, want the last registered prefix candidate", got)
	}
}

func TestMatch_NoCandidate(t *testing.T) {
	r := NewRegistry(zerolog.Nop())
	r.Register(named("help"))

	if got := r.Match("zzz"); got != nil {
		t.Errorf("Match(zzz) = %v, want nil", got)
	}
}
