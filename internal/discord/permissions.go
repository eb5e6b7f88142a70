package discord

import (
	"github.com/bwmarrin/discordgo"

	"server-herald/internal/config"
)

// Permissions implements command.PermissionChecker on top of guild roles.
// Unrestricted commands pass for everyone; restricted ones require the
// configured developer or a guild administrator.
type Permissions struct {
	s          *discordgo.Session
	cfg        *config.Config
	restricted map[string]bool
}

// NewPermissions builds a checker restricting the named commands.
func NewPermissions(s *discordgo.Session, cfg *config.Config, restricted ...string) *Permissions {
	set := make(map[string]bool, len(restricted))
	for _, name := range restricted {
		set[name] = true
	}
	return &Permissions{s: s, cfg: cfg, restricted: set}
}

// CheckPermission is a side-effect-free oracle for the dispatcher.
func (p *Permissions) CheckPermission(channel, sender, command string) bool {
	if !p.restricted[command] {
		return true
	}
	if p.cfg.IsDeveloper(sender) {
		return true
	}
	if channel == "" {
		// role checks need a guild channel; restricted commands stay
		// developer-only in private messages
		return false
	}
	perms, err := p.s.UserChannelPermissions(sender, channel)
	if err != nil {
		return false
	}
	return perms&discordgo.PermissionAdministrator != 0
}
