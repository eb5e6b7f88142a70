package command

import (
	"strings"

	"github.com/rs/zerolog"
)

// Registry owns the registered handlers. Registration happens during
// startup; afterwards the registry is read-only, so no locking here.
// Insertion order is preserved and lookups are first-registered-wins.
type Registry struct {
	modules []Command
	groups  map[string][]Command
	log     zerolog.Logger
}

// NewRegistry returns an empty registry.
func NewRegistry(log zerolog.Logger) *Registry {
	return &Registry{
		groups: make(map[string][]Command),
		log:    log.With().Str("component", "registry").Logger(),
	}
}

// Register appends a handler. A handler without a descriptor is skipped
// with a warning and never shows up in any lookup.
func (r *Registry) Register(cmd Command) {
	if cmd.Info() == nil {
		r.log.Warn().Msgf("Failed to register command %T: missing descriptor", cmd)
		return
	}
	r.modules = append(r.modules, cmd)
}

// BuildGroupMap rebuilds the help-group mapping from the current handler
// set. The map is cleared first so repeated calls do not accumulate
// duplicates. The reserved "all" group is never mapped.
func (r *Registry) BuildGroupMap() {
	r.groups = make(map[string][]Command)
	for _, m := range r.modules {
		for _, group := range m.Info().HelpGroups {
			if strings.EqualFold(group, GroupAll) {
				continue
			}
			r.groups[group] = append(r.groups[group], m)
		}
	}
}

// ModuleFor returns the handler whose primary name or one of whose aliases
// equals token, case-insensitively. Exact matches only; the fuzzy Match is
// a separate path used for help suggestions.
func (r *Registry) ModuleFor(token string) Command {
	for _, m := range r.modules {
		info := m.Info()
		if strings.EqualFold(info.Name, token) {
			return m
		}
		for _, alias := range info.Aliases {
			if strings.EqualFold(alias, token) {
				return m
			}
		}
	}
	return nil
}

// Commands returns a copy of all registered handlers in registration order.
func (r *Registry) Commands() []Command {
	out := make([]Command, len(r.modules))
	copy(out, r.modules)
	return out
}

// GroupsMap returns a defensive copy of the group mapping. Callers may
// reorder or trim the slices freely.
func (r *Registry) GroupsMap() map[string][]Command {
	out := make(map[string][]Command, len(r.groups))
	for group, mods := range r.groups {
		out[group] = append([]Command(nil), mods...)
	}
	return out
}

// ModuleOf returns the first registered handler whose concrete type is T.
func ModuleOf[T Command](r *Registry) (T, bool) {
	for _, m := range r.modules {
		if t, ok := m.(T); ok {
			return t, true
		}
	}
	var zero T
	return zero, false
}
