package command

import "strings"

// Match resolves a token to a handler on a best-effort basis, for help
// lookups and suggestions. Resolution order:
//
//  1. exact primary-name match, checked across the whole set first so a
//     prefix hit on an earlier handler can never shadow it;
//  2. the first handler with an alias equal to the token or starting with
//     the token;
//  3. the last handler (registration order) whose primary name starts
//     with the token, or nil.
//
// Dispatch never calls this; it sticks to the exact ModuleFor lookup.
func (r *Registry) Match(token string) Command {
	token = strings.ToLower(token)

	for _, m := range r.modules {
		if strings.EqualFold(m.Info().Name, token) {
			return m
		}
	}

	var possible Command
	for _, m := range r.modules {
		info := m.Info()
		for _, alias := range info.Aliases {
			alias = strings.ToLower(alias)
			if alias == token || strings.HasPrefix(alias, token) {
				return m
			}
		}
		if strings.HasPrefix(strings.ToLower(info.Name), token) {
			possible = m
		}
	}
	return possible
}
