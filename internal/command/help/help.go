package help

import (
	"fmt"
	"sort"
	"strings"

	"server-herald/internal/command"
)

// HelpCommand lists registered commands by help group, or shows one
// command resolved through the fuzzy matcher so partial names work.
type HelpCommand struct {
	Registry *command.Registry
}

func (c *HelpCommand) Info() *command.Info {
	return &command.Info{
		Name:       "help",
		Aliases:    []string{"commands", "h"},
		Help:       "help [command] — list commands or show one",
		HelpGroups: []string{"core"},
	}
}

func (c *HelpCommand) Run(ctx *command.Context) (bool, error) {
	if len(ctx.Args) == 0 {
		ctx.Respond(c.overview(ctx.Prefix))
		return true, nil
	}

	module := c.Registry.Match(ctx.Args[0])
	if module == nil {
		ctx.RespondPinged(fmt.Sprintf("Nothing registered looks like %q. Try %shelp.", ctx.Args[0], ctx.Prefix))
		return true, nil
	}

	info := module.Info()
	line := fmt.Sprintf("%s%s — %s", ctx.Prefix, info.Name, info.Help)
	if len(info.Aliases) > 0 {
		line += " (aliases: " + strings.Join(info.Aliases, ", ") + ")"
	}
	ctx.Respond(line)
	return true, nil
}

func (c *HelpCommand) overview(prefix string) string {
	groups := c.Registry.GroupsMap()
	names := make([]string, 0, len(groups))
	for g := range groups {
		names = append(names, g)
	}
	sort.Strings(names)

	var b strings.Builder
	fmt.Fprintf(&b, "Commands (use %shelp <command> for details):\n", prefix)
	for _, g := range names {
		cmds := make([]string, 0, len(groups[g]))
		for _, m := range groups[g] {
			cmds = append(cmds, m.Info().Name)
		}
		fmt.Fprintf(&b, "%s: %s\n", g, strings.Join(cmds, ", "))
	}
	return strings.TrimRight(b.String(), "\n")
}
