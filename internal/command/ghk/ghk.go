package ghk

import (
	"context"
	"fmt"
	"time"

	"server-herald/internal/command"
	"server-herald/internal/github"
	"server-herald/internal/storage"
)

// GhkCommand stores a per-user GitHub API key after validating it against
// the API. This is the command the credential-error hint points at.
type GhkCommand struct {
	Store  *storage.Storage
	Client *github.Client
}

func (c *GhkCommand) Info() *command.Info {
	return &command.Info{
		Name:       "ghk",
		Aliases:    []string{"githubkey"},
		Help:       "ghk <api key> — authenticate with GitHub, or ghk clear",
		HelpGroups: []string{"github"},
	}
}

func (c *GhkCommand) Run(ctx *command.Context) (bool, error) {
	if len(ctx.Args) == 0 {
		return false, nil
	}

	if ctx.Args[0] == "clear" {
		c.Store.DeleteGitHubKey(ctx.Sender)
		ctx.RespondPinged("Your GitHub API key has been removed.")
		return true, nil
	}

	if !ctx.InPrivateMessage() {
		ctx.RespondPinged(fmt.Sprintf("Not here — send me %sghk in a private message so your key stays private.", ctx.Prefix))
		return true, nil
	}

	key := ctx.Args[0]
	vctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	login, err := c.Client.ValidateKey(vctx, key)
	if err != nil {
		return false, err
	}

	if err := c.Store.SetGitHubKey(ctx.Sender, key); err != nil {
		return false, err
	}
	ctx.RespondPinged(fmt.Sprintf("Key accepted. You are authenticated with GitHub as %s.", login))
	return true, nil
}
