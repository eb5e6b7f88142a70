package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"server-herald/internal/command"
	"server-herald/internal/command/announce"
	"server-herald/internal/command/ghk"
	"server-herald/internal/command/help"
	"server-herald/internal/command/ping"
	"server-herald/internal/command/remind"
	"server-herald/internal/config"
	"server-herald/internal/discord"
	"server-herald/internal/github"
	"server-herald/internal/logging"
	"server-herald/internal/middleware"
	"server-herald/internal/storage"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		l := logging.New("info", "")
		l.Fatal().Err(err).Msg("Configuration error")
	}

	log := logging.New(cfg.LogLevel, cfg.LogFile)
	log.Info().Str("prefix", cfg.CommandPrefix).Msg("Starting server-herald")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	store, err := storage.New(cfg.StoragePath)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open storage")
	}
	defer store.Close()

	gh := github.NewClient(cfg.GitHubToken, log)
	if !gh.Configured() {
		log.Warn().Msg("GITHUB_TOKEN not set; crash diagnostics stay local")
	}

	session, err := discord.NewSession(cfg.DiscordToken)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create Discord session")
	}

	registry := command.NewRegistry(log)
	registry.Register(middleware.Apply(
		&help.HelpCommand{Registry: registry},
		middleware.WithUsageLog(store, log),
	))
	registry.Register(middleware.Apply(
		&ping.PingCommand{Started: time.Now()},
		middleware.WithUsageLog(store, log),
		middleware.WithCooldown(5*time.Second, 2),
	))
	registry.Register(middleware.Apply(
		&ghk.GhkCommand{Store: store, Client: gh},
		middleware.WithUsageLog(store, log),
	))
	registry.Register(middleware.Apply(
		&remind.RemindCommand{},
		middleware.WithUsageLog(store, log),
	))
	registry.Register(middleware.Apply(
		&announce.AnnounceCommand{},
		middleware.WithUsageLog(store, log),
	))
	registry.BuildGroupMap()

	perms := discord.NewPermissions(session, cfg, "announce")
	dispatcher := command.NewDispatcher(registry, perms, gh, cfg.CommandPrefix, log)

	bot := discord.NewBot(session, dispatcher, log)

	errCh := make(chan error, 1)
	go func() {
		errCh <- bot.Run(ctx)
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)

	select {
	case s := <-sig:
		log.Info().Str("signal", s.String()).Msg("Shutting down")
		cancel()
		<-errCh
	case err := <-errCh:
		if err != nil {
			log.Error().Err(err).Msg("Discord bot error")
		}
		cancel()
	}

	log.Info().Msg("Exited cleanly")
}
