// Package discord adapts the transport-agnostic command core to a
// Discord session: inbound messages feed the dispatcher, responses go
// back out as channel messages or DMs, and the permission checker is
// backed by guild roles.
package discord

import (
	"context"
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog"

	"server-herald/internal/command"
)

// Bot owns the Discord session and forwards message events into the
// dispatcher.
type Bot struct {
	dg         *discordgo.Session
	dispatcher *command.Dispatcher
	log        zerolog.Logger
}

// NewSession creates a configured Discord session for the given token.
func NewSession(token string) (*discordgo.Session, error) {
	dg, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, fmt.Errorf("creating session: %w", err)
	}
	dg.Identify.Intents = discordgo.IntentsGuilds |
		discordgo.IntentsGuildMessages |
		discordgo.IntentsDirectMessages |
		discordgo.IntentMessageContent
	return dg, nil
}

// NewBot wires an existing session to the dispatcher.
func NewBot(dg *discordgo.Session, dispatcher *command.Dispatcher, log zerolog.Logger) *Bot {
	return &Bot{
		dg:         dg,
		dispatcher: dispatcher,
		log:        log.With().Str("component", "discord").Logger(),
	}
}

// Run opens the session and blocks until ctx is done.
func (b *Bot) Run(ctx context.Context) error {
	b.dg.AddHandler(b.onReady)
	b.dg.AddHandler(b.onMessageCreate)

	if err := b.dg.Open(); err != nil {
		return fmt.Errorf("opening Discord session: %w", err)
	}
	defer b.dg.Close()

	<-ctx.Done()
	b.log.Info().Msg("Shutdown signal received, closing session")
	return nil
}

func (b *Bot) onReady(s *discordgo.Session, r *discordgo.Ready) {
	b.log.Info().Str("user", r.User.Username).Int("guilds", len(r.Guilds)).Msg("Connected")
}

// onMessageCreate hands prefixed messages to the dispatcher. An empty
// channel in the invocation context marks a direct message; Discord DMs
// still carry a channel ID, which the responder resolves again on reply.
func (b *Bot) onMessageCreate(s *discordgo.Session, m *discordgo.MessageCreate) {
	if m.Author == nil || m.Author.ID == s.State.User.ID || m.Author.Bot {
		return
	}
	if !strings.HasPrefix(m.Content, b.dispatcher.Prefix()) {
		return
	}

	channel := m.ChannelID
	if m.GuildID == "" {
		channel = "" // private one-to-one message
	}

	handled := b.dispatcher.OnMessage(channel, m.Author.ID, m.Content, &responder{s: s, log: b.log})
	if !handled {
		b.log.Debug().Str("sender", m.Author.ID).Str("content", m.Content).Msg("Message not consumed as a command")
	}
}

// responder delivers dispatcher output back through the session.
type responder struct {
	s   *discordgo.Session
	log zerolog.Logger
}

func (r *responder) Respond(channel, sender, message string) {
	if channel == "" {
		r.dm(sender, message)
		return
	}
	r.send(channel, message)
}

func (r *responder) RespondPinged(channel, sender, message string) {
	if channel == "" {
		// a DM is already addressed
		r.dm(sender, message)
		return
	}
	r.send(channel, fmt.Sprintf("<@%s> %s", sender, message))
}

func (r *responder) send(channel, message string) {
	if _, err := r.s.ChannelMessageSend(channel, message); err != nil {
		r.log.Warn().Err(err).Str("channel", channel).Msg("Failed to send message")
	}
}

func (r *responder) dm(userID, message string) {
	ch, err := r.s.UserChannelCreate(userID)
	if err != nil {
		r.log.Warn().Err(err).Str("user", userID).Msg("Failed to open DM channel")
		return
	}
	r.send(ch.ID, message)
}
