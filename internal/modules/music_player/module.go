package music_player

import (
	"context"
	"log/slog"

	"github.com/bwmarrin/discordgo"
	"github.com/caarlos0/env/v11"
	"github.com/disgoorg/snowflake/v2"

	"github.com/itsmaat/tunebot/internal/bot"
	"github.com/itsmaat/tunebot/internal/modules/music_player/application/events"
	"github.com/itsmaat/tunebot/internal/modules/music_player/application/usecases"
	"github.com/itsmaat/tunebot/internal/modules/music_player/infrastructure"
	"github.com/itsmaat/tunebot/internal/modules/music_player/presentation"
)

func init() {
	bot.Register(&MusicPlayerModule{})
}

var _ bot.ConfigurableModule = (*MusicPlayerModule)(nil)

// MusicPlayerModule provides YouTube playback commands.
type MusicPlayerModule struct {
	config          *Config
	commandHandlers *presentation.CommandHandlers
	autocomplete    *presentation.AutocompleteHandler
	eventHandlers   *presentation.EventHandlers
	lavalinkAdapter *infrastructure.LavalinkAdapter

	eventBus            *events.Bus
	playbackHandler     *events.PlaybackHandler
	notificationHandler *events.NotificationHandler

	// Context for the event handler goroutines.
	ctx    context.Context
	cancel context.CancelFunc
}

// Name returns the module name.
func (m *MusicPlayerModule) Name() string {
	return "music_player"
}

// Commands returns the slash commands for this module.
func (m *MusicPlayerModule) Commands() []*discordgo.ApplicationCommand {
	return presentation.Commands()
}

// CommandHandlers returns the command handlers for this module.
func (m *MusicPlayerModule) CommandHandlers() map[string]bot.InteractionHandler {
	return map[string]bot.InteractionHandler{
		"join":   m.commandHandlers.HandleJoin,
		"leave":  m.commandHandlers.HandleLeave,
		"play":   m.commandHandlers.HandlePlay,
		"stop":   m.commandHandlers.HandleStop,
		"pause":  m.commandHandlers.HandlePause,
		"resume": m.commandHandlers.HandleResume,
		"skip":   m.commandHandlers.HandleSkip,
		"queue":  m.commandHandlers.HandleQueue,
		"loop":   m.commandHandlers.HandleLoop,
	}
}

// EventHandlers returns the gateway event handlers for this module.
func (m *MusicPlayerModule) EventHandlers() []bot.EventHandler {
	return []bot.EventHandler{
		func(s *discordgo.Session, event *discordgo.VoiceServerUpdate) {
			m.handleVoiceServerUpdate(s, event)
		},
		func(s *discordgo.Session, event *discordgo.VoiceStateUpdate) {
			m.handleVoiceStateUpdate(s, event)
		},
		func(s *discordgo.Session, i *discordgo.InteractionCreate) {
			m.handleInteractionCreate(s, i)
		},
	}
}

// LoadConfig loads module-specific configuration from environment variables.
func (m *MusicPlayerModule) LoadConfig() error {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return err
	}
	m.config = cfg
	return nil
}

// Init wires the module together: catalog and canonicalizer for resolution,
// Lavalink for streaming, the event bus and its handler goroutines for the
// playback flow.
func (m *MusicPlayerModule) Init(deps bot.ModuleDependencies) error {
	m.ctx, m.cancel = context.WithCancel(context.Background())

	m.eventBus = events.NewBus(events.DefaultBufferSize)

	lavalinkAdapter, err := infrastructure.NewLavalinkAdapter(
		deps.Session,
		infrastructure.LavalinkConfig{
			Address:  m.config.LavalinkAddress,
			Password: m.config.LavalinkPassword,
		},
	)
	if err != nil {
		return err
	}
	lavalinkAdapter.SetEventBus(m.eventBus)
	m.lavalinkAdapter = lavalinkAdapter

	repo := infrastructure.NewMemoryRepository()
	voiceState := infrastructure.NewVoiceStateProvider(deps.Session)
	notifier := infrastructure.NewNotifier(deps.Session)
	catalog := infrastructure.NewInnertubeClient(infrastructure.InnertubeConfig{
		Cookie: m.config.YouTubeCookie,
	})
	canonicalizer := infrastructure.NewRedirectCanonicalizer(nil)

	resolver := usecases.NewResolverService(catalog, canonicalizer)
	voiceChannel := usecases.NewVoiceChannelService(repo, lavalinkAdapter, voiceState, m.eventBus)
	playback := usecases.NewPlaybackService(repo, lavalinkAdapter, m.eventBus)
	queue := usecases.NewQueueService(repo, m.eventBus)

	m.playbackHandler = events.NewPlaybackHandler(
		repo, playback, lavalinkAdapter, notifier, m.eventBus)
	m.notificationHandler = events.NewNotificationHandler(repo, notifier, m.eventBus)

	go m.playbackHandler.Run(m.ctx)
	go m.notificationHandler.Run(m.ctx)

	botID, err := snowflake.Parse(deps.Session.State.User.ID)
	if err != nil {
		return err
	}

	m.commandHandlers = presentation.NewCommandHandlers(voiceChannel, playback, queue, resolver)
	m.autocomplete = presentation.NewAutocompleteHandler(resolver)
	m.eventHandlers = presentation.NewEventHandlers(botID, voiceChannel)

	slog.Info("music_player module initialized")

	return nil
}

// Shutdown cleans up module resources.
func (m *MusicPlayerModule) Shutdown() error {
	if m.cancel != nil {
		m.cancel()
	}

	if m.eventBus != nil {
		m.eventBus.Close()
	}

	if m.lavalinkAdapter != nil {
		m.lavalinkAdapter.Link().Close()
	}

	return nil
}

// Gateway event plumbing.

func (m *MusicPlayerModule) handleVoiceServerUpdate(
	_ *discordgo.Session,
	event *discordgo.VoiceServerUpdate,
) {
	if m.lavalinkAdapter != nil {
		m.lavalinkAdapter.OnVoiceServerUpdate(event)
	}
}

func (m *MusicPlayerModule) handleVoiceStateUpdate(
	s *discordgo.Session,
	event *discordgo.VoiceStateUpdate,
) {
	if m.lavalinkAdapter != nil {
		m.lavalinkAdapter.OnVoiceStateUpdate(event)
	}
	if m.eventHandlers != nil {
		m.eventHandlers.HandleVoiceStateUpdate(s, event)
	}
}

func (m *MusicPlayerModule) handleInteractionCreate(
	s *discordgo.Session,
	i *discordgo.InteractionCreate,
) {
	if i.Type != discordgo.InteractionApplicationCommandAutocomplete {
		return
	}

	if i.ApplicationCommandData().Name == "play" {
		m.autocomplete.HandlePlay(s, i)
	}
}
