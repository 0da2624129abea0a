package bot

import "github.com/bwmarrin/discordgo"

// InteractionHandler handles a Discord slash command interaction.
type InteractionHandler func(s *discordgo.Session, i *discordgo.InteractionCreate, r Responder) error

// EventHandler is a generic handler for any Discord gateway event. It must
// match one of discordgo's handler signatures, e.g.
// func(s *discordgo.Session, m *discordgo.VoiceStateUpdate).
type EventHandler any

// ModuleDependencies provides dependencies that modules receive during
// initialization. The session is open and ready by the time Init runs.
type ModuleDependencies struct {
	Session *discordgo.Session
}

// Module defines the interface that all bot modules must implement.
type Module interface {
	// Name returns the unique identifier for this module.
	Name() string

	// Commands returns the slash commands that this module provides.
	Commands() []*discordgo.ApplicationCommand

	// CommandHandlers returns a map of command names to their handlers.
	CommandHandlers() map[string]InteractionHandler

	// EventHandlers returns gateway event handlers for this module.
	EventHandlers() []EventHandler

	// Init initializes the module with the provided dependencies.
	Init(deps ModuleDependencies) error

	// Shutdown gracefully shuts down the module.
	Shutdown() error
}

// ConfigurableModule is an optional interface for modules that need
// configuration. LoadConfig is called before Init and before the Discord
// connection is established, so missing configuration fails fast.
type ConfigurableModule interface {
	LoadConfig() error
}
