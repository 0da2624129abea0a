package diagnostics

import (
	"context"

	"github.com/bwmarrin/discordgo"

	"github.com/itsmaat/tunebot/internal/bot"
)

func init() {
	bot.Register(&DiagnosticsModule{})
}

// DiagnosticsModule provides the /status command.
type DiagnosticsModule struct {
	checker *StatusChecker
}

// Name returns the module name.
func (m *DiagnosticsModule) Name() string {
	return "diagnostics"
}

// Commands returns the slash commands for this module.
func (m *DiagnosticsModule) Commands() []*discordgo.ApplicationCommand {
	return []*discordgo.ApplicationCommand{
		{
			Name:        "status",
			Description: "Show bot uptime and upstream health",
		},
	}
}

// CommandHandlers returns the command handlers for this module.
func (m *DiagnosticsModule) CommandHandlers() map[string]bot.InteractionHandler {
	return map[string]bot.InteractionHandler{
		"status": m.handleStatus,
	}
}

// EventHandlers returns the event handlers for this module.
func (m *DiagnosticsModule) EventHandlers() []bot.EventHandler {
	return nil
}

// Init initializes the module.
func (m *DiagnosticsModule) Init(_ bot.ModuleDependencies) error {
	m.checker = NewStatusChecker()
	return nil
}

// Shutdown cleans up module resources.
func (m *DiagnosticsModule) Shutdown() error {
	return nil
}

func (m *DiagnosticsModule) handleStatus(
	_ *discordgo.Session,
	_ *discordgo.InteractionCreate,
	r bot.Responder,
) error {
	report := m.checker.Check(context.Background())

	catalogStatus := "unreachable"
	if report.CatalogReachable {
		catalogStatus = "ok"
	}

	return r.Respond(&discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Embeds: []*discordgo.MessageEmbed{
				{
					Title: "Status",
					Fields: []*discordgo.MessageEmbedField{
						{Name: "Uptime", Value: report.FormattedUptime(), Inline: true},
						{Name: "YouTube", Value: catalogStatus, Inline: true},
					},
				},
			},
		},
	})
}
