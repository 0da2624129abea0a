package bot

import "github.com/bwmarrin/discordgo"

// Responder abstracts interaction replies so handlers can be exercised
// without a live gateway session.
type Responder interface {
	Respond(response *discordgo.InteractionResponse) error
}

// DiscordResponder replies to an interaction through the Discord API.
type DiscordResponder struct {
	session     *discordgo.Session
	interaction *discordgo.Interaction
}

// NewDiscordResponder creates a new DiscordResponder.
func NewDiscordResponder(s *discordgo.Session, i *discordgo.Interaction) *DiscordResponder {
	return &DiscordResponder{
		session:     s,
		interaction: i,
	}
}

// Respond sends the response to Discord.
func (r *DiscordResponder) Respond(response *discordgo.InteractionResponse) error {
	return r.session.InteractionRespond(r.interaction, response)
}

// MockResponder captures responses for assertions in tests. Responses holds
// every response in order; LastResponse mirrors the most recent one.
type MockResponder struct {
	Responses    []*discordgo.InteractionResponse
	LastResponse *discordgo.InteractionResponse
	Err          error
}

// Respond records the response and returns the configured error, if any.
func (m *MockResponder) Respond(response *discordgo.InteractionResponse) error {
	m.Responses = append(m.Responses, response)
	m.LastResponse = response
	return m.Err
}
