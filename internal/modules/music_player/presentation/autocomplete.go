package presentation

import (
	"context"
	"fmt"

	"github.com/bwmarrin/discordgo"

	"github.com/itsmaat/tunebot/internal/modules/music_player/application/usecases"
)

// maxAutocompleteChoices is Discord's limit on autocomplete choices.
const maxAutocompleteChoices = 25

// AutocompleteHandler handles autocomplete requests. Suggestions come from
// the lightweight search path: no per-video detail fetches, so they stay
// within Discord's response deadline.
type AutocompleteHandler struct {
	resolver *usecases.ResolverService
}

// NewAutocompleteHandler creates a new AutocompleteHandler.
func NewAutocompleteHandler(resolver *usecases.ResolverService) *AutocompleteHandler {
	return &AutocompleteHandler{
		resolver: resolver,
	}
}

// HandlePlay handles autocomplete for the play command.
func (h *AutocompleteHandler) HandlePlay(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()

	var query string
	for _, opt := range i.ApplicationCommandData().Options {
		if opt.Name == "query" && opt.Focused {
			query = opt.StringValue()
			break
		}
	}

	// Very short queries produce noise, and URLs are resolved on submit.
	if len(query) < 2 {
		respondChoices(s, i, nil)
		return
	}

	tracks, err := h.resolver.Suggest(ctx, query, maxAutocompleteChoices)
	if err != nil {
		respondChoices(s, i, nil)
		return
	}

	choices := make([]*discordgo.ApplicationCommandOptionChoice, 0, len(tracks))
	for _, track := range tracks {
		name := track.Title
		if track.Author != "" {
			name = fmt.Sprintf("%s - %s", track.Title, track.Author)
		}
		choices = append(choices, &discordgo.ApplicationCommandOptionChoice{
			Name:  truncate(name, 100),
			Value: track.URL,
		})
	}

	respondChoices(s, i, choices)
}

func respondChoices(
	s *discordgo.Session,
	i *discordgo.InteractionCreate,
	choices []*discordgo.ApplicationCommandOptionChoice,
) {
	if choices == nil {
		choices = []*discordgo.ApplicationCommandOptionChoice{}
	}
	_ = s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionApplicationCommandAutocompleteResult,
		Data: &discordgo.InteractionResponseData{
			Choices: choices,
		},
	})
}

func truncate(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	return string(runes[:maxLen-3]) + "..."
}
