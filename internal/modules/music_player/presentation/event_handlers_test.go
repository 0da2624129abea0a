package presentation

import (
	"testing"

	"github.com/bwmarrin/discordgo"
	"github.com/disgoorg/snowflake/v2"
)

func voiceStateUpdate(userID, guildID, channelID string) *discordgo.VoiceStateUpdate {
	return &discordgo.VoiceStateUpdate{
		VoiceState: &discordgo.VoiceState{
			UserID:    userID,
			GuildID:   guildID,
			ChannelID: channelID,
		},
	}
}

func TestHandleVoiceStateUpdate_BotDisconnected(t *testing.T) {
	f := newHandlerFixture(true)
	connectPlayer(f.repo)
	handlers := NewEventHandlers(snowflake.ID(99), f.voiceChannel)

	handlers.HandleVoiceStateUpdate(nil, voiceStateUpdate("99", "1", ""))

	if f.repo.Get(snowflake.ID(1)) != nil {
		t.Error("expected state deleted when the bot is disconnected externally")
	}
}

func TestHandleVoiceStateUpdate_BotMoved(t *testing.T) {
	f := newHandlerFixture(true)
	state := connectPlayer(f.repo)
	handlers := NewEventHandlers(snowflake.ID(99), f.voiceChannel)

	handlers.HandleVoiceStateUpdate(nil, voiceStateUpdate("99", "1", "777"))

	if state.VoiceChannelID() != snowflake.ID(777) {
		t.Errorf("expected voice channel 777, got %d", state.VoiceChannelID())
	}
	if f.repo.Get(snowflake.ID(1)) == nil {
		t.Error("expected state to survive a move")
	}
}

// Voice state changes of other users are ignored.
func TestHandleVoiceStateUpdate_OtherUser(t *testing.T) {
	f := newHandlerFixture(true)
	state := connectPlayer(f.repo)
	handlers := NewEventHandlers(snowflake.ID(99), f.voiceChannel)

	handlers.HandleVoiceStateUpdate(nil, voiceStateUpdate("5", "1", ""))

	if f.repo.Get(snowflake.ID(1)) != state {
		t.Error("expected state untouched for another user's update")
	}
}
