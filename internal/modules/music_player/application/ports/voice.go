package ports

import (
	"context"

	"github.com/disgoorg/snowflake/v2"
)

// VoiceConnection manages the bot's voice channel membership.
type VoiceConnection interface {
	// JoinChannel connects the bot to the specified voice channel.
	JoinChannel(ctx context.Context, guildID, channelID snowflake.ID) error

	// LeaveChannel disconnects the bot from the voice channel.
	LeaveChannel(ctx context.Context, guildID snowflake.ID) error
}

// VoiceStateProvider reports Discord voice state.
type VoiceStateProvider interface {
	// UserVoiceChannel returns the voice channel ID the user is currently in,
	// or nil if the user is not in a voice channel.
	UserVoiceChannel(guildID, userID snowflake.ID) (*snowflake.ID, error)
}
