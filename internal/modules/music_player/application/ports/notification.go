package ports

import (
	"github.com/disgoorg/snowflake/v2"

	"github.com/itsmaat/tunebot/internal/modules/music_player/domain"
)

// NotificationSender sends playback notifications to Discord channels.
type NotificationSender interface {
	// SendNowPlaying sends a "Now Playing" embed and returns the message ID.
	SendNowPlaying(channelID snowflake.ID, track domain.Track) (messageID snowflake.ID, err error)

	// DeleteMessage deletes a message from the channel.
	DeleteMessage(channelID, messageID snowflake.ID) error

	// SendError sends an error message embed to the channel.
	SendError(channelID snowflake.ID, message string) error
}
