package ports

import (
	"context"

	"github.com/disgoorg/snowflake/v2"

	"github.com/itsmaat/tunebot/internal/modules/music_player/domain"
)

// AudioPlayer is the streaming provider. Play is invoked only after a track
// has been resolved; stream failures propagate to the caller rather than
// being absorbed, so the playback layer can report them.
type AudioPlayer interface {
	// Play starts streaming the given track in the guild's voice connection.
	Play(ctx context.Context, guildID snowflake.ID, track domain.Track) error

	// Stop stops the current playback.
	Stop(ctx context.Context, guildID snowflake.ID) error

	// Pause pauses the current playback.
	Pause(ctx context.Context, guildID snowflake.ID) error

	// Resume resumes the paused playback.
	Resume(ctx context.Context, guildID snowflake.ID) error
}
