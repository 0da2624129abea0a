package ports

import (
	"github.com/itsmaat/tunebot/internal/modules/music_player/domain"
)

// EventPublisher publishes player events asynchronously. Publishing never
// blocks; implementations drop events when their buffers are full.
type EventPublisher interface {
	PublishTracksEnqueued(event domain.TracksEnqueuedEvent)
	PublishPlaybackStarted(event domain.PlaybackStartedEvent)
	PublishPlaybackFinished(event domain.PlaybackFinishedEvent)
	PublishTrackEnded(event domain.TrackEndedEvent)
	PublishQueueCleared(event domain.QueueClearedEvent)
}
