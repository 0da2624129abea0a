package events

import (
	"log/slog"
	"sync"

	"github.com/itsmaat/tunebot/internal/modules/music_player/application/ports"
	"github.com/itsmaat/tunebot/internal/modules/music_player/domain"
)

// DefaultBufferSize is the default buffer size for event channels.
const DefaultBufferSize = 100

// Compile-time check that Bus implements ports.EventPublisher.
var _ ports.EventPublisher = (*Bus)(nil)

// Bus is a channel-based event bus for async event handling. Publishing is
// non-blocking: when a buffer is full the event is dropped with a warning.
type Bus struct {
	tracksEnqueued   chan domain.TracksEnqueuedEvent
	playbackStarted  chan domain.PlaybackStartedEvent
	playbackFinished chan domain.PlaybackFinishedEvent
	trackEnded       chan domain.TrackEndedEvent
	queueCleared     chan domain.QueueClearedEvent

	closed bool
	mu     sync.RWMutex
}

// NewBus creates a Bus with the given buffer size.
func NewBus(bufferSize int) *Bus {
	if bufferSize <= 0 {
		bufferSize = DefaultBufferSize
	}

	return &Bus{
		tracksEnqueued:   make(chan domain.TracksEnqueuedEvent, bufferSize),
		playbackStarted:  make(chan domain.PlaybackStartedEvent, bufferSize),
		playbackFinished: make(chan domain.PlaybackFinishedEvent, bufferSize),
		trackEnded:       make(chan domain.TrackEndedEvent, bufferSize),
		queueCleared:     make(chan domain.QueueClearedEvent, bufferSize),
	}
}

// PublishTracksEnqueued publishes a TracksEnqueuedEvent.
func (b *Bus) PublishTracksEnqueued(event domain.TracksEnqueuedEvent) {
	publish(b, b.tracksEnqueued, event, "TracksEnqueued")
}

// PublishPlaybackStarted publishes a PlaybackStartedEvent.
func (b *Bus) PublishPlaybackStarted(event domain.PlaybackStartedEvent) {
	publish(b, b.playbackStarted, event, "PlaybackStarted")
}

// PublishPlaybackFinished publishes a PlaybackFinishedEvent.
func (b *Bus) PublishPlaybackFinished(event domain.PlaybackFinishedEvent) {
	publish(b, b.playbackFinished, event, "PlaybackFinished")
}

// PublishTrackEnded publishes a TrackEndedEvent.
func (b *Bus) PublishTrackEnded(event domain.TrackEndedEvent) {
	publish(b, b.trackEnded, event, "TrackEnded")
}

// PublishQueueCleared publishes a QueueClearedEvent.
func (b *Bus) PublishQueueCleared(event domain.QueueClearedEvent) {
	publish(b, b.queueCleared, event, "QueueCleared")
}

func publish[E any](b *Bus, ch chan E, event E, name string) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if b.closed {
		slog.Warn("attempted to publish to closed event bus", "type", name)
		return
	}

	select {
	case ch <- event:
		slog.Debug("published event", "type", name)
	default:
		slog.Warn("event buffer full, dropping event", "type", name)
	}
}

// TracksEnqueued returns the channel for TracksEnqueuedEvent.
func (b *Bus) TracksEnqueued() <-chan domain.TracksEnqueuedEvent {
	return b.tracksEnqueued
}

// PlaybackStarted returns the channel for PlaybackStartedEvent.
func (b *Bus) PlaybackStarted() <-chan domain.PlaybackStartedEvent {
	return b.playbackStarted
}

// PlaybackFinished returns the channel for PlaybackFinishedEvent.
func (b *Bus) PlaybackFinished() <-chan domain.PlaybackFinishedEvent {
	return b.playbackFinished
}

// TrackEnded returns the channel for TrackEndedEvent.
func (b *Bus) TrackEnded() <-chan domain.TrackEndedEvent {
	return b.trackEnded
}

// QueueCleared returns the channel for QueueClearedEvent.
func (b *Bus) QueueCleared() <-chan domain.QueueClearedEvent {
	return b.queueCleared
}

// Close closes all event channels. After Close, publishing is a no-op.
func (b *Bus) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return
	}

	b.closed = true
	close(b.tracksEnqueued)
	close(b.playbackStarted)
	close(b.playbackFinished)
	close(b.trackEnded)
	close(b.queueCleared)

	slog.Debug("event bus closed")
}
