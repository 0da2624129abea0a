package events

import (
	"testing"

	"github.com/disgoorg/snowflake/v2"

	"github.com/itsmaat/tunebot/internal/modules/music_player/domain"
)

func TestBus_PublishAndReceive(t *testing.T) {
	bus := NewBus(10)
	defer bus.Close()

	bus.PublishTracksEnqueued(domain.TracksEnqueuedEvent{
		GuildID: snowflake.ID(1),
		WasIdle: true,
	})

	select {
	case event := <-bus.TracksEnqueued():
		if event.GuildID != snowflake.ID(1) || !event.WasIdle {
			t.Errorf("unexpected event: %+v", event)
		}
	default:
		t.Error("expected buffered event")
	}
}

// A full buffer drops the event instead of blocking the publisher.
func TestBus_FullBufferDoesNotBlock(t *testing.T) {
	bus := NewBus(1)
	defer bus.Close()

	bus.PublishQueueCleared(domain.QueueClearedEvent{GuildID: snowflake.ID(1)})
	bus.PublishQueueCleared(domain.QueueClearedEvent{GuildID: snowflake.ID(2)})

	event := <-bus.QueueCleared()
	if event.GuildID != snowflake.ID(1) {
		t.Errorf("expected first event kept, got guild %d", event.GuildID)
	}

	select {
	case event, ok := <-bus.QueueCleared():
		if ok {
			t.Errorf("expected dropped second event, got %+v", event)
		}
	default:
	}
}

func TestBus_PublishAfterClose(t *testing.T) {
	bus := NewBus(10)
	bus.Close()

	// Must not panic on the closed channel.
	bus.PublishTrackEnded(domain.TrackEndedEvent{GuildID: snowflake.ID(1)})

	if _, ok := <-bus.TrackEnded(); ok {
		t.Error("expected closed channel")
	}
}

func TestBus_CloseTwice(t *testing.T) {
	bus := NewBus(10)
	bus.Close()
	bus.Close()
}
