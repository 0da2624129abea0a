package domain

import (
	"time"

	"github.com/google/uuid"
)

// QueueEntry is a track's placement in a queue. The same video can be queued
// multiple times, so each entry carries its own identifier.
type QueueEntry struct {
	ID         string
	Track      Track
	EnqueuedAt time.Time
}

// NewQueueEntry creates a QueueEntry with a fresh ID and the current time.
func NewQueueEntry(track Track) QueueEntry {
	return QueueEntry{
		ID:         uuid.NewString(),
		Track:      track,
		EnqueuedAt: time.Now().UTC(),
	}
}
