package usecases

import (
	"context"

	"github.com/disgoorg/snowflake/v2"

	"github.com/itsmaat/tunebot/internal/modules/music_player/application/ports"
	"github.com/itsmaat/tunebot/internal/modules/music_player/domain"
)

// DefaultPageSize is the queue listing page size.
const DefaultPageSize = 10

// QueueAddInput contains the input for the Add use case. A playlist resolution
// enqueues all its tracks in one call so upstream order is preserved.
type QueueAddInput struct {
	GuildID               snowflake.ID
	Tracks                []domain.Track
	NotificationChannelID snowflake.ID // optional: updates notification channel if non-zero
}

// QueueAddOutput contains the result of the Add use case.
type QueueAddOutput struct {
	FirstPosition int // 0-indexed queue position of the first added track
	Added         int
}

// QueueListInput contains the input for the List use case.
type QueueListInput struct {
	GuildID  snowflake.ID
	Page     int // 1-indexed
	PageSize int // optional, defaults to DefaultPageSize
}

// QueueListOutput contains the result of the List use case.
type QueueListOutput struct {
	CurrentTrack *domain.Track
	Entries      []domain.QueueEntry
	TotalTracks  int
	CurrentPage  int
	TotalPages   int
}

// QueueRemoveInput contains the input for the Remove use case.
type QueueRemoveInput struct {
	GuildID  snowflake.ID
	Position int // 0-indexed; the current position must go through Skip
}

// QueueRemoveOutput contains the result of the Remove use case.
type QueueRemoveOutput struct {
	RemovedTrack *domain.Track
}

// QueueClearInput contains the input for the Clear use case.
type QueueClearInput struct {
	GuildID               snowflake.ID
	NotificationChannelID snowflake.ID
}

// QueueClearOutput contains the result of the Clear use case.
type QueueClearOutput struct {
	ClearedCount int
}

// QueueService handles queue operations.
type QueueService struct {
	repo      domain.PlayerStateRepository
	publisher ports.EventPublisher
}

// NewQueueService creates a new QueueService.
func NewQueueService(
	repo domain.PlayerStateRepository,
	publisher ports.EventPublisher,
) *QueueService {
	return &QueueService{
		repo:      repo,
		publisher: publisher,
	}
}

// Add appends tracks to the queue and publishes an event so playback starts
// if the player was idle.
func (q *QueueService) Add(_ context.Context, input QueueAddInput) (*QueueAddOutput, error) {
	state := q.repo.Get(input.GuildID)
	if state == nil {
		return nil, ErrNotConnected
	}

	if input.NotificationChannelID != 0 {
		state.SetNotificationChannelID(input.NotificationChannelID)
	}

	if len(input.Tracks) == 0 {
		return nil, ErrNoResults
	}

	wasIdle := state.IsIdle()
	firstPosition := state.Queue.Len()

	entries := make([]domain.QueueEntry, 0, len(input.Tracks))
	for _, track := range input.Tracks {
		entries = append(entries, domain.NewQueueEntry(track))
	}
	state.Queue.Add(entries...)

	if q.publisher != nil {
		q.publisher.PublishTracksEnqueued(domain.TracksEnqueuedEvent{
			GuildID: input.GuildID,
			Tracks:  input.Tracks,
			WasIdle: wasIdle,
		})
	}

	return &QueueAddOutput{
		FirstPosition: firstPosition,
		Added:         len(entries),
	}, nil
}

// List returns one page of the queue.
func (q *QueueService) List(input QueueListInput) (*QueueListOutput, error) {
	state := q.repo.Get(input.GuildID)
	if state == nil {
		return nil, ErrNotConnected
	}

	pageSize := input.PageSize
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}

	entries := state.Queue.List()
	totalTracks := len(entries)
	if totalTracks == 0 {
		return nil, ErrQueueEmpty
	}

	totalPages := (totalTracks + pageSize - 1) / pageSize
	page := input.Page
	if page < 1 {
		page = 1
	}
	if page > totalPages {
		page = totalPages
	}

	start := (page - 1) * pageSize
	end := min(start+pageSize, totalTracks)

	return &QueueListOutput{
		CurrentTrack: state.CurrentTrack(),
		Entries:      entries[start:end],
		TotalTracks:  totalTracks,
		CurrentPage:  page,
		TotalPages:   totalPages,
	}, nil
}

// Remove removes the entry at the given position.
func (q *QueueService) Remove(_ context.Context, input QueueRemoveInput) (*QueueRemoveOutput, error) {
	state := q.repo.Get(input.GuildID)
	if state == nil {
		return nil, ErrNotConnected
	}

	if input.Position == state.Queue.CurrentIndex() && state.IsPlaybackActive() {
		return nil, ErrIsCurrentTrack
	}

	entry := state.Queue.RemoveAt(input.Position)
	if entry == nil {
		return nil, ErrInvalidPosition
	}

	return &QueueRemoveOutput{RemovedTrack: &entry.Track}, nil
}

// Clear removes all upcoming entries, keeping the currently playing one. When
// nothing is playing the whole queue is cleared and a QueueCleared event stops
// the player.
func (q *QueueService) Clear(_ context.Context, input QueueClearInput) (*QueueClearOutput, error) {
	state := q.repo.Get(input.GuildID)
	if state == nil {
		return nil, ErrNotConnected
	}

	if state.Queue.IsEmpty() {
		return nil, ErrQueueEmpty
	}

	if !state.IsPlaybackActive() {
		cleared := state.Queue.Len()
		state.Queue.Clear()
		if q.publisher != nil {
			q.publisher.PublishQueueCleared(domain.QueueClearedEvent{
				GuildID:               input.GuildID,
				NotificationChannelID: input.NotificationChannelID,
			})
		}
		return &QueueClearOutput{ClearedCount: cleared}, nil
	}

	upcoming := state.Queue.Upcoming()
	if len(upcoming) == 0 {
		return nil, ErrNothingToClear
	}

	for range upcoming {
		state.Queue.RemoveAt(state.Queue.CurrentIndex() + 1)
	}

	return &QueueClearOutput{ClearedCount: len(upcoming)}, nil
}
