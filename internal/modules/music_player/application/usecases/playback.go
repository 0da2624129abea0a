package usecases

import (
	"context"
	"fmt"

	"github.com/disgoorg/snowflake/v2"

	"github.com/itsmaat/tunebot/internal/modules/music_player/application/ports"
	"github.com/itsmaat/tunebot/internal/modules/music_player/domain"
)

// PauseInput contains the input for the Pause use case.
type PauseInput struct {
	GuildID               snowflake.ID
	NotificationChannelID snowflake.ID // optional: updates notification channel if non-zero
}

// ResumeInput contains the input for the Resume use case.
type ResumeInput struct {
	GuildID               snowflake.ID
	NotificationChannelID snowflake.ID // optional: updates notification channel if non-zero
}

// SkipInput contains the input for the Skip use case.
type SkipInput struct {
	GuildID               snowflake.ID
	NotificationChannelID snowflake.ID // optional: updates notification channel if non-zero
}

// SkipOutput contains the result of the Skip use case.
type SkipOutput struct {
	SkippedTrack *domain.Track
	NextTrack    *domain.Track // nil if the queue ended
}

// StopInput contains the input for the Stop use case.
type StopInput struct {
	GuildID snowflake.ID
}

// SetLoopModeInput contains the input for the SetLoopMode use case.
type SetLoopModeInput struct {
	GuildID snowflake.ID
	Mode    string // "none", "track", "queue"
}

// PlaybackService handles playback control operations.
type PlaybackService struct {
	repo      domain.PlayerStateRepository
	player    ports.AudioPlayer
	publisher ports.EventPublisher
}

// NewPlaybackService creates a new PlaybackService.
func NewPlaybackService(
	repo domain.PlayerStateRepository,
	player ports.AudioPlayer,
	publisher ports.EventPublisher,
) *PlaybackService {
	return &PlaybackService{
		repo:      repo,
		player:    player,
		publisher: publisher,
	}
}

// Pause pauses the current playback.
func (p *PlaybackService) Pause(ctx context.Context, input PauseInput) error {
	state := p.repo.Get(input.GuildID)
	if state == nil {
		return ErrNotConnected
	}

	if input.NotificationChannelID != 0 {
		state.SetNotificationChannelID(input.NotificationChannelID)
	}

	if state.IsIdle() {
		return ErrNotPlaying
	}
	if state.IsPaused() {
		return ErrAlreadyPaused
	}

	if err := p.player.Pause(ctx, input.GuildID); err != nil {
		return err
	}

	state.SetPaused(true)
	return nil
}

// Resume resumes the paused playback.
func (p *PlaybackService) Resume(ctx context.Context, input ResumeInput) error {
	state := p.repo.Get(input.GuildID)
	if state == nil {
		return ErrNotConnected
	}

	if input.NotificationChannelID != 0 {
		state.SetNotificationChannelID(input.NotificationChannelID)
	}

	if state.IsIdle() {
		return ErrNotPlaying
	}
	if !state.IsPaused() {
		return ErrNotPaused
	}

	if err := p.player.Resume(ctx, input.GuildID); err != nil {
		return err
	}

	state.SetPaused(false)
	return nil
}

// Skip skips the current track and plays the next one from the queue.
// Skip always moves forward, even in track loop mode.
func (p *PlaybackService) Skip(ctx context.Context, input SkipInput) (*SkipOutput, error) {
	state := p.repo.Get(input.GuildID)
	if state == nil {
		return nil, ErrNotConnected
	}

	if input.NotificationChannelID != 0 {
		state.SetNotificationChannelID(input.NotificationChannelID)
	}

	if !state.HasTrack() {
		return nil, ErrNotPlaying
	}

	skippedEntry := state.Queue.Current()
	skippedTrack := skippedEntry.Track

	p.publishNowPlayingCleanup(state)

	// Advance with LoopModeNone so skip never repeats the current track.
	next := state.Queue.Advance(domain.LoopModeNone)
	if next == nil {
		if state.LoopMode() == domain.LoopModeQueue && !state.Queue.IsEmpty() {
			next = state.Queue.Seek(0)
		} else {
			if err := p.player.Stop(ctx, input.GuildID); err != nil {
				return nil, err
			}
			state.StopPlayback()
			return &SkipOutput{SkippedTrack: &skippedTrack}, nil
		}
	}

	nextTrack, err := p.PlayCurrent(ctx, input.GuildID)
	if err != nil {
		return nil, err
	}

	return &SkipOutput{
		SkippedTrack: &skippedTrack,
		NextTrack:    nextTrack,
	}, nil
}

// Stop stops playback and resets the queue position.
func (p *PlaybackService) Stop(ctx context.Context, input StopInput) error {
	state := p.repo.Get(input.GuildID)
	if state == nil {
		return ErrNotConnected
	}

	if state.IsIdle() {
		return ErrNotPlaying
	}

	p.publishNowPlayingCleanup(state)

	if err := p.player.Stop(ctx, input.GuildID); err != nil {
		return err
	}

	state.StopPlayback()
	state.Queue.Clear()
	return nil
}

// PlayCurrent plays the current queue entry, starting the queue if it has not
// started yet. Returns the track that started playing, or nil if the queue is
// empty. A streaming failure is propagated wrapped in ErrStreamUnavailable.
func (p *PlaybackService) PlayCurrent(
	ctx context.Context,
	guildID snowflake.ID,
) (*domain.Track, error) {
	state := p.repo.Get(guildID)
	if state == nil {
		return nil, ErrNotConnected
	}

	entry := state.Queue.Current()
	if entry == nil && state.Queue.CurrentIndex() < 0 {
		entry = state.Queue.Start()
	}
	if entry == nil {
		return nil, nil
	}

	if err := p.player.Play(ctx, guildID, entry.Track); err != nil {
		state.StopPlayback()
		return nil, fmt.Errorf("%w: %v", ErrStreamUnavailable, err)
	}

	state.StartPlayback()

	if p.publisher != nil {
		p.publisher.PublishPlaybackStarted(domain.PlaybackStartedEvent{
			GuildID:               guildID,
			Track:                 entry.Track,
			NotificationChannelID: state.NotificationChannelID(),
		})
	}

	return &entry.Track, nil
}

// SetLoopMode sets the loop mode for the guild's player.
func (p *PlaybackService) SetLoopMode(_ context.Context, input SetLoopModeInput) error {
	state := p.repo.Get(input.GuildID)
	if state == nil {
		return ErrNotConnected
	}

	state.SetLoopMode(domain.ParseLoopMode(input.Mode))
	return nil
}

// CycleLoopMode advances the loop mode to the next one and returns it.
func (p *PlaybackService) CycleLoopMode(
	_ context.Context,
	guildID snowflake.ID,
) (domain.LoopMode, error) {
	state := p.repo.Get(guildID)
	if state == nil {
		return domain.LoopModeNone, ErrNotConnected
	}

	return state.CycleLoopMode(), nil
}

// publishNowPlayingCleanup asks the notification handler to delete the stored
// "Now Playing" message, if any.
func (p *PlaybackService) publishNowPlayingCleanup(state *domain.PlayerState) {
	msg := state.NowPlayingMessage()
	if msg == nil || p.publisher == nil {
		return
	}
	p.publisher.PublishPlaybackFinished(domain.PlaybackFinishedEvent{
		GuildID:               state.GuildID(),
		NotificationChannelID: msg.ChannelID,
		LastMessageID:         &msg.MessageID,
	})
}
