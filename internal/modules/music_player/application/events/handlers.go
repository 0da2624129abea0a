package events

import (
	"context"
	"errors"
	"log/slog"

	"github.com/disgoorg/snowflake/v2"

	"github.com/itsmaat/tunebot/internal/modules/music_player/application/ports"
	"github.com/itsmaat/tunebot/internal/modules/music_player/application/usecases"
	"github.com/itsmaat/tunebot/internal/modules/music_player/domain"
)

// PlaybackHandler drives the playback flow from bus events: it starts
// playback when tracks are enqueued on an idle player, advances the queue
// when the audio node reports a track end, and stops the player when the
// queue is cleared.
type PlaybackHandler struct {
	repo     domain.PlayerStateRepository
	playback *usecases.PlaybackService
	player   ports.AudioPlayer
	notifier ports.NotificationSender
	bus      *Bus
}

// NewPlaybackHandler creates a new PlaybackHandler.
func NewPlaybackHandler(
	repo domain.PlayerStateRepository,
	playback *usecases.PlaybackService,
	player ports.AudioPlayer,
	notifier ports.NotificationSender,
	bus *Bus,
) *PlaybackHandler {
	return &PlaybackHandler{
		repo:     repo,
		playback: playback,
		player:   player,
		notifier: notifier,
		bus:      bus,
	}
}

// Run consumes bus events until the context is cancelled or the bus closes.
// It is meant to run in its own goroutine, started by the module.
func (h *PlaybackHandler) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-h.bus.TracksEnqueued():
			if !ok {
				return
			}
			h.handleTracksEnqueued(ctx, event)

		case event, ok := <-h.bus.TrackEnded():
			if !ok {
				return
			}
			h.handleTrackEnded(ctx, event)

		case event, ok := <-h.bus.QueueCleared():
			if !ok {
				return
			}
			h.handleQueueCleared(ctx, event)
		}
	}
}

func (h *PlaybackHandler) handleTracksEnqueued(ctx context.Context, event domain.TracksEnqueuedEvent) {
	if !event.WasIdle {
		return
	}

	if _, err := h.playback.PlayCurrent(ctx, event.GuildID); err != nil {
		slog.Error("failed to start playback after enqueue",
			"guild", event.GuildID, "error", err)
		h.reportStreamFailure(event.GuildID, err)
	}
}

func (h *PlaybackHandler) handleTrackEnded(ctx context.Context, event domain.TrackEndedEvent) {
	if !event.Reason.ShouldAdvanceQueue() {
		return
	}

	state := h.repo.Get(event.GuildID)
	if state == nil {
		slog.Warn("track ended but player state not found", "guild", event.GuildID)
		return
	}

	h.cleanupNowPlaying(state)

	next := state.Queue.Advance(state.LoopMode())
	if next == nil {
		state.StopPlayback()
		slog.Debug("queue exhausted", "guild", event.GuildID)
		return
	}

	if _, err := h.playback.PlayCurrent(ctx, event.GuildID); err != nil {
		slog.Error("failed to play next track",
			"guild", event.GuildID, "error", err)
		h.reportStreamFailure(event.GuildID, err)
	}
}

func (h *PlaybackHandler) handleQueueCleared(ctx context.Context, event domain.QueueClearedEvent) {
	state := h.repo.Get(event.GuildID)
	if state == nil {
		return
	}

	h.cleanupNowPlaying(state)

	if err := h.player.Stop(ctx, event.GuildID); err != nil {
		slog.Warn("failed to stop playback after queue clear",
			"guild", event.GuildID, "error", err)
	}
	state.StopPlayback()
}

func (h *PlaybackHandler) cleanupNowPlaying(state *domain.PlayerState) {
	msg := state.NowPlayingMessage()
	if msg == nil {
		return
	}
	if err := h.notifier.DeleteMessage(msg.ChannelID, msg.MessageID); err != nil {
		slog.Warn("failed to delete now playing message",
			"guild", state.GuildID(), "error", err)
	}
	state.ClearNowPlayingMessage()
}

// reportStreamFailure surfaces a streaming failure to the notification
// channel. Stream errors are the one resolution-adjacent failure users must
// see.
func (h *PlaybackHandler) reportStreamFailure(guildID snowflake.ID, err error) {
	state := h.repo.Get(guildID)
	if state == nil {
		return
	}
	if errors.Is(err, usecases.ErrStreamUnavailable) {
		if sendErr := h.notifier.SendError(state.NotificationChannelID(),
			"The track could not be streamed."); sendErr != nil {
			slog.Warn("failed to send stream failure notice", "error", sendErr)
		}
	}
}

// NotificationHandler sends and deletes "Now Playing" messages in response to
// playback events.
type NotificationHandler struct {
	repo     domain.PlayerStateRepository
	notifier ports.NotificationSender
	bus      *Bus
}

// NewNotificationHandler creates a new NotificationHandler.
func NewNotificationHandler(
	repo domain.PlayerStateRepository,
	notifier ports.NotificationSender,
	bus *Bus,
) *NotificationHandler {
	return &NotificationHandler{
		repo:     repo,
		notifier: notifier,
		bus:      bus,
	}
}

// Run consumes bus events until the context is cancelled or the bus closes.
func (h *NotificationHandler) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-h.bus.PlaybackStarted():
			if !ok {
				return
			}
			h.handlePlaybackStarted(event)

		case event, ok := <-h.bus.PlaybackFinished():
			if !ok {
				return
			}
			h.handlePlaybackFinished(event)
		}
	}
}

func (h *NotificationHandler) handlePlaybackStarted(event domain.PlaybackStartedEvent) {
	messageID, err := h.notifier.SendNowPlaying(event.NotificationChannelID, event.Track)
	if err != nil {
		slog.Warn("failed to send now playing message",
			"guild", event.GuildID, "error", err)
		return
	}

	state := h.repo.Get(event.GuildID)
	if state == nil {
		return
	}
	state.SetNowPlayingMessage(event.NotificationChannelID, messageID)
}

func (h *NotificationHandler) handlePlaybackFinished(event domain.PlaybackFinishedEvent) {
	if event.LastMessageID == nil {
		return
	}
	if err := h.notifier.DeleteMessage(event.NotificationChannelID, *event.LastMessageID); err != nil {
		slog.Warn("failed to delete now playing message",
			"guild", event.GuildID, "error", err)
	}

	state := h.repo.Get(event.GuildID)
	if state != nil {
		state.ClearNowPlayingMessage()
	}
}
