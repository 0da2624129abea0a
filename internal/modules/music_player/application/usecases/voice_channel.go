package usecases

import (
	"context"

	"github.com/disgoorg/snowflake/v2"

	"github.com/itsmaat/tunebot/internal/modules/music_player/application/ports"
	"github.com/itsmaat/tunebot/internal/modules/music_player/domain"
)

// JoinInput contains the input for the Join use case.
type JoinInput struct {
	GuildID               snowflake.ID
	UserID                snowflake.ID
	NotificationChannelID snowflake.ID
	VoiceChannelID        snowflake.ID // optional: 0 means join the user's channel
}

// JoinOutput contains the result of the Join use case.
type JoinOutput struct {
	VoiceChannelID snowflake.ID
}

// LeaveInput contains the input for the Leave use case.
type LeaveInput struct {
	GuildID snowflake.ID
}

// BotVoiceStateChangeInput describes an externally caused voice state change
// (the bot was moved or disconnected by a user or by Discord).
type BotVoiceStateChangeInput struct {
	GuildID      snowflake.ID
	NewChannelID *snowflake.ID // nil means disconnected
}

// VoiceChannelService handles voice channel membership.
type VoiceChannelService struct {
	repo            domain.PlayerStateRepository
	voiceConnection ports.VoiceConnection
	voiceState      ports.VoiceStateProvider
	publisher       ports.EventPublisher
}

// NewVoiceChannelService creates a new VoiceChannelService.
func NewVoiceChannelService(
	repo domain.PlayerStateRepository,
	voiceConnection ports.VoiceConnection,
	voiceState ports.VoiceStateProvider,
	publisher ports.EventPublisher,
) *VoiceChannelService {
	return &VoiceChannelService{
		repo:            repo,
		voiceConnection: voiceConnection,
		voiceState:      voiceState,
		publisher:       publisher,
	}
}

// Join connects the bot to a voice channel, creating player state on a fresh
// connection and preserving the queue when moving between channels.
func (v *VoiceChannelService) Join(ctx context.Context, input JoinInput) (*JoinOutput, error) {
	existing := v.repo.Get(input.GuildID)

	voiceChannelID := input.VoiceChannelID
	if voiceChannelID == 0 {
		userChannel, err := v.voiceState.UserVoiceChannel(input.GuildID, input.UserID)
		if err != nil {
			return nil, err
		}
		if userChannel == nil {
			return nil, ErrUserNotInVoice
		}
		voiceChannelID = *userChannel
	}

	// Already connected to the target channel: just adopt the new
	// notification channel.
	if existing != nil && existing.VoiceChannelID() == voiceChannelID {
		existing.SetNotificationChannelID(input.NotificationChannelID)
		return &JoinOutput{VoiceChannelID: voiceChannelID}, nil
	}

	if err := v.voiceConnection.JoinChannel(ctx, input.GuildID, voiceChannelID); err != nil {
		return nil, err
	}

	if existing != nil {
		existing.SetVoiceChannelID(voiceChannelID)
		existing.SetNotificationChannelID(input.NotificationChannelID)
	} else {
		state := domain.NewPlayerState(input.GuildID, voiceChannelID, input.NotificationChannelID)
		v.repo.Save(state)
	}

	return &JoinOutput{VoiceChannelID: voiceChannelID}, nil
}

// Leave disconnects from the voice channel and discards the player state.
func (v *VoiceChannelService) Leave(ctx context.Context, input LeaveInput) error {
	state := v.repo.Get(input.GuildID)
	if state == nil {
		return ErrNotConnected
	}

	v.publishNowPlayingCleanup(state)

	if err := v.voiceConnection.LeaveChannel(ctx, input.GuildID); err != nil {
		return err
	}

	v.repo.Delete(input.GuildID)
	return nil
}

// HandleBotVoiceStateChange reacts to external voice state changes.
func (v *VoiceChannelService) HandleBotVoiceStateChange(input BotVoiceStateChangeInput) {
	state := v.repo.Get(input.GuildID)
	if state == nil {
		return
	}

	if input.NewChannelID == nil {
		// Disconnected externally: clean up the notification before the state
		// is lost.
		v.publishNowPlayingCleanup(state)
		v.repo.Delete(input.GuildID)
		return
	}

	if *input.NewChannelID != state.VoiceChannelID() {
		state.SetVoiceChannelID(*input.NewChannelID)
	}
}

func (v *VoiceChannelService) publishNowPlayingCleanup(state *domain.PlayerState) {
	msg := state.NowPlayingMessage()
	if msg == nil || v.publisher == nil {
		return
	}
	v.publisher.PublishPlaybackFinished(domain.PlaybackFinishedEvent{
		GuildID:               state.GuildID(),
		NotificationChannelID: msg.ChannelID,
		LastMessageID:         &msg.MessageID,
	})
}
