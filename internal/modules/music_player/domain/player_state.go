package domain

import (
	"github.com/disgoorg/snowflake/v2"
)

// NowPlayingMessage stores the channel and message ID of a "Now Playing"
// message. Both are needed for deletion: the message may live in a different
// channel than the current notification channel if the user switched channels
// while a track was playing.
type NowPlayingMessage struct {
	ChannelID snowflake.ID
	MessageID snowflake.ID
}

// PlayerState holds the per-guild player state: the voice connection, the
// queue, and the playback flags.
type PlayerState struct {
	guildID               snowflake.ID
	voiceChannelID        snowflake.ID
	notificationChannelID snowflake.ID
	nowPlayingMessage     *NowPlayingMessage
	Queue                 Queue
	isPlaybackActive      bool
	isPaused              bool
	loopMode              LoopMode
}

// NewPlayerState creates a PlayerState for the given guild and channels.
func NewPlayerState(guildID, voiceChannelID, notificationChannelID snowflake.ID) *PlayerState {
	return &PlayerState{
		guildID:               guildID,
		voiceChannelID:        voiceChannelID,
		notificationChannelID: notificationChannelID,
		loopMode:              LoopModeNone,
		Queue:                 NewQueue(),
	}
}

// GuildID returns the guild ID. It is immutable after construction.
func (p *PlayerState) GuildID() snowflake.ID {
	return p.guildID
}

// VoiceChannelID returns the voice channel the bot is connected to.
func (p *PlayerState) VoiceChannelID() snowflake.ID {
	return p.voiceChannelID
}

// SetVoiceChannelID updates the voice channel ID.
func (p *PlayerState) SetVoiceChannelID(channelID snowflake.ID) {
	p.voiceChannelID = channelID
}

// NotificationChannelID returns the text channel used for notifications.
func (p *PlayerState) NotificationChannelID() snowflake.ID {
	return p.notificationChannelID
}

// SetNotificationChannelID updates the notification channel ID.
func (p *PlayerState) SetNotificationChannelID(channelID snowflake.ID) {
	p.notificationChannelID = channelID
}

// IsPlaybackActive returns true if playback is currently active.
func (p *PlayerState) IsPlaybackActive() bool {
	return p.isPlaybackActive
}

// StartPlayback marks playback as active and not paused.
func (p *PlayerState) StartPlayback() {
	p.isPlaybackActive = true
	p.isPaused = false
}

// StopPlayback marks playback as inactive. The queue position is preserved.
func (p *PlayerState) StopPlayback() {
	p.isPlaybackActive = false
	p.isPaused = false
}

// IsIdle returns true when nothing is playing.
func (p *PlayerState) IsIdle() bool {
	return !p.isPlaybackActive
}

// HasTrack returns true when the queue has a current entry.
func (p *PlayerState) HasTrack() bool {
	return p.Queue.Current() != nil
}

// CurrentTrack returns the currently playing track, or nil when idle.
func (p *PlayerState) CurrentTrack() *Track {
	if !p.isPlaybackActive {
		return nil
	}
	entry := p.Queue.Current()
	if entry == nil {
		return nil
	}
	return &entry.Track
}

// IsPaused returns true if playback is paused.
func (p *PlayerState) IsPaused() bool {
	return p.isPaused
}

// SetPaused sets the paused flag.
func (p *PlayerState) SetPaused(paused bool) {
	p.isPaused = paused
}

// LoopMode returns the current loop mode.
func (p *PlayerState) LoopMode() LoopMode {
	return p.loopMode
}

// SetLoopMode sets the loop mode.
func (p *PlayerState) SetLoopMode(mode LoopMode) {
	p.loopMode = mode
}

// CycleLoopMode cycles None -> Track -> Queue -> None and returns the new mode.
func (p *PlayerState) CycleLoopMode() LoopMode {
	switch p.loopMode {
	case LoopModeNone:
		p.loopMode = LoopModeTrack
	case LoopModeTrack:
		p.loopMode = LoopModeQueue
	case LoopModeQueue:
		p.loopMode = LoopModeNone
	}
	return p.loopMode
}

// NowPlayingMessage returns a copy of the stored "Now Playing" message info,
// or nil if none is stored.
func (p *PlayerState) NowPlayingMessage() *NowPlayingMessage {
	if p.nowPlayingMessage == nil {
		return nil
	}
	msg := *p.nowPlayingMessage
	return &msg
}

// SetNowPlayingMessage stores the "Now Playing" message info for later deletion.
func (p *PlayerState) SetNowPlayingMessage(channelID, messageID snowflake.ID) {
	p.nowPlayingMessage = &NowPlayingMessage{
		ChannelID: channelID,
		MessageID: messageID,
	}
}

// ClearNowPlayingMessage clears the stored "Now Playing" message info.
func (p *PlayerState) ClearNowPlayingMessage() {
	p.nowPlayingMessage = nil
}

// PlayerStateRepository stores and retrieves per-guild player states.
type PlayerStateRepository interface {
	// Get returns the PlayerState for the given guild, or nil if none exists.
	Get(guildID snowflake.ID) *PlayerState

	// Save stores the PlayerState.
	Save(state *PlayerState)

	// Delete removes the PlayerState for the given guild.
	Delete(guildID snowflake.ID)
}
