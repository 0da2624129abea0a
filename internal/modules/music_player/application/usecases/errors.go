package usecases

import "errors"

// Service errors for the music player module.
var (
	// ErrNotConnected is returned when an operation requires the bot to be in a voice channel.
	ErrNotConnected = errors.New("not connected to a voice channel")

	// ErrUserNotInVoice is returned when the user is not in a voice channel.
	ErrUserNotInVoice = errors.New("you must be in a voice channel")

	// ErrNotPlaying is returned when no track is currently playing.
	ErrNotPlaying = errors.New("nothing is currently playing")

	// ErrAlreadyPaused is returned when trying to pause while already paused.
	ErrAlreadyPaused = errors.New("playback is already paused")

	// ErrNotPaused is returned when trying to resume while not paused.
	ErrNotPaused = errors.New("playback is not paused")

	// ErrNoResults is returned when a resolution yields no playable tracks.
	ErrNoResults = errors.New("no results found")

	// ErrPlaylistNotFound is returned when a playlist identifier cannot be
	// resolved at all. An existing-but-empty playlist is not an error.
	ErrPlaylistNotFound = errors.New("playlist not found")

	// ErrVideoUnavailable is returned when a single video detail fetch fails.
	// During search resolution it is recoverable: the one candidate is dropped.
	ErrVideoUnavailable = errors.New("video unavailable")

	// ErrStreamUnavailable is returned when the streaming provider cannot
	// produce a stream for a resolved track. Unlike resolution errors it is
	// propagated, never absorbed.
	ErrStreamUnavailable = errors.New("stream unavailable")

	// ErrQueueEmpty is returned when the queue is empty.
	ErrQueueEmpty = errors.New("the queue is empty")

	// ErrNothingToClear is returned when there are no upcoming tracks to clear.
	ErrNothingToClear = errors.New("nothing to clear")

	// ErrInvalidPosition is returned when an invalid queue position is specified.
	ErrInvalidPosition = errors.New("invalid queue position")

	// ErrIsCurrentTrack is returned when trying to remove the currently playing
	// track. The handler should delegate to Skip instead.
	ErrIsCurrentTrack = errors.New("cannot remove current track, use skip instead")
)
