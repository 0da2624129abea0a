package usecases

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/disgoorg/snowflake/v2"

	"github.com/itsmaat/tunebot/internal/modules/music_player/domain"
)

const testGuildID = snowflake.ID(1)

func playbackFixture() (*PlaybackService, *memoryRepo, *fakePlayer, *fakePublisher) {
	repo := newMemoryRepo()
	player := &fakePlayer{}
	publisher := &fakePublisher{}
	return NewPlaybackService(repo, player, publisher), repo, player, publisher
}

func enqueueTracks(state *domain.PlayerState, n int) {
	for i := 0; i < n; i++ {
		state.Queue.Add(domain.NewQueueEntry(domain.Track{
			ID:    domain.VideoID(fmt.Sprintf("track%06d", i)),
			Title: fmt.Sprintf("track %d", i),
			URL:   fmt.Sprintf("https://www.youtube.com/watch?v=track%06d", i),
		}))
	}
}

func startPlaying(state *domain.PlayerState) {
	state.Queue.Start()
	state.StartPlayback()
}

func TestPause(t *testing.T) {
	service, repo, player, _ := playbackFixture()
	state := connectedState(repo, testGuildID)
	enqueueTracks(state, 1)
	startPlaying(state)

	if err := service.Pause(context.Background(), PauseInput{GuildID: testGuildID}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !state.IsPaused() {
		t.Error("expected paused state")
	}
	if player.pauseCalls != 1 {
		t.Errorf("expected 1 pause call, got %d", player.pauseCalls)
	}

	err := service.Pause(context.Background(), PauseInput{GuildID: testGuildID})
	if !errors.Is(err, ErrAlreadyPaused) {
		t.Errorf("expected ErrAlreadyPaused, got %v", err)
	}
}

func TestPause_NotConnected(t *testing.T) {
	service, _, _, _ := playbackFixture()

	err := service.Pause(context.Background(), PauseInput{GuildID: testGuildID})
	if !errors.Is(err, ErrNotConnected) {
		t.Errorf("expected ErrNotConnected, got %v", err)
	}
}

func TestPause_NotPlaying(t *testing.T) {
	service, repo, _, _ := playbackFixture()
	connectedState(repo, testGuildID)

	err := service.Pause(context.Background(), PauseInput{GuildID: testGuildID})
	if !errors.Is(err, ErrNotPlaying) {
		t.Errorf("expected ErrNotPlaying, got %v", err)
	}
}

func TestResume(t *testing.T) {
	service, repo, player, _ := playbackFixture()
	state := connectedState(repo, testGuildID)
	enqueueTracks(state, 1)
	startPlaying(state)

	err := service.Resume(context.Background(), ResumeInput{GuildID: testGuildID})
	if !errors.Is(err, ErrNotPaused) {
		t.Errorf("expected ErrNotPaused while playing, got %v", err)
	}

	state.SetPaused(true)
	if err := service.Resume(context.Background(), ResumeInput{GuildID: testGuildID}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if state.IsPaused() {
		t.Error("expected unpaused state")
	}
	if player.resumeCalls != 1 {
		t.Errorf("expected 1 resume call, got %d", player.resumeCalls)
	}
}

func TestSkip_AdvancesToNextTrack(t *testing.T) {
	service, repo, player, _ := playbackFixture()
	state := connectedState(repo, testGuildID)
	enqueueTracks(state, 3)
	startPlaying(state)

	output, err := service.Skip(context.Background(), SkipInput{GuildID: testGuildID})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if output.SkippedTrack == nil || output.SkippedTrack.ID != "track000000" {
		t.Errorf("unexpected skipped track: %+v", output.SkippedTrack)
	}
	if output.NextTrack == nil || output.NextTrack.ID != "track000001" {
		t.Errorf("unexpected next track: %+v", output.NextTrack)
	}
	if len(player.playedURLs) != 1 {
		t.Errorf("expected the next track to be played, got %v", player.playedURLs)
	}
}

// Skip always moves forward even when the current track is looping.
func TestSkip_IgnoresTrackLoop(t *testing.T) {
	service, repo, _, _ := playbackFixture()
	state := connectedState(repo, testGuildID)
	enqueueTracks(state, 2)
	startPlaying(state)
	state.SetLoopMode(domain.LoopModeTrack)

	output, err := service.Skip(context.Background(), SkipInput{GuildID: testGuildID})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if output.NextTrack == nil || output.NextTrack.ID != "track000001" {
		t.Errorf("expected advance past the looping track, got %+v", output.NextTrack)
	}
}

func TestSkip_QueueLoopWrapsAround(t *testing.T) {
	service, repo, _, _ := playbackFixture()
	state := connectedState(repo, testGuildID)
	enqueueTracks(state, 2)
	startPlaying(state)
	state.Queue.Seek(1)
	state.SetLoopMode(domain.LoopModeQueue)

	output, err := service.Skip(context.Background(), SkipInput{GuildID: testGuildID})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if output.NextTrack == nil || output.NextTrack.ID != "track000000" {
		t.Errorf("expected wrap to first track, got %+v", output.NextTrack)
	}
}

func TestSkip_EndOfQueueStops(t *testing.T) {
	service, repo, player, _ := playbackFixture()
	state := connectedState(repo, testGuildID)
	enqueueTracks(state, 1)
	startPlaying(state)

	output, err := service.Skip(context.Background(), SkipInput{GuildID: testGuildID})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if output.NextTrack != nil {
		t.Errorf("expected no next track, got %+v", output.NextTrack)
	}
	if player.stopCalls != 1 {
		t.Errorf("expected player stop, got %d calls", player.stopCalls)
	}
	if !state.IsIdle() {
		t.Error("expected idle state after last track")
	}
}

func TestSkip_NotPlaying(t *testing.T) {
	service, repo, _, _ := playbackFixture()
	connectedState(repo, testGuildID)

	_, err := service.Skip(context.Background(), SkipInput{GuildID: testGuildID})
	if !errors.Is(err, ErrNotPlaying) {
		t.Errorf("expected ErrNotPlaying, got %v", err)
	}
}

func TestSkip_CleansUpNowPlayingMessage(t *testing.T) {
	service, repo, _, publisher := playbackFixture()
	state := connectedState(repo, testGuildID)
	enqueueTracks(state, 2)
	startPlaying(state)
	state.SetNowPlayingMessage(snowflake.ID(200), snowflake.ID(999))

	if _, err := service.Skip(context.Background(), SkipInput{GuildID: testGuildID}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(publisher.playbackFinished) != 1 {
		t.Fatalf("expected 1 cleanup event, got %d", len(publisher.playbackFinished))
	}
	event := publisher.playbackFinished[0]
	if event.LastMessageID == nil || *event.LastMessageID != snowflake.ID(999) {
		t.Errorf("expected message id in cleanup event, got %+v", event)
	}
}

func TestStop(t *testing.T) {
	service, repo, player, _ := playbackFixture()
	state := connectedState(repo, testGuildID)
	enqueueTracks(state, 3)
	startPlaying(state)

	if err := service.Stop(context.Background(), StopInput{GuildID: testGuildID}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !state.IsIdle() {
		t.Error("expected idle state")
	}
	if !state.Queue.IsEmpty() {
		t.Error("expected cleared queue")
	}
	if player.stopCalls != 1 {
		t.Errorf("expected 1 stop call, got %d", player.stopCalls)
	}
}

func TestPlayCurrent_StartsQueue(t *testing.T) {
	service, repo, player, publisher := playbackFixture()
	state := connectedState(repo, testGuildID)
	enqueueTracks(state, 2)

	track, err := service.PlayCurrent(context.Background(), testGuildID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if track == nil || track.ID != "track000000" {
		t.Fatalf("expected first track, got %+v", track)
	}
	if !state.IsPlaybackActive() {
		t.Error("expected active playback")
	}
	if len(player.playedURLs) != 1 {
		t.Errorf("expected 1 play call, got %d", len(player.playedURLs))
	}

	if len(publisher.playbackStarted) != 1 {
		t.Fatalf("expected 1 started event, got %d", len(publisher.playbackStarted))
	}
	event := publisher.playbackStarted[0]
	if event.GuildID != testGuildID || event.Track.ID != "track000000" {
		t.Errorf("unexpected started event: %+v", event)
	}
	if event.NotificationChannelID != state.NotificationChannelID() {
		t.Errorf("expected notification channel in event, got %d", event.NotificationChannelID)
	}
}

func TestPlayCurrent_EmptyQueue(t *testing.T) {
	service, repo, _, _ := playbackFixture()
	connectedState(repo, testGuildID)

	track, err := service.PlayCurrent(context.Background(), testGuildID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if track != nil {
		t.Errorf("expected nil track for empty queue, got %+v", track)
	}
}

func TestPlayCurrent_StreamFailure(t *testing.T) {
	service, repo, player, _ := playbackFixture()
	state := connectedState(repo, testGuildID)
	enqueueTracks(state, 1)
	player.playErr = errors.New("no matches")

	_, err := service.PlayCurrent(context.Background(), testGuildID)
	if !errors.Is(err, ErrStreamUnavailable) {
		t.Fatalf("expected ErrStreamUnavailable, got %v", err)
	}
	if state.IsPlaybackActive() {
		t.Error("expected playback flag reset after failure")
	}
}

func TestSetLoopMode(t *testing.T) {
	service, repo, _, _ := playbackFixture()
	state := connectedState(repo, testGuildID)

	err := service.SetLoopMode(context.Background(), SetLoopModeInput{
		GuildID: testGuildID,
		Mode:    "queue",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if state.LoopMode() != domain.LoopModeQueue {
		t.Errorf("expected queue loop, got %v", state.LoopMode())
	}
}

func TestCycleLoopMode(t *testing.T) {
	service, repo, _, _ := playbackFixture()
	connectedState(repo, testGuildID)

	want := []domain.LoopMode{domain.LoopModeTrack, domain.LoopModeQueue, domain.LoopModeNone}
	for _, expected := range want {
		mode, err := service.CycleLoopMode(context.Background(), testGuildID)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if mode != expected {
			t.Errorf("expected %v, got %v", expected, mode)
		}
	}
}

func TestCycleLoopMode_NotConnected(t *testing.T) {
	service, _, _, _ := playbackFixture()

	_, err := service.CycleLoopMode(context.Background(), testGuildID)
	if !errors.Is(err, ErrNotConnected) {
		t.Errorf("expected ErrNotConnected, got %v", err)
	}
}
