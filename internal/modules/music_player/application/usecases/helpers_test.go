package usecases

import (
	"context"
	"sync"

	"github.com/disgoorg/snowflake/v2"

	"github.com/itsmaat/tunebot/internal/modules/music_player/application/ports"
	"github.com/itsmaat/tunebot/internal/modules/music_player/domain"
)

// fakeCatalog is a hand-rolled CatalogSource double. Detail fetches run
// concurrently during search resolution, so call tracking is mutex-guarded.
type fakeCatalog struct {
	mu sync.Mutex

	searchRecords []ports.Video
	searchErr     error
	searchCalls   int

	details     map[string]*ports.Video
	detailErrs  map[string]error
	detailCalls []string

	firstPage *ports.PlaylistPage
	pageErr   error
	pageCalls int

	continuations    map[string]*ports.PlaylistPage
	continuationErrs map[string]error
	tokensUsed       []string
}

func (f *fakeCatalog) Search(_ context.Context, _ string) ([]ports.Video, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.searchCalls++
	if f.searchErr != nil {
		return nil, f.searchErr
	}
	return f.searchRecords, nil
}

func (f *fakeCatalog) VideoDetail(_ context.Context, id string) (*ports.Video, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.detailCalls = append(f.detailCalls, id)
	if err := f.detailErrs[id]; err != nil {
		return nil, err
	}
	if detail, ok := f.details[id]; ok {
		return detail, nil
	}
	// Default: echo a minimal record so tests only specify what they assert.
	return &ports.Video{ID: id, Kind: ports.RecordKindVideo, Title: "title " + id}, nil
}

func (f *fakeCatalog) PlaylistPage(_ context.Context, _ string) (*ports.PlaylistPage, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.pageCalls++
	if f.pageErr != nil {
		return nil, f.pageErr
	}
	return f.firstPage, nil
}

func (f *fakeCatalog) PlaylistContinuation(_ context.Context, token string) (*ports.PlaylistPage, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tokensUsed = append(f.tokensUsed, token)
	if err := f.continuationErrs[token]; err != nil {
		return nil, err
	}
	return f.continuations[token], nil
}

// fakeCanonicalizer resolves links from a fixed table, returning the input
// unchanged for unknown links.
type fakeCanonicalizer struct {
	resolved map[string]string
	calls    []string
}

func (f *fakeCanonicalizer) ResolveFinalURL(_ context.Context, raw string) string {
	f.calls = append(f.calls, raw)
	if final, ok := f.resolved[raw]; ok {
		return final
	}
	return raw
}

// fakePlayer records playback commands.
type fakePlayer struct {
	playErr     error
	playedURLs  []string
	stopCalls   int
	pauseCalls  int
	resumeCalls int
}

func (f *fakePlayer) Play(_ context.Context, _ snowflake.ID, track domain.Track) error {
	if f.playErr != nil {
		return f.playErr
	}
	f.playedURLs = append(f.playedURLs, track.URL)
	return nil
}

func (f *fakePlayer) Stop(_ context.Context, _ snowflake.ID) error {
	f.stopCalls++
	return nil
}

func (f *fakePlayer) Pause(_ context.Context, _ snowflake.ID) error {
	f.pauseCalls++
	return nil
}

func (f *fakePlayer) Resume(_ context.Context, _ snowflake.ID) error {
	f.resumeCalls++
	return nil
}

// fakePublisher records published events.
type fakePublisher struct {
	tracksEnqueued   []domain.TracksEnqueuedEvent
	playbackStarted  []domain.PlaybackStartedEvent
	playbackFinished []domain.PlaybackFinishedEvent
	trackEnded       []domain.TrackEndedEvent
	queueCleared     []domain.QueueClearedEvent
}

func (f *fakePublisher) PublishTracksEnqueued(e domain.TracksEnqueuedEvent) {
	f.tracksEnqueued = append(f.tracksEnqueued, e)
}

func (f *fakePublisher) PublishPlaybackStarted(e domain.PlaybackStartedEvent) {
	f.playbackStarted = append(f.playbackStarted, e)
}

func (f *fakePublisher) PublishPlaybackFinished(e domain.PlaybackFinishedEvent) {
	f.playbackFinished = append(f.playbackFinished, e)
}

func (f *fakePublisher) PublishTrackEnded(e domain.TrackEndedEvent) {
	f.trackEnded = append(f.trackEnded, e)
}

func (f *fakePublisher) PublishQueueCleared(e domain.QueueClearedEvent) {
	f.queueCleared = append(f.queueCleared, e)
}

// fakeVoiceConnection records joins and leaves.
type fakeVoiceConnection struct {
	joinErr    error
	joined     []snowflake.ID
	leaveCalls int
}

func (f *fakeVoiceConnection) JoinChannel(_ context.Context, _, channelID snowflake.ID) error {
	if f.joinErr != nil {
		return f.joinErr
	}
	f.joined = append(f.joined, channelID)
	return nil
}

func (f *fakeVoiceConnection) LeaveChannel(_ context.Context, _ snowflake.ID) error {
	f.leaveCalls++
	return nil
}

// fakeVoiceState reports a fixed user channel.
type fakeVoiceState struct {
	userChannel *snowflake.ID
}

func (f *fakeVoiceState) UserVoiceChannel(_, _ snowflake.ID) (*snowflake.ID, error) {
	return f.userChannel, nil
}

// memoryRepo is a minimal in-memory PlayerStateRepository for tests.
type memoryRepo struct {
	states map[snowflake.ID]*domain.PlayerState
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{states: make(map[snowflake.ID]*domain.PlayerState)}
}

func (r *memoryRepo) Get(guildID snowflake.ID) *domain.PlayerState {
	return r.states[guildID]
}

func (r *memoryRepo) Save(state *domain.PlayerState) {
	r.states[state.GuildID()] = state
}

func (r *memoryRepo) Delete(guildID snowflake.ID) {
	delete(r.states, guildID)
}

// connectedState creates and stores a player state, returning it for setup.
func connectedState(repo *memoryRepo, guildID snowflake.ID) *domain.PlayerState {
	state := domain.NewPlayerState(guildID, snowflake.ID(100), snowflake.ID(200))
	repo.Save(state)
	return state
}

func videoRecord(id string, durationSeconds int) ports.Video {
	return ports.Video{
		ID:              id,
		Kind:            ports.RecordKindVideo,
		Title:           "title " + id,
		Author:          "author " + id,
		DurationSeconds: durationSeconds,
	}
}

func playlistVideoRecord(id string) ports.Video {
	return ports.Video{
		ID:    id,
		Kind:  ports.RecordKindPlaylistVideo,
		Title: "title " + id,
	}
}
