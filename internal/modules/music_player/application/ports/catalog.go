package ports

import (
	"context"
)

// Record kinds emitted by the catalog source. Upstream result pages interleave
// different renderer kinds (mixes, radios, channels); consumers filter on the
// kind they expect before normalizing.
const (
	RecordKindVideo         = "video"
	RecordKindPlaylistVideo = "playlistVideo"
	RecordKindPlaylist      = "playlist"
	RecordKindRadio         = "radio"
)

// Thumbnail is one entry of an upstream thumbnail list.
type Thumbnail struct {
	URL    string
	Width  int
	Height int
}

// Video is a raw catalog record for a single video, as reported by the
// upstream API. Optional fields may be zero; normalization fills fallbacks.
type Video struct {
	ID              string
	Kind            string // one of the RecordKind constants
	Title           string
	Author          string
	AuthorURL       string
	DurationSeconds int // 0 when upstream reports none (live broadcasts)
	Thumbnails      []Thumbnail
	IsLive          bool
}

// PlaylistMetadata is the playlist-level metadata carried by the first page of
// a playlist fetch. Later pages carry none.
type PlaylistMetadata struct {
	Title       string
	Description string
	AuthorName  string
	AuthorURL   string
	Thumbnails  []Thumbnail
}

// PlaylistPage is one page of a playlist fetch. Continuation is the opaque,
// single-use token for the next page; empty means the playlist is exhausted.
type PlaylistPage struct {
	Metadata     *PlaylistMetadata // nil on continuation pages
	Videos       []Video
	Continuation string
}

// CatalogSource is the upstream metadata and search API. Implementations do
// not retry and do not cache; a failed call is reported as-is.
type CatalogSource interface {
	// Search returns raw records matching the text query.
	Search(ctx context.Context, text string) ([]Video, error)

	// VideoDetail returns the full record for a single video.
	VideoDetail(ctx context.Context, id string) (*Video, error)

	// PlaylistPage returns the first page of a playlist, including metadata.
	PlaylistPage(ctx context.Context, playlistID string) (*PlaylistPage, error)

	// PlaylistContinuation returns a follow-up page for a continuation token.
	// Tokens are stateful cursors: each is obtained from the previous page and
	// must be used exactly once.
	PlaylistContinuation(ctx context.Context, token string) (*PlaylistPage, error)
}
