package domain

// Sentinel values used when a playlist's metadata cannot be resolved from any
// upstream source. They are display strings, not errors: playlist resolution
// never fails on missing metadata.
const (
	UnknownTitle       = "UNKNOWN TITLE"
	UnknownAuthor      = "UNKNOWN AUTHOR"
	UnknownDescription = "UNKNOWN DESCRIPTION"
)

// Playlist represents an ordered, named collection of tracks.
// Tracks preserves upstream pagination order: page order first, then
// within-page order.
type Playlist struct {
	ID           string
	Title        string
	URL          string
	Description  string
	ThumbnailURL string
	AuthorName   string
	AuthorURL    string
	Tracks       []Track
}

// Append adds tracks to the end of the playlist, skipping any that cannot
// yield a usable ID.
func (p *Playlist) Append(tracks ...Track) {
	for _, t := range tracks {
		if t.IsValid() {
			p.Tracks = append(p.Tracks, t)
		}
	}
}

// Len returns the number of tracks in the playlist.
func (p *Playlist) Len() int {
	return len(p.Tracks)
}

// FirstNonEmpty returns the first non-empty value from the given chain.
// Fallback chains for playlist and track metadata are expressed as ordered
// value lists so the single-video and playlist-entry paths cannot drift.
func FirstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
