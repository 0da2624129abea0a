package domain

import (
	"strconv"
	"time"

	"github.com/disgoorg/snowflake/v2"
)

// VideoID is a YouTube video identifier (the "v" parameter of a watch URL).
type VideoID string

// WatchURL returns the canonical watch URL for the video.
func (id VideoID) WatchURL() string {
	return "https://www.youtube.com/watch?v=" + string(id)
}

// Track represents a playable YouTube video resolved from a query.
type Track struct {
	ID                 VideoID
	Title              string
	Author             string // empty when the upstream record has no channel info
	URL                string // canonical watch URL, derived from ID
	DurationMs         int64  // 0 for live broadcasts
	ThumbnailURL       string
	IsLive             bool
	RequesterID        snowflake.ID // Discord user who requested the track
	RequesterName      string
	RequesterAvatarURL string
	Raw                any // unmodified upstream catalog record, kept for the streaming layer
}

// IsValid returns true if the track can enter a result set.
// A track without an ID must never reach a collection.
func (t *Track) IsValid() bool {
	return t.ID != ""
}

// Duration returns the track duration as a time.Duration.
func (t *Track) Duration() time.Duration {
	return time.Duration(t.DurationMs) * time.Millisecond
}

// FormattedDuration returns the duration as a human-readable string (mm:ss or hh:mm:ss).
func (t *Track) FormattedDuration() string {
	if t.IsLive {
		return "LIVE"
	}

	totalSeconds := int(t.DurationMs / 1000)
	hours := totalSeconds / 3600
	minutes := (totalSeconds % 3600) / 60
	seconds := totalSeconds % 60

	if hours > 0 {
		return pad(hours) + ":" + pad(minutes) + ":" + pad(seconds)
	}
	return pad(minutes) + ":" + pad(seconds)
}

func pad(n int) string {
	if n < 10 {
		return "0" + strconv.Itoa(n)
	}
	return strconv.Itoa(n)
}
