package domain

import (
	"errors"
	"fmt"
	"net/url"
	"regexp"
	"strings"
)

// ErrInvalidReference is returned when an input is recognized as a YouTube URL
// but cannot be resolved to a video or playlist identifier. It is distinct from
// "not a URL": free text classifies as a search, a broken YouTube link fails.
var ErrInvalidReference = errors.New("invalid youtube reference")

// QueryKind classifies a raw user query.
type QueryKind int

const (
	// QuerySearch is free text to run through catalog search.
	QuerySearch QueryKind = iota
	// QueryVideo references a single video.
	QueryVideo
	// QueryPlaylist references a playlist.
	QueryPlaylist
	// QueryShortLink is a short link that must be expanded before it can be
	// classified (no video ID is present in the short form itself).
	QueryShortLink
)

// Classification is the result of classifying a raw query string.
// It is transient: produced by Classify, consumed by the resolver, never stored.
type Classification struct {
	Kind       QueryKind
	VideoID    VideoID
	PlaylistID string
	Raw        string // original input, needed for short-link expansion
}

var videoIDPattern = regexp.MustCompile(`^[A-Za-z0-9_-]{11}$`)

// fullHosts are the canonical YouTube hosts. youtu.be is handled separately
// because its links carry the video ID in the path and are never playlists.
var fullHosts = map[string]bool{
	"youtube.com":       true,
	"www.youtube.com":   true,
	"m.youtube.com":     true,
	"music.youtube.com": true,
}

func isShortHost(hostname string) bool {
	return hostname == "youtu.be" || strings.HasSuffix(hostname, ".youtu.be")
}

// Classify determines what a raw query string refers to.
//
// Anything that does not parse as an absolute http(s) URL is a search query.
// URLs on YouTube hosts resolve to a video or playlist reference, or fail with
// ErrInvalidReference when the path matches no known pattern. URLs on other
// hosts also fail with ErrInvalidReference: this resolver speaks only the
// YouTube protocol.
//
// A youtu.be link with a "list" parameter classifies as a single video, not a
// playlist. Short-link playlist membership is deliberately out of scope; see
// DESIGN.md.
func Classify(input string) (Classification, error) {
	input = strings.TrimSpace(input)

	u, err := url.Parse(input)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return Classification{Kind: QuerySearch, Raw: input}, nil
	}

	hostname := strings.ToLower(u.Hostname())

	if isShortHost(hostname) {
		return classifyShortLink(u, input)
	}

	if !fullHosts[hostname] {
		return Classification{}, fmt.Errorf("%w: unsupported host %q", ErrInvalidReference, hostname)
	}

	if list := u.Query().Get("list"); list != "" {
		return Classification{Kind: QueryPlaylist, PlaylistID: list, Raw: input}, nil
	}

	if v := u.Query().Get("v"); v != "" {
		return Classification{Kind: QueryVideo, VideoID: VideoID(v), Raw: input}, nil
	}

	// Path-addressed video forms: /shorts/<id>, /live/<id>, /embed/<id>.
	if id, ok := pathVideoID(u.Path); ok {
		return Classification{Kind: QueryVideo, VideoID: id, Raw: input}, nil
	}

	return Classification{}, fmt.Errorf("%w: no video or playlist in %q", ErrInvalidReference, input)
}

func classifyShortLink(u *url.URL, input string) (Classification, error) {
	segment := lastPathSegment(u.Path)
	if segment == "" {
		// Bare short link; must be expanded by the canonicalizer first.
		return Classification{Kind: QueryShortLink, Raw: input}, nil
	}
	if !videoIDPattern.MatchString(segment) {
		return Classification{}, fmt.Errorf("%w: short link carries no video id: %q", ErrInvalidReference, input)
	}
	return Classification{Kind: QueryVideo, VideoID: VideoID(segment), Raw: input}, nil
}

func pathVideoID(path string) (VideoID, bool) {
	for _, prefix := range []string{"/shorts/", "/live/", "/embed/"} {
		if strings.HasPrefix(path, prefix) {
			if segment := lastPathSegment(path); videoIDPattern.MatchString(segment) {
				return VideoID(segment), true
			}
		}
	}
	return "", false
}

func lastPathSegment(path string) string {
	segments := strings.Split(strings.Trim(path, "/"), "/")
	return segments[len(segments)-1]
}
