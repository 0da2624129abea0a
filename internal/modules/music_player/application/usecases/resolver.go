package usecases

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/itsmaat/tunebot/internal/modules/music_player/application/ports"
	"github.com/itsmaat/tunebot/internal/modules/music_player/domain"
)

const (
	// searchResultLimit caps how many search candidates are resolved to full
	// tracks.
	searchResultLimit = 10

	// detailFetchWorkers bounds concurrent detail fetches against the catalog
	// during search resolution. Result order is preserved regardless.
	detailFetchWorkers = 4
)

// ResolveInput contains the input for the Resolve use case.
type ResolveInput struct {
	Query     string
	Requester Requester
}

// ResolveOutput contains the result of a resolution: either a playlist with
// its tracks, or a flat track list with no playlist.
type ResolveOutput struct {
	Playlist *domain.Playlist
	Tracks   []domain.Track
}

// IsEmpty returns true when the resolution produced no playable tracks.
func (o *ResolveOutput) IsEmpty() bool {
	return len(o.Tracks) == 0
}

// ResolverService turns a raw user query into playable tracks. It classifies
// the query, expands ambiguous short links once, and dispatches to the search,
// single-video, or playlist path.
//
// Resolve reports failures as typed errors (domain.ErrInvalidReference,
// ErrPlaylistNotFound, ErrVideoUnavailable) so callers can distinguish
// "nothing found" from "cannot process this input". The presentation layer is
// the absorption boundary: it logs and answers with an empty result instead
// of surfacing resolution errors to Discord users.
type ResolverService struct {
	catalog       ports.CatalogSource
	canonicalizer ports.LinkCanonicalizer
}

// NewResolverService creates a new ResolverService.
func NewResolverService(
	catalog ports.CatalogSource,
	canonicalizer ports.LinkCanonicalizer,
) *ResolverService {
	return &ResolverService{
		catalog:       catalog,
		canonicalizer: canonicalizer,
	}
}

// Resolve resolves a query into tracks.
func (s *ResolverService) Resolve(
	ctx context.Context,
	input ResolveInput,
) (*ResolveOutput, error) {
	classification, err := domain.Classify(input.Query)
	if err != nil {
		return nil, err
	}

	// A bare short link cannot be classified from its own form. Expand it via
	// the canonicalizer and classify the result. Single pass only: a short
	// link that expands to another short link is rejected.
	if classification.Kind == domain.QueryShortLink {
		resolved := s.canonicalizer.ResolveFinalURL(ctx, classification.Raw)
		classification, err = domain.Classify(resolved)
		if err != nil {
			return nil, err
		}
		if classification.Kind == domain.QueryShortLink {
			return nil, fmt.Errorf("%w: short link did not expand: %q",
				domain.ErrInvalidReference, input.Query)
		}
	}

	switch classification.Kind {
	case domain.QueryVideo:
		track, err := s.resolveVideo(ctx, classification.VideoID, input.Requester)
		if err != nil {
			return nil, err
		}
		return &ResolveOutput{Tracks: []domain.Track{*track}}, nil

	case domain.QueryPlaylist:
		return s.resolvePlaylist(ctx, classification.PlaylistID, input.Requester)

	default: // domain.QuerySearch
		tracks, err := s.resolveSearch(ctx, input.Query, input.Requester)
		if err != nil {
			return nil, err
		}
		return &ResolveOutput{Tracks: tracks}, nil
	}
}

// Suggest returns lightweight search results for autocomplete. Unlike the
// search path of Resolve it issues no per-video detail fetches; the records
// from the search page are normalized as-is.
func (s *ResolverService) Suggest(
	ctx context.Context,
	text string,
	limit int,
) ([]domain.Track, error) {
	if text == "" {
		return nil, nil
	}

	records, err := s.catalog.Search(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("search %q: %w", text, err)
	}

	videos := filterKind(records, ports.RecordKindVideo)
	if limit > 0 && len(videos) > limit {
		videos = videos[:limit]
	}

	tracks := make([]domain.Track, 0, len(videos))
	for _, v := range videos {
		track := normalizeVideo(v, Requester{})
		if track.IsValid() {
			tracks = append(tracks, track)
		}
	}
	return tracks, nil
}

// resolveSearch runs the catalog search and fetches full detail for the top
// candidates. Detail fetches run with bounded concurrency; a failed fetch
// drops that one candidate instead of aborting the whole search, and result
// order follows search ranking.
func (s *ResolverService) resolveSearch(
	ctx context.Context,
	text string,
	requester Requester,
) ([]domain.Track, error) {
	records, err := s.catalog.Search(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("search %q: %w", text, err)
	}

	candidates := filterKind(records, ports.RecordKindVideo)
	if len(candidates) > searchResultLimit {
		candidates = candidates[:searchResultLimit]
	}

	resolved := make([]*domain.Track, len(candidates))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(detailFetchWorkers)
	for i, candidate := range candidates {
		i, candidate := i, candidate
		g.Go(func() error {
			detail, err := s.catalog.VideoDetail(gctx, candidate.ID)
			if err != nil {
				// Recoverable: drop this candidate, keep the rest.
				slog.Warn("dropping search candidate",
					"video_id", candidate.ID, "error", err)
				return nil
			}
			track := normalizeVideo(*detail, requester)
			if track.ThumbnailURL == "" {
				track.ThumbnailURL = firstThumbnailURL(candidate.Thumbnails)
			}
			if track.IsValid() {
				resolved[i] = &track
			}
			return nil
		})
	}
	// The closures never return errors; Wait only reports context cancellation.
	if err := g.Wait(); err != nil {
		return nil, err
	}

	tracks := make([]domain.Track, 0, len(resolved))
	for _, t := range resolved {
		if t != nil {
			tracks = append(tracks, *t)
		}
	}
	return tracks, nil
}

// resolveVideo fetches and normalizes a single video.
func (s *ResolverService) resolveVideo(
	ctx context.Context,
	id domain.VideoID,
	requester Requester,
) (*domain.Track, error) {
	detail, err := s.catalog.VideoDetail(ctx, string(id))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrVideoUnavailable, err)
	}

	track := normalizeVideo(*detail, requester)
	if !track.IsValid() {
		return nil, fmt.Errorf("%w: record for %s has no id", ErrVideoUnavailable, id)
	}
	return &track, nil
}

// resolvePlaylist materializes a playlist by walking its continuation chain.
// Playlist metadata comes from the first page only. Each continuation fetch
// consumes the token returned by the previous page; the upstream source
// signals termination by omitting the token. Pages may interleave non-video
// records (mix and radio headers), which are filtered out before normalizing.
func (s *ResolverService) resolvePlaylist(
	ctx context.Context,
	playlistID string,
	requester Requester,
) (*ResolveOutput, error) {
	page, err := s.catalog.PlaylistPage(ctx, playlistID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPlaylistNotFound, err)
	}

	playlist := normalizePlaylist(playlistID, page.Metadata)

	for {
		for _, v := range filterKind(page.Videos, ports.RecordKindPlaylistVideo) {
			playlist.Append(normalizeVideo(v, requester))
		}

		if page.Continuation == "" {
			break
		}

		page, err = s.catalog.PlaylistContinuation(ctx, page.Continuation)
		if err != nil {
			// Keep what was fully fetched so far rather than discarding the
			// whole collection over a failed later page.
			slog.Warn("playlist continuation failed",
				"playlist_id", playlistID, "loaded", playlist.Len(), "error", err)
			break
		}
	}

	if playlist.Len() == 0 {
		// Resolvable but empty: a valid terminal state, reported as an empty
		// result rather than an error.
		return &ResolveOutput{}, nil
	}

	return &ResolveOutput{
		Playlist: &playlist,
		Tracks:   playlist.Tracks,
	}, nil
}
