package usecases

import (
	"github.com/disgoorg/snowflake/v2"

	"github.com/itsmaat/tunebot/internal/modules/music_player/application/ports"
	"github.com/itsmaat/tunebot/internal/modules/music_player/domain"
)

// Requester identifies the user a resolution is performed for. It is carried
// through to the resolved tracks unchanged.
type Requester struct {
	ID        snowflake.ID
	Name      string
	AvatarURL string
}

// normalizeVideo maps one raw catalog record into a Track. It never fails:
// every optional field falls back through a fixed chain, and a missing
// duration means a live broadcast, not an error. The function is pure, so
// normalizing the same record twice yields identical tracks.
//
// Fallbacks: title <- upstream title <- "YouTube:<id>";
// author <- upstream author <- empty; thumbnail <- first of list <- empty.
func normalizeVideo(v ports.Video, requester Requester) domain.Track {
	return domain.Track{
		ID:                 domain.VideoID(v.ID),
		Title:              domain.FirstNonEmpty(v.Title, "YouTube:"+v.ID),
		Author:             v.Author,
		URL:                domain.VideoID(v.ID).WatchURL(),
		DurationMs:         int64(v.DurationSeconds) * 1000,
		ThumbnailURL:       firstThumbnailURL(v.Thumbnails),
		IsLive:             v.IsLive,
		RequesterID:        requester.ID,
		RequesterName:      requester.Name,
		RequesterAvatarURL: requester.AvatarURL,
		Raw:                v,
	}
}

// normalizePlaylist builds a Playlist shell from first-page metadata.
// Each metadata field falls back independently to its "UNKNOWN" sentinel;
// the description additionally falls back through the title.
func normalizePlaylist(id string, meta *ports.PlaylistMetadata) domain.Playlist {
	playlist := domain.Playlist{
		ID:          id,
		URL:         "https://www.youtube.com/playlist?list=" + id,
		Title:       domain.UnknownTitle,
		Description: domain.UnknownDescription,
		AuthorName:  domain.UnknownAuthor,
		AuthorURL:   domain.UnknownAuthor,
	}
	if meta == nil {
		return playlist
	}

	playlist.Title = domain.FirstNonEmpty(meta.Title, domain.UnknownTitle)
	playlist.Description = domain.FirstNonEmpty(meta.Description, meta.Title, domain.UnknownDescription)
	playlist.ThumbnailURL = firstThumbnailURL(meta.Thumbnails)
	playlist.AuthorName = domain.FirstNonEmpty(meta.AuthorName, domain.UnknownAuthor)
	playlist.AuthorURL = domain.FirstNonEmpty(meta.AuthorURL, domain.UnknownAuthor)
	return playlist
}

func firstThumbnailURL(thumbnails []ports.Thumbnail) string {
	if len(thumbnails) == 0 {
		return ""
	}
	return thumbnails[0].URL
}

// filterKind keeps only records of the given kind, preserving order.
func filterKind(videos []ports.Video, kind string) []ports.Video {
	filtered := make([]ports.Video, 0, len(videos))
	for _, v := range videos {
		if v.Kind == kind {
			filtered = append(filtered, v)
		}
	}
	return filtered
}
