package infrastructure

import (
	"strconv"
	"strings"

	"github.com/itsmaat/tunebot/internal/modules/music_player/application/ports"
)

// Innertube responses are deeply nested renderer trees. The types below model
// only the slices of the tree this client reads; everything else is ignored
// by the JSON decoder.

type textRuns struct {
	SimpleText string `json:"simpleText"`
	Runs       []struct {
		Text string `json:"text"`
	} `json:"runs"`
}

func (t textRuns) text() string {
	if t.SimpleText != "" {
		return t.SimpleText
	}
	var b strings.Builder
	for _, run := range t.Runs {
		b.WriteString(run.Text)
	}
	return b.String()
}

type thumbnailList []struct {
	URL    string `json:"url"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

func (l thumbnailList) toPorts() []ports.Thumbnail {
	out := make([]ports.Thumbnail, 0, len(l))
	for _, t := range l {
		out = append(out, ports.Thumbnail{URL: t.URL, Width: t.Width, Height: t.Height})
	}
	return out
}

type bylineText struct {
	Runs []struct {
		Text               string `json:"text"`
		NavigationEndpoint struct {
			BrowseEndpoint struct {
				CanonicalBaseURL string `json:"canonicalBaseUrl"`
			} `json:"browseEndpoint"`
		} `json:"navigationEndpoint"`
	} `json:"runs"`
}

func (b bylineText) name() string {
	if len(b.Runs) == 0 {
		return ""
	}
	return b.Runs[0].Text
}

func (b bylineText) channelURL() string {
	if len(b.Runs) == 0 {
		return ""
	}
	base := b.Runs[0].NavigationEndpoint.BrowseEndpoint.CanonicalBaseURL
	if base == "" {
		return ""
	}
	return "https://www.youtube.com" + base
}

// search

type searchResponse struct {
	Contents struct {
		TwoColumnSearchResultsRenderer struct {
			PrimaryContents struct {
				SectionListRenderer struct {
					Contents []struct {
						ItemSectionRenderer *struct {
							Contents []searchItem `json:"contents"`
						} `json:"itemSectionRenderer"`
					} `json:"contents"`
				} `json:"sectionListRenderer"`
			} `json:"primaryContents"`
		} `json:"twoColumnSearchResultsRenderer"`
	} `json:"contents"`
}

type searchItem struct {
	VideoRenderer    *videoRenderer    `json:"videoRenderer"`
	RadioRenderer    *listLikeRenderer `json:"radioRenderer"`
	PlaylistRenderer *listLikeRenderer `json:"playlistRenderer"`
}

// toRecord maps a search item onto a raw catalog record. Renderer kinds this
// client does not understand are dropped here; known non-video kinds are kept
// so the caller's kind filter stays meaningful.
func (i searchItem) toRecord() (ports.Video, bool) {
	switch {
	case i.VideoRenderer != nil:
		return i.VideoRenderer.toRecord(), true
	case i.RadioRenderer != nil:
		return ports.Video{
			ID:    i.RadioRenderer.PlaylistID,
			Kind:  ports.RecordKindRadio,
			Title: i.RadioRenderer.Title.text(),
		}, true
	case i.PlaylistRenderer != nil:
		return ports.Video{
			ID:    i.PlaylistRenderer.PlaylistID,
			Kind:  ports.RecordKindPlaylist,
			Title: i.PlaylistRenderer.Title.text(),
		}, true
	default:
		return ports.Video{}, false
	}
}

type videoRenderer struct {
	VideoID    string   `json:"videoId"`
	Title      textRuns `json:"title"`
	OwnerText  bylineText `json:"ownerText"`
	LengthText textRuns `json:"lengthText"`
	Thumbnail  struct {
		Thumbnails thumbnailList `json:"thumbnails"`
	} `json:"thumbnail"`
	ThumbnailOverlays []struct {
		ThumbnailOverlayTimeStatusRenderer *struct {
			Style string `json:"style"`
		} `json:"thumbnailOverlayTimeStatusRenderer"`
	} `json:"thumbnailOverlays"`
}

func (r videoRenderer) toRecord() ports.Video {
	return ports.Video{
		ID:              r.VideoID,
		Kind:            ports.RecordKindVideo,
		Title:           r.Title.text(),
		Author:          r.OwnerText.name(),
		AuthorURL:       r.OwnerText.channelURL(),
		DurationSeconds: parseDurationText(r.LengthText.text()),
		Thumbnails:      r.Thumbnail.Thumbnails.toPorts(),
		IsLive:          r.isLive(),
	}
}

func (r videoRenderer) isLive() bool {
	for _, overlay := range r.ThumbnailOverlays {
		status := overlay.ThumbnailOverlayTimeStatusRenderer
		if status != nil && status.Style == "LIVE" {
			return true
		}
	}
	return false
}

type listLikeRenderer struct {
	PlaylistID string   `json:"playlistId"`
	Title      textRuns `json:"title"`
}

// player

type playerResponse struct {
	PlayabilityStatus struct {
		Status string `json:"status"`
	} `json:"playabilityStatus"`
	VideoDetails struct {
		VideoID       string `json:"videoId"`
		Title         string `json:"title"`
		Author        string `json:"author"`
		ChannelID     string `json:"channelId"`
		LengthSeconds string `json:"lengthSeconds"`
		IsLiveContent bool   `json:"isLiveContent"`
		Thumbnail     struct {
			Thumbnails thumbnailList `json:"thumbnails"`
		} `json:"thumbnail"`
	} `json:"videoDetails"`
}

// browse (playlists)

type browseResponse struct {
	Header struct {
		PlaylistHeaderRenderer *struct {
			Title           textRuns   `json:"title"`
			DescriptionText textRuns   `json:"descriptionText"`
			OwnerText       bylineText `json:"ownerText"`
			PlaylistHeaderBanner struct {
				HeroPlaylistThumbnailRenderer struct {
					Thumbnail struct {
						Thumbnails thumbnailList `json:"thumbnails"`
					} `json:"thumbnail"`
				} `json:"heroPlaylistThumbnailRenderer"`
			} `json:"playlistHeaderBanner"`
		} `json:"playlistHeaderRenderer"`
	} `json:"header"`
	Alerts []struct {
		AlertRenderer struct {
			Type string   `json:"type"`
			Text textRuns `json:"text"`
		} `json:"alertRenderer"`
	} `json:"alerts"`
	Contents struct {
		TwoColumnBrowseResultsRenderer struct {
			Tabs []struct {
				TabRenderer struct {
					Content struct {
						SectionListRenderer struct {
							Contents []struct {
								ItemSectionRenderer *struct {
									Contents []struct {
										PlaylistVideoListRenderer *struct {
											Contents []playlistItem `json:"contents"`
										} `json:"playlistVideoListRenderer"`
									} `json:"contents"`
								} `json:"itemSectionRenderer"`
							} `json:"contents"`
						} `json:"sectionListRenderer"`
					} `json:"content"`
				} `json:"tabRenderer"`
			} `json:"tabs"`
		} `json:"twoColumnBrowseResultsRenderer"`
	} `json:"contents"`
	OnResponseReceivedActions []struct {
		AppendContinuationItemsAction *struct {
			ContinuationItems []playlistItem `json:"continuationItems"`
		} `json:"appendContinuationItemsAction"`
	} `json:"onResponseReceivedActions"`
}

func (r browseResponse) playlistMetadata() *ports.PlaylistMetadata {
	header := r.Header.PlaylistHeaderRenderer
	if header == nil {
		return nil
	}
	return &ports.PlaylistMetadata{
		Title:       header.Title.text(),
		Description: header.DescriptionText.text(),
		AuthorName:  header.OwnerText.name(),
		AuthorURL:   header.OwnerText.channelURL(),
		Thumbnails:  header.PlaylistHeaderBanner.HeroPlaylistThumbnailRenderer.Thumbnail.Thumbnails.toPorts(),
	}
}

func (r browseResponse) playlistItems() []playlistItem {
	for _, tab := range r.Contents.TwoColumnBrowseResultsRenderer.Tabs {
		for _, section := range tab.TabRenderer.Content.SectionListRenderer.Contents {
			if section.ItemSectionRenderer == nil {
				continue
			}
			for _, content := range section.ItemSectionRenderer.Contents {
				if content.PlaylistVideoListRenderer != nil {
					return content.PlaylistVideoListRenderer.Contents
				}
			}
		}
	}
	return nil
}

func (r browseResponse) continuationItems() []playlistItem {
	for _, action := range r.OnResponseReceivedActions {
		if action.AppendContinuationItemsAction != nil {
			return action.AppendContinuationItemsAction.ContinuationItems
		}
	}
	return nil
}

type playlistItem struct {
	PlaylistVideoRenderer    *playlistVideoRenderer `json:"playlistVideoRenderer"`
	ContinuationItemRenderer *struct {
		ContinuationEndpoint struct {
			ContinuationCommand struct {
				Token string `json:"token"`
			} `json:"continuationCommand"`
		} `json:"continuationEndpoint"`
	} `json:"continuationItemRenderer"`
}

type playlistVideoRenderer struct {
	VideoID         string     `json:"videoId"`
	Title           textRuns   `json:"title"`
	ShortBylineText bylineText `json:"shortBylineText"`
	LengthSeconds   string     `json:"lengthSeconds"`
	Thumbnail       struct {
		Thumbnails thumbnailList `json:"thumbnails"`
	} `json:"thumbnail"`
}

func (r playlistVideoRenderer) toRecord() ports.Video {
	lengthSeconds, _ := strconv.Atoi(r.LengthSeconds)
	return ports.Video{
		ID:              r.VideoID,
		Kind:            ports.RecordKindPlaylistVideo,
		Title:           r.Title.text(),
		Author:          r.ShortBylineText.name(),
		AuthorURL:       r.ShortBylineText.channelURL(),
		DurationSeconds: lengthSeconds,
		Thumbnails:      r.Thumbnail.Thumbnails.toPorts(),
		IsLive:          lengthSeconds == 0,
	}
}

// collectPlaylistItems splits a page's item list into member records and the
// continuation token, preserving order. Non-member renderers are ignored.
func collectPlaylistItems(items []playlistItem) ([]ports.Video, string) {
	var videos []ports.Video
	var continuation string
	for _, item := range items {
		switch {
		case item.PlaylistVideoRenderer != nil:
			videos = append(videos, item.PlaylistVideoRenderer.toRecord())
		case item.ContinuationItemRenderer != nil:
			continuation = item.ContinuationItemRenderer.ContinuationEndpoint.ContinuationCommand.Token
		}
	}
	return videos, continuation
}

// parseDurationText converts "3:33" or "1:02:03" into seconds. Unparseable
// text (including the empty text of live badges) yields 0.
func parseDurationText(text string) int {
	if text == "" {
		return 0
	}
	parts := strings.Split(text, ":")
	seconds := 0
	for _, part := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return 0
		}
		seconds = seconds*60 + n
	}
	return seconds
}
