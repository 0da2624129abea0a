package domain

import "testing"

func TestVideoID_WatchURL(t *testing.T) {
	id := VideoID("dQw4w9WgXcQ")
	want := "https://www.youtube.com/watch?v=dQw4w9WgXcQ"
	if got := id.WatchURL(); got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestTrack_IsValid(t *testing.T) {
	valid := Track{ID: "dQw4w9WgXcQ"}
	if !valid.IsValid() {
		t.Error("expected track with ID to be valid")
	}

	invalid := Track{Title: "has a title but no id"}
	if invalid.IsValid() {
		t.Error("expected track without ID to be invalid")
	}
}

func TestTrack_FormattedDuration(t *testing.T) {
	tests := []struct {
		name       string
		durationMs int64
		isLive     bool
		want       string
	}{
		{"zero", 0, false, "00:00"},
		{"under a minute", 42_000, false, "00:42"},
		{"minutes and seconds", 213_000, false, "03:33"},
		{"exactly one hour", 3_600_000, false, "01:00:00"},
		{"over an hour", 3_723_000, false, "01:02:03"},
		{"live broadcast", 0, true, "LIVE"},
		{"live with nonzero duration", 5_000, true, "LIVE"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			track := Track{DurationMs: tt.durationMs, IsLive: tt.isLive}
			if got := track.FormattedDuration(); got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}
