package domain

import "testing"

func testEntries(ids ...string) []QueueEntry {
	entries := make([]QueueEntry, 0, len(ids))
	for _, id := range ids {
		entries = append(entries, NewQueueEntry(Track{ID: VideoID(id)}))
	}
	return entries
}

func TestQueue_StartAndCurrent(t *testing.T) {
	q := NewQueue()

	if q.Start() != nil {
		t.Error("expected nil when starting an empty queue")
	}
	if q.Current() != nil {
		t.Error("expected nil current before start")
	}

	q.Add(testEntries("aaaaaaaaaaa", "bbbbbbbbbbb")...)

	entry := q.Start()
	if entry == nil {
		t.Fatal("expected entry after start")
	}
	if entry.Track.ID != "aaaaaaaaaaa" {
		t.Errorf("expected first track, got %s", entry.Track.ID)
	}
	if q.CurrentIndex() != 0 {
		t.Errorf("expected index 0, got %d", q.CurrentIndex())
	}
}

func TestQueue_AdvanceNone(t *testing.T) {
	q := NewQueue()
	q.Add(testEntries("aaaaaaaaaaa", "bbbbbbbbbbb")...)
	q.Start()

	entry := q.Advance(LoopModeNone)
	if entry == nil || entry.Track.ID != "bbbbbbbbbbb" {
		t.Fatalf("expected second track, got %v", entry)
	}

	if q.Advance(LoopModeNone) != nil {
		t.Error("expected nil past the end")
	}
	if !q.IsIdle() {
		t.Error("expected idle after running past the end")
	}
}

func TestQueue_AdvanceTrackLoop(t *testing.T) {
	q := NewQueue()
	q.Add(testEntries("aaaaaaaaaaa", "bbbbbbbbbbb")...)
	q.Start()

	for i := 0; i < 3; i++ {
		entry := q.Advance(LoopModeTrack)
		if entry == nil || entry.Track.ID != "aaaaaaaaaaa" {
			t.Fatalf("expected track loop to stay on first track, got %v", entry)
		}
	}
}

func TestQueue_AdvanceQueueLoop(t *testing.T) {
	q := NewQueue()
	q.Add(testEntries("aaaaaaaaaaa", "bbbbbbbbbbb")...)
	q.Start()

	q.Advance(LoopModeQueue)
	entry := q.Advance(LoopModeQueue)
	if entry == nil || entry.Track.ID != "aaaaaaaaaaa" {
		t.Fatalf("expected wrap to first track, got %v", entry)
	}
}

func TestQueue_AdvanceBeforeStart(t *testing.T) {
	q := NewQueue()
	q.Add(testEntries("aaaaaaaaaaa")...)

	if q.Advance(LoopModeNone) != nil {
		t.Error("expected nil when advancing before start")
	}
}

func TestQueue_Seek(t *testing.T) {
	q := NewQueue()
	q.Add(testEntries("aaaaaaaaaaa", "bbbbbbbbbbb", "ccccccccccc")...)
	q.Start()

	entry := q.Seek(2)
	if entry == nil || entry.Track.ID != "ccccccccccc" {
		t.Fatalf("expected third track, got %v", entry)
	}

	if q.Seek(5) != nil {
		t.Error("expected nil for out-of-bounds seek")
	}
	if q.CurrentIndex() != 2 {
		t.Error("expected position unchanged after failed seek")
	}
}

func TestQueue_RemoveAt(t *testing.T) {
	q := NewQueue()
	q.Add(testEntries("aaaaaaaaaaa", "bbbbbbbbbbb", "ccccccccccc")...)
	q.Start()
	q.Advance(LoopModeNone) // current = bbbbbbbbbbb

	// Removing before the current index shifts it left.
	removed := q.RemoveAt(0)
	if removed == nil || removed.Track.ID != "aaaaaaaaaaa" {
		t.Fatalf("expected first track removed, got %v", removed)
	}
	current := q.Current()
	if current == nil || current.Track.ID != "bbbbbbbbbbb" {
		t.Errorf("expected current track preserved, got %v", current)
	}

	if q.RemoveAt(10) != nil {
		t.Error("expected nil for out-of-bounds removal")
	}
}

func TestQueue_UpcomingAndClear(t *testing.T) {
	q := NewQueue()
	q.Add(testEntries("aaaaaaaaaaa", "bbbbbbbbbbb", "ccccccccccc")...)
	q.Start()

	upcoming := q.Upcoming()
	if len(upcoming) != 2 {
		t.Fatalf("expected 2 upcoming entries, got %d", len(upcoming))
	}
	if upcoming[0].Track.ID != "bbbbbbbbbbb" {
		t.Errorf("expected second track first in upcoming, got %s", upcoming[0].Track.ID)
	}

	q.Clear()
	if !q.IsEmpty() {
		t.Error("expected empty queue after clear")
	}
	if q.CurrentIndex() != -1 {
		t.Errorf("expected index reset to -1, got %d", q.CurrentIndex())
	}
}
