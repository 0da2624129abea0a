package domain

// Queue manages tracks using an index-based model. Entries are not removed
// when they finish playing; instead currentIndex advances through the list,
// which makes queue looping possible.
//
// currentIndex is -1 before playback starts and len(entries) after the queue
// has run past its end. Both states are "idle".
type Queue struct {
	entries      []QueueEntry
	currentIndex int
}

// NewQueue creates a new empty Queue.
func NewQueue() Queue {
	return Queue{
		entries:      make([]QueueEntry, 0),
		currentIndex: -1,
	}
}

// Len returns the total number of entries in the queue.
func (q *Queue) Len() int {
	return len(q.entries)
}

// IsEmpty returns true if the queue has no entries.
func (q *Queue) IsEmpty() bool {
	return q.Len() == 0
}

// CurrentIndex returns the current entry index (-1 if playback has not started).
func (q *Queue) CurrentIndex() int {
	return q.currentIndex
}

// IsIdle returns true if no entry is current (not started or past the end).
func (q *Queue) IsIdle() bool {
	return q.currentIndex < 0 || q.currentIndex >= q.Len()
}

func (q *Queue) isValidIndex(index int) bool {
	return 0 <= index && index < q.Len()
}

// Add appends entries to the end of the queue.
func (q *Queue) Add(entries ...QueueEntry) {
	q.entries = append(q.entries, entries...)
}

// Start moves to the first entry and returns it, or nil if the queue is empty.
func (q *Queue) Start() *QueueEntry {
	if q.IsEmpty() {
		return nil
	}
	q.currentIndex = 0
	return &q.entries[0]
}

// Current returns the current entry, or nil when idle.
func (q *Queue) Current() *QueueEntry {
	if q.IsIdle() {
		return nil
	}
	return &q.entries[q.currentIndex]
}

// GetAt returns the entry at the given index without changing position, or nil
// if the index is out of bounds.
func (q *Queue) GetAt(index int) *QueueEntry {
	if !q.isValidIndex(index) {
		return nil
	}
	return &q.entries[index]
}

// Upcoming returns a copy of the entries after the current index.
func (q *Queue) Upcoming() []QueueEntry {
	if q.IsIdle() {
		result := make([]QueueEntry, q.Len())
		copy(result, q.entries)
		return result
	}
	upcoming := q.entries[q.currentIndex+1:]
	result := make([]QueueEntry, len(upcoming))
	copy(result, upcoming)
	return result
}

// List returns a copy of all entries.
func (q *Queue) List() []QueueEntry {
	result := make([]QueueEntry, q.Len())
	copy(result, q.entries)
	return result
}

// Seek sets the current position to the given index and returns the entry
// there, or nil if the index is out of bounds (position is left unchanged).
func (q *Queue) Seek(index int) *QueueEntry {
	if !q.isValidIndex(index) {
		return nil
	}
	q.currentIndex = index
	return &q.entries[index]
}

// RemoveAt removes and returns the entry at the given index, or nil if the
// index is out of bounds. The current position is adjusted so it keeps
// pointing at the same entry where possible.
func (q *Queue) RemoveAt(index int) *QueueEntry {
	if !q.isValidIndex(index) {
		return nil
	}

	entry := q.entries[index]
	q.entries = append(q.entries[:index], q.entries[index+1:]...)

	if index < q.currentIndex {
		q.currentIndex--
	}

	return &entry
}

// Advance moves to the next entry based on loop mode and returns the new
// current entry, or nil if the queue ended.
//   - LoopModeNone: advance the index; nil once past the end
//   - LoopModeTrack: stay on the same entry
//   - LoopModeQueue: advance, wrapping to the start past the end
func (q *Queue) Advance(mode LoopMode) *QueueEntry {
	if q.IsEmpty() || q.currentIndex < 0 {
		return nil
	}

	switch mode {
	case LoopModeTrack:
		// Keep the current entry.

	case LoopModeQueue:
		q.currentIndex++
		if q.currentIndex >= q.Len() {
			q.currentIndex = 0
		}

	default: // LoopModeNone
		q.currentIndex++
		if q.currentIndex >= q.Len() {
			return nil
		}
	}

	return &q.entries[q.currentIndex]
}

// Clear removes all entries and resets the position.
func (q *Queue) Clear() {
	q.entries = make([]QueueEntry, 0)
	q.currentIndex = -1
}
