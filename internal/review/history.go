package review

// HistoryEntry records one accept/reject decision as full snapshots of the Segment before and after it.
type HistoryEntry struct {
	SegmentID int
	Previous  Segment
	Next      Segment
}

// History is a LIFO of decisions. The zero value is an empty History.
type History struct {
	entries []HistoryEntry
}

// Push appends e.
func (h *History) Push(e HistoryEntry) {
	h.entries = append(h.entries, e)
}

// Pop removes and returns the most recent entry. ok is false if h is empty.
func (h *History) Pop() (e HistoryEntry, ok bool) {
	if len(h.entries) == 0 {
		return HistoryEntry{}, false
	}
	e = h.entries[len(h.entries)-1]
	h.entries[len(h.entries)-1] = HistoryEntry{}
	h.entries = h.entries[:len(h.entries)-1]
	return e, true
}

// Peek returns the most recent entry without removing it.
func (h *History) Peek() (HistoryEntry, bool) {
	if len(h.entries) == 0 {
		return HistoryEntry{}, false
	}
	return h.entries[len(h.entries)-1], true
}

// Len returns the number of entries.
func (h *History) Len() int {
	return len(h.entries)
}

// Entries returns a copy of the entries, oldest first.
func (h *History) Entries() []HistoryEntry {
	out := make([]HistoryEntry, len(h.entries))
	copy(out, h.entries)
	return out
}
