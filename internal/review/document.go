package review

// Element is one item of a Document: either an UnchangedSpan or a *Segment.
type Element interface {
	element()
}

// UnchangedSpan is text common to both revisions.
type UnchangedSpan struct {
	Text string
}

func (UnchangedSpan) element() {}

// Document is the ordered result of comparing two revisions.
//
// Invariants:
//   - no two UnchangedSpans are adjacent
//   - no two Segments are adjacent
//   - Segment IDs are 1..len(Segments()) in element order
type Document struct {
	Elements []Element

	segments []*Segment // segments[i].ID == i+1
}

// Segments returns d's segments in document order. The slice is a copy; the segments are not.
func (d *Document) Segments() []*Segment {
	out := make([]*Segment, len(d.segments))
	copy(out, d.segments)
	return out
}

// Segment returns the segment with the given ID.
func (d *Document) Segment(id int) (*Segment, bool) {
	if id < 1 || id > len(d.segments) {
		return nil, false
	}
	return d.segments[id-1], true
}

// Counts tallies segments by state.
type Counts struct {
	Pending  int
	Accepted int
	Rejected int
}

// Total is the number of segments.
func (c Counts) Total() int {
	return c.Pending + c.Accepted + c.Rejected
}

// Counts tallies d's segments by state.
func (d *Document) Counts() Counts {
	var c Counts
	for _, s := range d.segments {
		switch s.State {
		case Pending:
			c.Pending++
		case Accepted:
			c.Accepted++
		case Rejected:
			c.Rejected++
		}
	}
	return c
}
