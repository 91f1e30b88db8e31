package review

import (
	"fmt"

	"github.com/codalotl/diffreview/internal/diff"
	"github.com/codalotl/diffreview/internal/simplelogger"
)

// Session owns the active Document and its History, and applies review commands to them. After every state-changing command the reconstructed text is recomputed
// and available via Text.
type Session struct {
	engine diff.Engine

	original string
	revised  string
	doc      *Document
	history  History
	text     string
}

// NewSession returns a Session that diffs with engine. It has no Document until Compare succeeds.
func NewSession(engine diff.Engine) *Session {
	if engine == nil {
		panic("review: NewSession called with nil engine")
	}
	return &Session{engine: engine}
}

// Compare diffs original to revised and replaces the Document and History wholesale, starting a fresh review. If the engine fails or produces tokens that break
// its contract, the error is returned (wrapping ErrMalformedDiff in the latter case) and the previous Document and History are left untouched.
func (s *Session) Compare(original, revised string) (*Document, error) {
	tokens, err := s.engine.Tokens(original, revised)
	if err != nil {
		return nil, fmt.Errorf("compare: %w", err)
	}
	if err := diff.Validate(tokens, original, revised); err != nil {
		return nil, fmt.Errorf("compare: %w", err)
	}
	doc, err := Build(tokens)
	if err != nil {
		return nil, fmt.Errorf("compare: %w", err)
	}

	s.original = original
	s.revised = revised
	s.doc = doc
	s.history = History{}
	s.recompute()

	simplelogger.Log("compare: %d bytes -> %d bytes, %d segments", len(original), len(revised), len(doc.segments))
	return doc, nil
}

// Document returns the active Document, or nil before the first Compare.
func (s *Session) Document() *Document {
	return s.doc
}

// History returns the active History.
func (s *Session) History() *History {
	return &s.history
}

// Text returns the reconstructed text of the active Document.
func (s *Session) Text() string {
	return s.text
}

// Original returns the original text given to the last successful Compare.
func (s *Session) Original() string {
	return s.original
}

// Revised returns the revised text given to the last successful Compare.
func (s *Session) Revised() string {
	return s.revised
}

// Pending returns the segments that are still undecided, in document order.
func (s *Session) Pending() []*Segment {
	if s.doc == nil {
		return nil
	}
	var out []*Segment
	for _, seg := range s.doc.segments {
		if seg.Actionable() {
			out = append(out, seg)
		}
	}
	return out
}

// Accept applies segment id's insertion. It returns ErrUnknownSegment for an unknown id and ErrInvalidTransition if the segment is not Pending.
func (s *Session) Accept(id int) error {
	return s.decide(id, Accepted)
}

// Reject discards segment id's insertion and keeps its original text. It returns ErrUnknownSegment for an unknown id and ErrInvalidTransition if the segment is
// not Pending.
func (s *Session) Reject(id int) error {
	return s.decide(id, Rejected)
}

func (s *Session) decide(id int, to State) error {
	if s.doc == nil {
		return ErrNoDocument
	}
	seg, ok := s.doc.Segment(id)
	if !ok {
		return fmt.Errorf("segment %d: %w", id, ErrUnknownSegment)
	}

	prev := seg.Snapshot()
	if err := seg.decide(to); err != nil {
		return err
	}
	s.history.Push(HistoryEntry{SegmentID: id, Previous: prev, Next: seg.Snapshot()})
	s.recompute()

	simplelogger.Log("%s segment %d (history=%d)", to, id, s.history.Len())
	return nil
}

// AcceptAll accepts every Pending segment in document order, recording one history entry each. It returns how many segments it accepted.
func (s *Session) AcceptAll() int {
	return s.decideAll(Accepted)
}

// RejectAll rejects every Pending segment in document order, recording one history entry each. It returns how many segments it rejected.
func (s *Session) RejectAll() int {
	return s.decideAll(Rejected)
}

func (s *Session) decideAll(to State) int {
	n := 0
	for _, seg := range s.Pending() {
		if err := s.decide(seg.ID, to); err == nil {
			n++
		}
	}
	return n
}

// Undo reverses the most recent decision across all segments, restoring that segment to its exact pre-decision snapshot. If there is nothing to undo, Undo does
// nothing and returns ok=false.
func (s *Session) Undo() (HistoryEntry, bool) {
	e, ok := s.history.Pop()
	if !ok {
		return HistoryEntry{}, false
	}
	if seg, found := s.doc.Segment(e.SegmentID); found {
		seg.restore(e.Previous)
	}
	s.recompute()

	simplelogger.Log("undo segment %d: %s -> %s (history=%d)", e.SegmentID, e.Next.State, e.Previous.State, s.history.Len())
	return e, true
}

func (s *Session) recompute() {
	s.text = Reconstruct(s.doc)
}
