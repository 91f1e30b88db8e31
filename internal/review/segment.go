package review

import (
	"fmt"
	"slices"
	"strings"

	"github.com/codalotl/diffreview/internal/diff"
)

// State is the resolution state of a Segment.
type State int

const (
	Pending  State = iota // Pending is the initial state: the change is proposed but not applied.
	Accepted              // Accepted applies the change: inserted text is kept and deleted text is dropped.
	Rejected              // Rejected discards the change: deleted text is kept and inserted text is dropped.
)

func (s State) String() string {
	switch s {
	case Pending:
		return "pending"
	case Accepted:
		return "accepted"
	case Rejected:
		return "rejected"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Segment is one contiguous change region: a maximal run of Delete/Insert tokens between unchanged spans.
//
// Invariant: Tokens is non-empty and never contains an OpEqual token.
type Segment struct {
	ID     int          // 1-based, in document order.
	Tokens []diff.Token // Delete and Insert tokens in diff order.
	State  State
}

func (*Segment) element() {}

// Actionable reports whether s can be accepted or rejected, i.e. whether it is Pending.
func (s *Segment) Actionable() bool {
	return s.State == Pending
}

// DeletedText concatenates s's Delete tokens: the text s has in the original.
func (s *Segment) DeletedText() string {
	return s.textOf(diff.OpDelete)
}

// InsertedText concatenates s's Insert tokens: the text s has in the revision.
func (s *Segment) InsertedText() string {
	return s.textOf(diff.OpInsert)
}

// Text is what s currently contributes to the reconstructed text. A Pending segment is not yet applied, so it contributes its original (deleted) text.
func (s *Segment) Text() string {
	if s.State == Accepted {
		return s.InsertedText()
	}
	return s.DeletedText()
}

func (s *Segment) textOf(op diff.Op) string {
	var b strings.Builder
	for _, t := range s.Tokens {
		if t.Op == op {
			b.WriteString(t.Text)
		}
	}
	return b.String()
}

// Snapshot returns a deep copy of s. Mutating s afterwards never changes the snapshot.
func (s *Segment) Snapshot() Segment {
	return Segment{ID: s.ID, Tokens: slices.Clone(s.Tokens), State: s.State}
}

// restore overwrites s with a deep copy of snap.
func (s *Segment) restore(snap Segment) {
	s.ID = snap.ID
	s.Tokens = slices.Clone(snap.Tokens)
	s.State = snap.State
}

// decide moves s from Pending to to.
func (s *Segment) decide(to State) error {
	if !s.Actionable() {
		return fmt.Errorf("segment %d is already %s: %w", s.ID, s.State, ErrInvalidTransition)
	}
	s.State = to
	return nil
}
