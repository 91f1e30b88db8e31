package review

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codalotl/diffreview/internal/diff"
)

// scriptedEngine returns fixed tokens regardless of input.
type scriptedEngine struct {
	tokens []diff.Token
	err    error
}

func (e scriptedEngine) Tokens(string, string) ([]diff.Token, error) {
	return e.tokens, e.err
}

var comparePairs = []struct {
	name string
	a, b string
}{
	{"fox", "The quick brown fox", "The quick red fox"},
	{"empty both", "", ""},
	{"from empty", "", "brand new text\n"},
	{"to empty", "all of this goes away\n", ""},
	{"identical", "nothing changes", "nothing changes"},
	{"prose", "It was the best of times, it was the worst of times.", "It was the best of days; it was, truly, the worst of nights!"},
	{"lines", "alpha\nbeta\ngamma\ndelta\n", "alpha\nBETA\ngamma\nepsilon\ndelta\nzeta"},
	{"unicode", "naïve café — 日本語です", "naive cafe - 日本語でした"},
}

func newComparedSession(t *testing.T, g diff.Granularity, a, b string) *Session {
	t.Helper()
	s := NewSession(diff.New(diff.Options{Granularity: g}))
	_, err := s.Compare(a, b)
	require.NoError(t, err)
	return s
}

func TestSession_Properties(t *testing.T) {
	for _, g := range diff.Granularities {
		for _, p := range comparePairs {
			t.Run(fmt.Sprintf("%s/%s", g, p.name), func(t *testing.T) {
				t.Run("fresh document reads as original", func(t *testing.T) {
					s := newComparedSession(t, g, p.a, p.b)
					assert.Equal(t, p.a, s.Text())
					assert.Equal(t, p.a, Reconstruct(s.Document()))
					for _, seg := range s.Document().Segments() {
						assert.Equal(t, Pending, seg.State)
					}
				})

				t.Run("accept every segment reads as revised", func(t *testing.T) {
					s := newComparedSession(t, g, p.a, p.b)
					for _, seg := range s.Document().Segments() {
						require.NoError(t, s.Accept(seg.ID))
					}
					assert.Equal(t, p.b, s.Text())
					assert.Equal(t, len(s.Document().Segments()), s.History().Len())
				})

				t.Run("reject every segment reads as original", func(t *testing.T) {
					s := newComparedSession(t, g, p.a, p.b)
					for _, seg := range s.Document().Segments() {
						require.NoError(t, s.Reject(seg.ID))
					}
					assert.Equal(t, p.a, s.Text())
				})

				t.Run("undoing everything restores the fresh document", func(t *testing.T) {
					s := newComparedSession(t, g, p.a, p.b)
					before := snapshots(s.Document())
					for i, seg := range s.Document().Segments() {
						if i%2 == 0 {
							require.NoError(t, s.Accept(seg.ID))
						} else {
							require.NoError(t, s.Reject(seg.ID))
						}
					}
					for s.History().Len() > 0 {
						_, ok := s.Undo()
						require.True(t, ok)
					}
					assert.Equal(t, before, snapshots(s.Document()))
					assert.Equal(t, p.a, s.Text())
				})
			})
		}
	}
}

func snapshots(d *Document) []Segment {
	var out []Segment
	for _, seg := range d.Segments() {
		out = append(out, seg.Snapshot())
	}
	return out
}

func TestSession_QuickBrownFox(t *testing.T) {
	s := NewSession(diff.New(diff.Options{}))
	doc, err := s.Compare("The quick brown fox", "The quick red fox")
	require.NoError(t, err)

	require.Equal(t, []Element{
		UnchangedSpan{Text: "The quick "},
		&Segment{ID: 1, Tokens: []diff.Token{{Op: diff.OpDelete, Text: "brown"}, {Op: diff.OpInsert, Text: "red"}}, State: Pending},
		UnchangedSpan{Text: " fox"},
	}, doc.Elements)
	require.Equal(t, "The quick brown fox", s.Text())

	require.NoError(t, s.Accept(1))
	require.Equal(t, "The quick red fox", s.Text())

	e, ok := s.Undo()
	require.True(t, ok)
	require.Equal(t, 1, e.SegmentID)
	require.Equal(t, Pending, e.Previous.State)
	require.Equal(t, Accepted, e.Next.State)
	require.Equal(t, "The quick brown fox", s.Text())

	seg, _ := doc.Segment(1)
	require.Equal(t, Pending, seg.State)
	require.True(t, seg.Actionable())
}

func TestSession_UndoRestoresExactSnapshot(t *testing.T) {
	for _, decide := range []func(*Session, int) error{(*Session).Accept, (*Session).Reject} {
		s := newComparedSession(t, diff.GranularityChar, "one two three", "one 2 three 4")
		seg := s.Document().Segments()[0]
		before := seg.Snapshot()
		textBefore := s.Text()

		require.NoError(t, decide(s, seg.ID))
		require.NotEqual(t, before.State, seg.State)

		_, ok := s.Undo()
		require.True(t, ok)
		require.Equal(t, before, seg.Snapshot())
		require.Equal(t, textBefore, s.Text())
		require.Equal(t, 0, s.History().Len())
	}
}

func TestSession_UndoIsLIFO(t *testing.T) {
	s := newComparedSession(t, diff.GranularityWord, "red green blue", "RED green BLUE")
	segs := s.Document().Segments()
	require.Len(t, segs, 2)
	s1, s2 := segs[0], segs[1]

	require.NoError(t, s.Accept(s1.ID))
	require.NoError(t, s.Reject(s2.ID))
	require.Equal(t, "RED green blue", s.Text())

	e, ok := s.Undo()
	require.True(t, ok)
	require.Equal(t, s2.ID, e.SegmentID)
	require.Equal(t, Pending, s2.State)
	require.Equal(t, Accepted, s1.State)
	require.Equal(t, "RED green blue", s.Text())

	e, ok = s.Undo()
	require.True(t, ok)
	require.Equal(t, s1.ID, e.SegmentID)
	require.Equal(t, Pending, s1.State)
	require.Equal(t, "red green blue", s.Text())
}

func TestSession_UndoOnEmptyHistory(t *testing.T) {
	s := newComparedSession(t, diff.GranularityChar, "abc", "abd")
	before := snapshots(s.Document())

	_, ok := s.Undo()
	require.False(t, ok)
	require.Equal(t, before, snapshots(s.Document()))
	require.Equal(t, "abc", s.Text())

	// Also fine before any Compare.
	_, ok = NewSession(diff.New(diff.Options{})).Undo()
	require.False(t, ok)
}

func TestSession_RedecideAfterUndo(t *testing.T) {
	s := newComparedSession(t, diff.GranularityChar, "The quick brown fox", "The quick red fox")

	require.NoError(t, s.Accept(1))
	s.Undo()
	require.NoError(t, s.Reject(1))
	require.Equal(t, "The quick brown fox", s.Text())
	require.Equal(t, 1, s.History().Len())

	top, _ := s.History().Peek()
	require.Equal(t, Rejected, top.Next.State)
}

func TestSession_InvalidTransition(t *testing.T) {
	s := newComparedSession(t, diff.GranularityChar, "The quick brown fox", "The quick red fox")
	require.NoError(t, s.Accept(1))

	err := s.Accept(1)
	require.ErrorIs(t, err, ErrInvalidTransition)
	err = s.Reject(1)
	require.ErrorIs(t, err, ErrInvalidTransition)

	// Failed commands leave no history and don't change text.
	require.Equal(t, 1, s.History().Len())
	require.Equal(t, "The quick red fox", s.Text())
}

func TestSession_UnknownSegment(t *testing.T) {
	s := newComparedSession(t, diff.GranularityChar, "a", "b")
	require.ErrorIs(t, s.Accept(2), ErrUnknownSegment)
	require.ErrorIs(t, s.Reject(0), ErrUnknownSegment)
	require.Equal(t, 0, s.History().Len())
}

func TestSession_NoDocument(t *testing.T) {
	s := NewSession(diff.New(diff.Options{}))
	require.ErrorIs(t, s.Accept(1), ErrNoDocument)
	require.Nil(t, s.Document())
	require.Nil(t, s.Pending())
	require.Equal(t, "", s.Text())
}

func TestSession_CompareResetsHistory(t *testing.T) {
	s := newComparedSession(t, diff.GranularityChar, "The quick brown fox", "The quick red fox")
	require.NoError(t, s.Accept(1))
	require.Equal(t, 1, s.History().Len())

	doc, err := s.Compare("The quick red fox", "The slow red fox")
	require.NoError(t, err)
	require.Same(t, doc, s.Document())
	require.Equal(t, 0, s.History().Len())
	require.Equal(t, "The quick red fox", s.Text())
	require.Equal(t, "The quick red fox", s.Original())
	require.Equal(t, "The slow red fox", s.Revised())

	_, ok := s.Undo()
	require.False(t, ok)
}

func TestSession_CompareMalformed(t *testing.T) {
	tests := []struct {
		name   string
		engine scriptedEngine
		isErr  error
	}{
		{
			name:   "tokens don't reconstruct the original",
			engine: scriptedEngine{tokens: []diff.Token{{Op: diff.OpEqual, Text: "zzz"}}},
			isErr:  ErrMalformedDiff,
		},
		{
			name:   "unknown op",
			engine: scriptedEngine{tokens: []diff.Token{{Op: diff.Op(9), Text: "a"}}},
			isErr:  ErrMalformedDiff,
		},
		{
			name:   "engine error",
			engine: scriptedEngine{err: errors.New("boom")},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := newComparedSession(t, diff.GranularityChar, "The quick brown fox", "The quick red fox")
			require.NoError(t, s.Accept(1))
			prevDoc := s.Document()

			s.engine = tc.engine
			_, err := s.Compare("a", "b")
			require.Error(t, err)
			if tc.isErr != nil {
				require.ErrorIs(t, err, tc.isErr)
			}

			// The previous review is untouched.
			require.Same(t, prevDoc, s.Document())
			require.Equal(t, 1, s.History().Len())
			require.Equal(t, "The quick red fox", s.Text())
		})
	}
}

func TestSession_AcceptAllRejectAll(t *testing.T) {
	s := newComparedSession(t, diff.GranularityWord, "a b c d", "A b C d E")
	n := len(s.Document().Segments())
	require.Equal(t, 3, n)

	require.NoError(t, s.Reject(2))
	require.Equal(t, 2, s.AcceptAll())
	require.Equal(t, "A b c d E", s.Text())
	require.Equal(t, 3, s.History().Len())
	require.Empty(t, s.Pending())
	require.Equal(t, 0, s.AcceptAll())

	s.Undo()
	s.Undo()
	require.Len(t, s.Pending(), 2)
	require.Equal(t, 2, s.RejectAll())
	require.Equal(t, "a b c d", s.Text())
	require.Equal(t, Counts{Rejected: 3}, s.Document().Counts())
}
