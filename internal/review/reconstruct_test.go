package review

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codalotl/diffreview/internal/diff"
)

func TestReconstruct(t *testing.T) {
	tokens := []diff.Token{
		{Op: diff.OpEqual, Text: "keep "},
		{Op: diff.OpDelete, Text: "old"},
		{Op: diff.OpInsert, Text: "new"},
		{Op: diff.OpEqual, Text: " | "},
		{Op: diff.OpInsert, Text: "added"},
		{Op: diff.OpEqual, Text: " | "},
		{Op: diff.OpDelete, Text: "removed"},
	}

	tests := []struct {
		name   string
		states []State
		want   string
	}{
		{"all pending", []State{Pending, Pending, Pending}, "keep old |  | removed"},
		{"all accepted", []State{Accepted, Accepted, Accepted}, "keep new | added | "},
		{"all rejected", []State{Rejected, Rejected, Rejected}, "keep old |  | removed"},
		{"mixed", []State{Accepted, Rejected, Pending}, "keep new |  | removed"},
		{"mixed 2", []State{Rejected, Accepted, Accepted}, "keep old | added | "},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			doc, err := Build(tokens)
			require.NoError(t, err)
			for i, seg := range doc.Segments() {
				seg.State = tc.states[i]
			}
			assert.Equal(t, tc.want, Reconstruct(doc))
		})
	}
}

func TestReconstruct_Nil(t *testing.T) {
	assert.Equal(t, "", Reconstruct(nil))
}

func TestSegment_Texts(t *testing.T) {
	seg := &Segment{ID: 1, Tokens: []diff.Token{
		{Op: diff.OpInsert, Text: "b"},
		{Op: diff.OpDelete, Text: "c"},
		{Op: diff.OpInsert, Text: "d"},
	}}
	assert.Equal(t, "c", seg.DeletedText())
	assert.Equal(t, "bd", seg.InsertedText())
	assert.True(t, seg.Actionable())
	assert.Equal(t, "c", seg.Text())

	seg.State = Accepted
	assert.False(t, seg.Actionable())
	assert.Equal(t, "bd", seg.Text())

	seg.State = Rejected
	assert.False(t, seg.Actionable())
	assert.Equal(t, "c", seg.Text())
}

func TestSegment_SnapshotIsDeep(t *testing.T) {
	seg := &Segment{ID: 3, Tokens: []diff.Token{{Op: diff.OpDelete, Text: "x"}}}
	snap := seg.Snapshot()

	seg.Tokens[0].Text = "mutated"
	seg.State = Accepted

	assert.Equal(t, "x", snap.Tokens[0].Text)
	assert.Equal(t, Pending, snap.State)

	seg.restore(snap)
	assert.Equal(t, "x", seg.Tokens[0].Text)
	assert.Equal(t, Pending, seg.State)

	// restore copies, so later mutation of seg can't reach snap.
	seg.Tokens[0].Text = "again"
	assert.Equal(t, "x", snap.Tokens[0].Text)
}

func TestState_String(t *testing.T) {
	assert.Equal(t, "pending", Pending.String())
	assert.Equal(t, "accepted", Accepted.String())
	assert.Equal(t, "rejected", Rejected.String())
	assert.Equal(t, "State(7)", State(7).String())
}
