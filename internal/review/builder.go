package review

import (
	"fmt"

	"github.com/codalotl/diffreview/internal/diff"
)

// Build groups diff tokens into a Document. Each maximal run of Delete/Insert tokens becomes one Pending Segment; Equal tokens become UnchangedSpans, with adjacent
// Equal tokens merged. Tokens with empty text carry nothing and are skipped.
//
// An unknown op is a broken diff engine contract; Build returns an error wrapping ErrMalformedDiff.
func Build(tokens []diff.Token) (*Document, error) {
	doc := &Document{}
	var open *Segment

	flush := func() {
		if open == nil {
			return
		}
		doc.Elements = append(doc.Elements, open)
		doc.segments = append(doc.segments, open)
		open = nil
	}

	for i, t := range tokens {
		if t.Text == "" {
			continue
		}
		switch t.Op {
		case diff.OpEqual:
			flush()
			if n := len(doc.Elements); n > 0 {
				if span, ok := doc.Elements[n-1].(UnchangedSpan); ok {
					doc.Elements[n-1] = UnchangedSpan{Text: span.Text + t.Text}
					continue
				}
			}
			doc.Elements = append(doc.Elements, UnchangedSpan{Text: t.Text})
		case diff.OpDelete, diff.OpInsert:
			if open == nil {
				open = &Segment{ID: len(doc.segments) + 1, State: Pending}
			}
			open.Tokens = append(open.Tokens, t)
		default:
			return nil, fmt.Errorf("build: token[%d]: unknown op %d: %w", i, int(t.Op), ErrMalformedDiff)
		}
	}
	flush()

	return doc, nil
}
