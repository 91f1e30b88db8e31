package render

import (
	"fmt"
	"strings"

	"github.com/codalotl/diffreview/internal/diff"
	"github.com/codalotl/diffreview/internal/review"
)

// Colors (ANSI 256) for inline output.
const (
	reset     = "\x1b[0m"
	blackFG   = "\x1b[30m"
	pinkSpan  = "\x1b[48;5;217m" // deleted text of a pending segment
	greenSpan = "\x1b[48;5;114m" // inserted text of a pending segment
	greenLine = "\x1b[48;5;194m" // accepted text
	pinkLine  = "\x1b[48;5;224m" // rejected (kept original) text
	cyanBold  = "\x1b[1;36m"
	cyanRev   = "\x1b[1;7;36m" // selected label
)

// ANSIOptions control ANSI.
type ANSIOptions struct {
	// Color enables escape sequences. Without it, pending segments use word-diff style markers: "[-deleted-]{+inserted+}".
	Color bool

	// Selected, if non-zero, is the ID of a segment to emphasize (its label is rendered in reverse video, or wrapped in ">" "<" without color).
	Selected int

	// HideResolved renders accepted/rejected segments like unchanged text, so only pending changes stand out.
	HideResolved bool
}

// ANSI renders d inline. Every actionable (pending) segment is prefixed with a "[#id]" label and shows both its deleted and inserted tokens; a resolved segment
// shows only the text it now contributes.
func ANSI(d *review.Document, opts ANSIOptions) string {
	return ANSILayout(d, opts).Text
}

// Layout is rendered output along with where each label landed.
type Layout struct {
	Text string

	// LabelLines maps the ID of each labelled segment to the 0-based line of Text its label is on.
	LabelLines map[int]int
}

// ANSILayout is ANSI that also reports the line of every label, so callers can scroll to a segment without searching Text (which may contain label-like input).
func ANSILayout(d *review.Document, opts ANSIOptions) Layout {
	out := Layout{LabelLines: map[int]int{}}
	if d == nil {
		return out
	}
	var b strings.Builder
	line := 0
	for _, el := range d.Elements {
		start := b.Len()
		switch el := el.(type) {
		case review.UnchangedSpan:
			b.WriteString(el.Text)
		case *review.Segment:
			if el.Actionable() {
				out.LabelLines[el.ID] = line
			}
			writeSegment(&b, el, opts)
		}
		line += strings.Count(b.String()[start:], "\n")
	}
	out.Text = b.String()
	return out
}

func writeSegment(b *strings.Builder, seg *review.Segment, opts ANSIOptions) {
	if !seg.Actionable() {
		text := seg.Text()
		if opts.HideResolved || !opts.Color || text == "" {
			b.WriteString(text)
			return
		}
		bg := greenLine
		if seg.State == review.Rejected {
			bg = pinkLine
		}
		writeColored(b, text, bg)
		return
	}

	label := fmt.Sprintf("[#%d]", seg.ID)
	switch {
	case opts.Color && seg.ID == opts.Selected:
		b.WriteString(cyanRev + label + reset)
	case opts.Color:
		b.WriteString(cyanBold + label + reset)
	case seg.ID == opts.Selected:
		b.WriteString(">" + label + "<")
	default:
		b.WriteString(label)
	}

	for _, t := range seg.Tokens {
		switch {
		case opts.Color && t.Op == diff.OpDelete:
			writeColored(b, t.Text, pinkSpan)
		case opts.Color && t.Op == diff.OpInsert:
			writeColored(b, t.Text, greenSpan)
		case t.Op == diff.OpDelete:
			b.WriteString("[-" + t.Text + "-]")
		case t.Op == diff.OpInsert:
			b.WriteString("{+" + t.Text + "+}")
		}
	}
}

// writeColored writes text with bg, resetting before each newline so backgrounds don't bleed to the end of terminal lines.
func writeColored(b *strings.Builder, text, bg string) {
	lines := strings.SplitAfter(text, "\n")
	for _, ln := range lines {
		if ln == "" {
			continue
		}
		core, hasEOL := strings.CutSuffix(ln, "\n")
		if core != "" {
			b.WriteString(blackFG + bg + core + reset)
		}
		if hasEOL {
			b.WriteString("\n")
		}
	}
}
