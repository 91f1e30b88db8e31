package render

import (
	"fmt"
	"strings"

	"github.com/codalotl/diffreview/internal/review"
)

// ReportInput is what a review report describes.
type ReportInput struct {
	OriginalName string // Display name of the original input (ex: a file path). Optional.
	RevisedName  string // Display name of the revised input. Optional.
	Session      *review.Session
}

// Markdown renders a GitHub-flavored Markdown report of the session: a decision summary, a per-segment table, the decision history, and the reconstructed text.
// Segment text is shown in code spans, escaped so that any input renders literally.
func Markdown(in ReportInput) string {
	var b strings.Builder
	b.WriteString("# Review report\n\n")

	if in.OriginalName != "" || in.RevisedName != "" {
		fmt.Fprintf(&b, "Comparing %s to %s.\n\n", codeSpan(orDefault(in.OriginalName, "original")), codeSpan(orDefault(in.RevisedName, "revised")))
	}

	doc := in.Session.Document()
	if doc == nil {
		b.WriteString("No comparison has been made.\n")
		return b.String()
	}

	c := doc.Counts()
	b.WriteString("| Segments | Pending | Accepted | Rejected |\n")
	b.WriteString("|---:|---:|---:|---:|\n")
	fmt.Fprintf(&b, "| %d | %d | %d | %d |\n\n", c.Total(), c.Pending, c.Accepted, c.Rejected)

	if c.Total() > 0 {
		b.WriteString("## Segments\n\n")
		b.WriteString("| # | State | Original | Revised |\n")
		b.WriteString("|---:|---|---|---|\n")
		for _, seg := range doc.Segments() {
			fmt.Fprintf(&b, "| %d | %s | %s | %s |\n", seg.ID, seg.State, tableCell(seg.DeletedText()), tableCell(seg.InsertedText()))
		}
		b.WriteString("\n")
	}

	if entries := in.Session.History().Entries(); len(entries) > 0 {
		b.WriteString("## History\n\n")
		for i, e := range entries {
			fmt.Fprintf(&b, "%d. Segment %d: %s\n", i+1, e.SegmentID, e.Next.State)
		}
		b.WriteString("\n")
	}

	b.WriteString("## Result\n\n")
	text := in.Session.Text()
	fence := strings.Repeat("`", max(3, longestRun(text, '`')+1))
	b.WriteString(fence + "text\n")
	b.WriteString(text)
	if !strings.HasSuffix(text, "\n") {
		b.WriteString("\n")
	}
	b.WriteString(fence + "\n")
	return b.String()
}

var tableEscaper = strings.NewReplacer("|", `\|`, "\r\n", "⏎", "\n", "⏎", "\r", "⏎")

// tableCell renders s as a code span that is safe inside a GFM table row.
func tableCell(s string) string {
	if s == "" {
		return "_(none)_"
	}
	return tableEscaper.Replace(codeSpan(s))
}

// codeSpan wraps s in enough backticks that it renders literally. A space is added inside the delimiters when s begins or ends with a backtick or space; CommonMark
// strips exactly one such space from each side.
func codeSpan(s string) string {
	ticks := strings.Repeat("`", longestRun(s, '`')+1)
	if strings.HasPrefix(s, "`") || strings.HasSuffix(s, "`") || strings.HasPrefix(s, " ") || strings.HasSuffix(s, " ") {
		return ticks + " " + s + " " + ticks
	}
	return ticks + s + ticks
}

func longestRun(s string, c byte) int {
	longest, cur := 0, 0
	for i := 0; i < len(s); i++ {
		if s[i] == c {
			cur++
			longest = max(longest, cur)
		} else {
			cur = 0
		}
	}
	return longest
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
