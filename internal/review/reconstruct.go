package review

import "strings"

// Reconstruct returns the text d currently reads as: unchanged spans verbatim, and each Segment's contribution per its State (inserted text if Accepted, original
// text if Rejected or Pending). A nil Document reconstructs to "".
func Reconstruct(d *Document) string {
	if d == nil {
		return ""
	}
	var b strings.Builder
	for _, el := range d.Elements {
		switch el := el.(type) {
		case UnchangedSpan:
			b.WriteString(el.Text)
		case *Segment:
			b.WriteString(el.Text())
		}
	}
	return b.String()
}
