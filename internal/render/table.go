package render

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/codalotl/diffreview/internal/review"
)

const (
	minTextColumn   = 8
	defaultMaxWidth = 100
)

// Segments writes a table of d's segments to w: id, state, original text, and revised text, one row per segment. Text cells are escaped onto one line and truncated
// so each row fits within maxWidth display columns (East Asian wide characters count as 2). maxWidth <= 0 uses 100.
func Segments(w io.Writer, d *review.Document, maxWidth int) error {
	if maxWidth <= 0 {
		maxWidth = defaultMaxWidth
	}
	if d == nil {
		return nil
	}
	segs := d.Segments()

	idWidth := len("ID")
	for _, seg := range segs {
		idWidth = max(idWidth, len(strconv.Itoa(seg.ID)))
	}
	stateWidth := len("accepted")

	// Two text columns share whatever is left after the fixed columns and 3 two-space gutters.
	textWidth := max(minTextColumn, (maxWidth-idWidth-stateWidth-6)/2)

	row := func(id, state, del, ins string) error {
		line := runewidth.FillRight(id, idWidth) + "  " +
			runewidth.FillRight(state, stateWidth) + "  " +
			runewidth.FillRight(cell(del, textWidth), textWidth) + "  " +
			cell(ins, textWidth)
		_, err := fmt.Fprintln(w, strings.TrimRight(line, " "))
		return err
	}

	if err := row("ID", "STATE", "ORIGINAL", "REVISED"); err != nil {
		return err
	}
	for _, seg := range segs {
		if err := row(strconv.Itoa(seg.ID), seg.State.String(), seg.DeletedText(), seg.InsertedText()); err != nil {
			return err
		}
	}
	return nil
}

var cellEscaper = strings.NewReplacer("\n", `\n`, "\r", `\r`, "\t", `\t`)

// cell escapes s onto a single line and truncates it to width display columns.
func cell(s string, width int) string {
	if s == "" {
		return "-"
	}
	return runewidth.Truncate(cellEscaper.Replace(s), width, "…")
}
