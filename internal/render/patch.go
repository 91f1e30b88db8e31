package render

import (
	"fmt"

	"github.com/pmezard/go-difflib/difflib"
)

// Patch returns a unified diff from original to current (typically the reconstructed text), or "" if they are equal. context <= 0 uses 3 lines.
func Patch(original, current, fromName, toName string, context int) (string, error) {
	if original == current {
		return "", nil
	}
	if context <= 0 {
		context = 3
	}
	u := difflib.UnifiedDiff{
		A:        difflib.SplitLines(original),
		B:        difflib.SplitLines(current),
		FromFile: orDefault(fromName, "original"),
		ToFile:   orDefault(toName, "reviewed"),
		Context:  context,
	}
	s, err := difflib.GetUnifiedDiffString(u)
	if err != nil {
		return "", fmt.Errorf("unified diff: %w", err)
	}
	return s, nil
}
