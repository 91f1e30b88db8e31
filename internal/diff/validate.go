package diff

import (
	"fmt"
	"strings"
)

// Validate checks that tokens satisfy the package invariants with respect to original and revised, returning an error wrapping ErrMalformed on the first violation.
func Validate(tokens []Token, original, revised string) error {
	var oldConcat, newConcat strings.Builder
	for i, t := range tokens {
		if t.Text == "" {
			return fmt.Errorf("%w: token[%d]: empty %s text", ErrMalformed, i, t.Op)
		}
		switch t.Op {
		case OpEqual:
			oldConcat.WriteString(t.Text)
			newConcat.WriteString(t.Text)
		case OpDelete:
			oldConcat.WriteString(t.Text)
		case OpInsert:
			newConcat.WriteString(t.Text)
		default:
			return fmt.Errorf("%w: token[%d]: unknown op %d", ErrMalformed, i, int(t.Op))
		}
	}

	if oldConcat.String() != original {
		return fmt.Errorf("%w: delete+equal tokens do not reconstruct the original text", ErrMalformed)
	}
	if newConcat.String() != revised {
		return fmt.Errorf("%w: insert+equal tokens do not reconstruct the revised text", ErrMalformed)
	}
	return nil
}
