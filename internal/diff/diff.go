package diff

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Op is an operation from original text to revised text.
type Op int

// Operations from original text to revised text.
const (
	OpEqual Op = iota
	OpDelete
	OpInsert
)

func (op Op) String() string {
	switch op {
	case OpEqual:
		return "equal"
	case OpDelete:
		return "delete"
	case OpInsert:
		return "insert"
	default:
		return fmt.Sprintf("Op(%d)", int(op))
	}
}

// Token is a run of text and the operation that classifies it.
type Token struct {
	Op   Op
	Text string
}

// String returns a compact debugging form, ex: `-"brown"`.
func (t Token) String() string {
	var sign string
	switch t.Op {
	case OpEqual:
		sign = "="
	case OpDelete:
		sign = "-"
	case OpInsert:
		sign = "+"
	default:
		sign = "?"
	}
	return fmt.Sprintf("%s%q", sign, t.Text)
}

// Granularity is the unit that Tokens compares.
type Granularity string

const (
	GranularityChar Granularity = "char" // GranularityChar diffs individual characters (default).
	GranularityWord Granularity = "word" // GranularityWord diffs UAX #29 words, whitespace runs, and punctuation.
	GranularityLine Granularity = "line" // GranularityLine diffs whole lines (including their '\n').
)

// Granularities lists every supported Granularity, default first.
var Granularities = []Granularity{GranularityChar, GranularityWord, GranularityLine}

// ParseGranularity parses s (case-insensitive). The empty string yields GranularityChar.
func ParseGranularity(s string) (Granularity, error) {
	switch g := Granularity(strings.ToLower(strings.TrimSpace(s))); g {
	case "":
		return GranularityChar, nil
	case GranularityChar, GranularityWord, GranularityLine:
		return g, nil
	default:
		return "", fmt.Errorf("unknown granularity %q (want one of char, word, line)", s)
	}
}

// Options control Tokens.
type Options struct {
	Granularity Granularity   // Defaults to GranularityChar.
	Timeout     time.Duration // Upper bound on diff computation; after it elapses, the diff is valid but possibly non-minimal. 0 uses the library default (1s).
}

// ErrMalformed is wrapped by every error reporting a token sequence that breaks the package invariants.
var ErrMalformed = errors.New("malformed diff output")

// ErrInvalidUTF8 is returned by Tokens when an input is not valid UTF-8. It does not wrap ErrMalformed: the input is at fault, not the engine.
var ErrInvalidUTF8 = errors.New("input is not valid UTF-8")

// Engine converts two strings into diff tokens.
type Engine interface {
	Tokens(original, revised string) ([]Token, error)
}

// New returns the default Engine, backed by diff-match-patch.
func New(opts Options) Engine {
	return dmpEngine{opts: opts}
}

type dmpEngine struct {
	opts Options
}

func (e dmpEngine) Tokens(original, revised string) ([]Token, error) {
	return Tokens(original, revised, e.opts)
}

// OriginalText concatenates the Equal and Delete tokens.
func OriginalText(tokens []Token) string {
	var b strings.Builder
	for _, t := range tokens {
		if t.Op == OpEqual || t.Op == OpDelete {
			b.WriteString(t.Text)
		}
	}
	return b.String()
}

// RevisedText concatenates the Equal and Insert tokens.
func RevisedText(tokens []Token) string {
	var b strings.Builder
	for _, t := range tokens {
		if t.Op == OpEqual || t.Op == OpInsert {
			b.WriteString(t.Text)
		}
	}
	return b.String()
}
