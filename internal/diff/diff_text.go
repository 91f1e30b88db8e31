package diff

import (
	"fmt"
	"unicode/utf8"

	"github.com/clipperhouse/uax29/v2/words"
	"github.com/sergi/go-diff/diffmatchpatch"
)

// Tokens diffs original to revised at opts.Granularity and returns the token sequence after semantic cleanup. The result satisfies the package invariants; if the
// underlying engine ever produced something else, Tokens returns an error wrapping ErrMalformed instead. Both inputs must be valid UTF-8, or Tokens returns ErrInvalidUTF8
// at every granularity.
func Tokens(original, revised string, opts Options) ([]Token, error) {
	g, err := ParseGranularity(string(opts.Granularity))
	if err != nil {
		return nil, err
	}
	if !utf8.ValidString(original) {
		return nil, fmt.Errorf("original: %w", ErrInvalidUTF8)
	}
	if !utf8.ValidString(revised) {
		return nil, fmt.Errorf("revised: %w", ErrInvalidUTF8)
	}

	dmp := diffmatchpatch.New()
	if opts.Timeout > 0 {
		dmp.DiffTimeout = opts.Timeout
	}

	var diffs []diffmatchpatch.Diff
	switch g {
	case GranularityChar:
		diffs = dmp.DiffCleanupSemantic(dmp.DiffMain(original, revised, false))
	case GranularityLine:
		// Clean up while still encoded so that no edit ever splits a line.
		rOld, rNew, lineArray := dmp.DiffLinesToRunes(original, revised)
		diffs = dmp.DiffCleanupSemantic(dmp.DiffMainRunes(rOld, rNew, false))
		diffs = dmp.DiffCharsToLines(diffs, lineArray)
	case GranularityWord:
		rOld, rNew, wordArray, ok := wordsToRunes(original, revised)
		if !ok {
			// Too many distinct words to encode as runes. Characters always work.
			diffs = dmp.DiffCleanupSemantic(dmp.DiffMain(original, revised, false))
			break
		}
		diffs = dmp.DiffCleanupSemantic(dmp.DiffMainRunes(rOld, rNew, false))
		diffs = decodeRunes(diffs, wordArray)
	}

	tokens := fromDMP(diffs)
	if err := Validate(tokens, original, revised); err != nil {
		return nil, fmt.Errorf("diff %s: %w", g, err)
	}
	return tokens, nil
}

// fromDMP converts diffmatchpatch diffs to tokens, dropping empty diffs and coalescing adjacent diffs with the same operation.
func fromDMP(diffs []diffmatchpatch.Diff) []Token {
	tokens := make([]Token, 0, len(diffs))
	for _, d := range diffs {
		if d.Text == "" {
			continue
		}
		var op Op
		switch d.Type {
		case diffmatchpatch.DiffEqual:
			op = OpEqual
		case diffmatchpatch.DiffDelete:
			op = OpDelete
		case diffmatchpatch.DiffInsert:
			op = OpInsert
		default:
			// Let Validate report it.
			op = Op(-1)
		}
		if n := len(tokens); n > 0 && tokens[n-1].Op == op {
			tokens[n-1].Text += d.Text
			continue
		}
		tokens = append(tokens, Token{Op: op, Text: d.Text})
	}
	return tokens
}

// Word indexes are encoded as runes so diff-match-patch can diff them like characters. Index 0 is never used (NUL confuses debuggers), and the UTF-16 surrogate
// block is skipped because those code points don't survive a round-trip through string.
const (
	surrogateStart = 0xD800
	surrogateEnd   = 0xE000
	maxWordIndex   = utf8.MaxRune - (surrogateEnd - surrogateStart)
)

// wordIndexLimit is the largest word index wordsToRunes will assign. Tests lower it.
var wordIndexLimit int = maxWordIndex

func indexToRune(i int) rune {
	if i >= surrogateStart {
		i += surrogateEnd - surrogateStart
	}
	return rune(i)
}

func runeToIndex(r rune) int {
	i := int(r)
	if i >= surrogateEnd {
		i -= surrogateEnd - surrogateStart
	}
	return i
}

// wordsToRunes splits both texts at UAX #29 word boundaries and encodes each distinct word as a rune. wordArray[runeToIndex(r)] is the word for r. ok is false if
// there are more distinct words than runes.
func wordsToRunes(text1, text2 string) (r1, r2 []rune, wordArray []string, ok bool) {
	wordArray = []string{""}
	wordHash := make(map[string]int)

	encode := func(text string) ([]rune, bool) {
		var out []rune
		iter := words.FromString(text)
		for iter.Next() {
			w := iter.Value()
			idx, seen := wordHash[w]
			if !seen {
				idx = len(wordArray)
				if idx > wordIndexLimit {
					return nil, false
				}
				wordArray = append(wordArray, w)
				wordHash[w] = idx
			}
			out = append(out, indexToRune(idx))
		}
		return out, true
	}

	if r1, ok = encode(text1); !ok {
		return nil, nil, nil, false
	}
	if r2, ok = encode(text2); !ok {
		return nil, nil, nil, false
	}
	return r1, r2, wordArray, true
}

// decodeRunes rewrites rune-encoded diffs back into the words they stand for.
func decodeRunes(diffs []diffmatchpatch.Diff, wordArray []string) []diffmatchpatch.Diff {
	out := make([]diffmatchpatch.Diff, 0, len(diffs))
	for _, d := range diffs {
		var text []byte
		for _, r := range d.Text {
			if idx := runeToIndex(r); idx > 0 && idx < len(wordArray) {
				text = append(text, wordArray[idx]...)
			}
		}
		out = append(out, diffmatchpatch.Diff{Type: d.Type, Text: string(text)})
	}
	return out
}
