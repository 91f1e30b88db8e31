package diff

import (
	"fmt"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokens_QuickBrownFox(t *testing.T) {
	want := []Token{
		{OpEqual, "The quick "},
		{OpDelete, "brown"},
		{OpInsert, "red"},
		{OpEqual, " fox"},
	}
	for _, g := range []Granularity{GranularityChar, GranularityWord} {
		t.Run(string(g), func(t *testing.T) {
			got, err := Tokens("The quick brown fox", "The quick red fox", Options{Granularity: g})
			require.NoError(t, err)
			require.Equal(t, want, got)
		})
	}
}

func TestTokens_Lines(t *testing.T) {
	got, err := Tokens("a\nb\nc\n", "a\nX\nc\n", Options{Granularity: GranularityLine})
	require.NoError(t, err)
	require.Equal(t, []Token{
		{OpEqual, "a\n"},
		{OpDelete, "b\n"},
		{OpInsert, "X\n"},
		{OpEqual, "c\n"},
	}, got)
}

func TestTokens_Words_KeepsWholeWords(t *testing.T) {
	got, err := Tokens("the cat sat", "the cot sat", Options{Granularity: GranularityWord})
	require.NoError(t, err)

	// Word mode never splits "cat" vs "cot" into single-character edits.
	for _, tok := range got {
		if tok.Op != OpEqual {
			assert.Contains(t, []string{"cat", "cot"}, tok.Text)
		}
	}
}

func TestTokens_Invariants(t *testing.T) {
	pairs := []struct {
		name     string
		old, new string
	}{
		{"both empty", "", ""},
		{"add everything", "", "hello\nworld\n"},
		{"delete everything", "hello\nworld\n", ""},
		{"identical", "same text", "same text"},
		{"prefix", "world", "hello world"},
		{"suffix", "hello", "hello world"},
		{"scattered", "The quick brown fox jumps over the lazy dog.", "A quick red fox jumped over one lazy cat!"},
		{"multiline", "a\nb\nc\nd\ne\n", "a\nz\nc\ny\ne\nf"},
		{"unicode", "naïve café 日本語", "naive cafe 日本"},
		{"crlf", "a\r\nb\r\n", "a\r\nX\r\n"},
		{"whitespace only", "a  b\tc", "a b c"},
	}

	for _, g := range Granularities {
		for _, p := range pairs {
			t.Run(fmt.Sprintf("%s/%s", g, p.name), func(t *testing.T) {
				toks, err := Tokens(p.old, p.new, Options{Granularity: g})
				require.NoError(t, err)
				require.NoError(t, Validate(toks, p.old, p.new))
				assert.Equal(t, p.old, OriginalText(toks))
				assert.Equal(t, p.new, RevisedText(toks))
				for i := range toks {
					assert.NotEmpty(t, toks[i].Text)
					if i > 0 {
						assert.NotEqual(t, toks[i-1].Op, toks[i].Op, "adjacent tokens share an op at %d", i)
					}
				}
			})
		}
	}
}

func TestTokens_UnknownGranularity(t *testing.T) {
	_, err := Tokens("a", "b", Options{Granularity: "paragraph"})
	require.Error(t, err)
}

func TestEngine(t *testing.T) {
	e := New(Options{Granularity: GranularityLine})
	toks, err := e.Tokens("x\n", "y\n")
	require.NoError(t, err)
	require.Equal(t, []Token{{OpDelete, "x\n"}, {OpInsert, "y\n"}}, toks)
}

func TestParseGranularity(t *testing.T) {
	for in, want := range map[string]Granularity{
		"":       GranularityChar,
		"char":   GranularityChar,
		" Word ": GranularityWord,
		"LINE":   GranularityLine,
	} {
		got, err := ParseGranularity(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseGranularity("sentence")
	require.Error(t, err)
}

func TestRuneIndexEncoding(t *testing.T) {
	for _, i := range []int{1, 2, surrogateStart - 1, surrogateStart, surrogateStart + 1, 0x20000, maxWordIndex} {
		r := indexToRune(i)
		require.True(t, utf8.ValidRune(r), "index %d encodes to invalid rune %U", i, r)
		require.Equal(t, i, runeToIndex(r))
		require.Equal(t, []rune{r}, []rune(string(r)))
	}
}

func TestOpAndTokenString(t *testing.T) {
	assert.Equal(t, "insert", OpInsert.String())
	assert.Equal(t, "Op(9)", Op(9).String())
	assert.Equal(t, `-"brown"`, Token{OpDelete, "brown"}.String())
}

func TestTokens_InvalidUTF8(t *testing.T) {
	for _, g := range Granularities {
		t.Run(string(g), func(t *testing.T) {
			_, err := Tokens("caf\xe9 au lait\n", "caf\xe9 noir\n", Options{Granularity: g})
			require.ErrorIs(t, err, ErrInvalidUTF8)
			assert.NotErrorIs(t, err, ErrMalformed)

			_, err = Tokens("café\n", "caf\xff\n", Options{Granularity: g})
			require.ErrorIs(t, err, ErrInvalidUTF8)
			assert.Contains(t, err.Error(), "revised")
		})
	}
}

func TestTokens_WordFallsBackToChars(t *testing.T) {
	old := wordIndexLimit
	wordIndexLimit = 2
	t.Cleanup(func() { wordIndexLimit = old })

	original, revised := "the quick brown fox", "the quick red fox"
	_, _, _, ok := wordsToRunes(original, revised)
	require.False(t, ok)

	got, err := Tokens(original, revised, Options{Granularity: GranularityWord})
	require.NoError(t, err)
	require.NoError(t, Validate(got, original, revised))
	assert.Equal(t, original, OriginalText(got))
	assert.Equal(t, revised, RevisedText(got))
}
