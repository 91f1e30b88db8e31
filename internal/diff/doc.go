// Package diff turns two revisions of a text into an ordered sequence of diff tokens.
//
// Representation: a token is an (Op, Text) pair classifying a run of characters as unchanged (OpEqual), present only in the original (OpDelete), or present only in the
// revision (OpInsert).
//
// Invariants (checked by Validate):
//   - concat(Delete+Equal token text) == original
//   - concat(Insert+Equal token text) == revised
//   - no token has empty Text
//
// Granularity: Tokens can diff by character (the default), by UAX #29 word, or by line. In every mode a semantic cleanup pass coalesces small, fragmented edits into
// human-readable regions, so the exact chunking is a policy choice and may evolve. Consumers should rely on the invariants above rather than any particular chunking.
//
// Getting tokens:
//
//	toks, err := diff.Tokens(original, revised, diff.Options{Granularity: diff.GranularityWord})
//
// Callers that want to swap the algorithm (tests, mostly) depend on the Engine interface; New returns the default diff-match-patch backed Engine.
package diff
