// Package render projects a review Document into human-readable outputs: an inline ANSI view for terminals (ANSI), an aligned segment table (Segments), a Markdown
// or HTML review report (Markdown, HTML), and a unified patch from the original to the reconstructed text (Patch).
//
// Renderers never mutate the Document. Which segments get action labels is derived from review.Segment.Actionable on every call.
package render
