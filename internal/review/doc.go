// Package review models a two-revision comparison as a Document of unchanged spans and reviewable Segments, and lets a caller accept, reject, and undo decisions
// on those Segments.
//
// The Document is the single source of truth: Reconstruct derives the current text from it as a pure function, and renderers are one-way projections of it. A
// Segment is actionable (can be accepted or rejected) iff it is Pending; renderers should derive the controls they show from Segment.Actionable on every render.
//
// Session ties a diff.Engine, the current Document, and a History (a global LIFO of full before/after Segment snapshots) together:
//
//	s := review.NewSession(diff.New(diff.Options{}))
//	doc, err := s.Compare("The quick brown fox", "The quick red fox")
//	_ = s.Accept(doc.Segments()[0].ID) // s.Text() == "The quick red fox"
//	s.Undo()                           // s.Text() == "The quick brown fox"
//
// A Session is not safe for concurrent use; commands are expected to arrive one at a time from a single UI event loop.
package review
