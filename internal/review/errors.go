package review

import (
	"errors"

	"github.com/codalotl/diffreview/internal/diff"
)

var (
	// ErrInvalidTransition is returned when accepting or rejecting a Segment that is not Pending.
	ErrInvalidTransition = errors.New("invalid transition")

	// ErrUnknownSegment is returned when a command names a Segment ID that is not in the Document.
	ErrUnknownSegment = errors.New("unknown segment")

	// ErrMalformedDiff is wrapped when the diff engine breaks its contract. It is the same value as diff.ErrMalformed.
	ErrMalformedDiff = diff.ErrMalformed

	// ErrNoDocument is returned by commands issued before the first successful Compare.
	ErrNoDocument = errors.New("no document: run compare first")
)

// ErrInvalidCommand is returned when a command script cannot be parsed.
var ErrInvalidCommand = errors.New("invalid command")
