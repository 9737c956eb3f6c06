package chart

import "errors"

// Degenerate-input results. None of them is fatal: Render turns them into a
// skipped Result, Compute hands them back to the caller.
var (
	ErrNoContainer      = errors.New("no container")
	ErrNoData           = errors.New("no data")
	ErrNoRange          = errors.New("container has no usable viewBox")
	ErrDegenerateBounds = errors.New("degenerate bounds")
	ErrDegenerateScale  = errors.New("degenerate scale")
)

// ErrEncodeMarkup wraps a failure to encode a computed chart.
var ErrEncodeMarkup = errors.New("encode markup")
