package chart

import (
	"strconv"
	"sync/atomic"

	"github.com/inamate/svgchart/internal/typeid"
)

// IDSource hands out gradient identifiers. Implementations must be safe for
// concurrent use and must not repeat an identifier within a process.
type IDSource interface {
	NewID() string
}

// IDFunc adapts a function to IDSource.
type IDFunc func() string

// NewID calls f.
func (f IDFunc) NewID() string { return f() }

// TypeIDs returns the default source: typeids with the gradient prefix.
func TypeIDs() IDSource {
	return IDFunc(typeid.NewGradientID)
}

// CounterIDs produces prefix1, prefix2, ... in order.
type CounterIDs struct {
	prefix string
	n      atomic.Uint64
}

// NewCounterIDs creates a counter-backed source.
func NewCounterIDs(prefix string) *CounterIDs {
	return &CounterIDs{prefix: prefix}
}

// NewID returns the next identifier.
func (c *CounterIDs) NewID() string {
	return c.prefix + strconv.FormatUint(c.n.Add(1), 10)
}
