package chart

import (
	"fmt"
	"math"
	"regexp"
	"strings"
)

// bottomMargin shrinks the usable height so the stroke is not clipped.
const bottomMargin = 0.98

var viewBoxSep = regexp.MustCompile(`\s+|,`)

// Bounds is the coordinate rectangle a container declares.
type Bounds struct {
	X1 float64 `json:"x1"`
	Y1 float64 `json:"y1"`
	X2 float64 `json:"x2"`
	Y2 float64 `json:"y2"`
}

// Width returns X2 - X1.
func (b Bounds) Width() float64 { return b.X2 - b.X1 }

// Height returns Y2 - Y1.
func (b Bounds) Height() float64 { return b.Y2 - b.Y1 }

// Valid reports whether a chart can be drawn into b.
func (b Bounds) Valid() bool {
	return b.X2 > b.X1 && b.Y2 > b.Y1
}

// Frame returns the declared viewBox as min-x, min-y, width, height,
// undoing the bottom margin.
func (b Bounds) Frame() (x, y, w, h float64) {
	return b.X1, b.Y1, b.X2, b.Y2 / bottomMargin
}

func (b Bounds) String() string {
	return fmt.Sprintf("{x1:%g y1:%g x2:%g y2:%g}", b.X1, b.Y1, b.X2, b.Y2)
}

// ParseViewBox reads a viewBox attribute. Tokens are separated by runs of
// whitespace or single commas; each of the first four is read as an integer,
// defaulting to 0. The fourth value is reduced by the bottom margin.
// It reports false when fewer than four tokens are present.
func ParseViewBox(attr string) (Bounds, bool) {
	attr = strings.TrimSpace(attr)
	if attr == "" {
		return Bounds{}, false
	}

	toks := viewBoxSep.Split(attr, -1)
	if len(toks) < 4 {
		return Bounds{}, false
	}

	return Bounds{
		X1: parseIntPrefix(toks[0]),
		Y1: parseIntPrefix(toks[1]),
		X2: parseIntPrefix(toks[2]),
		Y2: parseIntPrefix(toks[3]) * bottomMargin,
	}, true
}

// GetRange extracts the bounds of a container.
func GetRange(c Container) (Bounds, bool) {
	if c == nil {
		return Bounds{}, false
	}
	attr, ok := c.ViewBox()
	if !ok {
		return Bounds{}, false
	}
	return ParseViewBox(attr)
}

// parseIntPrefix reads the leading integer of s ("12.7" → 12, "7px" → 7).
// Anything without leading digits yields 0.
func parseIntPrefix(s string) float64 {
	s = strings.TrimSpace(s)
	neg := false
	if s != "" && (s[0] == '-' || s[0] == '+') {
		neg = s[0] == '-'
		s = s[1:]
	}

	v := 0.0
	digits := 0
	for digits < len(s) && s[digits] >= '0' && s[digits] <= '9' {
		v = v*10 + float64(s[digits]-'0')
		digits++
	}
	if digits == 0 || math.IsInf(v, 0) {
		return 0
	}
	if neg {
		return -v
	}
	return v
}
