package chart

import (
	"math"
)

// Grid line classes, styled by the host page.
const (
	ClassGridLine    = "grid-line"
	ClassSubgridLine = "subgrid-line"
)

// Theme holds the colours written into the markup. Values are used verbatim,
// so CSS custom properties such as "var(--color-stop-1)" are allowed.
type Theme struct {
	Stroke string    `json:"stroke"`
	Stops  [3]string `json:"stops"`
}

// DefaultTheme strokes in gray and binds the gradient to the page's
// --color-stop-1..3 custom properties.
func DefaultTheme() Theme {
	return Theme{
		Stroke: "gray",
		Stops: [3]string{
			"var(--color-stop-1)",
			"var(--color-stop-2)",
			"var(--color-stop-3)",
		},
	}
}

// GradientStop is one colour stop of a gradient.
type GradientStop struct {
	Offset string `json:"offset"`
	Color  string `json:"color"`
}

// Gradient is a linear gradient definition. X2, Y2 give the direction
// vector from the origin in bounding-box units.
type Gradient struct {
	ID    string         `json:"id"`
	X2    float64        `json:"x2"`
	Y2    float64        `json:"y2"`
	Stops []GradientStop `json:"stops"`
}

// NewGradient returns a top-to-bottom gradient with stops at 0%, 50% and
// 100% bound to the theme's three colours.
func NewGradient(id string, theme Theme) Gradient {
	return Gradient{
		ID: id,
		X2: 0,
		Y2: 1,
		Stops: []GradientStop{
			{Offset: "0%", Color: theme.Stops[0]},
			{Offset: "50%", Color: theme.Stops[1]},
			{Offset: "100%", Color: theme.Stops[2]},
		},
	}
}

// WithDirection returns a copy of g pointing along (x2, y2).
func (g Gradient) WithDirection(x2, y2 float64) Gradient {
	g.X2, g.Y2 = x2, y2
	return g
}

// URL returns the paint reference for g, e.g. "url(#gr_01h...)".
func (g Gradient) URL() string {
	return "url(#" + g.ID + ")"
}

// GridLine is a vertical guide line spanning Y1..Y2 at X.
type GridLine struct {
	Class string  `json:"class"`
	X     float64 `json:"x"`
	Y1    float64 `json:"y1"`
	Y2    float64 `json:"y2"`
}

// GridLines lays out n major vertical lines at x = step*p for p in 1..n,
// where step = floor(width/n). With subGrid each major line is preceded by
// a minor line half a step to its left. It reports false when n is not
// positive or either span is not a finite number.
func GridLines(b Bounds, n int, subGrid bool) ([]GridLine, bool) {
	w, h := b.Width(), b.Height()
	if n <= 0 || !finite(w) || !finite(h) {
		return nil, false
	}

	step := math.Floor(w / float64(n))
	halfStep := math.Floor(step / 2)

	size := n
	if subGrid {
		size *= 2
	}
	lines := make([]GridLine, 0, size)
	for p := 1; p <= n; p++ {
		x := step * float64(p)
		if subGrid {
			lines = append(lines, GridLine{Class: ClassSubgridLine, X: x - halfStep, Y1: b.Y1, Y2: b.Y2})
		}
		lines = append(lines, GridLine{Class: ClassGridLine, X: x, Y1: b.Y1, Y2: b.Y2})
	}
	return lines, true
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
