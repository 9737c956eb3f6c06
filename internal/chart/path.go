package chart

import (
	"math"

	"github.com/inamate/svgchart/internal/pathdata"
)

const (
	// strokeInset keeps the closing edges outside the viewBox so the
	// 5-unit stroke never shows along them.
	strokeInset = 5

	// DefaultRoundRadius is the corner radius used by StyleRounded.
	DefaultRoundRadius = 15
)

// CornerRounder rewrites straight-segment path data with rounded corners.
type CornerRounder func(d string, radius float64) string

// Path is the closed data path of a chart.
type Path struct {
	// Start is the scaled first sample, where the path leaves the inset edge.
	Start float64 `json:"start"`
	// Body traces the samples.
	Body   []pathdata.Command `json:"body"`
	Fill   string             `json:"fill"`
	Stroke string             `json:"stroke"`
}

// Commands returns the full closed path: it starts at the inset corner,
// drops to the first sample, follows Body, then returns along the inset edge.
func (p Path) Commands() []pathdata.Command {
	cmds := make([]pathdata.Command, 0, len(p.Body)+4)
	cmds = append(cmds,
		pathdata.MoveTo(-strokeInset, -strokeInset),
		pathdata.LineTo(-strokeInset, p.Start),
	)
	cmds = append(cmds, p.Body...)
	return append(cmds, pathdata.VerticalTo(-strokeInset), pathdata.Close())
}

// D returns the path's "d" attribute.
func (p Path) D() string {
	return pathdata.Format(p.Commands())
}

// BuildLinePath joins every sample with a straight segment at x = step*i.
func BuildLinePath(series []float64, s Scale) Path {
	return Path{Start: start(series, s), Body: lineBody(series, s)}
}

// BuildRoundedPath is BuildLinePath with its corners passed through round.
// If the rounded data cannot be read back the straight segments are kept.
func BuildRoundedPath(series []float64, s Scale, radius float64, round CornerRounder) Path {
	body := lineBody(series, s)
	if round != nil && len(body) > 0 {
		if rounded, err := pathdata.Parse(round(pathdata.Format(body), radius)); err == nil {
			body = rounded
		}
	}
	return Path{Start: start(series, s), Body: body}
}

// BuildDirectionalPath walks the series in overlapping triplets a, b, c with
// stride 2 and emits one cubic segment from a to c per triplet. Control
// points lean towards the sign of b-a and c-b. The curve passes through
// every other sample only, and one or two trailing samples may be left
// out depending on parity.
func BuildDirectionalPath(series []float64, s Scale) Path {
	var body []pathdata.Command
	for i := 0; i+2 < len(series); i += 2 {
		a := series[i] * s.Ratio
		b := series[i+1] * s.Ratio
		c := series[i+2] * s.Ratio

		byDir := Direction(a, b)
		cyDir := Direction(b, c)

		body = append(body, pathdata.CubicTo(
			s.Step*float64(i)+s.Step*0.2, a+b*byDir*0.1,
			s.Step*float64(i+2)-s.Step*0.9, b-c*cyDir*0.1,
			s.Step*float64(i+2), c,
		))
	}
	return Path{Start: start(series, s), Body: body}
}

// Direction returns the sign of to-from: 1, -1, or 0 when they are equal.
func Direction(from, to float64) float64 {
	d := to - from
	denom := math.Abs(d)
	if denom == 0 {
		denom = 1
	}
	return d / denom
}

func start(series []float64, s Scale) float64 {
	if len(series) == 0 {
		return 0
	}
	return series[0] * s.Ratio
}

func lineBody(series []float64, s Scale) []pathdata.Command {
	body := make([]pathdata.Command, len(series))
	for i, v := range series {
		body[i] = pathdata.LineTo(s.Step*float64(i), v*s.Ratio)
	}
	return body
}
