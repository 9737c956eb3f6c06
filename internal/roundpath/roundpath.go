// Package roundpath replaces the sharp corners of straight-line path data
// with short cubic curves.
package roundpath

import (
	"log/slog"
	"math"

	"github.com/inamate/svgchart/internal/pathdata"
)

type point struct{ x, y float64 }

// RoundCorners takes path data made of straight segments and returns
// equivalent path data where every corner between two line segments is
// cut back by up to radius and bridged with a cubic curve. The cut never
// exceeds half of either adjoining segment. Data that cannot be parsed is
// returned unchanged.
func RoundCorners(d string, radius float64) string {
	cmds, err := pathdata.Parse(d)
	if err != nil {
		slog.Warn("round corners: unparsable path", "error", err)
		return d
	}
	return pathdata.Format(Round(cmds, radius))
}

// Round is RoundCorners over parsed commands. The input is not modified.
func Round(cmds []pathdata.Command, radius float64) []pathdata.Command {
	if len(cmds) < 2 || radius <= 0 {
		return cmds
	}

	// Resolve every command's end point; Z ends where the subpath started.
	ends := make([]point, len(cmds))
	var start, cur point
	for i, c := range cmds {
		switch c.Op {
		case 'Z':
			cur = start
		case 'H':
			cur = point{c.Args[0], cur.y}
		case 'V':
			cur = point{cur.x, c.Args[0]}
		default:
			if x, y, ok := c.EndPoint(); ok {
				cur = point{x, y}
			}
			if c.Op == 'M' {
				start = cur
			}
		}
		ends[i] = cur
	}

	out := make([]pathdata.Command, 0, len(cmds)*2)
	out = append(out, cmds[0])
	for i := 1; i < len(cmds); i++ {
		c := cmds[i]
		if i+1 >= len(cmds) || !isLine(c) || !isLine(cmds[i+1]) {
			out = append(out, c)
			continue
		}

		prev, corner, next := ends[i-1], ends[i], ends[i+1]
		curveStart := towards(corner, prev, math.Min(radius, dist(prev, corner)/2))
		curveEnd := towards(corner, next, math.Min(radius, dist(corner, next)/2))

		startCtl := lerp(curveStart, corner, 0.5)
		endCtl := lerp(corner, curveEnd, 0.5)

		// The corner's own segment now stops short of the corner.
		out = append(out, pathdata.LineTo(curveStart.x, curveStart.y))
		out = append(out, pathdata.CubicTo(startCtl.x, startCtl.y, endCtl.x, endCtl.y, curveEnd.x, curveEnd.y))
		if c.Op == 'Z' {
			out = append(out, c)
		}
	}
	return out
}

func isLine(c pathdata.Command) bool {
	switch c.Op {
	case 'L', 'H', 'V', 'Z':
		return true
	}
	return false
}

func dist(a, b point) float64 {
	return math.Hypot(b.x-a.x, b.y-a.y)
}

// towards moves from a towards b by length.
func towards(a, b point, length float64) point {
	d := dist(a, b)
	if d == 0 {
		return a
	}
	return lerp(a, b, length/d)
}

func lerp(a, b point, t float64) point {
	return point{a.x + (b.x-a.x)*t, a.y + (b.y-a.y)*t}
}
