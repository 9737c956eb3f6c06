// Package pathdata models SVG path data: the commands that make up a path's
// "d" attribute, their text form, and simple geometry over them.
package pathdata

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Command is a single absolute path segment.
// Args holds the numeric operands in SVG order, e.g. "C" carries
// x1 y1 x2 y2 x y.
type Command struct {
	Op   byte
	Args []float64
}

// MoveTo returns an "M" command.
func MoveTo(x, y float64) Command { return Command{Op: 'M', Args: []float64{x, y}} }

// LineTo returns an "L" command.
func LineTo(x, y float64) Command { return Command{Op: 'L', Args: []float64{x, y}} }

// VerticalTo returns a "V" command.
func VerticalTo(y float64) Command { return Command{Op: 'V', Args: []float64{y}} }

// CubicTo returns a "C" command.
func CubicTo(x1, y1, x2, y2, x, y float64) Command {
	return Command{Op: 'C', Args: []float64{x1, y1, x2, y2, x, y}}
}

// Close returns a "Z" command.
func Close() Command { return Command{Op: 'Z'} }

// String renders the command as it appears in a "d" attribute, e.g. "L 10 20".
func (c Command) String() string {
	var sb strings.Builder
	c.writeTo(&sb)
	return sb.String()
}

func (c Command) writeTo(sb *strings.Builder) {
	sb.WriteByte(c.Op)
	for _, a := range c.Args {
		sb.WriteByte(' ')
		sb.WriteString(FormatNumber(a))
	}
}

// MarshalJSON encodes the command in Canvas2D order: ["C", x1, y1, x2, y2, x, y].
func (c Command) MarshalJSON() ([]byte, error) {
	out := make([]interface{}, 0, len(c.Args)+1)
	out = append(out, string(c.Op))
	for _, a := range c.Args {
		out = append(out, a)
	}
	return json.Marshal(out)
}

// EndPoint returns the point the command leaves the pen at. Commands that
// only carry one coordinate ("H", "V") or none ("Z") report ok=false.
func (c Command) EndPoint() (x, y float64, ok bool) {
	n := len(c.Args)
	switch c.Op {
	case 'M', 'L', 'C', 'Q', 'S', 'T', 'A':
		if n >= 2 {
			return c.Args[n-2], c.Args[n-1], true
		}
	}
	return 0, 0, false
}

// Format joins commands into a "d" attribute value.
func Format(cmds []Command) string {
	var sb strings.Builder
	for i, c := range cmds {
		if i > 0 {
			sb.WriteByte(' ')
		}
		c.writeTo(&sb)
	}
	return sb.String()
}

// FormatNumber writes v in its shortest decimal form ("5", "-0.5", "12.25").
func FormatNumber(v float64) string {
	if v == 0 {
		// avoid "-0"
		return "0"
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// Rect is an axis-aligned bounding box.
type Rect struct {
	X      float64
	Y      float64
	Width  float64
	Height float64
}

// IsEmpty checks if the rect has zero or negative area.
func (r Rect) IsEmpty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// Bounds computes the bounding box of a path's points, control points included.
func Bounds(cmds []Command) Rect {
	var minX, minY, maxX, maxY float64
	first := true

	add := func(x, y float64) {
		if first {
			minX, maxX = x, x
			minY, maxY = y, y
			first = false
			return
		}
		minX = math.Min(minX, x)
		maxX = math.Max(maxX, x)
		minY = math.Min(minY, y)
		maxY = math.Max(maxY, y)
	}

	walk(cmds, func(c Command, curX, curY float64) {
		switch c.Op {
		case 'H':
			add(c.Args[0], curY)
		case 'V':
			add(curX, c.Args[0])
		case 'A':
			add(c.Args[5], c.Args[6])
		case 'Z':
		default:
			for i := 0; i+1 < len(c.Args); i += 2 {
				add(c.Args[i], c.Args[i+1])
			}
		}
	})

	if first {
		return Rect{}
	}
	return Rect{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
}

// End returns the current point after the whole path has been drawn.
func End(cmds []Command) (x, y float64, ok bool) {
	x, y, n := walk(cmds, nil)
	return x, y, n > 0
}

// walk calls fn, when non-nil, for every well-formed command with the pen
// position before it. It returns the final pen position and the number of
// commands visited.
func walk(cmds []Command, fn func(c Command, curX, curY float64)) (float64, float64, int) {
	var curX, curY, startX, startY float64
	n := 0
	for _, c := range cmds {
		if len(c.Args) < argCount(c.Op) {
			continue
		}
		if fn != nil {
			fn(c, curX, curY)
		}
		curX, curY, startX, startY = advance(c, curX, curY, startX, startY)
		n++
	}
	return curX, curY, n
}

func advance(c Command, curX, curY, startX, startY float64) (float64, float64, float64, float64) {
	switch c.Op {
	case 'M':
		return c.Args[0], c.Args[1], c.Args[0], c.Args[1]
	case 'H':
		return c.Args[0], curY, startX, startY
	case 'V':
		return curX, c.Args[0], startX, startY
	case 'Z':
		return startX, startY, startX, startY
	}
	if x, y, ok := c.EndPoint(); ok {
		return x, y, startX, startY
	}
	return curX, curY, startX, startY
}
