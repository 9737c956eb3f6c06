// Package raster draws computed charts into PNG images with gogpu/gg.
package raster

import (
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/gogpu/gg"

	"github.com/inamate/svgchart/internal/chart"
	"github.com/inamate/svgchart/internal/pathdata"
)

// Options controls the output image.
type Options struct {
	Width      int
	Height     int
	Background string // hex colour
	// Palette resolves paint values that only a browser understands,
	// such as CSS custom properties, into hex colours.
	Palette map[string]string
	FlipY   bool
}

// DefaultOptions returns a 600×200 image on white with the default palette.
func DefaultOptions() Options {
	return Options{
		Width:      600,
		Height:     200,
		Background: "#ffffff",
		Palette: map[string]string{
			"var(--color-stop-1)": "#4f46e5",
			"var(--color-stop-2)": "#06b6d4",
			"var(--color-stop-3)": "#e0f2fe",
			"gray":                "#808080",
		},
		FlipY: true,
	}
}

var ErrInvalidSize = errors.New("invalid image size")

// Encode draws ch and writes it to w as PNG.
func Encode(w io.Writer, ch *chart.Chart, opts Options) error {
	dc, err := Draw(ch, opts)
	if err != nil {
		return err
	}
	defer dc.Close()

	if err := dc.EncodePNG(w); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}

// Draw paints ch's draw commands onto a new context. The caller owns the
// returned context and must Close it.
func Draw(ch *chart.Chart, opts Options) (*gg.Context, error) {
	if opts.Width <= 0 || opts.Height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidSize, opts.Width, opts.Height)
	}
	if ch == nil {
		return nil, chart.ErrNoData
	}

	x, y, w, h := ch.Bounds.Frame()
	if !(w > 0) || !(h > 0) || math.IsInf(w, 0) || math.IsInf(h, 0) {
		return nil, fmt.Errorf("%w: viewBox frame %gx%g", chart.ErrDegenerateBounds, w, h)
	}

	dc := gg.NewContext(opts.Width, opts.Height)
	if bg, ok := opts.color(opts.Background); ok {
		dc.ClearWithColor(bg)
	}

	m := Viewport(x, y, w, h, opts.Width, opts.Height, opts.FlipY)
	// Stroke widths scale with the horizontal axis.
	unit := float64(opts.Width) / w

	gradients := make(map[string]*chart.Gradient)
	for _, cmd := range chart.CompileDrawCommands(ch) {
		switch cmd.Op {
		case "gradient":
			gradients[cmd.Gradient.URL()] = cmd.Gradient
		case "line", "path":
			if err := opts.paint(dc, m, unit, cmd, gradients); err != nil {
				dc.Close()
				return nil, fmt.Errorf("draw %s: %w", cmd.Op, err)
			}
		}
	}
	return dc, nil
}

func (o Options) paint(dc *gg.Context, m gg.Matrix, unit float64, cmd chart.DrawCommand, gradients map[string]*chart.Gradient) error {
	filled := false
	if g, ok := gradients[cmd.Fill]; ok {
		if box := pathdata.Bounds(cmd.Path); !box.IsEmpty() {
			dc.SetFillBrush(o.gradientBrush(g, m, box))
			filled = true
		} else if c, ok := o.color(g.Stops[0].Color); ok {
			// A flat box gives the gradient no extent; use its first stop.
			dc.SetFillBrush(gg.Solid(c))
			filled = true
		}
	} else if c, ok := o.color(cmd.Fill); ok {
		dc.SetFillBrush(gg.Solid(c))
		filled = true
	}

	if filled {
		trace(dc, m, cmd.Path)
		if err := dc.Fill(); err != nil {
			return err
		}
	}

	stroke, ok := o.color(cmd.Stroke)
	if !ok {
		return nil
	}
	dc.SetStrokeBrush(gg.Solid(stroke))
	dc.SetLineWidth(cmd.StrokeWidth * unit)
	trace(dc, m, cmd.Path)
	return dc.Stroke()
}

// gradientBrush places g over the path's bounding box, the way SVG's
// default objectBoundingBox units do.
func (o Options) gradientBrush(g *chart.Gradient, m gg.Matrix, box pathdata.Rect) *gg.LinearGradientBrush {
	x0, y0 := project(m, box.X, box.Y)
	x1, y1 := project(m, box.X+g.X2*box.Width, box.Y+g.Y2*box.Height)

	brush := gg.NewLinearGradientBrush(x0, y0, x1, y1)
	for _, s := range g.Stops {
		c, ok := o.color(s.Color)
		if !ok {
			c = gg.Transparent
		}
		brush.AddColorStop(offset(s.Offset), c)
	}
	return brush
}

// trace replays path commands on dc in pixel space.
func trace(dc *gg.Context, m gg.Matrix, cmds []pathdata.Command) {
	dc.ClearPath()
	var curX, curY, startX, startY float64
	for _, c := range cmds {
		switch c.Op {
		case 'M':
			curX, curY = c.Args[0], c.Args[1]
			startX, startY = curX, curY
			dc.MoveTo(project(m, curX, curY))
		case 'L':
			curX, curY = c.Args[0], c.Args[1]
			dc.LineTo(project(m, curX, curY))
		case 'H':
			curX = c.Args[0]
			dc.LineTo(project(m, curX, curY))
		case 'V':
			curY = c.Args[0]
			dc.LineTo(project(m, curX, curY))
		case 'Q':
			cx, cy := project(m, c.Args[0], c.Args[1])
			curX, curY = c.Args[2], c.Args[3]
			x, y := project(m, curX, curY)
			dc.QuadraticTo(cx, cy, x, y)
		case 'C':
			c1x, c1y := project(m, c.Args[0], c.Args[1])
			c2x, c2y := project(m, c.Args[2], c.Args[3])
			curX, curY = c.Args[4], c.Args[5]
			x, y := project(m, curX, curY)
			dc.CubicTo(c1x, c1y, c2x, c2y, x, y)
		case 'Z':
			dc.ClosePath()
			curX, curY = startX, startY
		}
	}
}

// color resolves a paint value. "none", "" and unknown names report false.
func (o Options) color(v string) (gg.RGBA, bool) {
	v = strings.TrimSpace(v)
	if mapped, ok := o.Palette[v]; ok {
		v = mapped
	}
	if strings.HasPrefix(v, "#") {
		return gg.Hex(v), true
	}
	return gg.RGBA{}, false
}

// offset reads "50%" or "0.5" as 0.5.
func offset(s string) float64 {
	s = strings.TrimSpace(s)
	scale := 1.0
	if strings.HasSuffix(s, "%") {
		s = strings.TrimSuffix(s, "%")
		scale = 100
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v / scale
}
