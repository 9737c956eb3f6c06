package chart

import (
	"errors"
	"fmt"
	"log/slog"
	"reflect"

	"github.com/inamate/svgchart/internal/roundpath"
)

// Chart is a fully computed chart, ready to be encoded as markup or drawn.
type Chart struct {
	Bounds   Bounds     `json:"bounds"`
	Scale    Scale      `json:"scale"`
	Config   Config     `json:"config"`
	Gradient *Gradient  `json:"gradient,omitempty"`
	Grid     []GridLine `json:"grid,omitempty"`
	Path     Path       `json:"path"`
}

// Status describes what a Render call did.
type Status int

const (
	StatusRendered Status = iota
	StatusNoContainer
	StatusNoData
	StatusNoRange
	StatusDegenerateBounds
	StatusDegenerateScale
	StatusEncodeFailed
)

func (s Status) String() string {
	switch s {
	case StatusRendered:
		return "rendered"
	case StatusNoContainer:
		return "no_container"
	case StatusNoData:
		return "no_data"
	case StatusNoRange:
		return "no_range"
	case StatusDegenerateBounds:
		return "degenerate_bounds"
	case StatusDegenerateScale:
		return "degenerate_scale"
	case StatusEncodeFailed:
		return "encode_failed"
	default:
		return fmt.Sprintf("Status(%d)", int(s))
	}
}

// Result is the outcome of Render. Chart is set only when Status is
// StatusRendered; Err explains every other status.
type Result struct {
	Status Status
	Chart  *Chart
	Err    error
}

// Renderer computes charts and installs them into containers.
// It is safe for concurrent use on distinct containers.
type Renderer struct {
	ids          IDSource
	theme        Theme
	logger       *slog.Logger
	radius       float64
	roundCorners CornerRounder
	gradX2       float64
	gradY2       float64
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithIDSource sets where gradient identifiers come from.
func WithIDSource(ids IDSource) Option {
	return func(r *Renderer) { r.ids = ids }
}

// WithTheme sets the stroke and gradient colours.
func WithTheme(t Theme) Option {
	return func(r *Renderer) { r.theme = t }
}

// WithLogger sets the logger used for skipped renders.
func WithLogger(l *slog.Logger) Option {
	return func(r *Renderer) { r.logger = l }
}

// WithRoundRadius sets the corner radius for StyleRounded.
func WithRoundRadius(radius float64) Option {
	return func(r *Renderer) { r.radius = radius }
}

// WithGradientDirection points the fill gradient along (x2, y2) in
// bounding-box units. The default is top to bottom, (0, 1).
func WithGradientDirection(x2, y2 float64) Option {
	return func(r *Renderer) { r.gradX2, r.gradY2 = x2, y2 }
}

// WithCornerRounder replaces the corner-rounding collaborator.
func WithCornerRounder(fn CornerRounder) Option {
	return func(r *Renderer) { r.roundCorners = fn }
}

// NewRenderer creates a renderer with typeid gradient identifiers, the
// default theme, slog.Default and corner radius 15.
func NewRenderer(opts ...Option) *Renderer {
	r := &Renderer{
		ids:          TypeIDs(),
		theme:        DefaultTheme(),
		radius:       DefaultRoundRadius,
		roundCorners: roundpath.RoundCorners,
		gradY2:       1,
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.logger == nil {
		r.logger = slog.Default()
	}
	return r
}

// Theme returns the renderer's colours.
func (r *Renderer) Theme() Theme { return r.theme }

// Compute builds the chart for series inside b without touching any
// container. It returns ErrNoData, ErrDegenerateBounds or
// ErrDegenerateScale for input it cannot draw.
func (r *Renderer) Compute(b Bounds, cfg Config, series []float64) (*Chart, error) {
	if len(series) == 0 {
		return nil, ErrNoData
	}
	if !b.Valid() {
		return nil, fmt.Errorf("%w: %s", ErrDegenerateBounds, b)
	}

	scale, err := NewScale(b, series)
	if err != nil {
		return nil, err
	}

	ch := &Chart{Bounds: b, Scale: scale, Config: cfg}

	var path Path
	switch cfg.Style {
	case StyleRounded:
		path = BuildRoundedPath(series, scale, r.radius, r.roundCorners)
	case StyleDirectional:
		path = BuildDirectionalPath(series, scale)
	default:
		path = BuildLinePath(series, scale)
	}
	path.Stroke = r.theme.Stroke
	path.Fill = "none"

	if cfg.Fill {
		g := NewGradient(r.ids.NewID(), r.theme).WithDirection(r.gradX2, r.gradY2)
		ch.Gradient = &g
		path.Fill = g.URL()
	}
	ch.Path = path

	if cfg.VerticalGrid {
		if lines, ok := GridLines(b, cfg.GridMajorCount, cfg.SubGrid); ok {
			ch.Grid = lines
		}
	}

	return ch, nil
}

// Render reads c's bounds, computes the chart and replaces c's content.
// Any input it cannot draw leaves c untouched and is reported in the
// Result and the log, never as a panic. A nil interface and a nil
// pointer both count as no container.
func (r *Renderer) Render(c Container, cfg Config, series []float64) Result {
	if isNil(c) {
		r.logger.Debug("chart skipped: no container")
		return Result{Status: StatusNoContainer, Err: ErrNoContainer}
	}
	if len(series) == 0 {
		r.logger.Debug("chart skipped: no data")
		return Result{Status: StatusNoData, Err: ErrNoData}
	}

	b, ok := GetRange(c)
	if !ok {
		r.logger.Debug("chart skipped: no viewBox")
		return Result{Status: StatusNoRange, Err: ErrNoRange}
	}

	ch, err := r.Compute(b, cfg, series)
	if err != nil {
		status := statusFor(err)
		r.logger.Info("chart skipped", "status", status.String(), "error", err)
		return Result{Status: status, Err: err}
	}

	markup, err := ch.MarshalMarkup()
	if err != nil {
		err = fmt.Errorf("%w: %v", ErrEncodeMarkup, err)
		r.logger.Error("chart skipped", "status", StatusEncodeFailed.String(), "error", err)
		return Result{Status: StatusEncodeFailed, Err: err}
	}

	c.SetContent(string(markup))
	return Result{Status: StatusRendered, Chart: ch}
}

func isNil(c Container) bool {
	if c == nil {
		return true
	}
	v := reflect.ValueOf(c)
	switch v.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Interface, reflect.Chan:
		return v.IsNil()
	}
	return false
}

func statusFor(err error) Status {
	switch {
	case errors.Is(err, ErrNoData):
		return StatusNoData
	case errors.Is(err, ErrDegenerateBounds):
		return StatusDegenerateBounds
	case errors.Is(err, ErrDegenerateScale):
		return StatusDegenerateScale
	case errors.Is(err, ErrEncodeMarkup):
		return StatusEncodeFailed
	case errors.Is(err, ErrNoContainer):
		return StatusNoContainer
	default:
		return StatusNoRange
	}
}
