package chart

import (
	"bytes"
	"fmt"
	"log/slog"
	"math"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type RendererSuite struct {
	suite.Suite
	logs     *bytes.Buffer
	renderer *Renderer
}

func (s *RendererSuite) SetupTest() {
	s.logs = &bytes.Buffer{}
	logger := slog.New(slog.NewTextHandler(s.logs, &slog.HandlerOptions{Level: slog.LevelDebug}))
	s.renderer = NewRenderer(WithIDSource(NewCounterIDs("gr")), WithLogger(logger))
}

func TestRendererSuite(t *testing.T) {
	suite.Run(t, new(RendererSuite))
}

func (s *RendererSuite) TestRenderStraight() {
	c := newFakeContainer("0 0 100 100")
	cfg := DefaultConfig()
	cfg.VerticalGrid = false

	res := s.renderer.Render(c, cfg, []float64{1, 2, 4})
	s.Require().Equal(StatusRendered, res.Status)
	s.Require().NoError(res.Err)
	s.Equal(1, c.sets)
	s.Equal(`<path d="M -5 -5 L -5 24.5 L 0 24.5 L 50 49 L 100 98 V -5 Z" stroke="gray" fill="none"></path>`, c.content)
}

func (s *RendererSuite) TestRenderFillAndGridOrder() {
	c := newFakeContainer("0 0 300 100")
	cfg := DefaultConfig()
	cfg.Fill = true

	res := s.renderer.Render(c, cfg, []float64{21, 24, 8, 7, 9, 4, 11, 14, 13, 16, 12, 10, 3})
	s.Require().Equal(StatusRendered, res.Status)

	gradientAt := strings.Index(c.content, "<linearGradient")
	lineAt := strings.Index(c.content, "<line class=")
	pathAt := strings.Index(c.content, "<path ")
	s.GreaterOrEqual(gradientAt, 0)
	s.Greater(lineAt, gradientAt)
	s.Greater(pathAt, lineAt)

	s.Contains(c.content, `<linearGradient id="gr1" x2="0" y2="1">`)
	s.Contains(c.content, `<stop offset="0%" stop-color="var(--color-stop-1)"></stop>`)
	s.Contains(c.content, `<stop offset="50%" stop-color="var(--color-stop-2)"></stop>`)
	s.Contains(c.content, `<stop offset="100%" stop-color="var(--color-stop-3)"></stop>`)
	s.Contains(c.content, `fill="url(#gr1)"`)
	s.Contains(c.content, `<line class="subgrid-line" x1="25" y1="0" x2="25" y2="98"></line>`)
	s.Equal(12, strings.Count(c.content, "<line class="))
}

func (s *RendererSuite) TestRenderGradientIDsAreUnique() {
	cfg := DefaultConfig()
	cfg.Fill = true

	first := newFakeContainer("0 0 100 100")
	second := newFakeContainer("0 0 100 100")
	s.renderer.Render(first, cfg, []float64{1, 2})
	s.renderer.Render(second, cfg, []float64{1, 2})

	s.Contains(first.content, `id="gr1"`)
	s.Contains(second.content, `id="gr2"`)
}

func (s *RendererSuite) TestRenderSingleSampleAllStyles() {
	for _, style := range []Style{StyleStraight, StyleRounded, StyleDirectional} {
		c := newFakeContainer("0 0 100 50")
		cfg := DefaultConfig()
		cfg.Style = style

		res := s.renderer.Render(c, cfg, []float64{5})
		s.Require().Equal(StatusRendered, res.Status, style.String())
		s.Equal(1, c.sets)
		s.NotContains(res.Chart.Path.D(), "NaN", style.String())
		if style == StyleDirectional {
			s.NotContains(res.Chart.Path.D(), "C")
		}
	}
}

func (s *RendererSuite) TestRenderSkips() {
	tests := []struct {
		name   string
		c      *fakeContainer
		series []float64
		want   Status
		err    error
	}{
		{"empty data", newFakeContainer("0 0 100 50"), nil, StatusNoData, ErrNoData},
		{"no viewBox", &fakeContainer{content: "<old/>"}, []float64{1}, StatusNoRange, ErrNoRange},
		{"short viewBox", newFakeContainer("0 0 100"), []float64{1}, StatusNoRange, ErrNoRange},
		{"zero width", newFakeContainer("0 0 0 50"), []float64{1, 2}, StatusDegenerateBounds, ErrDegenerateBounds},
		{"zero height", newFakeContainer("0 0 100 0"), []float64{1, 2}, StatusDegenerateBounds, ErrDegenerateBounds},
		{"all zero", newFakeContainer("0 0 100 50"), []float64{0, 0}, StatusDegenerateScale, ErrDegenerateScale},
		{"positive infinity", newFakeContainer("0 0 100 50"), []float64{1, math.Inf(1), 2}, StatusDegenerateScale, ErrDegenerateScale},
		{"negative infinity", newFakeContainer("0 0 100 50"), []float64{1, math.Inf(-1), 2}, StatusDegenerateScale, ErrDegenerateScale},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			res := s.renderer.Render(tt.c, DefaultConfig(), tt.series)
			s.Equal(tt.want, res.Status)
			s.ErrorIs(res.Err, tt.err)
			s.Nil(res.Chart)
			s.Equal(0, tt.c.sets)
			s.Equal("<old/>", tt.c.content)
		})
	}
}

func (s *RendererSuite) TestRenderNilContainer() {
	res := s.renderer.Render(nil, DefaultConfig(), []float64{1, 2})
	s.Equal(StatusNoContainer, res.Status)
	s.ErrorIs(res.Err, ErrNoContainer)
	s.Contains(s.logs.String(), "no container")
}

func (s *RendererSuite) TestRenderNilPointerContainer() {
	var c *fakeContainer
	s.NotPanics(func() {
		res := s.renderer.Render(c, DefaultConfig(), []float64{1, 2})
		s.Equal(StatusNoContainer, res.Status)
		s.ErrorIs(res.Err, ErrNoContainer)
	})
}

func (s *RendererSuite) TestRenderDoesNotMutateSeries() {
	series := []float64{3, 1, 2}
	cfg := DefaultConfig()
	cfg.Style = StyleRounded
	s.renderer.Render(newFakeContainer("0 0 100 50"), cfg, series)
	s.Equal([]float64{3, 1, 2}, series)
}

func TestComputeGridDisabled(t *testing.T) {
	r := NewRenderer(WithIDSource(NewCounterIDs("g")))
	cfg := DefaultConfig()
	cfg.VerticalGrid = false

	ch, err := r.Compute(Bounds{0, 0, 300, 98}, cfg, []float64{1, 2, 3})
	require.NoError(t, err)
	assert.Empty(t, ch.Grid)
	assert.Nil(t, ch.Gradient)
	assert.Equal(t, "none", ch.Path.Fill)
	assert.Equal(t, "gray", ch.Path.Stroke)
}

func TestComputeCustomTheme(t *testing.T) {
	theme := Theme{Stroke: "#333", Stops: [3]string{"red", "green", "blue"}}
	r := NewRenderer(WithIDSource(NewCounterIDs("g")), WithTheme(theme))
	cfg := DefaultConfig()
	cfg.Fill = true

	ch, err := r.Compute(Bounds{0, 0, 300, 98}, cfg, []float64{1, 2, 3})
	require.NoError(t, err)
	require.NotNil(t, ch.Gradient)
	assert.Equal(t, "blue", ch.Gradient.Stops[2].Color)
	assert.Equal(t, "#333", ch.Path.Stroke)
	assert.Equal(t, "url(#g1)", ch.Path.Fill)
}

func TestComputeGradientDirection(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Fill = true

	ch, err := NewRenderer(WithIDSource(NewCounterIDs("g"))).Compute(Bounds{0, 0, 300, 98}, cfg, []float64{1, 2, 3})
	require.NoError(t, err)
	require.NotNil(t, ch.Gradient)
	assert.Equal(t, 0.0, ch.Gradient.X2)
	assert.Equal(t, 1.0, ch.Gradient.Y2)

	r := NewRenderer(WithIDSource(NewCounterIDs("g")), WithGradientDirection(1, 0))
	ch, err = r.Compute(Bounds{0, 0, 300, 98}, cfg, []float64{1, 2, 3})
	require.NoError(t, err)
	assert.Equal(t, 1.0, ch.Gradient.X2)
	assert.Equal(t, 0.0, ch.Gradient.Y2)

	markup, err := ch.MarshalMarkup()
	require.NoError(t, err)
	assert.Contains(t, string(markup), `<linearGradient id="g1" x2="1" y2="0">`)
}

func TestComputeUsesCornerRounder(t *testing.T) {
	called := 0
	r := NewRenderer(
		WithRoundRadius(7),
		WithCornerRounder(func(d string, radius float64) string {
			called++
			assert.Equal(t, 7.0, radius)
			return d
		}),
	)
	cfg := DefaultConfig()
	cfg.Style = StyleRounded

	_, err := r.Compute(Bounds{0, 0, 300, 98}, cfg, []float64{1, 2, 3})
	require.NoError(t, err)
	assert.Equal(t, 1, called)
}

func TestRenderConcurrentContainers(t *testing.T) {
	r := NewRenderer(WithIDSource(NewCounterIDs("gr")))
	cfg := DefaultConfig()
	cfg.Fill = true

	var wg sync.WaitGroup
	containers := make([]*fakeContainer, 16)
	for i := range containers {
		containers[i] = newFakeContainer("0 0 300 100")
		wg.Add(1)
		go func(c *fakeContainer) {
			defer wg.Done()
			r.Render(c, cfg, []float64{1, 2, 3})
		}(containers[i])
	}
	wg.Wait()

	seen := map[string]bool{}
	for _, c := range containers {
		require.Equal(t, 1, c.sets)
		start := strings.Index(c.content, `id="`) + len(`id="`)
		id := c.content[start : start+strings.Index(c.content[start:], `"`)]
		assert.False(t, seen[id], "duplicate gradient id %s", id)
		seen[id] = true
	}
}

func TestStatusFor(t *testing.T) {
	assert.Equal(t, StatusEncodeFailed, statusFor(fmt.Errorf("%w: bad token", ErrEncodeMarkup)))
	assert.Equal(t, StatusDegenerateBounds, statusFor(fmt.Errorf("%w: {}", ErrDegenerateBounds)))
	assert.Equal(t, StatusNoContainer, statusFor(ErrNoContainer))
	assert.Equal(t, StatusNoData, statusFor(ErrNoData))
}

func TestStatusString(t *testing.T) {
	assert.Equal(t, "rendered", StatusRendered.String())
	assert.Equal(t, "degenerate_scale", StatusDegenerateScale.String())
	assert.Equal(t, "encode_failed", StatusEncodeFailed.String())
	assert.Equal(t, "Status(42)", Status(42).String())
}
