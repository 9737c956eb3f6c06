package raster

import (
	"bytes"
	"image/png"
	"testing"

	"github.com/gogpu/gg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inamate/svgchart/internal/chart"
	"github.com/inamate/svgchart/internal/document"
)

func sampleChart(t *testing.T, style chart.Style, fill bool) *chart.Chart {
	t.Helper()
	r := chart.NewRenderer(chart.WithIDSource(chart.NewCounterIDs("gr")))
	cfg := chart.DefaultConfig()
	cfg.Style = style
	cfg.Fill = fill

	b, ok := chart.ParseViewBox(document.SampleViewBox)
	require.True(t, ok)
	ch, err := r.Compute(b, cfg, document.SampleSeries())
	require.NoError(t, err)
	return ch
}

func TestEncode(t *testing.T) {
	for _, style := range []chart.Style{chart.StyleStraight, chart.StyleRounded, chart.StyleDirectional} {
		t.Run(style.String(), func(t *testing.T) {
			var buf bytes.Buffer
			opts := DefaultOptions()
			opts.Width, opts.Height = 120, 40
			require.NoError(t, Encode(&buf, sampleChart(t, style, true), opts))

			cfg, err := png.DecodeConfig(bytes.NewReader(buf.Bytes()))
			require.NoError(t, err)
			assert.Equal(t, 120, cfg.Width)
			assert.Equal(t, 40, cfg.Height)
		})
	}
}

func TestEncodeErrors(t *testing.T) {
	var buf bytes.Buffer
	opts := DefaultOptions()
	opts.Width = 0
	assert.ErrorIs(t, Encode(&buf, sampleChart(t, chart.StyleStraight, false), opts), ErrInvalidSize)

	assert.ErrorIs(t, Encode(&buf, nil, DefaultOptions()), chart.ErrNoData)
	assert.Zero(t, buf.Len())
}

func TestEncodeRejectsEmptyFrame(t *testing.T) {
	// "-10 0 0 50": X2 > X1 holds, but the declared width is 0.
	b, ok := chart.ParseViewBox("-10 0 0 50")
	require.True(t, ok)
	require.True(t, b.Valid())

	r := chart.NewRenderer(chart.WithIDSource(chart.NewCounterIDs("gr")))
	ch, err := r.Compute(b, chart.DefaultConfig(), []float64{1, 2})
	require.NoError(t, err)

	var buf bytes.Buffer
	assert.NotPanics(t, func() {
		err = Encode(&buf, ch, DefaultOptions())
	})
	assert.ErrorIs(t, err, chart.ErrDegenerateBounds)
	assert.Zero(t, buf.Len())
}

func TestColor(t *testing.T) {
	opts := DefaultOptions()

	c, ok := opts.color("var(--color-stop-1)")
	require.True(t, ok)
	assert.Equal(t, gg.Hex("#4f46e5"), c)

	_, ok = opts.color("none")
	assert.False(t, ok)
	_, ok = opts.color("")
	assert.False(t, ok)
}

func TestOffset(t *testing.T) {
	assert.Equal(t, 0.5, offset("50%"))
	assert.Equal(t, 1.0, offset("100%"))
	assert.Equal(t, 0.25, offset("0.25"))
	assert.Equal(t, 0.0, offset("bogus"))
}
