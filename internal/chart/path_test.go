package chart

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inamate/svgchart/internal/pathdata"
	"github.com/inamate/svgchart/internal/roundpath"
)

var testScale = Scale{Ratio: 24.5, Step: 50}

func TestBuildLinePath(t *testing.T) {
	p := BuildLinePath([]float64{1, 2, 4}, testScale)
	assert.Equal(t, "M -5 -5 L -5 24.5 L 0 24.5 L 50 49 L 100 98 V -5 Z", p.D())
}

func TestBuildLinePathSingleSample(t *testing.T) {
	p := BuildLinePath([]float64{5}, Scale{Ratio: 2, Step: 0})
	assert.Equal(t, "M -5 -5 L -5 10 L 0 10 V -5 Z", p.D())
}

func TestBuildRoundedPath(t *testing.T) {
	series := []float64{1, 2, 4, 1}
	p := BuildRoundedPath(series, testScale, DefaultRoundRadius, roundpath.RoundCorners)

	cmds := p.Commands()
	require.GreaterOrEqual(t, len(cmds), 4)
	assert.Equal(t, pathdata.MoveTo(-5, -5), cmds[0])
	assert.Equal(t, pathdata.LineTo(-5, 24.5), cmds[1])
	assert.Equal(t, pathdata.LineTo(0, 24.5), cmds[2])
	assert.Equal(t, pathdata.VerticalTo(-5), cmds[len(cmds)-2])
	assert.Equal(t, pathdata.Close(), cmds[len(cmds)-1])

	x, y, ok := pathdata.End(p.Body)
	require.True(t, ok)
	assert.Equal(t, testScale.Step*float64(len(series)-1), x)
	assert.Equal(t, 24.5, y)
	assert.Contains(t, p.D(), " C ")
}

func TestBuildRoundedPathPassesStraightData(t *testing.T) {
	var gotD string
	var gotRadius float64
	round := func(d string, radius float64) string {
		gotD, gotRadius = d, radius
		return d
	}

	p := BuildRoundedPath([]float64{1, 2, 4}, testScale, 15, round)
	assert.Equal(t, "L 0 24.5 L 50 49 L 100 98", gotD)
	assert.Equal(t, 15.0, gotRadius)
	assert.Equal(t, BuildLinePath([]float64{1, 2, 4}, testScale).D(), p.D())
}

func TestBuildRoundedPathKeepsStraightOnBadOutput(t *testing.T) {
	round := func(string, float64) string { return "not a path" }
	p := BuildRoundedPath([]float64{1, 2, 4}, testScale, 15, round)
	assert.Equal(t, BuildLinePath([]float64{1, 2, 4}, testScale).D(), p.D())
}

func TestBuildDirectionalPath(t *testing.T) {
	p := BuildDirectionalPath([]float64{1, 2, 4}, testScale)
	require.Len(t, p.Body, 1)

	c := p.Body[0]
	require.Equal(t, byte('C'), c.Op)
	want := []float64{
		0 + 50*0.2, 24.5 + 49*0.1,
		100 - 50*0.9, 49 - 98*0.1,
		100, 98,
	}
	assert.InDeltaSlice(t, want, c.Args, 1e-9)
	assert.True(t, strings.HasPrefix(p.D(), "M -5 -5 L -5 24.5 C "))
	assert.True(t, strings.HasSuffix(p.D(), " V -5 Z"))
}

func TestBuildDirectionalPathFalling(t *testing.T) {
	p := BuildDirectionalPath([]float64{4, 2, 1}, testScale)
	require.Len(t, p.Body, 1)
	args := p.Body[0].Args
	assert.InDelta(t, 98-49*0.1, args[1], 1e-9)
	assert.InDelta(t, 49+24.5*0.1, args[3], 1e-9)
}

func TestBuildDirectionalPathStride(t *testing.T) {
	// Five samples: triplets at 0 and 2, ending on the last sample.
	p := BuildDirectionalPath([]float64{1, 2, 3, 2, 1}, testScale)
	require.Len(t, p.Body, 2)
	x, _, _ := p.Body[1].EndPoint()
	assert.Equal(t, 200.0, x)

	// Four samples: the last one is left out.
	p = BuildDirectionalPath([]float64{1, 2, 3, 2}, testScale)
	require.Len(t, p.Body, 1)
	x, _, _ = p.Body[0].EndPoint()
	assert.Equal(t, 100.0, x)
}

func TestBuildDirectionalPathTooShort(t *testing.T) {
	for _, series := range [][]float64{{5}, {5, 6}} {
		p := BuildDirectionalPath(series, testScale)
		assert.Empty(t, p.Body)
		assert.NotContains(t, p.D(), "C")
	}
}

func TestDirection(t *testing.T) {
	assert.Equal(t, 1.0, Direction(2, 4))
	assert.Equal(t, 1.0, Direction(4, 6))
	assert.Equal(t, -1.0, Direction(6, 4))
	assert.Equal(t, -1.0, Direction(4, 2))
	assert.Equal(t, 0.0, Direction(4, 4))
}
