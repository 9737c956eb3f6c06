package roundpath

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inamate/svgchart/internal/pathdata"
)

func TestRoundCorners(t *testing.T) {
	got := RoundCorners("M 0 0 L 80 0 L 80 80", 10)
	assert.Equal(t, "M 0 0 L 70 0 C 75 0 80 5 80 10 L 80 80", got)
}

func TestRoundCornersLimitsCutToHalfSegment(t *testing.T) {
	got := RoundCorners("M 0 0 L 8 0 L 8 8", 10)
	assert.Equal(t, "M 0 0 L 4 0 C 6 0 8 2 8 4 L 8 8", got)
}

func TestRoundCornersKeepsEndpoints(t *testing.T) {
	in := "L 0 24.5 L 50 49 L 100 98 L 150 10"
	cmds, err := pathdata.Parse(RoundCorners(in, 15))
	require.NoError(t, err)

	require.NotEmpty(t, cmds)
	assert.Equal(t, pathdata.LineTo(0, 24.5), cmds[0])

	x, y, ok := pathdata.End(cmds)
	require.True(t, ok)
	assert.Equal(t, 150.0, x)
	assert.Equal(t, 10.0, y)

	curves := 0
	for _, c := range cmds {
		if c.Op == 'C' {
			curves++
		}
	}
	assert.Equal(t, 2, curves)
}

func TestRoundCornersUnparsable(t *testing.T) {
	const in = "l 1 2 l 3 4"
	assert.Equal(t, in, RoundCorners(in, 15))
}

func TestRoundNoop(t *testing.T) {
	cmds := []pathdata.Command{pathdata.MoveTo(0, 0), pathdata.LineTo(10, 0)}
	assert.Equal(t, cmds, Round(cmds, 15))
	assert.Equal(t, cmds, Round(cmds, 0))

	curve := []pathdata.Command{pathdata.MoveTo(0, 0), pathdata.CubicTo(1, 1, 2, 2, 3, 3), pathdata.LineTo(4, 0)}
	assert.Equal(t, curve, Round(curve, 15))
}
