package pathdata

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormat(t *testing.T) {
	cmds := []Command{
		MoveTo(-5, -5),
		LineTo(0, 12.25),
		CubicTo(1, 2, 3, 4, 5, 6),
		VerticalTo(-5),
		Close(),
	}
	assert.Equal(t, "M -5 -5 L 0 12.25 C 1 2 3 4 5 6 V -5 Z", Format(cmds))
	assert.Equal(t, "", Format(nil))
}

func TestFormatNumber(t *testing.T) {
	cases := map[float64]string{
		0:      "0",
		5:      "5",
		-0.5:   "-0.5",
		1e-7:   "0.0000001",
		1234.5: "1234.5",
	}
	for in, want := range cases {
		assert.Equal(t, want, FormatNumber(in), "FormatNumber(%v)", in)
	}
}

func TestCommandMarshalJSON(t *testing.T) {
	data, err := json.Marshal(Command{Op: 'Q', Args: []float64{1, 2, 3, 4.5}})
	require.NoError(t, err)
	assert.JSONEq(t, `["Q",1,2,3,4.5]`, string(data))

	data, err = json.Marshal(Close())
	require.NoError(t, err)
	assert.JSONEq(t, `["Z"]`, string(data))
}

func TestEndPoint(t *testing.T) {
	x, y, ok := CubicTo(1, 2, 3, 4, 5, 6).EndPoint()
	require.True(t, ok)
	assert.Equal(t, 5.0, x)
	assert.Equal(t, 6.0, y)

	_, _, ok = VerticalTo(3).EndPoint()
	assert.False(t, ok)
	_, _, ok = Close().EndPoint()
	assert.False(t, ok)
}

func TestBounds(t *testing.T) {
	r := Bounds([]Command{MoveTo(0, 0), {Op: 'H', Args: []float64{10}}, VerticalTo(5), Close()})
	assert.Equal(t, Rect{X: 0, Y: 0, Width: 10, Height: 5}, r)

	r = Bounds([]Command{MoveTo(2, 2), CubicTo(-4, 0, 8, 12, 6, 6)})
	assert.Equal(t, Rect{X: -4, Y: 0, Width: 12, Height: 12}, r)

	assert.True(t, Bounds(nil).IsEmpty())
}

func TestEnd(t *testing.T) {
	x, y, ok := End([]Command{MoveTo(1, 1), LineTo(5, 5), Close()})
	require.True(t, ok)
	assert.Equal(t, 1.0, x)
	assert.Equal(t, 1.0, y)

	x, y, ok = End([]Command{MoveTo(-5, -5), LineTo(0, 3), {Op: 'H', Args: []float64{40}}})
	require.True(t, ok)
	assert.Equal(t, 40.0, x)
	assert.Equal(t, 3.0, y)

	_, _, ok = End(nil)
	assert.False(t, ok)
}
