package pathdata

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []Command
	}{
		{
			name: "basic",
			in:   "M -5 -5 L -5 10 V -5 Z",
			want: []Command{MoveTo(-5, -5), LineTo(-5, 10), VerticalTo(-5), Close()},
		},
		{
			name: "implicit lineto after moveto",
			in:   "M 1 2 3 4 5 6",
			want: []Command{MoveTo(1, 2), LineTo(3, 4), LineTo(5, 6)},
		},
		{
			name: "repeated cubic",
			in:   "C1,2,3,4,5,6 7,8,9,10,11,12",
			want: []Command{CubicTo(1, 2, 3, 4, 5, 6), CubicTo(7, 8, 9, 10, 11, 12)},
		},
		{
			name: "compact numbers",
			in:   "M0-5L.5-1.5e1H3",
			want: []Command{MoveTo(0, -5), LineTo(0.5, -15), {Op: 'H', Args: []float64{3}}},
		},
		{
			name: "empty",
			in:   "   ",
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseRoundTrip(t *testing.T) {
	const d = "M -5 -5 L -5 24.5 L 0 24.5 C 10 29 15 40 50 49 V -5 Z"
	cmds, err := Parse(d)
	require.NoError(t, err)
	assert.Equal(t, d, Format(cmds))
}

func TestParseErrors(t *testing.T) {
	_, err := Parse("m 1 2")
	assert.ErrorIs(t, err, ErrUnsupportedCommand)

	_, err = Parse("1 2 L 3 4")
	assert.ErrorIs(t, err, ErrUnsupportedCommand)

	_, err = Parse("L 1")
	assert.ErrorIs(t, err, ErrMissingArgs)

	_, err = Parse("C 1 2 3 4 5 6 7")
	assert.ErrorIs(t, err, ErrMissingArgs)

	_, err = Parse("M 1 # 2")
	assert.ErrorIs(t, err, ErrUnsupportedCommand)
}
