package placement

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolve_Scenarios(t *testing.T) {
	tests := []struct {
		name     string
		anchor   Anchor
		expected Result
	}{
		{"northwest", NW, Result{Anchor: NW, X: 15, Y: 15, RelativeWidth: 0.33}},
		{"southeast", SE, Result{Anchor: SE, X: 785, Y: 785, RelativeWidth: 0.33}},
		{"north", N, Result{Anchor: N, X: 400, Y: 15, RelativeWidth: 0.33}},
		{"center", Center, Result{Anchor: Center, X: 400, Y: 400, RelativeWidth: 0.33}},
		{"east", E, Result{Anchor: E, X: 785, Y: 400, RelativeWidth: 0.33}},
		{"southwest", SW, Result{Anchor: SW, X: 15, Y: 785, RelativeWidth: 0.33}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := Resolve(tt.anchor, 15, 800, 800, 0.33)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestResolve_ZeroMarginMatchesFractions(t *testing.T) {
	const width, height = 640, 480

	for _, a := range Anchors() {
		t.Run(string(a), func(t *testing.T) {
			fx, fy, err := a.Fractions()
			require.NoError(t, err)

			result, err := Resolve(a, 0, width, height, 1)
			require.NoError(t, err)
			assert.Equal(t, fx*width, result.X)
			assert.Equal(t, fy*height, result.Y)
		})
	}
}

func TestResolve_MarginMovesInward(t *testing.T) {
	const size = 500

	for _, a := range Anchors() {
		t.Run(string(a), func(t *testing.T) {
			fx, fy, err := a.Fractions()
			require.NoError(t, err)

			near, err := Resolve(a, 5, size, size, 0.5)
			require.NoError(t, err)
			far, err := Resolve(a, 50, size, size, 0.5)
			require.NoError(t, err)

			center := float64(size) / 2
			switch fx {
			case 0.5:
				assert.Equal(t, near.X, far.X, "centered x must ignore margin")
			default:
				assert.Less(t, abs(far.X-center), abs(near.X-center))
			}
			switch fy {
			case 0.5:
				assert.Equal(t, near.Y, far.Y, "centered y must ignore margin")
			default:
				assert.Less(t, abs(far.Y-center), abs(near.Y-center))
			}
		})
	}
}

func TestResolve_NorthIgnoresMarginOnX(t *testing.T) {
	a, err := Resolve(N, 0, 800, 600, 0.33)
	require.NoError(t, err)
	b, err := Resolve(N, 40, 800, 600, 0.33)
	require.NoError(t, err)

	assert.Equal(t, a.X, b.X)
	assert.Greater(t, b.Y, a.Y)
}

func TestResolve_InvalidAnchor(t *testing.T) {
	_, err := Resolve(Anchor("middle-ish"), 15, 800, 800, 0.33)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidAnchor)
}

func TestResolve_FollowsParentSize(t *testing.T) {
	before, err := Resolve(SE, 10, 800, 600, 0.25)
	require.NoError(t, err)
	after, err := Resolve(SE, 10, 1024, 768, 0.25)
	require.NoError(t, err)

	assert.Equal(t, 790.0, before.X)
	assert.Equal(t, 590.0, before.Y)
	assert.Equal(t, 1014.0, after.X)
	assert.Equal(t, 758.0, after.Y)
}

func TestResolveRequest(t *testing.T) {
	result, err := ResolveRequest(Request{
		Anchor:        S,
		Margin:        2,
		ParentWidth:   80,
		ParentHeight:  24,
		WidthFraction: 0.5,
	})
	require.NoError(t, err)
	assert.Equal(t, Result{Anchor: S, X: 40, Y: 22, RelativeWidth: 0.5}, result)
}

func TestResult_Origin(t *testing.T) {
	tests := []struct {
		name      string
		result    Result
		wantLeft  int
		wantTop   int
		boxWidth  int
		boxHeight int
	}{
		{"nw keeps point", Result{Anchor: NW, X: 1, Y: 1}, 1, 1, 20, 3},
		{"se shifts by full box", Result{Anchor: SE, X: 79, Y: 23}, 59, 20, 20, 3},
		{"center shifts by half", Result{Anchor: Center, X: 40, Y: 12}, 30, 11, 20, 2},
		{"n shifts x only", Result{Anchor: N, X: 40, Y: 1}, 30, 1, 20, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			left, top := tt.result.Origin(tt.boxWidth, tt.boxHeight)
			assert.Equal(t, tt.wantLeft, left)
			assert.Equal(t, tt.wantTop, top)
		})
	}
}

func TestResult_Width(t *testing.T) {
	r := Result{Anchor: NW, RelativeWidth: 0.33}
	assert.Equal(t, 264, r.Width(800))
	assert.Equal(t, 26, r.Width(80))
}

func abs(f float64) float64 {
	if f < 0 {
		return -f
	}
	return f
}
