package placement

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAnchor(t *testing.T) {
	tests := []struct {
		input    string
		expected Anchor
		wantErr  bool
	}{
		{"nw", NW, false},
		{"NE", NE, false},
		{" center ", Center, false},
		{"se", SE, false},
		{"top-right", NE, false},
		{"bottom-center", S, false},
		{"left", W, false},
		{"", "", true},
		{"north", "", true},
		{"nne", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			a, err := ParseAnchor(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidAnchor)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, a)
		})
	}
}

func TestAnchor_FractionsInUnitSquare(t *testing.T) {
	assert.Len(t, Anchors(), 9)
	for _, a := range Anchors() {
		fx, fy, err := a.Fractions()
		require.NoError(t, err)
		assert.True(t, fx >= 0 && fx <= 1, "fx out of range for %s", a)
		assert.True(t, fy >= 0 && fy <= 1, "fy out of range for %s", a)
		assert.True(t, a.Valid())
	}
	assert.False(t, Anchor("x").Valid())
}

func TestAnchor_Next(t *testing.T) {
	assert.Equal(t, N, NW.Next())
	assert.Equal(t, NW, SE.Next())
	assert.Equal(t, NW, Anchor("bogus").Next())
}

func TestAnchor_UnmarshalText(t *testing.T) {
	var a Anchor
	require.NoError(t, a.UnmarshalText([]byte("bottom-right")))
	assert.Equal(t, SE, a)

	assert.ErrorIs(t, a.UnmarshalText([]byte("up")), ErrInvalidAnchor)
}
