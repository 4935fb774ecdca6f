package placement

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidAnchor is returned when an anchor is not one of the nine known symbols.
var ErrInvalidAnchor = errors.New("invalid anchor")

// Anchor is a symbolic position on a bounding box.
type Anchor string

const (
	NW     Anchor = "nw"
	N      Anchor = "n"
	NE     Anchor = "ne"
	W      Anchor = "w"
	Center Anchor = "center"
	E      Anchor = "e"
	SW     Anchor = "sw"
	S      Anchor = "s"
	SE     Anchor = "se"
)

// fraction is the fractional coordinate pair of an anchor within a box.
type fraction struct {
	x, y float64
}

var fractions = map[Anchor]fraction{
	NW:     {0, 0},
	N:      {0.5, 0},
	NE:     {1, 0},
	W:      {0, 0.5},
	Center: {0.5, 0.5},
	E:      {1, 0.5},
	SW:     {0, 1},
	S:      {0.5, 1},
	SE:     {1, 1},
}

// aliases accepts the position names used by notification daemons.
var aliases = map[string]Anchor{
	"top-left":      NW,
	"top-center":    N,
	"top":           N,
	"top-right":     NE,
	"left":          W,
	"middle":        Center,
	"right":         E,
	"bottom-left":   SW,
	"bottom-center": S,
	"bottom":        S,
	"bottom-right":  SE,
}

// Anchors returns all anchors in reading order.
func Anchors() []Anchor {
	return []Anchor{NW, N, NE, W, Center, E, SW, S, SE}
}

// ParseAnchor converts a string into an Anchor.
// Matching is case-insensitive and accepts names like "top-right".
func ParseAnchor(s string) (Anchor, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	if _, ok := fractions[Anchor(name)]; ok {
		return Anchor(name), nil
	}
	if a, ok := aliases[name]; ok {
		return a, nil
	}
	return "", fmt.Errorf("%w %q, must be one of: %v", ErrInvalidAnchor, s, Anchors())
}

// Valid reports whether a is one of the nine known anchors.
func (a Anchor) Valid() bool {
	_, ok := fractions[a]
	return ok
}

// Fractions returns the fractional coordinates of the anchor, each in [0, 1].
func (a Anchor) Fractions() (fx, fy float64, err error) {
	f, ok := fractions[a]
	if !ok {
		return 0, 0, fmt.Errorf("%w %q", ErrInvalidAnchor, string(a))
	}
	return f.x, f.y, nil
}

// Next returns the anchor after a in reading order, wrapping around.
func (a Anchor) Next() Anchor {
	all := Anchors()
	for i, candidate := range all {
		if candidate == a {
			return all[(i+1)%len(all)]
		}
	}
	return NW
}

func (a Anchor) String() string {
	return string(a)
}

// UnmarshalText implements encoding.TextUnmarshaler for config parsing.
func (a *Anchor) UnmarshalText(text []byte) error {
	parsed, err := ParseAnchor(string(text))
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (a Anchor) MarshalText() ([]byte, error) {
	return []byte(a), nil
}
