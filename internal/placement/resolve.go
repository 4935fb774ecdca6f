package placement

import "math"

// Request holds the inputs of one layout pass.
type Request struct {
	Anchor        Anchor
	Margin        int
	ParentWidth   int
	ParentHeight  int
	WidthFraction float64
}

// Result is where the host should place the alert.
// Anchor is both the position class the alert was requested at and the point
// of the alert's own box that must land on (X, Y). RelativeWidth is the alert
// width as a fraction of the parent width.
type Result struct {
	Anchor        Anchor  `json:"anchor" yaml:"anchor"`
	X             float64 `json:"x" yaml:"x"`
	Y             float64 `json:"y" yaml:"y"`
	RelativeWidth float64 `json:"relative_width" yaml:"relative_width"`
}

// Resolve computes the placement of an alert inside a parent of the given size.
// Margin pushes the alert inward from west/east and north/south edges and leaves
// centered axes untouched. Margin is expected to be non-negative and
// widthFraction to be in (0, 1]; callers validate both.
func Resolve(anchor Anchor, margin, parentWidth, parentHeight int, widthFraction float64) (Result, error) {
	fx, fy, err := anchor.Fractions()
	if err != nil {
		return Result{}, err
	}

	x := fx * float64(parentWidth)
	y := fy * float64(parentHeight)

	x += float64(margin) * inward(fx)
	y += float64(margin) * inward(fy)

	return Result{
		Anchor:        anchor,
		X:             x,
		Y:             y,
		RelativeWidth: widthFraction,
	}, nil
}

// ResolveRequest is Resolve over a Request.
func ResolveRequest(req Request) (Result, error) {
	return Resolve(req.Anchor, req.Margin, req.ParentWidth, req.ParentHeight, req.WidthFraction)
}

// inward returns the sign that moves a coordinate at fraction f into the parent.
func inward(f float64) float64 {
	switch f {
	case 0:
		return 1
	case 1:
		return -1
	default:
		return 0
	}
}

// Origin returns the top-left corner of a box of the given size whose anchor
// point lands on (X, Y). Hosts that can only position by top-left use this.
func (r Result) Origin(boxWidth, boxHeight int) (left, top int) {
	fx, fy, err := r.Anchor.Fractions()
	if err != nil {
		return int(math.Round(r.X)), int(math.Round(r.Y))
	}
	left = int(math.Round(r.X - fx*float64(boxWidth)))
	top = int(math.Round(r.Y - fy*float64(boxHeight)))
	return left, top
}

// Width returns the alert width for a parent of the given width.
func (r Result) Width(parentWidth int) int {
	return int(math.Round(r.RelativeWidth * float64(parentWidth)))
}
