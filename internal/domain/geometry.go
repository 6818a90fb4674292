package domain

import "math"

// Box is an axis-aligned rectangle, (X0, Y0) top left and (X1, Y1) bottom right.
type Box struct {
	X0, Y0, X1, Y1 float64
}

// Width is never negative.
func (b Box) Width() float64 { return math.Max(0, b.X1-b.X0) }

// Height is never negative.
func (b Box) Height() float64 { return math.Max(0, b.Y1-b.Y0) }

// Area is zero for degenerate or inverted boxes.
func (b Box) Area() float64 { return b.Width() * b.Height() }

// CenterX returns the horizontal midpoint.
func (b Box) CenterX() float64 { return (b.X0 + b.X1) / 2 }

// CenterY returns the vertical midpoint.
func (b Box) CenterY() float64 { return (b.Y0 + b.Y1) / 2 }

// Intersect returns the overlap of b and o. The result may be degenerate
// (zero or negative extent), in which case its Area is zero.
func (b Box) Intersect(o Box) Box {
	return Box{
		X0: math.Max(b.X0, o.X0),
		Y0: math.Max(b.Y0, o.Y0),
		X1: math.Min(b.X1, o.X1),
		Y1: math.Min(b.Y1, o.Y1),
	}
}

// Min and Max return the corners in the [2]float64 form spatial indexes expect.
func (b Box) Min() [2]float64 { return [2]float64{b.X0, b.Y0} }

func (b Box) Max() [2]float64 { return [2]float64{b.X1, b.Y1} }
