package ring

import (
	"math"

	"github.com/benoitkugler/ringprogress/gradient"
	"github.com/benoitkugler/ringprogress/ringpath"
	"github.com/srwiley/rasterx"
)

// angleOffset moves the origin of the angles from 3 o'clock to 12 o'clock
const angleOffset = math.Pi / 2

// Geometry is the layout of a ring, in points.
// Angles are in radians, measured from 3 o'clock and
// increasing clockwise (the y axis points down).
type Geometry struct {
	Width, Height    float64 // bounds
	Scale            float64 // pixels per point
	CenterX, CenterY float64
	Radius           float64 // radius of the center line of the ring
	RingWidth        float64
	Progress         float64 // floored at 0

	SweepAngle float64 // end angle of the whole sweep
	MinAngle   float64 // visual gap kept between the overflow and gradient arcs
	MaxAngle   float64 // largest end angle of the gradient arc
	ArcEnd     float64 // end angle of the gradient arc
	Overflow   float64 // rotation of the frame, zero without overflow
}

// Layout computes the geometry of the ring described by `p`.
func Layout(p Params) Geometry {
	p = p.normalized()
	w := p.RingWidth
	g := Geometry{
		Width:     p.Width,
		Height:    p.Height,
		Scale:     p.Scale,
		CenterX:   p.Width / 2,
		CenterY:   p.Height / 2,
		Radius:    math.Min(p.Width, p.Height)/2 - w/2,
		RingWidth: w,
		Progress:  p.Progress,
	}
	g.SweepAngle = 2*math.Pi*g.Progress - angleOffset
	g.MinAngle = 1.1 * math.Atan(0.5*w/g.Radius)
	g.MaxAngle = 2*math.Pi - 3*g.MinAngle - angleOffset
	g.ArcEnd = g.SweepAngle
	if g.HasOverflow() {
		g.ArcEnd = g.MaxAngle
		g.Overflow = g.SweepAngle - g.MaxAngle
	}
	return g
}

// HasOverflow is true when a solid arc is drawn
// under the gradient arc.
func (g Geometry) HasOverflow() bool { return g.SweepAngle > g.MaxAngle }

// Degenerate is true when the ring has no room to be drawn.
func (g Geometry) Degenerate() bool { return !(g.Radius > 0) }

// Sweep returns the total swept angle, 2π per revolution.
func (g Geometry) Sweep() float64 { return 2 * math.Pi * g.Progress }

// Revolutions returns the number of complete revolutions.
func (g Geometry) Revolutions() int { return int(math.Floor(g.Progress)) }

// PartialSweep returns the angle swept by the last, incomplete revolution.
func (g Geometry) PartialSweep() float64 {
	_, frac := math.Modf(g.Progress)
	return 2 * math.Pi * frac
}

// LeadingEdge returns the position, in pixels, of the end of the sweep
// on the center line of the ring.
func (g Geometry) LeadingEdge() (x, y float64) {
	x, y = ringpath.PointAt(g.CenterX, g.CenterY, g.Radius, g.SweepAngle)
	return x * g.Scale, y * g.Scale
}

// ShadowOffset returns the offset of the end shadow, in points.
// It follows the direction of motion at the leading edge.
func (g Geometry) ShadowOffset() (dx, dy float64) {
	a := g.SweepAngle + angleOffset
	return g.RingWidth / 10 * math.Cos(a), g.RingWidth / 10 * math.Sin(a)
}

// maxDimension is the largest width or height, in pixels, of a rendered ring.
const maxDimension = gradient.MaxDimension

// PixelSize returns the dimensions of the rendered image,
// or 0, 0 when they are empty or larger than the renderer supports.
func (g Geometry) PixelSize() (w, h int) {
	fw, fh := math.Ceil(g.Width*g.Scale), math.Ceil(g.Height*g.Scale)
	if !(fw > 0 && fw <= maxDimension) || !(fh > 0 && fh <= maxDimension) {
		return 0, 0
	}
	return int(fw), int(fh)
}

// device maps points to pixels.
func (g Geometry) device() rasterx.Matrix2D {
	return rasterx.Identity.Scale(g.Scale, g.Scale)
}

// frame maps points to pixels, after rotating by the overflow
// angle around the center.
func (g Geometry) frame() rasterx.Matrix2D {
	if g.Overflow == 0 {
		return g.device()
	}
	return g.device().
		Translate(g.CenterX, g.CenterY).
		Rotate(g.Overflow).
		Translate(-g.CenterX, -g.CenterY)
}
