package ringpath

import (
	"image"
	"math"

	"golang.org/x/image/math/fixed"
)

// exact bounding boxes of paths, used to restrict
// the area touched by the shadow blur

type line [2]fixed.Point26_6

func (l line) criticalPoints() (tX, tY []float64) {
	return nil, nil
}

func (l line) evaluateCurve(t float64) (x, y float64) {
	p0x, p0y := ToFloat(l[0])
	p1x, p1y := ToFloat(l[1])
	return bezierLine(p0x, p1x, t), bezierLine(p0y, p1y, t)
}

func bezierLine(p0, p1, t float64) float64 {
	return (p1-p0)*t + p0
}

type cubicBezier [4]fixed.Point26_6

func (cu cubicBezier) criticalPoints() (tX, tY []float64) {
	p1x, p1y := ToFloat(cu[0])
	c1x, c1y := ToFloat(cu[1])
	c2x, c2y := ToFloat(cu[2])
	p2x, p2y := ToFloat(cu[3])

	aX, bX, cX := cubicDerivative(p1x, c1x, c2x, p2x)
	aY, bY, cY := cubicDerivative(p1y, c1y, c2y, p2y)

	return quadraticRoots(aX, bX, cX), quadraticRoots(aY, bY, cY)
}

func (cu cubicBezier) evaluateCurve(t float64) (x, y float64) {
	p0x, p0y := ToFloat(cu[0])
	p1x, p1y := ToFloat(cu[1])
	p2x, p2y := ToFloat(cu[2])
	p3x, p3y := ToFloat(cu[3])
	return bezierSpline(p0x, p1x, p2x, p3x, t), bezierSpline(p0y, p1y, p2y, p3y, t)
}

// cubic polinomial
// x = At^3 + Bt^2 + Ct + D
// where A,B,C,D:
// A = p3 -3 * p2 + 3 * p1 - p0
// B = 3 * p2 - 6 * p1 +3 * p0
// C = 3 * p1 - 3 * p0
// D = p0
func bezierSpline(p0, p1, p2, p3, t float64) float64 {
	return (p3-3*p2+3*p1-p0)*t*t*t +
		(3*p2-6*p1+3*p0)*t*t +
		(3*p1-3*p0)*t +
		(p0)
}

// derivative of the cubic polinomial, simplified to
// X' = (3*p3-9*p2+9*p1-3*p0)t^2 + (6*p2-12*p1+6*p0)t + (3*p1-3*p0)
// taken as aX^2 + bX + c
func cubicDerivative(p0, p1, p2, p3 float64) (a, b, c float64) {
	return 3*p3 - 9*p2 + 9*p1 - 3*p0, 6*p2 - 12*p1 + 6*p0, 3*p1 - 3*p0
}

func quadraticRoots(a, b, c float64) []float64 {
	if a == 0 {
		if b == 0 { // constant derivative: no extremum
			return nil
		}
		return []float64{-c / b}
	}
	d := b*b - 4*a*c
	if d < 0 {
		return nil
	}
	if d == 0 {
		return []float64{-b / (2 * a)}
	}
	sq := math.Sqrt(d)
	return []float64{(-b + sq) / (2 * a), (-b - sq) / (2 * a)}
}

type bezier interface {
	// compute the t zeroing the derivative
	criticalPoints() (tX, tY []float64)
	// compute the point a time t
	evaluateCurve(t float64) (x, y float64)
}

// Bounds is a floating point rectangle.
type Bounds struct{ MinX, MinY, MaxX, MaxY float64 }

// Empty reports whether the bounds contain no point.
func (b Bounds) Empty() bool { return b.MinX > b.MaxX || b.MinY > b.MaxY }

// Union returns the smallest bounds containing both `b` and `o`.
func (b Bounds) Union(o Bounds) Bounds {
	if b.Empty() {
		return o
	}
	if o.Empty() {
		return b
	}
	return Bounds{
		MinX: math.Min(b.MinX, o.MinX), MinY: math.Min(b.MinY, o.MinY),
		MaxX: math.Max(b.MaxX, o.MaxX), MaxY: math.Max(b.MaxY, o.MaxY),
	}
}

// Inset returns the bounds grown by `d` on each side (shrinked if `d` is negative).
func (b Bounds) Inset(d float64) Bounds {
	return Bounds{MinX: b.MinX - d, MinY: b.MinY - d, MaxX: b.MaxX + d, MaxY: b.MaxY + d}
}

// Rectangle returns the smallest pixel rectangle containing `b`,
// or the zero rectangle if `b` is empty or not finite.
func (b Bounds) Rectangle() image.Rectangle {
	if b.Empty() || math.IsInf(b.MinX, 0) || math.IsInf(b.MinY, 0) || math.IsInf(b.MaxX, 0) || math.IsInf(b.MaxY, 0) {
		return image.Rectangle{}
	}
	return image.Rect(
		int(math.Floor(b.MinX)), int(math.Floor(b.MinY)),
		int(math.Ceil(b.MaxX)), int(math.Ceil(b.MaxY)),
	)
}

var emptyBounds = Bounds{MinX: math.Inf(1), MinY: math.Inf(1), MaxX: math.Inf(-1), MaxY: math.Inf(-1)}

func computeBoundingBox(curve bezier) Bounds {
	resX, resY := curve.criticalPoints()

	out := emptyBounds
	// add begin and end point
	for _, t := range append(append(resX, 0, 1), resY...) {
		// filter invalid value
		if !(0 <= t && t <= 1) {
			continue
		}
		x, y := curve.evaluateCurve(t)
		out.MinX = math.Min(x, out.MinX)
		out.MinY = math.Min(y, out.MinY)
		out.MaxX = math.Max(x, out.MaxX)
		out.MaxY = math.Max(y, out.MaxY)
	}
	return out
}

// Bounds returns the exact bounding box of the path
// (control points lying outside the curves are ignored).
// An empty path has empty bounds.
func (p Path) Bounds() Bounds {
	out := emptyBounds
	var start, cur fixed.Point26_6
	for _, op := range p {
		switch op := op.(type) {
		case MoveTo:
			start, cur = fixed.Point26_6(op), fixed.Point26_6(op)
			out = out.Union(line{cur, cur}.bounds())
		case LineTo:
			out = out.Union(line{cur, fixed.Point26_6(op)}.bounds())
			cur = fixed.Point26_6(op)
		case CubicTo:
			out = out.Union(computeBoundingBox(cubicBezier{cur, op[0], op[1], op[2]}))
			cur = op[2]
		case Close:
			out = out.Union(line{cur, start}.bounds())
			cur = start
		}
	}
	return out
}

func (l line) bounds() Bounds { return computeBoundingBox(l) }
