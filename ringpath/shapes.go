package ringpath

import (
	"math"

	"github.com/srwiley/rasterx"
	"golang.org/x/image/math/fixed"
)

// This file implements the transformation from
// high level shapes to their path equivalent.
// Angles are in radians, measured from the positive X axis;
// with Y pointing down, increasing angles run clockwise on screen.

// maxDx is the maximum radians a cubic splice is allowed to span
// when approximating a circular arc.
const maxDx float64 = math.Pi / 8

// toFixedP converts two floats to a fixed point.
func toFixedP(x, y float64) (p fixed.Point26_6) {
	p.X = fixed.Int26_6(x * 64)
	p.Y = fixed.Int26_6(y * 64)
	return
}

// ToFloat converts a fixed point back to floats.
func ToFloat(p fixed.Point26_6) (x, y float64) {
	return float64(p.X) / 64, float64(p.Y) / 64
}

// PointAt returns the point of the circle (cx, cy, r) at `angle`.
func PointAt(cx, cy, r, angle float64) (x, y float64) {
	return cx + r*math.Cos(angle), cy + r*math.Sin(angle)
}

// AddArc adds the circular arc of center (cx, cy) and radius r,
// going clockwise from `start` to `end`. If `end` is smaller than `start`
// nothing is added.
// The arc starts a new sub-path when the path is empty, and is
// joined by a line to the current point otherwise.
func (p *Path) AddArc(cx, cy, r, start, end float64) {
	deltaTheta := end - start
	if deltaTheta < 0 || r <= 0 {
		return
	}
	px, py := PointAt(cx, cy, r, start)
	if len(*p) == 0 {
		p.Start(toFixedP(px, py))
	} else {
		p.Line(toFixedP(px, py))
	}
	if deltaTheta == 0 {
		return
	}

	// Approximate the circular arc using a set of cubic bezier curves by the method of
	// L. Maisonobe, "Drawing an elliptical arc using polylines, quadratic
	// or cubic Bezier curves", 2003
	// https://www.spaceroots.org/documents/elllipse/elliptical-arc.pdf
	// The method was simplified for circles.
	segs := int(math.Ceil(deltaTheta / maxDx))
	dTheta := deltaTheta / float64(segs) // span of each segment
	tde := math.Tan(dTheta / 2)
	alpha := math.Sin(dTheta) * (math.Sqrt(4+3*tde*tde) - 1) / 3
	lx, ly := px, py
	ldx, ldy := circlePrime(r, start)
	for i := 1; i <= segs; i++ {
		eta := start + dTheta*float64(i)
		px, py := PointAt(cx, cy, r, eta)
		dx, dy := circlePrime(r, eta)
		p.CubeBezier(toFixedP(lx+alpha*ldx, ly+alpha*ldy),
			toFixedP(px-alpha*dx, py-alpha*dy), toFixedP(px, py))
		lx, ly, ldx, ldy = px, py, dx, dy
	}
}

// circlePrime gives the tangent vector of the parametrized circle
func circlePrime(r, eta float64) (dx, dy float64) {
	return -r * math.Sin(eta), r * math.Cos(eta)
}

// Arc returns the open path of a clockwise circular arc.
func Arc(cx, cy, r, start, end float64) Path {
	var p Path
	p.AddArc(cx, cy, r, start, end)
	return p
}

// Circle returns the closed path of a full circle, starting
// at angle `start`.
func Circle(cx, cy, r, start float64) Path {
	var p Path
	p.AddArc(cx, cy, r, start, start+2*math.Pi)
	p.Stop(true)
	return p
}

// Rect returns the closed path of the rectangle (minX, minY, maxX, maxY),
// rotated by `rot` radians around (ox, oy).
func Rect(minX, minY, maxX, maxY, rot, ox, oy float64) Path {
	m := rasterx.Identity.Translate(ox, oy).Rotate(rot).Translate(-ox, -oy)
	var p Path
	p.Start(toFixedP(m.Transform(minX, minY)))
	p.Line(toFixedP(m.Transform(maxX, minY)))
	p.Line(toFixedP(m.Transform(maxX, maxY)))
	p.Line(toFixedP(m.Transform(minX, maxY)))
	p.Stop(true)
	return p
}
