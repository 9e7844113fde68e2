// Implements an abstract representation of
// the paths making up a ring, which can then be consumed
// by a rasterx painting backend.
package ringpath

import (
	"github.com/srwiley/rasterx"
	"golang.org/x/image/math/fixed"
)

// Operation groups the different path commands
type Operation interface {
	// add itself on the adder `d`, after aplying the transform `M`
	drawTo(d rasterx.Adder, M rasterx.Matrix2D)
}

type MoveTo fixed.Point26_6

type LineTo fixed.Point26_6

type CubicTo [3]fixed.Point26_6

type Close struct{}

// starts a new path at the given point.
func (op MoveTo) drawTo(d rasterx.Adder, M rasterx.Matrix2D) {
	d.Stop(false) // implicit close if currently in path.
	d.Start(M.TFixed(fixed.Point26_6(op)))
}

func (op LineTo) drawTo(d rasterx.Adder, M rasterx.Matrix2D) {
	d.Line(M.TFixed(fixed.Point26_6(op)))
}

func (op CubicTo) drawTo(d rasterx.Adder, M rasterx.Matrix2D) {
	d.CubeBezier(M.TFixed(op[0]), M.TFixed(op[1]), M.TFixed(op[2]))
}

func (op Close) drawTo(d rasterx.Adder, _ rasterx.Matrix2D) {
	d.Stop(true)
}

// Path describes a sequence of basic operations.
// Higher-level shapes (arcs, circles, rectangles) are reduced to a path.
type Path []Operation

// Start starts a new curve at the given point.
func (p *Path) Start(a fixed.Point26_6) {
	*p = append(*p, MoveTo{a.X, a.Y})
}

// Line adds a linear segment to the current curve.
func (p *Path) Line(b fixed.Point26_6) {
	*p = append(*p, LineTo{b.X, b.Y})
}

// QuadBezier adds a quadratic segment to the current curve,
// elevated to a cubic one.
func (p *Path) QuadBezier(b, c fixed.Point26_6) {
	a := p.current()
	c1 := a.Add(b.Sub(a).Mul(fixed.I(2)).Div(fixed.I(3)))
	c2 := c.Add(b.Sub(c).Mul(fixed.I(2)).Div(fixed.I(3)))
	*p = append(*p, CubicTo{c1, c2, c})
}

// CubeBezier adds a cubic segment to the current curve.
func (p *Path) CubeBezier(b, c, d fixed.Point26_6) {
	*p = append(*p, CubicTo{b, c, d})
}

// Stop joins the ends of the path
func (p *Path) Stop(closeLoop bool) {
	if closeLoop {
		*p = append(*p, Close{})
	}
}

var _ rasterx.Adder = (*Path)(nil) // assert interface conformance

// current returns the end point of the last operation,
// or the origin for an empty path.
func (p Path) current() fixed.Point26_6 {
	var start, cur fixed.Point26_6
	for _, op := range p {
		switch op := op.(type) {
		case MoveTo:
			start, cur = fixed.Point26_6(op), fixed.Point26_6(op)
		case LineTo:
			cur = fixed.Point26_6(op)
		case CubicTo:
			cur = op[2]
		case Close:
			cur = start
		}
	}
	return cur
}

// AddTo sends the path to `q`, after applying the transform `M`.
func (p Path) AddTo(q rasterx.Adder, M rasterx.Matrix2D) {
	for _, op := range p {
		op.drawTo(q, M)
	}
	q.Stop(false)
}

// Transform returns a new path with every point mapped by `M`.
func (p Path) Transform(M rasterx.Matrix2D) Path {
	var out Path
	p.AddTo(&out, M)
	return out
}
