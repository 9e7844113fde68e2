// Package ring renders circular progress indicators: a backdrop circle,
// a solid arc for the completed revolutions, a shadow under the leading
// edge and an arc textured by a conical gradient.
//
// Render is a pure function of its parameters; Layer adds the caching
// of the gradient image between frames.
package ring

import (
	"image"
	"image/color"
	"math"

	"github.com/benoitkugler/ringprogress/gradient"
	"github.com/benoitkugler/ringprogress/ringpath"
	"github.com/benoitkugler/ringprogress/ringraster"
	"github.com/srwiley/rasterx"
)

// squareCapDepth is the thickness of the shadow cap of the Square style, in points
const squareCapDepth = 2

// Render draws the ring described by `p`, sized Width x Height x Scale pixels.
// `grad` textures the progress arc; it is typically built by GradientImage.
// When it is nil, the arc is drawn in the start color.
//
// Invalid geometries never fail: empty bounds yield an empty image, and a
// ring without room to be drawn yields a transparent image.
func Render(p Params, grad image.Image) *image.RGBA {
	p = p.normalized()
	g := Layout(p)
	w, h := g.PixelSize()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	if w == 0 || h == 0 {
		Logger().Debug("ring: empty bounds", "width", p.Width, "height", p.Height, "scale", p.Scale)
		return img
	}
	if g.Degenerate() {
		Logger().Debug("ring: no room for the ring", "radius", g.Radius, "ringWidth", g.RingWidth)
		return img
	}

	if rgba, ok := grad.(*image.RGBA); ok && rgba == nil {
		grad = nil
	}
	if grad != nil && grad.Bounds().Empty() {
		grad = nil
	}

	ms := ringraster.NewMasker(w, h)
	ms.Antialias = p.Antialias
	rd := renderer{p: p, g: g, ms: ms}
	rd.draw(img, grad)
	return img
}

type renderer struct {
	p  Params
	g  Geometry
	ms *ringraster.Masker
}

func (rd renderer) stroke(path ringpath.Path, m rasterx.Matrix2D, capMode ringraster.CapMode, join ringraster.JoinMode) *image.Alpha {
	return rd.ms.Stroke(path, m, ringraster.StrokeOptions{
		LineWidth: rd.g.RingWidth * rd.g.Scale,
		Cap:       capMode,
		Join:      join,
	})
}

func (rd renderer) draw(dst *image.RGBA, grad image.Image) {
	g, p := rd.g, rd.p

	// the backdrop ring also clips the end shadow
	circle := ringpath.Circle(g.CenterX, g.CenterY, g.Radius, -angleOffset)
	ringMask := rd.stroke(circle, g.device(), ringraster.RoundCap, ringraster.Round)
	ringraster.Paint(dst, p.Backdrop(), ringMask)

	if g.HasOverflow() {
		// past one turn, the solid arc covers the whole ring
		end := math.Min(g.Overflow, 2*math.Pi-angleOffset)
		arc := ringpath.Arc(g.CenterX, g.CenterY, g.Radius, -angleOffset, end)
		ringraster.Paint(dst, p.StartColor, rd.stroke(arc, g.device(), p.Style.lineCap(), p.Style.lineJoin()))
	}

	if p.EndShadowOpacity > 0 {
		rd.drawEndShadow(dst, ringMask)
	}

	if g.ArcEnd <= -angleOffset {
		return
	}
	arc := ringpath.Arc(g.CenterX, g.CenterY, g.Radius, -angleOffset, g.ArcEnd)
	mask := rd.stroke(arc, g.frame(), p.Style.lineCap(), p.Style.lineJoin())
	if grad == nil {
		ringraster.Paint(dst, p.StartColor, mask)
		return
	}
	ringraster.DrawImage(dst, grad, rd.gradientMatrix(grad.Bounds()), mask, p.Antialias)
}

// capShape returns the shape drawn under the end of the gradient arc,
// in the rotated frame.
func (rd renderer) capShape() ringpath.Path {
	g := rd.g
	w := g.RingWidth
	ex, ey := ringpath.PointAt(g.CenterX, g.CenterY, g.Radius, g.ArcEnd)
	if rd.p.Style == Square {
		return ringpath.Rect(ex-w/2, ey-squareCapDepth, ex+w/2, ey, g.ArcEnd, ex, ey)
	}
	return ringpath.Circle(ex, ey, w/2, g.ArcEnd)
}

// drawEndShadow paints the shadow of the cap shape and the cap itself,
// in the end color, both restricted to the ring.
func (rd renderer) drawEndShadow(dst *image.RGBA, ringMask *image.Alpha) {
	g := rd.g
	capShape := rd.capShape().Transform(g.frame())
	shape := rd.ms.Fill(capShape, rasterx.Identity)
	dx, dy := g.ShadowOffset()
	shadow := ringraster.DropShadow{
		OffsetX: dx * g.Scale,
		OffsetY: dy * g.Scale,
		Blur:    g.RingWidth / 6 * g.Scale,
		Color:   rd.p.shadowColor(),
	}
	// one pixel of slack for the antialiased border
	shadow.Draw(dst, shape, capShape.Bounds().Inset(1).Rectangle(), ringMask)
	ringraster.Paint(dst, rd.p.EndColor, ringraster.Intersect(shape, ringMask))
}

// gradientMatrix maps the gradient image onto the outer square of the ring,
// in the rotated frame.
func (rd renderer) gradientMatrix(bounds image.Rectangle) rasterx.Matrix2D {
	g := rd.g
	d := 2*g.Radius + g.RingWidth
	return g.frame().
		Translate(g.CenterX-d/2, g.CenterY-d/2).
		Scale(d/float64(bounds.Dx()), d/float64(bounds.Dy())).
		Translate(-float64(bounds.Min.X), -float64(bounds.Min.Y))
}

// GradientImage renders the conical gradient texturing the arc of `p`:
// the start color at 12 o'clock turning clockwise to the end color, with
// the seam hidden just before 12 o'clock.
// It returns nil for degenerate rings.
func GradientImage(p Params) *image.RGBA {
	p = p.normalized()
	g := Layout(p)
	d := 2*g.Radius + g.RingWidth
	if g.Degenerate() || !(d > 0) {
		return nil
	}
	// the flat extremities absorb the round caps
	s := math.Min(1.5*g.RingWidth/(2*math.Pi*g.Radius), 0.5)
	ramp, err := gradient.NewRamp(
		[]color.Color{p.StartColor, p.StartColor, p.EndColor, p.EndColor},
		[]float64{0, s, 1 - s, 1},
	)
	if err != nil {
		Logger().Debug("ring: invalid gradient ramp", "error", err)
		return nil
	}
	spec := gradient.Spec{
		Type:    gradient.Conical,
		Primary: ramp,
		Anchors: [2]*gradient.Axis{{Start: gradient.Point{X: 0.5, Y: 0.5}, End: gradient.Point{X: 0.5 - 2*s, Y: 0}}},
	}
	img, err := gradient.Render(spec, gradient.Size{W: d, H: d}, p.GradientScale*p.Scale)
	if err != nil {
		Logger().Debug("ring: gradient rendering failed", "error", err)
		return nil
	}
	return img
}
