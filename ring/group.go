package ring

import (
	"image"
	"image/draw"
	"math"
)

// DefaultSpacing is the default gap between the rings of a Group, in points.
const DefaultSpacing = 2

// Group stacks concentric rings sharing the same bounds: the ring `i`
// is inset by i x (ring width + spacing) on each side.
// A Group is not safe for concurrent use.
type Group struct {
	width, height float64
	scale         float64
	ringWidth     float64
	spacing       float64
	rings         []*Layer
}

// NewGroup returns a group of `count` rings in a `width` x `height` box,
// with default parameters.
func NewGroup(width, height float64, count int) *Group {
	g := &Group{width: width, height: height, scale: 1, ringWidth: 20, spacing: DefaultSpacing}
	g.rings = make([]*Layer, count)
	for i := range g.rings {
		g.rings[i] = NewLayer(width, height)
	}
	g.layout()
	return g
}

// Len returns the number of rings.
func (g *Group) Len() int { return len(g.rings) }

// Ring returns the ring `i`, the outer one being 0. Its size,
// scale and ring width are managed by the group.
func (g *Group) Ring(i int) *Layer { return g.rings[i] }

// Inset returns the margin around the ring `i`, in points.
func (g *Group) Inset(i int) float64 {
	return float64(i) * (g.ringWidth + g.spacing)
}

func (g *Group) layout() {
	for i, ring := range g.rings {
		inset := g.Inset(i)
		ring.SetSize(math.Max(0, g.width-2*inset), math.Max(0, g.height-2*inset))
		ring.SetScale(g.scale)
		ring.SetRingWidth(g.ringWidth)
	}
}

// SetSize changes the bounds shared by the rings.
func (g *Group) SetSize(width, height float64) {
	g.width, g.height = width, height
	g.layout()
}

// SetScale changes the number of pixels per point.
func (g *Group) SetScale(scale float64) {
	g.scale = scale
	g.layout()
}

// SetRingWidth changes the width of every ring.
func (g *Group) SetRingWidth(width float64) {
	g.ringWidth = width
	g.layout()
}

// SetSpacing changes the gap between consecutive rings.
func (g *Group) SetSpacing(spacing float64) {
	g.spacing = spacing
	g.layout()
}

// Render composites the rings, from the outer to the inner one.
// progress[i] is the progress of the ring `i`; missing values are 0.
func (g *Group) Render(progress ...float64) *image.RGBA {
	geom := Layout(Params{Width: g.width, Height: g.height, Scale: g.scale})
	w, h := geom.PixelSize()
	out := image.NewRGBA(image.Rect(0, 0, w, h))
	for i, ring := range g.rings {
		var p float64
		if i < len(progress) {
			p = progress[i]
		}
		img := ring.Render(p)
		if img.Bounds().Empty() {
			continue
		}
		off := int(math.Round(g.Inset(i) * geom.Scale))
		r := img.Bounds().Add(image.Pt(off, off))
		draw.Draw(out, r, img, img.Bounds().Min, draw.Over)
	}
	return out
}
