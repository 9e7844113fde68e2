package ringraster

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	"github.com/anthonynsimon/bild/blur"
	"github.com/srwiley/rasterx"
	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/math/f64"
)

// Paint composites the uniform color `c` over `dst`, through `mask`
// (nil meaning fully opaque).
func Paint(dst draw.Image, c color.Color, mask image.Image) {
	draw.DrawMask(dst, dst.Bounds(), image.NewUniform(c), image.Point{}, mask, dst.Bounds().Min, draw.Over)
}

// DrawImage composites `src` over `dst` after mapping it by `m`
// (from source pixels to destination pixels), through `mask`.
// Bilinear sampling is used when `smooth` is true.
func DrawImage(dst draw.Image, src image.Image, m rasterx.Matrix2D, mask image.Image, smooth bool) {
	var interp xdraw.Interpolator = xdraw.NearestNeighbor
	if smooth {
		interp = xdraw.BiLinear
	}
	s2d := f64.Aff3{m.A, m.C, m.E, m.B, m.D, m.F}
	var opts *xdraw.Options
	if mask != nil {
		opts = &xdraw.Options{DstMask: mask, DstMaskP: dst.Bounds().Min}
	}
	interp.Transform(dst, s2d, src, src.Bounds(), xdraw.Over, opts)
}

// DropShadow paints a blurred and offset copy of a shape.
type DropShadow struct {
	OffsetX, OffsetY float64 // in pixels
	Blur             float64 // gaussian blur radius, in pixels
	Color            color.Color
}

// Margin returns the number of pixels the shadow may spread
// around its shape.
func (s DropShadow) Margin() int {
	return int(math.Ceil(3*s.Blur)) + 1
}

// Draw composites the shadow of `shape` (a coverage mask) over `dst`,
// restricted to `clip` (nil meaning no restriction).
// `area` is the region of `shape` worth considering, typically the
// pixel bounds of the path it was filled from.
func (s DropShadow) Draw(dst draw.Image, shape *image.Alpha, area image.Rectangle, clip image.Image) {
	area = area.Inset(-s.Margin()).Intersect(shape.Bounds())
	if area.Empty() {
		return
	}

	// colorize the shape in a local layer
	layer := image.NewRGBA(image.Rect(0, 0, area.Dx(), area.Dy()))
	draw.DrawMask(layer, layer.Bounds(), image.NewUniform(s.Color), image.Point{}, shape, area.Min, draw.Src)

	var shadow image.Image = layer
	if s.Blur > 0 {
		shadow = blur.Gaussian(layer, s.Blur)
	}

	target := area.Add(image.Pt(int(math.Round(s.OffsetX)), int(math.Round(s.OffsetY))))
	draw.DrawMask(dst, target, shadow, shadow.Bounds().Min, clip, target.Min, draw.Over)
}
