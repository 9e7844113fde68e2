// Package ringraster turns ring paths into coverage masks,
// by wrapping rasterx, and composites colors, images and
// shadows through those masks.
package ringraster

import (
	"image"
	"image/color"

	"github.com/benoitkugler/ringprogress/ringpath"
	"github.com/srwiley/rasterx"
	"golang.org/x/image/math/fixed"
)

// Masker rasterizes paths into alpha coverage masks
// of a fixed size. It is not safe for concurrent use.
type Masker struct {
	mask   *image.Alpha    // shared drawing surface
	dasher *rasterx.Dasher // to avoid shared state
	filler *rasterx.Filler // we use separated instance

	// Antialias enables smooth edges. When false,
	// coverage is thresholded at 50%.
	Antialias bool
}

// NewMasker returns a masker for images of `width` x `height` pixels,
// with antialiasing enabled.
func NewMasker(width, height int) *Masker {
	mask := image.NewAlpha(image.Rect(0, 0, width, height))
	scanner := rasterx.NewScannerGV(width, height, mask, mask.Bounds())
	scanner.SetColor(color.Opaque)
	return &Masker{
		mask:      mask,
		dasher:    rasterx.NewDasher(width, height, scanner),
		filler:    rasterx.NewFiller(width, height, scanner),
		Antialias: true,
	}
}

// Bounds returns the pixel bounds of the produced masks.
func (ms *Masker) Bounds() image.Rectangle { return ms.mask.Bounds() }

func (ms *Masker) reset() {
	for i := range ms.mask.Pix {
		ms.mask.Pix[i] = 0
	}
}

// result copies the drawing surface, applying the antialiasing setting
func (ms *Masker) result() *image.Alpha {
	out := image.NewAlpha(ms.mask.Bounds())
	copy(out.Pix, ms.mask.Pix)
	if !ms.Antialias {
		Threshold(out)
	}
	return out
}

// Fill returns the coverage of the path `p` transformed by `m`,
// using the non zero winding rule.
func (ms *Masker) Fill(p ringpath.Path, m rasterx.Matrix2D) *image.Alpha {
	ms.reset()
	ms.filler.Clear()
	ms.filler.SetWinding(true)
	p.AddTo(ms.filler, m)
	ms.filler.Draw()
	return ms.result()
}

// Stroke returns the coverage of the outline of the path `p` transformed by `m`.
// The line width is not transformed.
func (ms *Masker) Stroke(p ringpath.Path, m rasterx.Matrix2D, options StrokeOptions) *image.Alpha {
	ms.reset()
	ms.dasher.Clear()
	miter := options.MiterLimit
	if miter == 0 {
		miter = 4
	}
	gap := rasterx.FlatGap
	if options.Join == Round {
		gap = rasterx.RoundGap
	}
	capFunc := capToFunc[options.Cap]
	ms.dasher.SetStroke(
		fixed.Int26_6(options.LineWidth*64), fixed.Int26_6(miter*64),
		capFunc, capFunc, gap, joinToJoin[options.Join], nil, 0,
	)
	p.AddTo(ms.dasher, m)
	ms.dasher.Draw()
	return ms.result()
}

// Threshold turns the mask into a binary one, in place.
func Threshold(mask *image.Alpha) {
	for i, v := range mask.Pix {
		if v >= 0x80 {
			mask.Pix[i] = 0xff
		} else {
			mask.Pix[i] = 0
		}
	}
}

// Intersect returns the pointwise product of two masks with the same bounds.
func Intersect(a, b *image.Alpha) *image.Alpha {
	out := image.NewAlpha(a.Bounds())
	for i := range out.Pix {
		out.Pix[i] = uint8((uint32(a.Pix[i])*uint32(b.Pix[i]) + 0x7f) / 0xff)
	}
	return out
}
