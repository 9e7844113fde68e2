// Package gradient rasterizes linear, radial, conical and bilinear
// color gradients into RGBA images.
//
// Every pixel is mapped to a scalar stop through a closed form
// projection, and the stop indexes a piecewise linear color ramp.
package gradient

import (
	"image"
	"image/color"
	"math"
	"strings"

	"github.com/pkg/errors"
)

// ErrInvalidSize is returned when the requested image has no pixel,
// or more than MaxDimension pixels on one side.
var ErrInvalidSize = errors.New("gradient: size and scale must be positive and bounded")

// MaxDimension is the largest width or height, in pixels, of a rendered gradient.
const MaxDimension = 1 << 14

// Type is the projection used to compute the gradient stops.
type Type uint8

const (
	Linear Type = iota
	Radial
	Conical
	Bilinear
)

func (t Type) String() string {
	switch t {
	case Linear:
		return "linear"
	case Radial:
		return "radial"
	case Conical:
		return "conical"
	case Bilinear:
		return "bilinear"
	default:
		return "<unknown Type>"
	}
}

// ParseType returns the Type named `s`, as returned by String.
// The case is ignored.
func ParseType(s string) (Type, error) {
	for t := Linear; t <= Bilinear; t++ {
		if strings.EqualFold(t.String(), strings.TrimSpace(s)) {
			return t, nil
		}
	}
	return 0, errors.Errorf("gradient: unknown type %q", s)
}

// Point is a position. Anchors are expressed in the unit square,
// (0,0) being the top left pixel and (1,1) the bottom right one.
type Point struct{ X, Y float64 }

// Axis is the start to end vector of a projection.
type Axis struct{ Start, End Point }

// Size is the size of a gradient image, in points.
type Size struct{ W, H float64 }

// Spec describes a gradient.
type Spec struct {
	Type Type

	// Primary is required. Secondary is only used by Bilinear
	// gradients, and defaults to Transparent.
	Primary, Secondary Ramp

	// Anchors optionally override the default axes.
	// Only Bilinear gradients use the second axis.
	Anchors [2]*Axis

	Blend Blend
}

// default axes, indexed by Type, then by axis
var defaultAxes = [...][2]Axis{
	Linear:   {{Start: Point{0.5, 0}, End: Point{0.5, 1}}},
	Radial:   {{Start: Point{0.5, 0.5}, End: Point{1, 0.5}}},
	Conical:  {{Start: Point{0.5, 0.5}, End: Point{1, 0.5}}},
	Bilinear: {{Start: Point{0, 0.5}, End: Point{1, 0.5}}, {Start: Point{0.5, 0}, End: Point{0.5, 1}}},
}

// Axis returns the effective axis `i` (0 or 1) of the gradient.
func (s Spec) Axis(i int) Axis {
	if a := s.Anchors[i]; a != nil {
		return *a
	}
	if int(s.Type) < len(defaultAxes) {
		return defaultAxes[s.Type][i]
	}
	return defaultAxes[Linear][i]
}

func (s Spec) primary() Ramp {
	if len(s.Primary) == 0 {
		return Transparent
	}
	return s.Primary
}

func (s Spec) secondary() Ramp {
	if len(s.Secondary) == 0 {
		return Transparent
	}
	return s.Secondary
}

// LinearStop projects `p` on the vector g0 -> g1, returning
// the signed distance from g0 in units of |g1 - g0|.
// The result is not bounded.
func LinearStop(p, g0, g1 Point) float64 {
	sx, sy := g1.X-g0.X, g1.Y-g0.Y
	n := sx*sx + sy*sy
	if n == 0 {
		return 0
	}
	return ((p.X-g0.X)*sx + (p.Y-g0.Y)*sy) / n
}

// RadialStop returns the distance from `p` to g0, in units of |g1 - g0|.
func RadialStop(p, g0, g1 Point) float64 {
	d := math.Hypot(g1.X-g0.X, g1.Y-g0.Y)
	if d == 0 {
		return 0
	}
	return math.Hypot(p.X-g0.X, p.Y-g0.Y) / d
}

// ConicalStop returns the angle of `p` around g0, measured from the
// direction g0 -> g1, as a fraction of a full turn in [0, 1).
// With the Y axis pointing down, stops increase clockwise.
func ConicalStop(p, g0, g1 Point) float64 {
	q := math.Atan2(g1.Y-g0.Y, g1.X-g0.X)
	a := math.Mod(math.Atan2(p.Y-g0.Y, p.X-g0.X)-q, 2*math.Pi)
	if a < 0 {
		a += 2 * math.Pi
	}
	t := a / (2 * math.Pi)
	if t >= 1 { // rounding of a tiny negative angle
		t = 0
	}
	return t
}

// pixelSpace maps the unit square anchors to pixel coordinates
func pixelSpace(a Axis, w, h int) (g0, g1 Point) {
	fw, fh := float64(w-1), float64(h-1)
	return Point{a.Start.X * fw, a.Start.Y * fh}, Point{a.End.X * fw, a.End.Y * fh}
}

// pixelColor returns the color of the pixel `p` of a `w` x `h` image.
// It is the per pixel kernel of Render.
func (s Spec) pixelColor(p Point, w, h int) color.NRGBA {
	g0, g1 := pixelSpace(s.Axis(0), w, h)
	switch s.Type {
	case Radial:
		return s.primary().colorAt(RadialStop(p, g0, g1), s.Blend)
	case Conical:
		return s.primary().colorAt(ConicalStop(p, g0, g1), s.Blend)
	case Bilinear:
		tx := LinearStop(p, g0, g1)
		c1 := s.primary().colorAt(tx, s.Blend)
		c2 := s.secondary().colorAt(tx, s.Blend)
		h0, h1 := pixelSpace(s.Axis(1), w, h)
		return s.Blend.lerp(c1, c2, LinearStop(p, h0, h1))
	default:
		return s.primary().colorAt(LinearStop(p, g0, g1), s.Blend)
	}
}

// PixelSize returns the dimensions in pixels of a gradient
// of size `size` rendered at `scale`, or 0, 0 if one of them
// is not in ]0, MaxDimension].
func PixelSize(size Size, scale float64) (w, h int) {
	fw, fh := math.Ceil(size.W*scale), math.Ceil(size.H*scale)
	if !(fw > 0 && fw <= MaxDimension) || !(fh > 0 && fh <= MaxDimension) {
		return 0, 0
	}
	return int(fw), int(fh)
}

// Render computes the gradient image, with dimensions `size` x `scale`.
// The result is premultiplied; the same inputs always produce the same pixels.
func Render(spec Spec, size Size, scale float64) (*image.RGBA, error) {
	if !(scale > 0) || !(size.W > 0) || !(size.H > 0) {
		return nil, ErrInvalidSize
	}
	w, h := PixelSize(size, scale)
	if w == 0 || h == 0 {
		return nil, ErrInvalidSize
	}
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c := spec.pixelColor(Point{float64(x), float64(y)}, w, h)
			img.SetRGBA(x, y, premultiply(c))
		}
	}
	return img, nil
}

func premultiply(c color.NRGBA) color.RGBA {
	if c.A == 0xff {
		return color.RGBA{R: c.R, G: c.G, B: c.B, A: 0xff}
	}
	r, g, b, a := c.RGBA()
	return color.RGBA{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(b >> 8), A: uint8(a >> 8)}
}
