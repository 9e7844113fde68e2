package gradient

import (
	"image/color"
	"math"

	colorful "github.com/lucasb-eyer/go-colorful"
	"github.com/pkg/errors"
)

var (
	// ErrEmptyRamp is returned when building a ramp without colors.
	ErrEmptyRamp = errors.New("gradient: ramp has no color")
	// ErrLocationCount is returned when locations and colors differ in length.
	ErrLocationCount = errors.New("gradient: locations and colors count mismatch")
	// ErrUnsortedLocations is returned when locations are decreasing.
	ErrUnsortedLocations = errors.New("gradient: locations must be non-decreasing")
	// ErrLocationRange is returned when a location is outside [0,1] or NaN.
	ErrLocationRange = errors.New("gradient: locations must be in [0,1]")
)

// Stop is one color of a ramp, at a location between 0 and 1.
type Stop struct {
	Color    color.NRGBA
	Location float64
}

// Ramp is an ordered list of stops, defining a piecewise linear
// color interpolation. A valid ramp has at least one stop.
type Ramp []Stop

// Transparent is the ramp used in place of an unspecified one.
var Transparent = Ramp{{Color: color.NRGBA{}, Location: 0}}

// UniformLocations returns `count` locations evenly spread over [0,1].
// A single location is 0.
func UniformLocations(count int) []float64 {
	if count <= 0 {
		return nil
	}
	out := make([]float64, count)
	if count == 1 {
		return out
	}
	for i := range out {
		out[i] = float64(i) / float64(count-1)
	}
	return out
}

// NewRamp builds a ramp from `colors` placed at `locations`.
// If `locations` is nil, the colors are evenly spread.
func NewRamp(colors []color.Color, locations []float64) (Ramp, error) {
	if len(colors) == 0 {
		return nil, ErrEmptyRamp
	}
	if locations == nil {
		locations = UniformLocations(len(colors))
	}
	if len(locations) != len(colors) {
		return nil, errors.Wrapf(ErrLocationCount, "%d colors, %d locations", len(colors), len(locations))
	}
	out := make(Ramp, len(colors))
	for i, c := range colors {
		if !(0 <= locations[i] && locations[i] <= 1) {
			return nil, errors.Wrapf(ErrLocationRange, "location %d (%g)", i, locations[i])
		}
		if i > 0 && locations[i] < locations[i-1] {
			return nil, errors.Wrapf(ErrUnsortedLocations, "location %d (%g) < location %d (%g)",
				i, locations[i], i-1, locations[i-1])
		}
		out[i] = Stop{Color: color.NRGBAModel.Convert(c).(color.NRGBA), Location: locations[i]}
	}
	return out, nil
}

// MustRamp is like NewRamp but panics on invalid input.
func MustRamp(colors []color.Color, locations []float64) Ramp {
	r, err := NewRamp(colors, locations)
	if err != nil {
		panic(err)
	}
	return r
}

// ColorAt returns the color of the ramp at `t`, using the RGB blend.
func (r Ramp) ColorAt(t float64) color.NRGBA {
	return r.colorAt(t, BlendRGB)
}

// colorAt looks for the closest locations around `t`
// and interpolates between their colors.
// Values outside the ramp are clamped to the end colors.
func (r Ramp) colorAt(t float64, blend Blend) color.NRGBA {
	if len(r) == 0 {
		return color.NRGBA{}
	}
	var (
		p0, p1 = 0., 1.
		c0, c1 = r[0].Color, r[len(r)-1].Color
	)
	for _, s := range r {
		if s.Location > p0 && t >= s.Location {
			p0, c0 = s.Location, s.Color
		}
		if s.Location < p1 && t <= s.Location {
			p1, c1 = s.Location, s.Color
		}
	}
	if p0 == p1 {
		return c0
	}
	return blend.lerp(c0, c1, (t-p0)/(p1-p0))
}

// Blend selects the color space used to interpolate between two stops.
type Blend uint8

const (
	// BlendRGB interpolates each 8-bit channel linearly.
	BlendRGB Blend = iota
	// BlendLab interpolates in the CIE L*a*b* space.
	BlendLab
	// BlendHcl interpolates in the HCL space, taking the shortest hue path.
	BlendHcl
)

func (b Blend) String() string {
	switch b {
	case BlendRGB:
		return "rgb"
	case BlendLab:
		return "lab"
	case BlendHcl:
		return "hcl"
	default:
		return "<unknown Blend>"
	}
}

func (b Blend) lerp(c0, c1 color.NRGBA, t float64) color.NRGBA {
	t = clamp01(t)
	switch b {
	case BlendLab, BlendHcl:
		if t == 0 {
			return c0
		} else if t == 1 {
			return c1
		}
		f0, f1 := toColorful(c0), toColorful(c1)
		var m colorful.Color
		if b == BlendLab {
			m = f0.BlendLab(f1, t)
		} else {
			m = f0.BlendHcl(f1, t)
		}
		r, g, bl := m.Clamped().RGB255()
		return color.NRGBA{R: r, G: g, B: bl, A: lerp8(c0.A, c1.A, t)}
	default:
		return Lerp(c0, c1, t)
	}
}

func toColorful(c color.NRGBA) colorful.Color {
	return colorful.Color{R: float64(c.R) / 0xff, G: float64(c.G) / 0xff, B: float64(c.B) / 0xff}
}

// Lerp linearly interpolates each channel from `a` to `b`.
// `t` is clamped to [0,1].
func Lerp(a, b color.NRGBA, t float64) color.NRGBA {
	t = clamp01(t)
	return color.NRGBA{
		R: lerp8(a.R, b.R, t),
		G: lerp8(a.G, b.G, t),
		B: lerp8(a.B, b.B, t),
		A: lerp8(a.A, b.A, t),
	}
}

func lerp8(a, b uint8, t float64) uint8 {
	return uint8(math.Round(float64(a) + t*(float64(b)-float64(a))))
}

func clamp01(t float64) float64 {
	if t < 0 || t != t { // NaN goes to the start color
		return 0
	}
	if t > 1 {
		return 1
	}
	return t
}
