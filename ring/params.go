package ring

import (
	"fmt"
	"image/color"
	"math"
	"strings"

	"github.com/benoitkugler/ringprogress/ringraster"
	"golang.org/x/image/colornames"
)

// Style selects how the ends of the progress arc are drawn.
type Style uint8

const (
	// Round uses round caps and joins, and a circular shadow cap.
	Round Style = iota
	// Square uses butt caps and miter joins, and a thin rectangular shadow cap.
	Square
)

func (s Style) String() string {
	switch s {
	case Round:
		return "round"
	case Square:
		return "square"
	default:
		return fmt.Sprintf("<unknown Style %d>", s)
	}
}

// ParseStyle is the inverse of String, ignoring case.
func ParseStyle(s string) (Style, error) {
	switch strings.ToLower(s) {
	case "round":
		return Round, nil
	case "square":
		return Square, nil
	}
	return 0, fmt.Errorf("ring: unknown style %q", s)
}

func (s Style) lineCap() ringraster.CapMode {
	if s == Square {
		return ringraster.ButtCap
	}
	return ringraster.RoundCap
}

func (s Style) lineJoin() ringraster.JoinMode {
	if s == Square {
		return ringraster.Miter
	}
	return ringraster.Round
}

// backdropAlpha is the opacity of the derived backdrop color
const backdropAlpha = 0.15

// Params are the inputs of a ring rendering.
// Lengths are in points; the output has Scale pixels per point.
type Params struct {
	Width, Height float64 // bounds of the ring
	Scale         float64 // device scale, defaulting to 1

	RingWidth float64
	// Progress is the number of revolutions: values below 0 are
	// treated as 0 and values above 1 show several revolutions.
	Progress float64
	Style    Style

	StartColor, EndColor color.Color
	// BackdropColor is optional and defaults to
	// the start color at 15% opacity.
	BackdropColor color.Color

	// EndShadowOpacity is clamped to [0,1].
	EndShadowOpacity float64
	Antialias        bool
	// GradientScale is the relative resolution of the gradient image,
	// defaulting to 1.
	GradientScale float64
}

// DefaultParams returns the default parameters for a ring
// drawn in a `width` x `height` box.
func DefaultParams(width, height float64) Params {
	return Params{
		Width:            width,
		Height:           height,
		Scale:            1,
		RingWidth:        20,
		Style:            Round,
		StartColor:       colornames.Red,
		EndColor:         colornames.Blue,
		EndShadowOpacity: 1,
		Antialias:        true,
		GradientScale:    1,
	}
}

func clamp(v, lo, hi float64) float64 {
	if !(v > lo) { // NaN as well
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// normalized applies the clamping and defaulting policies.
func (p Params) normalized() Params {
	p.Progress = clamp(p.Progress, 0, math.Inf(1))
	if math.IsInf(p.Progress, 1) {
		p.Progress = 0
	}
	p.EndShadowOpacity = clamp(p.EndShadowOpacity, 0, 1)
	if !(p.Scale > 0) {
		p.Scale = 1
	}
	if !(p.GradientScale > 0) {
		p.GradientScale = 1
	}
	p.RingWidth = clamp(p.RingWidth, 0, math.Inf(1))
	if p.StartColor == nil {
		p.StartColor = colornames.Red
	}
	if p.EndColor == nil {
		p.EndColor = colornames.Blue
	}
	return p
}

// Backdrop returns the effective backdrop color.
func (p Params) Backdrop() color.Color {
	if p.BackdropColor != nil {
		return p.BackdropColor
	}
	var start color.Color = colornames.Red
	if p.StartColor != nil {
		start = p.StartColor
	}
	c := color.NRGBAModel.Convert(start).(color.NRGBA)
	c.A = uint8(math.Round(backdropAlpha * 0xff))
	return c
}

func (p Params) shadowColor() color.NRGBA {
	return color.NRGBA{A: uint8(math.Round(p.EndShadowOpacity * 0xff))}
}
