package ring

import (
	"image"
	"image/color"
	"math"
)

// cacheKey gathers the parameters the gradient image depends on.
type cacheKey struct {
	ringWidth     float64
	start, end    color.RGBA
	gradientScale float64
	scale         float64
	diameter      float64
}

func rgba(c color.Color) color.RGBA {
	if c == nil {
		return color.RGBA{}
	}
	return color.RGBAModel.Convert(c).(color.RGBA)
}

// Layer owns the parameters of one ring and caches its gradient image
// between frames. Setters invalidate the cache when needed, and the
// image is regenerated lazily by Render.
//
// A Layer is not safe for concurrent use.
type Layer struct {
	params Params

	gradient    *image.RGBA // nil when invalid
	key         cacheKey
	generations int // number of gradient images computed
}

// NewLayer returns a ring with default parameters,
// drawn in a `width` x `height` box.
func NewLayer(width, height float64) *Layer {
	return &Layer{params: DefaultParams(width, height)}
}

// Params returns the current parameters. The Progress field is unused.
func (l *Layer) Params() Params { return l.params }

func (l *Layer) invalidate() { l.gradient = nil }

// SetSize changes the bounds of the ring, in points.
func (l *Layer) SetSize(width, height float64) {
	l.params.Width, l.params.Height = width, height
	l.invalidate()
}

// SetScale changes the number of pixels per point.
func (l *Layer) SetScale(scale float64) {
	l.params.Scale = scale
	l.invalidate()
}

// SetRingWidth changes the thickness of the ring, in points.
func (l *Layer) SetRingWidth(width float64) {
	l.params.RingWidth = width
	l.invalidate()
}

// SetStyle changes the shape of the arc ends.
func (l *Layer) SetStyle(style Style) { l.params.Style = style }

// SetStartColor changes the color at the start of the arc.
func (l *Layer) SetStartColor(c color.Color) {
	l.params.StartColor = c
	l.invalidate()
}

// SetEndColor changes the color at the end of the arc.
func (l *Layer) SetEndColor(c color.Color) {
	l.params.EndColor = c
	l.invalidate()
}

// SetBackdropColor changes the color of the backdrop circle.
// nil restores the color derived from the start color.
func (l *Layer) SetBackdropColor(c color.Color) { l.params.BackdropColor = c }

// SetEndShadowOpacity changes the opacity of the end shadow,
// clamped to [0,1].
func (l *Layer) SetEndShadowOpacity(opacity float64) {
	l.params.EndShadowOpacity = clamp(opacity, 0, 1)
}

// EndShadowOpacity returns the stored, clamped, opacity.
func (l *Layer) EndShadowOpacity() float64 { return l.params.EndShadowOpacity }

// SetAntialias toggles antialiasing.
func (l *Layer) SetAntialias(antialias bool) { l.params.Antialias = antialias }

// SetGradientScale changes the relative resolution of the gradient image.
func (l *Layer) SetGradientScale(scale float64) {
	l.params.GradientScale = scale
	l.invalidate()
}

func (l *Layer) cacheKey() cacheKey {
	p := l.params.normalized()
	return cacheKey{
		ringWidth:     p.RingWidth,
		start:         rgba(p.StartColor),
		end:           rgba(p.EndColor),
		gradientScale: p.GradientScale,
		scale:         p.Scale,
		diameter:      math.Min(p.Width, p.Height),
	}
}

// gradientImage returns the cached gradient, computing it if needed.
func (l *Layer) gradientImage() *image.RGBA {
	key := l.cacheKey()
	if l.gradient != nil && l.key == key {
		return l.gradient
	}
	l.gradient, l.key = GradientImage(l.params), key
	if l.gradient != nil {
		l.generations++
		Logger().Debug("ring: gradient image computed",
			"size", l.gradient.Bounds().Size(), "ringWidth", key.ringWidth)
	}
	return l.gradient
}

// Render draws the ring for one progress sample.
func (l *Layer) Render(progress float64) *image.RGBA {
	p := l.params
	p.Progress = progress
	if grad := l.gradientImage(); grad != nil {
		return Render(p, grad)
	}
	return Render(p, nil)
}
