package ring

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/colornames"
)

func TestLayerDefaults(t *testing.T) {
	l := NewLayer(100, 50)
	p := l.Params()
	assert.Equal(t, 20.0, p.RingWidth)
	assert.Equal(t, Round, p.Style)
	assert.Equal(t, colornames.Red, p.StartColor)
	assert.Equal(t, colornames.Blue, p.EndColor)
	assert.Nil(t, p.BackdropColor)
	assert.Equal(t, 1.0, p.EndShadowOpacity)
	assert.True(t, p.Antialias)
	assert.Equal(t, 1.0, p.GradientScale)
	assert.Equal(t, 1.0, p.Scale)
}

func TestLayerCache(t *testing.T) {
	l := NewLayer(100, 100)
	img := l.Render(0.3)
	assert.Equal(t, image.Rect(0, 0, 100, 100), img.Bounds())
	assert.Equal(t, 1, l.generations)

	// progress and drawing options reuse the gradient
	l.Render(0.7)
	l.SetStyle(Square)
	l.SetBackdropColor(colornames.Gray)
	l.SetEndShadowOpacity(0.5)
	l.SetAntialias(false)
	l.Render(1.2)
	assert.Equal(t, 1, l.generations)

	// gradient inputs drop it immediately
	for _, change := range []func(){
		func() { l.SetEndColor(colornames.Green) },
		func() { l.SetStartColor(colornames.Yellow) },
		func() { l.SetRingWidth(10) },
		func() { l.SetGradientScale(2) },
		func() { l.SetScale(2) },
		func() { l.SetSize(80, 120) },
	} {
		before := l.generations
		change()
		assert.Nil(t, l.gradient)
		l.Render(0.5)
		assert.Equal(t, before+1, l.generations)
		l.Render(0.6)
		assert.Equal(t, before+1, l.generations)
	}

	// 80 points, at a gradient scale of 2 and a device scale of 2
	require.NotNil(t, l.gradient)
	assert.Equal(t, image.Rect(0, 0, 320, 320), l.gradient.Bounds())
}

func TestLayerRender(t *testing.T) {
	l := NewLayer(220, 220)
	l.SetEndShadowOpacity(0)
	got := l.Render(0.5)

	p := DefaultParams(220, 220)
	p.Progress = 0.5
	p.EndShadowOpacity = 0
	want := Render(p, GradientImage(p))
	assert.Equal(t, want.Pix, got.Pix)
}

func TestLayerDegenerate(t *testing.T) {
	l := NewLayer(10, 10)
	img := l.Render(0.5)
	assert.Equal(t, image.Rect(0, 0, 10, 10), img.Bounds())
	assert.Zero(t, l.generations)

	l.SetSize(0, 0)
	assert.True(t, l.Render(0.5).Bounds().Empty())
}

func TestGroup(t *testing.T) {
	g := NewGroup(100, 100, 3)
	require.Equal(t, 3, g.Len())
	assert.Equal(t, 0.0, g.Inset(0))
	assert.Equal(t, 22.0, g.Inset(1))
	assert.Equal(t, 44.0, g.Inset(2))
	assert.Equal(t, 56.0, g.Ring(1).Params().Width)
	assert.Equal(t, 12.0, g.Ring(2).Params().Width)

	g.Ring(1).SetStartColor(colornames.Green)
	img := g.Render(0.5, 0.5)
	saveToPngFile(t, "group", img)
	assert.Equal(t, image.Rect(0, 0, 100, 100), img.Bounds())

	// outer ring: its backdrop at 9 o'clock
	assert.Equal(t, defaultBackdrop, img.RGBAAt(10, 50))
	// second ring, just after 12 o'clock, in its own start color
	c := img.RGBAAt(53, 32)
	assert.Equal(t, uint8(0xff), c.A)
	assert.Greater(t, c.G, c.B)
	assert.Zero(t, c.R)
	// the third ring has no room: the center stays empty
	assert.Equal(t, color.RGBA{}, img.RGBAAt(50, 50))

	g.SetSpacing(0)
	assert.Equal(t, 20.0, g.Inset(1))
	assert.Equal(t, 60.0, g.Ring(1).Params().Width)

	g.SetRingWidth(10)
	assert.Equal(t, 10.0, g.Ring(2).Params().RingWidth)
	assert.Equal(t, 60.0, g.Ring(2).Params().Width)

	g.SetScale(2)
	assert.Equal(t, image.Rect(0, 0, 200, 200), g.Render().Bounds())

	g.SetSize(40, 40)
	assert.Equal(t, 20.0, g.Ring(1).Params().Width)
}
