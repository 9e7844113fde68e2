package ring

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/colornames"
)

var (
	opaqueRed = color.RGBA{R: 0xff, A: 0xff}
	// red at 15%, premultiplied
	defaultBackdrop = color.RGBA{R: 38, A: 38}
)

func saveToPngFile(t *testing.T, name string, m image.Image) {
	var b bytes.Buffer
	require.NoError(t, png.Encode(&b, m))
	require.NoError(t, os.WriteFile(filepath.Join(t.TempDir(), name+".png"), b.Bytes(), 0o644))
}

// scenarioParams describes a ring of width 20 and radius 100
func scenarioParams(progress float64) Params {
	p := DefaultParams(220, 220)
	p.Progress = progress
	return p
}

func render(t *testing.T, name string, p Params) *image.RGBA {
	img := Render(p, GradientImage(p))
	saveToPngFile(t, name, img)
	require.Equal(t, image.Rect(0, 0, 220, 220), img.Bounds())
	return img
}

var approx = cmp.Comparer(func(a, b float64) bool { return math.Abs(a-b) < 1e-9 })

func TestLayout(t *testing.T) {
	minAngle := 1.1 * math.Atan(0.1)
	want := Geometry{
		Width: 220, Height: 220, Scale: 1,
		CenterX: 110, CenterY: 110,
		Radius: 100, RingWidth: 20, Progress: 0.5,
		SweepAngle: math.Pi / 2,
		MinAngle:   minAngle,
		MaxAngle:   2*math.Pi - 3*minAngle - math.Pi/2,
		ArcEnd:     math.Pi / 2,
	}
	got := Layout(scenarioParams(0.5))
	if diff := cmp.Diff(want, got, approx); diff != "" {
		t.Errorf("unexpected layout (-want +got):\n%s", diff)
	}
	assert.False(t, got.HasOverflow())
	assert.InDelta(t, math.Pi, got.Sweep(), 1e-12)

	x, y := got.LeadingEdge()
	assert.InDelta(t, 110, x, 1e-9)
	assert.InDelta(t, 210, y, 1e-9)

	// the shadow follows the motion, to the left at 6 o'clock
	dx, dy := got.ShadowOffset()
	assert.InDelta(t, -2, dx, 1e-9)
	assert.InDelta(t, 0, dy, 1e-9)
}

func TestLayoutSweep(t *testing.T) {
	for _, p := range []float64{0, 0.1, 0.25, 0.5, 0.8, 0.9} {
		g := Layout(scenarioParams(p))
		assert.InDelta(t, 2*math.Pi*p, g.Sweep(), 1e-12)
		assert.InDelta(t, g.SweepAngle, g.ArcEnd, 1e-12)
		assert.Zero(t, g.Overflow)
	}
}

func TestLayoutOverflow(t *testing.T) {
	g := Layout(scenarioParams(1.5))
	require.True(t, g.HasOverflow())
	assert.Equal(t, 1, g.Revolutions())
	assert.InDelta(t, math.Pi, g.PartialSweep(), 1e-12)
	assert.Equal(t, g.MaxAngle, g.ArcEnd)
	assert.InDelta(t, g.SweepAngle-g.MaxAngle, g.Overflow, 1e-12)

	// the leading edge is at 6 o'clock, on the second revolution
	x, y := g.LeadingEdge()
	assert.InDelta(t, 110, x, 1e-9)
	assert.InDelta(t, 210, y, 1e-9)

	g = Layout(scenarioParams(3.25))
	assert.Equal(t, 3, g.Revolutions())
	assert.InDelta(t, math.Pi/2, g.PartialSweep(), 1e-12)

	// close to a full turn, the gradient arc stops early
	g = Layout(scenarioParams(0.99))
	assert.True(t, g.HasOverflow())
}

func TestLayoutScale(t *testing.T) {
	p := scenarioParams(0.25)
	p.Scale = 2
	g := Layout(p)
	w, h := g.PixelSize()
	assert.Equal(t, 440, w)
	assert.Equal(t, 440, h)
	x, y := g.LeadingEdge()
	assert.InDelta(t, 420, x, 1e-9)
	assert.InDelta(t, 220, y, 1e-9)
}

func TestClamping(t *testing.T) {
	p := scenarioParams(-3)
	p.EndShadowOpacity = 1.5
	n := p.normalized()
	assert.Equal(t, 0.0, n.Progress)
	assert.Equal(t, 1.0, n.EndShadowOpacity)

	p.EndShadowOpacity = -0.2
	assert.Equal(t, 0.0, p.normalized().EndShadowOpacity)

	p.Progress = math.NaN()
	assert.Equal(t, 0.0, p.normalized().Progress)

	l := NewLayer(100, 100)
	l.SetEndShadowOpacity(1.5)
	assert.Equal(t, 1.0, l.EndShadowOpacity())
	l.SetEndShadowOpacity(-0.2)
	assert.Equal(t, 0.0, l.EndShadowOpacity())
	l.SetEndShadowOpacity(0.4)
	assert.Equal(t, 0.4, l.EndShadowOpacity())
}

func TestBackdrop(t *testing.T) {
	p := DefaultParams(10, 10)
	assert.Equal(t, color.NRGBA{R: 0xff, A: 38}, p.Backdrop())
	p.StartColor = colornames.Green
	assert.Equal(t, color.NRGBA{G: 0x80, A: 38}, p.Backdrop())
	p.BackdropColor = colornames.Black
	assert.Equal(t, colornames.Black, p.Backdrop())
}

func TestStyle(t *testing.T) {
	for _, s := range []Style{Round, Square} {
		got, err := ParseStyle(s.String())
		require.NoError(t, err)
		assert.Equal(t, s, got)
	}
	_, err := ParseStyle("triangle")
	assert.Error(t, err)
}

func TestHalfRing(t *testing.T) {
	img := render(t, "half_ring", scenarioParams(0.5))

	// the backdrop is drawn all around
	assert.Equal(t, defaultBackdrop, img.RGBAAt(10, 110))
	assert.Equal(t, defaultBackdrop, img.RGBAAt(95, 10))
	assert.Equal(t, defaultBackdrop, img.RGBAAt(90, 210))
	// nothing outside of the ring
	assert.Equal(t, color.RGBA{}, img.RGBAAt(110, 110))
	assert.Equal(t, color.RGBA{}, img.RGBAAt(1, 1))

	// the arc starts at 12 o'clock in the start color
	assert.Equal(t, opaqueRed, img.RGBAAt(113, 10))

	// and turns clockwise to 6 o'clock
	east := img.RGBAAt(210, 110)
	assert.Equal(t, uint8(0xff), east.A)
	assert.Greater(t, east.R, east.B)
	assert.NotZero(t, east.B)
	for _, x := range []int{105, 115} {
		assert.Equal(t, uint8(0xff), img.RGBAAt(x, 210).A)
	}

	// the shadow darkens the backdrop ahead of the leading edge
	shadow := img.RGBAAt(99, 210)
	assert.Greater(t, shadow.A, defaultBackdrop.A)
}

func TestSquareStyle(t *testing.T) {
	p := scenarioParams(0.5)
	p.Style = Square
	img := render(t, "square", p)

	assert.Equal(t, uint8(0xff), img.RGBAAt(113, 10).A)
	// butt caps: nothing before the start
	assert.Equal(t, defaultBackdrop, img.RGBAAt(105, 10))
	// the shadow of the thin cap
	assert.Greater(t, img.RGBAAt(109, 210).A, defaultBackdrop.A)
	assert.Equal(t, defaultBackdrop, img.RGBAAt(90, 210))
}

func TestZeroProgress(t *testing.T) {
	img := render(t, "zero", scenarioParams(0))
	// only the end cap, in the end color
	assert.Equal(t, color.RGBA{B: 0xff, A: 0xff}, img.RGBAAt(110, 10))
	assert.Equal(t, defaultBackdrop, img.RGBAAt(210, 110))
	assert.Equal(t, defaultBackdrop, img.RGBAAt(110, 210))

	p := scenarioParams(0)
	p.EndShadowOpacity = 0
	img = render(t, "zero_no_shadow", p)
	assert.Equal(t, defaultBackdrop, img.RGBAAt(110, 10))
}

func TestOverflow(t *testing.T) {
	img := render(t, "overflow", scenarioParams(1.5))

	// the whole ring is covered
	for _, pt := range []image.Point{{10, 110}, {210, 110}, {110, 10}, {110, 210}, {40, 40}} {
		assert.Equal(t, uint8(0xff), img.RGBAAt(pt.X, pt.Y).A, "at %v", pt)
	}
	// the gradient starts again after the 6 o'clock point
	west := img.RGBAAt(10, 110)
	assert.Greater(t, west.R, west.B)
	east := img.RGBAAt(210, 110)
	assert.Greater(t, east.B, east.R)
}

func TestShadowAtLeadingEdge(t *testing.T) {
	// a quarter past one turn, at twice the resolution: the leading edge
	// is at 3 o'clock, moving down, in the rotated frame
	p := scenarioParams(1.25)
	p.Scale = 2
	x, y := Layout(p).LeadingEdge()
	assert.InDelta(t, 420, x, 1e-9)
	assert.InDelta(t, 220, y, 1e-9)

	shadowed := Render(p, GradientImage(p))
	saveToPngFile(t, "shadow_leading_edge", shadowed)
	p.EndShadowOpacity = 0
	plain := Render(p, GradientImage(p))

	// just ahead of the cap, the shadow darkens the solid arc
	ahead, ref := shadowed.RGBAAt(420, 244), plain.RGBAAt(420, 244)
	assert.Equal(t, uint8(0xff), ahead.A)
	assert.Less(t, ahead.R, ref.R)
	// far from the leading edge, nothing changes
	for _, pt := range []image.Point{{420, 320}, {20, 220}, {220, 20}} {
		assert.Equal(t, plain.RGBAAt(pt.X, pt.Y), shadowed.RGBAAt(pt.X, pt.Y), "at %v", pt)
	}
}

func TestNoGradient(t *testing.T) {
	p := scenarioParams(0.5)
	p.EndShadowOpacity = 0
	img := Render(p, nil)
	assert.Equal(t, opaqueRed, img.RGBAAt(210, 110))

	// a nil image is accepted as well
	img = Render(p, (*image.RGBA)(nil))
	assert.Equal(t, opaqueRed, img.RGBAAt(210, 110))
}

func TestNoAntialias(t *testing.T) {
	p := scenarioParams(0.3)
	p.EndShadowOpacity = 0
	p.BackdropColor = colornames.Green
	p.Antialias = false
	img := Render(p, nil)
	for i := 3; i < len(img.Pix); i += 4 {
		require.True(t, img.Pix[i] == 0 || img.Pix[i] == 0xff)
	}

	p.Antialias = true
	img = Render(p, nil)
	partial := 0
	for i := 3; i < len(img.Pix); i += 4 {
		if img.Pix[i] != 0 && img.Pix[i] != 0xff {
			partial++
		}
	}
	assert.Greater(t, partial, 0)
}

func TestDegenerate(t *testing.T) {
	for _, p := range []Params{
		{Width: 0, Height: 100},
		{Width: 100, Height: -1},
		{Width: math.NaN(), Height: 10},
		{Width: 1e300, Height: 1e300},
		{Width: 100, Height: 100, Scale: math.Inf(1)},
	} {
		img := Render(p, nil)
		assert.True(t, img.Bounds().Empty())
	}

	// the ring is wider than the available radius
	p := DefaultParams(10, 10)
	p.Progress = 0.5
	assert.Nil(t, GradientImage(p))
	img := Render(p, GradientImage(p))
	assert.Equal(t, image.Rect(0, 0, 10, 10), img.Bounds())
	for _, v := range img.Pix {
		assert.Zero(t, v)
	}

	// huge progress values do not blow up
	img = Render(scenarioParams(1e6), nil)
	assert.Equal(t, uint8(0xff), img.RGBAAt(10, 110).A)
	img = Render(scenarioParams(math.Inf(1)), nil)
	assert.Equal(t, image.Rect(0, 0, 220, 220), img.Bounds())
}

func TestGradientImage(t *testing.T) {
	p := scenarioParams(0)
	img := GradientImage(p)
	require.NotNil(t, img)
	saveToPngFile(t, "gradient", img)
	assert.Equal(t, image.Rect(0, 0, 220, 220), img.Bounds())

	// start color right after 12 o'clock
	assert.Equal(t, opaqueRed, img.RGBAAt(113, 3))
	// then clockwise toward the end color
	east, west := img.RGBAAt(216, 110), img.RGBAAt(3, 110)
	assert.Greater(t, east.R, east.B)
	assert.Greater(t, west.B, west.R)

	p = DefaultParams(100, 80)
	p.Scale = 2
	p.GradientScale = 0.5
	assert.Equal(t, image.Rect(0, 0, 80, 80), GradientImage(p).Bounds())
}

func TestLogger(t *testing.T) {
	var buf bytes.Buffer
	SetLogger(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	t.Cleanup(func() { SetLogger(nil) })

	Render(DefaultParams(10, 10), nil)
	assert.Contains(t, buf.String(), "no room for the ring")

	SetLogger(nil)
	buf.Reset()
	Render(DefaultParams(10, 10), nil)
	assert.Empty(t, buf.String())
}
