package main

import (
	"image/color"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/benoitkugler/ringprogress/ring"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/pelletier/go-toml/v2"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// default bounds of a ring, in points
const defaultSize = 200

// StyleFile is the content of a style file, in TOML or YAML.
// Omitted fields keep the default ring parameters.
type StyleFile struct {
	Width         float64  `toml:"width" yaml:"width"`
	Height        float64  `toml:"height" yaml:"height"`
	Scale         float64  `toml:"scale" yaml:"scale"`
	RingWidth     *float64 `toml:"ring_width" yaml:"ring_width"`
	Style         string   `toml:"style" yaml:"style"`
	StartColor    string   `toml:"start_color" yaml:"start_color"`
	EndColor      string   `toml:"end_color" yaml:"end_color"`
	BackdropColor string   `toml:"backdrop_color" yaml:"backdrop_color"`
	ShadowOpacity *float64 `toml:"shadow_opacity" yaml:"shadow_opacity"`
	Antialias     *bool    `toml:"antialias" yaml:"antialias"`
	GradientScale float64  `toml:"gradient_scale" yaml:"gradient_scale"`
}

// loadStyle reads a style file, whose format is chosen by extension.
// An empty path returns the zero style.
func loadStyle(path string) (StyleFile, error) {
	var out StyleFile
	if path == "" {
		return out, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return out, errors.Wrap(err, "reading style file")
	}
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		err = toml.Unmarshal(data, &out)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &out)
	default:
		return out, errors.Errorf("unsupported style file extension %q", ext)
	}
	if err != nil {
		return out, errors.Wrapf(err, "invalid style file %s", path)
	}
	return out, nil
}

// params applies the style on top of the default parameters.
func (s StyleFile) params() (ring.Params, error) {
	width, height := s.Width, s.Height
	if width == 0 {
		width = defaultSize
	}
	if height == 0 {
		height = width
	}
	p := ring.DefaultParams(width, height)
	if s.Scale != 0 {
		p.Scale = s.Scale
	}
	if s.RingWidth != nil {
		p.RingWidth = *s.RingWidth
	}
	if s.Style != "" {
		style, err := ring.ParseStyle(s.Style)
		if err != nil {
			return p, err
		}
		p.Style = style
	}
	for _, field := range []struct {
		name  string
		value string
		dst   *color.Color
	}{
		{"start_color", s.StartColor, &p.StartColor},
		{"end_color", s.EndColor, &p.EndColor},
		{"backdrop_color", s.BackdropColor, &p.BackdropColor},
	} {
		if field.value == "" {
			continue
		}
		c, err := parseColor(field.value)
		if err != nil {
			return p, errors.Wrapf(err, "invalid %s", field.name)
		}
		*field.dst = c
	}
	if s.ShadowOpacity != nil {
		p.EndShadowOpacity = *s.ShadowOpacity
	}
	if s.Antialias != nil {
		p.Antialias = *s.Antialias
	}
	if s.GradientScale != 0 {
		p.GradientScale = s.GradientScale
	}
	return p, nil
}

// parseColor accepts #rgb, #rrggbb and #rrggbbaa hex colors.
func parseColor(s string) (color.NRGBA, error) {
	alpha := uint64(0xff)
	if len(s) == 9 {
		var err error
		alpha, err = strconv.ParseUint(s[7:], 16, 8)
		if err != nil {
			return color.NRGBA{}, errors.Errorf("invalid alpha in color %q", s)
		}
		s = s[:7]
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return color.NRGBA{}, errors.Wrapf(err, "invalid color %q", s)
	}
	r, g, b := c.RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: uint8(alpha)}, nil
}

// parseColors parses a comma separated list of colors.
func parseColors(s string) ([]color.Color, error) {
	var out []color.Color
	for _, field := range strings.Split(s, ",") {
		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}
		c, err := parseColor(field)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}
