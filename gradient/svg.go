package gradient

import (
	"encoding/xml"
	"image/color"
	"io"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/pkg/errors"
	"golang.org/x/image/colornames"
	"golang.org/x/net/html/charset"
)

// svgCursor is used while reading gradients from SVG files
type svgCursor struct {
	specs map[string]Spec

	// current gradient
	inGrad bool
	id     string
	spec   Spec
	colors []color.Color
	offset []float64
}

// ReadSVG reads the <linearGradient> and <radialGradient> elements of an SVG
// document, returning them by id. Coordinates are interpreted in the
// unit square (objectBoundingBox units), and the focal point of radial
// gradients is ignored.
func ReadSVG(r io.Reader) (map[string]Spec, error) {
	c := svgCursor{specs: make(map[string]Spec)}
	decoder := xml.NewDecoder(r)
	decoder.CharsetReader = charset.NewReaderLabel
	for {
		t, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrap(err, "gradient: invalid svg")
		}
		switch se := t.(type) {
		case xml.StartElement:
			err = c.readStartElement(se)
		case xml.EndElement:
			err = c.readEndElement(se)
		}
		if err != nil {
			return nil, err
		}
	}
	return c.specs, nil
}

func (c *svgCursor) readStartElement(se xml.StartElement) error {
	switch se.Name.Local {
	case "linearGradient":
		// SVG defaults: left to right
		return c.startGradient(se.Attr, Linear, Axis{Start: Point{0, 0}, End: Point{1, 0}})
	case "radialGradient":
		return c.startGradient(se.Attr, Radial, Axis{Start: Point{0.5, 0.5}, End: Point{1, 0.5}})
	case "stop":
		if c.inGrad {
			return c.readStop(expandStyle(se.Attr))
		}
	}
	return nil
}

func (c *svgCursor) readEndElement(se xml.EndElement) error {
	if !c.inGrad || (se.Name.Local != "linearGradient" && se.Name.Local != "radialGradient") {
		return nil
	}
	c.inGrad = false
	ramp, err := NewRamp(c.colors, c.offset)
	if err != nil {
		return errors.Wrapf(err, "gradient %q", c.id)
	}
	c.spec.Primary = ramp
	if c.id != "" {
		c.specs[c.id] = c.spec
	}
	return nil
}

func (c *svgCursor) startGradient(attrs []xml.Attr, kind Type, axis Axis) error {
	c.inGrad = true
	c.id = ""
	c.colors, c.offset = nil, nil
	var radius float64
	if kind == Radial {
		radius = axis.End.X - axis.Start.X
	}
	for _, attr := range attrs {
		var err error
		switch attr.Name.Local {
		case "id":
			c.id = attr.Value
		case "gradientUnits":
			if v := strings.TrimSpace(attr.Value); v != "objectBoundingBox" {
				err = errors.Errorf("unsupported gradientUnits %q", v)
			}
		}
		if kind == Linear {
			switch attr.Name.Local {
			case "x1":
				axis.Start.X, err = readFraction(attr.Value)
			case "y1":
				axis.Start.Y, err = readFraction(attr.Value)
			case "x2":
				axis.End.X, err = readFraction(attr.Value)
			case "y2":
				axis.End.Y, err = readFraction(attr.Value)
			}
		} else {
			switch attr.Name.Local {
			case "cx":
				axis.Start.X, err = readFraction(attr.Value)
			case "cy":
				axis.Start.Y, err = readFraction(attr.Value)
			case "r":
				radius, err = readFraction(attr.Value)
			}
		}
		if err != nil {
			return errors.Wrapf(err, "gradient: invalid attribute %s", attr.Name.Local)
		}
	}
	if kind == Radial {
		axis.End = Point{axis.Start.X + radius, axis.Start.Y}
	}
	c.spec = Spec{Type: kind, Anchors: [2]*Axis{&axis}}
	return nil
}

// readStop appends a color stop. Offsets are clamped to [0,1]
// and to the previous offset, as SVG renderers do.
func (c *svgCursor) readStop(attrs []xml.Attr) error {
	var (
		offset  float64
		col     = color.NRGBA{A: 0xff}
		opacity = 1.
		err     error
	)
	for _, attr := range attrs {
		switch attr.Name.Local {
		case "offset":
			offset, err = readFraction(attr.Value)
		case "stop-color":
			col, err = parseSVGColor(attr.Value)
		case "stop-opacity":
			opacity, err = readFraction(attr.Value)
		}
		if err != nil {
			return errors.Wrapf(err, "gradient: invalid stop attribute %s", attr.Name.Local)
		}
	}
	offset = clamp01(offset)
	if n := len(c.offset); n > 0 && offset < c.offset[n-1] {
		offset = c.offset[n-1]
	}
	col.A = uint8(float64(col.A)*clamp01(opacity) + 0.5)
	c.colors = append(c.colors, col)
	c.offset = append(c.offset, offset)
	return nil
}

// expandStyle adds the declarations of the style attribute
// to the attributes.
func expandStyle(attrs []xml.Attr) []xml.Attr {
	for _, attr := range attrs {
		if attr.Name.Local != "style" {
			continue
		}
		for _, decl := range strings.Split(attr.Value, ";") {
			k, v, ok := strings.Cut(decl, ":")
			if !ok {
				continue
			}
			attrs = append(attrs, xml.Attr{
				Name:  xml.Name{Local: strings.TrimSpace(k)},
				Value: strings.TrimSpace(v),
			})
		}
	}
	return attrs
}

func readFraction(v string) (float64, error) {
	v = strings.TrimSpace(v)
	d := 1.0
	if strings.HasSuffix(v, "%") {
		d = 100
		v = strings.TrimSuffix(v, "%")
	}
	f, err := strconv.ParseFloat(v, 64)
	return f / d, err
}

// parseSVGColor accepts hex colors and color keywords.
func parseSVGColor(v string) (color.NRGBA, error) {
	v = strings.ToLower(strings.TrimSpace(v))
	if v == "none" || v == "transparent" {
		return color.NRGBA{}, nil
	}
	if c, ok := colornames.Map[v]; ok {
		return color.NRGBA{R: c.R, G: c.G, B: c.B, A: 0xff}, nil
	}
	c, err := colorful.Hex(v)
	if err != nil {
		return color.NRGBA{}, err
	}
	r, g, b := c.RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: 0xff}, nil
}
