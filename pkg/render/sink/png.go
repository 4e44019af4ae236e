package sink

import (
	"bytes"
	"image/color"
	"math"
	"strconv"
	"strings"

	"github.com/fogleman/gg"

	"github.com/waiteperspectives/eml/pkg/errors"
	"github.com/waiteperspectives/eml/pkg/scene"
)

// rootFontSize is the pixel size of 1rem, matching browser defaults.
const rootFontSize = 16.0

// PNGOption configures PNG rendering.
type PNGOption func(*pngRenderer)

type pngRenderer struct {
	scale      float64
	arrowheads bool
}

// WithScale sets the PNG scale factor (default 1.0).
func WithScale(s float64) PNGOption {
	return func(r *pngRenderer) { r.scale = s }
}

// WithPNGArrowheads draws a filled triangle at the end of every path.
func WithPNGArrowheads() PNGOption {
	return func(r *pngRenderer) { r.arrowheads = true }
}

// RenderPNG rasterises s directly, without an SVG round trip. Text uses
// the built-in bitmap face, so font weight and size are not reproduced.
func RenderPNG(s scene.Scene, opts ...PNGOption) ([]byte, error) {
	r := pngRenderer{scale: 1.0}
	for _, opt := range opts {
		opt(&r)
	}
	if r.scale <= 0 || math.IsNaN(r.scale) || math.IsInf(r.scale, 0) {
		return nil, errors.New(errors.ErrCodeInvalidInput, "invalid PNG scale %v", r.scale)
	}

	w := int(math.Ceil(float64(s.Width) * r.scale))
	h := int(math.Ceil(float64(s.Height) * r.scale))
	if w <= 0 || h <= 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "empty canvas %dx%d", s.Width, s.Height)
	}

	dc := gg.NewContext(w, h)
	dc.SetColor(color.White)
	dc.Clear()
	dc.Scale(r.scale, r.scale)

	for _, el := range s.Elements {
		switch el := el.(type) {
		case scene.Rect:
			dc.DrawRectangle(float64(el.X), float64(el.Y), float64(el.Width), float64(el.Height))
			fillAndStroke(dc, el.Fill, el.Stroke, el.StrokeWidth)
		case scene.Line:
			dc.DrawLine(float64(el.X1), float64(el.Y1), float64(el.X2), float64(el.Y2))
			fillAndStroke(dc, "none", el.Stroke, el.StrokeWidth)
		case scene.Path:
			dc.MoveTo(float64(el.MoveTo.X), float64(el.MoveTo.Y))
			dc.QuadraticTo(el.Control.X, el.Control.Y, float64(el.To.X), float64(el.To.Y))
			fillAndStroke(dc, el.Fill, el.Stroke, el.StrokeWidth)
			if r.arrowheads {
				drawArrowhead(dc, el)
			}
		case scene.Text:
			drawText(dc, el)
		}
	}

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode png")
	}
	return buf.Bytes(), nil
}

func fillAndStroke(dc *gg.Context, fill, stroke string, width int) {
	if fill != "" && fill != "none" {
		setColor(dc, fill)
		dc.FillPreserve()
	}
	setColor(dc, stroke)
	dc.SetLineWidth(float64(width))
	dc.Stroke()
}

func setColor(dc *gg.Context, c string) {
	switch c {
	case "", "black":
		dc.SetColor(color.Black)
	case "white":
		dc.SetColor(color.White)
	default:
		dc.SetHexColor(c)
	}
}

func drawText(dc *gg.Context, t scene.Text) {
	dc.SetColor(color.Black)
	y := t.Y
	for _, sp := range t.Spans {
		y += parseLength(sp.DY)
		dc.DrawString(sp.Text, t.X+float64(sp.X), y)
	}
}

func drawArrowhead(dc *gg.Context, p scene.Path) {
	tipX, tipY := float64(p.To.X), float64(p.To.Y)
	// The curve arrives along the tangent from the control point.
	angle := math.Atan2(tipY-p.Control.Y, tipX-p.Control.X)
	const size, spread = 10.0, math.Pi / 7

	dc.MoveTo(tipX, tipY)
	dc.LineTo(tipX-size*math.Cos(angle-spread), tipY-size*math.Sin(angle-spread))
	dc.LineTo(tipX-size*math.Cos(angle+spread), tipY-size*math.Sin(angle+spread))
	dc.ClosePath()
	dc.SetColor(color.Black)
	dc.Fill()
}

// parseLength converts an SVG length ("1rem", "12px", "14") to pixels.
// Unknown units count as one line.
func parseLength(s string) float64 {
	s = strings.TrimSpace(s)
	unit := 1.0
	switch {
	case s == "":
		return 0
	case strings.HasSuffix(s, "rem"):
		s, unit = strings.TrimSuffix(s, "rem"), rootFontSize
	case strings.HasSuffix(s, "em"):
		s, unit = strings.TrimSuffix(s, "em"), rootFontSize
	case strings.HasSuffix(s, "px"):
		s = strings.TrimSuffix(s, "px")
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return rootFontSize
	}
	return v * unit
}
