package sink

import (
	"bytes"
	"fmt"
	"html"
	"strconv"

	svg "github.com/ajstarks/svgo"

	"github.com/waiteperspectives/eml/pkg/scene"
)

const arrowheadID = "arrowhead"

// SVGOption configures SVG rendering via [RenderSVG].
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	arrowheads bool
}

// WithArrowheads ends every path with a filled triangle marker.
func WithArrowheads() SVGOption { return func(r *svgRenderer) { r.arrowheads = true } }

// RenderSVG serialises s as an SVG document. Elements are written in scene
// order with the coordinates, stroke widths and fills they carry.
func RenderSVG(s scene.Scene, opts ...SVGOption) []byte {
	r := svgRenderer{}
	for _, opt := range opts {
		opt(&r)
	}

	var buf bytes.Buffer
	canvas := svg.New(&buf)
	canvas.Start(s.Width, s.Height)

	if r.arrowheads {
		renderArrowheadDef(canvas)
	}

	for _, el := range s.Elements {
		switch el := el.(type) {
		case scene.Rect:
			canvas.Rect(el.X, el.Y, el.Width, el.Height,
				optAttr("id", el.ID),
				attr("stroke", el.Stroke),
				attr("stroke-width", strconv.Itoa(el.StrokeWidth)),
				attr("fill", el.Fill),
			)
		case scene.Text:
			renderText(canvas, el)
		case scene.Line:
			canvas.Line(el.X1, el.Y1, el.X2, el.Y2,
				optAttr("id", el.ID),
				attr("stroke", el.Stroke),
				attr("stroke-width", strconv.Itoa(el.StrokeWidth)),
			)
		case scene.Path:
			a := []string{
				optAttr("id", el.ID),
				attr("stroke", el.Stroke),
				attr("stroke-width", strconv.Itoa(el.StrokeWidth)),
				attr("fill", el.Fill),
			}
			if r.arrowheads {
				a = append(a, attr("marker-end", "url(#"+arrowheadID+")"))
			}
			canvas.Path(PathData(el), a...)
		}
	}

	canvas.End()
	return buf.Bytes()
}

// PathData returns the SVG path data of p: a move to the start and one
// quadratic curve through the control point.
func PathData(p scene.Path) string {
	return fmt.Sprintf("M%d,%d Q%s,%s %d,%d",
		p.MoveTo.X, p.MoveTo.Y,
		formatFloat(p.Control.X), formatFloat(p.Control.Y),
		p.To.X, p.To.Y)
}

func renderText(canvas *svg.SVG, t scene.Text) {
	canvas.Textspan(0, 0, "",
		attr("transform", "translate("+formatFloat(t.X)+","+formatFloat(t.Y)+")"))
	for _, sp := range t.Spans {
		a := []string{attr("x", strconv.Itoa(sp.X))}
		if sp.DY != "" {
			a = append(a, attr("dy", sp.DY))
		}
		if sp.FontWeight != "" {
			a = append(a, attr("font-weight", sp.FontWeight))
		}
		if sp.FontSize != "" {
			a = append(a, attr("font-size", sp.FontSize))
		}
		canvas.Span(sp.Text, a...)
	}
	canvas.TextEnd()
}

func renderArrowheadDef(canvas *svg.SVG) {
	canvas.Def()
	canvas.Marker(arrowheadID, 10, 5, 10, 10, attr("orient", "auto"), attr("markerUnits", "userSpaceOnUse"))
	canvas.Path("M0,0 L10,5 L0,10 z", attr("fill", "black"))
	canvas.MarkerEnd()
	canvas.DefEnd()
}

// attr formats one raw attribute. svgo passes through any argument that
// contains '=' instead of wrapping it in a style attribute.
func attr(name, value string) string {
	return name + `="` + html.EscapeString(value) + `"`
}

// optAttr is attr, or nothing when value is empty.
func optAttr(name, value string) string {
	if value == "" {
		return ""
	}
	return attr(name, value)
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
