package sink

import (
	"encoding/json"

	"github.com/waiteperspectives/eml/pkg/scene"
)

// JSONOption configures JSON rendering via [RenderJSON].
type JSONOption func(*jsonRenderer)

type jsonRenderer struct {
	pathData bool
}

// WithJSONPathData adds the SVG path data string to every path element.
func WithJSONPathData() JSONOption { return func(r *jsonRenderer) { r.pathData = true } }

type jsonOutput struct {
	Width    int           `json:"width"`
	Height   int           `json:"height"`
	Elements []jsonElement `json:"elements"`
}

// jsonElement is a flattened primitive. Kind selects which fields apply.
type jsonElement struct {
	Kind        string      `json:"kind"`
	ID          string      `json:"id,omitempty"`
	X           *float64    `json:"x,omitempty"`
	Y           *float64    `json:"y,omitempty"`
	Width       int         `json:"width,omitempty"`
	Height      int         `json:"height,omitempty"`
	X1          *int        `json:"x1,omitempty"`
	Y1          *int        `json:"y1,omitempty"`
	X2          *int        `json:"x2,omitempty"`
	Y2          *int        `json:"y2,omitempty"`
	MoveTo      *[2]int     `json:"move_to,omitempty"`
	Control     *[2]float64 `json:"control,omitempty"`
	To          *[2]int     `json:"to,omitempty"`
	D           string      `json:"d,omitempty"`
	Spans       []jsonSpan  `json:"spans,omitempty"`
	Stroke      string      `json:"stroke,omitempty"`
	StrokeWidth int         `json:"stroke_width,omitempty"`
	Fill        string      `json:"fill,omitempty"`
}

type jsonSpan struct {
	Text       string `json:"text"`
	X          int    `json:"x"`
	DY         string `json:"dy,omitempty"`
	FontWeight string `json:"font_weight,omitempty"`
	FontSize   string `json:"font_size,omitempty"`
}

// RenderJSON exports the scene as a pretty-printed JSON document: the
// canvas size followed by every primitive in paint order. The output only
// depends on s and the options, so equal scenes give equal bytes.
func RenderJSON(s scene.Scene, opts ...JSONOption) ([]byte, error) {
	r := jsonRenderer{}
	for _, opt := range opts {
		opt(&r)
	}

	out := jsonOutput{
		Width:    s.Width,
		Height:   s.Height,
		Elements: make([]jsonElement, 0, len(s.Elements)),
	}
	for _, el := range s.Elements {
		out.Elements = append(out.Elements, r.element(el))
	}
	return json.MarshalIndent(out, "", "  ")
}

func (r jsonRenderer) element(el scene.Element) jsonElement {
	switch el := el.(type) {
	case scene.Rect:
		x, y := float64(el.X), float64(el.Y)
		return jsonElement{
			Kind: "rect", ID: el.ID, X: &x, Y: &y, Width: el.Width, Height: el.Height,
			Stroke: el.Stroke, StrokeWidth: el.StrokeWidth, Fill: el.Fill,
		}
	case scene.Text:
		x, y := el.X, el.Y
		spans := make([]jsonSpan, len(el.Spans))
		for i, sp := range el.Spans {
			spans[i] = jsonSpan(sp)
		}
		return jsonElement{Kind: "text", X: &x, Y: &y, Spans: spans}
	case scene.Line:
		x1, y1, x2, y2 := el.X1, el.Y1, el.X2, el.Y2
		return jsonElement{
			Kind: "line", ID: el.ID, X1: &x1, Y1: &y1, X2: &x2, Y2: &y2,
			Stroke: el.Stroke, StrokeWidth: el.StrokeWidth,
		}
	case scene.Path:
		je := jsonElement{
			Kind:        "path",
			ID:          el.ID,
			MoveTo:      &[2]int{el.MoveTo.X, el.MoveTo.Y},
			Control:     &[2]float64{el.Control.X, el.Control.Y},
			To:          &[2]int{el.To.X, el.To.Y},
			Stroke:      el.Stroke,
			StrokeWidth: el.StrokeWidth,
			Fill:        el.Fill,
		}
		if r.pathData {
			je.D = PathData(el)
		}
		return je
	}
	return jsonElement{Kind: "unknown"}
}
