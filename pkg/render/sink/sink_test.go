package sink

import (
	"bytes"
	"encoding/json"
	"image/color"
	"image/png"
	"strings"
	"testing"

	"github.com/waiteperspectives/eml/pkg/diagram"
	"github.com/waiteperspectives/eml/pkg/errors"
	"github.com/waiteperspectives/eml/pkg/render"
	"github.com/waiteperspectives/eml/pkg/scene"
)

func testScene(t *testing.T) scene.Scene {
	t.Helper()
	d, err := diagram.FromDocument(diagram.Document{
		{Key: "job", ID: "J1"},
		{Key: "command", ID: "C1", Text: "place\norder"},
		{Key: "event", ID: "E1"},
		{Key: "arrow", BeginAt: "J1", EndAt: "C1"},
		{Key: "arrow", BeginAt: "C1", EndAt: "E1"},
	})
	if err != nil {
		t.Fatalf("FromDocument: %v", err)
	}
	s, err := d.Render()
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	return s
}

func TestRenderSVG(t *testing.T) {
	out := string(RenderSVG(testScene(t)))

	want := []string{
		`width="1650" height="1350"`,
		`<line x1="0" y1="450" x2="1650" y2="450" id="swimlane_top" stroke="black" stroke-width="3"`,
		`<line x1="0" y1="900" x2="1650" y2="900" id="swimlane_bottom"`,
		`<rect x="150" y="150" width="300" height="150" id="J1" stroke="black" stroke-width="2" fill="#ffffff"`,
		`<rect x="600" y="600" width="300" height="150" id="C1" stroke="black" stroke-width="2" fill="#60b3f7"`,
		`fill="#f7a660"`,
		`transform="translate(187.5,175)"`,
		`font-weight="bold" font-size="larger" >J1</tspan>`,
		`>==</tspan>`,
		`>place</tspan>`,
		`>order</tspan>`,
		`d="M450,225 Q750,225 750,600"`,
		`d="M750,750 Q750,1125 1050,1125"`,
		`fill="none"`,
		"</svg>",
	}
	for _, w := range want {
		if !strings.Contains(out, w) {
			t.Errorf("SVG missing %q", w)
		}
	}
	if strings.Contains(out, "marker") {
		t.Error("default SVG should not contain markers")
	}
}

func TestRenderSVG_Order(t *testing.T) {
	out := string(RenderSVG(testScene(t)))
	markers := []string{`id="swimlane_top"`, `id="J1"`, `id="C1"`, `id="E1"`, `d="M450,225`, `d="M750,750`}
	last := -1
	for _, m := range markers {
		i := strings.Index(out, m)
		if i < 0 {
			t.Fatalf("missing %q", m)
		}
		if i < last {
			t.Errorf("%q out of order", m)
		}
		last = i
	}
}

func TestRenderSVG_Arrowheads(t *testing.T) {
	out := string(RenderSVG(testScene(t), WithArrowheads()))
	if !strings.Contains(out, `<marker id="arrowhead"`) {
		t.Error("missing marker definition")
	}
	if got := strings.Count(out, `marker-end="url(#arrowhead)"`); got != 2 {
		t.Errorf("marker-end count = %d, want 2", got)
	}
}

func TestRenderSVG_EscapesText(t *testing.T) {
	s := scene.Scene{Width: 10, Height: 10}
	s.Add(scene.Rect{ID: `a"b`, Width: 1, Height: 1, Stroke: "black", StrokeWidth: 1, Fill: "#fff"})
	s.Add(scene.Text{Spans: []scene.Span{{Text: "<x> & y", DY: "1rem"}}})
	out := string(RenderSVG(s))
	if !strings.Contains(out, `id="a&#34;b"`) {
		t.Errorf("attribute not escaped: %s", out)
	}
	if !strings.Contains(out, "&lt;x&gt; &amp; y") {
		t.Errorf("text not escaped: %s", out)
	}
}

func TestRenderSVG_Deterministic(t *testing.T) {
	s := testScene(t)
	if !bytes.Equal(RenderSVG(s), RenderSVG(s)) {
		t.Error("RenderSVG is not deterministic")
	}
}

func TestRenderSVG_Reproducible(t *testing.T) {
	// Separate builds of one document render to the same bytes.
	first := RenderSVG(testScene(t), WithArrowheads())
	second := RenderSVG(testScene(t), WithArrowheads())
	if !bytes.Equal(first, second) {
		t.Error("two builds of the same document render different SVG")
	}

	js1, err := RenderJSON(testScene(t))
	if err != nil {
		t.Fatal(err)
	}
	js2, err := RenderJSON(testScene(t))
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(js1, js2) {
		t.Error("two builds of the same document render different JSON")
	}
}

func TestPathData(t *testing.T) {
	p := scene.Path{}
	p.MoveTo.X, p.MoveTo.Y = 1, 2
	p.Control.X, p.Control.Y = 3.5, 4
	p.To.X, p.To.Y = 5, 6
	if got, want := PathData(p), "M1,2 Q3.5,4 5,6"; got != want {
		t.Errorf("PathData = %q, want %q", got, want)
	}
}

func TestRenderJSON(t *testing.T) {
	s := testScene(t)
	data, err := RenderJSON(s, WithJSONPathData())
	if err != nil {
		t.Fatalf("RenderJSON() error: %v", err)
	}

	var out jsonOutput
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("json.Unmarshal() error: %v", err)
	}
	if out.Width != 1650 || out.Height != 1350 {
		t.Errorf("size = %dx%d, want 1650x1350", out.Width, out.Height)
	}
	if len(out.Elements) != len(s.Elements) {
		t.Fatalf("Elements = %d, want %d", len(out.Elements), len(s.Elements))
	}

	kinds := make([]string, len(out.Elements))
	for i, el := range out.Elements {
		kinds[i] = el.Kind
	}
	want := "line line rect text rect text rect text path path"
	if got := strings.Join(kinds, " "); got != want {
		t.Errorf("kinds = %q, want %q", got, want)
	}

	first := out.Elements[8]
	if first.D != "M450,225 Q750,225 750,600" {
		t.Errorf("path d = %q", first.D)
	}
	if first.Control == nil || *first.Control != [2]float64{750, 225} {
		t.Errorf("path control = %v", first.Control)
	}

	lane := out.Elements[0]
	if lane.X1 == nil || *lane.X1 != 0 || *lane.Y1 != 450 {
		t.Errorf("swimlane line = %+v", lane)
	}
}

func TestRenderJSON_Deterministic(t *testing.T) {
	s := testScene(t)
	a, err := RenderJSON(s)
	if err != nil {
		t.Fatal(err)
	}
	b, err := RenderJSON(s)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(a, b) {
		t.Error("RenderJSON is not deterministic")
	}
}

func TestRenderPNG(t *testing.T) {
	s := testScene(t)

	tests := []struct {
		scale        float64
		wantW, wantH int
	}{
		{1, 1650, 1350},
		{2, 3300, 2700},
		{0.5, 825, 675},
	}
	for _, tt := range tests {
		data, err := RenderPNG(s, WithScale(tt.scale), WithPNGArrowheads())
		if err != nil {
			t.Fatalf("scale %v: %v", tt.scale, err)
		}
		img, err := png.Decode(bytes.NewReader(data))
		if err != nil {
			t.Fatalf("scale %v: decode: %v", tt.scale, err)
		}
		b := img.Bounds()
		if b.Dx() != tt.wantW || b.Dy() != tt.wantH {
			t.Errorf("scale %v: size = %dx%d, want %dx%d", tt.scale, b.Dx(), b.Dy(), tt.wantW, tt.wantH)
		}
	}

	data, err := RenderPNG(s)
	if err != nil {
		t.Fatal(err)
	}
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatal(err)
	}
	// Inside the event rectangle, clear of its text.
	got := color.RGBAModel.Convert(img.At(1300, 1180)).(color.RGBA)
	want := color.RGBA{R: 0xf7, G: 0xa6, B: 0x60, A: 0xff}
	if got != want {
		t.Errorf("event fill pixel = %v, want %v", got, want)
	}
}

func TestRenderPNG_InvalidScale(t *testing.T) {
	for _, scale := range []float64{0, -1} {
		if _, err := RenderPNG(testScene(t), WithScale(scale)); !errors.Is(err, errors.ErrCodeInvalidInput) {
			t.Errorf("scale %v: error = %v, want %s", scale, err, errors.ErrCodeInvalidInput)
		}
	}
}

func TestParseLength(t *testing.T) {
	tests := []struct {
		in   string
		want float64
	}{
		{"", 0},
		{"1rem", 16},
		{"2em", 32},
		{"12px", 12},
		{"7", 7},
		{"bogus", 16},
	}
	for _, tt := range tests {
		if got := parseLength(tt.in); got != tt.want {
			t.Errorf("parseLength(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestRenderPDF(t *testing.T) {
	if !render.Available() {
		t.Skip("rsvg-convert not installed")
	}
	data, err := RenderPDF(testScene(t), WithPDFSVGOptions(WithArrowheads()))
	if err != nil {
		t.Fatalf("RenderPDF: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF")) {
		t.Errorf("output does not start with %%PDF")
	}
}
