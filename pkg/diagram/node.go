package diagram

import (
	"strings"

	"github.com/waiteperspectives/eml/pkg/errors"
	"github.com/waiteperspectives/eml/pkg/geometry"
	"github.com/waiteperspectives/eml/pkg/scene"
)

const (
	nodeStroke      = "black"
	nodeStrokeWidth = 2
	lineHeight      = "1rem"
)

// Field is a named value shown on its own line below a node's text.
type Field struct {
	Name  string
	Value string
}

// Node is a rectangular diagram element of one semantic type.
//
// Origin is the top-left corner. It is the zero point until
// [Diagram.Layout] assigns it.
type Node struct {
	ID     string
	Type   NodeType
	Text   string
	Fields []Field
	Origin geometry.Point
	Width  int
	Height int
}

// NewNode returns a node of the fixed size with its origin unset.
func NewNode(id string, t NodeType, text string) (Node, error) {
	if !t.Valid() {
		return Node{}, invalidType(t)
	}
	if err := errors.ValidateNodeID(id); err != nil {
		return Node{}, err
	}
	return Node{ID: id, Type: t, Text: text, Width: NodeWidth, Height: NodeHeight}, nil
}

// Side names one of the four edge midpoints of a node.
type Side int

const (
	Top Side = iota
	Right
	Bottom
	Left
)

func (s Side) String() string {
	switch s {
	case Top:
		return "top"
	case Right:
		return "right"
	case Bottom:
		return "bottom"
	case Left:
		return "left"
	}
	return "unknown"
}

// TopAnchor is the midpoint of the top edge.
func (n Node) TopAnchor() geometry.Point {
	return geometry.Point{X: n.Origin.X + n.Width/2, Y: n.Origin.Y}
}

// RightAnchor is the midpoint of the right edge.
func (n Node) RightAnchor() geometry.Point {
	return geometry.Point{X: n.Origin.X + n.Width, Y: n.Origin.Y + n.Height/2}
}

// BottomAnchor is the midpoint of the bottom edge.
func (n Node) BottomAnchor() geometry.Point {
	return geometry.Point{X: n.Origin.X + n.Width/2, Y: n.Origin.Y + n.Height}
}

// LeftAnchor is the midpoint of the left edge.
func (n Node) LeftAnchor() geometry.Point {
	return geometry.Point{X: n.Origin.X, Y: n.Origin.Y + n.Height/2}
}

// Anchor returns the anchor on side s.
func (n Node) Anchor(s Side) geometry.Point {
	switch s {
	case Right:
		return n.RightAnchor()
	case Bottom:
		return n.BottomAnchor()
	case Left:
		return n.LeftAnchor()
	default:
		return n.TopAnchor()
	}
}

// Anchors returns the top, right, bottom and left anchors in that order.
func (n Node) Anchors() [4]geometry.Point {
	return [4]geometry.Point{n.TopAnchor(), n.RightAnchor(), n.BottomAnchor(), n.LeftAnchor()}
}

// Lines returns the body text lines: one per newline separated segment of
// Text, followed by one "name: value" line per field.
func (n Node) Lines() []string {
	lines := strings.Split(n.Text, "\n")
	for _, f := range n.Fields {
		lines = append(lines, f.Name+": "+f.Value)
	}
	return lines
}

// Render returns the node's rectangle and its text block.
//
// The text block sits a quarter pad right and a sixth pad below the origin
// and holds the id in bold, an underline of '=' as long as the id, then
// the body lines. Text is neither wrapped nor measured.
func (n Node) Render() ([]scene.Element, error) {
	fill, err := n.Type.FillColor()
	if err != nil {
		return nil, err
	}

	rect := scene.Rect{
		ID:          n.ID,
		X:           n.Origin.X,
		Y:           n.Origin.Y,
		Width:       n.Width,
		Height:      n.Height,
		Stroke:      nodeStroke,
		StrokeWidth: nodeStrokeWidth,
		Fill:        fill,
	}

	lines := n.Lines()
	spans := make([]scene.Span, 0, len(lines)+2)
	spans = append(spans,
		scene.Span{Text: n.ID, DY: lineHeight, FontWeight: "bold", FontSize: "larger"},
		scene.Span{Text: strings.Repeat("=", len([]rune(n.ID))), DY: lineHeight},
	)
	for _, line := range lines {
		spans = append(spans, scene.Span{Text: line, DY: lineHeight})
	}

	text := scene.Text{
		X:     float64(n.Origin.X) + Pad/4.0,
		Y:     float64(n.Origin.Y) + Pad/6.0,
		Spans: spans,
	}
	return []scene.Element{rect, text}, nil
}
