// Package scene defines the drawing primitives a laid out diagram is
// reduced to before serialisation.
//
// A [Scene] is an ordered list of [Element] values on a fixed size canvas.
// Emitters in render/sink walk the list front to back, so later elements
// paint over earlier ones.
package scene

import "github.com/waiteperspectives/eml/pkg/geometry"

// Element is one drawing primitive. The set of implementations is closed:
// [Rect], [Text], [Line] and [Path].
type Element interface {
	element()
}

// Rect is an axis aligned rectangle.
type Rect struct {
	ID          string
	X, Y        int
	Width       int
	Height      int
	Stroke      string
	StrokeWidth int
	Fill        string
}

// Span is one line of a text block. DY is the vertical advance relative to
// the previous span, as an SVG length (e.g. "1rem").
type Span struct {
	Text       string
	X          int
	DY         string
	FontWeight string
	FontSize   string
}

// Text is a block of spans translated to (X, Y).
type Text struct {
	X, Y  float64
	Spans []Span
}

// Line is a straight stroke from (X1, Y1) to (X2, Y2).
type Line struct {
	ID          string
	X1, Y1      int
	X2, Y2      int
	Stroke      string
	StrokeWidth int
}

// Path is an open quadratic Bezier curve from MoveTo through Control to To.
type Path struct {
	ID          string
	MoveTo      geometry.Point
	Control     geometry.Vec
	To          geometry.Point
	Stroke      string
	StrokeWidth int
	Fill        string
}

func (Rect) element() {}
func (Text) element() {}
func (Line) element() {}
func (Path) element() {}

// Scene is a canvas and the primitives drawn on it, in paint order.
type Scene struct {
	Width    int
	Height   int
	Elements []Element
}

// Add appends elements in order.
func (s *Scene) Add(els ...Element) {
	s.Elements = append(s.Elements, els...)
}

// Count returns how many elements of each kind the scene holds.
func (s Scene) Count() (rects, texts, lines, paths int) {
	for _, el := range s.Elements {
		switch el.(type) {
		case Rect:
			rects++
		case Text:
			texts++
		case Line:
			lines++
		case Path:
			paths++
		}
	}
	return rects, texts, lines, paths
}
