package diagram

import "github.com/waiteperspectives/eml/pkg/scene"

const (
	swimlaneStroke      = "black"
	swimlaneStrokeWidth = 3
)

// Swimlane is the pair of horizontal guide lines separating the event row
// from the rows above it.
type Swimlane struct {
	Top    int
	Bottom int
	Width  int
}

func newSwimlane(width, height int) Swimlane {
	return Swimlane{Top: height / 3, Bottom: height * 2 / 3, Width: width}
}

// Render returns the two guide lines, top first.
func (s Swimlane) Render() []scene.Element {
	return []scene.Element{
		s.line("swimlane_top", s.Top),
		s.line("swimlane_bottom", s.Bottom),
	}
}

func (s Swimlane) line(id string, y int) scene.Line {
	return scene.Line{
		ID:          id,
		X1:          0,
		Y1:          y,
		X2:          s.Width,
		Y2:          y,
		Stroke:      swimlaneStroke,
		StrokeWidth: swimlaneStrokeWidth,
	}
}
