package diagram

import (
	"strconv"

	"github.com/google/uuid"

	"github.com/waiteperspectives/eml/pkg/errors"
	"github.com/waiteperspectives/eml/pkg/geometry"
	"github.com/waiteperspectives/eml/pkg/scene"
)

const (
	arrowStroke      = "black"
	arrowStrokeWidth = 2

	// rayFar is the far end of the rays cast from an anchor when finding a
	// control point. Vertical rays run down to it, horizontal rays run left
	// to x=0.
	rayFar = 99999
)

// arrowNamespace seeds arrow ids, which are name-based UUIDs.
var arrowNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("eml:arrow"))

// ArrowID returns the id of the seq-th arrow of a diagram running from
// node beginID to node endID. Equal inputs give equal ids.
func ArrowID(beginID, endID string, seq int) uuid.UUID {
	return uuid.NewSHA1(arrowNamespace, []byte(beginID+">"+endID+"#"+strconv.Itoa(seq)))
}

// Route is the pair of anchor sides an arrow leaves from and arrives at.
type Route struct {
	Begin Side
	End   Side
}

// RouteFor returns the anchor sides used by an arrow from a node of type
// from to a node of type to. The boolean is false when the grammar does not
// allow the pair.
//
// Jobs and forms trigger commands, commands emit events, events update views
// and views trigger jobs and forms.
func RouteFor(from, to NodeType) (Route, bool) {
	switch from {
	case Job, Form:
		if to == Command {
			return Route{Begin: Right, End: Top}, true
		}
	case Command:
		if to == Event {
			return Route{Begin: Bottom, End: Left}, true
		}
	case Event:
		if to == View {
			return Route{Begin: Right, End: Bottom}, true
		}
	case View:
		if to == Job || to == Form {
			return Route{Begin: Top, End: Left}, true
		}
	}
	return Route{}, false
}

// Arrow is a directed connector between two nodes of a [Diagram].
//
// Begin and End index into the owning diagram's node list. An arrow never
// holds a node of its own.
type Arrow struct {
	ID    uuid.UUID
	Begin int
	End   int

	from  NodeType
	route Route
}

// NewArrow returns the seq-th arrow of a diagram, running between
// nodes[begin] and nodes[end]. Its id is [ArrowID] of the endpoint ids and
// seq. It fails with ErrCodeUnsupportedArrow when the type pair has no
// route.
func NewArrow(nodes []Node, begin, end, seq int) (Arrow, error) {
	if begin < 0 || begin >= len(nodes) || end < 0 || end >= len(nodes) {
		return Arrow{}, errors.New(errors.ErrCodeInternal,
			"arrow endpoint out of range: %d -> %d of %d nodes", begin, end, len(nodes))
	}
	b, e := nodes[begin], nodes[end]
	route, ok := RouteFor(b.Type, e.Type)
	if !ok {
		return Arrow{}, errors.New(errors.ErrCodeUnsupportedArrow,
			"unsupported arrow %s (%s) -> %s (%s)", b.ID, b.Type, e.ID, e.Type)
	}
	return Arrow{ID: ArrowID(b.ID, e.ID, seq), Begin: begin, End: end, from: b.Type, route: route}, nil
}

// Route returns the anchor sides the arrow uses.
func (a Arrow) Route() Route {
	return a.route
}

// Anchors returns the points the arrow starts and ends at.
func (a Arrow) Anchors(nodes []Node) (begin, end geometry.Point) {
	return nodes[a.Begin].Anchor(a.route.Begin), nodes[a.End].Anchor(a.route.End)
}

// ControlPoint returns the control point of the arrow's quadratic curve.
//
// Arrows leaving a job, form or event bend at the crossing of the vertical
// through the end anchor and the horizontal through the begin anchor.
// Arrows leaving a command or view bend at the crossing of the vertical
// through the begin anchor and the horizontal through the end anchor.
func (a Arrow) ControlPoint(nodes []Node) (geometry.Vec, error) {
	begin, end := a.Anchors(nodes)

	var vertical, horizontal geometry.Line
	switch a.from {
	case Job, Form, Event:
		vertical = geometry.Line{A: end, B: geometry.Point{X: end.X, Y: rayFar}}
		horizontal = geometry.Line{A: begin, B: geometry.Point{X: 0, Y: begin.Y}}
	case Command, View:
		vertical = geometry.Line{A: begin, B: geometry.Point{X: begin.X, Y: rayFar}}
		horizontal = geometry.Line{A: end, B: geometry.Point{X: 0, Y: end.Y}}
	default:
		return geometry.Vec{}, invalidType(a.from)
	}
	return geometry.LineIntersection(vertical, horizontal)
}

// Render returns the arrow as a single open path.
func (a Arrow) Render(nodes []Node) ([]scene.Element, error) {
	control, err := a.ControlPoint(nodes)
	if err != nil {
		return nil, err
	}
	begin, end := a.Anchors(nodes)
	return []scene.Element{scene.Path{
		ID:          a.ID.String(),
		MoveTo:      begin,
		Control:     control,
		To:          end,
		Stroke:      arrowStroke,
		StrokeWidth: arrowStrokeWidth,
		Fill:        "none",
	}}, nil
}
