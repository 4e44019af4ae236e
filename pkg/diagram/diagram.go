package diagram

import (
	"github.com/waiteperspectives/eml/pkg/errors"
	"github.com/waiteperspectives/eml/pkg/scene"
)

// Diagram owns the nodes, arrows and swimlane of one event model.
//
// Nodes and arrows keep insertion order. The zero value is not usable;
// call [New].
type Diagram struct {
	Width  int
	Height int

	nodes    []Node
	index    map[string]int
	arrows   []Arrow
	swimlane *Swimlane
}

// New returns an empty diagram at the default size.
func New() *Diagram {
	return &Diagram{
		Width:  DefaultWidth,
		Height: DefaultHeight,
		index:  make(map[string]int),
	}
}

// AddNode appends n. Ids must be unique: reusing one fails with
// ErrCodeDuplicateNodeID.
func (d *Diagram) AddNode(n Node) error {
	if !n.Type.Valid() {
		return invalidType(n.Type)
	}
	if err := errors.ValidateNodeID(n.ID); err != nil {
		return err
	}
	if _, ok := d.index[n.ID]; ok {
		return errors.New(errors.ErrCodeDuplicateNodeID, "duplicate node id %q", n.ID)
	}
	if n.Width == 0 && n.Height == 0 {
		n.Width, n.Height = NodeWidth, NodeHeight
	}
	d.index[n.ID] = len(d.nodes)
	d.nodes = append(d.nodes, n)
	return nil
}

// AddArrow appends an arrow between two registered nodes. It fails with
// ErrCodeUnknownNodeID when either id is not registered yet and with
// ErrCodeUnsupportedArrow when the type pair has no route.
func (d *Diagram) AddArrow(beginID, endID string) error {
	begin, ok := d.index[beginID]
	if !ok {
		return errors.New(errors.ErrCodeUnknownNodeID, "arrow begins at unknown node %q", beginID)
	}
	end, ok := d.index[endID]
	if !ok {
		return errors.New(errors.ErrCodeUnknownNodeID, "arrow ends at unknown node %q", endID)
	}
	a, err := NewArrow(d.nodes, begin, end, len(d.arrows))
	if err != nil {
		return err
	}
	d.arrows = append(d.arrows, a)
	return nil
}

// Node returns the node with the given id.
func (d *Diagram) Node(id string) (Node, bool) {
	i, ok := d.index[id]
	if !ok {
		return Node{}, false
	}
	return d.nodes[i], true
}

// Nodes returns the nodes in insertion order. The slice is shared with the
// diagram and must not be modified.
func (d *Diagram) Nodes() []Node { return d.nodes }

// Arrows returns the arrows in insertion order. The slice is shared with the
// diagram and must not be modified.
func (d *Diagram) Arrows() []Arrow { return d.arrows }

// NodeCount returns the number of nodes.
func (d *Diagram) NodeCount() int { return len(d.nodes) }

// ArrowCount returns the number of arrows.
func (d *Diagram) ArrowCount() int { return len(d.arrows) }

// Swimlane returns the swimlane, or false before Layout has run.
func (d *Diagram) Swimlane() (Swimlane, bool) {
	if d.swimlane == nil {
		return Swimlane{}, false
	}
	return *d.swimlane, true
}

// LaidOut reports whether Layout has run.
func (d *Diagram) LaidOut() bool { return d.swimlane != nil }

// Layout sizes the canvas, places the swimlane and assigns every node its
// origin.
//
// Nodes form one left-to-right sequence in insertion order. Each takes the
// next column regardless of type; its type only picks the row. The height
// is fixed at three rows separated by pads.
func (d *Diagram) Layout() error {
	height := NodeHeight*3 + Pad*6
	width := Pad + (Pad+NodeWidth)*len(d.nodes) + Pad

	x := Pad
	for i := range d.nodes {
		y, err := d.nodes[i].Type.rowY()
		if err != nil {
			return err
		}
		d.nodes[i].Origin.X = x
		d.nodes[i].Origin.Y = y
		x += NodeWidth + Pad
	}

	lane := newSwimlane(width, height)
	d.Width, d.Height = width, height
	d.swimlane = &lane
	return nil
}

// Render composes the swimlane, then every node, then every arrow into one
// scene. Render does not modify the diagram, so repeated calls return equal
// scenes.
func (d *Diagram) Render() (scene.Scene, error) {
	if d.swimlane == nil {
		return scene.Scene{}, errors.New(errors.ErrCodeInternal, "diagram rendered before layout")
	}

	s := scene.Scene{Width: d.Width, Height: d.Height}
	s.Add(d.swimlane.Render()...)
	for _, n := range d.nodes {
		els, err := n.Render()
		if err != nil {
			return scene.Scene{}, err
		}
		s.Add(els...)
	}
	for _, a := range d.arrows {
		els, err := a.Render(d.nodes)
		if err != nil {
			return scene.Scene{}, err
		}
		s.Add(els...)
	}
	return s, nil
}
