package diagram

import (
	"strconv"
	"strings"

	"github.com/waiteperspectives/eml/pkg/errors"
)

// Fixed geometry shared by every diagram.
const (
	NodeWidth  = 300
	NodeHeight = 150
	Pad        = 150

	// DefaultWidth and DefaultHeight size a diagram before Layout runs.
	DefaultWidth  = 1000
	DefaultHeight = 1000
)

// NodeType is the semantic type of a node. The set is closed.
type NodeType int

const (
	Event NodeType = iota + 1
	Command
	Job
	Form
	View
)

// NodeTypes lists every node type in declaration order.
var NodeTypes = []NodeType{Event, Command, Job, Form, View}

// ParseNodeType maps a keyword to its NodeType, ignoring case.
func ParseNodeType(s string) (NodeType, error) {
	switch strings.ToLower(s) {
	case "event":
		return Event, nil
	case "command":
		return Command, nil
	case "job":
		return Job, nil
	case "form":
		return Form, nil
	case "view":
		return View, nil
	}
	return 0, errors.New(errors.ErrCodeInvalidNodeType, "unknown node type %q", s)
}

func (t NodeType) String() string {
	switch t {
	case Event:
		return "event"
	case Command:
		return "command"
	case Job:
		return "job"
	case Form:
		return "form"
	case View:
		return "view"
	}
	return "NodeType(" + strconv.Itoa(int(t)) + ")"
}

// Valid reports whether t is one of the five node types.
func (t NodeType) Valid() bool {
	return t >= Event && t <= View
}

// FillColor returns the fill used for nodes of type t.
func (t NodeType) FillColor() (string, error) {
	switch t {
	case Event:
		return "#f7a660", nil
	case Command:
		return "#60b3f7", nil
	case Job, Form:
		return "#ffffff", nil
	case View:
		return "#60f765", nil
	}
	return "", invalidType(t)
}

// Row y offsets, top to bottom.
const (
	topRowY    = Pad
	middleRowY = Pad + NodeHeight + 2*Pad
	bottomRowY = middleRowY + NodeHeight + 2*Pad
)

// rowY returns the y coordinate of the row nodes of type t sit in.
func (t NodeType) rowY() (int, error) {
	switch t {
	case Job, Form:
		return topRowY, nil
	case Command, View:
		return middleRowY, nil
	case Event:
		return bottomRowY, nil
	}
	return 0, invalidType(t)
}

func invalidType(t NodeType) error {
	return errors.New(errors.ErrCodeInvalidNodeType, "invalid node type %s", t)
}
