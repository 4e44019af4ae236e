package diagram

import (
	"fmt"
	"strings"

	"github.com/waiteperspectives/eml/pkg/errors"
)

// Entry keys that are not node types.
const (
	KeyArrow      = "arrow"
	KeyArrowShort = "=>"
	KeyFlow       = "flow"
)

// Entry is one single-key mapping of a document. Key is the keyword as
// written. Which payload fields apply depends on the key.
type Entry struct {
	Key string

	// Node payload.
	ID     string
	Text   string
	Fields []Field

	// Arrow payload.
	BeginAt string
	EndAt   string

	// Flow payload: arrows between consecutive ids.
	Flow []string

	// Line is the source line of the entry, or 0 when unknown.
	Line int
}

// Document is a parsed document in source order.
type Document []Entry

// FromDocument builds a diagram from doc and lays it out.
//
// Entries are applied in order, so an arrow must come after both of its
// endpoints. The first failing entry aborts the build and no diagram is
// returned.
func FromDocument(doc Document) (*Diagram, error) {
	d := New()
	for i, e := range doc {
		if err := d.apply(e); err != nil {
			return nil, fmt.Errorf("%s: %w", e.position(i), err)
		}
	}
	if err := d.Layout(); err != nil {
		return nil, err
	}
	return d, nil
}

func (d *Diagram) apply(e Entry) error {
	key := strings.ToLower(strings.TrimSpace(e.Key))
	switch key {
	case KeyArrow, KeyArrowShort:
		if e.BeginAt == "" || e.EndAt == "" {
			return errors.New(errors.ErrCodeInvalidDocument, "arrow needs both begin_at and end_at")
		}
		return d.AddArrow(e.BeginAt, e.EndAt)
	case KeyFlow:
		if len(e.Flow) < 2 {
			return errors.New(errors.ErrCodeInvalidDocument, "flow needs at least two ids, got %d", len(e.Flow))
		}
		for j := 1; j < len(e.Flow); j++ {
			if err := d.AddArrow(e.Flow[j-1], e.Flow[j]); err != nil {
				return err
			}
		}
		return nil
	}

	t, err := ParseNodeType(key)
	if err != nil {
		return err
	}
	n, err := NewNode(e.ID, t, e.Text)
	if err != nil {
		return err
	}
	n.Fields = e.Fields
	return d.AddNode(n)
}

func (e Entry) position(i int) string {
	if e.Line > 0 {
		return fmt.Sprintf("entry %d (line %d)", i+1, e.Line)
	}
	return fmt.Sprintf("entry %d", i+1)
}
