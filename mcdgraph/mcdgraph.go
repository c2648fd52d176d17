// Package mcdgraph is the in-memory model of an MCD diagram: entities holding attributes
// and associations linking them through connections.
package mcdgraph

import (
	"fmt"
	"strings"

	"go.uber.org/multierr"
)

type Attribute struct {
	ID   ID     `json:"id"`
	Name string `json:"name"`
	IsPK bool   `json:"isPk"`
}

type Entity struct {
	ID   ID     `json:"id"`
	Name string `json:"name"`

	// X and Y are the top left corner.
	X float64 `json:"x"`
	Y float64 `json:"y"`

	// Width and Height are requested minimums. The rendered size grows to fit the text.
	Width  float64 `json:"width"`
	Height float64 `json:"height"`

	Attributes []*Attribute `json:"attributes"`
}

// Connection is one leg of an association.
type Connection struct {
	ID          ID     `json:"id"`
	EntityID    ID     `json:"entityId"`
	Cardinality string `json:"cardinality"`
}

type Association struct {
	ID         ID     `json:"id"`
	Label      string `json:"label"`
	EntityName string `json:"entityName,omitempty"`

	// X and Y are the center of the association node.
	X float64 `json:"x"`
	Y float64 `json:"y"`

	// EntityBoxX and EntityBoxY pin the top left corner of the attribute box once it was
	// dragged. nil means the layout picks a default.
	EntityBoxX *float64 `json:"entityBoxX,omitempty"`
	EntityBoxY *float64 `json:"entityBoxY,omitempty"`

	Attributes  []*Attribute  `json:"attributes"`
	Connections []*Connection `json:"connections"`

	IsLabelMovable bool `json:"isLabelMovable,omitempty"`
}

type Diagram struct {
	Entities     []*Entity      `json:"entities"`
	Associations []*Association `json:"associations"`
}

// Arity is the number of connections of the association.
func (a *Association) Arity() int {
	return len(a.Connections)
}

// DisplayName is the header of the association's attribute box.
func (a *Association) DisplayName() string {
	if name := strings.TrimSpace(a.EntityName); name != "" {
		return name
	}
	return a.Label
}

func (a *Association) Connection(id ID) *Connection {
	for _, c := range a.Connections {
		if c.ID == id {
			return c
		}
	}
	return nil
}

func (d *Diagram) Entity(id ID) *Entity {
	for _, e := range d.Entities {
		if e.ID == id {
			return e
		}
	}
	return nil
}

func (d *Diagram) Association(id ID) *Association {
	for _, a := range d.Associations {
		if a.ID == id {
			return a
		}
	}
	return nil
}

// EntityIndex maps every entity id to its entity. The first entity wins on duplicate ids.
func (d *Diagram) EntityIndex() map[ID]*Entity {
	idx := make(map[ID]*Entity, len(d.Entities))
	for _, e := range d.Entities {
		if _, ok := idx[e.ID]; !ok {
			idx[e.ID] = e
		}
	}
	return idx
}

// Validate reports every referential problem of the diagram: duplicate ids, connections to
// entities that do not exist and attributes sharing an id within their owner.
// A diagram that fails validation can still be laid out, offending legs are skipped.
func (d *Diagram) Validate() error {
	var err error

	entityIDs := make(map[ID]struct{}, len(d.Entities))
	for _, e := range d.Entities {
		if _, ok := entityIDs[e.ID]; ok {
			err = multierr.Append(err, fmt.Errorf("duplicate entity id %q", e.ID))
		}
		entityIDs[e.ID] = struct{}{}
		err = multierr.Append(err, validateAttributes(fmt.Sprintf("entity %q", e.ID), e.Attributes))
	}

	assocIDs := make(map[ID]struct{}, len(d.Associations))
	for _, a := range d.Associations {
		if _, ok := assocIDs[a.ID]; ok {
			err = multierr.Append(err, fmt.Errorf("duplicate association id %q", a.ID))
		}
		assocIDs[a.ID] = struct{}{}
		err = multierr.Append(err, validateAttributes(fmt.Sprintf("association %q", a.ID), a.Attributes))

		for _, c := range a.Connections {
			if _, ok := entityIDs[c.EntityID]; !ok {
				err = multierr.Append(err, fmt.Errorf("association %q: connection %q references missing entity %q", a.ID, c.ID, c.EntityID))
			}
		}
	}

	return err
}

func validateAttributes(owner string, attrs []*Attribute) error {
	var err error
	seen := make(map[ID]struct{}, len(attrs))
	for _, attr := range attrs {
		if _, ok := seen[attr.ID]; ok {
			err = multierr.Append(err, fmt.Errorf("%s: duplicate attribute id %q", owner, attr.ID))
		}
		seen[attr.ID] = struct{}{}
	}
	return err
}
