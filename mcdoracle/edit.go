// mcdoracle applies user edits to an MCD diagram.
//
// Every edit works on a deep copy and returns it; the diagram passed in is never modified.
package mcdoracle

import (
	"errors"
	"fmt"

	"oss.terrastruct.com/util-go/go2"
	"oss.terrastruct.com/util-go/xdefer"

	"oss.terrastruct.com/mcd/lib/geo"
	"oss.terrastruct.com/mcd/mcdgraph"
	"oss.terrastruct.com/mcd/mcdlayout"
	"oss.terrastruct.com/mcd/mcdtarget"
)

// GRID_SIZE is the grid dragged positions snap to.
const GRID_SIZE = 10.

var ErrNotFound = errors.New("not found")

func snap(x, y float64) geo.Point {
	return geo.NewPoint(x, y).Snap(GRID_SIZE)
}

// MoveEntity moves the top left corner of an entity to (x, y), snapped to the grid.
func MoveEntity(d *mcdgraph.Diagram, id mcdgraph.ID, x, y float64) (_ *mcdgraph.Diagram, err error) {
	defer xdefer.Errorf(&err, "failed to move entity %#v", string(id))

	d = d.Copy()
	e := d.Entity(id)
	if e == nil {
		return nil, fmt.Errorf("entity %#v: %w", string(id), ErrNotFound)
	}
	p := snap(x, y)
	e.X, e.Y = p.X, p.Y
	return d, nil
}

// MoveAssociation moves the node or free label of an association to (x, y), snapped to
// the grid. Locked binaries keep the position for when they are unlocked.
func MoveAssociation(d *mcdgraph.Diagram, id mcdgraph.ID, x, y float64) (_ *mcdgraph.Diagram, err error) {
	defer xdefer.Errorf(&err, "failed to move association %#v", string(id))

	d = d.Copy()
	a := d.Association(id)
	if a == nil {
		return nil, fmt.Errorf("association %#v: %w", string(id), ErrNotFound)
	}
	p := snap(x, y)
	a.X, a.Y = p.X, p.Y
	return d, nil
}

// MoveAttributeBox pins the top left corner of an association's attribute box at (x, y),
// snapped to the grid. A pinned box no longer follows the association.
func MoveAttributeBox(d *mcdgraph.Diagram, id mcdgraph.ID, x, y float64) (_ *mcdgraph.Diagram, err error) {
	defer xdefer.Errorf(&err, "failed to move attribute box of %#v", string(id))

	d = d.Copy()
	a := d.Association(id)
	if a == nil {
		return nil, fmt.Errorf("association %#v: %w", string(id), ErrNotFound)
	}
	if len(a.Attributes) == 0 {
		return nil, fmt.Errorf("association %#v has no attributes", string(id))
	}
	p := snap(x, y)
	a.EntityBoxX = go2.Pointer(p.X)
	a.EntityBoxY = go2.Pointer(p.Y)
	return d, nil
}

// ResetAttributeBox unpins an association's attribute box so it follows the association
// again.
func ResetAttributeBox(d *mcdgraph.Diagram, id mcdgraph.ID) (_ *mcdgraph.Diagram, err error) {
	defer xdefer.Errorf(&err, "failed to reset attribute box of %#v", string(id))

	d = d.Copy()
	a := d.Association(id)
	if a == nil {
		return nil, fmt.Errorf("association %#v: %w", string(id), ErrNotFound)
	}
	a.EntityBoxX = nil
	a.EntityBoxY = nil
	return d, nil
}

// SetLabelMovable locks or unlocks the label of an association.
// Unlocking a label that is drawn on its line places the free label where the locked one
// was, so the label does not jump.
func SetLabelMovable(d *mcdgraph.Diagram, id mcdgraph.ID, movable bool, cfg *mcdlayout.Config) (_ *mcdgraph.Diagram, err error) {
	defer xdefer.Errorf(&err, "failed to set label movable of %#v to %v", string(id), movable)

	d = d.Copy()
	idx := -1
	for i, a := range d.Associations {
		if a.ID == id {
			idx = i
			break
		}
	}
	if idx == -1 {
		return nil, fmt.Errorf("association %#v: %w", string(id), ErrNotFound)
	}
	a := d.Associations[idx]
	if a.IsLabelMovable == movable {
		return d, nil
	}

	if movable {
		plan := mcdlayout.Layout(d.Entities, d.Associations, cfg, nil).Associations[idx]
		if plan.Mode == mcdtarget.LockedBinary || plan.Mode == mcdtarget.SelfRef {
			p := plan.LabelPoint.Snap(GRID_SIZE)
			a.X, a.Y = p.X, p.Y
		}
	}
	a.IsLabelMovable = movable
	return d, nil
}

// DeleteEntity removes an entity and every connection to it. Associations left without
// any connection are removed too.
func DeleteEntity(d *mcdgraph.Diagram, id mcdgraph.ID) (_ *mcdgraph.Diagram, err error) {
	defer xdefer.Errorf(&err, "failed to delete entity %#v", string(id))

	if d.Entity(id) == nil {
		return nil, fmt.Errorf("entity %#v: %w", string(id), ErrNotFound)
	}
	d = d.Copy()

	entities := d.Entities[:0]
	for _, e := range d.Entities {
		if e.ID != id {
			entities = append(entities, e)
		}
	}
	d.Entities = entities

	associations := d.Associations[:0]
	for _, a := range d.Associations {
		connections := a.Connections[:0]
		for _, c := range a.Connections {
			if c.EntityID != id {
				connections = append(connections, c)
			}
		}
		if len(connections) == 0 && len(a.Connections) > 0 {
			continue
		}
		a.Connections = connections
		associations = append(associations, a)
	}
	d.Associations = associations
	return d, nil
}

// DeleteAssociation removes an association.
func DeleteAssociation(d *mcdgraph.Diagram, id mcdgraph.ID) (_ *mcdgraph.Diagram, err error) {
	defer xdefer.Errorf(&err, "failed to delete association %#v", string(id))

	if d.Association(id) == nil {
		return nil, fmt.Errorf("association %#v: %w", string(id), ErrNotFound)
	}
	d = d.Copy()
	associations := d.Associations[:0]
	for _, a := range d.Associations {
		if a.ID != id {
			associations = append(associations, a)
		}
	}
	d.Associations = associations
	return d, nil
}

// ReorderAttribute moves an attribute of an entity or association to index, shifting the
// attributes in between. Attribute ids are kept.
func ReorderAttribute(d *mcdgraph.Diagram, ownerID, attrID mcdgraph.ID, index int) (_ *mcdgraph.Diagram, err error) {
	defer xdefer.Errorf(&err, "failed to move attribute %#v of %#v to %d", string(attrID), string(ownerID), index)

	d = d.Copy()
	var attrs *[]*mcdgraph.Attribute
	if e := d.Entity(ownerID); e != nil {
		attrs = &e.Attributes
	} else if a := d.Association(ownerID); a != nil {
		attrs = &a.Attributes
	} else {
		return nil, fmt.Errorf("%#v: %w", string(ownerID), ErrNotFound)
	}

	from := -1
	for i, attr := range *attrs {
		if attr.ID == attrID {
			from = i
			break
		}
	}
	if from == -1 {
		return nil, fmt.Errorf("attribute %#v: %w", string(attrID), ErrNotFound)
	}
	if index < 0 || index >= len(*attrs) {
		return nil, fmt.Errorf("index %d out of range [0, %d)", index, len(*attrs))
	}

	*attrs = moveAttribute(*attrs, from, index)
	return d, nil
}

func moveAttribute(attrs []*mcdgraph.Attribute, from, to int) []*mcdgraph.Attribute {
	attr := attrs[from]
	out := make([]*mcdgraph.Attribute, 0, len(attrs))
	out = append(out, attrs[:from]...)
	out = append(out, attrs[from+1:]...)
	out = append(out[:to], append([]*mcdgraph.Attribute{attr}, out[to:]...)...)
	return out
}
