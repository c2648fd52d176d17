package mcdgraph

func (attr *Attribute) Copy() *Attribute {
	if attr == nil {
		return nil
	}
	tmp := *attr
	return &tmp
}

func copyAttributes(attrs []*Attribute) []*Attribute {
	out := make([]*Attribute, 0, len(attrs))
	for _, attr := range attrs {
		out = append(out, attr.Copy())
	}
	return out
}

func (e *Entity) Copy() *Entity {
	if e == nil {
		return nil
	}
	tmp := *e
	tmp.Attributes = copyAttributes(e.Attributes)
	return &tmp
}

func (c *Connection) Copy() *Connection {
	if c == nil {
		return nil
	}
	tmp := *c
	return &tmp
}

func copyFloat(f *float64) *float64 {
	if f == nil {
		return nil
	}
	tmp := *f
	return &tmp
}

func (a *Association) Copy() *Association {
	if a == nil {
		return nil
	}
	tmp := *a
	tmp.EntityBoxX = copyFloat(a.EntityBoxX)
	tmp.EntityBoxY = copyFloat(a.EntityBoxY)
	tmp.Attributes = copyAttributes(a.Attributes)
	tmp.Connections = make([]*Connection, 0, len(a.Connections))
	for _, c := range a.Connections {
		tmp.Connections = append(tmp.Connections, c.Copy())
	}
	return &tmp
}

// Copy returns a deep copy sharing no memory with d.
func (d *Diagram) Copy() *Diagram {
	if d == nil {
		return nil
	}
	out := &Diagram{
		Entities:     make([]*Entity, 0, len(d.Entities)),
		Associations: make([]*Association, 0, len(d.Associations)),
	}
	for _, e := range d.Entities {
		out.Entities = append(out.Entities, e.Copy())
	}
	for _, a := range d.Associations {
		out.Associations = append(out.Associations, a.Copy())
	}
	return out
}
