package mcdgraph

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// ErrFormat is returned by Parse for documents that are not a diagram.
var ErrFormat = errors.New("invalid diagram format")

// ID identifies an entity, association, connection or attribute. Documents may carry ids
// as JSON strings or numbers, both decode to the same ID.
type ID string

func (id *ID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*id = ID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("id must be a string or a number: %s", b)
	}
	*id = ID(n.String())
	return nil
}

func (id ID) String() string {
	return string(id)
}

// Parse decodes a diagram document. Both "entities" and "associations" must be arrays.
// Unknown fields are ignored and missing attribute or connection lists decode as empty.
func Parse(b []byte) (*Diagram, error) {
	var doc map[string]json.RawMessage
	if err := json.Unmarshal(b, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFormat, err)
	}
	if doc == nil {
		return nil, fmt.Errorf("%w: document must be an object", ErrFormat)
	}
	for _, field := range []string{"entities", "associations"} {
		if !isArray(doc[field]) {
			return nil, fmt.Errorf("%w: %q must be an array", ErrFormat, field)
		}
	}

	var d Diagram
	if err := json.Unmarshal(b, &d); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFormat, err)
	}
	for i, e := range d.Entities {
		if e == nil {
			return nil, fmt.Errorf("%w: entities[%d] is null", ErrFormat, i)
		}
	}
	for i, a := range d.Associations {
		if a == nil {
			return nil, fmt.Errorf("%w: associations[%d] is null", ErrFormat, i)
		}
		for j, c := range a.Connections {
			if c == nil {
				return nil, fmt.Errorf("%w: associations[%d].connections[%d] is null", ErrFormat, i, j)
			}
		}
	}
	normalize(&d)
	return &d, nil
}

func isArray(raw json.RawMessage) bool {
	raw = bytes.TrimSpace(raw)
	return len(raw) > 0 && raw[0] == '['
}

func normalize(d *Diagram) {
	if d.Entities == nil {
		d.Entities = []*Entity{}
	}
	if d.Associations == nil {
		d.Associations = []*Association{}
	}
	for _, e := range d.Entities {
		e.Attributes = compactAttributes(e.Attributes)
	}
	for _, a := range d.Associations {
		a.Attributes = compactAttributes(a.Attributes)
		if a.Connections == nil {
			a.Connections = []*Connection{}
		}
	}
}

func compactAttributes(attrs []*Attribute) []*Attribute {
	out := make([]*Attribute, 0, len(attrs))
	for _, attr := range attrs {
		if attr != nil {
			out = append(out, attr)
		}
	}
	return out
}

// Marshal encodes d with 2-space indentation and a trailing newline. d is not modified.
func Marshal(d *Diagram) ([]byte, error) {
	d = d.Copy()
	if d == nil {
		d = &Diagram{}
	}
	normalize(d)
	b, err := json.MarshalIndent(d, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(b, '\n'), nil
}

