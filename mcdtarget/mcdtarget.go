// Package mcdtarget is the render plan: the fully laid out geometry of a diagram that a
// renderer draws without further computation.
package mcdtarget

import (
	"encoding/json"
	"fmt"
	"hash/fnv"
	"math"

	"oss.terrastruct.com/mcd/lib/geo"
	"oss.terrastruct.com/mcd/mcdrenderers/mcdfonts"
)

// Mode is how an association is drawn.
type Mode string

const (
	// SelfRef is a binary association whose two legs reach the same entity, drawn as a loop.
	SelfRef Mode = "SelfRef"
	// LockedBinary is a binary association drawn as a straight line between two entities.
	LockedBinary Mode = "LockedBinary"
	// MovableBinary is a binary association drawn as a label box with two spokes.
	MovableBinary Mode = "MovableBinary"
	// Polygon is an association node drawn as a polygon with one spoke per connection.
	Polygon Mode = "Polygon"
)

type Config struct {
	ThemeID            *int64          `json:"themeID"`
	DarkThemeID        *int64          `json:"darkThemeID"`
	Pad                *int64          `json:"pad"`
	ThemeOverrides     *ThemeOverrides `json:"themeOverrides,omitempty"`
	DarkThemeOverrides *ThemeOverrides `json:"darkThemeOverrides,omitempty"`
}

type ThemeOverrides struct {
	N1  *string `json:"n1"`
	N2  *string `json:"n2"`
	N3  *string `json:"n3"`
	N4  *string `json:"n4"`
	N5  *string `json:"n5"`
	N6  *string `json:"n6"`
	N7  *string `json:"n7"`
	B1  *string `json:"b1"`
	B2  *string `json:"b2"`
	B3  *string `json:"b3"`
	B4  *string `json:"b4"`
	B5  *string `json:"b5"`
	B6  *string `json:"b6"`
	AA2 *string `json:"aa2"`
	AA4 *string `json:"aa4"`
	AA5 *string `json:"aa5"`
	AB4 *string `json:"ab4"`
	AB5 *string `json:"ab5"`
}

type Diagram struct {
	Config     *Config              `json:"config,omitempty"`
	FontFamily *mcdfonts.FontFamily `json:"fontFamily,omitempty"`

	Entities     []Entity      `json:"entities"`
	Associations []Association `json:"associations"`
}

func NewDiagram() *Diagram {
	return &Diagram{
		Entities:     []Entity{},
		Associations: []Association{},
	}
}

type Attribute struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	IsPK bool   `json:"isPk"`
}

// Entity is an entity box at its rendered size.
type Entity struct {
	ID   string `json:"id"`
	Name string `json:"name"`

	Pos    geo.Point `json:"pos"`
	Width  float64   `json:"width"`
	Height float64   `json:"height"`

	HeaderHeight float64 `json:"headerHeight"`
	RowHeight    float64 `json:"rowHeight"`

	Attributes []Attribute `json:"attributes"`
}

func (e Entity) Box() geo.Box {
	return geo.NewBox(e.Pos, e.Width, e.Height)
}

// RowTop is the y coordinate of the top of the i-th attribute row.
func (e Entity) RowTop(i int) float64 {
	return e.Pos.Y + e.HeaderHeight + float64(i)*e.RowHeight
}

type Line struct {
	From geo.Point `json:"from"`
	To   geo.Point `json:"to"`
}

func NewLine(from, to geo.Point) Line {
	return Line{From: from, To: to}
}

// AttributeBox is the box listing the attributes an association carries.
type AttributeBox struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`

	Name         string      `json:"name"`
	HeaderHeight float64     `json:"headerHeight"`
	RowHeight    float64     `json:"rowHeight"`
	Attributes   []Attribute `json:"attributes"`

	// AnchorLine is the dashed connector from the association to the box border.
	AnchorLine Line `json:"anchorLine"`
}

func (b AttributeBox) Box() geo.Box {
	return geo.NewBox(geo.NewPoint(b.X, b.Y), b.Width, b.Height)
}

func (b AttributeBox) RowTop(i int) float64 {
	return b.Y + b.HeaderHeight + float64(i)*b.RowHeight
}

type Association struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	Mode  Mode   `json:"mode"`

	// ShapeType and ShapePoints outline the node. Locked binaries and locked self loops
	// have no node.
	ShapeType   string     `json:"shapeType,omitempty"`
	ShapePoints geo.Points `json:"shapePoints,omitempty"`

	Lines      []Line    `json:"lines"`
	LabelPoint geo.Point `json:"labelPoint"`

	// CardinalityPoints[i] is where Cardinalities[i] is drawn, one per drawn leg in
	// connection order.
	CardinalityPoints geo.Points `json:"cardinalityPoints"`
	Cardinalities     []string   `json:"cardinalities"`

	// Offset is the distance the line was moved off the center line: the fan-out offset of
	// a locked binary or the loop offset of a self reference.
	Offset float64 `json:"offset,omitempty"`

	AttributeBox *AttributeBox `json:"attributeBox,omitempty"`

	// SkippedConnections lists the ids of the legs that reference no entity.
	SkippedConnections []string `json:"skippedConnections,omitempty"`
}

func (diagram Diagram) Bytes() ([]byte, error) {
	return json.Marshal(diagram)
}

func (diagram Diagram) HashID() (string, error) {
	bytes, err := diagram.Bytes()
	if err != nil {
		return "", err
	}
	h := fnv.New32a()
	h.Write(bytes)
	// CSS names can't start with numbers, so prepend a little something
	return fmt.Sprintf("mcd-%d", h.Sum32()), nil
}

// BoundingBox encloses every entity, node, line, label point and attribute box.
func (diagram Diagram) BoundingBox() (topLeft, bottomRight geo.Point) {
	var bb geo.Box
	has := false
	add := func(b geo.Box) {
		if !has {
			bb = b
			has = true
			return
		}
		bb = bb.Union(b)
	}
	addPoint := func(p geo.Point) {
		add(geo.NewBox(p, 0, 0))
	}

	for _, e := range diagram.Entities {
		add(e.Box())
	}
	for _, a := range diagram.Associations {
		for _, p := range a.ShapePoints {
			addPoint(p)
		}
		for _, l := range a.Lines {
			addPoint(l.From)
			addPoint(l.To)
		}
		addPoint(a.LabelPoint)
		for _, p := range a.CardinalityPoints {
			addPoint(p)
		}
		if a.AttributeBox != nil {
			add(a.AttributeBox.Box())
			addPoint(a.AttributeBox.AnchorLine.From)
		}
	}

	if !has {
		return geo.NewPoint(0, 0), geo.NewPoint(0, 0)
	}
	return geo.NewPoint(math.Floor(bb.Left()), math.Floor(bb.Top())),
		geo.NewPoint(math.Ceil(bb.Right()), math.Ceil(bb.Bottom()))
}

// ModeCounts tallies how many associations are drawn in each mode.
func (diagram Diagram) ModeCounts() map[Mode]int {
	counts := make(map[Mode]int)
	for _, a := range diagram.Associations {
		counts[a.Mode]++
	}
	return counts
}
