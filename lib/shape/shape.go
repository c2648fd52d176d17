package shape

import (
	"math"
	"unicode/utf8"

	"oss.terrastruct.com/mcd/lib/geo"
)

const (
	SQUARE_TYPE   = "Square"
	BOX_TYPE      = "Box"
	TRIANGLE_TYPE = "Triangle"
	DIAMOND_TYPE  = "Diamond"
	POLYGON_TYPE  = "Polygon"
)

const (
	BOX_MIN_WIDTH  = 40.
	BOX_HEIGHT     = 20.
	BOX_CHAR_WIDTH = 7.
	BOX_PADDING    = 10.

	TRIANGLE_RADIUS = 48.
	POLYGON_RADIUS  = 40.
)

type Shape interface {
	GetType() string
	Center() geo.Point

	// Points returns the vertices of the closed outline, first vertex not repeated.
	Points() geo.Points

	// BorderIntersection returns where the segment from the shape's center to target
	// leaves the shape, or the center when it never does.
	BorderIntersection(target geo.Point) geo.Point
}

type baseShape struct {
	Type     string
	center   geo.Point
	vertices geo.Points
}

func (s baseShape) GetType() string {
	return s.Type
}

func (s baseShape) Center() geo.Point {
	return s.center
}

func (s baseShape) Points() geo.Points {
	return append(geo.Points(nil), s.vertices...)
}

func (s baseShape) BorderIntersection(target geo.Point) geo.Point {
	return geo.PolygonBorderIntersection(s.center, target, geo.Polygon{Vertices: s.vertices})
}

// ForAssociation returns the node outline of an association with count connections
// centered on center:
//   - up to 2 connections: a box sized to hold label
//   - 3: a triangle pointing up
//   - 4: a square turned by 45° from the upright polygon
//   - more: a regular polygon with a vertex on top
func ForAssociation(center geo.Point, count int, label string) Shape {
	switch {
	case count <= 2:
		return NewBox(center, label)
	case count == 3:
		return NewTriangle(center)
	case count == 4:
		return newDiamondAt(center)
	default:
		return NewRegularPolygon(center, count)
	}
}

// BoxWidth is the width of the label box of a binary or unary association.
func BoxWidth(label string) float64 {
	return math.Max(BOX_MIN_WIDTH, float64(utf8.RuneCountInString(label))*BOX_CHAR_WIDTH+BOX_PADDING)
}

type shapeBox struct {
	*baseShape
}

// NewBox returns the label box of an association with at most two connections.
func NewBox(center geo.Point, label string) Shape {
	return newBoxShape(geo.NewBoxAt(center, BoxWidth(label), BOX_HEIGHT))
}

func newBoxShape(box geo.Box) Shape {
	return shapeBox{
		baseShape: &baseShape{
			Type:     BOX_TYPE,
			center:   box.Center(),
			vertices: box.Corners(),
		},
	}
}

type shapePolygon struct {
	*baseShape
}

func newRegular(shapeType string, center geo.Point, count int, r, offset float64) Shape {
	return shapePolygon{
		baseShape: &baseShape{
			Type:     shapeType,
			center:   center,
			vertices: geo.RegularPolygon(center, count, r, offset).Vertices,
		},
	}
}

func NewTriangle(center geo.Point) Shape {
	return newRegular(TRIANGLE_TYPE, center, 3, TRIANGLE_RADIUS, -math.Pi/2)
}

func NewRegularPolygon(center geo.Point, count int) Shape {
	return newRegular(POLYGON_TYPE, center, count, POLYGON_RADIUS, -math.Pi/2)
}
