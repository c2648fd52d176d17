package shape

import (
	"oss.terrastruct.com/mcd/lib/geo"
)

// shapeSquare is the outline of an entity or an attribute box.
type shapeSquare struct {
	*baseShape
	box geo.Box
}

func NewSquare(box geo.Box) Shape {
	return shapeSquare{
		baseShape: &baseShape{
			Type:     SQUARE_TYPE,
			center:   box.Center(),
			vertices: box.Corners(),
		},
		box: box,
	}
}

func (s shapeSquare) BorderIntersection(target geo.Point) geo.Point {
	return geo.RectangleBorderIntersection(s.center, target, s.box)
}
