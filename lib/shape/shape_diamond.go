package shape

import (
	"math"

	"oss.terrastruct.com/mcd/lib/geo"
)

type shapeDiamond struct {
	*baseShape
}

func newDiamondAt(center geo.Point) Shape {
	return newDiamond(center, POLYGON_RADIUS)
}

func newDiamond(center geo.Point, r float64) Shape {
	return shapeDiamond{
		baseShape: &baseShape{
			Type:     DIAMOND_TYPE,
			center:   center,
			vertices: geo.RegularPolygon(center, 4, r, -math.Pi/2+math.Pi/4).Vertices,
		},
	}
}
