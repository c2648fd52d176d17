package geo

import "math"

// Polygon is a closed ring of vertices. The first vertex is not repeated at the end.
type Polygon struct {
	Vertices Points `json:"vertices"`
}

// RegularPolygon places count vertices on the circle of radius r around center, vertex i
// at angle offset + i*2π/count.
func RegularPolygon(center Point, count int, r, offset float64) Polygon {
	vertices := make(Points, 0, count)
	for i := 0; i < count; i++ {
		theta := offset + float64(i)*2*math.Pi/float64(count)
		vertices = append(vertices, NewPoint(
			center.X+r*math.Cos(theta),
			center.Y+r*math.Sin(theta),
		))
	}
	return Polygon{Vertices: vertices}
}

func (p Polygon) Edges() []Segment {
	n := len(p.Vertices)
	if n < 2 {
		return nil
	}
	edges := make([]Segment, 0, n)
	for i := range p.Vertices {
		edges = append(edges, NewSegment(p.Vertices[i], p.Vertices[(i+1)%n]))
	}
	return edges
}

// PolygonBorderIntersection returns the point closest to center where the segment
// center -> target crosses an edge of polygon. No crossing returns center.
func PolygonBorderIntersection(center, target Point, polygon Polygon) Point {
	best := center
	bestDist := math.Inf(1)
	for _, e := range polygon.Edges() {
		p, ok := IntersectionPoint(center, target, e.Start, e.End)
		if !ok {
			continue
		}
		if d := center.DistanceTo(p); d < bestDist {
			best = p
			bestDist = d
		}
	}
	return best
}
