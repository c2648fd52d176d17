package geo

import (
	"math"
)

// Point is an immutable 2D coordinate. Methods never modify the receiver.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

func NewPoint(x, y float64) Point {
	return Point{X: x, Y: y}
}

type Points []Point

// Moves the given point by Vector
func (start Point) AddVector(v Vector) Point {
	return NewPoint(start.X+v.X, start.Y+v.Y)
}

// Creates a Vector of the size between start and endpoint, pointing to endpoint
func (start Point) VectorTo(endpoint Point) Vector {
	return NewVector(endpoint.X-start.X, endpoint.Y-start.Y)
}

func (p Point) DistanceTo(p2 Point) float64 {
	return EuclideanDistance(p.X, p.Y, p2.X, p2.Y)
}

// point t% of the way between a and b
func (a Point) Interpolate(b Point, t float64) Point {
	return NewPoint(
		a.X*(1.0-t)+b.X*t,
		a.Y*(1.0-t)+b.Y*t,
	)
}

func (a Point) Midpoint(b Point) Point {
	return a.Interpolate(b, 0.5)
}

// Snap rounds both coordinates to the nearest multiple of grid.
// A non-positive grid returns p unchanged.
func (p Point) Snap(grid float64) Point {
	if grid <= 0 {
		return p
	}
	return NewPoint(math.Round(p.X/grid)*grid, math.Round(p.Y/grid)*grid)
}

// PointAtDistance returns the point distance px from start along the ray start -> end.
// A zero length ray returns start.
func PointAtDistance(start, end Point, distance float64) Point {
	v := start.VectorTo(end)
	length := v.Length()
	if length == 0 {
		return start
	}
	return start.AddVector(v.Multiply(distance / length))
}

// IntersectionPoint returns the point where segments u0 -> u1 and v0 -> v1 cross.
// ok is false when they are parallel or cross outside of either segment.
func IntersectionPoint(u0, u1, v0, v1 Point) (p Point, ok bool) {
	// Determinant form, with (x1,y1)->(x2,y2) = u and (x3,y3)->(x4,y4) = v:
	//
	//   denom = (y4-y3)(x2-x1) - (x4-x3)(y2-y1)
	//   ua    = ((x4-x3)(y1-y3) - (y4-y3)(x1-x3)) / denom
	//   ub    = ((x2-x1)(y1-y3) - (y2-y1)(x1-x3)) / denom
	//
	// ua is how far along u the crossing is, ub how far along v.
	denom := (v1.Y-v0.Y)*(u1.X-u0.X) - (v1.X-v0.X)*(u1.Y-u0.Y)
	if denom == 0 {
		// lines are parallel
		return Point{}, false
	}
	ua := ((v1.X-v0.X)*(u0.Y-v0.Y) - (v1.Y-v0.Y)*(u0.X-v0.X)) / denom
	ub := ((u1.X-u0.X)*(u0.Y-v0.Y) - (u1.Y-u0.Y)*(u0.X-v0.X)) / denom

	if ua < 0 || ua > 1 || ub < 0 || ub > 1 {
		return Point{}, false
	}

	return NewPoint(
		u0.X+ua*(u1.X-u0.X),
		u0.Y+ua*(u1.Y-u0.Y),
	), true
}
