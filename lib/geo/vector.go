package geo

import (
	"math"
)

// A 2D Vector with components (x, y) based on the origin
type Vector struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

func NewVector(x, y float64) Vector {
	return Vector{X: x, Y: y}
}

// New Vector of length and pointing in the direction of angle, measured from the +x axis
// towards +y (clockwise on screen).
func NewVectorFromProperties(length float64, angleInRadians float64) Vector {
	return NewVector(
		length*math.Cos(angleInRadians),
		length*math.Sin(angleInRadians),
	)
}

// Creates a Vector by extending the length of the current one by length
func (a Vector) Add(b Vector) Vector {
	return NewVector(a.X+b.X, a.Y+b.Y)
}

func (a Vector) Multiply(v float64) Vector {
	return NewVector(a.X*v, a.Y*v)
}

func (a Vector) Length() float64 {
	return math.Hypot(a.X, a.Y)
}

// Rotate90 returns the Vector rotated a quarter turn towards +y.
func (a Vector) Rotate90() Vector {
	return NewVector(-a.Y, a.X)
}

// Angle is the direction of the Vector in radians, as returned by math.Atan2.
func (a Vector) Angle() float64 {
	return math.Atan2(a.Y, a.X)
}

// return the line (x1,y1) -> (x2,y2) rotated 90° counter-clockwise (left)
func getNormalVector(x1, y1, x2, y2 float64) (float64, float64) {
	return y1 - y2, x2 - x1
}

// GetUnitNormalVector returns the unit normal of (x1,y1) -> (x2,y2), or (0, 0) when the
// two points coincide.
func GetUnitNormalVector(x1, y1, x2, y2 float64) (float64, float64) {
	normalX, normalY := getNormalVector(x1, y1, x2, y2)
	length := EuclideanDistance(x1, y1, x2, y2)
	if length == 0 {
		return 0, 0
	}
	return normalX / length, normalY / length
}

// UnitNormal is GetUnitNormalVector for the segment from -> to.
func UnitNormal(from, to Point) Vector {
	return NewVector(GetUnitNormalVector(from.X, from.Y, to.X, to.Y))
}
