package geo

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPointDistanceTo(t *testing.T) {
	p1 := NewPoint(0, 0)
	p2 := NewPoint(30, 40)

	d := p1.DistanceTo(p2)

	if d != 50.0 {
		t.Fatalf("Expected 50.0 and got %v", d)
	}
	assert.Equal(t, 70., NewPoint(50, 70).DistanceTo(NewPoint(50, 0)))
}

func TestAddVector(t *testing.T) {
	start := NewPoint(1.5, 5.3)
	c := NewVector(-3.5, -2.3)
	p2 := start.AddVector(c)

	assert.InDelta(t, -2, p2.X, 1e-9)
	assert.InDelta(t, 3, p2.Y, 1e-9)
	// start is a value and is never moved
	assert.Equal(t, NewPoint(1.5, 5.3), start)
}

func TestVectorTo(t *testing.T) {
	p1 := NewPoint(1.5, 5.3)
	p2 := NewPoint(-2, 3)
	c := p1.VectorTo(p2)
	assert.InDelta(t, -3.5, c.X, 1e-9)
	assert.InDelta(t, -2.3, c.Y, 1e-9)

	c = p2.VectorTo(p1)
	assert.InDelta(t, 3.5, c.X, 1e-9)
	assert.InDelta(t, 2.3, c.Y, 1e-9)
}

func TestSnap(t *testing.T) {
	t.Parallel()

	tca := []struct {
		name string
		in   Point
		grid float64
		exp  Point
	}{
		{name: "round_down", in: NewPoint(12, 44), grid: 10, exp: NewPoint(10, 40)},
		{name: "round_up", in: NewPoint(15, 46), grid: 10, exp: NewPoint(20, 50)},
		{name: "negative", in: NewPoint(-14, -16), grid: 10, exp: NewPoint(-10, -20)},
		{name: "no_grid", in: NewPoint(3.3, 4.4), grid: 0, exp: NewPoint(3.3, 4.4)},
	}
	for _, tc := range tca {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.exp, tc.in.Snap(tc.grid))
		})
	}
}

func TestPointAtDistance(t *testing.T) {
	t.Parallel()

	p := PointAtDistance(NewPoint(160, 50), NewPoint(400, 50), 15)
	assert.Equal(t, NewPoint(175, 50), p)

	p = PointAtDistance(NewPoint(400, 50), NewPoint(160, 50), 15)
	assert.Equal(t, NewPoint(385, 50), p)

	p = PointAtDistance(NewPoint(0, 0), NewPoint(30, 40), 10)
	assert.InDelta(t, 6, p.X, 1e-9)
	assert.InDelta(t, 8, p.Y, 1e-9)

	// zero length ray
	p = PointAtDistance(NewPoint(7, 9), NewPoint(7, 9), 15)
	assert.Equal(t, NewPoint(7, 9), p)
}

func TestIntersectionPoint(t *testing.T) {
	t.Parallel()

	p, ok := IntersectionPoint(NewPoint(0, 0), NewPoint(10, 10), NewPoint(0, 10), NewPoint(10, 0))
	assert.True(t, ok)
	assert.Equal(t, NewPoint(5, 5), p)

	// parallel
	_, ok = IntersectionPoint(NewPoint(0, 0), NewPoint(10, 0), NewPoint(0, 5), NewPoint(10, 5))
	assert.False(t, ok)

	// lines cross outside of the second segment
	_, ok = IntersectionPoint(NewPoint(0, 0), NewPoint(10, 10), NewPoint(20, 0), NewPoint(30, -10))
	assert.False(t, ok)
}

func TestMidpoint(t *testing.T) {
	assert.Equal(t, NewPoint(280, 50), NewPoint(160, 50).Midpoint(NewPoint(400, 50)))
	assert.Equal(t, NewPoint(1, 1), NewPoint(0, 0).Midpoint(NewPoint(2, 2)))
}

func TestUnitNormal(t *testing.T) {
	t.Parallel()

	n := UnitNormal(NewPoint(0, 0), NewPoint(10, 0))
	assert.InDelta(t, 0, n.X, 1e-9)
	assert.InDelta(t, 1, n.Y, 1e-9)

	n = UnitNormal(NewPoint(3, 4), NewPoint(3, 4))
	assert.Equal(t, NewVector(0, 0), n)

	n = UnitNormal(NewPoint(0, 0), NewPoint(3, 4))
	assert.InDelta(t, 1, n.Length(), 1e-9)
	assertPoint(t, NewPoint(-0.8, 0.6), NewPoint(n.X, n.Y))
}

func TestVectorRotate90(t *testing.T) {
	v := NewVector(2, 1).Rotate90()
	assert.Equal(t, NewVector(-1, 2), v)
	assert.InDelta(t, math.Pi/2, NewVector(0, 5).Angle(), 1e-9)
	v = NewVectorFromProperties(2, math.Pi)
	assert.InDelta(t, -2, v.X, 1e-9)
	assert.InDelta(t, 0, v.Y, 1e-9)
}

func assertPoint(t *testing.T, exp, got Point) {
	t.Helper()
	assert.InDelta(t, exp.X, got.X, 1e-9, "x of %v", got)
	assert.InDelta(t, exp.Y, got.Y, 1e-9, "y of %v", got)
}
