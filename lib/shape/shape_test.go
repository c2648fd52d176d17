package shape

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"oss.terrastruct.com/mcd/lib/geo"
)

func TestForAssociationVertexCount(t *testing.T) {
	t.Parallel()

	for count := 0; count <= 9; count++ {
		s := ForAssociation(geo.NewPoint(100, 100), count, "owns")
		exp := count
		if count <= 2 {
			exp = 4
		}
		assert.Len(t, s.Points(), exp, "count %d", count)
	}
}

func TestForAssociationIdempotent(t *testing.T) {
	t.Parallel()

	for count := 1; count <= 7; count++ {
		a := ForAssociation(geo.NewPoint(12.5, -40), count, "participe")
		b := ForAssociation(geo.NewPoint(12.5, -40), count, "participe")
		assert.Equal(t, a.Points(), b.Points())
		assert.Equal(t, a.GetType(), b.GetType())
	}
}

func TestBox(t *testing.T) {
	t.Parallel()

	tca := []struct {
		name  string
		label string
		width float64
	}{
		{name: "empty", label: "", width: 40},
		{name: "short", label: "a", width: 40},
		{name: "threshold", label: "abcd", width: 40},
		{name: "long", label: "possède", width: 59},
		{name: "longer", label: "travaille pour", width: 108},
	}
	for _, tc := range tca {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			s := ForAssociation(geo.NewPoint(200, 100), 2, tc.label)
			assert.Equal(t, BOX_TYPE, s.GetType())
			assert.Equal(t, tc.width, BoxWidth(tc.label))
			assert.Equal(t, geo.NewPoint(200, 100), s.Center())
			assert.Equal(t, geo.Points{
				geo.NewPoint(200-tc.width/2, 90),
				geo.NewPoint(200+tc.width/2, 90),
				geo.NewPoint(200+tc.width/2, 110),
				geo.NewPoint(200-tc.width/2, 110),
			}, s.Points())
		})
	}
}

func TestTriangle(t *testing.T) {
	t.Parallel()

	c := geo.NewPoint(0, 0)
	s := ForAssociation(c, 3, "x")
	assert.Equal(t, TRIANGLE_TYPE, s.GetType())
	pts := s.Points()
	assert.InDelta(t, 0, pts[0].X, 1e-9)
	assert.InDelta(t, -48, pts[0].Y, 1e-9)
	assert.InDelta(t, 48*math.Cos(math.Pi/6), pts[1].X, 1e-9)
	assert.InDelta(t, 24, pts[1].Y, 1e-9)
	assert.InDelta(t, -48*math.Cos(math.Pi/6), pts[2].X, 1e-9)
	assert.InDelta(t, 24, pts[2].Y, 1e-9)
}

func TestFourConnections(t *testing.T) {
	t.Parallel()

	c := geo.NewPoint(300, 200)
	s := ForAssociation(c, 4, "x")
	assert.Equal(t, DIAMOND_TYPE, s.GetType())
	pts := s.Points()
	assert.Len(t, pts, 4)

	h := 40 / math.Sqrt2
	exp := geo.Points{
		geo.NewPoint(300+h, 200-h),
		geo.NewPoint(300+h, 200+h),
		geo.NewPoint(300-h, 200+h),
		geo.NewPoint(300-h, 200-h),
	}
	for i, p := range pts {
		assert.InDelta(t, 40, p.DistanceTo(c), 1e-9)
		assert.InDelta(t, exp[i].X, p.X, 1e-9)
		assert.InDelta(t, exp[i].Y, p.Y, 1e-9)
	}
	// all four sides are equal
	for i := range pts {
		assert.InDelta(t, 80/math.Sqrt2, pts[i].DistanceTo(pts[(i+1)%4]), 1e-9)
	}
	assert.Equal(t, c, s.Center())
}

func TestRegularPolygon(t *testing.T) {
	t.Parallel()

	c := geo.NewPoint(0, 0)
	s := ForAssociation(c, 6, "x")
	assert.Equal(t, POLYGON_TYPE, s.GetType())
	pts := s.Points()
	assert.InDelta(t, 0, pts[0].X, 1e-9)
	assert.InDelta(t, -40, pts[0].Y, 1e-9)
	for _, p := range pts {
		assert.InDelta(t, 40, p.DistanceTo(c), 1e-9)
	}
}

func TestBorderIntersection(t *testing.T) {
	t.Parallel()

	s := ForAssociation(geo.NewPoint(0, 0), 2, "")
	p := s.BorderIntersection(geo.NewPoint(100, 0))
	assert.InDelta(t, 20, p.X, 1e-9)
	assert.InDelta(t, 0, p.Y, 1e-9)

	s = ForAssociation(geo.NewPoint(0, 0), 3, "")
	p = s.BorderIntersection(geo.NewPoint(0, 100))
	assert.InDelta(t, 0, p.X, 1e-9)
	assert.InDelta(t, 24, p.Y, 1e-9)

	// target inside the shape
	p = s.BorderIntersection(geo.NewPoint(0, 1))
	assert.Equal(t, geo.NewPoint(0, 0), p)

	sq := NewSquare(geo.NewBox(geo.NewPoint(0, 0), 160, 100))
	assert.Equal(t, SQUARE_TYPE, sq.GetType())
	assert.Equal(t, geo.NewPoint(80, 50), sq.Center())
	assert.Equal(t, geo.NewPoint(160, 50), sq.BorderIntersection(geo.NewPoint(480, 50)))
	assert.Equal(t, geo.NewPoint(80, 0), sq.BorderIntersection(geo.NewPoint(80, -300)))
	// target on the center
	assert.Equal(t, geo.NewPoint(80, 50), sq.BorderIntersection(geo.NewPoint(80, 50)))
}
