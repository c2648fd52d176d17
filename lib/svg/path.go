package svg

import (
	"fmt"
	"math"
	"strings"

	"oss.terrastruct.com/mcd/lib/geo"
)

type SvgPathContext struct {
	Commands []string
	Start    geo.Point
	Current  geo.Point
	TopLeft  geo.Point
	ScaleX   float64
	ScaleY   float64
}

// TODO probably use math.Big
func chopPrecision(f float64) float64 {
	return math.Round(f*10000) / 10000
}

func NewSVGPathContext(tl geo.Point, sx, sy float64) *SvgPathContext {
	return &SvgPathContext{TopLeft: tl, ScaleX: sx, ScaleY: sy}
}

func (c *SvgPathContext) Relative(base geo.Point, dx, dy float64) geo.Point {
	return geo.NewPoint(chopPrecision(base.X+c.ScaleX*dx), chopPrecision(base.Y+c.ScaleY*dy))
}
func (c *SvgPathContext) Absolute(x, y float64) geo.Point {
	return c.Relative(c.TopLeft, x, y)
}

func (c *SvgPathContext) StartAt(p geo.Point) {
	p = geo.NewPoint(chopPrecision(p.X), chopPrecision(p.Y))
	c.Start = p
	c.Commands = append(c.Commands, fmt.Sprintf("M %v %v", p.X, p.Y))
	c.Current = p
}

func (c *SvgPathContext) Z() {
	c.Commands = append(c.Commands, "Z")
	c.Current = c.Start
}

func (c *SvgPathContext) L(isLowerCase bool, x, y float64) {
	var endPoint geo.Point
	if isLowerCase {
		endPoint = c.Relative(c.Current, x, y)
	} else {
		endPoint = c.Absolute(x, y)
	}
	c.Commands = append(c.Commands, fmt.Sprintf("L %v %v", endPoint.X, endPoint.Y))
	c.Current = endPoint
}

func (c *SvgPathContext) PathData() string {
	return strings.Join(c.Commands, " ")
}

// PolylineData returns the path data of the open polyline through points.
func PolylineData(points ...geo.Point) string {
	if len(points) == 0 {
		return ""
	}
	pc := NewSVGPathContext(geo.NewPoint(0, 0), 1, 1)
	pc.StartAt(points[0])
	for _, p := range points[1:] {
		pc.L(false, p.X, p.Y)
	}
	return pc.PathData()
}

// PolygonData returns the path data of the closed ring through points.
func PolygonData(points ...geo.Point) string {
	if len(points) == 0 {
		return ""
	}
	pc := NewSVGPathContext(geo.NewPoint(0, 0), 1, 1)
	pc.StartAt(points[0])
	for _, p := range points[1:] {
		pc.L(false, p.X, p.Y)
	}
	pc.Z()
	return pc.PathData()
}

// GetStrokeDashAttributes scales the dash pattern with the stroke so thick dashed lines
// keep the same look as thin ones.
func GetStrokeDashAttributes(strokeWidth, dashGapSize float64) (float64, float64) {
	// as the stroke width gets thicker, the dash gap gets smaller
	scale := math.Log10(-0.6*strokeWidth+10.6)*0.5 + 0.5
	scaledDashSize := strokeWidth * dashGapSize
	scaledGapSize := scale * scaledDashSize
	return scaledDashSize, scaledGapSize
}
