package geo

import (
	"math"
)

type Box struct {
	TopLeft Point   `json:"topLeft"`
	Width   float64 `json:"width"`
	Height  float64 `json:"height"`
}

func NewBox(tl Point, width, height float64) Box {
	return Box{
		TopLeft: tl,
		Width:   width,
		Height:  height,
	}
}

// NewBoxAt returns the box of the given size centered on center.
func NewBoxAt(center Point, width, height float64) Box {
	return NewBox(NewPoint(center.X-width/2, center.Y-height/2), width, height)
}

func (b Box) Center() Point {
	return NewPoint(b.TopLeft.X+b.Width/2, b.TopLeft.Y+b.Height/2)
}

func (b Box) Left() float64   { return b.TopLeft.X }
func (b Box) Top() float64    { return b.TopLeft.Y }
func (b Box) Right() float64  { return b.TopLeft.X + b.Width }
func (b Box) Bottom() float64 { return b.TopLeft.Y + b.Height }

// Corners returns the four corners clockwise from the top left.
func (b Box) Corners() Points {
	return Points{
		b.TopLeft,
		NewPoint(b.Right(), b.Top()),
		NewPoint(b.Right(), b.Bottom()),
		NewPoint(b.Left(), b.Bottom()),
	}
}

// Union returns the smallest box enclosing both b and b2.
func (b Box) Union(b2 Box) Box {
	left := math.Min(b.Left(), b2.Left())
	top := math.Min(b.Top(), b2.Top())
	right := math.Max(b.Right(), b2.Right())
	bottom := math.Max(b.Bottom(), b2.Bottom())
	return NewBox(NewPoint(left, top), right-left, bottom-top)
}

// RectangleBorderIntersection returns where the ray center -> target leaves box.
//
// Each axis contributes the parameter t at which the ray reaches that axis' edge, infinite
// when the ray does not move along the axis, and the smaller t wins. When center is the
// middle of the box this is halfExtent/|delta| per axis.
// center == target, or a ray that cannot reach the border, returns center.
func RectangleBorderIntersection(center, target Point, box Box) Point {
	dx := target.X - center.X
	dy := target.Y - center.Y
	if dx == 0 && dy == 0 {
		return center
	}

	tx := math.Inf(1)
	if dx > 0 {
		tx = (box.Right() - center.X) / dx
	} else if dx < 0 {
		tx = (box.Left() - center.X) / dx
	}
	ty := math.Inf(1)
	if dy > 0 {
		ty = (box.Bottom() - center.Y) / dy
	} else if dy < 0 {
		ty = (box.Top() - center.Y) / dy
	}

	t := math.Min(tx, ty)
	if t < 0 || math.IsNaN(t) || math.IsInf(t, 0) {
		return center
	}
	return NewPoint(center.X+dx*t, center.Y+dy*t)
}
