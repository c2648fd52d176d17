package geo

type Segment struct {
	Start Point `json:"from"`
	End   Point `json:"to"`
}

func NewSegment(from, to Point) Segment {
	return Segment{Start: from, End: to}
}
