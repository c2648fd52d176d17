package geo

// Route is an open polyline.
type Route []Point

// Segments returns each leg of the route in order.
func (route Route) Segments() []Segment {
	if len(route) < 2 {
		return nil
	}
	segments := make([]Segment, 0, len(route)-1)
	for i := 0; i < len(route)-1; i++ {
		segments = append(segments, NewSegment(route[i], route[i+1]))
	}
	return segments
}
