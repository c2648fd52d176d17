// Package mcdlayout turns an MCD diagram into its render plan: the size of every entity and
// the lines, labels, cardinalities and attribute boxes of every association.
//
// Layout is pure. It reads the diagram and never modifies it.
package mcdlayout

import (
	"math"

	"oss.terrastruct.com/mcd/lib/geo"
	"oss.terrastruct.com/mcd/lib/shape"
	"oss.terrastruct.com/mcd/lib/textmeasure"
	"oss.terrastruct.com/mcd/mcdgraph"
	"oss.terrastruct.com/mcd/mcdtarget"
)

const (
	// Attribute box placement, relative to the association's label point.
	lockedBoxDX     = 30.
	lockedBoxDY     = 40.
	nodeBoxDY       = 60.
	movableLoopBoxY = 40.
	lockedLoopBoxDX = 30.

	// selfLoopLabelGap separates a locked loop from its label.
	selfLoopLabelGap = 8.
	// selfLoopBend is how far the corner of a movable loop leg bends, relative to the
	// length of the leg.
	selfLoopBend = 0.3
)

// layout is the read-only state shared by every association of one Layout call.
type layout struct {
	cfg      *Config
	ruler    textmeasure.TextRuler
	entities map[mcdgraph.ID]*mcdgraph.Entity
	boxes    map[mcdgraph.ID]geo.Box
}

// Layout computes the render plan of the given entities and associations.
// A nil cfg uses DefaultConfig and a nil ruler measures text with the fallback ruler.
func Layout(entities []*mcdgraph.Entity, associations []*mcdgraph.Association, cfg *Config, ruler textmeasure.TextRuler) *mcdtarget.Diagram {
	l := &layout{
		cfg:      cfg.withDefaults(),
		ruler:    rulerOrFallback(ruler),
		entities: make(map[mcdgraph.ID]*mcdgraph.Entity, len(entities)),
		boxes:    make(map[mcdgraph.ID]geo.Box, len(entities)),
	}

	diagram := mcdtarget.NewDiagram()
	for _, e := range entities {
		dims := EntityDimensions(e, l.cfg, l.ruler)
		if _, ok := l.entities[e.ID]; !ok {
			l.entities[e.ID] = e
			l.boxes[e.ID] = geo.NewBox(geo.NewPoint(e.X, e.Y), dims.Width, dims.Height)
		}
		diagram.Entities = append(diagram.Entities, mcdtarget.Entity{
			ID:           string(e.ID),
			Name:         e.Name,
			Pos:          geo.NewPoint(e.X, e.Y),
			Width:        dims.Width,
			Height:       dims.Height,
			HeaderHeight: HEADER_HEIGHT,
			RowHeight:    ROW_HEIGHT,
			Attributes:   targetAttributes(e.Attributes),
		})
	}

	c := classifyAll(associations, l.entities)
	for i, a := range associations {
		var plan mcdtarget.Association
		switch c.modes[i] {
		case mcdtarget.SelfRef:
			if a.IsLabelMovable {
				plan = l.movableSelfRef(a)
			} else {
				plan = l.lockedSelfRef(a, c.loops[i])
			}
		case mcdtarget.LockedBinary:
			plan = l.lockedBinary(a, c.pairs[i])
		default:
			plan = l.node(a, c.modes[i])
		}
		diagram.Associations = append(diagram.Associations, plan)
	}

	return diagram
}

func targetAttributes(attrs []*mcdgraph.Attribute) []mcdtarget.Attribute {
	out := make([]mcdtarget.Attribute, 0, len(attrs))
	for _, attr := range attrs {
		out = append(out, mcdtarget.Attribute{
			ID:   string(attr.ID),
			Name: attr.Name,
			IsPK: attr.IsPK,
		})
	}
	return out
}

func newPlan(a *mcdgraph.Association, mode mcdtarget.Mode) mcdtarget.Association {
	return mcdtarget.Association{
		ID:                string(a.ID),
		Label:             a.Label,
		Mode:              mode,
		Lines:             []mcdtarget.Line{},
		CardinalityPoints: geo.Points{},
		Cardinalities:     []string{},
	}
}

// lockedBinary draws a straight line between the borders of two distinct entities, moved
// sideways when other locked binaries join the same pair.
func (l *layout) lockedBinary(a *mcdgraph.Association, sib siblings) mcdtarget.Association {
	plan := newPlan(a, mcdtarget.LockedBinary)

	c1, c2 := a.Connections[0], a.Connections[1]
	box1, box2 := l.boxes[c1.EntityID], l.boxes[c2.EntityID]
	center1, center2 := box1.Center(), box2.Center()

	// The normal is taken in the pair's canonical direction so that siblings drawn from
	// either end fan out on the same axis.
	var normal geo.Vector
	if newPairKey(c1.EntityID, c2.EntityID).a == c1.EntityID {
		normal = geo.UnitNormal(center1, center2)
	} else {
		normal = geo.UnitNormal(center2, center1)
	}
	offset := FanoutOffset(sib.rank, sib.total, l.cfg.FanoutSpacing)
	shift := normal.Multiply(offset)
	p1 := center1.AddVector(shift)
	p2 := center2.AddVector(shift)

	border1 := geo.RectangleBorderIntersection(p1, p2, box1)
	border2 := geo.RectangleBorderIntersection(p2, p1, box2)

	plan.Offset = offset
	plan.Lines = append(plan.Lines, mcdtarget.NewLine(border1, border2))
	plan.LabelPoint = border1.Midpoint(border2)
	plan.CardinalityPoints = append(plan.CardinalityPoints,
		geo.PointAtDistance(border1, border2, l.cfg.CardinalityDistance),
		geo.PointAtDistance(border2, border1, l.cfg.CardinalityDistance),
	)
	plan.Cardinalities = append(plan.Cardinalities, c1.Cardinality, c2.Cardinality)

	if len(a.Attributes) > 0 {
		plan.AttributeBox = l.attributeBox(a, plan.LabelPoint,
			geo.NewPoint(plan.LabelPoint.X+lockedBoxDX, plan.LabelPoint.Y+lockedBoxDY),
		)
	}
	return plan
}

// lockedSelfRef draws a bracket leaving the right side of the entity and coming back below.
// Each further locked loop on the same entity reaches SelfLoopSpacing further out.
func (l *layout) lockedSelfRef(a *mcdgraph.Association, sib siblings) mcdtarget.Association {
	plan := newPlan(a, mcdtarget.SelfRef)

	box := l.boxes[a.Connections[0].EntityID]
	cy := box.Center().Y
	right := box.Right()
	loopOffset := float64(sib.rank) * l.cfg.SelfLoopSpacing
	outer := right + l.cfg.SelfLoopExtent + loopOffset

	route := geo.Route{
		geo.NewPoint(right, cy-l.cfg.SelfLoopHalfGap),
		geo.NewPoint(outer, cy-l.cfg.SelfLoopHalfGap),
		geo.NewPoint(outer, cy+l.cfg.SelfLoopHalfGap),
		geo.NewPoint(right, cy+l.cfg.SelfLoopHalfGap),
	}
	for _, s := range route.Segments() {
		plan.Lines = append(plan.Lines, mcdtarget.NewLine(s.Start, s.End))
	}

	labelWidth := shape.BoxWidth(a.Label)
	plan.Offset = loopOffset
	plan.LabelPoint = geo.NewPoint(outer+selfLoopLabelGap+labelWidth/2, cy)
	plan.CardinalityPoints = append(plan.CardinalityPoints,
		geo.PointAtDistance(route[0], route[1], l.cfg.CardinalityDistance),
		geo.PointAtDistance(route[3], route[2], l.cfg.CardinalityDistance),
	)
	plan.Cardinalities = append(plan.Cardinalities, a.Connections[0].Cardinality, a.Connections[1].Cardinality)

	if len(a.Attributes) > 0 {
		dims := AttributeBoxDimensions(a, l.cfg, l.ruler)
		plan.AttributeBox = l.attributeBox(a, plan.LabelPoint,
			geo.NewPoint(outer+selfLoopLabelGap+labelWidth+lockedLoopBoxDX, cy-dims.Height/2),
		)
	}
	return plan
}

// movableSelfRef draws two bent legs from the entity border to the label the user placed.
// The legs leave the border SelfLoopSpread radians either side of the direction of the
// label.
func (l *layout) movableSelfRef(a *mcdgraph.Association) mcdtarget.Association {
	plan := newPlan(a, mcdtarget.SelfRef)

	box := l.boxes[a.Connections[0].EntityID]
	center := box.Center()
	label := geo.NewPoint(a.X, a.Y)
	angle := center.VectorTo(label).Angle()
	reach := box.Width + box.Height

	for i, side := range []float64{-1, 1} {
		target := center.AddVector(geo.NewVectorFromProperties(reach, angle+side*l.cfg.SelfLoopSpread))
		border := geo.RectangleBorderIntersection(center, target, box)

		v := border.VectorTo(label)
		corner := border.AddVector(v.Multiply(0.5)).AddVector(v.Rotate90().Multiply(selfLoopBend * side))

		plan.Lines = append(plan.Lines,
			mcdtarget.NewLine(border, corner),
			mcdtarget.NewLine(corner, label),
		)
		plan.CardinalityPoints = append(plan.CardinalityPoints, geo.PointAtDistance(border, corner, l.cfg.CardinalityDistance))
		plan.Cardinalities = append(plan.Cardinalities, a.Connections[i].Cardinality)
	}

	s := shape.ForAssociation(label, a.Arity(), a.Label)
	plan.ShapeType = s.GetType()
	plan.ShapePoints = s.Points()
	plan.LabelPoint = label

	if len(a.Attributes) > 0 {
		dims := AttributeBoxDimensions(a, l.cfg, l.ruler)
		plan.AttributeBox = l.attributeBox(a, label,
			geo.NewPoint(label.X-dims.Width/2, label.Y+movableLoopBoxY),
		)
	}
	return plan
}

// node draws the association as a shape at its position with one spoke to each entity it
// reaches. Legs to missing entities are skipped.
func (l *layout) node(a *mcdgraph.Association, mode mcdtarget.Mode) mcdtarget.Association {
	plan := newPlan(a, mode)

	center := geo.NewPoint(a.X, a.Y)
	s := shape.ForAssociation(center, a.Arity(), a.Label)
	plan.ShapeType = s.GetType()
	plan.ShapePoints = s.Points()
	plan.LabelPoint = center

	for _, c := range a.Connections {
		box, ok := l.boxes[c.EntityID]
		if !ok {
			plan.SkippedConnections = append(plan.SkippedConnections, string(c.ID))
			continue
		}
		outline := shape.NewSquare(box)
		from := s.BorderIntersection(outline.Center())
		to := outline.BorderIntersection(center)

		plan.Lines = append(plan.Lines, mcdtarget.NewLine(from, to))
		plan.CardinalityPoints = append(plan.CardinalityPoints, geo.PointAtDistance(to, center, l.cfg.CardinalityDistance))
		plan.Cardinalities = append(plan.Cardinalities, c.Cardinality)
	}

	if len(a.Attributes) > 0 {
		dims := AttributeBoxDimensions(a, l.cfg, l.ruler)
		plan.AttributeBox = l.attributeBox(a, center,
			geo.NewPoint(center.X-dims.Width/2, center.Y+nodeBoxDY),
		)
	}
	return plan
}

// attributeBox places a's attribute box at def unless the user pinned it, one axis at a
// time, and connects it to anchor.
func (l *layout) attributeBox(a *mcdgraph.Association, anchor, def geo.Point) *mcdtarget.AttributeBox {
	dims := AttributeBoxDimensions(a, l.cfg, l.ruler)

	tl := def
	if a.EntityBoxX != nil && !math.IsNaN(*a.EntityBoxX) {
		tl.X = *a.EntityBoxX
	}
	if a.EntityBoxY != nil && !math.IsNaN(*a.EntityBoxY) {
		tl.Y = *a.EntityBoxY
	}
	box := geo.NewBox(tl, dims.Width, dims.Height)

	return &mcdtarget.AttributeBox{
		X:            tl.X,
		Y:            tl.Y,
		Width:        dims.Width,
		Height:       dims.Height,
		Name:         a.DisplayName(),
		HeaderHeight: HEADER_HEIGHT,
		RowHeight:    ROW_HEIGHT,
		Attributes:   targetAttributes(a.Attributes),
		AnchorLine:   mcdtarget.NewLine(anchor, shape.NewSquare(box).BorderIntersection(anchor)),
	}
}
