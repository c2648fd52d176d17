package mcdlayout

import (
	"oss.terrastruct.com/mcd/mcdgraph"
	"oss.terrastruct.com/mcd/mcdtarget"
)

// Classify picks the drawing mode of a. The first matching rule wins:
//  1. two legs reaching the same entity: SelfRef, whether the label is movable or not
//  2. two legs reaching distinct entities with a locked label: LockedBinary
//  3. two legs reaching distinct entities with a movable label: MovableBinary
//  4. anything else, including binaries with a dangling leg: Polygon
func Classify(a *mcdgraph.Association, entities map[mcdgraph.ID]*mcdgraph.Entity) mcdtarget.Mode {
	if a.Arity() != 2 {
		return mcdtarget.Polygon
	}
	e1, ok1 := entities[a.Connections[0].EntityID]
	e2, ok2 := entities[a.Connections[1].EntityID]
	if !ok1 || !ok2 {
		return mcdtarget.Polygon
	}
	if e1.ID == e2.ID {
		return mcdtarget.SelfRef
	}
	if a.IsLabelMovable {
		return mcdtarget.MovableBinary
	}
	return mcdtarget.LockedBinary
}

type pairKey struct {
	a, b mcdgraph.ID
}

func newPairKey(id1, id2 mcdgraph.ID) pairKey {
	if id2 < id1 {
		id1, id2 = id2, id1
	}
	return pairKey{a: id1, b: id2}
}

// siblings is the rank of an association among the associations sharing its slot, and how
// many share it.
type siblings struct {
	rank  int
	total int
}

// classified is the outcome of the single pass over all associations: the mode of each and
// its rank among parallel lines or loops.
type classified struct {
	modes []mcdtarget.Mode
	// pairs holds, for each locked binary, its rank among the locked binaries joining the
	// same unordered pair of entities.
	pairs map[int]siblings
	// loops holds, for each self reference, its rank among the self references on the same
	// entity.
	loops map[int]siblings
}

func classifyAll(associations []*mcdgraph.Association, entities map[mcdgraph.ID]*mcdgraph.Entity) classified {
	c := classified{
		modes: make([]mcdtarget.Mode, len(associations)),
		pairs: make(map[int]siblings),
		loops: make(map[int]siblings),
	}

	pairRanks := make(map[pairKey][]int)
	loopRanks := make(map[mcdgraph.ID][]int)

	for i, a := range associations {
		mode := Classify(a, entities)
		c.modes[i] = mode

		switch mode {
		case mcdtarget.LockedBinary:
			k := newPairKey(a.Connections[0].EntityID, a.Connections[1].EntityID)
			pairRanks[k] = append(pairRanks[k], i)
		case mcdtarget.SelfRef:
			id := a.Connections[0].EntityID
			loopRanks[id] = append(loopRanks[id], i)
		}
	}

	for _, group := range pairRanks {
		for rank, i := range group {
			c.pairs[i] = siblings{rank: rank, total: len(group)}
		}
	}
	for _, group := range loopRanks {
		for rank, i := range group {
			c.loops[i] = siblings{rank: rank, total: len(group)}
		}
	}
	return c
}

// FanoutOffset is how far the rank-th of total parallel lines is moved off the center line.
// Offsets are symmetric around zero, spacing apart.
func FanoutOffset(rank, total int, spacing float64) float64 {
	return (float64(rank) - float64(total-1)/2) * spacing
}
