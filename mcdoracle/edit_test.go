package mcdoracle_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"oss.terrastruct.com/mcd/mcdgraph"
	"oss.terrastruct.com/mcd/mcdlayout"
	"oss.terrastruct.com/mcd/mcdoracle"
)

func testDiagram() *mcdgraph.Diagram {
	return &mcdgraph.Diagram{
		Entities: []*mcdgraph.Entity{
			{ID: "1", Name: "Client", X: 0, Y: 0, Width: 160, Height: 120, Attributes: []*mcdgraph.Attribute{
				{ID: "a", Name: "id", IsPK: true},
				{ID: "b", Name: "nom"},
				{ID: "c", Name: "prenom"},
			}},
			{ID: "2", Name: "Commande", X: 400, Y: 0, Width: 160, Height: 120},
			{ID: "3", Name: "Produit", X: 400, Y: 300, Width: 160, Height: 100},
		},
		Associations: []*mcdgraph.Association{
			{ID: "passe", Label: "passe", Connections: []*mcdgraph.Connection{
				{ID: "c1", EntityID: "1", Cardinality: "0,n"},
				{ID: "c2", EntityID: "2", Cardinality: "1,1"},
			}, Attributes: []*mcdgraph.Attribute{{ID: "d", Name: "date"}}},
			{ID: "contient", Label: "contient", X: 480, Y: 200, Connections: []*mcdgraph.Connection{
				{ID: "c3", EntityID: "2", Cardinality: "1,n"},
				{ID: "c4", EntityID: "3", Cardinality: "0,n"},
			}, IsLabelMovable: true},
			{ID: "seul", Label: "seul", Connections: []*mcdgraph.Connection{
				{ID: "c5", EntityID: "1"},
			}},
		},
	}
}

func TestMoveEntity(t *testing.T) {
	t.Parallel()

	d := testDiagram()
	before := d.Copy()

	d2, err := mcdoracle.MoveEntity(d, "2", 433, 17.5)
	assert.NoError(t, err)
	assert.Equal(t, 430., d2.Entity("2").X)
	assert.Equal(t, 20., d2.Entity("2").Y)
	assert.Equal(t, before, d)

	d2, err = mcdoracle.MoveEntity(d, "2", -14, -16)
	assert.NoError(t, err)
	assert.Equal(t, -10., d2.Entity("2").X)
	assert.Equal(t, -20., d2.Entity("2").Y)

	_, err = mcdoracle.MoveEntity(d, "nope", 0, 0)
	assert.ErrorIs(t, err, mcdoracle.ErrNotFound)
	assert.Contains(t, err.Error(), `failed to move entity "nope"`)
}

func TestMoveAssociation(t *testing.T) {
	t.Parallel()

	d := testDiagram()
	d2, err := mcdoracle.MoveAssociation(d, "contient", 501, 199)
	assert.NoError(t, err)
	assert.Equal(t, 500., d2.Association("contient").X)
	assert.Equal(t, 200., d2.Association("contient").Y)
	assert.Equal(t, 480., d.Association("contient").X)

	_, err = mcdoracle.MoveAssociation(d, "nope", 0, 0)
	assert.ErrorIs(t, err, mcdoracle.ErrNotFound)
}

func TestAttributeBox(t *testing.T) {
	t.Parallel()

	d := testDiagram()
	d2, err := mcdoracle.MoveAttributeBox(d, "passe", 312, 88)
	assert.NoError(t, err)
	a := d2.Association("passe")
	if assert.NotNil(t, a.EntityBoxX) && assert.NotNil(t, a.EntityBoxY) {
		assert.Equal(t, 310., *a.EntityBoxX)
		assert.Equal(t, 90., *a.EntityBoxY)
	}
	assert.Nil(t, d.Association("passe").EntityBoxX)

	// the pinned box survives a relayout after its association moved
	d2, err = mcdoracle.MoveEntity(d2, "1", 0, 100)
	assert.NoError(t, err)
	plan := mcdlayout.Layout(d2.Entities, d2.Associations, nil, nil)
	assert.Equal(t, 310., plan.Associations[0].AttributeBox.X)
	assert.Equal(t, 90., plan.Associations[0].AttributeBox.Y)

	d3, err := mcdoracle.ResetAttributeBox(d2, "passe")
	assert.NoError(t, err)
	assert.Nil(t, d3.Association("passe").EntityBoxX)
	assert.Nil(t, d3.Association("passe").EntityBoxY)

	_, err = mcdoracle.MoveAttributeBox(d, "contient", 0, 0)
	assert.EqualError(t, err, `failed to move attribute box of "contient": association "contient" has no attributes`)
	_, err = mcdoracle.ResetAttributeBox(d, "nope")
	assert.ErrorIs(t, err, mcdoracle.ErrNotFound)
}

func TestSetLabelMovable(t *testing.T) {
	t.Parallel()

	d := testDiagram()
	d2, err := mcdoracle.SetLabelMovable(d, "passe", true, nil)
	assert.NoError(t, err)
	a := d2.Association("passe")
	assert.True(t, a.IsLabelMovable)
	// the locked label sat at the middle of (160,60) -> (400,60)
	assert.Equal(t, 280., a.X)
	assert.Equal(t, 60., a.Y)
	assert.False(t, d.Association("passe").IsLabelMovable)

	// locking keeps the free position for later
	d3, err := mcdoracle.SetLabelMovable(d2, "passe", false, nil)
	assert.NoError(t, err)
	assert.False(t, d3.Association("passe").IsLabelMovable)
	assert.Equal(t, 280., d3.Association("passe").X)

	// already movable: untouched
	d4, err := mcdoracle.SetLabelMovable(d, "contient", true, mcdlayout.DefaultConfig())
	assert.NoError(t, err)
	assert.Equal(t, d.Association("contient"), d4.Association("contient"))

	_, err = mcdoracle.SetLabelMovable(d, "nope", true, nil)
	assert.ErrorIs(t, err, mcdoracle.ErrNotFound)
}

func TestDeleteEntity(t *testing.T) {
	t.Parallel()

	d := testDiagram()
	before := d.Copy()

	d2, err := mcdoracle.DeleteEntity(d, "1")
	assert.NoError(t, err)
	assert.Equal(t, before, d)

	assert.Nil(t, d2.Entity("1"))
	assert.Len(t, d2.Entities, 2)
	// passe keeps its other leg, seul had no other leg and is gone
	assert.Len(t, d2.Associations, 2)
	passe := d2.Association("passe")
	if assert.NotNil(t, passe) {
		assert.Len(t, passe.Connections, 1)
		assert.Equal(t, mcdgraph.ID("2"), passe.Connections[0].EntityID)
	}
	assert.Nil(t, d2.Association("seul"))
	assert.NoError(t, d2.Validate())

	_, err = mcdoracle.DeleteEntity(d, "nope")
	assert.ErrorIs(t, err, mcdoracle.ErrNotFound)
}

func TestDeleteAssociation(t *testing.T) {
	t.Parallel()

	d := testDiagram()
	d2, err := mcdoracle.DeleteAssociation(d, "contient")
	assert.NoError(t, err)
	assert.Len(t, d2.Associations, 2)
	assert.Nil(t, d2.Association("contient"))
	assert.Len(t, d.Associations, 3)

	_, err = mcdoracle.DeleteAssociation(d, "contient2")
	assert.ErrorIs(t, err, mcdoracle.ErrNotFound)
}

func TestReorderAttribute(t *testing.T) {
	t.Parallel()

	ids := func(attrs []*mcdgraph.Attribute) []mcdgraph.ID {
		var out []mcdgraph.ID
		for _, attr := range attrs {
			out = append(out, attr.ID)
		}
		return out
	}

	tca := []struct {
		name   string
		attrID mcdgraph.ID
		index  int
		exp    []mcdgraph.ID
		expErr string
	}{
		{name: "first_to_last", attrID: "a", index: 2, exp: []mcdgraph.ID{"b", "c", "a"}},
		{name: "last_to_first", attrID: "c", index: 0, exp: []mcdgraph.ID{"c", "a", "b"}},
		{name: "middle", attrID: "b", index: 0, exp: []mcdgraph.ID{"b", "a", "c"}},
		{name: "same_place", attrID: "b", index: 1, exp: []mcdgraph.ID{"a", "b", "c"}},
		{name: "out_of_range", attrID: "a", index: 3, expErr: `failed to move attribute "a" of "1" to 3: index 3 out of range [0, 3)`},
		{name: "negative", attrID: "a", index: -1, expErr: `failed to move attribute "a" of "1" to -1: index -1 out of range [0, 3)`},
	}
	for _, tc := range tca {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			d := testDiagram()
			d2, err := mcdoracle.ReorderAttribute(d, "1", tc.attrID, tc.index)
			if tc.expErr != "" {
				assert.EqualError(t, err, tc.expErr)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tc.exp, ids(d2.Entity("1").Attributes))
			assert.Equal(t, []mcdgraph.ID{"a", "b", "c"}, ids(d.Entity("1").Attributes))
		})
	}

	d, err := mcdoracle.ReorderAttribute(testDiagram(), "passe", "d", 0)
	assert.NoError(t, err)
	assert.Equal(t, []mcdgraph.ID{"d"}, ids(d.Association("passe").Attributes))

	_, err = mcdoracle.ReorderAttribute(testDiagram(), "1", "zz", 0)
	assert.ErrorIs(t, err, mcdoracle.ErrNotFound)
	_, err = mcdoracle.ReorderAttribute(testDiagram(), "zz", "a", 0)
	assert.ErrorIs(t, err, mcdoracle.ErrNotFound)
}
