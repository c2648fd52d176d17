package mcdlayout_test

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"oss.terrastruct.com/mcd/lib/textmeasure"
	"oss.terrastruct.com/mcd/mcdgraph"
	"oss.terrastruct.com/mcd/mcdlayout"
)

func TestEntityDimensions(t *testing.T) {
	t.Parallel()

	ruler := textmeasure.NewFallbackRuler()

	tca := []struct {
		name   string
		entity *mcdgraph.Entity
		exp    mcdlayout.Dimensions
	}{
		{
			name:   "requested",
			entity: &mcdgraph.Entity{Name: "A", Width: 160, Height: 100},
			exp:    mcdlayout.Dimensions{Width: 160, Height: 100},
		},
		{
			name:   "minimums",
			entity: &mcdgraph.Entity{Name: "A"},
			exp:    mcdlayout.Dimensions{Width: 120, Height: 40},
		},
		{
			name: "rows",
			entity: &mcdgraph.Entity{
				Name: "Client",
				Attributes: []*mcdgraph.Attribute{
					{ID: "1", Name: "id_client", IsPK: true},
					{ID: "2", Name: "nom"},
				},
			},
			exp: mcdlayout.Dimensions{Width: 120, Height: 88},
		},
		{
			name: "long_attribute",
			entity: &mcdgraph.Entity{
				Name:       "Commande",
				Width:      160,
				Attributes: []*mcdgraph.Attribute{{ID: "1", Name: "adresse_de_livraison_principale"}},
			},
			exp: mcdlayout.Dimensions{Width: 268, Height: 64},
		},
		{
			name:   "long_name",
			entity: &mcdgraph.Entity{Name: "LigneDeCommandeFournisseur"},
			exp:    mcdlayout.Dimensions{Width: 228, Height: 40},
		},
	}
	for _, tc := range tca {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.exp, mcdlayout.EntityDimensions(tc.entity, nil, ruler))
		})
	}
}

func TestAttributeBoxDimensions(t *testing.T) {
	t.Parallel()

	a := &mcdgraph.Association{
		Label:      "passe",
		EntityName: "  ",
		Attributes: []*mcdgraph.Attribute{{ID: "q", Name: "quantite"}},
	}
	assert.Equal(t, mcdlayout.Dimensions{Width: 140, Height: 64}, mcdlayout.AttributeBoxDimensions(a, nil, nil))

	a.EntityName = "Ligne de commande fournisseur"
	assert.Equal(t, mcdlayout.Dimensions{Width: 252, Height: 64}, mcdlayout.AttributeBoxDimensions(a, nil, nil))
}

func TestDimensionMonotonicity(t *testing.T) {
	t.Parallel()

	realRuler, err := textmeasure.NewRuler()
	if err != nil {
		t.Fatal(err)
	}
	rulers := map[string]textmeasure.TextRuler{
		"fallback": textmeasure.NewFallbackRuler(),
		"truetype": realRuler,
	}

	for name, ruler := range rulers {
		ruler := ruler
		t.Run(name, func(t *testing.T) {
			e := &mcdgraph.Entity{Name: "Produit", Width: 100, Height: 90}
			prev := mcdlayout.EntityDimensions(e, nil, ruler)
			for i := 0; i < 12; i++ {
				e.Attributes = append(e.Attributes, &mcdgraph.Attribute{
					ID:   mcdgraph.ID(fmt.Sprint(i)),
					Name: "attr",
					IsPK: i == 0,
				})
				dims := mcdlayout.EntityDimensions(e, nil, ruler)
				assert.GreaterOrEqual(t, dims.Height, prev.Height)
				assert.GreaterOrEqual(t, dims.Width, prev.Width)
				prev = dims
			}

			for i := 0; i < 40; i++ {
				e.Attributes = append(e.Attributes, &mcdgraph.Attribute{
					ID:   mcdgraph.ID(fmt.Sprintf("long%d", i)),
					Name: strings.Repeat("w", i),
				})
				dims := mcdlayout.EntityDimensions(e, nil, ruler)
				assert.GreaterOrEqual(t, dims.Width, prev.Width)
				prev = dims
			}
			assert.Greater(t, prev.Width, 120.)
		})
	}
}
