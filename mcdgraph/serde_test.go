package mcdgraph_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"oss.terrastruct.com/mcd/mcdgraph"
)

const sample = `{
  "entities": [
    {"id": 1, "name": "Client", "x": 0, "y": 0, "width": 160, "height": 100,
     "attributes": [{"id": "a1", "name": "id_client", "isPk": true}, {"id": "a2", "name": "nom"}]},
    {"id": "2", "name": "Commande", "x": 400, "y": 0, "width": 160, "height": 100}
  ],
  "associations": [
    {"id": "as1", "label": "passe", "x": 280, "y": 50,
     "connections": [
       {"id": "c1", "entityId": 1, "cardinality": "1"},
       {"id": "c2", "entityId": "2", "cardinality": "0..*"}
     ],
     "entityBoxX": 300,
     "unknownField": true}
  ],
  "version": 3
}`

func TestParse(t *testing.T) {
	t.Parallel()

	d, err := mcdgraph.Parse([]byte(sample))
	if err != nil {
		t.Fatal(err)
	}

	assert.Len(t, d.Entities, 2)
	assert.Equal(t, mcdgraph.ID("1"), d.Entities[0].ID)
	assert.Equal(t, mcdgraph.ID("2"), d.Entities[1].ID)
	assert.Equal(t, []*mcdgraph.Attribute{
		{ID: "a1", Name: "id_client", IsPK: true},
		{ID: "a2", Name: "nom"},
	}, d.Entities[0].Attributes)
	assert.NotNil(t, d.Entities[1].Attributes)
	assert.Len(t, d.Entities[1].Attributes, 0)

	a := d.Association("as1")
	if !assert.NotNil(t, a) {
		return
	}
	assert.Equal(t, 2, a.Arity())
	assert.Equal(t, mcdgraph.ID("1"), a.Connections[0].EntityID)
	assert.Equal(t, "0..*", a.Connections[1].Cardinality)
	assert.NotNil(t, a.EntityBoxX)
	assert.Equal(t, 300., *a.EntityBoxX)
	assert.Nil(t, a.EntityBoxY)
	assert.False(t, a.IsLabelMovable)
	assert.NotNil(t, a.Attributes)

	assert.Equal(t, "Commande", d.Entity("2").Name)
	assert.Nil(t, d.Entity("3"))
	assert.Nil(t, d.Association("nope"))
}

func TestParseFormatErrors(t *testing.T) {
	t.Parallel()

	tca := []struct {
		name string
		text string
		err  string
	}{
		{name: "not_json", text: `{`, err: "invalid diagram format"},
		{name: "array", text: `[]`, err: "invalid diagram format"},
		{name: "null", text: `null`, err: "document must be an object"},
		{name: "missing_entities", text: `{"associations": []}`, err: `"entities" must be an array`},
		{name: "entities_object", text: `{"entities": {}, "associations": []}`, err: `"entities" must be an array`},
		{name: "associations_null", text: `{"entities": [], "associations": null}`, err: `"associations" must be an array`},
		{name: "associations_string", text: `{"entities": [], "associations": "x"}`, err: `"associations" must be an array`},
		{name: "bad_entity", text: `{"entities": [{"x": "left"}], "associations": []}`, err: "invalid diagram format"},
		{name: "null_entity", text: `{"entities": [null], "associations": []}`, err: "entities[0] is null"},
		{name: "bad_id", text: `{"entities": [{"id": true}], "associations": []}`, err: "id must be a string or a number"},
	}
	for _, tc := range tca {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			d, err := mcdgraph.Parse([]byte(tc.text))
			assert.Nil(t, d)
			if assert.Error(t, err) {
				assert.True(t, errors.Is(err, mcdgraph.ErrFormat), err.Error())
				assert.Contains(t, err.Error(), tc.err)
			}
		})
	}
}

func TestMarshal(t *testing.T) {
	t.Parallel()

	d, err := mcdgraph.Parse([]byte(sample))
	if err != nil {
		t.Fatal(err)
	}
	b, err := mcdgraph.Marshal(d)
	if err != nil {
		t.Fatal(err)
	}
	s := string(b)

	assert.True(t, strings.HasPrefix(s, "{\n  \"entities\": [\n    {\n      \"id\": \"1\","), s)
	assert.True(t, strings.HasSuffix(s, "}\n"))
	assert.Contains(t, s, `"entityBoxX": 300`)
	assert.NotContains(t, s, "entityBoxY")
	assert.NotContains(t, s, "isLabelMovable")
	assert.NotContains(t, s, "entityName")
	assert.NotContains(t, s, "unknownField")
	assert.Contains(t, s, `"attributes": []`)

	d2, err := mcdgraph.Parse(b)
	if err != nil {
		t.Fatal(err)
	}
	assert.Equal(t, d, d2)

	b, err = mcdgraph.Marshal(&mcdgraph.Diagram{})
	assert.NoError(t, err)
	assert.Equal(t, "{\n  \"entities\": [],\n  \"associations\": []\n}\n", string(b))
}
