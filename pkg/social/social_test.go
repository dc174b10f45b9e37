package social

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadPersons(t *testing.T) {
	src := `[
		{"id": 1, "name": "Anna", "age": 11, "relations": [
			{"name": "Bram", "domain": "School", "frequency": "dagelijks"}
		]},
		{"id": 2, "name": "Bram", "relations": []}
	]`
	persons, err := LoadPersons(strings.NewReader(src))
	require.NoError(t, err)
	require.Len(t, persons, 2)
	assert.Equal(t, "Anna", persons[0].Name)
	assert.Equal(t, 11, persons[0].Age)
	require.Len(t, persons[0].Relations, 1)
	assert.Equal(t, "School", persons[0].Relations[0].Domain)
}

func TestBuildTables(t *testing.T) {
	persons := []Person{
		{ID: 1, Name: "Anna", Relations: []Relation{
			{Name: "Bram", Domain: "School", Frequency: "dagelijks"},
			{Name: "Cas", Domain: "Sport", Frequency: "1x per week"},
		}},
		{ID: 2, Name: "Bram", Relations: []Relation{
			{Name: "Anna", Domain: "Familie", Frequency: "Bijna nooit"},
		}},
	}
	nodes, links := BuildTables(persons)

	// One node per distinct name, ids in first-seen order. Cas appears
	// only as a relation and still gets a node.
	require.Equal(t, 3, nodes.Len())
	for i, want := range []string{"Anna", "Bram", "Cas"} {
		id, _ := nodes.Row(i).Str("id")
		text, _ := nodes.Row(i).Str("text")
		assert.Equal(t, []string{"0", "1", "2"}[i], id)
		assert.Equal(t, want, text)
	}

	require.Equal(t, 3, links.Len())
	r := links.Row(0)
	from, _ := r.Str("from")
	to, _ := r.Str("to")
	clr, _ := r.Str("color")
	value, _ := r.Num("value")
	title, _ := r.Str("title")
	assert.Equal(t, "0", from)
	assert.Equal(t, "1", to)
	assert.Equal(t, "darkviolet", clr, "School maps to its legend color")
	assert.Equal(t, 365.0, value, "dagelijks weighs 365 contacts a year")
	assert.Equal(t, "School\ndagelijks", title)

	r = links.Row(2)
	clr, _ = r.Str("color")
	value, _ = r.Num("value")
	assert.Equal(t, "magenta", clr)
	assert.Equal(t, 1.0, value)
}

func TestBuildTablesUnknownDomain(t *testing.T) {
	persons := []Person{
		{ID: 1, Name: "Anna", Relations: []Relation{
			{Name: "Bram", Domain: "Gamen", Frequency: "nooit gehoord"},
		}},
	}
	_, links := BuildTables(persons)
	require.Equal(t, 1, links.Len())
	clr, _ := links.Row(0).Str("color")
	value, _ := links.Row(0).Num("value")
	assert.Equal(t, "black", clr, "unknown domain falls back to black")
	assert.Equal(t, 0.0, value, "unknown frequency weighs zero")
}
