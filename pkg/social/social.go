// Package social adapts person/relation records, as collected by the
// survey application, into the node and link tables the visualization
// engine consumes.
package social

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/rdvisser/socionet/pkg/vistable"
)

// Person is one surveyed child and the relations they reported.
type Person struct {
	ID        int64      `json:"id"`
	Name      string     `json:"name"`
	Age       int        `json:"age,omitempty"`
	Sex       string     `json:"sex,omitempty"`
	Relations []Relation `json:"relations"`
}

// Relation names a friend plus the social domain the contact happens in
// and how often.
type Relation struct {
	Name      string `json:"name"`
	Domain    string `json:"domain"`
	Frequency string `json:"frequency"`
}

// DomainColors maps each social domain to its legend color. Unknown
// domains fall back to black.
var DomainColors = map[string]string{
	"":                  "black",
	"Buitenspelen":      "red",
	"Buurtactiviteiten": "blue",
	"Cultuur/kunst":     "green",
	"Familie":           "magenta",
	"Opvang":            "brown",
	"Religie":           "orange",
	"School":            "darkviolet",
	"Sport":             "limegreen",
}

// Frequencies maps a contact-frequency answer to contacts per year, the
// scalar the engine scales link widths from.
var Frequencies = map[string]int{
	"":                0,
	"Bijna nooit":     1,
	"1x in 3 maanden": 4,
	"1x per maand":    12,
	"1x per week":     52,
	"2x per week":     104,
	"dagelijks":       365,
}

// LoadPersons reads a JSON array of persons.
func LoadPersons(r io.Reader) ([]Person, error) {
	var persons []Person
	if err := json.NewDecoder(r).Decode(&persons); err != nil {
		return nil, fmt.Errorf("decoding persons: %w", err)
	}
	return persons, nil
}

// BuildTables folds persons and their relations into a node table (one
// node per distinct name, ids assigned in first-seen order) and a link
// table colored by domain and weighted by contact frequency.
func BuildTables(persons []Person) (nodes, links *vistable.Table) {
	nodes = vistable.New("id", "text")
	links = vistable.New("from", "to", "color", "value", "style", "title")

	ids := make(map[string]int)
	addPerson := func(name string) int {
		if id, ok := ids[name]; ok {
			return id
		}
		id := len(ids)
		ids[name] = id
		nodes.AddRow(vistable.Row{"id": float64(id), "text": name})
		return id
	}

	for _, person := range persons {
		personID := addPerson(person.Name)
		for _, rel := range person.Relations {
			relID := addPerson(rel.Name)
			color, ok := DomainColors[rel.Domain]
			if !ok {
				color = "black"
			}
			links.AddRow(vistable.Row{
				"from":  float64(personID),
				"to":    float64(relID),
				"color": color,
				"value": float64(Frequencies[rel.Frequency]),
				"style": "line",
				"title": fmt.Sprintf("%s\n%s", rel.Domain, rel.Frequency),
			})
		}
	}
	return nodes, links
}
