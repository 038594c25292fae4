// Package catalog holds the static list of known ecosystem actors and
// resolves free-text organization names against it.
package catalog

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"

	_ "embed"
)

//go:embed data/actors.json
var defaultActorsJSON []byte

// Category classifies an actor.
type Category string

const (
	CategoryOrganization Category = "Organization"
	CategoryUniversity   Category = "University"
	CategoryCompany      Category = "Company"
	CategoryStartup      Category = "Startup"
	CategoryGovernment   Category = "Government"
	CategoryNetwork      Category = "Network"
)

// Actor is one known organization with its aliases.
type Actor struct {
	Name     string   `json:"name"`
	Category Category `json:"category"`
	Aliases  []string `json:"aliases,omitempty"`
}

type actorsFile struct {
	Actors []Actor `json:"actors"`
}

// Catalog is an immutable lookup table of known actors. Built once, safe for
// concurrent reads.
type Catalog struct {
	actors []Actor

	// normalized name or alias -> index into actors
	index map[string]int

	// entries sorted lexicographically by key, for deterministic fuzzy scans
	entries []entry
}

type entry struct {
	key   string // normalized name or alias
	actor int
}

// Normalize lowercases a name and collapses runs of whitespace. All catalog
// comparisons happen in this space.
func Normalize(name string) string {
	return strings.ToLower(strings.Join(strings.Fields(name), " "))
}

// New builds a catalog from actors. Canonical names must be unique under
// normalized comparison, and no alias may collide with another actor's name
// or alias.
func New(actors []Actor) (*Catalog, error) {
	c := &Catalog{
		actors: actors,
		index:  make(map[string]int),
	}

	for i, a := range actors {
		key := Normalize(a.Name)
		if key == "" {
			return nil, fmt.Errorf("catalog: actor %d has an empty name", i)
		}
		if prev, ok := c.index[key]; ok {
			return nil, fmt.Errorf("catalog: name %q collides with %q", a.Name, actors[prev].Name)
		}
		c.index[key] = i
		c.entries = append(c.entries, entry{key: key, actor: i})

		for _, alias := range a.Aliases {
			ak := Normalize(alias)
			if ak == "" || ak == key {
				continue
			}
			if prev, ok := c.index[ak]; ok && prev != i {
				return nil, fmt.Errorf("catalog: alias %q of %q collides with %q", alias, a.Name, actors[prev].Name)
			}
			if _, ok := c.index[ak]; !ok {
				c.index[ak] = i
				c.entries = append(c.entries, entry{key: ak, actor: i})
			}
		}
	}

	sort.Slice(c.entries, func(i, j int) bool { return c.entries[i].key < c.entries[j].key })
	return c, nil
}

// Default returns the embedded EIT ecosystem catalog.
func Default() (*Catalog, error) {
	return parse(defaultActorsJSON)
}

// Load reads a catalog from a JSON file.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read actors file %q: %w", path, err)
	}
	return parse(data)
}

func parse(data []byte) (*Catalog, error) {
	var f actorsFile
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse actors JSON: %w", err)
	}
	return New(f.Actors)
}

// Len is the number of actors (aliases not counted).
func (c *Catalog) Len() int { return len(c.actors) }

// All returns the actors in insertion order.
func (c *Catalog) All() []Actor { return c.actors }

// Names returns all canonical actor names in insertion order.
func (c *Catalog) Names() []string {
	names := make([]string, len(c.actors))
	for i, a := range c.actors {
		names[i] = a.Name
	}
	return names
}

// ActorsIn returns the actors of one category.
func (c *Catalog) ActorsIn(cat Category) []Actor {
	var out []Actor
	for _, a := range c.actors {
		if a.Category == cat {
			out = append(out, a)
		}
	}
	return out
}

// Contains reports whether name is a known actor name or alias under
// normalized comparison.
func (c *Catalog) Contains(name string) bool {
	_, ok := c.index[Normalize(name)]
	return ok
}

// Search returns canonical names containing the query as a case-insensitive
// substring.
func (c *Catalog) Search(query string) []string {
	q := Normalize(query)
	var out []string
	for _, a := range c.actors {
		if strings.Contains(Normalize(a.Name), q) {
			out = append(out, a.Name)
		}
	}
	return out
}
