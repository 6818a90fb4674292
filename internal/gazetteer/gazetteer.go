// Package gazetteer maps Philippine place names to island groups.
//
// A Gazetteer is built once from reference rows and is read-only afterwards,
// so one value can be shared by every parser and goroutine.
package gazetteer

import (
	"strings"

	"github.com/jm-RBT/Pagasa-WebScraper/internal/domain"
)

// Location types with their build priority. Unknown types rank below all of them.
const (
	TypeProvince     = "Province"
	TypeRegion       = "Region"
	TypeCity         = "City"
	TypeMunicipality = "Municipality"
	TypeBarangay     = "Barangay"
)

var typePriority = map[string]int{
	TypeProvince:     5,
	TypeRegion:       4,
	TypeCity:         3,
	TypeMunicipality: 2,
	TypeBarangay:     1,
}

// Entry is one reference row.
type Entry struct {
	Name        string
	Type        string
	IslandGroup string
}

// Classifier resolves a place name to an island group.
type Classifier interface {
	Classify(name string) (domain.Region, bool)
}

type record struct {
	priority int
	region   domain.Region
	valid    bool
}

// Gazetteer is an immutable name index.
type Gazetteer struct {
	byName map[string]record
	// order is first-seen order of lowercased names; the substring scan walks it.
	order []string
}

// New builds a gazetteer. When several rows share a lowercased name, the row
// with the highest type priority wins; on equal priority the first row wins.
func New(entries []Entry) *Gazetteer {
	g := &Gazetteer{byName: make(map[string]record, len(entries))}
	for _, e := range entries {
		key := strings.ToLower(strings.TrimSpace(e.Name))
		if key == "" {
			continue
		}
		region, ok := domain.ParseRegion(e.IslandGroup)
		rec := record{priority: typePriority[strings.TrimSpace(e.Type)], region: region, valid: ok}

		cur, seen := g.byName[key]
		if !seen {
			g.order = append(g.order, key)
			g.byName[key] = rec
			continue
		}
		if rec.priority > cur.priority {
			g.byName[key] = rec
		}
	}
	return g
}

// Len returns the number of distinct names.
func (g *Gazetteer) Len() int { return len(g.order) }

// Classify resolves name in three steps: exact match, then a substring scan
// over known names in first-seen order (either direction, first hit wins),
// then the fixed administrative region table.
func (g *Gazetteer) Classify(name string) (domain.Region, bool) {
	key := strings.ToLower(strings.TrimSpace(name))
	if key == "" {
		return "", false
	}

	if rec, ok := g.byName[key]; ok {
		return rec.region, rec.valid
	}

	for _, known := range g.order {
		if strings.Contains(known, key) || strings.Contains(key, known) {
			rec := g.byName[known]
			return rec.region, rec.valid
		}
	}

	return classifyAdministrativeRegion(key)
}

// IsValidName reports whether loc is a known name or contains a word that is
// one. An empty gazetteer accepts everything.
func (g *Gazetteer) IsValidName(loc string) bool {
	if len(g.order) == 0 {
		return true
	}
	key := strings.ToLower(strings.TrimSpace(loc))
	if key == "" {
		return false
	}
	if _, ok := g.byName[key]; ok {
		return true
	}
	for _, word := range strings.Fields(key) {
		if _, ok := g.byName[word]; ok {
			return true
		}
	}
	return false
}
