// Package catalog holds the static translation tables: epicenter and place
// names, plus the fixed domain phrases (tsunami vocabulary) that appear in
// agency feeds. Lookups are exact-match only; anything the catalog does not
// know falls through to the tiered resolver's later stages.
package catalog

import (
	"embed"
	"encoding/json"
	"fmt"
)

//go:embed data/locations.json data/phrases.json
var assets embed.FS

// Table maps source text -> locale code -> translated text.
type Table map[string]map[string]string

type Catalog struct {
	locations Table
	phrases   Table
}

// Load builds the catalog from the embedded assets. The tables are fixed
// at build time; a load failure means a broken asset and is fatal to the
// caller.
func Load() (*Catalog, error) {
	locations, err := loadTable("data/locations.json")
	if err != nil {
		return nil, fmt.Errorf("load location table: %w", err)
	}
	phrases, err := loadTable("data/phrases.json")
	if err != nil {
		return nil, fmt.Errorf("load phrase table: %w", err)
	}
	return &Catalog{locations: locations, phrases: phrases}, nil
}

// New builds a catalog from in-memory tables. Intended for tests.
func New(locations, phrases Table) *Catalog {
	if locations == nil {
		locations = Table{}
	}
	if phrases == nil {
		phrases = Table{}
	}
	return &Catalog{locations: locations, phrases: phrases}
}

// Lookup returns the translation of sourceText into targetLocale, checking
// the location corpus first and the phrase corpus second. Pure function
// over immutable data.
func (c *Catalog) Lookup(sourceText, targetLocale string) (string, bool) {
	if byLocale, ok := c.locations[sourceText]; ok {
		if translated, ok := byLocale[targetLocale]; ok {
			return translated, true
		}
	}
	if byLocale, ok := c.phrases[sourceText]; ok {
		if translated, ok := byLocale[targetLocale]; ok {
			return translated, true
		}
	}
	return "", false
}

// LocationCount returns the number of place names in the static table.
func (c *Catalog) LocationCount() int {
	return len(c.locations)
}

// Size returns the total number of source entries across both corpora.
func (c *Catalog) Size() int {
	return len(c.locations) + len(c.phrases)
}

func loadTable(name string) (Table, error) {
	data, err := assets.ReadFile(name)
	if err != nil {
		return nil, err
	}

	var table Table
	if err := json.Unmarshal(data, &table); err != nil {
		return nil, err
	}
	return table, nil
}
