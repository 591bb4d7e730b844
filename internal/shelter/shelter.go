// Package shelter serves the evacuation shelter registry: a static
// embedded dataset searched by distance from the caller's position.
package shelter

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"math"
	"sort"
)

// Shelter is one evacuation site. Distance is filled in per query.
type Shelter struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	Address    string   `json:"address"`
	Latitude   float64  `json:"latitude"`
	Longitude  float64  `json:"longitude"`
	Distance   float64  `json:"distance,omitempty"`
	Capacity   int      `json:"capacity,omitempty"`
	Facilities []string `json:"facilities"`
	IsOpen     bool     `json:"is_open"`
	Phone      string   `json:"phone,omitempty"`
	Types      []string `json:"types"`
}

//go:embed data/shelters.json
var sheltersJSON []byte

type Registry struct {
	shelters []Shelter
}

// Load builds the registry from the embedded dataset.
func Load() (*Registry, error) {
	var shelters []Shelter
	if err := json.Unmarshal(sheltersJSON, &shelters); err != nil {
		return nil, fmt.Errorf("load shelter dataset: %w", err)
	}
	return &Registry{shelters: shelters}, nil
}

// NewRegistry builds a registry from in-memory shelters. Intended for tests.
func NewRegistry(shelters []Shelter) *Registry {
	return &Registry{shelters: shelters}
}

// Nearby returns shelters within radiusKM of the position, nearest
// first, capped at limit. A non-empty disasterType keeps only shelters
// designated for that disaster.
func (r *Registry) Nearby(lat, lon, radiusKM float64, limit int, disasterType string) []Shelter {
	if radiusKM <= 0 {
		radiusKM = 5.0
	}
	if limit <= 0 {
		limit = 20
	}

	var nearby []Shelter
	for _, s := range r.shelters {
		if disasterType != "" && !supports(s, disasterType) {
			continue
		}
		distance := haversineKM(lat, lon, s.Latitude, s.Longitude)
		if distance > radiusKM {
			continue
		}
		s.Distance = math.Round(distance*100) / 100
		nearby = append(nearby, s)
	}

	sort.Slice(nearby, func(i, j int) bool { return nearby[i].Distance < nearby[j].Distance })
	if len(nearby) > limit {
		nearby = nearby[:limit]
	}
	return nearby
}

// DisasterTypes returns the distinct disaster types across the
// registry, sorted.
func (r *Registry) DisasterTypes() []string {
	seen := make(map[string]bool)
	for _, s := range r.shelters {
		for _, t := range s.Types {
			seen[t] = true
		}
	}
	types := make([]string, 0, len(seen))
	for t := range seen {
		types = append(types, t)
	}
	sort.Strings(types)
	return types
}

// Len returns the number of registered shelters.
func (r *Registry) Len() int {
	return len(r.shelters)
}

func supports(s Shelter, disasterType string) bool {
	for _, t := range s.Types {
		if t == disasterType {
			return true
		}
	}
	return false
}

const earthRadiusKM = 6371.0

func haversineKM(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := radians(lat2 - lat1)
	dLon := radians(lon2 - lon1)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(radians(lat1))*math.Cos(radians(lat2))*
			math.Sin(dLon/2)*math.Sin(dLon/2)
	return earthRadiusKM * 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
}

func radians(deg float64) float64 {
	return deg * math.Pi / 180
}
