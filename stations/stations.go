// Package stations provides the read contract for the processed station
// registry maintained by the static GTFS import job.
package stations

import (
	"context"
	"errors"
)

// ErrNotFound is the only pipeline error that propagates to callers: an
// unknown station id is a caller contract violation, not an infra fault.
var ErrNotFound = errors.New("station not found")

// Station is one subway station as the import job materializes it: the parent
// stop id, its display name, the lines serving it, and headsign hints for the
// two directions.
type Station struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	Lines      []string `json:"lines"`
	NorthLabel string   `json:"-"`
	SouthLabel string   `json:"-"`
}

// Store resolves station ids. Implementations own their persistence.
type Store interface {
	Get(ctx context.Context, id string) (Station, error)
}

// MapStore is an in-memory Store for tests and offline demo operation.
type MapStore struct {
	byID map[string]Station
}

func NewMapStore(list []Station) *MapStore {
	byID := make(map[string]Station, len(list))
	for _, s := range list {
		byID[s.ID] = s
	}
	return &MapStore{byID: byID}
}

func (m *MapStore) Get(_ context.Context, id string) (Station, error) {
	s, ok := m.byID[id]
	if !ok {
		return Station{}, ErrNotFound
	}
	return s, nil
}

// Demo returns a small fixed registry so the process can serve fully
// synthetic data without a database.
func Demo() *MapStore {
	return NewMapStore([]Station{
		{ID: "127", Name: "Times Sq-42 St", Lines: []string{"1", "2", "3", "7", "N", "Q", "R", "W", "S"},
			NorthLabel: "Uptown & The Bronx", SouthLabel: "Downtown & Brooklyn"},
		{ID: "631", Name: "Grand Central-42 St", Lines: []string{"4", "5", "6", "7", "S"},
			NorthLabel: "Uptown & The Bronx", SouthLabel: "Downtown & Brooklyn"},
		{ID: "635", Name: "14 St-Union Sq", Lines: []string{"4", "5", "6", "L", "N", "Q", "R", "W"},
			NorthLabel: "Uptown & Queens", SouthLabel: "Downtown & Brooklyn"},
		{ID: "A41", Name: "Jay St-MetroTech", Lines: []string{"A", "C", "F", "R"},
			NorthLabel: "Manhattan", SouthLabel: "Brooklyn"},
	})
}
