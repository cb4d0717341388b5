package models

import "time"

// Catalog is an immutable snapshot of the remote content: all duas and all
// journeys with their member duas. FetchedAt drives the cache TTL.
type Catalog struct {
	Duas      []Dua             `json:"duas"`
	Journeys  []JourneyWithDuas `json:"journeys"`
	FetchedAt time.Time         `json:"fetched_at"`
}

// DuaByID resolves a dua id against the catalog.
func (c Catalog) DuaByID(id int) (Dua, bool) {
	for _, d := range c.Duas {
		if d.ID == id {
			return d, true
		}
	}
	return Dua{}, false
}

// JourneyByID resolves a journey id against the catalog.
func (c Catalog) JourneyByID(id string) (JourneyWithDuas, bool) {
	for _, j := range c.Journeys {
		if j.ID == id {
			return j, true
		}
	}
	return JourneyWithDuas{}, false
}
