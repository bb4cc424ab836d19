package store

import (
	"github.com/jakechorley/escala/pkg/core/catalog"
	"github.com/jakechorley/escala/pkg/core/model"
)

// Snapshot is a point-in-time copy of the store, safe to read without locking
type Snapshot struct {
	Volunteers  []model.Volunteer
	Assignments []model.Assignment
	Catalog     *catalog.Catalog
}

// Volunteer looks up a volunteer by id
func (s Snapshot) Volunteer(id string) (model.Volunteer, bool) {
	for _, v := range s.Volunteers {
		if v.ID == id {
			return v, true
		}
	}
	return model.Volunteer{}, false
}
