package catalog

import (
	"fmt"

	"github.com/jakechorley/escala/pkg/core/model"
)

// DefaultRooms is the ministry's standard Saturday layout (13 slots)
var DefaultRooms = []model.Room{
	{ID: "checkin", Name: "Check-in", Description: "1 volunteer", Capacity: 1},
	{ID: "grande-grupo", Name: "Grande Grupo", Description: "2 volunteers (worship/activities)", Capacity: 2},
	{ID: "bercario", Name: "Berçário", Description: "0 to 2 years (2 volunteers)", Capacity: 2},
	{ID: "3-4-anos", Name: "3 a 4 anos", Description: "Nursery (2 volunteers)", Capacity: 2},
	{ID: "5-6-anos", Name: "5 a 6 anos", Description: "Primary I (2 volunteers)", Capacity: 2},
	{ID: "7-8-anos", Name: "7 a 8 anos", Description: "Primary II (2 volunteers)", Capacity: 2},
	{ID: "9-12-anos", Name: "9 a 12 anos", Description: "Juniors (2 volunteers)", Capacity: 2},
}

// Catalog is an immutable, ordered set of rooms
type Catalog struct {
	rooms []model.Room
	byID  map[string]int
}

// New builds a catalog, rejecting duplicate ids and non-positive capacities
func New(rooms []model.Room) (*Catalog, error) {
	c := &Catalog{
		rooms: make([]model.Room, len(rooms)),
		byID:  make(map[string]int, len(rooms)),
	}
	copy(c.rooms, rooms)

	for i, room := range c.rooms {
		if room.ID == "" {
			return nil, fmt.Errorf("room %d has no id", i)
		}
		if room.Capacity < 1 {
			return nil, fmt.Errorf("room %s: capacity must be positive, got %d", room.ID, room.Capacity)
		}
		if _, exists := c.byID[room.ID]; exists {
			return nil, fmt.Errorf("duplicate room id %s", room.ID)
		}
		c.byID[room.ID] = i
	}

	return c, nil
}

// Default returns the catalog built from DefaultRooms
func Default() *Catalog {
	c, err := New(DefaultRooms)
	if err != nil {
		panic(err)
	}
	return c
}

// Rooms returns the rooms in catalog order
func (c *Catalog) Rooms() []model.Room {
	out := make([]model.Room, len(c.rooms))
	copy(out, c.rooms)
	return out
}

// Room looks up a room by id
func (c *Catalog) Room(id string) (model.Room, bool) {
	i, ok := c.byID[id]
	if !ok {
		return model.Room{}, false
	}
	return c.rooms[i], true
}

// Has reports whether id names a catalog room
func (c *Catalog) Has(id string) bool {
	_, ok := c.byID[id]
	return ok
}

// TotalCapacity is the number of slots per service date
func (c *Catalog) TotalCapacity() int {
	total := 0
	for _, room := range c.rooms {
		total += room.Capacity
	}
	return total
}
