package gamedata

import (
	"math/rand"
)

// Registry holds room archetypes and picks them by weight.
type Registry struct {
	rooms       []RoomArchetype
	totalWeight int
}

// NewRegistry creates a registry from room archetypes.
func NewRegistry(rooms []RoomArchetype) *Registry {
	totalWeight := 0
	for _, r := range rooms {
		if r.SpawnWeight > 0 {
			totalWeight += r.SpawnWeight
		}
	}
	return &Registry{
		rooms:       rooms,
		totalWeight: totalWeight,
	}
}

// SpawnRandom selects a random archetype using weighted probability.
// Archetypes with higher spawnWeight are more likely to be selected; archetypes
// with zero weight are never selected. It returns nil when nothing can be picked.
func (r *Registry) SpawnRandom(rng *rand.Rand) *RoomArchetype {
	if r.totalWeight <= 0 || len(r.rooms) == 0 {
		return nil
	}

	roll := rng.Intn(r.totalWeight)

	cumulative := 0
	for i := range r.rooms {
		if r.rooms[i].SpawnWeight <= 0 {
			continue
		}
		cumulative += r.rooms[i].SpawnWeight
		if roll < cumulative {
			return &r.rooms[i]
		}
	}
	return nil
}

// GetByID returns the archetype with the given ID, or nil if not found.
func (r *Registry) GetByID(id string) *RoomArchetype {
	for i := range r.rooms {
		if r.rooms[i].ID == id {
			return &r.rooms[i]
		}
	}
	return nil
}

// All returns all archetypes.
func (r *Registry) All() []RoomArchetype {
	return r.rooms
}

// Count returns the number of archetypes in the registry.
func (r *Registry) Count() int {
	return len(r.rooms)
}

// Pickable reports whether SpawnRandom can return anything.
func (r *Registry) Pickable() bool {
	return r.totalWeight > 0
}
