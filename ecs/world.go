package ecs

import "github.com/milk9111/fpscore/component"

// System updates a world each frame.
type System interface {
	Update(w *World)
}

// SystemFunc adapts a function to System.
type SystemFunc func(w *World)

func (f SystemFunc) Update(w *World) { f(w) }

// World owns entities, their capability components, and system order.
type World struct {
	entities entityStore
	systems  []System
	events   EventQueue

	impulses  *SparseSet[component.ImpulseReceiver]
	reactions *SparseSet[component.ReactiveTarget]
	healths   *SparseSet[*component.HealthPool]
	names     *SparseSet[string]
}

// NewWorld creates an empty ECS world.
func NewWorld() *World {
	return &World{}
}

// CreateEntity allocates a new entity.
func (w *World) CreateEntity() Entity {
	return w.entities.create()
}

// DestroyEntity releases e and drops every component attached to it.
func (w *World) DestroyEntity(e Entity) bool {
	if w == nil || !w.entities.isAlive(e) {
		return false
	}
	w.Impulses().Remove(e.ID)
	w.Reactions().Remove(e.ID)
	w.Healths().Remove(e.ID)
	w.Names().Remove(e.ID)
	return w.entities.destroy(e)
}

// IsAlive reports whether an entity handle is valid.
func (w *World) IsAlive(e Entity) bool {
	return w != nil && w.entities.isAlive(e)
}

// Lookup resolves a bare entity id, as carried by combat events, to the live
// entity holding it.
func (w *World) Lookup(id int) (Entity, bool) {
	if w == nil {
		return Entity{}, false
	}
	return w.entities.lookup(id)
}

// Len returns the number of live entities.
func (w *World) Len() int {
	if w == nil {
		return 0
	}
	return w.entities.alive
}

// AddSystem appends a system to the update order.
func (w *World) AddSystem(s System) {
	if w == nil || s == nil {
		return
	}
	w.systems = append(w.systems, s)
}

// Update runs all systems once and drops undrained events.
func (w *World) Update() {
	if w == nil {
		return
	}
	for _, s := range w.systems {
		if s != nil {
			s.Update(w)
		}
	}
	w.events.flush()
}

// Events returns the world event queue.
func (w *World) Events() *EventQueue {
	if w == nil {
		return nil
	}
	return &w.events
}
