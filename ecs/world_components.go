package ecs

import "github.com/milk9111/fpscore/component"

// Impulses returns the impulse receiver storage.
func (w *World) Impulses() *SparseSet[component.ImpulseReceiver] {
	if w == nil {
		return nil
	}
	if w.impulses == nil {
		w.impulses = &SparseSet[component.ImpulseReceiver]{}
	}
	return w.impulses
}

// Reactions returns the hit reaction storage.
func (w *World) Reactions() *SparseSet[component.ReactiveTarget] {
	if w == nil {
		return nil
	}
	if w.reactions == nil {
		w.reactions = &SparseSet[component.ReactiveTarget]{}
	}
	return w.reactions
}

// Healths returns the health storage.
func (w *World) Healths() *SparseSet[*component.HealthPool] {
	if w == nil {
		return nil
	}
	if w.healths == nil {
		w.healths = &SparseSet[*component.HealthPool]{}
	}
	return w.healths
}

// Names returns the debug name storage.
func (w *World) Names() *SparseSet[string] {
	if w == nil {
		return nil
	}
	if w.names == nil {
		w.names = &SparseSet[string]{}
	}
	return w.names
}

// SetImpulseReceiver attaches an impulse receiver.
func (w *World) SetImpulseReceiver(e Entity, r component.ImpulseReceiver) {
	if !w.IsAlive(e) || r == nil {
		return
	}
	w.Impulses().Set(e.ID, r)
}

// ImpulseReceiver returns the impulse receiver of e, or nil.
func (w *World) ImpulseReceiver(e Entity) component.ImpulseReceiver {
	if !w.IsAlive(e) {
		return nil
	}
	r, _ := w.Impulses().Get(e.ID)
	return r
}

// SetReactiveTarget attaches a hit reaction.
func (w *World) SetReactiveTarget(e Entity, r component.ReactiveTarget) {
	if !w.IsAlive(e) || r == nil {
		return
	}
	w.Reactions().Set(e.ID, r)
}

// ReactiveTarget returns the hit reaction of e, or nil.
func (w *World) ReactiveTarget(e Entity) component.ReactiveTarget {
	if !w.IsAlive(e) {
		return nil
	}
	r, _ := w.Reactions().Get(e.ID)
	return r
}

// SetHealth attaches a health pool.
func (w *World) SetHealth(e Entity, h *component.HealthPool) {
	if !w.IsAlive(e) || h == nil {
		return
	}
	w.Healths().Set(e.ID, h)
}

// Health returns the health pool of e, or nil.
func (w *World) Health(e Entity) *component.HealthPool {
	if !w.IsAlive(e) {
		return nil
	}
	h, _ := w.Healths().Get(e.ID)
	return h
}

func (w *World) SetName(e Entity, name string) {
	if !w.IsAlive(e) {
		return
	}
	w.Names().Set(e.ID, name)
}

// Name returns the debug name of e, or an empty string.
func (w *World) Name(e Entity) string {
	if !w.IsAlive(e) {
		return ""
	}
	n, _ := w.Names().Get(e.ID)
	return n
}
