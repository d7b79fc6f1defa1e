package component

// HealthPool is the health and shield owned by a damageable target.
type HealthPool struct {
	Full         float64
	Current      float64
	FullShield   float64
	Shield       float64
	ShieldActive bool
	Dead         bool

	OnDamage func(h *HealthPool, delta float64)
	OnDeath  func(h *HealthPool)
}

// NewHealthPool creates a pool with health and shield at full. The shield is
// active when fullShield is positive.
func NewHealthPool(full, fullShield float64) *HealthPool {
	if full <= 0 {
		full = 1
	}
	if fullShield < 0 {
		fullShield = 0
	}
	return &HealthPool{
		Full:         full,
		Current:      full,
		FullShield:   fullShield,
		Shield:       fullShield,
		ShieldActive: fullShield > 0,
	}
}

// IsAlive reports whether the owner is alive.
func (h *HealthPool) IsAlive() bool {
	return h != nil && !h.Dead && h.Current > 0
}

// ChangeHealth applies delta to the pool. Negative values are damage and are
// absorbed by an active shield first; positive values heal. Health is clamped
// to [0, Full] and reaching 0 triggers Die.
func (h *HealthPool) ChangeHealth(delta float64) {
	if h == nil || h.Dead || delta == 0 {
		return
	}

	if delta < 0 && h.ShieldActive && h.Shield > 0 {
		absorbed := min(h.Shield, -delta)
		h.Shield -= absorbed
		delta += absorbed
	}

	h.Current += delta
	if h.Current < 0 {
		h.Current = 0
	}
	if h.Current > h.Full {
		h.Current = h.Full
	}

	if h.OnDamage != nil && delta < 0 {
		h.OnDamage(h, delta)
	}
	if h.Current <= 0 {
		h.Die()
	}
}

// Die marks the owner dead. It runs OnDeath once.
func (h *HealthPool) Die() {
	if h == nil || h.Dead {
		return
	}
	h.Current = 0
	h.Dead = true
	if h.OnDeath != nil {
		h.OnDeath(h)
	}
}

// Reset restores health and shield to full and revives the owner.
func (h *HealthPool) Reset() {
	if h == nil {
		return
	}
	h.Current = h.Full
	h.Shield = h.FullShield
	h.Dead = false
}
