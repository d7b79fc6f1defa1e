package component

import "time"

// Grenades is the throwable inventory and its shared cooldown.
type Grenades struct {
	Count    int
	Cooldown time.Duration

	onCooldown bool
}

func NewGrenades(count int, cooldown time.Duration) *Grenades {
	if count < 0 {
		count = 0
	}
	return &Grenades{Count: count, Cooldown: cooldown}
}

func (g *Grenades) CanThrow() bool {
	return g != nil && g.Count > 0 && !g.onCooldown
}

func (g *Grenades) OnCooldown() bool { return g != nil && g.onCooldown }

// Spend takes one grenade and starts the cooldown.
func (g *Grenades) Spend() bool {
	if !g.CanThrow() {
		return false
	}
	g.Count--
	g.onCooldown = true
	return true
}

// Ready ends the cooldown.
func (g *Grenades) Ready() {
	if g == nil {
		return
	}
	g.onCooldown = false
}
