package character

import (
	"github.com/milk9111/fpscore/common"
	"github.com/milk9111/fpscore/system"
	"github.com/milk9111/fpscore/timer"
)

// ThrowGrenade launches a grenade along aim. Nothing is spent when the pouch
// is empty, the cooldown is running, aim is zero or the spawn fails.
func (c *Character) ThrowGrenade(aim common.Vec3) bool {
	if c.destroyed || !c.grenades.CanThrow() {
		return false
	}
	dir := aim.Normalize()
	if dir.IsZero() {
		return false
	}

	g := c.spec.Grenade
	h, err := c.deps.Projectiles.SpawnGrenade(c.position.Add(g.SpawnOffset.Vec3()), dir)
	if err != nil {
		c.logger.Error().Err(err).Msg("grenade spawn failed")
		return false
	}
	c.deps.Projectiles.ApplyImpulse(h, dir.Scale(g.LaunchImpulse))

	c.grenades.Spend()
	c.cooldownTimer = c.deps.Scheduler.Schedule(c.grenades.Cooldown, c.cooldownExpired)

	if fuse := g.Fuse(); fuse > 0 && c.deps.Detonator != nil {
		var fh timer.Handle
		fh = c.deps.Scheduler.Schedule(fuse, func() { c.detonate(fh) })
		c.fuses[fh] = h
	}

	c.logger.Debug().
		Uint64("projectile", uint64(h)).
		Int("remaining", c.grenades.Count).
		Msg("grenade thrown")
	return true
}

func (c *Character) cooldownExpired() {
	c.cooldownTimer = 0
	if c.destroyed {
		return
	}
	c.grenades.Ready()
}

func (c *Character) detonate(fh timer.Handle) {
	h, ok := c.fuses[fh]
	if !ok || c.destroyed {
		return
	}
	delete(c.fuses, fh)

	at, ok := c.deps.Detonator.Detonate(h)
	if !ok {
		return
	}
	g := c.spec.Grenade
	reports := c.damage.Explode(at, system.Blast{
		Radius:  g.BlastRadius,
		Impulse: g.BlastImpulse,
		Damage:  g.BlastDamage,
	}, c.deps.Proximity)

	c.logger.Debug().
		Uint64("projectile", uint64(h)).
		Int("affected", len(reports)).
		Msg("grenade detonated")
}

// PendingFuses returns the number of grenades still waiting to explode.
func (c *Character) PendingFuses() int { return len(c.fuses) }
