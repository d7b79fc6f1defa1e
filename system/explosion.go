package system

import (
	"github.com/milk9111/fpscore/common"
	"github.com/milk9111/fpscore/component"
	"github.com/milk9111/fpscore/ecs"
)

// Contact is an entity found inside a blast radius.
type Contact struct {
	Target   ecs.Entity
	Point    common.Vec3
	Distance float64
}

// Proximity finds entities near a point.
type Proximity interface {
	Within(center common.Vec3, radius float64) []Contact
}

// Detonator removes a live projectile and reports where it was.
type Detonator interface {
	Detonate(h component.ProjectileHandle) (common.Vec3, bool)
}

// Blast describes a grenade explosion.
type Blast struct {
	Radius  float64
	Impulse float64
	Damage  float64
}

var up = common.V3(0, 0, 1)

// Explode applies a radial blast. Impulse and damage fall off linearly with
// distance from center and reach zero at the blast radius.
func (r *DamageResolver) Explode(center common.Vec3, blast Blast, near Proximity) []Report {
	if r == nil || near == nil || blast.Radius <= 0 {
		return nil
	}
	r.effects.ImpactEffect(center, up)

	contacts := near.Within(center, blast.Radius)
	reports := make([]Report, 0, len(contacts))
	for _, c := range contacts {
		if !r.world.IsAlive(c.Target) {
			continue
		}
		scale := ImpulseFalloff(1, blast.Radius, c.Distance)
		if scale <= 0 {
			continue
		}
		rep := Report{Target: c.Target}

		if recv := r.world.ImpulseReceiver(c.Target); recv != nil {
			dir := c.Point.Sub(center).Normalize()
			if dir.IsZero() {
				dir = up
			}
			rep.Impulse = blast.Impulse * scale
			if rep.Impulse > 0 {
				rep.ImpulseApplied = recv.ApplyImpulseAt(dir.Scale(rep.Impulse), c.Point)
				if rep.ImpulseApplied {
					r.metrics.pushed(rep.Impulse)
				}
			}
		}

		if react := r.world.ReactiveTarget(c.Target); react != nil {
			react.OnHit()
			rep.Reacted = true
		}

		if hp := r.world.Health(c.Target); hp != nil && hp.IsAlive() {
			rep.Damage = blast.Damage * scale
			rep.Killed = r.applyDamage(c.Target, hp, rep.Damage, component.RegionBody, c.Point, c.Distance, rep.Impulse)
		}
		reports = append(reports, rep)
	}

	r.logger.Debug().
		Float64("x", center.X).Float64("y", center.Y).Float64("z", center.Z).
		Int("affected", len(reports)).
		Msg("blast resolved")
	return reports
}
