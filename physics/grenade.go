package physics

import (
	"errors"
	"fmt"

	"github.com/jakecoffman/cp"

	"github.com/milk9111/fpscore/common"
	"github.com/milk9111/fpscore/component"
)

var ErrUnknownProjectile = errors.New("physics: unknown projectile")

// GrenadeConfig sizes thrown grenades.
type GrenadeConfig struct {
	Radius float64
	Mass   float64
	// Bounce is the fraction of vertical speed kept when hitting the floor.
	Bounce float64
	// Limit caps live grenades; spawning beyond it fails.
	Limit int
}

func DefaultGrenadeConfig() GrenadeConfig {
	return GrenadeConfig{Radius: 6, Mass: 1, Bounce: 0.35, Limit: 32}
}

type grenade struct {
	body  *cp.Body
	shape *cp.Shape
	mass  float64
	z     float64
	vz    float64
}

func (g *grenade) position() common.Vec3 {
	p := g.body.Position()
	return common.V3(p.X, p.Y, g.z)
}

// SpawnGrenade creates a grenade body at position. The ground-plane motion is
// simulated by chipmunk; height is integrated separately under gravity.
func (s *Space) SpawnGrenade(position, _ common.Vec3) (component.ProjectileHandle, error) {
	cfg := s.grenadeCfg
	if cfg.Limit > 0 && len(s.grenades) >= cfg.Limit {
		return 0, fmt.Errorf("physics: spawn grenade: %d live grenades", len(s.grenades))
	}
	if cfg.Mass <= 0 || cfg.Radius <= 0 {
		return 0, fmt.Errorf("physics: spawn grenade: invalid body %+v", cfg)
	}

	body := cp.NewBody(cfg.Mass, cp.MomentForCircle(cfg.Mass, 0, cfg.Radius, cp.Vector{}))
	body.SetPosition(cp.Vector{X: position.X, Y: position.Y})
	s.space.AddBody(body)

	shape := cp.NewCircle(body, cfg.Radius, cp.Vector{})
	shape.SetFriction(0.7)
	shape.SetElasticity(0.5)
	s.space.AddShape(shape)

	s.nextGrenade++
	h := s.nextGrenade
	s.grenades[h] = &grenade{body: body, shape: shape, mass: cfg.Mass, z: max(position.Z, cfg.Radius)}
	s.logger.Debug().Uint64("grenade", uint64(h)).Msg("grenade spawned")
	return h, nil
}

// ApplyImpulse launches a live grenade. Unknown handles are ignored.
func (s *Space) ApplyImpulse(h component.ProjectileHandle, impulse common.Vec3) {
	g, ok := s.grenades[h]
	if !ok {
		return
	}
	g.body.ApplyImpulseAtWorldPoint(cp.Vector{X: impulse.X, Y: impulse.Y}, g.body.Position())
	g.vz += impulse.Z / g.mass
}

// Detonate removes the grenade and reports where it was.
func (s *Space) Detonate(h component.ProjectileHandle) (common.Vec3, bool) {
	g, ok := s.grenades[h]
	if !ok {
		return common.Vec3{}, false
	}
	pos := g.position()
	s.space.RemoveShape(g.shape)
	s.space.RemoveBody(g.body)
	delete(s.grenades, h)
	s.logger.Debug().Uint64("grenade", uint64(h)).Msg("grenade detonated")
	return pos, true
}

// Grenade returns the position of a live grenade.
func (s *Space) Grenade(h component.ProjectileHandle) (common.Vec3, error) {
	g, ok := s.grenades[h]
	if !ok {
		return common.Vec3{}, fmt.Errorf("%w: %d", ErrUnknownProjectile, h)
	}
	return g.position(), nil
}

// EachGrenade visits every live grenade.
func (s *Space) EachGrenade(fn func(h component.ProjectileHandle, pos common.Vec3)) {
	for h, g := range s.grenades {
		fn(h, g.position())
	}
}

func (s *Space) stepGrenades(dt float64) {
	floor := s.grenadeCfg.Radius
	for _, g := range s.grenades {
		g.vz -= s.gravity * dt
		g.z += g.vz * dt
		if g.z < floor {
			g.z = floor
			g.vz = -g.vz * s.grenadeCfg.Bounce
		}
	}
}
