package prefabs

import (
	"errors"
	"fmt"
	"time"

	"github.com/milk9111/fpscore/common"
	"github.com/milk9111/fpscore/component"
	"github.com/milk9111/fpscore/ecs"
	"github.com/milk9111/fpscore/physics"
)

var ErrInvalidRange = errors.New("prefabs: invalid range")

const reactionFlinch = 250 * time.Millisecond

// Range is a built firing range.
type Range struct {
	Spec    RangeSpec
	Targets map[string]ecs.Entity
}

// Eye returns the shooter's eye position.
func (r *Range) Eye() common.Vec3 {
	p := r.Spec.Shooter.Position.Vec3()
	p.Z += r.Spec.Shooter.EyeHeight
	return p
}

// BuildRange creates one entity per target, registers its capabilities in
// world and its shape in space, and adds the walls.
func BuildRange(spec RangeSpec, world *ecs.World, space *physics.Space) (*Range, error) {
	if world == nil || space == nil {
		return nil, fmt.Errorf("%w: nil world or space", ErrInvalidRange)
	}
	for i, t := range spec.Targets {
		if err := validateTarget(t); err != nil {
			return nil, fmt.Errorf("%w: target %d (%s): %v", ErrInvalidRange, i, t.Name, err)
		}
	}

	r := &Range{Spec: spec, Targets: make(map[string]ecs.Entity, len(spec.Targets))}
	for _, t := range spec.Targets {
		e := world.CreateEntity()
		world.SetName(e, t.Name)

		body := space.AddTarget(e, physics.TargetShape{
			Position: t.Position.Vec3(),
			Radius:   t.Radius,
			Column: physics.Column{
				Base:     t.Position.Z,
				Height:   t.Height,
				HeadFrom: t.HeadFrom,
			},
			Mass: t.Mass,
		})
		world.SetImpulseReceiver(e, body)

		if t.Health > 0 {
			world.SetHealth(e, component.NewHealthPool(t.Health, t.Shield))
		}
		if t.Reactive {
			world.SetReactiveTarget(e, component.NewHitReaction(reactionFlinch))
		}
		if t.Name != "" {
			r.Targets[t.Name] = e
		}
	}

	for _, w := range spec.Walls {
		space.AddWall(w.From.Vec3(), w.To.Vec3(), physics.Column{Base: w.From.Z, Height: w.Height}, w.Thickness)
	}
	return r, nil
}

func validateTarget(t TargetSpec) error {
	switch {
	case t.Radius <= 0:
		return errors.New("radius must be positive")
	case t.Height <= 0:
		return errors.New("height must be positive")
	case t.HeadFrom < 0 || t.HeadFrom >= t.Height:
		return errors.New("head_from must lie inside the column")
	case t.Health < 0 || t.Shield < 0 || t.Mass < 0:
		return errors.New("health, shield and mass cannot be negative")
	}
	return nil
}
