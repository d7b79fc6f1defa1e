package system

import (
	"github.com/milk9111/fpscore/common"
	"github.com/milk9111/fpscore/component"
	"github.com/milk9111/fpscore/ecs"
)

// HitOutcome describes the first blocking surface along a ray.
type HitOutcome struct {
	DidHit       bool
	ImpactPoint  common.Vec3
	ImpactNormal common.Vec3
	// Target is ecs.None for geometry that carries no entity.
	Target ecs.Entity
	Region component.Region
	// Distance is measured from the ray origin by the query and rewritten to
	// the distance from the shooter by the fire resolver.
	Distance  float64
	Direction common.Vec3
}

// WorldQuery casts rays against the scene. A miss is a normal outcome.
type WorldQuery interface {
	Raycast(origin, direction common.Vec3, maxDistance float64) HitOutcome
}
