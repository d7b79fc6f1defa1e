package component

import "github.com/milk9111/fpscore/common"

// ImpulseReceiver is implemented by entities simulated by the physics engine.
// ApplyImpulseAt reports false when the body cannot take the impulse.
type ImpulseReceiver interface {
	ApplyImpulseAt(impulse, point common.Vec3) bool
}

// ReactiveTarget is implemented by practice targets that play a hit reaction.
type ReactiveTarget interface {
	OnHit()
}

// View selects which camera the presentation layer renders from.
type View int

const (
	ViewHip View = iota
	ViewAim
)

func (v View) String() string {
	switch v {
	case ViewAim:
		return "aim"
	default:
		return "hip"
	}
}

// CameraRig is the presentation hook driven by locomotion changes.
type CameraRig interface {
	SetActiveView(v View)
	ApplyVerticalOffset(delta float64)
}

// ProjectileHandle identifies a spawned projectile.
type ProjectileHandle uint64

// ProjectileSpawner spawns and launches grenades.
type ProjectileSpawner interface {
	SpawnGrenade(position, orientation common.Vec3) (ProjectileHandle, error)
	ApplyImpulse(h ProjectileHandle, impulse common.Vec3)
}

// Effects receives cosmetic requests. Nothing it returns is consulted.
type Effects interface {
	FireEffects(origin, direction common.Vec3)
	ImpactEffect(point, normal common.Vec3)
}

// NopCamera ignores every camera request.
type NopCamera struct{}

func (NopCamera) SetActiveView(View)          {}
func (NopCamera) ApplyVerticalOffset(float64) {}

// NopEffects ignores every effect request.
type NopEffects struct{}

func (NopEffects) FireEffects(common.Vec3, common.Vec3)  {}
func (NopEffects) ImpactEffect(common.Vec3, common.Vec3) {}
