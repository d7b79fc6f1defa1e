package character

import (
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/milk9111/fpscore/common"
	"github.com/milk9111/fpscore/component"
	"github.com/milk9111/fpscore/ecs"
	"github.com/milk9111/fpscore/prefabs"
	"github.com/milk9111/fpscore/system"
	"github.com/milk9111/fpscore/timer"
)

var (
	ErrInvalidLoadout    = errors.New("invalid loadout")
	ErrMissingDependency = errors.New("missing dependency")
)

// Scheduler is the timer service the character uses for reload, cooldown
// and fuse completion. *timer.Scheduler satisfies it.
type Scheduler interface {
	Schedule(delay time.Duration, fn func()) timer.Handle
	Cancel(h timer.Handle) bool
}

// Deps are the collaborators a Character needs. Camera, Effects, Rand,
// Proximity and Detonator are optional.
type Deps struct {
	Scheduler   Scheduler
	Query       system.WorldQuery
	World       *ecs.World
	Projectiles component.ProjectileSpawner
	Camera      component.CameraRig
	Effects     component.Effects
	Emitter     *component.CombatEventEmitter
	Rand        system.Rand
	Proximity   system.Proximity
	Detonator   system.Detonator
	Logger      zerolog.Logger
}

// Character is a player-controlled soldier: locomotion, one weapon and a
// grenade pouch, driven by input and a frame-driven scheduler.
type Character struct {
	deps   Deps
	logger zerolog.Logger

	spec       prefabs.LoadoutSpec
	locomotion *component.Locomotion
	ammo       *component.Ammo
	grenades   *component.Grenades

	fire   *system.FireResolver
	damage *system.DamageResolver

	position common.Vec3
	trigger  trigger

	reloadTimer   timer.Handle
	cooldownTimer timer.Handle
	fuses         map[timer.Handle]component.ProjectileHandle

	destroyed bool
}

// New builds a character from a loadout. It fails when a required
// collaborator is missing or the loadout is inconsistent.
func New(spec prefabs.LoadoutSpec, deps Deps) (*Character, error) {
	switch {
	case deps.Scheduler == nil:
		return nil, fmt.Errorf("character: scheduler: %w", ErrMissingDependency)
	case deps.Query == nil:
		return nil, fmt.Errorf("character: world query: %w", ErrMissingDependency)
	case deps.World == nil:
		return nil, fmt.Errorf("character: world: %w", ErrMissingDependency)
	case deps.Projectiles == nil:
		return nil, fmt.Errorf("character: projectile spawner: %w", ErrMissingDependency)
	}
	if err := Validate(spec); err != nil {
		return nil, fmt.Errorf("character: %s: %w", spec.Name, err)
	}
	if deps.Camera == nil {
		deps.Camera = component.NopCamera{}
	}
	if deps.Effects == nil {
		deps.Effects = component.NopEffects{}
	}

	c := &Character{
		deps:   deps,
		logger: deps.Logger.With().Str("component", "character").Str("loadout", spec.Name).Logger(),
		spec:   spec,
		fuses:  make(map[timer.Handle]component.ProjectileHandle),
	}
	c.trigger = trigger{c: c}

	loco := spec.Locomotion
	c.locomotion = component.NewLocomotion(loco.BaseSpeed, loco.WalkSpeed, loco.SprintSpeed, loco.CrouchCameraOffset, deps.Camera)
	c.ammo = component.NewAmmo(spec.Weapon.Capacity, spec.Weapon.Reserve, spec.Weapon.ReloadDuration())
	c.grenades = component.NewGrenades(spec.Grenade.Count, spec.Grenade.Cooldown())

	rule, err := damageRule(spec.Weapon, c.logger)
	if err != nil {
		return nil, fmt.Errorf("character: %s: %w", spec.Name, err)
	}

	c.damage, err = system.NewDamageResolver(deps.World,
		system.WithEffects(deps.Effects),
		system.WithEmitter(deps.Emitter),
		system.WithDamageRule(rule),
		system.WithImpulse(spec.Weapon.BaseImpulse, spec.Weapon.MaxRange),
		system.WithDamageLogger(deps.Logger),
	)
	if err != nil {
		return nil, fmt.Errorf("character: damage resolver: %w", err)
	}

	c.fire, err = system.NewFireResolver(deps.Query, c.damage,
		system.WithFireEffects(deps.Effects),
		system.WithRand(deps.Rand),
		system.WithFireTuning(fireTuning(spec.Weapon)),
		system.WithFireLogger(deps.Logger),
	)
	if err != nil {
		return nil, fmt.Errorf("character: fire resolver: %w", err)
	}

	c.logger.Info().
		Int("capacity", spec.Weapon.Capacity).
		Int("reserve", spec.Weapon.Reserve).
		Int("grenades", spec.Grenade.Count).
		Msg("character ready")
	return c, nil
}

// Validate checks a loadout for values the state machines cannot run with.
func Validate(spec prefabs.LoadoutSpec) error {
	l, w, g := spec.Locomotion, spec.Weapon, spec.Grenade
	switch {
	case !(l.WalkSpeed < l.BaseSpeed && l.BaseSpeed < l.SprintSpeed):
		return fmt.Errorf("%w: speeds must satisfy walk < base < sprint", ErrInvalidLoadout)
	case l.WalkSpeed < 0:
		return fmt.Errorf("%w: negative walk speed", ErrInvalidLoadout)
	case w.Capacity <= 0:
		return fmt.Errorf("%w: magazine capacity must be positive", ErrInvalidLoadout)
	case w.Reserve < 0:
		return fmt.Errorf("%w: negative reserve", ErrInvalidLoadout)
	case w.ReloadSeconds < 0:
		return fmt.Errorf("%w: negative reload duration", ErrInvalidLoadout)
	case w.MaxRange <= 0:
		return fmt.Errorf("%w: max range must be positive", ErrInvalidLoadout)
	case w.SpreadReferenceSpeed < 0 || w.SpreadScale < 0:
		return fmt.Errorf("%w: negative spread tuning", ErrInvalidLoadout)
	case w.BaseImpulse < 0 || w.HeadDamage < 0 || w.BodyDamage < 0:
		return fmt.Errorf("%w: negative impulse or damage", ErrInvalidLoadout)
	case g.Count < 0:
		return fmt.Errorf("%w: negative grenade count", ErrInvalidLoadout)
	case g.CooldownSeconds < 0 || g.FuseSeconds < 0:
		return fmt.Errorf("%w: negative grenade timing", ErrInvalidLoadout)
	case g.LaunchImpulse < 0 || g.BlastRadius < 0 || g.BlastImpulse < 0 || g.BlastDamage < 0:
		return fmt.Errorf("%w: negative grenade tuning", ErrInvalidLoadout)
	}
	return nil
}

func fireTuning(w prefabs.WeaponSpec) system.FireTuning {
	return system.FireTuning{
		MaxRange:       w.MaxRange,
		ReferenceSpeed: w.SpreadReferenceSpeed,
		SpreadScale:    w.SpreadScale,
	}
}

func damageRule(w prefabs.WeaponSpec, logger zerolog.Logger) (system.DamageRule, error) {
	fixed := system.FixedDamage{Head: w.HeadDamage, Body: w.BodyDamage}
	if w.DamageScript == "" {
		return fixed, nil
	}
	src, err := prefabs.LoadScript(w.DamageScript)
	if err != nil {
		return nil, fmt.Errorf("load damage script %s: %w", w.DamageScript, err)
	}
	return system.NewScriptedDamage(w.DamageScript, src, fixed, w.MaxRange, logger)
}

func (c *Character) Locomotion() *component.Locomotion { return c.locomotion }
func (c *Character) Ammo() *component.Ammo             { return c.ammo }
func (c *Character) Grenades() *component.Grenades     { return c.grenades }
func (c *Character) Spec() prefabs.LoadoutSpec         { return c.spec }
func (c *Character) Position() common.Vec3             { return c.position }
func (c *Character) Destroyed() bool                   { return c.destroyed }

// SetPosition moves the actor. Grenades spawn relative to it.
func (c *Character) SetPosition(p common.Vec3) {
	if c.destroyed {
		return
	}
	c.position = p
}

// SetMovementMode toggles a locomotion mode from input. Reload is driven by
// the weapon and cannot be toggled here.
func (c *Character) SetMovementMode(m component.Mode, enabled bool) bool {
	if c.destroyed || m == component.ModeReload {
		return false
	}
	changed := c.locomotion.SetMode(m, enabled)
	if changed {
		c.logger.Debug().
			Str("mode", m.String()).
			Bool("enabled", enabled).
			Float64("max_speed", c.locomotion.MaxSpeed()).
			Msg("movement mode")
	}
	return changed
}

// Fire pulls the trigger. It reports whether a round left the barrel. A pull
// on an empty magazine starts a reload instead.
func (c *Character) Fire(shot system.Shot) (system.HitOutcome, bool) {
	if c.destroyed {
		return system.HitOutcome{}, false
	}
	if c.ammo.Current == 0 && !c.ammo.Reloading() {
		c.Reload()
		return system.HitOutcome{}, false
	}
	return c.fire.Fire(&c.trigger, shot)
}

// Destroy cancels every pending timer. All later calls are no-ops.
func (c *Character) Destroy() {
	if c.destroyed {
		return
	}
	c.destroyed = true
	canceled := 0
	for _, h := range []timer.Handle{c.reloadTimer, c.cooldownTimer} {
		if h != 0 && c.deps.Scheduler.Cancel(h) {
			canceled++
		}
	}
	for h := range c.fuses {
		if c.deps.Scheduler.Cancel(h) {
			canceled++
		}
	}
	c.reloadTimer, c.cooldownTimer = 0, 0
	clear(c.fuses)
	c.logger.Info().Int("canceled_timers", canceled).Msg("character destroyed")
}

// Retune swaps in a new loadout while keeping the live counters and active
// modes. Speeds, weapon tuning and the damage rule change immediately;
// durations apply to timers scheduled from now on. Magazine capacity, reserve
// and grenade count are sizing fields: they take effect only on a new
// Character, and Spec keeps reporting the values the live counters use.
func (c *Character) Retune(spec prefabs.LoadoutSpec) error {
	if c.destroyed {
		return nil
	}
	if err := Validate(spec); err != nil {
		return fmt.Errorf("character: retune %s: %w", spec.Name, err)
	}
	rule, err := damageRule(spec.Weapon, c.logger)
	if err != nil {
		return fmt.Errorf("character: retune %s: %w", spec.Name, err)
	}

	loco := spec.Locomotion
	c.locomotion.SetSpeeds(loco.BaseSpeed, loco.WalkSpeed, loco.SprintSpeed)
	c.ammo.ReloadDuration = spec.Weapon.ReloadDuration()
	c.grenades.Cooldown = spec.Grenade.Cooldown()
	c.fire.SetTuning(fireTuning(spec.Weapon))
	c.damage.SetRule(rule)
	c.damage.SetImpulse(spec.Weapon.BaseImpulse, spec.Weapon.MaxRange)

	spec.Weapon.Capacity = c.spec.Weapon.Capacity
	spec.Weapon.Reserve = c.spec.Weapon.Reserve
	spec.Grenade.Count = c.spec.Grenade.Count
	c.spec = spec

	c.logger.Info().Str("loadout", spec.Name).Msg("loadout retuned")
	return nil
}

// trigger adapts the ammo and locomotion gates to the fire resolver.
type trigger struct {
	c *Character
}

func (t *trigger) CanFire() bool {
	return t.c.ammo.CanFire() && t.c.locomotion.CanFire()
}

func (t *trigger) Fire() {
	fired, empty := t.c.ammo.Consume()
	if fired && empty {
		t.c.logger.Debug().Msg("magazine empty")
		t.c.Reload()
	}
}
