package system

import (
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/metric"

	"github.com/milk9111/fpscore/common"
	"github.com/milk9111/fpscore/component"
	"github.com/milk9111/fpscore/ecs"
)

// DamageRule maps a struck region and distance to health damage.
type DamageRule interface {
	Damage(region component.Region, distance float64) float64
}

// FixedDamage deals Head damage to the head region and Body everywhere else.
type FixedDamage struct {
	Head float64
	Body float64
}

func DefaultDamage() FixedDamage {
	return FixedDamage{Head: 50, Body: 10}
}

func (d FixedDamage) Damage(region component.Region, _ float64) float64 {
	if region == component.RegionHead {
		return d.Head
	}
	return d.Body
}

// ImpulseFalloff scales base linearly from full strength at distance 0 to
// nothing at maxRange and beyond.
func ImpulseFalloff(base, maxRange, distance float64) float64 {
	if maxRange <= 0 {
		return 0
	}
	return base * max(0, (maxRange-distance)/maxRange)
}

// Report summarizes what damage resolution did to a single target.
type Report struct {
	Target         ecs.Entity
	Impulse        float64
	ImpulseApplied bool
	Reacted        bool
	Damage         float64
	Killed         bool
}

// DamageResolver applies impulse, hit reaction and health damage to whatever
// capabilities the struck entity has. Each capability is handled on its own.
type DamageResolver struct {
	world   *ecs.World
	effects component.Effects
	emitter *component.CombatEventEmitter
	logger  zerolog.Logger
	metrics *combatMetrics

	rule        DamageRule
	baseImpulse float64
	maxRange    float64
}

type DamageOption func(*damageConfig)

type damageConfig struct {
	resolver *DamageResolver
	meter    metric.Meter
}

func WithEffects(e component.Effects) DamageOption {
	return func(c *damageConfig) {
		if e != nil {
			c.resolver.effects = e
		}
	}
}

func WithEmitter(e *component.CombatEventEmitter) DamageOption {
	return func(c *damageConfig) { c.resolver.emitter = e }
}

func WithDamageRule(rule DamageRule) DamageOption {
	return func(c *damageConfig) {
		if rule != nil {
			c.resolver.rule = rule
		}
	}
}

// WithImpulse sets the impulse at point blank and the range where it reaches zero.
func WithImpulse(base, maxRange float64) DamageOption {
	return func(c *damageConfig) {
		c.resolver.baseImpulse = base
		c.resolver.maxRange = maxRange
	}
}

func WithDamageLogger(l zerolog.Logger) DamageOption {
	return func(c *damageConfig) { c.resolver.logger = l }
}

func WithDamageMeter(m metric.Meter) DamageOption {
	return func(c *damageConfig) { c.meter = m }
}

// NewDamageResolver resolves hits against the capabilities registered in world.
func NewDamageResolver(world *ecs.World, opts ...DamageOption) (*DamageResolver, error) {
	r := &DamageResolver{
		world:       world,
		effects:     component.NopEffects{},
		logger:      zerolog.Nop(),
		rule:        DefaultDamage(),
		baseImpulse: 100000,
		maxRange:    10000,
	}
	cfg := &damageConfig{resolver: r}
	for _, opt := range opts {
		opt(cfg)
	}

	m, err := newCombatMetrics(cfg.meter)
	if err != nil {
		return nil, err
	}
	r.metrics = m
	r.logger = r.logger.With().Str("component", "damage").Logger()
	return r, nil
}

// SetRule replaces the damage rule. A nil rule restores the default.
func (r *DamageResolver) SetRule(rule DamageRule) {
	if rule == nil {
		rule = DefaultDamage()
	}
	r.rule = rule
}

func (r *DamageResolver) SetImpulse(base, maxRange float64) {
	r.baseImpulse = base
	r.maxRange = maxRange
}

// Resolve applies a hit-scan hit. The impulse is pushed along the ray
// direction at the shooter's position. The impact effect is requested for every hit, including
// hits on plain geometry.
func (r *DamageResolver) Resolve(hit HitOutcome, shooter common.Vec3) Report {
	if r == nil || !hit.DidHit {
		return Report{}
	}
	r.effects.ImpactEffect(hit.ImpactPoint, hit.ImpactNormal)

	target := hit.Target
	rep := Report{Target: target}
	if !r.world.IsAlive(target) {
		return rep
	}

	r.emit(component.CombatEvent{
		Type:     component.EventHit,
		TargetID: target.ID,
		Region:   hit.Region,
		Distance: hit.Distance,
		Point:    hit.ImpactPoint,
	})

	if recv := r.world.ImpulseReceiver(target); recv != nil {
		rep.Impulse = ImpulseFalloff(r.baseImpulse, r.maxRange, hit.Distance)
		dir := hit.Direction.Normalize()
		if rep.Impulse > 0 && !dir.IsZero() {
			rep.ImpulseApplied = recv.ApplyImpulseAt(dir.Scale(rep.Impulse), shooter)
			if rep.ImpulseApplied {
				r.metrics.pushed(rep.Impulse)
			} else {
				r.logger.Debug().Int("target", target.ID).Msg("impulse refused")
			}
		}
	}

	if react := r.world.ReactiveTarget(target); react != nil {
		react.OnHit()
		rep.Reacted = true
	}

	if hp := r.world.Health(target); hp != nil && hp.IsAlive() {
		rep.Damage = max(0, r.rule.Damage(hit.Region, hit.Distance))
		rep.Killed = r.applyDamage(target, hp, rep.Damage, hit.Region, hit.ImpactPoint, hit.Distance, rep.Impulse)
	}

	r.logger.Debug().
		Int("target", target.ID).
		Str("region", regionLabel(hit.Region)).
		Float64("distance", hit.Distance).
		Float64("damage", rep.Damage).
		Float64("impulse", rep.Impulse).
		Msg("hit resolved")
	return rep
}

func (r *DamageResolver) applyDamage(target ecs.Entity, hp *component.HealthPool, amount float64, region component.Region, point common.Vec3, distance, impulse float64) bool {
	if amount <= 0 {
		return false
	}
	hp.ChangeHealth(-amount)
	r.metrics.damaged(region, amount)
	r.emit(component.CombatEvent{
		Type:     component.EventDamageApplied,
		TargetID: target.ID,
		Region:   region,
		Damage:   amount,
		Impulse:  impulse,
		Distance: distance,
		Point:    point,
	})
	if hp.IsAlive() {
		return false
	}
	r.logger.Info().Int("target", target.ID).Str("name", r.world.Name(target)).Msg("target killed")
	r.emit(component.CombatEvent{
		Type:     component.EventDeath,
		TargetID: target.ID,
		Region:   region,
		Distance: distance,
		Point:    point,
	})
	return true
}

func (r *DamageResolver) emit(evt component.CombatEvent) {
	if r.emitter != nil {
		r.emitter.Emit(evt)
	}
}
