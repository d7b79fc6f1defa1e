package system

import (
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/metric"

	"github.com/milk9111/fpscore/common"
	"github.com/milk9111/fpscore/component"
)

// Trigger gates and consumes a shot. Fire is only called after CanFire
// reported true.
type Trigger interface {
	CanFire() bool
	Fire()
}

// Rand supplies uniform samples in [0, 1). *math/rand/v2.Rand satisfies it.
type Rand interface {
	Float64() float64
}

// Shot is a single trigger pull.
type Shot struct {
	Shooter common.Vec3
	Origin  common.Vec3
	Forward common.Vec3
	// Speed is the shooter's current movement speed.
	Speed float64
}

// FireTuning holds the hit-scan constants of a weapon.
type FireTuning struct {
	MaxRange       float64
	ReferenceSpeed float64
	SpreadScale    float64
}

func DefaultFireTuning() FireTuning {
	return FireTuning{
		MaxRange:       10000,
		ReferenceSpeed: 300,
		SpreadScale:    0.02,
	}
}

// FireResolver turns trigger pulls into hit-scan rays and hands hits to the
// damage resolver.
type FireResolver struct {
	query   WorldQuery
	damage  *DamageResolver
	effects component.Effects
	rand    Rand
	tuning  FireTuning
	logger  zerolog.Logger
	metrics *combatMetrics
}

type FireOption func(*fireConfig)

type fireConfig struct {
	resolver *FireResolver
	meter    metric.Meter
}

func WithFireEffects(e component.Effects) FireOption {
	return func(c *fireConfig) {
		if e != nil {
			c.resolver.effects = e
		}
	}
}

func WithRand(r Rand) FireOption {
	return func(c *fireConfig) { c.resolver.rand = r }
}

func WithFireTuning(t FireTuning) FireOption {
	return func(c *fireConfig) { c.resolver.tuning = t }
}

func WithFireLogger(l zerolog.Logger) FireOption {
	return func(c *fireConfig) { c.resolver.logger = l }
}

func WithFireMeter(m metric.Meter) FireOption {
	return func(c *fireConfig) { c.meter = m }
}

// NewFireResolver casts shots through query. damage may be nil, in which case
// hits are traced but not resolved.
func NewFireResolver(query WorldQuery, damage *DamageResolver, opts ...FireOption) (*FireResolver, error) {
	r := &FireResolver{
		query:   query,
		damage:  damage,
		effects: component.NopEffects{},
		tuning:  DefaultFireTuning(),
		logger:  zerolog.Nop(),
	}
	cfg := &fireConfig{resolver: r}
	for _, opt := range opts {
		opt(cfg)
	}

	m, err := newCombatMetrics(cfg.meter)
	if err != nil {
		return nil, err
	}
	r.metrics = m
	r.logger = r.logger.With().Str("component", "fire").Logger()
	return r, nil
}

func (r *FireResolver) SetTuning(t FireTuning) { r.tuning = t }

// Spread returns the spread factor for a shooter moving at speed.
func (r *FireResolver) Spread(speed float64) float64 {
	if r.tuning.ReferenceSpeed <= 0 || speed <= 0 {
		return 0
	}
	return speed / r.tuning.ReferenceSpeed
}

// Direction perturbs forward by the spread for speed. At zero spread forward
// is returned untouched and no samples are drawn.
func (r *FireResolver) Direction(forward common.Vec3, speed float64) common.Vec3 {
	spread := r.Spread(speed)
	if spread == 0 || r.rand == nil || r.tuning.SpreadScale == 0 {
		return forward
	}
	jitter := common.V3(r.sample(spread), r.sample(spread), r.sample(spread))
	dir := forward.Add(jitter.Scale(r.tuning.SpreadScale)).Normalize()
	if dir.IsZero() {
		return forward
	}
	return dir
}

func (r *FireResolver) sample(spread float64) float64 {
	return (r.rand.Float64()*2 - 1) * spread
}

// Fire resolves one trigger pull. It reports false, and does nothing, when the
// trigger refuses. An accepted shot always consumes a round, hit or miss.
func (r *FireResolver) Fire(trigger Trigger, shot Shot) (HitOutcome, bool) {
	if r == nil || trigger == nil || !trigger.CanFire() {
		return HitOutcome{}, false
	}

	dir := r.Direction(shot.Forward, shot.Speed)
	r.effects.FireEffects(shot.Origin, dir)

	var hit HitOutcome
	if r.query != nil && !dir.IsZero() {
		hit = r.query.Raycast(shot.Origin, dir, r.tuning.MaxRange)
	}
	if hit.DidHit {
		hit.Distance = common.Dist(hit.ImpactPoint, shot.Shooter)
		hit.Direction = dir
		r.damage.Resolve(hit, shot.Shooter)
	}

	trigger.Fire()
	r.metrics.shot(hit.DidHit)
	r.logger.Debug().
		Bool("hit", hit.DidHit).
		Float64("speed", shot.Speed).
		Float64("distance", hit.Distance).
		Msg("shot fired")
	return hit, true
}
