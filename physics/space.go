package physics

import (
	"math"
	"sort"

	"github.com/jakecoffman/cp"
	"github.com/rs/zerolog"

	"github.com/milk9111/fpscore/common"
	"github.com/milk9111/fpscore/component"
	"github.com/milk9111/fpscore/ecs"
	"github.com/milk9111/fpscore/system"
)

// Column gives a flat shape its vertical extent. The chipmunk space holds the
// ground-plane footprint; Base and Height place it along Z. HeadFrom is the
// height above Base where the head region starts, or 0 for no head.
type Column struct {
	Base     float64
	Height   float64
	HeadFrom float64
}

func (c Column) Top() float64 { return c.Base + c.Height }

func (c Column) contains(z float64) bool {
	return z >= c.Base && z <= c.Top()
}

func (c Column) region(z float64) component.Region {
	if c.HeadFrom > 0 && z >= c.Base+c.HeadFrom {
		return component.RegionHead
	}
	return component.RegionBody
}

type entry struct {
	entity ecs.Entity
	column Column
	body   *Body
	shape  *cp.Shape
	radius float64
	// wall endpoints, unused for targets
	a, b common.Vec3
}

// Space is the firing range simulation. It answers ray and proximity queries
// for the combat systems and moves dynamic targets and grenades.
type Space struct {
	space  *cp.Space
	logger zerolog.Logger

	timestep float64
	shapes   map[*cp.Shape]*entry
	targets  map[ecs.Entity]*entry
	walls    []*entry

	grenades     map[component.ProjectileHandle]*grenade
	nextGrenade  component.ProjectileHandle
	grenadeCfg   GrenadeConfig
	gravity      float64
	floorEnabled bool
}

type Option func(*Space)

func WithLogger(l zerolog.Logger) Option {
	return func(s *Space) { s.logger = l }
}

// WithTimestep sets the step used when the space runs as an ecs.System.
func WithTimestep(dt float64) Option {
	return func(s *Space) {
		if dt > 0 {
			s.timestep = dt
		}
	}
}

// WithDamping sets the fraction of velocity bodies keep per second.
func WithDamping(d float64) Option {
	return func(s *Space) { s.space.SetDamping(d) }
}

func WithGravity(g float64) Option {
	return func(s *Space) { s.gravity = g }
}

func WithGrenades(cfg GrenadeConfig) Option {
	return func(s *Space) { s.grenadeCfg = cfg }
}

// WithoutFloor disables the z=0 ground plane in ray queries.
func WithoutFloor() Option {
	return func(s *Space) { s.floorEnabled = false }
}

func NewSpace(opts ...Option) *Space {
	space := cp.NewSpace()
	space.SetGravity(cp.Vector{})
	space.SetDamping(0.2)

	s := &Space{
		space:        space,
		logger:       zerolog.Nop(),
		timestep:     1.0 / 60.0,
		shapes:       make(map[*cp.Shape]*entry),
		targets:      make(map[ecs.Entity]*entry),
		grenades:     make(map[component.ProjectileHandle]*grenade),
		grenadeCfg:   DefaultGrenadeConfig(),
		gravity:      980,
		floorEnabled: true,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.With().Str("component", "physics").Logger()
	return s
}

// TargetShape describes a cylindrical target.
type TargetShape struct {
	Position common.Vec3
	Radius   float64
	Column   Column
	// Mass 0 makes the target static.
	Mass float64
}

// AddTarget registers e as a cylinder and returns its body. Z of Position is
// ignored; the column carries the vertical placement.
func (s *Space) AddTarget(e ecs.Entity, t TargetShape) *Body {
	radius := t.Radius
	if radius <= 0 {
		radius = 16
	}
	pos := cp.Vector{X: t.Position.X, Y: t.Position.Y}

	body := &Body{}
	var shape *cp.Shape
	if t.Mass <= 0 {
		shape = cp.NewCircle(s.space.StaticBody, radius, pos)
		body.body = s.space.StaticBody
		body.static = true
		body.offset = pos
	} else {
		// infinite moment keeps targets upright when pushed off-center
		cb := cp.NewBody(t.Mass, math.Inf(1))
		cb.SetPosition(pos)
		s.space.AddBody(cb)
		shape = cp.NewCircle(cb, radius, cp.Vector{})
		body.body = cb
	}
	shape.SetFriction(0.6)
	shape.SetElasticity(0.1)
	s.space.AddShape(shape)

	en := &entry{entity: e, column: t.Column, body: body, shape: shape, radius: radius}
	s.shapes[shape] = en
	s.targets[e] = en
	s.logger.Debug().Int("entity", e.ID).Bool("static", body.static).Msg("target added")
	return body
}

// AddWall adds static geometry between a and b. Walls stop rays but carry no
// entity.
func (s *Space) AddWall(a, b common.Vec3, column Column, thickness float64) {
	if thickness <= 0 {
		thickness = 4
	}
	shape := cp.NewSegment(s.space.StaticBody, cp.Vector{X: a.X, Y: a.Y}, cp.Vector{X: b.X, Y: b.Y}, thickness/2)
	shape.SetFriction(0.8)
	shape.SetElasticity(0.4)
	s.space.AddShape(shape)

	en := &entry{entity: ecs.None, column: column, shape: shape, radius: thickness / 2, a: a, b: b}
	s.shapes[shape] = en
	s.walls = append(s.walls, en)
}

// Remove drops the target registered for e.
func (s *Space) Remove(e ecs.Entity) bool {
	en, ok := s.targets[e]
	if !ok {
		return false
	}
	s.space.RemoveShape(en.shape)
	if !en.body.static {
		s.space.RemoveBody(en.body.body)
	}
	delete(s.shapes, en.shape)
	delete(s.targets, e)
	return true
}

// Body returns the body registered for e.
func (s *Space) Body(e ecs.Entity) (*Body, bool) {
	en, ok := s.targets[e]
	if !ok {
		return nil, false
	}
	return en.body, true
}

type segmentHit struct {
	shape  *cp.Shape
	point  cp.Vector
	normal cp.Vector
	alpha  float64
}

// Raycast returns the first surface along direction within maxDistance.
// Columns are hit on their sides only; the ground plane at z=0 catches rays
// pointing down.
func (s *Space) Raycast(origin, direction common.Vec3, maxDistance float64) system.HitOutcome {
	dir := direction.Normalize()
	if dir.IsZero() || maxDistance <= 0 {
		return system.HitOutcome{}
	}

	best := system.HitOutcome{Distance: math.Inf(1)}

	if s.floorEnabled && dir.Z < 0 && origin.Z >= 0 {
		t := -origin.Z / dir.Z
		if t <= maxDistance {
			p := origin.Add(dir.Scale(t))
			p.Z = 0
			best = system.HitOutcome{
				DidHit:       true,
				ImpactPoint:  p,
				ImpactNormal: common.V3(0, 0, 1),
				Target:       ecs.None,
				Distance:     t,
			}
		}
	}

	end := origin.Add(dir.Scale(maxDistance))
	start2 := cp.Vector{X: origin.X, Y: origin.Y}
	end2 := cp.Vector{X: end.X, Y: end.Y}

	if math.Hypot(end.X-origin.X, end.Y-origin.Y) > 1e-9 {
		var hits []segmentHit
		s.space.SegmentQuery(start2, end2, 0, cp.SHAPE_FILTER_ALL, func(shape *cp.Shape, point, normal cp.Vector, alpha float64, _ interface{}) {
			hits = append(hits, segmentHit{shape: shape, point: point, normal: normal, alpha: alpha})
		}, nil)
		sort.Slice(hits, func(i, j int) bool { return hits[i].alpha < hits[j].alpha })

		for _, h := range hits {
			en, ok := s.shapes[h.shape]
			if !ok {
				continue
			}
			t := h.alpha * maxDistance
			if t >= best.Distance {
				break
			}
			z := origin.Z + dir.Z*t
			if !en.column.contains(z) {
				continue
			}
			best = system.HitOutcome{
				DidHit:       true,
				ImpactPoint:  common.V3(h.point.X, h.point.Y, z),
				ImpactNormal: common.V3(h.normal.X, h.normal.Y, 0),
				Target:       en.entity,
				Region:       en.column.region(z),
				Distance:     t,
			}
			break
		}
	}

	if !best.DidHit {
		return system.HitOutcome{}
	}
	best.Direction = dir
	return best
}

// Within lists targets whose column comes within radius of center.
func (s *Space) Within(center common.Vec3, radius float64) []system.Contact {
	if radius <= 0 {
		return nil
	}
	var out []system.Contact
	s.space.PointQuery(cp.Vector{X: center.X, Y: center.Y}, radius, cp.SHAPE_FILTER_ALL, func(shape *cp.Shape, _ cp.Vector, distance float64, _ cp.Vector, _ interface{}) {
		en, ok := s.shapes[shape]
		if !ok || !en.entity.Valid() {
			return
		}
		flat := max(0, distance)
		z := common.Clamp(center.Z, en.column.Base, en.column.Top())
		d := math.Hypot(flat, z-center.Z)
		if d > radius {
			return
		}
		p := en.body.Position()
		p.Z = z
		out = append(out, system.Contact{Target: en.entity, Point: p, Distance: d})
	}, nil)
	sort.Slice(out, func(i, j int) bool { return out[i].Distance < out[j].Distance })
	return out
}

// Step advances bodies and grenades by dt seconds.
func (s *Space) Step(dt float64) {
	if dt <= 0 {
		return
	}
	s.space.Step(dt)
	s.stepGrenades(dt)
}

// Update steps the space by its fixed timestep.
func (s *Space) Update(*ecs.World) {
	s.Step(s.timestep)
}

// EachTarget visits every registered target.
func (s *Space) EachTarget(fn func(e ecs.Entity, pos common.Vec3, radius float64, column Column)) {
	for e, en := range s.targets {
		fn(e, en.body.Position(), en.radius, en.column)
	}
}

// EachWall visits every wall segment.
func (s *Space) EachWall(fn func(a, b common.Vec3, column Column)) {
	for _, en := range s.walls {
		fn(en.a, en.b, en.column)
	}
}
