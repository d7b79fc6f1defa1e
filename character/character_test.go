package character

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/milk9111/fpscore/common"
	"github.com/milk9111/fpscore/component"
	"github.com/milk9111/fpscore/ecs"
	"github.com/milk9111/fpscore/physics"
	"github.com/milk9111/fpscore/prefabs"
	"github.com/milk9111/fpscore/system"
	"github.com/milk9111/fpscore/timer"
)

type missQuery struct{ casts int }

func (q *missQuery) Raycast(common.Vec3, common.Vec3, float64) system.HitOutcome {
	q.casts++
	return system.HitOutcome{}
}

type fakeProjectiles struct {
	fail      error
	next      component.ProjectileHandle
	spawnedAt []common.Vec3
	impulses  []common.Vec3
	detonated []component.ProjectileHandle
}

func (p *fakeProjectiles) SpawnGrenade(pos, _ common.Vec3) (component.ProjectileHandle, error) {
	if p.fail != nil {
		return 0, p.fail
	}
	p.next++
	p.spawnedAt = append(p.spawnedAt, pos)
	return p.next, nil
}

func (p *fakeProjectiles) ApplyImpulse(_ component.ProjectileHandle, impulse common.Vec3) {
	p.impulses = append(p.impulses, impulse)
}

func (p *fakeProjectiles) Detonate(h component.ProjectileHandle) (common.Vec3, bool) {
	p.detonated = append(p.detonated, h)
	return common.V3(100, 0, 0), true
}

type fixedProximity struct{ contacts []system.Contact }

func (p fixedProximity) Within(common.Vec3, float64) []system.Contact { return p.contacts }

type harness struct {
	sched *timer.Scheduler
	query *missQuery
	world *ecs.World
	proj  *fakeProjectiles
	c     *Character
}

func soldier(t *testing.T) prefabs.LoadoutSpec {
	t.Helper()
	spec, err := prefabs.LoadLoadout("soldier.yaml")
	require.NoError(t, err)
	return spec
}

func newHarness(t *testing.T, spec prefabs.LoadoutSpec, mutate ...func(*Deps)) *harness {
	t.Helper()
	h := &harness{
		sched: timer.New(),
		query: &missQuery{},
		world: ecs.NewWorld(),
		proj:  &fakeProjectiles{},
	}
	deps := Deps{
		Scheduler:   h.sched,
		Query:       h.query,
		World:       h.world,
		Projectiles: h.proj,
	}
	for _, m := range mutate {
		m(&deps)
	}
	c, err := New(spec, deps)
	require.NoError(t, err)
	h.c = c
	return h
}

var still = system.Shot{Forward: common.V3(1, 0, 0)}

func TestReloadScenario(t *testing.T) {
	h := newHarness(t, soldier(t))
	c := h.c

	for i := 0; i < 30; i++ {
		_, ok := c.Fire(still)
		require.True(t, ok, "shot %d", i)
	}
	assert.Equal(t, 30, h.query.casts)

	ammo := c.Ammo()
	assert.True(t, ammo.Reloading())
	assert.Equal(t, 30, ammo.Current)
	assert.Equal(t, 90, ammo.Reserve)
	assert.False(t, ammo.CanFire())
	assert.Equal(t, 270.0, c.Locomotion().MaxSpeed())

	_, ok := c.Fire(still)
	assert.False(t, ok)
	assert.False(t, c.Reload(), "reload while reloading")

	h.sched.Advance(1999 * time.Millisecond)
	assert.True(t, ammo.Reloading())

	h.sched.Advance(time.Millisecond)
	assert.False(t, ammo.Reloading())
	assert.True(t, ammo.CanFire())
	assert.Equal(t, 600.0, c.Locomotion().MaxSpeed())

	_, ok = c.Fire(still)
	assert.True(t, ok)
	assert.Equal(t, 29, ammo.Current)
}

func TestReloadIgnoredWithFullMagazine(t *testing.T) {
	h := newHarness(t, soldier(t))
	assert.False(t, h.c.Reload())
	assert.Zero(t, h.sched.Len())
	assert.Equal(t, 600.0, h.c.Locomotion().MaxSpeed())
}

func TestFireOnEmptyMagazineStartsReload(t *testing.T) {
	h := newHarness(t, soldier(t))
	h.c.Ammo().Current = 0

	_, ok := h.c.Fire(still)
	assert.False(t, ok)
	assert.Zero(t, h.query.casts)
	assert.True(t, h.c.Ammo().Reloading())
	assert.Equal(t, 30, h.c.Ammo().Current)
}

func TestOutOfAmmo(t *testing.T) {
	spec := soldier(t)
	spec.Weapon.Capacity = 2
	spec.Weapon.Reserve = 0
	h := newHarness(t, spec)

	h.c.Fire(still)
	h.c.Fire(still)
	_, ok := h.c.Fire(still)
	assert.False(t, ok)
	assert.True(t, h.c.Ammo().Exhausted())
	assert.False(t, h.c.Ammo().CanFire())
	assert.Zero(t, h.sched.Len())
}

func TestReloadKeepsWalkSpeedWhileAiming(t *testing.T) {
	h := newHarness(t, soldier(t))
	c := h.c

	require.True(t, c.SetMovementMode(component.ModeAim, true))
	for i := 0; i < 30; i++ {
		c.Fire(still)
	}
	require.True(t, c.Ammo().Reloading())

	h.sched.Advance(2 * time.Second)
	assert.Equal(t, 270.0, c.Locomotion().MaxSpeed(), "aim still held")

	c.SetMovementMode(component.ModeAim, false)
	assert.Equal(t, 600.0, c.Locomotion().MaxSpeed())
}

func TestReloadWhileSprinting(t *testing.T) {
	h := newHarness(t, soldier(t))
	c := h.c
	c.Ammo().Current = 10

	require.True(t, c.SetMovementMode(component.ModeSprint, true))
	_, ok := c.Fire(still)
	assert.False(t, ok, "cannot fire while sprinting")
	assert.Equal(t, 10, c.Ammo().Current)

	require.True(t, c.Reload())
	assert.Equal(t, 270.0, c.Locomotion().MaxSpeed())

	h.sched.Advance(2 * time.Second)
	assert.Equal(t, 600.0, c.Locomotion().MaxSpeed())
	_, ok = c.Fire(still)
	assert.False(t, ok, "sprint still held")

	require.True(t, c.SetMovementMode(component.ModeSprint, false))
	_, ok = c.Fire(still)
	assert.True(t, ok)
	assert.Equal(t, 29, c.Ammo().Current)
}

func TestAimReleaseWhileCrouchedRestoresBaseSpeed(t *testing.T) {
	h := newHarness(t, soldier(t))
	c := h.c

	c.SetMovementMode(component.ModeCrouch, true)
	c.SetMovementMode(component.ModeAim, true)
	c.SetMovementMode(component.ModeAim, false)
	assert.Equal(t, 600.0, c.Locomotion().MaxSpeed())
	assert.True(t, c.Locomotion().Active(component.ModeCrouch))
}

func TestSetMovementModeRejectsReload(t *testing.T) {
	h := newHarness(t, soldier(t))
	assert.False(t, h.c.SetMovementMode(component.ModeReload, true))
	assert.False(t, h.c.Locomotion().Active(component.ModeReload))
}

func TestGrenadeScenario(t *testing.T) {
	spec := soldier(t)
	spec.Grenade.FuseSeconds = 0
	h := newHarness(t, spec)
	c := h.c
	c.SetPosition(common.V3(100, 200, 0))
	aim := common.V3(0, 2, 0)

	for i := 0; i < 5; i++ {
		require.True(t, c.ThrowGrenade(aim), "throw %d", i)
		assert.False(t, c.ThrowGrenade(aim), "cooldown after throw %d", i)
		h.sched.Advance(5 * time.Second)
	}

	assert.Zero(t, c.Grenades().Count)
	assert.False(t, c.ThrowGrenade(aim))
	require.Len(t, h.proj.spawnedAt, 5)
	assert.Equal(t, common.V3(110, 230, 10), h.proj.spawnedAt[0])
	assert.Equal(t, common.V3(0, 30000, 0), h.proj.impulses[0])
}

func TestGrenadeRejections(t *testing.T) {
	t.Run("zero_direction", func(t *testing.T) {
		h := newHarness(t, soldier(t))
		assert.False(t, h.c.ThrowGrenade(common.Vec3{}))
		assert.Equal(t, 5, h.c.Grenades().Count)
		assert.False(t, h.c.Grenades().OnCooldown())
	})

	t.Run("spawn_failure_consumes_nothing", func(t *testing.T) {
		h := newHarness(t, soldier(t))
		h.proj.fail = errors.New("no room")
		assert.False(t, h.c.ThrowGrenade(common.V3(1, 0, 0)))
		assert.Equal(t, 5, h.c.Grenades().Count)
		assert.False(t, h.c.Grenades().OnCooldown())
		assert.Zero(t, h.sched.Len())
	})
}

func TestGrenadeFuseDetonates(t *testing.T) {
	world := ecs.NewWorld()
	dummy := world.CreateEntity()
	hp := component.NewHealthPool(100, 0)
	world.SetHealth(dummy, hp)

	prox := fixedProximity{contacts: []system.Contact{{Target: dummy, Point: common.V3(100, 250, 0), Distance: 250}}}
	h := newHarness(t, soldier(t), func(d *Deps) {
		d.World = world
		d.Proximity = prox
		d.Detonator = d.Projectiles.(*fakeProjectiles)
	})

	require.True(t, h.c.ThrowGrenade(common.V3(1, 0, 0)))
	assert.Equal(t, 1, h.c.PendingFuses())

	h.sched.Advance(2999 * time.Millisecond)
	assert.Empty(t, h.proj.detonated)

	h.sched.Advance(time.Millisecond)
	assert.Equal(t, []component.ProjectileHandle{1}, h.proj.detonated)
	assert.Zero(t, h.c.PendingFuses())
	// 80 damage at half the 500 blast radius
	assert.InDelta(t, 60.0, hp.Current, 1e-9)
}

func TestDestroyCancelsTimers(t *testing.T) {
	h := newHarness(t, soldier(t), func(d *Deps) {
		d.Detonator = d.Projectiles.(*fakeProjectiles)
		d.Proximity = fixedProximity{}
	})
	c := h.c

	c.Ammo().Current = 0
	c.Fire(still)
	require.True(t, c.ThrowGrenade(common.V3(1, 0, 0)))
	require.Equal(t, 3, h.sched.Len())

	c.Destroy()
	assert.Zero(t, h.sched.Len())
	assert.Zero(t, h.sched.Advance(10*time.Second))
	assert.True(t, c.Ammo().Reloading(), "reload never completes after teardown")
	assert.Empty(t, h.proj.detonated)

	_, ok := c.Fire(still)
	assert.False(t, ok)
	assert.False(t, c.Reload())
	assert.False(t, c.ThrowGrenade(common.V3(1, 0, 0)))
	assert.False(t, c.SetMovementMode(component.ModeCrouch, true))
	c.Destroy()
	assert.True(t, c.Destroyed())
}

func TestNewErrors(t *testing.T) {
	spec := soldier(t)
	full := Deps{
		Scheduler:   timer.New(),
		Query:       &missQuery{},
		World:       ecs.NewWorld(),
		Projectiles: &fakeProjectiles{},
	}

	missing := []struct {
		name  string
		strip func(*Deps)
	}{
		{"scheduler", func(d *Deps) { d.Scheduler = nil }},
		{"query", func(d *Deps) { d.Query = nil }},
		{"world", func(d *Deps) { d.World = nil }},
		{"projectiles", func(d *Deps) { d.Projectiles = nil }},
	}
	for _, m := range missing {
		t.Run("missing_"+m.name, func(t *testing.T) {
			d := full
			m.strip(&d)
			_, err := New(spec, d)
			assert.ErrorIs(t, err, ErrMissingDependency)
		})
	}

	invalid := []struct {
		name   string
		mutate func(*prefabs.LoadoutSpec)
	}{
		{"speed_order", func(s *prefabs.LoadoutSpec) { s.Locomotion.WalkSpeed = 700 }},
		{"zero_capacity", func(s *prefabs.LoadoutSpec) { s.Weapon.Capacity = 0 }},
		{"negative_reserve", func(s *prefabs.LoadoutSpec) { s.Weapon.Reserve = -1 }},
		{"zero_range", func(s *prefabs.LoadoutSpec) { s.Weapon.MaxRange = 0 }},
		{"negative_grenades", func(s *prefabs.LoadoutSpec) { s.Grenade.Count = -1 }},
		{"negative_cooldown", func(s *prefabs.LoadoutSpec) { s.Grenade.CooldownSeconds = -1 }},
	}
	for _, tc := range invalid {
		t.Run("invalid_"+tc.name, func(t *testing.T) {
			s := spec
			tc.mutate(&s)
			_, err := New(s, full)
			assert.ErrorIs(t, err, ErrInvalidLoadout)
		})
	}

	t.Run("missing_script", func(t *testing.T) {
		s := spec
		s.Weapon.DamageScript = "nope.tengo"
		_, err := New(s, full)
		assert.Error(t, err)
	})
}

func TestRetuneKeepsCounters(t *testing.T) {
	h := newHarness(t, soldier(t))
	c := h.c
	c.Fire(still)
	c.SetMovementMode(component.ModeSprint, true)

	spec := soldier(t)
	spec.Locomotion.SprintSpeed = 1200
	spec.Weapon.ReloadSeconds = 1
	require.NoError(t, c.Retune(spec))

	assert.Equal(t, 29, c.Ammo().Current)
	assert.Equal(t, 1200.0, c.Locomotion().MaxSpeed())
	assert.Equal(t, time.Second, c.Ammo().ReloadDuration)

	spec.Weapon.Capacity = 0
	assert.ErrorIs(t, c.Retune(spec), ErrInvalidLoadout)
	assert.Equal(t, 1200.0, c.Locomotion().MaxSpeed())
}

func TestRetuneLeavesSizingToNewCharacters(t *testing.T) {
	h := newHarness(t, soldier(t))
	c := h.c

	spec := soldier(t)
	spec.Weapon.Capacity = 50
	spec.Weapon.Reserve = 300
	spec.Grenade.Count = 9
	spec.Weapon.HeadDamage = 80
	require.NoError(t, c.Retune(spec))

	assert.Equal(t, 30, c.Ammo().Capacity)
	assert.Equal(t, 120, c.Ammo().Reserve)
	assert.Equal(t, 5, c.Grenades().Count)
	assert.Equal(t, 30, c.Spec().Weapon.Capacity)
	assert.Equal(t, 120, c.Spec().Weapon.Reserve)
	assert.Equal(t, 5, c.Spec().Grenade.Count)
	assert.Equal(t, 80.0, c.Spec().Weapon.HeadDamage)
}

func TestFireAgainstRange(t *testing.T) {
	world := ecs.NewWorld()
	space := physics.NewSpace()
	rangeSpec, err := prefabs.LoadRange("range.yaml")
	require.NoError(t, err)
	r, err := prefabs.BuildRange(rangeSpec, world, space)
	require.NoError(t, err)

	c, err := New(soldier(t), Deps{
		Scheduler:   timer.New(),
		Query:       space,
		World:       world,
		Projectiles: space,
		Proximity:   space,
		Detonator:   space,
	})
	require.NoError(t, err)

	eye := r.Eye()
	head := common.V3(800, -200, 0)
	hit, ok := c.Fire(system.Shot{Shooter: eye, Origin: eye, Forward: head.Normalize()})
	require.True(t, ok)
	require.True(t, hit.DidHit)
	assert.Equal(t, component.RegionHead, hit.Region)

	target := r.Targets["dummy_near"]
	assert.Equal(t, target, hit.Target)
	assert.Equal(t, 50.0, world.Health(target).Current)
	reaction, ok := world.ReactiveTarget(target).(*component.HitReaction)
	require.True(t, ok)
	assert.Equal(t, 1, reaction.Hits)
}

func TestScriptedLoadout(t *testing.T) {
	spec, err := prefabs.LoadLoadout("soldier_scripted.yaml")
	require.NoError(t, err)

	h := newHarness(t, spec)
	_, ok := h.c.Fire(still)
	assert.True(t, ok)
	assert.Equal(t, "damage.tengo", h.c.Spec().Weapon.DamageScript)
}
