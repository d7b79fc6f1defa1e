package main

import (
	"fmt"
	"math"
	"math/rand/v2"
	"path/filepath"
	"time"

	"github.com/ebitenui/ebitenui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/rs/zerolog"

	"github.com/milk9111/fpscore/character"
	"github.com/milk9111/fpscore/common"
	"github.com/milk9111/fpscore/component"
	"github.com/milk9111/fpscore/config"
	"github.com/milk9111/fpscore/ecs"
	"github.com/milk9111/fpscore/physics"
	"github.com/milk9111/fpscore/prefabs"
	"github.com/milk9111/fpscore/system"
	"github.com/milk9111/fpscore/timer"
)

const (
	baseWidth  = 1280
	baseHeight = 720

	feedSize   = 6
	pitchLimit = 30 * math.Pi / 180
	throwLift  = 0.35
)

type Game struct {
	settings config.Settings
	logger   zerolog.Logger
	tick     time.Duration

	world   *ecs.World
	space   *physics.Space
	sched   *timer.Scheduler
	rng     *prefabs.Range
	soldier *character.Character
	camera  *cameraRig
	fx      *effects
	watcher *prefabs.Watcher

	heading float64
	pitch   float64
	moving  float64

	lastHit system.HitOutcome
	feed    []string
	frames  int

	pauseUI *ebitenui.UI
	paused  bool
	quit    bool
}

func NewGame(settings config.Settings, logger zerolog.Logger, seed uint64) (*Game, error) {
	g := &Game{
		settings: settings,
		logger:   logger.With().Str("component", "range").Logger(),
		tick:     settings.Tick(),
		world:    ecs.NewWorld(),
		sched:    timer.New(),
		camera:   &cameraRig{},
		fx:       &effects{},
	}
	g.space = physics.NewSpace(
		physics.WithLogger(logger),
		physics.WithTimestep(g.tick.Seconds()),
	)

	rangeSpec, err := prefabs.LoadRange(settings.RangeFile)
	if err != nil {
		return nil, err
	}
	g.rng, err = prefabs.BuildRange(rangeSpec, g.world, g.space)
	if err != nil {
		return nil, err
	}
	g.heading = rangeSpec.Shooter.Heading * math.Pi / 180

	loadout, err := prefabs.LoadLoadout(settings.LoadoutFile)
	if err != nil {
		return nil, err
	}

	emitter := &component.CombatEventEmitter{}
	emitter.Subscribe(g.world.Events().Handle)
	emitter.Subscribe(g.onCombatEvent)

	g.soldier, err = character.New(loadout, character.Deps{
		Scheduler:   g.sched,
		Query:       g.space,
		World:       g.world,
		Projectiles: g.space,
		Camera:      g.camera,
		Effects:     g.fx,
		Emitter:     emitter,
		Rand:        rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
		Proximity:   g.space,
		Detonator:   g.space,
		Logger:      logger,
	})
	if err != nil {
		return nil, err
	}
	g.soldier.SetPosition(rangeSpec.Shooter.Position.Vec3())

	sweeper := physics.NewSweeper(g.space, logger)
	g.world.AddSystem(g.space)
	g.world.AddSystem(system.NewReactionSystem(g.tick))
	g.world.AddSystem(sweeper)

	if settings.Watch {
		w, err := prefabs.NewWatcher(prefabs.Dir, filepath.Join(prefabs.Dir, "scripts"))
		if err != nil {
			g.logger.Warn().Err(err).Str("dir", prefabs.Dir).Msg("hot reload disabled")
		} else {
			g.watcher = w
		}
	}
	g.pauseUI = NewPauseUI(g)
	return g, nil
}

func (g *Game) Close() {
	if g.watcher != nil {
		_ = g.watcher.Close()
	}
	g.soldier.Destroy()
}

func (g *Game) Update() error {
	g.frames++
	if g.quit {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		g.paused = !g.paused
	}

	g.pollWatcher()
	if g.paused {
		g.pauseUI.Update()
		return nil
	}
	g.handleModes()
	g.handleMovement()
	g.handleActions()

	g.sched.Advance(g.tick)
	g.world.Update()
	g.fx.tick()
	return nil
}

func (g *Game) handleModes() {
	s := g.soldier
	if inpututil.IsKeyJustPressed(ebiten.KeyC) {
		s.SetMovementMode(component.ModeCrouch, !s.Locomotion().Active(component.ModeCrouch))
	}
	s.SetMovementMode(component.ModeAim, ebiten.IsMouseButtonPressed(ebiten.MouseButtonRight))
	s.SetMovementMode(component.ModeWalk, ebiten.IsKeyPressed(ebiten.KeyAlt))
	s.SetMovementMode(component.ModeSprint, ebiten.IsKeyPressed(ebiten.KeyShift))
}

func (g *Game) handleMovement() {
	_, wy := ebiten.Wheel()
	g.pitch = common.Clamp(g.pitch+wy*0.01, -pitchLimit, pitchLimit)

	pos := g.soldier.Position()
	mx, my := ebiten.CursorPosition()
	if aim := screenToWorld(float64(mx), float64(my)).Sub(pos); aim.X != 0 || aim.Y != 0 {
		g.heading = math.Atan2(aim.Y, aim.X)
	}

	var move common.Vec3
	if ebiten.IsKeyPressed(ebiten.KeyW) {
		move.Y--
	}
	if ebiten.IsKeyPressed(ebiten.KeyS) {
		move.Y++
	}
	if ebiten.IsKeyPressed(ebiten.KeyA) {
		move.X--
	}
	if ebiten.IsKeyPressed(ebiten.KeyD) {
		move.X++
	}
	move = move.Normalize()
	if move.IsZero() {
		g.moving = 0
		return
	}

	speed := g.soldier.Locomotion().MaxSpeed()
	g.moving = speed
	g.soldier.SetPosition(pos.Add(move.Scale(speed * g.tick.Seconds())))
}

func (g *Game) handleActions() {
	s := g.soldier
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		s.Reload()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyG) {
		s.ThrowGrenade(g.forward().Add(common.V3(0, 0, throwLift)))
	}
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		eye := g.eye()
		hit, fired := s.Fire(system.Shot{
			Shooter: eye,
			Origin:  eye,
			Forward: g.forward(),
			Speed:   g.moving,
		})
		if fired {
			g.lastHit = hit
		}
	}
}

func (g *Game) eye() common.Vec3 {
	p := g.soldier.Position()
	p.Z += g.rng.Spec.Shooter.EyeHeight + g.camera.offset
	return p
}

func (g *Game) forward() common.Vec3 {
	cp := math.Cos(g.pitch)
	return common.V3(math.Cos(g.heading)*cp, math.Sin(g.heading)*cp, math.Sin(g.pitch))
}

func (g *Game) onCombatEvent(evt component.CombatEvent) {
	name := fmt.Sprintf("#%d", evt.TargetID)
	if e, ok := g.world.Lookup(evt.TargetID); ok {
		if n := g.world.Name(e); n != "" {
			name = n
		}
	}

	var line string
	switch evt.Type {
	case component.EventDamageApplied:
		region := "body"
		if evt.Region == component.RegionHead {
			region = "head"
		}
		line = fmt.Sprintf("%s -%.0f (%s, %.0fu)", name, evt.Damage, region, evt.Distance)
	case component.EventDeath:
		line = name + " down"
	default:
		return
	}
	g.feed = append(g.feed, line)
	if len(g.feed) > feedSize {
		g.feed = g.feed[len(g.feed)-feedSize:]
	}
}

// pollWatcher applies loadout edits without blocking the frame.
func (g *Game) pollWatcher() {
	if g.watcher == nil {
		return
	}
	for {
		select {
		case change, ok := <-g.watcher.Changes:
			if !ok {
				g.watcher = nil
				return
			}
			g.reload(change)
		case err, ok := <-g.watcher.Errors:
			if !ok {
				g.watcher = nil
				return
			}
			g.logger.Error().Err(err).Msg("prefab watcher")
		default:
			return
		}
	}
}

func (g *Game) reload(change prefabs.Change) {
	base := filepath.Base(change.Path)
	if base == filepath.Base(g.settings.RangeFile) {
		g.logger.Info().Str("file", base).Msg("range changed, restart to rebuild")
		return
	}
	if change.Kind != prefabs.ScriptChanged && base != filepath.Base(g.settings.LoadoutFile) {
		return
	}
	g.reloadLoadout(base)
}

// reloadLoadout retunes the soldier from the loadout file on disk.
func (g *Game) reloadLoadout(trigger string) {
	spec, err := prefabs.LoadLoadout(g.settings.LoadoutFile)
	if err != nil {
		g.logger.Error().Err(err).Msg("loadout reload")
		return
	}
	if err := g.soldier.Retune(spec); err != nil {
		g.logger.Error().Err(err).Msg("loadout reload")
		return
	}
	g.logger.Info().Str("trigger", trigger).Str("loadout", spec.Name).Msg("loadout reloaded")
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return baseWidth, baseHeight
}
