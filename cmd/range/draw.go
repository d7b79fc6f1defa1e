package main

import (
	"fmt"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/colornames"
	"golang.org/x/image/font/basicfont"

	"github.com/milk9111/fpscore/common"
	"github.com/milk9111/fpscore/component"
	"github.com/milk9111/fpscore/ecs"
	"github.com/milk9111/fpscore/physics"
)

// top-down projection of the range
const (
	worldScale = 0.25
	originX    = 120.0
	originY    = baseHeight / 2
	lineHeight = 16

	// seconds of travel shown behind a moving body
	motionTrail = 0.1
)

var hudFace = text.NewGoXFace(basicfont.Face7x13)

func worldToScreen(p common.Vec3) (float32, float32) {
	return float32(originX + p.X*worldScale), float32(originY + p.Y*worldScale)
}

func screenToWorld(x, y float64) common.Vec3 {
	return common.V3((x-originX)/worldScale, (y-originY)/worldScale, 0)
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{R: 0x18, G: 0x1c, B: 0x20, A: 0xff})

	g.space.EachWall(func(a, b common.Vec3, _ physics.Column) {
		ax, ay := worldToScreen(a)
		bx, by := worldToScreen(b)
		vector.StrokeLine(screen, ax, ay, bx, by, 3, colornames.Lightgrey, true)
	})
	g.space.EachTarget(func(e ecs.Entity, pos common.Vec3, radius float64, _ physics.Column) {
		g.drawTarget(screen, e, pos, radius)
	})
	g.space.EachGrenade(func(_ component.ProjectileHandle, pos common.Vec3) {
		x, y := worldToScreen(pos)
		vector.FillCircle(screen, x, y, 4, colornames.Orange, true)
	})

	for _, m := range g.fx.muzzles {
		end := m.at.Add(m.dir.Scale(g.soldier.Spec().Weapon.MaxRange))
		if g.lastHit.DidHit {
			end = g.lastHit.ImpactPoint
		}
		ax, ay := worldToScreen(m.at)
		bx, by := worldToScreen(end)
		vector.StrokeLine(screen, ax, ay, bx, by, 1, colornames.Yellow, true)
	}
	for _, m := range g.fx.impacts {
		x, y := worldToScreen(m.at)
		vector.StrokeCircle(screen, x, y, 5, 1, colornames.White, true)
	}

	g.drawShooter(screen)
	g.drawHUD(screen)
	if g.paused {
		g.pauseUI.Draw(screen)
	}
}

func (g *Game) drawTarget(screen *ebiten.Image, e ecs.Entity, pos common.Vec3, radius float64) {
	x, y := worldToScreen(pos)
	r := float32(radius * worldScale)

	var fill color.Color = colornames.Slategray
	if hp := g.world.Health(e); hp != nil {
		fill = colornames.Seagreen
		if hp.ShieldActive {
			fill = colornames.Steelblue
		}
	}
	if react, ok := g.world.ReactiveTarget(e).(*component.HitReaction); ok && react.Flinching() {
		fill = colornames.Crimson
	}
	vector.FillCircle(screen, x, y, r, fill, true)

	if body, ok := g.space.Body(e); ok {
		if v := body.Velocity(); !v.IsZero() {
			tx, ty := worldToScreen(pos.Sub(v.Scale(motionTrail)))
			vector.StrokeLine(screen, x, y, tx, ty, 2, colornames.Lightgrey, true)
		}
	}

	if hp := g.world.Health(e); hp != nil && hp.Full > 0 {
		w := float32(radius * 2 * worldScale)
		frac := float32(hp.Current / hp.Full)
		vector.FillRect(screen, x-w/2, y-r-6, w, 3, colornames.Darkred, false)
		vector.FillRect(screen, x-w/2, y-r-6, w*frac, 3, colornames.Limegreen, false)
	}
}

func (g *Game) drawShooter(screen *ebiten.Image) {
	x, y := worldToScreen(g.soldier.Position())
	vector.FillCircle(screen, x, y, 6, colornames.Gold, true)

	reach := 60.0
	if g.camera.view == component.ViewAim {
		reach = 120
	}
	fx := x + float32(math.Cos(g.heading)*reach)
	fy := y + float32(math.Sin(g.heading)*reach)
	vector.StrokeLine(screen, x, y, fx, fy, 1, colornames.Gold, true)
}

func (g *Game) drawHUD(screen *ebiten.Image) {
	s := g.soldier
	ammo, loco, nades := s.Ammo(), s.Locomotion(), s.Grenades()

	status := ""
	switch {
	case ammo.Reloading():
		status = " RELOADING"
	case ammo.Exhausted():
		status = " OUT"
	}

	lines := []string{
		fmt.Sprintf("%s  FPS %.0f", s.Spec().Name, ebiten.ActualFPS()),
		fmt.Sprintf("ammo %d/%d%s", ammo.Current, ammo.Reserve, status),
		fmt.Sprintf("grenades %d  cooldown %t  fuses %d", nades.Count, nades.OnCooldown(), s.PendingFuses()),
		fmt.Sprintf("speed %.0f  view %s  pitch %.0f", loco.MaxSpeed(), g.camera.view, g.pitch*180/math.Pi),
		fmt.Sprintf("modes %s", modeList(loco)),
		fmt.Sprintf("targets standing %d", len(ecs.IntersectEntities(g.world.Healths(), g.world.Names()))),
		"",
	}
	lines = append(lines, g.feed...)

	op := &text.DrawOptions{}
	op.ColorScale.ScaleWithColor(colornames.White)
	op.GeoM.Translate(8, 8)
	for _, l := range lines {
		text.Draw(screen, l, hudFace, op)
		op.GeoM.Translate(0, lineHeight)
	}
}

func modeList(l *component.Locomotion) string {
	out := ""
	for _, m := range []component.Mode{component.ModeCrouch, component.ModeAim, component.ModeSprint, component.ModeReload, component.ModeWalk} {
		if l.Active(m) {
			if out != "" {
				out += " "
			}
			out += m.String()
		}
	}
	if out == "" {
		return "-"
	}
	return out
}
