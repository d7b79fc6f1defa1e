package main

import (
	"github.com/milk9111/fpscore/common"
	"github.com/milk9111/fpscore/component"
)

// cameraRig records what the character asks of the camera so the HUD can
// show it.
type cameraRig struct {
	view   component.View
	offset float64
}

func (r *cameraRig) SetActiveView(v component.View) { r.view = v }

func (r *cameraRig) ApplyVerticalOffset(dz float64) { r.offset += dz }

const (
	tracerFrames = 6
	impactFrames = 30
)

type mark struct {
	at, dir common.Vec3
	ttl     int
}

// effects keeps short-lived muzzle and impact markers for drawing.
type effects struct {
	muzzles []mark
	impacts []mark
}

func (f *effects) FireEffects(origin, forward common.Vec3) {
	f.muzzles = append(f.muzzles, mark{at: origin, dir: forward, ttl: tracerFrames})
}

func (f *effects) ImpactEffect(point, normal common.Vec3) {
	f.impacts = append(f.impacts, mark{at: point, dir: normal, ttl: impactFrames})
}

func (f *effects) tick() {
	f.muzzles = age(f.muzzles)
	f.impacts = age(f.impacts)
}

func age(marks []mark) []mark {
	out := marks[:0]
	for _, m := range marks {
		m.ttl--
		if m.ttl > 0 {
			out = append(out, m)
		}
	}
	return out
}
