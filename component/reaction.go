package component

import "time"

// HitReaction is a practice target that flinches when struck.
type HitReaction struct {
	Hits    int
	Flash   time.Duration
	Recover time.Duration
}

func NewHitReaction(flinch time.Duration) *HitReaction {
	return &HitReaction{Recover: flinch}
}

func (r *HitReaction) OnHit() {
	r.Hits++
	r.Flash = r.Recover
}

// Decay shortens the current flinch by dt.
func (r *HitReaction) Decay(dt time.Duration) {
	r.Flash = max(0, r.Flash-dt)
}

func (r *HitReaction) Flinching() bool { return r.Flash > 0 }
