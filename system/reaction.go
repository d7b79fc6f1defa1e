package system

import (
	"time"

	"github.com/milk9111/fpscore/component"
	"github.com/milk9111/fpscore/ecs"
)

// ReactionSystem fades hit reactions by one frame each update.
type ReactionSystem struct {
	Frame time.Duration
}

func NewReactionSystem(frame time.Duration) *ReactionSystem {
	return &ReactionSystem{Frame: frame}
}

func (s *ReactionSystem) Update(w *ecs.World) {
	if w == nil || s.Frame <= 0 {
		return
	}
	w.Reactions().Each(func(_ int, r component.ReactiveTarget) {
		if hr, ok := r.(*component.HitReaction); ok {
			hr.Decay(s.Frame)
		}
	})
}
