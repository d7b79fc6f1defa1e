package physics

import (
	"github.com/rs/zerolog"

	"github.com/milk9111/fpscore/component"
	"github.com/milk9111/fpscore/ecs"
)

// Sweeper drains the world event queue and removes targets that died this
// frame from both the world and the space. Register it after systems that
// read events.
type Sweeper struct {
	space  *Space
	logger zerolog.Logger

	// OnRemoved is called for every swept entity.
	OnRemoved func(e ecs.Entity)
}

func NewSweeper(space *Space, logger zerolog.Logger) *Sweeper {
	return &Sweeper{
		space:  space,
		logger: logger.With().Str("component", "sweeper").Logger(),
	}
}

func (s *Sweeper) Update(w *ecs.World) {
	if w == nil {
		return
	}
	for _, evt := range w.Events().Drain() {
		if evt.Type != component.EventDeath {
			continue
		}
		e, ok := w.Lookup(evt.TargetID)
		if !ok {
			continue
		}
		name := w.Name(e)
		if s.space != nil {
			s.space.Remove(e)
		}
		w.DestroyEntity(e)
		if s.OnRemoved != nil {
			s.OnRemoved(e)
		}
		s.logger.Info().Str("target", name).Stringer("entity", e).Msg("target removed")
	}
}
