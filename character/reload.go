package character

import "github.com/milk9111/fpscore/component"

// Reload starts a reload. Rounds move from the reserve at once; the trigger
// reopens when the reload duration has passed. Calls while reloading, with a
// full magazine or with no reserve are ignored.
func (c *Character) Reload() bool {
	if c.destroyed {
		return false
	}
	moved, ok := c.ammo.BeginReload()
	if !ok {
		if c.ammo.Exhausted() {
			c.logger.Debug().Msg("out of ammo")
		}
		return false
	}

	c.locomotion.SetMode(component.ModeReload, true)
	c.reloadTimer = c.deps.Scheduler.Schedule(c.ammo.ReloadDuration, c.finishReload)

	c.logger.Debug().
		Int("moved", moved).
		Int("current", c.ammo.Current).
		Int("reserve", c.ammo.Reserve).
		Dur("duration", c.ammo.ReloadDuration).
		Msg("reload started")
	return true
}

func (c *Character) finishReload() {
	c.reloadTimer = 0
	if c.destroyed {
		return
	}
	c.ammo.FinishReload()
	c.locomotion.SetMode(component.ModeReload, false)
	c.logger.Debug().Float64("max_speed", c.locomotion.MaxSpeed()).Msg("reload finished")
}
