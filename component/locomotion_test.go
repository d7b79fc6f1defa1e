package component

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingCamera struct {
	views   []View
	offsets []float64
}

func (c *recordingCamera) SetActiveView(v View)            { c.views = append(c.views, v) }
func (c *recordingCamera) ApplyVerticalOffset(dz float64) { c.offsets = append(c.offsets, dz) }

func (c *recordingCamera) netOffset() float64 {
	total := 0.0
	for _, o := range c.offsets {
		total += o
	}
	return total
}

type toggle struct {
	mode    Mode
	enabled bool
}

func newTestLocomotion(cam CameraRig) *Locomotion {
	return NewLocomotion(600, 270, 900, -40, cam)
}

func TestLocomotionSpeedPrecedence(t *testing.T) {
	cases := []struct {
		name      string
		steps     []toggle
		speed     float64
		canFire   bool
		canCrouch bool
	}{
		{"rest", nil, 600, true, true},
		{"sprint", []toggle{{ModeSprint, true}}, 900, false, false},
		{"sprint_then_stop", []toggle{{ModeSprint, true}, {ModeSprint, false}}, 600, true, true},
		{"crouch", []toggle{{ModeCrouch, true}}, 270, true, true},
		{"aim", []toggle{{ModeAim, true}}, 270, true, true},
		{"walk", []toggle{{ModeWalk, true}}, 270, true, true},
		{"reload", []toggle{{ModeReload, true}}, 270, true, true},
		{"aim_while_sprinting", []toggle{{ModeSprint, true}, {ModeAim, true}}, 270, false, false},
		{"reload_while_sprinting", []toggle{{ModeSprint, true}, {ModeReload, true}}, 270, false, false},
		{"crouch_refused_while_sprinting", []toggle{{ModeSprint, true}, {ModeCrouch, true}}, 900, false, false},
		{"sprint_while_crouched", []toggle{{ModeCrouch, true}, {ModeSprint, true}}, 900, false, false},
		{"sprint_off_while_aiming", []toggle{{ModeAim, true}, {ModeSprint, true}, {ModeSprint, false}}, 600, true, true},
		{"reload_done_while_aiming", []toggle{{ModeAim, true}, {ModeReload, true}, {ModeReload, false}}, 270, true, true},
		{"reload_done_while_crouched", []toggle{{ModeCrouch, true}, {ModeReload, true}, {ModeReload, false}}, 270, true, true},
		{"aim_off_while_reloading", []toggle{{ModeReload, true}, {ModeAim, true}, {ModeAim, false}}, 270, true, true},
		{"aim_off_while_crouched", []toggle{{ModeCrouch, true}, {ModeAim, true}, {ModeAim, false}}, 600, true, true},
		{"crouch_off_while_aiming", []toggle{{ModeCrouch, true}, {ModeAim, true}, {ModeCrouch, false}}, 270, true, true},
		{"crouch_off_while_reloading", []toggle{{ModeReload, true}, {ModeCrouch, true}, {ModeCrouch, false}}, 600, true, true},
		{"walk_off_while_crouched", []toggle{{ModeCrouch, true}, {ModeWalk, true}, {ModeWalk, false}}, 600, true, true},
		{"everything_released", []toggle{{ModeCrouch, true}, {ModeAim, true}, {ModeReload, true}, {ModeCrouch, false}, {ModeAim, false}, {ModeReload, false}}, 600, true, true},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			l := newTestLocomotion(nil)
			for _, s := range c.steps {
				l.SetMode(s.mode, s.enabled)
			}
			assert.Equal(t, c.speed, l.MaxSpeed())
			assert.Equal(t, c.canFire, l.CanFire())
			assert.Equal(t, c.canCrouch, l.CanCrouch())
		})
	}
}

func TestLocomotionGatesFollowSprint(t *testing.T) {
	modes := []Mode{ModeCrouch, ModeAim, ModeSprint, ModeReload, ModeWalk}
	l := newTestLocomotion(nil)

	// deterministic walk over every toggle pair
	for i := 0; i < 200; i++ {
		m := modes[(i*7+i/3)%len(modes)]
		l.SetMode(m, (i/2)%2 == 0)

		sprinting := l.Active(ModeSprint)
		assert.Equal(t, !sprinting, l.CanFire(), "step %d", i)
		assert.Equal(t, !sprinting, l.CanCrouch(), "step %d", i)
		assert.Contains(t, []float64{600, 270, 900}, l.MaxSpeed(), "step %d", i)
	}

	for _, m := range modes {
		l.SetMode(m, false)
	}
	assert.Zero(t, l.Modes())
	assert.Equal(t, 600.0, l.MaxSpeed())
}

func TestLocomotionCameraCalls(t *testing.T) {
	t.Run("crouch_offset_round_trip", func(t *testing.T) {
		cam := &recordingCamera{}
		l := newTestLocomotion(cam)

		require.True(t, l.SetMode(ModeCrouch, true))
		assert.False(t, l.SetMode(ModeCrouch, true))
		require.True(t, l.SetMode(ModeCrouch, false))
		assert.False(t, l.SetMode(ModeCrouch, false))

		assert.Equal(t, []float64{-40, 40}, cam.offsets)
		assert.Zero(t, cam.netOffset())
	})

	t.Run("refused_crouch_applies_no_offset", func(t *testing.T) {
		cam := &recordingCamera{}
		l := newTestLocomotion(cam)

		l.SetMode(ModeSprint, true)
		assert.False(t, l.SetMode(ModeCrouch, true))
		assert.False(t, l.SetMode(ModeCrouch, false))
		assert.Empty(t, cam.offsets)
	})

	t.Run("aim_swaps_view", func(t *testing.T) {
		cam := &recordingCamera{}
		l := newTestLocomotion(cam)

		l.SetMode(ModeAim, true)
		l.SetMode(ModeAim, true)
		l.SetMode(ModeAim, false)
		assert.Equal(t, []View{ViewAim, ViewHip}, cam.views)
	})
}

func TestLocomotionSetSpeeds(t *testing.T) {
	l := newTestLocomotion(nil)
	l.SetMode(ModeSprint, true)
	l.SetSpeeds(500, 200, 1000)
	assert.Equal(t, 1000.0, l.MaxSpeed())
	l.SetMode(ModeSprint, false)
	assert.Equal(t, 500.0, l.MaxSpeed())

	l.SetMode(ModeAim, true)
	l.SetSpeeds(500, 250, 1000)
	assert.Equal(t, 250.0, l.MaxSpeed())
}
