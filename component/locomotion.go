package component

// Mode is a locomotion mode that can be toggled by input.
type Mode uint8

const (
	ModeCrouch Mode = iota
	ModeAim
	ModeSprint
	ModeReload
	ModeWalk
)

func (m Mode) String() string {
	switch m {
	case ModeCrouch:
		return "crouch"
	case ModeAim:
		return "aim"
	case ModeSprint:
		return "sprint"
	case ModeReload:
		return "reload"
	case ModeWalk:
		return "walk"
	default:
		return "unknown"
	}
}

// ModeSet is a bit set of active modes.
type ModeSet uint8

func (s ModeSet) Has(m Mode) bool {
	return s&(1<<m) != 0
}

func (s ModeSet) with(m Mode) ModeSet {
	return s | 1<<m
}

func (s ModeSet) without(m Mode) ModeSet {
	return s &^ (1 << m)
}

// tier is the speed class currently in force.
type tier uint8

const (
	tierBase tier = iota
	tierWalk
	tierSprint
)

// Locomotion tracks the active modes and the speed class they leave behind.
// Each transition applies its own rule: entering crouch, aim, reload or walk
// drops to walk speed; leaving crouch keeps it while aiming, leaving aim
// keeps it while reloading, finishing a reload keeps it while crouched or
// aiming. Sprint overrides the speed and closes the crouch and fire gates
// until it ends.
type Locomotion struct {
	BaseSpeed    float64
	WalkSpeed    float64
	SprintSpeed  float64
	CrouchOffset float64

	Camera CameraRig

	active        ModeSet
	appliedOffset bool
	tier          tier

	maxSpeed  float64
	canCrouch bool
	canFire   bool
}

// NewLocomotion returns a locomotion state at rest with every gate open.
func NewLocomotion(base, walk, sprint, crouchOffset float64, camera CameraRig) *Locomotion {
	if camera == nil {
		camera = NopCamera{}
	}
	l := &Locomotion{
		BaseSpeed:    base,
		WalkSpeed:    walk,
		SprintSpeed:  sprint,
		CrouchOffset: crouchOffset,
		Camera:       camera,
		canCrouch:    true,
		canFire:      true,
	}
	l.setTier(tierBase)
	return l
}

// SetMode toggles m and reports whether the state changed. Requests that are
// already satisfied, or blocked by a gate, change nothing.
func (l *Locomotion) SetMode(m Mode, enabled bool) bool {
	if l == nil || l.active.Has(m) == enabled {
		return false
	}
	if enabled {
		return l.enter(m)
	}
	l.exit(m)
	return true
}

func (l *Locomotion) enter(m Mode) bool {
	switch m {
	case ModeSprint:
		l.canCrouch = false
		l.canFire = false
		l.setTier(tierSprint)
	case ModeCrouch:
		if !l.canCrouch {
			return false
		}
		l.Camera.ApplyVerticalOffset(l.CrouchOffset)
		l.appliedOffset = true
		l.setTier(tierWalk)
	case ModeAim:
		l.Camera.SetActiveView(ViewAim)
		l.setTier(tierWalk)
	case ModeReload, ModeWalk:
		l.setTier(tierWalk)
	}
	l.active = l.active.with(m)
	return true
}

func (l *Locomotion) exit(m Mode) {
	l.active = l.active.without(m)
	switch m {
	case ModeSprint:
		l.canCrouch = true
		l.canFire = true
		l.setTier(tierBase)
	case ModeCrouch:
		if l.appliedOffset {
			l.Camera.ApplyVerticalOffset(-l.CrouchOffset)
			l.appliedOffset = false
		}
		l.releaseUnless(ModeAim)
	case ModeAim:
		l.Camera.SetActiveView(ViewHip)
		l.releaseUnless(ModeReload)
	case ModeReload:
		l.releaseUnless(ModeCrouch, ModeAim)
	case ModeWalk:
		l.setTier(tierBase)
	}
}

// releaseUnless restores base speed when none of holds is active.
func (l *Locomotion) releaseUnless(holds ...Mode) {
	for _, h := range holds {
		if l.active.Has(h) {
			return
		}
	}
	l.setTier(tierBase)
}

func (l *Locomotion) setTier(t tier) {
	l.tier = t
	switch t {
	case tierSprint:
		l.maxSpeed = l.SprintSpeed
	case tierWalk:
		l.maxSpeed = l.WalkSpeed
	default:
		l.maxSpeed = l.BaseSpeed
	}
}

// SetSpeeds replaces the speed table. The current speed class is kept.
func (l *Locomotion) SetSpeeds(base, walk, sprint float64) {
	if l == nil {
		return
	}
	l.BaseSpeed = base
	l.WalkSpeed = walk
	l.SprintSpeed = sprint
	l.setTier(l.tier)
}

func (l *Locomotion) Active(m Mode) bool { return l != nil && l.active.Has(m) }
func (l *Locomotion) Modes() ModeSet    { return l.active }
func (l *Locomotion) MaxSpeed() float64 { return l.maxSpeed }
func (l *Locomotion) CanCrouch() bool   { return l.canCrouch }
func (l *Locomotion) CanFire() bool     { return l.canFire }
