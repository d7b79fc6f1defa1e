package component

import "time"

// Ammo tracks the magazine, reserve and reload state of a single weapon.
type Ammo struct {
	Capacity       int
	Current        int
	Reserve        int
	ReloadDuration time.Duration

	reloading bool
	canFire   bool
}

// NewAmmo returns a weapon with a full magazine and the given reserve.
func NewAmmo(capacity, reserve int, reloadDuration time.Duration) *Ammo {
	if capacity < 0 {
		capacity = 0
	}
	if reserve < 0 {
		reserve = 0
	}
	return &Ammo{
		Capacity:       capacity,
		Current:        capacity,
		Reserve:        reserve,
		ReloadDuration: reloadDuration,
		canFire:        capacity > 0,
	}
}

// CanFire reports whether a round can leave the barrel right now.
func (a *Ammo) CanFire() bool {
	return a != nil && a.canFire && !a.reloading && a.Current > 0
}

func (a *Ammo) Reloading() bool { return a != nil && a.reloading }

// Full reports whether the magazine holds Capacity rounds.
func (a *Ammo) Full() bool { return a != nil && a.Current >= a.Capacity }

// Exhausted reports whether both magazine and reserve are empty.
func (a *Ammo) Exhausted() bool { return a != nil && a.Current == 0 && a.Reserve == 0 }

// Consume spends one round. fired is false when the weapon could not fire;
// empty reports whether the magazine is empty after the call.
func (a *Ammo) Consume() (fired, empty bool) {
	if a == nil {
		return false, true
	}
	if !a.CanFire() {
		return false, a.Current == 0
	}
	a.Current--
	return true, a.Current == 0
}

// BeginReload moves min(Reserve, Capacity-Current) rounds from the reserve
// into the magazine and enters the reloading state. The rounds are committed
// immediately; FinishReload only reopens the trigger. ok is false when a
// reload is already running, the magazine is full or the reserve is empty.
// An empty reserve with an empty magazine closes the trigger for good.
func (a *Ammo) BeginReload() (transferred int, ok bool) {
	if a == nil || a.reloading || a.Full() {
		return 0, false
	}
	if a.Reserve == 0 {
		if a.Current == 0 {
			a.canFire = false
		}
		return 0, false
	}

	transferred = min(a.Reserve, a.Capacity-a.Current)
	a.Reserve -= transferred
	a.Current += transferred
	a.reloading = true
	a.canFire = false
	return transferred, true
}

// FinishReload leaves the reloading state and reopens the trigger.
func (a *Ammo) FinishReload() bool {
	if a == nil || !a.reloading {
		return false
	}
	a.reloading = false
	a.canFire = true
	return true
}
