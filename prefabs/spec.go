package prefabs

import (
	"fmt"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/milk9111/fpscore/common"
)

func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

type Vec3Spec struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
	Z float64 `yaml:"z"`
}

func (v Vec3Spec) Vec3() common.Vec3 {
	return common.V3(v.X, v.Y, v.Z)
}

// LoadoutSpec is the complete tuning of a playable soldier.
type LoadoutSpec struct {
	Name       string         `yaml:"name"`
	Locomotion LocomotionSpec `yaml:"locomotion"`
	Weapon     WeaponSpec     `yaml:"weapon"`
	Grenade    GrenadeSpec    `yaml:"grenade"`
}

type LocomotionSpec struct {
	BaseSpeed          float64 `yaml:"base_speed"`
	WalkSpeed          float64 `yaml:"walk_speed"`
	SprintSpeed        float64 `yaml:"sprint_speed"`
	CrouchCameraOffset float64 `yaml:"crouch_camera_offset"`
}

type WeaponSpec struct {
	Capacity             int     `yaml:"capacity"`
	Reserve              int     `yaml:"reserve"`
	ReloadSeconds        float64 `yaml:"reload_seconds"`
	MaxRange             float64 `yaml:"max_range"`
	SpreadReferenceSpeed float64 `yaml:"spread_reference_speed"`
	SpreadScale          float64 `yaml:"spread_scale"`
	BaseImpulse          float64 `yaml:"base_impulse"`
	HeadDamage           float64 `yaml:"head_damage"`
	BodyDamage           float64 `yaml:"body_damage"`

	// DamageScript names a tengo script under scripts/. Empty uses the fixed
	// head and body values.
	DamageScript string `yaml:"damage_script"`
}

func (w WeaponSpec) ReloadDuration() time.Duration {
	return seconds(w.ReloadSeconds)
}

type GrenadeSpec struct {
	Count           int      `yaml:"count"`
	CooldownSeconds float64  `yaml:"cooldown_seconds"`
	LaunchImpulse   float64  `yaml:"launch_impulse"`
	SpawnOffset     Vec3Spec `yaml:"spawn_offset"`

	// FuseSeconds 0 leaves grenades inert.
	FuseSeconds  float64 `yaml:"fuse_seconds"`
	BlastRadius  float64 `yaml:"blast_radius"`
	BlastImpulse float64 `yaml:"blast_impulse"`
	BlastDamage  float64 `yaml:"blast_damage"`
}

func (g GrenadeSpec) Cooldown() time.Duration { return seconds(g.CooldownSeconds) }
func (g GrenadeSpec) Fuse() time.Duration     { return seconds(g.FuseSeconds) }

func seconds(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}

func LoadLoadout(filename string) (LoadoutSpec, error) {
	return LoadSpec[LoadoutSpec](filename)
}

// RangeSpec lays out a firing range.
type RangeSpec struct {
	Name    string       `yaml:"name"`
	Shooter ShooterSpec  `yaml:"shooter"`
	Targets []TargetSpec `yaml:"targets"`
	Walls   []WallSpec   `yaml:"walls"`
}

type ShooterSpec struct {
	Position  Vec3Spec `yaml:"position"`
	EyeHeight float64  `yaml:"eye_height"`
	Heading   float64  `yaml:"heading"`
}

type TargetSpec struct {
	Name     string   `yaml:"name"`
	Position Vec3Spec `yaml:"position"`
	Radius   float64  `yaml:"radius"`
	Height   float64  `yaml:"height"`
	HeadFrom float64  `yaml:"head_from"`
	Health   float64  `yaml:"health"`
	Shield   float64  `yaml:"shield"`
	Reactive bool     `yaml:"reactive"`

	// Mass 0 makes the target static.
	Mass float64 `yaml:"mass"`
}

type WallSpec struct {
	From      Vec3Spec `yaml:"from"`
	To        Vec3Spec `yaml:"to"`
	Height    float64  `yaml:"height"`
	Thickness float64  `yaml:"thickness"`
}

func LoadRange(filename string) (RangeSpec, error) {
	return LoadSpec[RangeSpec](filename)
}
