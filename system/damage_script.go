package system

import (
	"fmt"
	"strings"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/rs/zerolog"

	"github.com/milk9111/fpscore/component"
)

// ScriptedDamage evaluates a tengo script for every hit. The script reads
// region, distance, head, body and max_range and assigns damage. A script
// error falls back to the fixed table so a broken script never stops combat.
type ScriptedDamage struct {
	compiled *tengo.Compiled
	fallback FixedDamage
	maxRange float64
	logger   zerolog.Logger
}

// NewScriptedDamage compiles src. fallback supplies the head and body values
// exposed to the script.
func NewScriptedDamage(name string, src []byte, fallback FixedDamage, maxRange float64, logger zerolog.Logger) (*ScriptedDamage, error) {
	if strings.TrimSpace(string(src)) == "" {
		return nil, fmt.Errorf("damage script %q: empty source", name)
	}

	script := tengo.NewScript(src)
	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))
	for k, v := range map[string]any{
		"region":    "",
		"distance":  0.0,
		"head":      fallback.Head,
		"body":      fallback.Body,
		"max_range": maxRange,
		"damage":    fallback.Body,
	} {
		if err := script.Add(k, v); err != nil {
			return nil, fmt.Errorf("damage script %q: add %s: %w", name, k, err)
		}
	}

	compiled, err := script.Compile()
	if err != nil {
		return nil, fmt.Errorf("damage script %q: compile: %w", name, err)
	}

	return &ScriptedDamage{
		compiled: compiled,
		fallback: fallback,
		maxRange: maxRange,
		logger:   logger.With().Str("component", "damage_script").Str("script", name).Logger(),
	}, nil
}

func (s *ScriptedDamage) Damage(region component.Region, distance float64) float64 {
	v, err := s.eval(region, distance)
	if err != nil {
		s.logger.Error().Err(err).Msg("damage script failed, using fixed damage")
		return s.fallback.Damage(region, distance)
	}
	return v
}

func (s *ScriptedDamage) eval(region component.Region, distance float64) (float64, error) {
	if err := s.compiled.Set("region", string(region)); err != nil {
		return 0, err
	}
	if err := s.compiled.Set("distance", distance); err != nil {
		return 0, err
	}
	if err := s.compiled.Set("damage", s.fallback.Damage(region, distance)); err != nil {
		return 0, err
	}
	if err := s.compiled.Run(); err != nil {
		return 0, err
	}
	return s.compiled.Get("damage").Float(), nil
}
