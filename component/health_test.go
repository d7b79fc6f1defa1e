package component

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHealthPoolChangeHealth(t *testing.T) {
	cases := []struct {
		name       string
		full       float64
		shield     float64
		deltas     []float64
		wantHealth float64
		wantShield float64
		wantDead   bool
	}{
		{"body_hit", 100, 0, []float64{-10}, 90, 0, false},
		{"heal_clamped", 100, 0, []float64{-10, 50}, 100, 0, false},
		{"lethal", 100, 0, []float64{-50, -60}, 0, 0, true},
		{"shield_absorbs", 100, 30, []float64{-20}, 100, 10, false},
		{"shield_overflow", 100, 30, []float64{-50}, 80, 0, false},
		{"heal_skips_shield", 100, 30, []float64{-50, 10}, 90, 0, false},
		{"dead_ignores_heal", 100, 0, []float64{-200, 50}, 0, 0, true},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			h := NewHealthPool(c.full, c.shield)
			for _, d := range c.deltas {
				h.ChangeHealth(d)
			}
			assert.Equal(t, c.wantHealth, h.Current)
			assert.Equal(t, c.wantShield, h.Shield)
			assert.Equal(t, c.wantDead, !h.IsAlive())
		})
	}
}

func TestHealthPoolDeathFiresOnce(t *testing.T) {
	h := NewHealthPool(20, 0)
	deaths := 0
	damage := 0.0
	h.OnDeath = func(*HealthPool) { deaths++ }
	h.OnDamage = func(_ *HealthPool, d float64) { damage += d }

	h.ChangeHealth(-10)
	h.ChangeHealth(-10)
	h.ChangeHealth(-10)
	h.Die()

	assert.Equal(t, 1, deaths)
	assert.Equal(t, -20.0, damage)

	h.Reset()
	require.True(t, h.IsAlive())
	assert.Equal(t, 20.0, h.Current)
}

func TestGrenadesCooldownGate(t *testing.T) {
	g := NewGrenades(2, 5*time.Second)
	require.True(t, g.Spend())
	assert.True(t, g.OnCooldown())
	assert.False(t, g.Spend())
	assert.Equal(t, 1, g.Count)

	g.Ready()
	require.True(t, g.Spend())
	g.Ready()
	assert.Zero(t, g.Count)
	assert.False(t, g.CanThrow())
	assert.False(t, g.Spend())
}
