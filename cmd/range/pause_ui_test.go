package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/milk9111/fpscore/character"
	"github.com/milk9111/fpscore/config"
	"github.com/milk9111/fpscore/ecs"
	"github.com/milk9111/fpscore/physics"
	"github.com/milk9111/fpscore/prefabs"
	"github.com/milk9111/fpscore/timer"
)

func newMenuGame(t *testing.T) *Game {
	t.Helper()
	spec, err := prefabs.LoadLoadout("soldier.yaml")
	require.NoError(t, err)

	space := physics.NewSpace()
	soldier, err := character.New(spec, character.Deps{
		Scheduler:   timer.New(),
		Query:       space,
		World:       ecs.NewWorld(),
		Projectiles: space,
	})
	require.NoError(t, err)

	return &Game{
		settings: config.Settings{LoadoutFile: "soldier.yaml", RangeFile: "range.yaml"},
		logger:   zerolog.Nop(),
		soldier:  soldier,
	}
}

func TestPauseMenuReloadRetunesFromDisk(t *testing.T) {
	dir := t.TempDir()
	prev := prefabs.Dir
	prefabs.Dir = dir
	t.Cleanup(func() { prefabs.Dir = prev })

	g := newMenuGame(t)
	g.paused = true

	src, err := prefabs.Load("soldier.yaml")
	require.NoError(t, err)
	spec, err := prefabs.LoadLoadout("soldier.yaml")
	require.NoError(t, err)
	assert.Equal(t, 600.0, spec.Locomotion.BaseSpeed)

	edited := strings.Replace(string(src), "base_speed: 600", "base_speed: 650", 1)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "soldier.yaml"), []byte(edited), 0o644))

	g.reloadAndResume()
	assert.False(t, g.paused)
	assert.Equal(t, 650.0, g.soldier.Locomotion().MaxSpeed())
}

func TestPauseMenuRejectedLoadoutKeepsTuning(t *testing.T) {
	dir := t.TempDir()
	prev := prefabs.Dir
	prefabs.Dir = dir
	t.Cleanup(func() { prefabs.Dir = prev })

	g := newMenuGame(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "soldier.yaml"), []byte("name: broken\n"), 0o644))

	g.reloadAndResume()
	assert.Equal(t, 600.0, g.soldier.Locomotion().MaxSpeed())
	assert.Equal(t, "soldier", g.soldier.Spec().Name)
}

func TestPauseMenuResumeAndQuit(t *testing.T) {
	g := newMenuGame(t)
	g.paused = true
	g.resume()
	assert.False(t, g.paused)

	g.requestQuit()
	assert.True(t, g.quit)
}
