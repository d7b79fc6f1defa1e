package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/milk9111/fpscore/config"
	"github.com/milk9111/fpscore/logging"
	"github.com/milk9111/fpscore/prefabs"
)

func main() {
	configPath := flag.String("config", "", "settings file (yaml)")
	loadout := flag.String("loadout", "", "loadout spec, overrides the settings file")
	seed := flag.Uint64("seed", 1, "spread random seed")
	flag.Parse()

	settings, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if *loadout != "" {
		settings.LoadoutFile = *loadout
	}

	logger, err := logging.New(settings.LogLevel, settings.LogConsole)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	prefabs.Dir = settings.PrefabDir

	game, err := NewGame(settings, logger, *seed)
	if err != nil {
		logger.Fatal().Err(err).Msg("range setup failed")
	}
	defer game.Close()

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(baseWidth, baseHeight)
	ebiten.SetWindowTitle("fpscore range")
	ebiten.SetTPS(settings.TickRate)

	if err := ebiten.RunGame(game); err != nil && err != ebiten.Termination {
		logger.Fatal().Err(err).Msg("game loop")
	}
}
