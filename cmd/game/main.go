package main

import (
	"flag"
	"os"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/Garsondee/Tank-Skirmish/internal/config"
	"github.com/Garsondee/Tank-Skirmish/internal/game"
	"github.com/Garsondee/Tank-Skirmish/internal/logging"
	"github.com/Garsondee/Tank-Skirmish/internal/sim"
)

// settings is everything main reads from the config file.
type settings struct {
	logLevel   string
	width      int
	height     int
	fullscreen bool
	sim        sim.Config
}

func loadSettings(configDir string) (settings, error) {
	if err := config.Load(configDir); err != nil {
		return settings{}, err
	}
	return settings{
		logLevel:   config.GetString("logLevel"),
		width:      config.GetInt("window.width"),
		height:     config.GetInt("window.height"),
		fullscreen: config.GetBool("window.fullscreen"),
		sim:        config.Sim(),
	}, nil
}

func main() {
	var configDir string
	flag.StringVar(&configDir, "config", ".", "directory containing "+config.FileName)
	flag.Parse()

	s, err := loadSettings(configDir)
	if err != nil {
		boot := logging.New(os.Stderr, "info")
		boot.Fatal().Err(err).Msg("config")
	}
	logger := logging.New(os.Stderr, s.logLevel)

	g, err := game.New(s.sim, sim.DefaultCatalog(), logger, s.width, s.height)
	if err != nil {
		logger.Fatal().Err(err).Msg("setup failed")
	}

	ebiten.SetWindowTitle("Tank Skirmish")
	ebiten.SetWindowSize(s.width, s.height)
	ebiten.SetFullscreen(s.fullscreen)
	ebiten.SetCursorMode(ebiten.CursorModeCaptured)
	if err := ebiten.RunGame(g); err != nil {
		logger.Fatal().Err(err).Msg("game loop")
	}
}
