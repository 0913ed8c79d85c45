package main

import (
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/pkg/profile"
	"github.com/spf13/pflag"

	"github.com/Garsondee/Symbol-Sense/internal/config"
	"github.com/Garsondee/Symbol-Sense/internal/editor"
	"github.com/Garsondee/Symbol-Sense/internal/logging"
	"github.com/Garsondee/Symbol-Sense/internal/mapfile"
)

func main() {
	fs := pflag.NewFlagSet("symbol-sense", pflag.ExitOnError)
	cfgPath := fs.String("config", "", "config file (json, yaml or toml)")
	mapName := fs.String("map", "", "map file, relative to the save directory (default saves.defaultName)")
	fs.String("log-level", "info", "log level: debug, info, warn, error")
	fs.String("saves-dir", "Saves", "directory holding map files")
	fs.Bool("cluster", false, "collapse overlapping units when zoomed out")
	withProfile := fs.Bool("profile", false, "write a CPU profile to the working directory")
	_ = fs.Parse(os.Args[1:])

	loader := config.NewLoader()
	log := logging.New("info", os.Stderr)
	if err := loader.BindFlags(fs, map[string]string{
		"logLevel":        "log-level",
		"saves.dir":       "saves-dir",
		"cluster.enabled": "cluster",
	}); err != nil {
		log.Fatal().Err(err).Msg("flag binding failed")
	}
	cfg, err := loader.Load(*cfgPath)
	if err != nil {
		log.Fatal().Err(err).Msg("config load failed")
	}
	log = logging.New(cfg.LogLevel, os.Stderr)

	if *withProfile {
		defer profile.Start(profile.CPUProfile, profile.ProfilePath("."), profile.NoShutdownHook).Stop()
	}

	path := ""
	if *mapName != "" {
		path = mapfile.ResolvePath(cfg.Saves.Dir, *mapName)
	}
	g, err := editor.New(cfg, logging.Component(log, "editor"), path)
	if err != nil {
		log.Fatal().Err(err).Msg("editor init failed")
	}

	ebiten.SetWindowTitle("Symbol Sense")
	ebiten.SetWindowSize(cfg.Window.Width, cfg.Window.Height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	if err := ebiten.RunGame(g); err != nil {
		log.Error().Err(err).Msg("editor exited")
	}
}
