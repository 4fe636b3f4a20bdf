package main

import (
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"geomeasure/internal/config"
	"geomeasure/internal/logging"
	"geomeasure/internal/registry"
	"geomeasure/internal/tui"
)

func main() {
	// until the log file is open, problems go to stderr
	boot := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	cfg, err := config.Load()
	if err != nil {
		boot.Fatal().Err(err).Msg("failed to load config")
	}
	log, closer, err := logging.New(cfg.Log)
	if err != nil {
		boot.Fatal().Err(err).Msg("failed to open log")
	}
	defer closer.Close()

	reg := registry.New(log)
	var m tea.Model
	if len(os.Args) > 1 {
		m = tui.NewWithPath(cfg, reg, log, os.Args[1])
	} else {
		m = tui.New(cfg, reg, log)
	}
	log.Info().Str("units", cfg.Units.Distance+"/"+cfg.Units.Angle).Msg("starting")
	if _, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseAllMotion()).Run(); err != nil {
		log.Error().Err(err).Msg("ui stopped")
		closer.Close()
		boot.Fatal().Err(err).Msg("ui stopped")
	}
}
