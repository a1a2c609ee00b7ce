package main

import (
	"fmt"
	"io"
	"log"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"antipode/internal/config"
	"antipode/internal/locate"
	"antipode/internal/logger"
	"antipode/internal/tui"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		log.Fatal(err)
	}
}

func run(args []string) error {
	cfg, err := config.Load(".env")
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	// a path argument overrides ANTIPODE_DATA
	if len(args) > 0 {
		cfg.DataPath = args[0]
	}

	lg := logger.Discard()
	if cfg.LogFile != "" {
		var f io.Closer
		lg, f, err = logger.ToFile(cfg.LogFile, cfg.LogLevel, cfg.LogFormat)
		if err != nil {
			return fmt.Errorf("opening log file: %w", err)
		}
		defer f.Close()
	}

	loc, closeLoc, err := locate.New(cfg.Home, cfg.GeoIPDB, cfg.GeoIPAddr, cfg.IPEchoURL)
	if err != nil {
		return fmt.Errorf("configuring geolocation: %w", err)
	}
	defer closeLoc()
	lg.Info("starting", "data", cfg.DataPath, "locator", fmt.Sprintf("%T", loc))

	m := tui.New(tui.Options{
		DataPath:      cfg.DataPath,
		FrameInterval: cfg.FrameInterval(),
		LocateTimeout: cfg.LocateTimeout,
		Strict:        cfg.Strict,
		Locator:       loc,
		Logger:        lg,
	})
	if _, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseAllMotion()).Run(); err != nil {
		return err
	}
	return nil
}
