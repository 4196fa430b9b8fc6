package main

import (
	"context"
	"flag"

	tea "github.com/charmbracelet/bubbletea"

	"courtside/internal/api"
	"courtside/internal/logging"
	"courtside/internal/ui"
)

func handleTUI(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("tui", flag.ContinueOnError)
	cfgPath := fs.String("config", "", "Path to YAML config file")
	logLevel := fs.String("log-level", "error", "log level")
	if err := fs.Parse(args); err != nil {
		return err
	}
	cfg, err := loadConfigFlag(*cfgPath)
	if err != nil {
		return err
	}
	// The TUI owns the terminal; keep the logger quiet unless asked.
	log := logging.New(*logLevel, false)

	client := api.NewClient(cfg)
	recaps, closeStore := openRecaps(cfg, client, log)
	defer closeStore()

	p := tea.NewProgram(ui.New(cfg, client, recaps), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err = p.Run()
	return err
}
