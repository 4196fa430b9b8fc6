package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
)

var version = "dev"

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()
	if err := run(ctx, os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return handleTUI(ctx, nil)
	}

	cmd := args[0]
	switch cmd {
	case "tui":
		return handleTUI(ctx, args[1:])
	case "games":
		return handleGames(ctx, args[1:])
	case "recap":
		return handleRecap(ctx, args[1:])
	case "refresh":
		return handleRefresh(ctx, args[1:])
	case "config":
		return handleConfig(ctx, args[1:])
	case "version":
		fmt.Println(version)
		return nil
	case "help", "-h", "--help":
		usage()
		return nil
	default:
		usage()
		return fmt.Errorf("unknown command: %s", cmd)
	}
}

func usage() {
	fmt.Println(strings.TrimSpace(`courtside - NBA game recaps in your terminal

Usage:
  courtside [command] [flags]

Commands:
  tui               Open the interactive dashboard (default)
  games             List games for a mode (previous|today)
  recap             Print the generated recap for one game
  refresh           Force-refresh today's scores once
  config validate   Validate a YAML config file
  config print      Print the loaded config as JSON
  version           Print version
  help              Show this help

Flags:
  --config PATH     Path to YAML config file (or COURTSIDE_CONFIG env var; default: ~/.config/courtside/config.yml)
  --log-level L     Log level: debug|info|warn|error (per command)
`))
}
