package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"

	"courtside/internal/config"
)

func handleConfig(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return errors.New("usage: courtside config <validate|print> [flags]")
	}
	sub := args[0]
	fs := flag.NewFlagSet("config "+sub, flag.ContinueOnError)
	cfgPath := fs.String("config", "", "Path to YAML config file")
	if err := fs.Parse(args[1:]); err != nil {
		return err
	}
	path, err := config.DefaultPath(*cfgPath)
	if err != nil {
		return err
	}

	switch sub {
	case "validate":
		if _, err := config.Load(path); err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		fmt.Printf("%s: ok\n", path)
		return nil
	case "print":
		cfg, err := config.LoadOrDefault(path)
		if err != nil {
			return err
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(cfg)
	default:
		return fmt.Errorf("unknown config subcommand: %s", sub)
	}
}
