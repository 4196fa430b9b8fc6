package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"text/tabwriter"

	"golang.org/x/sync/errgroup"

	"courtside/internal/api"
	"courtside/internal/config"
	"courtside/internal/logging"
	"courtside/internal/store"
)

func loadConfigFlag(cfgPath string) (*config.Config, error) {
	path, err := config.DefaultPath(cfgPath)
	if err != nil {
		return nil, err
	}
	return config.LoadOrDefault(path)
}

// openRecaps wires the read-through recap cache. Cache trouble is not worth
// failing a command over; it degrades to direct fetches.
func openRecaps(cfg *config.Config, client *api.Client, log *logging.Logger) (*store.Recaps, func()) {
	db, err := store.Open(cfg)
	if err != nil {
		log.Warnf("recap cache unavailable: %v", err)
		return store.NewRecaps(client, nil), func() {}
	}
	return store.NewRecaps(client, db), func() { _ = db.Close() }
}

func handleGames(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("games", flag.ContinueOnError)
	cfgPath := fs.String("config", "", "Path to YAML config file")
	modeStr := fs.String("mode", "", "previous or today (default: ui.mode from config)")
	jsonOut := fs.Bool("json", false, "emit the raw listing as JSON")
	withRecaps := fs.Bool("with-recaps", false, "also fetch recaps for finished games")
	logLevel := fs.String("log-level", "info", "log level")
	if err := fs.Parse(args); err != nil {
		return err
	}
	cfg, err := loadConfigFlag(*cfgPath)
	if err != nil {
		return err
	}
	log := logging.New(*logLevel, false)

	if *modeStr == "" {
		*modeStr = cfg.UI.Mode
	}
	mode, err := api.ParseMode(*modeStr)
	if err != nil {
		return err
	}

	client := api.NewClient(cfg)
	games, err := client.Games(ctx, mode)
	if err != nil {
		return err
	}

	if *jsonOut {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(games)
	}

	printGames(os.Stdout, cfg, games)

	if !*withRecaps {
		return nil
	}
	recaps, closeStore := openRecaps(cfg, client, log)
	defer closeStore()
	return printRecaps(ctx, os.Stdout, recaps, games, log)
}

func printGames(w io.Writer, cfg *config.Config, games []api.Game) {
	tw := tabwriter.NewWriter(w, 2, 4, 2, ' ', 0)
	header := "ID\tMATCHUP\tSCORE\tSTATUS"
	if !cfg.UI.Compact {
		header += "\tDATE"
	}
	fmt.Fprintln(tw, header)
	for _, g := range games {
		score := "-"
		if g.Started() {
			score = fmt.Sprintf("%d-%d", *g.AwayScore, *g.HomeScore)
		}
		line := fmt.Sprintf("%s\t%s @ %s\t%s\t%s",
			g.ID, g.AwayTeam, g.HomeTeam, score, api.DisplayStatus(g.Status))
		if !cfg.UI.Compact {
			line += "\t" + g.Date
		}
		fmt.Fprintln(tw, line)
	}
	_ = tw.Flush()
}

// printRecaps fetches recaps for finished games with bounded concurrency and
// prints them in listing order. Games without a recap yet are skipped with a
// note rather than failing the whole command.
func printRecaps(ctx context.Context, w io.Writer, recaps *store.Recaps, games []api.Game, log *logging.Logger) error {
	type result struct {
		game  api.Game
		recap *api.GameSummary
		err   error
	}
	results := make([]result, len(games))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(4)
	var mu sync.Mutex
	for i, gm := range games {
		i, gm := i, gm
		if !gm.Started() {
			continue
		}
		g.Go(func() error {
			s, _, err := recaps.Get(ctx, gm.ID)
			mu.Lock()
			results[i] = result{game: gm, recap: s, err: err}
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	for _, r := range results {
		if r.game.ID == "" {
			continue
		}
		fmt.Fprintf(w, "\n%s @ %s\n", r.game.AwayTeam, r.game.HomeTeam)
		switch {
		case errors.Is(r.err, api.ErrSummaryNotFound):
			fmt.Fprintln(w, "  (no recap yet)")
		case r.err != nil:
			log.Warnf("recap for game %s: %v", r.game.ID, r.err)
			fmt.Fprintln(w, "  (recap unavailable)")
		default:
			fmt.Fprintln(w, indent(r.recap.Summary, "  "))
		}
	}
	return nil
}

func handleRecap(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("recap", flag.ContinueOnError)
	cfgPath := fs.String("config", "", "Path to YAML config file")
	jsonOut := fs.Bool("json", false, "emit the recap as JSON")
	logLevel := fs.String("log-level", "info", "log level")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return errors.New("usage: courtside recap <game-id>")
	}
	gameID := fs.Arg(0)

	cfg, err := loadConfigFlag(*cfgPath)
	if err != nil {
		return err
	}
	log := logging.New(*logLevel, false)
	client := api.NewClient(cfg)
	recaps, closeStore := openRecaps(cfg, client, log)
	defer closeStore()

	s, cached, err := recaps.Get(ctx, gameID)
	if err != nil {
		if errors.Is(err, api.ErrSummaryNotFound) {
			return fmt.Errorf("summary not found for game %s", gameID)
		}
		return err
	}
	if cached {
		log.Debugf("recap for game %s served from cache", gameID)
	}

	if *jsonOut {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(s)
	}
	if s.AwayTeam != "" && s.HomeTeam != "" {
		fmt.Printf("%s @ %s\n", s.AwayTeam, s.HomeTeam)
	}
	if s.GeneratedAt != "" {
		fmt.Printf("generated at %s\n\n", s.GeneratedAt)
	}
	fmt.Println(s.Summary)
	return nil
}

func handleRefresh(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("refresh", flag.ContinueOnError)
	cfgPath := fs.String("config", "", "Path to YAML config file")
	logLevel := fs.String("log-level", "info", "log level")
	if err := fs.Parse(args); err != nil {
		return err
	}
	cfg, err := loadConfigFlag(*cfgPath)
	if err != nil {
		return err
	}
	log := logging.New(*logLevel, false)

	client := api.NewClient(cfg)
	games, err := client.RefreshToday(ctx)
	if err != nil {
		if rl, ok := api.AsRateLimit(err); ok {
			return fmt.Errorf("refresh rejected: %s (try again in %s)",
				rl.Detail, formatWait(rl.CooldownSeconds()))
		}
		return err
	}
	log.Infof("refreshed %d games", len(games))
	printGames(os.Stdout, cfg, games)
	return nil
}

func formatWait(secs int) string {
	if secs < 60 {
		return fmt.Sprintf("%ds", secs)
	}
	if secs%60 == 0 {
		return fmt.Sprintf("%dm", secs/60)
	}
	return fmt.Sprintf("%dm%ds", secs/60, secs%60)
}

func indent(s, prefix string) string {
	lines := strings.Split(s, "\n")
	for i := range lines {
		lines[i] = prefix + lines[i]
	}
	return strings.Join(lines, "\n")
}
