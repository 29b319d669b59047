// Command upkeep runs a headless AI self-play session and prints the outcome.
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"sync/atomic"
	"syscall"

	"github.com/dustin/go-humanize"
	"github.com/mattn/go-isatty"
	"github.com/spf13/pflag"

	"github.com/talgya/upkeep/internal/ai"
	"github.com/talgya/upkeep/internal/config"
	"github.com/talgya/upkeep/internal/engine"
	"github.com/talgya/upkeep/internal/journal"
	"github.com/talgya/upkeep/internal/world"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		slog.Error("upkeep failed", "error", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	flags := pflag.NewFlagSet("upkeep", pflag.ContinueOnError)
	configPath := flags.StringP("config", "c", "", "YAML config file")
	watch := flags.Bool("watch", false, "reload AI rules when the config file changes")
	flags.String("mode", "duel", "duel or solo")
	flags.Int("radius", 4, "duel map radius")
	flags.Int64("seed", 0, "generation seed (0 = random)")
	flags.String("terrain", "random", "terrain source: random or noise")
	flags.Int("turns", 20, "turns to play")
	flags.Int("steps", ai.DefaultStepBudget, "AI actions per turn")
	flags.String("journal", journal.MemoryPath, "SQLite journal path")
	flags.String("log-level", "info", "debug, info, warn or error")
	flags.String("log-format", "auto", "auto, text or json")
	if err := flags.Parse(args); err != nil {
		return err
	}

	v := config.New()
	if err := config.BindFlags(v, flags); err != nil {
		return err
	}
	cfg, err := config.Load(v, *configPath)
	if err != nil {
		return err
	}
	setupLogging(cfg, os.Stdout)

	policy, err := cfg.Policy()
	if err != nil {
		return err
	}
	var current atomic.Pointer[ai.Policy]
	current.Store(policy)
	if *watch && *configPath != "" {
		config.Watch(v, func(next config.Config) {
			p, err := next.Policy()
			if err != nil {
				slog.Warn("ai rules not reloaded", "error", err)
				return
			}
			current.Store(p)
			slog.Info("ai rules reloaded", "rules", p.Len())
		})
	}

	// ── Journal ───────────────────────────────────────────────────────
	db, err := journal.Open(cfg.Journal)
	if err != nil {
		return err
	}
	defer db.Close()

	// ── Game ──────────────────────────────────────────────────────────
	session, seed, err := cfg.Session()
	if err != nil {
		return err
	}
	session.Recorder = db
	game, err := engine.NewGame(session)
	if err != nil {
		return err
	}
	slog.Info("session ready",
		"mode", game.Mode(),
		"seed", seed,
		"terrain", cfg.Terrain,
		"tiles", game.Board().TileCount(),
		"terrain_mix", terrainMix(game.Board()),
		"journal_session", db.Session(),
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// ── Play ──────────────────────────────────────────────────────────
	for i := 0; i < cfg.Turns; i++ {
		if ctx.Err() != nil {
			slog.Info("interrupted, stopping")
			break
		}
		player := game.Current()
		turn := game.Turn()
		actions := current.Load().PlayTurn(game, player, cfg.Steps)
		slog.Info(fmt.Sprintf("%s turn done", humanize.Ordinal(turn)),
			"player", player,
			"actions", len(actions),
			"units", len(game.Board().UnitsOf(player)),
		)
		if over, winner := decided(game); over {
			slog.Info("game decided", "winner", winner, "turn", game.Turn())
			break
		}
	}

	return report(os.Stdout, game, db)
}

// decided reports whether a duel has ended with one side holding no tiles.
func decided(g *engine.Game) (bool, world.Player) {
	if g.Mode() != engine.ModeDuel {
		return false, world.PlayerNone
	}
	b := g.Board()
	red, blue := len(b.TilesOf(world.PlayerRed)), len(b.TilesOf(world.PlayerBlue))
	switch {
	case red == 0 && blue == 0:
		return true, world.PlayerNone
	case red == 0:
		return true, world.PlayerBlue
	case blue == 0:
		return true, world.PlayerRed
	}
	return false, world.PlayerNone
}

// terrainMix lists tile kind counts in lattice order, e.g. "forest=12 farm=7".
func terrainMix(b *world.Board) string {
	counts := world.KindCounts(b)
	var parts []string
	for _, k := range world.TileKinds() {
		if n := counts[k]; n > 0 {
			parts = append(parts, fmt.Sprintf("%s=%d", k, n))
		}
	}
	return strings.Join(parts, " ")
}

func report(w io.Writer, g *engine.Game, db *journal.DB) error {
	b := g.Board()
	fmt.Fprintf(w, "\nAfter %s turns:\n", humanize.Comma(int64(g.Turn()-1)))
	for _, p := range g.Players() {
		ledger := g.Economy(p)
		evictions, err := db.EvictionsFor(p)
		if err != nil {
			return fmt.Errorf("load evictions: %w", err)
		}
		fmt.Fprintf(w, "  %-5s %3d tiles %3d units %3d evictions  shortages %v\n",
			p, len(b.TilesOf(p)), len(b.UnitsOf(p)), len(evictions), ledger.Shortages())
	}

	counts, err := db.CountByCategory()
	if err != nil {
		return fmt.Errorf("count events: %w", err)
	}
	fmt.Fprintf(w, "  events: %v\n", counts)
	for _, e := range g.RecentEvents(5) {
		fmt.Fprintf(w, "  [%d] %s\n", e.Turn, e.Description)
	}
	return nil
}

// setupLogging installs a text handler on a terminal and JSON otherwise.
func setupLogging(cfg config.Config, out *os.File) {
	level, _ := cfg.LogLevel() // validated on load
	opts := &slog.HandlerOptions{Level: level}

	format := cfg.Log.Format
	if format == "auto" {
		format = "json"
		if isatty.IsTerminal(out.Fd()) || isatty.IsCygwinTerminal(out.Fd()) {
			format = "text"
		}
	}

	var handler slog.Handler
	if format == "text" {
		handler = slog.NewTextHandler(out, opts)
	} else {
		handler = slog.NewJSONHandler(out, opts)
	}
	slog.SetDefault(slog.New(handler))
}
