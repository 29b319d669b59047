// Package engine owns a game session: the board, whose turn it is, and the
// status log. Commands are validated by the rules package; the engine adds the
// turn check, fog reveal and event recording around them.
package engine

import (
	"fmt"
	"log/slog"

	"github.com/talgya/upkeep/internal/economy"
	"github.com/talgya/upkeep/internal/rules"
	"github.com/talgya/upkeep/internal/world"
)

// Mode selects the session layout.
type Mode uint8

const (
	ModeDuel Mode = iota // bounded map, red against blue
	ModeSolo             // fog map that grows around a single player
)

func (m Mode) String() string {
	if m == ModeSolo {
		return "solo"
	}
	return "duel"
}

// ParseMode resolves a mode name.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "duel":
		return ModeDuel, nil
	case "solo":
		return ModeSolo, nil
	}
	return ModeDuel, fmt.Errorf("unknown mode %q", s)
}

// Event is a notable occurrence in the session.
type Event struct {
	Turn        int          `json:"turn" db:"turn"`
	Player      world.Player `json:"player" db:"player"`
	Description string       `json:"description" db:"description"`
	Category    string       `json:"category" db:"category"` // "move", "attack", "capture", "train", "upgrade", "eviction", "turn"
}

// Recorder receives every event and eviction as it happens.
type Recorder interface {
	RecordEvent(e Event) error
	RecordEviction(turn int, e economy.Eviction) error
}

// Config describes a new session.
type Config struct {
	Mode     Mode
	Gen      world.GenConfig
	Recorder Recorder // optional
}

// Game holds the complete session state.
type Game struct {
	board    *world.Board
	mode     Mode
	players  []world.Player
	current  world.Player
	turn     int
	source   world.TerrainSource
	recorder Recorder

	Events    []Event
	Evictions []economy.Eviction
}

// NewGame generates a map for cfg and starts the first turn with red to move.
func NewGame(cfg Config) (*Game, error) {
	var (
		b   *world.Board
		err error
	)
	switch cfg.Mode {
	case ModeDuel:
		b, err = world.GenerateDuel(cfg.Gen)
	case ModeSolo:
		b, err = world.GenerateSolo(cfg.Gen, world.PlayerRed)
	default:
		err = fmt.Errorf("unknown mode %d", cfg.Mode)
	}
	if err != nil {
		return nil, fmt.Errorf("generate %s map: %w", cfg.Mode, err)
	}

	g := FromBoard(b, cfg.Mode, cfg.Gen.Source, cfg.Recorder)
	slog.Info("game started",
		"mode", cfg.Mode,
		"tiles", b.TileCount(),
		"players", len(g.players),
	)
	return g, nil
}

// FromBoard wraps an existing board, e.g. a hand-built test position. Red
// moves first. source may be nil when fog reveal is not needed.
func FromBoard(b *world.Board, mode Mode, source world.TerrainSource, recorder Recorder) *Game {
	players := []world.Player{world.PlayerRed, world.PlayerBlue}
	if mode == ModeSolo {
		players = players[:1]
	}
	g := &Game{
		board:    b,
		mode:     mode,
		players:  players,
		current:  world.PlayerRed,
		turn:     1,
		source:   source,
		recorder: recorder,
	}
	g.ResetTurnActions(g.current)
	g.reveal()
	return g
}

// Mode returns the session mode.
func (g *Game) Mode() Mode { return g.mode }

// Current returns the player to move.
func (g *Game) Current() world.Player { return g.current }

// Turn returns the 1-based turn counter; it advances on every EndTurn.
func (g *Game) Turn() int { return g.turn }

// Players returns the players in turn order.
func (g *Game) Players() []world.Player {
	return append([]world.Player(nil), g.players...)
}

// Board returns an independent snapshot of the board. Mutating it does not
// affect the game.
func (g *Game) Board() *world.Board {
	return g.board.Clone()
}

// Opponent returns p's opponent, or PlayerNone in solo mode.
func (g *Game) Opponent(p world.Player) world.Player {
	if g.mode == ModeSolo {
		return world.PlayerNone
	}
	if p == world.PlayerRed {
		return world.PlayerBlue
	}
	return world.PlayerRed
}

// EmitEvent appends an event to the status log and forwards it to the recorder.
func (g *Game) EmitEvent(e Event) {
	g.Events = append(g.Events, e)
	if g.recorder != nil {
		if err := g.recorder.RecordEvent(e); err != nil {
			slog.Warn("record event failed", "error", err)
		}
	}
}

// Log returns the full status log, oldest first.
func (g *Game) Log() []Event {
	return append([]Event(nil), g.Events...)
}

// RecentEvents returns at most n of the latest events, oldest first.
func (g *Game) RecentEvents(n int) []Event {
	start := max(0, len(g.Events)-n)
	return append([]Event(nil), g.Events[start:]...)
}

func (g *Game) emit(category, format string, args ...any) {
	g.EmitEvent(Event{
		Turn:        g.turn,
		Player:      g.current,
		Description: fmt.Sprintf(format, args...),
		Category:    category,
	})
}

// reveal grows the fog map around the current player's units.
func (g *Game) reveal() {
	if g.mode != ModeSolo || g.source == nil {
		return
	}
	if revealed := world.RevealAround(g.board, g.current, g.source); len(revealed) > 0 {
		slog.Debug("fog revealed", "player", g.current, "cells", len(revealed))
	}
}

// ── Queries ─────────────────────────────────────────────────────────────

// LegalMoveDestinations lists where the current player's unit at cell may move.
func (g *Game) LegalMoveDestinations(cell world.HexCoord) []world.HexCoord {
	if !g.ownsUnit(cell) {
		return nil
	}
	return rules.LegalMoveDestinations(g.board, cell)
}

// LegalAttackTargets lists what the current player's archer at cell may shoot.
func (g *Game) LegalAttackTargets(cell world.HexCoord) []world.HexCoord {
	if !g.ownsUnit(cell) {
		return nil
	}
	return rules.LegalAttackTargets(g.board, cell)
}

// LegalTrainableKinds lists the kinds the current player may train at cell.
func (g *Game) LegalTrainableKinds(cell world.HexCoord) []world.UnitKind {
	return rules.LegalTrainableKinds(g.board, g.current, cell)
}

// LegalTileUpgrades lists the kinds the current player may develop cell into.
func (g *Game) LegalTileUpgrades(cell world.HexCoord) []world.TileKind {
	return rules.LegalTileUpgrades(g.board, g.current, cell)
}

// LegalUnitUpgrades lists the kinds the current player's unit at cell may become.
func (g *Game) LegalUnitUpgrades(cell world.HexCoord) []world.UnitKind {
	return rules.LegalUnitUpgrades(g.board, g.current, cell)
}

// Economy returns p's ledger, computed fresh.
func (g *Game) Economy(p world.Player) economy.Ledger {
	return economy.Compute(g.board, p)
}

// IsClosedFor reports whether cell is closed terrain for p.
func (g *Game) IsClosedFor(p world.Player, cell world.HexCoord) bool {
	return rules.IsClosedFor(g.board, p, cell)
}

func (g *Game) ownsUnit(cell world.HexCoord) bool {
	u, ok := g.board.Unit(cell)
	return ok && u.Owner == g.current
}
