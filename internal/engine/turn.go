package engine

import (
	"log/slog"

	"github.com/talgya/upkeep/internal/economy"
	"github.com/talgya/upkeep/internal/world"
)

// EndTurn closes the current player's turn. Shortages are resolved for the
// outgoing player and, in duel mode, for the incoming one as well, since a
// capture during this turn may have cut their supply. The turn counter
// advances and the incoming player's units get fresh points.
func (g *Game) EndTurn() []economy.Eviction {
	outgoing := g.current
	incoming := outgoing
	if g.mode == ModeDuel {
		incoming = g.Opponent(outgoing)
	}

	evicted := g.resolveShortages(outgoing)
	if incoming != outgoing {
		evicted = append(evicted, g.resolveShortages(incoming)...)
	}

	g.current = incoming
	g.turn++
	g.ResetTurnActions(incoming)
	g.reveal()

	g.emit("turn", "turn %d: %s to move", g.turn, g.current)
	slog.Info("turn ended",
		"turn", g.turn,
		"outgoing", outgoing,
		"incoming", incoming,
		"evictions", len(evicted),
	)
	return evicted
}

// ResetTurnActions restores every unit of p to its kind's full move and
// action points.
func (g *Game) ResetTurnActions(p world.Player) {
	for _, u := range g.board.UnitsOf(p) {
		// The unit came from UnitsOf so the cell is occupied.
		_ = g.board.SetPoints(u.Coord, u.Kind.MaxMove(), u.Kind.MaxAction())
	}
}

func (g *Game) resolveShortages(p world.Player) []economy.Eviction {
	evicted := economy.ResolveShortages(g.board, p)
	for _, e := range evicted {
		g.Evictions = append(g.Evictions, e)
		g.EmitEvent(Event{
			Turn:        g.turn,
			Player:      p,
			Description: e.String(),
			Category:    "eviction",
		})
		if g.recorder != nil {
			if err := g.recorder.RecordEviction(g.turn, e); err != nil {
				slog.Warn("record eviction failed", "error", err)
			}
		}
	}
	return evicted
}
