package ai

import (
	"log/slog"

	"github.com/talgya/upkeep/internal/economy"
	"github.com/talgya/upkeep/internal/engine"
	"github.com/talgya/upkeep/internal/world"
)

// DefaultStepBudget caps the actions taken in one turn.
const DefaultStepBudget = 64

// Driver is a Game the AI can also act on.
type Driver interface {
	Game
	Apply(i engine.Intent) error
	EndTurn() []economy.Eviction
}

// PlayTurn applies the policy's choices for player until it passes or the
// step budget runs out, then ends the turn. Returns the actions applied.
func (p *Policy) PlayTurn(d Driver, player world.Player, budget int) []engine.Intent {
	if d.Current() != player {
		return nil
	}
	if budget <= 0 {
		budget = DefaultStepBudget
	}

	var applied []engine.Intent
	for range budget {
		intent := p.Choose(d, player)
		if intent.Kind == engine.IntentPass {
			break
		}
		if err := d.Apply(intent); err != nil {
			// Candidates come from the legal-action queries, so this is a bug.
			slog.Error("ai intent rejected", "player", player, "intent", intent, "error", err)
			break
		}
		applied = append(applied, intent)
	}

	d.EndTurn()
	return applied
}
