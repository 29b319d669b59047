package engine

import (
	"fmt"

	"github.com/talgya/upkeep/internal/world"
)

// IntentKind names a player action.
type IntentKind uint8

const (
	IntentPass IntentKind = iota
	IntentMove
	IntentShoot
	IntentTrain
	IntentUpgradeTile
	IntentUpgradeUnit
	IntentEndTurn
)

var intentNames = [...]string{
	IntentPass:        "pass",
	IntentMove:        "move",
	IntentShoot:       "shoot",
	IntentTrain:       "train",
	IntentUpgradeTile: "upgrade_tile",
	IntentUpgradeUnit: "upgrade_unit",
	IntentEndTurn:     "end_turn",
}

func (k IntentKind) String() string {
	if int(k) < len(intentNames) {
		return intentNames[k]
	}
	return fmt.Sprintf("intent(%d)", k)
}

// Intent is one action a player (human or AI) wants to take. From is the
// acting unit or tile; To is the destination or target.
type Intent struct {
	Kind IntentKind
	From world.HexCoord
	To   world.HexCoord
	Tile world.TileKind
	Unit world.UnitKind
}

func (i Intent) String() string {
	switch i.Kind {
	case IntentMove, IntentShoot:
		return fmt.Sprintf("%s %s -> %s", i.Kind, i.From, i.To)
	case IntentTrain, IntentUpgradeUnit:
		return fmt.Sprintf("%s %s at %s", i.Kind, i.Unit, i.From)
	case IntentUpgradeTile:
		return fmt.Sprintf("%s %s at %s", i.Kind, i.Tile, i.From)
	}
	return i.Kind.String()
}

// Apply dispatches an intent to the matching command. Pass does nothing.
func (g *Game) Apply(i Intent) error {
	var err error
	switch i.Kind {
	case IntentPass:
	case IntentMove:
		_, err = g.Move(i.From, i.To)
	case IntentShoot:
		_, err = g.RangedAttack(i.From, i.To)
	case IntentTrain:
		_, err = g.Train(i.From, i.Unit)
	case IntentUpgradeTile:
		_, err = g.UpgradeTile(i.From, i.Tile)
	case IntentUpgradeUnit:
		_, err = g.UpgradeUnit(i.From, i.Unit)
	case IntentEndTurn:
		g.EndTurn()
	default:
		err = fmt.Errorf("unknown intent %d", i.Kind)
	}
	if err != nil {
		return fmt.Errorf("%s: %w", i, err)
	}
	return nil
}
