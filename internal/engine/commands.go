package engine

import (
	"log/slog"

	"github.com/talgya/upkeep/internal/rules"
	"github.com/talgya/upkeep/internal/world"
)

// Move moves the current player's unit at from to to, attacking an enemy
// standing there and claiming the cells it arrives on.
func (g *Game) Move(from, to world.HexCoord) (rules.MoveOutcome, error) {
	out, err := rules.Move(g.board, g.current, from, to)
	if err != nil {
		return out, err
	}

	if out.Defeated != nil {
		g.emit("attack", "%s %s at %s defeated %s %s at %s",
			g.current, out.Unit.Kind, from, out.Defeated.Owner, out.Defeated.Kind, to)
	} else {
		g.emit("move", "%s %s moved %s -> %s", g.current, out.Unit.Kind, from, to)
	}
	for _, c := range out.Claims {
		if c.Captured() {
			g.emit("capture", "%s captured %s at %s", g.current, c.Kind, c.Coord)
		} else {
			g.emit("capture", "%s at %s left neutral: %s cannot sustain it", c.Kind, c.Coord, g.current)
		}
	}
	slog.Debug("move", "player", g.current, "unit", out.Unit.Kind, "from", from, "to", to, "claims", len(out.Claims))

	g.reveal()
	return out, nil
}

// RangedAttack has the current player's archer at from shoot the enemy at to.
func (g *Game) RangedAttack(from, to world.HexCoord) (rules.AttackOutcome, error) {
	out, err := rules.RangedAttack(g.board, g.current, from, to)
	if err != nil {
		return out, err
	}
	g.emit("attack", "%s %s at %s shot %s %s at %s",
		g.current, out.Attacker.Kind, from, out.Defeated.Owner, out.Defeated.Kind, to)
	return out, nil
}

// Train places a new unit of kind on the current player's tile at cell.
func (g *Game) Train(cell world.HexCoord, kind world.UnitKind) (world.Unit, error) {
	u, err := rules.Train(g.board, g.current, cell, kind)
	if err != nil {
		return u, err
	}
	g.emit("train", "%s trained %s at %s", g.current, kind, cell)
	return u, nil
}

// UpgradeTile develops the current player's tile at cell into kind to.
func (g *Game) UpgradeTile(cell world.HexCoord, to world.TileKind) (world.Tile, error) {
	before, _ := g.board.Tile(cell)
	t, err := rules.UpgradeTile(g.board, g.current, cell, to)
	if err != nil {
		return t, err
	}
	g.emit("upgrade", "%s developed %s into %s at %s", g.current, before.Kind, to, cell)
	return t, nil
}

// UpgradeUnit promotes the current player's unit at cell to kind to.
func (g *Game) UpgradeUnit(cell world.HexCoord, to world.UnitKind) (world.Unit, error) {
	before, _ := g.board.Unit(cell)
	u, err := rules.UpgradeUnit(g.board, g.current, cell, to)
	if err != nil {
		return u, err
	}
	g.emit("upgrade", "%s promoted %s to %s at %s", g.current, before.Kind, to, cell)
	return u, nil
}
