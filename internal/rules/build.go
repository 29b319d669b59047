package rules

import (
	"github.com/talgya/upkeep/internal/economy"
	"github.com/talgya/upkeep/internal/world"
)

// ValidateTrain checks whether p may train a unit of kind on the tile at coord.
func ValidateTrain(b *world.Board, p world.Player, coord world.HexCoord, kind world.UnitKind) error {
	t, ok := b.Tile(coord)
	if !ok {
		return reject(ReasonOutOfBounds, "%s", coord)
	}
	if t.Owner != p {
		return reject(ReasonTileNotOwned, "%s owned by %s", coord, t.Owner)
	}
	if b.Occupied(coord) {
		return reject(ReasonCellOccupied, "%s", coord)
	}
	if !kind.Valid() || !t.Kind.CanTrain(kind) {
		return reject(ReasonNotTrainable, "%s cannot train %s", t.Kind, kind)
	}
	if !economy.CanTrainOrUpgradeUnit(b, p, coord, kind) {
		return reject(ReasonInsufficientUpkeep, "cannot sustain %s", kind)
	}
	return nil
}

// Train places a new unit. It cannot move or act until the next turn reset.
func Train(b *world.Board, p world.Player, coord world.HexCoord, kind world.UnitKind) (world.Unit, error) {
	if err := ValidateTrain(b, p, coord, kind); err != nil {
		return world.Unit{}, err
	}
	u := world.Unit{Coord: coord, Kind: kind, Owner: p}
	if err := b.PlaceUnit(u); err != nil {
		return world.Unit{}, err
	}
	return u, nil
}

// LegalTrainableKinds returns the kinds p could train at coord right now.
func LegalTrainableKinds(b *world.Board, p world.Player, coord world.HexCoord) []world.UnitKind {
	t, ok := b.Tile(coord)
	if !ok {
		return nil
	}
	var out []world.UnitKind
	for _, k := range t.Kind.Trains() {
		if ValidateTrain(b, p, coord, k) == nil {
			out = append(out, k)
		}
	}
	return out
}

// ValidateUpgradeTile checks whether p may develop the tile at coord into to.
// Beyond ownership, the lattice edge and upkeep, the tile must hold a worker
// of p's with an action point left: a bare tile cannot be developed, and the
// upgrade spends the worker's action point.
func ValidateUpgradeTile(b *world.Board, p world.Player, coord world.HexCoord, to world.TileKind) error {
	t, ok := b.Tile(coord)
	if !ok {
		return reject(ReasonOutOfBounds, "%s", coord)
	}
	if t.Owner != p {
		return reject(ReasonTileNotOwned, "%s owned by %s", coord, t.Owner)
	}
	if !to.Valid() || !t.Kind.CanUpgradeTo(to) {
		return reject(ReasonInvalidUpgrade, "%s -> %s", t.Kind, to)
	}
	u, ok := b.Unit(coord)
	if !ok {
		return reject(ReasonNoUnit, "no worker at %s", coord)
	}
	if u.Owner != p {
		return reject(ReasonNotCurrentPlayersTurn, "%s unit at %s", u.Owner, coord)
	}
	if u.Kind.Class() != world.ClassWorker {
		return reject(ReasonWrongUnitClass, "%s is not a worker", u.Kind)
	}
	if u.ActionPoints < 1 {
		return reject(ReasonNoActionPointsLeft, "%s at %s", u.Kind, coord)
	}
	if !economy.CanUpgradeTile(b, p, coord, to) {
		return reject(ReasonInsufficientUpkeep, "cannot sustain %s", to)
	}
	return nil
}

// UpgradeTile moves the tile one edge forward on the lattice.
func UpgradeTile(b *world.Board, p world.Player, coord world.HexCoord, to world.TileKind) (world.Tile, error) {
	if err := ValidateUpgradeTile(b, p, coord, to); err != nil {
		return world.Tile{}, err
	}
	u, _ := b.Unit(coord)
	if err := b.SetKind(coord, to); err != nil {
		return world.Tile{}, err
	}
	if err := b.SetPoints(coord, u.MovePoints, u.ActionPoints-1); err != nil {
		return world.Tile{}, err
	}
	t, _ := b.Tile(coord)
	return t, nil
}

// LegalTileUpgrades returns the kinds the tile at coord could become right now.
func LegalTileUpgrades(b *world.Board, p world.Player, coord world.HexCoord) []world.TileKind {
	t, ok := b.Tile(coord)
	if !ok {
		return nil
	}
	var out []world.TileKind
	for _, k := range t.Kind.Upgrades() {
		if ValidateUpgradeTile(b, p, coord, k) == nil {
			out = append(out, k)
		}
	}
	return out
}

// ValidateUpgradeUnit checks whether p may promote the unit at coord to kind to.
func ValidateUpgradeUnit(b *world.Board, p world.Player, coord world.HexCoord, to world.UnitKind) error {
	if !b.HasTile(coord) {
		return reject(ReasonOutOfBounds, "%s", coord)
	}
	u, ok := b.Unit(coord)
	if !ok {
		return reject(ReasonNoUnit, "no unit at %s", coord)
	}
	if u.Owner != p {
		return reject(ReasonNotCurrentPlayersTurn, "%s unit at %s", u.Owner, coord)
	}
	if !to.Valid() || !u.Kind.CanUpgradeTo(to) {
		return reject(ReasonInvalidUpgrade, "%s -> %s", u.Kind, to)
	}
	if u.ActionPoints < 1 {
		return reject(ReasonNoActionPointsLeft, "%s at %s", u.Kind, coord)
	}
	if !economy.CanTrainOrUpgradeUnit(b, p, coord, to) {
		return reject(ReasonInsufficientUpkeep, "cannot sustain %s", to)
	}
	return nil
}

// UpgradeUnit promotes the unit in place, spending its action point. Move
// points carry over, clamped to the new kind.
func UpgradeUnit(b *world.Board, p world.Player, coord world.HexCoord, to world.UnitKind) (world.Unit, error) {
	if err := ValidateUpgradeUnit(b, p, coord, to); err != nil {
		return world.Unit{}, err
	}
	u, _ := b.Unit(coord)
	if err := b.ReplaceUnitKind(coord, to); err != nil {
		return world.Unit{}, err
	}
	if err := b.SetPoints(coord, u.MovePoints, u.ActionPoints-1); err != nil {
		return world.Unit{}, err
	}
	promoted, _ := b.Unit(coord)
	return promoted, nil
}

// LegalUnitUpgrades returns the kinds the unit at coord could become right now.
func LegalUnitUpgrades(b *world.Board, p world.Player, coord world.HexCoord) []world.UnitKind {
	u, ok := b.Unit(coord)
	if !ok {
		return nil
	}
	var out []world.UnitKind
	for _, k := range u.Kind.Upgrades() {
		if ValidateUpgradeUnit(b, p, coord, k) == nil {
			out = append(out, k)
		}
	}
	return out
}
