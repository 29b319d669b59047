package rules

import (
	"github.com/talgya/upkeep/internal/economy"
	"github.com/talgya/upkeep/internal/world"
)

// Claim records an ownership change attempted on arrival.
type Claim struct {
	Coord    world.HexCoord `json:"coord"`
	Kind     world.TileKind `json:"kind"`
	Previous world.Player   `json:"previous"`
	Owner    world.Player   `json:"owner"` // PlayerNone when the claim could not be sustained
}

// Captured reports whether the claim transferred ownership to the mover.
func (c Claim) Captured() bool {
	return c.Owner != world.PlayerNone
}

// MoveOutcome describes a completed move.
type MoveOutcome struct {
	Unit     world.Unit       `json:"unit"` // the mover after the move
	From     world.HexCoord   `json:"from"`
	Path     []world.HexCoord `json:"path"`
	Defeated *world.Unit      `json:"defeated,omitempty"`
	Claims   []Claim          `json:"claims"`
}

// ValidateMove checks whether p may move the unit at from to to, without
// mutating anything.
func ValidateMove(b *world.Board, p world.Player, from, to world.HexCoord) error {
	_, err := validateMove(b, p, from, to, nil)
	return err
}

func validateMove(b *world.Board, p world.Player, from, to world.HexCoord, reach map[world.HexCoord][]world.HexCoord) ([]world.HexCoord, error) {
	if !b.HasTile(from) || !b.HasTile(to) {
		return nil, reject(ReasonOutOfBounds, "%s -> %s", from, to)
	}
	u, ok := b.Unit(from)
	if !ok {
		return nil, reject(ReasonNoUnit, "no unit at %s", from)
	}
	if u.Owner != p {
		return nil, reject(ReasonNotCurrentPlayersTurn, "%s unit at %s", u.Owner, from)
	}
	if u.MovePoints < 1 {
		return nil, reject(ReasonNoMovePointsLeft, "%s at %s", u.Kind, from)
	}
	defender, hostile := b.Unit(to)
	if hostile && defender.Owner == p {
		return nil, reject(ReasonDestinationOccupiedByAlly, "%s at %s", defender.Kind, to)
	}

	if reach == nil {
		reach = Reach(b, from)
	}
	path, ok := reach[to]
	if !ok {
		return nil, reject(ReasonNotReachable, "%s at %s cannot reach %s", u.Kind, from, to)
	}

	if hostile {
		if !u.Kind.CanAttackByMoving() {
			return nil, reject(ReasonWrongUnitClass, "%s cannot attack", u.Kind)
		}
		if u.ActionPoints < 1 {
			return nil, reject(ReasonNoActionPointsLeft, "%s at %s", u.Kind, from)
		}
		if u.Kind.Has(world.FlagLongWeapon) && IsClosedFor(b, p, to) {
			return nil, reject(ReasonClosedTerrain, "%s cannot attack into %s", u.Kind, to)
		}
	}
	return path, nil
}

// Move relocates the unit at from to to. An enemy on the destination is
// defeated and removed. The mover pays one move point per step and one action
// point when attacking. Every cell the mover arrives on is claimed; surveyors
// claim their whole path.
func Move(b *world.Board, p world.Player, from, to world.HexCoord) (MoveOutcome, error) {
	path, err := validateMove(b, p, from, to, nil)
	if err != nil {
		return MoveOutcome{}, err
	}

	u, _ := b.Unit(from)
	out := MoveOutcome{From: from, Path: path}

	actions := u.ActionPoints
	if defender, ok := b.RemoveUnit(to); ok {
		out.Defeated = &defender
		actions--
	}
	if err := b.RelocateUnit(from, to); err != nil {
		return MoveOutcome{}, err
	}
	if err := b.SetPoints(to, u.MovePoints-len(path), actions); err != nil {
		return MoveOutcome{}, err
	}

	claimed := []world.HexCoord{to}
	if u.Kind.Mobility() == world.MobilitySurvey {
		claimed = path
	}
	for _, c := range claimed {
		if claim, ok := capture(b, p, c); ok {
			out.Claims = append(out.Claims, claim)
		}
	}

	out.Unit, _ = b.Unit(to)
	return out, nil
}

// capture applies capture-on-arrival to one cell. Kinds without upkeep change
// hands unconditionally; kinds with upkeep only when p can sustain them, and
// otherwise the cell is left neutral.
func capture(b *world.Board, p world.Player, coord world.HexCoord) (Claim, bool) {
	t, ok := b.Tile(coord)
	if !ok || t.Owner == p {
		return Claim{}, false
	}
	owner := p
	if t.Kind.HasUpkeep() && !economy.CanClaim(b, p, coord) {
		owner = world.PlayerNone
	}
	_ = b.SetOwner(coord, owner)
	return Claim{Coord: coord, Kind: t.Kind, Previous: t.Owner, Owner: owner}, true
}

// LegalMoveDestinations returns every cell the unit at from may legally move
// to right now, ordered by coordinate.
func LegalMoveDestinations(b *world.Board, from world.HexCoord) []world.HexCoord {
	u, ok := b.Unit(from)
	if !ok {
		return nil
	}
	reach := Reach(b, from)
	var out []world.HexCoord
	for _, to := range sortedCoords(reach) {
		if _, err := validateMove(b, u.Owner, from, to, reach); err == nil {
			out = append(out, to)
		}
	}
	return out
}
