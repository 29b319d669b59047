package rules

import (
	"github.com/talgya/upkeep/internal/world"
)

// AttackOutcome describes a completed ranged attack.
type AttackOutcome struct {
	Attacker world.Unit `json:"attacker"`
	Defeated world.Unit `json:"defeated"`
}

// ValidateRangedAttack checks whether p's archer at from may shoot the unit at to.
func ValidateRangedAttack(b *world.Board, p world.Player, from, to world.HexCoord) error {
	if !b.HasTile(from) || !b.HasTile(to) {
		return reject(ReasonOutOfBounds, "%s -> %s", from, to)
	}
	u, ok := b.Unit(from)
	if !ok {
		return reject(ReasonNoUnit, "no unit at %s", from)
	}
	if u.Owner != p {
		return reject(ReasonNotCurrentPlayersTurn, "%s unit at %s", u.Owner, from)
	}
	if u.Kind.Class() != world.ClassArcher {
		return reject(ReasonNotAnArcher, "%s", u.Kind)
	}
	if u.ActionPoints < 1 {
		return reject(ReasonNoActionPointsLeft, "%s at %s", u.Kind, from)
	}
	target, ok := b.Unit(to)
	if !ok {
		return reject(ReasonNoTarget, "nothing at %s", to)
	}
	if target.Owner == p {
		return reject(ReasonDestinationOccupiedByAlly, "%s at %s", target.Kind, to)
	}
	if d := world.Distance(from, to); d < 1 || d > u.Kind.Range() {
		return reject(ReasonOutOfRange, "%s range %d, target at %d", u.Kind, u.Kind.Range(), d)
	}
	if u.Kind.Has(world.FlagLongWeapon) && IsClosedFor(b, p, from) {
		return reject(ReasonClosedTerrain, "%s cannot shoot from %s", u.Kind, from)
	}
	return nil
}

// RangedAttack removes the target without moving the archer and spends one
// action point.
func RangedAttack(b *world.Board, p world.Player, from, to world.HexCoord) (AttackOutcome, error) {
	if err := ValidateRangedAttack(b, p, from, to); err != nil {
		return AttackOutcome{}, err
	}
	u, _ := b.Unit(from)
	defeated, _ := b.RemoveUnit(to)
	if err := b.SetPoints(from, u.MovePoints, u.ActionPoints-1); err != nil {
		return AttackOutcome{}, err
	}
	attacker, _ := b.Unit(from)
	return AttackOutcome{Attacker: attacker, Defeated: defeated}, nil
}

// LegalAttackTargets returns every cell the unit at from may shoot right now,
// ordered by coordinate.
func LegalAttackTargets(b *world.Board, from world.HexCoord) []world.HexCoord {
	u, ok := b.Unit(from)
	if !ok || u.Kind.Class() != world.ClassArcher {
		return nil
	}
	var out []world.HexCoord
	for _, to := range world.Within(from, u.Kind.Range()) {
		if ValidateRangedAttack(b, u.Owner, from, to) == nil {
			out = append(out, to)
		}
	}
	return out
}
