// Package rules validates and applies player intents against a board:
// movement, melee and ranged combat, capture, training and upgrades.
// Every command validates fully before it mutates anything.
package rules

import (
	"errors"
	"fmt"
)

// Reason is a stable rejection code.
type Reason string

const (
	ReasonOutOfBounds               Reason = "OUT_OF_BOUNDS"
	ReasonNotCurrentPlayersTurn     Reason = "NOT_CURRENT_PLAYERS_TURN"
	ReasonNoMovePointsLeft          Reason = "NO_MOVE_POINTS_LEFT"
	ReasonNoActionPointsLeft        Reason = "NO_ACTION_POINTS_LEFT"
	ReasonDestinationOccupiedByAlly Reason = "DESTINATION_OCCUPIED_BY_ALLY"
	ReasonNotReachable              Reason = "NOT_REACHABLE"
	ReasonClosedTerrain             Reason = "CLOSED_TERRAIN"
	ReasonOutOfRange                Reason = "OUT_OF_RANGE"
	ReasonNotAnArcher               Reason = "NOT_AN_ARCHER"
	ReasonWrongUnitClass            Reason = "WRONG_UNIT_CLASS"
	ReasonInsufficientUpkeep        Reason = "INSUFFICIENT_UPKEEP"
	ReasonNoUnit                    Reason = "NO_UNIT"
	ReasonNoTarget                  Reason = "NO_TARGET"
	ReasonTileNotOwned              Reason = "TILE_NOT_OWNED"
	ReasonInvalidUpgrade            Reason = "INVALID_UPGRADE"
	ReasonCellOccupied              Reason = "CELL_OCCUPIED"
	ReasonNotTrainable              Reason = "NOT_TRAINABLE"
)

// Rejection is returned when an intent is illegal. Nothing was mutated.
type Rejection struct {
	Reason Reason
	Detail string
}

func (r *Rejection) Error() string {
	if r == nil {
		return "<nil>"
	}
	if r.Detail == "" {
		return string(r.Reason)
	}
	return fmt.Sprintf("%s: %s", r.Reason, r.Detail)
}

// Is matches on reason only, so errors.Is(err, ErrClosedTerrain) ignores detail.
func (r *Rejection) Is(target error) bool {
	t, ok := target.(*Rejection)
	if !ok || r == nil || t == nil {
		return false
	}
	return r.Reason == t.Reason
}

// Sentinels for errors.Is.
var (
	ErrOutOfBounds               = &Rejection{Reason: ReasonOutOfBounds}
	ErrNotCurrentPlayersTurn     = &Rejection{Reason: ReasonNotCurrentPlayersTurn}
	ErrNoMovePointsLeft          = &Rejection{Reason: ReasonNoMovePointsLeft}
	ErrNoActionPointsLeft        = &Rejection{Reason: ReasonNoActionPointsLeft}
	ErrDestinationOccupiedByAlly = &Rejection{Reason: ReasonDestinationOccupiedByAlly}
	ErrNotReachable              = &Rejection{Reason: ReasonNotReachable}
	ErrClosedTerrain             = &Rejection{Reason: ReasonClosedTerrain}
	ErrOutOfRange                = &Rejection{Reason: ReasonOutOfRange}
	ErrNotAnArcher               = &Rejection{Reason: ReasonNotAnArcher}
	ErrWrongUnitClass            = &Rejection{Reason: ReasonWrongUnitClass}
	ErrInsufficientUpkeep        = &Rejection{Reason: ReasonInsufficientUpkeep}
	ErrNoUnit                    = &Rejection{Reason: ReasonNoUnit}
	ErrNoTarget                  = &Rejection{Reason: ReasonNoTarget}
	ErrTileNotOwned              = &Rejection{Reason: ReasonTileNotOwned}
	ErrInvalidUpgrade            = &Rejection{Reason: ReasonInvalidUpgrade}
	ErrCellOccupied              = &Rejection{Reason: ReasonCellOccupied}
	ErrNotTrainable              = &Rejection{Reason: ReasonNotTrainable}
)

func reject(reason Reason, format string, args ...any) error {
	return &Rejection{Reason: reason, Detail: fmt.Sprintf(format, args...)}
}

// ReasonOf extracts the rejection reason from err, or "" if err is not a rejection.
func ReasonOf(err error) Reason {
	var r *Rejection
	if errors.As(err, &r) {
		return r.Reason
	}
	return ""
}
