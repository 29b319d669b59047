package rules

import (
	"errors"
	"testing"

	"github.com/talgya/upkeep/internal/world"
)

const red, blue = world.PlayerRed, world.PlayerBlue

func hex(q, r int) world.HexCoord { return world.HexCoord{Q: q, R: r} }

// filled returns a bounded board of the given radius with every tile of kind.
func filled(t *testing.T, radius int, kind world.TileKind) *world.Board {
	t.Helper()
	b := world.NewBoard(radius)
	for _, c := range world.Within(world.HexCoord{}, radius) {
		if err := b.AddTile(world.Tile{Coord: c, Kind: kind}); err != nil {
			t.Fatal(err)
		}
	}
	return b
}

// put places a unit with full points.
func put(t *testing.T, b *world.Board, c world.HexCoord, kind world.UnitKind, owner world.Player) {
	t.Helper()
	err := b.PlaceUnit(world.Unit{Coord: c, Kind: kind, Owner: owner, MovePoints: kind.MaxMove(), ActionPoints: kind.MaxAction()})
	if err != nil {
		t.Fatal(err)
	}
}

func setKind(t *testing.T, b *world.Board, c world.HexCoord, kind world.TileKind, owner world.Player) {
	t.Helper()
	if err := b.SetKind(c, kind); err != nil {
		t.Fatal(err)
	}
	if err := b.SetOwner(c, owner); err != nil {
		t.Fatal(err)
	}
}

func wantReason(t *testing.T, err error, want *Rejection) {
	t.Helper()
	if !errors.Is(err, want) {
		t.Errorf("err = %v, want %s", err, want.Reason)
	}
}
