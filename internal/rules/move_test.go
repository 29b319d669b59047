package rules

import (
	"testing"

	"github.com/talgya/upkeep/internal/world"
)

func TestValidateMoveRejections(t *testing.T) {
	b := filled(t, 2, world.TilePasture)
	put(t, b, hex(0, 0), world.UnitMilitia, red)
	put(t, b, hex(1, 0), world.UnitMilitia, red)
	put(t, b, hex(-1, 0), world.UnitPeasant, red)
	put(t, b, hex(-1, 1), world.UnitMilitia, blue)
	put(t, b, hex(0, -1), world.UnitArcher, red)
	put(t, b, hex(1, -1), world.UnitMilitia, blue)
	_ = b.PlaceUnit(world.Unit{Coord: hex(0, 2), Kind: world.UnitMilitia, Owner: red})

	tests := []struct {
		name     string
		player   world.Player
		from, to world.HexCoord
		want     *Rejection
	}{
		{"off the map", red, hex(0, 0), hex(5, 0), ErrOutOfBounds},
		{"empty origin", red, hex(2, 0), hex(1, 0), ErrNoUnit},
		{"enemy unit", blue, hex(0, 0), hex(0, 1), ErrNotCurrentPlayersTurn},
		{"spent unit", red, hex(0, 2), hex(0, 1), ErrNoMovePointsLeft},
		{"onto ally", red, hex(0, 0), hex(1, 0), ErrDestinationOccupiedByAlly},
		{"too far", red, hex(0, 0), hex(-2, 0), ErrNotReachable},
		{"worker attack", red, hex(-1, 0), hex(-1, 1), ErrWrongUnitClass},
		{"archer attack by moving", red, hex(0, -1), hex(1, -1), ErrWrongUnitClass},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wantReason(t, ValidateMove(b, tt.player, tt.from, tt.to), tt.want)
		})
	}
}

func TestMoveSpendsPointsAndClaims(t *testing.T) {
	b := filled(t, 2, world.TilePasture)
	put(t, b, hex(0, 0), world.UnitMilitia, red)

	out, err := Move(b, red, hex(0, 0), hex(1, 0))
	if err != nil {
		t.Fatalf("Move: %v", err)
	}
	if out.Unit.Coord != hex(1, 0) || out.Unit.MovePoints != 0 || out.Unit.ActionPoints != 1 {
		t.Errorf("unit after move = %+v", out.Unit)
	}
	if b.Occupied(hex(0, 0)) {
		t.Error("origin still occupied")
	}
	if len(out.Claims) != 1 || !out.Claims[0].Captured() {
		t.Errorf("claims = %+v", out.Claims)
	}
	if tile, _ := b.Tile(hex(1, 0)); tile.Owner != red {
		t.Errorf("destination owner = %s, want red", tile.Owner)
	}
	wantReason(t, ValidateMove(b, red, hex(1, 0), hex(2, 0)), ErrNoMovePointsLeft)
}

func TestMeleeAttackDefeatsDefender(t *testing.T) {
	b := filled(t, 2, world.TilePasture)
	put(t, b, hex(0, 0), world.UnitMilitia, red)
	put(t, b, hex(1, 0), world.UnitPeasant, blue)
	setKind(t, b, hex(1, 0), world.TileFarm, blue)

	out, err := Move(b, red, hex(0, 0), hex(1, 0))
	if err != nil {
		t.Fatalf("Move: %v", err)
	}
	if out.Defeated == nil || out.Defeated.Kind != world.UnitPeasant || out.Defeated.Owner != blue {
		t.Fatalf("defeated = %+v", out.Defeated)
	}
	if out.Unit.Owner != red || out.Unit.ActionPoints != 0 || out.Unit.MovePoints != 0 {
		t.Errorf("attacker after move = %+v", out.Unit)
	}
	if tile, _ := b.Tile(hex(1, 0)); tile.Owner != red {
		t.Errorf("captured farm owner = %s, want red", tile.Owner)
	}
	if len(out.Claims) != 1 || out.Claims[0].Previous != blue {
		t.Errorf("claims = %+v", out.Claims)
	}
}

func TestSpearCannotAttackIntoForest(t *testing.T) {
	b := filled(t, 2, world.TilePasture)
	setKind(t, b, hex(1, 0), world.TileForest, world.PlayerNone)
	put(t, b, hex(0, 0), world.UnitSpearman, red)
	put(t, b, hex(1, 0), world.UnitMilitia, blue)

	wantReason(t, ValidateMove(b, red, hex(0, 0), hex(1, 0)), ErrClosedTerrain)
	if _, err := Move(b, red, hex(0, 0), hex(1, 0)); err == nil {
		t.Fatal("Move should fail")
	}
	if u, _ := b.Unit(hex(1, 0)); u.Owner != blue {
		t.Error("rejected move mutated the defender")
	}
	if u, _ := b.Unit(hex(0, 0)); u.MovePoints != 1 || u.ActionPoints != 1 {
		t.Errorf("rejected move spent points: %+v", u)
	}

	// A short weapon is not hindered.
	_, _ = b.RemoveUnit(hex(0, 0))
	put(t, b, hex(0, 0), world.UnitSwordsman, red)
	if err := ValidateMove(b, red, hex(0, 0), hex(1, 0)); err != nil {
		t.Errorf("swordsman into forest: %v", err)
	}
}

func TestCaptureWithoutUpkeepLeavesNeutral(t *testing.T) {
	tests := []struct {
		name     string
		previous world.Player
	}{
		{"neutral village", world.PlayerNone},
		{"enemy village", blue},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := filled(t, 2, world.TilePasture)
			setKind(t, b, hex(1, 0), world.TileVillage, tt.previous)
			put(t, b, hex(0, 0), world.UnitMilitia, red)

			out, err := Move(b, red, hex(0, 0), hex(1, 0))
			if err != nil {
				t.Fatalf("Move: %v", err)
			}
			if out.Unit.Coord != hex(1, 0) {
				t.Errorf("unit at %v, want 1,0", out.Unit.Coord)
			}
			tile, _ := b.Tile(hex(1, 0))
			if tile.Owner != world.PlayerNone {
				t.Errorf("village owner = %s, want neutral", tile.Owner)
			}
			if len(out.Claims) != 1 || out.Claims[0].Captured() || out.Claims[0].Previous != tt.previous {
				t.Errorf("claims = %+v", out.Claims)
			}
		})
	}
}

func TestCaptureWithWoodSucceeds(t *testing.T) {
	b := filled(t, 2, world.TilePasture)
	setKind(t, b, hex(1, 0), world.TileVillage, world.PlayerNone)
	setKind(t, b, hex(-2, 0), world.TileForest, red)
	put(t, b, hex(0, 0), world.UnitMilitia, red)

	if _, err := Move(b, red, hex(0, 0), hex(1, 0)); err != nil {
		t.Fatalf("Move: %v", err)
	}
	if tile, _ := b.Tile(hex(1, 0)); tile.Owner != red {
		t.Errorf("village owner = %s, want red", tile.Owner)
	}
}

func TestSurveyorClaimsPath(t *testing.T) {
	b := filled(t, 3, world.TilePasture)
	put(t, b, hex(0, 0), world.UnitSurveyor, red)

	out, err := Move(b, red, hex(0, 0), hex(3, 0))
	if err != nil {
		t.Fatalf("Move: %v", err)
	}
	if len(out.Path) != 3 || len(out.Claims) != 3 {
		t.Fatalf("path = %v, claims = %v", out.Path, out.Claims)
	}
	prev := hex(0, 0)
	for i, step := range out.Path {
		if !world.Adjacent(prev, step) {
			t.Errorf("path step %d %v not adjacent to %v", i, step, prev)
		}
		prev = step
		if tile, _ := b.Tile(step); tile.Owner != red {
			t.Errorf("path cell %v owner = %s, want red", step, tile.Owner)
		}
		if out.Claims[i].Coord != step {
			t.Errorf("claim %d at %v, want %v", i, out.Claims[i].Coord, step)
		}
	}
	if out.Unit.MovePoints != 0 {
		t.Errorf("move points left = %d, want 0", out.Unit.MovePoints)
	}
}

func TestSurveyorLeavesUnsustainablePathCellNeutral(t *testing.T) {
	b := filled(t, 3, world.TilePasture)
	setKind(t, b, hex(2, 0), world.TileVillage, world.PlayerNone)
	put(t, b, hex(0, 0), world.UnitSurveyor, red)

	out, err := Move(b, red, hex(0, 0), hex(3, 0))
	if err != nil {
		t.Fatalf("Move: %v", err)
	}
	if out.Unit.Coord != hex(3, 0) {
		t.Errorf("surveyor at %v, want 3,0", out.Unit.Coord)
	}
	if u, ok := b.Unit(hex(3, 0)); !ok || u.Kind != world.UnitSurveyor {
		t.Errorf("unit at destination = %+v", u)
	}

	want := map[world.HexCoord]world.Player{
		hex(1, 0): red,
		hex(2, 0): world.PlayerNone,
		hex(3, 0): red,
	}
	for c, owner := range want {
		if tile, _ := b.Tile(c); tile.Owner != owner {
			t.Errorf("owner of %v = %s, want %s", c, tile.Owner, owner)
		}
	}
	if len(out.Claims) != 3 || out.Claims[1].Coord != hex(2, 0) || out.Claims[1].Captured() {
		t.Errorf("claims = %+v", out.Claims)
	}
}

func TestCavalryChargeCostsPathAndAction(t *testing.T) {
	b := filled(t, 3, world.TilePasture)
	put(t, b, hex(0, 0), world.UnitScout, red)
	put(t, b, hex(2, 0), world.UnitMilitia, blue)

	out, err := Move(b, red, hex(0, 0), hex(2, 0))
	if err != nil {
		t.Fatalf("Move: %v", err)
	}
	if out.Defeated == nil {
		t.Fatal("no defender defeated")
	}
	if out.Unit.MovePoints != 1 || out.Unit.ActionPoints != 0 {
		t.Errorf("points after charge = %d/%d, want 1/0", out.Unit.MovePoints, out.Unit.ActionPoints)
	}
	// Only the destination is claimed.
	if len(out.Claims) != 1 {
		t.Errorf("claims = %v, want 1", out.Claims)
	}
}

func TestLegalMoveDestinationsAreValid(t *testing.T) {
	b := filled(t, 3, world.TilePasture)
	setKind(t, b, hex(1, -1), world.TileForest, world.PlayerNone)
	put(t, b, hex(0, 0), world.UnitLancer, red)
	put(t, b, hex(1, -1), world.UnitMilitia, blue)
	put(t, b, hex(-1, 0), world.UnitMilitia, red)

	dests := LegalMoveDestinations(b, hex(0, 0))
	if len(dests) == 0 {
		t.Fatal("no destinations")
	}
	for _, d := range dests {
		if err := ValidateMove(b, red, hex(0, 0), d); err != nil {
			t.Errorf("listed destination %v rejected: %v", d, err)
		}
	}
	for _, d := range dests {
		if d == hex(1, -1) {
			t.Error("lancer should not charge into the forest")
		}
	}
}
