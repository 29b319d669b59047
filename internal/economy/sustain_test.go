package economy

import (
	"testing"

	"github.com/talgya/upkeep/internal/world"
)

func TestCanClaim(t *testing.T) {
	tests := []struct {
		name  string
		tiles []world.Tile
		coord world.HexCoord
		want  bool
	}{
		{
			name:  "no upkeep always claimable",
			tiles: []world.Tile{{Coord: hex(0, 0), Kind: world.TileForest, Owner: blue}},
			coord: hex(0, 0),
			want:  true,
		},
		{
			name:  "village without wood",
			tiles: []world.Tile{{Coord: hex(0, 0), Kind: world.TileVillage}},
			coord: hex(0, 0),
			want:  false,
		},
		{
			name: "village with a forest",
			tiles: []world.Tile{
				{Coord: hex(0, 0), Kind: world.TileVillage},
				{Coord: hex(4, 0), Kind: world.TileForest, Owner: red},
			},
			coord: hex(0, 0),
			want:  true,
		},
		{
			name:  "already owned",
			tiles: []world.Tile{{Coord: hex(0, 0), Kind: world.TileCity, Owner: red}},
			coord: hex(0, 0),
			want:  true,
		},
		{
			name:  "missing tile",
			coord: hex(9, 9),
			want:  false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := board(t, tt.tiles, nil)
			if got := CanClaim(b, red, tt.coord); got != tt.want {
				t.Errorf("CanClaim = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCanClaimIgnoresUnrelatedShortage(t *testing.T) {
	// Red is already short of crops; claiming a village only costs wood.
	b := board(t,
		[]world.Tile{
			{Coord: hex(0, 0), Kind: world.TilePasture, Owner: red},
			{Coord: hex(1, 0), Kind: world.TileForest, Owner: red},
			{Coord: hex(3, 0), Kind: world.TileVillage},
		},
		[]world.Unit{{Coord: hex(0, 0), Kind: world.UnitMilitia, Owner: red}},
	)
	if !CanClaim(b, red, hex(3, 0)) {
		t.Error("CanClaim = false, want true")
	}
}

func TestSustainabilityDoesNotMutate(t *testing.T) {
	b := board(t,
		[]world.Tile{
			{Coord: hex(0, 0), Kind: world.TileHomestead, Owner: red},
			{Coord: hex(1, 0), Kind: world.TileVillage},
		},
		[]world.Unit{{Coord: hex(0, 0), Kind: world.UnitPeasant, Owner: red}},
	)
	before := b.Tiles()
	beforeUnits := b.Units()

	first := []bool{
		CanClaim(b, red, hex(1, 0)),
		CanUpgradeTile(b, red, hex(0, 0), world.TileVillage),
		CanTrainOrUpgradeUnit(b, red, hex(0, 0), world.UnitMason),
	}
	second := []bool{
		CanClaim(b, red, hex(1, 0)),
		CanUpgradeTile(b, red, hex(0, 0), world.TileVillage),
		CanTrainOrUpgradeUnit(b, red, hex(0, 0), world.UnitMason),
	}
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("check %d changed between calls: %v then %v", i, first[i], second[i])
		}
	}

	after := b.Tiles()
	for i := range before {
		if before[i] != after[i] {
			t.Errorf("tile %v mutated: %+v -> %+v", before[i].Coord, before[i], after[i])
		}
	}
	afterUnits := b.Units()
	if len(afterUnits) != len(beforeUnits) || afterUnits[0] != beforeUnits[0] {
		t.Errorf("units mutated: %v -> %v", beforeUnits, afterUnits)
	}
}

func TestCanUpgradeTile(t *testing.T) {
	b := board(t,
		[]world.Tile{
			{Coord: hex(0, 0), Kind: world.TileHomestead, Owner: red},
			{Coord: hex(2, 0), Kind: world.TileFarm, Owner: red},
		},
		nil,
	)
	if !CanUpgradeTile(b, red, hex(2, 0), world.TileHomestead) {
		t.Error("farm -> homestead should be sustainable")
	}
	if CanUpgradeTile(b, red, hex(0, 0), world.TileVillage) {
		t.Error("homestead -> village without wood should not be sustainable")
	}
	if !CanUpgradeTile(b, red, hex(0, 0), world.TileManor) {
		t.Error("homestead -> manor fed by the farm should be sustainable")
	}
}

func TestCanTrainOrUpgradeUnit(t *testing.T) {
	b := board(t,
		[]world.Tile{
			{Coord: hex(0, 0), Kind: world.TileFarm, Owner: red},
			{Coord: hex(2, 0), Kind: world.TileHomestead, Owner: red},
			{Coord: hex(4, 0), Kind: world.TilePasture, Owner: red},
		},
		[]world.Unit{{Coord: hex(4, 0), Kind: world.UnitMilitia, Owner: red}},
	)

	tests := []struct {
		name  string
		coord world.HexCoord
		kind  world.UnitKind
		want  bool
	}{
		{"free peasant on farm", hex(0, 0), world.UnitPeasant, true},
		{"free militia on homestead", hex(2, 0), world.UnitMilitia, true},
		{"spearman needs wood", hex(2, 0), world.UnitSpearman, false},
		{"upgrade militia to swordsman needs ore", hex(4, 0), world.UnitSwordsman, false},
		{"second crop eater fed by two producers", hex(0, 0), world.UnitWoodcutter, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CanTrainOrUpgradeUnit(b, red, tt.coord, tt.kind); got != tt.want {
				t.Errorf("CanTrainOrUpgradeUnit(%s) = %v, want %v", tt.kind, got, tt.want)
			}
		})
	}
}

func TestCanClaimIgnoresProductionSideEffects(t *testing.T) {
	// The militia eats the farm's only crop, so a manor's upkeep cannot be
	// met even though owning it would double the farm's output.
	b := board(t,
		[]world.Tile{
			{Coord: hex(0, 0), Kind: world.TileFarm, Owner: red},
			{Coord: hex(1, 0), Kind: world.TileManor},
		},
		[]world.Unit{{Coord: hex(0, 0), Kind: world.UnitMilitia, Owner: red}},
	)
	if got := Compute(b, red).Available[world.ResourceCrops]; got != 0 {
		t.Fatalf("crops available = %d, want 0", got)
	}
	if CanClaim(b, red, hex(1, 0)) {
		t.Error("CanClaim(manor) = true, want false")
	}
}

func TestCanUpgradeTileCountsOnlyUpkeep(t *testing.T) {
	// The forest is the village's only wood. Turning it into pasture loses that
	// wood, but the upkeep delta is zero so the upgrade itself is allowed.
	b := board(t,
		[]world.Tile{
			{Coord: hex(0, 0), Kind: world.TileForest, Owner: red},
			{Coord: hex(1, 0), Kind: world.TileVillage, Owner: red},
		},
		nil,
	)
	if !CanUpgradeTile(b, red, hex(0, 0), world.TilePasture) {
		t.Error("CanUpgradeTile(forest -> pasture) = false, want true")
	}
	if CanUpgradeTile(b, red, hex(1, 0), world.TileTown) {
		t.Error("CanUpgradeTile(village -> town) without crops = true, want false")
	}
}

func TestCanUpgradeUnitRefundsOldUpkeep(t *testing.T) {
	// One crop left over; a swordsman replacing a paying militia only adds ore.
	b := board(t,
		[]world.Tile{
			{Coord: hex(0, 0), Kind: world.TilePasture, Owner: red},
			{Coord: hex(1, 0), Kind: world.TileFarm, Owner: red},
			{Coord: hex(2, 0), Kind: world.TileStronghold, Owner: red},
			{Coord: hex(3, 0), Kind: world.TileForest, Owner: red},
			{Coord: hex(4, 0), Kind: world.TileFarm, Owner: red},
		},
		[]world.Unit{{Coord: hex(0, 0), Kind: world.UnitMilitia, Owner: red}},
	)
	l := Compute(b, red)
	if l.Available[world.ResourceCrops] != 0 || l.Available[world.ResourceOre] != 1 {
		t.Fatalf("ledger available = %v", l.Available)
	}
	if !CanTrainOrUpgradeUnit(b, red, hex(0, 0), world.UnitSwordsman) {
		t.Error("militia -> swordsman = false, want true")
	}
	if CanTrainOrUpgradeUnit(b, red, hex(1, 0), world.UnitWoodcutter) {
		t.Error("training a crop eater with no crops left = true, want false")
	}
}
