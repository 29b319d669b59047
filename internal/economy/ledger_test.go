package economy

import (
	"testing"

	"github.com/talgya/upkeep/internal/world"
)

func hex(q, r int) world.HexCoord { return world.HexCoord{Q: q, R: r} }

// board builds a fog board from tiles and units. Units get full points.
func board(t *testing.T, tiles []world.Tile, units []world.Unit) *world.Board {
	t.Helper()
	b := world.NewBoard(-1)
	for _, tile := range tiles {
		if err := b.AddTile(tile); err != nil {
			t.Fatalf("AddTile(%v): %v", tile.Coord, err)
		}
	}
	for _, u := range units {
		u.MovePoints, u.ActionPoints = u.Kind.MaxMove(), u.Kind.MaxAction()
		if err := b.PlaceUnit(u); err != nil {
			t.Fatalf("PlaceUnit(%v): %v", u.Coord, err)
		}
	}
	return b
}

const red, blue = world.PlayerRed, world.PlayerBlue

func TestProductionQuantity(t *testing.T) {
	tests := []struct {
		name  string
		tiles []world.Tile
		units []world.Unit
		crops int
	}{
		{
			name:  "lone farm",
			tiles: []world.Tile{{Coord: hex(0, 0), Kind: world.TileFarm, Owner: red}},
			crops: 1,
		},
		{
			name: "neutral farm produces nothing",
			tiles: []world.Tile{
				{Coord: hex(0, 0), Kind: world.TileFarm},
			},
			crops: 0,
		},
		{
			name: "one adjacent manor doubles",
			tiles: []world.Tile{
				{Coord: hex(0, 0), Kind: world.TileFarm, Owner: red},
				{Coord: hex(1, 0), Kind: world.TileManor, Owner: red},
			},
			crops: 2 - 1, // manor eats one crop
		},
		{
			name: "two adjacent manors quadruple",
			tiles: []world.Tile{
				{Coord: hex(0, 0), Kind: world.TileFarm, Owner: red},
				{Coord: hex(1, 0), Kind: world.TileManor, Owner: red},
				{Coord: hex(-1, 0), Kind: world.TileManor, Owner: red},
			},
			crops: 4 - 2,
		},
		{
			name: "enemy manor does not count",
			tiles: []world.Tile{
				{Coord: hex(0, 0), Kind: world.TileFarm, Owner: red},
				{Coord: hex(1, 0), Kind: world.TileManor, Owner: blue},
			},
			crops: 1,
		},
		{
			name: "resident booster adds one and is free",
			tiles: []world.Tile{
				{Coord: hex(0, 0), Kind: world.TileFarm, Owner: red},
			},
			units: []world.Unit{{Coord: hex(0, 0), Kind: world.UnitPeasant, Owner: red}},
			crops: 2,
		},
		{
			name: "adjacent constable boosts occupied tile",
			tiles: []world.Tile{
				{Coord: hex(0, 0), Kind: world.TileFarm, Owner: red},
				{Coord: hex(1, 0), Kind: world.TileVillage, Owner: red},
			},
			units: []world.Unit{
				{Coord: hex(0, 0), Kind: world.UnitPeasant, Owner: red},
				{Coord: hex(1, 0), Kind: world.UnitConstable, Owner: red},
			},
			crops: 3, // base 1, peasant boost, constable boost; constable is free on village
		},
		{
			name: "constable ignores empty tile",
			tiles: []world.Tile{
				{Coord: hex(0, 0), Kind: world.TileFarm, Owner: red},
				{Coord: hex(1, 0), Kind: world.TileVillage, Owner: red},
			},
			units: []world.Unit{
				{Coord: hex(1, 0), Kind: world.UnitConstable, Owner: red},
			},
			crops: 1,
		},
		{
			name: "palace doubles everything",
			tiles: []world.Tile{
				{Coord: hex(0, 0), Kind: world.TileFarm, Owner: red},
				{Coord: hex(5, 0), Kind: world.TilePalace, Owner: red},
			},
			crops: 2,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := Compute(board(t, tt.tiles, tt.units), red)
			if got := l.Available[world.ResourceCrops]; got != tt.crops {
				t.Errorf("crops available = %d, want %d (produced %d, used %d)",
					got, tt.crops, l.Produced[world.ResourceCrops], l.Used[world.ResourceCrops])
			}
		})
	}
}

func TestAvailableIsProducedMinusUsed(t *testing.T) {
	b, err := world.GenerateDuel(world.DefaultGenConfig(99))
	if err != nil {
		t.Fatal(err)
	}
	for i, tile := range b.Tiles() {
		owner := red
		if i%3 == 0 {
			owner = blue
		}
		_ = b.SetOwner(tile.Coord, owner)
		if i%4 == 0 && !b.Occupied(tile.Coord) {
			_ = b.PlaceUnit(world.Unit{Coord: tile.Coord, Kind: world.UnitKind(i % world.NumUnitKinds), Owner: owner})
		}
	}

	for _, p := range []world.Player{red, blue} {
		l := Compute(b, p)
		for _, r := range world.Resources() {
			if l.Available[r] != l.Produced[r]-l.Used[r] {
				t.Errorf("%s %s: available %d != produced %d - used %d",
					p, r, l.Available[r], l.Produced[r], l.Used[r])
			}
		}
	}
}

func TestShortagesInOrder(t *testing.T) {
	b := board(t,
		[]world.Tile{
			{Coord: hex(0, 0), Kind: world.TileVillage, Owner: red},
			{Coord: hex(1, 0), Kind: world.TilePasture, Owner: red},
		},
		[]world.Unit{{Coord: hex(1, 0), Kind: world.UnitMilitia, Owner: red}},
	)
	got := Compute(b, red).Shortages()
	want := []world.ResourceType{world.ResourceCrops, world.ResourceWood}
	if len(got) != len(want) {
		t.Fatalf("Shortages() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Shortages()[%d] = %s, want %s", i, got[i], want[i])
		}
	}
}
