package world

import (
	"testing"

	"github.com/talgya/upkeep/internal/entropy"
)

func TestGenerateDuel(t *testing.T) {
	src := entropy.NewSequence(0.1, 0.4, 0.7)
	b, err := GenerateDuel(GenConfig{Radius: 3, Source: StreamSource{Src: src}})
	if err != nil {
		t.Fatalf("GenerateDuel: %v", err)
	}
	if b.TileCount() != 37 {
		t.Errorf("TileCount() = %d, want 37", b.TileCount())
	}
	if src.Draws() != 37 {
		t.Errorf("Draws() = %d, want one per tile (37)", src.Draws())
	}

	red, blue := StartCells(3)
	for _, start := range []struct {
		coord HexCoord
		owner Player
	}{{red, PlayerRed}, {blue, PlayerBlue}} {
		tile, ok := b.Tile(start.coord)
		if !ok || tile.Kind != TileHomestead || tile.Owner != start.owner {
			t.Errorf("start %v = %+v, want %s homestead", start.coord, tile, start.owner)
		}
		u, ok := b.Unit(start.coord)
		if !ok || u.Kind != UnitPeasant || u.Owner != start.owner || u.MovePoints != 1 || u.ActionPoints != 1 {
			t.Errorf("start unit %v = %+v, want fresh %s peasant", start.coord, u, start.owner)
		}
	}
	if got := len(b.Units()); got != 2 {
		t.Errorf("units = %d, want 2", got)
	}
}

func TestGenerateDuelDeterministic(t *testing.T) {
	a, err := GenerateDuel(DefaultGenConfig(42))
	if err != nil {
		t.Fatal(err)
	}
	b, err := GenerateDuel(DefaultGenConfig(42))
	if err != nil {
		t.Fatal(err)
	}
	at, bt := a.Tiles(), b.Tiles()
	if len(at) != len(bt) {
		t.Fatalf("tile counts differ: %d vs %d", len(at), len(bt))
	}
	for i := range at {
		if at[i] != bt[i] {
			t.Errorf("tile %d differs: %+v vs %+v", i, at[i], bt[i])
		}
	}
}

func TestGenerateDuelRejectsTinyRadius(t *testing.T) {
	if _, err := GenerateDuel(GenConfig{Radius: 1, Source: StreamSource{Src: entropy.NewSequence(0.5)}}); err == nil {
		t.Error("radius 1 should be rejected")
	}
	if _, err := GenerateDuel(GenConfig{Radius: 3}); err == nil {
		t.Error("nil source should be rejected")
	}
}

func TestGenerateSoloRevealsAroundStart(t *testing.T) {
	src := entropy.NewSequence(0.6)
	b, err := GenerateSolo(GenConfig{Source: StreamSource{Src: src}}, PlayerRed)
	if err != nil {
		t.Fatalf("GenerateSolo: %v", err)
	}
	if b.Bounded() {
		t.Error("solo board should be unbounded")
	}
	// Origin plus the peasant's radius-1 ring.
	if b.TileCount() != 7 || src.Draws() != 7 {
		t.Errorf("tiles = %d, draws = %d, want 7 and 7", b.TileCount(), src.Draws())
	}
	origin, _ := b.Tile(HexCoord{})
	if origin.Kind != TileHomestead || origin.Owner != PlayerRed {
		t.Errorf("origin = %+v", origin)
	}
	ring, _ := b.Tile(HexCoord{Q: 1})
	if ring.Kind != TileFarm || ring.Owner != PlayerNone {
		t.Errorf("ring tile = %+v, want neutral farm", ring)
	}
}

func TestRevealAroundOnlyAddsMissing(t *testing.T) {
	b := NewBoard(-1)
	_ = b.AddTile(Tile{Coord: HexCoord{}, Kind: TileFarm, Owner: PlayerRed})
	_ = b.AddTile(Tile{Coord: HexCoord{Q: 1}, Kind: TileTown})
	_ = b.PlaceUnit(Unit{Kind: UnitSurveyor, Owner: PlayerRed})

	src := entropy.NewSequence(0.1)
	revealed := RevealAround(b, PlayerRed, StreamSource{Src: src})
	if len(revealed) != 35 {
		t.Errorf("revealed %d cells, want 35", len(revealed))
	}
	if tile, _ := b.Tile(HexCoord{Q: 1}); tile.Kind != TileTown {
		t.Errorf("existing tile overwritten: %+v", tile)
	}
	if again := RevealAround(b, PlayerRed, StreamSource{Src: src}); len(again) != 0 {
		t.Errorf("second reveal added %d cells", len(again))
	}
}

func TestNoiseSourceIsStable(t *testing.T) {
	n := NewNoiseSource(7)
	for _, c := range Within(HexCoord{}, 3) {
		v := n.Draw(c)
		if v < 0 || v >= 1 {
			t.Errorf("Draw(%v) = %v, want [0, 1)", c, v)
		}
		if again := n.Draw(c); again != v {
			t.Errorf("Draw(%v) not stable: %v then %v", c, v, again)
		}
	}
}

func TestKindCounts(t *testing.T) {
	b, err := GenerateDuel(GenConfig{Radius: 2, Source: StreamSource{Src: entropy.NewSequence(0)}})
	if err != nil {
		t.Fatalf("GenerateDuel: %v", err)
	}
	counts := KindCounts(b)
	if counts[TileForest] != 17 || counts[TileHomestead] != 2 || len(counts) != 2 {
		t.Errorf("KindCounts = %v, want 17 forest and 2 homestead", counts)
	}
}
