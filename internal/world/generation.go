// Map generation: every tile's kind is drawn once from a weighted table
// through an injectable TerrainSource.
package world

import (
	"fmt"
	"math"

	opensimplex "github.com/ojrac/opensimplex-go"

	"github.com/talgya/upkeep/internal/entropy"
)

// TerrainSource yields one draw in [0, 1) per materialised tile.
type TerrainSource interface {
	Draw(coord HexCoord) float64
}

// StreamSource consumes an entropy.Source once per tile, in generation order.
type StreamSource struct {
	Src entropy.Source
}

// Draw ignores the coordinate and takes the next value from the stream.
func (s StreamSource) Draw(HexCoord) float64 {
	return s.Src.Float64()
}

// NoiseSource samples layered simplex noise at the tile's position, so terrain
// forms clusters and the same coordinate always yields the same kind.
type NoiseSource struct {
	noise     opensimplex.Noise
	Octaves   int
	Frequency float64
}

// NewNoiseSource creates a clustered terrain source from a seed.
func NewNoiseSource(seed int64) *NoiseSource {
	return &NoiseSource{
		noise:     opensimplex.NewNormalized(seed),
		Octaves:   3,
		Frequency: 0.18,
	}
}

// Draw samples the noise field at coord.
func (n *NoiseSource) Draw(coord HexCoord) float64 {
	// Hex axial → cartesian: x = q + r*0.5, y = r * sqrt(3)/2
	x := float64(coord.Q) + float64(coord.R)*0.5
	y := float64(coord.R) * math.Sqrt(3.0) / 2.0
	v := octaveNoise(n.noise, x, y, n.Octaves, n.Frequency, 0.5)
	return math.Min(math.Max(v, 0), math.Nextafter(1, 0))
}

// GenConfig holds map generation parameters.
type GenConfig struct {
	Radius int           // duel map radius; ignored for solo maps
	Source TerrainSource // one draw per tile
}

// DefaultGenConfig returns a small duel map fed by a seeded stream.
func DefaultGenConfig(seed int64) GenConfig {
	return GenConfig{
		Radius: 4,
		Source: StreamSource{Src: entropy.NewSeeded(seed)},
	}
}

// StartCells returns the red and blue starting cells for a duel map of radius r.
func StartCells(radius int) (red, blue HexCoord) {
	return HexCoord{Q: -(radius - 1), R: 0}, HexCoord{Q: radius - 1, R: 0}
}

// GenerateDuel creates a bounded two-player map. Every cell within the radius
// gets a drawn kind; each start cell is then forced to a homestead owned by its
// player with a peasant on it.
func GenerateDuel(cfg GenConfig) (*Board, error) {
	if cfg.Radius < 2 {
		return nil, fmt.Errorf("duel radius %d: must be at least 2", cfg.Radius)
	}
	if cfg.Source == nil {
		return nil, fmt.Errorf("generate: nil terrain source")
	}

	b := NewBoard(cfg.Radius)
	for _, coord := range Within(HexCoord{}, cfg.Radius) {
		if err := b.AddTile(Tile{Coord: coord, Kind: KindForDraw(cfg.Source.Draw(coord))}); err != nil {
			return nil, err
		}
	}

	red, blue := StartCells(cfg.Radius)
	for _, start := range []struct {
		coord  HexCoord
		player Player
	}{{red, PlayerRed}, {blue, PlayerBlue}} {
		if err := settle(b, start.coord, start.player); err != nil {
			return nil, err
		}
	}
	return b, nil
}

// GenerateSolo creates an unbounded fog map with the sole player settled at the
// origin. Only the cells around the starting unit are materialised.
func GenerateSolo(cfg GenConfig, p Player) (*Board, error) {
	if cfg.Source == nil {
		return nil, fmt.Errorf("generate: nil terrain source")
	}
	b := NewBoard(-1)
	origin := HexCoord{}
	if err := b.AddTile(Tile{Coord: origin, Kind: KindForDraw(cfg.Source.Draw(origin))}); err != nil {
		return nil, err
	}
	if err := settle(b, origin, p); err != nil {
		return nil, err
	}
	RevealAround(b, p, cfg.Source)
	return b, nil
}

// settle forces a start cell to the base development kind, owned by p, with one peasant.
func settle(b *Board, coord HexCoord, p Player) error {
	if err := b.SetKind(coord, TileHomestead); err != nil {
		return err
	}
	if err := b.SetOwner(coord, p); err != nil {
		return err
	}
	return b.PlaceUnit(Unit{
		Coord:        coord,
		Kind:         UnitPeasant,
		Owner:        p,
		MovePoints:   UnitPeasant.MaxMove(),
		ActionPoints: UnitPeasant.MaxAction(),
	})
}

// KindForDraw maps a draw in [0, 1) onto the weighted kind table.
func KindForDraw(v float64) TileKind {
	total := 0
	for _, k := range TileKinds() {
		total += k.Spec().Weight
	}
	target := int(v * float64(total))
	acc := 0
	for _, k := range TileKinds() {
		acc += k.Spec().Weight
		if target < acc {
			return k
		}
	}
	return TileForest
}

// octaveNoise generates fractal noise by layering multiple frequencies.
func octaveNoise(noise opensimplex.Noise, x, y float64, octaves int, frequency, persistence float64) float64 {
	total := 0.0
	amplitude := 1.0
	maxVal := 0.0

	for i := 0; i < octaves; i++ {
		total += noise.Eval2(x*frequency, y*frequency) * amplitude
		maxVal += amplitude
		amplitude *= persistence
		frequency *= 2
	}

	return total / maxVal
}

// KindCounts returns a summary of tile kind distribution.
func KindCounts(b *Board) map[TileKind]int {
	counts := make(map[TileKind]int)
	for _, t := range b.Tiles() {
		counts[t.Kind]++
	}
	return counts
}
