// Shortage resolution at turn rollover: greedy, resource by resource,
// farthest-from-supply first.
package economy

import (
	"fmt"
	"log/slog"
	"sort"

	"github.com/talgya/upkeep/internal/world"
)

// noSupplyDistance is the distance assigned when the player owns no producer.
const noSupplyDistance = 999

// EvictionTarget says whether a unit was disbanded or a structure de-annexed.
type EvictionTarget uint8

const (
	EvictUnit EvictionTarget = iota
	EvictStructure
)

func (t EvictionTarget) String() string {
	if t == EvictStructure {
		return "structure"
	}
	return "unit"
}

// Eviction records one forced removal.
type Eviction struct {
	Player   world.Player       `json:"player"`
	Target   EvictionTarget     `json:"target"`
	Kind     string             `json:"kind"`
	Coord    world.HexCoord     `json:"coord"`
	Resource world.ResourceType `json:"resource"`
}

func (e Eviction) String() string {
	verb := "disbanded"
	if e.Target == EvictStructure {
		verb = "abandoned"
	}
	return fmt.Sprintf("%s %s %s at %s for lack of %s", e.Player, verb, e.Kind, e.Coord, e.Resource)
}

type consumer struct {
	coord    world.HexCoord
	kind     string
	distance int
}

// ResolveShortages disbands units and then de-annexes structures until every
// resource p consumes is back in balance or no eligible consumer remains.
// Resources are processed in their fixed order; within one resource the
// consumers farthest from the nearest owned producer go first, ties in
// coordinate order. The deficit is re-derived from the board after every
// removal.
func ResolveShortages(b *world.Board, p world.Player) []Eviction {
	var evictions []Eviction

	for _, r := range world.Resources() {
		if deficit(b, p, r) <= 0 {
			continue
		}

		supply := suppliers(b, p, r)

		var units []consumer
		for _, u := range b.UnitsOf(p) {
			if u.Kind.Upkeep()[r] == 0 || unitIsFree(b, u) {
				continue
			}
			units = append(units, consumer{coord: u.Coord, kind: u.Kind.String(), distance: nearest(u.Coord, supply)})
		}
		sortFarthestFirst(units)

		for _, c := range units {
			if deficit(b, p, r) <= 0 {
				break
			}
			b.RemoveUnit(c.coord)
			evictions = append(evictions, Eviction{Player: p, Target: EvictUnit, Kind: c.kind, Coord: c.coord, Resource: r})
		}

		if deficit(b, p, r) <= 0 {
			continue
		}

		var structures []consumer
		for _, t := range b.TilesOf(p) {
			if t.Kind.Upkeep()[r] == 0 {
				continue
			}
			structures = append(structures, consumer{coord: t.Coord, kind: t.Kind.String(), distance: nearest(t.Coord, supply)})
		}
		sortFarthestFirst(structures)

		for _, c := range structures {
			if deficit(b, p, r) <= 0 {
				break
			}
			// The tile exists: it came from TilesOf.
			_ = b.SetOwner(c.coord, world.PlayerNone)
			b.RemoveUnit(c.coord)
			evictions = append(evictions, Eviction{Player: p, Target: EvictStructure, Kind: c.kind, Coord: c.coord, Resource: r})
		}
	}

	for _, e := range evictions {
		slog.Info("shortage eviction",
			"player", e.Player,
			"target", e.Target,
			"kind", e.Kind,
			"cell", e.Coord,
			"resource", e.Resource,
		)
	}
	return evictions
}

func deficit(b Reader, p world.Player, r world.ResourceType) int {
	l := Compute(b, p)
	return l.Used[r] - l.Produced[r]
}

// suppliers returns the cells of p's tiles that produce r.
func suppliers(b *world.Board, p world.Player, r world.ResourceType) []world.HexCoord {
	var out []world.HexCoord
	for _, t := range b.TilesOf(p) {
		if res, ok := t.Kind.Production(); ok && res == r {
			out = append(out, t.Coord)
		}
	}
	return out
}

func nearest(from world.HexCoord, supply []world.HexCoord) int {
	best := noSupplyDistance
	for _, s := range supply {
		best = min(best, world.Distance(from, s))
	}
	return best
}

// sortFarthestFirst orders by descending distance; inputs arrive in coordinate
// order and the stable sort keeps it for ties.
func sortFarthestFirst(cs []consumer) {
	sort.SliceStable(cs, func(i, j int) bool { return cs[i].distance > cs[j].distance })
}
