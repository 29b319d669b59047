// Package economy derives a player's resource ledger from the board and
// answers the sustainability questions asked before claims, upgrades and
// training. Nothing here is cached: every query recomputes from tiles and units.
package economy

import (
	"github.com/talgya/upkeep/internal/world"
)

// Reader is the read side of a board. *world.Board satisfies it.
type Reader interface {
	Tile(coord world.HexCoord) (world.Tile, bool)
	Unit(coord world.HexCoord) (world.Unit, bool)
	Tiles() []world.Tile
	Units() []world.Unit
}

// Ledger is a player's economy snapshot.
type Ledger struct {
	Player    world.Player  `json:"player"`
	Produced  world.Amounts `json:"produced"`
	Used      world.Amounts `json:"used"`
	Available world.Amounts `json:"available"`
}

// Shortages returns the resources with negative availability, in processing order.
func (l Ledger) Shortages() []world.ResourceType {
	var out []world.ResourceType
	for _, r := range world.Resources() {
		if l.Available[r] < 0 {
			out = append(out, r)
		}
	}
	return out
}

// Compute builds p's ledger from the current board.
func Compute(b Reader, p world.Player) Ledger {
	l := Ledger{Player: p}
	tiles := b.Tiles()

	palace := false
	for _, t := range tiles {
		if t.Owner == p && t.Kind.PalaceTier() {
			palace = true
			break
		}
	}

	for _, t := range tiles {
		if t.Owner != p {
			continue
		}
		if res, ok := t.Kind.Production(); ok {
			l.Produced[res] += quantity(b, p, t, palace)
		}
		addInto(&l.Used, t.Kind.Upkeep())
	}

	for _, u := range b.Units() {
		if u.Owner != p || unitIsFree(b, u) {
			continue
		}
		addInto(&l.Used, u.Kind.Upkeep())
	}

	for i := range l.Available {
		l.Available[i] = l.Produced[i] - l.Used[i]
	}
	return l
}

// quantity is the production of one owned tile: base 1, doubled per adjacent
// owned manor-tier tile and again for an owned palace, plus resident boosts.
func quantity(b Reader, p world.Player, t world.Tile, palace bool) int {
	q := 1
	for _, n := range t.Coord.Neighbors() {
		if nt, ok := b.Tile(n); ok && nt.Owner == p && nt.Kind.ManorTier() {
			q *= 2
		}
	}
	if palace {
		q *= 2
	}

	resident, ok := b.Unit(t.Coord)
	if !ok || resident.Owner != p {
		return q
	}
	if resident.Kind.BoostsOn(t.Kind) {
		q++
	}
	for _, n := range t.Coord.Neighbors() {
		nt, ok := b.Tile(n)
		if !ok || nt.Owner != p {
			continue
		}
		if nu, ok := b.Unit(n); ok && nu.Owner == p && nu.Kind.Has(world.FlagConstable) {
			q++
		}
	}
	return q
}

// unitIsFree reports whether u's free-unit condition holds on its current tile.
func unitIsFree(b Reader, u world.Unit) bool {
	t, ok := b.Tile(u.Coord)
	return ok && u.Kind.FreeOn(t.Kind)
}

func addInto(dst *world.Amounts, src world.Amounts) {
	for i, v := range src {
		dst[i] += v
	}
}
