package rules

import "github.com/talgya/upkeep/internal/world"

// IsClosedFor reports whether coord is closed terrain for player p: its kind
// is in the closed set, an enemy pike stands next to it, or an enemy spear
// stands next to it together with at least one further enemy melee unit
// (shieldwall). Evaluated fresh on every call.
func IsClosedFor(b *world.Board, p world.Player, coord world.HexCoord) bool {
	if t, ok := b.Tile(coord); ok && t.Kind.Closed() {
		return true
	}

	spear := false
	melee := 0
	for _, n := range coord.Neighbors() {
		u, ok := b.Unit(n)
		if !ok || u.Owner == p {
			continue
		}
		if u.Kind.Has(world.FlagPike) {
			return true
		}
		if u.Kind.Has(world.FlagSpear) {
			spear = true
		}
		if u.Kind.Melee() {
			melee++
		}
	}
	return spear && melee >= 2
}
