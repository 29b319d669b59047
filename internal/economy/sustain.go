package economy

import (
	"github.com/talgya/upkeep/internal/world"
)

// fits reports whether adding delta to p's upkeep keeps every resource the
// delta raises at or above zero. Resources the change does not raise are
// ignored, even if already short.
func fits(available, delta world.Amounts) bool {
	for _, r := range world.Resources() {
		if delta[r] > 0 && available[r]-delta[r] < 0 {
			return false
		}
	}
	return true
}

// CanClaim reports whether p can take ownership of the tile at coord: the
// tile's own upkeep must fit within what p has available now. Tiles without
// upkeep and tiles p already owns always pass.
func CanClaim(b Reader, p world.Player, coord world.HexCoord) bool {
	t, ok := b.Tile(coord)
	if !ok {
		return false
	}
	if t.Owner == p || !t.Kind.HasUpkeep() {
		return true
	}
	return fits(Compute(b, p).Available, t.Kind.Upkeep())
}

// CanUpgradeTile reports whether p can turn the tile at coord into kind to.
// Only the upkeep delta counts: the old kind's upkeep is refunded and the new
// kind's charged. Changes in production are not considered.
func CanUpgradeTile(b Reader, p world.Player, coord world.HexCoord, to world.TileKind) bool {
	t, ok := b.Tile(coord)
	if !ok {
		return false
	}
	return fits(Compute(b, p).Available, diff(to.Upkeep(), t.Kind.Upkeep()))
}

// CanTrainOrUpgradeUnit reports whether p can field a unit of kind at coord,
// either as a new unit or by upgrading the unit already there. A kind that is
// free on the tile always passes.
func CanTrainOrUpgradeUnit(b Reader, p world.Player, coord world.HexCoord, kind world.UnitKind) bool {
	t, ok := b.Tile(coord)
	if !ok {
		return false
	}
	if kind.FreeOn(t.Kind) {
		return true
	}
	var refund world.Amounts
	if u, occupied := b.Unit(coord); occupied && u.Owner == p && !u.Kind.FreeOn(t.Kind) {
		refund = u.Kind.Upkeep()
	}
	return fits(Compute(b, p).Available, diff(kind.Upkeep(), refund))
}

func diff(a, b world.Amounts) world.Amounts {
	var out world.Amounts
	for i := range out {
		out[i] = a[i] - b[i]
	}
	return out
}
