// Package ai is a scripted opponent. It scores every legal action with fixed
// tables, picks the best, and never looks ahead.
package ai

import (
	"github.com/talgya/upkeep/internal/economy"
	"github.com/talgya/upkeep/internal/engine"
	"github.com/talgya/upkeep/internal/world"
)

// Game is the query surface the AI reads. *engine.Game satisfies it.
type Game interface {
	Current() world.Player
	Turn() int
	Board() *world.Board
	Economy(p world.Player) economy.Ledger
	LegalMoveDestinations(cell world.HexCoord) []world.HexCoord
	LegalAttackTargets(cell world.HexCoord) []world.HexCoord
	LegalTrainableKinds(cell world.HexCoord) []world.UnitKind
	LegalTileUpgrades(cell world.HexCoord) []world.TileKind
	LegalUnitUpgrades(cell world.HexCoord) []world.UnitKind
}

var _ Game = (*engine.Game)(nil)

// Score tables.
const (
	scoreEnemyDefender = 30
	scoreEnemyAdjacent = 4
	scoreEnemyTile     = 16
	scoreNeutralTile   = 7
	proximityCeiling   = 8
	travelCap          = 3
	scoreShot          = 35
	lowValuePenalty    = 6
	unitUpgradeBase    = 10
	noFriendDistance   = 999
)

// tileUpgradeScore ranks development targets; settlement tiers first.
var tileUpgradeScore = map[world.TileKind]int{
	world.TileCity:       60,
	world.TilePalace:     58,
	world.TileKeep:       56,
	world.TileTown:       50,
	world.TileEstate:     48,
	world.TileStronghold: 46,
	world.TileVillage:    40,
	world.TileManor:      38,
	world.TileOutpost:    36,
	world.TileHomestead:  30,
	world.TileFarm:       20,
	world.TilePasture:    12,
}

// trainTileScore ranks the tile a unit is trained on.
var trainTileScore = map[world.TileKind]int{
	world.TileHomestead:  10,
	world.TileVillage:    12,
	world.TileManor:      12,
	world.TileOutpost:    12,
	world.TileTown:       14,
	world.TileEstate:     14,
	world.TileStronghold: 14,
	world.TileCity:       16,
	world.TilePalace:     16,
	world.TileKeep:       16,
}

var classBonus = map[world.UnitClass]int{
	world.ClassWorker:   2,
	world.ClassInfantry: 6,
	world.ClassArcher:   5,
	world.ClassCavalry:  8,
}

// lowValue kinds lose points for every copy the player already fields.
var lowValue = map[world.UnitKind]bool{
	world.UnitPeasant: true,
	world.UnitMilitia: true,
	world.UnitSlinger: true,
}

type candidate struct {
	intent   engine.Intent
	category Category
	score    int
}

// ChooseAction returns the best action for p under the default policy, or a
// pass when p is not to move or has nothing legal to do.
func ChooseAction(g Game, p world.Player) engine.Intent {
	return DefaultPolicy().Choose(g, p)
}

// candidates builds the four category lists in their fixed order.
func candidates(g Game, b *world.Board, p world.Player) []candidate {
	var out []candidate
	out = append(out, upgradeCandidates(g, b, p)...)
	out = append(out, trainCandidates(g, b, p)...)
	out = append(out, moveCandidates(g, b, p)...)
	out = append(out, shotCandidates(g, b, p)...)
	return out
}

func upgradeCandidates(g Game, b *world.Board, p world.Player) []candidate {
	var out []candidate
	for _, t := range b.TilesOf(p) {
		for _, to := range g.LegalTileUpgrades(t.Coord) {
			out = append(out, candidate{
				intent:   engine.Intent{Kind: engine.IntentUpgradeTile, From: t.Coord, Tile: to},
				category: CategoryUpgrade,
				score:    tileUpgradeScore[to],
			})
		}
	}
	return out
}

// trainCandidates covers training on owned tiles and promoting owned units.
func trainCandidates(g Game, b *world.Board, p world.Player) []candidate {
	fielded := make(map[world.UnitKind]int)
	for _, u := range b.UnitsOf(p) {
		fielded[u.Kind]++
	}

	var out []candidate
	for _, t := range b.TilesOf(p) {
		for _, k := range g.LegalTrainableKinds(t.Coord) {
			score := trainTileScore[t.Kind] + classBonus[k.Class()]
			if lowValue[k] {
				score -= lowValuePenalty * fielded[k]
			}
			out = append(out, candidate{
				intent:   engine.Intent{Kind: engine.IntentTrain, From: t.Coord, Unit: k},
				category: CategoryTrain,
				score:    score,
			})
		}
	}
	for _, u := range b.UnitsOf(p) {
		for _, k := range g.LegalUnitUpgrades(u.Coord) {
			out = append(out, candidate{
				intent:   engine.Intent{Kind: engine.IntentUpgradeUnit, From: u.Coord, Unit: k},
				category: CategoryTrain,
				score:    unitUpgradeBase + classBonus[k.Class()],
			})
		}
	}
	return out
}

func moveCandidates(g Game, b *world.Board, p world.Player) []candidate {
	var out []candidate
	for _, u := range b.UnitsOf(p) {
		for _, to := range g.LegalMoveDestinations(u.Coord) {
			out = append(out, candidate{
				intent:   engine.Intent{Kind: engine.IntentMove, From: u.Coord, To: to},
				category: CategoryMove,
				score:    scoreMove(b, p, u.Coord, to),
			})
		}
	}
	return out
}

func shotCandidates(g Game, b *world.Board, p world.Player) []candidate {
	var out []candidate
	for _, u := range b.UnitsOf(p) {
		for _, to := range g.LegalAttackTargets(u.Coord) {
			out = append(out, candidate{
				intent:   engine.Intent{Kind: engine.IntentShoot, From: u.Coord, To: to},
				category: CategoryShoot,
				score:    scoreShot,
			})
		}
	}
	return out
}

// scoreMove rewards attacks, taking ground, staying near friends and making
// progress. Ending next to an enemy earns a smaller bonus than landing on one.
func scoreMove(b *world.Board, p world.Player, from, to world.HexCoord) int {
	score := 0

	if defender, ok := b.Unit(to); ok && defender.Owner != p {
		score += scoreEnemyDefender
	}
	for _, n := range to.Neighbors() {
		if u, ok := b.Unit(n); ok && u.Owner != p && u.Owner != world.PlayerNone {
			score += scoreEnemyAdjacent
			break
		}
	}

	if t, ok := b.Tile(to); ok {
		switch {
		case t.Owner == world.PlayerNone:
			score += scoreNeutralTile
		case t.Owner != p:
			score += scoreEnemyTile
		}
	}

	nearest := noFriendDistance
	for _, f := range b.UnitsOf(p) {
		if f.Coord == from {
			continue
		}
		nearest = min(nearest, world.Distance(to, f.Coord))
	}
	if nearest < noFriendDistance {
		score += proximityCeiling - min(proximityCeiling, nearest)
	}

	score += min(travelCap, world.Distance(from, to))
	return score
}

// best returns the highest-scoring candidate; the earliest wins ties.
func best(cs []candidate) (candidate, bool) {
	if len(cs) == 0 {
		return candidate{}, false
	}
	top := cs[0]
	for _, c := range cs[1:] {
		if c.score > top.score {
			top = c
		}
	}
	return top, true
}
