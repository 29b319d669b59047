package rules

import (
	"sort"

	"github.com/talgya/upkeep/internal/world"
)

// Reach returns every cell the unit at from could stop on this turn, mapped to
// the path taken (excluding from, ending at the stop). The result is the raw
// reach set; attack rules are applied by ValidateMove.
//
// Step units see their adjacent cells. Riders search breadth-first up to their
// remaining move points: they pass through open cells and allies, and stop on
// anything not held by an ally, including closed and hostile cells. Surveyors
// search the same way but may only cross and stop on empty cells, crossing
// only open ones.
func Reach(b *world.Board, from world.HexCoord) map[world.HexCoord][]world.HexCoord {
	u, ok := b.Unit(from)
	if !ok || u.MovePoints < 1 {
		return nil
	}

	stops := make(map[world.HexCoord][]world.HexCoord)
	if u.Kind.Mobility() == world.MobilityStep {
		for _, n := range from.Neighbors() {
			if !b.HasTile(n) {
				continue
			}
			if occ, ok := b.Unit(n); ok && occ.Owner == u.Owner {
				continue
			}
			stops[n] = []world.HexCoord{n}
		}
		return stops
	}

	dist := map[world.HexCoord]int{from: 0}
	parent := make(map[world.HexCoord]world.HexCoord)
	queue := []world.HexCoord{from}

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		if dist[cur] >= u.MovePoints {
			continue
		}

		for _, n := range cur.Neighbors() {
			if _, seen := dist[n]; seen || !b.HasTile(n) {
				continue
			}
			dist[n] = dist[cur] + 1
			parent[n] = cur

			occ, occupied := b.Unit(n)
			friendly := occupied && occ.Owner == u.Owner
			closed := IsClosedFor(b, u.Owner, n)

			var stop, pass bool
			switch u.Kind.Mobility() {
			case world.MobilityRide:
				stop = !friendly
				pass = !closed && (!occupied || friendly)
			case world.MobilitySurvey:
				stop = !occupied
				pass = !occupied && !closed
			}

			if stop {
				stops[n] = tracePath(parent, from, n)
			}
			if pass {
				queue = append(queue, n)
			}
		}
	}
	return stops
}

func tracePath(parent map[world.HexCoord]world.HexCoord, from, to world.HexCoord) []world.HexCoord {
	var path []world.HexCoord
	for c := to; c != from; c = parent[c] {
		path = append(path, c)
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}

func sortedCoords(m map[world.HexCoord][]world.HexCoord) []world.HexCoord {
	out := make([]world.HexCoord, 0, len(m))
	for c := range m {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Less(out[j]) })
	return out
}
