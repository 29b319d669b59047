package world

import (
	"fmt"
	"sort"
)

// Tile is a single cell of the board.
type Tile struct {
	Coord HexCoord `json:"coord"`
	Kind  TileKind `json:"kind"`
	Owner Player   `json:"owner"`
}

// Unit is a piece standing on exactly one tile.
type Unit struct {
	Coord        HexCoord `json:"coord"`
	Kind         UnitKind `json:"kind"`
	Owner        Player   `json:"owner"`
	MovePoints   int      `json:"move_points"`
	ActionPoints int      `json:"action_points"`
}

// Board holds every materialised tile and the unit standing on each cell.
// A bounded board has Radius >= 0; a fog board grows lazily and has Radius -1.
type Board struct {
	tiles  map[HexCoord]*Tile
	units  map[HexCoord]*Unit
	Radius int `json:"radius"`
}

// NewBoard creates an empty board. Pass radius -1 for an unbounded fog board.
func NewBoard(radius int) *Board {
	return &Board{
		tiles:  make(map[HexCoord]*Tile),
		units:  make(map[HexCoord]*Unit),
		Radius: radius,
	}
}

// Bounded reports whether the board has a fixed radius.
func (b *Board) Bounded() bool {
	return b.Radius >= 0
}

// InBounds returns true if the coordinate is within the map radius.
// Unbounded boards accept every coordinate.
func (b *Board) InBounds(coord HexCoord) bool {
	if !b.Bounded() {
		return true
	}
	return Distance(HexCoord{}, coord) <= b.Radius
}

// Tile returns the tile at coord, if materialised.
func (b *Board) Tile(coord HexCoord) (Tile, bool) {
	t, ok := b.tiles[coord]
	if !ok {
		return Tile{}, false
	}
	return *t, true
}

// HasTile reports whether coord has been materialised.
func (b *Board) HasTile(coord HexCoord) bool {
	_, ok := b.tiles[coord]
	return ok
}

// Unit returns the unit at coord, if any.
func (b *Board) Unit(coord HexCoord) (Unit, bool) {
	u, ok := b.units[coord]
	if !ok {
		return Unit{}, false
	}
	return *u, true
}

// Occupied reports whether a unit stands at coord.
func (b *Board) Occupied(coord HexCoord) bool {
	_, ok := b.units[coord]
	return ok
}

// Tiles returns all tiles ordered by coordinate.
func (b *Board) Tiles() []Tile {
	out := make([]Tile, 0, len(b.tiles))
	for _, t := range b.tiles {
		out = append(out, *t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Coord.Less(out[j].Coord) })
	return out
}

// Units returns all units ordered by coordinate.
func (b *Board) Units() []Unit {
	out := make([]Unit, 0, len(b.units))
	for _, u := range b.units {
		out = append(out, *u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Coord.Less(out[j].Coord) })
	return out
}

// UnitsOf returns the units owned by p, ordered by coordinate.
func (b *Board) UnitsOf(p Player) []Unit {
	var out []Unit
	for _, u := range b.Units() {
		if u.Owner == p {
			out = append(out, u)
		}
	}
	return out
}

// TilesOf returns the tiles owned by p, ordered by coordinate.
func (b *Board) TilesOf(p Player) []Tile {
	var out []Tile
	for _, t := range b.Tiles() {
		if t.Owner == p {
			out = append(out, t)
		}
	}
	return out
}

// TileCount returns the number of materialised tiles.
func (b *Board) TileCount() int {
	return len(b.tiles)
}

// AddTile materialises a tile. Existing tiles are never replaced.
func (b *Board) AddTile(t Tile) error {
	if !t.Kind.Valid() {
		return fmt.Errorf("add tile %s: invalid kind %d", t.Coord, t.Kind)
	}
	if !b.InBounds(t.Coord) {
		return fmt.Errorf("add tile %s: out of bounds", t.Coord)
	}
	if _, ok := b.tiles[t.Coord]; ok {
		return fmt.Errorf("add tile %s: already exists", t.Coord)
	}
	tile := t
	b.tiles[t.Coord] = &tile
	return nil
}

// SetOwner changes a tile's owner. PlayerNone clears it.
func (b *Board) SetOwner(coord HexCoord, p Player) error {
	t, ok := b.tiles[coord]
	if !ok {
		return fmt.Errorf("set owner %s: no tile", coord)
	}
	t.Owner = p
	return nil
}

// SetKind changes a tile's kind.
func (b *Board) SetKind(coord HexCoord, k TileKind) error {
	t, ok := b.tiles[coord]
	if !ok {
		return fmt.Errorf("set kind %s: no tile", coord)
	}
	if !k.Valid() {
		return fmt.Errorf("set kind %s: invalid kind %d", coord, k)
	}
	t.Kind = k
	return nil
}

// PlaceUnit puts a new unit on an empty, materialised cell.
// Points are clamped to the kind's maxima.
func (b *Board) PlaceUnit(u Unit) error {
	if _, ok := b.tiles[u.Coord]; !ok {
		return fmt.Errorf("place unit %s: no tile", u.Coord)
	}
	if _, ok := b.units[u.Coord]; ok {
		return fmt.Errorf("place unit %s: occupied", u.Coord)
	}
	if !u.Kind.Valid() {
		return fmt.Errorf("place unit %s: invalid kind %d", u.Coord, u.Kind)
	}
	unit := u
	clampPoints(&unit)
	b.units[u.Coord] = &unit
	return nil
}

// RemoveUnit deletes the unit at coord and returns it.
func (b *Board) RemoveUnit(coord HexCoord) (Unit, bool) {
	u, ok := b.units[coord]
	if !ok {
		return Unit{}, false
	}
	delete(b.units, coord)
	return *u, true
}

// RelocateUnit moves the unit at from onto the empty cell to.
func (b *Board) RelocateUnit(from, to HexCoord) error {
	u, ok := b.units[from]
	if !ok {
		return fmt.Errorf("relocate %s: no unit", from)
	}
	if _, ok := b.tiles[to]; !ok {
		return fmt.Errorf("relocate %s->%s: no tile", from, to)
	}
	if _, ok := b.units[to]; ok {
		return fmt.Errorf("relocate %s->%s: occupied", from, to)
	}
	delete(b.units, from)
	u.Coord = to
	b.units[to] = u
	return nil
}

// SetPoints sets a unit's remaining move and action points, clamped to its kind.
func (b *Board) SetPoints(coord HexCoord, move, action int) error {
	u, ok := b.units[coord]
	if !ok {
		return fmt.Errorf("set points %s: no unit", coord)
	}
	u.MovePoints = move
	u.ActionPoints = action
	clampPoints(u)
	return nil
}

// ReplaceUnitKind changes the kind of the unit at coord, clamping its points.
func (b *Board) ReplaceUnitKind(coord HexCoord, k UnitKind) error {
	u, ok := b.units[coord]
	if !ok {
		return fmt.Errorf("replace unit %s: no unit", coord)
	}
	if !k.Valid() {
		return fmt.Errorf("replace unit %s: invalid kind %d", coord, k)
	}
	u.Kind = k
	clampPoints(u)
	return nil
}

// Clone returns an independent copy for what-if evaluation.
func (b *Board) Clone() *Board {
	c := NewBoard(b.Radius)
	for coord, t := range b.tiles {
		tile := *t
		c.tiles[coord] = &tile
	}
	for coord, u := range b.units {
		unit := *u
		c.units[coord] = &unit
	}
	return c
}

// String returns a summary of the board.
func (b *Board) String() string {
	return fmt.Sprintf("Board(radius=%d, tiles=%d, units=%d)", b.Radius, len(b.tiles), len(b.units))
}

func clampPoints(u *Unit) {
	u.MovePoints = min(max(u.MovePoints, 0), u.Kind.MaxMove())
	u.ActionPoints = min(max(u.ActionPoints, 0), u.Kind.MaxAction())
}
