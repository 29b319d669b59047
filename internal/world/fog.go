package world

// RevealAround materialises every missing cell within the interaction radius of
// p's units, drawing each new tile's kind from src exactly once. Cells are
// visited unit by unit in coordinate order so a fixed source reproduces the
// same map. Returns the newly created coordinates.
func RevealAround(b *Board, p Player, src TerrainSource) []HexCoord {
	var revealed []HexCoord
	for _, u := range b.UnitsOf(p) {
		for _, coord := range Within(u.Coord, u.Kind.InteractionRadius()) {
			if b.HasTile(coord) || !b.InBounds(coord) {
				continue
			}
			// AddTile only fails for duplicates or out-of-bounds, both excluded above.
			_ = b.AddTile(Tile{Coord: coord, Kind: KindForDraw(src.Draw(coord))})
			revealed = append(revealed, coord)
		}
	}
	return revealed
}
