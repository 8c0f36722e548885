package wall

// Tile is one positioned image on the wall
type Tile struct {
	Index int
	ID    string
	Slug  string
	Name  string

	// Pos is the top-left corner relative to the tile container
	Pos Vec2

	// Interactive tiles take part in hit testing
	Interactive bool
}

// Contains reports whether a container-space point lies inside the tile
func (t *Tile) Contains(p Vec2, dims Dimensions) bool {
	return p.X >= t.Pos.X && p.X < t.Pos.X+dims.TileWidth &&
		p.Y >= t.Pos.Y && p.Y < t.Pos.Y+dims.TileHeight
}

// HitTest returns the topmost interactive tile under a container-space point.
// Later tiles are drawn over earlier ones, so the search runs backwards.
func HitTest(tiles []Tile, p Vec2, dims Dimensions) (*Tile, bool) {
	for i := len(tiles) - 1; i >= 0; i-- {
		t := &tiles[i]
		if t.Interactive && t.Contains(p, dims) {
			return t, true
		}
	}
	return nil, false
}
