package wall

import "math"

// posMod is a modulo whose result is always in [0, m) for m > 0
func posMod(a, m float64) float64 {
	r := math.Mod(math.Mod(a, m)+m, m)
	// Mod can hand back m itself when a%m is a tiny negative number
	if r >= m {
		return 0
	}
	return r
}

// Wrap moves one coordinate by -velocity and folds it back into the band
// [-(size+margin), period-size-margin), so a tile leaving one edge comes back
// exactly one period away on the other.
func Wrap(pos, velocity, period, size, margin float64) float64 {
	if period <= 0 {
		return pos - velocity
	}
	return posMod(pos-velocity+period+size+margin, period) - size - margin
}

// WrapPosition applies Wrap on both axes
func (g Geometry) WrapPosition(pos, velocity Vec2) Vec2 {
	return Vec2{
		X: Wrap(pos.X, velocity.X, g.WrapPeriod.X, g.Tile.TileWidth, g.Tile.Margin),
		Y: Wrap(pos.Y, velocity.Y, g.WrapPeriod.Y, g.Tile.TileHeight, g.Tile.Margin),
	}
}
