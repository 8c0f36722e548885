package wall

import "math"

// Vec2 is a 2D vector in screen pixels
type Vec2 struct {
	X, Y float64
}

// Add returns v + o
func (v Vec2) Add(o Vec2) Vec2 { return Vec2{v.X + o.X, v.Y + o.Y} }

// Sub returns v - o
func (v Vec2) Sub(o Vec2) Vec2 { return Vec2{v.X - o.X, v.Y - o.Y} }

// Scale returns v * k
func (v Vec2) Scale(k float64) Vec2 { return Vec2{v.X * k, v.Y * k} }

// IsZero reports whether both components are exactly zero
func (v Vec2) IsZero() bool { return v.X == 0 && v.Y == 0 }

// Geometry describes how N tiles are laid out on a wrapping grid
type Geometry struct {
	Rows int
	Cols int

	// Tile is the layout profile the grid was built with
	Tile Dimensions

	// WrapPeriod is the distance after which the grid repeats on each axis
	WrapPeriod Vec2
}

// GridSize returns the most square rows x cols grid holding n tiles.
// Rows come first from the square root, so a non-square n gets the extra row
// (10 tiles -> 4 rows of 3).
func GridSize(n int) (rows, cols int) {
	if n <= 0 {
		return 0, 0
	}
	rows = int(math.Ceil(math.Sqrt(float64(n))))
	cols = int(math.Ceil(float64(n) / float64(rows)))
	return rows, cols
}

// NewGeometry builds the grid geometry for n tiles of the given dimensions
func NewGeometry(n int, dims Dimensions) Geometry {
	rows, cols := GridSize(n)
	cell := dims.Cell()

	return Geometry{
		Rows: rows,
		Cols: cols,
		Tile: dims,
		WrapPeriod: Vec2{
			X: float64(cols) * cell.X,
			Y: float64(rows) * cell.Y,
		},
	}
}

// InitialPosition returns where tile i sits before any panning
func (g Geometry) InitialPosition(i int) Vec2 {
	if g.Cols == 0 {
		return Vec2{}
	}
	cell := g.Tile.Cell()
	return Vec2{
		X: cell.X * float64(i%g.Cols),
		Y: cell.Y * float64(i/g.Cols),
	}
}

// AvailableScrollSpace returns how far the grid overhangs the viewport on each axis.
// Negative values mean the grid is smaller than the viewport.
func (g Geometry) AvailableScrollSpace(viewport Vec2) Vec2 {
	return g.WrapPeriod.Sub(viewport)
}

// ContainerOffset returns the container origin that centres the grid in the viewport
func (g Geometry) ContainerOffset(viewport Vec2) Vec2 {
	return g.AvailableScrollSpace(viewport).Scale(-0.5)
}
