package wall

// Viewport width breakpoints for the layout profiles
const (
	PhoneWidth   = 600.0
	PhabletWidth = 700.0
	TabletWidth  = 850.0
)

// Dimensions is the tile size and spacing for one layout profile
type Dimensions struct {
	Margin     float64
	TileWidth  float64
	TileHeight float64
}

// ResolveLayout picks the tile dimensions for a viewport width
func ResolveLayout(viewportWidth float64) Dimensions {
	w := viewportWidth

	switch {
	case w <= PhoneWidth:
		return Dimensions{
			Margin:     40,
			TileWidth:  w/1.2 - 2*40,
			TileHeight: (w/1.2)*1.3 - 2*40,
		}
	case w <= PhabletWidth:
		return Dimensions{
			Margin:     40,
			TileWidth:  w/1.2 - 2*40,
			TileHeight: (w/1.2)*1.2 - 2*40,
		}
	case w <= TabletWidth:
		// Margin grows here while the tile inset stays at 40
		return Dimensions{
			Margin:     50,
			TileWidth:  w/1.6 - 2*40,
			TileHeight: (w/1.6)*1.2 - 2*40,
		}
	}

	return Dimensions{
		Margin:     60,
		TileWidth:  w/3.4 - 2*60,
		TileHeight: (w/3.4)*1.05 - 2*60,
	}
}

// Cell returns the tile size plus margin on both axes
func (d Dimensions) Cell() Vec2 {
	return Vec2{X: d.TileWidth + d.Margin, Y: d.TileHeight + d.Margin}
}
