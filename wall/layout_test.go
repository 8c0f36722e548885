package wall

import (
	"math"
	"testing"
)

func approx(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestResolveLayout(t *testing.T) {
	tests := []struct {
		width  float64
		margin float64
		tileW  float64
		tileH  float64
	}{
		{width: 600, margin: 40, tileW: 420, tileH: 570},
		{width: 360, margin: 40, tileW: 220, tileH: 310},
		{width: 700, margin: 40, tileW: 700/1.2 - 80, tileH: 620},
		{width: 800, margin: 50, tileW: 420, tileH: 520},
		{width: 850, margin: 50, tileW: 850/1.6 - 80, tileH: 850/1.6*1.2 - 80},
		{width: 1700, margin: 60, tileW: 380, tileH: 405},
	}

	for _, tt := range tests {
		d := ResolveLayout(tt.width)
		if d.Margin != tt.margin || !approx(d.TileWidth, tt.tileW) || !approx(d.TileHeight, tt.tileH) {
			t.Errorf("ResolveLayout(%v) = %+v, want margin %v tile %vx%v",
				tt.width, d, tt.margin, tt.tileW, tt.tileH)
		}
	}
}

func TestDimensionsCell(t *testing.T) {
	d := Dimensions{Margin: 10, TileWidth: 100, TileHeight: 50}
	if got := d.Cell(); got != (Vec2{110, 60}) {
		t.Errorf("Cell() = %v, want {110 60}", got)
	}
}
