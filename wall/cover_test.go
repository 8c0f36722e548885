package wall

import (
	"image"
	"image/color"
	"testing"
)

func TestFitCover(t *testing.T) {
	tests := []struct {
		name           string
		tw, th, cw, ch float64
		want           Fit
	}{
		{"wide into square", 200, 100, 100, 100, Fit{Left: -50, Top: 0, Width: 200, Height: 100, Scale: 1}},
		{"tall upscaled", 100, 300, 200, 200, Fit{Left: 0, Top: -200, Width: 200, Height: 600, Scale: 2}},
		{"exact", 50, 50, 100, 100, Fit{Width: 100, Height: 100, Scale: 2}},
		{"odd overhang rounds down", 101, 100, 100, 100, Fit{Left: -1, Top: 0, Width: 101, Height: 100, Scale: 1}},
		{"empty image", 0, 10, 100, 100, Fit{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FitCover(tt.tw, tt.th, tt.cw, tt.ch); got != tt.want {
				t.Errorf("FitCover = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestCoverImage(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 40, 10))
	red := color.RGBA{255, 0, 0, 255}
	for y := 0; y < 10; y++ {
		for x := 0; x < 40; x++ {
			src.SetRGBA(x, y, red)
		}
	}

	dst := CoverImage(src, 16, 16)
	if dst.Bounds() != image.Rect(0, 0, 16, 16) {
		t.Fatalf("bounds = %v, want 16x16", dst.Bounds())
	}
	for _, p := range []image.Point{{0, 0}, {8, 8}, {15, 15}} {
		got := dst.RGBAAt(p.X, p.Y)
		if got.R < 250 || got.G > 5 || got.B > 5 || got.A < 250 {
			t.Errorf("pixel %v = %v, want covered by %v", p, got, red)
		}
	}
}

func TestCoverImageEmptySource(t *testing.T) {
	dst := CoverImage(image.NewRGBA(image.Rect(0, 0, 0, 0)), 4, 3)
	if dst.Bounds() != image.Rect(0, 0, 4, 3) {
		t.Errorf("bounds = %v, want 4x3", dst.Bounds())
	}
}
