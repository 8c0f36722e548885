package wall

import (
	"image"
	"math"

	"golang.org/x/image/draw"
)

// Fit is where a scaled image lands inside its container
type Fit struct {
	Left, Top     int
	Width, Height float64
	Scale         float64
}

// FitCover scales target to cover container, like CSS object-fit: cover,
// and centres it. Offsets are truncated to whole pixels.
func FitCover(targetW, targetH, containerW, containerH float64) Fit {
	if targetW <= 0 || targetH <= 0 {
		return Fit{}
	}
	r := math.Max(containerW/targetW, containerH/targetH)

	return Fit{
		Left:   int(math.Trunc(containerW-targetW*r)) >> 1,
		Top:    int(math.Trunc(containerH-targetH*r)) >> 1,
		Width:  targetW * r,
		Height: targetH * r,
		Scale:  r,
	}
}

// CoverImage resamples src to exactly w x h pixels, cropping whatever the
// cover fit pushes outside the tile.
func CoverImage(src image.Image, w, h int) *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, max(w, 1), max(h, 1)))
	b := src.Bounds()
	if b.Empty() {
		return dst
	}

	fit := FitCover(float64(b.Dx()), float64(b.Dy()), float64(w), float64(h))
	rect := image.Rect(
		fit.Left,
		fit.Top,
		fit.Left+int(math.Ceil(fit.Width)),
		fit.Top+int(math.Ceil(fit.Height)),
	)
	draw.CatmullRom.Scale(dst, rect, src, b, draw.Src, nil)
	return dst
}
