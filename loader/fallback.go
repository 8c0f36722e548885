package loader

import (
	"bytes"
	_ "embed"
	"fmt"
	"image"
	"os"

	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
)

//go:embed assets/fallback.svg
var fallbackSVGData []byte

// defaultFallbackSize is the edge length of the rasterised fallback logo
const defaultFallbackSize = 512

// loadFallback rasterises the fallback logo, from path when given or the
// embedded asset otherwise
func loadFallback(path string, size int) (image.Image, error) {
	data := fallbackSVGData
	if path != "" {
		var err error
		data, err = os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read fallback svg: %w", err)
		}
	}
	if size <= 0 {
		size = defaultFallbackSize
	}
	return svgToImage(data, size, size)
}

// svgToImage converts SVG data to an RGBA image
func svgToImage(svgData []byte, width, height int) (image.Image, error) {
	icon, err := oksvg.ReadIconStream(bytes.NewReader(svgData))
	if err != nil {
		return nil, fmt.Errorf("failed to parse svg: %w", err)
	}

	icon.SetTarget(0, 0, float64(width), float64(height))

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	scanner := rasterx.NewScannerGV(width, height, img, img.Bounds())
	raster := rasterx.NewDasher(width, height, scanner)
	icon.Draw(raster, 1.0)

	return img, nil
}
