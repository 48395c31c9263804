// Package pngout writes raster grids as 8-bit grayscale PNG files.
package pngout

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"math"
	"os"

	"grdthumb/internal/models"
)

// ErrEncode indicates the output image could not be written.
var ErrEncode = errors.New("error saving image")

// Save clips the grid to [0,255], quantizes to unsigned 8-bit and
// writes a single-channel grayscale PNG to path. NaN samples clip to 0.
// The grid is expected to be 2-D and numeric; no further normalization
// happens here.
func Save(g *models.Grid, path string) error {
	if g.Width <= 0 || g.Height <= 0 {
		return fmt.Errorf("%w: empty grid", ErrEncode)
	}

	img := image.NewGray(image.Rect(0, 0, g.Width, g.Height))
	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			img.SetGray(x, y, quantize(g.At(x, y)))
		}
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrEncode, err)
	}
	defer file.Close()

	if err := png.Encode(file, img); err != nil {
		return fmt.Errorf("%w: %v", ErrEncode, err)
	}
	return nil
}

// quantize maps a sample to the 8-bit range, clipping out-of-range and
// NaN values.
func quantize(v float64) color.Gray {
	if math.IsNaN(v) || v < 0 {
		return color.Gray{Y: 0}
	}
	if v > 255 {
		return color.Gray{Y: 255}
	}
	return color.Gray{Y: uint8(v)}
}
