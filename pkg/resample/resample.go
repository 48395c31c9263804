// Package resample shrinks a raster grid to fit within a bounding box
// while preserving its aspect ratio.
package resample

import (
	"fmt"
	"math"

	"grdthumb/internal/models"
)

// Thumbnail returns a copy of the grid scaled down so that it fits
// within maxWidth x maxHeight, preserving the aspect ratio. The longest
// side lands on its bound and the other side scales proportionally,
// rounded to whole pixels (never below 1). Grids already within the
// bound are returned as an unscaled copy; no upscaling occurs.
//
// Resampling uses an area-weighted box filter over the raw sample
// values, so it is exact for downscaling and does not quantize the
// (possibly unbounded, decibel-valued) data.
func Thumbnail(g *models.Grid, maxWidth, maxHeight int) (*models.Grid, error) {
	if maxWidth <= 0 || maxHeight <= 0 {
		return nil, fmt.Errorf("thumbnail bounds must be positive, got %dx%d", maxWidth, maxHeight)
	}
	if g.Width <= 0 || g.Height <= 0 {
		return nil, fmt.Errorf("cannot resample an empty grid")
	}

	scale := math.Min(float64(maxWidth)/float64(g.Width), float64(maxHeight)/float64(g.Height))
	if scale >= 1 {
		return g.Clone(), nil
	}

	newWidth := int(math.Round(float64(g.Width) * scale))
	newHeight := int(math.Round(float64(g.Height) * scale))
	if newWidth < 1 {
		newWidth = 1
	}
	if newHeight < 1 {
		newHeight = 1
	}

	return boxResize(g, newWidth, newHeight), nil
}

// boxResize averages each destination pixel over its exact source
// footprint, weighting partially covered edge samples by their overlap.
func boxResize(g *models.Grid, newWidth, newHeight int) *models.Grid {
	out := models.NewGrid(newWidth, newHeight)
	xRatio := float64(g.Width) / float64(newWidth)
	yRatio := float64(g.Height) / float64(newHeight)

	for dy := 0; dy < newHeight; dy++ {
		y0 := float64(dy) * yRatio
		y1 := float64(dy+1) * yRatio

		for dx := 0; dx < newWidth; dx++ {
			x0 := float64(dx) * xRatio
			x1 := float64(dx+1) * xRatio

			var sum, area float64
			for sy := int(y0); sy < g.Height && float64(sy) < y1; sy++ {
				wy := overlap(y0, y1, sy)
				for sx := int(x0); sx < g.Width && float64(sx) < x1; sx++ {
					w := wy * overlap(x0, x1, sx)
					sum += g.At(sx, sy) * w
					area += w
				}
			}
			out.Set(dx, dy, sum/area)
		}
	}
	return out
}

// overlap returns how much of the unit-wide source cell starting at
// position idx falls inside the interval [lo, hi).
func overlap(lo, hi float64, idx int) float64 {
	a := math.Max(lo, float64(idx))
	b := math.Min(hi, float64(idx+1))
	if b <= a {
		return 0
	}
	return b - a
}
