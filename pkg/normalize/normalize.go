// Package normalize rescales raster samples into a fixed target range
// using min-max rescaling against the grid's own observed extrema.
package normalize

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/floats"

	"grdthumb/internal/models"
)

// ErrUnknownFormat indicates a normalization selector outside the
// supported set.
var ErrUnknownFormat = errors.New("invalid normalization format")

// Supported normalization selectors.
const (
	// FormatZeroOne maps samples onto [0,1]
	FormatZeroOne = "0-1"

	// FormatSigned maps samples onto [-1,1]
	FormatSigned = "-1-1"

	// FormatByte maps samples onto [0,255]
	FormatByte = "0-255"
)

// Apply rescales the grid into the range named by format and returns a
// new grid; the input is left untouched. The mapping uses the grid's
// own minimum and maximum, not a fixed theoretical range. Output
// samples are reduced to single precision regardless of input precision.
//
// A constant grid (max == min) divides by zero: the IEEE results (NaN)
// propagate into the output rather than being silently corrected.
func Apply(g *models.Grid, format string) (*models.Grid, error) {
	if len(g.Data) == 0 {
		return nil, fmt.Errorf("cannot normalize an empty grid")
	}

	min := floats.Min(g.Data)
	max := floats.Max(g.Data)
	span := max - min

	var scale, offset float64
	switch format {
	case FormatZeroOne:
		scale, offset = 1, 0
	case FormatSigned:
		scale, offset = 2, -1
	case FormatByte:
		scale, offset = 255, 0
	default:
		return nil, fmt.Errorf("%w: %q (choose %q, %q or %q)",
			ErrUnknownFormat, format, FormatZeroOne, FormatSigned, FormatByte)
	}

	out := models.NewGrid(g.Width, g.Height)
	for i, v := range g.Data {
		out.Data[i] = float64(float32(scale*(v-min)/span + offset))
	}
	return out, nil
}
