// Package calibrate converts normalized reflectance values into decibel
// radar backscatter (sigma0_db) using a scalar calibration factor.
package calibrate

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"

	"grdthumb/internal/models"
)

// ErrRange indicates samples outside [0,1] at calibration time.
var ErrRange = errors.New("data must be normalized to a valid range (0-1) before calibration")

// logEpsilon keeps log10 away from zero for fully dark samples.
// A zero sample calibrates to exactly -100 dB.
const logEpsilon = 1e-10

// Apply converts the grid to decibel backscatter and returns a new grid:
//
//	sigma0    = factor * x^2
//	sigma0_db = 10 * log10(sigma0 + 1e-10)
//
// Every sample must already lie in [0,1]; any sample outside that range
// fails with ErrRange before any adjustment is attempted. The historical
// rescale branches for 0-255 and -1..1 shaped input are retained below
// the range check in their original order, so they only ever run if the
// check is relaxed.
//
// The output is no longer bounded to [0,1]: samples are decibel values,
// typically negative.
func Apply(g *models.Grid, factor float64) (*models.Grid, error) {
	if len(g.Data) == 0 {
		return nil, fmt.Errorf("cannot calibrate an empty grid")
	}

	if floats.HasNaN(g.Data) {
		return nil, fmt.Errorf("%w: data contains NaN samples", ErrRange)
	}
	min := floats.Min(g.Data)
	max := floats.Max(g.Data)
	if min < 0 || max > 1 {
		return nil, fmt.Errorf("%w: observed range [%g, %g]", ErrRange, min, max)
	}

	data := g.Data
	if min >= 0 && max > 1 {
		// byte-range input: scale back to [0,1]
		data = make([]float64, len(g.Data))
		for i, v := range g.Data {
			data[i] = v / 255.0
		}
	} else if min < 0 {
		// signed-range input: shift to [0,1]
		data = make([]float64, len(g.Data))
		for i, v := range g.Data {
			data[i] = (v + 1) / 2.0
		}
	}

	out := models.NewGrid(g.Width, g.Height)
	for i, v := range data {
		sigma0 := factor * math.Abs(v) * math.Abs(v)
		out.Data[i] = 10 * math.Log10(sigma0+logEpsilon)
	}
	return out, nil
}
