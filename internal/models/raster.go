package models

import (
	"time"
)

// Grid is a single-band raster held as a 1D array in row-major order.
type Grid struct {
	// Data holds the samples, row by row
	Data []float64

	// Width is the number of samples per row
	Width int

	// Height is the number of rows
	Height int
}

// NewGrid allocates a zeroed grid with the given dimensions.
func NewGrid(width, height int) *Grid {
	return &Grid{
		Data:   make([]float64, width*height),
		Width:  width,
		Height: height,
	}
}

// At returns the sample at column x, row y.
func (g *Grid) At(x, y int) float64 {
	return g.Data[y*g.Width+x]
}

// Set stores a sample at column x, row y.
func (g *Grid) Set(x, y int, v float64) {
	g.Data[y*g.Width+x] = v
}

// Clone returns a deep copy of the grid.
func (g *Grid) Clone() *Grid {
	out := NewGrid(g.Width, g.Height)
	copy(out.Data, g.Data)
	return out
}

// RasterImage is a GRD product loaded for one pipeline run.
// The grid is reassigned, not mutated in place, as each stage completes.
type RasterImage struct {
	// Grid is the current sample data; its meaning changes as the
	// pipeline advances (raw digital numbers, normalized reflectance,
	// then decibel backscatter)
	Grid *Grid

	// CalibrationFactor converts normalized digital numbers to sigma0.
	// Defaults to 1.0 when the source carries no CALIBRATION_FACTOR tag.
	CalibrationFactor float64

	// ProductID is the numeric product token from the file name
	ProductID string

	// Timestamp is the acquisition instant from the file name
	Timestamp time.Time

	// SourcePath is the file the raster was loaded from
	SourcePath string
}
