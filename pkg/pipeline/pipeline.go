// Package pipeline sequences the GRD thumbnail stages: read, parse
// filename metadata, normalize, calibrate, downsample, encode.
package pipeline

import (
	"fmt"
	"log"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"grdthumb/internal/models"
	"grdthumb/pkg/calibrate"
	"grdthumb/pkg/meta"
	"grdthumb/pkg/normalize"
	"grdthumb/pkg/pngout"
	"grdthumb/pkg/raster"
	"grdthumb/pkg/resample"
)

// Params holds the configuration for one pipeline run.
type Params struct {
	// InputPath is the GRD raster to load. Its name must follow the
	// ICEYE GRD convention so the product metadata can be recovered.
	InputPath string

	// Format selects the normalization range: "0-1", "-1-1" or "0-255".
	Format string

	// MaxWidth and MaxHeight bound the thumbnail dimensions.
	MaxWidth  int
	MaxHeight int

	// OutputPath is where the grayscale PNG is written.
	OutputPath string

	// Verbose enables per-stage log output.
	Verbose bool
}

// Pipeline runs the linear GRD-to-thumbnail transform. Each run owns
// one RasterImage; any stage failure aborts the run and discards it.
type Pipeline struct {
	params *Params
}

// New creates a pipeline for the given parameters.
func New(params *Params) *Pipeline {
	return &Pipeline{params: params}
}

// Run executes the stages in order and returns the finished image so
// the caller can report its product ID and timestamp. Stages never
// recover locally: the first error propagates with context attached.
func (p *Pipeline) Run() (*models.RasterImage, error) {
	p.logf("Reading GRD data from %s", p.params.InputPath)
	band, err := raster.Read(p.params.InputPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read raster: %w", err)
	}

	factor, err := raster.CalibrationFactor(band.Tags)
	if err != nil {
		return nil, fmt.Errorf("failed to read calibration factor: %w", err)
	}
	p.logf("Calibration factor: %g", factor)

	info, err := meta.Parse(p.params.InputPath)
	if err != nil {
		return nil, fmt.Errorf("failed to extract file name metadata: %w", err)
	}
	p.logf("Product %s acquired %s", info.ProductID, info.ISOTimestamp())

	img := &models.RasterImage{
		Grid:              band.Grid,
		CalibrationFactor: factor,
		ProductID:         info.ProductID,
		Timestamp:         info.Timestamp,
		SourcePath:        p.params.InputPath,
	}

	p.logf("Normalizing data in format: %s", p.params.Format)
	img.Grid, err = normalize.Apply(img.Grid, p.params.Format)
	if err != nil {
		return nil, fmt.Errorf("normalization failed: %w", err)
	}

	p.logf("Starting data calibration")
	img.Grid, err = calibrate.Apply(img.Grid, img.CalibrationFactor)
	if err != nil {
		return nil, fmt.Errorf("calibration failed: %w", err)
	}
	p.logf("Backscatter range %.2f to %.2f dB, mean %.2f dB",
		floats.Min(img.Grid.Data), floats.Max(img.Grid.Data), stat.Mean(img.Grid.Data, nil))

	p.logf("Reducing image to fit %dx%d", p.params.MaxWidth, p.params.MaxHeight)
	img.Grid, err = resample.Thumbnail(img.Grid, p.params.MaxWidth, p.params.MaxHeight)
	if err != nil {
		return nil, fmt.Errorf("downsampling failed: %w", err)
	}

	p.logf("Saving image to %s", p.params.OutputPath)
	if err := pngout.Save(img.Grid, p.params.OutputPath); err != nil {
		return nil, fmt.Errorf("failed to save PNG: %w", err)
	}

	return img, nil
}

func (p *Pipeline) logf(format string, args ...interface{}) {
	if p.params.Verbose {
		log.Printf(format, args...)
	}
}
