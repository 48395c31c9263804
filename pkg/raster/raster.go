// Package raster reads single-band GRD rasters from TIFF containers.
// Pixel data goes through the standard image decoder; the GDAL-style
// metadata tags are pulled straight from the TIFF directory, since the
// decoder does not expose them.
package raster

import (
	"errors"
	"fmt"
	"image"
	"os"
	"strconv"
	"strings"

	_ "golang.org/x/image/tiff"

	"grdthumb/internal/models"
)

// ErrSourceRead indicates the raster file could not be opened or decoded.
var ErrSourceRead = errors.New("error reading GRD data")

// CalibrationFactorTag is the metadata key carrying the scalar that
// converts digital numbers to sigma0.
const CalibrationFactorTag = "CALIBRATION_FACTOR"

// Band is one raster band plus the key-value tags of its container.
type Band struct {
	// Grid holds the band samples as float64
	Grid *models.Grid

	// Tags is the container's key-value metadata
	Tags map[string]string
}

// Read opens a GRD raster file and returns its first band together
// with the container tags. Sample values are 16-bit luminance widened
// to float64; subsequent normalization is min-max based, so the
// absolute scale does not matter downstream.
func Read(path string) (*Band, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSourceRead, err)
	}
	defer file.Close()

	img, _, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSourceRead, err)
	}

	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: empty raster in %s", ErrSourceRead, path)
	}

	grid := models.NewGrid(width, height)
	switch src := img.(type) {
	case *image.Gray:
		for y := 0; y < height; y++ {
			row := src.Pix[y*src.Stride : y*src.Stride+width]
			for x, v := range row {
				grid.Set(x, y, float64(v)*257)
			}
		}
	case *image.Gray16:
		for y := 0; y < height; y++ {
			for x := 0; x < width; x++ {
				grid.Set(x, y, float64(src.Gray16At(bounds.Min.X+x, bounds.Min.Y+y).Y))
			}
		}
	default:
		// Multi-channel containers: take the red channel as the band.
		for y := 0; y < height; y++ {
			for x := 0; x < width; x++ {
				r, _, _, _ := img.At(bounds.Min.X+x, bounds.Min.Y+y).RGBA()
				grid.Set(x, y, float64(r))
			}
		}
	}

	tags, err := readTags(path)
	if err != nil {
		return nil, err
	}

	return &Band{Grid: grid, Tags: tags}, nil
}

// CalibrationFactor extracts the calibration scalar from container
// tags, defaulting to 1.0 when the tag is absent.
func CalibrationFactor(tags map[string]string) (float64, error) {
	raw, ok := tags[CalibrationFactorTag]
	if !ok {
		return 1.0, nil
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 0, fmt.Errorf("%w: bad %s value %q", ErrSourceRead, CalibrationFactorTag, raw)
	}
	return f, nil
}
