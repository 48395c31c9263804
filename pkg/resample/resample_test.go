package resample

import (
	"math"
	"testing"

	"grdthumb/internal/models"
)

// TestThumbnailFitsBound verifies that the longest side lands on its
// bound and the aspect ratio survives within a pixel of rounding
func TestThumbnailFitsBound(t *testing.T) {
	g := models.NewGrid(512, 360)

	out, err := Thumbnail(g, 256, 180)
	if err != nil {
		t.Fatalf("Thumbnail failed: %v", err)
	}

	if out.Width != 256 || out.Height != 180 {
		t.Errorf("Expected 256x180 thumbnail, got %dx%d", out.Width, out.Height)
	}
}

// TestThumbnailSquareSource verifies the tighter bound wins for a
// square source: with a (256,180) box the result is 180x180
func TestThumbnailSquareSource(t *testing.T) {
	g := models.NewGrid(400, 400)

	out, err := Thumbnail(g, 256, 180)
	if err != nil {
		t.Fatalf("Thumbnail failed: %v", err)
	}

	if out.Width > 180 || out.Height > 180 {
		t.Errorf("Expected both sides within 180, got %dx%d", out.Width, out.Height)
	}

	srcRatio := 1.0
	outRatio := float64(out.Width) / float64(out.Height)
	if math.Abs(outRatio-srcRatio) > 1.0/float64(out.Height) {
		t.Errorf("Aspect ratio drifted: source %f, output %f", srcRatio, outRatio)
	}
}

// TestThumbnailAspectRatio verifies aspect preservation for a
// non-trivial scale factor
func TestThumbnailAspectRatio(t *testing.T) {
	g := models.NewGrid(1000, 300)

	out, err := Thumbnail(g, 256, 180)
	if err != nil {
		t.Fatalf("Thumbnail failed: %v", err)
	}

	if out.Width > 256 || out.Height > 180 {
		t.Errorf("Thumbnail exceeds bound: %dx%d", out.Width, out.Height)
	}

	srcRatio := float64(g.Width) / float64(g.Height)
	outRatio := float64(out.Width) / float64(out.Height)
	// One pixel of rounding on the short side moves the ratio by at
	// most srcRatio/height
	if math.Abs(outRatio-srcRatio) > srcRatio/float64(out.Height) {
		t.Errorf("Aspect ratio drifted: source %f, output %f", srcRatio, outRatio)
	}
}

// TestThumbnailNoUpscale verifies that a source already inside the
// bound comes back at its original size
func TestThumbnailNoUpscale(t *testing.T) {
	g := models.NewGrid(100, 80)
	for i := range g.Data {
		g.Data[i] = float64(i)
	}

	out, err := Thumbnail(g, 256, 256)
	if err != nil {
		t.Fatalf("Thumbnail failed: %v", err)
	}

	if out.Width != 100 || out.Height != 80 {
		t.Errorf("Expected unchanged 100x80, got %dx%d", out.Width, out.Height)
	}

	for i := range g.Data {
		if out.Data[i] != g.Data[i] {
			t.Fatalf("Sample %d changed from %f to %f", i, g.Data[i], out.Data[i])
		}
	}

	// The copy must be independent of the source
	out.Data[0] = -1
	if g.Data[0] == -1 {
		t.Errorf("Thumbnail returned the source grid instead of a copy")
	}
}

// TestThumbnailBoxAverage verifies exact area averaging on an integer
// 2:1 shrink
func TestThumbnailBoxAverage(t *testing.T) {
	g := models.NewGrid(4, 4)
	copy(g.Data, []float64{
		1, 3, 5, 7,
		5, 7, 9, 11,
		2, 4, 10, 12,
		6, 8, 14, 16,
	})

	out, err := Thumbnail(g, 2, 2)
	if err != nil {
		t.Fatalf("Thumbnail failed: %v", err)
	}

	expected := []float64{4, 8, 5, 13}
	for i, want := range expected {
		if math.Abs(out.Data[i]-want) > 1e-12 {
			t.Errorf("Expected average %f at %d, got %f", want, i, out.Data[i])
		}
	}
}

// TestThumbnailUnboundedValues verifies that decibel-valued (negative,
// unbounded) samples pass through the resampler without rescaling
func TestThumbnailUnboundedValues(t *testing.T) {
	g := models.NewGrid(4, 2)
	copy(g.Data, []float64{
		-100, -100, -40, -40,
		-100, -100, -40, -40,
	})

	out, err := Thumbnail(g, 2, 1)
	if err != nil {
		t.Fatalf("Thumbnail failed: %v", err)
	}

	if out.Data[0] != -100 || out.Data[1] != -40 {
		t.Errorf("Expected averages [-100 -40], got %v", out.Data)
	}
}

// TestThumbnailInvalidBounds verifies the error on non-positive bounds
func TestThumbnailInvalidBounds(t *testing.T) {
	g := models.NewGrid(10, 10)

	if _, err := Thumbnail(g, 0, 100); err == nil {
		t.Errorf("Expected error for zero width bound")
	}
	if _, err := Thumbnail(g, 100, -1); err == nil {
		t.Errorf("Expected error for negative height bound")
	}
}
