package calibrate

import (
	"errors"
	"math"
	"testing"

	"grdthumb/internal/models"
)

func gridOf(width, height int, values []float64) *models.Grid {
	g := models.NewGrid(width, height)
	copy(g.Data, values)
	return g
}

// TestApplyInRange verifies calibration of properly normalized data:
// the output is finite everywhere thanks to the log epsilon
func TestApplyInRange(t *testing.T) {
	g := gridOf(2, 2, []float64{0, 0.25, 0.5, 1})

	out, err := Apply(g, 1.0)
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}

	for i, v := range out.Data {
		if math.IsNaN(v) {
			t.Errorf("Sample %d is NaN", i)
		}
		if math.IsInf(v, 0) {
			t.Errorf("Sample %d is infinite", i)
		}
	}

	// A unit sample with unit factor is 0 dB (up to the epsilon)
	if math.Abs(out.Data[3]) > 1e-9 {
		t.Errorf("Expected 0 dB for sample 1.0, got %f", out.Data[3])
	}
}

// TestApplyZeroSample verifies the epsilon floor: a fully dark sample
// calibrates to exactly -100 dB instead of -Inf
func TestApplyZeroSample(t *testing.T) {
	g := gridOf(2, 1, []float64{0, 0})

	out, err := Apply(g, 1.0)
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}

	for i, v := range out.Data {
		if math.Abs(v-(-100)) > 1e-6 {
			t.Errorf("Expected -100 dB for zero sample %d, got %f", i, v)
		}
	}
}

// TestApplyCalibrationFactor verifies that the factor shifts the
// decibel output by 10*log10(factor)
func TestApplyCalibrationFactor(t *testing.T) {
	g := gridOf(1, 1, []float64{0.5})

	unit, err := Apply(g, 1.0)
	if err != nil {
		t.Fatalf("Apply with factor 1 failed: %v", err)
	}
	doubled, err := Apply(g, 2.0)
	if err != nil {
		t.Fatalf("Apply with factor 2 failed: %v", err)
	}

	shift := doubled.Data[0] - unit.Data[0]
	expected := 10 * math.Log10(2)
	if math.Abs(shift-expected) > 1e-6 {
		t.Errorf("Expected %f dB shift for doubled factor, got %f", expected, shift)
	}
}

// TestApplyRejectsByteRange verifies the range gate: byte-range data is
// rejected outright, it is not rescaled back to [0,1]
func TestApplyRejectsByteRange(t *testing.T) {
	g := gridOf(2, 2, []float64{0, 64, 128, 255})

	if _, err := Apply(g, 1.0); !errors.Is(err, ErrRange) {
		t.Errorf("Expected ErrRange for byte-range data, got %v", err)
	}
}

// TestApplyRejectsSignedRange verifies the range gate for data shaped
// like the [-1,1] normalization output
func TestApplyRejectsSignedRange(t *testing.T) {
	g := gridOf(2, 2, []float64{-1, -0.5, 0.5, 1})

	if _, err := Apply(g, 1.0); !errors.Is(err, ErrRange) {
		t.Errorf("Expected ErrRange for signed-range data, got %v", err)
	}
}

// TestApplyRejectsNaN verifies that NaN samples (e.g. from normalizing
// a constant grid) fail the precondition instead of polluting the output
func TestApplyRejectsNaN(t *testing.T) {
	g := gridOf(2, 1, []float64{0.5, math.NaN()})

	if _, err := Apply(g, 1.0); !errors.Is(err, ErrRange) {
		t.Errorf("Expected ErrRange for NaN sample, got %v", err)
	}
}

// TestApplyLeavesInputUntouched verifies the input grid is not mutated
func TestApplyLeavesInputUntouched(t *testing.T) {
	g := gridOf(2, 1, []float64{0.25, 0.75})

	if _, err := Apply(g, 1.0); err != nil {
		t.Fatalf("Apply failed: %v", err)
	}

	if g.Data[0] != 0.25 || g.Data[1] != 0.75 {
		t.Errorf("Input grid was mutated: %v", g.Data)
	}
}
