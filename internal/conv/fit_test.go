package conv

import (
	"math"
	"testing"
)

func TestFitPowerLawExact(t *testing.T) {
	// err = 3*dt^1.5 exactly: the fit must recover both parameters and
	// report a zero-width interval.
	c, p := 3.0, 1.5
	deltas := []float64{1.0 / 16, 1.0 / 32, 1.0 / 64, 1.0 / 128}
	errs := make([]float64, len(deltas))
	for i, d := range deltas {
		errs[i] = c * math.Pow(d, p)
	}

	logC, pHat, half := fitPowerLaw(deltas, errs)
	if math.Abs(pHat-p) > 1e-10 {
		t.Errorf("expected p=%.4f, got %.10f", p, pHat)
	}
	if math.Abs(math.Exp(logC)-c) > 1e-9 {
		t.Errorf("expected C=%.4f, got %.10f", c, math.Exp(logC))
	}
	if half > 1e-9 {
		t.Errorf("expected near-zero confidence half-width, got %g", half)
	}
}

func TestFitPowerLawNoisy(t *testing.T) {
	// Perturbed observations widen the interval but keep it finite and
	// positive, and the estimate stays near the truth.
	deltas := []float64{1.0 / 16, 1.0 / 32, 1.0 / 64, 1.0 / 128, 1.0 / 256}
	factors := []float64{1.05, 0.97, 1.02, 0.99, 1.01}
	errs := make([]float64, len(deltas))
	for i, d := range deltas {
		errs[i] = 2 * math.Pow(d, 1.0) * factors[i]
	}

	_, pHat, half := fitPowerLaw(deltas, errs)
	if math.Abs(pHat-1) > 0.05 {
		t.Errorf("expected p ~1, got %.4f", pHat)
	}
	if half <= 0 || math.IsNaN(half) || math.IsInf(half, 0) {
		t.Errorf("expected a finite positive half-width, got %g", half)
	}
	if pHat-half > 1 || pHat+half < 1 {
		t.Errorf("true order outside the interval: %.4f +- %.4f", pHat, half)
	}
}

func TestFitPowerLawTwoPoints(t *testing.T) {
	// Two resolutions determine the line exactly; no residual degrees of
	// freedom, so the half-width is NaN.
	deltas := []float64{1.0 / 16, 1.0 / 32}
	errs := []float64{0.1, 0.05}

	_, pHat, half := fitPowerLaw(deltas, errs)
	if math.Abs(pHat-1) > 1e-10 {
		t.Errorf("expected slope 1, got %.10f", pHat)
	}
	if !math.IsNaN(half) {
		t.Errorf("expected NaN half-width for two points, got %g", half)
	}
}
