package noise

import (
	"math"
	"testing"
)

func TestFractionalBMSelfSimilarVariance(t *testing.T) {
	// Var[B_H(t)] = t^{2H}; check at the terminal time for rough and
	// smooth Hurst exponents.
	for _, h := range []float64{0.25, 0.5, 0.75} {
		p, err := NewFractionalBM(0, 1, 0, h, 65)
		if err != nil {
			t.Fatalf("new fbm h=%g: %v", h, err)
		}

		ends := sampleEndpoints(t, p, 65, 20000, 41)
		mean, variance := meanVar(ends)

		if math.Abs(mean) > 0.03 {
			t.Errorf("h=%g: expected mean ~0, got %.4f", h, mean)
		}
		if math.Abs(variance-1) > 0.06 {
			t.Errorf("h=%g: expected terminal variance ~1, got %.4f", h, variance)
		}
	}
}

func TestFractionalBMIntermediateVariance(t *testing.T) {
	h := 0.3
	p, err := NewFractionalBM(0, 1, 0, h, 65)
	if err != nil {
		t.Fatalf("new fbm: %v", err)
	}

	rng := newTestRNG(42)
	path := make([]float64, 65)
	mid := make([]float64, 20000)
	for k := range mid {
		p.Sample(rng, path)
		mid[k] = path[32] // t = 0.5
	}
	_, variance := meanVar(mid)
	want := math.Pow(0.5, 2*h)
	if math.Abs(variance-want) > 0.03 {
		t.Errorf("expected Var[B_H(1/2)] ~%.4f, got %.4f", want, variance)
	}
}

func TestFractionalBMHalfIsBrownian(t *testing.T) {
	// At H=1/2 increments are independent; consecutive increments should be
	// uncorrelated.
	p, err := NewFractionalBM(0, 1, 0, 0.5, 33)
	if err != nil {
		t.Fatalf("new fbm: %v", err)
	}
	if got := incrementCorrelation(t, p, 33, 20000, 43); math.Abs(got) > 0.02 {
		t.Errorf("expected zero increment correlation at H=1/2, got %.4f", got)
	}
}

func TestFractionalBMIncrementCorrelationSign(t *testing.T) {
	rough, err := NewFractionalBM(0, 1, 0, 0.25, 33)
	if err != nil {
		t.Fatalf("new rough fbm: %v", err)
	}
	smooth, err := NewFractionalBM(0, 1, 0, 0.75, 33)
	if err != nil {
		t.Fatalf("new smooth fbm: %v", err)
	}

	if got := incrementCorrelation(t, rough, 33, 20000, 44); got >= 0 {
		t.Errorf("expected negative increment correlation for H<1/2, got %.4f", got)
	}
	if got := incrementCorrelation(t, smooth, 33, 20000, 45); got <= 0 {
		t.Errorf("expected positive increment correlation for H>1/2, got %.4f", got)
	}
}

// incrementCorrelation estimates the lag-1 autocorrelation of the path
// increments pooled over m samples.
func incrementCorrelation(t *testing.T, p Process, points, m int, seed uint64) float64 {
	t.Helper()
	rng := newTestRNG(seed)
	path := make([]float64, points)

	var sxy, sxx float64
	for k := 0; k < m; k++ {
		p.Sample(rng, path)
		for i := 2; i < len(path); i++ {
			a := path[i-1] - path[i-2]
			b := path[i] - path[i-1]
			sxy += a * b
			sxx += a * a
		}
	}
	return sxy / sxx
}

func TestNaiveFractionalBMAgreesWithSpectral(t *testing.T) {
	h := 0.35
	spectral, err := NewFractionalBM(0, 1, 0, h, 33)
	if err != nil {
		t.Fatalf("new spectral fbm: %v", err)
	}
	naive, err := NewNaiveFractionalBM(0, 1, 0, h, 33)
	if err != nil {
		t.Fatalf("new naive fbm: %v", err)
	}

	m1, v1 := meanVar(sampleEndpoints(t, spectral, 33, 20000, 46))
	m2, v2 := meanVar(sampleEndpoints(t, naive, 33, 20000, 47))

	if math.Abs(m1-m2) > 0.03 {
		t.Errorf("terminal means disagree: %.4f vs %.4f", m1, m2)
	}
	if math.Abs(v1-v2) > 0.05 {
		t.Errorf("terminal variances disagree: %.4f vs %.4f", v1, v2)
	}
}

func TestFractionalBMRejectsBadParams(t *testing.T) {
	if _, err := NewFractionalBM(0, 1, 0, 0, 33); err == nil {
		t.Error("expected error for Hurst 0")
	}
	if _, err := NewFractionalBM(0, 1, 0, 1, 33); err == nil {
		t.Error("expected error for Hurst 1")
	}
	if _, err := NewNaiveFractionalBM(0, 1, 0, 1.2, 33); err == nil {
		t.Error("expected error for Hurst above 1")
	}
}

func TestFractionalBMFixedResolution(t *testing.T) {
	p, err := NewFractionalBM(0, 1, 0, 0.5, 33)
	if err != nil {
		t.Fatalf("new fbm: %v", err)
	}
	defer func() {
		if recover() == nil {
			t.Error("expected panic for mismatched buffer length")
		}
	}()
	p.Sample(newTestRNG(48), make([]float64, 17))
}
