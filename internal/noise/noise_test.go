package noise

import (
	"math"
	"math/rand/v2"
	"testing"
)

func newTestRNG(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, 0))
}

// sampleEndpoints draws m paths and returns the terminal values.
func sampleEndpoints(t *testing.T, p Process, points, m int, seed uint64) []float64 {
	t.Helper()
	rng := newTestRNG(seed)
	path := make([]float64, points)
	out := make([]float64, m)
	for k := 0; k < m; k++ {
		p.Sample(rng, path)
		out[k] = path[len(path)-1]
	}
	return out
}

func meanVar(xs []float64) (float64, float64) {
	var sum float64
	for _, x := range xs {
		sum += x
	}
	mean := sum / float64(len(xs))
	var ss float64
	for _, x := range xs {
		d := x - mean
		ss += d * d
	}
	return mean, ss / float64(len(xs)-1)
}

func TestWienerMoments(t *testing.T) {
	w, err := NewWiener(0, 1, 0)
	if err != nil {
		t.Fatalf("new wiener: %v", err)
	}

	ends := sampleEndpoints(t, w, 65, 20000, 1)
	mean, variance := meanVar(ends)

	if math.Abs(mean) > 0.03 {
		t.Errorf("expected W(1) mean ~0, got %.4f", mean)
	}
	if math.Abs(variance-1.0) > 0.05 {
		t.Errorf("expected W(1) variance ~1, got %.4f", variance)
	}
}

func TestWienerStartsAtInitialValue(t *testing.T) {
	w, err := NewWiener(0, 2, 3.5)
	if err != nil {
		t.Fatalf("new wiener: %v", err)
	}
	path := make([]float64, 17)
	w.Sample(newTestRNG(7), path)
	if path[0] != 3.5 {
		t.Errorf("expected path[0]=3.5, got %g", path[0])
	}
}

func TestWienerDeterministicSeed(t *testing.T) {
	w, err := NewWiener(0, 1, 0)
	if err != nil {
		t.Fatalf("new wiener: %v", err)
	}

	a := make([]float64, 33)
	b := make([]float64, 33)
	w.Sample(newTestRNG(42), a)
	w.Sample(newTestRNG(42), b)

	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("paths diverge at %d: %g vs %g", i, a[i], b[i])
		}
	}
}

func TestOrnsteinUhlenbeckMoments(t *testing.T) {
	y0, nu, sigma := 2.0, 1.5, 0.8
	p, err := NewOrnsteinUhlenbeck(0, 1, y0, nu, sigma)
	if err != nil {
		t.Fatalf("new ou: %v", err)
	}

	ends := sampleEndpoints(t, p, 65, 20000, 2)
	mean, variance := meanVar(ends)

	wantMean := y0 * math.Exp(-nu)
	wantVar := sigma * sigma / (2 * nu) * (1 - math.Exp(-2*nu))
	if math.Abs(mean-wantMean) > 0.02 {
		t.Errorf("expected mean ~%.4f, got %.4f", wantMean, mean)
	}
	if math.Abs(variance-wantVar) > 0.02 {
		t.Errorf("expected variance ~%.4f, got %.4f", wantVar, variance)
	}
}

func TestOrnsteinUhlenbeckRejectsBadParams(t *testing.T) {
	if _, err := NewOrnsteinUhlenbeck(0, 1, 0, -1, 1); err == nil {
		t.Error("expected error for negative mean reversion")
	}
	if _, err := NewOrnsteinUhlenbeck(1, 0, 0, 1, 1); err == nil {
		t.Error("expected error for inverted span")
	}
}

func TestGeometricBMMoments(t *testing.T) {
	y0, mu, sigma := 1.0, 0.5, 0.3
	p, err := NewGeometricBM(0, 1, y0, mu, sigma)
	if err != nil {
		t.Fatalf("new gbm: %v", err)
	}

	ends := sampleEndpoints(t, p, 65, 40000, 3)
	mean, _ := meanVar(ends)

	wantMean := y0 * math.Exp(mu)
	if math.Abs(mean-wantMean)/wantMean > 0.02 {
		t.Errorf("expected E[Y(1)] ~%.4f, got %.4f", wantMean, mean)
	}

	// log of the terminal value is gaussian with known moments
	logs := make([]float64, len(ends))
	for i, v := range ends {
		logs[i] = math.Log(v)
	}
	logMean, logVar := meanVar(logs)
	wantLogMean := math.Log(y0) + mu - sigma*sigma/2
	if math.Abs(logMean-wantLogMean) > 0.01 {
		t.Errorf("expected log-mean ~%.4f, got %.4f", wantLogMean, logMean)
	}
	if math.Abs(logVar-sigma*sigma) > 0.01 {
		t.Errorf("expected log-variance ~%.4f, got %.4f", sigma*sigma, logVar)
	}
}

func TestGeometricBMStaysPositive(t *testing.T) {
	p, err := NewGeometricBM(0, 5, 0.1, -1, 2)
	if err != nil {
		t.Fatalf("new gbm: %v", err)
	}
	path := make([]float64, 257)
	rng := newTestRNG(4)
	for k := 0; k < 50; k++ {
		p.Sample(rng, path)
		for i, v := range path {
			if v <= 0 {
				t.Fatalf("path went non-positive at index %d: %g", i, v)
			}
		}
	}
}

func TestTransportPathIsSmooth(t *testing.T) {
	// With a bounded kernel the transport path has bounded increments
	// proportional to the step.
	kernel := func(tm, r float64) float64 { return math.Sin(tm * r) }
	p, err := NewTransport(0, 1, UniformLaw(0, 1), kernel, 3)
	if err != nil {
		t.Fatalf("new transport: %v", err)
	}

	path := make([]float64, 129)
	p.Sample(newTestRNG(5), path)
	dt := 1.0 / 128.0
	for i := 1; i < len(path); i++ {
		// |d/dt sin(t r)| <= 1 for r in [0,1]
		if math.Abs(path[i]-path[i-1]) > 1.5*dt {
			t.Fatalf("increment too large at %d: %g", i, path[i]-path[i-1])
		}
	}
}

func TestTransportRedrawsVelocities(t *testing.T) {
	kernel := func(tm, r float64) float64 { return r }
	p, err := NewTransport(0, 1, UniformLaw(0, 1), kernel, 1)
	if err != nil {
		t.Fatalf("new transport: %v", err)
	}

	rng := newTestRNG(6)
	path := make([]float64, 4)
	p.Sample(rng, path)
	first := path[0]
	p.Sample(rng, path)
	if path[0] == first {
		t.Error("expected a fresh latent draw per sample")
	}
}

func TestLawsMoments(t *testing.T) {
	cases := []struct {
		name     string
		law      Law
		mean, sd float64
	}{
		{"normal", NormalLaw(2, 3), 2, 3},
		{"uniform", UniformLaw(0, 1), 0.5, math.Sqrt(1.0 / 12.0)},
		{"exponential", ExponentialLaw(2), 0.5, 0.5},
		{"constant", ConstantLaw(7), 7, 0},
	}

	for _, tc := range cases {
		rng := newTestRNG(11)
		xs := make([]float64, 50000)
		for i := range xs {
			xs[i] = tc.law(rng)
		}
		mean, variance := meanVar(xs)
		if math.Abs(mean-tc.mean) > 0.05 {
			t.Errorf("%s: expected mean ~%.3f, got %.3f", tc.name, tc.mean, mean)
		}
		if math.Abs(math.Sqrt(variance)-tc.sd) > 0.05 {
			t.Errorf("%s: expected sd ~%.3f, got %.3f", tc.name, tc.sd, math.Sqrt(variance))
		}
	}
}
