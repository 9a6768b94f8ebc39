package noise

import (
	"fmt"
	"math"
	"math/rand/v2"
)

// GeometricBM is a geometric Brownian motion dY = mu*Y dt + sigma*Y dW,
// sampled through the exact multiplicative update
//
//	Y[n] = Y[n-1] * exp((mu - sigma^2/2)*dt + sigma*sqrt(dt)*Z).
type GeometricBM struct {
	span
	y0, mu, sigma float64
}

func NewGeometricBM(t0, tf, y0, mu, sigma float64) (*GeometricBM, error) {
	sp, err := newSpan(t0, tf)
	if err != nil {
		return nil, err
	}
	if sigma <= 0 {
		return nil, fmt.Errorf("noise: GBM volatility sigma must be positive, got %g", sigma)
	}
	return &GeometricBM{span: sp, y0: y0, mu: mu, sigma: sigma}, nil
}

func (p *GeometricBM) Sample(rng *rand.Rand, path []float64) {
	checkLen(len(path))
	dt := p.dt(len(path))
	drift := (p.mu - 0.5*p.sigma*p.sigma) * dt
	vol := p.sigma * math.Sqrt(dt)

	path[0] = p.y0
	for i := 1; i < len(path); i++ {
		path[i] = path[i-1] * math.Exp(drift+vol*rng.NormFloat64())
	}
}
