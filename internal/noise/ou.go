package noise

import (
	"fmt"
	"math"
	"math/rand/v2"
)

// OrnsteinUhlenbeck is a mean-zero OU process dY = -nu*Y dt + sigma dW,
// sampled through the exact AR(1) recursion
//
//	Y[n] = Y[n-1]*exp(-nu*dt) + sigma*sqrt((1-exp(-2*nu*dt))/(2*nu))*Z
//
// rather than an Euler discretization, so the grid values have the exact
// transition law.
type OrnsteinUhlenbeck struct {
	span
	y0, nu, sigma float64
}

func NewOrnsteinUhlenbeck(t0, tf, y0, nu, sigma float64) (*OrnsteinUhlenbeck, error) {
	sp, err := newSpan(t0, tf)
	if err != nil {
		return nil, err
	}
	if nu <= 0 {
		return nil, fmt.Errorf("noise: OU drift nu must be positive, got %g", nu)
	}
	if sigma <= 0 {
		return nil, fmt.Errorf("noise: OU diffusion sigma must be positive, got %g", sigma)
	}
	return &OrnsteinUhlenbeck{span: sp, y0: y0, nu: nu, sigma: sigma}, nil
}

func (p *OrnsteinUhlenbeck) Sample(rng *rand.Rand, path []float64) {
	checkLen(len(path))
	dt := p.dt(len(path))
	a := math.Exp(-p.nu * dt)
	b := p.sigma * math.Sqrt((1-a*a)/(2*p.nu))

	path[0] = p.y0
	for i := 1; i < len(path); i++ {
		path[i] = path[i-1]*a + b*rng.NormFloat64()
	}
}
