package noise

import (
	"fmt"
	"math/rand/v2"
)

// Transport averages a deterministic kernel g(t, r) over a fixed collection
// of i.i.d. velocities r_1..r_k. The velocities are drawn once per sample
// path, not once per time step: given them, the path is a deterministic
// function of time.
type Transport struct {
	span
	law    Law
	kernel func(t, r float64) float64
	vel    []float64 // latent velocities, redrawn each Sample
}

func NewTransport(t0, tf float64, law Law, kernel func(t, r float64) float64, k int) (*Transport, error) {
	sp, err := newSpan(t0, tf)
	if err != nil {
		return nil, err
	}
	if law == nil || kernel == nil {
		return nil, fmt.Errorf("noise: transport needs a velocity law and a kernel")
	}
	if k < 1 {
		return nil, fmt.Errorf("noise: transport needs at least one velocity, got %d", k)
	}
	return &Transport{span: sp, law: law, kernel: kernel, vel: make([]float64, k)}, nil
}

func (p *Transport) cloneProcess() Process {
	q := *p
	q.vel = make([]float64, len(p.vel))
	return &q
}

func (p *Transport) Sample(rng *rand.Rand, path []float64) {
	checkLen(len(path))
	dt := p.dt(len(path))

	for i := range p.vel {
		p.vel[i] = p.law(rng)
	}

	inv := 1.0 / float64(len(p.vel))
	for i := range path {
		t := p.t0 + float64(i)*dt
		sum := 0.0
		for _, r := range p.vel {
			sum += p.kernel(t, r)
		}
		path[i] = sum * inv
	}
}
