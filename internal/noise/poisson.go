package noise

import (
	"fmt"
	"math/rand/v2"

	"gonum.org/v1/gonum/stat/distuv"
)

// CompoundPoisson accumulates jumps arriving at a fixed Poisson rate: per
// step the jump count is drawn from Poisson(rate*dt) and that many i.i.d.
// jump sizes are summed onto the running level. Exact in law on the grid.
type CompoundPoisson struct {
	span
	y0   float64
	rate float64
	jump Law
}

func NewCompoundPoisson(t0, tf, y0, rate float64, jump Law) (*CompoundPoisson, error) {
	sp, err := newSpan(t0, tf)
	if err != nil {
		return nil, err
	}
	if rate <= 0 {
		return nil, fmt.Errorf("noise: Poisson rate must be positive, got %g", rate)
	}
	if jump == nil {
		return nil, fmt.Errorf("noise: compound Poisson needs a jump-size law")
	}
	return &CompoundPoisson{span: sp, y0: y0, rate: rate, jump: jump}, nil
}

func (p *CompoundPoisson) Sample(rng *rand.Rand, path []float64) {
	checkLen(len(path))
	counts := distuv.Poisson{Lambda: p.rate * p.dt(len(path)), Src: rng}

	path[0] = p.y0
	for i := 1; i < len(path); i++ {
		y := path[i-1]
		for k := int(counts.Rand()); k > 0; k-- {
			y += p.jump(rng)
		}
		path[i] = y
	}
}

// CompoundPoissonGaps samples the same law as CompoundPoisson but walks the
// exponential inter-arrival times of the underlying point process instead of
// drawing per-step counts.
type CompoundPoissonGaps struct {
	span
	y0   float64
	rate float64
	jump Law
}

func NewCompoundPoissonGaps(t0, tf, y0, rate float64, jump Law) (*CompoundPoissonGaps, error) {
	sp, err := newSpan(t0, tf)
	if err != nil {
		return nil, err
	}
	if rate <= 0 {
		return nil, fmt.Errorf("noise: Poisson rate must be positive, got %g", rate)
	}
	if jump == nil {
		return nil, fmt.Errorf("noise: compound Poisson needs a jump-size law")
	}
	return &CompoundPoissonGaps{span: sp, y0: y0, rate: rate, jump: jump}, nil
}

func (p *CompoundPoissonGaps) Sample(rng *rand.Rand, path []float64) {
	checkLen(len(path))
	dt := p.dt(len(path))

	y := p.y0
	path[0] = y
	next := p.t0 + rng.ExpFloat64()/p.rate
	for i := 1; i < len(path); i++ {
		t := p.t0 + float64(i)*dt
		for next <= t {
			y += p.jump(rng)
			next += rng.ExpFloat64() / p.rate
		}
		path[i] = y
	}
}

// PoissonStep is piecewise constant: whenever an event of a rate-lambda
// Poisson clock fires, the level is redrawn from the step law. The initial
// level is also drawn from the step law.
type PoissonStep struct {
	span
	rate float64
	step Law
}

func NewPoissonStep(t0, tf, rate float64, step Law) (*PoissonStep, error) {
	sp, err := newSpan(t0, tf)
	if err != nil {
		return nil, err
	}
	if rate <= 0 {
		return nil, fmt.Errorf("noise: Poisson rate must be positive, got %g", rate)
	}
	if step == nil {
		return nil, fmt.Errorf("noise: Poisson step needs a step law")
	}
	return &PoissonStep{span: sp, rate: rate, step: step}, nil
}

func (p *PoissonStep) Sample(rng *rand.Rand, path []float64) {
	checkLen(len(path))
	counts := distuv.Poisson{Lambda: p.rate * p.dt(len(path)), Src: rng}

	path[0] = p.step(rng)
	for i := 1; i < len(path); i++ {
		y := path[i-1]
		// Only the last redraw inside the step survives; i.i.d. levels make
		// one draw per event-carrying step equivalent.
		if counts.Rand() > 0 {
			y = p.step(rng)
		}
		path[i] = y
	}
}
