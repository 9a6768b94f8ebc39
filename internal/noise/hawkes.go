package noise

import (
	"fmt"
	"math"
	"math/rand/v2"
)

// ExponentialHawkes samples the intensity path of a self-exciting point
// process with exponential kernel: between events the intensity decays at
// rate delta toward the base rate, and every event adds a random amount
// drawn from the jump law. Events are simulated by Ogata thinning; the
// decaying intensity right after the last event is a valid upper bound
// until the next event, so the thinning is exact.
type ExponentialHawkes struct {
	span
	lambda0 float64 // initial intensity
	base    float64 // asymptotic rate the intensity decays toward
	delta   float64 // decay rate
	jump    Law
}

func NewExponentialHawkes(t0, tf, lambda0, base, delta float64, jump Law) (*ExponentialHawkes, error) {
	sp, err := newSpan(t0, tf)
	if err != nil {
		return nil, err
	}
	if base < 0 {
		return nil, fmt.Errorf("noise: Hawkes base rate must be nonnegative, got %g", base)
	}
	if lambda0 < base {
		return nil, fmt.Errorf("noise: Hawkes initial intensity %g below base rate %g", lambda0, base)
	}
	if delta <= 0 {
		return nil, fmt.Errorf("noise: Hawkes decay rate must be positive, got %g", delta)
	}
	if jump == nil {
		return nil, fmt.Errorf("noise: Hawkes needs a jump-size law")
	}
	return &ExponentialHawkes{span: sp, lambda0: lambda0, base: base, delta: delta, jump: jump}, nil
}

func (p *ExponentialHawkes) Sample(rng *rand.Rand, path []float64) {
	checkLen(len(path))
	dt := p.dt(len(path))

	// excess over the base rate decays as excess*exp(-delta*(t-tLast)).
	tLast := p.t0
	excess := p.lambda0 - p.base

	path[0] = p.lambda0
	n := 1

	s := p.t0
	for n < len(path) {
		bound := p.base + excess*math.Exp(-p.delta*(s-tLast))
		var sNext float64
		if bound > 0 {
			sNext = s + rng.ExpFloat64()/bound
		} else {
			sNext = p.tf // degenerate: no more events can fire
		}

		for n < len(path) {
			t := p.t0 + float64(n)*dt
			if t > sNext {
				break
			}
			path[n] = p.base + excess*math.Exp(-p.delta*(t-tLast))
			n++
		}
		if sNext >= p.tf {
			break
		}

		at := p.base + excess*math.Exp(-p.delta*(sNext-tLast))
		if rng.Float64()*bound <= at {
			excess = at - p.base + p.jump(rng)
			tLast = sNext
		}
		s = sNext
	}
}
