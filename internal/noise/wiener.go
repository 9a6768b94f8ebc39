package noise

import (
	"math"
	"math/rand/v2"
)

// Wiener is a standard Brownian motion started at y0. Increments over a step
// dt are N(0, dt), so the discretized path is exact in law.
type Wiener struct {
	span
	y0 float64
}

func NewWiener(t0, tf, y0 float64) (*Wiener, error) {
	sp, err := newSpan(t0, tf)
	if err != nil {
		return nil, err
	}
	return &Wiener{span: sp, y0: y0}, nil
}

func (w *Wiener) Sample(rng *rand.Rand, path []float64) {
	checkLen(len(path))
	sqdt := math.Sqrt(w.dt(len(path)))

	path[0] = w.y0
	for i := 1; i < len(path); i++ {
		path[i] = path[i-1] + sqdt*rng.NormFloat64()
	}
}
