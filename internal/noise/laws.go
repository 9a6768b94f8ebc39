package noise

import (
	"math/rand/v2"

	"gonum.org/v1/gonum/stat/distuv"
)

// Law draws one variate using the supplied random source. The helpers below
// wrap the gonum distuv laws with the source rebound per draw, so a single
// seeded source drives every draw of a run in call order.
type Law func(rng *rand.Rand) float64

func NormalLaw(mu, sigma float64) Law {
	return func(rng *rand.Rand) float64 {
		return distuv.Normal{Mu: mu, Sigma: sigma, Src: rng}.Rand()
	}
}

func UniformLaw(min, max float64) Law {
	return func(rng *rand.Rand) float64 {
		return distuv.Uniform{Min: min, Max: max, Src: rng}.Rand()
	}
}

func ExponentialLaw(rate float64) Law {
	return func(rng *rand.Rand) float64 {
		return distuv.Exponential{Rate: rate, Src: rng}.Rand()
	}
}

func LogNormalLaw(mu, sigma float64) Law {
	return func(rng *rand.Rand) float64 {
		return distuv.LogNormal{Mu: mu, Sigma: sigma, Src: rng}.Rand()
	}
}

func ConstantLaw(c float64) Law {
	return func(*rand.Rand) float64 { return c }
}
