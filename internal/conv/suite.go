// Package conv estimates the strong convergence order of a fixed-step
// scheme for a random ODE. A suite repeatedly samples one fine-mesh noise
// path, solves a fine-mesh target and several coarse approximations driven
// by the exact same noise realization, accumulates pathwise errors, and fits
// a power law error = C*dt^p across the coarse resolutions.
package conv

import (
	"errors"
	"fmt"
	"math/rand/v2"

	"gonum.org/v1/gonum/mat"

	"github.com/san-kum/rodeconv/internal/noise"
	"github.com/san-kum/rodeconv/internal/solver"
)

// ErrConfig reports an invalid suite configuration. All configuration
// checks run before any sampling work begins.
var ErrConfig = errors.New("conv: invalid configuration")

// VecLaw draws a vector-valued initial condition in place.
type VecLaw interface {
	Dim() int
	Rand(rng *rand.Rand, x []float64)
}

type iidLaw []noise.Law

func (l iidLaw) Dim() int { return len(l) }

func (l iidLaw) Rand(rng *rand.Rand, x []float64) {
	for i, law := range l {
		x[i] = law(rng)
	}
}

// IID builds a vector initial-condition law with independent components.
func IID(laws ...noise.Law) VecLaw { return iidLaw(laws) }

// Config defines one convergence study. Exactly one of X0/X0Vec (with the
// matching F/FVec) and exactly one of Noise/NoiseVec must be set. Mesh
// sizes count steps: a mesh of n steps is discretized on n+1 points, and
// Ntgt must be an integer multiple of every entry of Ns so coarse meshes
// sub-sample the fine mesh exactly.
type Config struct {
	T0, Tf float64

	X0    noise.Law // scalar unknown
	X0Vec VecLaw    // vector unknown

	F    solver.ScalarRHS
	FVec solver.VectorRHS

	Noise    noise.Process
	NoiseVec noise.VectorProcess

	Target solver.Method // fine-mesh ground truth
	Method solver.Method // scheme under test

	Ntgt int
	Ns   []int
	M    int
}

// Suite owns the reusable path buffers for one convergence study, bounding
// memory to O(Ntgt + max Ns) regardless of the Monte Carlo sample count.
type Suite struct {
	cfg     Config
	scalarX bool
	xDim    int
	maxN    int

	// fine-mesh buffers
	ytS []float64
	ytV *mat.Dense
	xtS []float64
	xtV *mat.Dense

	// coarse-mesh scratch, sized for the largest requested resolution
	subS []float64
	subV *mat.Dense
	xnS  []float64
	xnV  *mat.Dense

	x0V     []float64
	trajErr *mat.Dense // accumulated abs errors, rows = time index, cols = resolution
}

func New(cfg Config) (*Suite, error) {
	scalarX, err := validate(cfg)
	if err != nil {
		return nil, err
	}

	s := &Suite{cfg: cfg, scalarX: scalarX, xDim: 1}
	if !scalarX {
		s.xDim = cfg.X0Vec.Dim()
	}
	for _, n := range cfg.Ns {
		if n > s.maxN {
			s.maxN = n
		}
	}

	fine := cfg.Ntgt + 1
	coarse := s.maxN + 1
	if cfg.Noise != nil {
		s.ytS = make([]float64, fine)
		s.subS = make([]float64, coarse)
	} else {
		d := cfg.NoiseVec.Dim()
		s.ytV = mat.NewDense(fine, d, nil)
		s.subV = mat.NewDense(coarse, d, nil)
	}
	if scalarX {
		s.xtS = make([]float64, fine)
		s.xnS = make([]float64, coarse)
	} else {
		s.xtV = mat.NewDense(fine, s.xDim, nil)
		s.xnV = mat.NewDense(coarse, s.xDim, nil)
		s.x0V = make([]float64, s.xDim)
	}
	s.trajErr = mat.NewDense(coarse, len(cfg.Ns), nil)
	return s, nil
}

func validate(cfg Config) (scalarX bool, err error) {
	if !(cfg.T0 < cfg.Tf) {
		return false, fmt.Errorf("%w: time span [%g, %g]", ErrConfig, cfg.T0, cfg.Tf)
	}

	switch {
	case cfg.X0 != nil && cfg.X0Vec == nil:
		scalarX = true
		if cfg.F == nil || cfg.FVec != nil {
			return false, fmt.Errorf("%w: scalar initial condition needs a scalar right-hand side", ErrConfig)
		}
	case cfg.X0 == nil && cfg.X0Vec != nil:
		if cfg.FVec == nil || cfg.F != nil {
			return false, fmt.Errorf("%w: vector initial condition needs a vector right-hand side", ErrConfig)
		}
		if cfg.X0Vec.Dim() < 1 {
			return false, fmt.Errorf("%w: vector initial condition has dimension %d", ErrConfig, cfg.X0Vec.Dim())
		}
	default:
		return false, fmt.Errorf("%w: exactly one initial-condition law required", ErrConfig)
	}

	if (cfg.Noise == nil) == (cfg.NoiseVec == nil) {
		return false, fmt.Errorf("%w: exactly one noise process required", ErrConfig)
	}
	if cfg.Target == nil || cfg.Method == nil {
		return false, fmt.Errorf("%w: target and method solvers required", ErrConfig)
	}
	if cfg.Ntgt <= 0 {
		return false, fmt.Errorf("%w: target mesh size %d", ErrConfig, cfg.Ntgt)
	}
	if len(cfg.Ns) < 2 {
		return false, fmt.Errorf("%w: need at least two coarse resolutions, got %d", ErrConfig, len(cfg.Ns))
	}
	for _, n := range cfg.Ns {
		if n <= 0 {
			return false, fmt.Errorf("%w: mesh size %d", ErrConfig, n)
		}
		if cfg.Ntgt%n != 0 {
			return false, fmt.Errorf("%w: target mesh %d not divisible by %d", ErrConfig, cfg.Ntgt, n)
		}
	}
	if cfg.M <= 0 {
		return false, fmt.Errorf("%w: sample count %d", ErrConfig, cfg.M)
	}
	return scalarX, nil
}
