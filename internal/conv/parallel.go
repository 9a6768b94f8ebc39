package conv

import (
	"math/rand/v2"
	"sync"

	"gonum.org/v1/gonum/mat"

	"github.com/san-kum/rodeconv/internal/noise"
	"github.com/san-kum/rodeconv/internal/solver"
)

// Ensemble splits the Monte Carlo samples of one study across workers.
// Each worker owns an independent suite (private buffers, cloned noise and
// solver instances) and a PCG seeded by its index, so runs are reproducible
// regardless of scheduling; merging sums the accumulated error matrices,
// which is valid because samples are order-independent at the accumulation
// step.
type Ensemble struct {
	cfg     Config
	workers int
	seed    uint64
}

func NewEnsemble(cfg Config, workers int, seed uint64) (*Ensemble, error) {
	if workers < 1 {
		workers = 1
	}
	if _, err := validate(cfg); err != nil {
		return nil, err
	}
	return &Ensemble{cfg: cfg, workers: workers, seed: seed}, nil
}

func (e *Ensemble) Solve() (*Result, error) {
	parts := make([]*Result, e.workers)
	errs := make([]error, e.workers)
	counts := make([]int, e.workers)

	base := e.cfg.M / e.workers
	rem := e.cfg.M % e.workers
	for i := range counts {
		counts[i] = base
		if i < rem {
			counts[i]++
		}
	}

	var wg sync.WaitGroup
	for i := 0; i < e.workers; i++ {
		if counts[i] == 0 {
			continue
		}
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()

			cfg := e.cfg
			cfg.M = counts[idx]
			if cfg.Noise != nil {
				cfg.Noise = noise.CloneProcess(cfg.Noise)
			}
			if cfg.NoiseVec != nil {
				cfg.NoiseVec = noise.CloneVectorProcess(cfg.NoiseVec)
			}
			cfg.Target = solver.CloneMethod(cfg.Target)
			cfg.Method = solver.CloneMethod(cfg.Method)
			suite, err := New(cfg)
			if err != nil {
				errs[idx] = err
				return
			}
			rng := rand.New(rand.NewPCG(e.seed, uint64(idx)))
			parts[idx], errs[idx] = suite.Solve(rng)
		}(i)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	var only *Result
	active := 0
	for _, part := range parts {
		if part != nil {
			only = part
			active++
		}
	}
	if active == 1 {
		// No merge arithmetic when one worker did all the samples, so a
		// single-worker ensemble is bit-identical to a plain suite run.
		return only, nil
	}
	return e.merge(parts), nil
}

func (e *Ensemble) merge(parts []*Result) *Result {
	var traj *mat.Dense
	total := 0
	for _, part := range parts {
		if part == nil {
			continue
		}
		rows, cols := part.TrajErrors.Dims()
		if traj == nil {
			traj = mat.NewDense(rows, cols, nil)
		}
		scaled := mat.NewDense(rows, cols, nil)
		scaled.Scale(float64(part.M), part.TrajErrors)
		traj.Add(traj, scaled)
		total += part.M
	}
	traj.Scale(1/float64(total), traj)

	first := parts[0]
	for first == nil {
		parts = parts[1:]
		first = parts[0]
	}

	errs := make([]float64, len(first.Ns))
	for j, n := range first.Ns {
		sup := 0.0
		for i := 0; i <= n; i++ {
			if v := traj.At(i, j); v > sup {
				sup = v
			}
		}
		errs[j] = sup
	}
	logC, p, half := fitPowerLaw(first.Deltas, errs)

	return &Result{
		Deltas:     first.Deltas,
		Ns:         first.Ns,
		M:          total,
		TrajErrors: traj,
		Errors:     errs,
		LogC:       logC,
		P:          p,
		PDelta:     half,
	}
}
