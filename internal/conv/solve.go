package conv

import (
	"math"
	"math/rand/v2"

	"gonum.org/v1/gonum/mat"

	"github.com/san-kum/rodeconv/internal/solver"
)

// Progress reports the running estimate after a Monte Carlo sample. The
// Errors slice is reused between callbacks; copy it to retain.
type Progress struct {
	Sample int // samples completed so far
	Total  int
	Errors []float64 // running sup error per resolution
	P      float64   // running fitted order
}

// ProgressFunc observes a running estimation; returning false stops early,
// keeping the samples accumulated so far.
type ProgressFunc func(Progress) bool

// Solve runs the full Monte Carlo estimation: m independent samples, each
// drawing one initial condition and one fine-mesh noise path, solving the
// target and every coarse approximation against that same realization, and
// accumulating pathwise absolute errors.
func (s *Suite) Solve(rng *rand.Rand) (*Result, error) {
	return s.SolveWithProgress(rng, nil)
}

func (s *Suite) SolveWithProgress(rng *rand.Rand, progress ProgressFunc) (*Result, error) {
	s.trajErr.Zero()

	var running []float64
	if progress != nil {
		running = make([]float64, len(s.cfg.Ns))
	}

	done := 0
	for k := 0; k < s.cfg.M; k++ {
		if err := s.sampleOnce(rng); err != nil {
			return nil, err
		}
		done++
		if progress != nil {
			s.supErrors(running, done)
			_, p, _ := fitPowerLaw(s.deltas(), running)
			if !progress(Progress{Sample: done, Total: s.cfg.M, Errors: running, P: p}) {
				break
			}
		}
	}

	return s.result(done), nil
}

// sampleOnce adds the trajectory errors of one Monte Carlo sample.
func (s *Suite) sampleOnce(rng *rand.Rand) error {
	cfg := s.cfg

	var x0 float64
	if s.scalarX {
		x0 = cfg.X0(rng)
	} else {
		cfg.X0Vec.Rand(rng, s.x0V)
	}

	yt := s.sampleNoise(rng)
	if err := s.solveWith(cfg.Target, s.xtS, s.xtV, x0, yt); err != nil {
		return err
	}

	for j, n := range cfg.Ns {
		stride := cfg.Ntgt / n
		sub := s.subsample(n, stride)
		if err := s.solveWith(cfg.Method, s.xnS, s.xnV, x0, sub); err != nil {
			return err
		}
		s.accumulate(j, n, stride)
	}
	return nil
}

func (s *Suite) sampleNoise(rng *rand.Rand) solver.Path {
	if s.cfg.Noise != nil {
		s.cfg.Noise.Sample(rng, s.ytS)
		return solver.ScalarPath(s.ytS)
	}
	s.cfg.NoiseVec.Sample(rng, s.ytV)
	return solver.VectorPath(s.ytV)
}

// subsample copies every stride-th fine-mesh noise value into the coarse
// scratch, so the coarse path is an exact restriction of the fine one.
func (s *Suite) subsample(n, stride int) solver.Path {
	if s.cfg.Noise != nil {
		sub := s.subS[:n+1]
		for i := range sub {
			sub[i] = s.ytS[i*stride]
		}
		return solver.ScalarPath(sub)
	}
	d := s.cfg.NoiseVec.Dim()
	sub := s.subV.Slice(0, n+1, 0, d).(*mat.Dense)
	for i := 0; i <= n; i++ {
		sub.SetRow(i, s.ytV.RawRowView(i*stride))
	}
	return solver.VectorPath(sub)
}

func (s *Suite) solveWith(m solver.Method, xs []float64, xv *mat.Dense, x0 float64, y solver.Path) error {
	n := y.Len()
	if s.scalarX {
		return m.SolveScalar(xs[:n], s.cfg.T0, s.cfg.Tf, x0, s.cfg.F, y)
	}
	view := xv.Slice(0, n, 0, s.xDim).(*mat.Dense)
	return m.SolveVector(view, s.cfg.T0, s.cfg.Tf, s.x0V, s.cfg.FVec, y)
}

// accumulate adds |approx - target| at coincident time points for
// resolution column j. Vector unknowns use the sum of per-coordinate
// absolute differences.
func (s *Suite) accumulate(j, n, stride int) {
	for i := 0; i <= n; i++ {
		var e float64
		if s.scalarX {
			e = math.Abs(s.xnS[i] - s.xtS[i*stride])
		} else {
			ap := s.xnV.RawRowView(i)
			tg := s.xtV.RawRowView(i * stride)
			for c := range ap {
				e += math.Abs(ap[c] - tg[c])
			}
		}
		s.trajErr.Set(i, j, s.trajErr.At(i, j)+e)
	}
}

func (s *Suite) deltas() []float64 {
	d := make([]float64, len(s.cfg.Ns))
	for j, n := range s.cfg.Ns {
		d[j] = (s.cfg.Tf - s.cfg.T0) / float64(n)
	}
	return d
}

// supErrors writes the per-resolution worst-case mean error over time,
// averaging the accumulated sums over m samples.
func (s *Suite) supErrors(dst []float64, m int) {
	for j, n := range s.cfg.Ns {
		sup := 0.0
		for i := 0; i <= n; i++ {
			if e := s.trajErr.At(i, j); e > sup {
				sup = e
			}
		}
		dst[j] = sup / float64(m)
	}
}

func (s *Suite) result(m int) *Result {
	rows, cols := s.trajErr.Dims()
	traj := mat.NewDense(rows, cols, nil)
	traj.Scale(1/float64(m), s.trajErr)

	deltas := s.deltas()
	errs := make([]float64, cols)
	s.supErrors(errs, m)
	logC, p, half := fitPowerLaw(deltas, errs)

	return &Result{
		Deltas:     deltas,
		Ns:         append([]int(nil), s.cfg.Ns...),
		M:          m,
		TrajErrors: traj,
		Errors:     errs,
		LogC:       logC,
		P:          p,
		PDelta:     half,
	}
}
