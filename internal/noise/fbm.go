package noise

import (
	"fmt"
	"math"
	"math/rand/v2"

	"github.com/mjibson/go-dsp/fft"
	"gonum.org/v1/gonum/mat"
)

// eigTol bounds how negative a circulant eigenvalue may go before the
// embedding is rejected instead of clipped; small negatives are expected
// floating-point artifacts.
const eigTol = 1e-8

// fgnCov is the autocovariance of unit-step fractional Gaussian noise at
// lag k for Hurst exponent h.
func fgnCov(k int, h float64) float64 {
	a := float64(k)
	return 0.5 * (math.Pow(a+1, 2*h) - 2*math.Pow(a, 2*h) + math.Pow(math.Abs(a-1), 2*h))
}

// FractionalBM samples fractional Brownian motion with Hurst exponent in
// (0,1) by circulant embedding: the covariance of the n-1 stationary
// increments is embedded in a circulant matrix of power-of-two size, whose
// eigenvalues come from one FFT of its first row. Each sample synthesizes a
// complex Gaussian vector scaled by the eigenvalue square roots, transforms
// it back, and cumulatively sums the real part.
//
// The embedding is sized for a fixed number of points n chosen at
// construction; sampling into a buffer of any other length panics.
type FractionalBM struct {
	span
	y0, hurst float64
	n         int
	dtH       float64      // dt^hurst, self-similar rescale of unit-step noise
	sq        []float64    // sqrt(lambda_j/m), eigenvalue scaling
	z         []complex128 // scratch for the synthesized spectrum
}

func NewFractionalBM(t0, tf, y0, hurst float64, n int) (*FractionalBM, error) {
	sp, err := newSpan(t0, tf)
	if err != nil {
		return nil, err
	}
	if hurst <= 0 || hurst >= 1 {
		return nil, fmt.Errorf("noise: Hurst exponent must be in (0,1), got %g", hurst)
	}
	if n < 2 {
		return nil, fmt.Errorf("noise: fBm needs at least 2 points, got %d", n)
	}

	m := 1
	for m < 2*(n-1) {
		m *= 2
	}

	// First row of the circulant embedding: covariances by circular lag.
	row := make([]complex128, m)
	for j := 0; j < m; j++ {
		lag := j
		if m-j < lag {
			lag = m - j
		}
		row[j] = complex(fgnCov(lag, hurst), 0)
	}

	eig := fft.FFT(row)
	maxEig := 0.0
	for _, e := range eig {
		if real(e) > maxEig {
			maxEig = real(e)
		}
	}

	sq := make([]float64, m)
	for j, e := range eig {
		l := real(e)
		if l < 0 {
			if l < -eigTol*maxEig {
				return nil, fmt.Errorf("noise: circulant embedding for Hurst %g not nonnegative definite (eigenvalue %g)", hurst, l)
			}
			l = 0
		}
		// lambda/m, not lambda/(2m): taking the real part of the
		// transformed complex vector already halves the variance.
		sq[j] = math.Sqrt(l / float64(m))
	}

	return &FractionalBM{
		span:  sp,
		y0:    y0,
		hurst: hurst,
		n:     n,
		dtH:   math.Pow(sp.dt(n), hurst),
		sq:    sq,
		z:     make([]complex128, m),
	}, nil
}

// cloneProcess shares the read-only eigenvalue table but gives the clone
// its own spectrum scratch.
func (p *FractionalBM) cloneProcess() Process {
	q := *p
	q.z = make([]complex128, len(p.z))
	return &q
}

func (p *FractionalBM) Sample(rng *rand.Rand, path []float64) {
	if len(path) != p.n {
		panic(fmt.Sprintf("noise: fBm sampler built for %d points, got buffer of %d", p.n, len(path)))
	}

	for j := range p.z {
		p.z[j] = complex(p.sq[j]*rng.NormFloat64(), p.sq[j]*rng.NormFloat64())
	}
	w := fft.FFT(p.z)

	path[0] = p.y0
	for i := 1; i < p.n; i++ {
		path[i] = path[i-1] + p.dtH*real(w[i-1])
	}
}

// NaiveFractionalBM is the O(n^2)-per-sample Cholesky fallback used to
// validate the spectral sampler: the increment covariance matrix is factored
// once and each sample multiplies the factor against a fresh Gaussian
// vector. Output is statistically indistinguishable from FractionalBM.
type NaiveFractionalBM struct {
	span
	y0, hurst float64
	n         int
	dtH       float64
	lower     *mat.TriDense
	zs, inc   *mat.VecDense
}

func NewNaiveFractionalBM(t0, tf, y0, hurst float64, n int) (*NaiveFractionalBM, error) {
	sp, err := newSpan(t0, tf)
	if err != nil {
		return nil, err
	}
	if hurst <= 0 || hurst >= 1 {
		return nil, fmt.Errorf("noise: Hurst exponent must be in (0,1), got %g", hurst)
	}
	if n < 2 {
		return nil, fmt.Errorf("noise: fBm needs at least 2 points, got %d", n)
	}

	k := n - 1
	cov := mat.NewSymDense(k, nil)
	for i := 0; i < k; i++ {
		for j := i; j < k; j++ {
			cov.SetSym(i, j, fgnCov(j-i, hurst))
		}
	}

	var chol mat.Cholesky
	if ok := chol.Factorize(cov); !ok {
		return nil, fmt.Errorf("noise: fGn covariance for Hurst %g is not positive definite", hurst)
	}
	lower := mat.NewTriDense(k, mat.Lower, nil)
	chol.LTo(lower)

	return &NaiveFractionalBM{
		span:  sp,
		y0:    y0,
		hurst: hurst,
		n:     n,
		dtH:   math.Pow(sp.dt(n), hurst),
		lower: lower,
		zs:    mat.NewVecDense(k, nil),
		inc:   mat.NewVecDense(k, nil),
	}, nil
}

// cloneProcess shares the read-only Cholesky factor but gives the clone its
// own draw and increment vectors.
func (p *NaiveFractionalBM) cloneProcess() Process {
	q := *p
	q.zs = mat.NewVecDense(p.zs.Len(), nil)
	q.inc = mat.NewVecDense(p.inc.Len(), nil)
	return &q
}

func (p *NaiveFractionalBM) Sample(rng *rand.Rand, path []float64) {
	if len(path) != p.n {
		panic(fmt.Sprintf("noise: fBm sampler built for %d points, got buffer of %d", p.n, len(path)))
	}

	for i := 0; i < p.zs.Len(); i++ {
		p.zs.SetVec(i, rng.NormFloat64())
	}
	p.inc.MulVec(p.lower, p.zs)

	path[0] = p.y0
	for i := 1; i < p.n; i++ {
		path[i] = path[i-1] + p.dtH*p.inc.AtVec(i-1)
	}
}
