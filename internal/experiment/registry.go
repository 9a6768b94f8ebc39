// Package experiment maps scenario and method names onto configured
// convergence suites, and wraps a run behind a seeded random source.
package experiment

import (
	"fmt"
	"math"
	"sort"

	"github.com/san-kum/rodeconv/internal/config"
	"github.com/san-kum/rodeconv/internal/conv"
	"github.com/san-kum/rodeconv/internal/noise"
	"github.com/san-kum/rodeconv/internal/solver"
)

// Builder assembles the problem part of a suite configuration: noise
// process, right-hand side, and initial-condition law. Mesh sizes and
// solvers are filled in afterwards from the surrounding config.
type Builder func(cfg *config.Config) (conv.Config, error)

type Registry struct {
	scenarios map[string]Builder
	methods   map[string]func() solver.Method
}

func NewRegistry() *Registry {
	r := &Registry{
		scenarios: make(map[string]Builder),
		methods:   make(map[string]func() solver.Method),
	}

	r.methods["euler"] = func() solver.Method { return solver.NewEuler() }
	r.methods["heun"] = func() solver.Method { return solver.NewHeun() }

	r.scenarios["wiener-linear"] = buildWienerLinear
	r.scenarios["wiener-linear-2d"] = buildWienerLinear2D
	r.scenarios["wiener-linear-exact"] = buildWienerLinearExact
	r.scenarios["ou-linear"] = buildOULinear
	r.scenarios["gbm-linear"] = buildGBMLinear
	r.scenarios["cpoisson-linear"] = buildCompoundPoissonLinear
	r.scenarios["pstep-linear"] = buildPoissonStepLinear
	r.scenarios["hawkes-linear"] = buildHawkesLinear
	r.scenarios["transport-linear"] = buildTransportLinear
	r.scenarios["fbm-linear"] = buildFBMLinear
	r.scenarios["product-linear"] = buildProductLinear

	return r
}

// Build assembles the full suite configuration for cfg, resolving solver
// names unless the scenario installed its own (e.g. an exact target).
func (r *Registry) Build(cfg *config.Config) (conv.Config, error) {
	builder, ok := r.scenarios[cfg.Scenario]
	if !ok {
		return conv.Config{}, fmt.Errorf("unknown scenario: %s", cfg.Scenario)
	}
	cc, err := builder(cfg)
	if err != nil {
		return conv.Config{}, err
	}

	cc.T0, cc.Tf = cfg.T0, cfg.Tf
	cc.Ntgt = cfg.Ntgt
	cc.Ns = cfg.Ns
	cc.M = cfg.M

	if cc.Target == nil {
		if cc.Target, err = r.GetMethod(cfg.Target); err != nil {
			return conv.Config{}, err
		}
	}
	if cc.Method == nil {
		if cc.Method, err = r.GetMethod(cfg.Method); err != nil {
			return conv.Config{}, err
		}
	}
	return cc, nil
}

func (r *Registry) GetMethod(name string) (solver.Method, error) {
	fn, ok := r.methods[name]
	if !ok {
		return nil, fmt.Errorf("unknown method: %s", name)
	}
	return fn(), nil
}

func (r *Registry) ListScenarios() []string {
	names := make([]string, 0, len(r.scenarios))
	for name := range r.scenarios {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// linearRHS is the workhorse right-hand side dx/dt = y*x.
func linearRHS(t, x float64, y []float64) float64 {
	return y[0] * x
}

func buildWienerLinear(cfg *config.Config) (conv.Config, error) {
	w, err := noise.NewWiener(cfg.T0, cfg.Tf, cfg.Process.Y0)
	if err != nil {
		return conv.Config{}, err
	}
	return conv.Config{
		X0:    noise.NormalLaw(0, 1),
		F:     linearRHS,
		Noise: w,
	}, nil
}

func buildWienerLinear2D(cfg *config.Config) (conv.Config, error) {
	w1, err := noise.NewWiener(cfg.T0, cfg.Tf, cfg.Process.Y0)
	if err != nil {
		return conv.Config{}, err
	}
	w2, err := noise.NewWiener(cfg.T0, cfg.Tf, cfg.Process.Y0)
	if err != nil {
		return conv.Config{}, err
	}
	prod, err := noise.NewProduct(cfg.T0, cfg.Tf, noise.Scalar(w1), noise.Scalar(w2))
	if err != nil {
		return conv.Config{}, err
	}
	return conv.Config{
		X0Vec: conv.IID(noise.NormalLaw(0, 1), noise.NormalLaw(0, 1)),
		FVec: func(dx []float64, t float64, x, y []float64) {
			dx[0] = y[0] * x[0]
			dx[1] = y[1] * x[1]
		},
		NoiseVec: prod,
	}, nil
}

// buildWienerLinearExact pairs the linear scenario with its closed-form
// solution x(t) = x0*exp(int_0^t W ds), the integral taken by the
// trapezoidal rule on the solution mesh, as the target.
func buildWienerLinearExact(cfg *config.Config) (conv.Config, error) {
	cc, err := buildWienerLinear(cfg)
	if err != nil {
		return conv.Config{}, err
	}
	if cfg.Target != "exact" {
		return conv.Config{}, fmt.Errorf("scenario wiener-linear-exact requires target \"exact\", got %q", cfg.Target)
	}
	cc.Target = solver.Custom{
		Scalar: func(x []float64, t0, tf, x0 float64, f solver.ScalarRHS, y solver.Path) error {
			dt := (tf - t0) / float64(len(x)-1)
			integral := 0.0
			x[0] = x0
			for i := 1; i < len(x); i++ {
				integral += 0.5 * dt * (y.Row(i - 1)[0] + y.Row(i)[0])
				x[i] = x0 * math.Exp(integral)
			}
			return nil
		},
	}
	return cc, nil
}

func buildOULinear(cfg *config.Config) (conv.Config, error) {
	p, err := noise.NewOrnsteinUhlenbeck(cfg.T0, cfg.Tf, cfg.Process.Y0, cfg.Process.Nu, cfg.Process.Sigma)
	if err != nil {
		return conv.Config{}, err
	}
	return conv.Config{X0: noise.NormalLaw(0, 1), F: linearRHS, Noise: p}, nil
}

func buildGBMLinear(cfg *config.Config) (conv.Config, error) {
	p, err := noise.NewGeometricBM(cfg.T0, cfg.Tf, cfg.Process.Y0, cfg.Process.Mu, cfg.Process.Sigma)
	if err != nil {
		return conv.Config{}, err
	}
	return conv.Config{X0: noise.NormalLaw(0, 1), F: linearRHS, Noise: p}, nil
}

func buildCompoundPoissonLinear(cfg *config.Config) (conv.Config, error) {
	jump := noise.NormalLaw(cfg.Process.JumpMu, cfg.Process.JumpSigma)
	p, err := noise.NewCompoundPoisson(cfg.T0, cfg.Tf, cfg.Process.Y0, cfg.Process.Rate, jump)
	if err != nil {
		return conv.Config{}, err
	}
	return conv.Config{X0: noise.NormalLaw(0, 1), F: linearRHS, Noise: p}, nil
}

func buildPoissonStepLinear(cfg *config.Config) (conv.Config, error) {
	step := noise.NormalLaw(cfg.Process.JumpMu, cfg.Process.JumpSigma)
	p, err := noise.NewPoissonStep(cfg.T0, cfg.Tf, cfg.Process.Rate, step)
	if err != nil {
		return conv.Config{}, err
	}
	return conv.Config{X0: noise.NormalLaw(0, 1), F: linearRHS, Noise: p}, nil
}

func buildHawkesLinear(cfg *config.Config) (conv.Config, error) {
	jump := noise.ExponentialLaw(1 / math.Max(cfg.Process.JumpMu, 1e-12))
	p, err := noise.NewExponentialHawkes(cfg.T0, cfg.Tf, cfg.Process.Lambda0, cfg.Process.Base, cfg.Process.Delta, jump)
	if err != nil {
		return conv.Config{}, err
	}
	return conv.Config{X0: noise.NormalLaw(0, 1), F: linearRHS, Noise: p}, nil
}

func buildTransportLinear(cfg *config.Config) (conv.Config, error) {
	kernel := func(t, r float64) float64 { return math.Sin(r * t) }
	p, err := noise.NewTransport(cfg.T0, cfg.Tf, noise.NormalLaw(0, 1), kernel, cfg.Process.Velocities)
	if err != nil {
		return conv.Config{}, err
	}
	return conv.Config{X0: noise.NormalLaw(0, 1), F: linearRHS, Noise: p}, nil
}

func buildFBMLinear(cfg *config.Config) (conv.Config, error) {
	// The noise is only ever sampled on the fine mesh, so the embedding is
	// sized for the target resolution.
	p, err := noise.NewFractionalBM(cfg.T0, cfg.Tf, cfg.Process.Y0, cfg.Process.Hurst, cfg.Ntgt+1)
	if err != nil {
		return conv.Config{}, err
	}
	return conv.Config{X0: noise.NormalLaw(0, 1), F: linearRHS, Noise: p}, nil
}

func buildProductLinear(cfg *config.Config) (conv.Config, error) {
	w, err := noise.NewWiener(cfg.T0, cfg.Tf, cfg.Process.Y0)
	if err != nil {
		return conv.Config{}, err
	}
	ou, err := noise.NewOrnsteinUhlenbeck(cfg.T0, cfg.Tf, cfg.Process.Y0, cfg.Process.Nu, cfg.Process.Sigma)
	if err != nil {
		return conv.Config{}, err
	}
	cp, err := noise.NewCompoundPoisson(cfg.T0, cfg.Tf, cfg.Process.Y0, cfg.Process.Rate,
		noise.NormalLaw(cfg.Process.JumpMu, cfg.Process.JumpSigma))
	if err != nil {
		return conv.Config{}, err
	}
	prod, err := noise.NewProduct(cfg.T0, cfg.Tf, noise.Scalar(w), noise.Scalar(ou), noise.Scalar(cp))
	if err != nil {
		return conv.Config{}, err
	}
	return conv.Config{
		X0: noise.NormalLaw(0, 1),
		F: func(t, x float64, y []float64) float64 {
			return (y[0] + y[1] + y[2]) / 3 * x
		},
		NoiseVec: prod,
	}, nil
}
