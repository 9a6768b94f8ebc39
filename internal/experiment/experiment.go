package experiment

import (
	"fmt"
	"math/rand/v2"

	"github.com/san-kum/rodeconv/internal/config"
	"github.com/san-kum/rodeconv/internal/conv"
)

type Experiment struct {
	cfg *config.Config
	cc  conv.Config
}

func New(cfg *config.Config, reg *Registry) (*Experiment, error) {
	cc, err := reg.Build(cfg)
	if err != nil {
		return nil, err
	}
	return &Experiment{cfg: cfg, cc: cc}, nil
}

// Run executes the estimation: a single suite for one worker, a parallel
// ensemble otherwise. In both cases results are fully determined by the
// configured seed.
func (e *Experiment) Run() (*conv.Result, error) {
	if e.cfg.Workers > 1 {
		ens, err := conv.NewEnsemble(e.cc, e.cfg.Workers, e.cfg.Seed)
		if err != nil {
			return nil, err
		}
		return ens.Solve()
	}
	return e.RunWithProgress(nil)
}

func (e *Experiment) RunWithProgress(progress conv.ProgressFunc) (*conv.Result, error) {
	suite, err := conv.New(e.cc)
	if err != nil {
		return nil, err
	}
	rng := rand.New(rand.NewPCG(e.cfg.Seed, 0))
	return suite.SolveWithProgress(rng, progress)
}

func (e *Experiment) Describe() string {
	return fmt.Sprintf("%s: ntgt=%d ns=%v m=%d seed=%d target=%s method=%s",
		e.cfg.Scenario, e.cfg.Ntgt, e.cfg.Ns, e.cfg.M, e.cfg.Seed, e.cfg.Target, e.cfg.Method)
}
