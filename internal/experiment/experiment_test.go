package experiment

import (
	"math"
	"strings"
	"testing"

	"github.com/san-kum/rodeconv/internal/config"
	"github.com/san-kum/rodeconv/internal/conv"
)

// quickConfig shrinks a scenario to test-friendly sizes.
func quickConfig(scenario string) *config.Config {
	cfg := config.DefaultConfig()
	cfg.Scenario = scenario
	cfg.Ntgt = 256
	cfg.Ns = []int{8, 16, 32}
	cfg.M = 5
	return cfg
}

func TestBuildAllScenarios(t *testing.T) {
	reg := NewRegistry()
	for _, scenario := range reg.ListScenarios() {
		cfg := quickConfig(scenario)
		if scenario == "wiener-linear-exact" {
			cfg.Target = "exact"
		}

		cc, err := reg.Build(cfg)
		if err != nil {
			t.Errorf("%s: build failed: %v", scenario, err)
			continue
		}
		if cc.Target == nil || cc.Method == nil {
			t.Errorf("%s: solvers not resolved", scenario)
		}
		if (cc.Noise == nil) == (cc.NoiseVec == nil) {
			t.Errorf("%s: expected exactly one noise process", scenario)
		}
		if _, err := conv.New(cc); err != nil {
			t.Errorf("%s: built config rejected by suite: %v", scenario, err)
		}
	}
}

func TestBuildUnknownScenario(t *testing.T) {
	reg := NewRegistry()
	if _, err := reg.Build(quickConfig("nope")); err == nil {
		t.Error("expected error for unknown scenario")
	}
}

func TestBuildUnknownMethod(t *testing.T) {
	reg := NewRegistry()
	cfg := quickConfig("wiener-linear")
	cfg.Method = "rk9"
	if _, err := reg.Build(cfg); err == nil {
		t.Error("expected error for unknown method")
	}

	cfg = quickConfig("wiener-linear")
	cfg.Target = "rk9"
	if _, err := reg.Build(cfg); err == nil {
		t.Error("expected error for unknown target")
	}
}

func TestExactScenarioRequiresExactTarget(t *testing.T) {
	reg := NewRegistry()
	cfg := quickConfig("wiener-linear-exact")
	// default target name left in place
	if _, err := reg.Build(cfg); err == nil {
		t.Error("expected error when the exact scenario is paired with a named target")
	}
}

func TestListScenariosSorted(t *testing.T) {
	reg := NewRegistry()
	names := reg.ListScenarios()
	if len(names) != 11 {
		t.Fatalf("expected 11 scenarios, got %d: %v", len(names), names)
	}
	for i := 1; i < len(names); i++ {
		if names[i] < names[i-1] {
			t.Fatalf("scenario list not sorted: %v", names)
		}
	}
}

func TestRunWienerLinear(t *testing.T) {
	if testing.Short() {
		t.Skip("monte carlo estimation")
	}

	cfg := quickConfig("wiener-linear")
	cfg.Ntgt = 1024
	cfg.Ns = []int{16, 32, 64, 128}
	cfg.M = 150

	exp, err := New(cfg, NewRegistry())
	if err != nil {
		t.Fatalf("new experiment: %v", err)
	}
	res, err := exp.Run()
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if math.Abs(res.P-1) > 0.25 {
		t.Errorf("expected strong order ~1, got %.4f", res.P)
	}
}

func TestRunExactTargetSharpensEstimate(t *testing.T) {
	if testing.Short() {
		t.Skip("monte carlo estimation")
	}

	cfg := quickConfig("wiener-linear-exact")
	cfg.Target = "exact"
	cfg.Ntgt = 1024
	cfg.Ns = []int{16, 32, 64, 128}
	cfg.M = 150

	exp, err := New(cfg, NewRegistry())
	if err != nil {
		t.Fatalf("new experiment: %v", err)
	}
	res, err := exp.Run()
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if math.Abs(res.P-1) > 0.25 {
		t.Errorf("expected strong order ~1 against the exact solution, got %.4f", res.P)
	}
}

func TestRunParallelMatchesSampleCount(t *testing.T) {
	cfg := quickConfig("ou-linear")
	cfg.M = 30
	cfg.Workers = 3

	exp, err := New(cfg, NewRegistry())
	if err != nil {
		t.Fatalf("new experiment: %v", err)
	}
	res, err := exp.Run()
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if res.M != 30 {
		t.Errorf("expected 30 samples, got %d", res.M)
	}
}

func TestRunWithProgressStops(t *testing.T) {
	cfg := quickConfig("wiener-linear")
	cfg.M = 50

	exp, err := New(cfg, NewRegistry())
	if err != nil {
		t.Fatalf("new experiment: %v", err)
	}
	res, err := exp.RunWithProgress(func(pr conv.Progress) bool {
		return pr.Sample < 5
	})
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if res.M != 5 {
		t.Errorf("expected early stop after 5 samples, got %d", res.M)
	}
}

func TestDescribe(t *testing.T) {
	cfg := quickConfig("gbm-linear")
	exp, err := New(cfg, NewRegistry())
	if err != nil {
		t.Fatalf("new experiment: %v", err)
	}
	desc := exp.Describe()
	for _, want := range []string{"gbm-linear", "ntgt=256", "m=5"} {
		if !strings.Contains(desc, want) {
			t.Errorf("describe missing %q: %s", want, desc)
		}
	}
}
