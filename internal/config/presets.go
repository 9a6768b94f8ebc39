package config

var Presets = map[string]map[string]*Config{
	"wiener-linear": {
		"quick": {
			Scenario: "wiener-linear", Target: "euler", Method: "euler",
			T0: 0, Tf: 1, Ntgt: 1 << 10, Ns: []int{16, 32, 64}, M: 100, Seed: DefaultSeed,
		},
		"paper": {
			Scenario: "wiener-linear", Target: "euler", Method: "euler",
			T0: 0, Tf: 1, Ntgt: 1 << 12, Ns: []int{16, 32, 64}, M: 500, Seed: DefaultSeed,
		},
		"heun": {
			Scenario: "wiener-linear", Target: "heun", Method: "heun",
			T0: 0, Tf: 1, Ntgt: 1 << 12, Ns: []int{16, 32, 64, 128}, M: 500, Seed: DefaultSeed,
		},
	},
	"wiener-linear-2d": {
		"paper": {
			Scenario: "wiener-linear-2d", Target: "euler", Method: "euler",
			T0: 0, Tf: 1, Ntgt: 1 << 12, Ns: []int{16, 32, 64}, M: 500, Seed: DefaultSeed,
		},
	},
	"wiener-linear-exact": {
		"default": {
			Scenario: "wiener-linear-exact", Target: "exact", Method: "euler",
			T0: 0, Tf: 1, Ntgt: 1 << 12, Ns: []int{32, 64, 128, 256}, M: 300, Seed: DefaultSeed,
		},
	},
	"ou-linear": {
		"default": {
			Scenario: "ou-linear", Target: "euler", Method: "euler",
			T0: 0, Tf: 1, Ntgt: 1 << 12, Ns: []int{16, 32, 64, 128}, M: 300, Seed: DefaultSeed,
			Process: ProcessConfig{Nu: 1.0, Sigma: 1.0},
		},
	},
	"gbm-linear": {
		"default": {
			Scenario: "gbm-linear", Target: "euler", Method: "euler",
			T0: 0, Tf: 1, Ntgt: 1 << 12, Ns: []int{16, 32, 64, 128}, M: 300, Seed: DefaultSeed,
			Process: ProcessConfig{Y0: 1.0, Mu: 1.0, Sigma: 0.5},
		},
	},
	"cpoisson-linear": {
		"default": {
			Scenario: "cpoisson-linear", Target: "euler", Method: "euler",
			T0: 0, Tf: 1, Ntgt: 1 << 12, Ns: []int{16, 32, 64, 128}, M: 300, Seed: DefaultSeed,
			Process: ProcessConfig{Rate: 10.0, JumpMu: 0.0, JumpSigma: 1.0},
		},
	},
	"pstep-linear": {
		"default": {
			Scenario: "pstep-linear", Target: "euler", Method: "euler",
			T0: 0, Tf: 1, Ntgt: 1 << 12, Ns: []int{16, 32, 64, 128}, M: 300, Seed: DefaultSeed,
			Process: ProcessConfig{Rate: 10.0, JumpMu: 0.0, JumpSigma: 1.0},
		},
	},
	"hawkes-linear": {
		"default": {
			Scenario: "hawkes-linear", Target: "euler", Method: "euler",
			T0: 0, Tf: 1, Ntgt: 1 << 12, Ns: []int{16, 32, 64, 128}, M: 300, Seed: DefaultSeed,
			Process: ProcessConfig{Lambda0: 2.0, Base: 1.0, Delta: 2.0, JumpMu: 0.5, JumpSigma: 0.25},
		},
	},
	"transport-linear": {
		"default": {
			Scenario: "transport-linear", Target: "euler", Method: "euler",
			T0: 0, Tf: 1, Ntgt: 1 << 12, Ns: []int{16, 32, 64, 128}, M: 300, Seed: DefaultSeed,
			Process: ProcessConfig{Velocities: 5},
		},
	},
	"fbm-linear": {
		"rough": {
			Scenario: "fbm-linear", Target: "euler", Method: "euler",
			T0: 0, Tf: 1, Ntgt: 1 << 12, Ns: []int{16, 32, 64, 128}, M: 300, Seed: DefaultSeed,
			Process: ProcessConfig{Hurst: 0.25},
		},
		"smooth": {
			Scenario: "fbm-linear", Target: "euler", Method: "euler",
			T0: 0, Tf: 1, Ntgt: 1 << 12, Ns: []int{16, 32, 64, 128}, M: 300, Seed: DefaultSeed,
			Process: ProcessConfig{Hurst: 0.75},
		},
	},
	"product-linear": {
		"default": {
			Scenario: "product-linear", Target: "euler", Method: "euler",
			T0: 0, Tf: 1, Ntgt: 1 << 12, Ns: []int{16, 32, 64, 128}, M: 300, Seed: DefaultSeed,
			Process: ProcessConfig{Nu: 1.0, Sigma: 1.0, Rate: 10.0, JumpMu: 0.0, JumpSigma: 1.0},
		},
	},
}

func GetPreset(scenario, preset string) *Config {
	scenarioPresets, ok := Presets[scenario]
	if !ok {
		return nil
	}
	cfg, ok := scenarioPresets[preset]
	if !ok {
		return nil
	}
	return cfg
}

func ListPresets(scenario string) []string {
	scenarioPresets, ok := Presets[scenario]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(scenarioPresets))
	for name := range scenarioPresets {
		names = append(names, name)
	}
	return names
}
