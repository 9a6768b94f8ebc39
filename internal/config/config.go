// Package config loads and saves estimation configurations and ships the
// named presets the CLI exposes.
package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

const (
	DefaultNtgt = 4096
	DefaultM    = 200
	DefaultSeed = 42
	DefaultT0   = 0.0
	DefaultTf   = 1.0
)

type Config struct {
	Scenario string  `yaml:"scenario"`
	Target   string  `yaml:"target"`
	Method   string  `yaml:"method"`
	T0       float64 `yaml:"t0"`
	Tf       float64 `yaml:"tf"`
	Ntgt     int     `yaml:"ntgt"`
	Ns       []int   `yaml:"ns"`
	M        int     `yaml:"m"`
	Seed     uint64  `yaml:"seed"`
	Workers  int     `yaml:"workers"`

	Process ProcessConfig `yaml:"process"`
}

// ProcessConfig collects the tunable parameters of the noise catalogue;
// each scenario reads the fields it needs.
type ProcessConfig struct {
	Y0         float64 `yaml:"y0"`
	Nu         float64 `yaml:"nu"`      // OU mean reversion
	Sigma      float64 `yaml:"sigma"`   // OU/GBM volatility
	Mu         float64 `yaml:"mu"`      // GBM drift
	Rate       float64 `yaml:"rate"`    // Poisson event rate
	Lambda0    float64 `yaml:"lambda0"` // Hawkes initial intensity
	Base       float64 `yaml:"base"`    // Hawkes base rate
	Delta      float64 `yaml:"delta"`   // Hawkes decay
	Hurst      float64 `yaml:"hurst"`
	Velocities int     `yaml:"velocities"` // transport latent draws
	JumpMu     float64 `yaml:"jump_mu"`
	JumpSigma  float64 `yaml:"jump_sigma"`
}

func DefaultConfig() *Config {
	return &Config{
		Scenario: "wiener-linear",
		Target:   "euler",
		Method:   "euler",
		T0:       DefaultT0,
		Tf:       DefaultTf,
		Ntgt:     DefaultNtgt,
		Ns:       []int{16, 32, 64, 128},
		M:        DefaultM,
		Seed:     DefaultSeed,
		Workers:  1,
		Process: ProcessConfig{
			Y0:         0.0,
			Nu:         1.0,
			Sigma:      1.0,
			Mu:         1.0,
			Rate:       10.0,
			Lambda0:    2.0,
			Base:       1.0,
			Delta:      2.0,
			Hurst:      0.25,
			Velocities: 5,
			JumpMu:     0.0,
			JumpSigma:  1.0,
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
