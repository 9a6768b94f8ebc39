package main

import (
	"testing"

	"github.com/spf13/cobra"

	"github.com/san-kum/rodeconv/internal/config"
)

func TestBuildConfigDoesNotMutatePresets(t *testing.T) {
	cmd := &cobra.Command{}
	addConfigFlags(cmd)

	preset = "quick"
	defer func() { preset = "" }()
	if err := cmd.Flags().Set("m", "7"); err != nil {
		t.Fatalf("set flag: %v", err)
	}

	cfg, err := buildConfig(cmd, "wiener-linear")
	if err != nil {
		t.Fatalf("build config: %v", err)
	}
	if cfg.M != 7 {
		t.Errorf("expected flag overlay to win, got M=%d", cfg.M)
	}
	if got := config.GetPreset("wiener-linear", "quick").M; got != 100 {
		t.Errorf("preset table mutated: quick.M = %d, want 100", got)
	}
}
