package main

import (
	"fmt"
	"math/rand/v2"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"gonum.org/v1/gonum/mat"

	"github.com/san-kum/rodeconv/internal/config"
	"github.com/san-kum/rodeconv/internal/experiment"
	"github.com/san-kum/rodeconv/internal/report"
	"github.com/san-kum/rodeconv/internal/storage"
	"github.com/san-kum/rodeconv/internal/tui"
	"github.com/spf13/cobra"
)

var (
	dataDir string
	ntgt    int
	nsFlag  string
	samples int
	seed    uint64
	t0Flag  float64
	tfFlag  float64
	workers int
	target  string
	method  string
	noSave  bool
	// Config file and preset
	configFile string
	preset     string
	// Noise parameters
	y0         float64
	nu         float64
	sigma      float64
	mu         float64
	rate       float64
	lambda0    float64
	base       float64
	delta      float64
	hurst      float64
	velocities int
	jumpMu     float64
	jumpSigma  float64
	// Sample command
	steps   int
	outFile string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "rodeconv",
		Short: "strong convergence order estimation for random ODE schemes",
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".rodeconv", "data directory")

	estimateCmd := &cobra.Command{
		Use:   "estimate [scenario]",
		Short: "run a convergence estimation",
		Args:  cobra.ExactArgs(1),
		RunE:  runEstimate,
	}
	addConfigFlags(estimateCmd)
	estimateCmd.Flags().IntVar(&workers, "workers", 1, "parallel workers")
	estimateCmd.Flags().BoolVar(&noSave, "no-save", false, "do not persist the run")

	liveCmd := &cobra.Command{
		Use:   "live [scenario]",
		Short: "run a convergence estimation with a live terminal view",
		Args:  cobra.ExactArgs(1),
		RunE:  runLive,
	}
	addConfigFlags(liveCmd)

	sampleCmd := &cobra.Command{
		Use:   "sample [scenario]",
		Short: "draw and plot one noise path from a scenario",
		Args:  cobra.ExactArgs(1),
		RunE:  runSample,
	}
	addConfigFlags(sampleCmd)
	sampleCmd.Flags().IntVar(&steps, "steps", 512, "mesh steps for the path")
	sampleCmd.Flags().StringVar(&outFile, "out", "", "write the path to a CSV file")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list saved runs",
		RunE:  listRuns,
	}

	showCmd := &cobra.Command{
		Use:   "show [run_id]",
		Short: "show a saved run",
		Args:  cobra.ExactArgs(1),
		RunE:  showRun,
	}

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export a saved run's error table to CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRunCSV,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export a saved run to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRunJSON,
	}

	scenariosCmd := &cobra.Command{
		Use:   "scenarios",
		Short: "list available scenarios",
		RunE: func(cmd *cobra.Command, args []string) error {
			reg := experiment.NewRegistry()
			for _, s := range reg.ListScenarios() {
				fmt.Println(s)
			}
			return nil
		},
	}

	presetsCmd := &cobra.Command{
		Use:   "presets [scenario]",
		Short: "list available presets for a scenario",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			presets := config.ListPresets(args[0])
			if len(presets) == 0 {
				fmt.Printf("no presets for scenario: %s\n", args[0])
				return nil
			}
			fmt.Printf("presets for %s:\n", args[0])
			for _, p := range presets {
				fmt.Printf("  %s\n", p)
			}
			return nil
		},
	}

	rootCmd.AddCommand(estimateCmd, liveCmd, sampleCmd, listCmd, showCmd,
		exportCSVCmd, exportJSONCmd, scenariosCmd, presetsCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addConfigFlags(cmd *cobra.Command) {
	cmd.Flags().IntVar(&ntgt, "ntgt", config.DefaultNtgt, "fine-mesh steps for the target solve")
	cmd.Flags().StringVar(&nsFlag, "ns", "16,32,64,128", "coarse mesh steps, comma separated")
	cmd.Flags().IntVar(&samples, "m", config.DefaultM, "monte carlo samples")
	cmd.Flags().Uint64Var(&seed, "seed", config.DefaultSeed, "random seed")
	cmd.Flags().Float64Var(&t0Flag, "t0", config.DefaultT0, "initial time")
	cmd.Flags().Float64Var(&tfFlag, "tf", config.DefaultTf, "final time")
	cmd.Flags().StringVar(&target, "target", "euler", "target scheme for the fine mesh")
	cmd.Flags().StringVar(&method, "method", "euler", "scheme under test")
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	cmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")

	cmd.Flags().Float64Var(&y0, "y0", 0.0, "noise initial value")
	cmd.Flags().Float64Var(&nu, "nu", 1.0, "ou mean reversion")
	cmd.Flags().Float64Var(&sigma, "sigma", 1.0, "ou/gbm volatility")
	cmd.Flags().Float64Var(&mu, "mu", 1.0, "gbm drift")
	cmd.Flags().Float64Var(&rate, "rate", 1.0, "poisson event rate")
	cmd.Flags().Float64Var(&lambda0, "lambda0", 1.0, "hawkes initial intensity")
	cmd.Flags().Float64Var(&base, "base", 1.0, "hawkes base rate")
	cmd.Flags().Float64Var(&delta, "delta", 2.0, "hawkes decay")
	cmd.Flags().Float64Var(&hurst, "hurst", 0.5, "fbm hurst parameter")
	cmd.Flags().IntVar(&velocities, "velocities", 1, "transport latent draws")
	cmd.Flags().Float64Var(&jumpMu, "jump-mu", 1.0, "jump mean")
	cmd.Flags().Float64Var(&jumpSigma, "jump-sigma", 1.0, "jump stddev")
}

func parseNs(s string) ([]int, error) {
	parts := strings.Split(s, ",")
	ns := make([]int, 0, len(parts))
	for _, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return nil, fmt.Errorf("invalid mesh size %q: %w", p, err)
		}
		ns = append(ns, n)
	}
	return ns, nil
}

// buildConfig assembles the effective configuration with the precedence
// defaults < preset < config file < explicitly set flags.
func buildConfig(cmd *cobra.Command, scenario string) (*config.Config, error) {
	cfg := config.DefaultConfig()
	cfg.Scenario = scenario

	if preset != "" {
		p := config.GetPreset(scenario, preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets(scenario))
		}
		// Copy, so flag overlays below never write into the preset table.
		c := *p
		cfg = &c
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		loaded.Scenario = scenario
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("ntgt") || cfg.Ntgt == 0 {
		cfg.Ntgt = ntgt
	}
	if flags.Changed("ns") || len(cfg.Ns) == 0 {
		ns, err := parseNs(nsFlag)
		if err != nil {
			return nil, err
		}
		cfg.Ns = ns
	}
	if flags.Changed("m") || cfg.M == 0 {
		cfg.M = samples
	}
	if flags.Changed("seed") || cfg.Seed == 0 {
		cfg.Seed = seed
	}
	if flags.Changed("t0") {
		cfg.T0 = t0Flag
	}
	if flags.Changed("tf") || cfg.Tf == 0 {
		cfg.Tf = tfFlag
	}
	if flags.Changed("target") || cfg.Target == "" {
		cfg.Target = target
	}
	if flags.Changed("method") || cfg.Method == "" {
		cfg.Method = method
	}
	if flags.Changed("workers") {
		cfg.Workers = workers
	}

	if flags.Changed("y0") {
		cfg.Process.Y0 = y0
	}
	if flags.Changed("nu") {
		cfg.Process.Nu = nu
	}
	if flags.Changed("sigma") {
		cfg.Process.Sigma = sigma
	}
	if flags.Changed("mu") {
		cfg.Process.Mu = mu
	}
	if flags.Changed("rate") {
		cfg.Process.Rate = rate
	}
	if flags.Changed("lambda0") {
		cfg.Process.Lambda0 = lambda0
	}
	if flags.Changed("base") {
		cfg.Process.Base = base
	}
	if flags.Changed("delta") {
		cfg.Process.Delta = delta
	}
	if flags.Changed("hurst") {
		cfg.Process.Hurst = hurst
	}
	if flags.Changed("velocities") {
		cfg.Process.Velocities = velocities
	}
	if flags.Changed("jump-mu") {
		cfg.Process.JumpMu = jumpMu
	}
	if flags.Changed("jump-sigma") {
		cfg.Process.JumpSigma = jumpSigma
	}

	return cfg, nil
}

func runEstimate(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd, args[0])
	if err != nil {
		return err
	}

	reg := experiment.NewRegistry()
	exp, err := experiment.New(cfg, reg)
	if err != nil {
		return err
	}

	fmt.Println(exp.Describe())
	res, err := exp.Run()
	if err != nil {
		return err
	}

	if err := report.Table(os.Stdout, res); err != nil {
		return err
	}
	fmt.Println(report.Plot(res))

	if !noSave {
		st := storage.New(dataDir)
		if err := st.Init(); err != nil {
			return err
		}
		runID, err := st.Save(cfg.Scenario, cfg.Target, cfg.Method, cfg.Seed, cfg.Ntgt, res)
		if err != nil {
			return err
		}
		fmt.Printf("saved run: %s\n", runID)
	}
	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd, args[0])
	if err != nil {
		return err
	}

	reg := experiment.NewRegistry()
	exp, err := experiment.New(cfg, reg)
	if err != nil {
		return err
	}

	res, err := tui.Run(exp, cfg.Scenario, cfg.Ns)
	if err != nil {
		return err
	}
	if res == nil {
		return nil
	}

	if err := report.Table(os.Stdout, res); err != nil {
		return err
	}
	fmt.Println(report.Plot(res))
	return nil
}

func runSample(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd, args[0])
	if err != nil {
		return err
	}
	// The fine mesh sizes the path buffer for scenarios with a fixed
	// resolution, fbm in particular.
	cfg.Ntgt = steps
	cfg.Ns = []int{steps}

	reg := experiment.NewRegistry()
	cc, err := reg.Build(cfg)
	if err != nil {
		return err
	}

	rng := rand.New(rand.NewPCG(cfg.Seed, 0))
	var path []float64
	if cc.Noise != nil {
		path = make([]float64, steps+1)
		cc.Noise.Sample(rng, path)
	} else {
		d := mat.NewDense(steps+1, cc.NoiseVec.Dim(), nil)
		cc.NoiseVec.Sample(rng, d)
		path = mat.Col(nil, 0, d)
		fmt.Printf("vector process with %d components, plotting component 0\n", cc.NoiseVec.Dim())
	}

	fmt.Println(report.PathPlot(path, fmt.Sprintf("%s, one path on %d steps, seed %d", cfg.Scenario, steps, cfg.Seed)))

	if outFile != "" {
		f, err := os.Create(outFile)
		if err != nil {
			return err
		}
		defer f.Close()
		dt := (cfg.Tf - cfg.T0) / float64(steps)
		fmt.Fprintln(f, "t,y")
		for i, v := range path {
			fmt.Fprintf(f, "%g,%g\n", cfg.T0+float64(i)*dt, v)
		}
		fmt.Printf("wrote %s\n", outFile)
	}
	return nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSCENARIO\tMETHOD\tM\tP\tTIME")
	for _, r := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%.4f\t%s\n",
			r.ID, r.Scenario, r.Method, r.M, r.P, r.Timestamp.Format("2006-01-02 15:04:05"))
	}
	return w.Flush()
}

func showRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}

	res := meta.Result()
	fmt.Printf("run %s: %s, target=%s method=%s seed=%d ntgt=%d\n",
		meta.ID, meta.Scenario, meta.Target, meta.Method, meta.Seed, meta.Ntgt)
	if err := report.Table(os.Stdout, res); err != nil {
		return err
	}
	fmt.Println(report.Plot(res))
	return nil
}

func loadResult(runID string) (*storage.RunMetadata, error) {
	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return nil, err
	}
	rows, err := st.LoadErrors(runID)
	if err != nil {
		return nil, err
	}
	if len(rows) > 0 {
		d := mat.NewDense(len(rows), len(rows[0]), nil)
		for i, row := range rows {
			d.SetRow(i, row)
		}
		meta.TrajErrors = d
	}
	return meta, nil
}

func exportRunCSV(cmd *cobra.Command, args []string) error {
	meta, err := loadResult(args[0])
	if err != nil {
		return err
	}
	return report.ExportCSV(os.Stdout, meta.Result())
}

func exportRunJSON(cmd *cobra.Command, args []string) error {
	meta, err := loadResult(args[0])
	if err != nil {
		return err
	}
	return report.ExportJSON(os.Stdout, meta.Result())
}
