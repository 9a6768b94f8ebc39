// Package storage persists convergence runs under a data directory, one
// directory per run holding metadata.json and errors.csv, so results can be
// listed, re-plotted, and exported later.
package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gonum.org/v1/gonum/mat"

	"github.com/san-kum/rodeconv/internal/conv"
	"github.com/san-kum/rodeconv/internal/report"
)

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID        string    `json:"id"`
	Scenario  string    `json:"scenario"`
	Timestamp time.Time `json:"timestamp"`
	Seed      uint64    `json:"seed"`
	Ntgt      int       `json:"ntgt"`
	Ns        []int     `json:"ns"`
	M         int       `json:"m"`
	Target    string    `json:"target"`
	Method    string    `json:"method"`
	Deltas    []float64 `json:"deltas"`
	Errors    []float64 `json:"errors"`
	LogC      float64   `json:"log_c"`
	P         float64   `json:"p"`
	PDelta    float64   `json:"p_delta"`

	// TrajErrors is populated from errors.csv on demand, never from
	// metadata.json.
	TrajErrors *mat.Dense `json:"-"`
}

// Result rebuilds a reportable result from saved metadata.
func (m *RunMetadata) Result() *conv.Result {
	return &conv.Result{
		Deltas:     m.Deltas,
		Ns:         m.Ns,
		M:          m.M,
		TrajErrors: m.TrajErrors,
		Errors:     m.Errors,
		LogC:       m.LogC,
		P:          m.P,
		PDelta:     m.PDelta,
	}
}

func (s *Store) Save(scenario, target, method string, seed uint64, ntgt int, res *conv.Result) (string, error) {
	runID := fmt.Sprintf("%s_%d", scenario, time.Now().Unix())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:        runID,
		Scenario:  scenario,
		Timestamp: time.Now(),
		Seed:      seed,
		Ntgt:      ntgt,
		Ns:        res.Ns,
		M:         res.M,
		Target:    target,
		Method:    method,
		Deltas:    res.Deltas,
		Errors:    res.Errors,
		LogC:      res.LogC,
		P:         res.P,
		PDelta:    res.PDelta,
	}

	metaFile, err := os.Create(filepath.Join(runDir, "metadata.json"))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	csvFile, err := os.Create(filepath.Join(runDir, "errors.csv"))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	if err := report.ExportCSV(csvFile, res); err != nil {
		return "", err
	}
	return runID, nil
}

func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		runs = append(runs, *meta)
	}
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, "metadata.json"))
	if err != nil {
		return nil, err
	}
	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

// LoadErrors reads back the trajectory-error table: one inner slice per
// time index, one value per resolution.
func (s *Store) LoadErrors(runID string) ([][]float64, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, "errors.csv"))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) < 2 {
		return [][]float64{}, nil
	}

	out := make([][]float64, 0, len(records)-1)
	for _, rec := range records[1:] {
		row := make([]float64, 0, len(rec)-1)
		for _, field := range rec[1:] {
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, fmt.Errorf("storage: bad value %q in %s: %w", field, runID, err)
			}
			row = append(row, v)
		}
		out = append(out, row)
	}
	return out, nil
}
