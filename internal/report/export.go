package report

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/san-kum/rodeconv/internal/conv"
)

// ExportCSV writes the trajectory-error table, one column per resolution,
// rows padded with zeros beyond a resolution's own length.
func ExportCSV(w io.Writer, res *conv.Result) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	header := []string{"index"}
	for _, n := range res.Ns {
		header = append(header, fmt.Sprintf("n%d", n))
	}
	if err := cw.Write(header); err != nil {
		return err
	}

	if res.TrajErrors == nil {
		return nil
	}
	rows, cols := res.TrajErrors.Dims()
	for i := 0; i < rows; i++ {
		row := []string{strconv.Itoa(i)}
		for j := 0; j < cols; j++ {
			row = append(row, strconv.FormatFloat(res.TrajErrors.At(i, j), 'e', 8, 64))
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	return nil
}

type jsonResult struct {
	Ns     []int     `json:"ns"`
	Deltas []float64 `json:"deltas"`
	Errors []float64 `json:"errors"`
	M      int       `json:"m"`
	LogC   float64   `json:"log_c"`
	P      float64   `json:"p"`
	PDelta float64   `json:"p_delta"`
}

// ExportJSON writes the fit summary and per-resolution errors.
func ExportJSON(w io.Writer, res *conv.Result) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(jsonResult{
		Ns:     res.Ns,
		Deltas: res.Deltas,
		Errors: res.Errors,
		M:      res.M,
		LogC:   res.LogC,
		P:      res.P,
		PDelta: res.PDelta,
	})
}
