// Package report renders convergence results for the terminal: a styled
// summary table, an ascii log-log plot, and CSV/JSON exports. It reads
// Result fields only and never mutates them.
package report

import (
	"fmt"
	"io"
	"math"
	"strings"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/rodeconv/internal/conv"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("86"))
	fitStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true)
	mutedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
)

// Table writes the per-resolution errors and the fitted power law.
func Table(w io.Writer, res *conv.Result) error {
	fmt.Fprintln(w, titleStyle.Render("strong convergence estimate"))
	fmt.Fprintln(w, mutedStyle.Render(fmt.Sprintf("%d samples", res.M)))
	fmt.Fprintln(w)

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "N\tDT\tSUP ERROR\tFITTED")
	for j, n := range res.Ns {
		fmt.Fprintf(tw, "%d\t%.6f\t%.6e\t%.6e\n",
			n, res.Deltas[j], res.Errors[j], res.Predict(res.Deltas[j]))
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, fitStyle.Render(fmt.Sprintf("p = %.4f ± %.4f  (log C = %.4f)", res.P, res.PDelta, res.LogC)))
	return nil
}

// Plot renders log10 of the sup errors across resolutions next to the
// fitted line; on a log-log scale both should be straight and parallel.
func Plot(res *conv.Result) string {
	observed := make([]float64, len(res.Errors))
	fitted := make([]float64, len(res.Errors))
	for j := range res.Errors {
		observed[j] = math.Log10(res.Errors[j])
		fitted[j] = math.Log10(res.Predict(res.Deltas[j]))
	}

	graph := asciigraph.PlotMany([][]float64{observed, fitted},
		asciigraph.Height(12),
		asciigraph.Width(60),
		asciigraph.Caption(fmt.Sprintf("log10 sup error vs resolution (fitted p = %.3f)", res.P)),
	)
	legend := mutedStyle.Render("series: observed, fitted; x axis follows Ns order")
	return graph + "\n" + legend
}

// PathPlot renders one sampled noise or solution path.
func PathPlot(path []float64, caption string) string {
	// asciigraph chokes on very long series; thin to a plottable width.
	const maxPoints = 240
	data := path
	if len(path) > maxPoints {
		stride := (len(path) + maxPoints - 1) / maxPoints
		data = make([]float64, 0, maxPoints)
		for i := 0; i < len(path); i += stride {
			data = append(data, path[i])
		}
	}
	return asciigraph.Plot(data,
		asciigraph.Height(14),
		asciigraph.Width(72),
		asciigraph.Caption(caption),
	)
}

// Summary is a one-line form for listings.
func Summary(res *conv.Result) string {
	ns := make([]string, len(res.Ns))
	for i, n := range res.Ns {
		ns[i] = fmt.Sprintf("%d", n)
	}
	return fmt.Sprintf("p=%.3f±%.3f over ns=[%s], m=%d", res.P, res.PDelta, strings.Join(ns, ","), res.M)
}
