// Package tui shows a running convergence estimation live: sample count,
// per-resolution sup errors, and the evolving order fit.
package tui

import (
	"fmt"
	"math"
	"strings"
	"sync/atomic"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/rodeconv/internal/conv"
	"github.com/san-kum/rodeconv/internal/experiment"
)

const historyCapacity = 400

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("86"))
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(14)
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	fitStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	barStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("49"))
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(1)
)

type progressMsg struct {
	sample int
	total  int
	errs   []float64
	p      float64
}

type doneMsg struct {
	res *conv.Result
	err error
}

type Model struct {
	scenario string
	ns       []int

	sample   int
	total    int
	errs     []float64
	p        float64
	pHistory []float64

	res  *conv.Result
	err  error
	done bool

	stop *atomic.Bool
}

func newModel(scenario string, ns []int, stop *atomic.Bool) Model {
	return Model{
		scenario: scenario,
		ns:       ns,
		pHistory: make([]float64, 0, historyCapacity),
		stop:     stop,
	}
}

func (m Model) Init() tea.Cmd { return nil }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			m.stop.Store(true)
			return m, nil
		}
	case progressMsg:
		m.sample = msg.sample
		m.total = msg.total
		m.errs = msg.errs
		m.p = msg.p
		if !math.IsNaN(msg.p) && !math.IsInf(msg.p, 0) {
			if len(m.pHistory) == historyCapacity {
				m.pHistory = m.pHistory[1:]
			}
			m.pHistory = append(m.pHistory, msg.p)
		}
		return m, nil
	case doneMsg:
		m.res = msg.res
		m.err = msg.err
		m.done = true
		return m, tea.Quit
	}
	return m, nil
}

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(headerStyle.Render(fmt.Sprintf("estimating strong order: %s", m.scenario)))
	b.WriteString("\n\n")

	b.WriteString(labelStyle.Render("samples"))
	b.WriteString(valueStyle.Render(fmt.Sprintf("%d / %d  ", m.sample, m.total)))
	b.WriteString(barStyle.Render(progressBar(m.sample, m.total, 40)))
	b.WriteString("\n\n")

	for j, n := range m.ns {
		b.WriteString(labelStyle.Render(fmt.Sprintf("n=%d", n)))
		if j < len(m.errs) {
			b.WriteString(valueStyle.Render(fmt.Sprintf("%.6e", m.errs[j])))
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")

	b.WriteString(fitStyle.Render(fmt.Sprintf("running p = %.4f", m.p)))
	b.WriteString("\n")

	if len(m.pHistory) >= 2 {
		b.WriteString(asciigraph.Plot(m.pHistory,
			asciigraph.Height(8),
			asciigraph.Width(60),
			asciigraph.Caption("fitted order as samples accumulate"),
		))
		b.WriteString("\n")
	}

	b.WriteString(helpStyle.Render("q: stop and keep accumulated samples"))
	b.WriteString("\n")
	return b.String()
}

func progressBar(done, total, width int) string {
	if total <= 0 {
		return strings.Repeat("░", width)
	}
	filled := done * width / total
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}

// Run drives an experiment under the live view and returns its result.
// Quitting the view stops the Monte Carlo loop after the current sample;
// the partial result is still returned.
func Run(exp *experiment.Experiment, scenario string, ns []int) (*conv.Result, error) {
	var stop atomic.Bool
	p := tea.NewProgram(newModel(scenario, ns, &stop))

	go func() {
		res, err := exp.RunWithProgress(func(pr conv.Progress) bool {
			p.Send(progressMsg{
				sample: pr.Sample,
				total:  pr.Total,
				errs:   append([]float64(nil), pr.Errors...),
				p:      pr.P,
			})
			return !stop.Load()
		})
		p.Send(doneMsg{res: res, err: err})
	}()

	final, err := p.Run()
	if err != nil {
		return nil, err
	}
	m := final.(Model)
	return m.res, m.err
}
