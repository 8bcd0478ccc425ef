package main

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/cwbudde/algo-nrl/combine"
	"github.com/cwbudde/algo-nrl/internal/config"
	"github.com/cwbudde/algo-nrl/internal/textwrap"
	"github.com/cwbudde/algo-nrl/resolver"
	"github.com/cwbudde/algo-nrl/response"
	"github.com/cwbudde/algo-nrl/session"
)

type finalizedMsg struct{ res *combine.Result }

type errMsg struct{ error }

// app is the bubbletea model around one session.
type app struct {
	ctx   context.Context
	sess  *session.Session
	curve config.CurveConfig

	choices []resolver.Choice
	cursor  int
	status  string
	busy    bool
	result  *combine.Result
}

func newApp(ctx context.Context, sess *session.Session, curve config.CurveConfig) *app {
	a := &app{ctx: ctx, sess: sess, curve: curve}
	a.refresh()

	return a
}

func (a *app) refresh() {
	a.choices, _ = a.sess.Options()
	a.cursor = 0
}

func (a *app) Init() tea.Cmd { return nil }

func (a *app) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch m := msg.(type) {
	case tea.KeyMsg:
		return a.handleKey(m)
	case finalizedMsg:
		a.busy = false
		a.result = m.res
		a.status = fmt.Sprintf("combined %d stages", len(m.res.Response.Stages))
	case errMsg:
		a.busy = false
		a.status = "error: " + m.Error()
	}

	return a, nil
}

func (a *app) handleKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.String() {
	case "q", "ctrl+c":
		return a, tea.Quit
	case "up", "k":
		if a.cursor > 0 {
			a.cursor--
		}
	case "down", "j":
		if a.cursor < len(a.choices)-1 {
			a.cursor++
		}
	case "backspace", "left", "h", "esc":
		if a.busy {
			return a, nil
		}

		err := a.sess.Retreat()
		if err != nil {
			a.status = err.Error()
			return a, nil
		}

		a.result = nil
		a.status = ""
		a.refresh()
	case "enter", "right", "l":
		if a.busy {
			return a, nil
		}

		if a.sess.Phase() == session.PhaseSummary {
			a.busy = true
			a.status = "combining..."

			return a, a.finalizeCmd()
		}

		if len(a.choices) == 0 {
			return a, nil
		}

		err := a.sess.Choose(a.choices[a.cursor].Key)
		if err == nil {
			err = a.sess.Advance()
		}

		if err != nil {
			a.status = "error: " + err.Error()
			return a, nil
		}

		a.status = ""
		a.refresh()
	}

	return a, nil
}

func (a *app) finalizeCmd() tea.Cmd {
	return func() tea.Msg {
		res, err := a.sess.Finalize(a.ctx)
		if err != nil {
			return errMsg{err}
		}

		return finalizedMsg{res}
	}
}

// styles
var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Underline(true)
	promptStyle = lipgloss.NewStyle().Bold(true)
	cursorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true)
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	warnStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
)

func (a *app) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("NRL response wizard - " + a.sess.Phase().String()))
	b.WriteString("\n\n")

	if r := a.sess.Active(); r != nil {
		if keys := r.SelectedKeys(); len(keys) > 0 {
			b.WriteString(dimStyle.Render(strings.Join(keys, " > ")))
			b.WriteString("\n")
		}

		b.WriteString(promptStyle.Render(r.Prompt()))
		b.WriteString("\n")
		a.renderChoices(&b)
	} else {
		a.renderSummary(&b)
	}

	if a.status != "" {
		b.WriteString("\n" + a.status + "\n")
	}

	b.WriteString(dimStyle.Render("\n[enter] select  [backspace] back  [q] quit"))

	return b.String()
}

func (a *app) renderChoices(b *strings.Builder) {
	for i, c := range a.choices {
		lines := textwrap.Lines(c.Text, textwrap.DefaultWidth)

		marker := "  "
		if i == a.cursor {
			marker = cursorStyle.Render("> ")
		}

		b.WriteString(marker + lines[0] + "\n")

		for _, l := range lines[1:] {
			b.WriteString("    " + l + "\n")
		}
	}
}

func (a *app) renderSummary(b *strings.Builder) {
	sum, err := a.sess.Summary()
	if err != nil {
		b.WriteString(err.Error() + "\n")
		return
	}

	for _, sel := range []session.Selection{sum.Sensor, sum.Datalogger} {
		fmt.Fprintf(b, "%s: %s\n", promptStyle.Render(string(sel.Role)), strings.Join(sel.Keys, " > "))
		fmt.Fprintf(b, "  %s\n", textwrap.Wrap(sel.Description, textwrap.DefaultWidth))
	}

	if a.result == nil {
		b.WriteString(dimStyle.Render("\n[enter] combine the response\n"))
		return
	}

	b.WriteString("\n" + a.renderResult() + "\n")
}

func (a *app) renderResult() string {
	var b strings.Builder

	r := a.result.Response
	for i, s := range r.Stages {
		fmt.Fprintf(&b, "%2d  %-13s %-24s %s -> %s  gain %g\n", i+1, s.Type, s.Name, s.Input.Name, s.Output.Name, s.Gain)
	}

	sens := r.Sensitivity
	fmt.Fprintf(&b, "Sensitivity: %g %s/%s at %g Hz\n", sens.Value, sens.OutputUnits.Name, sens.InputUnits.Name, sens.Frequency)

	grid, err := response.ApplyCurveOptions(
		response.WithFrequencyRange(a.curve.MinFrequency, a.curve.MaxFrequency),
		response.WithPoints(a.curve.Points),
	).Grid()
	if err == nil {
		if data, err := response.Curve(r.Stages, grid); err == nil {
			lo, hi := data.Amplitude[0], data.Amplitude[len(data.Amplitude)-1]
			fmt.Fprintf(&b, "Amplitude: %.4g at %g Hz, %.4g at %g Hz\n", lo, grid[0], hi, grid[len(grid)-1])
		}
	}

	for _, w := range a.result.Warnings {
		b.WriteString(warnStyle.Render("warning: "+w.Error()) + "\n")
	}

	return strings.TrimRight(b.String(), "\n")
}
