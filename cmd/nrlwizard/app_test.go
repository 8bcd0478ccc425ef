package main

import (
	"context"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/cwbudde/algo-nrl/internal/config"
	"github.com/cwbudde/algo-nrl/internal/testutil"
	"github.com/cwbudde/algo-nrl/session"
)

func press(t *testing.T, a *app, msg tea.KeyMsg) tea.Cmd {
	t.Helper()

	model, cmd := a.Update(msg)
	if model != a {
		t.Fatal("Update must return the same model")
	}

	return cmd
}

var (
	enter = tea.KeyMsg{Type: tea.KeyEnter}
	down  = tea.KeyMsg{Type: tea.KeyDown}
	back  = tea.KeyMsg{Type: tea.KeyBackspace}
)

func TestWizardWalk(t *testing.T) {
	t.Parallel()

	sess, err := session.New(testutil.SampleLibrary(t), nil, nil)
	if err != nil {
		t.Fatalf("session: %v", err)
	}

	a := newApp(context.Background(), sess, config.CurveConfig{MinFrequency: 0.1, MaxFrequency: 10, Points: 3})

	if !strings.Contains(a.View(), "Select the sensor manufacturer") {
		t.Fatalf("first view:\n%s", a.View())
	}

	press(t, a, enter) // Guralp, CMG-3T is skipped
	press(t, a, enter) // 1500 V/m/s

	if sess.Phase() != session.PhaseDatalogger {
		t.Fatalf("phase = %v", sess.Phase())
	}

	press(t, a, back)

	if sess.Phase() != session.PhaseSensor || !strings.Contains(a.View(), "Select the sensitivity") {
		t.Fatalf("back did not return to the sensor leaf choice:\n%s", a.View())
	}

	press(t, a, enter)
	press(t, a, down)  // REFTEK
	press(t, a, enter) // RT130 is skipped
	press(t, a, enter) // 1x 100 sps

	if sess.Phase() != session.PhaseSummary {
		t.Fatalf("phase = %v", sess.Phase())
	}

	cmd := press(t, a, enter)
	if cmd == nil {
		t.Fatal("summary enter must start finalizing")
	}

	press(t, a, enter)
	a.Update(cmd())

	if a.result == nil {
		t.Fatalf("no result, status %q", a.status)
	}

	view := a.View()
	for _, want := range []string{"Sensitivity:", "COUNTS/M/S", "REFTEK > RT130 > 1x 100 sps"} {
		if !strings.Contains(view, want) {
			t.Errorf("view lacks %q:\n%s", want, view)
		}
	}

	if cmd := press(t, a, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")}); cmd == nil {
		t.Error("q must quit")
	}
}
