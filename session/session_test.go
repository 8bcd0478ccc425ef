package session

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"reflect"
	"strings"
	"testing"

	"github.com/cwbudde/algo-nrl/catalog"
	"github.com/cwbudde/algo-nrl/combine"
	"github.com/cwbudde/algo-nrl/internal/testutil"
	"github.com/cwbudde/algo-nrl/lookup"
	"github.com/cwbudde/algo-nrl/resolver"
	"github.com/cwbudde/algo-nrl/response"
)

func newSession(t *testing.T, opts ...Option) *Session {
	t.Helper()

	s, err := New(testutil.SampleLibrary(t), nil, nil, opts...)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	return s
}

func step(t *testing.T, s *Session, key string) {
	t.Helper()

	err := s.Choose(key)
	if err != nil {
		t.Fatalf("Choose(%q): %v", key, err)
	}

	err = s.Advance()
	if err != nil {
		t.Fatalf("Advance after %q: %v", key, err)
	}
}

func TestFullWalk(t *testing.T) {
	t.Parallel()

	var logs bytes.Buffer

	logger := slog.New(slog.NewTextHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug}))
	s := newSession(t, WithLogger(logger))

	if s.Phase() != PhaseSensor || s.Active().Role() != catalog.RoleSensor {
		t.Fatalf("phase = %v", s.Phase())
	}

	step(t, s, "Guralp")

	if s.Phase() != PhaseSensor || s.Active().Prompt() != "Select the sensitivity" {
		t.Fatalf("CMG-3T should be skipped, at %q", s.Active().Prompt())
	}

	step(t, s, "1500 V/m/s")

	if s.Phase() != PhaseDatalogger {
		t.Fatalf("phase = %v, want datalogger", s.Phase())
	}

	step(t, s, "REFTEK")
	step(t, s, "1x 100 sps")

	if s.Phase() != PhaseSummary || s.Active() != nil {
		t.Fatalf("phase = %v, want summary", s.Phase())
	}

	sum, err := s.Summary()
	if err != nil {
		t.Fatalf("Summary: %v", err)
	}

	if !reflect.DeepEqual(sum.Sensor.Keys, []string{"Guralp", "CMG-3T", "1500 V/m/s"}) {
		t.Errorf("sensor keys = %v", sum.Sensor.Keys)
	}

	if !reflect.DeepEqual(sum.Datalogger.Keys, []string{"REFTEK", "RT130", "1x 100 sps"}) {
		t.Errorf("datalogger keys = %v", sum.Datalogger.Keys)
	}

	if sum.Datalogger.Description != "RT130, gain 1, 100 sps" || sum.Sensor.Payload != "cmg3t_1500.yaml" {
		t.Errorf("summary = %+v", sum)
	}

	res, err := s.Finalize(context.Background())
	if err != nil {
		t.Fatalf("Finalize: %v", err)
	}

	if len(res.Response.Stages) != 3 || res.Response.Stages[0].Name != "CMG-3T" {
		t.Fatalf("stages = %+v", res.Response.Stages)
	}

	if res.Response.Sensitivity.InputUnits.Name != "M/S" {
		t.Errorf("input units = %+v", res.Response.Sensitivity.InputUnits)
	}

	testutil.RequireNearlyEqual(t, res.Response.Sensitivity.Value, testutil.SampleSensorGain*testutil.SampleDigitizerGain, 1e-3)

	if !strings.Contains(logs.String(), "session="+s.ID().String()) {
		t.Errorf("log records lack the session id:\n%s", logs.String())
	}

	if !strings.Contains(logs.String(), "response combined") {
		t.Errorf("missing finalize record:\n%s", logs.String())
	}
}

func TestSingleLeafCompletesPhase(t *testing.T) {
	t.Parallel()

	s := newSession(t)

	step(t, s, "Streckeisen")
	step(t, s, "STS-2")

	if s.Phase() != PhaseDatalogger {
		t.Fatalf("phase = %v, want datalogger", s.Phase())
	}

	step(t, s, "Quanterra")
	step(t, s, "Q8")

	if s.Phase() != PhaseSummary {
		t.Fatalf("phase = %v, want summary", s.Phase())
	}

	res, err := s.Finalize(context.Background())
	if err != nil {
		t.Fatalf("Finalize: %v", err)
	}

	testutil.RequireNearlyEqual(t, res.Response.Sensitivity.Value, 1500*419430, 1e-12)
}

func TestRetreatAcrossPhases(t *testing.T) {
	t.Parallel()

	s := newSession(t)

	step(t, s, "Guralp")
	step(t, s, "800 V/m/s")

	if err := s.Retreat(); err != nil {
		t.Fatalf("Retreat: %v", err)
	}

	if s.Phase() != PhaseSensor || s.Active().State() != resolver.StateAtLeafChoice {
		t.Fatalf("phase=%v state=%v", s.Phase(), s.Active().State())
	}

	step(t, s, "1500 V/m/s")
	step(t, s, "Quanterra")
	step(t, s, "Q330")

	if s.Phase() != PhaseSummary {
		t.Fatalf("phase = %v", s.Phase())
	}

	if err := s.Retreat(); err != nil {
		t.Fatalf("Retreat from summary: %v", err)
	}

	if s.Phase() != PhaseDatalogger || s.Active().Prompt() != "Select the sample rate" {
		t.Fatalf("phase=%v prompt=%q", s.Phase(), s.Active().Prompt())
	}

	// Revealed by retreat, the single-leaf node stays visible.
	opts, err := s.Options()
	if err != nil || len(opts) != 1 {
		t.Fatalf("options = %v, %v", opts, err)
	}

	for range 3 {
		if err := s.Retreat(); err != nil {
			t.Fatalf("Retreat: %v", err)
		}
	}

	if s.Phase() != PhaseSensor || s.Active().State() != resolver.StateAtLeafChoice {
		t.Fatalf("phase = %v, want sensor leaf choice", s.Phase())
	}

	for range 2 {
		if err := s.Retreat(); err != nil {
			t.Fatalf("Retreat: %v", err)
		}
	}

	if err := s.Retreat(); !errors.Is(err, resolver.ErrAtRoot) {
		t.Errorf("retreat at sensor root: %v", err)
	}
}

func TestNotReady(t *testing.T) {
	t.Parallel()

	s := newSession(t)

	if _, err := s.Summary(); !errors.Is(err, ErrNotReady) {
		t.Errorf("Summary: %v", err)
	}

	if _, err := s.Finalize(context.Background()); !errors.Is(err, ErrNotReady) {
		t.Errorf("Finalize: %v", err)
	}

	step(t, s, "Streckeisen")
	step(t, s, "STS-2")
	step(t, s, "Quanterra")
	step(t, s, "Q8")

	for _, err := range []error{s.Choose("x"), s.Advance()} {
		if !errors.Is(err, ErrInSummary) {
			t.Errorf("navigation in summary: %v", err)
		}
	}

	if _, err := s.Options(); !errors.Is(err, ErrInSummary) {
		t.Errorf("Options in summary: %v", err)
	}
}

func TestFinalizeLookupFailure(t *testing.T) {
	t.Parallel()

	s := newSession(t)

	step(t, s, "Streckeisen")
	step(t, s, "STS-1")
	step(t, s, "Broken")
	step(t, s, "Quanterra")
	step(t, s, "Q8")

	_, err := s.Finalize(context.Background())
	if !errors.Is(err, lookup.ErrLookup) {
		t.Fatalf("error = %v, want ErrLookup", err)
	}

	sum, err := s.Summary()
	if err != nil || sum.Sensor.Keys[2] != "Broken" {
		t.Errorf("selection lost after failed finalize: %+v, %v", sum, err)
	}
}

func TestFinalizeWithCustomLookupAndEvaluator(t *testing.T) {
	t.Parallel()

	root := testutil.SampleLibrary(t)
	gain := func(g float64, in string) response.Response {
		return response.Response{
			Stages:      []response.Stage{{Type: response.StageGain, Gain: g, Input: response.Units{Name: in}}},
			Sensitivity: response.Sensitivity{Value: g, Frequency: 1},
		}
	}

	static := lookup.NewStatic().
		Add(catalog.RoleSensor, []string{"Streckeisen", "STS-2", "Generation 3"}, gain(10, "M/S")).
		Add(catalog.RoleDatalogger, []string{"Quanterra", "Q8", "1x 100 sps"}, gain(5, "V"))

	broken := response.EvaluatorFunc(func([]response.Stage, float64) (float64, error) {
		return 0, errors.New("no evaluator")
	})

	s, err := New(root, catalog.FileLoader{}, static, WithCombineOptions(combine.WithEvaluator(broken)))
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	step(t, s, "Streckeisen")
	step(t, s, "STS-2")
	step(t, s, "Quanterra")
	step(t, s, "Q8")

	res, err := s.Finalize(context.Background())
	if err != nil {
		t.Fatalf("Finalize: %v", err)
	}

	if res.Response.Sensitivity.Value != 5 || len(res.Warnings) != 1 {
		t.Errorf("value=%v warnings=%v", res.Response.Sensitivity.Value, res.Warnings)
	}
}

func TestWithoutAutoAdvance(t *testing.T) {
	t.Parallel()

	s := newSession(t, WithResolverOptions(resolver.WithoutAutoAdvance()))

	step(t, s, "Guralp")

	if s.Active().Prompt() != "Select the Guralp model" {
		t.Errorf("prompt = %q", s.Active().Prompt())
	}
}

func TestNewMissingCatalog(t *testing.T) {
	t.Parallel()

	_, err := New(t.TempDir(), nil, nil)
	if !errors.Is(err, catalog.ErrMalformedCatalog) {
		t.Errorf("error = %v", err)
	}
}
