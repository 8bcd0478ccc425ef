package response

import (
	"fmt"
	"math"
	"math/cmplx"

	"github.com/cwbudde/algo-vecmath"
)

// CurveConfig defines the frequency grid used for response plots.
type CurveConfig struct {
	MinFrequency float64
	MaxFrequency float64
	Points       int
}

// CurveOption mutates a CurveConfig.
type CurveOption func(*CurveConfig)

// DefaultCurveConfig returns a 1000 point grid from 0.01 Hz to 100 Hz.
func DefaultCurveConfig() CurveConfig {
	return CurveConfig{
		MinFrequency: 0.01,
		MaxFrequency: 100,
		Points:       1000,
	}
}

// WithFrequencyRange sets the grid bounds in Hz.
func WithFrequencyRange(lo, hi float64) CurveOption {
	return func(cfg *CurveConfig) {
		if lo > 0 && hi > lo {
			cfg.MinFrequency = lo
			cfg.MaxFrequency = hi
		}
	}
}

// WithPoints sets the number of grid points.
func WithPoints(n int) CurveOption {
	return func(cfg *CurveConfig) {
		if n > 0 {
			cfg.Points = n
		}
	}
}

// ApplyCurveOptions applies zero or more options to the default config.
func ApplyCurveOptions(opts ...CurveOption) CurveConfig {
	cfg := DefaultCurveConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	return cfg
}

// Grid returns the logarithmically spaced frequencies of cfg.
func (cfg CurveConfig) Grid() ([]float64, error) {
	return LogSpace(cfg.MinFrequency, cfg.MaxFrequency, cfg.Points)
}

// LogSpace returns n frequencies spaced evenly on a log scale from lo to
// hi, both included.
func LogSpace(lo, hi float64, n int) ([]float64, error) {
	if n <= 0 || lo <= 0 || hi < lo || math.IsInf(hi, 0) || math.IsNaN(lo) || math.IsNaN(hi) {
		return nil, fmt.Errorf("%w: lo=%g hi=%g n=%d", ErrInvalidGrid, lo, hi, n)
	}

	out := make([]float64, n)
	if n == 1 {
		out[0] = lo
		return out, nil
	}

	a, b := math.Log10(lo), math.Log10(hi)
	step := (b - a) / float64(n-1)

	for i := range out {
		out[i] = math.Pow(10, a+step*float64(i))
	}

	out[0], out[n-1] = lo, hi

	return out, nil
}

// CurveData holds the amplitude and phase of a chain over a frequency grid.
type CurveData struct {
	Frequencies []float64
	Amplitude   []float64
	Phase       []float64 // degrees
}

// Curve evaluates the complex chain response at every frequency in freqs.
func Curve(stages []Stage, freqs []float64) (CurveData, error) {
	if len(stages) == 0 {
		return CurveData{}, ErrNoStages
	}

	re := make([]float64, len(freqs))
	im := make([]float64, len(freqs))
	phase := make([]float64, len(freqs))

	for i, f := range freqs {
		h := complex(1, 0)

		for j := range stages {
			hs, err := StageResponse(stages[j], f)
			if err != nil {
				return CurveData{}, fmt.Errorf("response: stage %d: %w", j, err)
			}

			h *= hs
		}

		re[i], im[i] = real(h), imag(h)
		phase[i] = cmplx.Phase(h) * 180 / math.Pi
	}

	amp := make([]float64, len(freqs))
	vecmath.Magnitude(amp, re, im)

	return CurveData{
		Frequencies: append([]float64(nil), freqs...),
		Amplitude:   amp,
		Phase:       phase,
	}, nil
}
