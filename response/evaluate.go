package response

import (
	"fmt"
	"math"
	"math/cmplx"
)

// Evaluator computes the overall gain of a stage chain at freq (Hz).
type Evaluator interface {
	OverallGain(stages []Stage, freq float64) (float64, error)
}

// EvaluatorFunc adapts a function to [Evaluator].
type EvaluatorFunc func(stages []Stage, freq float64) (float64, error)

// OverallGain calls f(stages, freq).
func (f EvaluatorFunc) OverallGain(stages []Stage, freq float64) (float64, error) {
	return f(stages, freq)
}

// ChainEvaluator evaluates |prod(Gain_i * H_i(f))| over every stage.
type ChainEvaluator struct{}

// OverallGain implements [Evaluator].
func (ChainEvaluator) OverallGain(stages []Stage, freq float64) (float64, error) {
	if len(stages) == 0 {
		return 0, ErrNoStages
	}

	h := complex(1, 0)

	for i := range stages {
		hs, err := StageResponse(stages[i], freq)
		if err != nil {
			return 0, fmt.Errorf("response: stage %d: %w", i, err)
		}

		h *= hs
	}

	return checkGain(cmplx.Abs(h))
}

// GainProduct multiplies the stage gains and ignores transfer functions.
// It satisfies [EvaluatorFunc].
func GainProduct(stages []Stage, _ float64) (float64, error) {
	if len(stages) == 0 {
		return 0, ErrNoStages
	}

	g := 1.0
	for _, s := range stages {
		g *= s.Gain
	}

	return checkGain(math.Abs(g))
}

func checkGain(g float64) (float64, error) {
	switch {
	case math.IsNaN(g) || math.IsInf(g, 0):
		return 0, ErrNonFinite
	case g == 0:
		return 0, ErrZeroGain
	default:
		return g, nil
	}
}

// StageResponse returns the complex response Gain * H(f) of one stage.
func StageResponse(s Stage, freq float64) (complex128, error) {
	err := s.Validate()
	if err != nil {
		return 0, err
	}

	g := complex(s.Gain, 0)

	switch s.Type {
	case StagePolesZeros:
		return g * polesZerosResponse(s.PolesZeros, freq, sampleRate(s)), nil
	case StageCoefficients:
		return g * coefficientsResponse(s.Coefficients, freq, sampleRate(s)), nil
	case StageFIR:
		return g * firResponse(s.FIR.Taps(), freq, sampleRate(s)), nil
	default:
		return g, nil
	}
}

func sampleRate(s Stage) float64 {
	if s.Decimation == nil {
		return 0
	}

	return s.Decimation.InputSampleRate
}

// laplaceVariable returns s for analog transfer functions.
func laplaceVariable(tf TransferFunction, freq float64) complex128 {
	if tf == LaplaceHertz {
		return complex(0, freq)
	}

	return complex(0, 2*math.Pi*freq)
}

// unitDelay returns z^-1 = exp(-j*2*pi*f/fs).
func unitDelay(freq, fs float64) complex128 {
	return cmplx.Exp(complex(0, -2*math.Pi*freq/fs))
}

func polesZerosResponse(pz *PolesZeros, freq, fs float64) complex128 {
	var x complex128
	if pz.TransferFunction == Digital {
		x = 1 / unitDelay(freq, fs)
	} else {
		x = laplaceVariable(pz.TransferFunction, freq)
	}

	num := complex(1, 0)
	for _, z := range pz.Zeros {
		num *= x - z
	}

	den := complex(1, 0)
	for _, p := range pz.Poles {
		den *= x - p
	}

	a0 := pz.NormalizationFactor
	if a0 == 0 {
		a0 = 1
	}

	return complex(a0, 0) * num / den
}

func coefficientsResponse(c *Coefficients, freq, fs float64) complex128 {
	var x complex128
	if c.TransferFunction == Digital {
		x = unitDelay(freq, fs)
	} else {
		x = laplaceVariable(c.TransferFunction, freq)
	}

	num := polyval(c.Numerators, x)

	den := complex(1, 0)
	if len(c.Denominators) > 0 {
		den = polyval(c.Denominators, x)
	}

	return num / den
}

func firResponse(taps []float64, freq, fs float64) complex128 {
	return polyval(taps, unitDelay(freq, fs))
}

// polyval evaluates sum(c[k] * x^k) with Horner's scheme.
func polyval(c []float64, x complex128) complex128 {
	var acc complex128
	for k := len(c) - 1; k >= 0; k-- {
		acc = acc*x + complex(c[k], 0)
	}

	return acc
}
