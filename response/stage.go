package response

import (
	"fmt"
	"slices"
	"strings"
)

// StageType identifies the transformation a stage applies.
type StageType int

const (
	StageGain StageType = iota
	StagePolesZeros
	StageCoefficients
	StageFIR
)

var stageTypeNames = [...]string{
	StageGain:         "gain",
	StagePolesZeros:   "poles_zeros",
	StageCoefficients: "coefficients",
	StageFIR:          "fir",
}

func (t StageType) String() string {
	if t < 0 || int(t) >= len(stageTypeNames) {
		return fmt.Sprintf("StageType(%d)", int(t))
	}

	return stageTypeNames[t]
}

// ParseStageType maps a text name back to its StageType.
func ParseStageType(name string) (StageType, error) {
	for i, n := range stageTypeNames {
		if strings.EqualFold(n, name) {
			return StageType(i), nil
		}
	}

	return 0, fmt.Errorf("%w: %q", ErrUnknownStageType, name)
}

// TransferFunction is the domain a pole-zero or coefficient stage is
// expressed in.
type TransferFunction int

const (
	LaplaceRadians TransferFunction = iota
	LaplaceHertz
	Digital
)

var transferFunctionNames = [...]string{
	LaplaceRadians: "laplace_radians",
	LaplaceHertz:   "laplace_hertz",
	Digital:        "digital",
}

func (tf TransferFunction) String() string {
	if tf < 0 || int(tf) >= len(transferFunctionNames) {
		return fmt.Sprintf("TransferFunction(%d)", int(tf))
	}

	return transferFunctionNames[tf]
}

// ParseTransferFunction maps a text name back to its TransferFunction.
func ParseTransferFunction(name string) (TransferFunction, error) {
	for i, n := range transferFunctionNames {
		if strings.EqualFold(n, name) {
			return TransferFunction(i), nil
		}
	}

	return 0, fmt.Errorf("response: unknown transfer function %q", name)
}

// Symmetry describes how FIR coefficients are stored.
type Symmetry int

const (
	// SymmetryNone stores every tap.
	SymmetryNone Symmetry = iota
	// SymmetryEven stores the first half of an even-length symmetric filter.
	SymmetryEven
	// SymmetryOdd stores the first half and the center tap of an
	// odd-length symmetric filter.
	SymmetryOdd
)

var symmetryNames = [...]string{
	SymmetryNone: "none",
	SymmetryEven: "even",
	SymmetryOdd:  "odd",
}

func (s Symmetry) String() string {
	if s < 0 || int(s) >= len(symmetryNames) {
		return fmt.Sprintf("Symmetry(%d)", int(s))
	}

	return symmetryNames[s]
}

// ParseSymmetry maps a text name back to its Symmetry. An empty name is
// SymmetryNone.
func ParseSymmetry(name string) (Symmetry, error) {
	if name == "" {
		return SymmetryNone, nil
	}

	for i, n := range symmetryNames {
		if strings.EqualFold(n, name) {
			return Symmetry(i), nil
		}
	}

	return 0, fmt.Errorf("response: unknown FIR symmetry %q", name)
}

// Units names a physical quantity, e.g. {"M/S", "Velocity in meters per second"}.
type Units struct {
	Name        string
	Description string
}

// PolesZeros is a rational transfer function given by its roots.
type PolesZeros struct {
	TransferFunction       TransferFunction
	NormalizationFactor    float64 // A0
	NormalizationFrequency float64
	Zeros                  []complex128
	Poles                  []complex128
}

// Coefficients is a rational transfer function given by polynomial
// coefficients, lowest order first.
type Coefficients struct {
	TransferFunction TransferFunction
	Numerators       []float64
	Denominators     []float64
}

// FIR is a finite impulse response filter.
type FIR struct {
	Symmetry     Symmetry
	Coefficients []float64
}

// Taps returns the full impulse response, expanding stored halves of
// symmetric filters.
func (f *FIR) Taps() []float64 {
	h := f.Coefficients

	switch f.Symmetry {
	case SymmetryEven:
		out := slices.Clone(h)
		for i := len(h) - 1; i >= 0; i-- {
			out = append(out, h[i])
		}

		return out
	case SymmetryOdd:
		out := slices.Clone(h)
		for i := len(h) - 2; i >= 0; i-- {
			out = append(out, h[i])
		}

		return out
	default:
		return slices.Clone(h)
	}
}

// Decimation describes the sampling of a digital stage.
type Decimation struct {
	InputSampleRate float64
	Factor          int
	Offset          int
	Delay           float64
	Correction      float64
}

// OutputSampleRate returns the sample rate after decimation.
func (d *Decimation) OutputSampleRate() float64 {
	if d.Factor <= 0 {
		return d.InputSampleRate
	}

	return d.InputSampleRate / float64(d.Factor)
}

// Stage is one element of a response chain. Exactly the variant pointer
// matching Type is expected to be set; gain stages carry none.
type Stage struct {
	Type          StageType
	Name          string
	Input         Units
	Output        Units
	Gain          float64
	GainFrequency float64

	PolesZeros   *PolesZeros
	Coefficients *Coefficients
	FIR          *FIR
	Decimation   *Decimation
}

// Clone returns a deep copy of s.
func (s Stage) Clone() Stage {
	out := s

	if s.PolesZeros != nil {
		pz := *s.PolesZeros
		pz.Zeros = slices.Clone(pz.Zeros)
		pz.Poles = slices.Clone(pz.Poles)
		out.PolesZeros = &pz
	}

	if s.Coefficients != nil {
		c := *s.Coefficients
		c.Numerators = slices.Clone(c.Numerators)
		c.Denominators = slices.Clone(c.Denominators)
		out.Coefficients = &c
	}

	if s.FIR != nil {
		f := *s.FIR
		f.Coefficients = slices.Clone(f.Coefficients)
		out.FIR = &f
	}

	if s.Decimation != nil {
		d := *s.Decimation
		out.Decimation = &d
	}

	return out
}

// Validate checks that s carries the data its type needs.
func (s Stage) Validate() error {
	switch s.Type {
	case StageGain:
		return nil
	case StagePolesZeros:
		if s.PolesZeros == nil {
			return fmt.Errorf("%w: %s stage without poles and zeros", ErrMissingStageData, s.Type)
		}

		if s.PolesZeros.TransferFunction == Digital {
			return s.requireSampleRate()
		}

		return nil
	case StageCoefficients:
		if s.Coefficients == nil || len(s.Coefficients.Numerators) == 0 {
			return fmt.Errorf("%w: %s stage without numerators", ErrMissingStageData, s.Type)
		}

		if s.Coefficients.TransferFunction == Digital {
			return s.requireSampleRate()
		}

		return nil
	case StageFIR:
		if s.FIR == nil || len(s.FIR.Coefficients) == 0 {
			return fmt.Errorf("%w: %s stage without coefficients", ErrMissingStageData, s.Type)
		}

		return s.requireSampleRate()
	default:
		return fmt.Errorf("%w: %d", ErrUnknownStageType, int(s.Type))
	}
}

func (s Stage) requireSampleRate() error {
	if s.Decimation == nil || s.Decimation.InputSampleRate <= 0 {
		return ErrMissingSampleRate
	}

	return nil
}
