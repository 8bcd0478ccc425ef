package response

import (
	"fmt"
	"slices"
)

// Sensitivity is the overall scalar gain of a chain at a reference frequency.
type Sensitivity struct {
	Value       float64
	Frequency   float64
	InputUnits  Units
	OutputUnits Units
}

// Response is an ordered stage chain with its overall sensitivity. Sensor,
// datalogger and combined responses share this shape.
type Response struct {
	Stages      []Stage
	Sensitivity Sensitivity
}

// Clone returns a deep copy of r.
func (r Response) Clone() Response {
	out := Response{Sensitivity: r.Sensitivity}
	if r.Stages != nil {
		out.Stages = make([]Stage, len(r.Stages))
		for i, s := range r.Stages {
			out.Stages[i] = s.Clone()
		}
	}

	return out
}

// InputUnits returns the input units of the first stage, or the zero value
// for an empty chain.
func (r Response) InputUnits() Units {
	if len(r.Stages) == 0 {
		return Units{}
	}

	return r.Stages[0].Input
}

// Validate checks that r has stages and that every stage carries the data
// its type needs.
func (r Response) Validate() error {
	if len(r.Stages) == 0 {
		return ErrNoStages
	}

	for i, s := range r.Stages {
		err := s.Validate()
		if err != nil {
			return fmt.Errorf("stage %d: %w", i, err)
		}
	}

	return nil
}

// Equal reports whether r and other describe the same chain, comparing
// stage contents rather than pointer identity.
func (r Response) Equal(other Response) bool {
	return r.Sensitivity == other.Sensitivity && slices.EqualFunc(r.Stages, other.Stages, Stage.Equal)
}

// Equal reports whether s and other have identical contents.
func (s Stage) Equal(other Stage) bool {
	if s.Type != other.Type || s.Name != other.Name || s.Input != other.Input || s.Output != other.Output ||
		s.Gain != other.Gain || s.GainFrequency != other.GainFrequency {
		return false
	}

	return equalPtr(s.PolesZeros, other.PolesZeros, func(a, b *PolesZeros) bool {
		return a.TransferFunction == b.TransferFunction &&
			a.NormalizationFactor == b.NormalizationFactor &&
			a.NormalizationFrequency == b.NormalizationFrequency &&
			slices.Equal(a.Zeros, b.Zeros) && slices.Equal(a.Poles, b.Poles)
	}) && equalPtr(s.Coefficients, other.Coefficients, func(a, b *Coefficients) bool {
		return a.TransferFunction == b.TransferFunction &&
			slices.Equal(a.Numerators, b.Numerators) && slices.Equal(a.Denominators, b.Denominators)
	}) && equalPtr(s.FIR, other.FIR, func(a, b *FIR) bool {
		return a.Symmetry == b.Symmetry && slices.Equal(a.Coefficients, b.Coefficients)
	}) && equalPtr(s.Decimation, other.Decimation, func(a, b *Decimation) bool {
		return *a == *b
	})
}

func equalPtr[T any](a, b *T, eq func(a, b *T) bool) bool {
	if a == nil || b == nil {
		return a == b
	}

	return eq(a, b)
}
