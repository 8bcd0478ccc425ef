package response

import "errors"

var (
	// ErrNoStages is returned when a chain has no stages to evaluate.
	ErrNoStages = errors.New("response: no stages")
	// ErrMissingStageData is returned when a stage lacks the data its type needs.
	ErrMissingStageData = errors.New("response: missing stage data")
	// ErrMissingSampleRate is returned for digital stages without an input sample rate.
	ErrMissingSampleRate = errors.New("response: missing sample rate for digital stage")
	// ErrZeroGain is returned when a chain evaluates to zero.
	ErrZeroGain = errors.New("response: zero gain")
	// ErrNonFinite is returned when a chain evaluates to NaN or infinity.
	ErrNonFinite = errors.New("response: non-finite gain")
	// ErrUnknownStageType is returned for stage types outside the known set.
	ErrUnknownStageType = errors.New("response: unknown stage type")
	// ErrInvalidGrid is returned for unusable frequency grids.
	ErrInvalidGrid = errors.New("response: invalid frequency grid")
)
