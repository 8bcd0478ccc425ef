package combine

import (
	"errors"
	"fmt"
	"math"

	"github.com/cwbudde/algo-nrl/response"
)

var (
	ErrEmptySensor     = errors.New("combine: sensor response has no stages")
	ErrEmptyDatalogger = errors.New("combine: datalogger response has no stages")

	// ErrSensitivityRecalculation matches every [SensitivityRecalculationWarning].
	ErrSensitivityRecalculation = errors.New("combine: sensitivity recalculation failed")
)

// SensitivityRecalculationWarning reports that the overall sensitivity
// could not be recomputed and the datalogger value was kept.
type SensitivityRecalculationWarning struct {
	Frequency float64
	Kept      float64
	Err       error
}

func (w *SensitivityRecalculationWarning) Error() string {
	return fmt.Sprintf("combine: sensitivity recalculation at %g Hz failed, keeping %g: %v", w.Frequency, w.Kept, w.Err)
}

// Is reports whether target is [ErrSensitivityRecalculation].
func (w *SensitivityRecalculationWarning) Is(target error) bool {
	return target == ErrSensitivityRecalculation
}

func (w *SensitivityRecalculationWarning) Unwrap() error { return w.Err }

// Result is a combined response plus non-fatal problems met while building it.
type Result struct {
	Response response.Response
	Warnings []error
}

// Config holds combiner settings.
type Config struct {
	Evaluator response.Evaluator
}

// Option mutates a Config.
type Option func(*Config)

// DefaultConfig evaluates sensitivity with [response.ChainEvaluator].
func DefaultConfig() Config {
	return Config{Evaluator: response.ChainEvaluator{}}
}

// WithEvaluator sets the sensitivity evaluator.
func WithEvaluator(e response.Evaluator) Option {
	return func(cfg *Config) {
		if e != nil {
			cfg.Evaluator = e
		}
	}
}

// Combine returns sensor.Stages[0] followed by datalogger.Stages[1:], with
// the datalogger sensitivity re-declared in the sensor's input units and
// recomputed at its own reference frequency. Further sensor stages are
// dropped.
//
// Inputs are never modified and the result shares no memory with them.
// Combine is safe for concurrent use.
func Combine(sensor, datalogger response.Response, opts ...Option) (*Result, error) {
	if len(sensor.Stages) == 0 {
		return nil, ErrEmptySensor
	}

	if len(datalogger.Stages) == 0 {
		return nil, ErrEmptyDatalogger
	}

	cfg := DefaultConfig()

	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	stages := make([]response.Stage, 0, len(datalogger.Stages))
	stages = append(stages, sensor.Stages[0].Clone())

	for _, s := range datalogger.Stages[1:] {
		stages = append(stages, s.Clone())
	}

	sens := datalogger.Sensitivity
	sens.InputUnits = sensor.Stages[0].Input

	res := &Result{Response: response.Response{Stages: stages, Sensitivity: sens}}

	value, err := recalculate(cfg.Evaluator, stages, sens.Frequency)
	if err != nil {
		res.Warnings = append(res.Warnings, &SensitivityRecalculationWarning{
			Frequency: sens.Frequency,
			Kept:      sens.Value,
			Err:       err,
		})

		return res, nil
	}

	res.Response.Sensitivity.Value = value

	return res, nil
}

func recalculate(e response.Evaluator, stages []response.Stage, freq float64) (float64, error) {
	value, err := e.OverallGain(stages, freq)
	if err != nil {
		return 0, err
	}

	if math.IsNaN(value) || math.IsInf(value, 0) {
		return 0, response.ErrNonFinite
	}

	if value <= 0 {
		return 0, fmt.Errorf("%w: %g", response.ErrZeroGain, value)
	}

	return value, nil
}
