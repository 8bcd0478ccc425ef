// Package combine splices a sensor response and a datalogger response into
// one instrument response.
//
// The datalogger's first stage is a placeholder describing only the
// electrical input it expects. [Combine] replaces it with the sensor's first
// stage, keeps the remaining datalogger stages, declares the sensor's input
// units on the overall sensitivity and recomputes its value through a
// [response.Evaluator]. A failed recomputation is reported as a warning and
// the datalogger's sensitivity value is kept.
package combine
