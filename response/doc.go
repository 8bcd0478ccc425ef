// Package response models instrument response chains and evaluates them.
//
// A [Response] is an ordered list of [Stage] values plus an overall
// [Sensitivity]. Sensor and datalogger catalog entries are both partial
// responses of this shape; the combine package splices them.
//
// [ChainEvaluator] computes the overall gain of a chain at one frequency as
// the magnitude of the product of every stage's gain and transfer function:
//
//   - analog poles and zeros use s = j*2*pi*f (Laplace radians) or s = j*f
//     (Laplace hertz), scaled by the normalization factor A0
//   - digital stages use z = exp(j*2*pi*f/fs) with fs taken from the stage
//     decimation input sample rate
//   - gain stages contribute only their gain
//
// [Curve] and [FIRSpectrum] produce dense amplitude and phase data for
// plotting.
package response
