// Package lookup turns a completed catalog key sequence into a partial
// response.
//
// [Store] walks the catalog again with the selected keys, finds the leaf and
// decodes the payload file it names as a YAML response document:
//
//	sensitivity:
//	  value: 1500
//	  frequency: 1
//	  input_units: {name: M/S, description: Velocity in meters per second}
//	  output_units: {name: V}
//	stages:
//	  - type: poles_zeros
//	    gain: 1500
//	    input_units: {name: M/S}
//	    output_units: {name: V}
//	    poles_zeros:
//	      transfer_function: laplace_radians
//	      normalization_factor: 1
//	      zeros: [[0, 0], [0, 0]]
//	      poles: [[-0.037, 0.037], [-0.037, -0.037]]
//
// Complex numbers are written as [re, im] pairs. Every failure is reported
// as an [*Error] matching [ErrLookup].
package lookup
