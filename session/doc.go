// Package session drives a complete instrument selection: a sensor first,
// then a datalogger, then a summary from which the combined response is
// built.
//
// Each phase owns a [resolver.Resolver]. Stepping back from the datalogger
// catalog root returns to the sensor's leaf choice, and stepping back from
// the summary returns to the datalogger's leaf choice, so the whole wizard
// can be walked in both directions.
package session
