// Package catalog reads the index files of a Nominal Response Library (NRL)
// tree.
//
// The library is a directory hierarchy rooted at a folder containing one
// subtree per [Role] ("sensor", "datalogger"). Every directory holds an
// index.txt in INI format:
//
//	[Main]
//	question = "Select the sensor manufacturer"
//
//	[Guralp]
//	path = "guralp"
//
// Intermediate nodes list further choices with path=. Terminal nodes list
// leaf entries with xml= and description=:
//
//	[Main]
//	question = "Select the sensitivity"
//
//	[1500 V/m/s]
//	xml = "RESP.XX.NS007..BHZ.CMG3T.120.1500"
//	description = "CMG-3T, 120 s - 50 Hz, 1500 V/m/s"
//
// [Load] turns one index file into an immutable [Node]. A node never mixes
// the two option kinds; malformed files fail early with [ErrMalformedCatalog].
package catalog
