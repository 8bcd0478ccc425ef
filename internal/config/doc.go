// Package config loads settings for the NRL command line tools from
// defaults, a TOML file and NRL_ environment variables.
package config
