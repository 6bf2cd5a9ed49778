// Package config defines the settings shared by the focus beacon binaries and
// provides helpers to load, validate and save them in YAML format.
//
// Values are layered: built-in defaults, then the YAML file, then
// FOCUS_BEACON_* environment variables.
package config
