// Package config handles application configuration loading and validation.
//
// Configuration is read from a YAML file, overlaid with environment
// variables (CLEANRIDE_*) and validated using struct tags. Every setting
// has a workable default so the server can start with no file at all.
package config
