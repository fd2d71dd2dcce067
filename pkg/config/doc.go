// Package config handles configuration management for model-extract.
// It merges the embedded defaults, the user and project configuration
// files, an explicit --config file, MODEL_EXTRACT_ environment variables
// and command-line flags, later sources winning.
package config
