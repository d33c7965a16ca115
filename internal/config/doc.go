package config

// Package config loads service settings from defaults, an optional TOML file,
// and environment variable overrides, and validates the result.
