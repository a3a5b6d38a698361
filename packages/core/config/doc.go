// Package config handles configuration loading and management for steq.
//
// It provides functionality for:
//   - Loading configuration from .steq.config.json, steq.config.json or .steqrc
//   - Default configuration values
//   - Merging command-line overrides over file values
package config
