// Package config loads tv-fixtures settings from an optional YAML file on
// top of built-in defaults and validates them.
package config
