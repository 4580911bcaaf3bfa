//go:build linux

// Package linux is a placeholder. Linux accessibility (AT-SPI) is not
// implemented; NewEngine always fails and automation.NewEngineFunc stays
// unset so callers get the standard unsupported-platform error.
package linux

import "github.com/axdriver/axdriver/pkg/automation"

// NewEngine reports that no Linux engine exists.
func NewEngine(cfg automation.EngineConfig) (automation.AccessibilityEngine, error) {
	return nil, automation.ErrUnsupportedPlatform
}
