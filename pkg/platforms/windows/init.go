//go:build windows

package windows

import "github.com/axdriver/axdriver/pkg/automation"

func init() {
	automation.NewEngineFunc = func(cfg automation.EngineConfig) (automation.AccessibilityEngine, error) {
		return NewEngine(cfg)
	}
}
