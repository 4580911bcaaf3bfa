// Package platforms registers the accessibility engine for the current
// platform. Importing it for side effects wires automation.NewEngine to the
// right implementation:
//
//	import _ "github.com/axdriver/axdriver/pkg/platforms"
package platforms
