//go:build darwin

// Package darwin implements the accessibility engine for macOS on top of the
// ApplicationServices AXUIElement API and CoreGraphics event injection.
// All functionality requires CGo (Objective-C frameworks) and the system
// accessibility permission.
package darwin
