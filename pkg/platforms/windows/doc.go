//go:build windows

// Package windows implements the accessibility engine for Windows on top of
// the UI Automation COM API, with SendInput for mouse and keyboard injection
// and GDI for screen capture. The COM interfaces are called through
// hand-rolled vtables so no cgo is required.
package windows
