package automation

import (
	"errors"
	"fmt"
)

// Sentinel errors forming the automation error taxonomy. Callers classify
// failures with errors.Is; the wrapped message carries the selector, element
// and action context needed to log the error verbatim.
var (
	// ErrElementNotFound means no matching node exists in the searched scope.
	ErrElementNotFound = errors.New("element not found")

	// ErrTimeout means a search or predicate did not succeed before the
	// deadline. Kept distinct from ErrElementNotFound so callers can tell
	// "absent" from "gave up".
	ErrTimeout = errors.New("operation timed out")

	// ErrPlatform means a native accessibility API call failed. The wrapped
	// message carries the native error text.
	ErrPlatform = errors.New("platform error")

	// ErrUnsupportedOperation means the current platform adapter lacks a
	// capability (e.g. Path selectors, right-click on macOS).
	ErrUnsupportedOperation = errors.New("unsupported operation")

	// ErrInvalidArgument means the caller passed malformed input, such as an
	// empty selector chain or an unknown key name.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrPermissionDenied means the OS accessibility permission has not been
	// granted to this process.
	ErrPermissionDenied = errors.New("permission denied")

	// ErrUnsupportedPlatform means no engine implementation exists for the
	// current OS.
	ErrUnsupportedPlatform = errors.New("unsupported platform")
)

// notFoundError wraps ErrElementNotFound with formatted context.
func notFoundError(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrElementNotFound, fmt.Sprintf(format, args...))
}

// timeoutError wraps ErrTimeout with formatted context.
func timeoutError(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrTimeout, fmt.Sprintf(format, args...))
}

// invalidArgError wraps ErrInvalidArgument with formatted context.
func invalidArgError(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidArgument, fmt.Sprintf(format, args...))
}

// PlatformError wraps ErrPlatform with the native error text. Platform
// adapters use this for every failed native call.
func PlatformError(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrPlatform, fmt.Sprintf(format, args...))
}

// NotFoundError wraps ErrElementNotFound with formatted context. Exported for
// platform adapters.
func NotFoundError(format string, args ...any) error {
	return notFoundError(format, args...)
}

// TimeoutError wraps ErrTimeout with formatted context. Exported for
// platform adapters with their own wait loops.
func TimeoutError(format string, args ...any) error {
	return timeoutError(format, args...)
}

// UnsupportedError wraps ErrUnsupportedOperation with formatted context.
func UnsupportedError(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrUnsupportedOperation, fmt.Sprintf(format, args...))
}

// InvalidArgumentError wraps ErrInvalidArgument with formatted context.
func InvalidArgumentError(format string, args ...any) error {
	return invalidArgError(format, args...)
}

// PermissionError wraps ErrPermissionDenied with formatted context.
func PermissionError(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrPermissionDenied, fmt.Sprintf(format, args...))
}
