package automation

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"github.com/rs/zerolog"
)

// AccessibilityEngine is the platform-agnostic capability contract. Exactly
// one concrete engine is compiled in per target OS and chosen at process
// start.
//
// Contract notes:
//   - FindElement returns ErrElementNotFound when no match exists within the
//     time budget. Errors on individual candidates during a subtree walk are
//     swallowed and that candidate excluded: accessibility nodes can be
//     transiently inaccessible mid-walk.
//   - Open* calls are fire-and-forget with respect to the launched process's
//     internal readiness; they apply a short fixed settle delay before
//     resolving an element for the new app.
//   - A timeout of 0 means "no explicit budget"; adapters substitute their
//     default.
//   - Methods taking a context wrap blocking native work; they honor
//     cancellation between steps but cannot interrupt a single native call.
type AccessibilityEngine interface {
	RootElement() *UIElement
	FocusedElement() (*UIElement, error)
	Applications() ([]*UIElement, error)
	ApplicationByName(name string) (*UIElement, error)
	ApplicationByPID(pid int32, timeout time.Duration) (*UIElement, error)

	FindElement(selector Selector, root *UIElement, timeout time.Duration) (*UIElement, error)
	FindElements(selector Selector, root *UIElement, timeout time.Duration, depth int) ([]*UIElement, error)

	OpenApplication(appName string) (*UIElement, error)
	ActivateApplication(appName string) error
	OpenURL(url, browser string) error
	OpenFile(filePath string) error
	RunCommand(ctx context.Context, windowsCommand, unixCommand string) (*CommandOutput, error)

	CaptureScreen(ctx context.Context) (*ScreenshotResult, error)
	CaptureMonitorByName(ctx context.Context, name string) (*ScreenshotResult, error)
	OCRImagePath(ctx context.Context, imagePath string) (string, error)
	OCRScreenshot(ctx context.Context, screenshot *ScreenshotResult) (string, error)

	ActivateBrowserWindowByTitle(title string) error
	CurrentBrowserWindow(ctx context.Context) (*UIElement, error)
	CurrentWindow(ctx context.Context) (*UIElement, error)
	CurrentApplication(ctx context.Context) (*UIElement, error)
	FindWindowByCriteria(ctx context.Context, titleContains string, timeout time.Duration) (*UIElement, error)

	WindowTree(pid int32, title string, maxDepth int) (*UINode, error)
}

// EngineConfig carries construction options for platform engines.
type EngineConfig struct {
	// UseBackgroundApps includes applications without visible windows in
	// enumeration and search scopes.
	UseBackgroundApps bool
	// ActivateApp brings target applications to the foreground before
	// searching their trees.
	ActivateApp bool
	// Logger receives engine diagnostics. Defaults to a no-op logger.
	Logger zerolog.Logger
	// OCR handles text recognition for the OCR* operations. Defaults to a
	// provider that reports ErrUnsupportedOperation.
	OCR OCRProvider
}

// NewEngineFunc is set by platform-specific packages via init().
// See pkg/platforms for the per-OS registration.
var NewEngineFunc func(cfg EngineConfig) (AccessibilityEngine, error)

// NewEngine returns the engine for the current OS.
func NewEngine(cfg EngineConfig) (AccessibilityEngine, error) {
	if NewEngineFunc == nil {
		return nil, fmt.Errorf("%w: no accessibility engine for %s/%s (supported: darwin, windows)",
			ErrUnsupportedPlatform, runtime.GOOS, runtime.GOARCH)
	}
	if cfg.OCR == nil {
		cfg.OCR = UnsupportedOCR{}
	}
	return NewEngineFunc(cfg)
}
