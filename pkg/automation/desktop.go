// Package automation provides desktop UI automation through OS accessibility
// APIs: a platform-agnostic engine contract, a declarative selector algebra,
// and retry-aware locators, inspired by the web-automation model but
// targeting accessibility trees instead of a DOM.
package automation

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// Desktop is the main entry point for UI automation. It owns one shared
// engine instance; values are cheap to copy and safe for concurrent use.
type Desktop struct {
	engine AccessibilityEngine
	log    zerolog.Logger
}

// Option configures a Desktop during construction.
type Option func(*EngineConfig)

// WithLogger injects a logger for engine and locator diagnostics.
func WithLogger(log zerolog.Logger) Option {
	return func(cfg *EngineConfig) { cfg.Logger = log }
}

// WithOCRProvider injects the OCR collaborator used by the OCR* operations.
func WithOCRProvider(p OCRProvider) Option {
	return func(cfg *EngineConfig) { cfg.OCR = p }
}

// NewDesktop creates a Desktop backed by the engine for the current OS.
// useBackgroundApps includes applications without visible windows in search
// scopes; activateApp brings target applications to the foreground before
// searching.
func NewDesktop(useBackgroundApps, activateApp bool, opts ...Option) (*Desktop, error) {
	cfg := EngineConfig{
		UseBackgroundApps: useBackgroundApps,
		ActivateApp:       activateApp,
		Logger:            zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	start := time.Now()
	engine, err := NewEngine(cfg)
	if err != nil {
		return nil, err
	}
	cfg.Logger.Info().
		Dur("duration", time.Since(start)).
		Bool("use_background_apps", useBackgroundApps).
		Bool("activate_app", activateApp).
		Msg("desktop automation engine initialized")

	return &Desktop{engine: engine, log: cfg.Logger}, nil
}

// NewDesktopWithEngine wraps an existing engine. Used by tests and by
// callers that construct a platform engine directly.
func NewDesktopWithEngine(engine AccessibilityEngine, log zerolog.Logger) *Desktop {
	return &Desktop{engine: engine, log: log}
}

// Engine exposes the underlying engine.
func (d *Desktop) Engine() AccessibilityEngine { return d.engine }

// Root returns the root element of the entire desktop.
func (d *Desktop) Root() *UIElement {
	return d.engine.RootElement()
}

// Locator creates a locator for the given selector.
func (d *Desktop) Locator(selector Selector) *Locator {
	return newLocator(d.engine, selector, d.log)
}

// LocatorString parses a selector string (see ParseSelector) and creates a
// locator for it.
func (d *Desktop) LocatorString(selector string) *Locator {
	return d.Locator(ParseSelector(selector))
}

// FocusedElement returns the element that currently has keyboard focus.
func (d *Desktop) FocusedElement() (*UIElement, error) {
	return d.logged1("focused element", d.engine.FocusedElement)
}

// Applications lists all running applications as elements.
func (d *Desktop) Applications() ([]*UIElement, error) {
	start := time.Now()
	apps, err := d.engine.Applications()
	d.logOp("applications", start, err, func(e *zerolog.Event) {
		e.Int("app_count", len(apps))
	})
	return apps, err
}

// Application finds a running application by name.
func (d *Desktop) Application(name string) (*UIElement, error) {
	start := time.Now()
	app, err := d.engine.ApplicationByName(name)
	d.logOp("application by name", start, err, func(e *zerolog.Event) {
		e.Str("app_name", name)
	})
	return app, err
}

// ApplicationByPID finds a running application by process ID.
func (d *Desktop) ApplicationByPID(pid int32, timeout time.Duration) (*UIElement, error) {
	start := time.Now()
	app, err := d.engine.ApplicationByPID(pid, timeout)
	d.logOp("application by pid", start, err, func(e *zerolog.Event) {
		e.Int32("pid", pid)
	})
	return app, err
}

// OpenApplication launches an application by name and resolves an element
// for it after a short settle delay.
func (d *Desktop) OpenApplication(appName string) (*UIElement, error) {
	start := time.Now()
	app, err := d.engine.OpenApplication(appName)
	d.logOp("open application", start, err, func(e *zerolog.Event) {
		e.Str("app_name", appName)
	})
	return app, err
}

// ActivateApplication brings an application to the foreground.
func (d *Desktop) ActivateApplication(appName string) error {
	start := time.Now()
	err := d.engine.ActivateApplication(appName)
	d.logOp("activate application", start, err, func(e *zerolog.Event) {
		e.Str("app_name", appName)
	})
	return err
}

// OpenURL opens a URL in the named browser, or the default browser when
// browser is empty.
func (d *Desktop) OpenURL(url, browser string) error {
	start := time.Now()
	err := d.engine.OpenURL(url, browser)
	d.logOp("open url", start, err, func(e *zerolog.Event) {
		e.Str("url", url).Str("browser", browser)
	})
	return err
}

// OpenFile opens a file with its default application.
func (d *Desktop) OpenFile(filePath string) error {
	start := time.Now()
	err := d.engine.OpenFile(filePath)
	d.logOp("open file", start, err, func(e *zerolog.Event) {
		e.Str("file_path", filePath)
	})
	return err
}

// RunCommand executes a terminal command, choosing the string appropriate
// for the host OS family. At least one command must be provided.
func (d *Desktop) RunCommand(ctx context.Context, windowsCommand, unixCommand string) (*CommandOutput, error) {
	start := time.Now()
	out, err := d.engine.RunCommand(ctx, windowsCommand, unixCommand)
	d.logOp("run command", start, err, func(e *zerolog.Event) {
		if out != nil {
			e.Int("exit_status", out.ExitStatus)
		}
	})
	return out, err
}

// CaptureScreen captures the primary monitor.
func (d *Desktop) CaptureScreen(ctx context.Context) (*ScreenshotResult, error) {
	start := time.Now()
	shot, err := d.engine.CaptureScreen(ctx)
	d.logOp("capture screen", start, err, func(e *zerolog.Event) {
		if shot != nil {
			e.Int("width", shot.Width).Int("height", shot.Height)
		}
	})
	return shot, err
}

// CaptureMonitorByName captures a specific monitor.
func (d *Desktop) CaptureMonitorByName(ctx context.Context, name string) (*ScreenshotResult, error) {
	start := time.Now()
	shot, err := d.engine.CaptureMonitorByName(ctx, name)
	d.logOp("capture monitor", start, err, func(e *zerolog.Event) {
		e.Str("monitor", name)
	})
	return shot, err
}

// OCRImagePath recognizes text in an image file via the OCR collaborator.
func (d *Desktop) OCRImagePath(ctx context.Context, imagePath string) (string, error) {
	start := time.Now()
	text, err := d.engine.OCRImagePath(ctx, imagePath)
	d.logOp("ocr image", start, err, func(e *zerolog.Event) {
		e.Str("image_path", imagePath).Int("text_length", len(text))
	})
	return text, err
}

// OCRScreenshot recognizes text in a captured screenshot.
func (d *Desktop) OCRScreenshot(ctx context.Context, screenshot *ScreenshotResult) (string, error) {
	start := time.Now()
	text, err := d.engine.OCRScreenshot(ctx, screenshot)
	d.logOp("ocr screenshot", start, err, func(e *zerolog.Event) {
		e.Int("text_length", len(text))
	})
	return text, err
}

// ActivateBrowserWindowByTitle brings a browser window containing the title
// to the foreground.
func (d *Desktop) ActivateBrowserWindowByTitle(title string) error {
	start := time.Now()
	err := d.engine.ActivateBrowserWindowByTitle(title)
	d.logOp("activate browser window", start, err, func(e *zerolog.Event) {
		e.Str("title", title)
	})
	return err
}

// CurrentBrowserWindow returns the focused window when it belongs to a known
// browser process.
func (d *Desktop) CurrentBrowserWindow(ctx context.Context) (*UIElement, error) {
	return d.logged1("current browser window", func() (*UIElement, error) {
		return d.engine.CurrentBrowserWindow(ctx)
	})
}

// CurrentWindow returns the window containing the focused element.
func (d *Desktop) CurrentWindow(ctx context.Context) (*UIElement, error) {
	return d.logged1("current window", func() (*UIElement, error) {
		return d.engine.CurrentWindow(ctx)
	})
}

// CurrentApplication returns the frontmost application.
func (d *Desktop) CurrentApplication(ctx context.Context) (*UIElement, error) {
	return d.logged1("current application", func() (*UIElement, error) {
		return d.engine.CurrentApplication(ctx)
	})
}

// FindWindowByCriteria polls for a window whose title contains the given
// string.
func (d *Desktop) FindWindowByCriteria(ctx context.Context, titleContains string, timeout time.Duration) (*UIElement, error) {
	start := time.Now()
	window, err := d.engine.FindWindowByCriteria(ctx, titleContains, timeout)
	d.logOp("find window", start, err, func(e *zerolog.Event) {
		e.Str("title_contains", titleContains)
	})
	return window, err
}

// WindowTree snapshots the UI tree of a window identified by PID and
// optional title filter.
func (d *Desktop) WindowTree(pid int32, title string, maxDepth int) (*UINode, error) {
	start := time.Now()
	tree, err := d.engine.WindowTree(pid, title, maxDepth)
	d.logOp("window tree", start, err, func(e *zerolog.Event) {
		e.Int32("pid", pid).Str("title", title)
	})
	return tree, err
}

func (d *Desktop) logged1(op string, fn func() (*UIElement, error)) (*UIElement, error) {
	start := time.Now()
	element, err := fn()
	d.logOp(op, start, err, nil)
	return element, err
}

func (d *Desktop) logOp(op string, start time.Time, err error, fields func(*zerolog.Event)) {
	var event *zerolog.Event
	if err != nil {
		event = d.log.Warn().Err(err)
	} else {
		event = d.log.Debug()
	}
	event = event.Str("op", op).Dur("duration", time.Since(start))
	if fields != nil {
		fields(event)
	}
	event.Msg("engine operation")
}
