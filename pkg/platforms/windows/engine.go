//go:build windows

package windows

import (
	"context"
	"os/exec"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/axdriver/axdriver/pkg/automation"
)

const (
	defaultSearchDepth = 50
	defaultFindTimeout = 30 * time.Second
	// launchSettleDelay gives a newly started process time to create its
	// UI Automation tree before we resolve an element for it.
	launchSettleDelay = 500 * time.Millisecond
	findPollInterval  = 100 * time.Millisecond
)

// WindowsEngine drives the UI Automation tree and injects input through
// SendInput.
type WindowsEngine struct {
	cfg automation.EngineConfig
	log zerolog.Logger
	uia *uia
	ocr automation.OCRProvider
}

// NewEngine creates the Windows engine.
func NewEngine(cfg automation.EngineConfig) (*WindowsEngine, error) {
	u, err := newUIA()
	if err != nil {
		return nil, err
	}
	ocr := cfg.OCR
	if ocr == nil {
		ocr = automation.UnsupportedOCR{}
	}
	return &WindowsEngine{cfg: cfg, log: cfg.Logger, uia: u, ocr: ocr}, nil
}

func (e *WindowsEngine) RootElement() *automation.UIElement {
	root, err := e.uia.rootElement()
	if err != nil {
		e.log.Error().Err(err).Msg("failed to get desktop root element")
		return nil
	}
	return e.newElement(root)
}

func (e *WindowsEngine) FocusedElement() (*automation.UIElement, error) {
	focused, err := e.uia.focusedElement()
	if err != nil {
		return nil, err
	}
	return e.newElement(focused), nil
}

// Applications lists top-level windows and panes grouped by owning process,
// one element per process.
func (e *WindowsEngine) Applications() ([]*automation.UIElement, error) {
	root, err := e.uia.rootElement()
	if err != nil {
		return nil, err
	}
	seen := map[int32]bool{}
	var apps []*automation.UIElement
	for _, child := range e.uia.children(root) {
		ct := elementControlType(child)
		if ct != ctWindow && ct != ctPane {
			continue
		}
		pid := elementProcessID(child)
		if pid == 0 || seen[pid] {
			continue
		}
		seen[pid] = true
		apps = append(apps, e.newElement(child))
	}
	return apps, nil
}

func (e *WindowsEngine) ApplicationByName(name string) (*automation.UIElement, error) {
	pid, err := pidByName(name)
	if err != nil {
		return nil, err
	}
	app, err := e.applicationRootByPID(pid)
	if err != nil {
		return nil, err
	}
	if e.cfg.ActivateApp {
		if impl, ok := app.Impl().(*winElement); ok {
			if hwnd := elementHWND(impl.el); hwnd != 0 {
				if err := bringWindowToFront(hwnd); err != nil {
					e.log.Warn().Err(err).Str("app", name).Msg("failed to activate application")
				}
			}
		}
	}
	return app, nil
}

func (e *WindowsEngine) ApplicationByPID(pid int32, timeout time.Duration) (*automation.UIElement, error) {
	if timeout <= 0 {
		timeout = defaultFindTimeout
	}
	deadline := time.Now().Add(timeout)
	for {
		if app, err := e.applicationRootByPID(pid); err == nil {
			return app, nil
		}
		if time.Now().After(deadline) {
			return nil, automation.NotFoundError("no top-level window for pid %d after %s", pid, timeout)
		}
		time.Sleep(findPollInterval)
	}
}

// applicationRootByPID finds the process's first top-level window or pane.
func (e *WindowsEngine) applicationRootByPID(pid int32) (*automation.UIElement, error) {
	root, err := e.uia.rootElement()
	if err != nil {
		return nil, err
	}
	for _, child := range e.uia.children(root) {
		ct := elementControlType(child)
		if ct != ctWindow && ct != ctPane {
			continue
		}
		if elementProcessID(child) == pid {
			return e.newElement(child), nil
		}
	}
	return nil, automation.NotFoundError("no top-level window for pid %d", pid)
}

func (e *WindowsEngine) FindElement(selector automation.Selector, root *automation.UIElement, timeout time.Duration) (*automation.UIElement, error) {
	if selector.Kind == automation.KindChain {
		return automation.ResolveChainFirst(e, selector.Selectors, root, timeout)
	}
	matches, err := e.FindElements(selector, root, timeout, 0)
	if err != nil {
		return nil, err
	}
	return matches[0], nil
}

func (e *WindowsEngine) FindElements(selector automation.Selector, root *automation.UIElement, timeout time.Duration, depth int) ([]*automation.UIElement, error) {
	if selector.Kind == automation.KindChain {
		return automation.ResolveChain(e, selector.Selectors, root, timeout, depth)
	}
	match, err := e.matcherFor(selector)
	if err != nil {
		return nil, err
	}
	if depth <= 0 {
		depth = defaultSearchDepth
	}
	if timeout <= 0 {
		timeout = defaultFindTimeout
	}
	deadline := time.Now().Add(timeout)

	var scope *uiaObject
	if root != nil {
		impl, ok := root.Impl().(*winElement)
		if !ok {
			return nil, automation.InvalidArgumentError("search root is not a Windows element")
		}
		scope = impl.el
	} else {
		scope, err = e.uia.rootElement()
		if err != nil {
			return nil, err
		}
	}

	matches := e.collect(scope, match, depth, deadline)
	if len(matches) == 0 {
		return nil, automation.NotFoundError("no element matches %s", selector)
	}
	return matches, nil
}

// collect walks the subtree breadth-first through the raw view walker.
// The walk stops at the deadline with whatever was found.
func (e *WindowsEngine) collect(root *uiaObject, match func(*uiaObject) bool, maxDepth int, deadline time.Time) []*automation.UIElement {
	type item struct {
		el    *uiaObject
		depth int
	}
	var matches []*automation.UIElement
	queue := []item{{el: root, depth: 0}}
	for len(queue) > 0 {
		if time.Now().After(deadline) {
			break
		}
		it := queue[0]
		queue = queue[1:]

		if it.depth > 0 && match(it.el) {
			matches = append(matches, e.newElement(it.el))
		}
		if it.depth >= maxDepth {
			continue
		}
		for _, c := range e.uia.children(it.el) {
			queue = append(queue, item{el: c, depth: it.depth + 1})
		}
	}
	return matches
}

func (e *WindowsEngine) matcherFor(selector automation.Selector) (func(*uiaObject) bool, error) {
	contains := func(haystack, needle string) bool {
		return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
	}
	switch selector.Kind {
	case automation.KindRole:
		types := controlTypesFor(selector.Role)
		name := selector.Name
		return func(el *uiaObject) bool {
			ct := elementControlType(el)
			found := false
			for _, want := range types {
				if ct == want {
					found = true
					break
				}
			}
			if !found {
				return false
			}
			return name == "" || contains(elementName(el), name)
		}, nil
	case automation.KindID:
		want := selector.Value
		return func(el *uiaObject) bool {
			w := winElement{el: el, engine: e}
			return w.ID() == want || elementAutomationID(el) == want
		}, nil
	case automation.KindName:
		want := selector.Value
		return func(el *uiaObject) bool {
			return contains(elementName(el), want)
		}, nil
	case automation.KindText:
		want := selector.Value
		return func(el *uiaObject) bool {
			return contains(elementName(el), want) || contains(elementValue(el), want)
		}, nil
	case automation.KindClassName:
		want := selector.Value
		return func(el *uiaObject) bool {
			return strings.EqualFold(elementClassName(el), want)
		}, nil
	default:
		return nil, automation.UnsupportedError("selector %s is not supported on Windows", selector)
	}
}

func (e *WindowsEngine) OpenApplication(appName string) (*automation.UIElement, error) {
	// Try the name as a direct executable first, then through the shell so
	// PATH lookup and app aliases work.
	if err := exec.Command(appName).Start(); err != nil {
		if err := exec.Command("cmd", "/C", "start", "", appName).Run(); err != nil {
			return nil, automation.PlatformError("failed to open application %q: %v", appName, err)
		}
	}
	time.Sleep(launchSettleDelay)
	pid, err := pidByName(appName)
	if err != nil {
		return nil, err
	}
	return e.ApplicationByPID(pid, defaultFindTimeout)
}

func (e *WindowsEngine) ActivateApplication(appName string) error {
	app, err := e.ApplicationByName(appName)
	if err != nil {
		return err
	}
	impl := app.Impl().(*winElement)
	hwnd := elementHWND(impl.el)
	if hwnd == 0 {
		return automation.PlatformError("application %q has no native window handle", appName)
	}
	return bringWindowToFront(hwnd)
}

func (e *WindowsEngine) OpenURL(url, browser string) error {
	var cmd *exec.Cmd
	if browser != "" {
		cmd = exec.Command("cmd", "/C", "start", "", browser, url)
	} else {
		cmd = exec.Command("cmd", "/C", "start", "", url)
	}
	if err := cmd.Run(); err != nil {
		return automation.PlatformError("failed to open url %q: %v", url, err)
	}
	time.Sleep(launchSettleDelay)
	return nil
}

func (e *WindowsEngine) OpenFile(filePath string) error {
	if err := exec.Command("cmd", "/C", "start", "", filePath).Run(); err != nil {
		return automation.PlatformError("failed to open file %q: %v", filePath, err)
	}
	return nil
}

func (e *WindowsEngine) RunCommand(ctx context.Context, windowsCommand, unixCommand string) (*automation.CommandOutput, error) {
	if windowsCommand == "" {
		return nil, automation.InvalidArgumentError("a windows command must be provided on Windows")
	}
	cmd := exec.CommandContext(ctx, "cmd", "/C", windowsCommand)
	var stdout, stderr strings.Builder
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	err := cmd.Run()
	exitStatus := 0
	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			exitStatus = exitErr.ExitCode()
		} else {
			return nil, automation.PlatformError("command failed to start: %v", err)
		}
	}
	return &automation.CommandOutput{
		ExitStatus: exitStatus,
		Stdout:     stdout.String(),
		Stderr:     stderr.String(),
	}, nil
}

func (e *WindowsEngine) CaptureScreen(ctx context.Context) (*automation.ScreenshotResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return capturePrimaryScreen()
}

func (e *WindowsEngine) CaptureMonitorByName(ctx context.Context, name string) (*automation.ScreenshotResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return captureMonitorByName(name)
}

func (e *WindowsEngine) OCRImagePath(ctx context.Context, imagePath string) (string, error) {
	return e.ocr.RecognizeFile(ctx, imagePath)
}

func (e *WindowsEngine) OCRScreenshot(ctx context.Context, screenshot *automation.ScreenshotResult) (string, error) {
	if screenshot == nil {
		return "", automation.InvalidArgumentError("screenshot is nil")
	}
	return e.ocr.RecognizeImage(ctx, screenshot.ImageData, screenshot.Width, screenshot.Height)
}

func (e *WindowsEngine) ActivateBrowserWindowByTitle(title string) error {
	root, err := e.uia.rootElement()
	if err != nil {
		return err
	}
	for _, child := range e.uia.children(root) {
		if !isKnownBrowser(processName(elementProcessID(child))) {
			continue
		}
		if !strings.Contains(strings.ToLower(elementName(child)), strings.ToLower(title)) {
			continue
		}
		hwnd := elementHWND(child)
		if hwnd == 0 {
			continue
		}
		return bringWindowToFront(hwnd)
	}
	return automation.NotFoundError("no browser window with title containing %q", title)
}

func (e *WindowsEngine) CurrentBrowserWindow(ctx context.Context) (*automation.UIElement, error) {
	window, err := e.CurrentWindow(ctx)
	if err != nil {
		return nil, err
	}
	impl := window.Impl().(*winElement)
	name := processName(elementProcessID(impl.el))
	if !isKnownBrowser(name) {
		return nil, automation.NotFoundError("focused window belongs to %q, not a known browser", name)
	}
	return window, nil
}

func (e *WindowsEngine) CurrentWindow(ctx context.Context) (*automation.UIElement, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	focused, err := e.FocusedElement()
	if err != nil {
		return nil, err
	}
	window, err := focused.Window()
	if err != nil {
		return nil, err
	}
	if window == nil {
		return nil, automation.NotFoundError("focused element has no containing window")
	}
	return window, nil
}

func (e *WindowsEngine) CurrentApplication(ctx context.Context) (*automation.UIElement, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	focused, err := e.FocusedElement()
	if err != nil {
		return nil, err
	}
	return focused.Application()
}

func (e *WindowsEngine) FindWindowByCriteria(ctx context.Context, titleContains string, timeout time.Duration) (*automation.UIElement, error) {
	if timeout <= 0 {
		timeout = defaultFindTimeout
	}
	deadline := time.Now().Add(timeout)
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if w, ok := e.findWindowOnce(titleContains); ok {
			return w, nil
		}
		if time.Now().After(deadline) {
			return nil, automation.TimeoutError("no window with title containing %q after %s", titleContains, timeout)
		}
		time.Sleep(findPollInterval)
	}
}

func (e *WindowsEngine) findWindowOnce(titleContains string) (*automation.UIElement, bool) {
	root, err := e.uia.rootElement()
	if err != nil {
		return nil, false
	}
	for _, child := range e.uia.children(root) {
		ct := elementControlType(child)
		if ct != ctWindow && ct != ctPane {
			continue
		}
		if titleContains == "" ||
			strings.Contains(strings.ToLower(elementName(child)), strings.ToLower(titleContains)) {
			return e.newElement(child), true
		}
	}
	return nil, false
}

func (e *WindowsEngine) WindowTree(pid int32, title string, maxDepth int) (*automation.UINode, error) {
	root, err := e.uia.rootElement()
	if err != nil {
		return nil, err
	}
	if maxDepth <= 0 {
		maxDepth = defaultSearchDepth
	}
	for _, child := range e.uia.children(root) {
		if elementProcessID(child) != pid {
			continue
		}
		if title != "" &&
			!strings.Contains(strings.ToLower(elementName(child)), strings.ToLower(title)) {
			continue
		}
		node := e.newElement(child).Snapshot(maxDepth)
		return &node, nil
	}
	return nil, automation.NotFoundError("no window for pid %d matching title %q", pid, title)
}
