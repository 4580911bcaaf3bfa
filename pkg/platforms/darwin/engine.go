//go:build darwin

package darwin

import (
	"context"
	"os/exec"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/axdriver/axdriver/pkg/automation"
)

const (
	// defaultSearchDepth bounds tree walks when the caller passes 0.
	defaultSearchDepth = 50
	// defaultFindTimeout bounds a search when the caller passes 0.
	defaultFindTimeout = 30 * time.Second
	// launchSettleDelay gives a newly opened application time to create
	// its accessibility tree before we resolve an element for it.
	launchSettleDelay = 500 * time.Millisecond
	// findPollInterval is the sleep between polling attempts inside the
	// engine's own wait loops.
	findPollInterval = 100 * time.Millisecond
)

// MacOSEngine drives the macOS accessibility tree through AXUIElement and
// injects input through CGEvent taps.
type MacOSEngine struct {
	cfg        automation.EngineConfig
	log        zerolog.Logger
	systemWide *axRef
	ocr        automation.OCRProvider
}

// NewEngine creates the macOS engine. Construction fails with
// ErrPermissionDenied when the process lacks accessibility permission.
func NewEngine(cfg automation.EngineConfig) (*MacOSEngine, error) {
	if err := CheckAccessibilityPermission(); err != nil {
		return nil, err
	}
	ocr := cfg.OCR
	if ocr == nil {
		ocr = automation.UnsupportedOCR{}
	}
	return &MacOSEngine{
		cfg:        cfg,
		log:        cfg.Logger,
		systemWide: axSystemWide(),
		ocr:        ocr,
	}, nil
}

func (e *MacOSEngine) RootElement() *automation.UIElement {
	return e.newElement(e.systemWide.retain())
}

func (e *MacOSEngine) FocusedElement() (*automation.UIElement, error) {
	focused := axElementAttr(e.systemWide, "AXFocusedUIElement")
	if focused == nil {
		return nil, automation.NotFoundError("no element has keyboard focus")
	}
	return e.newElement(focused), nil
}

func (e *MacOSEngine) Applications() ([]*automation.UIElement, error) {
	apps, err := listRunningApps(!e.cfg.UseBackgroundApps)
	if err != nil {
		return nil, err
	}
	out := make([]*automation.UIElement, 0, len(apps))
	for _, app := range apps {
		if ref := axAppForPID(app.pid); ref != nil {
			out = append(out, e.newElement(ref))
		}
	}
	return out, nil
}

func (e *MacOSEngine) ApplicationByName(name string) (*automation.UIElement, error) {
	apps, err := listRunningApps(!e.cfg.UseBackgroundApps)
	if err != nil {
		return nil, err
	}
	for _, app := range apps {
		if strings.EqualFold(app.name, name) ||
			strings.Contains(strings.ToLower(app.name), strings.ToLower(name)) {
			if e.cfg.ActivateApp {
				if err := activatePID(app.pid); err != nil {
					e.log.Warn().Err(err).Str("app", app.name).Msg("failed to activate application")
				}
			}
			ref := axAppForPID(app.pid)
			if ref == nil {
				return nil, automation.PlatformError("failed to create accessibility element for %q (pid %d)", app.name, app.pid)
			}
			return e.newElement(ref), nil
		}
	}
	return nil, automation.NotFoundError("no running application named %q", name)
}

// ApplicationByPID waits for the application's accessibility tree to become
// readable; freshly launched processes take a moment to serve AX requests.
func (e *MacOSEngine) ApplicationByPID(pid int32, timeout time.Duration) (*automation.UIElement, error) {
	if timeout <= 0 {
		timeout = defaultFindTimeout
	}
	deadline := time.Now().Add(timeout)
	for {
		ref := axAppForPID(pid)
		if ref != nil && axStringAttr(ref, "AXRole") != "" {
			return e.newElement(ref), nil
		}
		if time.Now().After(deadline) {
			return nil, automation.NotFoundError("no accessible application with pid %d after %s", pid, timeout)
		}
		time.Sleep(findPollInterval)
	}
}

func (e *MacOSEngine) FindElement(selector automation.Selector, root *automation.UIElement, timeout time.Duration) (*automation.UIElement, error) {
	if selector.Kind == automation.KindChain {
		return automation.ResolveChainFirst(e, selector.Selectors, root, timeout)
	}
	matches, err := e.FindElements(selector, root, timeout, 0)
	if err != nil {
		return nil, err
	}
	return matches[0], nil
}

func (e *MacOSEngine) FindElements(selector automation.Selector, root *automation.UIElement, timeout time.Duration, depth int) ([]*automation.UIElement, error) {
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

	roots, err := e.searchRoots(root)
	if err != nil {
		return nil, err
	}

	var matches []*automation.UIElement
	for _, r := range roots {
		matches = append(matches, e.collect(r, match, depth, deadline)...)
	}
	if len(matches) == 0 {
		return nil, automation.NotFoundError("no element matches %s", selector)
	}
	return matches, nil
}

// searchRoots resolves the scope of a search: the given element's native
// handle, or every running application when unscoped. The system-wide
// element cannot be traversed, so the desktop scope fans out per app.
func (e *MacOSEngine) searchRoots(root *automation.UIElement) ([]*axRef, error) {
	if root != nil {
		impl, ok := root.Impl().(*macElement)
		if !ok {
			return nil, automation.InvalidArgumentError("search root is not a macOS element")
		}
		return []*axRef{impl.ref}, nil
	}
	apps, err := listRunningApps(!e.cfg.UseBackgroundApps)
	if err != nil {
		return nil, err
	}
	refs := make([]*axRef, 0, len(apps))
	for _, app := range apps {
		if ref := axAppForPID(app.pid); ref != nil {
			refs = append(refs, ref)
		}
	}
	return refs, nil
}

// collect walks the subtree breadth-first gathering matches. Children that
// fail to enumerate are skipped; the walk stops at the deadline with
// whatever was found.
func (e *MacOSEngine) collect(root *axRef, match func(*axRef) bool, maxDepth int, deadline time.Time) []*automation.UIElement {
	type item struct {
		ref   *axRef
		depth int
	}
	var matches []*automation.UIElement
	queue := []item{{ref: root, depth: 0}}
	for len(queue) > 0 {
		if time.Now().After(deadline) {
			break
		}
		it := queue[0]
		queue = queue[1:]

		if it.depth > 0 && match(it.ref) {
			matches = append(matches, e.newElement(it.ref.retain()))
		}
		if it.depth >= maxDepth {
			continue
		}
		children, err := axChildren(it.ref)
		if err != nil {
			continue
		}
		for _, c := range children {
			queue = append(queue, item{ref: c, depth: it.depth + 1})
		}
	}
	return matches
}

// matcherFor compiles a selector into a predicate over native elements.
func (e *MacOSEngine) matcherFor(selector automation.Selector) (func(*axRef) bool, error) {
	contains := func(haystack, needle string) bool {
		return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
	}
	switch selector.Kind {
	case automation.KindRole:
		axRoles := axRolesFor(selector.Role)
		name := selector.Name
		return func(r *axRef) bool {
			role := axStringAttr(r, "AXRole")
			found := false
			for _, want := range axRoles {
				if role == want {
					found = true
					break
				}
			}
			if !found {
				return false
			}
			if name == "" {
				return true
			}
			return contains(axStringAttr(r, "AXTitle"), name) ||
				contains(axStringAttr(r, "AXDescription"), name)
		}, nil
	case automation.KindID:
		want := selector.Value
		return func(r *axRef) bool {
			el := macElement{ref: r, engine: e}
			return el.ID() == want
		}, nil
	case automation.KindName:
		want := selector.Value
		return func(r *axRef) bool {
			return contains(axStringAttr(r, "AXTitle"), want) ||
				contains(axStringAttr(r, "AXDescription"), want)
		}, nil
	case automation.KindText:
		want := selector.Value
		return func(r *axRef) bool {
			return contains(axStringAttr(r, "AXValue"), want) ||
				contains(axStringAttr(r, "AXTitle"), want) ||
				contains(axStringAttr(r, "AXDescription"), want)
		}, nil
	case automation.KindClassName:
		return nil, automation.UnsupportedError("class name selectors are not supported on macOS")
	default:
		return nil, automation.UnsupportedError("selector %s is not supported on macOS", selector)
	}
}

func (e *MacOSEngine) OpenApplication(appName string) (*automation.UIElement, error) {
	if err := exec.Command("open", "-a", appName).Run(); err != nil {
		return nil, automation.PlatformError("failed to open application %q: %v", appName, err)
	}
	time.Sleep(launchSettleDelay)
	return e.ApplicationByName(appName)
}

func (e *MacOSEngine) ActivateApplication(appName string) error {
	apps, err := listRunningApps(false)
	if err != nil {
		return err
	}
	for _, app := range apps {
		if strings.EqualFold(app.name, appName) ||
			strings.Contains(strings.ToLower(app.name), strings.ToLower(appName)) {
			return activatePID(app.pid)
		}
	}
	return automation.NotFoundError("no running application named %q", appName)
}

func (e *MacOSEngine) OpenURL(url, browser string) error {
	args := []string{}
	if browser != "" {
		args = append(args, "-a", browser)
	}
	args = append(args, url)
	if err := exec.Command("open", args...).Run(); err != nil {
		return automation.PlatformError("failed to open url %q: %v", url, err)
	}
	time.Sleep(launchSettleDelay)
	return nil
}

func (e *MacOSEngine) OpenFile(filePath string) error {
	if err := exec.Command("open", filePath).Run(); err != nil {
		return automation.PlatformError("failed to open file %q: %v", filePath, err)
	}
	return nil
}

func (e *MacOSEngine) RunCommand(ctx context.Context, windowsCommand, unixCommand string) (*automation.CommandOutput, error) {
	if unixCommand == "" {
		return nil, automation.InvalidArgumentError("a unix command must be provided on macOS")
	}
	cmd := exec.CommandContext(ctx, "/bin/sh", "-c", unixCommand)
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

func (e *MacOSEngine) CaptureScreen(ctx context.Context) (*automation.ScreenshotResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return captureMainDisplay()
}

func (e *MacOSEngine) CaptureMonitorByName(ctx context.Context, name string) (*automation.ScreenshotResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return captureDisplayByName(name)
}

func (e *MacOSEngine) OCRImagePath(ctx context.Context, imagePath string) (string, error) {
	return e.ocr.RecognizeFile(ctx, imagePath)
}

func (e *MacOSEngine) OCRScreenshot(ctx context.Context, screenshot *automation.ScreenshotResult) (string, error) {
	if screenshot == nil {
		return "", automation.InvalidArgumentError("screenshot is nil")
	}
	return e.ocr.RecognizeImage(ctx, screenshot.ImageData, screenshot.Width, screenshot.Height)
}

func (e *MacOSEngine) ActivateBrowserWindowByTitle(title string) error {
	apps, err := listRunningApps(true)
	if err != nil {
		return err
	}
	for _, app := range apps {
		if !isKnownBrowser(app.name) {
			continue
		}
		ref := axAppForPID(app.pid)
		if ref == nil {
			continue
		}
		windows, err := axChildren(ref)
		if err != nil {
			continue
		}
		for _, w := range windows {
			if axStringAttr(w, "AXRole") != "AXWindow" {
				continue
			}
			if strings.Contains(strings.ToLower(axStringAttr(w, "AXTitle")), strings.ToLower(title)) {
				if err := axPerform(w, "AXRaise"); err != nil {
					return err
				}
				return activatePID(app.pid)
			}
		}
	}
	return automation.NotFoundError("no browser window with title containing %q", title)
}

func (e *MacOSEngine) CurrentBrowserWindow(ctx context.Context) (*automation.UIElement, error) {
	pid := frontmostPID()
	if pid <= 0 {
		return nil, automation.NotFoundError("no frontmost application")
	}
	if !isKnownBrowser(appNameForPID(pid)) {
		return nil, automation.NotFoundError("frontmost application %q is not a known browser", appNameForPID(pid))
	}
	return e.CurrentWindow(ctx)
}

func (e *MacOSEngine) CurrentWindow(ctx context.Context) (*automation.UIElement, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	pid := frontmostPID()
	if pid <= 0 {
		return nil, automation.NotFoundError("no frontmost application")
	}
	app := axAppForPID(pid)
	if app == nil {
		return nil, automation.PlatformError("failed to create accessibility element for pid %d", pid)
	}
	if focused := axElementAttr(app, "AXFocusedWindow"); focused != nil {
		return e.newElement(focused), nil
	}
	if main := axElementAttr(app, "AXMainWindow"); main != nil {
		return e.newElement(main), nil
	}
	return nil, automation.NotFoundError("frontmost application has no window")
}

func (e *MacOSEngine) CurrentApplication(ctx context.Context) (*automation.UIElement, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	pid := frontmostPID()
	if pid <= 0 {
		return nil, automation.NotFoundError("no frontmost application")
	}
	app := axAppForPID(pid)
	if app == nil {
		return nil, automation.PlatformError("failed to create accessibility element for pid %d", pid)
	}
	return e.newElement(app), nil
}

func (e *MacOSEngine) FindWindowByCriteria(ctx context.Context, titleContains string, timeout time.Duration) (*automation.UIElement, error) {
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

func (e *MacOSEngine) findWindowOnce(titleContains string) (*automation.UIElement, bool) {
	apps, err := listRunningApps(true)
	if err != nil {
		return nil, false
	}
	for _, app := range apps {
		ref := axAppForPID(app.pid)
		if ref == nil {
			continue
		}
		windows, err := axChildren(ref)
		if err != nil {
			continue
		}
		for _, w := range windows {
			if axStringAttr(w, "AXRole") != "AXWindow" {
				continue
			}
			if titleContains == "" ||
				strings.Contains(strings.ToLower(axStringAttr(w, "AXTitle")), strings.ToLower(titleContains)) {
				return e.newElement(w.retain()), true
			}
		}
	}
	return nil, false
}

func (e *MacOSEngine) WindowTree(pid int32, title string, maxDepth int) (*automation.UINode, error) {
	app := axAppForPID(pid)
	if app == nil {
		return nil, automation.PlatformError("failed to create accessibility element for pid %d", pid)
	}
	windows, err := axChildren(app)
	if err != nil {
		return nil, automation.NotFoundError("application %d has no accessible children", pid)
	}
	if maxDepth <= 0 {
		maxDepth = defaultSearchDepth
	}
	for _, w := range windows {
		if axStringAttr(w, "AXRole") != "AXWindow" {
			continue
		}
		if title != "" &&
			!strings.Contains(strings.ToLower(axStringAttr(w, "AXTitle")), strings.ToLower(title)) {
			continue
		}
		node := e.newElement(w.retain()).Snapshot(maxDepth)
		return &node, nil
	}
	return nil, automation.NotFoundError("no window for pid %d matching title %q", pid, title)
}
