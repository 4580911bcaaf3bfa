//go:build windows

package windows

import (
	"strings"

	"github.com/axdriver/axdriver/pkg/automation"
)

// winElement wraps an IUIAutomationElement.
type winElement struct {
	el     *uiaObject
	engine *WindowsEngine
}

func (e *WindowsEngine) newElement(el *uiaObject) *automation.UIElement {
	return automation.NewUIElement(&winElement{el: el, engine: e})
}

func (w *winElement) ID() string {
	// Prefer the author-assigned AutomationId when one exists; it is the
	// only genuinely stable identity UIA offers.
	if autoID := elementAutomationID(w.el); autoID != "" {
		return automation.StableID(automation.IDAttributes{
			Role:  w.Role(),
			Label: autoID,
		})
	}
	bounds, _ := elementBounds(w.el)
	parentLabel := ""
	if parent := w.engine.uia.parent(w.el); parent != nil {
		parentLabel = elementName(parent)
	}
	return automation.StableID(automation.IDAttributes{
		Role:        w.Role(),
		Label:       elementName(w.el),
		Description: elementHelpText(w.el),
		Width:       float64(bounds.right - bounds.left),
		Height:      float64(bounds.bottom - bounds.top),
		ChildCount:  len(w.engine.uia.children(w.el)),
		ParentLabel: parentLabel,
	})
}

func (w *winElement) Role() string {
	return genericRoleName(elementControlType(w.el))
}

func (w *winElement) Attributes() automation.UIElementAttributes {
	name := elementName(w.el)
	attrs := automation.UIElementAttributes{
		Role:        w.Role(),
		Name:        name,
		Label:       name,
		Value:       elementValue(w.el),
		Description: elementHelpText(w.el),
		Enabled:     elementEnabled(w.el),
		Visible:     !elementOffscreen(w.el),
		Focused:     elementFocused(w.el),
	}

	props := map[string]string{}
	if class := elementClassName(w.el); class != "" {
		props["class_name"] = class
	}
	if autoID := elementAutomationID(w.el); autoID != "" {
		props["automation_id"] = autoID
	}
	if len(props) > 0 {
		attrs.Properties = props
	}

	if r, ok := elementBounds(w.el); ok {
		attrs.Bounds = &automation.Rect{
			X:      float64(r.left),
			Y:      float64(r.top),
			Width:  float64(r.right - r.left),
			Height: float64(r.bottom - r.top),
		}
	}
	return attrs
}

func (w *winElement) Children() ([]*automation.UIElement, error) {
	children := w.engine.uia.children(w.el)
	out := make([]*automation.UIElement, 0, len(children))
	for _, c := range children {
		out = append(out, w.engine.newElement(c))
	}
	return out, nil
}

func (w *winElement) Parent() (*automation.UIElement, error) {
	parent := w.engine.uia.parent(w.el)
	if parent == nil {
		return nil, nil
	}
	return w.engine.newElement(parent), nil
}

func (w *winElement) Bounds() (automation.Rect, error) {
	r, ok := elementBounds(w.el)
	if !ok {
		return automation.Rect{}, automation.PlatformError("element has no bounding rectangle")
	}
	return automation.Rect{
		X:      float64(r.left),
		Y:      float64(r.top),
		Width:  float64(r.right - r.left),
		Height: float64(r.bottom - r.top),
	}, nil
}

// Click focuses the element, tries the Invoke pattern, then falls back to
// mouse simulation at the clickable point and finally the bounds center.
// Browser web content skips Invoke; DOM handlers expect real mouse events.
func (w *winElement) Click() (*automation.ClickResult, error) {
	// Best effort; clicking works on unfocused elements too.
	_ = elementSetFocus(w.el)

	if !w.inKnownBrowser() {
		if err := invokeElement(w.el); err == nil {
			return &automation.ClickResult{
				Method:  "Single Click",
				Details: "invoked through the accessibility Invoke pattern",
			}, nil
		}
	}

	if p, ok := elementClickablePoint(w.el); ok {
		if err := mouseClick(p.x, p.y, false, 1); err != nil {
			return nil, err
		}
		return &automation.ClickResult{
			Method:      "Single Click (Clickable Point)",
			Coordinates: &automation.Point{X: float64(p.x), Y: float64(p.y)},
			Details:     "clicked by mouse at the element's clickable point",
		}, nil
	}

	bounds, err := w.Bounds()
	if err != nil {
		return nil, automation.PlatformError("no clickable point and no bounds: %v", err)
	}
	cx, cy := bounds.Center()
	if err := mouseClick(int32(cx), int32(cy), false, 1); err != nil {
		return nil, err
	}
	return &automation.ClickResult{
		Method:      "Single Click (Fallback)",
		Coordinates: &automation.Point{X: cx, Y: cy},
		Details:     "clicked by mouse at the element's center coordinates",
	}, nil
}

func (w *winElement) DoubleClick() (*automation.ClickResult, error) {
	_ = elementSetFocus(w.el)
	x, y, err := w.clickTarget()
	if err != nil {
		return nil, err
	}
	if err := mouseClick(x, y, false, 2); err != nil {
		return nil, err
	}
	return &automation.ClickResult{
		Method:      "Double Click",
		Coordinates: &automation.Point{X: float64(x), Y: float64(y)},
		Details:     "double clicked by mouse",
	}, nil
}

func (w *winElement) RightClick() error {
	_ = elementSetFocus(w.el)
	x, y, err := w.clickTarget()
	if err != nil {
		return err
	}
	return mouseClick(x, y, true, 1)
}

func (w *winElement) clickTarget() (int32, int32, error) {
	if p, ok := elementClickablePoint(w.el); ok {
		return p.x, p.y, nil
	}
	bounds, err := w.Bounds()
	if err != nil {
		return 0, 0, automation.PlatformError("no clickable point found")
	}
	cx, cy := bounds.Center()
	return int32(cx), int32(cy), nil
}

func (w *winElement) Hover() error {
	return automation.UnsupportedError("hover is not supported on Windows")
}

func (w *winElement) Focus() error {
	return elementSetFocus(w.el)
}

func (w *winElement) TypeText(text string) error {
	// The Value pattern sets text atomically when supported; simulated
	// keystrokes are the fallback for plain win32 controls.
	if err := setElementValue(w.el, text); err == nil {
		return nil
	}
	_ = elementSetFocus(w.el)
	return typeText(text)
}

// PressKey sends the combo after a best-effort focus. A failed focus does
// not abort: plenty of functional controls refuse SetFocus yet still
// receive keys through their window.
func (w *winElement) PressKey(combo string) error {
	_ = elementSetFocus(w.el)
	return pressKeyCombo(combo)
}

func (w *winElement) Text(maxDepth int) (string, error) {
	seen := map[string]bool{}
	var parts []string
	add := func(s string) {
		s = strings.TrimSpace(s)
		if s == "" || seen[s] {
			return
		}
		seen[s] = true
		parts = append(parts, s)
	}

	var walk func(el *uiaObject, depth int)
	walk = func(el *uiaObject, depth int) {
		add(elementName(el))
		add(elementValue(el))
		if depth >= maxDepth {
			return
		}
		for _, c := range w.engine.uia.children(el) {
			walk(c, depth+1)
		}
	}
	walk(w.el, 0)
	return strings.Join(parts, "\n"), nil
}

func (w *winElement) SetValue(value string) error {
	return setElementValue(w.el, value)
}

func (w *winElement) IsEnabled() (bool, error) {
	return elementEnabled(w.el), nil
}

func (w *winElement) IsVisible() (bool, error) {
	return !elementOffscreen(w.el), nil
}

func (w *winElement) IsFocused() (bool, error) {
	return elementFocused(w.el), nil
}

func (w *winElement) IsKeyboardFocusable() (bool, error) {
	return elementFocusable(w.el), nil
}

// PerformAction maps named actions onto UIA patterns.
func (w *winElement) PerformAction(action string) error {
	switch strings.ToLower(action) {
	case "invoke", "press", "click":
		return invokeElement(w.el)
	case "toggle":
		return toggleElement(w.el)
	case "focus":
		return elementSetFocus(w.el)
	default:
		return automation.UnsupportedError("action %q is not supported on Windows", action)
	}
}

func (w *winElement) Scroll(direction string, amount float64) error {
	if bounds, err := w.Bounds(); err == nil {
		cx, cy := bounds.Center()
		_ = mouseMove(int32(cx), int32(cy))
	}
	return mouseScroll(direction, amount)
}

func (w *winElement) ActivateWindow() error {
	window, err := w.Window()
	if err != nil {
		return err
	}
	if window == nil {
		return automation.NotFoundError("element has no containing window")
	}
	impl := window.Impl().(*winElement)
	hwnd := elementHWND(impl.el)
	if hwnd == 0 {
		return automation.PlatformError("containing window has no native handle")
	}
	return bringWindowToFront(hwnd)
}

func (w *winElement) Application() (*automation.UIElement, error) {
	pid := elementProcessID(w.el)
	if pid == 0 {
		return nil, automation.PlatformError("cannot resolve owning process")
	}
	return w.engine.applicationRootByPID(pid)
}

// Window walks up the ancestor chain to the nearest Window control.
func (w *winElement) Window() (*automation.UIElement, error) {
	current := w.el
	for current != nil {
		if elementControlType(current) == ctWindow {
			return w.engine.newElement(current), nil
		}
		current = w.engine.uia.parent(current)
	}
	return nil, nil
}

func (w *winElement) ProcessID() (int32, error) {
	pid := elementProcessID(w.el)
	if pid == 0 {
		return 0, automation.PlatformError("cannot resolve owning process")
	}
	return pid, nil
}

func (w *winElement) inKnownBrowser() bool {
	pid := elementProcessID(w.el)
	if pid == 0 {
		return false
	}
	return isKnownBrowser(processName(pid))
}
