//go:build darwin

package darwin

import (
	"strings"

	"github.com/axdriver/axdriver/pkg/automation"
)

// macElement wraps a retained AXUIElementRef. Handles share the native
// object by reference count; a destroyed native element surfaces as a failed
// call, never a crash.
type macElement struct {
	ref    *axRef
	engine *MacOSEngine
}

func (e *MacOSEngine) newElement(ref *axRef) *automation.UIElement {
	return automation.NewUIElement(&macElement{ref: ref, engine: e})
}

func (m *macElement) ID() string {
	role := m.Role()
	title := axStringAttr(m.ref, "AXTitle")
	desc := axStringAttr(m.ref, "AXDescription")
	_, _, w, h, _ := axBounds(m.ref)

	children, _ := axChildren(m.ref)
	parentLabel := ""
	if parent := axElementAttr(m.ref, "AXParent"); parent != nil {
		parentLabel = axStringAttr(parent, "AXTitle")
	}

	return automation.StableID(automation.IDAttributes{
		Role:        role,
		Label:       title,
		Description: desc,
		Width:       w,
		Height:      h,
		ChildCount:  len(children),
		ParentLabel: parentLabel,
	})
}

func (m *macElement) Role() string {
	return genericRole(axStringAttr(m.ref, "AXRole"))
}

func (m *macElement) Attributes() automation.UIElementAttributes {
	title := axStringAttr(m.ref, "AXTitle")
	desc := axStringAttr(m.ref, "AXDescription")
	name := title
	if name == "" {
		name = desc
	}

	attrs := automation.UIElementAttributes{
		Role:        m.Role(),
		Name:        name,
		Label:       title,
		Value:       axStringAttr(m.ref, "AXValue"),
		Description: desc,
		Enabled:     axBoolAttr(m.ref, "AXEnabled", true),
		Focused:     axBoolAttr(m.ref, "AXFocused", false),
	}

	props := map[string]string{}
	if subrole := axStringAttr(m.ref, "AXSubrole"); subrole != "" {
		props["subrole"] = subrole
	}
	if help := axStringAttr(m.ref, "AXHelp"); help != "" {
		props["help"] = help
	}
	if len(props) > 0 {
		attrs.Properties = props
	}

	if x, y, w, h, ok := axBounds(m.ref); ok {
		attrs.Bounds = &automation.Rect{X: x, Y: y, Width: w, Height: h}
		attrs.Visible = w > 0 && h > 0
	}
	return attrs
}

func (m *macElement) Children() ([]*automation.UIElement, error) {
	refs, err := axChildren(m.ref)
	if err != nil {
		return nil, err
	}
	out := make([]*automation.UIElement, 0, len(refs))
	for _, r := range refs {
		out = append(out, m.engine.newElement(r))
	}
	return out, nil
}

func (m *macElement) Parent() (*automation.UIElement, error) {
	parent := axElementAttr(m.ref, "AXParent")
	if parent == nil {
		return nil, nil
	}
	return m.engine.newElement(parent), nil
}

func (m *macElement) Bounds() (automation.Rect, error) {
	x, y, w, h, ok := axBounds(m.ref)
	if !ok {
		return automation.Rect{}, automation.PlatformError("element has no position or size")
	}
	return automation.Rect{X: x, Y: y, Width: w, Height: h}, nil
}

// Click tries the accessibility actions first and falls back to mouse
// simulation at the element's center. Browser web content frequently accepts
// AXPress without dispatching DOM events, so known browsers go straight to
// the mouse.
func (m *macElement) Click() (*automation.ClickResult, error) {
	if !m.inKnownBrowser() {
		if err := axPerform(m.ref, "AXPress"); err == nil {
			return &automation.ClickResult{Method: "AXPress", Details: "accessibility press action"}, nil
		}
		if err := axPerform(m.ref, "AXClick"); err == nil {
			return &automation.ClickResult{Method: "AXClick", Details: "accessibility click action"}, nil
		}
	}
	return m.mouseClick(mouseLeft, 1, "Mouse Simulation")
}

func (m *macElement) DoubleClick() (*automation.ClickResult, error) {
	return m.mouseClick(mouseLeft, 2, "Double Click (Mouse Simulation)")
}

func (m *macElement) mouseClick(button, count int, method string) (*automation.ClickResult, error) {
	bounds, err := m.Bounds()
	if err != nil {
		return nil, automation.PlatformError("cannot click element without bounds: %v", err)
	}
	x, y := bounds.Center()
	if err := cgClick(x, y, button, count); err != nil {
		return nil, err
	}
	return &automation.ClickResult{
		Method:      method,
		Coordinates: &automation.Point{X: x, Y: y},
		Details:     "simulated mouse event at element center",
	}, nil
}

func (m *macElement) RightClick() error {
	return automation.UnsupportedError("right click is not supported on macOS")
}

func (m *macElement) Hover() error {
	bounds, err := m.Bounds()
	if err != nil {
		return err
	}
	x, y := bounds.Center()
	return cgMoveMouse(x, y)
}

func (m *macElement) Focus() error {
	if err := axSetBoolAttr(m.ref, "AXFocused", true); err != nil {
		return automation.PlatformError("failed to focus %s %q: %v", m.Role(), axStringAttr(m.ref, "AXTitle"), err)
	}
	return nil
}

func (m *macElement) TypeText(text string) error {
	if err := m.Focus(); err != nil {
		return err
	}
	return cgTypeText(text)
}

// PressKey requires the element to take focus first; sending a combo at an
// unfocused element would hit whatever currently owns the keyboard.
func (m *macElement) PressKey(combo string) error {
	if err := m.Focus(); err != nil {
		return automation.PlatformError("cannot press %q: focusing %s %q failed: %v",
			combo, m.Role(), axStringAttr(m.ref, "AXTitle"), err)
	}
	return cgKeyCombo(combo)
}

// Text aggregates the visible text of the element and its descendants.
// Accessibility trees fragment text across leaf runs, so duplicates are
// collapsed while preserving first-seen order.
func (m *macElement) Text(maxDepth int) (string, error) {
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

	var walk func(ref *axRef, depth int)
	walk = func(ref *axRef, depth int) {
		add(axStringAttr(ref, "AXValue"))
		add(axStringAttr(ref, "AXTitle"))
		add(axStringAttr(ref, "AXDescription"))
		if depth >= maxDepth {
			return
		}
		children, err := axChildren(ref)
		if err != nil {
			return
		}
		for _, c := range children {
			walk(c, depth+1)
		}
	}
	walk(m.ref, 0)
	return strings.Join(parts, "\n"), nil
}

func (m *macElement) SetValue(value string) error {
	return axSetStringAttr(m.ref, "AXValue", value)
}

func (m *macElement) IsEnabled() (bool, error) {
	return axBoolAttr(m.ref, "AXEnabled", true), nil
}

func (m *macElement) IsVisible() (bool, error) {
	_, _, w, h, ok := axBounds(m.ref)
	return ok && w > 0 && h > 0, nil
}

func (m *macElement) IsFocused() (bool, error) {
	return axBoolAttr(m.ref, "AXFocused", false), nil
}

func (m *macElement) IsKeyboardFocusable() (bool, error) {
	return axSettable(m.ref, "AXFocused"), nil
}

// PerformAction invokes a native action by its AX name; short names like
// "press" are expanded to "AXPress".
func (m *macElement) PerformAction(action string) error {
	if !strings.HasPrefix(action, "AX") && action != "" {
		action = "AX" + strings.ToUpper(action[:1]) + action[1:]
	}
	return axPerform(m.ref, action)
}

func (m *macElement) Scroll(direction string, amount float64) error {
	if bounds, err := m.Bounds(); err == nil {
		x, y := bounds.Center()
		_ = cgMoveMouse(x, y)
	}
	return cgScroll(direction, amount)
}

func (m *macElement) ActivateWindow() error {
	window, err := m.Window()
	if err != nil {
		return err
	}
	if window == nil {
		return automation.NotFoundError("element has no containing window")
	}
	if impl, ok := window.Impl().(*macElement); ok {
		if err := axPerform(impl.ref, "AXRaise"); err != nil {
			return err
		}
	}
	if pid, ok := axPID(m.ref); ok {
		return activatePID(pid)
	}
	return nil
}

func (m *macElement) Application() (*automation.UIElement, error) {
	pid, ok := axPID(m.ref)
	if !ok {
		return nil, automation.PlatformError("cannot resolve owning process")
	}
	app := axAppForPID(pid)
	if app == nil {
		return nil, nil
	}
	return m.engine.newElement(app), nil
}

func (m *macElement) Window() (*automation.UIElement, error) {
	if window := axElementAttr(m.ref, "AXWindow"); window != nil {
		return m.engine.newElement(window), nil
	}
	// Walk up until an AXWindow shows up; some elements lack the direct
	// window attribute.
	current := m.ref.retain()
	for current != nil {
		if axStringAttr(current, "AXRole") == "AXWindow" {
			return m.engine.newElement(current), nil
		}
		current = axElementAttr(current, "AXParent")
	}
	return nil, nil
}

func (m *macElement) ProcessID() (int32, error) {
	pid, ok := axPID(m.ref)
	if !ok {
		return 0, automation.PlatformError("cannot resolve owning process")
	}
	return pid, nil
}

// inKnownBrowser reports whether the element belongs to a known browser
// process.
func (m *macElement) inKnownBrowser() bool {
	pid, ok := axPID(m.ref)
	if !ok {
		return false
	}
	return isKnownBrowser(appNameForPID(pid))
}
