package automation

import (
	"context"
	"strings"
	"time"
)

// fakeElement is an in-memory ElementImpl used to exercise selector
// resolution and locator behavior without a native accessibility tree.
type fakeElement struct {
	role        string
	name        string
	description string
	text        string
	class       string
	bounds      Rect
	enabled     bool
	visible     bool
	focused     bool
	pid         int32
	parent      *fakeElement
	children    []*fakeElement

	clicks    int
	typed     []string
	pressed   []string
	lastValue string
}

func newFakeElement(role, name string, children ...*fakeElement) *fakeElement {
	e := &fakeElement{
		role:     role,
		name:     name,
		enabled:  true,
		visible:  true,
		bounds:   Rect{X: 10, Y: 10, Width: 100, Height: 40},
		children: children,
	}
	for _, c := range children {
		c.parent = e
	}
	return e
}

func (f *fakeElement) ID() string {
	parentLabel := ""
	if f.parent != nil {
		parentLabel = f.parent.name
	}
	return StableID(IDAttributes{
		Role:        f.role,
		Label:       f.name,
		Description: f.description,
		Width:       f.bounds.Width,
		Height:      f.bounds.Height,
		ChildCount:  len(f.children),
		ParentLabel: parentLabel,
	})
}

func (f *fakeElement) Role() string { return f.role }

func (f *fakeElement) Attributes() UIElementAttributes {
	b := f.bounds
	return UIElementAttributes{
		Role:        f.role,
		Name:        f.name,
		Label:       f.name,
		Description: f.description,
		Bounds:      &b,
		Enabled:     f.enabled,
		Visible:     f.visible,
		Focused:     f.focused,
	}
}

func (f *fakeElement) Children() ([]*UIElement, error) {
	out := make([]*UIElement, len(f.children))
	for i, c := range f.children {
		out[i] = NewUIElement(c)
	}
	return out, nil
}

func (f *fakeElement) Parent() (*UIElement, error) {
	if f.parent == nil {
		return nil, nil
	}
	return NewUIElement(f.parent), nil
}

func (f *fakeElement) Bounds() (Rect, error) { return f.bounds, nil }

func (f *fakeElement) Click() (*ClickResult, error) {
	f.clicks++
	return &ClickResult{Method: "Fake", Details: "in-memory click"}, nil
}

func (f *fakeElement) DoubleClick() (*ClickResult, error) {
	f.clicks += 2
	return &ClickResult{Method: "Fake", Details: "in-memory double click"}, nil
}

func (f *fakeElement) RightClick() error { return nil }
func (f *fakeElement) Hover() error      { return nil }
func (f *fakeElement) Focus() error      { f.focused = true; return nil }

func (f *fakeElement) TypeText(text string) error {
	f.typed = append(f.typed, text)
	return nil
}

func (f *fakeElement) PressKey(combo string) error {
	f.pressed = append(f.pressed, combo)
	return nil
}

func (f *fakeElement) Text(maxDepth int) (string, error) {
	parts := f.collectText(maxDepth)
	return strings.Join(parts, " "), nil
}

func (f *fakeElement) collectText(maxDepth int) []string {
	var parts []string
	if f.text != "" {
		parts = append(parts, f.text)
	}
	if maxDepth > 0 {
		for _, c := range f.children {
			parts = append(parts, c.collectText(maxDepth-1)...)
		}
	}
	return parts
}

func (f *fakeElement) SetValue(value string) error { f.lastValue = value; return nil }

func (f *fakeElement) IsEnabled() (bool, error)           { return f.enabled, nil }
func (f *fakeElement) IsVisible() (bool, error)           { return f.visible, nil }
func (f *fakeElement) IsFocused() (bool, error)           { return f.focused, nil }
func (f *fakeElement) IsKeyboardFocusable() (bool, error) { return f.enabled, nil }

func (f *fakeElement) PerformAction(action string) error             { return nil }
func (f *fakeElement) Scroll(direction string, amount float64) error { return nil }
func (f *fakeElement) ActivateWindow() error                         { return nil }

func (f *fakeElement) Application() (*UIElement, error) {
	top := f
	for top.parent != nil {
		top = top.parent
	}
	return NewUIElement(top), nil
}

func (f *fakeElement) Window() (*UIElement, error) { return f.Application() }

func (f *fakeElement) ProcessID() (int32, error) { return f.pid, nil }

func (f *fakeElement) matches(sel Selector) bool {
	switch sel.Kind {
	case KindRole:
		if f.role != sel.Role {
			return false
		}
		return sel.Name == "" || strings.Contains(strings.ToLower(f.name), strings.ToLower(sel.Name))
	case KindID:
		return f.ID() == sel.Value
	case KindName:
		return strings.Contains(strings.ToLower(f.name), strings.ToLower(sel.Value))
	case KindText:
		return strings.Contains(strings.ToLower(f.text), strings.ToLower(sel.Value))
	case KindClassName:
		return f.class == sel.Value
	default:
		return false
	}
}

// stubEngine satisfies the parts of AccessibilityEngine the locator and
// chain tests never touch.
type stubEngine struct{}

func (stubEngine) RootElement() *UIElement             { return nil }
func (stubEngine) FocusedElement() (*UIElement, error) { return nil, nil }
func (stubEngine) Applications() ([]*UIElement, error) { return nil, nil }
func (stubEngine) ApplicationByName(string) (*UIElement, error) {
	return nil, UnsupportedError("fake engine")
}
func (stubEngine) ApplicationByPID(int32, time.Duration) (*UIElement, error) {
	return nil, UnsupportedError("fake engine")
}
func (stubEngine) OpenApplication(string) (*UIElement, error) {
	return nil, UnsupportedError("fake engine")
}
func (stubEngine) ActivateApplication(string) error { return UnsupportedError("fake engine") }
func (stubEngine) OpenURL(string, string) error     { return UnsupportedError("fake engine") }
func (stubEngine) OpenFile(string) error            { return UnsupportedError("fake engine") }
func (stubEngine) RunCommand(context.Context, string, string) (*CommandOutput, error) {
	return nil, UnsupportedError("fake engine")
}
func (stubEngine) CaptureScreen(context.Context) (*ScreenshotResult, error) {
	return nil, UnsupportedError("fake engine")
}
func (stubEngine) CaptureMonitorByName(context.Context, string) (*ScreenshotResult, error) {
	return nil, UnsupportedError("fake engine")
}
func (stubEngine) OCRImagePath(context.Context, string) (string, error) {
	return "", UnsupportedError("fake engine")
}
func (stubEngine) OCRScreenshot(context.Context, *ScreenshotResult) (string, error) {
	return "", UnsupportedError("fake engine")
}
func (stubEngine) ActivateBrowserWindowByTitle(string) error { return UnsupportedError("fake engine") }
func (stubEngine) CurrentBrowserWindow(context.Context) (*UIElement, error) {
	return nil, UnsupportedError("fake engine")
}
func (stubEngine) CurrentWindow(context.Context) (*UIElement, error) {
	return nil, UnsupportedError("fake engine")
}
func (stubEngine) CurrentApplication(context.Context) (*UIElement, error) {
	return nil, UnsupportedError("fake engine")
}
func (stubEngine) FindWindowByCriteria(context.Context, string, time.Duration) (*UIElement, error) {
	return nil, UnsupportedError("fake engine")
}
func (stubEngine) WindowTree(int32, string, int) (*UINode, error) {
	return nil, UnsupportedError("fake engine")
}

// fakeEngine resolves selectors against an in-memory tree. notFoundUntil
// makes the first N FindElement calls fail, simulating an element that
// appears late; failWith overrides every search with a fixed error.
type fakeEngine struct {
	stubEngine

	root          *fakeElement
	notFoundUntil int
	failWith      error

	findCalls    int
	findAllCalls int
	findTimeouts []time.Duration
}

func (e *fakeEngine) RootElement() *UIElement { return NewUIElement(e.root) }

func (e *fakeEngine) FindElement(selector Selector, root *UIElement, timeout time.Duration) (*UIElement, error) {
	e.findCalls++
	e.findTimeouts = append(e.findTimeouts, timeout)
	if e.failWith != nil {
		return nil, e.failWith
	}
	if e.findCalls <= e.notFoundUntil {
		return nil, notFoundError("element not yet present: %s", selector)
	}
	if selector.Kind == KindChain {
		return ResolveChainFirst(e, selector.Selectors, root, timeout)
	}
	matches, err := e.FindElements(selector, root, timeout, 0)
	if err != nil {
		return nil, err
	}
	return matches[0], nil
}

func (e *fakeEngine) FindElements(selector Selector, root *UIElement, timeout time.Duration, depth int) ([]*UIElement, error) {
	e.findAllCalls++
	if e.failWith != nil {
		return nil, e.failWith
	}
	if selector.Kind == KindChain {
		return ResolveChain(e, selector.Selectors, root, timeout, depth)
	}

	scope := e.root
	if root != nil {
		scope = root.Impl().(*fakeElement)
	}
	var matches []*UIElement
	var walk func(el *fakeElement)
	walk = func(el *fakeElement) {
		if el.matches(selector) {
			matches = append(matches, NewUIElement(el))
		}
		for _, c := range el.children {
			walk(c)
		}
	}
	for _, c := range scope.children {
		walk(c)
	}
	if len(matches) == 0 {
		return nil, notFoundError("no element matches %s", selector)
	}
	return matches, nil
}
