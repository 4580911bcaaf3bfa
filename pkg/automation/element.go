package automation

// Rect is an element's screen rectangle in global coordinates.
type Rect struct {
	X      float64 `json:"x"      yaml:"x"`
	Y      float64 `json:"y"      yaml:"y"`
	Width  float64 `json:"width"  yaml:"width"`
	Height float64 `json:"height" yaml:"height"`
}

// Center returns the midpoint of the rectangle.
func (r Rect) Center() (float64, float64) {
	return r.X + r.Width/2, r.Y + r.Height/2
}

// Point is a screen coordinate.
type Point struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
}

// ClickResult records which fallback strategy actually performed a click, for
// diagnosability. Coordinates is set only when a mouse simulation was used.
type ClickResult struct {
	Method      string `json:"method"                yaml:"method"`
	Coordinates *Point `json:"coordinates,omitempty" yaml:"coordinates,omitempty"`
	Details     string `json:"details"               yaml:"details"`
}

// CommandOutput carries the result of a terminal command execution.
type CommandOutput struct {
	ExitStatus int    `json:"exit_status" yaml:"exit_status"`
	Stdout     string `json:"stdout"      yaml:"stdout"`
	Stderr     string `json:"stderr"      yaml:"stderr"`
}

// ScreenshotResult holds raw captured pixels. ImageData is tightly packed
// RGBA, Width*Height*4 bytes.
type ScreenshotResult struct {
	ImageData []byte
	Width     int
	Height    int
}

// UIElementAttributes is a point-in-time snapshot of an element's state.
// Two snapshots of the same element with no intervening native state change
// compare equal field by field (Properties excluded from that guarantee only
// when the platform reports transient values in it).
type UIElementAttributes struct {
	Role        string            `json:"role"                  yaml:"role"`
	Name        string            `json:"name,omitempty"        yaml:"name,omitempty"`
	Label       string            `json:"label,omitempty"       yaml:"label,omitempty"`
	Value       string            `json:"value,omitempty"       yaml:"value,omitempty"`
	Description string            `json:"description,omitempty" yaml:"description,omitempty"`
	Properties  map[string]string `json:"properties,omitempty"  yaml:"properties,omitempty"`
	Bounds      *Rect             `json:"bounds,omitempty"      yaml:"bounds,omitempty"`
	Enabled     bool              `json:"enabled"               yaml:"enabled"`
	Visible     bool              `json:"visible"               yaml:"visible"`
	Focused     bool              `json:"focused,omitempty"     yaml:"focused,omitempty"`
}

// UINode is a serializable snapshot of a UI subtree.
type UINode struct {
	Attributes UIElementAttributes `json:"attributes"         yaml:"attributes"`
	Children   []UINode            `json:"children,omitempty" yaml:"children,omitempty"`
}

// ElementImpl is the platform-specific element contract. Implementations wrap
// a native handle with shared ownership (native reference counting); they
// never enforce staleness proactively — a destroyed native object surfaces as
// a failed subsequent call.
type ElementImpl interface {
	// ID returns the synthesized stable identifier, or "" when the native
	// attributes needed to compute it are unavailable.
	ID() string
	Role() string
	Attributes() UIElementAttributes
	Children() ([]*UIElement, error)
	Parent() (*UIElement, error)
	Bounds() (Rect, error)
	Click() (*ClickResult, error)
	DoubleClick() (*ClickResult, error)
	RightClick() error
	Hover() error
	Focus() error
	TypeText(text string) error
	PressKey(combo string) error
	Text(maxDepth int) (string, error)
	SetValue(value string) error
	IsEnabled() (bool, error)
	IsVisible() (bool, error)
	IsFocused() (bool, error)
	IsKeyboardFocusable() (bool, error)
	PerformAction(action string) error
	Scroll(direction string, amount float64) error
	ActivateWindow() error
	Application() (*UIElement, error)
	Window() (*UIElement, error)
	ProcessID() (int32, error)
}

// UIElement is an opaque handle to a UI element in a desktop application. It
// wraps a platform-specific implementation and forwards every operation to
// it. The zero value is not usable; adapters construct elements with
// NewUIElement.
type UIElement struct {
	impl ElementImpl
}

// NewUIElement wraps a platform-specific implementation.
func NewUIElement(impl ElementImpl) *UIElement {
	return &UIElement{impl: impl}
}

// Impl exposes the platform implementation for adapters that need to unwrap
// their own element type (e.g. to use it as a native search root).
func (e *UIElement) Impl() ElementImpl { return e.impl }

// ID returns the element's heuristic stable identifier. IDs are hashes of
// quasi-stable attributes; distinct elements with identical shape may
// collide, so callers caching by ID must tolerate collisions.
func (e *UIElement) ID() string { return e.impl.ID() }

// Role returns the element's generic role (e.g. "button", "window").
func (e *UIElement) Role() string { return e.impl.Role() }

// Attributes fetches a fresh attribute snapshot from the native element.
func (e *UIElement) Attributes() UIElementAttributes { return e.impl.Attributes() }

// Children returns the element's current children, re-derived from the live
// native tree on every call.
func (e *UIElement) Children() ([]*UIElement, error) { return e.impl.Children() }

// Parent returns the element's parent, or nil at the tree root.
func (e *UIElement) Parent() (*UIElement, error) { return e.impl.Parent() }

// Bounds returns the element's screen rectangle.
func (e *UIElement) Bounds() (Rect, error) { return e.impl.Bounds() }

// Click performs the platform click fallback chain and reports which
// strategy succeeded.
func (e *UIElement) Click() (*ClickResult, error) { return e.impl.Click() }

// DoubleClick double-clicks the element.
func (e *UIElement) DoubleClick() (*ClickResult, error) { return e.impl.DoubleClick() }

// RightClick right-clicks the element. Unsupported on macOS.
func (e *UIElement) RightClick() error { return e.impl.RightClick() }

// Hover moves the pointer over the element. Unsupported on Windows.
func (e *UIElement) Hover() error { return e.impl.Hover() }

// Focus gives the element keyboard focus.
func (e *UIElement) Focus() error { return e.impl.Focus() }

// TypeText types text into the element.
func (e *UIElement) TypeText(text string) error { return e.impl.TypeText(text) }

// PressKey sends a key combination such as "enter" or "ctrl+shift+t" while
// the element is the key target.
func (e *UIElement) PressKey(combo string) error { return e.impl.PressKey(combo) }

// Text aggregates visible text from the element and its descendants down to
// maxDepth, deduplicated, because many accessibility trees fragment visible
// text across leaf runs.
func (e *UIElement) Text(maxDepth int) (string, error) { return e.impl.Text(maxDepth) }

// SetValue sets the element's value directly through the accessibility API.
func (e *UIElement) SetValue(value string) error { return e.impl.SetValue(value) }

// IsEnabled reports whether the element accepts interaction.
func (e *UIElement) IsEnabled() (bool, error) { return e.impl.IsEnabled() }

// IsVisible reports whether the element is on screen.
func (e *UIElement) IsVisible() (bool, error) { return e.impl.IsVisible() }

// IsFocused reports whether the element has keyboard focus.
func (e *UIElement) IsFocused() (bool, error) { return e.impl.IsFocused() }

// IsKeyboardFocusable reports whether the element can take keyboard focus.
func (e *UIElement) IsKeyboardFocusable() (bool, error) { return e.impl.IsKeyboardFocusable() }

// PerformAction invokes a named native accessibility action.
func (e *UIElement) PerformAction(action string) error { return e.impl.PerformAction(action) }

// Scroll scrolls within the element. direction is one of "up", "down",
// "left", "right"; amount is in platform scroll units.
func (e *UIElement) Scroll(direction string, amount float64) error {
	return e.impl.Scroll(direction, amount)
}

// ActivateWindow brings the window containing the element to the foreground.
func (e *UIElement) ActivateWindow() error { return e.impl.ActivateWindow() }

// Application returns the application element containing this element, or
// nil if none can be derived.
func (e *UIElement) Application() (*UIElement, error) { return e.impl.Application() }

// Window returns the window element containing this element, or nil if none
// can be derived.
func (e *UIElement) Window() (*UIElement, error) { return e.impl.Window() }

// ProcessID returns the PID owning the element.
func (e *UIElement) ProcessID() (int32, error) { return e.impl.ProcessID() }

// Snapshot converts the element and its descendants (to maxDepth levels, 0
// meaning just the element itself) into a serializable UINode tree. Children
// that fail to enumerate are skipped, matching best-effort traversal.
func (e *UIElement) Snapshot(maxDepth int) UINode {
	node := UINode{Attributes: e.Attributes()}
	if maxDepth <= 0 {
		return node
	}
	children, err := e.Children()
	if err != nil {
		return node
	}
	for _, child := range children {
		node.Children = append(node.Children, child.Snapshot(maxDepth-1))
	}
	return node
}
