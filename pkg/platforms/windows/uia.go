//go:build windows

package windows

import (
	"runtime"
	"unsafe"

	"github.com/axdriver/axdriver/pkg/automation"
)

// Vtable slots, counted from IUnknown (slots 0-2). Hard offsets into the
// UIAutomationClient interfaces; the layouts are frozen by the COM contract.
const (
	// IUIAutomation
	slotGetRootElement    = 5
	slotElementFromHandle = 6
	slotGetFocusedElement = 8
	slotGetRawViewWalker  = 16

	// IUIAutomationElement
	slotSetFocus                   = 3
	slotGetCurrentPattern          = 16
	slotCurrentProcessID           = 20
	slotCurrentControlType         = 21
	slotCurrentName                = 23
	slotCurrentHasKeyboardFocus    = 26
	slotCurrentIsKeyboardFocusable = 27
	slotCurrentIsEnabled           = 28
	slotCurrentAutomationID        = 29
	slotCurrentClassName           = 30
	slotCurrentHelpText            = 31
	slotCurrentNativeWindowHandle  = 36
	slotCurrentIsOffscreen         = 38
	slotCurrentBoundingRectangle   = 43
	slotGetClickablePoint          = 84

	// IUIAutomationTreeWalker
	slotGetParentElement      = 3
	slotGetFirstChildElement  = 4
	slotGetNextSiblingElement = 6

	// IUIAutomationInvokePattern
	slotInvoke = 3

	// IUIAutomationValuePattern
	slotSetValue        = 3
	slotGetCurrentValue = 4

	// IUIAutomationTogglePattern
	slotToggle = 3
)

// UIA pattern identifiers.
const (
	patternInvoke = 10000
	patternValue  = 10002
	patternToggle = 10015
)

type rect struct {
	left, top, right, bottom int32
}

type point struct {
	x, y int32
}

// uiaObject is a released-on-GC COM pointer. UIA objects are free-threaded,
// so handles may cross goroutines.
type uiaObject struct {
	ptr unsafe.Pointer
}

func newUIAObject(ptr unsafe.Pointer) *uiaObject {
	if ptr == nil {
		return nil
	}
	o := &uiaObject{ptr: ptr}
	runtime.SetFinalizer(o, func(o *uiaObject) {
		release(o.ptr)
	})
	return o
}

func (o *uiaObject) call(slot uintptr, args ...uintptr) uint32 {
	return comCall(o.ptr, slot, args...)
}

// uia wraps IUIAutomation.
type uia struct {
	obj    *uiaObject
	walker *uiaObject
}

func newUIA() (*uia, error) {
	ptr, err := newUIAutomation()
	if err != nil {
		return nil, err
	}
	u := &uia{obj: newUIAObject(ptr)}

	var walker unsafe.Pointer
	if hr := u.obj.call(slotGetRawViewWalker, uintptr(unsafe.Pointer(&walker))); hr != hrOK || walker == nil {
		return nil, automation.PlatformError("failed to get UI Automation raw view walker: 0x%08x", hr)
	}
	u.walker = newUIAObject(walker)
	return u, nil
}

func (u *uia) rootElement() (*uiaObject, error) {
	var el unsafe.Pointer
	if hr := u.obj.call(slotGetRootElement, uintptr(unsafe.Pointer(&el))); hr != hrOK || el == nil {
		return nil, automation.PlatformError("failed to get UI Automation root element: 0x%08x", hr)
	}
	return newUIAObject(el), nil
}

func (u *uia) focusedElement() (*uiaObject, error) {
	var el unsafe.Pointer
	if hr := u.obj.call(slotGetFocusedElement, uintptr(unsafe.Pointer(&el))); hr != hrOK || el == nil {
		return nil, automation.NotFoundError("no element has keyboard focus")
	}
	return newUIAObject(el), nil
}

func (u *uia) elementFromHandle(hwnd uintptr) (*uiaObject, error) {
	var el unsafe.Pointer
	if hr := u.obj.call(slotElementFromHandle, hwnd, uintptr(unsafe.Pointer(&el))); hr != hrOK || el == nil {
		return nil, automation.PlatformError("failed to resolve element for window handle %#x: 0x%08x", hwnd, hr)
	}
	return newUIAObject(el), nil
}

func (u *uia) parent(el *uiaObject) *uiaObject {
	var out unsafe.Pointer
	if hr := u.walker.call(slotGetParentElement, uintptr(el.ptr), uintptr(unsafe.Pointer(&out))); hr != hrOK {
		return nil
	}
	return newUIAObject(out)
}

// children enumerates direct children through the raw view walker.
func (u *uia) children(el *uiaObject) []*uiaObject {
	var out []*uiaObject
	var child unsafe.Pointer
	if hr := u.walker.call(slotGetFirstChildElement, uintptr(el.ptr), uintptr(unsafe.Pointer(&child))); hr != hrOK {
		return nil
	}
	for child != nil {
		current := newUIAObject(child)
		out = append(out, current)
		var next unsafe.Pointer
		if hr := u.walker.call(slotGetNextSiblingElement, uintptr(current.ptr), uintptr(unsafe.Pointer(&next))); hr != hrOK {
			break
		}
		child = next
	}
	return out
}

// Element property accessors. Failed property reads return zero values;
// elements can disappear between the walk and the read.

func elementName(el *uiaObject) string {
	var bstr uintptr
	if hr := el.call(slotCurrentName, uintptr(unsafe.Pointer(&bstr))); hr != hrOK {
		return ""
	}
	return bstrToString(bstr)
}

func elementAutomationID(el *uiaObject) string {
	var bstr uintptr
	if hr := el.call(slotCurrentAutomationID, uintptr(unsafe.Pointer(&bstr))); hr != hrOK {
		return ""
	}
	return bstrToString(bstr)
}

func elementClassName(el *uiaObject) string {
	var bstr uintptr
	if hr := el.call(slotCurrentClassName, uintptr(unsafe.Pointer(&bstr))); hr != hrOK {
		return ""
	}
	return bstrToString(bstr)
}

func elementHelpText(el *uiaObject) string {
	var bstr uintptr
	if hr := el.call(slotCurrentHelpText, uintptr(unsafe.Pointer(&bstr))); hr != hrOK {
		return ""
	}
	return bstrToString(bstr)
}

func elementControlType(el *uiaObject) int32 {
	var ct int32
	if hr := el.call(slotCurrentControlType, uintptr(unsafe.Pointer(&ct))); hr != hrOK {
		return 0
	}
	return ct
}

func elementProcessID(el *uiaObject) int32 {
	var pid int32
	if hr := el.call(slotCurrentProcessID, uintptr(unsafe.Pointer(&pid))); hr != hrOK {
		return 0
	}
	return pid
}

func elementBool(el *uiaObject, slot uintptr) bool {
	var v int32
	if hr := el.call(slot, uintptr(unsafe.Pointer(&v))); hr != hrOK {
		return false
	}
	return v != 0
}

func elementEnabled(el *uiaObject) bool   { return elementBool(el, slotCurrentIsEnabled) }
func elementOffscreen(el *uiaObject) bool { return elementBool(el, slotCurrentIsOffscreen) }
func elementFocused(el *uiaObject) bool   { return elementBool(el, slotCurrentHasKeyboardFocus) }
func elementFocusable(el *uiaObject) bool {
	return elementBool(el, slotCurrentIsKeyboardFocusable)
}

func elementBounds(el *uiaObject) (rect, bool) {
	var r rect
	if hr := el.call(slotCurrentBoundingRectangle, uintptr(unsafe.Pointer(&r))); hr != hrOK {
		return rect{}, false
	}
	return r, true
}

func elementHWND(el *uiaObject) uintptr {
	var hwnd uintptr
	if hr := el.call(slotCurrentNativeWindowHandle, uintptr(unsafe.Pointer(&hwnd))); hr != hrOK {
		return 0
	}
	return hwnd
}

func elementSetFocus(el *uiaObject) error {
	if hr := el.call(slotSetFocus); hr != hrOK {
		return automation.PlatformError("SetFocus failed: 0x%08x", hr)
	}
	return nil
}

func elementClickablePoint(el *uiaObject) (point, bool) {
	var p point
	var got int32
	if hr := el.call(slotGetClickablePoint,
		uintptr(unsafe.Pointer(&p)), uintptr(unsafe.Pointer(&got))); hr != hrOK || got == 0 {
		return point{}, false
	}
	return p, true
}

// elementPattern retrieves a control pattern object, or nil when the element
// does not support it.
func elementPattern(el *uiaObject, patternID uintptr) *uiaObject {
	var pattern unsafe.Pointer
	if hr := el.call(slotGetCurrentPattern, patternID, uintptr(unsafe.Pointer(&pattern))); hr != hrOK {
		return nil
	}
	return newUIAObject(pattern)
}

func invokeElement(el *uiaObject) error {
	pattern := elementPattern(el, patternInvoke)
	if pattern == nil {
		return automation.UnsupportedError("element does not support the Invoke pattern")
	}
	if hr := pattern.call(slotInvoke); hr != hrOK {
		return automation.PlatformError("Invoke failed: 0x%08x", hr)
	}
	return nil
}

func setElementValue(el *uiaObject, value string) error {
	pattern := elementPattern(el, patternValue)
	if pattern == nil {
		return automation.UnsupportedError("element does not support the Value pattern")
	}
	bstr := stringToBSTR(value)
	defer procSysFreeString.Call(bstr)
	if hr := pattern.call(slotSetValue, bstr); hr != hrOK {
		return automation.PlatformError("SetValue failed: 0x%08x", hr)
	}
	return nil
}

func elementValue(el *uiaObject) string {
	pattern := elementPattern(el, patternValue)
	if pattern == nil {
		return ""
	}
	var bstr uintptr
	if hr := pattern.call(slotGetCurrentValue, uintptr(unsafe.Pointer(&bstr))); hr != hrOK {
		return ""
	}
	return bstrToString(bstr)
}

func toggleElement(el *uiaObject) error {
	pattern := elementPattern(el, patternToggle)
	if pattern == nil {
		return automation.UnsupportedError("element does not support the Toggle pattern")
	}
	if hr := pattern.call(slotToggle); hr != hrOK {
		return automation.PlatformError("Toggle failed: 0x%08x", hr)
	}
	return nil
}
