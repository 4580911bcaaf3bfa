//go:build windows

package windows

import (
	"strings"
	"time"
	"unsafe"

	"golang.org/x/sys/windows"

	"github.com/axdriver/axdriver/pkg/automation"
)

var (
	user32 = windows.NewLazySystemDLL("user32.dll")

	procSendInput           = user32.NewProc("SendInput")
	procSetCursorPos        = user32.NewProc("SetCursorPos")
	procSetForegroundWindow = user32.NewProc("SetForegroundWindow")
	procShowWindow          = user32.NewProc("ShowWindow")
	procGetSystemMetrics    = user32.NewProc("GetSystemMetrics")
)

const (
	inputMouse    = 0
	inputKeyboard = 1

	mouseEventMove      = 0x0001
	mouseEventLeftDown  = 0x0002
	mouseEventLeftUp    = 0x0004
	mouseEventRightDown = 0x0008
	mouseEventRightUp   = 0x0010
	mouseEventWheel     = 0x0800
	mouseEventHWheel    = 0x1000
	mouseEventAbsolute  = 0x8000

	keyEventKeyUp   = 0x0002
	keyEventUnicode = 0x0004

	wheelDelta = 120

	smCXScreen = 0
	smCYScreen = 1

	swRestore = 9
)

// input mirrors the Win32 INPUT struct. The union is sized for MOUSEINPUT,
// the largest member on amd64.
type input struct {
	inputType uint32
	_         uint32
	mi        mouseInput
}

type mouseInput struct {
	dx        int32
	dy        int32
	mouseData uint32
	flags     uint32
	time      uint32
	extraInfo uintptr
}

type keyboardInput struct {
	vk        uint16
	scan      uint16
	flags     uint32
	time      uint32
	extraInfo uintptr
	_         [8]byte
}

func sendInputs(inputs []input) error {
	n, _, err := procSendInput.Call(
		uintptr(len(inputs)),
		uintptr(unsafe.Pointer(&inputs[0])),
		unsafe.Sizeof(inputs[0]),
	)
	if int(n) != len(inputs) {
		return automation.PlatformError("SendInput injected %d of %d events: %v", n, len(inputs), err)
	}
	return nil
}

func keyboardEvent(vk uint16, scan uint16, flags uint32) input {
	ki := keyboardInput{vk: vk, scan: scan, flags: flags}
	var in input
	in.inputType = inputKeyboard
	*(*keyboardInput)(unsafe.Pointer(&in.mi)) = ki
	return in
}

// mouseMove positions the cursor in screen coordinates.
func mouseMove(x, y int32) error {
	if r, _, err := procSetCursorPos.Call(uintptr(x), uintptr(y)); r == 0 {
		return automation.PlatformError("SetCursorPos(%d, %d) failed: %v", x, y, err)
	}
	return nil
}

// mouseClick moves to the point and clicks. count 2 produces a double click.
func mouseClick(x, y int32, rightButton bool, count int) error {
	if err := mouseMove(x, y); err != nil {
		return err
	}
	time.Sleep(10 * time.Millisecond)

	down, up := uint32(mouseEventLeftDown), uint32(mouseEventLeftUp)
	if rightButton {
		down, up = mouseEventRightDown, mouseEventRightUp
	}
	for i := 0; i < count; i++ {
		events := []input{
			{inputType: inputMouse, mi: mouseInput{flags: down}},
			{inputType: inputMouse, mi: mouseInput{flags: up}},
		}
		if err := sendInputs(events); err != nil {
			return err
		}
	}
	return nil
}

// mouseScroll scrolls by whole wheel notches at the current cursor position.
func mouseScroll(direction string, amount float64) error {
	notches := int32(amount)
	if notches == 0 {
		notches = 3
	}
	var flags uint32
	var data int32
	switch strings.ToLower(direction) {
	case "up":
		flags, data = mouseEventWheel, notches*wheelDelta
	case "down":
		flags, data = mouseEventWheel, -notches*wheelDelta
	case "left":
		flags, data = mouseEventHWheel, -notches*wheelDelta
	case "right":
		flags, data = mouseEventHWheel, notches*wheelDelta
	default:
		return automation.InvalidArgumentError("unknown scroll direction %q (want up, down, left or right)", direction)
	}
	return sendInputs([]input{
		{inputType: inputMouse, mi: mouseInput{mouseData: uint32(data), flags: flags}},
	})
}

// typeText injects text as Unicode key events, independent of keyboard
// layout.
func typeText(text string) error {
	for _, r := range text {
		for _, unit := range utf16Units(r) {
			events := []input{
				keyboardEvent(0, unit, keyEventUnicode),
				keyboardEvent(0, unit, keyEventUnicode|keyEventKeyUp),
			}
			if err := sendInputs(events); err != nil {
				return err
			}
		}
		time.Sleep(2 * time.Millisecond)
	}
	return nil
}

func utf16Units(r rune) []uint16 {
	if r < 0x10000 {
		return []uint16{uint16(r)}
	}
	r -= 0x10000
	return []uint16{uint16(0xD800 + (r >> 10)), uint16(0xDC00 + (r & 0x3FF))}
}

// Windows virtual key codes.
var vkMap = map[string]uint16{
	"a": 0x41, "b": 0x42, "c": 0x43, "d": 0x44, "e": 0x45, "f": 0x46,
	"g": 0x47, "h": 0x48, "i": 0x49, "j": 0x4A, "k": 0x4B, "l": 0x4C,
	"m": 0x4D, "n": 0x4E, "o": 0x4F, "p": 0x50, "q": 0x51, "r": 0x52,
	"s": 0x53, "t": 0x54, "u": 0x55, "v": 0x56, "w": 0x57, "x": 0x58,
	"y": 0x59, "z": 0x5A,
	"0": 0x30, "1": 0x31, "2": 0x32, "3": 0x33, "4": 0x34,
	"5": 0x35, "6": 0x36, "7": 0x37, "8": 0x38, "9": 0x39,
	"return": 0x0D, "enter": 0x0D, "tab": 0x09, "space": 0x20,
	"backspace": 0x08, "delete": 0x2E, "escape": 0x1B, "esc": 0x1B,
	"up": 0x26, "down": 0x28, "left": 0x25, "right": 0x27,
	"home": 0x24, "end": 0x23, "pageup": 0x21, "pagedown": 0x22,
	"insert": 0x2D,
	"f1":     0x70, "f2": 0x71, "f3": 0x72, "f4": 0x73, "f5": 0x74,
	"f6": 0x75, "f7": 0x76, "f8": 0x77, "f9": 0x78, "f10": 0x79,
	"f11": 0x7A, "f12": 0x7B,
}

var modifierVKs = map[string]uint16{
	"ctrl": 0x11, "control": 0x11,
	"shift": 0x10,
	"alt":   0x12, "opt": 0x12, "option": 0x12,
	"win": 0x5B, "cmd": 0x5B, "meta": 0x5B,
}

// pressKeyCombo sends a combo like "enter" or "ctrl+shift+t": modifiers
// down, key tap, modifiers up in reverse order.
func pressKeyCombo(combo string) error {
	var modifiers []uint16
	var key uint16
	found := false

	for _, part := range strings.Split(combo, "+") {
		part = strings.ToLower(strings.TrimSpace(part))
		if vk, ok := modifierVKs[part]; ok {
			modifiers = append(modifiers, vk)
		} else if vk, ok := vkMap[part]; ok {
			if found {
				return automation.InvalidArgumentError("combo %q names more than one non-modifier key", combo)
			}
			key = vk
			found = true
		} else {
			return automation.InvalidArgumentError("unknown key %q in combo %q", part, combo)
		}
	}
	if !found {
		return automation.InvalidArgumentError("combo %q has only modifiers, no key", combo)
	}

	var events []input
	for _, mod := range modifiers {
		events = append(events, keyboardEvent(mod, 0, 0))
	}
	events = append(events, keyboardEvent(key, 0, 0), keyboardEvent(key, 0, keyEventKeyUp))
	for i := len(modifiers) - 1; i >= 0; i-- {
		events = append(events, keyboardEvent(modifiers[i], 0, keyEventKeyUp))
	}
	return sendInputs(events)
}

// bringWindowToFront restores and foregrounds a native window.
func bringWindowToFront(hwnd uintptr) error {
	if hwnd == 0 {
		return automation.InvalidArgumentError("window handle is zero")
	}
	procShowWindow.Call(hwnd, swRestore)
	if r, _, err := procSetForegroundWindow.Call(hwnd); r == 0 {
		return automation.PlatformError("SetForegroundWindow failed: %v", err)
	}
	return nil
}
