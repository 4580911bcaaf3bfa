//go:build darwin

package darwin

/*
#cgo CFLAGS: -x objective-c
#cgo LDFLAGS: -framework CoreGraphics -framework ApplicationServices -framework Foundation -framework Carbon
#include <CoreGraphics/CoreGraphics.h>
#include <Carbon/Carbon.h>

// Click at screen coordinates with specified button and click count.
// button: 0=left, 1=right (maps to kCGMouseButton*)
// count: 1=single, 2=double
static int cg_click(float x, float y, int button, int count) {
    CGPoint point = CGPointMake(x, y);

    CGEventType downType, upType;
    CGMouseButton cgButton;
    if (button == 1) {
        cgButton = kCGMouseButtonRight;
        downType = kCGEventRightMouseDown;
        upType = kCGEventRightMouseUp;
    } else {
        cgButton = kCGMouseButtonLeft;
        downType = kCGEventLeftMouseDown;
        upType = kCGEventLeftMouseUp;
    }

    for (int i = 0; i < count; i++) {
        CGEventRef down = CGEventCreateMouseEvent(NULL, downType, point, cgButton);
        CGEventRef up = CGEventCreateMouseEvent(NULL, upType, point, cgButton);
        if (!down || !up) {
            if (down) CFRelease(down);
            if (up) CFRelease(up);
            return -1;
        }
        // Multi-click events need the click state set on both halves.
        CGEventSetIntegerValueField(down, kCGMouseEventClickState, i + 1);
        CGEventSetIntegerValueField(up, kCGMouseEventClickState, i + 1);
        CGEventPost(kCGHIDEventTap, down);
        CGEventPost(kCGHIDEventTap, up);
        CFRelease(down);
        CFRelease(up);
    }
    return 0;
}

static int cg_move_mouse(float x, float y) {
    CGPoint point = CGPointMake(x, y);
    CGEventRef move = CGEventCreateMouseEvent(NULL, kCGEventMouseMoved, point, kCGMouseButtonLeft);
    if (!move) return -1;
    CGEventPost(kCGHIDEventTap, move);
    CFRelease(move);
    return 0;
}

// Type a single Unicode character using CGEvent key simulation.
static void cg_type_char(UniChar ch) {
    CGEventRef keyDown = CGEventCreateKeyboardEvent(NULL, 0, true);
    CGEventRef keyUp = CGEventCreateKeyboardEvent(NULL, 0, false);
    CGEventKeyboardSetUnicodeString(keyDown, 1, &ch);
    CGEventKeyboardSetUnicodeString(keyUp, 1, &ch);
    CGEventPost(kCGHIDEventTap, keyDown);
    CGEventPost(kCGHIDEventTap, keyUp);
    CFRelease(keyDown);
    CFRelease(keyUp);
}

// Press a key combo with modifiers.
static void cg_key_combo(CGKeyCode keyCode, CGEventFlags modifiers) {
    CGEventRef keyDown = CGEventCreateKeyboardEvent(NULL, keyCode, true);
    CGEventRef keyUp = CGEventCreateKeyboardEvent(NULL, keyCode, false);
    CGEventSetFlags(keyDown, modifiers);
    CGEventSetFlags(keyUp, modifiers);
    CGEventPost(kCGHIDEventTap, keyDown);
    CGEventPost(kCGHIDEventTap, keyUp);
    CFRelease(keyDown);
    CFRelease(keyUp);
}

// Scroll using CGEventCreateScrollWheelEvent.
// dy: vertical scroll (positive = up, negative = down)
// dx: horizontal scroll (positive = left, negative = right)
static int cg_scroll(int dy, int dx) {
    CGEventRef scroll = CGEventCreateScrollWheelEvent(
        NULL,
        kCGScrollEventUnitLine,
        2,
        dy,
        dx);
    if (!scroll) return -1;
    CGEventPost(kCGHIDEventTap, scroll);
    CFRelease(scroll);
    return 0;
}
*/
import "C"

import (
	"strings"
	"time"

	"github.com/axdriver/axdriver/pkg/automation"
)

const (
	mouseLeft  = 0
	mouseRight = 1
)

func cgClick(x, y float64, button, count int) error {
	if C.cg_click(C.float(x), C.float(y), C.int(button), C.int(count)) != 0 {
		return automation.PlatformError("failed to click at (%.0f, %.0f)", x, y)
	}
	return nil
}

func cgMoveMouse(x, y float64) error {
	if C.cg_move_mouse(C.float(x), C.float(y)) != 0 {
		return automation.PlatformError("failed to move mouse to (%.0f, %.0f)", x, y)
	}
	return nil
}

// cgTypeText injects text character by character so it works regardless of
// keyboard layout. A small inter-key delay keeps fast apps from dropping
// events.
func cgTypeText(text string) error {
	for _, ch := range text {
		C.cg_type_char(C.UniChar(ch))
		time.Sleep(2 * time.Millisecond)
	}
	return nil
}

func cgScroll(direction string, amount float64) error {
	lines := int(amount)
	if lines == 0 {
		lines = 3
	}
	var dx, dy int
	switch strings.ToLower(direction) {
	case "up":
		dy = lines
	case "down":
		dy = -lines
	case "left":
		dx = lines
	case "right":
		dx = -lines
	default:
		return automation.InvalidArgumentError("unknown scroll direction %q (want up, down, left or right)", direction)
	}
	if C.cg_scroll(C.int(dy), C.int(dx)) != 0 {
		return automation.PlatformError("failed to scroll %s", direction)
	}
	return nil
}

func cgKeyCombo(combo string) error {
	keyCode, modifiers, err := parseKeyCombo(combo)
	if err != nil {
		return err
	}
	C.cg_key_combo(C.CGKeyCode(keyCode), C.CGEventFlags(modifiers))
	return nil
}

// macOS virtual key codes from Carbon Events.h.
var keyCodeMap = map[string]uint16{
	"a": 0x00, "b": 0x0B, "c": 0x08, "d": 0x02, "e": 0x0E, "f": 0x03,
	"g": 0x05, "h": 0x04, "i": 0x22, "j": 0x26, "k": 0x28, "l": 0x25,
	"m": 0x2E, "n": 0x2D, "o": 0x1F, "p": 0x23, "q": 0x0C, "r": 0x0F,
	"s": 0x01, "t": 0x11, "u": 0x20, "v": 0x09, "w": 0x0D, "x": 0x07,
	"y": 0x10, "z": 0x06,
	"0": 0x1D, "1": 0x12, "2": 0x13, "3": 0x14, "4": 0x15,
	"5": 0x17, "6": 0x16, "7": 0x1A, "8": 0x1C, "9": 0x19,
	"return": 0x24, "enter": 0x24, "tab": 0x30, "space": 0x31,
	"delete": 0x33, "backspace": 0x33, "escape": 0x35, "esc": 0x35,
	"up": 0x7E, "down": 0x7D, "left": 0x7B, "right": 0x7C,
	"home": 0x73, "end": 0x77, "pageup": 0x74, "pagedown": 0x79,
	"f1": 0x7A, "f2": 0x78, "f3": 0x63, "f4": 0x76, "f5": 0x60,
	"f6": 0x61, "f7": 0x62, "f8": 0x64, "f9": 0x65, "f10": 0x6D,
	"f11": 0x67, "f12": 0x6F,
}

// macOS modifier key flags.
var modifierMap = map[string]uint64{
	"cmd": uint64(C.kCGEventFlagMaskCommand), "command": uint64(C.kCGEventFlagMaskCommand),
	"meta":  uint64(C.kCGEventFlagMaskCommand),
	"shift": uint64(C.kCGEventFlagMaskShift),
	"ctrl":  uint64(C.kCGEventFlagMaskControl), "control": uint64(C.kCGEventFlagMaskControl),
	"alt": uint64(C.kCGEventFlagMaskAlternate), "opt": uint64(C.kCGEventFlagMaskAlternate), "option": uint64(C.kCGEventFlagMaskAlternate),
}

// parseKeyCombo parses combos like "enter", "cmd+c" or "ctrl+shift+t" into
// a key code and modifier flags.
func parseKeyCombo(combo string) (uint16, uint64, error) {
	var modifiers uint64
	var keyCode uint16
	found := false

	for _, k := range strings.Split(combo, "+") {
		k = strings.ToLower(strings.TrimSpace(k))
		if mod, ok := modifierMap[k]; ok {
			modifiers |= mod
		} else if code, ok := keyCodeMap[k]; ok {
			if found {
				return 0, 0, automation.InvalidArgumentError("combo %q names more than one non-modifier key", combo)
			}
			keyCode = code
			found = true
		} else {
			return 0, 0, automation.InvalidArgumentError("unknown key %q in combo %q", k, combo)
		}
	}
	if !found {
		return 0, 0, automation.InvalidArgumentError("combo %q has only modifiers, no key", combo)
	}
	return keyCode, modifiers, nil
}
