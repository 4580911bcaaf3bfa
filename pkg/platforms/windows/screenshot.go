//go:build windows

package windows

import (
	"strings"
	"syscall"
	"unsafe"

	"golang.org/x/sys/windows"

	"github.com/axdriver/axdriver/pkg/automation"
)

var (
	gdi32 = windows.NewLazySystemDLL("gdi32.dll")

	procGetDC                  = user32.NewProc("GetDC")
	procReleaseDC              = user32.NewProc("ReleaseDC")
	procCreateCompatibleDC     = gdi32.NewProc("CreateCompatibleDC")
	procCreateCompatibleBitmap = gdi32.NewProc("CreateCompatibleBitmap")
	procSelectObject           = gdi32.NewProc("SelectObject")
	procBitBlt                 = gdi32.NewProc("BitBlt")
	procGetDIBits              = gdi32.NewProc("GetDIBits")
	procDeleteObject           = gdi32.NewProc("DeleteObject")
	procDeleteDC               = gdi32.NewProc("DeleteDC")
)

const (
	srcCopy      = 0x00CC0020
	captureBlt   = 0x40000000
	biRGB        = 0
	dibRGBColors = 0
)

type bitmapInfoHeader struct {
	size          uint32
	width         int32
	height        int32
	planes        uint16
	bitCount      uint16
	compression   uint32
	sizeImage     uint32
	xPelsPerMeter int32
	yPelsPerMeter int32
	clrUsed       uint32
	clrImportant  uint32
}

type bitmapInfo struct {
	header bitmapInfoHeader
	colors [3]uint32
}

// captureScreenRegion grabs a screen rectangle as tightly packed RGBA.
func captureScreenRegion(x, y, width, height int32) (*automation.ScreenshotResult, error) {
	if width <= 0 || height <= 0 {
		return nil, automation.InvalidArgumentError("capture region %dx%d is empty", width, height)
	}

	screenDC, _, _ := procGetDC.Call(0)
	if screenDC == 0 {
		return nil, automation.PlatformError("failed to get screen device context")
	}
	defer procReleaseDC.Call(0, screenDC)

	memDC, _, _ := procCreateCompatibleDC.Call(screenDC)
	if memDC == 0 {
		return nil, automation.PlatformError("failed to create memory device context")
	}
	defer procDeleteDC.Call(memDC)

	bitmap, _, _ := procCreateCompatibleBitmap.Call(screenDC, uintptr(width), uintptr(height))
	if bitmap == 0 {
		return nil, automation.PlatformError("failed to create capture bitmap")
	}
	defer procDeleteObject.Call(bitmap)

	old, _, _ := procSelectObject.Call(memDC, bitmap)
	defer procSelectObject.Call(memDC, old)

	if r, _, err := procBitBlt.Call(memDC, 0, 0, uintptr(width), uintptr(height),
		screenDC, uintptr(x), uintptr(y), srcCopy|captureBlt); r == 0 {
		return nil, automation.PlatformError("BitBlt failed: %v", err)
	}

	// Negative height requests a top-down DIB.
	info := bitmapInfo{header: bitmapInfoHeader{
		width:       width,
		height:      -height,
		planes:      1,
		bitCount:    32,
		compression: biRGB,
	}}
	info.header.size = uint32(unsafe.Sizeof(info.header))

	buf := make([]byte, int(width)*int(height)*4)
	if r, _, err := procGetDIBits.Call(memDC, bitmap, 0, uintptr(height),
		uintptr(unsafe.Pointer(&buf[0])), uintptr(unsafe.Pointer(&info)), dibRGBColors); r == 0 {
		return nil, automation.PlatformError("GetDIBits failed: %v", err)
	}

	// GDI produces BGRA; swap to RGBA in place.
	for i := 0; i < len(buf); i += 4 {
		buf[i], buf[i+2] = buf[i+2], buf[i]
		buf[i+3] = 0xFF
	}

	return &automation.ScreenshotResult{
		ImageData: buf,
		Width:     int(width),
		Height:    int(height),
	}, nil
}

// capturePrimaryScreen captures the primary monitor.
func capturePrimaryScreen() (*automation.ScreenshotResult, error) {
	w, _, _ := procGetSystemMetrics.Call(smCXScreen)
	h, _, _ := procGetSystemMetrics.Call(smCYScreen)
	return captureScreenRegion(0, 0, int32(w), int32(h))
}

var (
	procEnumDisplayMonitors = user32.NewProc("EnumDisplayMonitors")
	procGetMonitorInfoW     = user32.NewProc("GetMonitorInfoW")
)

type monitorInfoEx struct {
	size    uint32
	monitor rect
	work    rect
	flags   uint32
	device  [32]uint16
}

type monitorEntry struct {
	name   string
	bounds rect
}

// listMonitors enumerates attached monitors with their device names
// (e.g. `\\.\DISPLAY1`).
func listMonitors() ([]monitorEntry, error) {
	var monitors []monitorEntry
	callback := syscall.NewCallback(func(hMonitor, hdc uintptr, lprc *rect, lparam uintptr) uintptr {
		var info monitorInfoEx
		info.size = uint32(unsafe.Sizeof(info))
		if r, _, _ := procGetMonitorInfoW.Call(hMonitor, uintptr(unsafe.Pointer(&info))); r != 0 {
			monitors = append(monitors, monitorEntry{
				name:   windows.UTF16ToString(info.device[:]),
				bounds: info.monitor,
			})
		}
		return 1
	})
	if r, _, err := procEnumDisplayMonitors.Call(0, 0, callback, 0); r == 0 {
		return nil, automation.PlatformError("EnumDisplayMonitors failed: %v", err)
	}
	return monitors, nil
}

// captureMonitorByName captures the monitor whose device name matches.
func captureMonitorByName(name string) (*automation.ScreenshotResult, error) {
	monitors, err := listMonitors()
	if err != nil {
		return nil, err
	}
	for _, m := range monitors {
		if strings.EqualFold(m.name, name) {
			return captureScreenRegion(m.bounds.left, m.bounds.top,
				m.bounds.right-m.bounds.left, m.bounds.bottom-m.bounds.top)
		}
	}
	return nil, automation.NotFoundError("no monitor named %q", name)
}
