//go:build darwin

package darwin

/*
#cgo CFLAGS: -x objective-c
#cgo LDFLAGS: -framework CoreGraphics -framework CoreFoundation -framework AppKit -framework Foundation
#import <AppKit/AppKit.h>
#include <CoreGraphics/CoreGraphics.h>
#include <stdlib.h>
#include <string.h>

// Captures a display into a tightly packed RGBA buffer. The buffer is
// malloc'd and owned by the caller.
static int cg_capture_display(CGDirectDisplayID display, unsigned char **out, int *width, int *height) {
    CGImageRef image = CGDisplayCreateImage(display);
    if (!image) return -1;

    size_t w = CGImageGetWidth(image);
    size_t h = CGImageGetHeight(image);
    unsigned char *buf = malloc(w * h * 4);
    if (!buf) {
        CGImageRelease(image);
        return -1;
    }

    CGColorSpaceRef colorSpace = CGColorSpaceCreateDeviceRGB();
    CGContextRef ctx = CGBitmapContextCreate(buf, w, h, 8, w * 4, colorSpace,
        kCGImageAlphaPremultipliedLast | kCGBitmapByteOrder32Big);
    CGColorSpaceRelease(colorSpace);
    if (!ctx) {
        free(buf);
        CGImageRelease(image);
        return -1;
    }

    CGContextDrawImage(ctx, CGRectMake(0, 0, w, h), image);
    CGContextRelease(ctx);
    CGImageRelease(image);

    *out = buf;
    *width = (int)w;
    *height = (int)h;
    return 0;
}

static int cg_capture_main(unsigned char **out, int *width, int *height) {
    return cg_capture_display(CGMainDisplayID(), out, width, height);
}

// Resolves a display by its localized monitor name (e.g. "Built-in Retina
// Display"). Returns 0 and sets *display on success.
static int ns_display_by_name(const char *name, CGDirectDisplayID *display) {
    @autoreleasepool {
        for (NSScreen *screen in [NSScreen screens]) {
            const char *screenName = screen.localizedName.UTF8String;
            if (screenName && strcasecmp(screenName, name) == 0) {
                NSNumber *num = screen.deviceDescription[@"NSScreenNumber"];
                *display = (CGDirectDisplayID)num.unsignedIntValue;
                return 0;
            }
        }
        return -1;
    }
}
*/
import "C"

import (
	"unsafe"

	"github.com/axdriver/axdriver/pkg/automation"
)

// captureMainDisplay captures the primary monitor as raw RGBA pixels.
func captureMainDisplay() (*automation.ScreenshotResult, error) {
	var buf *C.uchar
	var width, height C.int
	if C.cg_capture_main(&buf, &width, &height) != 0 {
		return nil, automation.PlatformError(
			"screen capture failed (check Screen Recording permission in System Settings > Privacy & Security)")
	}
	defer C.free(unsafe.Pointer(buf))

	return &automation.ScreenshotResult{
		ImageData: C.GoBytes(unsafe.Pointer(buf), width*height*4),
		Width:     int(width),
		Height:    int(height),
	}, nil
}

// captureDisplayByName captures the monitor with the given localized name.
func captureDisplayByName(name string) (*automation.ScreenshotResult, error) {
	cName := C.CString(name)
	defer C.free(unsafe.Pointer(cName))

	var display C.CGDirectDisplayID
	if C.ns_display_by_name(cName, &display) != 0 {
		return nil, automation.NotFoundError("no monitor named %q", name)
	}

	var buf *C.uchar
	var width, height C.int
	if C.cg_capture_display(display, &buf, &width, &height) != 0 {
		return nil, automation.PlatformError("failed to capture monitor %q", name)
	}
	defer C.free(unsafe.Pointer(buf))

	return &automation.ScreenshotResult{
		ImageData: C.GoBytes(unsafe.Pointer(buf), width*height*4),
		Width:     int(width),
		Height:    int(height),
	}, nil
}
