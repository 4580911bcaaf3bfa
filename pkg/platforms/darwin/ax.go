//go:build darwin

package darwin

/*
#cgo CFLAGS: -x objective-c
#cgo LDFLAGS: -framework ApplicationServices -framework CoreFoundation -framework CoreGraphics -framework Foundation
#include <ApplicationServices/ApplicationServices.h>
#include <CoreFoundation/CoreFoundation.h>
#include <stdio.h>
#include <stdlib.h>
#include <string.h>

static char *cfstring_to_cstr(CFStringRef s) {
    if (!s) return NULL;
    CFIndex length = CFStringGetLength(s);
    CFIndex max = CFStringGetMaximumSizeForEncoding(length, kCFStringEncodingUTF8) + 1;
    char *buf = malloc(max);
    if (!buf) return NULL;
    if (!CFStringGetCString(s, buf, max, kCFStringEncodingUTF8)) {
        free(buf);
        return NULL;
    }
    return buf;
}

// Copies an attribute and renders it as a C string. Strings pass through;
// numbers and booleans are formatted. Returns NULL for missing attributes
// and non-scalar values.
static char *ax_copy_string_attr(AXUIElementRef el, const char *name) {
    CFStringRef key = CFStringCreateWithCString(NULL, name, kCFStringEncodingUTF8);
    CFTypeRef value = NULL;
    AXError err = AXUIElementCopyAttributeValue(el, key, &value);
    CFRelease(key);
    if (err != kAXErrorSuccess || !value) return NULL;

    char *out = NULL;
    if (CFGetTypeID(value) == CFStringGetTypeID()) {
        out = cfstring_to_cstr((CFStringRef)value);
    } else if (CFGetTypeID(value) == CFNumberGetTypeID()) {
        double d = 0;
        CFNumberGetValue((CFNumberRef)value, kCFNumberDoubleType, &d);
        char buf[64];
        snprintf(buf, sizeof buf, "%g", d);
        out = strdup(buf);
    } else if (CFGetTypeID(value) == CFBooleanGetTypeID()) {
        out = strdup(CFBooleanGetValue((CFBooleanRef)value) ? "true" : "false");
    }
    CFRelease(value);
    return out;
}

// Reads a boolean attribute. Returns 0 on success with *out set, -1 when
// the attribute is missing or not a boolean.
static int ax_bool_attr(AXUIElementRef el, const char *name, int *out) {
    CFStringRef key = CFStringCreateWithCString(NULL, name, kCFStringEncodingUTF8);
    CFTypeRef value = NULL;
    AXError err = AXUIElementCopyAttributeValue(el, key, &value);
    CFRelease(key);
    if (err != kAXErrorSuccess || !value) return -1;
    if (CFGetTypeID(value) != CFBooleanGetTypeID()) {
        CFRelease(value);
        return -1;
    }
    *out = CFBooleanGetValue((CFBooleanRef)value) ? 1 : 0;
    CFRelease(value);
    return 0;
}

// Copies the children array. Each returned element is retained and owned by
// the caller; the array itself must be freed with free().
static int ax_children(AXUIElementRef el, AXUIElementRef **out, long *count) {
    CFTypeRef value = NULL;
    if (AXUIElementCopyAttributeValue(el, kAXChildrenAttribute, &value) != kAXErrorSuccess || !value) {
        return -1;
    }
    if (CFGetTypeID(value) != CFArrayGetTypeID()) {
        CFRelease(value);
        return -1;
    }
    CFArrayRef arr = (CFArrayRef)value;
    long n = CFArrayGetCount(arr);
    AXUIElementRef *items = malloc(sizeof(AXUIElementRef) * (n > 0 ? n : 1));
    if (!items) {
        CFRelease(value);
        return -1;
    }
    for (long i = 0; i < n; i++) {
        AXUIElementRef c = (AXUIElementRef)CFArrayGetValueAtIndex(arr, i);
        CFRetain(c);
        items[i] = c;
    }
    CFRelease(value);
    *out = items;
    *count = n;
    return 0;
}

// Copies a single-element attribute (parent, window, focused element).
// The returned reference is retained.
static AXUIElementRef ax_element_attr(AXUIElementRef el, const char *name) {
    CFStringRef key = CFStringCreateWithCString(NULL, name, kCFStringEncodingUTF8);
    CFTypeRef value = NULL;
    AXError err = AXUIElementCopyAttributeValue(el, key, &value);
    CFRelease(key);
    if (err != kAXErrorSuccess || !value) return NULL;
    return (AXUIElementRef)value;
}

static int ax_bounds(AXUIElementRef el, float *x, float *y, float *w, float *h) {
    CFTypeRef posValue = NULL;
    CFTypeRef sizeValue = NULL;
    if (AXUIElementCopyAttributeValue(el, kAXPositionAttribute, &posValue) != kAXErrorSuccess || !posValue) {
        return -1;
    }
    if (AXUIElementCopyAttributeValue(el, kAXSizeAttribute, &sizeValue) != kAXErrorSuccess || !sizeValue) {
        CFRelease(posValue);
        return -1;
    }
    CGPoint p;
    CGSize s;
    int ok = AXValueGetValue((AXValueRef)posValue, kAXValueTypeCGPoint, &p) &&
             AXValueGetValue((AXValueRef)sizeValue, kAXValueTypeCGSize, &s);
    CFRelease(posValue);
    CFRelease(sizeValue);
    if (!ok) return -1;
    *x = p.x;
    *y = p.y;
    *w = s.width;
    *h = s.height;
    return 0;
}

static int ax_perform(AXUIElementRef el, const char *action) {
    CFStringRef key = CFStringCreateWithCString(NULL, action, kCFStringEncodingUTF8);
    AXError err = AXUIElementPerformAction(el, key);
    CFRelease(key);
    return err == kAXErrorSuccess ? 0 : (int)err;
}

static int ax_set_string_attr(AXUIElementRef el, const char *name, const char *value) {
    CFStringRef key = CFStringCreateWithCString(NULL, name, kCFStringEncodingUTF8);
    CFStringRef val = CFStringCreateWithCString(NULL, value, kCFStringEncodingUTF8);
    AXError err = AXUIElementSetAttributeValue(el, key, val);
    CFRelease(key);
    CFRelease(val);
    return err == kAXErrorSuccess ? 0 : (int)err;
}

static int ax_set_bool_attr(AXUIElementRef el, const char *name, int value) {
    CFStringRef key = CFStringCreateWithCString(NULL, name, kCFStringEncodingUTF8);
    AXError err = AXUIElementSetAttributeValue(el, key, value ? kCFBooleanTrue : kCFBooleanFalse);
    CFRelease(key);
    return err == kAXErrorSuccess ? 0 : (int)err;
}

static int ax_settable(AXUIElementRef el, const char *name) {
    CFStringRef key = CFStringCreateWithCString(NULL, name, kCFStringEncodingUTF8);
    Boolean settable = false;
    AXError err = AXUIElementIsAttributeSettable(el, key, &settable);
    CFRelease(key);
    if (err != kAXErrorSuccess) return -1;
    return settable ? 1 : 0;
}

static int ax_get_pid(AXUIElementRef el, pid_t *pid) {
    return AXUIElementGetPid(el, pid) == kAXErrorSuccess ? 0 : -1;
}

static AXUIElementRef ax_app_for_pid(pid_t pid) {
    return AXUIElementCreateApplication(pid);
}

static AXUIElementRef ax_system_wide() {
    return AXUIElementCreateSystemWide();
}

static void ax_release(AXUIElementRef el) {
    if (el) CFRelease(el);
}

static void ax_retain(AXUIElementRef el) {
    if (el) CFRetain(el);
}
*/
import "C"

import (
	"runtime"
	"unsafe"
)

// axRef is a retained AXUIElementRef. A finalizer releases the native
// reference when the Go handle is collected; a destroyed native element is
// still safe to query and simply fails the call. AXUIElementRef is a
// CoreFoundation type and CF types are documented thread-safe for
// retain/release and attribute copies, so refs may cross goroutines.
type axRef struct {
	ptr unsafe.Pointer
}

func newAXRef(ptr unsafe.Pointer) *axRef {
	if ptr == nil {
		return nil
	}
	r := &axRef{ptr: ptr}
	runtime.SetFinalizer(r, func(r *axRef) {
		C.ax_release(C.AXUIElementRef(r.ptr))
	})
	return r
}

func (r *axRef) c() C.AXUIElementRef { return C.AXUIElementRef(r.ptr) }

// retain returns a second Go handle to the same native element.
func (r *axRef) retain() *axRef {
	C.ax_retain(r.c())
	return newAXRef(r.ptr)
}

func axStringAttr(r *axRef, name string) string {
	cName := C.CString(name)
	defer C.free(unsafe.Pointer(cName))
	cs := C.ax_copy_string_attr(r.c(), cName)
	if cs == nil {
		return ""
	}
	defer C.free(unsafe.Pointer(cs))
	return C.GoString(cs)
}

// axBoolAttr reads a boolean attribute, returning fallback when the
// attribute is missing or not a boolean.
func axBoolAttr(r *axRef, name string, fallback bool) bool {
	cName := C.CString(name)
	defer C.free(unsafe.Pointer(cName))
	var out C.int
	if C.ax_bool_attr(r.c(), cName, &out) != 0 {
		return fallback
	}
	return out != 0
}

func axChildren(r *axRef) ([]*axRef, error) {
	var items *C.AXUIElementRef
	var count C.long
	if C.ax_children(r.c(), &items, &count) != 0 {
		// Leaf elements report no children attribute at all.
		return nil, nil
	}
	defer C.free(unsafe.Pointer(items))
	n := int(count)
	if n == 0 {
		return nil, nil
	}
	slice := unsafe.Slice(items, n)
	refs := make([]*axRef, 0, n)
	for i := 0; i < n; i++ {
		refs = append(refs, newAXRef(unsafe.Pointer(slice[i])))
	}
	return refs, nil
}

func axElementAttr(r *axRef, name string) *axRef {
	cName := C.CString(name)
	defer C.free(unsafe.Pointer(cName))
	ref := C.ax_element_attr(r.c(), cName)
	if ref == nil {
		return nil
	}
	return newAXRef(unsafe.Pointer(ref))
}

func axBounds(r *axRef) (x, y, w, h float64, ok bool) {
	var cx, cy, cw, ch C.float
	if C.ax_bounds(r.c(), &cx, &cy, &cw, &ch) != 0 {
		return 0, 0, 0, 0, false
	}
	return float64(cx), float64(cy), float64(cw), float64(ch), true
}

func axPerform(r *axRef, action string) error {
	cAction := C.CString(action)
	defer C.free(unsafe.Pointer(cAction))
	if rc := C.ax_perform(r.c(), cAction); rc != 0 {
		return axError(action, int(rc))
	}
	return nil
}

func axSetStringAttr(r *axRef, name, value string) error {
	cName := C.CString(name)
	defer C.free(unsafe.Pointer(cName))
	cValue := C.CString(value)
	defer C.free(unsafe.Pointer(cValue))
	if rc := C.ax_set_string_attr(r.c(), cName, cValue); rc != 0 {
		return axError("set "+name, int(rc))
	}
	return nil
}

func axSetBoolAttr(r *axRef, name string, value bool) error {
	cName := C.CString(name)
	defer C.free(unsafe.Pointer(cName))
	v := C.int(0)
	if value {
		v = 1
	}
	if rc := C.ax_set_bool_attr(r.c(), cName, v); rc != 0 {
		return axError("set "+name, int(rc))
	}
	return nil
}

func axSettable(r *axRef, name string) bool {
	cName := C.CString(name)
	defer C.free(unsafe.Pointer(cName))
	return C.ax_settable(r.c(), cName) == 1
}

func axPID(r *axRef) (int32, bool) {
	var pid C.pid_t
	if C.ax_get_pid(r.c(), &pid) != 0 {
		return 0, false
	}
	return int32(pid), true
}

func axAppForPID(pid int32) *axRef {
	return newAXRef(unsafe.Pointer(C.ax_app_for_pid(C.pid_t(pid))))
}

func axSystemWide() *axRef {
	return newAXRef(unsafe.Pointer(C.ax_system_wide()))
}
