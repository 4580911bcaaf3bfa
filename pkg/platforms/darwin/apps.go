//go:build darwin

package darwin

/*
#cgo CFLAGS: -x objective-c
#cgo LDFLAGS: -framework AppKit -framework Foundation
#import <AppKit/AppKit.h>
#include <stdlib.h>
#include <string.h>

// Lists running applications. When regular_only is set, only apps with a
// normal activation policy (dock icon, windows) are returned. Arrays are
// caller-freed with list_apps_free.
static int ns_list_apps(int regular_only, pid_t **pids, char ***names, int *count) {
    @autoreleasepool {
        NSArray<NSRunningApplication *> *apps = [[NSWorkspace sharedWorkspace] runningApplications];
        NSMutableArray<NSRunningApplication *> *filtered = [NSMutableArray array];
        for (NSRunningApplication *app in apps) {
            if (regular_only && app.activationPolicy != NSApplicationActivationPolicyRegular) {
                continue;
            }
            [filtered addObject:app];
        }
        int n = (int)filtered.count;
        pid_t *outPids = malloc(sizeof(pid_t) * (n > 0 ? n : 1));
        char **outNames = malloc(sizeof(char *) * (n > 0 ? n : 1));
        if (!outPids || !outNames) {
            free(outPids);
            free(outNames);
            return -1;
        }
        for (int i = 0; i < n; i++) {
            NSRunningApplication *app = filtered[i];
            outPids[i] = app.processIdentifier;
            const char *name = app.localizedName ? app.localizedName.UTF8String : "";
            outNames[i] = strdup(name);
        }
        *pids = outPids;
        *names = outNames;
        *count = n;
        return 0;
    }
}

static void ns_free_apps(pid_t *pids, char **names, int count) {
    for (int i = 0; i < count; i++) {
        free(names[i]);
    }
    free(names);
    free(pids);
}

static pid_t ns_frontmost_pid() {
    @autoreleasepool {
        NSRunningApplication *app = [[NSWorkspace sharedWorkspace] frontmostApplication];
        return app ? app.processIdentifier : -1;
    }
}

static char *ns_app_name(pid_t pid) {
    @autoreleasepool {
        NSRunningApplication *app = [NSRunningApplication runningApplicationWithProcessIdentifier:pid];
        if (!app || !app.localizedName) return NULL;
        return strdup(app.localizedName.UTF8String);
    }
}

static int ns_activate_pid(pid_t pid) {
    @autoreleasepool {
        NSRunningApplication *app = [NSRunningApplication runningApplicationWithProcessIdentifier:pid];
        if (!app) return -1;
        return [app activateWithOptions:NSApplicationActivateIgnoringOtherApps] ? 0 : -1;
    }
}
*/
import "C"

import (
	"strings"
	"unsafe"

	"github.com/axdriver/axdriver/pkg/automation"
)

// runningApp is one entry from the NSWorkspace application list.
type runningApp struct {
	pid  int32
	name string
}

// listRunningApps enumerates running applications. regularOnly excludes
// agents and background-only processes.
func listRunningApps(regularOnly bool) ([]runningApp, error) {
	var pids *C.pid_t
	var names **C.char
	var count C.int
	regular := C.int(0)
	if regularOnly {
		regular = 1
	}
	if C.ns_list_apps(regular, &pids, &names, &count) != 0 {
		return nil, automation.PlatformError("failed to enumerate running applications")
	}
	defer C.ns_free_apps(pids, names, count)

	n := int(count)
	pidSlice := unsafe.Slice(pids, n)
	nameSlice := unsafe.Slice(names, n)

	apps := make([]runningApp, 0, n)
	for i := 0; i < n; i++ {
		apps = append(apps, runningApp{
			pid:  int32(pidSlice[i]),
			name: C.GoString(nameSlice[i]),
		})
	}
	return apps, nil
}

// frontmostPID returns the PID of the frontmost application, or -1.
func frontmostPID() int32 {
	return int32(C.ns_frontmost_pid())
}

// appNameForPID returns the localized application name, or "".
func appNameForPID(pid int32) string {
	cs := C.ns_app_name(C.pid_t(pid))
	if cs == nil {
		return ""
	}
	defer C.free(unsafe.Pointer(cs))
	return C.GoString(cs)
}

// activatePID brings the application to the foreground.
func activatePID(pid int32) error {
	if C.ns_activate_pid(C.pid_t(pid)) != 0 {
		return automation.PlatformError("failed to activate application with pid %d", pid)
	}
	return nil
}

// knownBrowserNames identifies browser processes. Web content inside these
// needs real mouse events instead of accessibility press actions.
var knownBrowserNames = []string{
	"chrome", "firefox", "safari", "edge", "opera", "brave", "vivaldi", "arc",
}

func isKnownBrowser(appName string) bool {
	lower := strings.ToLower(appName)
	for _, b := range knownBrowserNames {
		if strings.Contains(lower, b) {
			return true
		}
	}
	return false
}
