//go:build windows

package windows

import (
	"strings"
	"unsafe"

	"golang.org/x/sys/windows"

	"github.com/axdriver/axdriver/pkg/automation"
)

// processEntry is one row of the system process snapshot.
type processEntry struct {
	pid  int32
	name string
}

// snapshotProcesses lists all running processes via Toolhelp32.
func snapshotProcesses() ([]processEntry, error) {
	snapshot, err := windows.CreateToolhelp32Snapshot(windows.TH32CS_SNAPPROCESS, 0)
	if err != nil {
		return nil, automation.PlatformError("failed to snapshot processes: %v", err)
	}
	defer windows.CloseHandle(snapshot)

	var entry windows.ProcessEntry32
	entry.Size = uint32(unsafe.Sizeof(entry))

	var procs []processEntry
	if err := windows.Process32First(snapshot, &entry); err != nil {
		return nil, automation.PlatformError("failed to enumerate processes: %v", err)
	}
	for {
		procs = append(procs, processEntry{
			pid:  int32(entry.ProcessID),
			name: windows.UTF16ToString(entry.ExeFile[:]),
		})
		if err := windows.Process32Next(snapshot, &entry); err != nil {
			break
		}
	}
	return procs, nil
}

// pidByName finds a process whose executable name matches, with or without
// the .exe suffix.
func pidByName(name string) (int32, error) {
	procs, err := snapshotProcesses()
	if err != nil {
		return 0, err
	}
	want := strings.ToLower(strings.TrimSuffix(name, ".exe"))
	for _, p := range procs {
		have := strings.ToLower(strings.TrimSuffix(p.name, ".exe"))
		if have == want || strings.Contains(have, want) {
			return p.pid, nil
		}
	}
	return 0, automation.NotFoundError("no process named %q", name)
}

// processName returns the executable name for a PID, or "".
func processName(pid int32) string {
	procs, err := snapshotProcesses()
	if err != nil {
		return ""
	}
	for _, p := range procs {
		if p.pid == pid {
			return p.name
		}
	}
	return ""
}

// knownBrowserProcesses identifies browser processes by executable name.
var knownBrowserProcesses = []string{
	"chrome", "firefox", "msedge", "edge", "iexplore", "opera",
	"brave", "vivaldi", "browser", "arc",
}

func isKnownBrowser(procName string) bool {
	lower := strings.ToLower(strings.TrimSuffix(procName, ".exe"))
	for _, b := range knownBrowserProcesses {
		if strings.Contains(lower, b) {
			return true
		}
	}
	return false
}
