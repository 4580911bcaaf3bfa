//go:build windows

package windows

import (
	"sync"
	"syscall"
	"unsafe"

	"golang.org/x/sys/windows"

	"github.com/axdriver/axdriver/pkg/automation"
)

var (
	ole32    = windows.NewLazySystemDLL("ole32.dll")
	oleaut32 = windows.NewLazySystemDLL("oleaut32.dll")

	procCoInitializeEx   = ole32.NewProc("CoInitializeEx")
	procCoCreateInstance = ole32.NewProc("CoCreateInstance")
	procSysAllocString   = oleaut32.NewProc("SysAllocString")
	procSysFreeString    = oleaut32.NewProc("SysFreeString")
	procSysStringLen     = oleaut32.NewProc("SysStringLen")
)

const (
	// MTA: UIA client objects are free-threaded and goroutines migrate
	// between OS threads.
	coinitMultithreaded = 0x0
	clsctxInprocServer  = 0x1

	hrOK            = 0
	sFalse          = 1
	rpcEChangedMode = 0x80010106
)

var (
	clsidCUIAutomation = windows.GUID{
		Data1: 0xff48dba4, Data2: 0x60ef, Data3: 0x4201,
		Data4: [8]byte{0xaa, 0x87, 0x54, 0x10, 0x3e, 0xef, 0x59, 0x4e},
	}
	iidIUIAutomation = windows.GUID{
		Data1: 0x30cbe57d, Data2: 0xd9d0, Data3: 0x452a,
		Data4: [8]byte{0xab, 0x13, 0x7a, 0xc5, 0xac, 0x48, 0x25, 0xee},
	}
)

var comInitOnce sync.Once

// initCOM initializes COM for the calling thread. An already-initialized
// thread (S_FALSE) and a mode mismatch (RPC_E_CHANGED_MODE) both mean COM is
// usable.
func initCOM() error {
	var initErr error
	comInitOnce.Do(func() {
		hr, _, _ := procCoInitializeEx.Call(0, coinitMultithreaded)
		switch uint32(hr) {
		case hrOK, sFalse, rpcEChangedMode:
		default:
			initErr = automation.PlatformError("CoInitializeEx failed: 0x%08x", uint32(hr))
		}
	})
	return initErr
}

// comCall invokes a vtable slot on a COM object. The object pointer is
// always the implicit first argument.
func comCall(obj unsafe.Pointer, slot uintptr, args ...uintptr) uint32 {
	vtbl := *(**[1024]uintptr)(obj)
	callArgs := append([]uintptr{uintptr(obj)}, args...)
	hr, _, _ := syscall.SyscallN(vtbl[slot], callArgs...)
	return uint32(hr)
}

// release calls IUnknown::Release (slot 2).
func release(obj unsafe.Pointer) {
	if obj != nil {
		comCall(obj, 2)
	}
}

// bstrToString copies a BSTR into a Go string and frees it.
func bstrToString(bstr uintptr) string {
	if bstr == 0 {
		return ""
	}
	defer procSysFreeString.Call(bstr)
	n, _, _ := procSysStringLen.Call(bstr)
	if n == 0 {
		return ""
	}
	chars := unsafe.Slice((*uint16)(unsafe.Pointer(bstr)), n)
	return windows.UTF16ToString(chars)
}

// stringToBSTR allocates a BSTR copy of s. The caller frees it with
// SysFreeString.
func stringToBSTR(s string) uintptr {
	utf16, err := windows.UTF16PtrFromString(s)
	if err != nil {
		return 0
	}
	bstr, _, _ := procSysAllocString.Call(uintptr(unsafe.Pointer(utf16)))
	return bstr
}

// newUIAutomation creates the CUIAutomation coclass.
func newUIAutomation() (unsafe.Pointer, error) {
	if err := initCOM(); err != nil {
		return nil, err
	}
	var obj unsafe.Pointer
	hr, _, _ := procCoCreateInstance.Call(
		uintptr(unsafe.Pointer(&clsidCUIAutomation)),
		0,
		clsctxInprocServer,
		uintptr(unsafe.Pointer(&iidIUIAutomation)),
		uintptr(unsafe.Pointer(&obj)),
	)
	if uint32(hr) != hrOK || obj == nil {
		return nil, automation.PlatformError("failed to create UI Automation instance: 0x%08x", uint32(hr))
	}
	return obj, nil
}
