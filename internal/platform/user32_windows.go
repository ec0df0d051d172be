//go:build windows
// +build windows

package platform

import (
	"sync"
	"unsafe"

	"golang.org/x/sys/windows"
)

var (
	user32 = windows.NewLazySystemDLL("user32.dll")

	procSendInput            = user32.NewProc("SendInput")
	procMapVirtualKeyW       = user32.NewProc("MapVirtualKeyW")
	procEnumWindows          = user32.NewProc("EnumWindows")
	procIsWindowVisible      = user32.NewProc("IsWindowVisible")
	procGetWindowTextW       = user32.NewProc("GetWindowTextW")
	procGetWindowTextLengthW = user32.NewProc("GetWindowTextLengthW")
	procGetForegroundWindow  = user32.NewProc("GetForegroundWindow")
	procSetForegroundWindow  = user32.NewProc("SetForegroundWindow")
	procIsIconic             = user32.NewProc("IsIconic")
	procShowWindow           = user32.NewProc("ShowWindow")
	procGetAsyncKeyState     = user32.NewProc("GetAsyncKeyState")
)

const (
	inputKeyboard     = 1
	keyeventfExtended = 0x0001
	keyeventfKeyUp    = 0x0002
	keyeventfScancode = 0x0008
	mapvkVKToVSC      = 0
	swRestore         = 9
)

type keyboardInput struct {
	WVK         uint16
	WScan       uint16
	DwFlags     uint32
	Time        uint32
	DwExtraInfo uintptr
}

// input mirrors INPUT; the trailing pad covers the larger MOUSEINPUT arm of the union.
type input struct {
	Type  uint32
	_pad1 uint32
	Ki    keyboardInput
	_pad2 uint64
}

func sendInput(ins ...input) error {
	if len(ins) == 0 {
		return nil
	}
	ret, _, err := procSendInput.Call(
		uintptr(len(ins)),
		uintptr(unsafe.Pointer(&ins[0])),
		unsafe.Sizeof(input{}),
	)
	if ret == 0 {
		return err
	}
	return nil
}

func scanCode(vk uint16) uint16 {
	r, _, _ := procMapVirtualKeyW.Call(uintptr(vk), mapvkVKToVSC)
	return uint16(r)
}

func isWindowVisible(hwnd windows.Handle) bool {
	r, _, _ := procIsWindowVisible.Call(uintptr(hwnd))
	return r != 0
}

func windowText(hwnd windows.Handle) string {
	n, _, _ := procGetWindowTextLengthW.Call(uintptr(hwnd))
	if n == 0 {
		return ""
	}
	buf := make([]uint16, n+1)
	procGetWindowTextW.Call(uintptr(hwnd), uintptr(unsafe.Pointer(&buf[0])), uintptr(len(buf)))
	return windows.UTF16ToString(buf)
}

func foregroundWindow() windows.Handle {
	h, _, _ := procGetForegroundWindow.Call()
	return windows.Handle(h)
}

func setForegroundWindow(hwnd windows.Handle) bool {
	r, _, _ := procSetForegroundWindow.Call(uintptr(hwnd))
	return r != 0
}

func restoreIfMinimized(hwnd windows.Handle) {
	if r, _, _ := procIsIconic.Call(uintptr(hwnd)); r != 0 {
		procShowWindow.Call(uintptr(hwnd), swRestore)
	}
}

func asyncKeyDown(vk uint16) bool {
	r, _, _ := procGetAsyncKeyState.Call(uintptr(vk))
	return r&0x8000 != 0
}

// EnumWindows callbacks are a limited resource, so a single one is created
// and the per-call visitor is swapped in under enumMu.
var (
	enumMu      sync.Mutex
	enumVisitor func(windows.Handle) bool
	enumCB      = windows.NewCallback(func(h uintptr, _ uintptr) uintptr {
		if enumVisitor(windows.Handle(h)) {
			return 1
		}
		return 0
	})
)

// enumWindows calls visit for each top-level window until it returns false.
func enumWindows(visit func(windows.Handle) bool) {
	enumMu.Lock()
	defer enumMu.Unlock()
	enumVisitor = visit
	procEnumWindows.Call(enumCB, 0)
	enumVisitor = nil
}
