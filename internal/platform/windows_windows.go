//go:build windows
// +build windows

package platform

import (
	"errors"
	"fmt"
	"sort"

	"github.com/leandrodaf/midikeys/sdk/contracts"
	"golang.org/x/sys/windows"
)

// ErrWindowNotFound is returned by FocusWindow when no window has the title.
var ErrWindowNotFound = errors.New("window not found")

type windowQuery struct {
	logger contracts.Logger
}

// NewWindowQuery returns the user32 window query.
func NewWindowQuery(logger contracts.Logger) contracts.WindowQuery {
	return &windowQuery{logger: logger}
}

func (w *windowQuery) ListWindows() ([]string, error) {
	seen := make(map[string]struct{})
	enumWindows(func(hwnd windows.Handle) bool {
		if !isWindowVisible(hwnd) {
			return true
		}
		if title := normalizeTitle(windowText(hwnd)); title != "" {
			seen[title] = struct{}{}
		}
		return true
	})
	titles := make([]string, 0, len(seen))
	for t := range seen {
		titles = append(titles, t)
	}
	sort.Strings(titles)
	return titles, nil
}

// ActiveWindowTitle reports "" when nothing has focus, which the gate treats
// as a mismatch rather than a query failure.
func (w *windowQuery) ActiveWindowTitle() (string, error) {
	return foregroundTitle(uintptr(foregroundWindow()), func(h uintptr) string {
		return windowText(windows.Handle(h))
	}), nil
}

func (w *windowQuery) FocusWindow(title string) error {
	var target windows.Handle
	enumWindows(func(hwnd windows.Handle) bool {
		if isWindowVisible(hwnd) && normalizeTitle(windowText(hwnd)) == title {
			target = hwnd
			return false
		}
		return true
	})
	if target == 0 {
		return fmt.Errorf("%w: %q", ErrWindowNotFound, title)
	}
	restoreIfMinimized(target)
	if !setForegroundWindow(target) {
		return fmt.Errorf("SetForegroundWindow refused for %q", title)
	}
	w.logger.Debug("Focused window", w.logger.Field().String("title", title))
	return nil
}
