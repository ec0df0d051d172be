package contracts

import (
	"context"
	"time"
)

// KeyInjector presses and releases one logical key at a time.
// Chorded bindings are expanded into several calls by the caller.
type KeyInjector interface {
	KeyDown(key string) error
	KeyUp(key string) error
}

// WindowQuery exposes the OS window list and foreground window.
type WindowQuery interface {
	ListWindows() ([]string, error)     // Titles of visible top-level windows, sorted and unique.
	ActiveWindowTitle() (string, error) // Title of the current foreground window.
	FocusWindow(title string) error     // Brings the window with exactly this title to the foreground.
}

// HotkeySource observes global key-down events.
type HotkeySource interface {
	Start(onKey func(key string)) error             // Begins delivering key names to onKey.
	Stop() error                                    // Stops delivery; Start may be called again.
	ReadHotkey(ctx context.Context) (string, error) // Blocks until one key is pressed and returns its name.
}

// Clock abstracts time so the playback waits can be driven deterministically.
type Clock interface {
	Now() time.Time
	Sleep(d time.Duration)
}
