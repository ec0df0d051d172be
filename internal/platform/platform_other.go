//go:build !windows
// +build !windows

package platform

import (
	"context"

	"github.com/leandrodaf/midikeys/sdk/contracts"
)

type dummyPlatform struct {
	logger contracts.Logger
}

// NewInjector returns an injector that rejects every key on non-Windows systems.
func NewInjector(logger contracts.Logger) contracts.KeyInjector {
	logger.Info("Using dummy key injector for non-Windows system")
	return &dummyPlatform{logger: logger}
}

// NewWindowQuery returns a window query that is unavailable on non-Windows systems.
func NewWindowQuery(logger contracts.Logger) contracts.WindowQuery {
	return &dummyPlatform{logger: logger}
}

// NewHotkeySource returns a hotkey source that is unavailable on non-Windows systems.
func NewHotkeySource(logger contracts.Logger) contracts.HotkeySource {
	return &dummyPlatform{logger: logger}
}

func (d *dummyPlatform) KeyDown(key string) error {
	if _, err := LookupKey(key); err != nil {
		return err
	}
	return contracts.ErrUnsupportedPlatform
}

func (d *dummyPlatform) KeyUp(key string) error { return d.KeyDown(key) }

func (d *dummyPlatform) ListWindows() ([]string, error) { return nil, contracts.ErrUnsupportedPlatform }

func (d *dummyPlatform) ActiveWindowTitle() (string, error) {
	return "", contracts.ErrUnsupportedPlatform
}

func (d *dummyPlatform) FocusWindow(string) error { return contracts.ErrUnsupportedPlatform }

func (d *dummyPlatform) Start(func(string)) error {
	d.logger.Warn("Global hotkeys are not available on this platform")
	return contracts.ErrUnsupportedPlatform
}

func (d *dummyPlatform) Stop() error { return nil }

func (d *dummyPlatform) ReadHotkey(context.Context) (string, error) {
	return "", contracts.ErrUnsupportedPlatform
}
