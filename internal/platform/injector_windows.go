//go:build windows
// +build windows

package platform

import (
	"fmt"

	"github.com/leandrodaf/midikeys/sdk/contracts"
)

// scanInjector sends hardware scan codes through SendInput.
type scanInjector struct {
	logger contracts.Logger
}

// NewInjector returns the SendInput key injector.
func NewInjector(logger contracts.Logger) contracts.KeyInjector {
	return &scanInjector{logger: logger}
}

func (s *scanInjector) KeyDown(key string) error { return s.send(key, false) }

func (s *scanInjector) KeyUp(key string) error { return s.send(key, true) }

func (s *scanInjector) send(name string, up bool) error {
	k, err := LookupKey(name)
	if err != nil {
		return err
	}
	flags := uint32(keyeventfScancode)
	if up {
		flags |= keyeventfKeyUp
	}
	if k.Extended {
		flags |= keyeventfExtended
	}
	in := input{
		Type: inputKeyboard,
		Ki: keyboardInput{
			WScan:   scanCode(k.VK),
			DwFlags: flags,
		},
	}
	if err := sendInput(in); err != nil {
		return fmt.Errorf("SendInput %q: %w", name, err)
	}
	return nil
}
