//go:build windows
// +build windows

package platform

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/leandrodaf/midikeys/sdk/contracts"
)

const hotkeyPollInterval = 15 * time.Millisecond

// ErrHotkeysRunning is returned by Start when delivery is already active.
var ErrHotkeysRunning = errors.New("hotkey listener already running")

// asyncKeySource samples GetAsyncKeyState, so it needs neither a window nor
// a message loop.
type asyncKeySource struct {
	logger contracts.Logger

	mu   sync.Mutex
	stop chan struct{}
	done chan struct{}
}

// NewHotkeySource returns the polling global hotkey source.
func NewHotkeySource(logger contracts.Logger) contracts.HotkeySource {
	return &asyncKeySource{logger: logger}
}

func (a *asyncKeySource) Start(onKey func(key string)) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.stop != nil {
		return ErrHotkeysRunning
	}
	a.stop, a.done = make(chan struct{}), make(chan struct{})
	go a.run(onKey, a.stop, a.done)
	a.logger.Debug("Hotkey listener started")
	return nil
}

func (a *asyncKeySource) run(onKey func(string), stop, done chan struct{}) {
	defer close(done)
	p := newKeyPoller(asyncKeyDown)
	ticker := time.NewTicker(hotkeyPollInterval)
	defer ticker.Stop()
	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			for _, key := range p.step() {
				onKey(key)
			}
		}
	}
}

func (a *asyncKeySource) Stop() error {
	a.mu.Lock()
	stop, done := a.stop, a.done
	a.stop, a.done = nil, nil
	a.mu.Unlock()
	if stop == nil {
		return nil
	}
	close(stop)
	<-done
	a.logger.Debug("Hotkey listener stopped")
	return nil
}

func (a *asyncKeySource) ReadHotkey(ctx context.Context) (string, error) {
	p := newKeyPoller(asyncKeyDown)
	ticker := time.NewTicker(hotkeyPollInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-ticker.C:
			if keys := p.step(); len(keys) > 0 {
				return keys[0], nil
			}
		}
	}
}
