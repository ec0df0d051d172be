package engine

import (
	"strings"
	"time"

	"github.com/leandrodaf/midikeys/sdk/contracts"
)

const hotkeyDebounce = 200 * time.Millisecond

// SetHotkeys replaces the hotkey bindings.
func (e *Engine) SetHotkeys(h contracts.Hotkeys) {
	h = h.WithDefaults()
	e.mu.Lock()
	e.hotkeys = h
	e.mu.Unlock()
}

// Hotkeys returns the active hotkey bindings.
func (e *Engine) Hotkeys() contracts.Hotkeys {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.hotkeys
}

// HandleHotkey runs the action bound to key. Play/pause and stop ignore
// repeats within the debounce window.
func (e *Engine) HandleHotkey(key string) {
	key = strings.ToLower(strings.TrimSpace(key))
	h := e.Hotkeys()

	switch key {
	case h.PlayPause:
		if e.debounced("play_pause") {
			e.playPause()
		}
	case h.Stop:
		if e.debounced("stop") {
			e.StopFile()
		}
	case h.TransposeUp:
		e.Transpose(1)
	case h.TransposeDown:
		e.Transpose(-1)
	}
}

func (e *Engine) playPause() {
	e.mu.Lock()
	path, running := e.filePath, e.file != nil
	e.mu.Unlock()

	switch {
	case path == "":
		e.logger.Debug("Play/pause hotkey ignored; no file selected")
	case !running:
		if err := e.Play(); err != nil {
			e.logger.Warn("Starting playback failed", e.logger.Field().Error("error", err))
		}
	default:
		e.TogglePause()
	}
}

func (e *Engine) debounced(action string) bool {
	now := e.clock.Now()
	e.mu.Lock()
	defer e.mu.Unlock()
	if last, ok := e.lastHotkey[action]; ok && now.Sub(last) < hotkeyDebounce {
		return false
	}
	e.lastHotkey[action] = now
	return true
}
