package keymap

import (
	"fmt"

	"github.com/leandrodaf/midikeys/sdk/contracts"
)

var defaultKeys = map[int]string{
	21: "a", 22: "w", 23: "s", 24: "d", 25: "e", 26: "f", 27: "t", 28: "g", 29: "y", 30: "h",
	31: "u", 32: "j", 33: "i", 34: "k", 35: "o", 36: "l", 37: "p", 38: ";", 39: "'", 40: "z",
	41: "x", 42: "c", 43: "v", 44: "b", 45: "n", 46: "m", 47: ",", 48: ".", 49: "/", 50: "space",
	51: "enter", 52: "up", 53: "down", 54: "left", 55: "right", 56: "shift", 57: "ctrl", 58: "alt",
	59: "tab", 60: "esc", 61: "1", 62: "2", 63: "3", 64: "4", 65: "5", 66: "6", 71: "7", 72: "8",
	73: "9", 74: "0", 75: "q",
}

// Default returns the built-in key map used when no profile can be loaded.
func Default() contracts.KeyMap {
	m := make(contracts.KeyMap, len(defaultKeys))
	for note, key := range defaultKeys {
		m[note] = contracts.SingleKey(key)
	}
	return m
}

var noteNames = [12]string{"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B"}

// NoteName formats a note number as scientific pitch ("C4" for 60).
func NoteName(note int) string {
	if !InRange(note) {
		return "Invalid"
	}
	return fmt.Sprintf("%s%d", noteNames[note%12], note/12-1)
}
