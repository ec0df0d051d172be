// Package keymap resolves MIDI notes to key bindings.
package keymap

import "github.com/leandrodaf/midikeys/sdk/contracts"

const (
	MinNote = 0
	MaxNote = 127
)

// InRange reports whether note is a valid MIDI note number.
func InRange(note int) bool {
	return note >= MinNote && note <= MaxNote
}

// Resolve returns the binding for note. A direct mapping always wins. With
// fallback enabled, an unmapped note takes the binding of the closest mapped
// note sharing its pitch class; equidistant candidates resolve to the lower note.
func Resolve(note int, keyMap contracts.KeyMap, fallback bool) (contracts.Binding, bool) {
	if b, ok := keyMap[note]; ok && !b.IsZero() {
		return b, true
	}
	if !fallback {
		return contracts.Binding{}, false
	}

	pitchClass := mod12(note)
	best, bestDist := 0, -1
	for mapped, b := range keyMap {
		if b.IsZero() || mod12(mapped) != pitchClass {
			continue
		}
		dist := abs(mapped - note)
		if bestDist < 0 || dist < bestDist || (dist == bestDist && mapped < best) {
			best, bestDist = mapped, dist
		}
	}
	if bestDist < 0 {
		return contracts.Binding{}, false
	}
	return keyMap[best], true
}

func mod12(n int) int {
	m := n % 12
	if m < 0 {
		m += 12
	}
	return m
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
