package contracts

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ErrEmptyBinding is returned when decoding a binding with no keys.
var ErrEmptyBinding = errors.New("binding has no keys")

// Binding is what a mapped note presses: either a single logical key or a chord
// of several keys pressed together. The zero value is an empty binding.
type Binding struct {
	keys  []string
	chord bool
}

// SingleKey binds a note to one logical key.
func SingleKey(key string) Binding {
	return Binding{keys: []string{key}}
}

// ChordKeys binds a note to several logical keys pressed in order.
func ChordKeys(keys ...string) Binding {
	return Binding{keys: append([]string(nil), keys...), chord: true}
}

// Keys returns the individual logical keys of the binding.
func (b Binding) Keys() []string {
	return append([]string(nil), b.keys...)
}

// IsChord reports whether the binding was declared as a list of keys.
func (b Binding) IsChord() bool { return b.chord }

// IsZero reports whether the binding presses nothing.
func (b Binding) IsZero() bool { return len(b.keys) == 0 }

func (b Binding) String() string {
	if b.chord {
		return "[" + strings.Join(b.keys, "+") + "]"
	}
	if len(b.keys) == 1 {
		return b.keys[0]
	}
	return ""
}

// MarshalJSON writes a single key as a string and a chord as a list.
func (b Binding) MarshalJSON() ([]byte, error) {
	if b.chord {
		return json.Marshal(b.keys)
	}
	if len(b.keys) == 1 {
		return json.Marshal(b.keys[0])
	}
	return []byte("null"), nil
}

// UnmarshalJSON accepts either a string or a list of strings.
func (b *Binding) UnmarshalJSON(data []byte) error {
	var single string
	if err := json.Unmarshal(data, &single); err == nil {
		if single == "" {
			return ErrEmptyBinding
		}
		*b = SingleKey(single)
		return nil
	}
	var chord []string
	if err := json.Unmarshal(data, &chord); err != nil {
		return fmt.Errorf("binding must be a string or a list of strings: %w", err)
	}
	if len(chord) == 0 {
		return ErrEmptyBinding
	}
	*b = ChordKeys(chord...)
	return nil
}

// KeyMap maps MIDI note numbers (0-127) to bindings. An absent note is unmapped.
type KeyMap map[int]Binding

// Clone returns an independent copy of the map.
func (m KeyMap) Clone() KeyMap {
	out := make(KeyMap, len(m))
	for note, b := range m {
		out[note] = Binding{keys: b.Keys(), chord: b.chord}
	}
	return out
}
