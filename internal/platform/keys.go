package platform

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownKey is returned for key names with no virtual-key code.
var ErrUnknownKey = errors.New("unknown key name")

// Key is a Windows virtual-key code and whether it needs the extended-key flag.
type Key struct {
	VK       uint16
	Extended bool
}

type keyDef struct {
	name    string
	aliases []string
	key     Key
}

// Canonical names follow the names profiles and hotkeys are written with.
var keyDefs = func() []keyDef {
	defs := []keyDef{
		{name: "backspace", key: Key{VK: 0x08}},
		{name: "tab", key: Key{VK: 0x09}},
		{name: "enter", aliases: []string{"return"}, key: Key{VK: 0x0D}},
		{name: "shift", key: Key{VK: 0x10}},
		{name: "ctrl", aliases: []string{"control"}, key: Key{VK: 0x11}},
		{name: "alt", key: Key{VK: 0x12}},
		{name: "pause", key: Key{VK: 0x13}},
		{name: "capslock", aliases: []string{"caps lock"}, key: Key{VK: 0x14}},
		{name: "esc", aliases: []string{"escape"}, key: Key{VK: 0x1B}},
		{name: "space", aliases: []string{" "}, key: Key{VK: 0x20}},
		{name: "page up", aliases: []string{"pageup", "pgup"}, key: Key{VK: 0x21, Extended: true}},
		{name: "page down", aliases: []string{"pagedown", "pgdn"}, key: Key{VK: 0x22, Extended: true}},
		{name: "end", key: Key{VK: 0x23, Extended: true}},
		{name: "home", key: Key{VK: 0x24, Extended: true}},
		{name: "left", key: Key{VK: 0x25, Extended: true}},
		{name: "up", key: Key{VK: 0x26, Extended: true}},
		{name: "right", key: Key{VK: 0x27, Extended: true}},
		{name: "down", key: Key{VK: 0x28, Extended: true}},
		{name: "insert", key: Key{VK: 0x2D, Extended: true}},
		{name: "delete", aliases: []string{"del"}, key: Key{VK: 0x2E, Extended: true}},
		{name: "left shift", aliases: []string{"shiftleft", "lshift"}, key: Key{VK: 0xA0}},
		{name: "right shift", aliases: []string{"shiftright", "rshift"}, key: Key{VK: 0xA1}},
		{name: "left ctrl", aliases: []string{"ctrlleft", "lctrl"}, key: Key{VK: 0xA2}},
		{name: "right ctrl", aliases: []string{"ctrlright", "rctrl"}, key: Key{VK: 0xA3, Extended: true}},
		{name: "left alt", aliases: []string{"altleft", "lalt"}, key: Key{VK: 0xA4}},
		{name: "right alt", aliases: []string{"altright", "ralt"}, key: Key{VK: 0xA5, Extended: true}},
		{name: ";", key: Key{VK: 0xBA}},
		{name: "=", key: Key{VK: 0xBB}},
		{name: ",", key: Key{VK: 0xBC}},
		{name: "-", key: Key{VK: 0xBD}},
		{name: ".", key: Key{VK: 0xBE}},
		{name: "/", key: Key{VK: 0xBF}},
		{name: "`", key: Key{VK: 0xC0}},
		{name: "[", key: Key{VK: 0xDB}},
		{name: "\\", key: Key{VK: 0xDC}},
		{name: "]", key: Key{VK: 0xDD}},
		{name: "'", key: Key{VK: 0xDE}},
	}
	for c := 'a'; c <= 'z'; c++ {
		defs = append(defs, keyDef{name: string(c), key: Key{VK: uint16(c - 'a' + 0x41)}})
	}
	for d := 0; d <= 9; d++ {
		defs = append(defs,
			keyDef{name: fmt.Sprint(d), key: Key{VK: uint16(0x30 + d)}},
			keyDef{name: fmt.Sprintf("num%d", d), aliases: []string{fmt.Sprintf("numpad%d", d)}, key: Key{VK: uint16(0x60 + d)}},
		)
	}
	for f := 1; f <= 24; f++ {
		defs = append(defs, keyDef{name: fmt.Sprintf("f%d", f), key: Key{VK: uint16(0x70 + f - 1)}})
	}
	return defs
}()

var (
	keysByName = make(map[string]Key)
	namesByVK  = make(map[uint16]string)
)

func init() {
	for _, d := range keyDefs {
		keysByName[d.name] = d.key
		for _, a := range d.aliases {
			keysByName[a] = d.key
		}
		if _, ok := namesByVK[d.key.VK]; !ok {
			namesByVK[d.key.VK] = d.name
		}
	}
}

// LookupKey resolves a key name, case-insensitively.
func LookupKey(name string) (Key, error) {
	n := strings.ToLower(name)
	if n != " " {
		n = strings.TrimSpace(n)
	}
	if k, ok := keysByName[n]; ok {
		return k, nil
	}
	return Key{}, fmt.Errorf("%w: %q", ErrUnknownKey, name)
}

// KeyName returns the canonical name of a virtual-key code, or "" if unknown.
func KeyName(vk uint16) string {
	return namesByVK[vk]
}

// ValidateKeys reports the first unknown name in keys.
func ValidateKeys(keys ...string) error {
	for _, k := range keys {
		if _, err := LookupKey(k); err != nil {
			return err
		}
	}
	return nil
}

// watchedKeys lists every virtual-key code a key poller samples.
func watchedKeys() []uint16 {
	out := make([]uint16, 0, len(keyDefs))
	for _, d := range keyDefs {
		out = append(out, d.key.VK)
	}
	return out
}
