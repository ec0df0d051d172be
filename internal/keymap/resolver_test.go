package keymap

import (
	"reflect"
	"testing"

	"github.com/leandrodaf/midikeys/sdk/contracts"
)

func TestResolveDirect(t *testing.T) {
	km := contracts.KeyMap{
		60: contracts.SingleKey("a"),
		62: contracts.ChordKeys("s", "d"),
	}
	for note, want := range km {
		for _, fallback := range []bool{false, true} {
			got, ok := Resolve(note, km, fallback)
			if !ok || !reflect.DeepEqual(got, want) {
				t.Errorf("Resolve(%d, fallback=%v) = %v, %v; want %v", note, fallback, got, ok, want)
			}
		}
	}
}

func TestResolveFallback(t *testing.T) {
	tests := []struct {
		name     string
		keyMap   contracts.KeyMap
		note     int
		fallback bool
		want     string
		ok       bool
	}{
		{
			name:     "octave up resolves to only candidate",
			keyMap:   contracts.KeyMap{60: contracts.SingleKey("a")},
			note:     72,
			fallback: true,
			want:     "a",
			ok:       true,
		},
		{
			name:     "fallback disabled",
			keyMap:   contracts.KeyMap{60: contracts.SingleKey("a")},
			note:     72,
			fallback: false,
		},
		{
			name:     "closest candidate wins",
			keyMap:   contracts.KeyMap{36: contracts.SingleKey("low"), 60: contracts.SingleKey("mid"), 96: contracts.SingleKey("high")},
			note:     84,
			fallback: true,
			want:     "high",
			ok:       true,
		},
		{
			name:     "equidistant picks lower note",
			keyMap:   contracts.KeyMap{48: contracts.SingleKey("low"), 72: contracts.SingleKey("high")},
			note:     60,
			fallback: true,
			want:     "low",
			ok:       true,
		},
		{
			name:     "no same pitch class",
			keyMap:   contracts.KeyMap{61: contracts.SingleKey("a"), 62: contracts.SingleKey("b")},
			note:     60,
			fallback: true,
		},
		{
			name:     "empty map",
			keyMap:   contracts.KeyMap{},
			note:     60,
			fallback: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Resolve(tt.note, tt.keyMap, tt.fallback)
			if ok != tt.ok {
				t.Fatalf("ok = %v, want %v", ok, tt.ok)
			}
			if ok && got.String() != tt.want {
				t.Errorf("got %q, want %q", got.String(), tt.want)
			}
		})
	}
}

func TestResolveTieBreakIsStable(t *testing.T) {
	km := contracts.KeyMap{
		36: contracts.SingleKey("c2"),
		48: contracts.SingleKey("c3"),
		72: contracts.SingleKey("c5"),
		84: contracts.SingleKey("c6"),
	}
	for i := 0; i < 50; i++ {
		got, ok := Resolve(60, km, true)
		if !ok || got.String() != "c3" {
			t.Fatalf("iteration %d: got %v, %v; want c3", i, got, ok)
		}
	}
}

func TestResolveUnmappedWithoutCandidates(t *testing.T) {
	km := contracts.KeyMap{60: contracts.SingleKey("a"), 62: contracts.SingleKey("b")}
	for note := 0; note <= 127; note++ {
		if pc := note % 12; pc == 0 || pc == 2 {
			continue
		}
		for _, fallback := range []bool{false, true} {
			if got, ok := Resolve(note, km, fallback); ok {
				t.Errorf("Resolve(%d, %v) = %v with no same pitch class candidate", note, fallback, got)
			}
		}
	}
}

func TestNoteName(t *testing.T) {
	tests := map[int]string{
		60:  "C4",
		61:  "C#4",
		21:  "A0",
		0:   "C-1",
		127: "G9",
		-1:  "Invalid",
		128: "Invalid",
	}
	for note, want := range tests {
		if got := NoteName(note); got != want {
			t.Errorf("NoteName(%d) = %q, want %q", note, got, want)
		}
	}
}

func TestDefaultMap(t *testing.T) {
	km := Default()
	if got := km[60].String(); got != "esc" {
		t.Errorf("default[60] = %q, want esc", got)
	}
	if _, ok := km[67]; ok {
		t.Error("default map should leave 67 unmapped")
	}
	km[60] = contracts.SingleKey("changed")
	if Default()[60].String() != "esc" {
		t.Error("Default must return a fresh map")
	}
}
