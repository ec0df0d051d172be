package contracts

import (
	"encoding/json"
	"errors"
	"reflect"
	"testing"
)

func TestBindingJSON(t *testing.T) {
	tests := []struct {
		input string
		want  Binding
		str   string
	}{
		{`"a"`, SingleKey("a"), "a"},
		{`["shift", "a"]`, ChordKeys("shift", "a"), "[shift+a]"},
		{`["space"]`, ChordKeys("space"), "[space]"},
	}
	for _, tt := range tests {
		var b Binding
		if err := json.Unmarshal([]byte(tt.input), &b); err != nil {
			t.Fatalf("Unmarshal(%s): %v", tt.input, err)
		}
		if !reflect.DeepEqual(b, tt.want) {
			t.Errorf("Unmarshal(%s) = %#v, want %#v", tt.input, b, tt.want)
		}
		if b.String() != tt.str {
			t.Errorf("String() = %q, want %q", b.String(), tt.str)
		}

		out, err := json.Marshal(b)
		if err != nil {
			t.Fatalf("Marshal: %v", err)
		}
		var again Binding
		if err := json.Unmarshal(out, &again); err != nil || !reflect.DeepEqual(again, b) {
			t.Errorf("%s did not survive re-encoding as %s", tt.input, out)
		}
	}
}

func TestBindingJSONRejects(t *testing.T) {
	for _, input := range []string{`""`, `[]`, `7`, `{"key": "a"}`} {
		var b Binding
		err := json.Unmarshal([]byte(input), &b)
		if err == nil {
			t.Errorf("Unmarshal(%s) succeeded with %v", input, b)
		}
	}
	var b Binding
	if err := json.Unmarshal([]byte(`[]`), &b); !errors.Is(err, ErrEmptyBinding) {
		t.Errorf("Unmarshal([]) = %v, want ErrEmptyBinding", err)
	}
}

func TestBindingKeysAreCopies(t *testing.T) {
	b := ChordKeys("shift", "a")
	keys := b.Keys()
	keys[0] = "ctrl"
	if b.Keys()[0] != "shift" {
		t.Error("Keys() exposed the binding's backing array")
	}

	km := KeyMap{60: b}
	clone := km.Clone()
	clone[61] = SingleKey("b")
	if _, ok := km[61]; ok {
		t.Error("Clone() shares the map")
	}
	if !reflect.DeepEqual(clone[60], b) {
		t.Errorf("Clone()[60] = %v", clone[60])
	}
}
