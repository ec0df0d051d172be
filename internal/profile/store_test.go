package profile

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/leandrodaf/midikeys/internal/keymap"
	"github.com/leandrodaf/midikeys/internal/logger"
	"github.com/leandrodaf/midikeys/sdk/contracts"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDisplayName(t *testing.T) {
	tests := map[string]string{
		"my_game.json":                "My Game",
		"/profiles/GENSHIN_lyre.json": "Genshin Lyre",
		"piano":                       "Piano",
	}
	for in, want := range tests {
		if got := DisplayName(in); got != want {
			t.Errorf("DisplayName(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestDecode(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantMap contracts.KeyMap
		want    contracts.Metadata
	}{
		{
			name:    "legacy flat map",
			input:   `{"60": "a", "62": ["shift", "b"]}`,
			wantMap: contracts.KeyMap{60: contracts.SingleKey("a"), 62: contracts.ChordKeys("shift", "b")},
			want:    contracts.Metadata{Name: "My Game", Hotkeys: contracts.DefaultHotkeys()},
		},
		{
			name: "structured",
			input: `{
				"metadata": {"name": "Lyre", "linked_window": "Genshin", "hotkeys": {"play_pause": "home", "stop": "end"}},
				"mappings": {"48": "z"}
			}`,
			wantMap: contracts.KeyMap{48: contracts.SingleKey("z")},
			want: contracts.Metadata{
				Name:         "Lyre",
				LinkedWindow: "Genshin",
				Hotkeys:      contracts.Hotkeys{PlayPause: "home", Stop: "end", TransposeUp: "page up", TransposeDown: "page down"},
			},
		},
		{
			name:    "unnamed profile takes the file name",
			input:   `{"metadata": {"name": "Unnamed Profile"}, "mappings": {"60": "q"}}`,
			wantMap: contracts.KeyMap{60: contracts.SingleKey("q")},
			want:    contracts.Metadata{Name: "My Game", Hotkeys: contracts.DefaultHotkeys()},
		},
		{
			name:    "structured without mappings",
			input:   `{"metadata": {"name": "Empty"}}`,
			wantMap: keymap.Default(),
			want:    contracts.Metadata{Name: "Empty", Hotkeys: contracts.DefaultHotkeys()},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			km, meta, err := Decode([]byte(tt.input), "profiles/my_game.json")
			if err != nil {
				t.Fatalf("Decode: %v", err)
			}
			if !reflect.DeepEqual(km, tt.wantMap) {
				t.Errorf("key map = %v, want %v", km, tt.wantMap)
			}
			if meta != tt.want {
				t.Errorf("metadata = %+v, want %+v", meta, tt.want)
			}
		})
	}
}

func TestDecodeInvalid(t *testing.T) {
	for _, input := range []string{
		`not json`,
		`{"sixty": "a"}`,
		`{"60": 7}`,
		`{"60": []}`,
		`[1, 2]`,
	} {
		if _, _, err := Decode([]byte(input), "x.json"); !errors.Is(err, ErrInvalidProfile) {
			t.Errorf("Decode(%s) error = %v, want ErrInvalidProfile", input, err)
		}
	}
}

func TestLoadFallsBackToDefaults(t *testing.T) {
	dir := t.TempDir()
	store := NewStore(logger.NewNopLogger())

	for _, path := range []string{
		filepath.Join(dir, "missing_profile.json"),
		writeFile(t, dir, "broken_profile.json", "{"),
	} {
		km, meta := store.Load(path)
		if !reflect.DeepEqual(km, keymap.Default()) {
			t.Errorf("Load(%s) did not return the default map", path)
		}
		if meta.Hotkeys != contracts.DefaultHotkeys() || meta.LinkedWindow != "" {
			t.Errorf("Load(%s) metadata = %+v", path, meta)
		}
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	store := NewStore(logger.NewNopLogger())
	path := filepath.Join(dir, "lyre.json")

	km := contracts.KeyMap{60: contracts.SingleKey("a"), 61: contracts.ChordKeys("shift", "a")}
	meta := contracts.Metadata{Name: "Lyre", LinkedWindow: "Game", Hotkeys: contracts.DefaultHotkeys()}
	if err := store.Save(path, km, meta); err != nil {
		t.Fatalf("Save: %v", err)
	}

	gotMap, gotMeta := store.Load(path)
	if !reflect.DeepEqual(gotMap, km) {
		t.Errorf("key map = %v, want %v", gotMap, km)
	}
	if gotMeta != meta {
		t.Errorf("metadata = %+v, want %+v", gotMeta, meta)
	}
}

func TestScanAndMatchLinked(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a_piano.json", `{"60": "a"}`)
	writeFile(t, dir, "b_lyre.JSON", `{"metadata": {"name": "Lyre", "linked_window": "genshin"}}`)
	writeFile(t, dir, "notes.txt", `ignored`)
	if err := os.Mkdir(filepath.Join(dir, "sub.json"), 0o755); err != nil {
		t.Fatal(err)
	}

	store := NewStore(logger.NewNopLogger())
	profiles, err := store.Scan(dir)
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if len(profiles) != 2 {
		t.Fatalf("Scan found %d profiles, want 2", len(profiles))
	}
	if profiles[0].Metadata.Name != "A Piano" || profiles[1].Metadata.Name != "Lyre" {
		t.Errorf("profiles = %+v", profiles)
	}

	windows := []string{"Untitled - Notepad", "Genshin Impact"}
	got, ok := MatchLinked(profiles, windows, "")
	if !ok || got.ID != profiles[1].ID {
		t.Errorf("MatchLinked = %+v, %v", got, ok)
	}
	if _, ok := MatchLinked(profiles, windows, profiles[1].ID); ok {
		t.Error("MatchLinked returned the current profile")
	}
	if _, ok := MatchLinked(profiles, []string{"Editor"}, ""); ok {
		t.Error("MatchLinked matched without a linked window open")
	}

	if _, err := store.Scan(filepath.Join(dir, "nope")); err == nil {
		t.Error("Scan of a missing directory succeeded")
	}
}
