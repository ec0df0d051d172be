package profile

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/leandrodaf/midikeys/internal/keymap"
	"github.com/leandrodaf/midikeys/sdk/contracts"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// ErrInvalidProfile is returned when a profile file cannot be decoded.
var ErrInvalidProfile = errors.New("invalid profile")

const unnamedProfile = "Unnamed Profile"

// Store reads and writes JSON profiles on the local filesystem.
type Store struct {
	logger contracts.Logger
}

var _ contracts.ProfileStore = (*Store)(nil)

// NewStore returns a filesystem-backed profile store.
func NewStore(logger contracts.Logger) *Store {
	return &Store{logger: logger}
}

// Load reads the profile at path. Any failure yields the built-in key map
// and metadata derived from the file name.
func (s *Store) Load(path string) (contracts.KeyMap, contracts.Metadata) {
	data, err := os.ReadFile(path)
	if err != nil {
		s.logger.Warn("Profile not readable; using default key map", s.logger.Field().String("path", path), s.logger.Field().Error("error", err))
		return keymap.Default(), DefaultMetadata(path)
	}
	km, meta, err := Decode(data, path)
	if err != nil {
		s.logger.Warn("Profile not valid; using default key map", s.logger.Field().String("path", path), s.logger.Field().Error("error", err))
		return keymap.Default(), DefaultMetadata(path)
	}
	s.logger.Debug("Profile loaded",
		s.logger.Field().String("path", path),
		s.logger.Field().String("name", meta.Name),
		s.logger.Field().Int("mappings", len(km)))
	return km, meta
}

// Save writes the profile in the structured format.
func (s *Store) Save(path string, km contracts.KeyMap, meta contracts.Metadata) error {
	data, err := Encode(km, meta)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing profile %s: %w", path, err)
	}
	s.logger.Info("Profile saved", s.logger.Field().String("path", path), s.logger.Field().String("name", meta.Name))
	return nil
}

// Scan lists the *.json profiles in dir with their metadata.
func (s *Store) Scan(dir string) ([]contracts.ProfileInfo, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("scanning profiles in %s: %w", dir, err)
	}
	var out []contracts.ProfileInfo
	for _, entry := range entries {
		if entry.IsDir() || !strings.EqualFold(filepath.Ext(entry.Name()), ".json") {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		_, meta := s.Load(path)
		out = append(out, contracts.ProfileInfo{ID: path, Metadata: meta})
	}
	return out, nil
}

type document struct {
	Metadata *contracts.Metadata          `json:"metadata"`
	Mappings map[string]contracts.Binding `json:"mappings"`
}

// Decode parses either profile shape. A document with a "metadata" member is
// structured; anything else is a legacy flat note-to-binding object. path only
// seeds the display name.
func Decode(data []byte, path string) (contracts.KeyMap, contracts.Metadata, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, contracts.Metadata{}, fmt.Errorf("%w: %v", ErrInvalidProfile, err)
	}

	meta := DefaultMetadata(path)
	if _, structured := raw["metadata"]; !structured {
		var flat map[string]contracts.Binding
		if err := json.Unmarshal(data, &flat); err != nil {
			return nil, contracts.Metadata{}, fmt.Errorf("%w: %v", ErrInvalidProfile, err)
		}
		km, err := toKeyMap(flat)
		return km, meta, err
	}

	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, contracts.Metadata{}, fmt.Errorf("%w: %v", ErrInvalidProfile, err)
	}
	if doc.Metadata != nil {
		if doc.Metadata.Name != "" && doc.Metadata.Name != unnamedProfile {
			meta.Name = doc.Metadata.Name
		}
		meta.LinkedWindow = doc.Metadata.LinkedWindow
		meta.Hotkeys = doc.Metadata.Hotkeys.WithDefaults()
	}
	if _, ok := raw["mappings"]; !ok {
		return keymap.Default(), meta, nil
	}
	km, err := toKeyMap(doc.Mappings)
	return km, meta, err
}

// Encode renders a structured profile as indented JSON with sorted keys.
func Encode(km contracts.KeyMap, meta contracts.Metadata) ([]byte, error) {
	mappings := make(map[string]contracts.Binding, len(km))
	for note, b := range km {
		if b.IsZero() {
			continue
		}
		mappings[strconv.Itoa(note)] = b
	}
	data, err := json.MarshalIndent(document{Metadata: &meta, Mappings: mappings}, "", "    ")
	if err != nil {
		return nil, fmt.Errorf("encoding profile: %w", err)
	}
	return append(data, '\n'), nil
}

func toKeyMap(in map[string]contracts.Binding) (contracts.KeyMap, error) {
	km := make(contracts.KeyMap, len(in))
	for k, b := range in {
		note, err := strconv.Atoi(strings.TrimSpace(k))
		if err != nil {
			return nil, fmt.Errorf("%w: note %q is not a number", ErrInvalidProfile, k)
		}
		km[note] = b
	}
	return km, nil
}

// DefaultMetadata is the metadata of a profile that defines none.
func DefaultMetadata(path string) contracts.Metadata {
	return contracts.Metadata{
		Name:    DisplayName(path),
		Hotkeys: contracts.DefaultHotkeys(),
	}
}

// DisplayName derives a title from a profile file name: "my_game.json" becomes "My Game".
func DisplayName(path string) string {
	base := filepath.Base(path)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	return cases.Title(language.English).String(strings.ReplaceAll(base, "_", " "))
}

// MatchLinked returns the first profile whose linked window is a
// case-insensitive substring of an open window title. The profile identified
// by current is never returned.
func MatchLinked(profiles []contracts.ProfileInfo, windows []string, current string) (contracts.ProfileInfo, bool) {
	lower := make([]string, len(windows))
	for i, w := range windows {
		lower[i] = strings.ToLower(w)
	}
	for _, p := range profiles {
		link := strings.ToLower(p.Metadata.LinkedWindow)
		if link == "" || p.ID == current {
			continue
		}
		for _, w := range lower {
			if strings.Contains(w, link) {
				return p, true
			}
		}
	}
	return contracts.ProfileInfo{}, false
}
