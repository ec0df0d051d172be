package contracts

// Hotkeys names the global keys bound to session actions.
type Hotkeys struct {
	PlayPause     string `json:"play_pause"`
	Stop          string `json:"stop"`
	TransposeUp   string `json:"transpose_up"`
	TransposeDown string `json:"transpose_down"`
}

// DefaultHotkeys returns the bindings used when a profile does not define them.
func DefaultHotkeys() Hotkeys {
	return Hotkeys{
		PlayPause:     "f9",
		Stop:          "f10",
		TransposeUp:   "page up",
		TransposeDown: "page down",
	}
}

// WithDefaults fills every empty binding from DefaultHotkeys.
func (h Hotkeys) WithDefaults() Hotkeys {
	d := DefaultHotkeys()
	if h.PlayPause == "" {
		h.PlayPause = d.PlayPause
	}
	if h.Stop == "" {
		h.Stop = d.Stop
	}
	if h.TransposeUp == "" {
		h.TransposeUp = d.TransposeUp
	}
	if h.TransposeDown == "" {
		h.TransposeDown = d.TransposeDown
	}
	return h
}

// Metadata describes a profile.
type Metadata struct {
	Name         string  `json:"name"`
	LinkedWindow string  `json:"linked_window"`
	Hotkeys      Hotkeys `json:"hotkeys"`
}

// ProfileInfo pairs a stored profile's identifier with its metadata.
type ProfileInfo struct {
	ID       string
	Metadata Metadata
}

// ProfileStore loads and saves key maps. Load never fails: unreadable profiles
// yield the built-in default map and default metadata.
type ProfileStore interface {
	Load(id string) (KeyMap, Metadata)
	Save(id string, keyMap KeyMap, meta Metadata) error
	Scan(dir string) ([]ProfileInfo, error)
}
