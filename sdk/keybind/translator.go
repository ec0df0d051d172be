// Package keybind turns MIDI notes from a live device or a file into
// keystrokes sent to the foreground application.
package keybind

import (
	"context"
	"sync"

	"github.com/leandrodaf/midikeys/internal/engine"
	"github.com/leandrodaf/midikeys/internal/profile"
	"github.com/leandrodaf/midikeys/sdk/contracts"
	"go.uber.org/multierr"
)

// Translator wires the engine to the OS capabilities and profile storage.
// Playback, pause, transpose and config methods come from the embedded engine.
type Translator struct {
	*engine.Engine

	logger      contracts.Logger
	client      contracts.ClientMIDI
	windows     contracts.WindowQuery
	hotkeys     contracts.HotkeySource
	profiles    contracts.ProfileStore
	profilesDir string

	mu          sync.Mutex
	profilePath string
	meta        contracts.Metadata
}

// NewTranslator creates a translator. Collaborators not given through opts
// are created for the current OS.
func NewTranslator(opts ...contracts.TranslatorOption) (*Translator, error) {
	options := applyDefaultOptions(opts...)

	e := engine.New(engine.Deps{
		Logger:      options.Logger,
		Injector:    options.Injector,
		Windows:     options.Windows,
		Listener:    options.Listener,
		Clock:       options.Clock,
		NormFloat64: options.NormFloat64,
	})
	if options.Config != nil {
		e.SetConfig(*options.Config)
	}

	t := &Translator{
		Engine:      e,
		logger:      options.Logger,
		client:      options.MIDIClient,
		windows:     options.Windows,
		hotkeys:     options.Hotkeys,
		profiles:    options.Profiles,
		profilesDir: options.ProfilesDir,
		meta:        profile.DefaultMetadata("default.json"),
	}
	if options.ProfilePath != "" {
		t.LoadProfile(options.ProfilePath)
	}
	return t, nil
}

// LoadProfile activates the profile at path. Unreadable profiles activate the
// built-in key map.
func (t *Translator) LoadProfile(path string) contracts.Metadata {
	km, meta := t.profiles.Load(path)
	if err := t.SetKeyMap(km); err != nil {
		t.logger.Warn("Releasing keys on profile switch failed", t.logger.Field().Error("error", err))
	}
	t.SetHotkeys(meta.Hotkeys)

	t.mu.Lock()
	t.profilePath, t.meta = path, meta
	t.mu.Unlock()

	t.logger.Info("Profile active",
		t.logger.Field().String("path", path),
		t.logger.Field().String("name", meta.Name),
		t.logger.Field().String("linked_window", meta.LinkedWindow))
	return meta
}

// SaveProfile writes the active key map with meta to path and makes it the active profile.
func (t *Translator) SaveProfile(path string, meta contracts.Metadata) error {
	meta.Hotkeys = meta.Hotkeys.WithDefaults()
	if err := t.profiles.Save(path, t.KeyMap(), meta); err != nil {
		return err
	}
	t.SetHotkeys(meta.Hotkeys)

	t.mu.Lock()
	t.profilePath, t.meta = path, meta
	t.mu.Unlock()
	return nil
}

// Profile returns the active profile's path and metadata.
func (t *Translator) Profile() (string, contracts.Metadata) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.profilePath, t.meta
}

// ScanProfiles lists the profiles in the configured profiles directory.
func (t *Translator) ScanProfiles() ([]contracts.ProfileInfo, error) {
	return t.profiles.Scan(t.profilesDir)
}

// AutoSelectProfile activates the first profile whose linked window is open.
// It reports whether a profile was switched to.
func (t *Translator) AutoSelectProfile() (contracts.ProfileInfo, bool, error) {
	profiles, err := t.ScanProfiles()
	if err != nil {
		return contracts.ProfileInfo{}, false, err
	}
	open, err := t.windows.ListWindows()
	if err != nil {
		return contracts.ProfileInfo{}, false, err
	}
	current, _ := t.Profile()
	match, ok := profile.MatchLinked(profiles, open, current)
	if !ok {
		return contracts.ProfileInfo{}, false, nil
	}
	t.logger.Info("Linked window open; switching profile",
		t.logger.Field().String("profile", match.ID),
		t.logger.Field().String("linked_window", match.Metadata.LinkedWindow))
	t.LoadProfile(match.ID)
	return match, true, nil
}

// Devices lists the MIDI input devices.
func (t *Translator) Devices() ([]contracts.DeviceInfo, error) {
	if t.client == nil {
		return nil, engine.ErrNoMIDIClient
	}
	return t.client.ListDevices()
}

// Windows lists the titles of the visible top-level windows.
func (t *Translator) Windows() ([]string, error) {
	return t.windows.ListWindows()
}

// StartLive (re)starts the live input pump on device. A previous session,
// including one still winding down after an input error, is stopped and
// waited for first.
func (t *Translator) StartLive(device string) error {
	t.StopLive()
	t.WaitLive()
	return t.Engine.StartLive(t.client, device)
}

// StartHotkeys begins routing global hotkeys to the engine.
func (t *Translator) StartHotkeys() error {
	return t.hotkeys.Start(t.HandleHotkey)
}

// ReadHotkey blocks until a key is pressed and returns its name.
func (t *Translator) ReadHotkey(ctx context.Context) (string, error) {
	return t.hotkeys.ReadHotkey(ctx)
}

// Close stops hotkeys and both workers, releases held keys and closes the MIDI client.
func (t *Translator) Close(ctx context.Context) error {
	err := t.hotkeys.Stop()
	err = multierr.Append(err, t.Engine.Close(ctx))
	if t.client != nil {
		err = multierr.Append(err, t.client.Stop())
	}
	return err
}
