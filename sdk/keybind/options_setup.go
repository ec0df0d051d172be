package keybind

import (
	"github.com/leandrodaf/midikeys/internal/logger"
	"github.com/leandrodaf/midikeys/internal/platform"
	"github.com/leandrodaf/midikeys/internal/profile"
	"github.com/leandrodaf/midikeys/sdk/contracts"
	"github.com/leandrodaf/midikeys/sdk/midi"
)

// applyDefaultOptions fills every collaborator the caller left unset with the
// OS implementation. A MIDI client that cannot be created only disables live input.
func applyDefaultOptions(opts ...contracts.TranslatorOption) contracts.TranslatorOptions {
	options := &contracts.TranslatorOptions{}
	for _, opt := range opts {
		opt(options)
	}

	if options.Logger == nil {
		options.Logger = logger.NewZapLogger()
	}
	options.Logger.SetLevel(options.LogLevel)
	if options.LogFilePath != "" {
		options.Logger.SetDestination(contracts.FileLog, options.LogFilePath)
	}

	if options.Injector == nil {
		options.Injector = platform.NewInjector(options.Logger)
	}
	if options.Windows == nil {
		options.Windows = platform.NewWindowQuery(options.Logger)
	}
	if options.Hotkeys == nil {
		options.Hotkeys = platform.NewHotkeySource(options.Logger)
	}
	if options.Profiles == nil {
		options.Profiles = profile.NewStore(options.Logger)
	}
	if options.Listener == nil {
		options.Listener = contracts.NopStatusListener{}
	}
	if options.ProfilesDir == "" {
		options.ProfilesDir = "."
	}

	if options.MIDIClient == nil && !options.SkipMIDIInit {
		client, err := midi.NewMIDIClient(
			contracts.WithLogger(options.Logger),
			contracts.WithLogLevel(options.LogLevel),
		)
		if err != nil {
			options.Logger.Warn("MIDI input unavailable; live input disabled", options.Logger.Field().Error("error", err))
		} else {
			options.MIDIClient = client
		}
	}
	return *options
}
