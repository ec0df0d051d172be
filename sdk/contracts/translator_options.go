package contracts

// TranslatorOptions defines the collaborators and initial state of a translator.
type TranslatorOptions struct {
	Logger       Logger         // Logger shared by every component.
	LogLevel     LogLevel       // Level of logging to use.
	LogFilePath  string         // File path for logging if file logging is enabled.
	MIDIClient   ClientMIDI     // Live input capability; nil disables live input.
	Injector     KeyInjector    // Key-injection capability.
	Windows      WindowQuery    // Window-query capability.
	Hotkeys      HotkeySource   // Global hotkey capability; nil disables hotkeys.
	Profiles     ProfileStore   // Profile persistence.
	Listener     StatusListener // Receives state and note display updates.
	Clock        Clock          // Time source for waits and jitter.
	NormFloat64  func() float64 // Standard-normal source for jitter.
	Config       *Config        // Initial runtime configuration.
	ProfilePath  string         // Profile to load at startup.
	ProfilesDir  string         // Directory scanned for linked-window profile switching.
	SkipMIDIInit bool           // Do not create an OS MIDI client when MIDIClient is nil.
}

// TranslatorOption is a function that modifies TranslatorOptions.
type TranslatorOption func(*TranslatorOptions)

// WithTranslatorLogger sets the logger for the translator.
func WithTranslatorLogger(l Logger) TranslatorOption {
	return func(opts *TranslatorOptions) {
		opts.Logger = l
	}
}

// WithTranslatorLogLevel sets the logging level for the translator.
func WithTranslatorLogLevel(level LogLevel) TranslatorOption {
	return func(opts *TranslatorOptions) {
		opts.LogLevel = level
	}
}

// WithTranslatorLogFile sends the translator's log output to a file.
func WithTranslatorLogFile(path string) TranslatorOption {
	return func(opts *TranslatorOptions) {
		opts.LogFilePath = path
	}
}

// WithMIDIClient sets the live MIDI input client.
func WithMIDIClient(c ClientMIDI) TranslatorOption {
	return func(opts *TranslatorOptions) {
		opts.MIDIClient = c
	}
}

// WithoutMIDI disables creation of the OS MIDI client.
func WithoutMIDI() TranslatorOption {
	return func(opts *TranslatorOptions) {
		opts.SkipMIDIInit = true
	}
}

// WithKeyInjector sets the key-injection capability.
func WithKeyInjector(k KeyInjector) TranslatorOption {
	return func(opts *TranslatorOptions) {
		opts.Injector = k
	}
}

// WithWindowQuery sets the window-query capability.
func WithWindowQuery(w WindowQuery) TranslatorOption {
	return func(opts *TranslatorOptions) {
		opts.Windows = w
	}
}

// WithHotkeySource sets the global hotkey capability.
func WithHotkeySource(h HotkeySource) TranslatorOption {
	return func(opts *TranslatorOptions) {
		opts.Hotkeys = h
	}
}

// WithProfileStore sets the profile persistence backend.
func WithProfileStore(s ProfileStore) TranslatorOption {
	return func(opts *TranslatorOptions) {
		opts.Profiles = s
	}
}

// WithStatusListener sets the receiver of state and note display updates.
func WithStatusListener(l StatusListener) TranslatorOption {
	return func(opts *TranslatorOptions) {
		opts.Listener = l
	}
}

// WithClock sets the time source used for waits and jitter.
func WithClock(c Clock) TranslatorOption {
	return func(opts *TranslatorOptions) {
		opts.Clock = c
	}
}

// WithNormFloat64 sets the standard-normal source used for jitter.
func WithNormFloat64(fn func() float64) TranslatorOption {
	return func(opts *TranslatorOptions) {
		opts.NormFloat64 = fn
	}
}

// WithConfig sets the initial runtime configuration.
func WithConfig(cfg Config) TranslatorOption {
	return func(opts *TranslatorOptions) {
		opts.Config = &cfg
	}
}

// WithProfile sets the profile loaded at startup.
func WithProfile(path string) TranslatorOption {
	return func(opts *TranslatorOptions) {
		opts.ProfilePath = path
	}
}

// WithProfilesDir sets the directory scanned for linked-window profiles.
func WithProfilesDir(dir string) TranslatorOption {
	return func(opts *TranslatorOptions) {
		opts.ProfilesDir = dir
	}
}
