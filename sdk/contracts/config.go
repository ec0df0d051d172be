package contracts

// NoTargetWindow is the placeholder window title meaning "no gate target selected".
const NoTargetWindow = "Select Window"

const (
	// MinSpeed and MaxSpeed bound the playback speed multiplier.
	MinSpeed = 0.25
	MaxSpeed = 4.0
)

// Config is the runtime configuration read by the background workers.
// Values are treated as immutable snapshots: replace the whole struct, never mutate a shared one.
type Config struct {
	Speed       float64 // Playback speed multiplier for file playback.
	GateEnabled bool    // Only emit keys while TargetTitle is the foreground window.
	TargetTitle string  // Window title the focus gate compares against.
	Jitter      bool    // Add a small Gaussian delay before each key-down.
	Fallback    bool    // Resolve unmapped notes to the nearest mapped note of the same pitch class.
}

// DefaultConfig returns the configuration a fresh session starts with.
func DefaultConfig() Config {
	return Config{
		Speed:       1.0,
		GateEnabled: true,
		Fallback:    true,
	}
}

// GateActive reports whether the focus gate needs to query the foreground window.
func (c Config) GateActive() bool {
	return c.GateEnabled && c.TargetTitle != "" && c.TargetTitle != NoTargetWindow
}

// SafeSpeed returns the speed multiplier clamped to [MinSpeed, MaxSpeed].
func (c Config) SafeSpeed() float64 {
	switch {
	case c.Speed != c.Speed || c.Speed <= 0: // NaN or unset
		return 1.0
	case c.Speed < MinSpeed:
		return MinSpeed
	case c.Speed > MaxSpeed:
		return MaxSpeed
	default:
		return c.Speed
	}
}
