package contracts

// SessionState is the coarse state shown to the user.
type SessionState int

const (
	StateReady SessionState = iota
	StateLive
	StatePlaying
	StatePaused
)

func (s SessionState) String() string {
	switch s {
	case StateLive:
		return "live"
	case StatePlaying:
		return "playing"
	case StatePaused:
		return "paused"
	default:
		return "ready"
	}
}

// Status is a state change notification.
type Status struct {
	State  SessionState
	Detail string
}

// StatusListener receives state changes and the note currently sounding.
// Calls may arrive from any goroutine.
type StatusListener interface {
	OnStatus(Status)
	OnNote(name string, active bool)
}

// NopStatusListener ignores every notification.
type NopStatusListener struct{}

func (NopStatusListener) OnStatus(Status)     {}
func (NopStatusListener) OnNote(string, bool) {}
