package contracts

import (
	"time"

	"gitlab.com/gomidi/midi/v2"
)

// MIDI represents a MIDI event with a timestamp, command, note, and velocity.
type MIDI struct {
	Timestamp uint64 // Timestamp indicates the time the event occurred.
	Command   byte   // Command specifies the type of MIDI event (e.g., Note On, Note Off), without channel bits.
	Channel   byte   // Channel is the zero-based MIDI channel.
	Note      byte   // Note represents the MIDI note number (0-127).
	Velocity  byte   // Velocity indicates the strength of the note being played (0-127).
}

// NoteKind classifies a MIDI event for the translation pipeline.
type NoteKind int

const (
	// OtherKind is any message that is neither a note start nor a note end.
	OtherKind NoteKind = iota
	// NoteOnKind is a note-on with a non-zero velocity.
	NoteOnKind
	// NoteOffKind is a note-off, or a note-on with zero velocity (running-status convention).
	NoteOffKind
)

func (k NoteKind) String() string {
	switch k {
	case NoteOnKind:
		return "note_on"
	case NoteOffKind:
		return "note_off"
	default:
		return "other"
	}
}

// Message returns the event as a gomidi channel message.
func (m MIDI) Message() midi.Message {
	return midi.Message([]byte{m.Command&0xF0 | m.Channel&0x0F, m.Note & 0x7F, m.Velocity & 0x7F})
}

// Kind reports whether the event starts a note, ends a note, or is something else.
func (m MIDI) Kind() NoteKind {
	var ch, key, vel uint8
	msg := m.Message()
	switch {
	case msg.GetNoteStart(&ch, &key, &vel):
		return NoteOnKind
	case msg.GetNoteEnd(&ch, &key):
		return NoteOffKind
	default:
		return OtherKind
	}
}

// NewNoteOn builds a note-on event stamped with the current time.
func NewNoteOn(channel, note, velocity byte) MIDI {
	return MIDI{Timestamp: uint64(time.Now().UTC().UnixNano()), Command: byte(NoteOn), Channel: channel, Note: note, Velocity: velocity}
}

// NewNoteOff builds a note-off event stamped with the current time.
func NewNoteOff(channel, note byte) MIDI {
	return MIDI{Timestamp: uint64(time.Now().UTC().UnixNano()), Command: byte(NoteOff), Channel: channel, Note: note}
}

// InputStream is an opened MIDI input endpoint.
type InputStream interface {
	Name() string             // Name of the endpoint this stream was opened from.
	Pending() ([]MIDI, error) // Drains every event received since the previous call without blocking.
	Close() error             // Disconnects the endpoint; Pending returns ErrStreamClosed afterwards.
}

// ClientMIDI defines an interface for MIDI client operations.
type ClientMIDI interface {
	ListDevices() ([]DeviceInfo, error)    // Lists all available MIDI input devices.
	Open(name string) (InputStream, error) // Opens the input device with the given name.
	Stop() error                           // Closes every open stream and releases resources.
}
