package engine

import (
	"time"

	"github.com/leandrodaf/midikeys/internal/keymap"
	"github.com/leandrodaf/midikeys/sdk/contracts"
)

// Source identifies which worker produced an event.
type Source int

const (
	SourceLive Source = iota
	SourceFile
)

func (s Source) String() string {
	if s == SourceFile {
		return "file"
	}
	return "live"
}

const (
	jitterMean   = 5 * time.Millisecond
	jitterStdDev = 2 * time.Millisecond
)

// Dispatcher turns note events into key-down and key-up actions.
type Dispatcher struct {
	logger    contracts.Logger
	injector  contracts.KeyInjector
	held      *HeldKeys
	clock     contracts.Clock
	normFloat func() float64
	listener  contracts.StatusListener

	keyMap    func() contracts.KeyMap
	config    func() contracts.Config
	transpose func() int
	active    func(Source) bool
}

// Dispatch handles one event from src. Note-on presses the resolved keys if
// src is still active; note-off (or note-on with velocity 0) releases them.
// Anything else is ignored.
func (d *Dispatcher) Dispatch(ev contracts.MIDI, src Source) {
	switch ev.Kind() {
	case contracts.NoteOnKind:
		d.noteOn(ev, src)
	case contracts.NoteOffKind:
		d.noteOff(ev, src)
	}
}

func (d *Dispatcher) noteOn(ev contracts.MIDI, src Source) {
	cfg := d.config()
	if cfg.Jitter {
		d.clock.Sleep(d.jitter())
	}

	note := int(ev.Note) + d.transpose()
	if !keymap.InRange(note) {
		d.logger.Debug("Transposed note out of range", d.logger.Field().Int("note", int(ev.Note)), d.logger.Field().Int("transposed", note))
		return
	}
	d.listener.OnNote(keymap.NoteName(note), true)

	binding, ok := keymap.Resolve(note, d.keyMap(), cfg.Fallback)
	if !ok {
		return
	}
	keys := binding.Keys()
	if !d.held.PressIf(keys, func() bool { return d.active(src) }, d.keyDown) {
		d.logger.Debug("Source no longer active; key-down dropped", d.logger.Field().String("source", src.String()))
		return
	}
	d.logger.Debug("Key down",
		d.logger.Field().String("source", src.String()),
		d.logger.Field().Int("note", note),
		d.logger.Field().Strings("keys", keys))
}

func (d *Dispatcher) keyDown(keys []string) {
	for _, k := range keys {
		if err := d.injector.KeyDown(k); err != nil {
			d.logger.Warn("Key down failed", d.logger.Field().String("key", k), d.logger.Field().Error("error", err))
		}
	}
}

func (d *Dispatcher) noteOff(ev contracts.MIDI, src Source) {
	note := int(ev.Note) + d.transpose()
	if !keymap.InRange(note) {
		return
	}
	d.listener.OnNote("", false)

	binding, ok := keymap.Resolve(note, d.keyMap(), d.config().Fallback)
	if !ok {
		return
	}
	keys := binding.Keys()
	d.held.Track(keys, false)
	for _, k := range keys {
		if err := d.injector.KeyUp(k); err != nil {
			d.logger.Warn("Key up failed", d.logger.Field().String("key", k), d.logger.Field().Error("error", err))
		}
	}
	d.logger.Debug("Key up",
		d.logger.Field().String("source", src.String()),
		d.logger.Field().Int("note", note),
		d.logger.Field().Strings("keys", keys))
}

// jitter draws from N(5ms, 2ms) clamped at zero.
func (d *Dispatcher) jitter() time.Duration {
	j := jitterMean + time.Duration(d.normFloat()*float64(jitterStdDev))
	if j < 0 {
		return 0
	}
	return j
}
