package engine

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"sync/atomic"
	"time"

	"github.com/leandrodaf/midikeys/internal/keymap"
	"github.com/leandrodaf/midikeys/internal/midifile"
	"github.com/leandrodaf/midikeys/sdk/contracts"
	"go.uber.org/multierr"
)

var (
	ErrNoMIDIClient   = errors.New("no MIDI input client configured")
	ErrAlreadyRunning = errors.New("live input already running")
	ErrNoFile         = errors.New("no MIDI file selected")
)

// Deps are the collaborators an Engine drives.
type Deps struct {
	Logger      contracts.Logger
	Injector    contracts.KeyInjector
	Windows     contracts.WindowQuery
	Listener    contracts.StatusListener
	Clock       contracts.Clock
	NormFloat64 func() float64
	LoadFile    func(path string) ([]midifile.Event, error)
}

// Engine owns the session state shared by the live input pump, the file
// playback worker and the controlling goroutine. Flags and the config
// snapshot are atomics so workers never block on the controller.
type Engine struct {
	logger   contracts.Logger
	injector contracts.KeyInjector
	windows  contracts.WindowQuery
	listener contracts.StatusListener
	clock    contracts.Clock
	loadFile func(path string) ([]midifile.Event, error)

	cfg       atomic.Pointer[contracts.Config]
	keyMap    atomic.Pointer[contracts.KeyMap]
	transpose atomic.Int32

	held       *HeldKeys
	gate       *Gate
	dispatcher *Dispatcher

	liveRunning atomic.Bool
	filePlaying atomic.Bool
	filePaused  atomic.Bool

	mu       sync.Mutex
	live     *liveSession
	lastLive *liveSession
	file     *fileSession
	lastFile *fileSession
	filePath string

	hotkeys    contracts.Hotkeys
	lastHotkey map[string]time.Time
}

// New builds an idle engine with the default config and key map.
func New(deps Deps) *Engine {
	if deps.Listener == nil {
		deps.Listener = contracts.NopStatusListener{}
	}
	if deps.Clock == nil {
		deps.Clock = SystemClock{}
	}
	if deps.NormFloat64 == nil {
		deps.NormFloat64 = rand.NormFloat64
	}
	if deps.LoadFile == nil {
		deps.LoadFile = midifile.Load
	}

	e := &Engine{
		logger:     deps.Logger,
		injector:   deps.Injector,
		windows:    deps.Windows,
		listener:   deps.Listener,
		clock:      deps.Clock,
		loadFile:   deps.LoadFile,
		held:       NewHeldKeys(),
		gate:       NewGate(deps.Windows, deps.Logger),
		hotkeys:    contracts.DefaultHotkeys(),
		lastHotkey: make(map[string]time.Time),
	}
	cfg := contracts.DefaultConfig()
	e.cfg.Store(&cfg)
	km := keymap.Default()
	e.keyMap.Store(&km)

	e.dispatcher = &Dispatcher{
		logger:    deps.Logger,
		injector:  deps.Injector,
		held:      e.held,
		clock:     deps.Clock,
		normFloat: deps.NormFloat64,
		listener:  deps.Listener,
		keyMap:    func() contracts.KeyMap { return *e.keyMap.Load() },
		config:    e.Config,
		transpose: e.Transposition,
		active:    e.sourceActive,
	}
	return e
}

// Config returns the current configuration snapshot.
func (e *Engine) Config() contracts.Config {
	return *e.cfg.Load()
}

// SetConfig replaces the configuration. Workers see it on their next event.
func (e *Engine) SetConfig(cfg contracts.Config) {
	e.cfg.Store(&cfg)
}

// UpdateConfig applies fn to a copy of the current configuration and publishes the result.
func (e *Engine) UpdateConfig(fn func(*contracts.Config)) contracts.Config {
	for {
		old := e.cfg.Load()
		next := *old
		fn(&next)
		if e.cfg.CompareAndSwap(old, &next) {
			return next
		}
	}
}

// KeyMap returns a copy of the active key map.
func (e *Engine) KeyMap() contracts.KeyMap {
	return e.keyMap.Load().Clone()
}

// SetKeyMap swaps in a new key map and releases everything held under the old one.
func (e *Engine) SetKeyMap(km contracts.KeyMap) error {
	c := km.Clone()
	e.keyMap.Store(&c)
	return e.ReleaseAll()
}

// Transposition returns the current semitone offset.
func (e *Engine) Transposition() int {
	return int(e.transpose.Load())
}

// Transpose shifts the offset by delta semitones and releases all held keys.
func (e *Engine) Transpose(delta int) int {
	n := int(e.transpose.Add(int32(delta)))
	e.afterTranspose(n)
	return n
}

// SetTranspose sets the offset and releases all held keys.
func (e *Engine) SetTranspose(n int) {
	e.transpose.Store(int32(n))
	e.afterTranspose(n)
}

func (e *Engine) afterTranspose(n int) {
	if err := e.ReleaseAll(); err != nil {
		e.logger.Warn("Release after transpose failed", e.logger.Field().Error("error", err))
	}
	e.logger.Info("Transpose changed", e.logger.Field().Int("semitones", n))
	e.listener.OnStatus(contracts.Status{State: e.state(), Detail: transposeDetail(n)})
}

// ReleaseAll releases every held key exactly once. Key-up failures are combined.
func (e *Engine) ReleaseAll() error {
	keys := e.held.ReleaseAll()
	if len(keys) == 0 {
		return nil
	}
	var err error
	for _, k := range keys {
		err = multierr.Append(err, e.injector.KeyUp(k))
	}
	e.logger.Debug("Released held keys", e.logger.Field().Strings("keys", keys))
	e.listener.OnNote("", false)
	return err
}

// Snapshot is a point-in-time view of the session.
type Snapshot struct {
	State       contracts.SessionState
	LiveRunning bool
	FilePlaying bool
	FilePaused  bool
	File        string
	Transpose   int
	Held        []string
}

// Snapshot returns the current session view.
func (e *Engine) Snapshot() Snapshot {
	e.mu.Lock()
	file := e.filePath
	e.mu.Unlock()
	return Snapshot{
		State:       e.state(),
		LiveRunning: e.liveRunning.Load(),
		FilePlaying: e.filePlaying.Load(),
		FilePaused:  e.filePaused.Load(),
		File:        file,
		Transpose:   e.Transposition(),
		Held:        e.held.Held(),
	}
}

func (e *Engine) state() contracts.SessionState {
	switch {
	case e.filePaused.Load():
		return contracts.StatePaused
	case e.filePlaying.Load():
		return contracts.StatePlaying
	case e.liveRunning.Load():
		return contracts.StateLive
	default:
		return contracts.StateReady
	}
}

func (e *Engine) notify(detail string) {
	e.listener.OnStatus(contracts.Status{State: e.state(), Detail: detail})
}

// sourceActive is evaluated under the held-key lock.
func (e *Engine) sourceActive(src Source) bool {
	if src == SourceFile {
		return e.filePlaying.Load() && !e.filePaused.Load()
	}
	return e.liveRunning.Load()
}

// Close stops both workers, waits for them to exit and releases all keys.
func (e *Engine) Close(ctx context.Context) error {
	e.StopLive()
	e.StopFile()

	e.mu.Lock()
	live, file := e.lastLive, e.lastFile
	e.mu.Unlock()

	var err error
	for _, done := range []<-chan struct{}{live.doneChan(), file.doneChan()} {
		select {
		case <-done:
		case <-ctx.Done():
			err = multierr.Append(err, ctx.Err())
		}
	}
	return multierr.Append(err, e.ReleaseAll())
}

func transposeDetail(n int) string {
	if n == 0 {
		return "Transpose: 0"
	}
	return fmt.Sprintf("Transpose: %+d", n)
}
