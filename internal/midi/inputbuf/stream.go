// Package inputbuf holds the buffered stream shared by the OS MIDI clients:
// driver callbacks push events, the live pump drains them without blocking.
package inputbuf

import (
	"sync"
	"sync/atomic"

	"github.com/leandrodaf/midikeys/sdk/contracts"
)

// DefaultSize is the buffer capacity used when none is configured.
const DefaultSize = 256

// Stream implements contracts.InputStream over a buffered channel.
type Stream struct {
	name    string
	logger  contracts.Logger
	filter  *contracts.MIDIEventFilter
	events  chan contracts.MIDI
	mu      sync.Mutex
	err     error // first driver error; ends the stream
	closed  atomic.Bool
	dropped atomic.Uint64
	closeFn func() error
	once    sync.Once
}

// New creates a stream. closeFn disconnects the driver side and is called once.
func New(name string, size int, logger contracts.Logger, filter *contracts.MIDIEventFilter, closeFn func() error) *Stream {
	if size <= 0 {
		size = DefaultSize
	}
	return &Stream{
		name:    name,
		logger:  logger,
		filter:  filter,
		events:  make(chan contracts.MIDI, size),
		closeFn: closeFn,
	}
}

// Name returns the device name the stream was opened from.
func (s *Stream) Name() string { return s.name }

// Push queues an event from a driver callback. It never blocks: when the buffer
// is full the event is discarded and counted.
func (s *Stream) Push(event contracts.MIDI) {
	if s.closed.Load() {
		return
	}
	if !s.filter.Allows(event.Command) {
		s.logger.Debug("MIDI command filtered out", s.logger.Field().Uint8("command", event.Command))
		return
	}
	select {
	case s.events <- event:
	default:
		s.dropped.Add(1)
		s.logger.Warn("MIDI event buffer full; event discarded", s.logger.Field().String("device", s.name))
	}
}

// Fail records a driver error; the next Pending call returns it.
func (s *Stream) Fail(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err == nil {
		s.err = err
	}
}

// Dropped returns how many events were discarded because the buffer was full.
func (s *Stream) Dropped() uint64 { return s.dropped.Load() }

// Pending drains every queued event without blocking.
func (s *Stream) Pending() ([]contracts.MIDI, error) {
	s.mu.Lock()
	err := s.err
	s.mu.Unlock()
	if err != nil {
		return nil, err
	}
	if s.closed.Load() {
		return nil, contracts.ErrStreamClosed
	}
	var out []contracts.MIDI
	for {
		select {
		case ev := <-s.events:
			out = append(out, ev)
		default:
			return out, nil
		}
	}
}

// Close disconnects the device. Safe to call more than once.
func (s *Stream) Close() error {
	var err error
	s.once.Do(func() {
		s.closed.Store(true)
		if s.closeFn != nil {
			err = s.closeFn()
		}
		s.logger.Info("MIDI input stream closed", s.logger.Field().String("device", s.name))
	})
	return err
}
