//go:build darwin
// +build darwin

package mididarwin

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/leandrodaf/midikeys/internal/midi/inputbuf"
	"github.com/leandrodaf/midikeys/sdk/contracts"
	"github.com/youpy/go-coremidi"
	"go.uber.org/multierr"
)

// Error definitions for MIDI connection and handling issues.
var (
	ErrNoMIDIDevices        = errors.New("no MIDI devices found")
	ErrDeviceNotFound       = errors.New("MIDI device not found")
	ErrMIDIConnectionError  = errors.New("error connecting to MIDI device")
	ErrCreateInputPort      = errors.New("error creating input port")
	ErrIncompleteMIDIPacket = errors.New("incomplete MIDI packet")
)

// internalPortConnection is an interface for handling disconnection from a MIDI port.
type internalPortConnection interface {
	Disconnect()
}

// ClientMid manages MIDI operations on Darwin (macOS) systems.
// Each Open creates a CoreMIDI input port feeding its own buffered stream.
type ClientMid struct {
	logger     contracts.Logger
	client     coremidi.Client            // CoreMIDI client instance for MIDI operations.
	filter     *contracts.MIDIEventFilter // Filter for specific MIDI events.
	bufferSize int                        // Capacity of each stream buffer.

	mu      sync.Mutex                // Guards streams.
	streams map[*inputbuf.Stream]bool // Streams opened and not yet closed.
	wg      sync.WaitGroup            // In-flight packet callbacks.
}

// NewMIDIClient initializes a new ClientMid for handling MIDI events on macOS.
// Applies logging and configurations based on the provided options.
func NewMIDIClient(options *contracts.ClientOptions) (contracts.ClientMIDI, error) {
	client, err := coremidi.NewClient(options.CoreMIDIConfig.ClientName)
	if err != nil {
		return nil, err
	}
	options.Logger.Info("MIDI client successfully created")

	return &ClientMid{
		logger:     options.Logger,
		client:     client,
		filter:     options.MIDIEventFilter,
		bufferSize: options.BufferSize,
		streams:    make(map[*inputbuf.Stream]bool),
	}, nil
}

// ListDevices retrieves and returns available MIDI devices.
// If no devices are found, an error is logged and returned.
func (m *ClientMid) ListDevices() ([]contracts.DeviceInfo, error) {
	sources, err := coremidi.AllSources()
	if err != nil {
		return nil, fmt.Errorf("error listing MIDI sources: %w", err)
	}
	if len(sources) == 0 {
		m.logger.Warn(ErrNoMIDIDevices.Error())
		return nil, ErrNoMIDIDevices
	}

	devices := make([]contracts.DeviceInfo, len(sources))
	for i, source := range sources {
		sourceEntity := source.Entity()
		devices[i] = contracts.DeviceInfo{
			Name:         source.Name(),
			EntityName:   sourceEntity.Name(),
			Manufacturer: sourceEntity.Manufacturer(),
		}
	}
	return devices, nil
}

// Open connects to the source with the given name.
func (m *ClientMid) Open(name string) (contracts.InputStream, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	sources, err := coremidi.AllSources()
	if err != nil {
		return nil, fmt.Errorf("error retrieving MIDI sources: %w", err)
	}
	var source *coremidi.Source
	for i := range sources {
		if sources[i].Name() == name {
			source = &sources[i]
			break
		}
	}
	if source == nil {
		m.logger.Error(ErrDeviceNotFound.Error(), m.logger.Field().String("deviceName", name))
		return nil, fmt.Errorf("%w: %s", ErrDeviceNotFound, name)
	}

	var conn internalPortConnection
	var stream *inputbuf.Stream
	stream = inputbuf.New(name, m.bufferSize, m.logger, m.filter, func() error {
		m.mu.Lock()
		delete(m.streams, stream)
		m.mu.Unlock()
		if conn != nil {
			conn.Disconnect()
		}
		m.wg.Wait()
		return nil
	})

	inputPort, err := coremidi.NewInputPort(m.client, "Input Port "+name, func(_ coremidi.Source, packet coremidi.Packet) {
		m.handleMIDIMessage(stream, packet)
	})
	if err != nil {
		m.logger.Error(ErrCreateInputPort.Error())
		return nil, fmt.Errorf("%w: %v", ErrCreateInputPort, err)
	}

	conn, err = inputPort.Connect(*source)
	if err != nil {
		m.logger.Error(ErrMIDIConnectionError.Error())
		return nil, fmt.Errorf("%w: %v", ErrMIDIConnectionError, err)
	}

	m.streams[stream] = true
	m.logger.Info("MIDI device successfully connected", m.logger.Field().String("deviceName", name))
	return stream, nil
}

// handleMIDIMessage splits a CoreMIDI packet into channel messages and queues them.
func (m *ClientMid) handleMIDIMessage(stream *inputbuf.Stream, packet coremidi.Packet) {
	m.wg.Add(1)
	defer m.wg.Done()

	events, skipped := inputbuf.SplitPacket(packet.Data, uint64(time.Now().UTC().UnixNano()))
	if skipped > 0 {
		m.logger.Warn(ErrIncompleteMIDIPacket.Error(), m.logger.Field().Int("skippedBytes", skipped))
	}
	for _, ev := range events {
		stream.Push(ev)
	}
}

// Stop disconnects every open stream.
func (m *ClientMid) Stop() error {
	m.mu.Lock()
	streams := make([]*inputbuf.Stream, 0, len(m.streams))
	for s := range m.streams {
		streams = append(streams, s)
	}
	m.mu.Unlock()

	var err error
	for _, s := range streams {
		err = multierr.Append(err, s.Close())
	}
	m.logger.Info("MIDI capture stopped")
	return err
}
