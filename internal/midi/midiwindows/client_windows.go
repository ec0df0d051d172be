//go:build windows
// +build windows

package midiwindows

import (
	"errors"
	"fmt"
	"sync"
	"time"
	"unsafe"

	"github.com/leandrodaf/midikeys/internal/midi/inputbuf"
	"github.com/leandrodaf/midikeys/sdk/contracts"
	"go.uber.org/multierr"
	"golang.org/x/sys/windows"
)

// Error definitions for MIDI connection and handling issues.
var (
	ErrNoMIDIDevices  = errors.New("no MIDI devices found")
	ErrDeviceNotFound = errors.New("MIDI device not found")
)

// Type definitions for MIDI handles
type HMIDIIN windows.Handle

// Constants for callback flags
const (
	CALLBACK_FUNCTION = 0x00030000 // Indicates that the callback is a function
	MIDI_IO_STATUS    = 0x00000020 // MIDI input/output status
)

// Constants for MIDI message types
const (
	MIM_OPEN      = 0x3C1 // MIDI device opened
	MIM_CLOSE     = 0x3C2 // MIDI device closed
	MIM_DATA      = 0x3C3 // MIDI data received
	MIM_ERROR     = 0x3C5 // MIDI error
	MIM_LONGERROR = 0x3C6 // Long MIDI error
	MIM_MOREDATA  = 0x3CC // More MIDI data available
)

// Struct representing MIDI device capabilities
type midiInCaps struct {
	wMid           uint16
	wPid           uint16
	vDriverVersion uint32
	szPname        [32]uint16
	dwSupport      uint32
}

// ClientMid manages MIDI input on Windows through winmm.
type ClientMid struct {
	logger     contracts.Logger
	filter     *contracts.MIDIEventFilter
	bufferSize int

	mu      sync.Mutex
	streams map[HMIDIIN]*port
}

// port is one opened winmm input device.
type port struct {
	handle HMIDIIN
	stream *inputbuf.Stream
	logger contracts.Logger
}

// Load the winmm.dll library and required functions
var (
	winmm                = windows.NewLazySystemDLL("winmm.dll")
	procMidiInGetNumDevs = winmm.NewProc("midiInGetNumDevs")
	procMidiInGetDevCaps = winmm.NewProc("midiInGetDevCapsW")
	procMidiInOpen       = winmm.NewProc("midiInOpen")
	procMidiInStart      = winmm.NewProc("midiInStart")
	procMidiInStop       = winmm.NewProc("midiInStop")
	procMidiInClose      = winmm.NewProc("midiInClose")
)

// winmm accepts a single callback address for every device.
var (
	callbackOnce sync.Once
	callbackPtr  uintptr
)

// NewMIDIClient creates a MIDI client for Windows
func NewMIDIClient(options *contracts.ClientOptions) (contracts.ClientMIDI, error) {
	options.Logger.Info("MIDI client created for Windows")

	return &ClientMid{
		logger:     options.Logger,
		filter:     options.MIDIEventFilter,
		bufferSize: options.BufferSize,
		streams:    make(map[HMIDIIN]*port),
	}, nil
}

// ListDevices lists the available MIDI input devices
func (m *ClientMid) ListDevices() ([]contracts.DeviceInfo, error) {
	r0, _, _ := procMidiInGetNumDevs.Call()
	numDevices := uint32(r0)
	if numDevices == 0 {
		m.logger.Warn("No MIDI devices found")
		return nil, ErrNoMIDIDevices
	}

	devices := make([]contracts.DeviceInfo, 0, numDevices)
	for i := uint32(0); i < numDevices; i++ {
		var caps midiInCaps
		r1, _, _ := procMidiInGetDevCaps.Call(
			uintptr(i),
			uintptr(unsafe.Pointer(&caps)),
			unsafe.Sizeof(caps),
		)
		if r1 != 0 {
			m.logger.Warn("Failed to get information for MIDI device", m.logger.Field().Int("deviceID", int(i)))
			continue
		}
		deviceName := windows.UTF16ToString(caps.szPname[:])
		devices = append(devices, contracts.DeviceInfo{
			Name:         deviceName,
			EntityName:   deviceName,
			Manufacturer: fmt.Sprintf("MID: %d PID: %d", caps.wMid, caps.wPid),
		})
	}
	return devices, nil
}

// deviceIndex resolves a device name to its winmm index.
func (m *ClientMid) deviceIndex(name string) (int, error) {
	r0, _, _ := procMidiInGetNumDevs.Call()
	for i := uint32(0); i < uint32(r0); i++ {
		var caps midiInCaps
		r1, _, _ := procMidiInGetDevCaps.Call(uintptr(i), uintptr(unsafe.Pointer(&caps)), unsafe.Sizeof(caps))
		if r1 == 0 && windows.UTF16ToString(caps.szPname[:]) == name {
			return int(i), nil
		}
	}
	return -1, fmt.Errorf("%w: %s", ErrDeviceNotFound, name)
}

// Open connects to the named device and starts capture into a buffered stream.
func (m *ClientMid) Open(name string) (contracts.InputStream, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	deviceID, err := m.deviceIndex(name)
	if err != nil {
		m.logger.Error("MIDI device lookup failed", m.logger.Field().String("device", name))
		return nil, err
	}

	callbackOnce.Do(func() { callbackPtr = windows.NewCallback(midiInCallback) })

	p := &port{logger: m.logger}
	p.stream = inputbuf.New(name, m.bufferSize, m.logger, m.filter, func() error {
		return m.closePort(p)
	})

	fdwOpen := CALLBACK_FUNCTION | MIDI_IO_STATUS
	r1, _, callErr := procMidiInOpen.Call(
		uintptr(unsafe.Pointer(&p.handle)),
		uintptr(deviceID),
		callbackPtr,
		uintptr(unsafe.Pointer(p)),
		uintptr(fdwOpen),
	)
	if r1 != 0 {
		m.logger.Error("Failed to open MIDI device", m.logger.Field().Int("deviceID", deviceID), m.logger.Field().Error("error", callErr))
		return nil, fmt.Errorf("failed to open MIDI device %d: %v", deviceID, callErr)
	}

	r1, _, callErr = procMidiInStart.Call(uintptr(p.handle))
	if r1 != 0 {
		procMidiInClose.Call(uintptr(p.handle))
		m.logger.Error("Failed to start MIDI capture", m.logger.Field().Error("error", callErr))
		return nil, fmt.Errorf("failed to start MIDI capture: %v", callErr)
	}

	m.streams[p.handle] = p
	m.logger.Info("MIDI capture started", m.logger.Field().String("device", name), m.logger.Field().Int("deviceID", deviceID))
	return p.stream, nil
}

// midiInCallback processes incoming MIDI messages
func midiInCallback(hMidiIn uintptr, wMsg uint32, dwInstance uintptr, dwParam1 uintptr, dwParam2 uintptr) uintptr {
	p := (*port)(unsafe.Pointer(dwInstance))

	switch wMsg {
	case MIM_OPEN:
		p.logger.Info("MIDI device opened")
	case MIM_CLOSE:
		p.logger.Info("MIDI device closed")
		p.stream.Fail(contracts.ErrStreamClosed)
	case MIM_DATA:
		status := byte(dwParam1 & 0xFF)
		data1 := byte((dwParam1 >> 8) & 0xFF)
		data2 := byte((dwParam1 >> 16) & 0xFF)

		p.stream.Push(contracts.MIDI{
			Timestamp: uint64(time.Now().UTC().UnixNano()),
			Command:   status & 0xF0,
			Channel:   status & 0x0F,
			Note:      data1,
			Velocity:  data2,
		})
	case MIM_ERROR, MIM_LONGERROR:
		p.logger.Error("MIDI error", p.logger.Field().Int("msg", int(wMsg)))
	case MIM_MOREDATA:
		p.logger.Debug("Received MIM_MOREDATA message; ignored")
	default:
		p.logger.Warn("Unknown MIDI message", p.logger.Field().Int("msg", int(wMsg)))
	}

	return 0
}

// closePort stops capture and releases one device handle.
func (m *ClientMid) closePort(p *port) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.streams, p.handle)
	return stopCapture(p.handle)
}

// Stop closes every open stream
func (m *ClientMid) Stop() error {
	m.mu.Lock()
	ports := make([]*port, 0, len(m.streams))
	for _, p := range m.streams {
		ports = append(ports, p)
	}
	m.mu.Unlock()

	var err error
	for _, p := range ports {
		err = multierr.Append(err, p.stream.Close())
	}
	m.logger.Info("MIDI capture stopped and devices closed")
	return err
}

// stopCapture stops the capture and releases resources
func stopCapture(handle HMIDIIN) error {
	if handle == 0 {
		return fmt.Errorf("invalid MIDI device handle")
	}

	r1, _, err := procMidiInStop.Call(uintptr(handle))
	if r1 != 0 {
		return fmt.Errorf("failed to stop MIDI capture: %w", err)
	}

	r1, _, err = procMidiInClose.Call(uintptr(handle))
	if r1 != 0 {
		return fmt.Errorf("failed to close MIDI device: %w", err)
	}
	return nil
}
