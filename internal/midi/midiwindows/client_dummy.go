//go:build !windows
// +build !windows

package midiwindows

import (
	"github.com/leandrodaf/midikeys/sdk/contracts"
)

type dummyMIDIClient struct {
	logger contracts.Logger
}

// NewMIDIClient initializes a dummy MIDI client for non-Windows systems.
func NewMIDIClient(options *contracts.ClientOptions) (contracts.ClientMIDI, error) {
	options.Logger.Info("Using dummy MIDI client for non-Windows system")
	return &dummyMIDIClient{
		logger: options.Logger,
	}, nil
}

// ListDevices logs a warning and returns an error indicating that MIDI functionality is unavailable on this platform.
func (m *dummyMIDIClient) ListDevices() ([]contracts.DeviceInfo, error) {
	m.logger.Warn("ListDevices called on dummy MIDI client")
	return nil, contracts.ErrUnsupportedPlatform
}

// Open logs a warning and returns an error indicating that MIDI functionality is unavailable on this platform.
func (m *dummyMIDIClient) Open(name string) (contracts.InputStream, error) {
	m.logger.Warn("Open called on dummy MIDI client", m.logger.Field().String("device", name))
	return nil, contracts.ErrUnsupportedPlatform
}

// Stop logs a warning indicating that Stop was called on the dummy MIDI client.
func (m *dummyMIDIClient) Stop() error {
	m.logger.Warn("Stop called on dummy MIDI client")
	return nil
}
