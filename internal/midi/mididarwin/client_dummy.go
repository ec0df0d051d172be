//go:build !darwin
// +build !darwin

package mididarwin

import (
	"github.com/leandrodaf/midikeys/sdk/contracts"
)

type DummyMIDIClient struct {
	logger contracts.Logger
}

func NewMIDIClient(options *contracts.ClientOptions) (contracts.ClientMIDI, error) {
	options.Logger.Info("Using dummy MIDI client for non-macOS system")
	return &DummyMIDIClient{
		logger: options.Logger,
	}, nil
}

func (m *DummyMIDIClient) ListDevices() ([]contracts.DeviceInfo, error) {
	m.logger.Warn("ListDevices called on dummy MIDI client")
	return nil, contracts.ErrUnsupportedPlatform
}

func (m *DummyMIDIClient) Open(name string) (contracts.InputStream, error) {
	m.logger.Warn("Open called on dummy MIDI client", m.logger.Field().String("device", name))
	return nil, contracts.ErrUnsupportedPlatform
}

func (m *DummyMIDIClient) Stop() error {
	m.logger.Warn("Stop called on dummy MIDI client")
	return nil
}
