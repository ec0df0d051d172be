package midi

import (
	"fmt"

	"github.com/leandrodaf/midikeys/sdk/contracts"
)

// NewMIDIClient creates the live MIDI input client for the current OS.
// Streams it opens buffer up to BufferSize events between Pending calls and
// only carry the commands allowed by the event filter (note on/off by default).
//
// Returns:
//   - contracts.ClientMIDI: the OS client; Open a device by the name ListDevices reports.
//   - error: ErrUnsupportedOS, or the OS client's initialization error.
func NewMIDIClient(opts ...contracts.Option) (contracts.ClientMIDI, error) {
	options, err := applyDefaultOptions(opts...)
	if err != nil {
		return nil, err
	}

	client, err := NewClient(&options)
	if err != nil {
		return nil, fmt.Errorf("creating MIDI client: %w", err)
	}
	options.Logger.Debug("MIDI client ready",
		options.Logger.Field().Int("buffer_size", options.BufferSize),
		options.Logger.Field().String("client_name", options.CoreMIDIConfig.ClientName))
	return client, nil
}
