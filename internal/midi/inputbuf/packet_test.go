package inputbuf

import (
	"reflect"
	"testing"

	"github.com/leandrodaf/midikeys/sdk/contracts"
)

func TestSplitPacket(t *testing.T) {
	noteOn := func(ch, note, vel byte) contracts.MIDI {
		return contracts.MIDI{Timestamp: 7, Command: 0x90, Channel: ch, Note: note, Velocity: vel}
	}

	tests := []struct {
		name        string
		data        []byte
		want        []contracts.MIDI
		wantSkipped int
	}{
		{
			name: "single note on",
			data: []byte{0x90, 0x3C, 0x40},
			want: []contracts.MIDI{noteOn(0, 0x3C, 0x40)},
		},
		{
			name: "program change before note",
			data: []byte{0xC0, 0x05, 0x90, 0x3C, 0x40},
			want: []contracts.MIDI{
				{Timestamp: 7, Command: 0xC0, Note: 0x05},
				noteOn(0, 0x3C, 0x40),
			},
		},
		{
			name: "realtime bytes between notes",
			data: []byte{0xF8, 0x91, 0x3C, 0x40, 0xFE, 0x81, 0x3C, 0x00},
			want: []contracts.MIDI{
				noteOn(1, 0x3C, 0x40),
				{Timestamp: 7, Command: 0x80, Channel: 1, Note: 0x3C},
			},
		},
		{
			name: "running status",
			data: []byte{0x90, 0x3C, 0x40, 0x3E, 0x40, 0x3C, 0x00},
			want: []contracts.MIDI{noteOn(0, 0x3C, 0x40), noteOn(0, 0x3E, 0x40), noteOn(0, 0x3C, 0x00)},
		},
		{
			name: "channel pressure then sysex then note",
			data: []byte{0xD2, 0x30, 0xF0, 0x7E, 0x01, 0xF7, 0x92, 0x40, 0x10},
			want: []contracts.MIDI{
				{Timestamp: 7, Command: 0xD0, Channel: 2, Note: 0x30},
				noteOn(2, 0x40, 0x10),
			},
		},
		{
			name:        "truncated tail",
			data:        []byte{0x90, 0x3C, 0x40, 0x90, 0x3E},
			want:        []contracts.MIDI{noteOn(0, 0x3C, 0x40)},
			wantSkipped: 2,
		},
		{
			name:        "stray data bytes",
			data:        []byte{0x3C, 0x40, 0x90, 0x3C, 0x40},
			want:        []contracts.MIDI{noteOn(0, 0x3C, 0x40)},
			wantSkipped: 2,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, skipped := SplitPacket(tt.data, 7)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("events = %+v, want %+v", got, tt.want)
			}
			if skipped != tt.wantSkipped {
				t.Errorf("skipped = %d, want %d", skipped, tt.wantSkipped)
			}
		})
	}
}
