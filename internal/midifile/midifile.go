// Package midifile turns a Standard MIDI File into the ordered note events
// the playback engine replays.
package midifile

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"time"

	"github.com/leandrodaf/midikeys/sdk/contracts"
	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"
)

// ErrInvalidFile wraps every parse failure.
var ErrInvalidFile = errors.New("invalid MIDI file")

// Event is a note event with the delay since the previous returned event.
// The last event may carry a zero Msg: it only holds the delay up to the end
// of the longest track, so playback lasts as long as the file.
type Event struct {
	Msg   contracts.MIDI
	Delay time.Duration
}

// Load reads and parses the file at path.
func Load(path string) ([]Event, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFile, err)
	}
	defer f.Close()
	return Parse(f)
}

type timed struct {
	micros int64
	track  int
	seq    int
	msg    contracts.MIDI
}

// Parse reads an SMF from r. Tracks are merged in time order (ties keep track
// order), tempo changes are honoured, and non-note messages are dropped with
// their delay carried over to the next note. Time after the last note is kept
// as a trailing event with a zero Msg.
func Parse(r io.Reader) ([]Event, error) {
	s, err := smf.ReadFrom(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFile, err)
	}

	var (
		all     []timed
		endTick int64
	)
	for ti, track := range s.Tracks {
		var absTicks int64
		for i, ev := range track {
			absTicks += int64(ev.Delta)
			endTick = max(endTick, absTicks)
			msg, ok := noteMessage(midi.Message(ev.Message))
			if !ok {
				continue
			}
			all = append(all, timed{micros: s.TimeAt(absTicks), track: ti, seq: i, msg: msg})
		}
	}

	sort.SliceStable(all, func(i, j int) bool {
		if all[i].micros != all[j].micros {
			return all[i].micros < all[j].micros
		}
		if all[i].track != all[j].track {
			return all[i].track < all[j].track
		}
		return all[i].seq < all[j].seq
	})

	events := make([]Event, len(all), len(all)+1)
	var prev int64
	for i, t := range all {
		events[i] = Event{Msg: t.msg, Delay: time.Duration(t.micros-prev) * time.Microsecond}
		prev = t.micros
	}
	if end := s.TimeAt(endTick); end > prev {
		events = append(events, Event{Delay: time.Duration(end-prev) * time.Microsecond})
	}
	return events, nil
}

func noteMessage(m midi.Message) (contracts.MIDI, bool) {
	var ch, key, vel uint8
	switch {
	case m.GetNoteOn(&ch, &key, &vel):
		return contracts.MIDI{Command: byte(contracts.NoteOn), Channel: ch, Note: key, Velocity: vel}, true
	case m.GetNoteOff(&ch, &key, &vel):
		return contracts.MIDI{Command: byte(contracts.NoteOff), Channel: ch, Note: key, Velocity: vel}, true
	default:
		return contracts.MIDI{}, false
	}
}

// Duration returns the total playing time of events at speed 1.
func Duration(events []Event) time.Duration {
	var d time.Duration
	for _, ev := range events {
		d += ev.Delay
	}
	return d
}
