package inputbuf

import (
	"errors"
	"testing"

	"github.com/leandrodaf/midikeys/internal/logger"
	"github.com/leandrodaf/midikeys/sdk/contracts"
)

func TestStreamPendingDrainsInOrder(t *testing.T) {
	s := New("keys", 8, logger.NewNopLogger(), nil, nil)
	for n := byte(60); n < 63; n++ {
		s.Push(contracts.MIDI{Command: byte(contracts.NoteOn), Note: n, Velocity: 90})
	}

	got, err := s.Pending()
	if err != nil {
		t.Fatalf("Pending: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("got %d events, want 3", len(got))
	}
	for i, ev := range got {
		if ev.Note != byte(60+i) {
			t.Errorf("event %d note = %d, want %d", i, ev.Note, 60+i)
		}
	}

	got, err = s.Pending()
	if err != nil || len(got) != 0 {
		t.Fatalf("second Pending = %v, %v; want empty, nil", got, err)
	}
}

func TestStreamOverflowDrops(t *testing.T) {
	s := New("keys", 2, logger.NewNopLogger(), nil, nil)
	for i := 0; i < 5; i++ {
		s.Push(contracts.MIDI{Command: byte(contracts.NoteOn), Note: 60, Velocity: 1})
	}
	if s.Dropped() != 3 {
		t.Errorf("Dropped = %d, want 3", s.Dropped())
	}
	got, _ := s.Pending()
	if len(got) != 2 {
		t.Errorf("got %d events, want 2", len(got))
	}
}

func TestStreamFilter(t *testing.T) {
	filter := &contracts.MIDIEventFilter{Commands: []contracts.MIDICommand{contracts.NoteOn}}
	s := New("keys", 4, logger.NewNopLogger(), filter, nil)
	s.Push(contracts.MIDI{Command: 0xB0, Note: 1, Velocity: 1})
	s.Push(contracts.MIDI{Command: 0x93, Note: 60, Velocity: 1})

	got, _ := s.Pending()
	if len(got) != 1 || got[0].Note != 60 {
		t.Fatalf("got %+v, want only the note-on", got)
	}
}

func TestStreamFailAndClose(t *testing.T) {
	closes := 0
	s := New("keys", 4, logger.NewNopLogger(), nil, func() error {
		closes++
		return nil
	})

	boom := errors.New("device unplugged")
	s.Fail(boom)
	if _, err := s.Pending(); !errors.Is(err, boom) {
		t.Fatalf("Pending err = %v, want %v", err, boom)
	}

	s.Close()
	s.Close()
	if closes != 1 {
		t.Errorf("closeFn called %d times, want 1", closes)
	}

	fresh := New("other", 4, logger.NewNopLogger(), nil, nil)
	fresh.Close()
	if _, err := fresh.Pending(); !errors.Is(err, contracts.ErrStreamClosed) {
		t.Errorf("Pending after Close = %v, want ErrStreamClosed", err)
	}
}
