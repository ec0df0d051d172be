package engine

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/leandrodaf/midikeys/sdk/contracts"
)

func TestLivePumpDispatchesAndStops(t *testing.T) {
	e := newTestEngine(t, SystemClock{}, nil)
	dev := newFakeMIDI()
	dev.stream.Push(contracts.NewNoteOn(0, 60, 100))
	dev.stream.Push(contracts.NewNoteOn(0, 62, 100))
	dev.stream.Push(contracts.NewNoteOff(0, 62))

	if err := e.StartLive(dev, "Test Keyboard"); err != nil {
		t.Fatalf("StartLive: %v", err)
	}
	if err := e.StartLive(dev, "Test Keyboard"); !errors.Is(err, ErrAlreadyRunning) {
		t.Errorf("second StartLive = %v, want ErrAlreadyRunning", err)
	}
	waitFor(t, "three key events", func() bool { return len(e.injector.Events()) == 3 })

	e.StopLive()
	e.WaitLive()

	want := []string{"down:a", "down:b", "up:b", "up:a"}
	if got := e.injector.Events(); !reflect.DeepEqual(got, want) {
		t.Errorf("injected %v, want %v", got, want)
	}
	if e.Snapshot().LiveRunning {
		t.Error("live still running after StopLive")
	}
	if _, err := dev.stream.Pending(); !errors.Is(err, contracts.ErrStreamClosed) {
		t.Errorf("stream not closed: %v", err)
	}
}

func TestLivePumpDeviceFailure(t *testing.T) {
	e := newTestEngine(t, SystemClock{}, nil)
	dev := newFakeMIDI()
	dev.stream.Push(contracts.NewNoteOn(0, 60, 100))

	if err := e.StartLive(dev, "Test Keyboard"); err != nil {
		t.Fatalf("StartLive: %v", err)
	}
	waitFor(t, "key down", func() bool { return len(e.injector.Events()) == 1 })

	dev.stream.Fail(errors.New("device unplugged"))
	waitFor(t, "stop transition", func() bool {
		return strings.HasPrefix(e.listener.Last().Detail, "Input error")
	})

	if got, want := e.injector.Events(), []string{"down:a", "up:a"}; !reflect.DeepEqual(got, want) {
		t.Errorf("injected %v, want %v", got, want)
	}
	if e.Snapshot().LiveRunning {
		t.Error("live still running after device failure")
	}
	if err := e.StartLive(dev, "Test Keyboard"); err != nil {
		t.Errorf("restart after failure: %v", err)
	}
	e.StopLive()
}

func TestLivePumpOpenFailure(t *testing.T) {
	e := newTestEngine(t, SystemClock{}, nil)
	dev := newFakeMIDI()
	dev.openErr = errors.New("no such device")

	if err := e.StartLive(dev, "Ghost"); err != nil {
		t.Fatalf("StartLive: %v", err)
	}
	waitFor(t, "stop transition", func() bool {
		return e.listener.Last().Detail == "Input error: no such device"
	})
	if e.Snapshot().State != contracts.StateReady {
		t.Errorf("state = %v, want ready", e.Snapshot().State)
	}
}

func TestStartLiveWithoutClient(t *testing.T) {
	e := newTestEngine(t, SystemClock{}, nil)
	if err := e.StartLive(nil, "x"); !errors.Is(err, ErrNoMIDIClient) {
		t.Errorf("StartLive(nil) = %v", err)
	}
}
