package engine

import (
	"sync"
	"time"

	"github.com/leandrodaf/midikeys/sdk/contracts"
)

const livePollInterval = time.Millisecond

type liveSession struct {
	device string
	stop   chan struct{}
	done   chan struct{}
	once   sync.Once
}

func newLiveSession(device string) *liveSession {
	return &liveSession{device: device, stop: make(chan struct{}), done: make(chan struct{})}
}

func (s *liveSession) cancel() { s.once.Do(func() { close(s.stop) }) }

func (s *liveSession) stopped() bool {
	select {
	case <-s.stop:
		return true
	default:
		return false
	}
}

func (s *liveSession) doneChan() <-chan struct{} {
	if s == nil {
		return closedChan
	}
	return s.done
}

var closedChan = func() chan struct{} {
	c := make(chan struct{})
	close(c)
	return c
}()

// StartLive starts the live input pump on device. The stream is opened by
// the worker; an open failure stops the session asynchronously.
func (e *Engine) StartLive(client contracts.ClientMIDI, device string) error {
	if client == nil {
		return ErrNoMIDIClient
	}

	e.mu.Lock()
	if e.live != nil {
		e.mu.Unlock()
		return ErrAlreadyRunning
	}
	s := newLiveSession(device)
	e.live, e.lastLive = s, s
	e.liveRunning.Store(true)
	e.mu.Unlock()

	e.logger.Info("Live input started", e.logger.Field().String("device", device))
	e.notify("Input: " + device)
	go e.liveLoop(client, s)
	return nil
}

// StopLive stops the live pump and releases all held keys. It is a no-op when idle.
func (e *Engine) StopLive() {
	e.mu.Lock()
	s := e.live
	e.mu.Unlock()
	if s != nil {
		e.stopLive(s, "Live input stopped")
	}
}

// WaitLive blocks until the most recent live worker has exited.
func (e *Engine) WaitLive() {
	e.mu.Lock()
	s := e.lastLive
	e.mu.Unlock()
	<-s.doneChan()
}

func (e *Engine) stopLive(s *liveSession, detail string) {
	e.mu.Lock()
	current := e.live == s
	if current {
		e.live = nil
		e.liveRunning.Store(false)
	}
	e.mu.Unlock()

	s.cancel()
	if !current {
		return
	}
	if err := e.ReleaseAll(); err != nil {
		e.logger.Warn("Release on live stop failed", e.logger.Field().Error("error", err))
	}
	e.logger.Info(detail, e.logger.Field().String("device", s.device))
	e.notify(detail)
}

func (e *Engine) liveLoop(client contracts.ClientMIDI, s *liveSession) {
	defer close(s.done)

	stream, err := client.Open(s.device)
	if err != nil {
		e.liveFailed(s, err)
		return
	}
	defer func() {
		if err := stream.Close(); err != nil {
			e.logger.Warn("Closing MIDI input failed", e.logger.Field().Error("error", err))
		}
	}()

	for !s.stopped() && e.liveRunning.Load() {
		events, err := stream.Pending()
		if err != nil {
			e.liveFailed(s, err)
			return
		}
		for _, ev := range events {
			if !e.gate.CanEmit(e.Config()) {
				continue
			}
			e.dispatcher.Dispatch(ev, SourceLive)
		}
		e.clock.Sleep(livePollInterval)
	}
}

// liveFailed clears the running flag right away so no further key-down is
// recorded, then runs the stop transition off the worker goroutine.
func (e *Engine) liveFailed(s *liveSession, err error) {
	e.logger.Error("Live input failed", e.logger.Field().String("device", s.device), e.logger.Field().Error("error", err))
	e.mu.Lock()
	if e.live == s {
		e.liveRunning.Store(false)
	}
	e.mu.Unlock()
	go e.stopLive(s, "Input error: "+err.Error())
}
