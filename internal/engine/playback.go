package engine

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"
)

const filePollInterval = 10 * time.Millisecond

type fileSession struct {
	path   string
	stop   chan struct{}
	done   chan struct{}
	finish sync.Once
}

func newFileSession(path string) *fileSession {
	return &fileSession{path: path, stop: make(chan struct{}), done: make(chan struct{})}
}

func (s *fileSession) stopped() bool {
	select {
	case <-s.stop:
		return true
	default:
		return false
	}
}

func (s *fileSession) doneChan() <-chan struct{} {
	if s == nil {
		return closedChan
	}
	return s.done
}

// SelectFile sets the file the next Play starts.
func (e *Engine) SelectFile(path string) {
	e.mu.Lock()
	e.filePath = path
	e.mu.Unlock()
	e.logger.Info("MIDI file selected", e.logger.Field().String("path", path))
	e.notify("File: " + filepath.Base(path))
}

// PlayFile selects path and starts playing it.
func (e *Engine) PlayFile(path string) error {
	e.SelectFile(path)
	return e.Play()
}

// Play starts the selected file, or resumes it when paused. Playing an
// already running file is a no-op.
func (e *Engine) Play() error {
	e.mu.Lock()
	path := e.filePath
	if path == "" {
		e.mu.Unlock()
		return ErrNoFile
	}
	if e.file != nil {
		e.mu.Unlock()
		if !e.filePaused.Load() {
			return nil
		}
		e.focusTarget()
		e.Resume()
		return nil
	}
	s := newFileSession(path)
	e.file, e.lastFile = s, s
	e.filePaused.Store(false)
	e.filePlaying.Store(true)
	e.mu.Unlock()

	e.focusTarget()
	e.notify("Playing: " + filepath.Base(path))
	go e.fileLoop(s)
	return nil
}

// Pause suspends file playback and releases held keys. It reports whether
// the state changed.
func (e *Engine) Pause() bool {
	if !e.filePlaying.Load() || !e.filePaused.CompareAndSwap(false, true) {
		return false
	}
	if err := e.ReleaseAll(); err != nil {
		e.logger.Warn("Release on pause failed", e.logger.Field().Error("error", err))
	}
	e.logger.Info("Playback paused")
	e.notify("Paused")
	return true
}

// Resume continues a paused file. It reports whether the state changed.
func (e *Engine) Resume() bool {
	if !e.filePlaying.Load() || !e.filePaused.CompareAndSwap(true, false) {
		return false
	}
	e.logger.Info("Playback resumed")
	e.notify("Resumed")
	return true
}

// TogglePause pauses a playing file or resumes a paused one.
func (e *Engine) TogglePause() {
	if e.filePaused.Load() {
		e.Resume()
		return
	}
	e.Pause()
}

// StopFile ends file playback. It is a no-op when nothing plays.
func (e *Engine) StopFile() {
	e.mu.Lock()
	s := e.file
	e.mu.Unlock()
	if s != nil {
		e.finishFile(s, "Playback stopped")
	}
}

// WaitFile blocks until the most recent playback worker exits or ctx is done.
func (e *Engine) WaitFile(ctx context.Context) error {
	e.mu.Lock()
	s := e.lastFile
	e.mu.Unlock()
	select {
	case <-s.doneChan():
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// finishFile is the stop transition. It runs once per session whether
// triggered by the user, completion, or a worker failure.
func (e *Engine) finishFile(s *fileSession, detail string) {
	s.finish.Do(func() {
		e.mu.Lock()
		if e.file == s {
			e.file = nil
			e.filePlaying.Store(false)
			e.filePaused.Store(false)
		}
		e.mu.Unlock()
		close(s.stop)

		if err := e.ReleaseAll(); err != nil {
			e.logger.Warn("Release on playback stop failed", e.logger.Field().Error("error", err))
		}
		e.logger.Info(detail, e.logger.Field().String("path", s.path))
		e.notify(detail)
	})
}

func (e *Engine) playing(s *fileSession) bool {
	return e.filePlaying.Load() && !s.stopped()
}

func (e *Engine) fileLoop(s *fileSession) {
	defer close(s.done)

	detail := "Playback finished"
	defer func() {
		if r := recover(); r != nil {
			e.logger.Error("Playback worker panicked", e.logger.Field().String("panic", fmt.Sprint(r)))
			detail = "Playback failed"
		}
		e.finishFile(s, detail)
	}()

	events, err := e.loadFile(s.path)
	if err != nil {
		e.logger.Error("Loading MIDI file failed", e.logger.Field().String("path", s.path), e.logger.Field().Error("error", err))
		detail = "Playback failed"
		return
	}
	e.logger.Debug("Playback started", e.logger.Field().String("path", s.path), e.logger.Field().Int("events", len(events)))

	for _, ev := range events {
		if !e.waitEvent(s, ev.Delay) {
			return
		}
		if !e.gate.CanEmit(e.Config()) {
			continue
		}
		e.dispatcher.Dispatch(ev.Msg, SourceFile)
	}
}

// waitEvent sleeps for delay scaled by the playback speed, in steps of at
// most filePollInterval. A pause freezes the remaining wait until resume.
// It reports false if playback stopped meanwhile.
func (e *Engine) waitEvent(s *fileSession, delay time.Duration) bool {
	if !e.waitWhilePaused(s) {
		return false
	}
	if delay <= 0 {
		return true
	}

	wait := time.Duration(float64(delay) / e.Config().SafeSpeed())
	start := e.clock.Now()
	for {
		if !e.playing(s) {
			return false
		}
		remaining := wait - e.clock.Now().Sub(start)
		if e.filePaused.Load() {
			if !e.waitWhilePaused(s) {
				return false
			}
			wait, start = remaining, e.clock.Now()
			continue
		}
		if remaining <= 0 {
			return true
		}
		e.clock.Sleep(min(remaining, filePollInterval))
	}
}

func (e *Engine) waitWhilePaused(s *fileSession) bool {
	for e.filePaused.Load() {
		if !e.playing(s) {
			return false
		}
		e.clock.Sleep(filePollInterval)
	}
	return e.playing(s)
}

// focusTarget brings the gate's target window forward before playback.
func (e *Engine) focusTarget() {
	cfg := e.Config()
	if !cfg.GateActive() || e.windows == nil {
		return
	}
	if err := e.windows.FocusWindow(cfg.TargetTitle); err != nil {
		e.logger.Warn("Focusing target window failed", e.logger.Field().String("target", cfg.TargetTitle), e.logger.Field().Error("error", err))
	}
}
