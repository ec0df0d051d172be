package engine

import (
	"sync"
	"testing"
	"time"

	"github.com/leandrodaf/midikeys/internal/logger"
	"github.com/leandrodaf/midikeys/internal/midi/inputbuf"
	"github.com/leandrodaf/midikeys/internal/midifile"
	"github.com/leandrodaf/midikeys/sdk/contracts"
)

type recordingInjector struct {
	mu     sync.Mutex
	events []string
	upErr  error
	onDown func(key string)
}

func (r *recordingInjector) KeyDown(key string) error {
	r.mu.Lock()
	r.events = append(r.events, "down:"+key)
	hook := r.onDown
	r.mu.Unlock()
	if hook != nil {
		hook(key)
	}
	return nil
}

func (r *recordingInjector) KeyUp(key string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, "up:"+key)
	return r.upErr
}

func (r *recordingInjector) Events() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.events...)
}

type fakeWindows struct {
	mu      sync.Mutex
	active  string
	err     error
	focused []string
}

func (f *fakeWindows) ListWindows() ([]string, error) { return []string{f.active}, nil }

func (f *fakeWindows) ActiveWindowTitle() (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.active, f.err
}

func (f *fakeWindows) FocusWindow(title string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.focused = append(f.focused, title)
	return nil
}

type clockHook struct {
	at    time.Duration
	fn    func()
	fired bool
}

// fakeClock advances only when slept on. Hooks run on the sleeping goroutine
// once the elapsed time reaches their offset.
type fakeClock struct {
	mu    sync.Mutex
	start time.Time
	now   time.Time
	hooks []*clockHook
	slept []time.Duration
}

func newFakeClock() *fakeClock {
	t0 := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	return &fakeClock{start: t0, now: t0}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Sleep(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.slept = append(c.slept, d)
	elapsed := c.now.Sub(c.start)
	var due []func()
	for _, h := range c.hooks {
		if !h.fired && elapsed >= h.at {
			h.fired = true
			due = append(due, h.fn)
		}
	}
	c.mu.Unlock()

	for _, fn := range due {
		fn()
	}
}

func (c *fakeClock) At(at time.Duration, fn func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.hooks = append(c.hooks, &clockHook{at: at, fn: fn})
}

// Advance moves time forward without running hooks.
func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func (c *fakeClock) Elapsed() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now.Sub(c.start)
}

func (c *fakeClock) Slept() []time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]time.Duration(nil), c.slept...)
}

type recordingListener struct {
	mu       sync.Mutex
	statuses []contracts.Status
	notes    []string
}

func (l *recordingListener) OnStatus(s contracts.Status) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.statuses = append(l.statuses, s)
}

func (l *recordingListener) OnNote(name string, active bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if active {
		l.notes = append(l.notes, name)
	}
}

func (l *recordingListener) Count(detail string) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	n := 0
	for _, s := range l.statuses {
		if s.Detail == detail {
			n++
		}
	}
	return n
}

func (l *recordingListener) Last() contracts.Status {
	l.mu.Lock()
	defer l.mu.Unlock()
	if len(l.statuses) == 0 {
		return contracts.Status{}
	}
	return l.statuses[len(l.statuses)-1]
}

func (l *recordingListener) Notes() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string(nil), l.notes...)
}

// fakeMIDI hands out a single inputbuf stream.
type fakeMIDI struct {
	stream  *inputbuf.Stream
	openErr error
}

func newFakeMIDI() *fakeMIDI {
	return &fakeMIDI{stream: inputbuf.New("Test Keyboard", 16, logger.NewNopLogger(), nil, nil)}
}

func (f *fakeMIDI) ListDevices() ([]contracts.DeviceInfo, error) { return nil, nil }

func (f *fakeMIDI) Open(string) (contracts.InputStream, error) {
	if f.openErr != nil {
		return nil, f.openErr
	}
	return f.stream, nil
}

func (f *fakeMIDI) Stop() error { return nil }

type testEngine struct {
	*Engine
	injector *recordingInjector
	listener *recordingListener
	windows  *fakeWindows
	clock    contracts.Clock
}

func newTestEngine(t *testing.T, clock contracts.Clock, events []midifile.Event) *testEngine {
	t.Helper()
	inj := &recordingInjector{}
	lst := &recordingListener{}
	win := &fakeWindows{}
	e := New(Deps{
		Logger:      logger.NewNopLogger(),
		Injector:    inj,
		Windows:     win,
		Listener:    lst,
		Clock:       clock,
		NormFloat64: func() float64 { return 0 },
		LoadFile: func(string) ([]midifile.Event, error) {
			return events, nil
		},
	})
	if err := e.SetKeyMap(contracts.KeyMap{
		60: contracts.SingleKey("a"),
		62: contracts.SingleKey("b"),
		64: contracts.ChordKeys("shift", "c"),
	}); err != nil {
		t.Fatalf("SetKeyMap: %v", err)
	}
	e.SetConfig(contracts.Config{Speed: 1, Fallback: true})
	return &testEngine{Engine: e, injector: inj, listener: lst, windows: win, clock: clock}
}

func waitFor(t *testing.T, what string, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatalf("timed out waiting for %s", what)
		}
		time.Sleep(time.Millisecond)
	}
}
