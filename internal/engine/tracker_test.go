package engine

import (
	"reflect"
	"sync"
	"testing"
	"time"
)

func TestHeldKeysTrack(t *testing.T) {
	h := NewHeldKeys()
	h.Track([]string{"shift", "a"}, true)
	h.Track([]string{"b"}, true)
	h.Track([]string{"a"}, false)
	h.Track([]string{"zzz"}, false)

	if got, want := h.Held(), []string{"b", "shift"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Held() = %v, want %v", got, want)
	}
}

func TestHeldKeysPressIf(t *testing.T) {
	h := NewHeldKeys()
	var pressed []string
	press := func(keys []string) { pressed = append(pressed, keys...) }

	if h.PressIf([]string{"a"}, func() bool { return false }, press) {
		t.Error("PressIf returned true with a false condition")
	}
	if h.Len() != 0 || len(pressed) != 0 {
		t.Errorf("Len() = %d, pressed %v; want nothing", h.Len(), pressed)
	}
	if !h.PressIf([]string{"shift", "a"}, func() bool { return true }, press) {
		t.Error("PressIf returned false with a true condition")
	}
	if h.Len() != 2 {
		t.Errorf("Len() = %d, want 2", h.Len())
	}
	if want := []string{"shift", "a"}; !reflect.DeepEqual(pressed, want) {
		t.Errorf("pressed %v, want %v", pressed, want)
	}
}

func TestHeldKeysReleaseWaitsForPress(t *testing.T) {
	h := NewHeldKeys()
	released := make(chan []string)
	h.PressIf([]string{"a"}, func() bool { return true }, func([]string) {
		go func() { released <- h.ReleaseAll() }()
		time.Sleep(10 * time.Millisecond)
	})

	if got := <-released; !reflect.DeepEqual(got, []string{"a"}) {
		t.Errorf("ReleaseAll() = %v, want [a]", got)
	}
}

func TestHeldKeysReleaseAllOnce(t *testing.T) {
	h := NewHeldKeys()
	h.Track([]string{"c", "a", "b"}, true)

	var (
		wg  sync.WaitGroup
		mu  sync.Mutex
		got []string
	)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			keys := h.ReleaseAll()
			mu.Lock()
			got = append(got, keys...)
			mu.Unlock()
		}()
	}
	wg.Wait()

	if len(got) != 3 {
		t.Fatalf("released %v, want each key exactly once", got)
	}
	if h.Len() != 0 {
		t.Errorf("Len() after ReleaseAll = %d", h.Len())
	}
	if keys := h.ReleaseAll(); keys != nil {
		t.Errorf("second ReleaseAll = %v, want nil", keys)
	}
}
