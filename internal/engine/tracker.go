package engine

import (
	"sort"
	"sync"
)

// HeldKeys is the set of logical keys this process currently holds down.
// Every mutation takes the same lock. Key-downs are injected while holding it,
// so a concurrent ReleaseAll always observes a pressed key and lifts it.
type HeldKeys struct {
	mu   sync.Mutex
	keys map[string]struct{}
}

// NewHeldKeys returns an empty set.
func NewHeldKeys() *HeldKeys {
	return &HeldKeys{keys: make(map[string]struct{})}
}

// Track adds (down) or removes (up) each individual key. Removing a key that
// is not held is a no-op.
func (h *HeldKeys) Track(keys []string, down bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.track(keys, down)
}

// PressIf evaluates cond under the lock and, when it holds, adds keys and
// calls press before unlocking. It reports whether the keys were pressed.
// press must not call back into h.
func (h *HeldKeys) PressIf(keys []string, cond func() bool, press func([]string)) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if !cond() {
		return false
	}
	h.track(keys, true)
	if press != nil {
		press(keys)
	}
	return true
}

func (h *HeldKeys) track(keys []string, down bool) {
	for _, k := range keys {
		if down {
			h.keys[k] = struct{}{}
		} else {
			delete(h.keys, k)
		}
	}
}

// ReleaseAll atomically empties the set and returns what was held, sorted.
func (h *HeldKeys) ReleaseAll() []string {
	h.mu.Lock()
	if len(h.keys) == 0 {
		h.mu.Unlock()
		return nil
	}
	out := make([]string, 0, len(h.keys))
	for k := range h.keys {
		out = append(out, k)
	}
	h.keys = make(map[string]struct{})
	h.mu.Unlock()

	sort.Strings(out)
	return out
}

// Held returns a sorted snapshot of the set.
func (h *HeldKeys) Held() []string {
	h.mu.Lock()
	out := make([]string, 0, len(h.keys))
	for k := range h.keys {
		out = append(out, k)
	}
	h.mu.Unlock()

	sort.Strings(out)
	return out
}

// Len returns the number of held keys.
func (h *HeldKeys) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.keys)
}
