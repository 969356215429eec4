package main

import (
	"sort"
	"time"
)

// Terminals report key presses and auto-repeats but never releases.
// holdTracker treats a key as held while repeats keep arriving and released
// once none has been seen for the timeout.
type holdTracker struct {
	timeout time.Duration
	seen    map[string]time.Time
}

func newHoldTracker(timeout time.Duration) *holdTracker {
	return &holdTracker{timeout: timeout, seen: make(map[string]time.Time)}
}

// touch records a press or repeat of name at now. It returns true when the
// key was not already held.
func (h *holdTracker) touch(name string, now time.Time) bool {
	_, held := h.seen[name]
	h.seen[name] = now
	return !held
}

// expire forgets and returns the keys that have gone quiet, in name order.
func (h *holdTracker) expire(now time.Time) []string {
	var released []string
	for name, last := range h.seen {
		if now.Sub(last) >= h.timeout {
			released = append(released, name)
		}
	}
	for _, name := range released {
		delete(h.seen, name)
	}
	sort.Strings(released)
	return released
}

// releaseAll forgets every held key and returns them in name order.
func (h *holdTracker) releaseAll() []string {
	released := make([]string, 0, len(h.seen))
	for name := range h.seen {
		released = append(released, name)
	}
	clear(h.seen)
	sort.Strings(released)
	return released
}

// holdable reports whether a key acts for as long as it is held. Every other
// control fires once per press.
func holdable(name string) bool {
	return name == "w" || name == "s"
}

// runeNames maps terminal runes to simulation controls.
var runeNames = map[rune]string{
	'w': "w", 'W': "w",
	's': "s", 'S': "s",
	'a': "a", 'A': "a",
	'd': "d", 'D': "d",
	'q': "q", 'Q': "q",
	'e': "e", 'E': "e",
	'r': "r", 'R': "r",
}
