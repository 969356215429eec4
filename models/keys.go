package models

import "strings"

// Key is a control the player can press.
type Key int

const (
	KeyThrottle Key = iota
	KeyBrake
	KeySignalLeft
	KeySignalRight
	KeyLaneLeft
	KeyLaneRight
	KeyRestart
)

var keyNames = map[string]Key{
	"w": KeyThrottle,
	"s": KeyBrake,
	"q": KeySignalLeft,
	"e": KeySignalRight,
	"a": KeyLaneLeft,
	"d": KeyLaneRight,
	"r": KeyRestart,
}

// ParseKey maps a raw key name to a control. Matching is case-insensitive;
// unrecognised names report false.
func ParseKey(name string) (Key, bool) {
	k, ok := keyNames[strings.ToLower(name)]
	return k, ok
}

func (k Key) String() string {
	for name, key := range keyNames {
		if key == k {
			return name
		}
	}
	return "?"
}

// KeyState tracks which controls are currently held down.
type KeyState struct {
	held map[Key]bool
}

// Press marks k as held. It reports whether k was up before, so callers can
// fire edge actions once per press.
func (ks *KeyState) Press(k Key) bool {
	if ks.held == nil {
		ks.held = make(map[Key]bool)
	}
	wasUp := !ks.held[k]
	ks.held[k] = true
	return wasUp
}

// Release marks k as up.
func (ks *KeyState) Release(k Key) {
	delete(ks.held, k)
}

// Held reports whether k is down.
func (ks *KeyState) Held(k Key) bool {
	return ks.held[k]
}

// Clear releases every key.
func (ks *KeyState) Clear() {
	ks.held = nil
}
