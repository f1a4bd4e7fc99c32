// Package input tracks keyboard state for the game.
package input

import "strings"

// Key is a logical game key. Several physical keys may map to one Key.
type Key int

const (
	KeyNone Key = iota
	KeyLeft
	KeyRight
	KeyUp
	KeyDown
	KeyFire
	KeyPause
	KeyStart
	KeyRestart
	KeyQuit
	keyCount
)

var keyNames = [keyCount]string{
	KeyNone:    "none",
	KeyLeft:    "left",
	KeyRight:   "right",
	KeyUp:      "up",
	KeyDown:    "down",
	KeyFire:    "fire",
	KeyPause:   "pause",
	KeyStart:   "start",
	KeyRestart: "restart",
	KeyQuit:    "quit",
}

func (k Key) String() string {
	if k < 0 || k >= keyCount {
		return "unknown"
	}
	return keyNames[k]
}

// Tracker maps held keys to their pressed state.
// Movement reads Held every frame; Press reports the key-down edge so
// single-shot actions ignore hold-repeat.
type Tracker struct {
	held [keyCount]bool
}

// Press marks k as held. It returns true only on the transition from
// released to held.
func (t *Tracker) Press(k Key) bool {
	if k <= KeyNone || k >= keyCount {
		return false
	}
	if t.held[k] {
		return false
	}
	t.held[k] = true
	return true
}

// Release marks k as no longer held.
func (t *Tracker) Release(k Key) {
	if k <= KeyNone || k >= keyCount {
		return
	}
	t.held[k] = false
}

// Held reports whether k is currently pressed.
func (t *Tracker) Held(k Key) bool {
	if k <= KeyNone || k >= keyCount {
		return false
	}
	return t.held[k]
}

// Reset releases every key.
func (t *Tracker) Reset() {
	t.held = [keyCount]bool{}
}

// KeyFromName maps a browser KeyboardEvent key (or code) to a Key.
// Matching is case-insensitive.
func KeyFromName(name string) (Key, bool) {
	switch strings.ToLower(name) {
	case "a", "arrowleft":
		return KeyLeft, true
	case "d", "arrowright":
		return KeyRight, true
	case "w", "arrowup":
		return KeyUp, true
	case "s", "arrowdown":
		return KeyDown, true
	case " ", "space", "spacebar":
		return KeyFire, true
	case "p":
		return KeyPause, true
	case "enter":
		return KeyStart, true
	case "r":
		return KeyRestart, true
	case "q", "escape":
		return KeyQuit, true
	}
	return KeyNone, false
}
