package input

import (
	"bufio"
	"strings"
	"testing"
	"time"
)

func TestTrackerEdges(t *testing.T) {
	var tr Tracker

	if !tr.Press(KeyFire) {
		t.Fatal("first press should report an edge")
	}
	if tr.Press(KeyFire) {
		t.Error("repeat press while held should not report an edge")
	}
	if !tr.Held(KeyFire) {
		t.Error("fire should be held")
	}

	tr.Release(KeyFire)
	if tr.Held(KeyFire) {
		t.Error("fire should be released")
	}
	if !tr.Press(KeyFire) {
		t.Error("press after release should report an edge")
	}

	tr.Press(KeyLeft)
	tr.Reset()
	if tr.Held(KeyLeft) || tr.Held(KeyFire) {
		t.Error("Reset should release every key")
	}
}

func TestTrackerIgnoresInvalidKeys(t *testing.T) {
	var tr Tracker
	if tr.Press(KeyNone) || tr.Press(Key(99)) || tr.Press(Key(-1)) {
		t.Error("invalid keys should never report an edge")
	}
	if tr.Held(Key(99)) {
		t.Error("invalid key reported held")
	}
	tr.Release(Key(99))
}

func TestKeyFromName(t *testing.T) {
	tests := []struct {
		name string
		want Key
		ok   bool
	}{
		{"a", KeyLeft, true},
		{"ArrowLeft", KeyLeft, true},
		{"D", KeyRight, true},
		{"arrowright", KeyRight, true},
		{"w", KeyUp, true},
		{"ArrowDown", KeyDown, true},
		{" ", KeyFire, true},
		{"Space", KeyFire, true},
		{"p", KeyPause, true},
		{"Enter", KeyStart, true},
		{"r", KeyRestart, true},
		{"Escape", KeyQuit, true},
		{"x", KeyNone, false},
		{"", KeyNone, false},
	}
	for _, tt := range tests {
		got, ok := KeyFromName(tt.name)
		if got != tt.want || ok != tt.ok {
			t.Errorf("KeyFromName(%q) = %v, %v; want %v, %v", tt.name, got, ok, tt.want, tt.ok)
		}
	}
}

func TestKeyString(t *testing.T) {
	if KeyFire.String() != "fire" {
		t.Errorf("KeyFire.String() = %q", KeyFire.String())
	}
	if Key(42).String() != "unknown" {
		t.Errorf("Key(42).String() = %q", Key(42).String())
	}
}

func TestDecode(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []Key
		rest string
	}{
		{"wasd", "wasd", []Key{KeyUp, KeyLeft, KeyDown, KeyRight}, ""},
		{"arrows", "\x1b[A\x1b[B\x1b[C\x1b[D", []Key{KeyUp, KeyDown, KeyRight, KeyLeft}, ""},
		{"application arrows", "\x1bOD\x1bOA", []Key{KeyLeft, KeyUp}, ""},
		{"controls", " pr\rq", []Key{KeyFire, KeyPause, KeyRestart, KeyStart, KeyQuit}, ""},
		{"ctrl-c", "\x03", []Key{KeyQuit}, ""},
		{"alt-w drops the escape", "\x1bw", []Key{KeyUp}, ""},
		{"unmapped", "xyz", nil, ""},
		{"modified arrow is skipped whole", "\x1b[1;5Dw", []Key{KeyUp}, ""},
		{"trailing escape", "w\x1b", []Key{KeyUp}, "\x1b"},
		{"trailing csi", "\x1b[", nil, "\x1b["},
		{"trailing csi params", "\x1b[1;5", nil, "\x1b[1;5"},
		{"trailing ss3", "\x1bO", nil, "\x1bO"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, rest := decode([]byte(tt.in))
			if len(got) != len(tt.want) {
				t.Fatalf("decode(%q) = %v, want %v", tt.in, got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Fatalf("decode(%q) = %v, want %v", tt.in, got, tt.want)
				}
			}
			if string(rest) != tt.rest {
				t.Errorf("decode(%q) rest = %q, want %q", tt.in, rest, tt.rest)
			}
		})
	}
}

func TestStreamJoinsSplitArrow(t *testing.T) {
	tests := []struct {
		name  string
		parts []string
		want  Key
	}{
		{"esc | [D", []string{"\x1b", "[D"}, KeyLeft},
		{"esc[ | D", []string{"\x1b[", "D"}, KeyLeft},
		{"esc[ | A", []string{"\x1b[", "A"}, KeyUp},
		{"esc | [ | C", []string{"\x1b", "[", "C"}, KeyRight},
		{"escO | B", []string{"\x1bO", "B"}, KeyDown},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newStream(16)
			now := time.Now()
			var events []Event
			for i, part := range tt.parts {
				for _, b := range []byte(part) {
					s.ch <- b
				}
				events = append(events, s.ReadEvents(now.Add(time.Duration(i)*16*time.Millisecond))...)
			}
			if len(events) != 1 || events[0] != (Event{Key: tt.want, Down: true}) {
				t.Fatalf("events = %v, want only %v down", events, tt.want)
			}
		})
	}
}

func TestStreamSynthesizesKeyUp(t *testing.T) {
	s := newStream(16)
	start := time.Now()

	s.ch <- ' '
	events := s.ReadEvents(start)
	if len(events) != 1 || events[0] != (Event{Key: KeyFire, Down: true}) {
		t.Fatalf("first read = %v, want fire down", events)
	}

	// A single press stays down for the whole auto-repeat delay.
	if events = s.ReadEvents(start.Add(keyRepeatDelay - time.Millisecond)); len(events) != 0 {
		t.Fatalf("read before repeat delay = %v, want no events", events)
	}
	events = s.ReadEvents(start.Add(keyRepeatDelay))
	if len(events) != 1 || events[0] != (Event{Key: KeyFire, Down: false}) {
		t.Fatalf("expired read = %v, want fire up", events)
	}
}

// A held key sends one byte, waits for the terminal's repeat delay, then
// repeats quickly. It must stay down the whole time and produce exactly
// one down edge, then release shortly after the repeats stop.
func TestStreamHoldWithAutoRepeat(t *testing.T) {
	tests := []struct {
		name     string
		delay    time.Duration
		interval time.Duration
	}{
		{"macos-like", 500 * time.Millisecond, 32 * time.Millisecond},
		{"x11 default", 660 * time.Millisecond, 40 * time.Millisecond},
		{"fast", 250 * time.Millisecond, 30 * time.Millisecond},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newStream(16)
			start := time.Now()
			release := 1500 * time.Millisecond
			nextByte := time.Duration(0)
			var downs, ups int
			var upAt time.Duration

			for at := time.Duration(0); at <= 2500*time.Millisecond; at += 16 * time.Millisecond {
				for nextByte <= at && nextByte < release {
					s.ch <- ' '
					if nextByte == 0 {
						nextByte = tt.delay
					} else {
						nextByte += tt.interval
					}
				}
				for _, ev := range s.ReadEvents(start.Add(at)) {
					if ev.Key != KeyFire {
						t.Fatalf("unexpected key %v", ev.Key)
					}
					if ev.Down {
						downs++
					} else {
						ups++
						upAt = at
						if at < release {
							t.Fatalf("released at %v while still held", at)
						}
					}
				}
			}
			if downs != 1 || ups != 1 {
				t.Fatalf("downs = %d, ups = %d; want one of each", downs, ups)
			}
			if upAt > release+tt.interval+keyHoldDuration+16*time.Millisecond {
				t.Errorf("released at %v, too long after the last repeat", upAt)
			}
		})
	}
}

func TestStreamCloseStopsReader(t *testing.T) {
	// More bytes than the channel holds, and nobody draining.
	s := StartStream(bufio.NewReader(strings.NewReader(strings.Repeat("w", 1000))))
	s.Close()
	s.Close() // idempotent

	select {
	case <-s.exited:
	case <-time.After(time.Second):
		t.Fatal("reader goroutine still running after Close")
	}
}

func TestStreamClosed(t *testing.T) {
	s := newStream(4)
	s.ch <- 'w'
	close(s.ch)

	events := s.ReadEvents(time.Now())
	if len(events) != 1 || events[0].Key != KeyUp {
		t.Fatalf("events = %v, want up down", events)
	}
	if !s.Closed() {
		t.Error("stream should report closed")
	}
}
