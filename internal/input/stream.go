package input

import (
	"bufio"
	"sync"
	"time"
)

// Terminals send no key-up events, only the auto-repeat bytes of a held
// key. A key is released once its bytes stop arriving: keyRepeatDelay
// after the first byte (the wait before auto-repeat starts), then
// keyHoldDuration after each repeat.
const (
	keyRepeatDelay  = 700 * time.Millisecond
	keyHoldDuration = 120 * time.Millisecond
)

// Event is a key transition decoded from a terminal.
type Event struct {
	Key  Key
	Down bool
}

// Stream delivers input bytes via a channel and converts them into key
// down/up events.
type Stream struct {
	ch        chan byte
	done      chan struct{} // Closed by Close; stops the reader
	exited    chan struct{} // Closed when the reader goroutine returns
	closeOnce sync.Once

	pending   []byte // Unfinished escape sequence carried to the next read
	lastSeen  [keyCount]time.Time
	held      [keyCount]bool
	repeating [keyCount]bool
	closed    bool

	repeatDelay time.Duration
	hold        time.Duration
}

// StartStream spawns a goroutine that reads from r and sends bytes to the
// stream until r fails or Close is called.
func StartStream(r *bufio.Reader) *Stream {
	s := newStream(128)
	go func() {
		defer close(s.exited)
		for {
			b, err := r.ReadByte()
			if err != nil {
				close(s.ch)
				return
			}
			select {
			case s.ch <- b:
			case <-s.done:
				return
			}
		}
	}()
	return s
}

func newStream(buffer int) *Stream {
	return &Stream{
		ch:          make(chan byte, buffer),
		done:        make(chan struct{}),
		exited:      make(chan struct{}),
		repeatDelay: keyRepeatDelay,
		hold:        keyHoldDuration,
	}
}

// Close stops the reader goroutine once it next has a byte to deliver.
// A reader blocked in ReadByte exits when its source ends.
func (s *Stream) Close() {
	s.closeOnce.Do(func() { close(s.done) })
}

// Closed reports whether the underlying reader has ended.
func (s *Stream) Closed() bool {
	return s.closed
}

// ReadEvents drains all available bytes from the stream (non-blocking) and
// returns the resulting transitions. A key goes down on its first byte and
// up once its bytes stop arriving.
func (s *Stream) ReadEvents(now time.Time) []Event {
	buf := s.pending

drain:
	for {
		select {
		case b, ok := <-s.ch:
			if !ok {
				s.closed = true
				break drain
			}
			buf = append(buf, b)
		default:
			break drain
		}
	}

	keys, rest := decode(buf)
	s.pending = append(s.pending[:0:0], rest...)

	var events []Event
	for _, k := range keys {
		s.lastSeen[k] = now
		if s.held[k] {
			s.repeating[k] = true
			continue
		}
		s.held[k] = true
		s.repeating[k] = false
		events = append(events, Event{Key: k, Down: true})
	}

	for k := KeyNone + 1; k < keyCount; k++ {
		if !s.held[k] {
			continue
		}
		window := s.repeatDelay
		if s.repeating[k] {
			window = s.hold
		}
		if now.Sub(s.lastSeen[k]) >= window {
			s.held[k] = false
			s.repeating[k] = false
			events = append(events, Event{Key: k, Down: false})
		}
	}

	return events
}

// decode maps raw terminal bytes to keys. Arrow keys arrive as CSI
// (ESC [ A-D) or SS3 (ESC O A-D) sequences; other sequences are skipped
// whole so their bytes never read as letters. An escape sequence cut off
// at the end of buf is returned as rest. A lone ESC followed by a normal
// byte is dropped.
func decode(buf []byte) (keys []Key, rest []byte) {
	for i := 0; i < len(buf); i++ {
		b := buf[i]
		if b != '\x1b' {
			if k := keyForByte(b); k != KeyNone {
				keys = append(keys, k)
			}
			continue
		}

		if i+1 >= len(buf) {
			return keys, buf[i:]
		}
		switch buf[i+1] {
		case '[':
			// Parameter and intermediate bytes run until a final byte
			// in 0x40-0x7e.
			end := i + 2
			for end < len(buf) && (buf[end] < 0x40 || buf[end] > 0x7e) {
				end++
			}
			if end >= len(buf) {
				return keys, buf[i:]
			}
			if end == i+2 {
				if k := arrowKey(buf[end]); k != KeyNone {
					keys = append(keys, k)
				}
			}
			i = end
		case 'O':
			if i+2 >= len(buf) {
				return keys, buf[i:]
			}
			if k := arrowKey(buf[i+2]); k != KeyNone {
				keys = append(keys, k)
			}
			i += 2
		}
	}
	return keys, nil
}

func arrowKey(final byte) Key {
	switch final {
	case 'A':
		return KeyUp
	case 'B':
		return KeyDown
	case 'C':
		return KeyRight
	case 'D':
		return KeyLeft
	}
	return KeyNone
}

// keyForByte maps a single byte to a key.
func keyForByte(b byte) Key {
	switch b {
	case 'q', 'Q', '\x03': // Ctrl+C arrives as a byte in raw mode
		return KeyQuit
	case 'a', 'A':
		return KeyLeft
	case 'd', 'D':
		return KeyRight
	case 'w', 'W':
		return KeyUp
	case 's', 'S':
		return KeyDown
	case ' ':
		return KeyFire
	case 'p', 'P':
		return KeyPause
	case '\n', '\r':
		return KeyStart
	case 'r', 'R':
		return KeyRestart
	}
	return KeyNone
}
