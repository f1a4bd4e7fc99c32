package web

import (
	"context"
	"encoding/json"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/tomz197/planewar/internal/game"
	"github.com/tomz197/planewar/internal/input"
	"github.com/tomz197/planewar/internal/loop"
	"github.com/tomz197/planewar/internal/loop/config"
	"github.com/tomz197/planewar/internal/loop/server"
)

const (
	writeWait    = 10 * time.Second // Time allowed to write a message
	pongWait     = 60 * time.Second // Time allowed to read the next pong
	pingPeriod   = 54 * time.Second // Must be less than pongWait
	maxInputSize = 512              // Bytes per browser message
)

// Client is one browser connection with its own game session.
type Client struct {
	conn    *websocket.Conn
	handle  *server.ClientHandle
	session *game.Session
	surface *Recorder
	display *remoteDisplay
	send    chan []byte   // Encoded outgoing messages; closed when the session ends
	inputs  chan InputMsg // Decoded browser input, drained once per frame
	done    chan struct{} // Closed when the session loop ends
	logger  *log.Logger
	drawn   bool // First frame sent
}

func newClient(conn *websocket.Conn, handle *server.ClientHandle, seed int64, logger *log.Logger) *Client {
	display := newRemoteDisplay()
	return &Client{
		conn:   conn,
		handle: handle,
		session: game.NewSession(game.Options{
			Seed:    seed,
			Display: display,
		}),
		surface: &Recorder{},
		display: display,
		send:    make(chan []byte, 256),
		inputs:  make(chan InputMsg, 64),
		done:    make(chan struct{}),
		logger:  logger,
	}
}

// readPump reads browser messages until the connection fails.
func (c *Client) readPump() {
	defer func() {
		close(c.inputs)
		c.conn.Close()
	}()

	// Set read deadline and pong handler for keepalive
	c.conn.SetReadLimit(maxInputSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.logger.Warn("websocket read failed", "err", err)
			}
			return
		}

		var msg InputMsg
		if err := json.Unmarshal(data, &msg); err != nil {
			c.logger.Debug("dropping malformed input", "err", err)
			continue
		}

		if !c.queueInput(msg) {
			c.logger.Debug("input dropped", "type", msg.Type)
		}
	}
}

// queueInput hands msg to the session goroutine. When the queue is full,
// key-downs and clicks are dropped but a key-up waits for room, so a
// released key is never left held. Returns false if msg was dropped.
func (c *Client) queueInput(msg InputMsg) bool {
	select {
	case c.inputs <- msg:
		return true
	default:
	}
	if msg.Type != MsgTypeKeyUp {
		return false
	}
	select {
	case c.inputs <- msg:
		return true
	case <-c.done:
		return false
	}
}

// writePump sends queued messages and keepalive pings.
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
				return
			}
			if err := c.conn.WriteMessage(websocket.BinaryMessage, message); err != nil {
				c.logger.Debug("websocket write failed", "err", err)
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// run drives the session until the browser leaves, the server shuts down
// or ctx is cancelled. It is the only goroutine touching the session.
func (c *Client) run(ctx context.Context) error {
	defer close(c.send)
	defer close(c.done)
	return loop.Run(ctx, config.TargetFrameTime, c.frame)
}

func (c *Client) frame(time.Time) error {
	if !c.collectInputs() {
		return loop.ErrStop
	}
	if c.shutdownRequested() {
		c.enqueue(ShutdownMsg{Type: MsgTypeShutdown, Score: c.session.Stats().Score})
		return loop.ErrStop
	}

	drew := c.session.Phase() == game.PhaseRunning
	c.session.Frame(c.surface)
	if !drew && !c.drawn {
		c.session.Render(c.surface)
	}
	// A frame the send queue refused stays recorded and is retried, so a
	// pause or game over never leaves the page on an older picture.
	if c.surface.Pending() && c.enqueue(c.surface.Frame()) {
		c.surface.Sent()
		c.drawn = true
	}

	if c.display.dirty && c.enqueue(c.display.ui) {
		c.display.dirty = false
	}
	return nil
}

// collectInputs applies all browser input queued since the last frame.
// Returns false once the browser is gone.
func (c *Client) collectInputs() bool {
	for {
		select {
		case msg, ok := <-c.inputs:
			if !ok {
				return false
			}
			c.apply(msg)
		default:
			return true
		}
	}
}

func (c *Client) apply(msg InputMsg) {
	switch msg.Type {
	case MsgTypeKeyDown, MsgTypeKeyUp:
		key, ok := input.KeyFromName(msg.Key)
		if !ok {
			return
		}
		if msg.Type == MsgTypeKeyDown {
			c.session.KeyDown(key)
		} else {
			c.session.KeyUp(key)
		}
	case MsgTypeClick:
		b, ok := game.ButtonFromID(msg.ID)
		if !ok {
			c.logger.Debug("click on unknown element", "id", msg.ID)
			return
		}
		if err := c.session.Press(b); err != nil {
			c.logger.Debug("button rejected", "button", b, "err", err)
		}
	default:
		c.logger.Debug("unknown message type", "type", msg.Type)
	}
}

func (c *Client) shutdownRequested() bool {
	if c.handle == nil {
		return false
	}
	select {
	case ev := <-c.handle.EventsCh:
		return ev.Type == server.EventServerShutdown
	default:
		return false
	}
}

// enqueue encodes v and queues it without blocking the session. Returns
// false when the message was dropped.
func (c *Client) enqueue(v any) bool {
	data, err := msgpack.Marshal(v)
	if err != nil {
		c.logger.Error("encoding message", "err", err)
		return false
	}
	select {
	case c.send <- data:
		return true
	default:
		return false
	}
}
