// Package client runs one player's game in a terminal: it owns the
// session, turns key bytes into input and draws the canvas with its HUD.
package client

import (
	"bufio"
	"context"
	"errors"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/tomz197/planewar/internal/draw"
	"github.com/tomz197/planewar/internal/game"
	gameconfig "github.com/tomz197/planewar/internal/game/config"
	"github.com/tomz197/planewar/internal/input"
	"github.com/tomz197/planewar/internal/loop"
	"github.com/tomz197/planewar/internal/loop/config"
	"github.com/tomz197/planewar/internal/loop/server"
)

// Client handles rendering and input for a single connection.
type Client struct {
	session      *game.Session
	registry     server.Registry
	handle       *server.ClientHandle
	state        *ClientState
	canvas       *draw.Canvas
	chunkWriter  *draw.ChunkWriter // Accumulates UI text for chunked output
	writer       io.Writer
	inputStream  *input.Stream
	styles       styles
	logger       *log.Logger
	lastInput    time.Time
	lastFrame    time.Time
	idleTimeout  time.Duration
	username     string
	termSizeFunc draw.TermSizeFunc
	needsRender  bool // Canvas lost its contents and the session is not drawing
}

// ClientOptions configures the client.
type ClientOptions struct {
	TermSizeFunc draw.TermSizeFunc
	Username     string
	Seed         int64           // Session seed; 0 picks one
	Registry     server.Registry // Optional; delivers shutdown notices
	Logger       *log.Logger     // Optional; discards by default
	IdleTimeout  time.Duration   // Disconnect after this long without input; 0 disables
	Listener     game.Listener   // Optional gameplay event hook
}

// NewClient creates a client with a fresh session reading keys from r and
// drawing to w.
func NewClient(r *bufio.Reader, w io.Writer, opts ClientOptions) *Client {
	termSizeFunc := opts.TermSizeFunc
	if termSizeFunc == nil {
		termSizeFunc = draw.StdoutSize
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	state := NewClientState()
	session := game.NewSession(game.Options{
		Seed:     opts.Seed,
		Display:  state,
		Listener: opts.Listener,
	})

	// Create canvas with clamped dimensions for max render resolution
	termWidth, termHeight, _ := termSizeFunc()
	renderWidth, renderHeight, offsetCol, offsetRow := clampTermSize(termWidth, termHeight)
	canvas := draw.NewScaledCanvas(renderWidth, renderHeight, gameconfig.CanvasWidth, gameconfig.CanvasHeight)
	canvas.SetOffset(offsetCol, offsetRow)
	chunkWriter := draw.NewChunkWriter(w, offsetCol, offsetRow)

	c := &Client{
		session:      session,
		registry:     opts.Registry,
		state:        state,
		canvas:       canvas,
		chunkWriter:  chunkWriter,
		writer:       w,
		inputStream:  input.StartStream(r),
		styles:       newStyles(w),
		logger:       logger,
		lastInput:    time.Now(),
		lastFrame:    time.Now(),
		idleTimeout:  opts.IdleTimeout,
		username:     opts.Username,
		termSizeFunc: termSizeFunc,
		needsRender:  true,
	}
	if c.registry != nil {
		c.handle = c.registry.RegisterClient(opts.Username)
	}
	return c
}

// Run starts the client loop. Blocks until the player quits, the input
// ends, the server shuts down or ctx is cancelled.
func (c *Client) Run(ctx context.Context) error {
	draw.HideCursor(c.writer)
	defer draw.ShowCursor(c.writer)
	draw.ClearScreen(c.writer)

	err := loop.Run(ctx, config.TargetFrameTime, c.frame)
	c.inputStream.Close()

	if c.registry != nil {
		c.registry.UnregisterClient(c.handle.ID)
	}
	draw.ClearScreen(c.writer)

	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// frame runs one input, update, draw cycle.
func (c *Client) frame(now time.Time) error {
	delta := now.Sub(c.lastFrame)
	c.lastFrame = now

	if c.processInput(now) {
		return loop.ErrStop
	}
	if c.processServerEvents() {
		return loop.ErrStop
	}
	c.updateScreen()

	if c.state.shutdown {
		c.state.shutdownTimer -= delta.Seconds()
		if c.state.shutdownTimer <= 0 {
			return loop.ErrStop
		}
	} else {
		c.advance()
	}

	return c.drawFrame()
}

// processInput feeds key transitions to the session. Returns true when the
// client should disconnect.
func (c *Client) processInput(now time.Time) bool {
	events := c.inputStream.ReadEvents(now)
	if c.inputStream.Closed() {
		return true
	}

	for _, ev := range events {
		if !ev.Down {
			c.session.KeyUp(ev.Key)
			continue
		}
		c.lastInput = now
		c.state.isInactive = false
		if ev.Key == input.KeyQuit {
			return true
		}
		if c.state.shutdown {
			continue
		}
		c.session.KeyDown(ev.Key)
	}

	// A game in progress counts as activity.
	if c.session.Phase() == game.PhaseRunning {
		c.lastInput = now
	}
	if c.idleTimeout <= 0 {
		return false
	}
	idle := now.Sub(c.lastInput)
	if idle >= c.idleTimeout {
		c.logger.Info("disconnecting idle player", "user", c.username, "idle", idle.Round(time.Second))
		return true
	}
	c.state.isInactive = idle >= c.idleTimeout-config.InactivityWarnLead
	return false
}

// processServerEvents handles events from the server. Returns true when
// the server dropped the client.
func (c *Client) processServerEvents() bool {
	if c.handle == nil {
		return false
	}
	for {
		select {
		case event, ok := <-c.handle.EventsCh:
			if !ok {
				return true
			}
			switch event.Type {
			case server.EventServerShutdown:
				if !c.state.shutdown {
					c.state.shutdown = true
					c.state.shutdownTimer = config.ShutdownDisplaySeconds
					c.session.ReleaseKeys()
				}
			}
		default:
			return false
		}
	}
}

// updateScreen handles terminal resize, clamping to max render resolution.
// On actual size changes, clears the terminal to remove residual pixels
// outside the new canvas area (e.g. old borders or offset content).
func (c *Client) updateScreen() {
	termWidth, termHeight, err := c.termSizeFunc()
	if err != nil {
		return
	}
	renderWidth, renderHeight, offsetCol, offsetRow := clampTermSize(termWidth, termHeight)

	if renderWidth == c.canvas.TerminalWidth() && renderHeight == c.canvas.TerminalHeight() &&
		offsetCol == c.canvas.OffsetCol() && offsetRow == c.canvas.OffsetRow() {
		return
	}

	draw.ClearScreen(c.writer)
	c.canvas.Resize(renderWidth, renderHeight)
	c.canvas.SetOffset(offsetCol, offsetRow)
	c.chunkWriter.SetOffset(offsetCol, offsetRow)
	c.needsRender = true
}

// clampTermSize clamps terminal dimensions to the max render resolution and computes
// the centering offset for the render area.
func clampTermSize(termWidth, termHeight int) (renderWidth, renderHeight, offsetCol, offsetRow int) {
	renderWidth = min(termWidth, config.MaxTermWidth)
	renderHeight = min(termHeight, config.MaxTermHeight)
	offsetCol = (termWidth - renderWidth) / 2
	offsetRow = (termHeight - renderHeight) / 2
	return
}

// advance runs the session's frame callback. Paused and finished games keep
// their last frame on the canvas, so they are only redrawn after the
// canvas was reset.
func (c *Client) advance() {
	drew := c.session.Phase() == game.PhaseRunning
	c.session.Frame(c.canvas)
	if !drew && c.needsRender {
		c.session.Render(c.canvas)
	}
	c.needsRender = false
}
