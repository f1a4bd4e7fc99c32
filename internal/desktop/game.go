// Package desktop runs a session in a native window with ebiten.
package desktop

import (
	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/tomz197/planewar/internal/game"
	"github.com/tomz197/planewar/internal/game/config"
	"github.com/tomz197/planewar/internal/input"
)

// keyBinding maps a physical key to a game key.
type keyBinding struct {
	key  ebiten.Key
	game input.Key
}

var keyBindings = []keyBinding{
	{ebiten.KeyA, input.KeyLeft},
	{ebiten.KeyArrowLeft, input.KeyLeft},
	{ebiten.KeyD, input.KeyRight},
	{ebiten.KeyArrowRight, input.KeyRight},
	{ebiten.KeyW, input.KeyUp},
	{ebiten.KeyArrowUp, input.KeyUp},
	{ebiten.KeyS, input.KeyDown},
	{ebiten.KeyArrowDown, input.KeyDown},
	{ebiten.KeySpace, input.KeyFire},
	{ebiten.KeyP, input.KeyPause},
	{ebiten.KeyEnter, input.KeyStart},
	{ebiten.KeyR, input.KeyRestart},
	{ebiten.KeyQ, input.KeyQuit},
	{ebiten.KeyEscape, input.KeyQuit},
}

// Options configures a Game.
type Options struct {
	Seed     int64
	Listener game.Listener // Optional, e.g. sound effects
	Logger   *log.Logger   // Optional
}

// Game adapts a session to ebiten.Game.
type Game struct {
	session *game.Session
	panel   *Panel
	canvas  *ebiten.Image
	surface *Surface
	logger  *log.Logger
	drawn   bool // Canvas holds at least one frame
	focused bool
}

var _ ebiten.Game = (*Game)(nil)

func NewGame(opts Options) *Game {
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	panel := &Panel{}
	canvas := ebiten.NewImage(config.CanvasWidth, config.CanvasHeight)
	return &Game{
		session: game.NewSession(game.Options{
			Seed:     opts.Seed,
			Display:  panel,
			Listener: opts.Listener,
		}),
		panel:   panel,
		canvas:  canvas,
		surface: NewSurface(canvas),
		logger:  logger,
		focused: true,
	}
}

// WindowSize is the logical window size.
func WindowSize() (w, h int) {
	return windowWidth, windowHeight
}

// Update runs once per tick (60 TPS).
func (g *Game) Update() error {
	if quit := g.processInput(); quit {
		return ebiten.Termination
	}

	// Only running frames render; every other phase is entered from a
	// rendered frame, except the start screen.
	g.session.Frame(g.surface)
	if !g.drawn {
		g.session.Render(g.surface)
		g.drawn = true
	}
	return nil
}

func (g *Game) processInput() (quit bool) {
	focused := ebiten.IsFocused()
	if g.focused && !focused {
		g.session.ReleaseKeys()
	}
	g.focused = focused

	for _, kb := range keyBindings {
		if inpututil.IsKeyJustPressed(kb.key) {
			if kb.game == input.KeyQuit {
				return true
			}
			g.session.KeyDown(kb.game)
		}
		if inpututil.IsKeyJustReleased(kb.key) {
			g.session.KeyUp(kb.game)
		}
	}

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		x, y := ebiten.CursorPosition()
		g.click(float64(x), float64(y))
	}
	return false
}

func (g *Game) click(x, y float64) {
	b, ok := g.panel.ButtonAt(x, y)
	if !ok {
		return
	}
	if err := g.session.Press(b); err != nil {
		g.logger.Debug("button rejected", "button", b, "err", err)
	}
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(background)
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(0, hudHeight)
	screen.DrawImage(g.canvas, op)
	g.panel.Draw(screen)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return windowWidth, windowHeight
}
