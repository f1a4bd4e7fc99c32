package desktop

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/tomz197/planewar/internal/game"
	"github.com/tomz197/planewar/internal/game/config"
	"github.com/tomz197/planewar/internal/physics"
)

// HUD layout, in window units. The canvas sits below the HUD bar.
const (
	hudHeight     = 48
	buttonWidth   = 110
	buttonHeight  = 32
	buttonGap     = 10
	buttonTop     = (hudHeight - buttonHeight) / 2
	modalWidth    = 300
	modalHeight   = 180
	windowWidth   = config.CanvasWidth
	windowHeight  = config.CanvasHeight + hudHeight
	hudTextMargin = 12
)

var (
	colorHUD            = color.NRGBA{R: 0x22, G: 0x22, B: 0x33, A: 0xff}
	colorButton         = color.NRGBA{R: 0x4e, G: 0xcd, B: 0xc4, A: 0xff}
	colorButtonDisabled = color.NRGBA{R: 0x55, G: 0x55, B: 0x55, A: 0xff}
	colorModal          = color.NRGBA{R: 0x11, G: 0x11, B: 0x22, A: 0xee}
	colorModalBorder    = color.NRGBA{R: 0xff, G: 0x6b, B: 0x6b, A: 0xff}
)

// Panel is the window chrome around the canvas: scoreboard, buttons and
// the game-over modal.
type Panel struct {
	stats      game.Stats
	controls   game.Controls
	modal      bool
	finalScore int
}

var _ game.Display = (*Panel)(nil)

func (p *Panel) ShowStats(s game.Stats)      { p.stats = s }
func (p *Panel) SetControls(c game.Controls) { p.controls = c }
func (p *Panel) HideGameOver()               { p.modal = false }

func (p *Panel) ShowGameOver(finalScore int) {
	p.modal = true
	p.finalScore = finalScore
}

// buttonRect returns where b is drawn. The bar buttons are right-aligned
// in the HUD; Play Again sits inside the modal.
func buttonRect(b game.Button) physics.Rect {
	if b == game.ButtonPlayAgain {
		m := modalRect()
		return physics.Rect{
			X: m.X + (m.W-buttonWidth)/2,
			Y: m.Bottom() - buttonHeight - 20,
			W: buttonWidth,
			H: buttonHeight,
		}
	}
	// Start, Pause, Restart from left to right.
	fromRight := float64(game.ButtonRestart - b + 1)
	return physics.Rect{
		X: windowWidth - fromRight*(buttonWidth+buttonGap),
		Y: buttonTop,
		W: buttonWidth,
		H: buttonHeight,
	}
}

func modalRect() physics.Rect {
	return physics.Rect{
		X: (windowWidth - modalWidth) / 2,
		Y: hudHeight + (config.CanvasHeight-modalHeight)/2,
		W: modalWidth,
		H: modalHeight,
	}
}

func contains(r physics.Rect, x, y float64) bool {
	return x >= r.X && x < r.Right() && y >= r.Y && y < r.Bottom()
}

// ButtonAt returns the visible button under the window point (x, y).
// The modal captures every click while it is shown.
func (p *Panel) ButtonAt(x, y float64) (game.Button, bool) {
	if p.modal {
		if contains(buttonRect(game.ButtonPlayAgain), x, y) {
			return game.ButtonPlayAgain, true
		}
		return 0, false
	}
	for _, b := range []game.Button{game.ButtonStart, game.ButtonPause, game.ButtonRestart} {
		if contains(buttonRect(b), x, y) {
			return b, true
		}
	}
	return 0, false
}

func (p *Panel) enabled(b game.Button) bool {
	switch b {
	case game.ButtonStart:
		return p.controls.StartEnabled
	case game.ButtonPause:
		return p.controls.PauseEnabled
	case game.ButtonRestart:
		return p.controls.RestartEnabled
	case game.ButtonPlayAgain:
		return p.modal
	}
	return false
}

func (p *Panel) label(b game.Button) string {
	switch b {
	case game.ButtonStart:
		return "Start"
	case game.ButtonPause:
		return p.controls.PauseLabel
	case game.ButtonRestart:
		return "Restart"
	case game.ButtonPlayAgain:
		return "Play Again"
	}
	return ""
}

func (p *Panel) hudText() string {
	return fmt.Sprintf("Score: %d   Lives: %d   Level: %d", p.stats.Score, p.stats.Lives, p.stats.Level)
}

// Draw paints the HUD bar and, when shown, the modal over the canvas.
func (p *Panel) Draw(screen *ebiten.Image) {
	vector.DrawFilledRect(screen, 0, 0, windowWidth, hudHeight, colorHUD, false)
	ebitenutil.DebugPrintAt(screen, p.hudText(), hudTextMargin, (hudHeight-glyphHeight)/2)
	for _, b := range []game.Button{game.ButtonStart, game.ButtonPause, game.ButtonRestart} {
		p.drawButton(screen, b)
	}

	if !p.modal {
		return
	}
	m := modalRect()
	vector.DrawFilledRect(screen, float32(m.X), float32(m.Y), float32(m.W), float32(m.H), colorModal, false)
	vector.StrokeRect(screen, float32(m.X), float32(m.Y), float32(m.W), float32(m.H), 2, colorModalBorder, false)
	cx, _ := m.Center()
	printCentered(screen, "GAME OVER", cx, m.Y+40)
	printCentered(screen, fmt.Sprintf("Final score: %d", p.finalScore), cx, m.Y+75)
	p.drawButton(screen, game.ButtonPlayAgain)
}

func (p *Panel) drawButton(screen *ebiten.Image, b game.Button) {
	r := buttonRect(b)
	c := colorButton
	if !p.enabled(b) {
		c = colorButtonDisabled
	}
	vector.DrawFilledRect(screen, float32(r.X), float32(r.Y), float32(r.W), float32(r.H), c, false)
	cx, cy := r.Center()
	printCentered(screen, p.label(b), cx, cy)
}
