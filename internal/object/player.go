package object

import (
	"github.com/tomz197/planewar/internal/draw"
	"github.com/tomz197/planewar/internal/game/config"
	"github.com/tomz197/planewar/internal/physics"
)

// Steer is the directional input applied to the player for one frame.
type Steer struct {
	Left, Right, Up, Down bool
}

// Player is the player-controlled ship.
type Player struct {
	physics.Rect
	Speed float64 // Units moved per frame in each held direction
}

// NewPlayer creates a ship at its spawn position on a canvas of the given size.
func NewPlayer(canvasW, canvasH float64) *Player {
	p := &Player{
		Rect:  physics.Rect{W: config.PlayerWidth, H: config.PlayerHeight},
		Speed: config.PlayerSpeed,
	}
	p.Reset(canvasW, canvasH)
	return p
}

// Reset moves the ship back to the bottom center of the canvas.
func (p *Player) Reset(canvasW, canvasH float64) {
	p.X = canvasW/2 - p.W/2
	p.Y = canvasH - p.H - config.PlayerBottomMargin
}

// Move applies one frame of directional input. Each axis step is clamped
// to the canvas on its own, so the ship can never leave the canvas.
func (p *Player) Move(in Steer, canvasW, canvasH float64) {
	if in.Left {
		p.X = physics.Clamp(p.X-p.Speed, 0, canvasW-p.W)
	}
	if in.Right {
		p.X = physics.Clamp(p.X+p.Speed, 0, canvasW-p.W)
	}
	if in.Up {
		p.Y = physics.Clamp(p.Y-p.Speed, 0, canvasH-p.H)
	}
	if in.Down {
		p.Y = physics.Clamp(p.Y+p.Speed, 0, canvasH-p.H)
	}
}

// Muzzle returns where a new bullet's top-left corner goes: centered on
// the ship's nose.
func (p *Player) Muzzle() (x, y float64) {
	return p.X + p.W/2 - config.BulletWidth/2, p.Y
}

// Draw renders the hull with its cockpit and engine.
func (p *Player) Draw(s draw.Surface) {
	s.FillRect(p.X, p.Y, p.W, p.H, draw.ColorPlayer)
	s.FillRect(p.X+10, p.Y+10, 40, 20, draw.ColorCockpit)
	s.FillRect(p.X+25, p.Y+35, 10, 5, draw.ColorEngine)
}
