package object

import (
	"github.com/tomz197/planewar/internal/draw"
	"github.com/tomz197/planewar/internal/game/config"
	"github.com/tomz197/planewar/internal/physics"
)

// Enemy is a hostile plane descending from the top edge.
type Enemy struct {
	physics.Rect
	Speed     float64 // Units moved down per frame, fixed at spawn
	destroyed bool
}

// NewEnemy creates an enemy with its top-left corner at (x, y).
func NewEnemy(x, y, speed float64) *Enemy {
	return &Enemy{
		Rect:  physics.Rect{X: x, Y: y, W: config.EnemyWidth, H: config.EnemyHeight},
		Speed: speed,
	}
}

// MarkDestroyed marks the enemy for removal.
func (e *Enemy) MarkDestroyed() {
	e.destroyed = true
}

// IsDestroyed returns true if the enemy is marked for destruction.
func (e *Enemy) IsDestroyed() bool {
	return e.destroyed
}

// Update moves the enemy down. Returns true once its top has passed the
// bottom edge of a canvas of the given height.
func (e *Enemy) Update(canvasH float64) bool {
	e.Y += e.Speed
	if e.Y > canvasH {
		e.destroyed = true
	}
	return e.destroyed
}

// Draw renders the hull and its window.
func (e *Enemy) Draw(s draw.Surface) {
	s.FillRect(e.X, e.Y, e.W, e.H, draw.ColorEnemy)
	s.FillRect(e.X+5, e.Y+5, 30, 20, draw.ColorWindow)
}
