package object

import (
	"github.com/tomz197/planewar/internal/draw"
	"github.com/tomz197/planewar/internal/game/config"
	"github.com/tomz197/planewar/internal/physics"
)

// Bullet is a projectile fired upward by the player.
type Bullet struct {
	physics.Rect
	Speed     float64 // Units moved up per frame
	destroyed bool    // Marked for destruction
}

// NewBullet creates a bullet with its top-left corner at (x, y).
func NewBullet(x, y float64) *Bullet {
	return &Bullet{
		Rect:  physics.Rect{X: x, Y: y, W: config.BulletWidth, H: config.BulletHeight},
		Speed: config.BulletSpeed,
	}
}

// MarkDestroyed marks the bullet for removal.
func (b *Bullet) MarkDestroyed() {
	b.destroyed = true
}

// IsDestroyed returns true if the bullet is marked for destruction.
func (b *Bullet) IsDestroyed() bool {
	return b.destroyed
}

// Update moves the bullet up. Returns true once it has left the top edge.
func (b *Bullet) Update() bool {
	b.Y -= b.Speed
	if b.Bottom() < 0 {
		b.destroyed = true
	}
	return b.destroyed
}

// Draw renders the bullet.
func (b *Bullet) Draw(s draw.Surface) {
	s.FillRect(b.X, b.Y, b.W, b.H, draw.ColorBullet)
}
