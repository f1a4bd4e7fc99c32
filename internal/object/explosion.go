package object

import (
	"sync"

	"github.com/tomz197/planewar/internal/draw"
	"github.com/tomz197/planewar/internal/game/config"
)

// explosionPool is a sync.Pool for reusing Explosion objects to reduce allocations.
var explosionPool = sync.Pool{
	New: func() any {
		return &Explosion{}
	},
}

// Explosion is a short-lived expanding, fading circle.
type Explosion struct {
	X, Y      float64 // Center
	Radius    float64
	Life      int     // Frames remaining
	Opacity   float64 // 1 = opaque
	destroyed bool
}

// NewExplosion takes an explosion from the pool, centered at (x, y).
func NewExplosion(x, y float64) *Explosion {
	e := explosionPool.Get().(*Explosion)
	e.X = x
	e.Y = y
	e.Radius = config.ExplosionRadius
	e.Life = config.ExplosionLife
	e.Opacity = config.ExplosionMaxOpacity
	e.destroyed = false
	return e
}

// Release returns the explosion to the pool for reuse.
// Should be called when the explosion is removed from the game.
func (e *Explosion) Release() {
	explosionPool.Put(e)
}

// MarkDestroyed marks the explosion for removal.
func (e *Explosion) MarkDestroyed() {
	e.destroyed = true
}

// IsDestroyed returns true if the explosion is marked for destruction.
func (e *Explosion) IsDestroyed() bool {
	return e.destroyed
}

// Update advances the explosion one frame: it shrinks its life, grows and
// fades. Returns true once it has burnt out.
func (e *Explosion) Update() bool {
	e.Life--
	e.Radius += config.ExplosionGrowth
	e.Opacity -= config.ExplosionFade
	if e.Life <= 0 || e.Opacity <= 0 {
		e.destroyed = true
	}
	return e.destroyed
}

// Draw renders the explosion at its current opacity.
func (e *Explosion) Draw(s draw.Surface) {
	if e.Opacity <= 0 {
		return
	}
	s.FillCircle(e.X, e.Y, e.Radius, draw.WithAlpha(draw.ColorExplosion, e.Opacity))
}
