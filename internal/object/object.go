// Package object defines the game entities: the player ship, bullets,
// enemies and explosions.
package object

import "github.com/tomz197/planewar/internal/draw"

// Drawable is implemented by every entity that appears on screen.
type Drawable interface {
	Draw(s draw.Surface)
}

// Destructible is implemented by objects that can be destroyed/marked for removal.
type Destructible interface {
	// MarkDestroyed marks the object for removal at the end of the current pass.
	MarkDestroyed()
	// IsDestroyed returns true if the object is marked for destruction.
	IsDestroyed() bool
}

// Releasable is implemented by pooled objects that can be returned to a pool.
type Releasable interface {
	// Release returns the object to its pool for reuse.
	Release()
}

// ReleaseObject releases an object back to its pool if it implements Releasable.
func ReleaseObject(obj any) {
	if r, ok := obj.(Releasable); ok {
		r.Release()
	}
}

// Rand is the random source used for spawning. *rand.Rand satisfies it.
type Rand interface {
	Float64() float64
}

// Compact removes destroyed entries in place, preserving order, and returns
// the shortened slice. Removed entries are released when pooled.
func Compact[T Destructible](items []T) []T {
	kept := items[:0] // reuse backing array
	for _, it := range items {
		if it.IsDestroyed() {
			ReleaseObject(it)
			continue
		}
		kept = append(kept, it)
	}
	// Drop references held past the new length.
	var zero T
	for i := len(kept); i < len(items); i++ {
		items[i] = zero
	}
	return kept
}
