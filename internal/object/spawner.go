package object

import "github.com/tomz197/planewar/internal/game/config"

// EnemySpawner rolls once per frame to decide whether a new enemy enters
// from above the top edge. Both the roll and the enemy speed scale with
// the current level.
type EnemySpawner struct {
	BaseRate  float64 // Spawn probability per frame before level scaling
	BaseSpeed float64 // Enemy speed before level scaling
	Width     float64 // Canvas width
}

// NewEnemySpawner creates a spawner for a canvas of the given width.
func NewEnemySpawner(canvasW float64) *EnemySpawner {
	return &EnemySpawner{
		BaseRate:  config.EnemySpawnRate,
		BaseSpeed: config.EnemySpeed,
		Width:     canvasW,
	}
}

// levelFactor is the multiplier applied to rate and speed at level.
func levelFactor(level int) float64 {
	return 1 + float64(level)*config.LevelScaling
}

// Rate returns the per-frame spawn probability at level.
func (s *EnemySpawner) Rate(level int) float64 {
	return s.BaseRate * levelFactor(level)
}

// Speed returns the speed given to enemies spawned at level.
func (s *EnemySpawner) Speed(level int) float64 {
	return s.BaseSpeed * levelFactor(level)
}

// Roll returns a new enemy or nil. The enemy starts fully above the
// canvas at a random horizontal position that keeps it inside the width.
func (s *EnemySpawner) Roll(rng Rand, level int) *Enemy {
	if rng.Float64() >= s.Rate(level) {
		return nil
	}
	x := rng.Float64() * (s.Width - config.EnemyWidth)
	return NewEnemy(x, -config.EnemyHeight, s.Speed(level))
}
