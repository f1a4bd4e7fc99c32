// Package config centralizes all tunable game parameters.
// Sizes and speeds are in logical canvas units; speeds are per frame.
package config

// Canvas - the logical playfield. Frontends scale it to their output.
const (
	CanvasWidth  = 800
	CanvasHeight = 600
)

// Player
const (
	PlayerWidth        = 60
	PlayerHeight       = 40
	PlayerSpeed        = 5
	PlayerBottomMargin = 20 // Gap between the ship and the bottom edge at spawn
	InitialLives       = 3
)

// Bullets
const (
	BulletWidth  = 4
	BulletHeight = 10
	BulletSpeed  = 8
)

// Enemies
const (
	EnemyWidth     = 40
	EnemyHeight    = 30
	EnemySpeed     = 2
	EnemySpawnRate = 0.02 // Spawn probability per frame at level 0
	LevelScaling   = 0.1  // Speed and spawn rate grow by this factor per level
)

// Explosions
const (
	ExplosionRadius     = 5
	ExplosionLife       = 20   // Frames
	ExplosionGrowth     = 1    // Radius added per frame
	ExplosionFade       = 0.05 // Opacity lost per frame
	ExplosionMaxOpacity = 1.0
)

// Scoring
const (
	KillReward     = 10
	LevelScoreStep = 100 // Score needed per level
	InitialLevel   = 1
)

// Background
const (
	StarCount   = 50
	StarMaxSize = 2
)
