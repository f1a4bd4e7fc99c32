// Package config centralizes frontend timing and layout parameters.
// Gameplay tunables live in internal/game/config.
package config

import "time"

// Frame rate - every frontend ticks the simulation once per frame.
const (
	TargetFPS       = 60
	TargetFrameTime = time.Second / TargetFPS
)

// Terminal rendering. Larger terminals get a centered, bordered canvas.
const (
	MaxTermWidth  = 160 // Columns
	MaxTermHeight = 60  // Rows
)

// Shutdown
const (
	ShutdownDisplaySeconds = 10.0             // Seconds to show shutdown message before auto-disconnect
	ShutdownTimeout        = 15 * time.Second // Longest wait for clients to leave
)

// Inactivity
const (
	InactivityDisconnectUser = 120 * time.Second // Default idle timeout for remote players
	InactivityWarnLead       = 30 * time.Second  // Warning shown this long before disconnect
)
