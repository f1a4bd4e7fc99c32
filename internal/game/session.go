// Package game holds the headless simulation of one play session.
package game

import (
	"math/rand"
	"time"

	"github.com/tomz197/planewar/internal/game/config"
	"github.com/tomz197/planewar/internal/input"
	"github.com/tomz197/planewar/internal/object"
	"github.com/tomz197/planewar/internal/physics"
)

// gridCellSize is the broad-phase cell edge, roughly one enemy wide.
const gridCellSize = 50

// Options configures a new Session.
type Options struct {
	Seed     int64    // 0 picks a time-based seed
	Display  Display  // nil discards UI updates
	Listener Listener // optional
}

// Session is one player's game: entities, scoreboard, input state and
// the phase of the state machine. A Session is not safe for concurrent
// use; frontends drive it from a single goroutine.
type Session struct {
	width, height float64

	phase        Phase
	stats        Stats
	controls     Controls
	modalVisible bool

	player     *object.Player
	bullets    []*object.Bullet
	enemies    []*object.Enemy
	explosions []*object.Explosion
	spawner    *object.EnemySpawner
	grid       *physics.SpatialGrid

	rng     *rand.Rand // Simulation randomness
	starRNG *rand.Rand // Background only, so rendering never shifts the simulation
	keys    input.Tracker

	display  Display
	listener Listener
}

// NewSession creates an idle session and pushes the initial scoreboard
// and button states to the display.
func NewSession(opts Options) *Session {
	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	display := opts.Display
	if display == nil {
		display = NopDisplay{}
	}

	w, h := float64(config.CanvasWidth), float64(config.CanvasHeight)
	s := &Session{
		width:    w,
		height:   h,
		phase:    PhaseIdle,
		stats:    initialStats(),
		player:   object.NewPlayer(w, h),
		spawner:  object.NewEnemySpawner(w),
		grid:     physics.NewSpatialGrid(w, h, gridCellSize),
		rng:      rand.New(rand.NewSource(seed)),
		starRNG:  rand.New(rand.NewSource(seed ^ 0x5eed)),
		display:  display,
		listener: opts.Listener,
	}
	s.display.ShowStats(s.stats)
	s.pushControls()
	return s
}

func initialStats() Stats {
	return Stats{
		Score: 0,
		Lives: config.InitialLives,
		Level: config.InitialLevel,
	}
}

// Size returns the logical canvas size.
func (s *Session) Size() (w, h float64) {
	return s.width, s.height
}

// Phase returns the current state machine phase.
func (s *Session) Phase() Phase {
	return s.phase
}

// Running reports whether a game is in progress. A paused game is running.
func (s *Session) Running() bool {
	return s.phase == PhaseRunning || s.phase == PhasePaused
}

// Paused reports whether the running game is paused.
func (s *Session) Paused() bool {
	return s.phase == PhasePaused
}

// Stats returns the current scoreboard.
func (s *Session) Stats() Stats {
	return s.stats
}

// Controls returns the button states last pushed to the display.
func (s *Session) Controls() Controls {
	return s.controls
}

// GameOverVisible reports whether the game-over modal is shown.
func (s *Session) GameOverVisible() bool {
	return s.modalVisible
}

// SetListener replaces the event listener.
func (s *Session) SetListener(l Listener) {
	s.listener = l
}

// KeyDown records a pressed key and triggers the edge actions bound to it.
func (s *Session) KeyDown(k input.Key) {
	if !s.keys.Press(k) {
		return // Repeat of a held key
	}
	switch k {
	case input.KeyFire:
		if s.phase == PhaseRunning {
			s.fire()
		}
	case input.KeyPause:
		if s.Running() {
			_ = s.TogglePause()
		}
	case input.KeyStart:
		_ = s.Press(ButtonStart)
	case input.KeyRestart:
		if s.modalVisible {
			_ = s.Press(ButtonPlayAgain)
		} else {
			_ = s.Press(ButtonRestart)
		}
	}
}

// KeyUp records a released key.
func (s *Session) KeyUp(k input.Key) {
	s.keys.Release(k)
}

// ReleaseKeys forgets every held key, e.g. when a window loses focus.
func (s *Session) ReleaseKeys() {
	s.keys.Reset()
}

func (s *Session) emit(e Event) {
	if s.listener != nil {
		s.listener(e)
	}
}

// reset restores a fresh game: scoreboard, entities and player position.
func (s *Session) reset() {
	s.stats = initialStats()
	for _, e := range s.explosions {
		e.Release()
	}
	s.bullets = s.bullets[:0]
	s.enemies = s.enemies[:0]
	s.explosions = s.explosions[:0]
	s.player.Reset(s.width, s.height)
}
