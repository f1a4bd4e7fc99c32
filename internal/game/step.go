package game

import (
	"github.com/tomz197/planewar/internal/draw"
	"github.com/tomz197/planewar/internal/game/config"
	"github.com/tomz197/planewar/internal/input"
	"github.com/tomz197/planewar/internal/object"
)

// Frame is the per-frame callback. A running game advances one step, is
// rendered, and is then checked for game over. Returns whether another
// frame should follow; a paused, idle or finished game draws nothing.
func (s *Session) Frame(surf draw.Surface) bool {
	if s.phase != PhaseRunning {
		return false
	}
	s.Step()
	s.Render(surf)
	s.checkGameOver()
	return s.phase == PhaseRunning
}

// Step advances the simulation by one frame regardless of phase.
func (s *Session) Step() {
	before := s.stats

	s.player.Move(object.Steer{
		Left:  s.keys.Held(input.KeyLeft),
		Right: s.keys.Held(input.KeyRight),
		Up:    s.keys.Held(input.KeyUp),
		Down:  s.keys.Held(input.KeyDown),
	}, s.width, s.height)

	for _, b := range s.bullets {
		b.Update()
	}
	s.bullets = object.Compact(s.bullets)

	for _, e := range s.enemies {
		e.Update(s.height)
	}
	s.enemies = object.Compact(s.enemies)

	for _, ex := range s.explosions {
		ex.Update()
	}
	s.explosions = object.Compact(s.explosions)

	if e := s.spawner.Roll(s.rng, s.stats.Level); e != nil {
		s.enemies = append(s.enemies, e)
	}

	s.resolveCollisions()
	s.updateLevel()

	if s.stats != before {
		s.display.ShowStats(s.stats)
	}
}

// fire launches a bullet from the ship's nose.
func (s *Session) fire() {
	x, y := s.player.Muzzle()
	s.bullets = append(s.bullets, object.NewBullet(x, y))
	s.emit(EventShot)
}

// updateLevel derives the level from the score. The level never drops.
func (s *Session) updateLevel() {
	level := s.stats.Score/config.LevelScoreStep + 1
	if level > s.stats.Level {
		s.stats.Level = level
		s.emit(EventLevelUp)
	}
}
