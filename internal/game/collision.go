package game

import (
	"github.com/tomz197/planewar/internal/game/config"
	"github.com/tomz197/planewar/internal/object"
)

// resolveCollisions handles bullet-enemy hits first, then enemies ramming
// the player. An enemy shot this frame can no longer hit the player.
func (s *Session) resolveCollisions() {
	if len(s.enemies) == 0 {
		return
	}

	s.grid.Clear()
	for i, e := range s.enemies {
		s.grid.Insert(e.Rect, i)
	}

	// Newest bullets and enemies take precedence, and each bullet
	// destroys at most one enemy.
	for bi := len(s.bullets) - 1; bi >= 0; bi-- {
		b := s.bullets[bi]
		target := -1
		s.grid.QueryRect(b.Rect, func(ei int) bool {
			e := s.enemies[ei]
			if ei > target && !e.IsDestroyed() && b.Overlaps(e.Rect) {
				target = ei
			}
			return false
		})
		if target < 0 {
			continue
		}
		e := s.enemies[target]
		b.MarkDestroyed()
		e.MarkDestroyed()
		s.explode(e)
		s.stats.Score += config.KillReward
		s.emit(EventKill)
	}

	for i := len(s.enemies) - 1; i >= 0; i-- {
		e := s.enemies[i]
		if e.IsDestroyed() || !s.player.Overlaps(e.Rect) {
			continue
		}
		e.MarkDestroyed()
		s.explode(e)
		if s.stats.Lives > 0 {
			s.stats.Lives--
		}
		s.emit(EventPlayerHit)
	}

	s.bullets = object.Compact(s.bullets)
	s.enemies = object.Compact(s.enemies)
}

func (s *Session) explode(e *object.Enemy) {
	cx, cy := e.Center()
	s.explosions = append(s.explosions, object.NewExplosion(cx, cy))
}
