package game

import (
	"github.com/tomz197/planewar/internal/draw"
	"github.com/tomz197/planewar/internal/game/config"
)

const (
	titleText  = "PLANE WAR"
	promptText = "Press Start to begin"
)

// Render draws the current state: the start screen while idle, the
// playfield otherwise.
func (s *Session) Render(surf draw.Surface) {
	surf.Clear()
	if s.phase == PhaseIdle {
		s.drawStartScreen(surf)
		return
	}

	s.drawStarfield(surf)
	s.player.Draw(surf)
	for _, b := range s.bullets {
		b.Draw(surf)
	}
	for _, e := range s.enemies {
		e.Draw(surf)
	}
	for _, ex := range s.explosions {
		ex.Draw(surf)
	}
}

// drawStarfield scatters a fresh set of small dots every frame.
func (s *Session) drawStarfield(surf draw.Surface) {
	for i := 0; i < config.StarCount; i++ {
		x := s.starRNG.Float64() * s.width
		y := s.starRNG.Float64() * s.height
		size := s.starRNG.Float64() * config.StarMaxSize
		surf.FillRect(x, y, size, size, draw.ColorStar)
	}
}

func (s *Session) drawStartScreen(surf draw.Surface) {
	surf.FillRect(0, 0, s.width, s.height, draw.ColorOverlay)
	surf.FillText(s.width/2, s.height/2-50, titleText, 48, draw.ColorText)
	surf.FillText(s.width/2, s.height/2+20, promptText, 24, draw.ColorText)
}
