package main

import (
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/tomz197/planewar/internal/audio"
	"github.com/tomz197/planewar/internal/config"
	"github.com/tomz197/planewar/internal/desktop"
	"github.com/tomz197/planewar/internal/game"
)

const defaultVolume = 0.8

func main() {
	logger := config.NewLogger("desktop")
	scale := config.GetEnvInt("DESKTOP_SCALE", 1)
	if scale < 1 {
		scale = 1
	}

	var listener game.Listener
	if !config.GetEnvBool("DESKTOP_MUTE", false) {
		sounds := audio.NewSoundManager(defaultVolume)
		if err := sounds.Initialize(); err != nil {
			logger.Warn("audio disabled", "err", err)
		} else {
			defer sounds.Cleanup()
			listener = sounds.OnEvent
		}
	}

	g := desktop.NewGame(desktop.Options{
		Seed:     config.GetEnvInt64("PLANEWAR_SEED", 0),
		Listener: listener,
		Logger:   logger,
	})

	w, h := desktop.WindowSize()
	ebiten.SetWindowSize(w*scale, h*scale)
	ebiten.SetWindowTitle("Plane War")
	ebiten.SetTPS(60)

	if err := ebiten.RunGame(g); err != nil {
		logger.Fatal("game error", "err", err)
	}
}
