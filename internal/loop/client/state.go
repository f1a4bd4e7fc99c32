package client

import (
	"github.com/tomz197/planewar/internal/game"
)

// screenMode is what the terminal currently shows on top of the canvas.
type screenMode int

const (
	modePlay     screenMode = iota // Canvas with HUD and buttons bar
	modeGameOver                   // Game-over modal over the last frame
	modeInactive                   // Idle warning
	modeShutdown                   // Server is shutting down
)

// ClientState holds per-player UI state: the scoreboard, the buttons and
// the game-over modal. It is the game.Display of the client's session.
type ClientState struct {
	Stats         game.Stats
	Controls      game.Controls
	ModalVisible  bool
	FinalScore    int
	shutdown      bool       // Server asked everyone to leave
	shutdownTimer float64    // Countdown before auto-disconnect on shutdown
	isInactive    bool       // Whether the client is in inactive warning state
	prevMode      screenMode // Mode drawn last frame
}

// Compile-time check that ClientState implements game.Display.
var _ game.Display = (*ClientState)(nil)

// NewClientState creates a new initialized client state.
func NewClientState() *ClientState {
	return &ClientState{
		prevMode: modePlay,
	}
}

func (s *ClientState) ShowStats(st game.Stats) {
	s.Stats = st
}

func (s *ClientState) SetControls(c game.Controls) {
	s.Controls = c
}

func (s *ClientState) ShowGameOver(finalScore int) {
	s.ModalVisible = true
	s.FinalScore = finalScore
}

func (s *ClientState) HideGameOver() {
	s.ModalVisible = false
}

// mode picks the overlay to draw. Shutdown wins over everything else.
func (s *ClientState) mode() screenMode {
	switch {
	case s.shutdown:
		return modeShutdown
	case s.isInactive:
		return modeInactive
	case s.ModalVisible:
		return modeGameOver
	}
	return modePlay
}
