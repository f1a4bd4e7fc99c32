package game

import "errors"

// Phase is the state of the session's state machine.
type Phase int

const (
	PhaseIdle     Phase = iota // Start screen, no game played yet
	PhaseRunning               // Simulation advancing every frame
	PhasePaused                // Game in progress but frozen
	PhaseGameOver              // Out of lives, waiting for a restart
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseRunning:
		return "running"
	case PhasePaused:
		return "paused"
	case PhaseGameOver:
		return "game_over"
	}
	return "unknown"
}

var (
	ErrAlreadyRunning = errors.New("game already running")
	ErrNotRunning     = errors.New("game not running")
	ErrNotStarted     = errors.New("game not started")
	ErrButtonDisabled = errors.New("button disabled")
)

// Start begins a fresh game from the start screen or after a game over.
func (s *Session) Start() error {
	if s.Running() {
		return ErrAlreadyRunning
	}
	s.hideGameOver()
	s.begin()
	return nil
}

// TogglePause freezes or resumes a running game.
func (s *Session) TogglePause() error {
	switch s.phase {
	case PhaseRunning:
		s.phase = PhasePaused
	case PhasePaused:
		s.phase = PhaseRunning
	default:
		return ErrNotRunning
	}
	s.pushControls()
	return nil
}

// Restart abandons the current game, if any, and begins a fresh one.
func (s *Session) Restart() error {
	if s.phase == PhaseIdle {
		return ErrNotStarted
	}
	s.hideGameOver()
	s.begin()
	return nil
}

// Press activates a UI button. Buttons the display shows as disabled are
// rejected with ErrButtonDisabled.
func (s *Session) Press(b Button) error {
	switch b {
	case ButtonStart:
		if !s.controls.StartEnabled {
			return ErrButtonDisabled
		}
		return s.Start()
	case ButtonPause:
		if !s.controls.PauseEnabled {
			return ErrButtonDisabled
		}
		return s.TogglePause()
	case ButtonRestart:
		if !s.controls.RestartEnabled {
			return ErrButtonDisabled
		}
		return s.Restart()
	case ButtonPlayAgain:
		if !s.modalVisible {
			return ErrButtonDisabled
		}
		return s.Restart()
	}
	return ErrButtonDisabled
}

func (s *Session) begin() {
	s.reset()
	s.phase = PhaseRunning
	s.display.ShowStats(s.stats)
	s.pushControls()
}

// checkGameOver ends the game once the last life is gone. It only fires
// from the running phase, so a game ends exactly once.
func (s *Session) checkGameOver() {
	if s.phase != PhaseRunning || s.stats.Lives > 0 {
		return
	}
	s.phase = PhaseGameOver
	s.modalVisible = true
	s.display.ShowGameOver(s.stats.Score)
	s.pushControls()
	s.emit(EventGameOver)
}

func (s *Session) hideGameOver() {
	if !s.modalVisible {
		return
	}
	s.modalVisible = false
	s.display.HideGameOver()
}

func (s *Session) pushControls() {
	running := s.Running()
	label := LabelPause
	if s.phase == PhasePaused {
		label = LabelResume
	}
	s.controls = Controls{
		StartEnabled:   !running,
		PauseEnabled:   running,
		RestartEnabled: running,
		PauseLabel:     label,
	}
	s.display.SetControls(s.controls)
}
