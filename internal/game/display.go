package game

// Stats is the scoreboard shown next to the playfield.
type Stats struct {
	Score int
	Lives int
	Level int
}

// Controls describes which UI buttons are enabled and how the pause
// button is labelled.
type Controls struct {
	StartEnabled   bool
	PauseEnabled   bool
	RestartEnabled bool
	PauseLabel     string
}

// Pause button labels.
const (
	LabelPause  = "Pause"
	LabelResume = "Resume"
)

// Button identifies a UI button.
type Button int

const (
	ButtonStart Button = iota
	ButtonPause
	ButtonRestart
	ButtonPlayAgain
)

// String returns the button's element id in the web page.
func (b Button) String() string {
	switch b {
	case ButtonStart:
		return "startBtn"
	case ButtonPause:
		return "pauseBtn"
	case ButtonRestart:
		return "restartBtn"
	case ButtonPlayAgain:
		return "playAgainBtn"
	}
	return "unknown"
}

// ButtonFromID maps a web element id back to its Button.
func ButtonFromID(id string) (Button, bool) {
	for b := ButtonStart; b <= ButtonPlayAgain; b++ {
		if b.String() == id {
			return b, true
		}
	}
	return 0, false
}

// Display is everything a session shows outside the playfield: the
// scoreboard, the control buttons and the game-over modal.
// Implementations are only called from the session's goroutine.
type Display interface {
	ShowStats(Stats)
	SetControls(Controls)
	ShowGameOver(finalScore int)
	HideGameOver()
}

// NopDisplay discards all updates.
type NopDisplay struct{}

func (NopDisplay) ShowStats(Stats)      {}
func (NopDisplay) SetControls(Controls) {}
func (NopDisplay) ShowGameOver(int)     {}
func (NopDisplay) HideGameOver()        {}

// Event is a gameplay occurrence reported to a Listener.
type Event int

const (
	EventShot      Event = iota // A bullet was fired
	EventKill                   // A bullet destroyed an enemy
	EventPlayerHit              // An enemy rammed the player
	EventLevelUp                // The level increased
	EventGameOver               // The last life was lost
)

func (e Event) String() string {
	switch e {
	case EventShot:
		return "shot"
	case EventKill:
		return "kill"
	case EventPlayerHit:
		return "player_hit"
	case EventLevelUp:
		return "level_up"
	case EventGameOver:
		return "game_over"
	}
	return "unknown"
}

// Listener receives gameplay events as they happen.
type Listener func(Event)
