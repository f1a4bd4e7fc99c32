package web

import "github.com/tomz197/planewar/internal/game"

// Message types
const (
	MsgTypeKeyDown  = "keydown"
	MsgTypeKeyUp    = "keyup"
	MsgTypeClick    = "click"
	MsgTypeFrame    = "frame"
	MsgTypeUI       = "ui"
	MsgTypeShutdown = "shutdown"
)

// InputMsg is a JSON message from the browser.
type InputMsg struct {
	Type string `json:"type"`
	Key  string `json:"key,omitempty"` // KeyboardEvent.key for key messages
	ID   string `json:"id,omitempty"`  // Button element id for clicks
}

// Draw operations
const (
	OpClear  = "clear"
	OpRect   = "rect"
	OpCircle = "circle"
	OpText   = "text"
)

// DrawOp is one canvas call. Coordinates are logical canvas units.
type DrawOp struct {
	Op    string  `msgpack:"op"`
	X     float64 `msgpack:"x,omitempty"`
	Y     float64 `msgpack:"y,omitempty"`
	W     float64 `msgpack:"w,omitempty"`
	H     float64 `msgpack:"h,omitempty"`
	R     float64 `msgpack:"r,omitempty"`
	Color string  `msgpack:"color,omitempty"` // #rrggbb
	Alpha float64 `msgpack:"alpha"`           // 0..1
	Text  string  `msgpack:"text,omitempty"`
	Size  float64 `msgpack:"size,omitempty"` // Font size in pixels
}

// FrameMsg carries every draw call of one rendered frame.
type FrameMsg struct {
	Type string   `msgpack:"type"`
	Ops  []DrawOp `msgpack:"ops"`
}

// StatsMsg mirrors game.Stats.
type StatsMsg struct {
	Score int `msgpack:"score"`
	Lives int `msgpack:"lives"`
	Level int `msgpack:"level"`
}

// ControlsMsg mirrors game.Controls.
type ControlsMsg struct {
	StartEnabled   bool   `msgpack:"startEnabled"`
	PauseEnabled   bool   `msgpack:"pauseEnabled"`
	RestartEnabled bool   `msgpack:"restartEnabled"`
	PauseLabel     string `msgpack:"pauseLabel"`
}

// ModalMsg is the game-over modal state.
type ModalMsg struct {
	Visible    bool `msgpack:"visible"`
	FinalScore int  `msgpack:"finalScore"`
}

// UIMsg is the full state of the page around the canvas.
type UIMsg struct {
	Type     string      `msgpack:"type"`
	Stats    StatsMsg    `msgpack:"stats"`
	Controls ControlsMsg `msgpack:"controls"`
	Modal    ModalMsg    `msgpack:"modal"`
}

// ShutdownMsg tells the page the server is going away.
type ShutdownMsg struct {
	Type  string `msgpack:"type"`
	Score int    `msgpack:"score"`
}

func statsMsg(s game.Stats) StatsMsg {
	return StatsMsg{Score: s.Score, Lives: s.Lives, Level: s.Level}
}

func controlsMsg(c game.Controls) ControlsMsg {
	return ControlsMsg{
		StartEnabled:   c.StartEnabled,
		PauseEnabled:   c.PauseEnabled,
		RestartEnabled: c.RestartEnabled,
		PauseLabel:     c.PauseLabel,
	}
}
