package web

import "github.com/tomz197/planewar/internal/game"

// remoteDisplay mirrors the page state and remembers whether the browser
// is behind.
type remoteDisplay struct {
	ui    UIMsg
	dirty bool
}

var _ game.Display = (*remoteDisplay)(nil)

func newRemoteDisplay() *remoteDisplay {
	return &remoteDisplay{ui: UIMsg{Type: MsgTypeUI}}
}

func (d *remoteDisplay) ShowStats(s game.Stats) {
	d.ui.Stats = statsMsg(s)
	d.dirty = true
}

func (d *remoteDisplay) SetControls(c game.Controls) {
	d.ui.Controls = controlsMsg(c)
	d.dirty = true
}

func (d *remoteDisplay) ShowGameOver(finalScore int) {
	d.ui.Modal = ModalMsg{Visible: true, FinalScore: finalScore}
	d.dirty = true
}

func (d *remoteDisplay) HideGameOver() {
	d.ui.Modal.Visible = false
	d.dirty = true
}
