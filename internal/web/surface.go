package web

import (
	"image/color"

	"github.com/tomz197/planewar/internal/draw"
	"github.com/tomz197/planewar/internal/game/config"
)

// Recorder is a draw.Surface that records calls for replay in the browser.
type Recorder struct {
	ops []DrawOp
}

var _ draw.Surface = (*Recorder)(nil)

func (r *Recorder) Size() (w, h float64) {
	return config.CanvasWidth, config.CanvasHeight
}

// Clear drops everything recorded so far; only the latest frame is sent.
func (r *Recorder) Clear() {
	r.ops = append(r.ops[:0], DrawOp{Op: OpClear})
}

func (r *Recorder) FillRect(x, y, w, h float64, c color.NRGBA) {
	r.ops = append(r.ops, DrawOp{Op: OpRect, X: x, Y: y, W: w, H: h, Color: draw.Hex(c), Alpha: alpha(c)})
}

func (r *Recorder) FillCircle(cx, cy, radius float64, c color.NRGBA) {
	r.ops = append(r.ops, DrawOp{Op: OpCircle, X: cx, Y: cy, R: radius, Color: draw.Hex(c), Alpha: alpha(c)})
}

func (r *Recorder) FillText(x, y float64, text string, size float64, c color.NRGBA) {
	r.ops = append(r.ops, DrawOp{Op: OpText, X: x, Y: y, Text: text, Size: size, Color: draw.Hex(c), Alpha: alpha(c)})
}

// Pending reports whether a frame was drawn and not yet marked sent.
func (r *Recorder) Pending() bool {
	return len(r.ops) > 0
}

// Frame returns the recorded frame. The ops are only valid until the next
// Clear or Sent.
func (r *Recorder) Frame() FrameMsg {
	return FrameMsg{Type: MsgTypeFrame, Ops: r.ops}
}

// Sent drops the recorded frame once it has been delivered.
func (r *Recorder) Sent() {
	r.ops = r.ops[:0]
}

func alpha(c color.NRGBA) float64 {
	return float64(c.A) / 255
}
