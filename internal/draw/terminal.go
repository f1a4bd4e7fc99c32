package draw

import (
	"io"
	"os"
	"strconv"

	"golang.org/x/term"
)

// Half-block glyphs: each terminal cell shows two vertically stacked pixels.
const (
	BlockEmpty     = ' '
	BlockFull      = '█'
	BlockUpperHalf = '▀'
	BlockLowerHalf = '▄'
)

// ANSI control sequences
const (
	ColorReset    = "\033[0m"
	seqClear      = "\033[H\033[2J"
	seqHideCursor = "\033[?25l"
	seqShowCursor = "\033[?25h"
)

// maxChunkSize keeps each write below a typical 1500 byte MTU so SSH
// sessions stream frames smoothly.
const maxChunkSize = 1400

// writeChunked writes data in pieces of at most maxChunkSize bytes.
func writeChunked(w io.Writer, data []byte) error {
	for len(data) > 0 {
		n := min(len(data), maxChunkSize)
		if _, err := w.Write(data[:n]); err != nil {
			return err
		}
		data = data[n:]
	}
	return nil
}

// ChunkWriter collects positioned UI text for one frame and sends it in
// MTU-sized chunks on Flush. Coordinates are 1-based and shifted by the
// offset of the centered render area.
type ChunkWriter struct {
	w      io.Writer
	buf    []byte
	offCol int
	offRow int
}

var _ io.Writer = (*ChunkWriter)(nil)

func NewChunkWriter(w io.Writer, offsetCol, offsetRow int) *ChunkWriter {
	return &ChunkWriter{
		w:      w,
		buf:    make([]byte, 0, 4096),
		offCol: offsetCol,
		offRow: offsetRow,
	}
}

// SetOffset moves the render area, e.g. after a resize.
func (cw *ChunkWriter) SetOffset(offsetCol, offsetRow int) {
	cw.offCol = offsetCol
	cw.offRow = offsetRow
}

func (cw *ChunkWriter) Write(p []byte) (int, error) {
	cw.buf = append(cw.buf, p...)
	return len(p), nil
}

func (cw *ChunkWriter) WriteString(s string) {
	cw.buf = append(cw.buf, s...)
}

// WriteAt places s at (col, row) of the render area.
func (cw *ChunkWriter) WriteAt(col, row int, s string) {
	cw.buf = append(cw.buf, "\033["...)
	cw.buf = strconv.AppendInt(cw.buf, int64(row+cw.offRow), 10)
	cw.buf = append(cw.buf, ';')
	cw.buf = strconv.AppendInt(cw.buf, int64(col+cw.offCol), 10)
	cw.buf = append(cw.buf, 'H')
	cw.buf = append(cw.buf, s...)
}

// WriteLines writes lines top to bottom starting at (col, row).
func (cw *ChunkWriter) WriteLines(col, row int, lines []string) {
	for i, line := range lines {
		cw.WriteAt(col, row+i, line)
	}
}

// Pending returns the number of buffered bytes.
func (cw *ChunkWriter) Pending() int {
	return len(cw.buf)
}

// Flush sends everything buffered and empties the buffer, even on error.
func (cw *ChunkWriter) Flush() error {
	err := writeChunked(cw.w, cw.buf)
	cw.buf = cw.buf[:0]
	return err
}

// TermSizeFunc reports the terminal size in cells.
type TermSizeFunc func() (width, height int, err error)

// StdoutSize is the TermSizeFunc of the local terminal.
func StdoutSize() (int, int, error) {
	return term.GetSize(int(os.Stdout.Fd()))
}

func ClearScreen(w io.Writer) { io.WriteString(w, seqClear) }
func HideCursor(w io.Writer)  { io.WriteString(w, seqHideCursor) }
func ShowCursor(w io.Writer)  { io.WriteString(w, seqShowCursor) }
