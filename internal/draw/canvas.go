package draw

import (
	"fmt"
	"image/color"
	"io"
	"math"
	"strings"
	"unicode/utf8"
)

// rgb is a packed 0xRRGGBB color with bit 24 set for lit pixels.
// Zero means an unlit (black) pixel.
type rgb uint32

const litBit rgb = 1 << 24

func pack(r, g, b uint8) rgb {
	return litBit | rgb(r)<<16 | rgb(g)<<8 | rgb(b)
}

func (c rgb) components() (r, g, b uint8) {
	return uint8(c >> 16), uint8(c >> 8), uint8(c)
}

// cell is what a terminal cell showed after the last Render.
type cell struct {
	top, bottom rgb
	dirty       bool // Must be rewritten next frame (text overlay, resize)
}

// textItem is a string queued for drawing on top of the pixels.
type textItem struct {
	col, row int
	value    string
	color    rgb
}

// Canvas is a color drawing buffer with 2x vertical resolution using
// half-block characters. It scales from logical coordinates to terminal
// pixels and only rewrites cells that changed since the previous frame.
// Canvas implements Surface.
type Canvas struct {
	termWidth      int   // Actual terminal columns
	termHeight     int   // Actual terminal rows
	subPixelHeight int   // termHeight * 2
	pixels         []rgb // Flat slice: [y * termWidth + x]
	prev           []cell
	texts          []textItem

	// Scaling from logical to pixel coordinates
	logicalWidth  float64 // Target/logical width
	logicalHeight float64 // Target/logical height
	scaleX        float64 // termWidth / logicalWidth
	scaleY        float64 // (termHeight*2) / logicalHeight

	// Offset for centering the render area when terminal is larger than max resolution.
	// These are 0-based terminal offsets (columns/rows to skip).
	offsetCol int
	offsetRow int

	renderBuf strings.Builder // Buffer for batching render output
}

// Compile-time check that Canvas implements Surface.
var _ Surface = (*Canvas)(nil)

// NewScaledCanvas creates a canvas that scales from logical coordinates to terminal pixels.
// logicalWidth/Height define the coordinate space used by the game.
// termWidth/Height are the actual terminal dimensions.
func NewScaledCanvas(termWidth, termHeight int, logicalWidth, logicalHeight float64) *Canvas {
	c := &Canvas{
		logicalWidth:  logicalWidth,
		logicalHeight: logicalHeight,
	}
	c.Resize(termWidth, termHeight)
	return c
}

// Resize updates the canvas for new terminal dimensions while keeping logical size.
func (c *Canvas) Resize(termWidth, termHeight int) {
	if termWidth < 1 {
		termWidth = 1
	}
	if termHeight < 1 {
		termHeight = 1
	}
	subPixelHeight := termHeight * 2

	// Reallocate if size changed
	if termWidth != c.termWidth || termHeight != c.termHeight || c.pixels == nil {
		c.pixels = make([]rgb, subPixelHeight*termWidth)
		c.prev = make([]cell, termHeight*termWidth)
		c.termWidth = termWidth
		c.termHeight = termHeight
		c.subPixelHeight = subPixelHeight
		c.ForceRedraw()
	}

	c.scaleX = float64(termWidth) / c.logicalWidth
	c.scaleY = float64(subPixelHeight) / c.logicalHeight
}

// ForceRedraw makes the next Render rewrite every cell.
func (c *Canvas) ForceRedraw() {
	for i := range c.prev {
		c.prev[i].dirty = true
	}
}

// SetOffset sets the column and row offset for centering the canvas.
// Offsets are 0-based terminal positions: the canvas starts at (offsetCol+1, offsetRow+1).
func (c *Canvas) SetOffset(col, row int) {
	if col != c.offsetCol || row != c.offsetRow {
		c.ForceRedraw()
	}
	c.offsetCol = col
	c.offsetRow = row
}

// OffsetCol returns the column offset used for centering.
func (c *Canvas) OffsetCol() int {
	return c.offsetCol
}

// OffsetRow returns the row offset used for centering.
func (c *Canvas) OffsetRow() int {
	return c.offsetRow
}

// Size returns the logical dimensions.
func (c *Canvas) Size() (w, h float64) {
	return c.logicalWidth, c.logicalHeight
}

// Clear resets all pixels and queued text in the canvas.
func (c *Canvas) Clear() {
	clear(c.pixels)
	c.texts = c.texts[:0]
}

// blendPixel composites col over the pixel at terminal pixel coordinates.
func (c *Canvas) blendPixel(x, y int, col color.NRGBA) {
	if x < 0 || x >= c.termWidth || y < 0 || y >= c.subPixelHeight || col.A == 0 {
		return
	}
	i := y*c.termWidth + x
	if col.A == 0xff {
		if col.R == 0 && col.G == 0 && col.B == 0 {
			c.pixels[i] = 0
			return
		}
		c.pixels[i] = pack(col.R, col.G, col.B)
		return
	}
	a := float64(col.A) / 255
	r0, g0, b0 := c.pixels[i].components()
	mix := func(dst, src uint8) uint8 {
		return uint8(float64(dst)*(1-a) + float64(src)*a + 0.5)
	}
	r, g, b := mix(r0, col.R), mix(g0, col.G), mix(b0, col.B)
	if r == 0 && g == 0 && b == 0 {
		c.pixels[i] = 0
		return
	}
	c.pixels[i] = pack(r, g, b)
}

// FillRect fills a rectangle given in logical coordinates. Any rectangle
// with positive area covers at least one pixel.
func (c *Canvas) FillRect(x, y, w, h float64, col color.NRGBA) {
	if w <= 0 || h <= 0 {
		return
	}
	x0, x1 := pixelSpan(x, w, c.scaleX)
	y0, y1 := pixelSpan(y, h, c.scaleY)
	for py := y0; py < y1; py++ {
		for px := x0; px < x1; px++ {
			c.blendPixel(px, py, col)
		}
	}
}

// FillCircle fills a circle given in logical coordinates. The circle is an
// ellipse in pixel space when the axes scale differently.
func (c *Canvas) FillCircle(cx, cy, r float64, col color.NRGBA) {
	if r <= 0 {
		return
	}
	rx := r * c.scaleX
	ry := r * c.scaleY
	pcx := cx * c.scaleX
	pcy := cy * c.scaleY

	y0 := int(math.Floor(pcy - ry))
	y1 := int(math.Ceil(pcy + ry))
	x0 := int(math.Floor(pcx - rx))
	x1 := int(math.Ceil(pcx + rx))

	lit := false
	for py := y0; py <= y1; py++ {
		dy := (float64(py) + 0.5 - pcy) / ry
		for px := x0; px <= x1; px++ {
			dx := (float64(px) + 0.5 - pcx) / rx
			if dx*dx+dy*dy <= 1 {
				c.blendPixel(px, py, col)
				lit = true
			}
		}
	}
	if !lit {
		// Smaller than a pixel: light the pixel under the center.
		c.blendPixel(int(math.Floor(pcx)), int(math.Floor(pcy)), col)
	}
}

// FillText queues text centered on the logical position (x, y). Text is
// drawn over the pixels at Render time; size is ignored.
func (c *Canvas) FillText(x, y float64, text string, _ float64, col color.NRGBA) {
	if text == "" {
		return
	}
	tc, tr := c.LogicalToTerminal(x, y)
	tc -= utf8.RuneCountInString(text) / 2
	c.texts = append(c.texts, textItem{col: tc, row: tr, value: text, color: pack(col.R, col.G, col.B)})
}

// pixelSpan converts a logical [pos, pos+size) interval to a half-open
// pixel range that is never empty.
func pixelSpan(pos, size, scale float64) (int, int) {
	start := int(math.Floor(pos * scale))
	end := int(math.Ceil((pos + size) * scale))
	if end <= start {
		end = start + 1
	}
	return start, end
}

// Render outputs the changed cells to the writer using half-block characters
// and 24-bit colors, followed by queued text.
func (c *Canvas) Render(w io.Writer) {
	c.renderBuf.Reset()

	for row := 0; row < c.termHeight; row++ {
		topOffset := row * 2 * c.termWidth
		bottomOffset := (row*2 + 1) * c.termWidth
		cursorCol := -1

		for col := 0; col < c.termWidth; col++ {
			top := c.pixels[topOffset+col]
			bottom := c.pixels[bottomOffset+col]

			p := &c.prev[row*c.termWidth+col]
			if !p.dirty && p.top == top && p.bottom == bottom {
				continue
			}
			*p = cell{top: top, bottom: bottom}

			if cursorCol != col {
				fmt.Fprintf(&c.renderBuf, "\033[%d;%dH", row+1+c.offsetRow, col+1+c.offsetCol)
			}
			writeCell(&c.renderBuf, top, bottom)
			cursorCol = col + 1
		}
	}

	for _, t := range c.texts {
		if t.row < 1 || t.row > c.termHeight {
			continue
		}
		value := clipText(t.value, t.col, c.termWidth)
		if value == "" {
			continue
		}
		col := t.col
		if col < 1 {
			col = 1
		}
		r, g, b := t.color.components()
		fmt.Fprintf(&c.renderBuf, "\033[%d;%dH\033[38;2;%d;%d;%dm%s%s",
			t.row+c.offsetRow, col+c.offsetCol, r, g, b, value, ColorReset)
		c.MarkTextDirty(col, t.row, utf8.RuneCountInString(value))
	}

	_ = writeChunked(w, []byte(c.renderBuf.String()))
}

// writeCell emits one half-block cell with its colors.
func writeCell(sb *strings.Builder, top, bottom rgb) {
	switch {
	case top == 0 && bottom == 0:
		sb.WriteString(ColorReset)
		sb.WriteRune(BlockEmpty)
		return
	case top == bottom:
		writeFG(sb, top)
		sb.WriteRune(BlockFull)
	case bottom == 0:
		writeFG(sb, top)
		sb.WriteRune(BlockUpperHalf)
	case top == 0:
		writeFG(sb, bottom)
		sb.WriteRune(BlockLowerHalf)
	default:
		writeFG(sb, top)
		r, g, b := bottom.components()
		fmt.Fprintf(sb, "\033[48;2;%d;%d;%dm", r, g, b)
		sb.WriteRune(BlockUpperHalf)
	}
	sb.WriteString(ColorReset)
}

func writeFG(sb *strings.Builder, c rgb) {
	r, g, b := c.components()
	fmt.Fprintf(sb, "\033[38;2;%d;%d;%dm", r, g, b)
}

// clipText trims s so that it fits between column 1 and width when drawn
// starting at col.
func clipText(s string, col, width int) string {
	runes := []rune(s)
	if col < 1 {
		skip := 1 - col
		if skip >= len(runes) {
			return ""
		}
		runes = runes[skip:]
		col = 1
	}
	if avail := width - col + 1; avail < len(runes) {
		if avail <= 0 {
			return ""
		}
		runes = runes[:avail]
	}
	return string(runes)
}

// MarkTextDirty marks cells that were overwritten by text so the next
// Render repaints them. col and row are 1-based canvas coordinates.
func (c *Canvas) MarkTextDirty(col, row, length int) {
	r := row - 1
	if r < 0 || r >= c.termHeight {
		return
	}
	for i := 0; i < length; i++ {
		cc := col - 1 + i
		if cc < 0 || cc >= c.termWidth {
			continue
		}
		c.prev[r*c.termWidth+cc].dirty = true
	}
}

// RenderBorder draws a box border around the canvas area when the terminal
// exceeds the max render resolution on either axis.
// Draws horizontal borders when there is vertical offset, vertical borders
// when there is horizontal offset, and corners when both are present.
func (c *Canvas) RenderBorder(w io.Writer) {
	hasH := c.offsetCol >= 1 // Room for left/right vertical bars
	hasV := c.offsetRow >= 1 // Room for top/bottom horizontal bars

	// Border positions (1-based terminal coordinates)
	left := c.offsetCol
	right := c.offsetCol + c.termWidth + 1
	top := c.offsetRow
	bottom := c.offsetRow + c.termHeight + 1

	var buf strings.Builder

	if hasV {
		if hasH {
			fmt.Fprintf(&buf, "\033[%d;%dH┌%s┐", top, left, strings.Repeat("─", c.termWidth))
			fmt.Fprintf(&buf, "\033[%d;%dH└%s┘", bottom, left, strings.Repeat("─", c.termWidth))
		} else {
			fmt.Fprintf(&buf, "\033[%d;%dH%s", top, c.offsetCol+1, strings.Repeat("─", c.termWidth))
			fmt.Fprintf(&buf, "\033[%d;%dH%s", bottom, c.offsetCol+1, strings.Repeat("─", c.termWidth))
		}
	}

	if hasH {
		startRow := top + 1
		endRow := bottom
		if !hasV {
			startRow = c.offsetRow + 1
			endRow = c.offsetRow + c.termHeight + 1
		}
		for row := startRow; row < endRow; row++ {
			fmt.Fprintf(&buf, "\033[%d;%dH│\033[%d;%dH│", row, left, row, right)
		}
	}

	io.WriteString(w, buf.String())
}

// TerminalWidth returns the actual terminal column count.
func (c *Canvas) TerminalWidth() int {
	return c.termWidth
}

// TerminalHeight returns the actual terminal row count.
func (c *Canvas) TerminalHeight() int {
	return c.termHeight
}

// LogicalToTerminal converts logical coordinates to 1-based terminal position (col, row).
// This is useful for placing text overlays at positions matching canvas-drawn objects.
func (c *Canvas) LogicalToTerminal(x, y float64) (col, row int) {
	px := int(math.Floor(x * c.scaleX))
	py := int(math.Floor(y * c.scaleY))
	return px + 1, py/2 + 1
}

// PixelAt reports the color of a terminal pixel and whether it is lit.
// Intended for tests and debugging.
func (c *Canvas) PixelAt(x, y int) (color.NRGBA, bool) {
	if x < 0 || x >= c.termWidth || y < 0 || y >= c.subPixelHeight {
		return color.NRGBA{}, false
	}
	p := c.pixels[y*c.termWidth+x]
	if p == 0 {
		return color.NRGBA{}, false
	}
	r, g, b := p.components()
	return color.NRGBA{R: r, G: g, B: b, A: 0xff}, true
}
