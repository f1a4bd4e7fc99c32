package client

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/tomz197/planewar/internal/draw"
)

// styles are the lipgloss styles for the buttons bar and the modal.
type styles struct {
	enabled  lipgloss.Style
	disabled lipgloss.Style
	modal    lipgloss.Style
	title    lipgloss.Style
}

// newStyles binds styles to w. The canvas already emits 24-bit color, so
// the renderer is pinned to true color rather than probing w, which may be
// an SSH channel.
func newStyles(w io.Writer) styles {
	r := lipgloss.NewRenderer(w)
	r.SetColorProfile(termenv.TrueColor)
	return styles{
		enabled: r.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(draw.Hex(draw.ColorPlayer))).
			Padding(0, 1),
		disabled: r.NewStyle().
			Faint(true).
			Padding(0, 1),
		modal: r.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(draw.Hex(draw.ColorEnemy))).
			Padding(1, 4).
			Align(lipgloss.Center),
		title: r.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(draw.Hex(draw.ColorEnemy))),
	}
}

func (s styles) button(enabled bool) lipgloss.Style {
	if enabled {
		return s.enabled
	}
	return s.disabled
}

// drawFrame draws the current frame.
func (c *Client) drawFrame() error {
	// On overlay transitions, do a full terminal clear so UI elements from
	// the previous mode don't persist on screen.
	if mode := c.state.mode(); mode != c.state.prevMode {
		c.chunkWriter.WriteString("\033[H\033[2J")
		c.canvas.ForceRedraw()
		c.state.prevMode = mode
	}

	// Render canvas to terminal
	c.canvas.Render(c.chunkWriter)

	// Draw border when terminal exceeds max render resolution
	c.canvas.RenderBorder(c.chunkWriter)

	c.drawUI()

	return c.chunkWriter.Flush()
}

// drawUI draws the text overlays on top of the canvas.
func (c *Client) drawUI() {
	termWidth := c.canvas.TerminalWidth()
	termHeight := c.canvas.TerminalHeight()
	centerX := termWidth / 2
	centerY := termHeight / 2

	switch c.state.mode() {
	case modeShutdown:
		c.drawShutdownScreen(centerX, centerY)
		return
	case modeInactive:
		c.drawInactivityScreen(centerX, centerY)
		return
	}

	c.drawHUD()
	c.drawButtons(termHeight)
	if c.state.ModalVisible {
		c.drawGameOverModal(centerX, centerY)
	}
}

// drawHUD draws the scoreboard in the top row.
// Text fields use fixed-width formatting so shrinking values don't leave
// residual characters on screen.
func (c *Client) drawHUD() {
	st := c.state.Stats
	hud := fmt.Sprintf("Score: %-7d Lives: %-2d Level: %-3d", st.Score, st.Lives, st.Level)
	c.chunkWriter.WriteAt(2, 1, hud)
}

// buttonsBar renders the control buttons; disabled ones are dimmed.
func (c *Client) buttonsBar() string {
	ctl := c.state.Controls
	return lipgloss.JoinHorizontal(lipgloss.Top,
		c.styles.button(ctl.StartEnabled).Render("Enter Start"),
		c.styles.button(ctl.PauseEnabled).Render(fmt.Sprintf("P %-6s", ctl.PauseLabel)),
		c.styles.button(ctl.RestartEnabled).Render("R Restart"),
		c.styles.enabled.Render("Q Quit"),
	)
}

// drawButtons draws the buttons bar in the bottom row.
func (c *Client) drawButtons(termHeight int) {
	c.chunkWriter.WriteAt(2, termHeight, c.buttonsBar())
}

// gameOverModal renders the game-over box.
func (c *Client) gameOverModal() []string {
	body := strings.Join([]string{
		c.styles.title.Render("GAME OVER"),
		"",
		fmt.Sprintf("Final score: %d", c.state.FinalScore),
		"",
		"Press R to play again",
	}, "\n")
	return strings.Split(c.styles.modal.Render(body), "\n")
}

// drawGameOverModal draws the game-over box centered over the last frame.
func (c *Client) drawGameOverModal(centerX, centerY int) {
	lines := c.gameOverModal()
	width := 0
	for _, line := range lines {
		width = max(width, lipgloss.Width(line))
	}
	c.chunkWriter.WriteLines(centerX-width/2, centerY-len(lines)/2, lines)
}

// drawInactivityScreen draws the inactivity warning screen.
func (c *Client) drawInactivityScreen(centerX, centerY int) {
	cw := c.chunkWriter
	title := "INACTIVITY WARNING"
	cw.WriteAt(centerX-len(title)/2, centerY-2, title)

	remaining := c.idleTimeout - time.Since(c.lastInput)
	msg := fmt.Sprintf(
		"You have been inactive for too long. You will be disconnected in %d seconds.",
		int(remaining.Seconds()),
	)
	cw.WriteAt(centerX-len(msg)/2, centerY, msg)

	hint := "Press any key to continue"
	cw.WriteAt(centerX-len(hint)/2, centerY+2, hint)
}

// drawShutdownScreen draws the server shutdown notification screen.
func (c *Client) drawShutdownScreen(centerX, centerY int) {
	cw := c.chunkWriter
	title := "SERVER SHUTTING DOWN"
	cw.WriteAt(centerX-len(title)/2, centerY-3, title)

	msg1 := "The server is restarting for maintenance."
	cw.WriteAt(centerX-len(msg1)/2, centerY-1, msg1)

	msg2 := fmt.Sprintf("Your final score: %d", c.state.Stats.Score)
	cw.WriteAt(centerX-len(msg2)/2, centerY, msg2)

	remaining := int(c.state.shutdownTimer) + 1
	countdown := fmt.Sprintf("Disconnecting in %d seconds...", remaining)
	cw.WriteAt(centerX-len(countdown)/2, centerY+2, countdown)

	hint := "Press Q to disconnect now"
	cw.WriteAt(centerX-len(hint)/2, centerY+4, hint)
}
