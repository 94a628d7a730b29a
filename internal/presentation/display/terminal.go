package display

import (
	"fmt"
	"strings"
	"time"

	"github.com/ephyslab/sweepscope/internal/core/model"
	"github.com/ephyslab/sweepscope/internal/util"
)

// TerminalDisplay owns the alternate screen buffer and writes the composed
// viewer frames. It never builds frame content itself; the orchestrator hands
// it the layout output and the interaction state.
type TerminalDisplay struct {
	inAlternateScreen  bool
	lastLayoutStyle    int
	smartRenderEnabled bool
	isFirstRender      bool
	currentMode        model.DisplayMode
}

func NewTerminalDisplay() *TerminalDisplay {
	return &TerminalDisplay{
		smartRenderEnabled: true,
		isFirstRender:      true,
		currentMode:        model.ModeNormal,
	}
}

// EnterAlternateScreen switches to alternate screen buffer
func (td *TerminalDisplay) EnterAlternateScreen() {
	if !td.inAlternateScreen {
		// Enter alternate screen buffer first
		fmt.Print("\033[?1049h")
		// Clear entire screen completely
		fmt.Print("\033[2J")
		// Move cursor to home
		fmt.Print("\033[H")
		// Clear scrollback buffer
		fmt.Print(util.ClearScrollback)
		// Reset scroll region
		fmt.Print(util.ResetScrollRegion)
		// Disable scrollback
		fmt.Print(util.DisableScrollback)
		// Hide cursor for cleaner display
		fmt.Print(util.HideCursor)
		// Clear screen once more to ensure it's completely clean
		fmt.Print(util.ClearScreen)
		// Move cursor to home again
		fmt.Print(util.MoveCursorHome)
		td.inAlternateScreen = true
		// Mark as first render to ensure clean start
		td.isFirstRender = true
	}
}

// ExitAlternateScreen returns to normal screen buffer
func (td *TerminalDisplay) ExitAlternateScreen() {
	if td.inAlternateScreen {
		// Clear screen before exiting
		fmt.Print(util.ClearScreen)
		fmt.Print(util.MoveCursorHome)
		// Enable scrollback
		fmt.Print(util.EnableScrollback)
		// Show cursor
		fmt.Print(util.ShowCursor)
		// Exit alternate screen buffer
		fmt.Print("\033[?1049l")
		td.inAlternateScreen = false
	}
}

// ClearScreen clears the alternate screen buffer
func (td *TerminalDisplay) ClearScreen() {
	if td.inAlternateScreen {
		fmt.Print(util.ClearScreen)
		fmt.Print(util.MoveCursorHome)
	}
}

// ClearForTransition performs comprehensive screen clearing for mode transitions
func (td *TerminalDisplay) ClearForTransition() {
	if td.inAlternateScreen {
		// Clear entire screen
		fmt.Print("\033[2J")
		// Clear scrollback buffer
		fmt.Print("\033[3J")
		// Move cursor to home
		fmt.Print("\033[H")
		fmt.Print(util.MoveCursorHome)
	}
}

// determineDisplayMode determines the current display mode based on interaction state
func (td *TerminalDisplay) determineDisplayMode(state model.InteractionState) model.DisplayMode {
	// Priority order: Dialog > Help > Loading > Normal
	if state.ConfirmDialog != nil {
		return model.ModeConfirm
	}
	if state.ShowHelp {
		return model.ModeHelp
	}
	if state.IsLoading {
		return model.ModeLoading
	}
	return model.ModeNormal
}

// RenderFrame writes one composed viewer frame, or the overlay the current
// mode asks for. frame is the layout strategy output for this tick.
func (td *TerminalDisplay) RenderFrame(frame string, state model.InteractionState) {
	newMode := td.determineDisplayMode(state)
	modeTransition := newMode != td.currentMode

	// Always clear screen on first render or mode transitions
	if td.isFirstRender || modeTransition {
		td.ClearForTransition()
		td.lastLayoutStyle = state.LayoutStyle
		td.isFirstRender = false
		td.currentMode = newMode
	} else if !td.smartRenderEnabled || td.lastLayoutStyle != state.LayoutStyle {
		// If smart rendering is disabled or layout style changed, use full clear
		td.ClearScreen()
		td.lastLayoutStyle = state.LayoutStyle
	} else {
		// Smart render: just move cursor to home
		fmt.Print(util.MoveCursorHome)
	}

	if state.ConfirmDialog != nil {
		td.renderConfirmDialog(state.ConfirmDialog)
		return
	}

	if state.ShowHelp {
		td.renderHelp()
		return
	}

	if state.IsLoading {
		td.renderLoadingScreen(state.LoadingMessage)
		return
	}

	if td.smartRenderEnabled {
		td.smartRender(frame)
	} else {
		fmt.Print(frame)
	}

	if state.StatusMessage != "" {
		td.renderStatusMessage(state.StatusMessage)
	}
}

// smartRender performs cursor-positioned rendering to avoid full screen
// clears between frames
func (td *TerminalDisplay) smartRender(frame string) {
	fmt.Print(util.SaveCursor)
	for _, line := range strings.Split(strings.TrimRight(frame, "\n"), "\n") {
		// Clear each line tail so a narrower frame never leaves stale cells
		fmt.Print(line, util.ClearLineFromCursor, "\n")
	}
	fmt.Print("\033[J")
	fmt.Print(util.RestoreCursor)
}

func (td *TerminalDisplay) renderHelp() {
	// Move cursor to home position first
	fmt.Print(util.MoveCursorHome)
	fmt.Print(util.SaveCursor)

	fmt.Println("Sweepscope Viewer - Help")
	fmt.Println(strings.Repeat("═", 80))
	fmt.Println()
	fmt.Println("Keyboard Shortcuts:")
	fmt.Println()
	fmt.Println("  q/Esc/Ctrl+C - Quit the viewer")
	fmt.Println("  Space     - Pause/resume the sweep")
	fmt.Println("  e         - Toggle the spike mark overlay")
	fmt.Println("  c         - Toggle per-category mark colors")
	fmt.Println("  + / -     - Nudge the amplitude scale up/down (also ↑ / ↓)")
	fmt.Println("  ← / →     - Halve/double the playback speed")
	fmt.Println("  r         - Reload the bundle from disk")
	fmt.Println("  x         - Clear the cached channel report")
	fmt.Println("  t         - Change layout style (Full → Compact)")
	fmt.Println("  h         - Show this help")
	fmt.Println("  ESC       - Close help (or quit if nothing is open)")
	fmt.Println()
	fmt.Println("Layout Styles:")
	fmt.Println("  Full Scope    - Framed view with HUD, status and activity leaders")
	fmt.Println("  Compact Scope - One status line plus the canvas")
	fmt.Println()
	fmt.Println("Overlay Marks:")
	fmt.Println("  ● appears where a spike crosses the sweep; marks expire one")
	fmt.Println("  sweep after their event time. With category colors on, each")
	fmt.Println("  sorted unit keeps a stable color across reloads.")
	fmt.Println()
	fmt.Println(strings.Repeat("═", 80))
	fmt.Println("Press 'h' to return...")

	// Clear from cursor to end of screen instead of clearing remaining lines
	fmt.Print("\033[J")
	fmt.Print(util.RestoreCursor)
}

func (td *TerminalDisplay) renderConfirmDialog(dialog *model.ConfirmDialog) {
	// Clear screen for dialog
	td.ClearScreen()

	// Center the dialog
	termWidth := 80 // Assume 80 chars width
	boxWidth := 60
	padding := (termWidth - boxWidth) / 2

	// Move cursor down a bit
	fmt.Print("\n\n\n\n\n")

	// Draw dialog box
	fmt.Printf("%s╔%s╗\n", strings.Repeat(" ", padding), strings.Repeat("═", boxWidth-2))
	fmt.Printf("%s║%s║\n", strings.Repeat(" ", padding), util.CenterText(dialog.Title, boxWidth-2))
	fmt.Printf("%s╠%s╣\n", strings.Repeat(" ", padding), strings.Repeat("═", boxWidth-2))
	fmt.Printf("%s║%s║\n", strings.Repeat(" ", padding), strings.Repeat(" ", boxWidth-2))

	// Wrap message text
	messageLines := wrapText(dialog.Message, boxWidth-4)
	for _, line := range messageLines {
		fmt.Printf("%s║ %s%s ║\n", strings.Repeat(" ", padding), line, strings.Repeat(" ", boxWidth-4-len(line)))
	}

	fmt.Printf("%s║%s║\n", strings.Repeat(" ", padding), strings.Repeat(" ", boxWidth-2))
	fmt.Printf("%s║%s║\n", strings.Repeat(" ", padding), util.CenterText("(Y)es / (N)o", boxWidth-2))
	fmt.Printf("%s╚%s╝\n", strings.Repeat(" ", padding), strings.Repeat("═", boxWidth-2))
}

func (td *TerminalDisplay) renderStatusMessage(message string) {
	// Save cursor position
	fmt.Print(util.SaveCursor)

	// Move to bottom of screen
	fmt.Print("\033[999;1H") // Move to row 999 (will stop at bottom)

	// Clear line and print status
	fmt.Print(util.ClearLine)
	fmt.Printf("  %s", util.Colorize(util.ColorYellow, message))

	// Restore cursor position
	fmt.Print(util.RestoreCursor)
}

// wrapText wraps text to fit within the specified width
func wrapText(text string, width int) []string {
	if text == "" {
		return []string{}
	}

	if len(text) <= width {
		return []string{text}
	}

	var lines []string
	words := strings.Fields(text)
	currentLine := ""

	for _, word := range words {
		if currentLine == "" {
			currentLine = word
		} else if len(currentLine)+1+len(word) <= width {
			currentLine += " " + word
		} else {
			lines = append(lines, currentLine)
			currentLine = word
		}
	}

	if currentLine != "" {
		lines = append(lines, currentLine)
	}

	return lines
}

// renderLoadingScreen displays a loading message with animation
func (td *TerminalDisplay) renderLoadingScreen(message string) {
	// Move cursor to home position
	fmt.Print(util.MoveCursorHome)

	// Clear screen content
	fmt.Print("\033[2J")
	fmt.Print(util.MoveCursorHome)

	// Center the loading message vertically and horizontally
	termHeight := 24 // Assume terminal height
	termWidth := 80  // Assume terminal width

	// Move to vertical center
	for i := 0; i < termHeight/2-5; i++ {
		fmt.Println()
	}

	// Display loading box
	boxWidth := 50
	padding := (termWidth - boxWidth) / 2

	// Top border
	fmt.Printf("%s╔%s╗\n", strings.Repeat(" ", padding), strings.Repeat("═", boxWidth-2))

	// Loading title
	title := "Sweepscope"
	titlePadding := (boxWidth - 2 - len(title)) / 2
	fmt.Printf("%s║%s%s%s║\n",
		strings.Repeat(" ", padding),
		strings.Repeat(" ", titlePadding),
		title,
		strings.Repeat(" ", boxWidth-2-titlePadding-len(title)))

	// Separator
	fmt.Printf("%s╠%s╣\n", strings.Repeat(" ", padding), strings.Repeat("═", boxWidth-2))

	// Empty line
	fmt.Printf("%s║%s║\n", strings.Repeat(" ", padding), strings.Repeat(" ", boxWidth-2))

	// Loading message
	if message == "" {
		message = "Loading recording..."
	}

	// Add loading animation
	loadingChars := []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}
	animIndex := int(time.Now().Unix()) % len(loadingChars)
	animatedMessage := fmt.Sprintf("%s %s", loadingChars[animIndex], message)

	msgPadding := (boxWidth - 2 - util.GetDisplayWidth(animatedMessage)) / 2
	fmt.Printf("%s║%s%s%s║\n",
		strings.Repeat(" ", padding),
		strings.Repeat(" ", msgPadding),
		animatedMessage,
		strings.Repeat(" ", boxWidth-2-msgPadding-util.GetDisplayWidth(animatedMessage)))

	// Empty line
	fmt.Printf("%s║%s║\n", strings.Repeat(" ", padding), strings.Repeat(" ", boxWidth-2))

	// Instruction
	instruction := "Press 'q' to quit"
	instrPadding := (boxWidth - 2 - len(instruction)) / 2
	fmt.Printf("%s║%s%s%s║\n",
		strings.Repeat(" ", padding),
		strings.Repeat(" ", instrPadding),
		instruction,
		strings.Repeat(" ", boxWidth-2-instrPadding-len(instruction)))

	// Bottom border
	fmt.Printf("%s╚%s╝\n", strings.Repeat(" ", padding), strings.Repeat("═", boxWidth-2))
}
