// Package e2e provides a virtual terminal for asserting on rendered viewer
// frames without a tty: it interprets the ANSI sequences the display layer
// emits (SGR colors, cursor addressing, clears) into a plain rune grid.
package e2e

import (
	"regexp"
	"strings"
)

var sgrPattern = regexp.MustCompile(`\x1b\[[0-9;]*m`)

// StripANSI removes SGR color sequences, leaving the drawn glyphs. Enough for
// asserting on single composed frames, which carry no cursor movement.
func StripANSI(s string) string {
	return sgrPattern.ReplaceAllString(s, "")
}

// Screen is a virtual terminal grid. Frames written by the display layer are
// replayed onto it, so tests can assert on what a real terminal would show.
type Screen struct {
	rows    int
	cols    int
	cells   [][]rune
	cursorX int
	cursorY int
}

// NewScreen creates an empty screen of the given geometry.
func NewScreen(rows, cols int) *Screen {
	cells := make([][]rune, rows)
	for i := range cells {
		cells[i] = blankRow(cols)
	}
	return &Screen{rows: rows, cols: cols, cells: cells}
}

func blankRow(cols int) []rune {
	row := make([]rune, cols)
	for i := range row {
		row[i] = ' '
	}
	return row
}

// Write replays terminal output onto the screen. Color sequences are dropped;
// cursor addressing and clear sequences move and erase like a terminal would.
func (s *Screen) Write(output string) {
	runes := []rune(output)
	for i := 0; i < len(runes); {
		switch {
		case runes[i] == '\x1b' && i+1 < len(runes) && runes[i+1] == '[':
			i = s.applySequence(runes, i)
		case runes[i] == '\r':
			s.cursorX = 0
			i++
		case runes[i] == '\n':
			s.lineFeed()
			i++
		default:
			s.put(runes[i])
			i++
		}
	}
}

// applySequence consumes one CSI sequence starting at runes[start] and
// returns the index just past it.
func (s *Screen) applySequence(runes []rune, start int) int {
	i := start + 2 // skip ESC [
	var params []int
	current := 0
	for i < len(runes) {
		c := runes[i]
		switch {
		case c >= '0' && c <= '9':
			current = current*10 + int(c-'0')
		case c == ';' || c == '?':
			if c == ';' {
				params = append(params, current)
				current = 0
			}
		default:
			params = append(params, current)
			s.applyCommand(c, params)
			return i + 1
		}
		i++
	}
	return i
}

func (s *Screen) applyCommand(cmd rune, params []int) {
	arg := func(n, fallback int) int {
		if len(params) > n && params[n] > 0 {
			return params[n]
		}
		return fallback
	}

	switch cmd {
	case 'H', 'f':
		s.cursorY = clamp(arg(0, 1)-1, 0, s.rows-1)
		s.cursorX = clamp(arg(1, 1)-1, 0, s.cols-1)
	case 'J':
		switch arg(0, 0) {
		case 2:
			s.eraseRegion(0, 0, s.rows-1, s.cols-1)
		default:
			s.eraseRegion(s.cursorY, s.cursorX, s.rows-1, s.cols-1)
		}
	case 'K':
		switch arg(0, 0) {
		case 2:
			s.eraseRegion(s.cursorY, 0, s.cursorY, s.cols-1)
		default:
			s.eraseRegion(s.cursorY, s.cursorX, s.cursorY, s.cols-1)
		}
	case 'A':
		s.cursorY = clamp(s.cursorY-arg(0, 1), 0, s.rows-1)
	case 'B':
		s.cursorY = clamp(s.cursorY+arg(0, 1), 0, s.rows-1)
	case 'C':
		s.cursorX = clamp(s.cursorX+arg(0, 1), 0, s.cols-1)
	case 'D':
		s.cursorX = clamp(s.cursorX-arg(0, 1), 0, s.cols-1)
	case 'm', 'h', 'l', 's', 'u', 'r':
		// Colors, mode toggles, and cursor save/restore do not move glyphs.
	}
}

func (s *Screen) put(ch rune) {
	if s.cursorY < 0 || s.cursorY >= s.rows || s.cursorX < 0 || s.cursorX >= s.cols {
		return
	}
	s.cells[s.cursorY][s.cursorX] = ch
	s.cursorX++
	if s.cursorX >= s.cols {
		s.cursorX = 0
		s.lineFeed()
	}
}

func (s *Screen) lineFeed() {
	s.cursorX = 0
	s.cursorY++
	if s.cursorY >= s.rows {
		copy(s.cells, s.cells[1:])
		s.cells[s.rows-1] = blankRow(s.cols)
		s.cursorY = s.rows - 1
	}
}

// eraseRegion blanks cells from (fromRow, fromCol) through (toRow, toCol),
// scanning row-major like a terminal erase does.
func (s *Screen) eraseRegion(fromRow, fromCol, toRow, toCol int) {
	for r := fromRow; r <= toRow; r++ {
		startCol := 0
		if r == fromRow {
			startCol = fromCol
		}
		endCol := s.cols - 1
		if r == toRow {
			endCol = toCol
		}
		for c := startCol; c <= endCol; c++ {
			s.cells[r][c] = ' '
		}
	}
}

// Line returns one screen row with trailing blanks trimmed.
func (s *Screen) Line(row int) string {
	if row < 0 || row >= s.rows {
		return ""
	}
	return strings.TrimRight(string(s.cells[row]), " ")
}

// Text returns the full screen with trailing blanks trimmed per row.
func (s *Screen) Text() string {
	lines := make([]string, s.rows)
	for i := range s.cells {
		lines[i] = s.Line(i)
	}
	return strings.TrimRight(strings.Join(lines, "\n"), "\n")
}

// Contains reports whether the drawn screen contains the text.
func (s *Screen) Contains(text string) bool {
	return strings.Contains(s.Text(), text)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
