package layout

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPadString(t *testing.T) {
	s := Sizer{}

	assert.Equal(t, "ab   ", s.PadString("ab", 5, true))
	assert.Equal(t, "   ab", s.PadString("ab", 5, false))
	assert.Equal(t, "abcdef", s.PadString("abcdef", 5, true), "wider input returned unchanged")
}

func TestPadStringWideRunes(t *testing.T) {
	s := Sizer{}

	// 🏆 occupies two cells, so only two spaces are needed to reach four.
	padded := s.PadString("🏆", 4, true)
	assert.Equal(t, "🏆  ", padded)
	assert.Equal(t, 4, s.displayWidth(padded))
}

func TestTruncateString(t *testing.T) {
	s := Sizer{}

	assert.Equal(t, "short", s.TruncateString("short", 10))
	assert.Equal(t, "abcd…", s.TruncateString("abcdefgh", 5))
	assert.Equal(t, 5, s.displayWidth(s.TruncateString("abcdefgh", 5)))
}
