package render

import (
	"math"

	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/ephyslab/sweepscope/internal/util"
)

// goldenRatioConjugate spaces hues so nearby category ids land on visually
// distant colors.
const goldenRatioConjugate = 0.61803398875

// CategoryPalette assigns each spike category a stable terminal color.
// Category ids are arbitrary sorter output, so colors are derived from the id
// rather than assignment order: the same unit keeps its color across reloads.
type CategoryPalette struct {
	cache map[int]string
}

// NewCategoryPalette creates an empty palette; colors are derived on first use.
func NewCategoryPalette() *CategoryPalette {
	return &CategoryPalette{cache: make(map[int]string)}
}

// Color returns the ANSI 24-bit foreground sequence for a category.
func (p *CategoryPalette) Color(category int) string {
	if seq, ok := p.cache[category]; ok {
		return seq
	}

	hue := math.Mod(float64(category)*goldenRatioConjugate, 1.0) * 360
	c := colorful.Hsl(hue, 0.85, 0.6)
	r, g, b := c.RGB255()
	seq := util.ColorRGB(r, g, b)

	p.cache[category] = seq
	return seq
}
