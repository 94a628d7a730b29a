package layout

import (
	"github.com/ephyslab/sweepscope/internal/util"
)

// getDisplayWidth is now available from util.GetDisplayWidth
func getDisplayWidth(text string) int {
	return util.GetDisplayWidth(text)
}
