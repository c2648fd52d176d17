package textmeasure

import (
	"strings"

	"github.com/rivo/uniseg"

	"oss.terrastruct.com/mcd/mcdrenderers/mcdfonts"
)

// FALLBACK_CHAR_WIDTH is the width every grapheme measures when no font metrics are used.
const FALLBACK_CHAR_WIDTH = 8.

// FALLBACK_LINE_HEIGHT_FACTOR multiplies the font size to get a line's height.
const FALLBACK_LINE_HEIGHT_FACTOR = 1.25

// FallbackRuler measures text without fonts: each grapheme cluster is FALLBACK_CHAR_WIDTH
// wide and a tab counts as TAB_SIZE graphemes. The font's family and style are ignored.
type FallbackRuler struct{}

func NewFallbackRuler() *FallbackRuler {
	return &FallbackRuler{}
}

func (r *FallbackRuler) MeasurePrecise(font mcdfonts.Font, s string) (width, height float64) {
	if s == "" {
		return 0, 0
	}

	lines := strings.Split(s, "\n")
	maxColumns := 0
	for _, line := range lines {
		columns := uniseg.GraphemeClusterCount(line)
		columns += strings.Count(line, "\t") * (TAB_SIZE - 1)
		if columns > maxColumns {
			maxColumns = columns
		}
	}

	return float64(maxColumns) * FALLBACK_CHAR_WIDTH, float64(len(lines)) * float64(font.Size) * FALLBACK_LINE_HEIGHT_FACTOR
}
