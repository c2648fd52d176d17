package mcdfonts

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLookup(t *testing.T) {
	t.Parallel()

	for _, family := range FontFamilies {
		for _, style := range []FontStyle{FONT_STYLE_REGULAR, FONT_STYLE_BOLD} {
			ttf, ok := Lookup(family.Font(FONT_SIZE_M, style))
			assert.True(t, ok, "%s %s", family, style)
			assert.NotEmpty(t, ttf)
		}
	}

	_, ok := Lookup(GoMono.Font(FONT_SIZE_M, FONT_STYLE_ITALIC))
	assert.False(t, ok)
}

func TestEncodings(t *testing.T) {
	t.Parallel()

	assert.Len(t, FontEncodings, len(FontFaces))
	enc := FontEncodings[GoSans.Font(0, FONT_STYLE_BOLD)]
	assert.True(t, strings.HasPrefix(enc, "data:font/ttf;base64,"))
	assert.Equal(t, "mcd-font-GoSans", GoSans.CSSFamily())
}
