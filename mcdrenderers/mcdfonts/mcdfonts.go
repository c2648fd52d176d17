// mcdfonts holds the fonts used to measure and render diagrams.
//
// Both the text ruler and the SVG renderer read the same faces so that measured widths
// match what the browser draws.
package mcdfonts

import (
	"encoding/base64"
	"fmt"

	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/gomonobold"
	"golang.org/x/image/font/gofont/goregular"
)

type FontFamily string
type FontStyle string

type Font struct {
	Family FontFamily
	Style  FontStyle
	Size   int
}

func (f FontFamily) Font(size int, style FontStyle) Font {
	return Font{
		Family: f,
		Style:  style,
		Size:   size,
	}
}

// Sizeless returns the key used to look up the font's face.
func (f Font) Sizeless() Font {
	f.Size = 0
	return f
}

// CSSFamily is the font-family name under which the face is declared in rendered SVGs.
func (f FontFamily) CSSFamily() string {
	return fmt.Sprintf("mcd-font-%s", f)
}

const (
	FONT_SIZE_XS = 12
	FONT_SIZE_S  = 13
	FONT_SIZE_M  = 14
	FONT_SIZE_L  = 16

	FONT_STYLE_REGULAR FontStyle = "regular"
	FONT_STYLE_BOLD    FontStyle = "bold"
	FONT_STYLE_ITALIC  FontStyle = "italic"

	GoSans FontFamily = "GoSans"
	GoMono FontFamily = "GoMono"
)

var FontStyles = []FontStyle{
	FONT_STYLE_REGULAR,
	FONT_STYLE_BOLD,
	FONT_STYLE_ITALIC,
}

var FontFamilies = []FontFamily{
	GoSans,
	GoMono,
}

var FontFaces map[Font][]byte
var FontEncodings map[Font]string

func init() {
	FontFaces = map[Font][]byte{
		{
			Family: GoSans,
			Style:  FONT_STYLE_REGULAR,
		}: goregular.TTF,
		{
			Family: GoSans,
			Style:  FONT_STYLE_BOLD,
		}: gobold.TTF,
		{
			Family: GoSans,
			Style:  FONT_STYLE_ITALIC,
		}: goitalic.TTF,
		{
			Family: GoMono,
			Style:  FONT_STYLE_REGULAR,
		}: gomono.TTF,
		{
			Family: GoMono,
			Style:  FONT_STYLE_BOLD,
		}: gomonobold.TTF,
	}

	FontEncodings = make(map[Font]string, len(FontFaces))
	for f, ttf := range FontFaces {
		FontEncodings[f] = fmt.Sprintf("data:font/ttf;base64,%s", base64.StdEncoding.EncodeToString(ttf))
	}
}

// Lookup returns the TrueType bytes of font regardless of its size.
func Lookup(font Font) ([]byte, bool) {
	ttf, ok := FontFaces[font.Sizeless()]
	return ttf, ok
}
