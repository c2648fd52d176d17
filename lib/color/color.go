// Package color resolves the color tokens MCD themes are written in and derives the
// shades the renderer needs from them: the header outline of an entity table and the
// title text that stays readable on the header fill.
package color

import (
	"fmt"
	"regexp"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/mazznoer/csscolorparser"
)

var themeColorRegex = regexp.MustCompile(`^(N[1-7]|B[1-6]|AA[245]|AB[45])$`)

// IsThemeColor reports whether colorString is a palette token such as N1 or AB4 rather
// than a literal CSS color.
func IsThemeColor(colorString string) bool {
	return themeColorRegex.MatchString(colorString)
}

// Valid reports whether colorString is a theme token or a color CSS understands.
func Valid(colorString string) bool {
	if IsThemeColor(colorString) || colorString == None {
		return true
	}
	_, err := csscolorparser.Parse(colorString)
	return err == nil
}

// Darken returns a shade darker than colorString. Entity headers are outlined with it.
// Palette tokens map one step down the B scale and CSS colors lose 10% lightness.
func Darken(colorString string) (string, error) {
	if IsThemeColor(colorString) {
		switch colorString[1] {
		case '1':
			return B1, nil
		case '2':
			return B1, nil
		case '3':
			return B2, nil
		case '4':
			return B3, nil
		case '5':
			return B4, nil
		case '6':
			return B5, nil
		default:
			return "", fmt.Errorf("darkening color \"%s\" is not yet supported", colorString)
		}
	}

	return darkenCSS(colorString)
}

func darkenCSS(colorString string) (string, error) {
	c, err := csscolorparser.Parse(colorString)
	if err != nil {
		return "", err
	}
	h, s, l := colorful.Color{R: c.R, G: c.G, B: c.B}.Hsl()
	// decrease luminance by 10%
	return colorful.Hsl(h, s, l-.1).Clamped().Hex(), nil
}

// LuminanceCategory buckets a CSS color into one of four bands from bright to darker. The
// renderer uses it to pick the neutral written on entity headers.
func LuminanceCategory(colorString string) (string, error) {
	l, err := Luminance(colorString)
	if err != nil {
		return "", err
	}

	switch {
	case l >= .88:
		return "bright", nil
	case l >= .55:
		return "normal", nil
	case l >= .30:
		return "dark", nil
	default:
		return "darker", nil
	}
}

// Luminance is the perceived brightness of a CSS color, from 0 to 1.
func Luminance(colorString string) (float64, error) {
	c, err := csscolorparser.Parse(colorString)
	if err != nil {
		return 0, err
	}

	l := float64(
		float64(0.299)*float64(c.R) +
			float64(0.587)*float64(c.G) +
			float64(0.114)*float64(c.B),
	)
	return l, nil
}

const (
	// Neutrals: text, borders and the canvas
	N1 = "N1"
	N2 = "N2"
	N3 = "N3"
	N4 = "N4"
	N5 = "N5"
	N6 = "N6"
	N7 = "N7"

	// Base Colors: entity and association outlines and fills
	B1 = "B1"
	B2 = "B2"
	B3 = "B3"
	B4 = "B4"
	B5 = "B5"
	B6 = "B6"

	// Alternative colors A: cardinalities and connectors
	AA2 = "AA2"
	AA4 = "AA4"
	AA5 = "AA5"

	// Alternative colors B: attribute boxes
	AB4 = "AB4"
	AB5 = "AB5"

	// Special
	Empty = ""
	None  = "none"
)
