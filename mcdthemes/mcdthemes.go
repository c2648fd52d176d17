// mcdthemes defines the color themes an MCD diagram is rendered with.
// Color codes: darkest (N1) -> lightest (N7)
package mcdthemes

import (
	"fmt"

	"oss.terrastruct.com/mcd/lib/color"
	"oss.terrastruct.com/mcd/mcdtarget"
)

type Theme struct {
	ID     int64        `json:"id"`
	Name   string       `json:"name"`
	Colors ColorPalette `json:"colors"`
}

// IsDark reports whether the theme draws light text on a dark canvas.
func (t Theme) IsDark() bool {
	return t.ID >= 200 && t.ID < 300
}

type Neutral struct {
	N1 string `json:"n1"`
	N2 string `json:"n2"`
	N3 string `json:"n3"`
	N4 string `json:"n4"`
	N5 string `json:"n5"`
	N6 string `json:"n6"`
	N7 string `json:"n7"`
}

type ColorPalette struct {
	Neutrals Neutral `json:"neutrals"`

	// Base Colors: entities and association nodes
	B1 string `json:"b1"`
	B2 string `json:"b2"`
	B3 string `json:"b3"`
	B4 string `json:"b4"`
	B5 string `json:"b5"`
	B6 string `json:"b6"`

	// Alternative colors A: cardinalities and lines
	AA2 string `json:"aa2"`
	AA4 string `json:"aa4"`
	AA5 string `json:"aa5"`

	// Alternative colors B: attribute boxes
	AB4 string `json:"ab4"`
	AB5 string `json:"ab5"`
}

// Resolve returns the CSS color behind a theme token. Anything that is not a token is
// returned as is.
func (p ColorPalette) Resolve(token string) string {
	switch token {
	case color.N1:
		return p.Neutrals.N1
	case color.N2:
		return p.Neutrals.N2
	case color.N3:
		return p.Neutrals.N3
	case color.N4:
		return p.Neutrals.N4
	case color.N5:
		return p.Neutrals.N5
	case color.N6:
		return p.Neutrals.N6
	case color.N7:
		return p.Neutrals.N7
	case color.B1:
		return p.B1
	case color.B2:
		return p.B2
	case color.B3:
		return p.B3
	case color.B4:
		return p.B4
	case color.B5:
		return p.B5
	case color.B6:
		return p.B6
	case color.AA2:
		return p.AA2
	case color.AA4:
		return p.AA4
	case color.AA5:
		return p.AA5
	case color.AB4:
		return p.AB4
	case color.AB5:
		return p.AB5
	}
	return token
}

// ApplyOverrides replaces the palette colors set in overrides. Every override must be a
// CSS color; the theme is left untouched when one is not.
func (t *Theme) ApplyOverrides(overrides *mcdtarget.ThemeOverrides) error {
	if overrides == nil {
		return nil
	}
	palette := t.Colors
	for _, o := range []struct {
		token string
		val   *string
		dst   *string
	}{
		{color.N1, overrides.N1, &palette.Neutrals.N1},
		{color.N2, overrides.N2, &palette.Neutrals.N2},
		{color.N3, overrides.N3, &palette.Neutrals.N3},
		{color.N4, overrides.N4, &palette.Neutrals.N4},
		{color.N5, overrides.N5, &palette.Neutrals.N5},
		{color.N6, overrides.N6, &palette.Neutrals.N6},
		{color.N7, overrides.N7, &palette.Neutrals.N7},
		{color.B1, overrides.B1, &palette.B1},
		{color.B2, overrides.B2, &palette.B2},
		{color.B3, overrides.B3, &palette.B3},
		{color.B4, overrides.B4, &palette.B4},
		{color.B5, overrides.B5, &palette.B5},
		{color.B6, overrides.B6, &palette.B6},
		{color.AA2, overrides.AA2, &palette.AA2},
		{color.AA4, overrides.AA4, &palette.AA4},
		{color.AA5, overrides.AA5, &palette.AA5},
		{color.AB4, overrides.AB4, &palette.AB4},
		{color.AB5, overrides.AB5, &palette.AB5},
	} {
		if o.val == nil {
			continue
		}
		if color.IsThemeColor(*o.val) || !color.Valid(*o.val) {
			return fmt.Errorf("invalid override for %s: %q is not a CSS color", o.token, *o.val)
		}
		*o.dst = *o.val
	}
	t.Colors = palette
	return nil
}

var CoolNeutral = Neutral{
	N1: "#0A0F25",
	N2: "#676C7E",
	N3: "#9499AB",
	N4: "#CFD2DD",
	N5: "#DEE1EB",
	N6: "#EEF1F8",
	N7: "#FFFFFF",
}

var WarmNeutral = Neutral{
	N1: "#170206",
	N2: "#535152",
	N3: "#787777",
	N4: "#CCCACA",
	N5: "#DFDCDC",
	N6: "#ECEBEB",
	N7: "#FFFFFF",
}

var DarkNeutral = Neutral{
	N1: "#F4F6FA",
	N2: "#BBBEC9",
	N3: "#868A96",
	N4: "#676D7D",
	N5: "#3A3D49",
	N6: "#191C28",
	N7: "#000410",
}

var DarkMauveNeutral = Neutral{
	N1: "#CDD6F4",
	N2: "#BAC2DE",
	N3: "#A6ADC8",
	N4: "#585B70",
	N5: "#45475A",
	N6: "#313244",
	N7: "#1E1E2E",
}
