package mcdthemescatalog

import "oss.terrastruct.com/mcd/mcdthemes"

var EarthTones = mcdthemes.Theme{
	ID:   103,
	Name: "Earth Tones",
	Colors: mcdthemes.ColorPalette{
		Neutrals: mcdthemes.WarmNeutral,

		B1: "#1E1303",
		B2: "#13058E",
		B3: "#F1C759",
		B4: "#F9E088",
		B5: "#FCEFBF",
		B6: "#FEF9E7",

		AA2: "#3D2506",
		AA4: "#D7B16D",
		AA5: "#F2DCB1",

		AB4: "#E7D8C3",
		AB5: "#F3EBDF",
	},
}
