package mcdthemescatalog

import (
	"fmt"
	"strings"

	"oss.terrastruct.com/mcd/mcdthemes"
)

var LightCatalog = []mcdthemes.Theme{
	NeutralDefault,
	NeutralGrey,
	ColorblindClear,
	EarthTones,
}

var DarkCatalog = []mcdthemes.Theme{
	DarkMauve,
	DarkFlagshipTerrastruct,
}

// Find returns the theme with the given id, or the zero Theme when there is none.
func Find(id int64) mcdthemes.Theme {
	for _, theme := range LightCatalog {
		if theme.ID == id {
			return theme
		}
	}
	for _, theme := range DarkCatalog {
		if theme.ID == id {
			return theme
		}
	}

	return mcdthemes.Theme{}
}

func CLIString() string {
	var s strings.Builder
	s.WriteString("Light:\n")
	for _, t := range LightCatalog {
		s.WriteString(fmt.Sprintf("- %s: %d\n", t.Name, t.ID))
	}
	s.WriteString("Dark:\n")
	for _, t := range DarkCatalog {
		s.WriteString(fmt.Sprintf("- %s: %d\n", t.Name, t.ID))
	}
	return s.String()
}
