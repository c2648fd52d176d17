package mcdlayout

import (
	"oss.terrastruct.com/mcd/mcdrenderers/mcdfonts"
)

// Config holds the spacing constants of the layout. They are visual choices, the only
// contract is that parallel lines and stacked loops stay apart.
type Config struct {
	// FanoutSpacing is the distance between two locked binaries joining the same pair of
	// entities.
	FanoutSpacing float64 `json:"fanoutSpacing"`
	// SelfLoopSpacing is how much further out each extra locked loop on an entity reaches.
	SelfLoopSpacing float64 `json:"selfLoopSpacing"`
	// SelfLoopExtent is how far right of its entity the first locked loop reaches.
	SelfLoopExtent float64 `json:"selfLoopExtent"`
	// SelfLoopHalfGap is half the vertical distance between the two legs of a locked loop.
	SelfLoopHalfGap float64 `json:"selfLoopHalfGap"`
	// SelfLoopSpread is the angle in radians between the label direction and each leg of a
	// movable loop.
	SelfLoopSpread float64 `json:"selfLoopSpread"`
	// CardinalityDistance is how far from the entity border a cardinality is placed.
	CardinalityDistance float64 `json:"cardinalityDistance"`

	FontFamily mcdfonts.FontFamily `json:"fontFamily"`
	FontSize   int                 `json:"fontSize"`
}

func DefaultConfig() *Config {
	return &Config{
		FanoutSpacing:       25,
		SelfLoopSpacing:     40,
		SelfLoopExtent:      50,
		SelfLoopHalfGap:     15,
		SelfLoopSpread:      0.3,
		CardinalityDistance: 15,
		FontFamily:          mcdfonts.GoSans,
		FontSize:            mcdfonts.FONT_SIZE_M,
	}
}

// withDefaults returns a copy of cfg where every zero field takes its default.
func (cfg *Config) withDefaults() *Config {
	def := DefaultConfig()
	if cfg == nil {
		return def
	}
	out := *cfg
	if out.FanoutSpacing == 0 {
		out.FanoutSpacing = def.FanoutSpacing
	}
	if out.SelfLoopSpacing == 0 {
		out.SelfLoopSpacing = def.SelfLoopSpacing
	}
	if out.SelfLoopExtent == 0 {
		out.SelfLoopExtent = def.SelfLoopExtent
	}
	if out.SelfLoopHalfGap == 0 {
		out.SelfLoopHalfGap = def.SelfLoopHalfGap
	}
	if out.SelfLoopSpread == 0 {
		out.SelfLoopSpread = def.SelfLoopSpread
	}
	if out.CardinalityDistance == 0 {
		out.CardinalityDistance = def.CardinalityDistance
	}
	if out.FontFamily == "" {
		out.FontFamily = def.FontFamily
	}
	if out.FontSize == 0 {
		out.FontSize = def.FontSize
	}
	return &out
}
