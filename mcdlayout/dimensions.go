package mcdlayout

import (
	"math"

	"oss.terrastruct.com/mcd/lib/textmeasure"
	"oss.terrastruct.com/mcd/mcdgraph"
	"oss.terrastruct.com/mcd/mcdrenderers/mcdfonts"
)

const (
	HEADER_HEIGHT = 30.
	ROW_HEIGHT    = 24.

	// PADDING is added below the last attribute row, of entities and attribute boxes alike.
	PADDING = 10.
	// TEXT_PADDING is the horizontal room around a measured string.
	TEXT_PADDING = 20.

	ENTITY_MIN_WIDTH        = 120.
	ATTRIBUTE_BOX_MIN_WIDTH = 140.
)

type Dimensions struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// EntityDimensions is the rendered size of e: the requested size grown to fit the name and
// every attribute.
func EntityDimensions(e *mcdgraph.Entity, cfg *Config, ruler textmeasure.TextRuler) Dimensions {
	cfg = cfg.withDefaults()
	return boxDimensions(e.Name, e.Attributes, e.Width, e.Height, ENTITY_MIN_WIDTH, cfg, rulerOrFallback(ruler))
}

// AttributeBoxDimensions is the size of the box listing a's attributes, headed by its
// display name.
func AttributeBoxDimensions(a *mcdgraph.Association, cfg *Config, ruler textmeasure.TextRuler) Dimensions {
	cfg = cfg.withDefaults()
	return boxDimensions(a.DisplayName(), a.Attributes, 0, 0, ATTRIBUTE_BOX_MIN_WIDTH, cfg, rulerOrFallback(ruler))
}

func boxDimensions(header string, attrs []*mcdgraph.Attribute, width, height, minWidth float64, cfg *Config, ruler textmeasure.TextRuler) Dimensions {
	w := math.Max(width, minWidth)
	w = math.Max(w, displayWidth(ruler, cfg, header, true))
	for _, attr := range attrs {
		w = math.Max(w, displayWidth(ruler, cfg, attr.Name, attr.IsPK))
	}

	h := math.Max(height, HEADER_HEIGHT+float64(len(attrs))*ROW_HEIGHT+PADDING)
	return Dimensions{Width: w, Height: h}
}

func displayWidth(ruler textmeasure.TextRuler, cfg *Config, text string, bold bool) float64 {
	style := mcdfonts.FONT_STYLE_REGULAR
	if bold {
		style = mcdfonts.FONT_STYLE_BOLD
	}
	w, _ := ruler.MeasurePrecise(cfg.FontFamily.Font(cfg.FontSize, style), text)
	return w + TEXT_PADDING
}

func rulerOrFallback(ruler textmeasure.TextRuler) textmeasure.TextRuler {
	if ruler == nil {
		return textmeasure.NewFallbackRuler()
	}
	return ruler
}
