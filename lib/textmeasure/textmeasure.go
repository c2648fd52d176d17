// Package textmeasure measures text the way it is rendered, so boxes grow to fit their
// labels.
package textmeasure

import (
	"math"
	"strings"
	"sync"

	"github.com/golang/freetype/truetype"
	"github.com/rivo/uniseg"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"

	"oss.terrastruct.com/mcd/mcdrenderers/mcdfonts"
)

const TAB_SIZE = 4

// TextRuler is anything that can tell how large a string renders in a font.
// Both Ruler and FallbackRuler implement it.
type TextRuler interface {
	MeasurePrecise(font mcdfonts.Font, s string) (width, height float64)
}

// Ruler measures text with the TrueType metrics of the fonts in mcdfonts.
// It is safe for concurrent use.
type Ruler struct {
	// LineHeightFactor scales the vertical distance between two lines of text.
	LineHeightFactor float64

	mu    sync.Mutex
	ttfs  map[mcdfonts.Font]*truetype.Font
	faces map[mcdfonts.Font]sizedFace
}

type sizedFace struct {
	font.Face
	ttf *truetype.Font
}

func NewRuler() (*Ruler, error) {
	r := &Ruler{
		LineHeightFactor: 1.,
		ttfs:             make(map[mcdfonts.Font]*truetype.Font),
		faces:            make(map[mcdfonts.Font]sizedFace),
	}

	for _, fontFamily := range mcdfonts.FontFamilies {
		for _, fontStyle := range mcdfonts.FontStyles {
			f := fontFamily.Font(0, fontStyle)
			face, has := mcdfonts.Lookup(f)
			if !has {
				continue
			}
			ttf, err := truetype.Parse(face)
			if err != nil {
				return nil, err
			}
			r.ttfs[f] = ttf
		}
	}

	return r, nil
}

// face returns the sized face of f, falling back to the regular style of the family when
// the style has no face of its own.
func (r *Ruler) face(f mcdfonts.Font) sizedFace {
	if face, ok := r.faces[f]; ok {
		return face
	}
	ttf, ok := r.ttfs[f.Sizeless()]
	if !ok {
		ttf, ok = r.ttfs[f.Family.Font(0, mcdfonts.FONT_STYLE_REGULAR)]
	}
	if !ok {
		ttf = r.ttfs[mcdfonts.GoSans.Font(0, mcdfonts.FONT_STYLE_REGULAR)]
	}
	face := sizedFace{
		Face: truetype.NewFace(ttf, &truetype.Options{
			Size:    float64(f.Size),
			DPI:     72,
			Hinting: font.HintingNone,
		}),
		ttf: ttf,
	}
	r.faces[f] = face
	return face
}

func (r *Ruler) MeasurePrecise(f mcdfonts.Font, s string) (width, height float64) {
	if s == "" {
		return 0, 0
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	face := r.face(f)
	lines := strings.Split(s, "\n")
	for _, line := range lines {
		width = math.Max(width, r.measureLine(f, face, line))
	}
	lineHeight := fixedToFloat(face.Metrics().Height) * r.LineHeightFactor
	return width, float64(len(lines)) * lineHeight
}

func (r *Ruler) measureLine(f mcdfonts.Font, face sizedFace, line string) float64 {
	spaceWidth := r.spaceWidth(face)
	var w float64
	prev := rune(-1)

	gr := uniseg.NewGraphemes(strings.TrimSuffix(line, "\r"))
	for gr.Next() {
		runes := gr.Runes()
		if len(runes) == 1 && runes[0] == '\t' {
			tabWidth := spaceWidth * TAB_SIZE
			w += tabWidth - math.Mod(w, tabWidth)
			prev = -1
			continue
		}

		clusterWidth, ok := r.measureCluster(face, prev, runes)
		if !ok {
			// The face has no glyph for part of the cluster, so it is measured as that
			// many monospace columns instead.
			mono := r.face(mcdfonts.GoMono.Font(f.Size, mcdfonts.FONT_STYLE_REGULAR))
			clusterWidth = r.spaceWidth(mono) * float64(max(gr.Width(), 1))
		}
		w += clusterWidth
		prev = runes[len(runes)-1]
	}
	return w
}

func (r *Ruler) measureCluster(face sizedFace, prev rune, runes []rune) (float64, bool) {
	var w fixed.Int26_6
	for _, ru := range runes {
		if face.ttf.Index(ru) == 0 {
			return 0, false
		}
		if prev >= 0 {
			w += face.Kern(prev, ru)
		}
		adv, ok := face.GlyphAdvance(ru)
		if !ok {
			return 0, false
		}
		w += adv
		prev = ru
	}
	return fixedToFloat(w), true
}

func (r *Ruler) spaceWidth(face sizedFace) float64 {
	adv, _ := face.GlyphAdvance(' ')
	return fixedToFloat(adv)
}

func fixedToFloat(x fixed.Int26_6) float64 {
	return float64(x) / 64
}
