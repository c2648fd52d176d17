// mcdlib compiles an MCD diagram file into its render plan and SVG in one call.
package mcdlib

import (
	"context"
	"fmt"

	"cdr.dev/slog"
	"go.uber.org/multierr"

	"oss.terrastruct.com/mcd/lib/env"
	"oss.terrastruct.com/mcd/lib/log"
	"oss.terrastruct.com/mcd/lib/textmeasure"
	"oss.terrastruct.com/mcd/mcdgraph"
	"oss.terrastruct.com/mcd/mcdlayout"
	"oss.terrastruct.com/mcd/mcdrenderers/mcdsvg"
	"oss.terrastruct.com/mcd/mcdtarget"
)

type CompileOptions struct {
	// Ruler measures entity and attribute text. nil measures with the Go fonts, or with
	// the fallback ruler when MCD_FONT_METRICS=0.
	Ruler  textmeasure.TextRuler
	Layout *mcdlayout.Config

	ThemeID     *int64
	DarkThemeID *int64
}

// Compile parses input, lays it out and returns the render plan along with the parsed
// diagram. Referential problems are logged, not returned: their legs are skipped.
func Compile(ctx context.Context, input []byte, opts *CompileOptions) (*mcdtarget.Diagram, *mcdgraph.Diagram, error) {
	if opts == nil {
		opts = &CompileOptions{}
	}
	ctx = log.Named(ctx, "compile")

	g, err := mcdgraph.Parse(input)
	if err != nil {
		return nil, nil, err
	}
	for _, verr := range multierr.Errors(g.Validate()) {
		log.Warn(ctx, verr.Error())
	}

	ruler, err := rulerFor(opts)
	if err != nil {
		return nil, nil, err
	}

	diagram := mcdlayout.Layout(g.Entities, g.Associations, opts.Layout, ruler)
	if opts.ThemeID != nil || opts.DarkThemeID != nil {
		diagram.Config = &mcdtarget.Config{
			ThemeID:     opts.ThemeID,
			DarkThemeID: opts.DarkThemeID,
		}
	}
	cfg := opts.Layout
	if cfg == nil {
		cfg = mcdlayout.DefaultConfig()
	}
	if cfg.FontFamily != "" {
		fontFamily := cfg.FontFamily
		diagram.FontFamily = &fontFamily
	}

	for _, a := range diagram.Associations {
		for _, id := range a.SkippedConnections {
			log.Debug(ctx, "skipped dangling connection", slog.F("association", a.ID), slog.F("connection", id))
		}
	}
	counts := diagram.ModeCounts()
	log.Debug(ctx, "laid out diagram",
		slog.F("entities", len(diagram.Entities)),
		slog.F("locked_binary", counts[mcdtarget.LockedBinary]),
		slog.F("movable_binary", counts[mcdtarget.MovableBinary]),
		slog.F("self_ref", counts[mcdtarget.SelfRef]),
		slog.F("polygon", counts[mcdtarget.Polygon]),
	)

	return diagram, g, nil
}

// Render compiles input and renders it to SVG.
func Render(ctx context.Context, input []byte, opts *CompileOptions, renderOpts *mcdsvg.RenderOpts) ([]byte, *mcdtarget.Diagram, error) {
	diagram, _, err := Compile(ctx, input, opts)
	if err != nil {
		return nil, nil, err
	}
	svg, err := RenderDiagram(diagram, renderOpts)
	if err != nil {
		return nil, nil, err
	}
	return svg, diagram, nil
}

// RenderDiagram renders a compiled diagram. Themes missing from renderOpts are taken
// from the diagram's config.
func RenderDiagram(diagram *mcdtarget.Diagram, renderOpts *mcdsvg.RenderOpts) ([]byte, error) {
	ro := mcdsvg.RenderOpts{}
	if renderOpts != nil {
		ro = *renderOpts
	}
	renderOpts = &ro
	if renderOpts.ThemeID == nil && diagram.Config != nil {
		renderOpts.ThemeID = diagram.Config.ThemeID
	}
	if renderOpts.DarkThemeID == nil && diagram.Config != nil {
		renderOpts.DarkThemeID = diagram.Config.DarkThemeID
	}
	svg, err := mcdsvg.Render(diagram, renderOpts)
	if err != nil {
		return nil, fmt.Errorf("failed to render: %w", err)
	}
	return svg, nil
}

func rulerFor(opts *CompileOptions) (textmeasure.TextRuler, error) {
	if opts.Ruler != nil {
		return opts.Ruler, nil
	}
	if !env.FontMetrics() {
		return textmeasure.NewFallbackRuler(), nil
	}
	ruler, err := textmeasure.NewRuler()
	if err != nil {
		return nil, fmt.Errorf("failed to load fonts: %w", err)
	}
	return ruler, nil
}
