// mcdsvg renders a laid out MCD diagram to SVG.
package mcdsvg

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"oss.terrastruct.com/util-go/go2"

	"oss.terrastruct.com/mcd/lib/color"
	"oss.terrastruct.com/mcd/lib/geo"
	"oss.terrastruct.com/mcd/lib/shape"
	"oss.terrastruct.com/mcd/lib/svg"
	"oss.terrastruct.com/mcd/lib/svg/style"
	"oss.terrastruct.com/mcd/lib/version"
	"oss.terrastruct.com/mcd/mcdrenderers/mcdfonts"
	"oss.terrastruct.com/mcd/mcdtarget"
	"oss.terrastruct.com/mcd/mcdthemes"
	"oss.terrastruct.com/mcd/mcdthemes/mcdthemescatalog"
)

const (
	DEFAULT_PADDING = 100

	STROKE_WIDTH    = 2
	LINE_WIDTH      = 2
	CONNECTOR_WIDTH = 1
	// CONNECTOR_DASH is the dash size of attribute box connectors, in stroke widths.
	CONNECTOR_DASH = 4

	FONT_SIZE             = mcdfonts.FONT_SIZE_M
	CARDINALITY_FONT_SIZE = mcdfonts.FONT_SIZE_S

	// TEXT_INSET is the distance between a row's text and the left of its box.
	TEXT_INSET = 10
)

type RenderOpts struct {
	Pad *int64
	// Theme is drawn instead of the catalog theme ThemeID names.
	Theme              *mcdthemes.Theme
	ThemeID            *int64
	DarkThemeID        *int64
	ThemeOverrides     *mcdtarget.ThemeOverrides
	DarkThemeOverrides *mcdtarget.ThemeOverrides

	// MasterID is used instead of the diagram's hash to scope the stylesheet.
	MasterID    string
	NoXMLTag    *bool
	OmitVersion *bool
}

var DEFAULT_DARK_THEME *int64 = nil // no theme selected

func dimensions(diagram *mcdtarget.Diagram, pad int) (left, top, width, height int) {
	tl, br := diagram.BoundingBox()
	left = int(tl.X) - pad
	top = int(tl.Y) - pad
	width = int(br.X-tl.X) + pad*2
	height = int(br.Y-tl.Y) + pad*2
	return left, top, width, height
}

// resolveTheme returns the theme with the given id and overrides applied.
func resolveTheme(id int64, overrides *mcdtarget.ThemeOverrides) (*mcdthemes.Theme, error) {
	theme := mcdthemescatalog.Find(id)
	if theme == (mcdthemes.Theme{}) {
		return nil, fmt.Errorf("theme %d not found", id)
	}
	if err := theme.ApplyOverrides(overrides); err != nil {
		return nil, err
	}
	return &theme, nil
}

func Render(diagram *mcdtarget.Diagram, opts *RenderOpts) ([]byte, error) {
	if opts == nil {
		opts = &RenderOpts{}
	}
	pad := DEFAULT_PADDING
	if opts.Pad != nil {
		pad = int(*opts.Pad)
	}

	var theme *mcdthemes.Theme
	if opts.Theme != nil {
		theme = go2.Pointer(*opts.Theme)
		if err := theme.ApplyOverrides(opts.ThemeOverrides); err != nil {
			return nil, err
		}
	} else {
		themeID := mcdthemescatalog.NeutralDefault.ID
		if opts.ThemeID != nil {
			themeID = *opts.ThemeID
		}
		var err error
		theme, err = resolveTheme(themeID, opts.ThemeOverrides)
		if err != nil {
			return nil, err
		}
	}

	var darkTheme *mcdthemes.Theme
	darkThemeID := DEFAULT_DARK_THEME
	if opts.DarkThemeID != nil {
		darkThemeID = opts.DarkThemeID
	}
	if darkThemeID != nil {
		var err error
		darkTheme, err = resolveTheme(*darkThemeID, opts.DarkThemeOverrides)
		if err != nil {
			return nil, err
		}
	}

	diagramHash, err := diagram.HashID()
	if err != nil {
		return nil, err
	}
	if opts.MasterID != "" {
		diagramHash = opts.MasterID
	}

	fontFamily := mcdfonts.GoSans
	if diagram.FontFamily != nil {
		fontFamily = *diagram.FontFamily
	}

	// Colors are inlined unless a dark theme has to switch them through the stylesheet
	var inlineTheme *mcdthemes.Theme
	if darkTheme == nil {
		inlineTheme = theme
	}
	r := &renderer{
		inlineTheme: inlineTheme,
		headerText:  headerTextColor(theme),
	}

	// SVG has no z-index, later elements are drawn on top:
	// lines, then entities, then association nodes and labels, then attribute boxes.
	buf := &bytes.Buffer{}
	for _, a := range diagram.Associations {
		r.drawLines(buf, a)
	}
	for _, e := range diagram.Entities {
		r.drawEntity(buf, e)
	}
	for _, a := range diagram.Associations {
		r.drawNode(buf, a)
	}
	for _, a := range diagram.Associations {
		if a.AttributeBox != nil {
			r.drawAttributeBox(buf, *a.AttributeBox)
		}
	}

	left, top, w, h := dimensions(diagram, pad)

	backgroundEl := mcdthemes.NewThemableElement("rect", inlineTheme)
	backgroundEl.X = float64(left)
	backgroundEl.Y = float64(top)
	backgroundEl.Width = float64(w)
	backgroundEl.Height = float64(h)
	backgroundEl.Fill = color.N7
	backgroundEl.ClassName = "background"

	upperBuf := &bytes.Buffer{}
	EmbedFonts(upperBuf, diagramHash, buf.String(), fontFamily)
	if darkTheme != nil {
		themeStylesheet := ThemeCSS(diagramHash, theme, darkTheme)
		fmt.Fprintf(upperBuf, `<style type="text/css"><![CDATA[%s]]></style>`, themeStylesheet)
	}

	xmlTag := ""
	if opts.NoXMLTag == nil || !*opts.NoXMLTag {
		xmlTag = `<?xml version="1.0" encoding="utf-8"?>`
	}
	dataVersion := ""
	if opts.OmitVersion == nil || !*opts.OmitVersion {
		dataVersion = fmt.Sprintf(` data-mcd-version="%s"`, version.Version)
	}

	docRendered := fmt.Sprintf(`%s<svg xmlns="http://www.w3.org/2000/svg"%s class="%s mcd-svg" width="%d" height="%d" viewBox="%d %d %d %d">%s%s%s</svg>`,
		xmlTag,
		dataVersion,
		diagramHash,
		w, h, left, top, w, h,
		upperBuf.String(),
		backgroundEl.Render(),
		buf.String(),
	)
	return []byte(docRendered), nil
}

type renderer struct {
	inlineTheme *mcdthemes.Theme
	// headerText is the token header titles are written with, readable on B4.
	headerText string
}

// headerTextColor picks the neutral that stays readable on the header fill.
func headerTextColor(theme *mcdthemes.Theme) string {
	lc, err := color.LuminanceCategory(theme.Colors.B4)
	if err != nil {
		return color.N1
	}
	if theme.IsDark() {
		// neutrals are inverted
		if lc == "bright" || lc == "normal" {
			return color.N7
		}
		return color.N1
	}
	if lc == "dark" || lc == "darker" {
		return color.N7
	}
	return color.N1
}

func (r *renderer) text(x, y float64, s, anchor string, fontSize int, fill, className string) string {
	textEl := mcdthemes.NewThemableElement("text", r.inlineTheme)
	textEl.X = x
	textEl.Y = y + float64(fontSize)/3
	textEl.Fill = fill
	textEl.ClassName = className
	textEl.Style = style.TextStyle(anchor, fontSize, false)
	textEl.Content = svg.EscapeText(s)
	return textEl.Render()
}

func (r *renderer) drawLines(w io.Writer, a mcdtarget.Association) {
	fmt.Fprintf(w, `<g class="association-lines" id="%s">`, svg.EscapeText(a.ID))
	for _, l := range a.Lines {
		pathEl := mcdthemes.NewThemableElement("path", r.inlineTheme)
		pathEl.D = svg.PolylineData(l.From, l.To)
		pathEl.Fill = color.None
		pathEl.Stroke = color.B1
		pathEl.ClassName = "connection"
		pathEl.Style = style.StrokeStyle(LINE_WIDTH, 0)
		fmt.Fprint(w, pathEl.Render())
	}
	if a.AttributeBox != nil {
		anchorEl := mcdthemes.NewThemableElement("path", r.inlineTheme)
		anchorEl.D = svg.PolylineData(a.AttributeBox.AnchorLine.From, a.AttributeBox.AnchorLine.To)
		anchorEl.Fill = color.None
		anchorEl.Stroke = color.AA2
		anchorEl.ClassName = "anchor"
		anchorEl.Style = style.StrokeStyle(CONNECTOR_WIDTH, CONNECTOR_DASH)
		fmt.Fprint(w, anchorEl.Render())
	}
	fmt.Fprint(w, `</g>`)
}

func (r *renderer) drawEntity(w io.Writer, e mcdtarget.Entity) {
	fmt.Fprintf(w, `<g class="entity" id="%s">`, svg.EscapeText(e.ID))
	r.drawTable(w, e.Box(), e.Name, e.HeaderHeight, e.RowHeight, e.Attributes, color.B4, color.N7, color.B1)
	fmt.Fprint(w, `</g>`)
}

func (r *renderer) drawAttributeBox(w io.Writer, b mcdtarget.AttributeBox) {
	fmt.Fprint(w, `<g class="attribute-box">`)
	r.drawTable(w, b.Box(), b.Name, b.HeaderHeight, b.RowHeight, b.Attributes, color.AB4, color.AB5, color.AA2)
	fmt.Fprint(w, `</g>`)
}

// drawTable draws a box headed by title with one row per attribute. Primary keys are bold
// and underlined.
func (r *renderer) drawTable(w io.Writer, box geo.Box, title string, headerHeight, rowHeight float64, attrs []mcdtarget.Attribute, headerFill, bodyFill, stroke string) {
	rectEl := mcdthemes.NewThemableElement("rect", r.inlineTheme)
	rectEl.X, rectEl.Y = box.TopLeft.X, box.TopLeft.Y
	rectEl.Width, rectEl.Height = box.Width, box.Height
	rectEl.Fill = bodyFill
	rectEl.Stroke = stroke
	rectEl.ClassName = "shape"
	rectEl.Style = style.StrokeStyle(STROKE_WIDTH, 0)
	fmt.Fprint(w, rectEl.Render())

	headerEl := mcdthemes.NewThemableElement("rect", r.inlineTheme)
	headerEl.X, headerEl.Y = box.TopLeft.X, box.TopLeft.Y
	headerEl.Width, headerEl.Height = box.Width, headerHeight
	headerEl.Fill = headerFill
	headerEl.Stroke = stroke
	if darker, err := color.Darken(headerFill); err == nil {
		headerEl.Stroke = darker
	}
	headerEl.ClassName = "class_header"
	headerEl.Style = style.StrokeStyle(STROKE_WIDTH, 0)
	fmt.Fprint(w, headerEl.Render())

	fmt.Fprint(w, r.text(
		box.Center().X, box.TopLeft.Y+headerHeight/2,
		title, "middle", FONT_SIZE, r.headerText, "text-bold",
	))

	for i, attr := range attrs {
		className := "text"
		if attr.IsPK {
			className = "text-bold text-underline"
		}
		rowTop := box.TopLeft.Y + headerHeight + float64(i)*rowHeight
		fmt.Fprint(w, r.text(
			box.TopLeft.X+TEXT_INSET, rowTop+rowHeight/2,
			attr.Name, "start", FONT_SIZE, color.N1, className,
		))
	}
}

// drawNode draws the association's shape, its label and the cardinalities of its legs.
func (r *renderer) drawNode(w io.Writer, a mcdtarget.Association) {
	fmt.Fprintf(w, `<g class="association" id="%s-node">`, svg.EscapeText(a.ID))
	if len(a.ShapePoints) > 0 {
		shapeEl := mcdthemes.NewThemableElement("path", r.inlineTheme)
		shapeEl.D = svg.PolygonData(a.ShapePoints...)
		shapeEl.Fill = color.B5
		shapeEl.Stroke = color.B1
		shapeEl.ClassName = "shape " + strings.ToLower(a.ShapeType)
		shapeEl.Style = style.StrokeStyle(STROKE_WIDTH, 0)
		fmt.Fprint(w, shapeEl.Render())
	} else if a.Label != "" {
		// nodeless labels sit on their line and mask it
		maskEl := mcdthemes.NewThemableElement("rect", r.inlineTheme)
		box := geo.NewBoxAt(a.LabelPoint, shape.BoxWidth(a.Label), shape.BOX_HEIGHT)
		maskEl.X, maskEl.Y = box.TopLeft.X, box.TopLeft.Y
		maskEl.Width, maskEl.Height = box.Width, box.Height
		maskEl.Fill = color.N7
		maskEl.ClassName = "label-mask"
		fmt.Fprint(w, maskEl.Render())
	}
	if a.Label != "" {
		fmt.Fprint(w, r.text(a.LabelPoint.X, a.LabelPoint.Y, a.Label, "middle", FONT_SIZE, color.N1, "text"))
	}
	for i, p := range a.CardinalityPoints {
		if i >= len(a.Cardinalities) || a.Cardinalities[i] == "" {
			continue
		}
		fmt.Fprint(w, r.text(p.X, p.Y, a.Cardinalities[i], "middle", CARDINALITY_FONT_SIZE, color.AA2, "text cardinality"))
	}
	fmt.Fprint(w, `</g>`)
}

// appendOnTrigger writes newContent to buf when source contains any of triggers.
func appendOnTrigger(buf *bytes.Buffer, source string, triggers []string, newContent string) {
	for _, trigger := range triggers {
		if strings.Contains(source, trigger) {
			fmt.Fprint(buf, newContent)
			break
		}
	}
}

// EmbedFonts declares the faces used in source as data URLs, so the SVG renders the same
// without the fonts installed.
func EmbedFonts(buf *bytes.Buffer, diagramHash, source string, fontFamily mcdfonts.FontFamily) {
	fmt.Fprint(buf, `<style type="text/css"><![CDATA[`)

	regular := fontFamily.Font(0, mcdfonts.FONT_STYLE_REGULAR)
	bold := fontFamily.Font(0, mcdfonts.FONT_STYLE_BOLD)
	if _, ok := mcdfonts.FontEncodings[bold]; !ok {
		bold = regular
	}

	appendOnTrigger(
		buf,
		source,
		[]string{
			`class="text"`,
			`class="text `,
		},
		fmt.Sprintf(`
.%s .text {
	font-family: "%s-regular";
}
@font-face {
	font-family: %s-regular;
	src: url("%s");
}`,
			diagramHash,
			fontFamily.CSSFamily(),
			fontFamily.CSSFamily(),
			mcdfonts.FontEncodings[regular],
		),
	)

	appendOnTrigger(
		buf,
		source,
		[]string{
			`text-bold`,
		},
		fmt.Sprintf(`
.%s .text-bold {
	font-family: "%s-bold";
}
@font-face {
	font-family: %s-bold;
	src: url("%s");
}`,
			diagramHash,
			fontFamily.CSSFamily(),
			fontFamily.CSSFamily(),
			mcdfonts.FontEncodings[bold],
		),
	)

	appendOnTrigger(
		buf,
		source,
		[]string{
			`text-underline`,
		},
		`
.text-underline {
	text-decoration: underline;
}`,
	)

	fmt.Fprint(buf, `]]></style>`)
}

var themeTokens = []string{
	color.N1, color.N2, color.N3, color.N4, color.N5, color.N6, color.N7,
	color.B1, color.B2, color.B3, color.B4, color.B5, color.B6,
	color.AA2, color.AA4, color.AA5,
	color.AB4, color.AB5,
}

// ThemeCSS is the stylesheet coloring the {property}-{token} classes of a diagram rendered
// without an inline theme. The dark theme applies when the viewer prefers a dark scheme.
func ThemeCSS(diagramHash string, theme, darkTheme *mcdthemes.Theme) string {
	out := singleThemeRulesets(diagramHash, theme)
	if darkTheme != nil {
		out += fmt.Sprintf("@media screen and (prefers-color-scheme:dark){%s}", singleThemeRulesets(diagramHash, darkTheme))
	}
	return out
}

func singleThemeRulesets(diagramHash string, theme *mcdthemes.Theme) string {
	var out strings.Builder
	for _, property := range []string{"fill", "stroke", "color"} {
		for _, token := range themeTokens {
			fmt.Fprintf(&out, ".%s .%s-%s{%s:%s;}", diagramHash, property, token, property, theme.Colors.Resolve(token))
		}
	}
	return out.String()
}
