package mcdthemes

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"oss.terrastruct.com/mcd/lib/color"
)

// ThemableElement builds one SVG element.
// It must be used whenever Fill, Stroke or Color holds a theme token
// (N[1-7] | B[1-6] | AA[245] | AB[45]). With an inline theme the token is replaced by its
// color, otherwise it turns into a class the theme stylesheet colors.
type ThemableElement struct {
	tag         string
	inlineTheme *Theme

	X      float64
	Y      float64
	X1     float64
	Y1     float64
	X2     float64
	Y2     float64
	Width  float64
	Height float64
	Rx     float64

	D         string
	Points    string
	Transform string

	Fill   string
	Stroke string
	Color  string

	ClassName  string
	Style      string
	Attributes string

	Content string
}

func NewThemableElement(tag string, inlineTheme *Theme) *ThemableElement {
	return &ThemableElement{
		tag:         tag,
		inlineTheme: inlineTheme,
		X:           math.MaxFloat64,
		Y:           math.MaxFloat64,
		X1:          math.MaxFloat64,
		Y1:          math.MaxFloat64,
		X2:          math.MaxFloat64,
		Y2:          math.MaxFloat64,
		Width:       math.MaxFloat64,
		Height:      math.MaxFloat64,
		Rx:          math.MaxFloat64,
		Fill:        color.Empty,
		Stroke:      color.Empty,
		Color:       color.Empty,
	}
}

func (el *ThemableElement) SetTranslate(x, y float64) {
	el.Transform = fmt.Sprintf("translate(%s %s)", FormatNumber(x), FormatNumber(y))
}

// FormatNumber prints f with at most 3 decimals and no trailing zeros.
func FormatNumber(f float64) string {
	return strconv.FormatFloat(math.Round(f*1000)/1000, 'f', -1, 64)
}

func (el *ThemableElement) Render() string {
	var out strings.Builder
	out.WriteString("<" + el.tag)

	for _, attr := range []struct {
		name string
		v    float64
	}{
		{"x", el.X},
		{"y", el.Y},
		{"x1", el.X1},
		{"y1", el.Y1},
		{"x2", el.X2},
		{"y2", el.Y2},
		{"width", el.Width},
		{"height", el.Height},
		{"rx", el.Rx},
	} {
		if attr.v != math.MaxFloat64 {
			fmt.Fprintf(&out, ` %s="%s"`, attr.name, FormatNumber(attr.v))
		}
	}

	if len(el.D) > 0 {
		fmt.Fprintf(&out, ` d="%s"`, el.D)
	}
	if len(el.Points) > 0 {
		fmt.Fprintf(&out, ` points="%s"`, el.Points)
	}
	if len(el.Transform) > 0 {
		fmt.Fprintf(&out, ` transform="%s"`, el.Transform)
	}

	class := el.ClassName
	// Theme tokens become a {property}-{token} class, anything else is set directly
	for _, prop := range []struct {
		name string
		v    string
	}{
		{"stroke", el.Stroke},
		{"fill", el.Fill},
		{"color", el.Color},
	} {
		if color.IsThemeColor(prop.v) && el.inlineTheme != nil {
			fmt.Fprintf(&out, ` %s="%s"`, prop.name, el.inlineTheme.Colors.Resolve(prop.v))
		} else if color.IsThemeColor(prop.v) {
			class += fmt.Sprintf(" %s-%s", prop.name, prop.v)
		} else if len(prop.v) > 0 {
			fmt.Fprintf(&out, ` %s="%s"`, prop.name, prop.v)
		}
	}
	class = strings.TrimSpace(class)

	if len(class) > 0 {
		fmt.Fprintf(&out, ` class="%s"`, class)
	}
	if len(el.Style) > 0 {
		fmt.Fprintf(&out, ` style="%s"`, el.Style)
	}
	if len(el.Attributes) > 0 {
		fmt.Fprintf(&out, ` %s`, el.Attributes)
	}

	if len(el.Content) > 0 {
		fmt.Fprintf(&out, ">%s</%s>", el.Content, el.tag)
		return out.String()
	}
	out.WriteString(" />")
	return out.String()
}
