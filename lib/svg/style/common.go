package style

import (
	"fmt"

	"oss.terrastruct.com/mcd/lib/svg"
)

// StrokeStyle is the inline style of an outline or a line. A non-zero dashGap dashes it.
func StrokeStyle(strokeWidth int, dashGap float64) string {
	out := fmt.Sprintf(`stroke-width:%d;`, strokeWidth)
	if dashGap != 0 {
		dashSize, gapSize := svg.GetStrokeDashAttributes(float64(strokeWidth), dashGap)
		out += fmt.Sprintf(`stroke-dasharray:%f,%f;`, dashSize, gapSize)
	}
	return out
}

// TextStyle is the inline style of a label.
func TextStyle(anchor string, fontSize int, bold bool) string {
	out := fmt.Sprintf(`text-anchor:%s;font-size:%dpx;`, anchor, fontSize)
	if bold {
		out += `font-weight:bold;`
	}
	return out
}
