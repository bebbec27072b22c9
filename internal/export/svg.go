// Package export writes vector drawings of traced runs.
package export

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/san-kum/magbasin/internal/basin"
	"github.com/san-kum/magbasin/internal/vecmath"
)

// Marker is a magnet drawn as a filled circle.
type Marker struct {
	Pos   vecmath.Vec3
	Color color.RGBA
}

// TraceSVG draws the xy projection of path inside b, seen from above, with
// the magnets as coloured dots and the start as a hollow ring. The image is
// width pixels wide and keeps b's aspect ratio.
func TraceSVG(path []vecmath.Vec3, magnets []Marker, b basin.Bounds, width int, stroke string) string {
	height := int(float64(width) * b.Height() / b.Width())
	toPx := func(p vecmath.Vec3) (float64, float64) {
		x := (p[0] - b.MinX) / b.Width() * float64(width)
		y := (b.MaxY - p[1]) / b.Height() * float64(height)
		return x, y
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
`, width, height, width, height)

	dot := float64(width) / 100
	for _, m := range magnets {
		x, y := toPx(m.Pos)
		fill := "#ffffff"
		if c, ok := colorful.MakeColor(m.Color); ok {
			fill = c.Hex()
		}
		fmt.Fprintf(&sb, `<circle cx="%.1f" cy="%.1f" r="%.1f" fill="%s"/>
`, x, y, dot, fill)
	}

	if len(path) > 1 {
		fmt.Fprintf(&sb, `<path fill="none" stroke="%s" stroke-width="1.5" d="`, stroke)
		for i, p := range path {
			x, y := toPx(p)
			if i == 0 {
				fmt.Fprintf(&sb, "M%.1f,%.1f", x, y)
			} else {
				fmt.Fprintf(&sb, " L%.1f,%.1f", x, y)
			}
		}
		sb.WriteString("\"/>\n")
	}
	if len(path) > 0 {
		x, y := toPx(path[0])
		fmt.Fprintf(&sb, `<circle cx="%.1f" cy="%.1f" r="%.1f" fill="none" stroke="%s"/>
`, x, y, dot, stroke)
	}

	sb.WriteString("</svg>\n")
	return sb.String()
}
