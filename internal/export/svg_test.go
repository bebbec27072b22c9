package export

import (
	"image/color"
	"strings"
	"testing"

	"github.com/san-kum/magbasin/internal/basin"
	"github.com/san-kum/magbasin/internal/vecmath"
)

func TestTraceSVG(t *testing.T) {
	b := basin.Bounds{MinX: -1, MaxX: 1, MinY: -0.5, MaxY: 0.5}
	path := []vecmath.Vec3{vecmath.New(-1, 0.5, 0), vecmath.New(1, -0.5, 0)}
	magnets := []Marker{{Pos: vecmath.New(0, 0, -0.1), Color: color.RGBA{255, 0, 0, 255}}}

	svg := TraceSVG(path, magnets, b, 200, "#00ff00")

	for _, want := range []string{
		`width="200" height="100"`,
		`<circle cx="100.0" cy="50.0" r="2.0" fill="#ff0000"/>`,
		`d="M0.0,0.0 L200.0,100.0"`,
		`fill="none" stroke="#00ff00"/>`,
	} {
		if !strings.Contains(svg, want) {
			t.Errorf("svg missing %q:\n%s", want, svg)
		}
	}
	if !strings.HasSuffix(svg, "</svg>\n") {
		t.Error("svg not closed")
	}
}

func TestTraceSVG_SinglePoint(t *testing.T) {
	b := basin.Bounds{MinX: 0, MaxX: 1, MinY: 0, MaxY: 1}
	svg := TraceSVG([]vecmath.Vec3{vecmath.New(0.5, 0.5, 0)}, nil, b, 10, "#fff")
	if strings.Contains(svg, "<path") {
		t.Error("a single point should not draw a path")
	}
	if !strings.Contains(svg, `cx="5.0" cy="5.0"`) {
		t.Errorf("start ring missing:\n%s", svg)
	}
}
