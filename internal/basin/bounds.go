package basin

import (
	"fmt"
	"math"

	"github.com/san-kum/magbasin/internal/dynamo"
	"github.com/san-kum/magbasin/internal/physics"
)

// Bounds is the horizontal region of initial positions mapped onto the image.
type Bounds struct {
	MinX float64 `yaml:"min_x" json:"min_x"`
	MaxX float64 `yaml:"max_x" json:"max_x"`
	MinY float64 `yaml:"min_y" json:"min_y"`
	MaxY float64 `yaml:"max_y" json:"max_y"`
}

func (b Bounds) Width() float64  { return b.MaxX - b.MinX }
func (b Bounds) Height() float64 { return b.MaxY - b.MinY }

// Center returns the midpoint of the region.
func (b Bounds) Center() (float64, float64) {
	return (b.MinX + b.MaxX) / 2, (b.MinY + b.MaxY) / 2
}

// Contains reports whether (x, y) lies inside the closed region.
func (b Bounds) Contains(x, y float64) bool {
	return x >= b.MinX && x <= b.MaxX && y >= b.MinY && y <= b.MaxY
}

// Scale grows (or shrinks) the region by factor about its centre.
func (b Bounds) Scale(factor float64) Bounds {
	cx, cy := b.Center()
	hw, hh := b.Width()/2*factor, b.Height()/2*factor
	return Bounds{MinX: cx - hw, MaxX: cx + hw, MinY: cy - hh, MaxY: cy + hh}
}

// Validate checks that the region is finite and non-empty.
func (b Bounds) Validate() error {
	for _, v := range []float64{b.MinX, b.MaxX, b.MinY, b.MaxY} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return dynamo.Configf("render.bounds", "must be finite, got %v", b)
		}
	}
	if !(b.MaxX > b.MinX) || !(b.MaxY > b.MinY) {
		return dynamo.Configf("render.bounds", "empty region %v", b)
	}
	return nil
}

func (b Bounds) String() string {
	return fmt.Sprintf("[%.3f, %.3f] x [%.3f, %.3f]", b.MinX, b.MaxX, b.MinY, b.MaxY)
}

// SuggestBounds frames the magnets and the point below the suspension,
// padded by padding times the extent on each side (one unit when the extent
// is zero). In Rigour mode the region is clipped to the circle of start
// points no higher than heightLimit*L above the swing's lowest point.
func SuggestBounds(sys *physics.System, padding, heightLimit float64) Bounds {
	s := sys.Pendulum().Suspension
	b := Bounds{MinX: s[0], MaxX: s[0], MinY: s[1], MaxY: s[1]}
	for _, m := range sys.Magnets() {
		b.MinX = math.Min(b.MinX, m.Position[0])
		b.MaxX = math.Max(b.MaxX, m.Position[0])
		b.MinY = math.Min(b.MinY, m.Position[1])
		b.MaxY = math.Max(b.MaxY, m.Position[1])
	}

	pad := func(extent float64) float64 {
		if extent == 0 {
			return 1
		}
		return extent * padding
	}
	px, py := pad(b.Width()), pad(b.Height())
	b = Bounds{MinX: b.MinX - px, MaxX: b.MaxX + px, MinY: b.MinY - py, MaxY: b.MaxY + py}

	if sys.Mode() == physics.Rigour {
		l := sys.RodLength()
		vertical := l - heightLimit*l
		if vertical > 0 && vertical < l {
			r := math.Sqrt(l*l - vertical*vertical)
			b.MinX = math.Max(b.MinX, s[0]-r)
			b.MaxX = math.Min(b.MaxX, s[0]+r)
			b.MinY = math.Max(b.MinY, s[1]-r)
			b.MaxY = math.Min(b.MaxY, s[1]+r)
		}
	}

	dynamo.Logger().Debug("suggested bounds", "bounds", b.String())
	return b
}
