package metrics

import (
	"math"

	"github.com/san-kum/magbasin/internal/dynamo"
	"github.com/san-kum/magbasin/internal/vecmath"
)

// ConstraintDrift records the largest distance of the bob from the rod
// sphere and the largest radial speed. Both stay near zero in Rigour mode.
type ConstraintDrift struct {
	name       string
	suspension vecmath.Vec3
	rod        float64
	maxRadius  float64
	maxRadial  float64
	samples    int
}

func NewConstraintDrift(suspension vecmath.Vec3, rod float64) *ConstraintDrift {
	return &ConstraintDrift{
		name:       "constraint_drift",
		suspension: suspension,
		rod:        rod,
	}
}

func (c *ConstraintDrift) Name() string { return c.name }

func (c *ConstraintDrift) OnStep(_ int, x dynamo.State) {
	c.samples++
	r := x.Pos.Sub(c.suspension)
	c.maxRadius = math.Max(c.maxRadius, math.Abs(r.Len()-c.rod))
	if n, ok := vecmath.Unit(r); ok {
		c.maxRadial = math.Max(c.maxRadial, math.Abs(x.Vel.Dot(n)))
	}
}

// Value is the largest |‖pos - suspension‖ - L| seen.
func (c *ConstraintDrift) Value() float64 { return c.maxRadius }

// RadialSpeed is the largest |v · n̂| seen.
func (c *ConstraintDrift) RadialSpeed() float64 { return c.maxRadial }

func (c *ConstraintDrift) Reset() {
	c.maxRadius = 0
	c.maxRadial = 0
	c.samples = 0
}
