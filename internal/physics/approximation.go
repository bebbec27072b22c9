package physics

import (
	"math"

	"github.com/san-kum/magbasin/internal/dynamo"
	"github.com/san-kum/magbasin/internal/vecmath"
)

// model is the behaviour that differs between the two approximations.
type model interface {
	// restoring is the gravity (or rod) force acting on the bob at pos.
	restoring(sys *System, pos vecmath.Vec3) vecmath.Vec3
	restoringPotential(sys *System, pos vecmath.Vec3) float64
	// accelerate turns the unconstrained acceleration into the one the bob
	// actually experiences.
	accelerate(sys *System, x dynamo.State, acc vecmath.Vec3) vecmath.Vec3
	constrain(sys *System, x dynamo.State) dynamo.State
	// lift maps a horizontal point to a bob position, false when unreachable.
	lift(sys *System, x, y float64) (vecmath.Vec3, bool)
}

func modelFor(a Approximation) model {
	if a == Rigour {
		return rigour{}
	}
	return smallAngle{}
}

type smallAngle struct{}

func (smallAngle) restoring(sys *System, pos vecmath.Vec3) vecmath.Vec3 {
	s := sys.pendulum.Suspension
	return vecmath.New(s[0]-pos[0], s[1]-pos[1], 0).Mul(sys.stiffness)
}

func (smallAngle) restoringPotential(sys *System, pos vecmath.Vec3) float64 {
	return 0.5 * sys.stiffness * vecmath.HorizontalDistSq(pos, sys.pendulum.Suspension)
}

func (smallAngle) accelerate(_ *System, _ dynamo.State, acc vecmath.Vec3) vecmath.Vec3 {
	return vecmath.Horizontal(acc)
}

func (smallAngle) constrain(_ *System, x dynamo.State) dynamo.State { return x }

func (smallAngle) lift(sys *System, x, y float64) (vecmath.Vec3, bool) {
	return vecmath.New(x, y, sys.lowest), true
}

type rigour struct{}

func (rigour) restoring(sys *System, _ vecmath.Vec3) vecmath.Vec3 {
	return vecmath.New(0, 0, -sys.pendulum.Mass*sys.params.Gravity)
}

func (rigour) restoringPotential(sys *System, pos vecmath.Vec3) float64 {
	return sys.pendulum.Mass * sys.params.Gravity * pos[2]
}

// The radial part of the applied force is absorbed by rod tension; what is
// left is the tangential acceleration plus the centripetal term that keeps
// the bob on the sphere.
func (rigour) accelerate(sys *System, x dynamo.State, acc vecmath.Vec3) vecmath.Vec3 {
	rod := x.Pos.Sub(sys.pendulum.Suspension)
	r := rod.Len()
	if r < 1e-6 {
		return acc
	}
	n := rod.Mul(1 / r)
	tangential := vecmath.Tangential(acc, n)
	return tangential.Sub(n.Mul(vecmath.LenSq(x.Vel) / r))
}

func (rigour) constrain(sys *System, x dynamo.State) dynamo.State {
	s := sys.pendulum.Suspension
	pos := vecmath.OntoSphere(x.Pos, s, sys.pendulum.RodLength)
	n, ok := vecmath.Unit(pos.Sub(s))
	if !ok {
		return dynamo.State{Pos: pos, Vel: x.Vel}
	}
	return dynamo.State{Pos: pos, Vel: vecmath.Tangential(x.Vel, n)}
}

func (rigour) lift(sys *System, x, y float64) (vecmath.Vec3, bool) {
	s := sys.pendulum.Suspension
	l := sys.pendulum.RodLength
	dx, dy := x-s[0], y-s[1]
	r2 := dx*dx + dy*dy
	if r2 > l*l {
		return vecmath.Zero, false
	}
	return vecmath.New(x, y, s[2]-math.Sqrt(l*l-r2)), true
}
