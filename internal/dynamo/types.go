package dynamo

import (
	"fmt"
	"math"

	"github.com/san-kum/magbasin/internal/vecmath"
)

// State is the instantaneous state of the pendulum bob. It is a value type:
// integrators return new states instead of mutating their input.
type State struct {
	Pos vecmath.Vec3
	Vel vecmath.Vec3
}

// IsValid reports whether position and velocity are finite.
func (s State) IsValid() bool {
	return vecmath.IsFinite(s.Pos) && vecmath.IsFinite(s.Vel)
}

// Add returns s + o component-wise.
func (s State) Add(o State) State {
	return State{Pos: s.Pos.Add(o.Pos), Vel: s.Vel.Add(o.Vel)}
}

// Scale returns s * f.
func (s State) Scale(f float64) State {
	return State{Pos: s.Pos.Mul(f), Vel: s.Vel.Mul(f)}
}

// Sub returns s - o.
func (s State) Sub(o State) State {
	return State{Pos: s.Pos.Sub(o.Pos), Vel: s.Vel.Sub(o.Vel)}
}

// Norm is the Euclidean norm over all six components.
func (s State) Norm() float64 {
	return math.Sqrt(vecmath.LenSq(s.Pos) + vecmath.LenSq(s.Vel))
}

func (s State) String() string {
	return fmt.Sprintf("pos=(%.4f, %.4f, %.4f) vel=(%.4f, %.4f, %.4f)",
		s.Pos[0], s.Pos[1], s.Pos[2], s.Vel[0], s.Vel[1], s.Vel[2])
}

// System is a second-order ODE dX/dt = f(X). Derive returns the time
// derivative of x: velocity in Pos and acceleration in Vel. Implementations
// must be safe for concurrent use.
type System interface {
	Derive(x State) State
}

// Hamiltonian systems expose their total mechanical energy.
type Hamiltonian interface {
	Energy(x State) float64
}

// Constrainer corrects a state after each integration step.
type Constrainer interface {
	Constrain(x State) State
}

// Integrator advances a state by one step of size dt. Implementations must
// not keep per-call state so a single value can be shared by all workers.
type Integrator interface {
	Step(dyn System, x State, dt float64) State
}

// AdaptiveIntegrator additionally returns an error-controlled step size
// suggestion for the next step.
type AdaptiveIntegrator interface {
	Integrator
	StepAdaptive(dyn System, x State, dt, tol float64) (State, float64, error)
}
