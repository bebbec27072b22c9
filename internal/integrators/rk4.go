package integrators

import "github.com/san-kum/magbasin/internal/dynamo"

// RK4 is the classical fixed-step fourth-order Runge-Kutta scheme. It calls
// Derive exactly four times per step and keeps no state between calls.
type RK4 struct{}

func NewRK4() *RK4 {
	return &RK4{}
}

func (r *RK4) Step(dyn dynamo.System, x dynamo.State, dt float64) dynamo.State {
	k1 := dyn.Derive(x)
	k2 := dyn.Derive(x.Add(k1.Scale(dt * 0.5)))
	k3 := dyn.Derive(x.Add(k2.Scale(dt * 0.5)))
	k4 := dyn.Derive(x.Add(k3.Scale(dt)))

	dt6 := dt / 6.0
	sum := k1.Add(k2.Scale(2)).Add(k3.Scale(2)).Add(k4)
	return x.Add(sum.Scale(dt6))
}
