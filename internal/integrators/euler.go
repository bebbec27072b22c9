package integrators

import "github.com/san-kum/magbasin/internal/dynamo"

// Euler is the explicit first-order method. It is only useful as a baseline.
type Euler struct{}

func NewEuler() *Euler {
	return &Euler{}
}

func (e *Euler) Step(dyn dynamo.System, x dynamo.State, dt float64) dynamo.State {
	return x.Add(dyn.Derive(x).Scale(dt))
}
