// Package dynamo provides core simulation primitives shared by the physics,
// integrator and rendering packages.
//
//   - [State]: bob position and velocity as value-type 3D vectors
//   - [System]: second-order ODE (dX/dt = f(X))
//   - [Integrator]: fixed-step numerical integrator interface
//   - [Constrainer]: post-step state correction (rigid rod)
//   - [ParallelFor]: bounded data-parallel loop used by the renderer
//
// # Example
//
//	sys, _ := physics.NewSystem(pendulum, magnets, physics.DefaultParams())
//	x := dynamo.State{Pos: start}
//	x = integrators.NewRK4().Step(sys, x, 0.01)
//	x = sys.Constrain(x)
//
// # Thread Safety
//
// Systems and integrators are immutable after construction and may be shared
// by any number of goroutines. States are values and are never shared.
package dynamo
