// Package physics models a pendulum bob swinging over stationary point
// magnets.
//
// A [System] combines a [Pendulum], its [Magnet]s and the global [Params].
// It implements [dynamo.System] (Derive), [dynamo.Hamiltonian] (Energy) and
// [dynamo.Constrainer] (Constrain), so any integrator can advance it.
//
// # Approximations
//
// [SmallAngle] treats the swing as flat: the rod becomes a linear restoring
// force toward the suspension's vertical and the bob keeps a fixed height.
// [Rigour] keeps the bob on the sphere of radius RodLength, projecting out
// radial forces in Derive and snapping position and velocity back onto the
// sphere in Constrain.
//
// # Forces
//
// Each magnet pulls (or pushes) along the line joining it to the bob with
// magnitude strength/d^ForceExponent. Friction is linear in velocity.
package physics
