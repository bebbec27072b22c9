// Package sim runs one pendulum trajectory per initial condition.
//
// A [Scene] bundles everything a render shares read-only: the physical
// system, the integrator, the escape thresholds and the pixel-to-position
// mapping. A [Simulator] drives a single trajectory through
// integrate → constrain → capture test until the bob is captured, leaves the
// escape region, goes non-finite, or the step budget runs out.
package sim
