package metrics

import "github.com/san-kum/magbasin/internal/dynamo"

// Metric accumulates a scalar over the states of one trajectory. Metrics
// satisfy sim.Observer, so they can be attached to a traced run directly.
type Metric interface {
	Name() string
	OnStep(step int, x dynamo.State)
	Value() float64
	Reset()
}
