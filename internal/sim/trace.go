package sim

import (
	"errors"
	"fmt"

	"github.com/san-kum/magbasin/internal/dynamo"
	"github.com/san-kum/magbasin/internal/vecmath"
)

// ErrUnreachable is returned by Trace for start points the bob cannot reach.
var ErrUnreachable = errors.New("sim: start point is outside the rod's reach")

// Trajectory is the in-memory record of one traced run. Energy[k] and
// Positions[k] belong to the state after k steps.
type Trajectory struct {
	Start     vecmath.Vec3
	Result    PixelResult
	Energy    []float64
	Positions []vecmath.Vec3
	Final     dynamo.State
}

// Time returns the simulated duration.
func (t *Trajectory) Time(dt float64) float64 { return float64(len(t.Energy)-1) * dt }

// Trace releases the bob from rest above (x, y) and records every state's
// energy and position. A non-finite state ends the trace with a
// *dynamo.SimulationError wrapping dynamo.ErrUnstable; the partial
// trajectory is returned along with it.
func (s *Simulator) Trace(x, y float64) (*Trajectory, error) {
	sys := s.scene.sys
	start, ok := sys.Lift(x, y)
	if !ok {
		return nil, fmt.Errorf("trace (%g, %g): %w", x, y, ErrUnreachable)
	}

	tr := &Trajectory{Start: start}
	rec := ObserverFunc(func(_ int, st dynamo.State) {
		tr.Energy = append(tr.Energy, sys.Energy(st))
		tr.Positions = append(tr.Positions, st.Pos)
		tr.Final = st
	})

	traced := &Simulator{scene: s.scene, observers: append(append([]Observer(nil), s.observers...), rec)}
	tr.Result = traced.Run(start)

	if tr.Result.Outcome == OutcomeUnstable {
		return tr, &dynamo.SimulationError{
			Step:    tr.Result.Steps,
			Time:    float64(tr.Result.Steps) * s.scene.params.TimeStep,
			State:   tr.Final,
			Wrapped: dynamo.ErrUnstable,
		}
	}
	return tr, nil
}
