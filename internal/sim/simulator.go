package sim

import (
	"github.com/san-kum/magbasin/internal/dynamo"
	"github.com/san-kum/magbasin/internal/vecmath"
)

// Observer is notified of every state a trajectory passes through, starting
// with step 0.
type Observer interface {
	OnStep(step int, x dynamo.State)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(step int, x dynamo.State)

func (f ObserverFunc) OnStep(step int, x dynamo.State) { f(step, x) }

// Simulator runs trajectories in a Scene. A Simulator without observers is
// safe for concurrent use; observers must not be added while it runs.
type Simulator struct {
	scene     *Scene
	observers []Observer
}

func New(scene *Scene) *Simulator {
	return &Simulator{scene: scene}
}

func (s *Simulator) AddObserver(o Observer) { s.observers = append(s.observers, o) }
func (s *Simulator) Scene() *Scene          { return s.scene }

// Pixel simulates the start point of pixel (px, py) in a w×h image.
func (s *Simulator) Pixel(px, py, w, h int) PixelResult {
	x, y := s.scene.PixelPoint(px, py, w, h)
	pos, ok := s.scene.sys.Lift(x, y)
	if !ok {
		return PixelResult{Magnet: -1, Outcome: OutcomeUnreachable}
	}
	return s.Run(pos)
}

// Run releases the bob from rest at start.
func (s *Simulator) Run(start vecmath.Vec3) PixelResult {
	return s.Simulate(dynamo.State{Pos: start})
}

// Simulate integrates from x0 until the trajectory ends. The result only
// depends on x0 and the scene.
func (s *Simulator) Simulate(x0 dynamo.State) PixelResult {
	sc := s.scene
	sys, p := sc.sys, sc.params

	x := sys.Constrain(x0)
	if !x.IsValid() {
		return PixelResult{Magnet: -1, Outcome: OutcomeUnstable}
	}
	s.notify(0, x)
	if i, ok := sc.detector.Check(x); ok {
		return PixelResult{Magnet: i, Outcome: OutcomeCaptured}
	}

	for step := 1; step <= p.MaxSteps; step++ {
		x = sys.Constrain(sc.integrator.Step(sys, x, p.TimeStep))
		if !x.IsValid() {
			return PixelResult{Magnet: -1, Steps: step, Outcome: OutcomeUnstable}
		}
		s.notify(step, x)

		if sc.escaped(x.Pos[0], x.Pos[1]) {
			return PixelResult{Magnet: -1, Steps: step, Outcome: OutcomeEscaped}
		}
		if step%p.CheckInterval != 0 {
			continue
		}
		if i, ok := sc.detector.Check(x); ok {
			return PixelResult{Magnet: i, Steps: step, Outcome: OutcomeCaptured}
		}
	}
	return PixelResult{Magnet: -1, Steps: p.MaxSteps, Outcome: OutcomeUnresolved}
}

func (s *Simulator) notify(step int, x dynamo.State) {
	for _, o := range s.observers {
		o.OnStep(step, x)
	}
}
