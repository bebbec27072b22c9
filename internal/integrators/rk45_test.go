package integrators

import (
	"math"
	"testing"

	"github.com/san-kum/magbasin/internal/dynamo"
	"github.com/san-kum/magbasin/internal/vecmath"
)

func TestRK45_Step(t *testing.T) {
	integrator := NewRK45()
	dyn := &harmonicOscillator{}
	x := dynamo.State{Pos: vecmath.New(1, 0, 0)}
	dt := 0.01

	for i := 0; i < 1000; i++ {
		x = integrator.Step(dyn, x, dt)
	}

	if !x.IsValid() {
		t.Error("RK45 produced invalid state")
	}
}

func TestRK45_EnergyConservation(t *testing.T) {
	integrator := NewRK45()
	dyn := &harmonicOscillator{}
	x0 := dynamo.State{Pos: vecmath.New(1, 0, 0), Vel: vecmath.New(0, 0.5, 0)}

	initialEnergy := dyn.Energy(x0)
	x := x0
	dt := 0.01

	for i := 0; i < 10000; i++ {
		x = integrator.Step(dyn, x, dt)
	}

	drift := math.Abs(dyn.Energy(x)-initialEnergy) / initialEnergy
	if drift > 1e-6 {
		t.Errorf("RK45 energy drift too high: %e", drift)
	}
}

func TestRK45_AdaptiveStep(t *testing.T) {
	integrator := NewRK45()
	dyn := &harmonicOscillator{}
	x0 := dynamo.State{Pos: vecmath.New(1, 0, 0)}

	x, newDt, err := integrator.StepAdaptive(dyn, x0, 0.1, 1e-8)
	if err != nil {
		t.Errorf("StepAdaptive returned error: %v", err)
	}
	if !x.IsValid() {
		t.Error("StepAdaptive produced invalid state")
	}
	if newDt <= 0 {
		t.Errorf("StepAdaptive returned invalid dt: %f", newDt)
	}

	_, looseDt, _ := integrator.StepAdaptive(dyn, x0, 0.1, 1e-2)
	if looseDt <= newDt {
		t.Errorf("looser tolerance should allow a larger step: %g <= %g", looseDt, newDt)
	}
}

func TestRK45_VsRK4_Accuracy(t *testing.T) {
	rk4 := NewRK4()
	rk45 := NewRK45()
	dyn := &harmonicOscillator{}
	x0 := dynamo.State{Pos: vecmath.New(1, 0, 0)}

	x4, x45 := x0, x0
	dt := 0.1

	for i := 0; i < 100; i++ {
		x4 = rk4.Step(dyn, x4, dt)
		x45 = rk45.Step(dyn, x45, dt)
	}

	e4 := math.Abs(dyn.Energy(x4) - 0.5)
	e45 := math.Abs(dyn.Energy(x45) - 0.5)
	t.Logf("energy error RK4=%.3e RK45=%.3e", e4, e45)

	if e45 > e4 {
		t.Log("Warning: RK45 not more accurate than RK4 for this case")
	}
}
