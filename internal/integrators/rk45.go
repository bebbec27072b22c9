package integrators

import (
	"math"

	"github.com/san-kum/magbasin/internal/dynamo"
)

// Dormand-Prince coefficients (RK45)
var (
	b21 = 1.0 / 5.0
	b31 = 3.0 / 40.0
	b32 = 9.0 / 40.0
	b41 = 44.0 / 45.0
	b42 = -56.0 / 15.0
	b43 = 32.0 / 9.0
	b51 = 19372.0 / 6561.0
	b52 = -25360.0 / 2187.0
	b53 = 64448.0 / 6561.0
	b54 = -212.0 / 729.0
	b61 = 9017.0 / 3168.0
	b62 = -355.0 / 33.0
	b63 = 46732.0 / 5247.0
	b64 = 49.0 / 176.0
	b65 = -5103.0 / 18656.0

	c1 = 35.0 / 384.0
	c3 = 500.0 / 1113.0
	c4 = 125.0 / 192.0
	c5 = -2187.0 / 6784.0
	c6 = 11.0 / 84.0

	dc1 = c1 - 5179.0/57600.0
	dc3 = c3 - 7571.0/16695.0
	dc4 = c4 - 393.0/640.0
	dc5 = c5 - -92097.0/339200.0
	dc6 = c6 - 187.0/2100.0
	dc7 = -1.0 / 40.0
)

// RK45 is the Dormand-Prince embedded pair. Step uses the fifth-order
// solution at the given dt; StepAdaptive also returns the suggested next dt.
type RK45 struct {
	safety   float64
	minScale float64
	maxScale float64
	minDt    float64
}

func NewRK45() *RK45 {
	return &RK45{
		safety:   0.9,
		minScale: 0.2,
		maxScale: 10.0,
		minDt:    1e-9,
	}
}

func (r *RK45) Step(dyn dynamo.System, x dynamo.State, dt float64) dynamo.State {
	newX, _, _ := r.StepAdaptive(dyn, x, dt, 1e-6)
	return newX
}

func (r *RK45) StepAdaptive(dyn dynamo.System, x dynamo.State, dt, tol float64) (dynamo.State, float64, error) {
	k1 := dyn.Derive(x)
	k2 := dyn.Derive(x.Add(k1.Scale(dt * b21)))
	k3 := dyn.Derive(x.Add(combine(dt, term{k1, b31}, term{k2, b32})))
	k4 := dyn.Derive(x.Add(combine(dt, term{k1, b41}, term{k2, b42}, term{k3, b43})))
	k5 := dyn.Derive(x.Add(combine(dt, term{k1, b51}, term{k2, b52}, term{k3, b53}, term{k4, b54})))
	k6 := dyn.Derive(x.Add(combine(dt, term{k1, b61}, term{k2, b62}, term{k3, b63}, term{k4, b64}, term{k5, b65})))

	xNew := x.Add(combine(dt, term{k1, c1}, term{k3, c3}, term{k4, c4}, term{k5, c5}, term{k6, c6}))
	k7 := dyn.Derive(xNew)

	errEst := combine(dt, term{k1, dc1}, term{k3, dc3}, term{k4, dc4}, term{k5, dc5}, term{k6, dc6}, term{k7, dc7})
	errMax := 0.0
	for i := 0; i < 3; i++ {
		errMax = math.Max(errMax, math.Abs(errEst.Pos[i])/(math.Abs(x.Pos[i])+math.Abs(dt*k1.Pos[i])+1e-10))
		errMax = math.Max(errMax, math.Abs(errEst.Vel[i])/(math.Abs(x.Vel[i])+math.Abs(dt*k1.Vel[i])+1e-10))
	}

	errRatio := errMax / tol

	var dtNew float64
	switch {
	case errRatio > 1:
		dtNew = dt * math.Max(r.minScale, r.safety*math.Pow(errRatio, -0.25))
	case errRatio > 0:
		dtNew = dt * math.Min(r.maxScale, r.safety*math.Pow(errRatio, -0.2))
	default:
		dtNew = dt * r.maxScale
	}

	if dtNew < r.minDt {
		return xNew, dtNew, dynamo.ErrStepTooSmall
	}
	return xNew, dtNew, nil
}

type term struct {
	k dynamo.State
	w float64
}

// combine returns dt * Σ w k.
func combine(dt float64, terms ...term) dynamo.State {
	var sum dynamo.State
	for _, t := range terms {
		sum = sum.Add(t.k.Scale(t.w))
	}
	return sum.Scale(dt)
}
