package basin

import (
	"errors"
	"math"
	"testing"

	"github.com/san-kum/magbasin/internal/dynamo"
	"github.com/san-kum/magbasin/internal/physics"
	"github.com/san-kum/magbasin/internal/vecmath"
)

func newSystem(t *testing.T, mode physics.Approximation, magnets ...physics.Magnet) *physics.System {
	t.Helper()
	p := physics.Pendulum{Suspension: vecmath.New(0, 0, 1), Mass: 1, Approximation: mode}
	sys, err := physics.NewSystem(p, magnets, physics.DefaultParams())
	if err != nil {
		t.Fatalf("NewSystem: %v", err)
	}
	return sys
}

func attract(x, y float64) physics.Magnet {
	return physics.Magnet{Position: vecmath.New(x, y, -0.1), Polarity: physics.Positive, Strength: 0.5}
}

func repel(x, y float64) physics.Magnet {
	return physics.Magnet{Position: vecmath.New(x, y, -0.1), Polarity: physics.Negative, Strength: 0.5}
}

func TestThresholds_Special(t *testing.T) {
	sys := newSystem(t, physics.SmallAngle, attract(0, 0), repel(1, 0))
	thr := Thresholds(sys, 32)

	if !math.IsInf(thr[0], 1) {
		t.Errorf("isolated attractive magnet: threshold = %v, want +Inf", thr[0])
	}
	if !math.IsInf(thr[1], -1) {
		t.Errorf("repulsive magnet: threshold = %v, want -Inf", thr[1])
	}
}

func TestThresholds_SymmetricPair(t *testing.T) {
	for _, mode := range []physics.Approximation{physics.SmallAngle, physics.Rigour} {
		t.Run(mode.String(), func(t *testing.T) {
			sys := newSystem(t, mode, attract(-0.3, 0), attract(0.3, 0))
			thr := Thresholds(sys, DefaultSamples)

			if math.Abs(thr[0]-thr[1]) > 1e-9 {
				t.Errorf("symmetric pair has different thresholds %v", thr)
			}

			mid, _ := sys.Lift(0, 0)
			if thr[0] > sys.Potential(mid)+1e-12 {
				t.Errorf("threshold %v above the midpoint potential %v", thr[0], sys.Potential(mid))
			}

			bottom, _ := sys.Lift(-0.3, 0)
			if thr[0] <= sys.Potential(bottom) {
				t.Errorf("threshold %v not above the well bottom %v", thr[0], sys.Potential(bottom))
			}
		})
	}
}

func TestThresholds_OrderInvariant(t *testing.T) {
	ms := []physics.Magnet{attract(0.5, 0), attract(-0.25, 0.433), attract(-0.25, -0.433), repel(0, 0)}
	perm := []int{2, 3, 0, 1}

	reordered := make([]physics.Magnet, len(ms))
	for i, j := range perm {
		reordered[i] = ms[j]
	}

	a := Thresholds(newSystem(t, physics.Rigour, ms...), DefaultSamples)
	b := Thresholds(newSystem(t, physics.Rigour, reordered...), DefaultSamples)

	for i, j := range perm {
		if math.IsInf(a[j], 0) || math.IsInf(b[i], 0) {
			if a[j] != b[i] {
				t.Errorf("magnet %d: %v vs %v", j, a[j], b[i])
			}
			continue
		}
		if math.Abs(a[j]-b[i]) > 1e-9*math.Max(1, math.Abs(a[j])) {
			t.Errorf("magnet %d: threshold %v changed to %v after reordering", j, a[j], b[i])
		}
	}
}

func TestSaddle_Unreachable(t *testing.T) {
	sys := newSystem(t, physics.Rigour, attract(0, 0))
	if e := Saddle(sys, vecmath.New(3, 0, 0), vecmath.New(4, 0, 0), 16); !math.IsInf(e, 1) {
		t.Errorf("Saddle over unreachable segment = %v, want +Inf", e)
	}
}

func TestGoldenMin(t *testing.T) {
	got := goldenMin(func(x float64) float64 { return (x-0.3)*(x-0.3) + 2 }, -1, 1)
	if math.Abs(got-2) > 1e-12 {
		t.Errorf("goldenMin = %v, want 2", got)
	}
}

func TestDetector_InclusiveBoundary(t *testing.T) {
	sys := newSystem(t, physics.SmallAngle, attract(0, 0), attract(1, 0))
	const radius = 0.25

	x := dynamo.State{Pos: vecmath.New(radius, 0, 0)}
	e := sys.Energy(x)

	det, err := NewDetector(sys, []float64{e, e}, radius)
	if err != nil {
		t.Fatal(err)
	}
	if i, ok := det.Check(x); !ok || i != 0 {
		t.Errorf("Check at radius with E == threshold = (%d, %v), want (0, true)", i, ok)
	}

	hot := dynamo.State{Pos: x.Pos, Vel: vecmath.New(0, 0.1, 0)}
	if _, ok := det.Check(hot); ok {
		t.Error("energy above threshold must not be captured")
	}

	far := dynamo.State{Pos: vecmath.New(radius+1e-6, 0, 0)}
	det2, _ := NewDetector(sys, []float64{math.Inf(1), math.Inf(1)}, radius)
	if _, ok := det2.Check(far); ok {
		t.Error("outside capture radius must not be captured")
	}
}

func TestDetector_NearestMagnet(t *testing.T) {
	sys := newSystem(t, physics.SmallAngle, attract(0, 0), attract(0.3, 0))
	det, err := NewDetector(sys, []float64{math.Inf(1), math.Inf(1)}, 0.5)
	if err != nil {
		t.Fatal(err)
	}

	i, ok := det.Check(dynamo.State{Pos: vecmath.New(0.2, 0, 0)})
	if !ok || i != 1 {
		t.Errorf("Check = (%d, %v), want nearest magnet 1", i, ok)
	}

	if i, d := det.Nearest(vecmath.New(0.15, 0, 0)); i != 0 || math.Abs(d-0.15) > 1e-12 {
		t.Errorf("tie should go to the lower index, got (%d, %v)", i, d)
	}
}

func TestDetector_RepulsiveNeverCaptures(t *testing.T) {
	sys := newSystem(t, physics.SmallAngle, repel(0, 0), attract(1, 0))
	det, err := NewDetector(sys, Thresholds(sys, 16), 1)
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := det.Check(dynamo.State{Pos: vecmath.New(0, 0, 0)}); ok {
		t.Error("repulsive magnet captured a trajectory")
	}
}

func TestNewDetector_Errors(t *testing.T) {
	sys := newSystem(t, physics.SmallAngle, attract(0, 0))
	tests := []struct {
		name       string
		thresholds []float64
		radius     float64
	}{
		{"count mismatch", []float64{0, 0}, 0.1},
		{"zero radius", []float64{0}, 0},
		{"NaN radius", []float64{0}, math.NaN()},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewDetector(sys, tt.thresholds, tt.radius)
			if !errors.Is(err, dynamo.ErrConfig) {
				t.Errorf("err = %v, want ErrConfig", err)
			}
		})
	}
}

func TestSuggestBounds(t *testing.T) {
	tests := []struct {
		name string
		mode physics.Approximation
		want Bounds
	}{
		{"small angle", physics.SmallAngle, Bounds{MinX: -2, MaxX: 2, MinY: -1, MaxY: 1}},
		{"rigour clipped", physics.Rigour, Bounds{MinX: -math.Sqrt(0.75), MaxX: math.Sqrt(0.75), MinY: -math.Sqrt(0.75), MaxY: math.Sqrt(0.75)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sys := newSystem(t, tt.mode, attract(-1, 0), attract(1, 0))
			got := SuggestBounds(sys, 0.5, 0.5)
			for _, pair := range [][2]float64{{got.MinX, tt.want.MinX}, {got.MaxX, tt.want.MaxX}, {got.MinY, tt.want.MinY}, {got.MaxY, tt.want.MaxY}} {
				if math.Abs(pair[0]-pair[1]) > 1e-12 {
					t.Errorf("SuggestBounds = %v, want %v", got, tt.want)
					break
				}
			}
		})
	}
}

func TestBounds(t *testing.T) {
	b := Bounds{MinX: -1, MaxX: 1, MinY: 0, MaxY: 2}

	if !b.Contains(1, 2) || b.Contains(1.01, 0) {
		t.Error("Contains should be inclusive and reject outside points")
	}
	s := b.Scale(2)
	if s.MinX != -2 || s.MaxX != 2 || s.MinY != -1 || s.MaxY != 3 {
		t.Errorf("Scale(2) = %v", s)
	}
	if err := b.Validate(); err != nil {
		t.Errorf("Validate: %v", err)
	}
	if err := (Bounds{MinX: 1, MaxX: 1, MinY: 0, MaxY: 1}).Validate(); !errors.Is(err, dynamo.ErrConfig) {
		t.Errorf("empty bounds: err = %v", err)
	}
}
