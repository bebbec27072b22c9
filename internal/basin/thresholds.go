package basin

import (
	"cmp"
	"math"

	"github.com/san-kum/magbasin/internal/dynamo"
	"github.com/san-kum/magbasin/internal/physics"
	"github.com/san-kum/magbasin/internal/vecmath"
)

// DefaultSamples is the number of points sampled along each magnet pair.
const DefaultSamples = 64

const goldenIterations = 48

var invPhi = (math.Sqrt(5) - 1) / 2

// Thresholds returns the escape energy of every magnet, in magnet order.
//
// For an attractive magnet the threshold is the lowest saddle energy between
// its well and the well of any other attractive magnet. A repulsive magnet
// never captures and gets -Inf. An attractive magnet with no attractive
// neighbour has nowhere to escape to and gets +Inf.
//
// Each pair is evaluated in a canonical order, so the result for a magnet does
// not depend on where it sits in the slice.
func Thresholds(sys *physics.System, samples int) []float64 {
	if samples < 2 {
		samples = DefaultSamples
	}
	magnets := sys.Magnets()
	thr := make([]float64, len(magnets))
	for i, m := range magnets {
		if m.Attracts() {
			thr[i] = math.Inf(1)
		} else {
			thr[i] = math.Inf(-1)
		}
	}

	for i := range magnets {
		if !magnets[i].Attracts() {
			continue
		}
		for j := i + 1; j < len(magnets); j++ {
			if !magnets[j].Attracts() {
				continue
			}
			a, b := magnets[i], magnets[j]
			if compareMagnets(a, b) > 0 {
				a, b = b, a
			}
			e := Saddle(sys, a.Position, b.Position, samples)
			thr[i] = math.Min(thr[i], e)
			thr[j] = math.Min(thr[j], e)
		}
	}

	log := dynamo.Logger()
	for i, t := range thr {
		log.Debug("escape threshold", "magnet", i, "energy", t)
	}
	return thr
}

// Saddle estimates the potential energy of the pass between the wells at a
// and b. The segment between their horizontal positions is lifted onto the
// bob's surface and sampled; the highest sample is then relaxed along the
// horizontal perpendicular, within a quarter of the segment length, towards
// the lowest point of the ridge. Unreachable points are ignored. When no
// sample is reachable the pair is not connected and +Inf is returned.
func Saddle(sys *physics.System, a, b vecmath.Vec3, samples int) float64 {
	a, b = vecmath.Horizontal(a), vecmath.Horizontal(b)
	span := b.Sub(a)
	length := span.Len()

	potentialAt := func(p vecmath.Vec3) float64 {
		pos, ok := sys.Lift(p[0], p[1])
		if !ok {
			return math.Inf(1)
		}
		return sys.Potential(pos)
	}

	peak, peakAt := math.Inf(-1), vecmath.Zero
	for k := 1; k <= samples; k++ {
		t := float64(k) / float64(samples+1)
		p := vecmath.Lerp(a, b, t)
		e := potentialAt(p)
		if math.IsInf(e, 1) {
			continue
		}
		if e > peak {
			peak, peakAt = e, p
		}
	}
	if math.IsInf(peak, -1) {
		return math.Inf(1)
	}

	perp, ok := vecmath.Unit(vecmath.New(-span[1], span[0], 0))
	if !ok {
		return peak
	}
	reach := length / 4
	best := goldenMin(func(s float64) float64 {
		return potentialAt(peakAt.Add(perp.Mul(s)))
	}, -reach, reach)

	return math.Min(peak, best)
}

// goldenMin returns the smallest value of f found by golden-section search on
// [lo, hi].
func goldenMin(f func(float64) float64, lo, hi float64) float64 {
	c := hi - invPhi*(hi-lo)
	d := lo + invPhi*(hi-lo)
	fc, fd := f(c), f(d)
	for range goldenIterations {
		if fc < fd {
			hi, d, fd = d, c, fc
			c = hi - invPhi*(hi-lo)
			fc = f(c)
		} else {
			lo, c, fc = c, d, fd
			d = lo + invPhi*(hi-lo)
			fd = f(d)
		}
	}
	return math.Min(fc, fd)
}

func compareMagnets(a, b physics.Magnet) int {
	for k := range 3 {
		if c := cmp.Compare(a.Position[k], b.Position[k]); c != 0 {
			return c
		}
	}
	return cmp.Compare(a.Strength, b.Strength)
}
