package basin

import (
	"math"

	"github.com/san-kum/magbasin/internal/dynamo"
	"github.com/san-kum/magbasin/internal/physics"
	"github.com/san-kum/magbasin/internal/vecmath"
)

// Detector applies the energy capture test. It is immutable after
// construction and shared by all render workers.
type Detector struct {
	sys        *physics.System
	thresholds []float64
	radius     float64
}

// NewDetector pairs a system with its escape thresholds, one per magnet.
func NewDetector(sys *physics.System, thresholds []float64, radius float64) (*Detector, error) {
	if len(thresholds) != sys.NumMagnets() {
		return nil, dynamo.Configf("simulation.thresholds", "have %d thresholds for %d magnets", len(thresholds), sys.NumMagnets())
	}
	if !(radius > 0) || math.IsInf(radius, 0) {
		return nil, dynamo.Configf("simulation.capture_radius", "must be positive, got %g", radius)
	}
	return &Detector{
		sys:        sys,
		thresholds: append([]float64(nil), thresholds...),
		radius:     radius,
	}, nil
}

// Thresholds returns a copy of the escape energies.
func (d *Detector) Thresholds() []float64 { return append([]float64(nil), d.thresholds...) }

// Radius is the horizontal capture radius.
func (d *Detector) Radius() float64 { return d.radius }

// Nearest returns the index of the magnet closest to pos in the horizontal
// plane and that distance. Ties go to the lower index.
func (d *Detector) Nearest(pos vecmath.Vec3) (int, float64) {
	best, bestSq := -1, math.Inf(1)
	for i := range d.sys.NumMagnets() {
		dsq := vecmath.HorizontalDistSq(pos, d.sys.Magnet(i).Position)
		if dsq < bestSq {
			best, bestSq = i, dsq
		}
	}
	return best, math.Sqrt(bestSq)
}

// Check reports whether x is captured: the bob is within the capture radius
// of its nearest magnet and its total energy does not exceed that magnet's
// escape threshold. Both bounds are inclusive.
func (d *Detector) Check(x dynamo.State) (int, bool) {
	i, dist := d.Nearest(x.Pos)
	if i < 0 || dist > d.radius {
		return -1, false
	}
	thr := d.thresholds[i]
	if math.IsInf(thr, -1) {
		return -1, false
	}
	if d.sys.Energy(x) <= thr {
		return i, true
	}
	return -1, false
}
