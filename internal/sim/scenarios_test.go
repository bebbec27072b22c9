package sim_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/magbasin/internal/basin"
	"github.com/san-kum/magbasin/internal/dynamo"
	"github.com/san-kum/magbasin/internal/physics"
	"github.com/san-kum/magbasin/internal/sim"
	"github.com/san-kum/magbasin/internal/vecmath"
)

func buildScene(mode physics.Approximation, friction float64, sp sim.Params, bounds basin.Bounds, magnets ...physics.Magnet) *sim.Scene {
	params := physics.DefaultParams()
	params.Friction = friction
	p := physics.Pendulum{Suspension: vecmath.New(0, 0, 1), Mass: 1, Approximation: mode}

	sys, err := physics.NewSystem(p, magnets, params)
	Expect(err).NotTo(HaveOccurred())
	sc, err := sim.NewScene(sys, nil, sp, bounds)
	Expect(err).NotTo(HaveOccurred())
	return sc
}

func attractive(x, y, z, strength float64) physics.Magnet {
	return physics.Magnet{Position: vecmath.New(x, y, z), Polarity: physics.Positive, Strength: strength}
}

func lift(sc *sim.Scene, x, y float64) vecmath.Vec3 {
	p, ok := sc.System().Lift(x, y)
	Expect(ok).To(BeTrue(), "(%g, %g) should be reachable", x, y)
	return p
}

var _ = Describe("Scenarios", func() {
	Describe("a single magnet below the suspension in SmallAngle mode without friction", func() {
		var sc *sim.Scene

		BeforeEach(func() {
			bounds := basin.Bounds{MinX: -1.5, MaxX: 1.5, MinY: -1.5, MaxY: 1.5}
			sc = buildScene(physics.SmallAngle, 0, sim.DefaultParams(), bounds, attractive(0, 0, -0.5, 0.2))
		})

		It("captures every pixel with that magnet", func() {
			s := sim.New(sc)
			const n = 9
			for py := range n {
				for px := range n {
					r := s.Pixel(px, py, n, n)
					Expect(r.Outcome).To(Equal(sim.OutcomeCaptured), "pixel (%d, %d): %v", px, py, r)
					Expect(r.Magnet).To(Equal(0))
				}
			}
		})

		It("takes longer the further out the bob starts", func() {
			s := sim.New(sc)
			near := s.Run(lift(sc, 0.4, 0))
			mid := s.Run(lift(sc, 0.8, 0))
			far := s.Run(lift(sc, 1.6, 0))

			Expect(near.Captured() && mid.Captured() && far.Captured()).To(BeTrue())
			Expect(near.Steps).To(BeNumerically("<=", mid.Steps))
			Expect(mid.Steps).To(BeNumerically("<=", far.Steps))
			Expect(s.Run(lift(sc, 0.1, 0)).Steps).To(BeZero())
		})
	})

	Describe("two symmetric magnets in Rigour mode with friction", func() {
		var sc *sim.Scene

		BeforeEach(func() {
			sp := sim.DefaultParams()
			sp.MaxSteps = 1500
			bounds := basin.Bounds{MinX: -0.8, MaxX: 0.8, MinY: -0.8, MaxY: 0.8}
			sc = buildScene(physics.Rigour, 0.2, sp, bounds,
				attractive(-0.3, 0, -0.1, 0.5),
				attractive(0.3, 0, -0.1, 0.5),
			)
		})

		It("has equal, finite thresholds", func() {
			thr := sc.Thresholds()
			Expect(thr).To(HaveLen(2))
			Expect(math.IsInf(thr[0], 0)).To(BeFalse())
			Expect(thr[0]).To(BeNumerically("~", thr[1], 1e-12))
		})

		It("leaves the line of symmetry unresolved", func() {
			r := sim.New(sc).Run(lift(sc, 0, 0.2))
			Expect(r.Outcome).To(Equal(sim.OutcomeUnresolved))
			Expect(r.Magnet).To(Equal(-1))
			Expect(r.Steps).To(Equal(sc.Params().MaxSteps))
		})

		It("resolves a start inside a well to that magnet", func() {
			sp := sc.Params()
			sp.CaptureRadius = 0.1
			well := buildScene(physics.Rigour, 0.2, sp, sc.Bounds(),
				attractive(-0.3, 0, -0.1, 0.5),
				attractive(0.3, 0, -0.1, 0.5),
			)
			start := lift(well, 0.15, 0.05)
			// Below the saddle the bob cannot leave the well while friction drains energy.
			Expect(well.System().Energy(dynamo.State{Pos: start})).To(BeNumerically("<", well.Thresholds()[1]))

			r := sim.New(well).Run(start)
			Expect(r.Captured()).To(BeTrue(), "%v", r)
			Expect(r.Magnet).To(Equal(1))
			Expect(r.Steps).To(BeNumerically(">", 0))
			Expect(r.Steps).To(BeNumerically("<", 100))
		})

		It("keeps the bob on the sphere with tangential velocity after every step", func() {
			s := sim.New(sc)
			susp := sc.System().Pendulum().Suspension
			rod := sc.System().RodLength()
			observed := 0

			s.AddObserver(sim.ObserverFunc(func(_ int, x dynamo.State) {
				observed++
				radial := x.Pos.Sub(susp)
				Expect(radial.Len()).To(BeNumerically("~", rod, 1e-9))
				n := radial.Normalize()
				Expect(x.Vel.Dot(n)).To(BeNumerically("~", 0, 1e-9*math.Max(1, x.Vel.Len())))
			}))
			s.Run(lift(sc, 0.6, 0.3))
			Expect(observed).To(BeNumerically(">", 1))
		})
	})

	Describe("energy", func() {
		sp := sim.DefaultParams()
		sp.CaptureRadius = 0.05
		sp.MaxSteps = 600
		sp.EscapeFactor = 0
		bounds := basin.Bounds{MinX: -1, MaxX: 1, MinY: -1, MaxY: 1}

		// A tangential launch keeps the bob orbiting away from the magnet.
		launch := func(sc *sim.Scene) dynamo.State {
			return dynamo.State{Pos: lift(sc, 0.5, 0), Vel: vecmath.New(0, 1.6, 0)}
		}

		record := func(sc *sim.Scene) []float64 {
			var energies []float64
			s := sim.New(sc)
			s.AddObserver(sim.ObserverFunc(func(_ int, x dynamo.State) {
				energies = append(energies, sc.System().Energy(x))
			}))
			s.Simulate(launch(sc))
			return energies
		}

		for _, mode := range []physics.Approximation{physics.SmallAngle, physics.Rigour} {
			It("never increases with friction in "+mode.String()+" mode", func() {
				sc := buildScene(mode, 0.2, sp, bounds, attractive(0, 0, -0.5, 0.2))
				e := record(sc)
				Expect(len(e)).To(BeNumerically(">", 100))
				for i := 1; i < len(e); i++ {
					Expect(e[i]).To(BeNumerically("<=", e[i-1]+1e-6), "step %d", i)
				}
				Expect(e[len(e)-1]).To(BeNumerically("<", e[0]))
			})

			It("is conserved without friction in "+mode.String()+" mode", func() {
				sc := buildScene(mode, 0, sp, bounds, attractive(0, 0, -0.5, 0.2))
				e := record(sc)
				Expect(len(e)).To(BeNumerically(">", 100))
				for i := range e {
					Expect(e[i]).To(BeNumerically("~", e[0], 1e-4), "step %d", i)
				}
			})
		}
	})

	Describe("determinism", func() {
		It("returns identical results for identical pixels and configurations", func() {
			bounds := basin.Bounds{MinX: -1, MaxX: 1, MinY: -1, MaxY: 1}
			magnets := []physics.Magnet{
				attractive(0.5, 0, -0.2, 0.4),
				attractive(-0.25, 0.433, -0.2, 0.4),
				attractive(-0.25, -0.433, -0.2, 0.4),
			}
			a := sim.New(buildScene(physics.Rigour, 0.2, sim.DefaultParams(), bounds, magnets...))
			b := sim.New(buildScene(physics.Rigour, 0.2, sim.DefaultParams(), bounds, magnets...))

			for _, px := range []int{0, 3, 7, 11} {
				first := a.Pixel(px, 5, 12, 12)
				Expect(a.Pixel(px, 5, 12, 12)).To(Equal(first))
				Expect(b.Pixel(px, 5, 12, 12)).To(Equal(first))
			}
		})
	})

	Describe("the capture boundary", func() {
		It("captures a bob resting exactly on the capture radius", func() {
			sp := sim.DefaultParams()
			sp.CaptureRadius = 0.25
			sc := buildScene(physics.SmallAngle, 0.2, sp, basin.Bounds{MinX: -1, MaxX: 1, MinY: -1, MaxY: 1},
				attractive(0, 0, -0.5, 0.2))

			r := sim.New(sc).Run(vecmath.New(0.25, 0, 0))
			Expect(r).To(Equal(sim.PixelResult{Magnet: 0, Steps: 0, Outcome: sim.OutcomeCaptured}))
		})

		It("captures at the threshold energy itself", func() {
			sc := buildScene(physics.SmallAngle, 0.2, sim.DefaultParams(), basin.Bounds{MinX: -1, MaxX: 1, MinY: -1, MaxY: 1},
				attractive(-0.3, 0, -0.1, 0.5), attractive(0.3, 0, -0.1, 0.5))

			x := dynamo.State{Pos: vecmath.New(-0.05, 0, 0)}
			e := sc.System().Energy(x)
			det, err := basin.NewDetector(sc.System(), []float64{e, e}, 0.25)
			Expect(err).NotTo(HaveOccurred())

			i, ok := det.Check(x)
			Expect(ok).To(BeTrue())
			Expect(i).To(Equal(0))
		})
	})
})
