package metrics

import (
	"math"

	"github.com/san-kum/magbasin/internal/sim"
)

// Summary aggregates the pixel results of one render.
type Summary struct {
	Pixels    int            `json:"pixels"`
	PerMagnet []int          `json:"per_magnet"`
	Outcomes  map[string]int `json:"outcomes"`
	// MeanSteps and MaxSteps cover captured pixels only.
	MeanSteps float64 `json:"mean_steps"`
	MaxSteps  int     `json:"max_steps"`
}

// Summarize counts outcomes and per-magnet captures.
func Summarize(results []sim.PixelResult, numMagnets int) Summary {
	s := Summary{
		Pixels:    len(results),
		PerMagnet: make([]int, numMagnets),
		Outcomes:  make(map[string]int, len(sim.Outcomes)),
	}
	for _, o := range sim.Outcomes {
		s.Outcomes[o.String()] = 0
	}

	total := 0
	for _, r := range results {
		s.Outcomes[r.Outcome.String()]++
		if !r.Captured() {
			continue
		}
		if r.Magnet >= 0 && r.Magnet < numMagnets {
			s.PerMagnet[r.Magnet]++
		}
		total += r.Steps
		s.MaxSteps = max(s.MaxSteps, r.Steps)
	}
	if c := s.Captured(); c > 0 {
		s.MeanSteps = float64(total) / float64(c)
	}
	return s
}

// Captured is the number of pixels a magnet captured.
func (s Summary) Captured() int { return s.Outcomes[sim.OutcomeCaptured.String()] }

// Fraction is the share of pixels that ended with outcome o.
func (s Summary) Fraction(o sim.Outcome) float64 {
	if s.Pixels == 0 {
		return 0
	}
	return float64(s.Outcomes[o.String()]) / float64(s.Pixels)
}

// StepHistogram bins the step counts of captured pixels into bins equal
// buckets over [0, maxSteps].
func StepHistogram(results []sim.PixelResult, bins, maxSteps int) []float64 {
	if bins < 1 || maxSteps < 1 {
		return nil
	}
	h := make([]float64, bins)
	for _, r := range results {
		if !r.Captured() {
			continue
		}
		b := int(math.Floor(float64(r.Steps) / float64(maxSteps) * float64(bins)))
		h[min(max(b, 0), bins-1)]++
	}
	return h
}
