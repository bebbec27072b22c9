package viz

import (
	"fmt"
	"image/color"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/magbasin/internal/metrics"
	"github.com/san-kum/magbasin/internal/sim"
)

// WriteSummary prints the outcome counts and per-magnet captures of a render.
// legend holds one colour per magnet and may be nil.
func WriteSummary(w io.Writer, s metrics.Summary, legend []color.RGBA) error {
	st := NewStyles(CurrentTheme)

	fmt.Fprintln(w, st.Title.Render(fmt.Sprintf("%d pixels", s.Pixels)))
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "OUTCOME\tPIXELS\tSHARE")
	for _, o := range sim.Outcomes {
		name := o.String()
		style, ok := st.OutcomeText[name]
		if !ok {
			style = st.Label
		}
		fmt.Fprintf(tw, "%s\t%d\t%5.1f%%\n", style.Render(name), s.Outcomes[name], 100*s.Fraction(o))
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	if len(s.PerMagnet) == 0 {
		return nil
	}
	fmt.Fprintln(w)
	tw = tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "MAGNET\tCOLOR\tCAPTURED")
	for i, n := range s.PerMagnet {
		swatch := "-"
		if i < len(legend) {
			swatch = Swatch(legend[i])
		}
		fmt.Fprintf(tw, "%d\t%s\t%d\n", i, swatch, n)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	fmt.Fprintf(w, "\n%s %s   %s %d\n",
		st.Label.Render("mean steps:"), st.Value.Render(fmt.Sprintf("%.1f", s.MeanSteps)),
		st.Label.Render("max steps:"), s.MaxSteps)
	return nil
}

// EnergyPlot charts the energy of a traced run. Long traces are downsampled
// by asciigraph to width columns.
func EnergyPlot(energy []float64, width, height int) string {
	if len(energy) == 0 {
		return "no samples"
	}
	return asciigraph.Plot(energy,
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.Caption("energy vs step"),
	)
}

// HistogramPlot charts a step-count histogram as produced by
// metrics.StepHistogram.
func HistogramPlot(hist []float64, maxSteps, width, height int) string {
	if len(hist) == 0 {
		return "no captured pixels"
	}
	return asciigraph.Plot(hist,
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.Caption(fmt.Sprintf("captures by step, 0..%d", maxSteps)),
	)
}

// Thresholds formats one escape energy per line.
func Thresholds(ths []float64) string {
	var b strings.Builder
	for i, th := range ths {
		fmt.Fprintf(&b, "magnet %d: %g\n", i, th)
	}
	return b.String()
}
