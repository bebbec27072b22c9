package colormap

import (
	"errors"
	"image/color"
	"math"
	"testing"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/san-kum/magbasin/internal/dynamo"
	"github.com/san-kum/magbasin/internal/sim"
)

func TestHuesEvenlySpaced(t *testing.T) {
	for _, n := range []int{1, 2, 3, 5, 8} {
		m, err := New(n, 100, DefaultOptions())
		if err != nil {
			t.Fatal(err)
		}
		for i := 1; i < n; i++ {
			if d := m.Hue(i) - m.Hue(i-1); math.Abs(d-360/float64(n)) > 1e-9 {
				t.Errorf("n=%d: hue gap %d = %v", n, i, d)
			}
		}
		if m.Hue(0) != 0 {
			t.Errorf("n=%d: first hue = %v", n, m.Hue(0))
		}
	}
}

func TestLightnessMonotone(t *testing.T) {
	m, err := New(3, 1000, DefaultOptions())
	if err != nil {
		t.Fatal(err)
	}

	if got := m.Lightness(0); got != 0.6 {
		t.Errorf("Lightness(0) = %v, want 0.6", got)
	}
	prev := m.Lightness(0)
	for steps := 1; steps <= 1200; steps++ {
		l := m.Lightness(steps)
		if l > prev {
			t.Fatalf("lightness rose from %v to %v at %d steps", prev, l, steps)
		}
		prev = l
	}
	if math.Abs(prev-0.06) > 1e-12 {
		t.Errorf("floor = %v, want 0.06", prev)
	}
}

func TestColor(t *testing.T) {
	m, err := New(3, 100, DefaultOptions())
	if err != nil {
		t.Fatal(err)
	}

	// HSL(0, 1, 0.6) is (1, 0.2, 0.2).
	if got, want := m.Color(0, 0), (color.RGBA{R: 255, G: 51, B: 51, A: 255}); got != want {
		t.Errorf("Color(0, 0) = %v, want %v", got, want)
	}

	c := m.Color(1, 0)
	h, _, _ := colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}.Hsl()
	if math.Abs(h-120) > 1 {
		t.Errorf("magnet 1 hue = %v, want 120", h)
	}
}

func TestBackgroundSentinel(t *testing.T) {
	opts := DefaultOptions()
	opts.Background = "#102030"
	m, err := New(2, 100, opts)
	if err != nil {
		t.Fatal(err)
	}
	want := color.RGBA{R: 0x10, G: 0x20, B: 0x30, A: 0xff}

	for _, r := range []sim.PixelResult{
		{Magnet: -1, Steps: 100, Outcome: sim.OutcomeUnresolved},
		{Magnet: -1, Outcome: sim.OutcomeUnreachable},
		{Magnet: -1, Steps: 3, Outcome: sim.OutcomeUnstable},
	} {
		if got := m.Result(r); got != want {
			t.Errorf("Result(%v) = %v, want background", r, got)
		}
	}
	if got := m.Result(sim.PixelResult{Magnet: 1, Steps: 0, Outcome: sim.OutcomeCaptured}); got == want {
		t.Error("captured pixel coloured as background")
	}
}

func TestPalette(t *testing.T) {
	opts := DefaultOptions()
	opts.Palette = []string{"#ff0000", "#0000ff"}
	m, err := New(2, 100, opts)
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(m.Hue(1)-240) > 1e-9 {
		t.Errorf("palette hue = %v, want 240", m.Hue(1))
	}
	if len(m.Legend()) != 2 {
		t.Errorf("legend = %v", m.Legend())
	}
}

func TestNewErrors(t *testing.T) {
	tests := []struct {
		name string
		n    int
		mod  func(*Options)
	}{
		{"no magnets", 0, func(*Options) {}},
		{"short palette", 3, func(o *Options) { o.Palette = []string{"#fff"} }},
		{"bad palette", 1, func(o *Options) { o.Palette = []string{"red"} }},
		{"bad background", 1, func(o *Options) { o.Background = "nope" }},
		{"saturation", 1, func(o *Options) { o.Saturation = 2 }},
		{"lightness", 1, func(o *Options) { o.MaxLightness = -0.1 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := DefaultOptions()
			tt.mod(&opts)
			if _, err := New(tt.n, 100, opts); !errors.Is(err, dynamo.ErrConfig) {
				t.Errorf("err = %v, want ErrConfig", err)
			}
		})
	}
}
