package physics

import (
	"fmt"
	"strings"

	"github.com/san-kum/magbasin/internal/vecmath"
)

// Polarity decides whether a magnet attracts or repels the bob.
type Polarity int

const (
	Positive Polarity = iota // attracts
	Negative                 // repels
)

func (p Polarity) String() string {
	switch p {
	case Positive:
		return "Positive"
	case Negative:
		return "Negative"
	default:
		return fmt.Sprintf("Polarity(%d)", int(p))
	}
}

// Sign is +1 for attraction and -1 for repulsion.
func (p Polarity) Sign() float64 {
	if p == Negative {
		return -1
	}
	return 1
}

func ParsePolarity(s string) (Polarity, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "positive", "attract", "+":
		return Positive, nil
	case "negative", "repel", "-":
		return Negative, nil
	}
	return 0, fmt.Errorf("unknown magnet direction %q (want Positive or Negative)", s)
}

// Magnet is a fixed point source. Velocity is carried over from the
// configuration but magnets never move.
type Magnet struct {
	Position vecmath.Vec3
	Velocity vecmath.Vec3
	Polarity Polarity
	Strength float64
}

// Attracts reports whether the magnet pulls the bob towards itself.
func (m Magnet) Attracts() bool { return m.Polarity == Positive }
