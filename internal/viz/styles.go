package viz

import (
	"image/color"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
)

// Styles are the lipgloss styles derived from a theme.
type Styles struct {
	Title       lipgloss.Style
	Header      lipgloss.Style
	Label       lipgloss.Style
	Value       lipgloss.Style
	Muted       lipgloss.Style
	Good        lipgloss.Style
	Warn        lipgloss.Style
	Bad         lipgloss.Style
	Panel       lipgloss.Style
	BarFilled   lipgloss.Style
	BarEmpty    lipgloss.Style
	OutcomeText map[string]lipgloss.Style
}

func NewStyles(t Theme) Styles {
	s := Styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(t.Secondary),
		Header: lipgloss.NewStyle().
			Bold(true).
			Foreground(t.Text).
			BorderStyle(lipgloss.NormalBorder()).
			BorderBottom(true).
			BorderForeground(t.Muted),
		Label: lipgloss.NewStyle().Foreground(t.Muted),
		Value: lipgloss.NewStyle().Foreground(t.Secondary).Bold(true),
		Muted: lipgloss.NewStyle().Foreground(t.Muted).Italic(true),
		Good:  lipgloss.NewStyle().Foreground(t.Success).Bold(true),
		Warn:  lipgloss.NewStyle().Foreground(t.Warning).Bold(true),
		Bad:   lipgloss.NewStyle().Foreground(t.Error).Bold(true),
		Panel: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(t.Muted).
			Padding(0, 1),
		BarFilled: lipgloss.NewStyle().Foreground(t.Primary),
		BarEmpty:  lipgloss.NewStyle().Foreground(t.Muted),
	}
	s.OutcomeText = map[string]lipgloss.Style{
		"captured":    s.Good,
		"unresolved":  s.Warn,
		"escaped":     s.Warn,
		"unstable":    s.Bad,
		"unreachable": s.Muted,
	}
	return s
}

// ProgressBar renders a bar of the given width filled to percent (0..1).
func (s Styles) ProgressBar(percent float64, width int) string {
	filled := int(percent * float64(width))
	filled = max(0, min(filled, width))
	return s.BarFilled.Render(strings.Repeat("█", filled)) +
		s.BarEmpty.Render(strings.Repeat("░", width-filled))
}

// Swatch renders two full blocks in c.
func Swatch(c color.RGBA) string {
	cf, _ := colorful.MakeColor(c)
	return lipgloss.NewStyle().Foreground(lipgloss.Color(cf.Hex())).Render("██")
}

// Sparkline squeezes values into width block characters.
func Sparkline(values []float64, width int) string {
	if len(values) == 0 || width < 1 {
		return strings.Repeat("─", max(width, 0))
	}
	chars := []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

	lo, hi := values[0], values[0]
	for _, v := range values {
		lo, hi = min(lo, v), max(hi, v)
	}
	rng := hi - lo
	if rng == 0 {
		rng = 1
	}

	step := max(len(values)/width, 1)
	var b strings.Builder
	for i := 0; i < width && i*step < len(values); i++ {
		norm := (values[i*step] - lo) / rng
		idx := max(0, min(int(norm*float64(len(chars)-1)), len(chars)-1))
		b.WriteRune(chars[idx])
	}
	return b.String()
}

func (s Styles) Separator(width int) string {
	mid := width / 2
	left := strings.Repeat("─", max(mid-3, 0))
	right := strings.Repeat("─", max(width-mid-3, 0))
	return s.Label.Render(left + " ◆ " + right)
}
