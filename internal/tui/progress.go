// Package tui shows a live progress view while a render runs.
package tui

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/san-kum/magbasin/internal/render"
	"github.com/san-kum/magbasin/internal/viz"
)

const barWidth = 40

// Job is a render that can report how far along it is. *render.Renderer
// satisfies it.
type Job interface {
	Progress() (done, total int)
	Render(ctx context.Context) (*render.Frame, error)
}

type tickMsg time.Time

type doneMsg struct {
	frame *render.Frame
	err   error
}

type model struct {
	job      Job
	ctx      context.Context
	cancel   context.CancelFunc
	title    string
	styles   viz.Styles
	started  time.Time
	done     int
	total    int
	frame    *render.Frame
	err      error
	finished bool
	aborted  bool
}

func newModel(ctx context.Context, job Job, title string) model {
	ctx, cancel := context.WithCancel(ctx)
	_, total := job.Progress()
	return model{
		job:     job,
		ctx:     ctx,
		cancel:  cancel,
		title:   title,
		styles:  viz.NewStyles(viz.CurrentTheme),
		started: time.Now(),
		total:   total,
	}
}

func tick() tea.Cmd {
	return tea.Tick(100*time.Millisecond, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m model) run() tea.Msg {
	f, err := m.job.Render(m.ctx)
	return doneMsg{frame: f, err: err}
}

func (m model) Init() tea.Cmd { return tea.Batch(m.run, tick()) }

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q", "esc":
			m.aborted = true
			m.cancel()
		}
		return m, nil
	case tickMsg:
		if m.finished {
			return m, nil
		}
		m.done, m.total = m.job.Progress()
		return m, tick()
	case doneMsg:
		m.finished = true
		m.frame, m.err = msg.frame, msg.err
		m.done, m.total = m.job.Progress()
		m.cancel()
		return m, tea.Quit
	}
	return m, nil
}

func (m model) percent() float64 {
	if m.total == 0 {
		return 0
	}
	return float64(m.done) / float64(m.total)
}

func (m model) View() string {
	var b strings.Builder
	b.WriteString(m.styles.Title.Render(m.title))
	b.WriteString("\n\n")
	b.WriteString(m.styles.ProgressBar(m.percent(), barWidth))
	fmt.Fprintf(&b, " %5.1f%%\n", 100*m.percent())

	elapsed := time.Since(m.started)
	rate := 0.0
	if s := elapsed.Seconds(); s > 0 {
		rate = float64(m.done) / s
	}
	b.WriteString(m.styles.Label.Render(fmt.Sprintf("%d/%d pixels  %.0f px/s  %s",
		m.done, m.total, rate, elapsed.Truncate(100*time.Millisecond))))
	b.WriteString("\n")

	switch {
	case m.finished && m.err != nil:
		b.WriteString(m.styles.Bad.Render("failed: "+m.err.Error()) + "\n")
	case m.finished:
		b.WriteString(m.styles.Good.Render("done") + "\n")
	case m.aborted:
		b.WriteString(m.styles.Warn.Render("cancelling...") + "\n")
	default:
		b.WriteString(m.styles.Muted.Render("q to cancel") + "\n")
	}
	return b.String()
}

// Run renders job while drawing a progress bar on stderr and returns the
// job's frame and error. Pressing q cancels the render.
func Run(ctx context.Context, job Job, title string) (*render.Frame, error) {
	p := tea.NewProgram(newModel(ctx, job, title), tea.WithOutput(os.Stderr), tea.WithContext(ctx))
	final, err := p.Run()
	if err != nil {
		return nil, err
	}
	m := final.(model)
	return m.frame, m.err
}
