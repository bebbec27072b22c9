// Package experiment turns a configuration into a ready-to-run scene and
// drives renders and traces over it.
package experiment

import (
	"context"

	"github.com/san-kum/magbasin/internal/colormap"
	"github.com/san-kum/magbasin/internal/config"
	"github.com/san-kum/magbasin/internal/dynamo"
	"github.com/san-kum/magbasin/internal/metrics"
	"github.com/san-kum/magbasin/internal/render"
	"github.com/san-kum/magbasin/internal/sim"
)

type Experiment struct {
	cfg      *config.Config
	registry *Registry
	scene    *sim.Scene
	mapper   *colormap.Mapper
}

// New validates cfg and builds the scene. The configuration is cloned so the
// caller may keep editing its copy.
func New(cfg *config.Config) (*Experiment, error) {
	if cfg == nil {
		return nil, dynamo.Configf("config", "nil configuration")
	}
	cfg = cfg.Clone()
	reg := NewRegistry()

	integ, err := reg.GetIntegrator(cfg.IntegratorName())
	if err != nil {
		return nil, err
	}

	scene, mapper, err := cfg.Build(integ)
	if err != nil {
		return nil, err
	}
	return &Experiment{cfg: cfg, registry: reg, scene: scene, mapper: mapper}, nil
}

func (e *Experiment) Config() *config.Config  { return e.cfg }
func (e *Experiment) Scene() *sim.Scene        { return e.scene }
func (e *Experiment) Mapper() *colormap.Mapper { return e.mapper }
func (e *Experiment) Registry() *Registry      { return e.registry }

// Renderer returns a renderer for the configured image size. Callers that
// want to poll progress keep it and call Render themselves.
func (e *Experiment) Renderer() (*render.Renderer, error) {
	return render.New(e.scene, e.mapper, e.cfg.RenderOptions())
}

func (e *Experiment) Render(ctx context.Context) (*render.Frame, error) {
	r, err := e.Renderer()
	if err != nil {
		return nil, err
	}
	return r.Render(ctx)
}

// Trace is a traced run with its diagnostics.
type Trace struct {
	*sim.Trajectory
	Metrics map[string]float64
}

// Trace follows the bob released above (x, y). An unstable run still returns
// the partial trace along with the error.
func (e *Experiment) Trace(x, y float64) (*Trace, error) {
	s := sim.New(e.scene)
	ms := e.registry.DefaultMetrics(e.scene.System())
	for _, m := range ms {
		s.AddObserver(m)
	}

	tr, err := s.Trace(x, y)
	if tr == nil {
		return nil, err
	}
	out := &Trace{Trajectory: tr, Metrics: make(map[string]float64, len(ms))}
	for _, m := range ms {
		out.Metrics[m.Name()] = m.Value()
	}
	return out, err
}

// Summary recomputes the outcome counts of a finished frame.
func (e *Experiment) Summary(f *render.Frame) metrics.Summary {
	return metrics.Summarize(f.Results, e.scene.System().NumMagnets())
}
