package experiment

import (
	"fmt"
	"sort"
	"strings"

	"github.com/san-kum/magbasin/internal/dynamo"
	"github.com/san-kum/magbasin/internal/integrators"
	"github.com/san-kum/magbasin/internal/metrics"
	"github.com/san-kum/magbasin/internal/physics"
)

type Registry struct {
	integrators map[string]func() dynamo.Integrator
}

func NewRegistry() *Registry {
	r := &Registry{
		integrators: make(map[string]func() dynamo.Integrator),
	}

	r.integrators["euler"] = func() dynamo.Integrator { return integrators.NewEuler() }
	r.integrators["rk4"] = func() dynamo.Integrator { return integrators.NewRK4() }
	r.integrators["rk45"] = func() dynamo.Integrator { return integrators.NewRK45() }

	return r
}

func (r *Registry) GetIntegrator(name string) (dynamo.Integrator, error) {
	fn, ok := r.integrators[strings.ToLower(name)]
	if !ok {
		return nil, dynamo.Configf("simulation.integrator", "unknown integrator %q (have %s)",
			name, strings.Join(r.ListIntegrators(), ", "))
	}
	return fn(), nil
}

func (r *Registry) ListIntegrators() []string {
	names := make([]string, 0, len(r.integrators))
	for name := range r.integrators {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// DefaultMetrics are the diagnostics attached to a traced run.
func (r *Registry) DefaultMetrics(sys *physics.System) []metrics.Metric {
	ms := []metrics.Metric{metrics.NewEnergyDrift(sys)}
	if sys.Mode() == physics.Rigour {
		ms = append(ms, metrics.NewConstraintDrift(sys.Pendulum().Suspension, sys.RodLength()))
	}
	return ms
}

func (r *Registry) String() string {
	return fmt.Sprintf("integrators: %s", strings.Join(r.ListIntegrators(), ", "))
}
