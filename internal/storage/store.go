package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/zeebo/xxh3"
	"gopkg.in/yaml.v3"

	"github.com/san-kum/magbasin/internal/basin"
	"github.com/san-kum/magbasin/internal/config"
	"github.com/san-kum/magbasin/internal/dynamo"
	"github.com/san-kum/magbasin/internal/imageio"
	"github.com/san-kum/magbasin/internal/metrics"
	"github.com/san-kum/magbasin/internal/render"
	"github.com/san-kum/magbasin/internal/sim"
)

const (
	metadataFile = "metadata.json"
	configFile   = "config.yaml"
	basinsFile   = "basins.csv"
	imageFile    = "image.png"
)

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Timestamp   time.Time    `json:"timestamp"`
	Fingerprint string       `json:"fingerprint"`
	Mode        string       `json:"mode"`
	Magnets     int          `json:"magnets"`
	Integrator  string       `json:"integrator"`
	TimeStep    float64      `json:"time_step"`
	MaxSteps    int          `json:"max_steps"`
	Width       int          `json:"width"`
	Height      int          `json:"height"`
	Bounds      basin.Bounds `json:"bounds"`
	// Thresholds are formatted with strconv so ±Inf survive JSON.
	Thresholds []string        `json:"thresholds"`
	ElapsedSec float64         `json:"elapsed_sec"`
	Stats      metrics.Summary `json:"stats"`
}

// Run is everything Save persists.
type Run struct {
	Name       string
	Config     *config.Config
	Bounds     basin.Bounds
	Thresholds []float64
	Frame      *render.Frame
}

// Fingerprint hashes the YAML form of a configuration.
func Fingerprint(cfg *config.Config) (string, error) {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%016x", xxh3.Hash(data)), nil
}

// Save writes metadata.json, config.yaml, basins.csv and image.png into a new
// run directory and returns the run ID.
func (s *Store) Save(run Run) (string, error) {
	fp, err := Fingerprint(run.Config)
	if err != nil {
		return "", err
	}
	name := run.Name
	if name == "" {
		name = "render"
	}
	now := time.Now()
	runID := fmt.Sprintf("%s_%d_%s", name, now.Unix(), fp[:8])
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	f := run.Frame
	meta := RunMetadata{
		ID:          runID,
		Name:        name,
		Timestamp:   now,
		Fingerprint: fp,
		Mode:        run.Config.Pendulum.Approximate,
		Magnets:     len(run.Config.Magnets),
		Integrator:  run.Config.IntegratorName(),
		TimeStep:    run.Config.Simulation.TimeStep,
		MaxSteps:    run.Config.Simulation.MaxSteps,
		Width:       f.Buffer.Width,
		Height:      f.Buffer.Height,
		Bounds:      run.Bounds,
		Thresholds:  formatFloats(run.Thresholds),
		ElapsedSec:  f.Elapsed.Seconds(),
		Stats:       f.Stats,
	}

	if err := writeJSON(filepath.Join(runDir, metadataFile), meta); err != nil {
		return "", err
	}
	if err := config.Save(filepath.Join(runDir, configFile), run.Config); err != nil {
		return "", err
	}
	if err := writeBasins(filepath.Join(runDir, basinsFile), f); err != nil {
		return "", err
	}
	if err := imageio.Save(filepath.Join(runDir, imageFile), f.Buffer); err != nil {
		return "", err
	}

	dynamo.Logger().Info("run stored", "id", runID, "dir", runDir)
	return runID, nil
}

func writeJSON(path string, v any) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeBasins(path string, f *render.Frame) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	w := csv.NewWriter(file)
	if err := w.Write([]string{"px", "py", "magnet", "steps", "outcome"}); err != nil {
		return err
	}

	width := f.Buffer.Width
	for i, r := range f.Results {
		row := []string{
			strconv.Itoa(i % width),
			strconv.Itoa(i / width),
			strconv.Itoa(r.Magnet),
			strconv.Itoa(r.Steps),
			r.Outcome.String(),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

func formatFloats(vs []float64) []string {
	out := make([]string, len(vs))
	for i, v := range vs {
		out[i] = strconv.FormatFloat(v, 'g', -1, 64)
	}
	return out
}

// ParseThresholds reverses the string encoding used in RunMetadata.
func ParseThresholds(vs []string) ([]float64, error) {
	out := make([]float64, len(vs))
	for i, v := range vs {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return nil, err
		}
		out[i] = f
	}
	return out, nil
}

// List returns stored runs, newest first.
func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		runs = append(runs, *meta)
	}

	sort.Slice(runs, func(i, j int) bool { return runs[i].Timestamp.After(runs[j].Timestamp) })
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, metadataFile))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}

	return &meta, nil
}

// LoadConfig reads the configuration a run was rendered with.
func (s *Store) LoadConfig(runID string) (*config.Config, error) {
	return config.Load(filepath.Join(s.baseDir, runID, configFile))
}

// LoadResults reads basins.csv back in row-major order.
func (s *Store) LoadResults(runID string) ([]sim.PixelResult, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, basinsFile))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = 5

	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) < 2 {
		return []sim.PixelResult{}, nil
	}

	outcomes := make(map[string]sim.Outcome, len(sim.Outcomes))
	for _, o := range sim.Outcomes {
		outcomes[o.String()] = o
	}

	results := make([]sim.PixelResult, 0, len(records)-1)
	for i, record := range records[1:] {
		magnet, err1 := strconv.Atoi(record[2])
		steps, err2 := strconv.Atoi(record[3])
		outcome, ok := outcomes[record[4]]
		if err1 != nil || err2 != nil || !ok {
			return nil, fmt.Errorf("storage: %s line %d: malformed record %v", basinsFile, i+2, record)
		}
		results = append(results, sim.PixelResult{Magnet: magnet, Steps: steps, Outcome: outcome})
	}

	return results, nil
}

// ImagePath is where the run's image copy lives.
func (s *Store) ImagePath(runID string) string {
	return filepath.Join(s.baseDir, runID, imageFile)
}

// ExportJSON writes a run's metadata as indented JSON.
func (s *Store) ExportJSON(w io.Writer, runID string) error {
	meta, err := s.Load(runID)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(meta)
}
