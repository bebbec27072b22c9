// Package render fans the per-pixel simulation out over a worker pool and
// fills an RGB buffer.
package render

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/atomic"

	"github.com/san-kum/magbasin/internal/colormap"
	"github.com/san-kum/magbasin/internal/dynamo"
	"github.com/san-kum/magbasin/internal/metrics"
	"github.com/san-kum/magbasin/internal/sim"
)

// Options sizes the image and the worker pool. Workers of zero uses every
// available CPU.
type Options struct {
	Width   int
	Height  int
	Workers int
	// RowsPerTask is the number of rows a worker takes at a time.
	RowsPerTask int
}

// Frame is a finished render.
type Frame struct {
	Buffer  *Buffer
	Results []sim.PixelResult
	Stats   metrics.Summary
	Elapsed time.Duration
}

// Renderer owns one render. Render may be called more than once; Progress is
// safe to poll from other goroutines while it runs.
type Renderer struct {
	scene  *sim.Scene
	mapper *colormap.Mapper
	opts   Options
	sim    *sim.Simulator
	done   atomic.Int64
}

func New(scene *sim.Scene, mapper *colormap.Mapper, opts Options) (*Renderer, error) {
	if scene == nil || mapper == nil {
		return nil, dynamo.Configf("render", "scene and colour mapper are required")
	}
	if opts.Width < 1 || opts.Height < 1 {
		return nil, dynamo.Configf("render.width", "image must be at least 1x1, got %dx%d", opts.Width, opts.Height)
	}
	if opts.Workers < 0 {
		return nil, dynamo.Configf("render.workers", "must be non-negative, got %d", opts.Workers)
	}
	if opts.Workers == 0 {
		opts.Workers = dynamo.DefaultWorkers()
	}
	if opts.RowsPerTask < 1 {
		opts.RowsPerTask = 1
	}
	return &Renderer{
		scene:  scene,
		mapper: mapper,
		opts:   opts,
		sim:    sim.New(scene),
	}, nil
}

// Total is the number of pixels in the image.
func (r *Renderer) Total() int { return r.opts.Width * r.opts.Height }

// Progress returns the number of pixels finished so far and the total.
func (r *Renderer) Progress() (int, int) { return int(r.done.Load()), r.Total() }

// Render simulates every pixel. Rows are handed to at most Workers
// goroutines; each row writes only its own slots of the buffer and the
// result slice. Cancelling ctx stops scheduling rows and returns the
// context's error.
func (r *Renderer) Render(ctx context.Context) (*Frame, error) {
	w, h := r.opts.Width, r.opts.Height
	frame := &Frame{
		Buffer:  NewBuffer(w, h),
		Results: make([]sim.PixelResult, w*h),
	}
	r.done.Store(0)

	log := dynamo.Logger()
	log.Info("render started", "width", w, "height", h, "workers", r.opts.Workers)
	start := time.Now()

	err := dynamo.ParallelFor(ctx, h, r.opts.RowsPerTask, r.opts.Workers, func(y0, y1 int) error {
		for y := y0; y < y1; y++ {
			if err := ctx.Err(); err != nil {
				return err
			}
			r.row(frame, y)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}

	frame.Elapsed = time.Since(start)
	frame.Stats = metrics.Summarize(frame.Results, r.scene.System().NumMagnets())
	log.Info("render finished",
		"elapsed", frame.Elapsed,
		"captured", frame.Stats.Captured(),
		"unresolved", frame.Stats.Outcomes[sim.OutcomeUnresolved.String()],
	)
	return frame, nil
}

func (r *Renderer) row(frame *Frame, y int) {
	w, h := r.opts.Width, r.opts.Height
	for x := range w {
		res := r.sim.Pixel(x, y, w, h)
		frame.Results[y*w+x] = res
		frame.Buffer.Set(x, y, r.mapper.Result(res))
	}
	r.done.Add(int64(w))
}
