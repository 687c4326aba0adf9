package renderer

import (
	"errors"
	"fmt"
	"runtime"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/df07/go-bvh-pathtracer/pkg/core"
	"github.com/df07/go-bvh-pathtracer/pkg/integrator"
	"github.com/df07/go-bvh-pathtracer/pkg/log"
)

// ErrInvalidOptions is returned for render options that cannot produce an image
var ErrInvalidOptions = errors.New("invalid render options")

var logger = log.New("renderer")

// Scene interface to avoid circular imports
type Scene interface {
	GetCamera() *Camera
	GetWorld() core.Shape
	GetBackgroundColors() (topColor, bottomColor core.Vec3)
}

// Options controls a single render
type Options struct {
	SamplesPerPixel int   // Number of rays per pixel
	MaxDepth        int   // Maximum ray bounce depth
	NumWorkers      int   // 0 means one per CPU
	Seed            int64 // base seed; equal seeds give identical images
}

// Raytracer renders a scene by splitting the image rows among worker goroutines
type Raytracer struct {
	scene      Scene
	options    Options
	integrator integrator.Integrator
}

// NewRaytracer validates options and prepares a renderer for scene
func NewRaytracer(scene Scene, options Options) (*Raytracer, error) {
	if scene == nil || scene.GetCamera() == nil || scene.GetWorld() == nil {
		return nil, fmt.Errorf("%w: scene has no camera or world", ErrInvalidOptions)
	}
	if options.SamplesPerPixel <= 0 {
		return nil, fmt.Errorf("%w: samples per pixel must be positive, got %d", ErrInvalidOptions, options.SamplesPerPixel)
	}
	if options.MaxDepth < 0 {
		return nil, fmt.Errorf("%w: max depth must not be negative, got %d", ErrInvalidOptions, options.MaxDepth)
	}
	if options.NumWorkers < 0 {
		return nil, fmt.Errorf("%w: worker count must not be negative, got %d", ErrInvalidOptions, options.NumWorkers)
	}
	if options.NumWorkers == 0 {
		options.NumWorkers = runtime.NumCPU()
	}

	topColor, bottomColor := scene.GetBackgroundColors()
	return &Raytracer{
		scene:      scene,
		options:    options,
		integrator: integrator.NewPathTracingIntegrator(topColor, bottomColor),
	}, nil
}

// SetIntegrator replaces the light transport algorithm
func (rt *Raytracer) SetIntegrator(i integrator.Integrator) {
	rt.integrator = i
}

// Options returns the effective options
func (rt *Raytracer) Options() Options {
	return rt.options
}

// Render traces every pixel and returns the linear framebuffer. Rows are
// split into contiguous ranges, one goroutine per range, and Render returns
// once all of them have finished.
func (rt *Raytracer) Render() (*Framebuffer, RenderStats, error) {
	camera := rt.scene.GetCamera()
	world := rt.scene.GetWorld()
	width, height := camera.Width(), camera.Height()

	ranges := PartitionRows(height, rt.options.NumWorkers)
	fb := NewFramebuffer(width, height)
	stats := RenderStats{
		ID:              uuid.New().String(),
		Width:           width,
		Height:          height,
		SamplesPerPixel: rt.options.SamplesPerPixel,
		MaxDepth:        rt.options.MaxDepth,
		Workers:         make([]WorkerStats, len(ranges)),
	}

	logger.Infof("render %s: %dx%d, %d spp, depth %d, %d workers",
		stats.ID, width, height, rt.options.SamplesPerPixel, rt.options.MaxDepth, len(ranges))

	start := time.Now()
	var g errgroup.Group
	for idx, rows := range ranges {
		idx, rows := idx, rows
		g.Go(func() error {
			workerStart := time.Now()
			if err := rt.renderRows(camera, world, fb, rows); err != nil {
				return fmt.Errorf("worker %d: %w", idx, err)
			}
			stats.Workers[idx] = WorkerStats{Worker: idx, Rows: rows, RenderTime: time.Since(workerStart)}
			logger.Debugf("worker %d finished rows [%d, %d) in %s", idx, rows.Start, rows.End, stats.Workers[idx].RenderTime)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, stats, err
	}
	stats.RenderTime = time.Since(start)

	logger.Infof("render %s finished in %s", stats.ID, stats.RenderTime)
	return fb, stats, nil
}

// renderRows fills the rows of fb owned by one worker. Each row draws from its
// own random stream seeded by the row index, so the image does not depend on
// how rows are assigned to workers. A panic while tracing is reported as an error.
func (rt *Raytracer) renderRows(camera *Camera, world core.Shape, fb *Framebuffer, rows RowRange) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("rows [%d, %d): %v", rows.Start, rows.End, r)
		}
	}()

	sampleScale := 1.0 / float64(rt.options.SamplesPerPixel)
	for j := rows.Start; j < rows.End; j++ {
		sampler := core.NewSeededSampler(rowSeed(rt.options.Seed, j))
		for i := 0; i < fb.Width; i++ {
			var colorAccum core.Vec3
			for sample := 0; sample < rt.options.SamplesPerPixel; sample++ {
				ray := camera.GetRay(i, j, sampler)
				colorAccum = colorAccum.Add(rt.integrator.RayColor(ray, world, rt.options.MaxDepth, sampler))
			}
			fb.Set(i, j, colorAccum.Multiply(sampleScale))
		}
	}
	return nil
}

// rowSeed mixes the base seed with a row index
func rowSeed(seed int64, row int) int64 {
	const golden = 0x9E3779B97F4A7C15
	return int64(uint64(seed) ^ (uint64(row)+1)*golden)
}
