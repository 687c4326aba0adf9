package cmd

import (
	"bytes"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/df07/go-bvh-pathtracer/pkg/config"
	"github.com/df07/go-bvh-pathtracer/pkg/imageio"
	"github.com/df07/go-bvh-pathtracer/pkg/renderer"
	"github.com/df07/go-bvh-pathtracer/pkg/scene"
	"github.com/urfave/cli"
)

// renderSettings is the merged result of flags, environment and scene defaults
type renderSettings struct {
	scene   string
	width   int
	spp     int
	depth   int
	workers int
	seed    int64
	out     string
	useBVH  bool
}

// resolveSettings applies explicitly set flags over the environment config.
// Zero width, spp and depth are filled in from the scene later.
func resolveSettings(ctx *cli.Context, cfg *config.Config, now time.Time) (renderSettings, error) {
	settings := renderSettings{
		scene:   ctx.String("scene"),
		width:   cfg.Width,
		spp:     cfg.SamplesPerPixel,
		depth:   cfg.MaxDepth,
		workers: cfg.Workers,
		seed:    cfg.Seed,
		out:     ctx.String("out"),
		useBVH:  ctx.BoolT("bvh"),
	}

	if ctx.IsSet("width") {
		settings.width = ctx.Int("width")
	}
	if ctx.IsSet("spp") {
		settings.spp = ctx.Int("spp")
	}
	if ctx.IsSet("depth") {
		settings.depth = ctx.Int("depth")
	}
	if ctx.IsSet("workers") {
		settings.workers = ctx.Int("workers")
	}
	if ctx.IsSet("seed") {
		settings.seed = ctx.Int64("seed")
	}

	if settings.width < 0 || settings.spp < 0 || settings.depth < 0 || settings.workers < 0 {
		return settings, errors.New("width, spp, depth and workers must not be negative")
	}

	if settings.out == "" {
		filename := fmt.Sprintf("render_%s.png", now.Format("20060102_150405"))
		settings.out = filepath.Join(cfg.OutputDir, settings.scene, filename)
	}
	return settings, nil
}

// Render a still frame.
func RenderFrame(ctx *cli.Context) error {
	cfg, err := loadConfig(ctx)
	if err != nil {
		return err
	}

	settings, err := resolveSettings(ctx, cfg, time.Now())
	if err != nil {
		return err
	}

	sc, err := scene.Create(settings.scene, settings.seed, renderer.WidthOverride(settings.width))
	if err != nil {
		return err
	}
	sc.UseBVH = settings.useBVH

	opts := renderer.Options{
		SamplesPerPixel: settings.spp,
		MaxDepth:        settings.depth,
		NumWorkers:      settings.workers,
		Seed:            settings.seed,
	}
	if opts.SamplesPerPixel == 0 {
		opts.SamplesPerPixel = sc.SamplingConfig.SamplesPerPixel
	}
	if opts.MaxDepth == 0 {
		opts.MaxDepth = sc.SamplingConfig.MaxDepth
	}

	rt, err := renderer.NewRaytracer(sc, opts)
	if err != nil {
		return err
	}

	logger.Infof("rendering %q (%d primitives) at %dx%d, %d spp, depth %d, bvh %t",
		sc.Name, sc.GetPrimitiveCount(), sc.GetCamera().Width(), sc.GetCamera().Height(), opts.SamplesPerPixel, opts.MaxDepth, sc.UseBVH)
	fb, stats, err := rt.Render()
	if err != nil {
		return err
	}

	start := time.Now()
	if err := imageio.Save(settings.out, fb.ToImage()); err != nil {
		return err
	}
	logger.Noticef("wrote frame to %s in %d ms", settings.out, time.Since(start).Milliseconds())

	// Display stats
	displayFrameStats(stats)

	return nil
}

func displayFrameStats(stats renderer.RenderStats) {
	var buf bytes.Buffer
	stats.WriteTable(&buf)
	logger.Noticef("frame %s statistics (%d samples)\n%s", stats.ID, stats.TotalSamples(), buf.String())
}
