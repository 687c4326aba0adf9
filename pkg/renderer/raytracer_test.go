package renderer

import (
	"bytes"
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/df07/go-bvh-pathtracer/pkg/core"
	"github.com/df07/go-bvh-pathtracer/pkg/geometry"
	"github.com/df07/go-bvh-pathtracer/pkg/material"
)

// testScene is a minimal Scene built directly in tests
type testScene struct {
	camera *Camera
	world  core.Shape
}

func (s *testScene) GetCamera() *Camera   { return s.camera }
func (s *testScene) GetWorld() core.Shape { return s.world }
func (s *testScene) GetBackgroundColors() (core.Vec3, core.Vec3) {
	return core.NewVec3(0.5, 0.7, 1.0), core.NewVec3(1.0, 1.0, 1.0)
}

// singleSphereScene looks straight down at a diffuse sphere at the origin
func singleSphereScene() *testScene {
	world := geometry.NewShapeList(
		geometry.NewSphere(core.NewVec3(0, 0, 0), 0.5, material.NewLambertian(core.NewVec3(0.5, 0.5, 0.5))),
	)
	camera := NewCamera(CameraConfig{
		Center:      core.NewVec3(0, 2, 0),
		LookAt:      core.NewVec3(0, 0, 0),
		Up:          core.NewVec3(0, 0, -1),
		Width:       21,
		AspectRatio: 1,
		VFov:        40,
	})
	return &testScene{camera: camera, world: geometry.NewBVH(world)}
}

// mixedScene exercises every material and a moving sphere
func mixedScene() *testScene {
	world := geometry.NewShapeList(
		geometry.NewSphere(core.NewVec3(0, -100.5, -1), 100,
			material.NewTexturedLambertian(material.NewCheckerTextureFromColors(0.5, core.NewVec3(0.2, 0.3, 0.1), core.NewVec3(0.9, 0.9, 0.9)))),
		geometry.NewSphere(core.NewVec3(0, 0, -1.2), 0.5, material.NewLambertian(core.NewVec3(0.1, 0.2, 0.5))),
		geometry.NewSphere(core.NewVec3(-1, 0, -1), 0.5, material.NewDielectric(1.5)),
		geometry.NewSphere(core.NewVec3(-1, 0, -1), 0.4, material.NewDielectric(1/1.5)),
		geometry.NewSphere(core.NewVec3(1, 0, -1), 0.5, material.NewMetal(core.NewVec3(0.8, 0.6, 0.2), 0.3)),
		geometry.NewMovingSphere(core.NewVec3(0.4, -0.3, -0.5), core.NewVec3(0.4, -0.1, -0.5), 0.1,
			material.NewLambertian(core.NewVec3(0.7, 0.2, 0.2))),
	)
	camera := NewCamera(CameraConfig{
		Center:        core.NewVec3(-2, 2, 1),
		LookAt:        core.NewVec3(0, 0, -1),
		Up:            core.NewVec3(0, 1, 0),
		Width:         24,
		AspectRatio:   1.5,
		VFov:          30,
		DefocusAngle:  2,
		FocusDistance: 3.4,
	})
	return &testScene{camera: camera, world: geometry.NewBVH(world)}
}

func render(t *testing.T, scene Scene, options Options) (*Framebuffer, RenderStats) {
	t.Helper()
	rt, err := NewRaytracer(scene, options)
	if err != nil {
		t.Fatalf("NewRaytracer() returned error: %v", err)
	}
	fb, stats, err := rt.Render()
	if err != nil {
		t.Fatalf("Render() returned error: %v", err)
	}
	return fb, stats
}

func TestRender_SingleSphereCenterAndCorner(t *testing.T) {
	fb, _ := render(t, singleSphereScene(), Options{SamplesPerPixel: 1, MaxDepth: 1, NumWorkers: 3, Seed: 1})

	// The center ray hits the sphere and has no depth left to scatter
	if center := fb.At(10, 10); center != (core.Vec3{}) {
		t.Errorf("Expected black center pixel, got %v", center)
	}

	// The corner ray misses and sees the sky, mostly its bottom color
	corner := fb.At(0, 0)
	if math.Abs(corner.Z-1.0) > 1e-9 {
		t.Errorf("Expected full blue in the corner, got %v", corner)
	}
	if corner.X < 0.5 {
		t.Errorf("Expected red >= 0.5 in the corner, got %v", corner)
	}
}

func TestRender_Idempotent(t *testing.T) {
	options := Options{SamplesPerPixel: 4, MaxDepth: 6, NumWorkers: 4, Seed: 99}
	first, _ := render(t, mixedScene(), options)
	second, _ := render(t, mixedScene(), options)

	for idx := range first.Pixels {
		if first.Pixels[idx] != second.Pixels[idx] {
			t.Fatalf("Pixel %d differs between runs: %v vs %v", idx, first.Pixels[idx], second.Pixels[idx])
		}
	}
}

func TestRender_WorkerCountDoesNotChangeImage(t *testing.T) {
	scene := mixedScene()
	single, _ := render(t, scene, Options{SamplesPerPixel: 3, MaxDepth: 5, NumWorkers: 1, Seed: 5})

	for _, workers := range []int{2, 3, 7, 16, 1000} {
		multi, stats := render(t, scene, Options{SamplesPerPixel: 3, MaxDepth: 5, NumWorkers: workers, Seed: 5})
		for idx := range single.Pixels {
			if single.Pixels[idx] != multi.Pixels[idx] {
				t.Fatalf("%d workers: pixel %d differs: %v vs %v", workers, idx, single.Pixels[idx], multi.Pixels[idx])
			}
		}
		expectedWorkers := workers
		if expectedWorkers > multi.Height {
			expectedWorkers = multi.Height
		}
		if len(stats.Workers) != expectedWorkers {
			t.Errorf("%d workers: expected %d worker stats, got %d", workers, expectedWorkers, len(stats.Workers))
		}
	}
}

func TestRender_SeedChangesImage(t *testing.T) {
	scene := mixedScene()
	a, _ := render(t, scene, Options{SamplesPerPixel: 2, MaxDepth: 5, NumWorkers: 2, Seed: 1})
	b, _ := render(t, scene, Options{SamplesPerPixel: 2, MaxDepth: 5, NumWorkers: 2, Seed: 2})

	for idx := range a.Pixels {
		if a.Pixels[idx] != b.Pixels[idx] {
			return
		}
	}
	t.Error("Different seeds produced identical images")
}

func TestRender_Stats(t *testing.T) {
	_, stats := render(t, singleSphereScene(), Options{SamplesPerPixel: 2, MaxDepth: 2, NumWorkers: 4, Seed: 1})

	if stats.ID == "" {
		t.Error("Expected a render ID")
	}
	if stats.Width != 21 || stats.Height != 21 || stats.TotalSamples() != 21*21*2 {
		t.Errorf("Unexpected stats %+v", stats)
	}

	rows := 0
	for idx, w := range stats.Workers {
		if w.Worker != idx {
			t.Errorf("Worker stats out of order: index %d has worker %d", idx, w.Worker)
		}
		rows += w.Rows.Len()
	}
	if rows != 21 {
		t.Errorf("Workers covered %d rows, expected 21", rows)
	}

	var buf bytes.Buffer
	stats.WriteTable(&buf)
	out := buf.String()
	if !strings.Contains(out, "TOTAL") || !strings.Contains(out, "% of frame") {
		t.Errorf("Stats table missing expected columns:\n%s", out)
	}
}

func TestNewRaytracer_InvalidOptions(t *testing.T) {
	scene := singleSphereScene()
	tests := []struct {
		name    string
		scene   Scene
		options Options
	}{
		{"zero samples", scene, Options{SamplesPerPixel: 0, MaxDepth: 5}},
		{"negative depth", scene, Options{SamplesPerPixel: 1, MaxDepth: -1}},
		{"negative workers", scene, Options{SamplesPerPixel: 1, MaxDepth: 5, NumWorkers: -2}},
		{"missing camera", &testScene{world: scene.world}, Options{SamplesPerPixel: 1, MaxDepth: 5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewRaytracer(tt.scene, tt.options)
			if !errors.Is(err, ErrInvalidOptions) {
				t.Errorf("Expected ErrInvalidOptions, got %v", err)
			}
		})
	}

	rt, err := NewRaytracer(scene, Options{SamplesPerPixel: 1, MaxDepth: 5})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if rt.Options().NumWorkers <= 0 {
		t.Errorf("Zero workers should default to the CPU count, got %d", rt.Options().NumWorkers)
	}
}

func TestRender_WorkerPanicBecomesError(t *testing.T) {
	// A sphere without a material cannot scatter
	world := geometry.NewShapeList(geometry.NewSphere(core.NewVec3(0, 0, 0), 0.5, nil))
	scene := singleSphereScene()
	scene.world = world

	rt, err := NewRaytracer(scene, Options{SamplesPerPixel: 1, MaxDepth: 3, NumWorkers: 2, Seed: 1})
	if err != nil {
		t.Fatalf("NewRaytracer() returned error: %v", err)
	}
	if _, _, err := rt.Render(); err == nil {
		t.Error("Expected an error from the failing worker")
	}
}

// constantIntegrator returns the same radiance for every ray
type constantIntegrator struct {
	color core.Vec3
}

func (c constantIntegrator) RayColor(ray core.Ray, world core.Shape, depth int, sampler core.Sampler) core.Vec3 {
	return c.color
}

func TestRender_SetIntegrator(t *testing.T) {
	rt, err := NewRaytracer(singleSphereScene(), Options{SamplesPerPixel: 3, MaxDepth: 2, NumWorkers: 2, Seed: 1})
	if err != nil {
		t.Fatalf("NewRaytracer() returned error: %v", err)
	}
	rt.SetIntegrator(constantIntegrator{color: core.NewVec3(0.25, 0.5, 1)})

	fb, _, err := rt.Render()
	if err != nil {
		t.Fatalf("Render() returned error: %v", err)
	}
	for idx, p := range fb.Pixels {
		if math.Abs(p.X-0.25) > 1e-12 || math.Abs(p.Y-0.5) > 1e-12 || math.Abs(p.Z-1) > 1e-12 {
			t.Fatalf("Pixel %d = %v, expected the integrator's constant color", idx, p)
		}
	}
}
