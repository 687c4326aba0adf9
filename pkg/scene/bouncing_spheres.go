package scene

import (
	"math/rand"

	"github.com/df07/go-bvh-pathtracer/pkg/core"
	"github.com/df07/go-bvh-pathtracer/pkg/geometry"
	"github.com/df07/go-bvh-pathtracer/pkg/material"
	"github.com/df07/go-bvh-pathtracer/pkg/renderer"
)

// NewBouncingSpheresScene creates a checkered ground covered by a grid of
// small randomly placed spheres around three large ones. Diffuse spheres
// bounce upward during the shutter interval. The layout depends only on seed.
func NewBouncingSpheresScene(seed int64, cameraOverrides ...renderer.CameraOverride) *Scene {
	cameraConfig := renderer.CameraConfig{
		Center:        core.NewVec3(13, 2, 3),
		LookAt:        core.NewVec3(0, 0, 0),
		Up:            core.NewVec3(0, 1, 0),
		Width:         400,
		AspectRatio:   16.0 / 9.0,
		VFov:          20,
		DefocusAngle:  0.6,
		FocusDistance: 10,
	}
	s := newScene("bouncing-spheres", cameraConfig, SamplingConfig{SamplesPerPixel: 100, MaxDepth: 50}, cameraOverrides)
	random := rand.New(rand.NewSource(seed))

	checker := material.NewCheckerTextureFromColors(0.32, core.NewVec3(0.2, 0.3, 0.1), core.NewVec3(0.9, 0.9, 0.9))
	s.Add(geometry.NewSphere(core.NewVec3(0, -1000, 0), 1000, material.NewTexturedLambertian(checker)))

	clearing := core.NewVec3(4, 0.2, 0)
	for a := -11; a < 11; a++ {
		for b := -11; b < 11; b++ {
			chooseMaterial := random.Float64()
			center := core.NewVec3(float64(a)+0.9*random.Float64(), 0.2, float64(b)+0.9*random.Float64())
			if center.Subtract(clearing).Length() <= 0.9 {
				continue
			}

			switch {
			case chooseMaterial < 0.8:
				albedo := randomColor(random, 0, 1).MultiplyVec(randomColor(random, 0, 1))
				end := center.Add(core.NewVec3(0, randomRange(random, 0, 0.5), 0))
				s.Add(geometry.NewMovingSphere(center, end, 0.2, material.NewLambertian(albedo)))
			case chooseMaterial < 0.95:
				albedo := randomColor(random, 0.5, 1)
				fuzz := randomRange(random, 0, 0.5)
				s.Add(geometry.NewSphere(center, 0.2, material.NewMetal(albedo, fuzz)))
			default:
				s.Add(geometry.NewSphere(center, 0.2, material.NewDielectric(1.5)))
			}
		}
	}

	s.Add(
		geometry.NewSphere(core.NewVec3(0, 1, 0), 1.0, material.NewDielectric(1.5)),
		geometry.NewSphere(core.NewVec3(-4, 1, 0), 1.0, material.NewLambertian(core.NewVec3(0.4, 0.2, 0.1))),
		geometry.NewSphere(core.NewVec3(4, 1, 0), 1.0, material.NewMetal(core.NewVec3(0.7, 0.6, 0.5), 0.0)),
	)
	return s
}

func randomRange(random *rand.Rand, min, max float64) float64 {
	return min + (max-min)*random.Float64()
}

func randomColor(random *rand.Rand, min, max float64) core.Vec3 {
	return core.NewVec3(randomRange(random, min, max), randomRange(random, min, max), randomRange(random, min, max))
}
