package scene

import (
	"math/rand"

	"github.com/df07/go-bvh-pathtracer/pkg/core"
	"github.com/df07/go-bvh-pathtracer/pkg/geometry"
	"github.com/df07/go-bvh-pathtracer/pkg/material"
	"github.com/df07/go-bvh-pathtracer/pkg/renderer"
)

func texturedCameraConfig() renderer.CameraConfig {
	return renderer.CameraConfig{
		Center:      core.NewVec3(13, 2, 3),
		LookAt:      core.NewVec3(0, 0, 0),
		Up:          core.NewVec3(0, 1, 0),
		Width:       400,
		AspectRatio: 16.0 / 9.0,
		VFov:        20,
	}
}

// NewCheckeredSpheresScene creates two large spheres touching at the origin,
// both covered by the same solid checker texture
func NewCheckeredSpheresScene(seed int64, cameraOverrides ...renderer.CameraOverride) *Scene {
	s := newScene("checkered-spheres", texturedCameraConfig(), SamplingConfig{SamplesPerPixel: 100, MaxDepth: 50}, cameraOverrides)

	checker := material.NewTexturedLambertian(
		material.NewCheckerTextureFromColors(0.32, core.NewVec3(0.2, 0.3, 0.1), core.NewVec3(0.9, 0.9, 0.9)))
	s.Add(
		geometry.NewSphere(core.NewVec3(0, -10, 0), 10, checker),
		geometry.NewSphere(core.NewVec3(0, 10, 0), 10, checker),
	)
	return s
}

// NewPerlinSpheresScene creates a marble-like sphere resting on a marble
// ground. The noise permutation tables are drawn from seed.
func NewPerlinSpheresScene(seed int64, cameraOverrides ...renderer.CameraOverride) *Scene {
	s := newScene("perlin-spheres", texturedCameraConfig(), SamplingConfig{SamplesPerPixel: 100, MaxDepth: 50}, cameraOverrides)

	marble := material.NewTexturedLambertian(material.NewNoiseTexture(rand.New(rand.NewSource(seed)), 4))
	s.Add(
		geometry.NewSphere(core.NewVec3(0, -1000, 0), 1000, marble),
		geometry.NewSphere(core.NewVec3(0, 2, 0), 2, marble),
	)
	return s
}
