package scene

import (
	"fmt"

	"github.com/df07/go-bvh-pathtracer/pkg/core"
	"github.com/df07/go-bvh-pathtracer/pkg/geometry"
	"github.com/df07/go-bvh-pathtracer/pkg/log"
	"github.com/df07/go-bvh-pathtracer/pkg/renderer"
)

var logger = log.New("scene")

// Scene contains all the elements needed for rendering
type Scene struct {
	Name           string
	World          *geometry.ShapeList // Objects in the scene
	BVH            *geometry.BVHNode   // Acceleration structure built from World
	Camera         *renderer.Camera
	CameraConfig   renderer.CameraConfig
	SamplingConfig SamplingConfig
	TopColor       core.Vec3 // Sky color straight up
	BottomColor    core.Vec3 // Sky color at the horizon and below
	UseBVH         bool      // false renders against the flat list
}

// SamplingConfig contains the scene's preferred rendering configuration
type SamplingConfig struct {
	SamplesPerPixel int // Number of rays per pixel
	MaxDepth        int // Maximum ray bounce depth
}

// newScene creates an empty scene with the standard sky gradient
func newScene(name string, cameraConfig renderer.CameraConfig, sampling SamplingConfig, cameraOverrides []renderer.CameraOverride) *Scene {
	if len(cameraOverrides) > 0 {
		cameraConfig = renderer.MergeCameraConfig(cameraConfig, cameraOverrides[0])
	}
	return &Scene{
		Name:           name,
		World:          geometry.NewShapeList(),
		CameraConfig:   cameraConfig,
		SamplingConfig: sampling,
		TopColor:       core.NewVec3(0.5, 0.7, 1.0),
		BottomColor:    core.NewVec3(1.0, 1.0, 1.0),
		UseBVH:         true,
	}
}

// Add appends shapes to the world
func (s *Scene) Add(shapes ...core.Shape) {
	for _, shape := range shapes {
		s.World.Add(shape)
	}
}

// Preprocess builds the BVH over the world and the camera from CameraConfig.
// It must be called again after the world or camera configuration changes.
func (s *Scene) Preprocess() error {
	if s.World == nil || s.World.Len() == 0 {
		return fmt.Errorf("scene %q has no shapes", s.Name)
	}

	s.BVH = geometry.NewBVH(s.World)
	s.Camera = renderer.NewCamera(s.CameraConfig)

	stats := s.BVH.Stats()
	logger.Debugf("scene %q: %d primitives, %d BVH nodes, depth %d", s.Name, stats.Primitives, stats.Nodes, stats.MaxDepth)
	return nil
}

// GetCamera returns the scene camera, nil before Preprocess
func (s *Scene) GetCamera() *renderer.Camera {
	return s.Camera
}

// GetWorld returns the shape rays are traced against
func (s *Scene) GetWorld() core.Shape {
	if s.UseBVH && s.BVH != nil {
		return s.BVH
	}
	return s.World
}

// GetBackgroundColors returns the sky gradient
func (s *Scene) GetBackgroundColors() (topColor, bottomColor core.Vec3) {
	return s.TopColor, s.BottomColor
}

// GetPrimitiveCount returns the number of shapes in the world
func (s *Scene) GetPrimitiveCount() int {
	return s.World.Len()
}
