package integrator

import (
	"github.com/df07/go-bvh-pathtracer/pkg/core"
)

// Integrator defines the interface for light transport algorithms
type Integrator interface {
	// RayColor returns the linear radiance carried back along ray, following
	// at most depth scattering events through world
	RayColor(ray core.Ray, world core.Shape, depth int, sampler core.Sampler) core.Vec3
}
