package integrator

import (
	"math"

	"github.com/df07/go-bvh-pathtracer/pkg/core"
)

// shadowAcneEpsilon keeps secondary rays from re-hitting the surface they left
const shadowAcneEpsilon = 0.001

// PathTracingIntegrator implements unidirectional path tracing against a
// vertical sky gradient. Surfaces do not emit; all light comes from the sky.
type PathTracingIntegrator struct {
	TopColor    core.Vec3 // sky color straight up
	BottomColor core.Vec3 // sky color straight down
}

// NewPathTracingIntegrator creates a new path tracing integrator
func NewPathTracingIntegrator(topColor, bottomColor core.Vec3) *PathTracingIntegrator {
	return &PathTracingIntegrator{
		TopColor:    topColor,
		BottomColor: bottomColor,
	}
}

// RayColor computes the color for a single ray
func (pt *PathTracingIntegrator) RayColor(ray core.Ray, world core.Shape, depth int, sampler core.Sampler) core.Vec3 {
	// If we've exceeded the ray bounce limit, no more light is gathered
	if depth <= 0 {
		return core.Vec3{}
	}

	hit, isHit := world.Hit(ray, core.NewInterval(shadowAcneEpsilon, math.Inf(1)))
	if !isHit {
		return pt.backgroundGradient(ray)
	}

	scatter, didScatter := hit.Material.Scatter(ray, *hit, sampler)
	if !didScatter {
		// Material absorbed the ray
		return core.Vec3{}
	}

	return scatter.Attenuation.MultiplyVec(pt.RayColor(scatter.Scattered, world, depth-1, sampler))
}

// backgroundGradient returns a gradient color based on ray direction
func (pt *PathTracingIntegrator) backgroundGradient(r core.Ray) core.Vec3 {
	unitDirection := r.Direction.Normalize()

	// Use the y-component to create a gradient (map from -1,1 to 0,1)
	t := 0.5 * (unitDirection.Y + 1.0)

	// Linear interpolation: (1-t)*bottom + t*top
	return pt.BottomColor.Lerp(pt.TopColor, t)
}
