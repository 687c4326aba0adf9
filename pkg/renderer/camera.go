package renderer

import (
	"math"

	"github.com/df07/go-bvh-pathtracer/pkg/core"
)

// CameraConfig describes a thin-lens perspective camera
type CameraConfig struct {
	Center        core.Vec3 // camera position
	LookAt        core.Vec3 // point the camera is aimed at
	Up            core.Vec3 // approximate up direction
	Width         int       // image width in pixels
	AspectRatio   float64   // width / height
	VFov          float64   // vertical field of view in degrees
	DefocusAngle  float64   // cone angle in degrees through each pixel; 0 disables depth of field
	FocusDistance float64   // distance to the plane of perfect focus; 0 uses the look-at distance
}

// Camera generates rays for rendering. All derived values are computed once
// in NewCamera and never change, so a Camera is safe for concurrent use.
type Camera struct {
	config      CameraConfig
	width       int
	height      int
	center      core.Vec3
	pixel00     core.Vec3 // center of the top-left pixel
	pixelDeltaU core.Vec3 // offset to the pixel on the right
	pixelDeltaV core.Vec3 // offset to the pixel below
	w           core.Vec3 // points opposite the view direction
	defocusU    core.Vec3
	defocusV    core.Vec3
}

// NewCamera derives the camera basis, pixel grid and defocus disk from config
func NewCamera(config CameraConfig) *Camera {
	if config.Width <= 0 {
		config.Width = 100
	}
	if config.AspectRatio <= 0 {
		config.AspectRatio = 1.0
	}
	if config.VFov <= 0 {
		config.VFov = 90
	}

	height := int(float64(config.Width) / config.AspectRatio)
	if height < 1 {
		height = 1
	}

	focusDistance := config.FocusDistance
	if focusDistance <= 0 {
		focusDistance = config.Center.Subtract(config.LookAt).Length()
	}
	if focusDistance <= 0 {
		focusDistance = 1
	}

	theta := degreesToRadians(config.VFov)
	viewportHeight := 2 * math.Tan(theta/2) * focusDistance
	viewportWidth := viewportHeight * (float64(config.Width) / float64(height))

	// Orthonormal camera basis
	w := config.Center.Subtract(config.LookAt).Normalize()
	if w.NearZero() {
		w = core.NewVec3(0, 0, 1)
	}
	up := config.Up
	if up.Cross(w).LengthSquared() < 1e-12 {
		up = alternateUp(w)
	}
	u := up.Cross(w).Normalize()
	v := w.Cross(u)

	viewportU := u.Multiply(viewportWidth)
	viewportV := v.Multiply(-viewportHeight)
	pixelDeltaU := viewportU.Divide(float64(config.Width))
	pixelDeltaV := viewportV.Divide(float64(height))

	upperLeft := config.Center.
		Subtract(w.Multiply(focusDistance)).
		Subtract(viewportU.Multiply(0.5)).
		Subtract(viewportV.Multiply(0.5))
	pixel00 := upperLeft.Add(pixelDeltaU.Add(pixelDeltaV).Multiply(0.5))

	defocusRadius := focusDistance * math.Tan(degreesToRadians(config.DefocusAngle/2))

	return &Camera{
		config:      config,
		width:       config.Width,
		height:      height,
		center:      config.Center,
		pixel00:     pixel00,
		pixelDeltaU: pixelDeltaU,
		pixelDeltaV: pixelDeltaV,
		w:           w,
		defocusU:    u.Multiply(defocusRadius),
		defocusV:    v.Multiply(defocusRadius),
	}
}

// alternateUp picks the world axis least aligned with w
func alternateUp(w core.Vec3) core.Vec3 {
	ax, ay, az := math.Abs(w.X), math.Abs(w.Y), math.Abs(w.Z)
	switch {
	case ax <= ay && ax <= az:
		return core.NewVec3(1, 0, 0)
	case ay <= az:
		return core.NewVec3(0, 1, 0)
	default:
		return core.NewVec3(0, 0, 1)
	}
}

func degreesToRadians(degrees float64) float64 {
	return degrees * math.Pi / 180.0
}

// GetRay returns a ray through a random point of pixel (i, j), where (0, 0)
// is the top-left pixel. With depth of field enabled the origin is sampled on
// the defocus disk. The ray time is uniform in [0, 1).
func (c *Camera) GetRay(i, j int, sampler core.Sampler) core.Ray {
	offset := core.SampleSquare(sampler.Get2D())
	pixelSample := c.pixel00.
		Add(c.pixelDeltaU.Multiply(float64(i) + offset.X)).
		Add(c.pixelDeltaV.Multiply(float64(j) + offset.Y))

	origin := c.center
	if c.config.DefocusAngle > 0 {
		p := core.SamplePointInUnitDisk(sampler.Get2D())
		origin = c.center.Add(c.defocusU.Multiply(p.X)).Add(c.defocusV.Multiply(p.Y))
	}

	return core.NewRayAtTime(origin, pixelSample.Subtract(origin), sampler.Get1D())
}

// GetCameraForward returns the unit view direction
func (c *Camera) GetCameraForward() core.Vec3 {
	return c.w.Negate()
}

// Width returns the image width in pixels
func (c *Camera) Width() int {
	return c.width
}

// Height returns the image height in pixels
func (c *Camera) Height() int {
	return c.height
}

// Config returns the configuration after defaults were applied
func (c *Camera) Config() CameraConfig {
	return c.config
}

// CameraOverride replaces the CameraConfig fields that are non-nil, so zero
// values such as an origin look-at or a zero defocus angle can be set
type CameraOverride struct {
	Center        *core.Vec3
	LookAt        *core.Vec3
	Up            *core.Vec3
	Width         *int
	AspectRatio   *float64
	VFov          *float64
	DefocusAngle  *float64
	FocusDistance *float64
}

// WidthOverride overrides only the image width. A width <= 0 overrides nothing.
func WidthOverride(width int) CameraOverride {
	if width <= 0 {
		return CameraOverride{}
	}
	return CameraOverride{Width: &width}
}

// MergeCameraConfig returns base with every set field of override applied
func MergeCameraConfig(base CameraConfig, override CameraOverride) CameraConfig {
	merged := base
	if override.Center != nil {
		merged.Center = *override.Center
	}
	if override.LookAt != nil {
		merged.LookAt = *override.LookAt
	}
	if override.Up != nil {
		merged.Up = *override.Up
	}
	if override.Width != nil {
		merged.Width = *override.Width
	}
	if override.AspectRatio != nil {
		merged.AspectRatio = *override.AspectRatio
	}
	if override.VFov != nil {
		merged.VFov = *override.VFov
	}
	if override.DefocusAngle != nil {
		merged.DefocusAngle = *override.DefocusAngle
	}
	if override.FocusDistance != nil {
		merged.FocusDistance = *override.FocusDistance
	}
	return merged
}
