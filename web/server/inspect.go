package server

import (
	"errors"
	"fmt"
	"math"
	"net/http"

	"github.com/df07/go-bvh-pathtracer/pkg/core"
	"github.com/df07/go-bvh-pathtracer/pkg/material"
	"github.com/df07/go-bvh-pathtracer/pkg/scene"
)

// InspectResponse represents the JSON response for object inspection
type InspectResponse struct {
	Hit          bool                   `json:"hit"`
	MaterialType string                 `json:"materialType,omitempty"`
	Point        [3]float64             `json:"point"`
	Normal       [3]float64             `json:"normal"`
	Distance     float64                `json:"distance"`
	FrontFace    bool                   `json:"frontFace"`
	Properties   map[string]interface{} `json:"properties,omitempty"`
}

// pixelCenterSampler aims camera rays at pixel centers through the lens center at time 0
type pixelCenterSampler struct{}

func (pixelCenterSampler) Get1D() float64   { return 0 }
func (pixelCenterSampler) Get2D() core.Vec2 { return core.NewVec2(0.5, 0.5) }
func (pixelCenterSampler) Get3D() core.Vec3 { return core.NewVec3(0.5, 0.5, 0.5) }

// extractMaterialInfo extracts detailed material information with type assertions
func extractMaterialInfo(mat core.Material) (string, map[string]interface{}) {
	properties := make(map[string]interface{})

	switch m := mat.(type) {
	case *material.Lambertian:
		switch tex := m.Albedo.(type) {
		case *material.SolidColor:
			properties["albedo"] = vecArray(tex.Color)
			properties["color"] = hexColor(tex.Color)
		case *material.CheckerTexture:
			properties["texture"] = "checker"
		case *material.NoiseTexture:
			properties["texture"] = "noise"
			properties["scale"] = tex.Scale
		}
		return "lambertian", properties

	case *material.Metal:
		properties["albedo"] = vecArray(m.Albedo)
		properties["color"] = hexColor(m.Albedo)
		properties["fuzzness"] = m.Fuzzness
		return "metal", properties

	case *material.Dielectric:
		properties["refractiveIndex"] = m.RefractiveIndex
		properties["color"] = "#ffffff"
		return "dielectric", properties

	default:
		return "unknown", properties
	}
}

func vecArray(v core.Vec3) [3]float64 {
	return [3]float64{v.X, v.Y, v.Z}
}

func hexColor(c core.Vec3) string {
	channel := func(x float64) int {
		return int(math.Max(0, math.Min(1, x)) * 255)
	}
	return fmt.Sprintf("#%02x%02x%02x", channel(c.X), channel(c.Y), channel(c.Z))
}

// inspectPixel casts a ray through the center of pixel (x, y) and reports the first surface hit
func inspectPixel(sc *scene.Scene, x, y int) InspectResponse {
	ray := sc.GetCamera().GetRay(x, y, pixelCenterSampler{})
	hit, ok := sc.GetWorld().Hit(ray, core.NewInterval(0.001, math.Inf(1)))
	if !ok {
		return InspectResponse{Hit: false}
	}

	materialType, properties := extractMaterialInfo(hit.Material)
	return InspectResponse{
		Hit:          true,
		MaterialType: materialType,
		Point:        vecArray(hit.Point),
		Normal:       vecArray(hit.Normal),
		Distance:     hit.T * ray.Direction.Length(),
		FrontFace:    hit.FrontFace,
		Properties:   properties,
	}
}

// handleInspect reports what the camera sees through a single pixel
func (s *Server) handleInspect(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	name := query.Get("scene")
	if name == "" {
		name = "default"
	}

	width, err := parseIntParam(query, "width", s.cfg.Width, 1, maxWidth)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	seed, err := parseSeedParam(query, s.cfg.Seed)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	sc, err := buildScene(name, width, seed)
	if errors.Is(err, scene.ErrUnknownScene) {
		writeError(w, http.StatusNotFound, err)
		return
	} else if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	camera := sc.GetCamera()
	x, err := parseIntParam(query, "x", camera.Width()/2, 0, camera.Width()-1)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	y, err := parseIntParam(query, "y", camera.Height()/2, 0, camera.Height()-1)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	writeJSON(w, http.StatusOK, inspectPixel(sc, x, y))
}
