package scene

import (
	"errors"
	"fmt"

	"github.com/df07/go-bvh-pathtracer/pkg/renderer"
)

// ErrUnknownScene is returned by Create for names not in the registry
var ErrUnknownScene = errors.New("unknown scene")

// SceneInfo describes a built-in scene
type SceneInfo struct {
	ID          string `json:"id"`
	DisplayName string `json:"displayName"`
	Description string `json:"description"`
}

type sceneConstructor func(seed int64, cameraOverrides ...renderer.CameraOverride) *Scene

type registryEntry struct {
	info   SceneInfo
	create sceneConstructor
}

var registry = []registryEntry{
	{
		info: SceneInfo{
			ID:          "default",
			DisplayName: "Default",
			Description: "Diffuse, hollow glass and fuzzy metal spheres on a ground sphere",
		},
		create: NewDefaultScene,
	},
	{
		info: SceneInfo{
			ID:          "bouncing-spheres",
			DisplayName: "Bouncing Spheres",
			Description: "Random field of small spheres with motion blur on a checkered ground",
		},
		create: NewBouncingSpheresScene,
	},
	{
		info: SceneInfo{
			ID:          "checkered-spheres",
			DisplayName: "Checkered Spheres",
			Description: "Two large spheres sharing a solid checker texture",
		},
		create: NewCheckeredSpheresScene,
	},
	{
		info: SceneInfo{
			ID:          "perlin-spheres",
			DisplayName: "Perlin Spheres",
			Description: "Marble spheres textured with Perlin turbulence",
		},
		create: NewPerlinSpheresScene,
	},
}

// List returns the built-in scenes in display order
func List() []SceneInfo {
	infos := make([]SceneInfo, len(registry))
	for i, entry := range registry {
		infos[i] = entry.info
	}
	return infos
}

// Create builds and preprocesses the named scene. The camera overrides are
// merged over the scene's own camera configuration.
func Create(name string, seed int64, cameraOverrides ...renderer.CameraOverride) (*Scene, error) {
	for _, entry := range registry {
		if entry.info.ID != name {
			continue
		}
		s := entry.create(seed, cameraOverrides...)
		if err := s.Preprocess(); err != nil {
			return nil, fmt.Errorf("preparing scene %q: %w", name, err)
		}
		return s, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownScene, name)
}
