package scene

import (
	"sort"
	"strings"

	"golang.org/x/xerrors"

	"github.com/df07/go-portal-raytracer/pkg/geometry"
)

// ErrUnknownScene is returned by Lookup for names with no registered builder
var ErrUnknownScene = xerrors.New("unknown scene")

// DefaultSphereGridSeed is the layout seed used when the grid is built by name
const DefaultSphereGridSeed = 42

// SceneInfo describes a built-in scene
type SceneInfo struct {
	ID          string `json:"id"`          // Name accepted by Lookup
	DisplayName string `json:"displayName"` // UI display name
	Description string `json:"description"` // One-line summary

	build func(overrides ...geometry.CameraConfig) *Scene
}

var builtInScenes = []SceneInfo{
	{
		ID:          "default",
		DisplayName: "Default Scene",
		Description: "Lambertian, metal and glass spheres on a ground sphere",
		build:       NewDefaultScene,
	},
	{
		ID:          "portal",
		DisplayName: "Portal",
		Description: "A portal opening onto a group of spheres behind the camera's view",
		build:       NewPortalScene,
	},
	{
		ID:          "sphere-grid",
		DisplayName: "Sphere Grid",
		Description: "Several hundred random spheres around three large ones",
		build: func(overrides ...geometry.CameraConfig) *Scene {
			return NewSphereGridScene(DefaultSphereGridSeed, overrides...)
		},
	},
}

// ListScenes returns every built-in scene sorted by ID
func ListScenes() []SceneInfo {
	scenes := make([]SceneInfo, len(builtInScenes))
	copy(scenes, builtInScenes)
	sort.Slice(scenes, func(i, j int) bool {
		return scenes[i].ID < scenes[j].ID
	})
	return scenes
}

// Names returns the IDs of every built-in scene, sorted
func Names() []string {
	var names []string
	for _, info := range ListScenes() {
		names = append(names, info.ID)
	}
	return names
}

// Lookup builds the named scene. Names are matched case-insensitively and
// underscores are accepted in place of hyphens.
func Lookup(name string, cameraOverrides ...geometry.CameraConfig) (*Scene, error) {
	id := normalizeSceneName(name)
	for _, info := range builtInScenes {
		if info.ID == id {
			return info.build(cameraOverrides...), nil
		}
	}
	return nil, xerrors.Errorf("while looking up scene %q (known: %s): %w",
		name, strings.Join(Names(), ", "), ErrUnknownScene)
}

// normalizeSceneName converts user input to registry form
// e.g., "Sphere_Grid" -> "sphere-grid"
func normalizeSceneName(s string) string {
	s = strings.TrimSpace(strings.ToLower(s))
	return strings.ReplaceAll(s, "_", "-")
}
