package main

import (
	"flag"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"time"

	"golang.org/x/xerrors"

	"github.com/df07/go-portal-raytracer/pkg/renderer"
	"github.com/df07/go-portal-raytracer/pkg/scene"
)

func TestCreateScene(t *testing.T) {
	tests := []struct {
		name        string
		sceneType   string
		width       int
		expectError bool
	}{
		// Built-in scenes
		{"default scene", "default", 0, false},
		{"portal scene", "portal", 0, false},
		{"sphere-grid scene", "sphere-grid", 0, false},
		{"mixed case name", "Sphere_Grid", 0, false},
		{"width override", "default", 64, false},

		// Invalid scenes
		{"unknown scene", "nonexistent", 0, true},
		{"empty scene name", "", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := createScene(tt.sceneType, tt.width)

			if tt.expectError {
				if err == nil {
					t.Errorf("Expected error for scene type '%s', but got none", tt.sceneType)
				}
				if s != nil {
					t.Errorf("Expected nil scene for invalid scene type '%s'", tt.sceneType)
				}
				return
			}

			if err != nil {
				t.Fatalf("Unexpected error for scene type '%s': %v", tt.sceneType, err)
			}
			if s.CameraConfig.Width <= 0 {
				t.Errorf("Scene camera width should be positive, got %d", s.CameraConfig.Width)
			}
			if s.CameraConfig.ImageHeight() <= 0 {
				t.Errorf("Scene image height should be positive, got %d", s.CameraConfig.ImageHeight())
			}
			if tt.width > 0 && s.CameraConfig.Width != tt.width {
				t.Errorf("Expected width %d, got %d", tt.width, s.CameraConfig.Width)
			}
		})
	}
}

func TestCreateScene_UnknownIsErrUnknownScene(t *testing.T) {
	_, err := createScene("cornell", 0)
	if !xerrors.Is(err, scene.ErrUnknownScene) {
		t.Errorf("Expected ErrUnknownScene, got %v", err)
	}
}

// setSamplingFlags overrides the sampling flags for one test
func setSamplingFlags(t *testing.T, samplesValue, depthValue int, seedValue int64, gammaValue float64) {
	t.Helper()
	oldSamples, oldDepth, oldSeed, oldGamma := *samples, *maxDepth, *seed, *gamma
	*samples, *maxDepth, *seed, *gamma = samplesValue, depthValue, seedValue, gammaValue
	t.Cleanup(func() {
		*samples, *maxDepth, *seed, *gamma = oldSamples, oldDepth, oldSeed, oldGamma
	})
}

func TestSamplingConfigFor(t *testing.T) {
	s := scene.NewPortalScene()

	// Flag defaults: scene recommendation wins for samples and depth
	config, err := samplingConfigFor(s)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if config.SamplesPerPixel != s.SamplingConfig.SamplesPerPixel {
		t.Errorf("Expected scene samples %d, got %d", s.SamplingConfig.SamplesPerPixel, config.SamplesPerPixel)
	}
	if config.MaxDepth != s.SamplingConfig.MaxDepth {
		t.Errorf("Expected scene depth %d, got %d", s.SamplingConfig.MaxDepth, config.MaxDepth)
	}
	if config.Gamma != 2.0 || config.Seed != 42 {
		t.Errorf("Expected flag defaults for gamma and seed, got %+v", config)
	}

	// Explicit flags override the scene
	setSamplingFlags(t, 3, 4, 7, 2.2)
	config, err = samplingConfigFor(s)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	want := renderer.SamplingConfig{SamplesPerPixel: 3, MaxDepth: 4, Seed: 7, Gamma: 2.2}
	if config != want {
		t.Errorf("Expected %+v, got %+v", want, config)
	}
}

func TestSamplingConfigFor_ZeroSeedAndGamma(t *testing.T) {
	s, err := createScene("default", 0)
	if err != nil {
		t.Fatalf("createScene failed: %v", err)
	}

	setSamplingFlags(t, 0, 0, 0, 0)
	config, err := samplingConfigFor(s)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if config.Seed != 0 {
		t.Errorf("Expected -seed 0 to be kept, got seed %d", config.Seed)
	}
	if config.Gamma != 0 {
		t.Errorf("Expected -gamma 0 to be kept, got gamma %f", config.Gamma)
	}
	// Zero samples and depth still mean "use the scene's recommendation"
	if config.SamplesPerPixel != s.SamplingConfig.SamplesPerPixel || config.MaxDepth != s.SamplingConfig.MaxDepth {
		t.Errorf("Expected scene samples and depth, got %+v", config)
	}
}

func TestSamplingConfigFor_RejectsNegative(t *testing.T) {
	s := scene.NewDefaultScene()

	tests := []struct {
		name    string
		samples int
		depth   int
		gamma   float64
	}{
		{"negative samples", -1, 0, 2},
		{"negative depth", 0, -5, 2},
		{"negative gamma", 0, 0, -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setSamplingFlags(t, tt.samples, tt.depth, 42, tt.gamma)
			if _, err := samplingConfigFor(s); err == nil {
				t.Errorf("Expected error for samples=%d depth=%d gamma=%f", tt.samples, tt.depth, tt.gamma)
			}
		})
	}
}

func TestLogSceneBounds(t *testing.T) {
	if err := flag.Set("v", "1"); err != nil {
		t.Fatalf("Couldn't raise verbosity: %v", err)
	}
	defer flag.Set("v", "0")

	// Bounded scene and an empty one must both log without failing
	logSceneBounds(scene.NewDefaultScene())

	empty := scene.New(nil)
	empty.Camera = scene.NewDefaultScene().Camera
	logSceneBounds(empty)
}

func TestOutputPath(t *testing.T) {
	now := time.Date(2024, 3, 5, 14, 7, 9, 0, time.UTC)

	if got, want := outputPath("portal", "", now), filepath.Join("output", "portal", "render_20240305_140709.png"); got != want {
		t.Errorf("Expected %s, got %s", want, got)
	}
	if got := outputPath("portal", "custom.png", now); got != "custom.png" {
		t.Errorf("Expected explicit path, got %s", got)
	}
}

func TestSavePNG(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 3, 2))
	img.SetRGBA(1, 1, color.RGBA{10, 20, 30, 255})

	filename := filepath.Join(t.TempDir(), "nested", "render.png")
	if err := savePNG(filename, img); err != nil {
		t.Fatalf("savePNG failed: %v", err)
	}

	file, err := os.Open(filename)
	if err != nil {
		t.Fatalf("Couldn't open saved file: %v", err)
	}
	defer file.Close()

	decoded, err := png.Decode(file)
	if err != nil {
		t.Fatalf("Couldn't decode saved file: %v", err)
	}
	if decoded.Bounds() != img.Bounds() {
		t.Errorf("Expected bounds %v, got %v", img.Bounds(), decoded.Bounds())
	}
	r, g, b, _ := decoded.At(1, 1).RGBA()
	if r>>8 != 10 || g>>8 != 20 || b>>8 != 30 {
		t.Errorf("Expected (10,20,30), got (%d,%d,%d)", r>>8, g>>8, b>>8)
	}
}
