package renderer

import (
	"context"
	"image"
	"time"

	"github.com/golang/glog"
	"golang.org/x/xerrors"

	"github.com/df07/go-portal-raytracer/pkg/scene"
)

// ErrNoCamera is returned when rendering a scene that has no camera
var ErrNoCamera = xerrors.New("scene has no camera")

// SamplingConfig contains rendering configuration
type SamplingConfig struct {
	SamplesPerPixel int     // Number of rays per pixel
	MaxDepth        int     // Maximum ray bounce depth
	Gamma           float64 // Output gamma; 0 or 1 writes linear values
	Seed            int64   // Base seed for every tile's sampler
}

// DefaultSamplingConfig returns sensible default values
func DefaultSamplingConfig() SamplingConfig {
	return SamplingConfig{
		SamplesPerPixel: 100,
		MaxDepth:        50,
		Gamma:           2.0,
		Seed:            42,
	}
}

// MergeSamplingConfig applies non-zero values from override onto base
func MergeSamplingConfig(base, override SamplingConfig) SamplingConfig {
	result := base
	if override.SamplesPerPixel != 0 {
		result.SamplesPerPixel = override.SamplesPerPixel
	}
	if override.MaxDepth != 0 {
		result.MaxDepth = override.MaxDepth
	}
	if override.Gamma != 0 {
		result.Gamma = override.Gamma
	}
	if override.Seed != 0 {
		result.Seed = override.Seed
	}
	return result
}

// Raytracer renders a scene into an image
type Raytracer struct {
	scene      *scene.Scene
	width      int
	height     int
	config     SamplingConfig
	tileSize   int
	numWorkers int
	progress   ProgressFunc
}

// NewRaytracer creates a raytracer for s. The image size comes from the
// scene's camera configuration.
func NewRaytracer(s *scene.Scene, config SamplingConfig) *Raytracer {
	return &Raytracer{
		scene:    s,
		width:    s.CameraConfig.Width,
		height:   s.CameraConfig.ImageHeight(),
		config:   config,
		tileSize: DefaultTileSize,
	}
}

// SetSamplingConfig updates the sampling configuration
func (rt *Raytracer) SetSamplingConfig(config SamplingConfig) {
	rt.config = config
}

// SetTileSize sets the tile edge length in pixels
func (rt *Raytracer) SetTileSize(tileSize int) {
	rt.tileSize = tileSize
}

// SetNumWorkers sets how many tiles render concurrently; <= 0 means one per CPU
func (rt *Raytracer) SetNumWorkers(numWorkers int) {
	rt.numWorkers = numWorkers
}

// SetProgressCallback registers a function called as tiles complete
func (rt *Raytracer) SetProgressCallback(progress ProgressFunc) {
	rt.progress = progress
}

// Size returns the output image dimensions
func (rt *Raytracer) Size() (width, height int) {
	return rt.width, rt.height
}

// Render traces the whole frame. Output is identical for a given scene and
// seed regardless of worker count or scheduling.
func (rt *Raytracer) Render(ctx context.Context) (*image.RGBA, RenderStats, error) {
	if rt.scene.Camera == nil {
		return nil, RenderStats{}, ErrNoCamera
	}
	if rt.width <= 0 || rt.height <= 0 {
		return nil, RenderStats{}, xerrors.Errorf("invalid image size %dx%d", rt.width, rt.height)
	}

	start := time.Now()
	img := image.NewRGBA(image.Rect(0, 0, rt.width, rt.height))
	tiles := NewTileGrid(rt.width, rt.height, rt.tileSize)
	tileRenderer := NewTileRenderer(rt.scene, rt.width, rt.height, rt.config)
	pool := NewWorkerPool(rt.numWorkers, rt.progress)

	glog.V(1).Infof("Rendering %dx%d in %d tiles on %d workers (%d spp, depth %d)",
		rt.width, rt.height, len(tiles), pool.GetNumWorkers(), rt.config.SamplesPerPixel, rt.config.MaxDepth)

	results, err := pool.Run(ctx, tiles, func(tile Tile) RenderStats {
		return tileRenderer.RenderTile(tile, img)
	})
	if err != nil {
		return nil, RenderStats{}, xerrors.Errorf("while rendering tiles: %w", err)
	}

	stats := RenderStats{Tiles: len(tiles)}
	for _, tileStats := range results {
		stats.add(tileStats)
	}
	stats.finalize()
	stats.Duration = time.Since(start)

	return img, stats, nil
}
