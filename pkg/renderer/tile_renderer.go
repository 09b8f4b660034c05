package renderer

import (
	"image"

	"github.com/golang/glog"

	"github.com/df07/go-portal-raytracer/pkg/core"
	"github.com/df07/go-portal-raytracer/pkg/scene"
)

// DefaultTileSize is the edge length of a square tile in pixels
const DefaultTileSize = 32

// Tile represents a rectangular region of the image to be rendered
type Tile struct {
	ID     int             // Position in row-major tile order
	Bounds image.Rectangle // Pixel bounds in image coordinates (y down)
}

// NewTileGrid splits a width x height image into tiles of at most
// tileSize x tileSize, in row-major order
func NewTileGrid(width, height, tileSize int) []Tile {
	if tileSize <= 0 {
		tileSize = DefaultTileSize
	}

	var tiles []Tile

	// Calculate number of tiles in each dimension
	tilesX := (width + tileSize - 1) / tileSize // Ceiling division
	tilesY := (height + tileSize - 1) / tileSize

	for tileY := 0; tileY < tilesY; tileY++ {
		for tileX := 0; tileX < tilesX; tileX++ {
			x0 := tileX * tileSize
			y0 := tileY * tileSize
			x1 := min(x0+tileSize, width) // Don't exceed image bounds
			y1 := min(y0+tileSize, height)

			tiles = append(tiles, Tile{ID: len(tiles), Bounds: image.Rect(x0, y0, x1, y1)})
		}
	}

	return tiles
}

// tileSeed derives the random seed for one tile from the render seed, so a
// tile's samples do not depend on which worker renders it or when
func tileSeed(seed int64, tileID int) int64 {
	// Golden-ratio increment spreads consecutive IDs across the seed space
	return int64(uint64(seed) + uint64(tileID+1)*0x9E3779B97F4A7C15)
}

// TileRenderer renders individual tiles of a scene into a shared image
type TileRenderer struct {
	scene  *scene.Scene
	width  int
	height int
	config SamplingConfig
}

// NewTileRenderer creates a tile renderer for an image of the given size
func NewTileRenderer(s *scene.Scene, width, height int, config SamplingConfig) *TileRenderer {
	return &TileRenderer{
		scene:  s,
		width:  width,
		height: height,
		config: config,
	}
}

// RenderTile renders every pixel of tile into img. Tiles never overlap, so
// concurrent calls for different tiles may share img.
func (tr *TileRenderer) RenderTile(tile Tile, img *image.RGBA) RenderStats {
	sampler := core.NewSeededSampler(tileSeed(tr.config.Seed, tile.ID))
	stats := RenderStats{TotalPixels: tile.Bounds.Dx() * tile.Bounds.Dy()}

	for y := tile.Bounds.Min.Y; y < tile.Bounds.Max.Y; y++ {
		// Image rows run top-down; camera t runs bottom-up
		j := tr.height - 1 - y
		for i := tile.Bounds.Min.X; i < tile.Bounds.Max.X; i++ {
			var ps PixelStats
			tr.samplePixel(i, j, &ps, sampler)
			stats.TotalSamples += ps.SampleCount
			img.SetRGBA(i, y, vec3ToColor(ps.GetColor(), tr.config.Gamma))
		}
	}

	if glog.V(2) {
		glog.Infof("Tile %d %v: %d samples", tile.ID, tile.Bounds, stats.TotalSamples)
	}
	return stats
}

// samplePixel takes SamplesPerPixel jittered samples for camera pixel (i, j)
func (tr *TileRenderer) samplePixel(i, j int, ps *PixelStats, sampler core.Sampler) {
	camera := tr.scene.Camera
	for ps.SampleCount < tr.config.SamplesPerPixel {
		// Convert pixel coordinates to normalized coordinates with jitter
		s := (float64(i) + sampler.Get1D()) / float64(tr.width)
		t := (float64(j) + sampler.Get1D()) / float64(tr.height)

		ray := camera.GetRay(s, t)
		ps.AddSample(tr.scene.TraceColor(ray, tr.config.MaxDepth, sampler))
	}
}
