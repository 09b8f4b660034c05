package renderer

import (
	"image"
	"testing"
)

func TestNewTileGrid_CoversImageOnce(t *testing.T) {
	tests := []struct {
		name          string
		width, height int
		tileSize      int
		expectedTiles int
	}{
		{"exact fit", 64, 64, 32, 4},
		{"ragged edges", 70, 33, 32, 6},
		{"single tile", 10, 5, 32, 1},
		{"one pixel tiles", 3, 2, 1, 6},
		{"default size", 64, 32, 0, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tiles := NewTileGrid(tt.width, tt.height, tt.tileSize)
			if len(tiles) != tt.expectedTiles {
				t.Fatalf("Expected %d tiles, got %d", tt.expectedTiles, len(tiles))
			}

			coverage := make([]int, tt.width*tt.height)
			frame := image.Rect(0, 0, tt.width, tt.height)
			for i, tile := range tiles {
				if tile.ID != i {
					t.Errorf("Tile %d has ID %d", i, tile.ID)
				}
				if !tile.Bounds.In(frame) {
					t.Errorf("Tile %d bounds %v outside frame %v", i, tile.Bounds, frame)
				}
				for y := tile.Bounds.Min.Y; y < tile.Bounds.Max.Y; y++ {
					for x := tile.Bounds.Min.X; x < tile.Bounds.Max.X; x++ {
						coverage[y*tt.width+x]++
					}
				}
			}

			for i, n := range coverage {
				if n != 1 {
					t.Fatalf("Pixel (%d,%d) covered %d times", i%tt.width, i/tt.width, n)
				}
			}
		})
	}
}

func TestTileSeed_Distinct(t *testing.T) {
	seen := make(map[int64]int)
	for _, seed := range []int64{0, 1, 42} {
		for id := 0; id < 1000; id++ {
			s := tileSeed(seed, id)
			if _, dup := seen[s]; dup {
				t.Fatalf("Seed collision for base %d tile %d", seed, id)
			}
			seen[s] = id
		}
	}

	if tileSeed(7, 3) != tileSeed(7, 3) {
		t.Error("Expected tileSeed to be deterministic")
	}
}
