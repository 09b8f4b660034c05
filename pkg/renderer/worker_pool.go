package renderer

import (
	"context"
	"runtime"
	"sync"

	"golang.org/x/sync/errgroup"
)

// ProgressFunc is called after each tile completes with the number of tiles
// done so far and the total. Calls are serialized and done only increases.
type ProgressFunc func(done, total int)

// WorkerPool runs tile tasks on a bounded number of goroutines
type WorkerPool struct {
	numWorkers int
	progress   ProgressFunc
}

// NewWorkerPool creates a worker pool. numWorkers <= 0 means one per CPU.
func NewWorkerPool(numWorkers int, progress ProgressFunc) *WorkerPool {
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}
	return &WorkerPool{numWorkers: numWorkers, progress: progress}
}

// GetNumWorkers returns the number of workers in the pool
func (wp *WorkerPool) GetNumWorkers() int {
	return wp.numWorkers
}

// Run calls task once per tile and stores each result at the tile's ID.
// Once ctx is done no further tiles are started and ctx's error is returned.
func (wp *WorkerPool) Run(ctx context.Context, tiles []Tile, task func(Tile) RenderStats) ([]RenderStats, error) {
	results := make([]RenderStats, len(tiles))

	var mu sync.Mutex
	done := 0

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(wp.numWorkers)

	for _, tile := range tiles {
		if gctx.Err() != nil {
			break
		}
		tile := tile // per-iteration copy (go.mod targets go 1.21, pre-loopvar semantics)
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			results[tile.ID] = task(tile)

			mu.Lock()
			defer mu.Unlock()
			done++
			if wp.progress != nil {
				wp.progress(done, len(tiles))
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil && done < len(tiles) {
		return nil, err
	}
	return results, nil
}
