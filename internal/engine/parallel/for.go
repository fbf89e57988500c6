// Package parallel runs data-parallel maps over index ranges.
package parallel

import (
	"runtime"

	"golang.org/x/sync/errgroup"
)

// MinChunk is the smallest range handed to a single worker.
const MinChunk = 256

// Workers resolves a configured worker count; n <= 0 means GOMAXPROCS.
func Workers(n int) int {
	if n <= 0 {
		return runtime.GOMAXPROCS(0)
	}
	return n
}

// For calls fn over [0, n) split into contiguous chunks [lo, hi), running at
// most workers chunks at a time. fn must only write to output slots inside
// its own chunk. Small ranges run on the calling goroutine.
func For(n, workers int, fn func(lo, hi int)) {
	if n <= 0 {
		return
	}
	workers = Workers(workers)
	if workers == 1 || n <= MinChunk {
		fn(0, n)
		return
	}

	chunk := (n + workers - 1) / workers
	if chunk < MinChunk {
		chunk = MinChunk
	}

	var g errgroup.Group
	g.SetLimit(workers)
	for lo := 0; lo < n; lo += chunk {
		hi := min(lo+chunk, n)
		g.Go(func() error {
			fn(lo, hi)
			return nil
		})
	}
	_ = g.Wait() // chunks never fail
}
