package particle

import "golang.org/x/sync/errgroup"

// minChunk keeps tiny pools on the calling goroutine
const minChunk = 256

// ParallelFor splits [0,n) into contiguous ranges and runs fn on up to workers goroutines
// It returns after every range is done
func ParallelFor(n, workers int, fn func(lo, hi int)) {
	if n <= 0 {
		return
	}
	if workers < 2 || n < 2*minChunk {
		fn(0, n)
		return
	}

	chunks := workers
	if limit := n / minChunk; chunks > limit {
		chunks = limit
	}
	size := (n + chunks - 1) / chunks

	var g errgroup.Group
	g.SetLimit(workers)
	for lo := 0; lo < n; lo += size {
		lo, hi := lo, min(lo+size, n)
		g.Go(func() error {
			fn(lo, hi)
			return nil
		})
	}
	_ = g.Wait()
}
