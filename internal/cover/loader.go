package cover

import (
	"context"
	"image"
	"sync"

	"golang.org/x/sync/errgroup"
)

const (
	minWorkers = 4
	maxWorkers = 16
)

// PoolSize returns the default worker bound for n covers:
// min(16, max(4, n)).
func PoolSize(n int) int {
	return min(maxWorkers, max(minWorkers, n))
}

// ProgressFunc receives the completed fraction after each fetch.
// Calls are serialized and the fraction never decreases.
type ProgressFunc func(fraction float64)

// Loader fetches covers concurrently while preserving input order.
type Loader struct {
	fetcher     Fetcher
	concurrency int
}

// NewLoader creates a Loader. A concurrency of 0 selects PoolSize(n) for
// each batch.
func NewLoader(fetcher Fetcher, concurrency int) *Loader {
	return &Loader{
		fetcher:     fetcher,
		concurrency: concurrency,
	}
}

// Load fetches every URL and returns exactly len(urls) images, where
// images[i] is derived from urls[i] (or is a placeholder).
//
// Each task writes only its own result slot. If ctx is cancelled, pending
// tasks are skipped and their slots hold placeholders.
func (l *Loader) Load(ctx context.Context, urls []string, onProgress ProgressFunc) []image.Image {
	n := len(urls)
	images := make([]image.Image, n)
	if n == 0 {
		return images
	}

	limit := l.concurrency
	if limit <= 0 {
		limit = PoolSize(n)
	}

	var (
		mu        sync.Mutex
		completed int
	)
	report := func() {
		mu.Lock()
		defer mu.Unlock()
		completed++
		if onProgress != nil {
			onProgress(float64(completed) / float64(n))
		}
	}

	// plain Group: a single failure must not cancel the other fetches
	var g errgroup.Group
	g.SetLimit(limit)

	for i, url := range urls {
		i, url := i, url
		g.Go(func() error {
			defer report()
			if ctx.Err() != nil {
				images[i] = Placeholder()
				return nil
			}
			images[i] = l.fetcher.Fetch(ctx, url)
			return nil
		})
	}
	g.Wait()

	for i, img := range images {
		if img == nil {
			images[i] = Placeholder()
		}
	}
	return images
}
