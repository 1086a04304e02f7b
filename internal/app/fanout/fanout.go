// Package fanout provides a generic, bounded-concurrency fan-out helper for
// application-layer orchestration. It runs a function across a slice of items
// using a fixed number of worker goroutines, preserving input order in results.
//
// Each worker returns a result.Result, so per-item failures are carried as
// fault values next to the successes instead of as a separate error slice.
package fanout

import (
	"context"
	"sync"

	"github.com/jsamuelsen11/go-result/internal/domain"
	"github.com/jsamuelsen11/go-result/pkg/result"
)

// Run executes fn for each item in items using at most maxWorkers concurrent
// goroutines. Results are returned in the same order as the input items.
//
// If ctx is canceled while a goroutine is waiting for a semaphore slot,
// that goroutine records a domain.Canceled failure and does not call fn.
// Goroutines that have already acquired a slot run to completion (fn is
// responsible for checking ctx internally if it supports cancellation).
// A panic inside fn is not turned into data: the first panic value is
// re-raised on the calling goroutine once every worker has finished, so the
// caller's recovery sees it exactly as if fn had run inline.
//
// Run blocks until all goroutines complete. If items is empty, it returns
// an empty non-nil slice immediately.
//
// maxWorkers values below 1 are treated as 1.
func Run[T, R any](ctx context.Context, maxWorkers int, items []T, fn func(context.Context, T) result.Result[R]) []result.Result[R] {
	if len(items) == 0 {
		return []result.Result[R]{}
	}
	maxWorkers = max(maxWorkers, 1)

	results := make([]result.Result[R], len(items))
	sem := make(chan struct{}, maxWorkers)
	var (
		wg        sync.WaitGroup
		panicOnce sync.Once
		panicked  any
	)

	for i, item := range items {
		wg.Add(1)
		go func(idx int, it T) {
			defer wg.Done()
			defer func() {
				if rec := recover(); rec != nil {
					panicOnce.Do(func() { panicked = rec })
				}
			}()

			// Context-aware semaphore acquisition.
			select {
			case sem <- struct{}{}:
				defer func() { <-sem }()
			case <-ctx.Done():
				results[idx] = result.FromError[R](domain.Canceled(ctx.Err()))
				return
			}

			results[idx] = fn(ctx, it)
		}(i, item)
	}

	wg.Wait()
	if panicked != nil {
		panic(panicked)
	}
	return results
}
