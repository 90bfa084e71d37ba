package pipeline

import (
	"context"

	"github.com/go-pkgz/lgr"
	"golang.org/x/sync/errgroup"
)

// task is a single source fetch
type task[T any] struct {
	name  string
	fetch func(ctx context.Context) ([]T, error)
}

// collectTasks runs tasks on a bounded pool and returns their results in task order.
// A failed task is logged and yields an empty slot; siblings are not canceled.
func collectTasks[T any](ctx context.Context, tasks []task[T], maxWorkers int,
	retryFunc func(ctx context.Context, operation func() error) error) [][]T {
	results := make([][]T, len(tasks))

	var g errgroup.Group
	g.SetLimit(maxWorkers)
	for i, t := range tasks {
		g.Go(func() error {
			var items []T
			err := retryFunc(ctx, func() error {
				var fetchErr error
				items, fetchErr = t.fetch(ctx)
				return fetchErr
			})
			if err != nil {
				lgr.Printf("[WARN] failed to fetch %s: %v", t.name, err)
				return nil
			}
			lgr.Printf("[DEBUG] fetched %s: %d items", t.name, len(items))
			results[i] = items
			return nil
		})
	}
	_ = g.Wait() // tasks never return errors

	return results
}
