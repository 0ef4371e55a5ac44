package aggregate

import (
	"context"
	"fmt"
	"sync"
)

// outcome is one task's settled result.
type outcome[R any] struct {
	val R
	err error
}

// fanOut runs one goroutine per item and waits for every outcome: an
// all-settled join where no task's failure cancels another. Results come
// back in input order. A panicking task settles as an error.
func fanOut[T, R any](ctx context.Context, items []T, run func(context.Context, T) (R, error)) []outcome[R] {
	results := make([]outcome[R], len(items))
	var wg sync.WaitGroup
	for i, item := range items {
		wg.Add(1)
		go func(i int, item T) {
			defer wg.Done()
			defer func() {
				if r := recover(); r != nil {
					results[i].err = fmt.Errorf("panic: %v", r)
				}
			}()
			results[i].val, results[i].err = run(ctx, item)
		}(i, item)
	}
	wg.Wait()
	return results
}
