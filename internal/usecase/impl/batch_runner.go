// Package impl contains the concrete implementations of the application layer use cases.
package impl

import (
	"context"
	"time"

	"creatorkit/internal/usecase"

	"golang.org/x/sync/errgroup"
)

// runBatch fans work out over items with bounded concurrency and a per-item
// timeout. Item errors never abort the batch; every item produces exactly one
// result, in input order, and the aggregate counts are derived from them.
func runBatch[T any](ctx context.Context, items []T, concurrency int, itemTimeout time.Duration, work func(ctx context.Context, item T) usecase.BatchItem) *usecase.BatchResult {
	results := make([]usecase.BatchItem, len(items))

	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(concurrency)

	for i, item := range items {
		eg.Go(func() error {
			itemCtx, cancel := context.WithTimeout(egCtx, itemTimeout)
			defer cancel()

			results[i] = work(itemCtx, item)

			return nil
		})
	}

	// The workers only ever return nil; Wait is for completion, not errors.
	_ = eg.Wait()

	result := &usecase.BatchResult{
		Total:   len(items),
		Results: results,
	}
	for _, item := range results {
		if item.Success {
			result.Succeeded++
		} else {
			result.Failed++
		}
	}

	return result
}
