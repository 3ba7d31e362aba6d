package pipeline

import (
	"context"
	"sync"
)

// DefaultWorkers is the default batch concurrency.
const DefaultWorkers = 4

// RunBatch dispatches targets across a bounded worker pool. Units share no
// in-memory state; each failure is isolated to its own result. Cancelling
// the context stops dispatch of further units; units already in flight run
// to completion and keep their results.
func (r *Runner) RunBatch(ctx context.Context, targets []Target, workers int) []UnitResult {
	if workers <= 0 {
		workers = DefaultWorkers
	}
	if workers > len(targets) {
		workers = len(targets)
	}

	results := make([]UnitResult, len(targets))
	type job struct {
		idx    int
		target Target
	}
	jobs := make(chan job)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range jobs {
				results[j.idx] = r.RunUnit(ctx, j.target)
			}
		}()
	}

dispatch:
	for i, t := range targets {
		select {
		case jobs <- job{idx: i, target: t}:
		case <-ctx.Done():
			// Batch abort: stop handing out work, leave the rest queued.
			for k := i; k < len(targets); k++ {
				if results[k].Status == "" {
					results[k] = UnitResult{
						TargetID:   targets[k].ID,
						Company:    targets[k].Company,
						Status:     StatusQueued,
						Diagnostic: "batch aborted before dispatch",
					}
				}
			}
			break dispatch
		}
	}
	close(jobs)
	wg.Wait()

	return results
}
