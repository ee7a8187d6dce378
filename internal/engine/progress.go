package engine

import "sync/atomic"

// ProgressFunc receives cumulative progress at input-archive boundaries.
// It may be invoked from the goroutine running the merge, so collaborators
// rendering progress elsewhere must hand the values off safely.
type ProgressFunc func(processed, total int)

// progressTracker accumulates the processed-member count. The counter is
// atomic so a foreground collaborator can observe it while the merge runs
// on a background goroutine; nothing else in the engine is shared.
type progressTracker struct {
	total     int
	processed atomic.Int64
	fn        ProgressFunc
}

func newProgressTracker(total int, fn ProgressFunc) *progressTracker {
	return &progressTracker{total: total, fn: fn}
}

// Add records n more processed members and notifies the callback with the
// new cumulative count.
func (t *progressTracker) Add(n int) {
	processed := t.processed.Add(int64(n))
	if t.fn != nil {
		t.fn(int(processed), t.total)
	}
}
