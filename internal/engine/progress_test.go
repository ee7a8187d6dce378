package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProgressTracker(t *testing.T) {
	t.Run("reports cumulative progress", func(t *testing.T) {
		type call struct{ processed, total int }
		var calls []call

		tracker := newProgressTracker(10, func(processed, total int) {
			calls = append(calls, call{processed, total})
		})

		tracker.Add(4)
		tracker.Add(6)

		require.Len(t, calls, 2)
		assert.Equal(t, call{4, 10}, calls[0])
		assert.Equal(t, call{10, 10}, calls[1])
	})

	t.Run("nil callback is safe", func(t *testing.T) {
		tracker := newProgressTracker(5, nil)
		assert.NotPanics(t, func() { tracker.Add(5) })
	})

	t.Run("zero total still notifies", func(t *testing.T) {
		var processed, total int
		tracker := newProgressTracker(0, func(p, tot int) {
			processed, total = p, tot
		})

		tracker.Add(0)

		assert.Equal(t, 0, processed)
		assert.Equal(t, 0, total)
	})
}
