package metrics_test

import (
	"context"
	"errors"
	"testing"

	"github.com/marcelsud/bookstore/metrics"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCounter struct {
	n   int64
	err error
}

func (f fakeCounter) Count(ctx context.Context) (int64, error) {
	return f.n, f.err
}

func TestGetBookCounts(t *testing.T) {
	ctx := context.Background()

	t.Run("reports each store separately", func(t *testing.T) {
		collector := metrics.NewStoreCollector(map[string]metrics.Counter{
			"mongo":    fakeCounter{n: 4},
			"postgres": fakeCounter{n: 2},
		})

		counts, err := collector.GetBookCounts(ctx)

		require.NoError(t, err)
		assert.Equal(t, map[string]int64{"mongo": 4, "postgres": 2}, counts)
	})

	t.Run("a failing store fails the collection", func(t *testing.T) {
		collector := metrics.NewStoreCollector(map[string]metrics.Counter{
			"mongo":    fakeCounter{n: 4},
			"postgres": fakeCounter{err: errors.New("connection refused")},
		})

		_, err := collector.GetBookCounts(ctx)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "postgres")
	})
}

func TestCollect(t *testing.T) {
	collector := metrics.NewStoreCollector(map[string]metrics.Counter{
		"mongo": fakeCounter{n: 1},
	})

	m, err := collector.Collect(context.Background())

	require.NoError(t, err)
	assert.Equal(t, int64(1), m.BookCounts["mongo"])
	assert.False(t, m.Timestamp.IsZero())
}
