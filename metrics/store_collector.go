package metrics

import (
	"context"
	"fmt"
	"time"
)

// Counter is the one capability a store must expose to be observed. Both
// repositories implement it.
type Counter interface {
	Count(ctx context.Context) (int64, error)
}

// StoreCollector collects per-store book counts. The two stores hold
// independent datasets, so their counts are reported side by side, never
// summed.
type StoreCollector struct {
	stores map[string]Counter
}

// NewStoreCollector creates a collector over named stores.
func NewStoreCollector(stores map[string]Counter) *StoreCollector {
	return &StoreCollector{
		stores: stores,
	}
}

// Collect gathers current metrics from every store.
func (c *StoreCollector) Collect(ctx context.Context) (Metrics, error) {
	counts, err := c.GetBookCounts(ctx)
	if err != nil {
		return Metrics{}, err
	}
	return Metrics{
		BookCounts: counts,
		Timestamp:  time.Now(),
	}, nil
}

// GetBookCounts returns the number of books per store.
func (c *StoreCollector) GetBookCounts(ctx context.Context) (map[string]int64, error) {
	counts := make(map[string]int64, len(c.stores))
	for name, store := range c.stores {
		n, err := store.Count(ctx)
		if err != nil {
			return nil, fmt.Errorf("counting books in %s: %w", name, err)
		}
		counts[name] = n
	}
	return counts, nil
}
