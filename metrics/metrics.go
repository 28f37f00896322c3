package metrics

import (
	"context"
	"time"
)

// Metrics represents the current state of the two book stores.
type Metrics struct {
	// BookCounts maps store name ("mongo", "postgres") to the number of
	// books it currently holds.
	BookCounts map[string]int64 `json:"book_counts"`

	// Timestamp when metrics were collected
	Timestamp time.Time `json:"timestamp"`
}

// Collector defines the interface for collecting metrics from the stores.
type Collector interface {
	// Collect gathers current metrics from every store
	Collect(ctx context.Context) (Metrics, error)

	// GetBookCounts returns the number of books per store
	GetBookCounts(ctx context.Context) (map[string]int64, error)
}
