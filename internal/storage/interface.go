package storage

import (
	"context"

	"github.com/trendscope/star-trends/internal/domain"
)

// Storage is the abstract interface for the persistence layer. The
// dashboard is a read-only consumer: a separate producer writes the
// analysis batches and the repository categories.
type Storage interface {
	// FetchLatestBatch returns every record carrying the most recent
	// analysis date. A store with no records yields a not found error.
	FetchLatestBatch(ctx context.Context) (*domain.AnalysisBatch, error)

	// FetchCategoryIndex returns the category assignment for every
	// known repository, uncategorized ones included.
	FetchCategoryIndex(ctx context.Context) (domain.CategoryIndex, error)

	// Connection management
	Ping(ctx context.Context) error
	Close() error
}
