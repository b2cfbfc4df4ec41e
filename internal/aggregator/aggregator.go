package aggregator

import (
	"context"

	"go.uber.org/zap"

	"github.com/trendscope/star-trends/internal/domain"
	"github.com/trendscope/star-trends/internal/pipeline"
	"github.com/trendscope/star-trends/internal/storage"
)

// Aggregator defines the read operations the dashboard surfaces are
// built from. Every call re-reads the store and runs the full
// merge, normalize and filter pipeline; results are never cached
// across calls.
type Aggregator interface {
	// Dashboard renders the complete view: metadata, counts, filtered
	// records and every aggregate table.
	Dashboard(ctx context.Context, opts domain.FilterOptions) (*domain.DashboardView, error)

	// Repositories returns the filtered, normalized records.
	Repositories(ctx context.Context, opts domain.FilterOptions) (*domain.AnalysisBatch, error)

	// Summary returns the headline metrics, or a not found error when
	// the filter matched nothing.
	Summary(ctx context.Context, opts domain.FilterOptions) (*domain.Summary, error)

	// Categories returns the category breakdown.
	Categories(ctx context.Context, opts domain.FilterOptions) ([]domain.CategoryStat, error)

	// TopPerformers ranks the filtered records by the given metric,
	// optionally narrowed to its own category set first.
	TopPerformers(ctx context.Context, opts domain.FilterOptions, topCategories []string, metric domain.TopMetric, limit int) ([]*domain.RepositoryAnalysis, error)

	// Ping reports whether the backing store is reachable.
	Ping(ctx context.Context) error
}

// aggregator implements the Aggregator interface
type aggregator struct {
	storage storage.Storage
	logger  *zap.Logger
}

// NewAggregator creates a new aggregator
func NewAggregator(storage storage.Storage, logger *zap.Logger) Aggregator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &aggregator{
		storage: storage,
		logger:  logger,
	}
}

// render runs the fetch, merge, normalize and filter stages for one
// request: exactly two store reads, then everything in process.
func (a *aggregator) render(ctx context.Context, opts domain.FilterOptions) (int, *domain.AnalysisBatch, error) {
	raw, err := a.storage.FetchLatestBatch(ctx)
	if err != nil {
		return 0, nil, err
	}
	index, err := a.storage.FetchCategoryIndex(ctx)
	if err != nil {
		return 0, nil, err
	}

	merged, skipped := pipeline.Merge(raw, index)
	if skipped > 0 {
		a.logger.Warn("dropped analysis records without a repository name",
			zap.Int("count", skipped))
	}
	pipeline.Normalize(merged)

	return merged.Len(), pipeline.Filter(merged, opts), nil
}

// Dashboard renders the complete view for one request
func (a *aggregator) Dashboard(ctx context.Context, opts domain.FilterOptions) (*domain.DashboardView, error) {
	total, filtered, err := a.render(ctx, opts)
	if err != nil {
		return nil, err
	}

	view := &domain.DashboardView{
		Meta:               filtered.Meta,
		TotalCount:         total,
		FilteredCount:      filtered.Len(),
		Repositories:       filtered.Records,
		Categories:         CategoryBreakdown(filtered),
		TopByGrowthPercent: TopBy(filtered, domain.TopMetricGrowthPercent, domain.DefaultTopLimit),
		TopByStarGrowth:    TopBy(filtered, domain.TopMetricStarGrowth, domain.DefaultTopLimit),
	}

	// A filter that matched nothing renders with a null summary, not
	// an error: the batch itself exists.
	if summary, err := Summarize(filtered); err == nil {
		view.Summary = summary
	}
	return view, nil
}

// Repositories returns the filtered records
func (a *aggregator) Repositories(ctx context.Context, opts domain.FilterOptions) (*domain.AnalysisBatch, error) {
	_, filtered, err := a.render(ctx, opts)
	if err != nil {
		return nil, err
	}
	return filtered, nil
}

// Summary returns the headline metrics
func (a *aggregator) Summary(ctx context.Context, opts domain.FilterOptions) (*domain.Summary, error) {
	_, filtered, err := a.render(ctx, opts)
	if err != nil {
		return nil, err
	}
	return Summarize(filtered)
}

// Categories returns the category breakdown
func (a *aggregator) Categories(ctx context.Context, opts domain.FilterOptions) ([]domain.CategoryStat, error) {
	_, filtered, err := a.render(ctx, opts)
	if err != nil {
		return nil, err
	}
	return CategoryBreakdown(filtered), nil
}

// TopPerformers ranks the filtered records by the given metric
func (a *aggregator) TopPerformers(ctx context.Context, opts domain.FilterOptions, topCategories []string, metric domain.TopMetric, limit int) ([]*domain.RepositoryAnalysis, error) {
	_, filtered, err := a.render(ctx, opts)
	if err != nil {
		return nil, err
	}
	if len(topCategories) > 0 {
		filtered = pipeline.Filter(filtered, domain.FilterOptions{Categories: topCategories})
	}
	return TopBy(filtered, metric, limit), nil
}

// Ping reports whether the backing store is reachable
func (a *aggregator) Ping(ctx context.Context) error {
	return a.storage.Ping(ctx)
}
