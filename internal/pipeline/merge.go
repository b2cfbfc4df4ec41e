package pipeline

import "github.com/trendscope/star-trends/internal/domain"

// Merge joins a batch with the category index by repository full name.
// It returns a new batch whose records are copies of the input records
// with their category attached; the input batch is never modified. A
// repository missing from the index gets the empty category. Records
// without a full name cannot be joined or displayed and are dropped;
// the second return value is how many were dropped.
func Merge(batch *domain.AnalysisBatch, index domain.CategoryIndex) (*domain.AnalysisBatch, int) {
	if batch == nil {
		return &domain.AnalysisBatch{}, 0
	}

	merged := &domain.AnalysisBatch{
		Meta:    batch.Meta,
		Records: make([]*domain.RepositoryAnalysis, 0, len(batch.Records)),
	}
	skipped := 0
	for _, r := range batch.Records {
		if r == nil || r.FullName == "" {
			skipped++
			continue
		}
		c := r.Clone()
		c.Category = index.Lookup(r.FullName)
		merged.Records = append(merged.Records, c)
	}
	return merged, skipped
}
