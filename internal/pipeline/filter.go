package pipeline

import "github.com/trendscope/star-trends/internal/domain"

// Filter applies the dashboard filter controls as a conjunction. When
// every control passes everything it returns the input batch itself;
// otherwise it returns a new batch sharing the surviving record
// pointers. The input is never modified.
func Filter(batch *domain.AnalysisBatch, opts domain.FilterOptions) *domain.AnalysisBatch {
	if batch == nil {
		return &domain.AnalysisBatch{}
	}

	selected := categorySet(batch, opts.Categories)
	if selected == nil && opts.MinGrowthPercent <= 0 && opts.MinStarGrowth <= 0 && opts.MinEndStars <= 0 {
		return batch
	}

	out := &domain.AnalysisBatch{
		Meta:    batch.Meta,
		Records: make([]*domain.RepositoryAnalysis, 0, len(batch.Records)),
	}
	for _, r := range batch.Records {
		if matches(r, selected, opts) {
			out.Records = append(out.Records, r)
		}
	}
	return out
}

// categorySet resolves the category control to a lookup set, or nil
// when the control passes everything: no categories selected, or a
// selection covering every named category present in the batch.
// Uncategorized records count toward coverage on neither side: they
// never appear as selectable categories, and selecting every named
// category leaves them visible.
func categorySet(batch *domain.AnalysisBatch, categories []string) map[string]struct{} {
	if len(categories) == 0 {
		return nil
	}
	set := make(map[string]struct{}, len(categories))
	for _, c := range categories {
		if c := domain.CanonicalCategory(c); c != "" {
			set[c] = struct{}{}
		}
	}
	if len(set) == 0 {
		return nil
	}

	covered := true
	for _, r := range batch.Records {
		if r == nil {
			continue
		}
		c := domain.CanonicalCategory(r.Category)
		if c == "" {
			continue
		}
		if _, ok := set[c]; !ok {
			covered = false
			break
		}
	}
	if covered {
		return nil
	}
	return set
}

func matches(r *domain.RepositoryAnalysis, selected map[string]struct{}, opts domain.FilterOptions) bool {
	if r == nil {
		return false
	}
	if selected != nil {
		if _, ok := selected[domain.CanonicalCategory(r.Category)]; !ok {
			return false
		}
	}
	if opts.MinGrowthPercent > 0 && r.GetGrowthPercent() < opts.MinGrowthPercent {
		return false
	}
	if opts.MinStarGrowth > 0 && r.GetStarGrowth() < opts.MinStarGrowth {
		return false
	}
	if opts.MinEndStars > 0 && r.GetEndStars() < opts.MinEndStars {
		return false
	}
	return true
}
