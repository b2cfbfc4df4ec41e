package aggregator

import (
	"math"
	"sort"

	"github.com/trendscope/star-trends/internal/domain"
	apperrors "github.com/trendscope/star-trends/internal/errors"
)

// Summarize computes the headline metrics for a batch. An empty batch
// has no summary; callers surface that as "no data" rather than
// rendering zeros.
func Summarize(batch *domain.AnalysisBatch) (*domain.Summary, error) {
	if batch.Len() == 0 {
		return nil, apperrors.NewNotFoundError("summary data")
	}

	s := &domain.Summary{
		TotalRepositories: batch.Len(),
		MaxGrowthPercent:  batch.Records[0].GetGrowthPercent(),
	}
	var sumGrowth, sumEndStars float64
	for _, r := range batch.Records {
		gp := r.GetGrowthPercent()
		sumGrowth += gp
		if gp > s.MaxGrowthPercent {
			s.MaxGrowthPercent = gp
		}
		s.TotalStarGrowth += r.GetStarGrowth()
		sumEndStars += float64(r.GetEndStars())
	}

	n := float64(batch.Len())
	s.AvgGrowthPercent = round2(sumGrowth / n)
	s.AvgEndStars = round2(sumEndStars / n)
	return s, nil
}

// CategoryBreakdown computes one row per distinct category, the
// uncategorized bucket included. Rows are ordered by count descending,
// then category name ascending.
func CategoryBreakdown(batch *domain.AnalysisBatch) []domain.CategoryStat {
	n := batch.Len()
	if n == 0 {
		return []domain.CategoryStat{}
	}

	byCategory := make(map[string]*domain.CategoryStat)
	var totalStarGrowth int64
	for _, r := range batch.Records {
		label := domain.CanonicalCategory(r.Category)
		if label == "" {
			label = domain.UnknownCategoryLabel
		}
		stat, ok := byCategory[label]
		if !ok {
			stat = &domain.CategoryStat{Category: label}
			byCategory[label] = stat
		}
		stat.Count++
		stat.StarGrowth += r.GetStarGrowth()
		totalStarGrowth += r.GetStarGrowth()
	}

	stats := make([]domain.CategoryStat, 0, len(byCategory))
	for _, stat := range byCategory {
		stat.Percent = round1(100 * float64(stat.Count) / float64(n))
		// A batch with zero total star flow has no meaningful shares;
		// every row reports 0 instead of dividing by zero.
		if totalStarGrowth != 0 {
			stat.StarGrowthPercent = round1(100 * float64(stat.StarGrowth) / float64(totalStarGrowth))
		}
		stats = append(stats, *stat)
	}

	sort.Slice(stats, func(i, j int) bool {
		if stats[i].Count != stats[j].Count {
			return stats[i].Count > stats[j].Count
		}
		return stats[i].Category < stats[j].Category
	})
	return stats
}

// TopBy returns the top records ranked by the given metric, descending.
// Ties keep their original batch order, and at most limit records come
// back. A non-positive limit falls back to the default.
func TopBy(batch *domain.AnalysisBatch, metric domain.TopMetric, limit int) []*domain.RepositoryAnalysis {
	if batch.Len() == 0 {
		return []*domain.RepositoryAnalysis{}
	}
	if limit <= 0 {
		limit = domain.DefaultTopLimit
	}

	var key func(*domain.RepositoryAnalysis) float64
	switch metric {
	case domain.TopMetricStarGrowth:
		key = func(r *domain.RepositoryAnalysis) float64 { return float64(r.GetStarGrowth()) }
	default:
		key = func(r *domain.RepositoryAnalysis) float64 { return r.GetGrowthPercent() }
	}

	ranked := make([]*domain.RepositoryAnalysis, batch.Len())
	copy(ranked, batch.Records)
	sort.SliceStable(ranked, func(i, j int) bool {
		return key(ranked[i]) > key(ranked[j])
	})

	if len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
