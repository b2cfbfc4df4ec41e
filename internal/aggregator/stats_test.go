package aggregator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trendscope/star-trends/internal/domain"
	apperrors "github.com/trendscope/star-trends/internal/errors"
)

func statsRecord(name, category string, growthPct, starGrowth, endStars float64) *domain.RepositoryAnalysis {
	return &domain.RepositoryAnalysis{
		FullName:      name,
		Category:      category,
		GrowthPercent: domain.Float64Ptr(growthPct),
		StarGrowth:    domain.Float64Ptr(starGrowth),
		EndStars:      domain.Float64Ptr(endStars),
	}
}

func TestSummarize(t *testing.T) {
	batch := domain.NewAnalysisBatch([]*domain.RepositoryAnalysis{
		statsRecord("octo/cat", "devtools", 50, 100, 300),
		statsRecord("octo/dog", "ai", 10, 20, 100),
	})

	s, err := Summarize(batch)
	require.NoError(t, err)

	assert.Equal(t, 2, s.TotalRepositories)
	assert.Equal(t, 30.0, s.AvgGrowthPercent)
	assert.Equal(t, 50.0, s.MaxGrowthPercent)
	assert.Equal(t, int64(120), s.TotalStarGrowth)
	assert.Equal(t, 200.0, s.AvgEndStars)
}

func TestSummarizeEmptyBatchIsNotFound(t *testing.T) {
	_, err := Summarize(&domain.AnalysisBatch{})
	require.Error(t, err)
	assert.True(t, apperrors.IsNotFound(err))
}

func TestSummarizeAllNegativeGrowth(t *testing.T) {
	batch := domain.NewAnalysisBatch([]*domain.RepositoryAnalysis{
		statsRecord("octo/cat", "", -20, -10, 50),
		statsRecord("octo/dog", "", -5, -2, 80),
	})

	s, err := Summarize(batch)
	require.NoError(t, err)
	assert.Equal(t, -5.0, s.MaxGrowthPercent)
	assert.Equal(t, int64(-12), s.TotalStarGrowth)
}

func TestCategoryBreakdownOrdersRows(t *testing.T) {
	batch := domain.NewAnalysisBatch([]*domain.RepositoryAnalysis{
		statsRecord("a/1", "ai", 1, 10, 0),
		statsRecord("a/2", "ai", 1, 30, 0),
		statsRecord("b/1", "devtools", 1, 40, 0),
		statsRecord("b/2", "devtools", 1, 10, 0),
		statsRecord("c/1", "web", 1, 10, 0),
		statsRecord("d/1", "", 1, 0, 0),
	})

	stats := CategoryBreakdown(batch)
	require.Len(t, stats, 4)

	// Count descending, ties alphabetical.
	assert.Equal(t, "ai", stats[0].Category)
	assert.Equal(t, "devtools", stats[1].Category)
	assert.Equal(t, "unknown", stats[2].Category)
	assert.Equal(t, "web", stats[3].Category)

	assert.Equal(t, 2, stats[0].Count)
	assert.Equal(t, int64(40), stats[0].StarGrowth)
	assert.Equal(t, 33.3, stats[0].Percent)
	assert.Equal(t, 40.0, stats[0].StarGrowthPercent)
}

func TestCategoryBreakdownPercentsSumToWhole(t *testing.T) {
	batch := domain.NewAnalysisBatch([]*domain.RepositoryAnalysis{
		statsRecord("a/1", "ai", 1, 30, 0),
		statsRecord("b/1", "devtools", 1, 50, 0),
		statsRecord("c/1", "web", 1, 20, 0),
	})

	stats := CategoryBreakdown(batch)

	var pctSum, flowSum float64
	for _, s := range stats {
		pctSum += s.Percent
		flowSum += s.StarGrowthPercent
	}
	assert.InDelta(t, 100, pctSum, 0.5)
	assert.InDelta(t, 100, flowSum, 0.5)
}

func TestCategoryBreakdownZeroStarFlow(t *testing.T) {
	batch := domain.NewAnalysisBatch([]*domain.RepositoryAnalysis{
		statsRecord("a/1", "ai", 1, 25, 0),
		statsRecord("b/1", "devtools", 1, -25, 0),
	})

	stats := CategoryBreakdown(batch)
	require.Len(t, stats, 2)
	for _, s := range stats {
		assert.Equal(t, 0.0, s.StarGrowthPercent)
	}
}

func TestCategoryBreakdownEmptyBatch(t *testing.T) {
	assert.Empty(t, CategoryBreakdown(&domain.AnalysisBatch{}))
}

func TestTopByOrdersDescending(t *testing.T) {
	batch := domain.NewAnalysisBatch([]*domain.RepositoryAnalysis{
		statsRecord("a/low", "", 5, 10, 0),
		statsRecord("a/high", "", 90, 500, 0),
		statsRecord("a/mid", "", 40, 100, 0),
	})

	top := TopBy(batch, domain.TopMetricGrowthPercent, 2)
	require.Len(t, top, 2)
	assert.Equal(t, "a/high", top[0].FullName)
	assert.Equal(t, "a/mid", top[1].FullName)

	top = TopBy(batch, domain.TopMetricStarGrowth, 10)
	require.Len(t, top, 3)
	assert.Equal(t, "a/high", top[0].FullName)
	assert.Equal(t, "a/low", top[2].FullName)
}

func TestTopByStableTies(t *testing.T) {
	batch := domain.NewAnalysisBatch([]*domain.RepositoryAnalysis{
		statsRecord("a/first", "", 50, 10, 0),
		statsRecord("a/second", "", 50, 10, 0),
		statsRecord("a/third", "", 50, 10, 0),
	})

	top := TopBy(batch, domain.TopMetricGrowthPercent, 3)
	require.Len(t, top, 3)
	assert.Equal(t, "a/first", top[0].FullName)
	assert.Equal(t, "a/second", top[1].FullName)
	assert.Equal(t, "a/third", top[2].FullName)
}

func TestTopByDefaultLimit(t *testing.T) {
	records := make([]*domain.RepositoryAnalysis, 0, 8)
	for i := 0; i < 8; i++ {
		records = append(records, statsRecord("a/repo", "", float64(i), 0, 0))
	}
	batch := domain.NewAnalysisBatch(records)

	assert.Len(t, TopBy(batch, domain.TopMetricGrowthPercent, 0), domain.DefaultTopLimit)
	assert.Len(t, TopBy(batch, domain.TopMetricGrowthPercent, -3), domain.DefaultTopLimit)
}

func TestTopByEmptyBatch(t *testing.T) {
	assert.Empty(t, TopBy(nil, domain.TopMetricStarGrowth, 3))
	assert.Empty(t, TopBy(&domain.AnalysisBatch{}, domain.TopMetricGrowthPercent, 3))
}

func TestTopByDoesNotReorderInput(t *testing.T) {
	batch := domain.NewAnalysisBatch([]*domain.RepositoryAnalysis{
		statsRecord("a/low", "", 5, 0, 0),
		statsRecord("a/high", "", 90, 0, 0),
	})

	_ = TopBy(batch, domain.TopMetricGrowthPercent, 2)

	assert.Equal(t, "a/low", batch.Records[0].FullName)
	assert.Equal(t, "a/high", batch.Records[1].FullName)
}
