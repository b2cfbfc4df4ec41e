package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewAnalysisBatchReadsMetaFromFirstRecord(t *testing.T) {
	date := time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC)
	records := []*RepositoryAnalysis{
		{FullName: "octo/cat", AnalysisDate: date, PeriodDays: 7,
			StartDate: date.AddDate(0, 0, -7), EndDate: date},
		{FullName: "octo/dog", AnalysisDate: date, PeriodDays: 7},
	}

	b := NewAnalysisBatch(records)

	assert.Equal(t, 2, b.Len())
	assert.Equal(t, date, b.Meta.AnalysisDate)
	assert.Equal(t, 7, b.Meta.PeriodDays)
	assert.Equal(t, "2024-03-01 09:30", b.Meta.DisplayDate())
}

func TestNewAnalysisBatchEmpty(t *testing.T) {
	b := NewAnalysisBatch(nil)
	assert.Equal(t, 0, b.Len())
	assert.True(t, b.Meta.AnalysisDate.IsZero())

	var nilBatch *AnalysisBatch
	assert.Equal(t, 0, nilBatch.Len())
}

func TestFilterOptionsEmpty(t *testing.T) {
	assert.True(t, FilterOptions{}.Empty())
	assert.False(t, FilterOptions{MinEndStars: 10}.Empty())
	assert.False(t, FilterOptions{Categories: []string{"ai"}}.Empty())
}

func TestParseTopMetric(t *testing.T) {
	m, ok := ParseTopMetric("growth-percent")
	assert.True(t, ok)
	assert.Equal(t, TopMetricGrowthPercent, m)

	m, ok = ParseTopMetric("star-growth")
	assert.True(t, ok)
	assert.Equal(t, TopMetricStarGrowth, m)

	_, ok = ParseTopMetric("commits")
	assert.False(t, ok)
}
