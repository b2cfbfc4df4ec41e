package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

func TestAccessorsNilSafe(t *testing.T) {
	var r *RepositoryAnalysis
	assert.Equal(t, int64(0), r.GetStartStars())
	assert.Equal(t, int64(0), r.GetEndStars())
	assert.Equal(t, int64(0), r.GetStarGrowth())
	assert.Equal(t, 0.0, r.GetGrowthPerDay())
	assert.Equal(t, 0.0, r.GetGrowthPercent())

	empty := &RepositoryAnalysis{FullName: "octo/cat"}
	assert.Equal(t, int64(0), empty.GetStarGrowth())
	assert.Equal(t, 0.0, empty.GetGrowthPercent())
}

func TestAccessorsTruncateStars(t *testing.T) {
	r := &RepositoryAnalysis{
		StartStars: Float64Ptr(120.9),
		EndStars:   Float64Ptr(150.2),
		StarGrowth: Float64Ptr(29.7),
	}
	assert.Equal(t, int64(120), r.GetStartStars())
	assert.Equal(t, int64(150), r.GetEndStars())
	assert.Equal(t, int64(29), r.GetStarGrowth())
}

func TestRecordDecodesAnalysisDocument(t *testing.T) {
	date := time.Date(2024, 3, 1, 6, 0, 0, 0, time.UTC)

	doc, err := bson.Marshal(bson.M{
		"full_name":            "octo/cat",
		"author":               "octo",
		"star_growth":          50.0,
		"analysis_date":        date,
		"analysis_period_days": 7,
		"analysis_start_date":  date.AddDate(0, 0, -7),
		"analysis_end_date":    date,
	})
	require.NoError(t, err)

	var r RepositoryAnalysis
	require.NoError(t, bson.Unmarshal(doc, &r))

	assert.Equal(t, "octo/cat", r.FullName)
	assert.Equal(t, "octo", r.Author)
	assert.Equal(t, int64(50), r.GetStarGrowth())
	assert.True(t, r.AnalysisDate.Equal(date))
	assert.Equal(t, 7, r.PeriodDays)
	assert.True(t, r.StartDate.Equal(date.AddDate(0, 0, -7)))
	assert.True(t, r.EndDate.Equal(date))
}

func TestCloneIsDeep(t *testing.T) {
	orig := &RepositoryAnalysis{
		FullName:      "octo/cat",
		Category:      "devtools",
		GrowthPercent: Float64Ptr(12.5),
	}

	c := orig.Clone()
	*c.GrowthPercent = 99
	c.Category = "ai"

	assert.Equal(t, 12.5, orig.GetGrowthPercent())
	assert.Equal(t, "devtools", orig.Category)
	assert.Equal(t, 99.0, c.GetGrowthPercent())
}
