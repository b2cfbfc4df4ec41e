package domain

import "time"

// RepositoryAnalysis represents one repository's analysis for a batch.
// The numeric fields are pointers because the producer may leave them
// unset; the normalization stage resolves them to concrete values.
type RepositoryAnalysis struct {
	FullName    string `bson:"full_name" json:"full_name"`
	Author      string `bson:"author,omitempty" json:"author"`
	Description string `bson:"description,omitempty" json:"description"`
	URL         string `bson:"url,omitempty" json:"url"`

	// Category is attached by the merge stage from the repository
	// index. Empty means the repository is uncategorized.
	Category string `bson:"category,omitempty" json:"category"`

	StartStars    *float64 `bson:"start_stars,omitempty" json:"start_stars"`
	EndStars      *float64 `bson:"end_stars,omitempty" json:"end_stars"`
	StarGrowth    *float64 `bson:"star_growth,omitempty" json:"star_growth"`
	GrowthPerDay  *float64 `bson:"growth_per_day,omitempty" json:"growth_per_day"`
	GrowthPercent *float64 `bson:"growth_percent,omitempty" json:"growth_percent"`

	AnalysisDate time.Time `bson:"analysis_date" json:"-"`
	PeriodDays   int       `bson:"analysis_period_days,omitempty" json:"-"`
	StartDate    time.Time `bson:"analysis_start_date,omitempty" json:"-"`
	EndDate      time.Time `bson:"analysis_end_date,omitempty" json:"-"`
}

// GetStartStars returns the start star count, or 0 if unset.
func (r *RepositoryAnalysis) GetStartStars() int64 {
	if r == nil || r.StartStars == nil {
		return 0
	}
	return int64(*r.StartStars)
}

// GetEndStars returns the end star count, or 0 if unset.
func (r *RepositoryAnalysis) GetEndStars() int64 {
	if r == nil || r.EndStars == nil {
		return 0
	}
	return int64(*r.EndStars)
}

// GetStarGrowth returns the star growth, or 0 if unset.
func (r *RepositoryAnalysis) GetStarGrowth() int64 {
	if r == nil || r.StarGrowth == nil {
		return 0
	}
	return int64(*r.StarGrowth)
}

// GetGrowthPerDay returns the growth per day, or 0 if unset.
func (r *RepositoryAnalysis) GetGrowthPerDay() float64 {
	if r == nil || r.GrowthPerDay == nil {
		return 0
	}
	return *r.GrowthPerDay
}

// GetGrowthPercent returns the growth percent, or 0 if unset.
func (r *RepositoryAnalysis) GetGrowthPercent() float64 {
	if r == nil || r.GrowthPercent == nil {
		return 0
	}
	return *r.GrowthPercent
}

// Clone returns a deep copy of the record.
func (r *RepositoryAnalysis) Clone() *RepositoryAnalysis {
	c := *r
	c.StartStars = cloneFloat(r.StartStars)
	c.EndStars = cloneFloat(r.EndStars)
	c.StarGrowth = cloneFloat(r.StarGrowth)
	c.GrowthPerDay = cloneFloat(r.GrowthPerDay)
	c.GrowthPercent = cloneFloat(r.GrowthPercent)
	return &c
}

func cloneFloat(v *float64) *float64 {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}

// Float64Ptr returns a pointer to the given value.
func Float64Ptr(v float64) *float64 { return &v }
