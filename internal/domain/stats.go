package domain

// Summary represents the headline metrics for a set of records.
type Summary struct {
	TotalRepositories int     `json:"total_repositories"`
	AvgGrowthPercent  float64 `json:"avg_growth_percent"`
	MaxGrowthPercent  float64 `json:"max_growth_percent"`
	TotalStarGrowth   int64   `json:"total_star_growth"`
	AvgEndStars       float64 `json:"avg_end_stars"`
}

// CategoryStat represents one row of the category breakdown.
type CategoryStat struct {
	Category          string  `json:"category"`
	Count             int     `json:"count"`
	Percent           float64 `json:"percent"`
	StarGrowth        int64   `json:"star_growth"`
	StarGrowthPercent float64 `json:"star_growth_percent"`
}

// DashboardView represents everything one dashboard render needs: the
// batch metadata, the filtered records and the aggregates computed from
// them. Summary is nil when the filter matched nothing.
type DashboardView struct {
	Meta               AnalysisMeta          `json:"meta"`
	TotalCount         int                   `json:"total_count"`
	FilteredCount      int                   `json:"filtered_count"`
	Repositories       []*RepositoryAnalysis `json:"repositories"`
	Summary            *Summary              `json:"summary"`
	Categories         []CategoryStat        `json:"categories"`
	TopByGrowthPercent []*RepositoryAnalysis `json:"top_by_growth_percent"`
	TopByStarGrowth    []*RepositoryAnalysis `json:"top_by_star_growth"`
}
