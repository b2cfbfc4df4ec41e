package domain

// FilterOptions represents the dashboard filter controls. Zero values
// mean "no constraint": a minimum of 0 passes everything and an empty
// category list selects every category.
type FilterOptions struct {
	Categories       []string `json:"categories,omitempty"`
	MinGrowthPercent float64  `json:"min_growth_percent,omitempty"`
	MinStarGrowth    int64    `json:"min_star_growth,omitempty"`
	MinEndStars      int64    `json:"min_end_stars,omitempty"`
}

// Empty reports whether no filter control is set.
func (o FilterOptions) Empty() bool {
	return len(o.Categories) == 0 &&
		o.MinGrowthPercent <= 0 &&
		o.MinStarGrowth <= 0 &&
		o.MinEndStars <= 0
}

// TopMetric represents the metric a top-performers ranking is sorted by.
type TopMetric string

const (
	TopMetricGrowthPercent TopMetric = "growth-percent"
	TopMetricStarGrowth    TopMetric = "star-growth"
)

// DefaultTopLimit is the number of repositories a top-performers
// ranking returns unless the caller asks for a different count.
const DefaultTopLimit = 5

// ParseTopMetric maps a wire name to a TopMetric.
func ParseTopMetric(s string) (TopMetric, bool) {
	switch TopMetric(s) {
	case TopMetricGrowthPercent:
		return TopMetricGrowthPercent, true
	case TopMetricStarGrowth:
		return TopMetricStarGrowth, true
	}
	return "", false
}
