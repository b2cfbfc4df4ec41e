package pipeline

import (
	"math"

	"github.com/trendscope/star-trends/internal/domain"
)

// Normalize resolves every numeric field of the batch in place: unset
// and non-finite values become 0, the growth rates round to two
// decimals and the star counts truncate to integral values. Running it
// a second time changes nothing.
func Normalize(batch *domain.AnalysisBatch) {
	if batch == nil {
		return
	}
	for _, r := range batch.Records {
		if r == nil {
			continue
		}
		r.StartStars = domain.Float64Ptr(truncValue(r.StartStars))
		r.EndStars = domain.Float64Ptr(truncValue(r.EndStars))
		r.StarGrowth = domain.Float64Ptr(truncValue(r.StarGrowth))
		r.GrowthPerDay = domain.Float64Ptr(roundValue(r.GrowthPerDay))
		r.GrowthPercent = domain.Float64Ptr(roundValue(r.GrowthPercent))
	}
}

// sanitize maps nil, NaN and ±Inf to 0.
func sanitize(v *float64) float64 {
	if v == nil {
		return 0
	}
	f := *v
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}

func roundValue(v *float64) float64 {
	return math.Round(sanitize(v)*100) / 100
}

func truncValue(v *float64) float64 {
	return math.Trunc(sanitize(v))
}
