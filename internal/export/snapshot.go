// Package export writes dashboard snapshots to CSV, JSON and Parquet
// files using the display column set the web dashboard renders.
package export

import (
	"strconv"

	"github.com/trendscope/star-trends/internal/domain"
)

// Row is one exported repository, carrying the dashboard's display
// columns. Parquet schema inference derives the file schema from the
// struct tags.
type Row struct {
	Repository    string  `parquet:"repository,snappy" json:"repository"`
	Author        string  `parquet:"author,snappy" json:"author"`
	Description   string  `parquet:"description,snappy" json:"description"`
	Category      string  `parquet:"category,snappy" json:"category"`
	StartStars    int64   `parquet:"start_stars,snappy" json:"start_stars"`
	EndStars      int64   `parquet:"end_stars,snappy" json:"end_stars"`
	StarGrowth    int64   `parquet:"star_growth,snappy" json:"star_growth"`
	GrowthPerDay  float64 `parquet:"growth_per_day,snappy" json:"growth_per_day"`
	GrowthPercent float64 `parquet:"growth_percent,snappy" json:"growth_percent"`
	URL           string  `parquet:"url,snappy" json:"url"`
}

// Header returns the display names of the snapshot columns, in the
// order the dashboard table shows them.
func Header() []string {
	return []string{
		"Repository", "Author", "Description", "Category",
		"Start Stars", "End Stars", "Star Growth",
		"Growth/Day", "Growth %", "URL",
	}
}

// Snapshot converts filtered, normalized records to export rows.
// Categories carry their display form, the uncategorized bucket
// included.
func Snapshot(records []*domain.RepositoryAnalysis) []Row {
	rows := make([]Row, 0, len(records))
	for _, r := range records {
		if r == nil {
			continue
		}
		rows = append(rows, Row{
			Repository:    r.FullName,
			Author:        r.Author,
			Description:   r.Description,
			Category:      domain.DisplayCategory(r.Category),
			StartStars:    r.GetStartStars(),
			EndStars:      r.GetEndStars(),
			StarGrowth:    r.GetStarGrowth(),
			GrowthPerDay:  r.GetGrowthPerDay(),
			GrowthPercent: r.GetGrowthPercent(),
			URL:           r.URL,
		})
	}
	return rows
}

// Strings returns the row's column values as display strings, in
// Header order. The CSV writer and the terminal renderer share it.
func (r Row) Strings() []string {
	return []string{
		r.Repository,
		r.Author,
		r.Description,
		r.Category,
		strconv.FormatInt(r.StartStars, 10),
		strconv.FormatInt(r.EndStars, 10),
		strconv.FormatInt(r.StarGrowth, 10),
		strconv.FormatFloat(r.GrowthPerDay, 'f', 2, 64),
		strconv.FormatFloat(r.GrowthPercent, 'f', 2, 64),
		r.URL,
	}
}
