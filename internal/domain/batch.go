package domain

import "time"

// AnalysisMeta represents the metadata shared by every record of a batch.
type AnalysisMeta struct {
	AnalysisDate time.Time `json:"analysis_date"`
	PeriodDays   int       `json:"period_days"`
	StartDate    time.Time `json:"start_date"`
	EndDate      time.Time `json:"end_date"`
}

// DisplayDate formats the analysis date for human-facing output.
func (m AnalysisMeta) DisplayDate() string {
	return m.AnalysisDate.Format("2006-01-02 15:04")
}

// AnalysisBatch represents the complete set of records produced by one
// analysis run.
type AnalysisBatch struct {
	Meta    AnalysisMeta          `json:"meta"`
	Records []*RepositoryAnalysis `json:"records"`
}

// NewAnalysisBatch builds a batch from records, reading the shared
// metadata from the first record.
func NewAnalysisBatch(records []*RepositoryAnalysis) *AnalysisBatch {
	b := &AnalysisBatch{Records: records}
	if len(records) > 0 {
		first := records[0]
		b.Meta = AnalysisMeta{
			AnalysisDate: first.AnalysisDate,
			PeriodDays:   first.PeriodDays,
			StartDate:    first.StartDate,
			EndDate:      first.EndDate,
		}
	}
	return b
}

// Len returns the number of records in the batch. Safe on a nil batch.
func (b *AnalysisBatch) Len() int {
	if b == nil {
		return 0
	}
	return len(b.Records)
}
