package postgres

import (
	"context"
	"database/sql"

	_ "github.com/lib/pq"

	"github.com/trendscope/star-trends/internal/domain"
	apperrors "github.com/trendscope/star-trends/internal/errors"
	"github.com/trendscope/star-trends/internal/storage"
)

// postgresStorage implements the Storage interface for PostgreSQL
type postgresStorage struct {
	db *sql.DB
}

// NewPostgresStorage creates a new PostgreSQL storage instance
func NewPostgresStorage(connStr string) (storage.Storage, error) {
	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, apperrors.NewStoreUnavailableError("failed to open postgres connection", err)
	}

	// Test connection
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, apperrors.NewStoreUnavailableError("postgres is unreachable", err)
	}

	return &postgresStorage{db: db}, nil
}

// FetchLatestBatch returns every analysis row carrying the most recent
// analysis date
func (s *postgresStorage) FetchLatestBatch(ctx context.Context) (*domain.AnalysisBatch, error) {
	var latest sql.NullTime
	err := s.db.QueryRowContext(ctx, `SELECT MAX(analysis_date) FROM analysis`).Scan(&latest)
	if err != nil {
		return nil, apperrors.NewStoreUnavailableError("failed to query latest analysis date", err)
	}
	if !latest.Valid {
		return nil, apperrors.NewNotFoundError("analysis batch")
	}

	query := `
		SELECT full_name, author, description, url,
			start_stars, end_stars, star_growth, growth_per_day, growth_percent,
			analysis_date, period_days, start_date, end_date
		FROM analysis
		WHERE analysis_date = $1
	`
	rows, err := s.db.QueryContext(ctx, query, latest.Time)
	if err != nil {
		return nil, apperrors.NewStoreUnavailableError("failed to query analysis batch", err)
	}
	defer rows.Close()

	var records []*domain.RepositoryAnalysis
	for rows.Next() {
		r, err := scanAnalysisRow(rows)
		if err != nil {
			return nil, apperrors.NewStoreUnavailableError("failed to scan analysis row", err)
		}
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewStoreUnavailableError("failed to read analysis rows", err)
	}
	if len(records) == 0 {
		return nil, apperrors.NewNotFoundError("analysis batch")
	}

	return domain.NewAnalysisBatch(records), nil
}

func scanAnalysisRow(rows *sql.Rows) (*domain.RepositoryAnalysis, error) {
	var (
		r                  domain.RepositoryAnalysis
		author, desc, url  sql.NullString
		start, end, growth sql.NullFloat64
		perDay, percent    sql.NullFloat64
		periodDays         sql.NullInt64
		startDate, endDate sql.NullTime
	)

	err := rows.Scan(&r.FullName, &author, &desc, &url,
		&start, &end, &growth, &perDay, &percent,
		&r.AnalysisDate, &periodDays, &startDate, &endDate)
	if err != nil {
		return nil, err
	}

	r.Author = author.String
	r.Description = desc.String
	r.URL = url.String
	if start.Valid {
		r.StartStars = domain.Float64Ptr(start.Float64)
	}
	if end.Valid {
		r.EndStars = domain.Float64Ptr(end.Float64)
	}
	if growth.Valid {
		r.StarGrowth = domain.Float64Ptr(growth.Float64)
	}
	if perDay.Valid {
		r.GrowthPerDay = domain.Float64Ptr(perDay.Float64)
	}
	if percent.Valid {
		r.GrowthPercent = domain.Float64Ptr(percent.Float64)
	}
	r.PeriodDays = int(periodDays.Int64)
	if startDate.Valid {
		r.StartDate = startDate.Time
	}
	if endDate.Valid {
		r.EndDate = endDate.Time
	}

	return &r, nil
}

// FetchCategoryIndex returns the category assignment for every known
// repository
func (s *postgresStorage) FetchCategoryIndex(ctx context.Context) (domain.CategoryIndex, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT full_name, category FROM repositories`)
	if err != nil {
		return nil, apperrors.NewStoreUnavailableError("failed to query repository categories", err)
	}
	defer rows.Close()

	var assignments []domain.RepositoryCategory
	for rows.Next() {
		var a domain.RepositoryCategory
		var category sql.NullString

		if err := rows.Scan(&a.FullName, &category); err != nil {
			return nil, apperrors.NewStoreUnavailableError("failed to scan repository row", err)
		}
		a.Category = category.String
		assignments = append(assignments, a)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewStoreUnavailableError("failed to read repository rows", err)
	}

	return domain.BuildCategoryIndex(assignments), nil
}

// Ping checks the database connection
func (s *postgresStorage) Ping(ctx context.Context) error {
	if err := s.db.PingContext(ctx); err != nil {
		return apperrors.NewStoreUnavailableError("postgres is unreachable", err)
	}
	return nil
}

// Close closes the database connection
func (s *postgresStorage) Close() error {
	return s.db.Close()
}
