package storage

import (
	"context"

	"github.com/trendscope/star-trends/internal/domain"
	apperrors "github.com/trendscope/star-trends/internal/errors"
)

// MockStorage is a hand-rolled Storage stub for tests. With no batch
// configured it behaves like an empty store and reports not found,
// matching the real adapters.
type MockStorage struct {
	Batch    *domain.AnalysisBatch
	Index    domain.CategoryIndex
	BatchErr error
	IndexErr error
	PingErr  error

	FetchBatchCalls int
	FetchIndexCalls int
}

func (m *MockStorage) FetchLatestBatch(ctx context.Context) (*domain.AnalysisBatch, error) {
	m.FetchBatchCalls++
	if m.BatchErr != nil {
		return nil, m.BatchErr
	}
	if m.Batch == nil || m.Batch.Len() == 0 {
		return nil, apperrors.NewNotFoundError("analysis batch")
	}
	return m.Batch, nil
}

func (m *MockStorage) FetchCategoryIndex(ctx context.Context) (domain.CategoryIndex, error) {
	m.FetchIndexCalls++
	if m.IndexErr != nil {
		return nil, m.IndexErr
	}
	if m.Index == nil {
		return domain.CategoryIndex{}, nil
	}
	return m.Index, nil
}

func (m *MockStorage) Ping(ctx context.Context) error {
	return m.PingErr
}

func (m *MockStorage) Close() error {
	return nil
}
