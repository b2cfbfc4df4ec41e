package client

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/trendscope/star-trends/internal/aggregator"
	"github.com/trendscope/star-trends/internal/api"
	"github.com/trendscope/star-trends/internal/domain"
	apperrors "github.com/trendscope/star-trends/internal/errors"
	"github.com/trendscope/star-trends/internal/storage"
)

const testPassword = "hunter2"

func fixtureStore() *storage.MockStorage {
	date := time.Date(2024, 3, 1, 6, 0, 0, 0, time.UTC)
	rec := func(name string, growthPct, starGrowth, endStars float64) *domain.RepositoryAnalysis {
		return &domain.RepositoryAnalysis{
			FullName:      name,
			Author:        "octo",
			URL:           "https://github.com/" + name,
			StartStars:    domain.Float64Ptr(endStars - starGrowth),
			EndStars:      domain.Float64Ptr(endStars),
			StarGrowth:    domain.Float64Ptr(starGrowth),
			GrowthPerDay:  domain.Float64Ptr(starGrowth / 7),
			GrowthPercent: domain.Float64Ptr(growthPct),
			AnalysisDate:  date,
			PeriodDays:    7,
		}
	}
	return &storage.MockStorage{
		Batch: domain.NewAnalysisBatch([]*domain.RepositoryAnalysis{
			rec("octo/cat", 50, 100, 300),
			rec("octo/dog", 10, 20, 2000),
		}),
		Index: domain.CategoryIndex{
			"octo/cat": "devtools",
			"octo/dog": "ai",
		},
	}
}

// newTestServer runs the real router over a stubbed store, so client
// tests cover the whole wire round trip.
func newTestServer(t *testing.T, store *storage.MockStorage) *httptest.Server {
	t.Helper()
	gin.SetMode(gin.TestMode)

	agg := aggregator.NewAggregator(store, zap.NewNop())
	sessions := api.NewSessionStore(testPassword, time.Hour)
	srv := httptest.NewServer(api.SetupRoutes(api.NewHandler(agg, sessions), zap.NewNop()))
	t.Cleanup(srv.Close)
	return srv
}

func TestClientLoginWrongPassword(t *testing.T) {
	srv := newTestServer(t, fixtureStore())
	cl := NewClient(srv.URL)

	err := cl.Login("letmein")
	require.Error(t, err)
	assert.True(t, apperrors.IsUnauthorized(err))
}

func TestClientRequiresLogin(t *testing.T) {
	srv := newTestServer(t, fixtureStore())
	cl := NewClient(srv.URL)

	_, err := cl.Dashboard(domain.FilterOptions{})
	require.Error(t, err)
	assert.True(t, apperrors.IsUnauthorized(err))
}

func TestClientDashboardRoundTrip(t *testing.T) {
	srv := newTestServer(t, fixtureStore())
	cl := NewClient(srv.URL)
	require.NoError(t, cl.Login(testPassword))

	view, err := cl.Dashboard(domain.FilterOptions{})
	require.NoError(t, err)

	assert.Equal(t, 2, view.TotalCount)
	assert.Equal(t, 2, view.FilteredCount)
	require.NotNil(t, view.Summary)
	assert.Equal(t, int64(120), view.Summary.TotalStarGrowth)
	require.Len(t, view.Repositories, 2)
	assert.Len(t, view.TopByGrowthPercent, 2)
}

func TestClientFilterRoundTrip(t *testing.T) {
	srv := newTestServer(t, fixtureStore())
	cl := NewClient(srv.URL)
	require.NoError(t, cl.Login(testPassword))

	view, err := cl.Dashboard(domain.FilterOptions{
		Categories:    []string{"devtools"},
		MinStarGrowth: 50,
	})
	require.NoError(t, err)

	assert.Equal(t, 2, view.TotalCount)
	assert.Equal(t, 1, view.FilteredCount)
	require.Len(t, view.Repositories, 1)
	assert.Equal(t, "octo/cat", view.Repositories[0].FullName)
	assert.Equal(t, "devtools", view.Repositories[0].Category)
}

func TestClientRepositories(t *testing.T) {
	srv := newTestServer(t, fixtureStore())
	cl := NewClient(srv.URL)
	require.NoError(t, cl.Login(testPassword))

	batch, err := cl.Repositories(domain.FilterOptions{Categories: []string{"ai"}})
	require.NoError(t, err)

	require.Equal(t, 1, batch.Len())
	assert.Equal(t, "octo/dog", batch.Records[0].FullName)
}

func TestClientSummaryNotFound(t *testing.T) {
	srv := newTestServer(t, &storage.MockStorage{})
	cl := NewClient(srv.URL)
	require.NoError(t, cl.Login(testPassword))

	_, err := cl.Summary(domain.FilterOptions{})
	require.Error(t, err)
	assert.True(t, apperrors.IsNotFound(err))
}

func TestClientCategories(t *testing.T) {
	srv := newTestServer(t, fixtureStore())
	cl := NewClient(srv.URL)
	require.NoError(t, cl.Login(testPassword))

	stats, err := cl.Categories(domain.FilterOptions{})
	require.NoError(t, err)
	require.Len(t, stats, 2)
}

func TestClientTopPerformers(t *testing.T) {
	srv := newTestServer(t, fixtureStore())
	cl := NewClient(srv.URL)
	require.NoError(t, cl.Login(testPassword))

	top, err := cl.TopPerformers(domain.FilterOptions{}, nil, domain.TopMetricStarGrowth, 1)
	require.NoError(t, err)

	require.Len(t, top, 1)
	assert.Equal(t, "octo/cat", top[0].FullName)
}

func TestClientLogoutEndsSession(t *testing.T) {
	srv := newTestServer(t, fixtureStore())
	cl := NewClient(srv.URL)
	require.NoError(t, cl.Login(testPassword))

	_, err := cl.Summary(domain.FilterOptions{})
	require.NoError(t, err)

	require.NoError(t, cl.Logout())

	_, err = cl.Summary(domain.FilterOptions{})
	require.Error(t, err)
	assert.True(t, apperrors.IsUnauthorized(err))
}

func TestClientLogoutWithoutSession(t *testing.T) {
	srv := newTestServer(t, fixtureStore())
	cl := NewClient(srv.URL)

	assert.NoError(t, cl.Logout())
}

func TestClientHealthCheck(t *testing.T) {
	srv := newTestServer(t, fixtureStore())
	cl := NewClient(srv.URL)

	assert.NoError(t, cl.HealthCheck())
}
