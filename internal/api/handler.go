package api

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/trendscope/star-trends/internal/aggregator"
	"github.com/trendscope/star-trends/internal/domain"
	apperrors "github.com/trendscope/star-trends/internal/errors"
)

// Handler handles API requests
type Handler struct {
	aggregator aggregator.Aggregator
	sessions   *SessionStore
}

// NewHandler creates a new API handler
func NewHandler(agg aggregator.Aggregator, sessions *SessionStore) *Handler {
	return &Handler{
		aggregator: agg,
		sessions:   sessions,
	}
}

type loginRequest struct {
	Password string `json:"password"`
}

// Login exchanges the shared dashboard secret for a session token
// POST /api/v1/session
func (h *Handler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apperrors.NewBadRequestError("request body must be JSON with a password field"))
		return
	}

	token, expiresAt, err := h.sessions.Login(req.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": gin.H{
			"token":      token,
			"expires_at": expiresAt,
		},
	})
}

// Logout revokes the presented session token. Revoking a token that is
// already gone succeeds, so logout never fails.
// DELETE /api/v1/session
func (h *Handler) Logout(c *gin.Context) {
	if token := bearerToken(c); token != "" {
		h.sessions.Revoke(token)
	}
	c.Status(http.StatusNoContent)
}

// GetDashboard returns the complete dashboard view
// GET /api/v1/dashboard
func (h *Handler) GetDashboard(c *gin.Context) {
	opts := parseFilterOptions(c)

	view, err := h.aggregator.Dashboard(c.Request.Context(), opts)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": view,
	})
}

// GetRepositories returns the filtered, normalized records
// GET /api/v1/repositories
func (h *Handler) GetRepositories(c *gin.Context) {
	opts := parseFilterOptions(c)

	batch, err := h.aggregator.Repositories(c.Request.Context(), opts)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": batch,
	})
}

// GetSummary returns the headline metrics for the filtered view
// GET /api/v1/summary
func (h *Handler) GetSummary(c *gin.Context) {
	opts := parseFilterOptions(c)

	summary, err := h.aggregator.Summary(c.Request.Context(), opts)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": summary,
	})
}

// GetCategories returns the category breakdown for the filtered view
// GET /api/v1/categories
func (h *Handler) GetCategories(c *gin.Context) {
	opts := parseFilterOptions(c)

	stats, err := h.aggregator.Categories(c.Request.Context(), opts)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": stats,
	})
}

// GetTopPerformers returns the top repositories ranked by a metric
// GET /api/v1/top/:metric
func (h *Handler) GetTopPerformers(c *gin.Context) {
	metric, ok := domain.ParseTopMetric(c.Param("metric"))
	if !ok {
		respondError(c, apperrors.NewBadRequestError("metric must be one of: growth-percent, star-growth"))
		return
	}

	opts := parseFilterOptions(c)
	topCategories := parseCSVQuery(c, "top_categories")
	limit := parseIntQuery(c, "limit", domain.DefaultTopLimit)

	top, err := h.aggregator.TopPerformers(c.Request.Context(), opts, topCategories, metric, limit)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": top,
	})
}

// HealthCheck returns the health status of the API
// GET /health
func (h *Handler) HealthCheck(c *gin.Context) {
	if err := h.aggregator.Ping(c.Request.Context()); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status": "degraded",
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
	})
}

// parseFilterOptions parses the dashboard filter controls from query
// parameters. Values the dashboard inputs cannot produce (unparseable
// or negative) fall back to the pass-through default.
func parseFilterOptions(c *gin.Context) domain.FilterOptions {
	return domain.FilterOptions{
		Categories:       parseCSVQuery(c, "categories"),
		MinGrowthPercent: parseFloatQuery(c, "min_growth_percent", 0),
		MinStarGrowth:    parseInt64Query(c, "min_star_growth", 0),
		MinEndStars:      parseInt64Query(c, "min_end_stars", 0),
	}
}

// parseCSVQuery splits a comma-separated query parameter, dropping
// empty elements
func parseCSVQuery(c *gin.Context, key string) []string {
	raw := c.Query(key)
	if raw == "" {
		return nil
	}
	var values []string
	for _, v := range strings.Split(raw, ",") {
		if v = strings.TrimSpace(v); v != "" {
			values = append(values, v)
		}
	}
	return values
}

// parseIntQuery parses an integer query parameter with a default value
func parseIntQuery(c *gin.Context, key string, defaultValue int) int {
	valueStr := c.Query(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil || value <= 0 {
		return defaultValue
	}
	return value
}

// parseInt64Query parses a threshold query parameter with a default value
func parseInt64Query(c *gin.Context, key string, defaultValue int64) int64 {
	valueStr := c.Query(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseInt(valueStr, 10, 64)
	if err != nil || value < 0 {
		return defaultValue
	}
	return value
}

// parseFloatQuery parses a threshold query parameter with a default value
func parseFloatQuery(c *gin.Context, key string, defaultValue float64) float64 {
	valueStr := c.Query(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil || value < 0 {
		return defaultValue
	}
	return value
}

// respondError sends an error response
func respondError(c *gin.Context, err error) {
	if appErr, ok := err.(*apperrors.AppError); ok {
		status := http.StatusInternalServerError
		switch appErr.Code {
		case apperrors.ErrCodeNotFound:
			status = http.StatusNotFound
		case apperrors.ErrCodeUnauthorized:
			status = http.StatusUnauthorized
		case apperrors.ErrCodeBadRequest:
			status = http.StatusBadRequest
		case apperrors.ErrCodeStoreUnavailable:
			status = http.StatusServiceUnavailable
		}
		c.JSON(status, gin.H{
			"error": gin.H{
				"code":    appErr.Code,
				"message": appErr.Message,
			},
		})
		return
	}

	c.JSON(http.StatusInternalServerError, gin.H{
		"error": gin.H{
			"code":    apperrors.ErrCodeInternal,
			"message": err.Error(),
		},
	})
}
