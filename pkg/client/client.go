package client

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/trendscope/star-trends/internal/domain"
	apperrors "github.com/trendscope/star-trends/internal/errors"
)

// Client is the API client for the star-trends dashboard. Data routes
// require a session: call Login first to exchange the dashboard
// password for a bearer token.
type Client struct {
	baseURL    string
	httpClient *http.Client

	token string
}

// NewClient creates a new API client
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// Login exchanges the dashboard password for a session token, held by
// the client and sent with every later request.
func (c *Client) Login(password string) error {
	body, err := json.Marshal(map[string]string{"password": password})
	if err != nil {
		return err
	}

	req, err := http.NewRequest(http.MethodPost, c.baseURL+"/api/v1/session", bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	var response struct {
		Data struct {
			Token     string    `json:"token"`
			ExpiresAt time.Time `json:"expires_at"`
		} `json:"data"`
	}
	if err := c.do(req, &response); err != nil {
		return err
	}

	c.token = response.Data.Token
	return nil
}

// Logout revokes the client's session token. Calling it without a live
// session is a no-op.
func (c *Client) Logout() error {
	if c.token == "" {
		return nil
	}

	req, err := http.NewRequest(http.MethodDelete, c.baseURL+"/api/v1/session", nil)
	if err != nil {
		return err
	}
	if err := c.do(req, nil); err != nil {
		return err
	}

	c.token = ""
	return nil
}

// Dashboard retrieves the complete dashboard view for the given filter
func (c *Client) Dashboard(opts domain.FilterOptions) (*domain.DashboardView, error) {
	var response struct {
		Data *domain.DashboardView `json:"data"`
	}
	if err := c.get("/api/v1/dashboard", buildFilterParams(opts), &response); err != nil {
		return nil, err
	}
	return response.Data, nil
}

// Repositories retrieves the filtered, normalized records
func (c *Client) Repositories(opts domain.FilterOptions) (*domain.AnalysisBatch, error) {
	var response struct {
		Data *domain.AnalysisBatch `json:"data"`
	}
	if err := c.get("/api/v1/repositories", buildFilterParams(opts), &response); err != nil {
		return nil, err
	}
	return response.Data, nil
}

// Summary retrieves the headline metrics for the filtered view
func (c *Client) Summary(opts domain.FilterOptions) (*domain.Summary, error) {
	var response struct {
		Data *domain.Summary `json:"data"`
	}
	if err := c.get("/api/v1/summary", buildFilterParams(opts), &response); err != nil {
		return nil, err
	}
	return response.Data, nil
}

// Categories retrieves the category breakdown for the filtered view
func (c *Client) Categories(opts domain.FilterOptions) ([]domain.CategoryStat, error) {
	var response struct {
		Data []domain.CategoryStat `json:"data"`
	}
	if err := c.get("/api/v1/categories", buildFilterParams(opts), &response); err != nil {
		return nil, err
	}
	return response.Data, nil
}

// TopPerformers retrieves the top repositories ranked by the given
// metric, optionally narrowed to its own category set.
func (c *Client) TopPerformers(opts domain.FilterOptions, topCategories []string, metric domain.TopMetric, limit int) ([]*domain.RepositoryAnalysis, error) {
	params := buildFilterParams(opts)
	if len(topCategories) > 0 {
		params.Set("top_categories", strings.Join(topCategories, ","))
	}
	if limit > 0 {
		params.Set("limit", strconv.Itoa(limit))
	}

	var response struct {
		Data []*domain.RepositoryAnalysis `json:"data"`
	}
	if err := c.get("/api/v1/top/"+string(metric), params, &response); err != nil {
		return nil, err
	}
	return response.Data, nil
}

// HealthCheck checks if the API is healthy
func (c *Client) HealthCheck() error {
	var response struct {
		Status string `json:"status"`
	}
	if err := c.get("/health", nil, &response); err != nil {
		return err
	}
	if response.Status != "ok" {
		return fmt.Errorf("unhealthy status: %s", response.Status)
	}
	return nil
}

// buildFilterParams encodes the filter controls as query parameters,
// omitting every control left at its pass-through default.
func buildFilterParams(opts domain.FilterOptions) url.Values {
	params := url.Values{}
	if len(opts.Categories) > 0 {
		params.Set("categories", strings.Join(opts.Categories, ","))
	}
	if opts.MinGrowthPercent > 0 {
		params.Set("min_growth_percent", strconv.FormatFloat(opts.MinGrowthPercent, 'f', -1, 64))
	}
	if opts.MinStarGrowth > 0 {
		params.Set("min_star_growth", strconv.FormatInt(opts.MinStarGrowth, 10))
	}
	if opts.MinEndStars > 0 {
		params.Set("min_end_stars", strconv.FormatInt(opts.MinEndStars, 10))
	}
	return params
}

func (c *Client) get(path string, params url.Values, result interface{}) error {
	u, err := url.Parse(c.baseURL + path)
	if err != nil {
		return err
	}
	if params != nil {
		u.RawQuery = params.Encode()
	}

	req, err := http.NewRequest(http.MethodGet, u.String(), nil)
	if err != nil {
		return err
	}
	return c.do(req, result)
}

func (c *Client) do(req *http.Request, result interface{}) error {
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return decodeAPIError(resp)
	}
	if result == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(result)
}

// decodeAPIError rebuilds the server's error envelope so callers can
// distinguish "no data" from a gate rejection or an unreachable store.
func decodeAPIError(resp *http.Response) error {
	body, _ := io.ReadAll(resp.Body)

	var envelope struct {
		Error struct {
			Code    apperrors.ErrCode `json:"code"`
			Message string            `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(body, &envelope); err == nil && envelope.Error.Code != "" {
		return &apperrors.AppError{
			Code:    envelope.Error.Code,
			Message: envelope.Error.Message,
		}
	}

	return fmt.Errorf("API error: %s - %s", resp.Status, string(body))
}
