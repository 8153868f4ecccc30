// Package newsapi provides a client for the NewsAPI service
package newsapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/finsight/finsight/internal/common"
	"github.com/finsight/finsight/internal/interfaces"
	"github.com/finsight/finsight/internal/models"
)

const (
	DefaultBaseURL  = "https://newsapi.org"
	DefaultTimeout  = 20 * time.Second
	DefaultPageSize = 5
)

// Client implements the NewsClient interface against NewsAPI's
// /v2/everything endpoint.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	logger     *common.Logger
}

// ClientOption configures the client
type ClientOption func(*Client)

// WithBaseURL sets the base URL
func WithBaseURL(baseURL string) ClientOption {
	return func(c *Client) {
		c.baseURL = baseURL
	}
}

// WithLogger sets the logger
func WithLogger(logger *common.Logger) ClientOption {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithTimeout sets the HTTP timeout
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *Client) {
		c.httpClient.Timeout = timeout
	}
}

// NewClient creates a new NewsAPI client
func NewClient(apiKey string, opts ...ClientOption) *Client {
	c := &Client{
		baseURL: DefaultBaseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
		logger: common.NewSilentLogger(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

type articleResponse struct {
	Title  string `json:"title"`
	Source struct {
		Name string `json:"name"`
	} `json:"source"`
	PublishedAt string `json:"publishedAt"`
	URL         string `json:"url"`
	Description string `json:"description"`
}

type everythingResponse struct {
	Status   string            `json:"status"`
	Articles []articleResponse `json:"articles"`
}

// GetLatestNews retrieves recent English headlines for a query string,
// newest first.
func (c *Client) GetLatestNews(ctx context.Context, query string, limit int) ([]models.NewsItem, error) {
	if limit <= 0 {
		limit = DefaultPageSize
	}

	params := url.Values{}
	params.Set("q", query)
	params.Set("language", "en")
	params.Set("sortBy", "publishedAt")
	params.Set("pageSize", strconv.Itoa(limit))

	reqURL := c.baseURL + "/v2/everything?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("X-Api-Key", c.apiKey)

	c.logger.Debug().Str("query", query).Int("limit", limit).Msg("NewsAPI request")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("NewsAPI returned status %d: %s", resp.StatusCode, string(body))
	}

	var result everythingResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	items := make([]models.NewsItem, 0, len(result.Articles))
	for _, a := range result.Articles {
		publishedAt, _ := time.Parse(time.RFC3339, a.PublishedAt)
		items = append(items, models.NewsItem{
			Title:       a.Title,
			Source:      a.Source.Name,
			PublishedAt: publishedAt,
			URL:         a.URL,
			Description: a.Description,
		})
	}

	return items, nil
}

// Ensure Client implements NewsClient
var _ interfaces.NewsClient = (*Client)(nil)
