package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"golang-asset-analytics/pkg/logger"
	"golang-asset-analytics/pkg/utils"

	"golang.org/x/time/rate"
)

// NewsDataConfig holds the settings for the NewsData client.
type NewsDataConfig struct {
	BaseURL             string `mapstructure:"base_url"`
	APIKey              string `mapstructure:"api_key"`
	MaxRequestPerMinute int    `mapstructure:"max_request_per_minute"`
}

type newsDataResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Results []struct {
		Title       string   `json:"title"`
		Content     string   `json:"content"`
		Description string   `json:"description"`
		Link        string   `json:"link"`
		Language    string   `json:"language"`
		Keywords    []string `json:"keywords"`
		PubDate     string   `json:"pubDate"`
	} `json:"results"`
}

// NewsDataClient fetches recent articles from the NewsData API.
type NewsDataClient struct {
	client  *http.Client
	cfg     NewsDataConfig
	limiter *rate.Limiter
	logger  *logger.Logger
}

// NewNewsDataClient creates a NewsData client with request throttling.
func NewNewsDataClient(cfg NewsDataConfig, log *logger.Logger) *NewsDataClient {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://newsdata.io/api/1"
	}
	rpm := cfg.MaxRequestPerMinute
	if rpm <= 0 {
		rpm = 30
	}
	return &NewsDataClient{
		client:  &http.Client{Timeout: 10 * time.Second},
		cfg:     cfg,
		limiter: rate.NewLimiter(rate.Every(time.Minute/time.Duration(rpm)), 1),
		logger:  log,
	}
}

// FetchNews fetches up to limit articles. A 422 from the API means the
// category/language combination is rejected; the request is retried bare.
func (c *NewsDataClient) FetchNews(ctx context.Context, category, language string, limit int) ([]Article, error) {
	if c.cfg.APIKey == "" {
		c.logger.Warn("NewsData API key not set, skipping news fetch")
		return nil, nil
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	payload, err := c.fetch(ctx, category, language)
	if err != nil {
		return nil, err
	}
	if payload == nil {
		// Retry without filters after a parameter rejection.
		payload, err = c.fetch(ctx, "", "")
		if err != nil {
			return nil, err
		}
		if payload == nil {
			return nil, fmt.Errorf("newsdata rejected the request parameters twice")
		}
	}

	if payload.Status != "success" {
		return nil, fmt.Errorf("newsdata status %q: %s", payload.Status, payload.Message)
	}

	articles := make([]Article, 0, len(payload.Results))
	for _, item := range payload.Results {
		if item.Title == "" || item.Link == "" {
			continue
		}
		if language != "" && item.Language != "" && item.Language != language {
			continue
		}

		content := item.Content
		if content == "" {
			content = item.Description
		}

		publishedAt, err := utils.ParseFlexibleTime(item.PubDate)
		if err != nil {
			publishedAt = utils.TimeNowUTC()
		}

		articles = append(articles, Article{
			Title:       utils.CleanToValidUTF8(item.Title),
			Content:     utils.CleanToValidUTF8(content),
			Link:        item.Link,
			Language:    item.Language,
			Keywords:    item.Keywords,
			PublishedAt: publishedAt,
		})
		if limit > 0 && len(articles) >= limit {
			break
		}
	}
	return articles, nil
}

// fetch performs one request; a nil response with nil error signals a 422
// parameter rejection so the caller can retry without filters.
func (c *NewsDataClient) fetch(ctx context.Context, category, language string) (*newsDataResponse, error) {
	params := url.Values{}
	params.Set("apikey", c.cfg.APIKey)
	if category != "" {
		params.Set("category", category)
	}
	if language != "" {
		params.Set("language", language)
	}

	endpoint := fmt.Sprintf("%s/news?%s", c.cfg.BaseURL, params.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to call newsdata: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnprocessableEntity {
		c.logger.Warn("NewsData rejected parameters, retrying without filters",
			logger.StringField("category", category), logger.StringField("language", language))
		return nil, nil
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("newsdata returned %d: %s", resp.StatusCode, string(body))
	}

	var payload newsDataResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to decode newsdata response: %w", err)
	}
	return &payload, nil
}
