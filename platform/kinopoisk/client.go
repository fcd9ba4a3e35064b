// Package kinopoisk provides a client for the unofficial Kinopoisk movie
// catalog API. Responses are passed through verbatim; the client does no
// caching, normalization or retrying.
package kinopoisk

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"filmoteka_backend/platform/apperr"
)

const (
	searchPath = "/api/v2.1/films/search-by-keyword"
	filmPath   = "/api/v2.2/films/%d"
)

// Client is an HTTP client for the Kinopoisk catalog API. A single client is
// constructed at startup and shared across requests so the underlying
// transport can pool connections.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// Config configures the catalog client.
type Config struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
}

// NewClient creates a new catalog client.
func NewClient(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}

	return &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:     cfg.APIKey,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// SearchByKeyword runs a keyword search against the catalog and returns the
// raw response body.
func (c *Client) SearchByKeyword(ctx context.Context, keyword string) (json.RawMessage, error) {
	endpoint := c.baseURL + searchPath + "?keyword=" + url.QueryEscape(keyword)
	return c.get(ctx, endpoint, "search movies")
}

// FilmByID fetches a single film's detail by its catalog id and returns the
// raw response body.
func (c *Client) FilmByID(ctx context.Context, filmID int64) (json.RawMessage, error) {
	endpoint := c.baseURL + fmt.Sprintf(filmPath, filmID)
	return c.get(ctx, endpoint, "fetch movie")
}

func (c *Client) get(ctx context.Context, endpoint, op string) (json.RawMessage, error) {
	request, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create catalog request: %w", err)
	}

	request.Header.Set("X-API-KEY", c.apiKey)
	request.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(request)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "movie catalog is unreachable", err).WithOp(op)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, apperr.Upstream(resp.StatusCode, "movie catalog request failed")
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog response: %w", err)
	}

	return json.RawMessage(body), nil
}
