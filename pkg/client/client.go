// Package client fetches pages of the hackathon projects listing.
// One call is one GET; there is no retry and every failure is returned
// to the caller as a TransportError or a DecodeError.
package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/Sternrassler/hackathon-export/pkg/cache"
	"github.com/Sternrassler/hackathon-export/pkg/project"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Prometheus metrics for listing requests.
var (
	requestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "hackathon_export_requests_total",
		Help: "Total listing requests by status",
	}, []string{"status"})

	requestDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "hackathon_export_request_duration_seconds",
		Help:    "Listing request duration in seconds",
		Buckets: []float64{0.1, 0.25, 0.5, 1, 2, 5, 10},
	})

	errorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "hackathon_export_errors_total",
		Help: "Total fetch errors by class",
	}, []string{"class"})
)

// ErrorClass represents a classification of fetch errors.
type ErrorClass string

const (
	// ErrorClassTransport represents connection and request errors.
	ErrorClassTransport ErrorClass = "transport"

	// ErrorClassStatus represents non-2xx responses.
	ErrorClassStatus ErrorClass = "status"

	// ErrorClassDecode represents bodies that do not match the page shape.
	ErrorClassDecode ErrorClass = "decode"
)

// projectsEndpoint is the listing path relative to BaseURL.
const projectsEndpoint = "/hackathon/projects"

// Client fetches listing pages for one hackathon.
type Client struct {
	httpClient *http.Client
	cache      *cache.Manager
	config     Config
	logger     zerolog.Logger
}

// Config holds the client configuration.
type Config struct {
	// BaseURL of the API, without trailing slash (e.g. "https://solana.com/api")
	BaseURL string

	// HackathonName is substituted into every page URL
	HackathonName string

	// UserAgent header sent with every request
	UserAgent string

	// Timeout of the underlying HTTP client; 0 means no timeout
	Timeout time.Duration

	// Cache is optional; nil disables page caching
	Cache *cache.Manager

	// CacheTTL applies to responses without an Expires header
	CacheTTL time.Duration
}

// DefaultConfig returns the configuration of the grizzlython export.
func DefaultConfig() Config {
	return Config{
		BaseURL:       "https://solana.com/api",
		HackathonName: "grizzlython",
		UserAgent:     "hackathon-export/0.1.0",
		Timeout:       30 * time.Second,
		CacheTTL:      cache.DefaultTTL,
	}
}

// New creates a new listing client.
func New(cfg Config) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("%w: base url is required", ErrInvalidConfig)
	}
	if _, err := url.Parse(cfg.BaseURL); err != nil {
		return nil, fmt.Errorf("%w: base url: %v", ErrInvalidConfig, err)
	}
	if cfg.HackathonName == "" {
		return nil, fmt.Errorf("%w: hackathon name is required", ErrInvalidConfig)
	}
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = cache.DefaultTTL
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")

	return &Client{
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		cache:  cfg.Cache,
		config: cfg,
		logger: log.With().Str("component", "client").Logger(),
	}, nil
}

// PageURL returns the listing URL for a page.
func (c *Client) PageURL(page int) string {
	return fmt.Sprintf("%s%s?page=%d&hackathonName=%s",
		c.config.BaseURL, projectsEndpoint, page, url.QueryEscape(c.config.HackathonName))
}

func (c *Client) query(page int) url.Values {
	return url.Values{
		"page":          []string{strconv.Itoa(page)},
		"hackathonName": []string{c.config.HackathonName},
	}
}

// FetchPage issues one GET for the page and decodes the body.
func (c *Client) FetchPage(ctx context.Context, page int) (*project.Page, error) {
	startTime := time.Now()
	defer func() {
		requestDuration.Observe(time.Since(startTime).Seconds())
	}()

	result, err := c.fetchPage(ctx, page)
	if err != nil {
		class := classOf(err)
		errorsTotal.WithLabelValues(string(class)).Inc()
		c.logger.Warn().
			Err(err).
			Int("page", page).
			Str("error_class", string(class)).
			Msg("Page fetch failed")
		return nil, err
	}

	c.logger.Debug().
		Int("page", page).
		Int("projects", len(result.Data)).
		Int("total_count", result.TotalCount).
		Dur("duration", time.Since(startTime)).
		Msg("Page fetched")

	return result, nil
}

func (c *Client) fetchPage(ctx context.Context, page int) (*project.Page, error) {
	cacheKey := cache.CacheKey{
		Endpoint:    projectsEndpoint,
		QueryParams: c.query(page),
	}

	if c.cache != nil {
		entry, err := c.cache.Get(ctx, cacheKey)
		switch {
		case err == nil:
			c.logger.Debug().Int("page", page).Str("key", cacheKey.String()).Msg("Page served from cache")
			requestsTotal.WithLabelValues("cached").Inc()
			return decodePage(page, entry.Data)
		case !errors.Is(err, cache.ErrCacheMiss):
			c.logger.Warn().Err(err).Int("page", page).Msg("Cache get error")
		}
	}

	pageURL := c.PageURL(page)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, &TransportError{Page: page, URL: pageURL, Err: fmt.Errorf("create request: %w", err)}
	}
	req.Header.Set("User-Agent", c.config.UserAgent)
	req.Header.Set("Accept", "application/json")

	c.logger.Debug().Int("page", page).Str("url", pageURL).Msg("Executing listing request")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		requestsTotal.WithLabelValues("network_error").Inc()
		return nil, &TransportError{Page: page, URL: pageURL, Err: err}
	}
	defer resp.Body.Close()

	requestsTotal.WithLabelValues(strconv.Itoa(resp.StatusCode)).Inc()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &TransportError{
			Page:       page,
			URL:        pageURL,
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("unexpected status %s", resp.Status),
		}
	}

	var entry *cache.CacheEntry
	var body []byte
	if c.cache != nil {
		entry, err = cache.ResponseToEntry(resp, c.config.CacheTTL)
		if err == nil {
			body = entry.Data
		}
	} else {
		body, err = io.ReadAll(resp.Body)
	}
	if err != nil {
		return nil, &TransportError{Page: page, URL: pageURL, StatusCode: resp.StatusCode, Err: fmt.Errorf("read body: %w", err)}
	}

	result, err := decodePage(page, body)
	if err != nil {
		return nil, err
	}

	// Only bodies that decoded are worth keeping
	if entry != nil {
		if err := c.cache.Set(ctx, cacheKey, entry); err != nil {
			c.logger.Warn().Err(err).Int("page", page).Msg("Failed to cache page")
		}
	}

	return result, nil
}

func decodePage(page int, body []byte) (*project.Page, error) {
	if !utf8.Valid(body) {
		return nil, &DecodeError{Page: page, Err: ErrInvalidUTF8}
	}

	var result project.Page
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, &DecodeError{Page: page, Err: err}
	}
	return &result, nil
}

// Close releases idle connections held by the HTTP client.
func (c *Client) Close() error {
	c.httpClient.CloseIdleConnections()
	return nil
}

// SetHTTPClient sets a custom HTTP client (for testing).
func (c *Client) SetHTTPClient(client *http.Client) {
	c.httpClient = client
}
