package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/menuscan/backend/internal/domain"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"
)

const (
	DefaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"
	DefaultModel   = "gemini-2.5-flash"
	DefaultTimeout = 60 * time.Second

	maxResponseSize = 10 * 1024 * 1024 // 10MB
)

// ClientConfig holds connection settings for the Gemini API
type ClientConfig struct {
	APIKey            string
	BaseURL           string
	Model             string
	Timeout           time.Duration
	RequestsPerMinute int
}

// Client sends generateContent requests to the Gemini API.
// It never retries; callers decide what to do with ErrTransport and ErrUpstream.
type Client struct {
	httpClient  *http.Client
	apiKey      string
	baseURL     string
	model       string
	rateLimiter *rate.Limiter
	logger      zerolog.Logger
	debug       bool
}

// NewClient creates a new Gemini API client
func NewClient(cfg ClientConfig, logger zerolog.Logger) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.RequestsPerMinute <= 0 {
		cfg.RequestsPerMinute = 60
	}

	// rate.Limit is requests per second
	limiter := rate.NewLimiter(rate.Limit(float64(cfg.RequestsPerMinute)/60.0), cfg.RequestsPerMinute/6+1)

	return &Client{
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		apiKey:      strings.TrimSpace(cfg.APIKey),
		baseURL:     strings.TrimRight(cfg.BaseURL, "/"),
		model:       cfg.Model,
		rateLimiter: limiter,
		logger:      logger.With().Str("component", "gemini").Logger(),
	}
}

// SetDebug enables logging of raw model output previews
func (c *Client) SetDebug(debug bool) {
	c.debug = debug
}

// Configured reports whether an API key is present
func (c *Client) Configured() bool {
	return c.apiKey != ""
}

// Model returns the model name requests are sent to
func (c *Client) Model() string {
	return c.model
}

// Send posts the payload and returns the raw model text
func (c *Client) Send(ctx context.Context, payload domain.RequestPayload) (string, error) {
	if c.apiKey == "" {
		return "", fmt.Errorf("%w (set MENUSCAN_GEMINI_API_KEY)", domain.ErrAuth)
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("failed to encode request: %w", err)
	}

	if err := c.rateLimiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("%w: rate limiter: %w", domain.ErrTransport, err)
	}

	start := time.Now()
	resp, err := c.doRequest(ctx, body)
	if err != nil {
		c.logger.Debug().Err(err).Msg("request failed")
		return "", err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return "", fmt.Errorf("%w: reading response: %w", domain.ErrTransport, err)
	}

	c.logger.Debug().
		Int("status", resp.StatusCode).
		Int("bytes", len(raw)).
		Dur("latency", time.Since(start)).
		Msg("response received")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("%w: status %d: %s", domain.ErrUpstream, resp.StatusCode, upstreamMessage(raw))
	}

	var decoded generateResponse
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return "", fmt.Errorf("%w: failed to decode response: %v", domain.ErrUpstream, err)
	}

	text, err := mapToText(&decoded)
	if err != nil {
		return "", err
	}

	if c.debug {
		c.logger.Debug().Str("preview", truncate(text, 500)).Msg("model output")
	}

	return text, nil
}

// doRequest executes the POST with proper headers and error handling
func (c *Client) doRequest(ctx context.Context, body []byte) (*http.Response, error) {
	endpoint := fmt.Sprintf("%s/models/%s:generateContent", c.baseURL, url.PathEscape(c.model))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %w", domain.ErrTransport, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", "MenuScan/1.0")
	req.Header.Set("x-goog-api-key", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrTransport, err)
	}

	return resp, nil
}
