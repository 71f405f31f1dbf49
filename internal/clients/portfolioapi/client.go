// Package portfolioapi provides a client for the portfolio API the dashboard
// reads holdings and the server summary from.
package portfolioapi

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/bobmcallan/vire-dash/internal/common"
	"github.com/bobmcallan/vire-dash/internal/models"
)

const (
	DefaultBaseURL       = "http://localhost:8080"
	DefaultSummaryPath   = "/api/summary"
	DefaultPortfolioPath = "/api/portfolio"
	DefaultDeletePath    = "/delete"
	DefaultRateLimit     = 5 // requests per second
)

// ErrEmptySymbol is returned by DeleteHolding when no symbol is given.
var ErrEmptySymbol = errors.New("symbol is required")

// Client implements interfaces.PortfolioSource over HTTP
type Client struct {
	baseURL       string
	summaryPath   string
	portfolioPath string
	deletePath    string
	httpClient    *http.Client
	logger        *common.Logger
	limiter       *rate.Limiter
}

// ClientOption configures the client
type ClientOption func(*Client)

// WithBaseURL sets the base URL
func WithBaseURL(baseURL string) ClientOption {
	return func(c *Client) {
		c.baseURL = strings.TrimRight(baseURL, "/")
	}
}

// WithPaths overrides the endpoint paths. Empty values keep the current path.
func WithPaths(summary, portfolio, del string) ClientOption {
	return func(c *Client) {
		if summary != "" {
			c.summaryPath = summary
		}
		if portfolio != "" {
			c.portfolioPath = portfolio
		}
		if del != "" {
			c.deletePath = del
		}
	}
}

// WithLogger sets the logger
func WithLogger(logger *common.Logger) ClientOption {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithRateLimit sets the rate limit. Values <= 0 keep the default.
func WithRateLimit(requestsPerSecond int) ClientOption {
	return func(c *Client) {
		if requestsPerSecond <= 0 {
			return
		}
		c.limiter = rate.NewLimiter(rate.Limit(requestsPerSecond), requestsPerSecond)
	}
}

// WithTimeout sets the HTTP timeout. Zero means no timeout.
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *Client) {
		c.httpClient.Timeout = timeout
	}
}

// NewClient creates a new portfolio API client. By default requests have no
// timeout: a hung request only delays its own refresh cycle.
func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		baseURL:       DefaultBaseURL,
		summaryPath:   DefaultSummaryPath,
		portfolioPath: DefaultPortfolioPath,
		deletePath:    DefaultDeletePath,
		httpClient: &http.Client{
			// The delete endpoint answers with a redirect back to its own UI.
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
		limiter: rate.NewLimiter(rate.Limit(DefaultRateLimit), DefaultRateLimit),
		logger:  common.NewSilentLogger(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// APIError represents a non-success response from the portfolio API
type APIError struct {
	StatusCode int
	Message    string
	Endpoint   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("portfolio API error: %s (status: %d, endpoint: %s)", e.Message, e.StatusCode, e.Endpoint)
}

func (c *Client) do(ctx context.Context, req *http.Request) (*http.Response, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}
	if id := common.CorrelationIDFromContext(ctx); id != "" {
		req.Header.Set("X-Request-ID", id)
	}

	c.logger.Debug().Str("method", req.Method).Str("url", req.URL.Path).Msg("Portfolio API request")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	return resp, nil
}

// get performs a rate-limited GET request and returns the body of a 2xx response
func (c *Client) get(ctx context.Context, path string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.do(ctx, req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &APIError{
			StatusCode: resp.StatusCode,
			Message:    strings.TrimSpace(string(body)),
			Endpoint:   path,
		}
	}
	return body, nil
}

// GetSummary retrieves and normalizes the server summary
func (c *Client) GetSummary(ctx context.Context) (*models.Summary, error) {
	body, err := c.get(ctx, c.summaryPath)
	if err != nil {
		return nil, err
	}
	return ParseSummary(body)
}

// GetPortfolio retrieves and normalizes the holdings
func (c *Client) GetPortfolio(ctx context.Context) (*models.Portfolio, error) {
	body, err := c.get(ctx, c.portfolioPath)
	if err != nil {
		return nil, err
	}
	return ParsePortfolio(body)
}

// DeleteHolding submits the delete form for symbol. Redirects count as success.
func (c *Client) DeleteHolding(ctx context.Context, symbol string) error {
	symbol = common.Sanitize(symbol)
	if symbol == "" {
		return ErrEmptySymbol
	}

	form := url.Values{"symbol": {symbol}}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+c.deletePath, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.do(ctx, req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		body, _ := io.ReadAll(resp.Body)
		return &APIError{
			StatusCode: resp.StatusCode,
			Message:    strings.TrimSpace(string(body)),
			Endpoint:   c.deletePath,
		}
	}

	c.logger.Info().Str("symbol", symbol).Msg("Holding deleted")
	return nil
}
