// HTTP [Fetcher] implementation
package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/desertthunder/ytlink/internal/shared"
)

const (
	defaultUserAgent    string = "Mozilla/5.0"
	defaultTimeout             = 10 * time.Second
	defaultMaxBodyBytes int64  = 5 << 20
)

// HTTPFetcher implements [Fetcher] over net/http.
//
// Redirects are followed by the client; any final status outside 2xx is a failure.
type HTTPFetcher struct {
	httpClient   *http.Client
	userAgent    string
	maxBodyBytes int64
}

// FetcherOpts contains configuration for creating an [HTTPFetcher].
type FetcherOpts struct {
	HTTPClient   *http.Client
	UserAgent    string
	Timeout      time.Duration // ignored when HTTPClient is set
	MaxBodyBytes int64
}

// NewHTTPFetcher creates a new [HTTPFetcher], filling unset options with defaults.
func NewHTTPFetcher(opts FetcherOpts) *HTTPFetcher {
	if opts.UserAgent == "" {
		opts.UserAgent = defaultUserAgent
	}
	if opts.Timeout <= 0 {
		opts.Timeout = defaultTimeout
	}
	if opts.MaxBodyBytes <= 0 {
		opts.MaxBodyBytes = defaultMaxBodyBytes
	}
	if opts.HTTPClient == nil {
		opts.HTTPClient = &http.Client{Timeout: opts.Timeout}
	}

	return &HTTPFetcher{
		httpClient:   opts.HTTPClient,
		userAgent:    opts.UserAgent,
		maxBodyBytes: opts.MaxBodyBytes,
	}
}

// NewHTTPFetcherFromConfig creates an [HTTPFetcher] from the [shared.FetcherConfig] section.
func NewHTTPFetcherFromConfig(cfg shared.FetcherConfig) *HTTPFetcher {
	return NewHTTPFetcher(FetcherOpts{
		UserAgent:    cfg.UserAgent,
		Timeout:      cfg.Timeout(),
		MaxBodyBytes: cfg.MaxBodyBytes,
	})
}

// Fetch performs a GET request to url and returns the body as text.
func (f *HTTPFetcher) Fetch(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("%w: failed to create request: %v", shared.ErrFetch, err)
	}

	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml")

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return "", classifyFetchError(ctx, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("%w: status %d", shared.ErrFetch, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBodyBytes))
	if err != nil {
		return "", classifyFetchError(ctx, err)
	}

	return string(body), nil
}

// classifyFetchError separates caller cancellation from transport failures and timeouts.
func classifyFetchError(ctx context.Context, err error) error {
	if errors.Is(ctx.Err(), context.Canceled) || errors.Is(err, context.Canceled) {
		return fmt.Errorf("%w: %w", shared.ErrCancelled, context.Canceled)
	}
	return fmt.Errorf("%w: %w", shared.ErrFetch, err)
}
