// package testing contains shared testing utilities
package testing

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"sync"
	"testing"

	"github.com/desertthunder/ytlink/internal/models"
	"github.com/desertthunder/ytlink/internal/shared"
)

// MockFetcher is a test double for [services.Fetcher] returning canned markup per URL.
//
// URLs without a page fail with [shared.ErrFetch]. Err, when set, is returned for every call.
type MockFetcher struct {
	Pages map[string]string
	Err   error

	mu    sync.Mutex
	calls []string
}

func NewMockFetcher(pages map[string]string) *MockFetcher {
	return &MockFetcher{Pages: pages}
}

func (m *MockFetcher) Fetch(ctx context.Context, url string) (string, error) {
	m.mu.Lock()
	m.calls = append(m.calls, url)
	m.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return "", fmt.Errorf("%w: %w", shared.ErrCancelled, err)
	}
	if m.Err != nil {
		return "", m.Err
	}
	page, ok := m.Pages[url]
	if !ok {
		return "", fmt.Errorf("%w: status 404", shared.ErrFetch)
	}
	return page, nil
}

// Calls returns the URLs fetched so far.
func (m *MockFetcher) Calls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.calls...)
}

// MockConverter is a test double for [services.Converter] backed by fixed results and errors per URL.
type MockConverter struct {
	Results map[string]*models.ConversionResult
	Errors  map[string]error
}

func (m *MockConverter) Resolve(ctx context.Context, url string) (*models.ConversionResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", shared.ErrCancelled, err)
	}
	if err, ok := m.Errors[url]; ok {
		return nil, err
	}
	if result, ok := m.Results[url]; ok {
		return result, nil
	}
	return nil, fmt.Errorf("%w: %s", shared.ErrUnrecognizedLink, url)
}

// OGPage renders a minimal HTML page with the given og:title and og:description.
// Empty values omit the corresponding meta tag.
func OGPage(title, description string) string {
	head := ""
	if title != "" {
		head += fmt.Sprintf(`<meta property="og:title" content="%s"/>`, title)
	}
	if description != "" {
		head += fmt.Sprintf(`<meta property="og:description" content="%s"/>`, description)
	}
	return "<!DOCTYPE html><html><head>" + head + "</head><body></body></html>"
}

// RecordingChannel collects everything sent to it. Implements chat.Channel.
type RecordingChannel struct {
	mu   sync.Mutex
	sent []string
	Err  error
}

func (c *RecordingChannel) Send(ctx context.Context, text string) error {
	if c.Err != nil {
		return c.Err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sent = append(c.sent, text)
	return nil
}

// Sent returns the messages sent so far.
func (c *RecordingChannel) Sent() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.sent...)
}

// FWriter always returns an error on Write
type FWriter struct{}

func (f *FWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("write failed")
}

// LimitedWriter fails after a certain number of writes
type LimitedWriter struct {
	maxWrites int
	written   int
	target    io.Writer
}

func (l *LimitedWriter) Write(p []byte) (n int, err error) {
	if l.written >= l.maxWrites {
		return 0, errors.New("write limit exceeded")
	}
	l.written++
	return l.target.Write(p)
}

func NewLimitedWriter(maxWrites, written int, target io.Writer) LimitedWriter {
	return LimitedWriter{maxWrites: maxWrites, written: written, target: target}
}

// MockRoundTripper allows custom HTTP responses for testing
type MockRoundTripper struct {
	response *http.Response
	err      error
}

func NewMockRoundTripper(r *http.Response, e error) *MockRoundTripper {
	return &MockRoundTripper{response: r, err: e}
}

func (m *MockRoundTripper) RoundTrip(*http.Request) (*http.Response, error) {
	return m.response, m.err
}

// FCloser simulates a failure when reading response body
type FCloser struct{}

func (f *FCloser) Read(p []byte) (n int, err error) {
	return 0, errors.New("read failed")
}

func (f *FCloser) Close() error {
	return nil
}

func MustReadFile(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file %s: %v", path, err)
	}
	return string(content)
}

func MustWriteFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write file %s: %v", path, err)
	}
}
