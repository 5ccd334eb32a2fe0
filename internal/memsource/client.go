package memsource

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

// DefaultBaseURL is the public Memsource (Phrase TMS) REST API root.
const DefaultBaseURL = "https://cloud.memsource.com/web/api2/v1"

var (
	// ErrNotFound is returned when the requested document does not exist.
	ErrNotFound = errors.New("memsource: not found")
	// ErrUnauthorized is returned when the API token is missing or rejected.
	ErrUnauthorized = errors.New("memsource: unauthorized")
)

// statusError carries a non-2xx HTTP status that is not mapped to a sentinel.
type statusError struct {
	Status int
}

func (e *statusError) Error() string { return fmt.Sprintf("memsource: unexpected status %d", e.Status) }

// Client talks to the Memsource REST API with per-request timeouts and a
// bounded retry on transient errors.
type Client struct {
	BaseURL    string
	Token      string
	HTTPClient *http.Client
	UserAgent  string
	// MaxAttempts includes the initial attempt. Minimum 1.
	MaxAttempts int
	// PerRequestTimeout bounds each request. Zero means no extra bound.
	PerRequestTimeout time.Duration
	// MaxBodyBytes caps downloaded bodies. Zero means unlimited.
	MaxBodyBytes int64
}

func (c *Client) baseURL() string {
	if strings.TrimSpace(c.BaseURL) == "" {
		return DefaultBaseURL
	}
	return strings.TrimRight(c.BaseURL, "/")
}

func (c *Client) httpClient() *http.Client {
	if c.HTTPClient != nil {
		return c.HTTPClient
	}
	return &http.Client{Timeout: c.PerRequestTimeout}
}

// CheckToken lists users to confirm the token is accepted and returns how
// many users the first page reported.
func (c *Client) CheckToken(ctx context.Context) (int, error) {
	body, err := c.get(ctx, "/users")
	if err != nil {
		return 0, err
	}
	var page struct {
		TotalElements int               `json:"totalElements"`
		Content       []json.RawMessage `json:"content"`
	}
	if err := json.Unmarshal(body, &page); err != nil {
		return 0, fmt.Errorf("decode users: %w", err)
	}
	if page.TotalElements > 0 {
		return page.TotalElements, nil
	}
	return len(page.Content), nil
}

// DownloadTarget fetches the current target file of a job.
func (c *Client) DownloadTarget(ctx context.Context, projectUID, jobUID string) ([]byte, error) {
	if strings.TrimSpace(projectUID) == "" || strings.TrimSpace(jobUID) == "" {
		return nil, ErrNotFound
	}
	path := "/projects/" + url.PathEscape(projectUID) + "/jobs/" + url.PathEscape(jobUID) + "/targetFile"
	return c.get(ctx, path)
}

// get issues a GET with bounded retry for transient errors.
func (c *Client) get(ctx context.Context, path string) ([]byte, error) {
	if strings.TrimSpace(c.Token) == "" {
		return nil, ErrUnauthorized
	}
	attempts := c.MaxAttempts
	if attempts <= 0 {
		attempts = 1
	}
	var lastErr error
	for i := 0; i < attempts; i++ {
		body, err := c.tryOnce(ctx, c.baseURL()+path)
		if err == nil {
			return body, nil
		}
		if !isTransient(err) || i == attempts-1 {
			return nil, err
		}
		lastErr = err
		delay := time.Duration(i+1) * 200 * time.Millisecond
		ev := log.Debug().Err(err).Str("path", path).Int("attempt", i+1).Int("max_attempts", attempts).Dur("backoff", delay)
		var se *statusError
		if errors.As(err, &se) {
			ev = ev.Int("status", se.Status)
		}
		ev.Msg("retrying memsource request")
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(delay):
		}
	}
	return nil, lastErr
}

func (c *Client) tryOnce(ctx context.Context, rawURL string) ([]byte, error) {
	if c.PerRequestTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.PerRequestTimeout)
		defer cancel()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("new request: %w", err)
	}
	if !isHTTPScheme(req.URL) {
		return nil, fmt.Errorf("unsupported URL scheme: %q", req.URL.Scheme)
	}
	req.Header.Set("Authorization", "ApiToken "+c.Token)
	if c.UserAgent != "" {
		req.Header.Set("User-Agent", c.UserAgent)
	}

	resp, err := c.httpClient().Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, ErrNotFound
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return nil, ErrUnauthorized
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return nil, &statusError{Status: resp.StatusCode}
	}

	var r io.Reader = resp.Body
	if c.MaxBodyBytes > 0 {
		r = io.LimitReader(resp.Body, c.MaxBodyBytes+1)
	}
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	if c.MaxBodyBytes > 0 && int64(len(b)) > c.MaxBodyBytes {
		return nil, fmt.Errorf("body exceeds %d bytes", c.MaxBodyBytes)
	}
	return b, nil
}

// isTransient treats HTTP 5xx, 429 and deadline errors as retryable.
func isTransient(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var se *statusError
	if errors.As(err, &se) {
		return se.Status >= 500 || se.Status == http.StatusTooManyRequests
	}
	return false
}

func isHTTPScheme(u *url.URL) bool {
	if u == nil {
		return false
	}
	scheme := strings.ToLower(u.Scheme)
	return scheme == "http" || scheme == "https"
}
