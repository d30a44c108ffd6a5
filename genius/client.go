package genius

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	sentry "github.com/getsentry/sentry-go"
	log "github.com/sirupsen/logrus"

	"geniusmcp/logging"
)

const (
	DefaultAPIRoot    = "https://api.genius.com/"
	DefaultPublicRoot = "https://genius.com/api/"
	userAgent         = "genius-mcp/1.0 (+https://docs.genius.com)"

	defaultTimeout    = 15 * time.Second
	defaultRetryDelay = time.Second
	maxRetryDelay     = 10 * time.Second
)

// Client is the Genius API adapter. It is immutable after New and safe for
// concurrent use.
type Client struct {
	httpClient *http.Client
	token      string
	apiRoot    string
	publicRoot string
	retries    int
	retryDelay time.Duration

	removeSectionHeaders bool
	skipNonSongs         bool
	excludedTerms        []string

	logger *log.Entry
}

// New builds a Client. A missing token is an error: the caller decides whether
// that is fatal.
func New(opts Options) (*Client, error) {
	if opts.Token == "" {
		return nil, ErrMissingToken
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	retryDelay := opts.RetryDelay
	if retryDelay <= 0 {
		retryDelay = defaultRetryDelay
	}
	apiRoot := opts.APIRoot
	if apiRoot == "" {
		apiRoot = DefaultAPIRoot
	}
	publicRoot := opts.PublicRoot
	if publicRoot == "" {
		publicRoot = DefaultPublicRoot
	}

	return &Client{
		httpClient:           &http.Client{Timeout: timeout},
		token:                opts.Token,
		apiRoot:              apiRoot,
		publicRoot:           publicRoot,
		retries:              max(opts.Retries, 0),
		retryDelay:           retryDelay,
		removeSectionHeaders: opts.RemoveSectionHeaders,
		skipNonSongs:         opts.SkipNonSongs,
		excludedTerms:        append([]string(nil), opts.ExcludedTerms...),
		logger:               logging.For("genius"),
	}, nil
}

// CloseIdleConnections releases pooled keep-alive connections.
func (c *Client) CloseIdleConnections() {
	c.httpClient.CloseIdleConnections()
}

// getJSON fetches root+path, unwraps the {meta, response} envelope and decodes
// the response object into out.
func (c *Client) getJSON(ctx context.Context, op, root, path string, params url.Values, out any) error {
	span := sentry.StartSpan(ctx, "genius."+op)
	span.Description = "GET " + path
	span.SetTag("path", path)
	defer span.Finish()

	reqURL := root + path
	if len(params) > 0 {
		reqURL += "?" + params.Encode()
	}

	body, err := c.fetch(span.Context(), reqURL, "application/json", true)
	if err != nil {
		span.Status = statusFor(err)
		return c.wrap(path, err)
	}

	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		span.Status = sentry.SpanStatusDataLoss
		return fmt.Errorf("genius %s: decode envelope: %w", path, err)
	}
	if len(env.Response) == 0 || bytes.Equal(env.Response, []byte("null")) {
		span.Status = sentry.SpanStatusDataLoss
		return fmt.Errorf("genius %s: response missing", path)
	}
	if raw, ok := out.(*json.RawMessage); ok {
		*raw = env.Response
	} else if err := json.Unmarshal(env.Response, out); err != nil {
		span.Status = sentry.SpanStatusDataLoss
		return fmt.Errorf("genius %s: decode response: %w", path, err)
	}

	span.Status = sentry.SpanStatusOK
	return nil
}

// fetch performs a GET with retries and returns the body of a 200 answer.
// The token is only attached when authorized is set; song page URLs come from
// upstream data and never carry it.
func (c *Client) fetch(ctx context.Context, reqURL, accept string, authorized bool) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	if authorized {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", accept)

	c.logger.Tracef("GET %s", req.URL.Path)

	resp, err := c.doRequestWithRetry(ctx, req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, ErrNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return nil, &APIError{StatusCode: resp.StatusCode, Message: readMetaMessage(resp.Body)}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	return body, nil
}

// doRequestWithRetry retries network errors, 429 and 5xx answers with
// exponential backoff. It gives up early when ctx is done.
func (c *Client) doRequestWithRetry(ctx context.Context, req *http.Request) (*http.Response, error) {
	var lastErr error
	delay := c.retryDelay

	for attempt := 0; attempt <= c.retries; attempt++ {
		if attempt > 0 {
			c.logger.Debugf("retrying %s (attempt %d/%d): %v", req.URL.Path, attempt, c.retries, lastErr)
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(delay):
			}
			delay = min(delay*2, maxRetryDelay)
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			lastErr = err
			continue
		}

		if resp.StatusCode < 500 && resp.StatusCode != http.StatusTooManyRequests {
			return resp, nil
		}

		resp.Body.Close()
		lastErr = fmt.Errorf("server returned status %d", resp.StatusCode)
	}

	return nil, fmt.Errorf("request failed after %d attempts: %w", c.retries+1, lastErr)
}

func (c *Client) wrap(path string, err error) error {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		apiErr.Path = path
		return apiErr
	}
	return fmt.Errorf("genius %s: %w", path, err)
}

func statusFor(err error) sentry.SpanStatus {
	switch {
	case errors.Is(err, ErrNotFound):
		return sentry.SpanStatusNotFound
	case errors.Is(err, context.DeadlineExceeded):
		return sentry.SpanStatusDeadlineExceeded
	case errors.Is(err, context.Canceled):
		return sentry.SpanStatusCanceled
	default:
		return sentry.SpanStatusInternalError
	}
}

func readMetaMessage(r io.Reader) string {
	var env envelope
	if err := json.NewDecoder(io.LimitReader(r, 64<<10)).Decode(&env); err != nil {
		return ""
	}
	return env.Meta.Message
}
