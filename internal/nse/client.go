// Package nse is a read-only client for the public NSE India website
// API. The API requires a primed cookie session and a browser user
// agent; responses mix numeric and string encodings for numbers.
package nse

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"optionscout/internal/config"
	oerrors "optionscout/internal/errors"
	"optionscout/internal/logging"
	"optionscout/pkg/utils"
)

// Index symbols use different endpoints than single stocks.
var indexSymbols = map[string]bool{
	"NIFTY":      true,
	"BANKNIFTY":  true,
	"FINNIFTY":   true,
	"MIDCPNIFTY": true,
}

// IsIndex reports whether a symbol is one of the F&O indices.
func IsIndex(symbol string) bool {
	return indexSymbols[strings.ToUpper(symbol)]
}

// sessionTTL bounds how long a primed cookie session is trusted before
// the next request primes again.
const sessionTTL = 5 * time.Minute

// Client fetches NSE API endpoints over a cookie-primed session.
// Safe for concurrent use.
type Client struct {
	http      *http.Client
	baseURL   string
	userAgent string
	retry     utils.RetryConfig
	logger    zerolog.Logger

	mu     sync.Mutex
	primed time.Time
}

func NewClient(cfg config.NSEConfig, logger zerolog.Logger) (*Client, error) {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, oerrors.Wrap(err, "creating cookie jar")
	}

	retry := utils.DefaultRetryConfig()
	retry.MaxAttempts = cfg.MaxRetries

	return &Client{
		http: &http.Client{
			Jar:     jar,
			Timeout: cfg.RequestTimeout,
		},
		baseURL:   strings.TrimRight(cfg.BaseURL, "/"),
		userAgent: cfg.UserAgent,
		retry:     retry,
		logger:    logger,
	}, nil
}

// prime visits the NSE homepage so the server sets the session cookies
// the API endpoints require.
func (c *Client) prime(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if time.Since(c.primed) < sessionTTL {
		return nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL, nil)
	if err != nil {
		return oerrors.Wrap(err, "building prime request")
	}
	c.setHeaders(req)

	resp, err := c.http.Do(req)
	if err != nil {
		return oerrors.Wrap(err, "priming nse session")
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, io.LimitReader(resp.Body, 1<<20))

	c.primed = time.Now()
	return nil
}

func (c *Client) setHeaders(req *http.Request) {
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json, text/html, */*")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")
	req.Header.Set("Referer", c.baseURL+"/")
}

// getJSON fetches an API path and decodes the response into target,
// retrying with backoff and re-priming the session on a 401 or 403.
func (c *Client) getJSON(ctx context.Context, source, symbol, path string, target interface{}) error {
	start := time.Now()
	err := utils.Retry(ctx, c.retry, func() error {
		if err := c.prime(ctx); err != nil {
			return err
		}
		return c.fetchOnce(ctx, source, symbol, path, target)
	})
	logging.LogFetch(c.logger, source, symbol, time.Since(start), err)
	return err
}

func (c *Client) fetchOnce(ctx context.Context, source, symbol, path string, target interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return oerrors.Wrap(err, "building request")
	}
	c.setHeaders(req)

	resp, err := c.http.Do(req)
	if err != nil {
		return oerrors.NewFetchError(source, symbol, 0, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		// Session cookies expired; force a fresh prime on the next try.
		c.mu.Lock()
		c.primed = time.Time{}
		c.mu.Unlock()
		return oerrors.NewFetchError(source, symbol, resp.StatusCode, oerrors.ErrConnectionFailed)
	case resp.StatusCode == http.StatusTooManyRequests:
		return oerrors.NewFetchError(source, symbol, resp.StatusCode, oerrors.ErrRateLimited)
	case resp.StatusCode != http.StatusOK:
		return oerrors.NewFetchError(source, symbol, resp.StatusCode, nil)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 16<<20))
	if err != nil {
		return oerrors.NewFetchError(source, symbol, resp.StatusCode, err)
	}
	if err := json.Unmarshal(body, target); err != nil {
		return oerrors.NewDataError(source, symbol, "malformed response", err)
	}
	return nil
}

func queryEscape(symbol string) string {
	return url.QueryEscape(strings.ToUpper(strings.TrimSpace(symbol)))
}

// flexFloat decodes NSE numbers that arrive as JSON numbers, quoted
// strings with comma grouping, "-", or null.
type flexFloat float64

func (f *flexFloat) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if s == "null" {
		*f = 0
		return nil
	}
	s = strings.Trim(s, `"`)
	s = strings.ReplaceAll(s, ",", "")
	if s == "" || s == "-" {
		*f = 0
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fmt.Errorf("parsing number %q: %w", s, err)
	}
	*f = flexFloat(v)
	return nil
}

func (f flexFloat) value() float64 { return float64(f) }
