package httpeph

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/custodia-labs/jyotish/internal/core/domain"
	"github.com/custodia-labs/jyotish/internal/core/ports/driven"
	"github.com/custodia-labs/jyotish/internal/logger"
)

// Ensure Client implements the interface.
var _ driven.Ephemeris = (*Client)(nil)

// Default configuration values.
const (
	DefaultBaseURL           = "http://localhost:7420"
	DefaultTimeout           = 10 * time.Second
	DefaultRequestsPerSecond = 5.0
	DefaultMaxRetries        = 2
	DefaultMaxRetryWait      = 30 * time.Second

	// HeaderRetryAfter is the retry-after header (seconds).
	HeaderRetryAfter = "Retry-After"
)

// Config holds configuration for the HTTP ephemeris client.
type Config struct {
	// BaseURL is the service base URL (default: http://localhost:7420).
	BaseURL string

	// Timeout is the per-request timeout (default: 10s).
	Timeout time.Duration

	// RequestsPerSecond throttles outgoing requests (default: 5).
	RequestsPerSecond float64

	// MaxRetries is how many times a 429 or 503 is retried (default: 2).
	MaxRetries int

	// MaxRetryWait caps the wait a server may request via Retry-After (default: 30s).
	MaxRetryWait time.Duration
}

// Client is a driven.Ephemeris backed by a remote service.
type Client struct {
	client       *http.Client
	baseURL      string
	bucket       *rate.Limiter
	maxRetries   int
	maxRetryWait time.Duration
}

// NewClient creates a new HTTP ephemeris client.
func NewClient(cfg Config) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.RequestsPerSecond <= 0 {
		cfg.RequestsPerSecond = DefaultRequestsPerSecond
	}
	if cfg.MaxRetries < 0 {
		cfg.MaxRetries = 0
	} else if cfg.MaxRetries == 0 {
		cfg.MaxRetries = DefaultMaxRetries
	}
	if cfg.MaxRetryWait <= 0 {
		cfg.MaxRetryWait = DefaultMaxRetryWait
	}

	burst := int(cfg.RequestsPerSecond)
	if burst < 1 {
		burst = 1
	}

	return &Client{
		client: &http.Client{
			Timeout: cfg.Timeout,
		},
		baseURL:      strings.TrimRight(cfg.BaseURL, "/"),
		bucket:       rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), burst),
		maxRetries:   cfg.MaxRetries,
		maxRetryWait: cfg.MaxRetryWait,
	}
}

// Name identifies the backend.
func (c *Client) Name() string {
	return "http " + c.baseURL
}

// Close releases idle connections.
func (c *Client) Close() error {
	c.client.CloseIdleConnections()
	return nil
}

// BodyPosition fetches the tropical position of a body.
func (c *Client) BodyPosition(ctx context.Context, jd domain.JulianDay, body domain.BodyKey) (domain.BodyPosition, error) {
	q := url.Values{}
	q.Set("jd", formatFloat(float64(jd)))
	q.Set("body", string(body))

	var resp positionResponse
	if err := c.get(ctx, PathPosition, q, &resp); err != nil {
		return domain.BodyPosition{}, err
	}

	return domain.BodyPosition{
		Key:       body,
		Longitude: resp.Longitude,
		Latitude:  resp.Latitude,
		Speed:     resp.Speed,
	}, nil
}

// RiseSetTransit fetches the first event of a type after jd.
func (c *Client) RiseSetTransit(
	ctx context.Context,
	jd domain.JulianDay,
	geo domain.GeoPosition,
	body domain.BodyKey,
	event domain.EventType,
	flags domain.RiseSetFlags,
) (domain.JulianDay, error) {
	q := url.Values{}
	q.Set("jd", formatFloat(float64(jd)))
	q.Set("lat", formatFloat(geo.Latitude))
	q.Set("lon", formatFloat(geo.Longitude))
	q.Set("alt", formatFloat(geo.Altitude))
	q.Set("body", string(body))
	q.Set("event", string(event))
	q.Set("disc_center", strconv.FormatBool(flags.DiscCenter))
	q.Set("no_refraction", strconv.FormatBool(flags.NoRefraction))

	var resp transitResponse
	if err := c.get(ctx, PathTransit, q, &resp); err != nil {
		return 0, err
	}
	if !resp.Valid {
		return 0, fmt.Errorf("%w: no %s of %s", domain.ErrNoTransition, event, body)
	}
	return domain.JulianDay(resp.JD), nil
}

// Ayanamsa fetches the sidereal offset at jd.
func (c *Client) Ayanamsa(ctx context.Context, jd domain.JulianDay) (float64, error) {
	q := url.Values{}
	q.Set("jd", formatFloat(float64(jd)))

	var resp ayanamsaResponse
	if err := c.get(ctx, PathAyanamsa, q, &resp); err != nil {
		return 0, err
	}
	return resp.Ayanamsa, nil
}

// get performs a throttled GET and decodes the JSON body into out.
func (c *Client) get(ctx context.Context, path string, q url.Values, out any) error {
	for attempt := 0; ; attempt++ {
		if err := c.bucket.Wait(ctx); err != nil {
			return err
		}

		retryAfter, err := c.do(ctx, path, q, out)
		if retryAfter == 0 || attempt >= c.maxRetries {
			return err
		}

		if retryAfter > c.maxRetryWait {
			retryAfter = c.maxRetryWait
		}
		logger.Debug("ephemeris %s throttled, retrying in %s", path, retryAfter)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(retryAfter):
		}
	}
}

// do sends one request. A positive duration means the server asked us to back off.
func (c *Client) do(ctx context.Context, path string, q url.Values, out any) (time.Duration, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+q.Encode(), nil)
	if err != nil {
		return 0, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return 0, ctxErr
		}
		return 0, fmt.Errorf("%w: send request: %w", domain.ErrEphemerisUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		message := readError(resp.Body)
		statusErr := fmt.Errorf("ephemeris error (status %d): %s", resp.StatusCode, message)
		switch resp.StatusCode {
		case http.StatusBadRequest:
			return 0, fmt.Errorf("%w: %w", domain.ErrInvalidInput, statusErr)
		case http.StatusTooManyRequests, http.StatusServiceUnavailable:
			return retryDelay(resp.Header.Get(HeaderRetryAfter)), fmt.Errorf("%w: %w", domain.ErrEphemerisUnavailable, statusErr)
		default:
			return 0, fmt.Errorf("%w: %w", domain.ErrEphemerisUnavailable, statusErr)
		}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return 0, fmt.Errorf("%w: decode response: %w", domain.ErrEphemerisUnavailable, err)
	}
	return 0, nil
}

// readError extracts the error message from a failed response.
func readError(r io.Reader) string {
	body, err := io.ReadAll(io.LimitReader(r, 4096))
	if err != nil {
		return "failed to read response"
	}
	var e errorResponse
	if json.Unmarshal(body, &e) == nil && e.Error != "" {
		return e.Error
	}
	return strings.TrimSpace(string(body))
}

// retryDelay parses a Retry-After value, defaulting to one second.
func retryDelay(header string) time.Duration {
	if secs, err := strconv.Atoi(header); err == nil && secs > 0 {
		return time.Duration(secs) * time.Second
	}
	return time.Second
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

