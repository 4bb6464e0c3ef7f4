package httpeph

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/jyotish/internal/adapters/driven/ephemeris/memory"
	"github.com/custodia-labs/jyotish/internal/core/domain"
)

func newFixture() *memory.Ephemeris {
	eph := memory.New(2460000)
	eph.SetPosition(domain.BodyPosition{Key: domain.BodySun, Longitude: 120.5, Latitude: 0.001, Speed: 1})
	eph.SetAyanamsa(24.17)
	eph.AddEvents(domain.EventRise, 2460000.25)
	return eph
}

func newServer(t *testing.T) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(NewHandler(newFixture()))
	t.Cleanup(srv.Close)
	return NewClient(Config{BaseURL: srv.URL, RequestsPerSecond: 1000}), srv
}

func TestClient_RoundTrip(t *testing.T) {
	client, _ := newServer(t)
	ctx := context.Background()

	pos, err := client.BodyPosition(ctx, 2460000, domain.BodySun)
	require.NoError(t, err)
	assert.Equal(t, domain.BodySun, pos.Key)
	assert.InDelta(t, 120.5, pos.Longitude, 1e-12)
	assert.InDelta(t, 0.001, pos.Latitude, 1e-12)
	assert.InDelta(t, 1, pos.Speed, 1e-12)

	ayan, err := client.Ayanamsa(ctx, 2460000)
	require.NoError(t, err)
	assert.InDelta(t, 24.17, ayan, 1e-12)

	jd, err := client.RiseSetTransit(ctx, 2460000, domain.GeoPosition{Latitude: 12.97, Longitude: 77.59},
		domain.BodySun, domain.EventRise, domain.RiseSetFlags{DiscCenter: true})
	require.NoError(t, err)
	assert.Equal(t, domain.JulianDay(2460000.25), jd)
}

func TestClient_NoTransition(t *testing.T) {
	client, _ := newServer(t)

	_, err := client.RiseSetTransit(context.Background(), 2460000, domain.GeoPosition{},
		domain.BodySun, domain.EventSet, domain.RiseSetFlags{})
	assert.ErrorIs(t, err, domain.ErrNoTransition)
}

func TestClient_UnknownBody(t *testing.T) {
	client, _ := newServer(t)

	_, err := client.BodyPosition(context.Background(), 2460000, domain.BodyMars)
	assert.ErrorIs(t, err, domain.ErrEphemerisUnavailable)
	assert.Contains(t, err.Error(), "status 404")
}

func TestClient_BadRequest(t *testing.T) {
	client, _ := newServer(t)

	_, err := client.BodyPosition(context.Background(), 2460000, "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Contains(t, err.Error(), "body")
}

func TestClient_ServerDown(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close()

	client := NewClient(Config{BaseURL: srv.URL})
	_, err := client.Ayanamsa(context.Background(), 0)
	assert.ErrorIs(t, err, domain.ErrEphemerisUnavailable)
}

func TestClient_MalformedResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("{not json"))
	}))
	defer srv.Close()

	_, err := NewClient(Config{BaseURL: srv.URL}).Ayanamsa(context.Background(), 0)
	assert.ErrorIs(t, err, domain.ErrEphemerisUnavailable)
	assert.Contains(t, err.Error(), "decode response")
}

func TestClient_RetriesThrottled(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if calls.Add(1) == 1 {
			w.Header().Set(HeaderRetryAfter, "1")
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		_, _ = w.Write([]byte(`{"ayanamsa": 23.9}`))
	}))
	defer srv.Close()

	start := time.Now()
	v, err := NewClient(Config{BaseURL: srv.URL}).Ayanamsa(context.Background(), 0)
	require.NoError(t, err)
	assert.Equal(t, 23.9, v)
	assert.Equal(t, int32(2), calls.Load())
	assert.GreaterOrEqual(t, time.Since(start), time.Second)
}

func TestClient_CapsRetryAfter(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if calls.Add(1) == 1 {
			w.Header().Set(HeaderRetryAfter, "86400")
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte(`{"ayanamsa": 23.9}`))
	}))
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	start := time.Now()
	v, err := NewClient(Config{BaseURL: srv.URL, MaxRetryWait: 50 * time.Millisecond}).Ayanamsa(ctx, 0)
	require.NoError(t, err)
	assert.Equal(t, 23.9, v)
	assert.Equal(t, int32(2), calls.Load())
	assert.Less(t, time.Since(start), 5*time.Second)
}

func TestClient_GivesUpAfterRetries(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	_, err := NewClient(Config{BaseURL: srv.URL, MaxRetries: -1}).Ayanamsa(context.Background(), 0)
	assert.ErrorIs(t, err, domain.ErrEphemerisUnavailable)
	assert.Equal(t, int32(1), calls.Load())
}

func TestClient_Cancelled(t *testing.T) {
	client, _ := newServer(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.Ayanamsa(ctx, 0)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestNewClient_Defaults(t *testing.T) {
	c := NewClient(Config{BaseURL: "http://example.test/"})

	assert.Equal(t, "http http://example.test", c.Name())
	assert.Equal(t, DefaultTimeout, c.client.Timeout)
	assert.Equal(t, DefaultMaxRetries, c.maxRetries)
	assert.Equal(t, DefaultMaxRetryWait, c.maxRetryWait)
	assert.NoError(t, c.Close())
}

func TestRetryDelay(t *testing.T) {
	assert.Equal(t, 3*time.Second, retryDelay("3"))
	assert.Equal(t, time.Second, retryDelay(""))
	assert.Equal(t, time.Second, retryDelay("soon"))
}
