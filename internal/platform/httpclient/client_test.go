package httpclient_test

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/sony/gobreaker/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/jsamuelsen11/crowdfund-escrow/internal/platform/config"
	"github.com/jsamuelsen11/crowdfund-escrow/internal/platform/httpclient"
	"github.com/jsamuelsen11/crowdfund-escrow/internal/platform/telemetry"
)

const transfersPath = "/api/v1/transfers"

func testConfig(baseURL string) *config.ClientConfig {
	return &config.ClientConfig{
		BaseURL: baseURL,
		Timeout: 5 * time.Second,
		Retry: config.RetryConfig{
			MaxAttempts:     3,
			InitialInterval: 5 * time.Millisecond,
			MaxInterval:     20 * time.Millisecond,
			Multiplier:      2,
		},
		CircuitBreaker: config.CircuitBreakerConfig{
			MaxFailures:   3,
			Timeout:       time.Second,
			HalfOpenLimit: 1,
		},
	}
}

// rail starts a fake payout rail and a client pointed at it.
func rail(t *testing.T, cfg func(*config.ClientConfig), handler http.HandlerFunc) *httpclient.Client {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c := testConfig(srv.URL)
	if cfg != nil {
		cfg(c)
	}
	return httpclient.New(c, "payout-rail", nil, slog.New(slog.DiscardHandler))
}

// transfer posts a payout body, optionally with an idempotency key, and
// returns the status. A nil response yields status 0.
func transfer(t *testing.T, ctx context.Context, client *httpclient.Client, key string) (int, error) {
	t.Helper()

	req, err := client.NewRequest(ctx, http.MethodPost, transfersPath, []byte(`{"amount":11}`))
	require.NoError(t, err)
	if key != "" {
		req.Header.Set("Idempotency-Key", key)
	}

	resp, err := client.Do(ctx, req)
	if resp == nil {
		return 0, err
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)
	return resp.StatusCode, err
}

func TestNewRequest(t *testing.T) {
	t.Parallel()

	client := httpclient.New(testConfig("https://rail.example.com/v2/"), "payout-rail", nil, slog.New(slog.DiscardHandler))

	req, err := client.NewRequest(context.Background(), http.MethodPost, transfersPath, []byte(`{}`))
	require.NoError(t, err)
	assert.Equal(t, "https://rail.example.com/v2/api/v1/transfers", req.URL.String())
	assert.Equal(t, "application/json", req.Header.Get("Content-Type"))
	assert.NotNil(t, req.GetBody)

	req, err = client.NewRequest(context.Background(), http.MethodGet, "/health", nil)
	require.NoError(t, err)
	assert.Empty(t, req.Header.Get("Content-Type"))
}

func TestDo_Success(t *testing.T) {
	t.Parallel()

	var body string
	client := rail(t, nil, func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		body = string(b)
		w.WriteHeader(http.StatusCreated)
	})

	status, err := transfer(t, context.Background(), client, "payout-1")
	require.NoError(t, err)
	assert.Equal(t, http.StatusCreated, status)
	assert.JSONEq(t, `{"amount":11}`, body)
}

func TestDo_RetriesKeyedPost(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	var bodies []string
	client := rail(t, nil, func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		bodies = append(bodies, string(b))
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusCreated)
	})

	status, err := transfer(t, context.Background(), client, "payout-1")
	require.NoError(t, err)
	assert.Equal(t, http.StatusCreated, status)
	assert.Equal(t, int32(3), calls.Load())
	assert.Equal(t, []string{`{"amount":11}`, `{"amount":11}`, `{"amount":11}`}, bodies)
}

func TestDo_UnkeyedPostIsNotRetried(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	client := rail(t, nil, func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusServiceUnavailable)
	})

	status, err := transfer(t, context.Background(), client, "")
	require.Error(t, err)
	assert.Equal(t, http.StatusServiceUnavailable, status)
	assert.Equal(t, int32(1), calls.Load())
}

func TestDo_ClientErrorsAreFinal(t *testing.T) {
	t.Parallel()

	for _, code := range []int{http.StatusBadRequest, http.StatusConflict, http.StatusUnprocessableEntity} {
		t.Run(http.StatusText(code), func(t *testing.T) {
			t.Parallel()

			var calls atomic.Int32
			client := rail(t, nil, func(w http.ResponseWriter, _ *http.Request) {
				calls.Add(1)
				w.WriteHeader(code)
			})

			status, err := transfer(t, context.Background(), client, "payout-1")
			require.NoError(t, err)
			assert.Equal(t, code, status)
			assert.Equal(t, int32(1), calls.Load())
		})
	}
}

func TestDo_ExhaustedRetriesReturnLastResponse(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	client := rail(t, nil, func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.Header().Set("Retry-After", "0")
		w.WriteHeader(http.StatusTooManyRequests)
	})

	status, err := transfer(t, context.Background(), client, "payout-1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "payout-rail answered 429")
	assert.Equal(t, http.StatusTooManyRequests, status)
	assert.Equal(t, int32(3), calls.Load())
}

func TestDo_PropagatedHeaders(t *testing.T) {
	t.Parallel()

	var got http.Header
	client := rail(t, nil, func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Clone()
		w.WriteHeader(http.StatusCreated)
	})

	ctx := httpclient.Propagate(context.Background(), "X-Request-ID", "req-123")
	ctx = httpclient.Propagate(ctx, "X-Correlation-ID", "corr-456")
	_, err := transfer(t, ctx, client, "payout-1")
	require.NoError(t, err)

	assert.Equal(t, "req-123", got.Get("X-Request-ID"))
	assert.Equal(t, "corr-456", got.Get("X-Correlation-ID"))

	_, err = transfer(t, context.Background(), client, "payout-2")
	require.NoError(t, err)
	assert.Empty(t, got.Get("X-Request-ID"))
}

func TestPropagate_DoesNotMutateParent(t *testing.T) {
	t.Parallel()

	var got []string
	client := rail(t, nil, func(w http.ResponseWriter, r *http.Request) {
		got = append(got, r.Header.Get("X-Correlation-ID"))
		w.WriteHeader(http.StatusCreated)
	})

	parent := httpclient.Propagate(context.Background(), "X-Correlation-ID", "parent")
	child := httpclient.Propagate(parent, "X-Correlation-ID", "child")

	_, err := transfer(t, child, client, "payout-1")
	require.NoError(t, err)
	_, err = transfer(t, parent, client, "payout-2")
	require.NoError(t, err)

	assert.Equal(t, []string{"child", "parent"}, got)
}

func TestDo_CircuitBreaker(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	var healthy atomic.Bool
	client := rail(t, func(c *config.ClientConfig) {
		c.Retry.MaxAttempts = 1
		c.CircuitBreaker.MaxFailures = 2
		c.CircuitBreaker.Timeout = 50 * time.Millisecond
	}, func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		if healthy.Load() {
			w.WriteHeader(http.StatusCreated)
			return
		}
		w.WriteHeader(http.StatusBadGateway)
	})
	ctx := context.Background()

	require.NoError(t, client.HealthCheck(ctx))

	for range 2 {
		_, err := transfer(t, ctx, client, "payout-1")
		require.Error(t, err)
		assert.NotErrorIs(t, err, httpclient.ErrNotSent, "the rail answered")
	}
	_, err := transfer(t, ctx, client, "payout-1")
	require.ErrorIs(t, err, gobreaker.ErrOpenState)
	require.ErrorIs(t, err, httpclient.ErrNotSent)
	assert.Equal(t, int32(2), calls.Load(), "open breaker must not reach the rail")
	assert.ErrorContains(t, client.HealthCheck(ctx), "failing")

	time.Sleep(80 * time.Millisecond)
	assert.ErrorContains(t, client.HealthCheck(ctx), "degraded")

	healthy.Store(true)
	status, err := transfer(t, ctx, client, "payout-1")
	require.NoError(t, err)
	assert.Equal(t, http.StatusCreated, status)
	assert.NoError(t, client.HealthCheck(ctx))
}

func TestDo_CanceledCallerDoesNotTripBreaker(t *testing.T) {
	t.Parallel()

	client := rail(t, func(c *config.ClientConfig) {
		c.CircuitBreaker.MaxFailures = 1
	}, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusCreated)
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := transfer(t, ctx, client, "payout-1")
	require.ErrorIs(t, err, context.Canceled)

	assert.NoError(t, client.HealthCheck(context.Background()))
}

func TestDo_RateLimited(t *testing.T) {
	t.Parallel()

	client := rail(t, func(c *config.ClientConfig) {
		c.RateLimit = config.RateLimitConfig{RequestsPerSecond: 0.1, BurstSize: 1}
	}, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusCreated)
	})

	_, err := transfer(t, context.Background(), client, "payout-1")
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	_, err = transfer(t, ctx, client, "payout-2")
	require.ErrorIs(t, err, httpclient.ErrNotSent)
	assert.Contains(t, err.Error(), "payout-rail rate limit")
}

func TestDo_ClientSpan(t *testing.T) {
	exporter := tracetest.NewInMemoryExporter()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSyncer(exporter))
	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.TraceContext{})
	t.Cleanup(func() { _ = tp.Shutdown(context.Background()) })

	var traceparent string
	client := rail(t, nil, func(w http.ResponseWriter, r *http.Request) {
		traceparent = r.Header.Get("traceparent")
		w.WriteHeader(http.StatusCreated)
	})

	_, err := transfer(t, context.Background(), client, "payout-1")
	require.NoError(t, err)

	spans := exporter.GetSpans()
	require.Len(t, spans, 1)
	assert.Equal(t, "POST payout-rail", spans[0].Name)
	assert.Contains(t, traceparent, spans[0].SpanContext.TraceID().String())
}

func TestDo_RecordsClientMetrics(t *testing.T) {
	t.Parallel()

	reader := sdkmetric.NewManualReader()
	metrics, err := telemetry.NewMetrics(sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader)), "crowdfund-escrow-test")
	require.NoError(t, err)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusCreated)
	}))
	t.Cleanup(srv.Close)
	client := httpclient.New(testConfig(srv.URL), "payout-rail", metrics, slog.New(slog.DiscardHandler))

	_, err = transfer(t, context.Background(), client, "payout-1")
	require.NoError(t, err)

	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))

	var found bool
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			if m.Name != "http.client.request.total" {
				continue
			}
			sum, ok := m.Data.(metricdata.Sum[int64])
			require.True(t, ok)
			require.Len(t, sum.DataPoints, 1)
			peer, _ := sum.DataPoints[0].Attributes.Value(telemetry.AttrPeerService)
			result, _ := sum.DataPoints[0].Attributes.Value(telemetry.AttrResult)
			assert.Equal(t, "payout-rail", peer.AsString())
			assert.Equal(t, "success", result.AsString())
			found = true
		}
	}
	assert.True(t, found, "http.client.request.total not recorded")
}

func TestClient_Name(t *testing.T) {
	t.Parallel()

	client := httpclient.New(testConfig("http://localhost"), "payout-rail", nil, slog.New(slog.DiscardHandler))
	assert.Equal(t, "payout-rail", client.Name())
}
