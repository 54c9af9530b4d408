package httpclient

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testPolicy() retryPolicy {
	return retryPolicy{
		maxAttempts:     4,
		initialInterval: 100 * time.Millisecond,
		maxInterval:     time.Second,
		multiplier:      2,
	}
}

func TestRetryPolicy_Backoff(t *testing.T) {
	t.Parallel()

	tests := []struct {
		attempt int
		base    time.Duration
	}{
		{attempt: 1, base: 100 * time.Millisecond},
		{attempt: 2, base: 200 * time.Millisecond},
		{attempt: 3, base: 400 * time.Millisecond},
		{attempt: 5, base: time.Second},
		{attempt: 30, base: time.Second},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprint(tt.attempt), func(t *testing.T) {
			t.Parallel()

			lo := time.Duration(float64(tt.base) * (1 - jitterFraction))
			hi := time.Duration(float64(tt.base) * (1 + jitterFraction))
			for range 50 {
				got := testPolicy().backoff(tt.attempt)
				assert.GreaterOrEqual(t, got, lo)
				assert.LessOrEqual(t, got, hi)
			}
		})
	}
}

func TestRetryPolicy_After(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		retryAfter string
		want       time.Duration
	}{
		{name: "zero seconds", retryAfter: "0", want: 0},
		{name: "capped at max interval", retryAfter: "120", want: time.Second},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			resp := &http.Response{Header: http.Header{headerRetryAfter: {tt.retryAfter}}}
			assert.Equal(t, tt.want, testPolicy().after(resp, 1))
		})
	}

	t.Run("falls back to backoff", func(t *testing.T) {
		t.Parallel()

		resp := &http.Response{Header: http.Header{headerRetryAfter: {"Wed, 21 Oct 2026 07:28:00 GMT"}}}
		got := testPolicy().after(resp, 1)
		assert.InDelta(t, float64(100*time.Millisecond), float64(got), float64(25*time.Millisecond))
	})
}

func TestRetryPolicy_AttemptsFor(t *testing.T) {
	t.Parallel()

	newReq := func(method, key string, body io.Reader) *http.Request {
		req, err := http.NewRequestWithContext(context.Background(), method, "http://rail.test/api/v1/transfers", body)
		require.NoError(t, err)
		if key != "" {
			req.Header.Set(headerIdempotencyKey, key)
		}
		return req
	}

	opaque := newReq(http.MethodPut, "", http.NoBody)
	opaque.Body = io.NopCloser(strings.NewReader("{}"))
	opaque.GetBody = nil

	tests := []struct {
		name string
		req  *http.Request
		want int
	}{
		{name: "get", req: newReq(http.MethodGet, "", http.NoBody), want: 4},
		{name: "post without key", req: newReq(http.MethodPost, "", bytes.NewReader([]byte("{}"))), want: 1},
		{name: "post with key", req: newReq(http.MethodPost, "payout-1", bytes.NewReader([]byte("{}"))), want: 4},
		{name: "body without GetBody", req: opaque, want: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, testPolicy().attemptsFor(tt.req))
		})
	}

	t.Run("zero attempts still sends once", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, 1, retryPolicy{}.attemptsFor(newReq(http.MethodGet, "", http.NoBody)))
	})
}

func TestRewind(t *testing.T) {
	t.Parallel()

	req, err := http.NewRequestWithContext(context.Background(), http.MethodPost, "http://rail.test", strings.NewReader(`{"amount":11}`))
	require.NoError(t, err)

	_, err = io.ReadAll(req.Body)
	require.NoError(t, err)
	require.NoError(t, rewind(req))

	body, err := io.ReadAll(req.Body)
	require.NoError(t, err)
	assert.JSONEq(t, `{"amount":11}`, string(body))

	req.GetBody = nil
	assert.ErrorIs(t, rewind(req), errNotRewindable)
}

func TestRetryableError(t *testing.T) {
	t.Parallel()

	assert.False(t, retryableError(context.Canceled))
	assert.False(t, retryableError(fmt.Errorf("dial: %w", context.DeadlineExceeded)))
	assert.True(t, retryableError(errors.New("connection reset by peer")))
}

func TestRetryableStatus(t *testing.T) {
	t.Parallel()

	for code, want := range map[int]bool{
		http.StatusOK:                  false,
		http.StatusCreated:             false,
		http.StatusConflict:            false,
		http.StatusUnprocessableEntity: false,
		http.StatusTooManyRequests:     true,
		http.StatusInternalServerError: true,
		http.StatusBadGateway:          true,
		http.StatusServiceUnavailable:  true,
	} {
		assert.Equal(t, want, retryableStatus(code), "status %d", code)
	}
}
