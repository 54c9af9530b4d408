package httpclient

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"math/rand/v2"
	"net/http"
	"strconv"
	"time"

	"github.com/jsamuelsen11/crowdfund-escrow/internal/platform/logging"
)

const (
	// jitterFraction spreads each delay by up to ±25%.
	jitterFraction = 0.25

	headerIdempotencyKey = "Idempotency-Key"
	headerRetryAfter     = "Retry-After"
)

var errNotRewindable = errors.New("request body cannot be replayed")

// retryPolicy is the retry half of config.ClientConfig.
type retryPolicy struct {
	maxAttempts     int
	initialInterval time.Duration
	maxInterval     time.Duration
	multiplier      float64
}

// attemptsFor returns how many times req may be sent. A request that is not
// replayable gets exactly one attempt so a transfer is never issued twice
// without a key the downstream can deduplicate on.
func (p retryPolicy) attemptsFor(req *http.Request) int {
	if !replayable(req) {
		return 1
	}
	return max(p.maxAttempts, 1)
}

// backoff returns the delay before retry number attempt (1 is the first
// retry): exponential growth capped at maxInterval, then jittered.
func (p retryPolicy) backoff(attempt int) time.Duration {
	delay := float64(p.initialInterval) * math.Pow(p.multiplier, float64(attempt-1))
	delay = min(delay, float64(p.maxInterval))
	delay += delay * jitterFraction * (2*rand.Float64() - 1)
	return time.Duration(max(delay, 0))
}

// after prefers the downstream's Retry-After (in seconds) over backoff,
// never waiting longer than maxInterval.
func (p retryPolicy) after(resp *http.Response, attempt int) time.Duration {
	if secs, err := strconv.Atoi(resp.Header.Get(headerRetryAfter)); err == nil && secs >= 0 {
		return min(time.Duration(secs)*time.Second, p.maxInterval)
	}
	return p.backoff(attempt)
}

// replayable reports whether req can be sent again: its method must be
// idempotent or it must carry an Idempotency-Key, and its body must be
// recreatable.
func replayable(req *http.Request) bool {
	if hasBody(req) && req.GetBody == nil {
		return false
	}
	switch req.Method {
	case http.MethodGet, http.MethodHead, http.MethodOptions, http.MethodPut, http.MethodDelete:
		return true
	default:
		return req.Header.Get(headerIdempotencyKey) != ""
	}
}

func hasBody(req *http.Request) bool {
	return req.Body != nil && req.Body != http.NoBody
}

// send executes req with the retry policy. When retries are exhausted on a
// retryable status the last response is returned together with the error,
// with its body still open.
func (c *Client) send(ctx context.Context, req *http.Request) (*http.Response, error) {
	attempts := c.retry.attemptsFor(req)

	var (
		lastErr error
		wait    time.Duration
	)
	for attempt := range attempts {
		if attempt > 0 {
			if err := c.pause(ctx, req, attempt, wait, lastErr); err != nil {
				return nil, err
			}
			if err := rewind(req); err != nil {
				return nil, err
			}
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			if !retryableError(err) {
				return nil, err
			}
			lastErr = err
			wait = c.retry.backoff(attempt + 1)
			continue
		}

		if !retryableStatus(resp.StatusCode) {
			return resp, nil
		}

		lastErr = fmt.Errorf("%s answered %d", c.serviceName, resp.StatusCode)
		if attempt == attempts-1 {
			return resp, lastErr
		}
		wait = c.retry.after(resp, attempt+1)
		discard(resp)
	}

	return nil, lastErr
}

// pause logs the retry and sleeps for wait unless ctx ends first.
func (c *Client) pause(ctx context.Context, req *http.Request, attempt int, wait time.Duration, cause error) error {
	logging.FromContext(ctx).WarnContext(ctx, "retrying outbound request",
		slog.String("peer_service", c.serviceName),
		slog.String("method", req.Method),
		slog.String("path", req.URL.Path),
		slog.Int("attempt", attempt+1),
		slog.Duration("backoff", wait),
		slog.Any("error", cause),
	)

	timer := time.NewTimer(wait)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// rewind gives req a fresh body for the next attempt.
func rewind(req *http.Request) error {
	if !hasBody(req) {
		return nil
	}
	if req.GetBody == nil {
		return errNotRewindable
	}
	body, err := req.GetBody()
	if err != nil {
		return fmt.Errorf("rewinding request body: %w", err)
	}
	req.Body = body
	return nil
}

// discard drains and closes resp so the connection can be reused.
func discard(resp *http.Response) {
	_, _ = io.Copy(io.Discard, resp.Body)
	_ = resp.Body.Close()
}

// retryableError reports whether a transport error may succeed on retry.
// Cancellation and deadlines belong to the caller and are final.
func retryableError(err error) bool {
	return !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded)
}

// retryableStatus covers 429 and every 5xx.
func retryableStatus(code int) bool {
	return code == http.StatusTooManyRequests || code >= http.StatusInternalServerError
}
