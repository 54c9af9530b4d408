package payout

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/jsamuelsen11/crowdfund-escrow/internal/platform/httpclient"
)

// requester centralizes the HTTP request lifecycle for the payout rail:
// JSON marshaling, execution through httpclient.Client, status validation,
// error translation and response decoding.
type requester struct {
	client *httpclient.Client
	logger *slog.Logger
}

// post sends reqBody as JSON to path with the given idempotency key and
// decodes a wantStatus response into respBody.
func (r *requester) post(ctx context.Context, path, idempotencyKey string, wantStatus int, reqBody, respBody any) error {
	body, err := json.Marshal(reqBody)
	if err != nil {
		return fmt.Errorf("marshaling POST body for %s: %w", path, err)
	}

	req, err := r.client.NewRequest(ctx, http.MethodPost, path, body)
	if err != nil {
		return err
	}
	if idempotencyKey != "" {
		req.Header.Set("Idempotency-Key", idempotencyKey)
	}

	return r.execute(req, wantStatus, respBody)
}

func (r *requester) closeBody(ctx context.Context, resp *http.Response) {
	if err := resp.Body.Close(); err != nil {
		r.logger.WarnContext(ctx, "failed to close response body",
			slog.String("error", err.Error()),
		)
	}
}

// execute sends the request, checks the status code, and optionally decodes
// the response body. It ensures resp.Body is always closed.
func (r *requester) execute(req *http.Request, wantStatus int, respBody any) error {
	ctx := req.Context()

	resp, err := r.client.Do(ctx, req)
	if err != nil {
		// Retries exhausted on a retryable status: translate the final
		// response rather than returning the raw retry error.
		if resp != nil {
			defer r.closeBody(ctx, resp)
			if resp.StatusCode != wantStatus {
				return translateHTTPError(resp)
			}
		}
		r.logger.ErrorContext(ctx, "payout request failed",
			slog.String("method", req.Method),
			slog.String("url", req.URL.String()),
			slog.String("error", err.Error()),
		)
		err = fmt.Errorf("%s %s: %w", req.Method, req.URL.Path, err)
		if errors.Is(err, httpclient.ErrNotSent) {
			return rejected(err)
		}
		return unavailable(err)
	}
	defer r.closeBody(ctx, resp)

	if resp.StatusCode != wantStatus {
		translateErr := translateHTTPError(resp)
		r.logger.ErrorContext(ctx, "unexpected payout status",
			slog.String("method", req.Method),
			slog.String("url", req.URL.String()),
			slog.Int("status", resp.StatusCode),
			slog.Int("want_status", wantStatus),
		)
		return translateErr
	}

	if respBody != nil {
		if err := json.NewDecoder(resp.Body).Decode(respBody); err != nil {
			return unavailable(fmt.Errorf("decoding response from %s %s: %w", req.Method, req.URL.Path, err))
		}
	}

	return nil
}
