// Package payout implements the outbound adapter for an external payout
// rail. It translates ports.Payout into the rail's transfer API and maps the
// rail's failures onto domain errors.
package payout

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/jsamuelsen11/crowdfund-escrow/internal/platform/httpclient"
	"github.com/jsamuelsen11/crowdfund-escrow/internal/ports"
)

// Compile-time interface checks.
var (
	_ ports.PayoutClient  = (*Client)(nil)
	_ ports.HealthChecker = (*Client)(nil)
)

const transfersPath = "/api/v1/transfers"

// Transfer statuses the rail may acknowledge with.
const (
	statusAccepted = "accepted"
	statusSettled  = "settled"
	statusRejected = "rejected"
)

// Client sends payouts to the rail through an instrumented httpclient.Client
// (circuit breaker, rate limit, retry and tracing). The payout id is sent as
// the Idempotency-Key so retried POSTs cannot pay twice.
type Client struct {
	http   *httpclient.Client
	req    *requester
	logger *slog.Logger
}

// NewClient creates a Client. The httpclient's base URL should point at the
// rail root (e.g. "https://payouts.example.com").
func NewClient(client *httpclient.Client, logger *slog.Logger) *Client {
	return &Client{
		http:   client,
		req:    &requester{client: client, logger: logger},
		logger: logger,
	}
}

// Transfer posts the payout to the rail. A 201 with an accepted or settled
// status is success; so is a 409 for a transfer id the rail already holds.
// Any other outcome wraps domain.ErrUnavailable, and additionally
// domain.ErrPayoutRejected when the rail refused the transfer or the call
// never left this process.
func (c *Client) Transfer(ctx context.Context, p ports.Payout) error {
	var resp transferResponse
	err := c.req.post(ctx, transfersPath, p.ID, http.StatusCreated, toTransferRequest(p), &resp)
	switch {
	case errors.Is(err, errDuplicateTransfer):
		c.logger.InfoContext(ctx, "payout already recorded by rail",
			slog.String("payout_id", p.ID),
		)
		return nil
	case err != nil:
		return err
	}

	if resp.ID != p.ID {
		return unavailable(fmt.Errorf("rail acknowledged transfer %q, want %q", resp.ID, p.ID))
	}
	switch resp.Status {
	case statusAccepted, statusSettled:
		return nil
	case statusRejected:
		return rejected(fmt.Errorf("rail rejected transfer %s", p.ID))
	default:
		return unavailable(fmt.Errorf("rail reported transfer %s as %q", p.ID, resp.Status))
	}
}

// Name returns the identifier used for health registration.
func (c *Client) Name() string {
	return c.http.Name()
}

// HealthCheck reports the rail's availability from the circuit breaker
// state. No network call is made.
func (c *Client) HealthCheck(ctx context.Context) error {
	return c.http.HealthCheck(ctx)
}

func projectReference(id int64) string {
	return "project-" + strconv.FormatInt(id, 10)
}
