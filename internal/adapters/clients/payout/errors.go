package payout

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/jsamuelsen11/crowdfund-escrow/internal/domain"
)

// maxErrorBodySize limits how much of an error response body we read.
const maxErrorBodySize = 1 << 20 // 1 MB

// errDuplicateTransfer reports that the rail already holds a transfer with
// the same id. The earlier attempt went through, so callers treat it as
// success.
var errDuplicateTransfer = errors.New("transfer already recorded")

// problemDetail is the RFC 9457 body the rail returns on errors.
type problemDetail struct {
	Title  string `json:"title"`
	Detail string `json:"detail"`
	Code   string `json:"code"`
}

// translateHTTPError maps a rail error response to a domain error. All of
// them wrap domain.ErrUnavailable. A 4xx is the rail refusing the transfer,
// which also wraps domain.ErrPayoutRejected; a 5xx or any other status
// leaves the outcome unknown. A 409 is a replay of a transfer id the rail
// has already accepted.
func translateHTTPError(resp *http.Response) error {
	pd := parseProblemDetail(resp)

	detail := pd.Detail
	if detail == "" {
		detail = http.StatusText(resp.StatusCode)
	}
	if pd.Code != "" {
		detail = pd.Code + ": " + detail
	}

	if resp.StatusCode == http.StatusConflict {
		return fmt.Errorf("%s: %w", detail, errDuplicateTransfer)
	}
	err := fmt.Errorf("payout rail returned %d: %s", resp.StatusCode, detail)
	if resp.StatusCode >= 400 && resp.StatusCode < 500 {
		return rejected(err)
	}
	return unavailable(err)
}

// unavailable wraps a failure whose outcome on the rail is unknown.
func unavailable(err error) error {
	return fmt.Errorf("%w: %w", domain.ErrUnavailable, err)
}

// rejected wraps a failure the rail certainly did not apply.
func rejected(err error) error {
	return fmt.Errorf("%w: %w: %w", domain.ErrUnavailable, domain.ErrPayoutRejected, err)
}

// parseProblemDetail reads an RFC 9457 body from the response. Returns an
// empty problemDetail if the body is absent or not problem+json.
func parseProblemDetail(resp *http.Response) problemDetail {
	if resp.Body == nil {
		return problemDetail{}
	}

	ct := resp.Header.Get("Content-Type")
	if !strings.HasPrefix(ct, "application/problem+json") {
		return problemDetail{}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodySize))
	if err != nil {
		return problemDetail{}
	}

	var pd problemDetail
	if err := json.Unmarshal(body, &pd); err != nil {
		return problemDetail{}
	}
	return pd
}
