package payout

import "github.com/jsamuelsen11/crowdfund-escrow/internal/ports"

// transferRequest is the rail's POST /api/v1/transfers body. Reference
// carries the project the funds are released from.
type transferRequest struct {
	ID        string `json:"id"`
	Reference string `json:"reference"`
	Kind      string `json:"kind"`
	Recipient string `json:"recipient"`
	Amount    int64  `json:"amount"`
}

// transferResponse is the rail's acknowledgement of an accepted transfer.
type transferResponse struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

func toTransferRequest(p ports.Payout) transferRequest {
	return transferRequest{
		ID:        p.ID,
		Reference: projectReference(p.ProjectID),
		Kind:      string(p.Kind),
		Recipient: p.Recipient,
		Amount:    p.Amount,
	}
}
