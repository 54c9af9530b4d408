package ports

import (
	"context"
	"time"

	"github.com/jsamuelsen11/crowdfund-escrow/internal/domain/ledger"
	"github.com/jsamuelsen11/crowdfund-escrow/internal/domain/project"
)

// UpdateFunc mutates a project and its ledger book inside a single store call.
// Returning an error discards every mutation made by the function.
type UpdateFunc func(p *project.Project, book ledger.Book) error

// ProjectStore defines the outbound port for the project arena and the
// per-project contribution ledgers. Implemented by the storage adapters.
type ProjectStore interface {
	// Create persists p under the next sequential ID and returns the stored copy.
	Create(ctx context.Context, p *project.Project) (*project.Project, error)

	// Count returns the number of projects ever created.
	Count(ctx context.Context) (int64, error)

	// Get returns a copy of a project.
	// Returns domain.ErrNotFound if the ID is out of range.
	Get(ctx context.Context, id int64) (*project.Project, error)

	// List returns copies of all projects in ID order.
	List(ctx context.Context) ([]project.Project, error)

	// Contribution returns a single ledger entry, 0 if the contributor has none.
	// Returns domain.ErrNotFound if the ID is out of range.
	Contribution(ctx context.Context, id int64, contributor string) (int64, error)

	// Contributions returns the non-zero ledger entries of a project sorted
	// by contributor.
	// Returns domain.ErrNotFound if the ID is out of range.
	Contributions(ctx context.Context, id int64) ([]ledger.Entry, error)

	// Update runs fn against the current project and its book. All of fn's
	// mutations are persisted together if it returns nil and none are if it
	// returns an error. Update calls on the same project are serialized.
	// Returns domain.ErrNotFound if the ID is out of range.
	Update(ctx context.Context, id int64, fn UpdateFunc) error
}

// IdempotencyStore remembers the outcome of requests carrying an
// Idempotency-Key so that retries replay the first response.
type IdempotencyStore interface {
	// Reserve claims key for ttl. It returns false if the key is already
	// claimed or completed.
	Reserve(ctx context.Context, key string, ttl time.Duration) (bool, error)

	// Lookup returns the stored response for key. A reserved key that has no
	// response yet returns (nil, true, nil).
	Lookup(ctx context.Context, key string) (*StoredResponse, bool, error)

	// Complete stores resp for key, replacing the reservation.
	Complete(ctx context.Context, key string, resp StoredResponse, ttl time.Duration) error

	// Release drops a reservation so the request can be retried.
	Release(ctx context.Context, key string) error
}

// StoredResponse is a recorded HTTP response.
type StoredResponse struct {
	Status      int    `json:"status"`
	ContentType string `json:"content_type"`
	Body        []byte `json:"body"`
}
