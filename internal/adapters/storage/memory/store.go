// Package memory provides in-process implementations of the storage ports.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/jsamuelsen11/crowdfund-escrow/internal/domain"
	"github.com/jsamuelsen11/crowdfund-escrow/internal/domain/ledger"
	"github.com/jsamuelsen11/crowdfund-escrow/internal/domain/project"
	"github.com/jsamuelsen11/crowdfund-escrow/internal/ports"
)

var _ ports.ProjectStore = (*Store)(nil)

// record is one arena slot: a project and its ledger, guarded by its own lock
// so that calls on different projects never contend.
type record struct {
	mu      sync.Mutex
	project project.Project
	entries map[string]int64
	held    map[string]ledger.Release
}

// Store is an arena of projects addressed by dense integer IDs.
type Store struct {
	mu      sync.RWMutex
	records []*record
}

// NewStore returns an empty Store.
func NewStore() *Store {
	return &Store{}
}

// Name implements ports.HealthChecker.
func (s *Store) Name() string {
	return "project-store"
}

// HealthCheck implements ports.HealthChecker. The arena is always available.
func (s *Store) HealthCheck(ctx context.Context) error {
	return ctx.Err()
}

// Create appends p to the arena and assigns it the next ID.
func (s *Store) Create(ctx context.Context, p *project.Project) (*project.Project, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	rec := &record{
		project: *p,
		entries: make(map[string]int64),
		held:    make(map[string]ledger.Release),
	}
	rec.project.ID = int64(len(s.records))
	s.records = append(s.records, rec)

	created := rec.project
	return &created, nil
}

// Count returns the arena length.
func (s *Store) Count(ctx context.Context) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	return int64(len(s.records)), nil
}

// Get returns a copy of the project.
func (s *Store) Get(ctx context.Context, id int64) (*project.Project, error) {
	rec, err := s.lookup(ctx, id)
	if err != nil {
		return nil, err
	}

	rec.mu.Lock()
	defer rec.mu.Unlock()
	p := rec.project
	return &p, nil
}

// List returns copies of every project in ID order.
func (s *Store) List(ctx context.Context) ([]project.Project, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	records := s.records[:len(s.records):len(s.records)]
	s.mu.RUnlock()

	out := make([]project.Project, 0, len(records))
	for _, rec := range records {
		rec.mu.Lock()
		out = append(out, rec.project)
		rec.mu.Unlock()
	}
	return out, nil
}

// Contribution returns a single ledger entry.
func (s *Store) Contribution(ctx context.Context, id int64, contributor string) (int64, error) {
	rec, err := s.lookup(ctx, id)
	if err != nil {
		return 0, err
	}

	rec.mu.Lock()
	defer rec.mu.Unlock()
	return rec.entries[contributor], nil
}

// Contributions returns the non-zero entries sorted by contributor.
func (s *Store) Contributions(ctx context.Context, id int64) ([]ledger.Entry, error) {
	rec, err := s.lookup(ctx, id)
	if err != nil {
		return nil, err
	}

	rec.mu.Lock()
	out := make([]ledger.Entry, 0, len(rec.entries))
	for who, amount := range rec.entries {
		if amount > 0 {
			out = append(out, ledger.Entry{Contributor: who, Amount: amount})
		}
	}
	rec.mu.Unlock()

	sort.Slice(out, func(i, j int) bool { return out[i].Contributor < out[j].Contributor })
	return out, nil
}

// Update runs fn against a staged copy of the project and applies the copy
// and the staged ledger writes only if fn succeeds.
func (s *Store) Update(ctx context.Context, id int64, fn ports.UpdateFunc) error {
	rec, err := s.lookup(ctx, id)
	if err != nil {
		return err
	}

	rec.mu.Lock()
	defer rec.mu.Unlock()

	staged := rec.project
	book := &stagedBook{
		base:     rec.entries,
		writes:   make(map[string]int64),
		heldBase: rec.held,
		holds:    make(map[string]*ledger.Release),
	}
	if err := fn(&staged, book); err != nil {
		return err
	}
	if staged.ID != rec.project.ID {
		return fmt.Errorf("project %d: update changed the id", id)
	}

	rec.project = staged
	for who, amount := range book.writes {
		if amount == 0 {
			delete(rec.entries, who)
			continue
		}
		rec.entries[who] = amount
	}
	for id, r := range book.holds {
		if r == nil {
			delete(rec.held, id)
			continue
		}
		rec.held[id] = *r
	}
	return nil
}

func (s *Store) lookup(ctx context.Context, id int64) (*record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	if id < 0 || id >= int64(len(s.records)) {
		return nil, fmt.Errorf("project %d: %w", id, domain.ErrNotFound)
	}
	return s.records[id], nil
}

// stagedBook overlays pending writes on the committed entries and releases.
// A nil staged release is a pending Clear.
type stagedBook struct {
	base     map[string]int64
	writes   map[string]int64
	heldBase map[string]ledger.Release
	holds    map[string]*ledger.Release
}

func (b *stagedBook) Balance(contributor string) (int64, error) {
	if amount, ok := b.writes[contributor]; ok {
		return amount, nil
	}
	return b.base[contributor], nil
}

func (b *stagedBook) SetBalance(contributor string, amount int64) error {
	if amount < 0 {
		return fmt.Errorf("negative balance %d for %q", amount, contributor)
	}
	b.writes[contributor] = amount
	return nil
}

func (b *stagedBook) Held(id string) (ledger.Release, bool, error) {
	if r, ok := b.holds[id]; ok {
		if r == nil {
			return ledger.Release{}, false, nil
		}
		return *r, true, nil
	}
	r, ok := b.heldBase[id]
	return r, ok, nil
}

func (b *stagedBook) Hold(r ledger.Release) error {
	if r.ID == "" || r.Amount <= 0 {
		return fmt.Errorf("invalid release %q of %d", r.ID, r.Amount)
	}
	b.holds[r.ID] = &r
	return nil
}

func (b *stagedBook) Clear(id string) error {
	b.holds[id] = nil
	return nil
}
