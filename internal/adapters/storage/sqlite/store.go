// Package sqlite provides a SQLite-backed project store.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/jsamuelsen11/crowdfund-escrow/internal/adapters/storage/sqlite/migrations"
	"github.com/jsamuelsen11/crowdfund-escrow/internal/domain"
	"github.com/jsamuelsen11/crowdfund-escrow/internal/domain/ledger"
	"github.com/jsamuelsen11/crowdfund-escrow/internal/domain/project"
	"github.com/jsamuelsen11/crowdfund-escrow/internal/ports"
)

var _ ports.ProjectStore = (*Store)(nil)

const projectColumns = `id, owner, title, description, goal, deadline, pledged_amount, withdrawn, created_at`

// Store persists projects and their ledgers in SQLite. A single connection
// serializes every call, which gives each Update the single-call atomicity
// the ledger relies on.
type Store struct {
	sqlDB *sql.DB
}

// Times are stored as Unix nanoseconds so a deadline reads back exactly as
// it was created.
func toUnixNano(value time.Time) int64 {
	return value.UTC().UnixNano()
}

func fromUnixNano(value int64) time.Time {
	return time.Unix(0, value).UTC()
}

// Open opens a SQLite project store and applies embedded migrations.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	dsn := filepath.Clean(path) +
		"?_pragma=journal_mode(WAL)&_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)&_txlock=immediate"

	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	sqlDB.SetMaxOpenConns(1)

	ctx := context.Background()
	if err := sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if err := applyMigrations(ctx, sqlDB, migrations.FS); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return &Store{sqlDB: sqlDB}, nil
}

// Close closes the SQLite handle.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// Name implements ports.HealthChecker.
func (s *Store) Name() string {
	return "project-store"
}

// HealthCheck implements ports.HealthChecker.
func (s *Store) HealthCheck(ctx context.Context) error {
	return s.sqlDB.PingContext(ctx)
}

// Create inserts p with id equal to the current project count.
func (s *Store) Create(ctx context.Context, p *project.Project) (*project.Project, error) {
	created := *p
	err := s.inTx(ctx, func(tx *sql.Tx) error {
		if err := tx.QueryRowContext(ctx, `SELECT COUNT(1) FROM projects`).Scan(&created.ID); err != nil {
			return fmt.Errorf("count projects: %w", err)
		}
		_, err := tx.ExecContext(ctx,
			`INSERT INTO projects (`+projectColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			created.ID,
			created.Owner,
			created.Title,
			created.Description,
			created.Goal,
			toUnixNano(created.Deadline),
			created.PledgedAmount,
			created.Withdrawn,
			toUnixNano(created.CreatedAt),
		)
		if err != nil {
			return fmt.Errorf("insert project: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &created, nil
}

// Count returns the number of stored projects.
func (s *Store) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := s.sqlDB.QueryRowContext(ctx, `SELECT COUNT(1) FROM projects`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count projects: %w", err)
	}
	return n, nil
}

// Get returns one project by ID.
func (s *Store) Get(ctx context.Context, id int64) (*project.Project, error) {
	return getProject(ctx, s.sqlDB, id)
}

// List returns every project in ID order.
func (s *Store) List(ctx context.Context) ([]project.Project, error) {
	rows, err := s.sqlDB.QueryContext(ctx, `SELECT `+projectColumns+` FROM projects ORDER BY id ASC`)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	defer rows.Close()

	var out []project.Project
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, fmt.Errorf("scan project: %w", err)
		}
		out = append(out, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate projects: %w", err)
	}
	return out, nil
}

// Contribution returns one ledger entry, 0 if absent.
func (s *Store) Contribution(ctx context.Context, id int64, contributor string) (int64, error) {
	if err := s.exists(ctx, id); err != nil {
		return 0, err
	}
	return balance(ctx, s.sqlDB, id, contributor)
}

// Contributions returns the stored entries of a project sorted by contributor.
func (s *Store) Contributions(ctx context.Context, id int64) ([]ledger.Entry, error) {
	if err := s.exists(ctx, id); err != nil {
		return nil, err
	}

	rows, err := s.sqlDB.QueryContext(ctx,
		`SELECT contributor, amount FROM contributions WHERE project_id = ? ORDER BY contributor ASC`, id)
	if err != nil {
		return nil, fmt.Errorf("list contributions: %w", err)
	}
	defer rows.Close()

	out := []ledger.Entry{}
	for rows.Next() {
		var e ledger.Entry
		if err := rows.Scan(&e.Contributor, &e.Amount); err != nil {
			return nil, fmt.Errorf("scan contribution: %w", err)
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate contributions: %w", err)
	}
	return out, nil
}

// Update runs fn inside one transaction and writes back the project row and
// every touched ledger entry only if fn succeeds.
func (s *Store) Update(ctx context.Context, id int64, fn ports.UpdateFunc) error {
	return s.inTx(ctx, func(tx *sql.Tx) error {
		p, err := getProject(ctx, tx, id)
		if err != nil {
			return err
		}

		book := &txBook{
			ctx:       ctx,
			tx:        tx,
			projectID: id,
			writes:    make(map[string]int64),
			holds:     make(map[string]*ledger.Release),
		}
		if err := fn(p, book); err != nil {
			return err
		}
		if p.ID != id {
			return fmt.Errorf("project %d: update changed the id", id)
		}

		if _, err := tx.ExecContext(ctx,
			`UPDATE projects SET pledged_amount = ?, withdrawn = ? WHERE id = ?`,
			p.PledgedAmount, p.Withdrawn, id,
		); err != nil {
			return fmt.Errorf("update project: %w", err)
		}
		return book.flush()
	})
}

func (s *Store) exists(ctx context.Context, id int64) error {
	var n int
	if err := s.sqlDB.QueryRowContext(ctx, `SELECT COUNT(1) FROM projects WHERE id = ?`, id).Scan(&n); err != nil {
		return fmt.Errorf("lookup project: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("project %d: %w", id, domain.ErrNotFound)
	}
	return nil
}

func (s *Store) inTx(ctx context.Context, fn func(*sql.Tx) error) error {
	tx, err := s.sqlDB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// queryer is satisfied by both *sql.DB and *sql.Tx.
type queryer interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type scanner interface {
	Scan(dest ...any) error
}

func getProject(ctx context.Context, q queryer, id int64) (*project.Project, error) {
	row := q.QueryRowContext(ctx, `SELECT `+projectColumns+` FROM projects WHERE id = ?`, id)
	p, err := scanProject(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("project %d: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get project: %w", err)
	}
	return p, nil
}

func scanProject(row scanner) (*project.Project, error) {
	var (
		p         project.Project
		deadline  int64
		createdAt int64
	)
	if err := row.Scan(
		&p.ID,
		&p.Owner,
		&p.Title,
		&p.Description,
		&p.Goal,
		&deadline,
		&p.PledgedAmount,
		&p.Withdrawn,
		&createdAt,
	); err != nil {
		return nil, err
	}
	p.Deadline = fromUnixNano(deadline)
	p.CreatedAt = fromUnixNano(createdAt)
	return &p, nil
}

func balance(ctx context.Context, q queryer, id int64, contributor string) (int64, error) {
	var amount int64
	err := q.QueryRowContext(ctx,
		`SELECT amount FROM contributions WHERE project_id = ? AND contributor = ?`, id, contributor,
	).Scan(&amount)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("get contribution: %w", err)
	}
	return amount, nil
}

// txBook reads through the transaction and buffers writes until flush. A nil
// buffered release is a pending Clear.
type txBook struct {
	ctx       context.Context
	tx        *sql.Tx
	projectID int64
	writes    map[string]int64
	holds     map[string]*ledger.Release
}

func (b *txBook) Balance(contributor string) (int64, error) {
	if amount, ok := b.writes[contributor]; ok {
		return amount, nil
	}
	return balance(b.ctx, b.tx, b.projectID, contributor)
}

func (b *txBook) SetBalance(contributor string, amount int64) error {
	if amount < 0 {
		return fmt.Errorf("negative balance %d for %q", amount, contributor)
	}
	b.writes[contributor] = amount
	return nil
}

func (b *txBook) Held(id string) (ledger.Release, bool, error) {
	if r, ok := b.holds[id]; ok {
		if r == nil {
			return ledger.Release{}, false, nil
		}
		return *r, true, nil
	}

	r := ledger.Release{ID: id}
	err := b.tx.QueryRowContext(b.ctx,
		`SELECT recipient, amount, in_flight FROM held_releases WHERE project_id = ? AND id = ?`, b.projectID, id,
	).Scan(&r.Recipient, &r.Amount, &r.InFlight)
	if errors.Is(err, sql.ErrNoRows) {
		return ledger.Release{}, false, nil
	}
	if err != nil {
		return ledger.Release{}, false, fmt.Errorf("get held release: %w", err)
	}
	return r, true, nil
}

func (b *txBook) Hold(r ledger.Release) error {
	if r.ID == "" || r.Amount <= 0 {
		return fmt.Errorf("invalid release %q of %d", r.ID, r.Amount)
	}
	b.holds[r.ID] = &r
	return nil
}

func (b *txBook) Clear(id string) error {
	b.holds[id] = nil
	return nil
}

func (b *txBook) flush() error {
	for id, r := range b.holds {
		var err error
		if r == nil {
			_, err = b.tx.ExecContext(b.ctx,
				`DELETE FROM held_releases WHERE project_id = ? AND id = ?`, b.projectID, id)
		} else {
			_, err = b.tx.ExecContext(b.ctx,
				`INSERT INTO held_releases (project_id, id, recipient, amount, in_flight) VALUES (?, ?, ?, ?, ?)
				 ON CONFLICT (project_id, id) DO UPDATE SET
				   recipient = excluded.recipient, amount = excluded.amount, in_flight = excluded.in_flight`,
				b.projectID, id, r.Recipient, r.Amount, r.InFlight)
		}
		if err != nil {
			return fmt.Errorf("write held release: %w", err)
		}
	}

	for contributor, amount := range b.writes {
		var err error
		if amount == 0 {
			_, err = b.tx.ExecContext(b.ctx,
				`DELETE FROM contributions WHERE project_id = ? AND contributor = ?`,
				b.projectID, contributor)
		} else {
			_, err = b.tx.ExecContext(b.ctx,
				`INSERT INTO contributions (project_id, contributor, amount) VALUES (?, ?, ?)
				 ON CONFLICT (project_id, contributor) DO UPDATE SET amount = excluded.amount`,
				b.projectID, contributor, amount)
		}
		if err != nil {
			return fmt.Errorf("write contribution: %w", err)
		}
	}
	return nil
}
