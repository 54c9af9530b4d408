package memory

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jsamuelsen11/crowdfund-escrow/internal/domain"
	"github.com/jsamuelsen11/crowdfund-escrow/internal/domain/ledger"
	"github.com/jsamuelsen11/crowdfund-escrow/internal/domain/project"
)

var created = time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)

func newProject(owner string) *project.Project {
	return &project.Project{
		ID:        99,
		Owner:     owner,
		Title:     "title",
		Goal:      10,
		CreatedAt: created,
		Deadline:  created.Add(time.Hour),
	}
}

func TestStore_CreateAssignsDenseIDs(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := NewStore()

	for want := range int64(3) {
		p, err := s.Create(ctx, newProject("alice"))
		require.NoError(t, err)
		assert.Equal(t, want, p.ID)
	}

	count, err := s.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)

	list, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)
	for i, p := range list {
		assert.Equal(t, int64(i), p.ID)
	}
}

func TestStore_GetNotFound(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := NewStore()
	_, err := s.Create(ctx, newProject("alice"))
	require.NoError(t, err)

	for _, id := range []int64{-1, 1, 42} {
		_, err := s.Get(ctx, id)
		require.ErrorIs(t, err, domain.ErrNotFound)

		_, err = s.Contribution(ctx, id, "bob")
		require.ErrorIs(t, err, domain.ErrNotFound)

		err = s.Update(ctx, id, func(*project.Project, ledger.Book) error { return nil })
		require.ErrorIs(t, err, domain.ErrNotFound)
	}
}

func TestStore_GetReturnsCopy(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := NewStore()
	_, err := s.Create(ctx, newProject("alice"))
	require.NoError(t, err)

	p, err := s.Get(ctx, 0)
	require.NoError(t, err)
	p.PledgedAmount = 1000

	again, err := s.Get(ctx, 0)
	require.NoError(t, err)
	assert.Zero(t, again.PledgedAmount)
}

func TestStore_UpdateCommitsOnSuccess(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := NewStore()
	_, err := s.Create(ctx, newProject("alice"))
	require.NoError(t, err)

	err = s.Update(ctx, 0, func(p *project.Project, book ledger.Book) error {
		_, err := ledger.Contribute(p, book, "bob", 4, created)
		return err
	})
	require.NoError(t, err)

	amount, err := s.Contribution(ctx, 0, "bob")
	require.NoError(t, err)
	assert.Equal(t, int64(4), amount)

	entries, err := s.Contributions(ctx, 0)
	require.NoError(t, err)
	assert.Equal(t, []ledger.Entry{{Contributor: "bob", Amount: 4}}, entries)

	p, err := s.Get(ctx, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(4), p.PledgedAmount)
}

func TestStore_UpdateDiscardsOnError(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := NewStore()
	_, err := s.Create(ctx, newProject("alice"))
	require.NoError(t, err)

	boom := errors.New("boom")
	err = s.Update(ctx, 0, func(p *project.Project, book ledger.Book) error {
		require.NoError(t, book.SetBalance("bob", 7))
		p.PledgedAmount = 7
		p.Withdrawn = true
		return boom
	})
	require.ErrorIs(t, err, boom)

	p, err := s.Get(ctx, 0)
	require.NoError(t, err)
	assert.Zero(t, p.PledgedAmount)
	assert.False(t, p.Withdrawn)

	amount, err := s.Contribution(ctx, 0, "bob")
	require.NoError(t, err)
	assert.Zero(t, amount)
}

func TestStore_ZeroedEntriesAreHidden(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := NewStore()
	_, err := s.Create(ctx, newProject("alice"))
	require.NoError(t, err)

	require.NoError(t, s.Update(ctx, 0, func(_ *project.Project, book ledger.Book) error {
		return book.SetBalance("bob", 3)
	}))
	require.NoError(t, s.Update(ctx, 0, func(_ *project.Project, book ledger.Book) error {
		return book.SetBalance("bob", 0)
	}))

	entries, err := s.Contributions(ctx, 0)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestStore_ConcurrentContributions(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := NewStore()
	_, err := s.Create(ctx, newProject("alice"))
	require.NoError(t, err)

	const workers = 16
	var wg sync.WaitGroup
	for i := range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			who := []string{"bob", "carol"}[i%2]
			_ = s.Update(ctx, 0, func(p *project.Project, book ledger.Book) error {
				_, err := ledger.Contribute(p, book, who, 1, created)
				return err
			})
		}()
	}
	wg.Wait()

	p, err := s.Get(ctx, 0)
	require.NoError(t, err)
	entries, err := s.Contributions(ctx, 0)
	require.NoError(t, err)

	var sum int64
	for _, e := range entries {
		sum += e.Amount
	}
	assert.Equal(t, int64(workers), p.PledgedAmount)
	assert.Equal(t, p.PledgedAmount, sum)
}

func TestStore_HeldReleasesFollowUpdate(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := NewStore()
	_, err := s.Create(ctx, newProject("alice"))
	require.NoError(t, err)

	r := ledger.Release{ID: "withdraw-0", Recipient: "alice", Amount: 5}

	err = s.Update(ctx, 0, func(_ *project.Project, book ledger.Book) error {
		require.NoError(t, book.Hold(r))
		return errors.New("abort")
	})
	require.Error(t, err)

	require.NoError(t, s.Update(ctx, 0, func(_ *project.Project, book ledger.Book) error {
		_, ok, err := book.Held(r.ID)
		require.NoError(t, err)
		assert.False(t, ok, "aborted hold must not persist")
		return book.Hold(r)
	}))

	require.NoError(t, s.Update(ctx, 0, func(_ *project.Project, book ledger.Book) error {
		got, ok, err := book.Held(r.ID)
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, r, got)

		require.NoError(t, book.Clear(r.ID))
		_, ok, err = book.Held(r.ID)
		require.NoError(t, err)
		assert.False(t, ok)
		return nil
	}))

	require.NoError(t, s.Update(ctx, 0, func(_ *project.Project, book ledger.Book) error {
		_, ok, err := book.Held(r.ID)
		require.NoError(t, err)
		assert.False(t, ok)
		return nil
	}))
}
