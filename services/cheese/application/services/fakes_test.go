package services

import (
	"context"
	"sort"
	"sync"

	"github.com/ghuser/cheeseshop/pkg/cache"
	cheesedomain "github.com/ghuser/cheeseshop/services/cheese/domain"
	"github.com/ghuser/cheeseshop/services/cheese/domain/models"
	"github.com/ghuser/cheeseshop/services/cheese/domain/repositories"
)

type fakeListingRepo struct {
	mu        sync.Mutex
	rows      map[int64]*models.CheeseListing
	nextID    int64
	lastOpts  repositories.QueryOpts
	saves     int
	updates   int
	publishes int
	err       error
}

func newFakeListingRepo() *fakeListingRepo {
	return &fakeListingRepo{rows: make(map[int64]*models.CheeseListing)}
}

func snapshot(l *models.CheeseListing) *models.CheeseListing {
	return models.RestoreCheeseListing(l.ID(), l.Title(), l.Description(), l.Price(), l.CreatedAt(), l.IsPublished(), l.OwnerID())
}

func (r *fakeListingRepo) Save(_ context.Context, l *models.CheeseListing) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	r.nextID++
	if err := l.AssignID(r.nextID); err != nil {
		return err
	}
	r.rows[l.ID()] = snapshot(l)
	r.saves++
	return nil
}

func (r *fakeListingRepo) GetByID(_ context.Context, id int64) (*models.CheeseListing, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	l, ok := r.rows[id]
	if !ok {
		return nil, cheesedomain.ErrCheeseListingNotFound
	}
	return snapshot(l), nil
}

func (r *fakeListingRepo) Find(_ context.Context, _ repositories.ListingFilter, opts repositories.QueryOpts) ([]*models.CheeseListing, int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lastOpts = opts
	ids := make([]int64, 0, len(r.rows))
	for id := range r.rows {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	out := []*models.CheeseListing{}
	for i := opts.Offset; i < len(ids) && i < opts.Offset+opts.Limit; i++ {
		out = append(out, snapshot(r.rows[ids[i]]))
	}
	return out, len(ids), nil
}

func (r *fakeListingRepo) Update(_ context.Context, l *models.CheeseListing) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.rows[l.ID()]
	if !ok {
		return cheesedomain.ErrCheeseListingNotFound
	}
	l.SetPublished(stored.IsPublished())
	r.rows[l.ID()] = snapshot(l)
	r.updates++
	return nil
}

func (r *fakeListingRepo) SetPublished(_ context.Context, id int64, published bool) (*models.CheeseListing, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.rows[id]
	if !ok {
		return nil, cheesedomain.ErrCheeseListingNotFound
	}
	stored.SetPublished(published)
	r.publishes++
	return snapshot(stored), nil
}

func (r *fakeListingRepo) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.rows[id]; !ok {
		return cheesedomain.ErrCheeseListingNotFound
	}
	delete(r.rows, id)
	return nil
}

type fakeUserRepo struct {
	mu     sync.Mutex
	users  map[int64]*models.User
	emails map[string]bool
	nextID int64
}

func newFakeUserRepo(ids ...int64) *fakeUserRepo {
	r := &fakeUserRepo{users: make(map[int64]*models.User), emails: make(map[string]bool)}
	for _, id := range ids {
		r.users[id] = &models.User{ID: id}
		if id > r.nextID {
			r.nextID = id
		}
	}
	return r
}

func (r *fakeUserRepo) Save(_ context.Context, u *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.emails[u.Email] {
		return cheesedomain.ErrUserAlreadyExists
	}
	r.nextID++
	if err := u.AssignID(r.nextID); err != nil {
		return err
	}
	r.users[u.ID] = u
	r.emails[u.Email] = true
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id int64) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, cheesedomain.ErrUserNotFound
	}
	return u, nil
}

func (r *fakeUserRepo) Exists(_ context.Context, id int64) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.users[id]
	return ok, nil
}

type fakeCache struct {
	mu      sync.Mutex
	entries map[int64]cache.CachedListing
	getErr  error
	evicted []int64
	set     chan int64
}

func newFakeCache() *fakeCache {
	return &fakeCache{entries: make(map[int64]cache.CachedListing), set: make(chan int64, 8)}
}

func (c *fakeCache) Get(_ context.Context, id int64) (*cache.CachedListing, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.getErr != nil {
		return nil, c.getErr
	}
	e, ok := c.entries[id]
	if !ok {
		return nil, cache.ErrMiss
	}
	return &e, nil
}

func (c *fakeCache) Set(_ context.Context, l *cache.CachedListing) error {
	c.mu.Lock()
	c.entries[l.ID] = *l
	c.mu.Unlock()
	c.set <- l.ID
	return nil
}

func (c *fakeCache) Delete(_ context.Context, id int64) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, id)
	c.evicted = append(c.evicted, id)
	return nil
}
