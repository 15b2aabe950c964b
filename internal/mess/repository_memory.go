package mess

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/MaheshKadam182/meals-spotter-new/internal/timeline"
	"github.com/google/uuid"
)

// InMemoryRepository keeps messes in a map. Used by tests and local runs.
type InMemoryRepository struct {
	mu     sync.RWMutex
	messes map[string]*Mess
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{
		messes: make(map[string]*Mess),
	}
}

func (r *InMemoryRepository) Create(ctx context.Context, m *Mess) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	if m.CreatedAt.IsZero() {
		m.CreatedAt = now
	}
	m.UpdatedAt = now

	r.messes[m.ID] = clone(m)
	return nil
}

func (r *InMemoryRepository) GetByID(ctx context.Context, id string) (*Mess, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	m, ok := r.messes[id]
	if !ok {
		return nil, ErrNotFound
	}
	return clone(m), nil
}

func (r *InMemoryRepository) GetByOwner(ctx context.Context, ownerID string) (*Mess, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, m := range r.messes {
		if m.OwnerID == ownerID {
			return clone(m), nil
		}
	}
	return nil, ErrNotFound
}

func (r *InMemoryRepository) List(ctx context.Context) ([]*Mess, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*Mess, 0, len(r.messes))
	for _, m := range r.messes {
		out = append(out, clone(m))
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (r *InMemoryRepository) UpdateProfile(ctx context.Context, m *Mess) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.messes[m.ID]
	if !ok {
		return ErrNotFound
	}

	updated := clone(m)
	updated.Menu = existing.Menu
	updated.CreatedAt = existing.CreatedAt
	updated.UpdatedAt = time.Now().UTC()
	r.messes[m.ID] = updated

	m.UpdatedAt = updated.UpdatedAt
	return nil
}

func (r *InMemoryRepository) SaveMenu(ctx context.Context, id string, menu timeline.Timeline) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.messes[id]
	if !ok {
		return ErrNotFound
	}
	existing.Menu = menu.Clone()
	existing.UpdatedAt = time.Now().UTC()
	return nil
}

func (r *InMemoryRepository) DeleteAll(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.messes = make(map[string]*Mess)
	return nil
}

func clone(m *Mess) *Mess {
	c := *m
	c.Cuisine = append([]string(nil), m.Cuisine...)
	c.Plans = append([]timeline.SubscriptionPlan(nil), m.Plans...)
	c.Menu = m.Menu.Clone()
	return &c
}
