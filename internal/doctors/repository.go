package doctors

import (
	"context"
	"sort"
	"sync"
)

// Repository defines the interface for doctor directory storage
type Repository interface {
	List(ctx context.Context) ([]*Doctor, error)
	GetByID(ctx context.Context, id string) (*Doctor, error)
}

// InMemoryRepository is an in-memory implementation of Repository
type InMemoryRepository struct {
	mu      sync.RWMutex
	doctors map[string]*Doctor
}

// NewInMemoryRepository creates a new in-memory repository
func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{doctors: make(map[string]*Doctor)}
}

// Put inserts or replaces a doctor entry.
func (r *InMemoryRepository) Put(doc *Doctor) {
	r.mu.Lock()
	r.doctors[doc.ID] = doc
	r.mu.Unlock()
}

// List returns all doctors ordered by name.
func (r *InMemoryRepository) List(ctx context.Context) ([]*Doctor, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*Doctor, 0, len(r.doctors))
	for _, d := range r.doctors {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// GetByID retrieves a doctor by id.
func (r *InMemoryRepository) GetByID(ctx context.Context, id string) (*Doctor, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	d, ok := r.doctors[id]
	if !ok {
		return nil, ErrDoctorNotFound
	}
	return d, nil
}
