package intake

import (
	"context"
	"sort"
	"sync"
)

// ListFilter narrows a lead listing.
type ListFilter struct {
	PickupType string
	Limit      int
	Offset     int
}

// Repository defines the interface for lead storage
type Repository interface {
	Create(ctx context.Context, lead *PickupLead) error
	GetByID(ctx context.Context, id string) (*PickupLead, error)
	List(ctx context.Context, filter ListFilter) ([]*PickupLead, error)
}

// InMemoryRepository is a Repository backed by a map, used in development
// and tests when no database is configured.
type InMemoryRepository struct {
	mu    sync.RWMutex
	leads map[string]*PickupLead
}

// NewInMemoryRepository creates a new in-memory repository
func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{
		leads: make(map[string]*PickupLead),
	}
}

// Create stores a validated lead
func (r *InMemoryRepository) Create(ctx context.Context, lead *PickupLead) error {
	r.mu.Lock()
	r.leads[lead.ID] = lead
	r.mu.Unlock()
	return nil
}

// GetByID retrieves a lead by ID
func (r *InMemoryRepository) GetByID(ctx context.Context, id string) (*PickupLead, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	lead, ok := r.leads[id]
	if !ok {
		return nil, ErrLeadNotFound
	}
	return lead, nil
}

// List returns leads matching the filter, newest first.
func (r *InMemoryRepository) List(ctx context.Context, filter ListFilter) ([]*PickupLead, error) {
	r.mu.RLock()
	all := make([]*PickupLead, 0, len(r.leads))
	for _, lead := range r.leads {
		if filter.PickupType != "" && lead.Pickup.Type != filter.PickupType {
			continue
		}
		all = append(all, lead)
	}
	r.mu.RUnlock()

	sort.Slice(all, func(i, j int) bool {
		return all[i].CreatedAt.After(all[j].CreatedAt)
	})

	if filter.Offset > 0 {
		if filter.Offset >= len(all) {
			return []*PickupLead{}, nil
		}
		all = all[filter.Offset:]
	}
	if filter.Limit > 0 && filter.Limit < len(all) {
		all = all[:filter.Limit]
	}
	return all, nil
}
