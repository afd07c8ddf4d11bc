package properties

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Repository defines the interface for property storage
type Repository interface {
	Create(ctx context.Context, req *CreatePropertyRequest) (*Property, error)
	GetByID(ctx context.Context, id string) (*Property, error)
	List(ctx context.Context, filter ListFilter) ([]*Property, error)
}

// InMemoryRepository is an in-memory implementation of Repository for
// development and tests.
type InMemoryRepository struct {
	mu         sync.RWMutex
	properties map[string]*Property
}

// NewInMemoryRepository creates a new in-memory repository
func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{
		properties: make(map[string]*Property),
	}
}

// Create creates a new property in memory
func (r *InMemoryRepository) Create(ctx context.Context, req *CreatePropertyRequest) (*Property, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	prop := &Property{
		ID:          uuid.New().String(),
		Title:       req.Title,
		Description: req.Description,
		ListingType: req.ListingType,
		PriceCents:  req.PriceCents,
		City:        req.City,
		Bedrooms:    req.Bedrooms,
		OwnerName:   req.OwnerName,
		OwnerEmail:  req.OwnerEmail,
		CreatedAt:   time.Now().UTC(),
	}

	r.mu.Lock()
	r.properties[prop.ID] = prop
	r.mu.Unlock()

	return prop, nil
}

// GetByID retrieves a property by ID
func (r *InMemoryRepository) GetByID(ctx context.Context, id string) (*Property, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	prop, ok := r.properties[id]
	if !ok {
		return nil, ErrPropertyNotFound
	}

	return prop, nil
}

// List returns properties matching the filter, newest first.
func (r *InMemoryRepository) List(ctx context.Context, filter ListFilter) ([]*Property, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var matched []*Property
	for _, prop := range r.properties {
		if filter.City != "" && prop.City != filter.City {
			continue
		}
		if filter.ListingType != "" && prop.ListingType != filter.ListingType {
			continue
		}
		if filter.MinPriceCents > 0 && prop.PriceCents < filter.MinPriceCents {
			continue
		}
		if filter.MaxPriceCents > 0 && prop.PriceCents > filter.MaxPriceCents {
			continue
		}
		matched = append(matched, prop)
	}

	sort.Slice(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})

	if filter.Offset > 0 {
		if filter.Offset >= len(matched) {
			return nil, nil
		}
		matched = matched[filter.Offset:]
	}
	if filter.Limit > 0 && len(matched) > filter.Limit {
		matched = matched[:filter.Limit]
	}

	return matched, nil
}
