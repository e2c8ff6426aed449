// Package cart holds each customer's selected services between browsing and
// checkout. Carts are kept in process memory with a session TTL; they are
// deliberately not durable.
package cart

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"

	"github.com/MrsLondon/vivahub-api/internal/model"
)

type Config struct {
	TTL             time.Duration
	CleanupInterval time.Duration
}

func DefaultConfig() Config {
	return Config{
		TTL:             2 * time.Hour,
		CleanupInterval: 10 * time.Minute,
	}
}

// Store maps user ids to carts. All mutations go through Store methods; a
// store-level mutex keeps each cart single-writer.
type Store struct {
	carts *cache.Cache
	ttl   time.Duration
	mu    sync.Mutex
}

func NewStore(cfg Config) *Store {
	if cfg.TTL <= 0 {
		cfg = DefaultConfig()
	}
	return &Store{
		carts: cache.New(cfg.TTL, cfg.CleanupInterval),
		ttl:   cfg.TTL,
	}
}

// Add appends a service to the user's cart. Adding a service whose id is
// already present is a no-op, so repeated clicks never duplicate an item.
func (s *Store) Add(userID uuid.UUID, item model.CartItem) *model.Cart {
	s.mu.Lock()
	defer s.mu.Unlock()

	items := s.items(userID)
	for _, existing := range items {
		if existing.ServiceID == item.ServiceID {
			return s.save(userID, items)
		}
	}

	return s.save(userID, append(items, item))
}

// Remove drops the item with the given service id; absent ids are a no-op.
func (s *Store) Remove(userID, serviceID uuid.UUID) *model.Cart {
	s.mu.Lock()
	defer s.mu.Unlock()

	items := s.items(userID)
	for i, existing := range items {
		if existing.ServiceID == serviceID {
			items = append(items[:i], items[i+1:]...)
			break
		}
	}

	return s.save(userID, items)
}

// Clear empties the user's cart. Called after a fully successful checkout.
func (s *Store) Clear(userID uuid.UUID) *model.Cart {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.save(userID, nil)
}

// Get returns a snapshot of the user's cart.
func (s *Store) Get(userID uuid.UUID) *model.Cart {
	s.mu.Lock()
	defer s.mu.Unlock()

	return snapshot(userID, s.items(userID))
}

func (s *Store) items(userID uuid.UUID) []model.CartItem {
	v, found := s.carts.Get(userID.String())
	if !found {
		return nil
	}
	stored := v.([]model.CartItem)
	items := make([]model.CartItem, len(stored))
	copy(items, stored)
	return items
}

func (s *Store) save(userID uuid.UUID, items []model.CartItem) *model.Cart {
	if len(items) == 0 {
		s.carts.Delete(userID.String())
	} else {
		s.carts.Set(userID.String(), items, s.ttl)
	}
	return snapshot(userID, items)
}

// snapshot folds aggregates from the current items on every call, so totals
// can never drift from the item list.
func snapshot(userID uuid.UUID, items []model.CartItem) *model.Cart {
	c := &model.Cart{
		UserID:    userID,
		Items:     items,
		Count:     len(items),
		UpdatedAt: time.Now(),
	}
	if c.Items == nil {
		c.Items = []model.CartItem{}
	}
	for _, item := range items {
		c.TotalPrice += item.Price
		c.TotalDuration += item.Duration
	}
	return c
}
