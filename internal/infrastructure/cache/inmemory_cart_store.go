package cache

import (
	"context"
	"sync"
	"time"

	"github.com/farmmarket/backend/internal/domain/cart"
	"github.com/google/uuid"
)

// cartEntry holds a user's line items together with an expiry stamp so that
// abandoned carts are eventually reclaimed.
type cartEntry struct {
	items     []cart.LineItem
	expiresAt time.Time
}

// InMemoryCartStore implements cart.Store using an in-memory map.
// This is suitable for single-instance deployments and testing; carts do
// not survive a restart.
type InMemoryCartStore struct {
	mu        sync.RWMutex
	carts     map[uuid.UUID]*cartEntry
	ttl       time.Duration
	stopChan  chan struct{}
	wg        sync.WaitGroup
	closeOnce sync.Once
}

// NewInMemoryCartStore creates a new in-memory cart store. Each mutation
// renews the cart's TTL; a background goroutine reclaims expired carts.
func NewInMemoryCartStore(ttl time.Duration) *InMemoryCartStore {
	store := &InMemoryCartStore{
		carts:    make(map[uuid.UUID]*cartEntry),
		ttl:      ttl,
		stopChan: make(chan struct{}),
	}

	store.wg.Add(1)
	go store.cleanupLoop()

	return store
}

// AddItem merges by offer: an existing line gets its quantity incremented,
// otherwise a new line is appended at the end.
func (s *InMemoryCartStore) AddItem(_ context.Context, userID, offerID uuid.UUID, quantity int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry := s.liveEntry(userID)
	if entry == nil {
		entry = &cartEntry{}
		s.carts[userID] = entry
	}

	merged := false
	for i := range entry.items {
		if entry.items[i].OfferID == offerID {
			entry.items[i].Quantity += quantity
			merged = true
			break
		}
	}
	if !merged {
		entry.items = append(entry.items, cart.LineItem{OfferID: offerID, Quantity: quantity})
	}

	entry.expiresAt = time.Now().Add(s.ttl)
	return nil
}

// GetItems returns a snapshot of the user's line items in insertion order.
// An unknown or expired user yields an empty cart.
func (s *InMemoryCartStore) GetItems(_ context.Context, userID uuid.UUID) ([]cart.LineItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entry, exists := s.carts[userID]
	if !exists || time.Now().After(entry.expiresAt) {
		return []cart.LineItem{}, nil
	}

	items := make([]cart.LineItem, len(entry.items))
	copy(items, entry.items)
	return items, nil
}

// RemoveItem removes the line for that offer if present; no-op otherwise.
func (s *InMemoryCartStore) RemoveItem(_ context.Context, userID, offerID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry := s.liveEntry(userID)
	if entry == nil {
		return nil
	}

	for i := range entry.items {
		if entry.items[i].OfferID == offerID {
			entry.items = append(entry.items[:i], entry.items[i+1:]...)
			break
		}
	}

	entry.expiresAt = time.Now().Add(s.ttl)
	return nil
}

// Clear discards all line items for the user.
func (s *InMemoryCartStore) Clear(_ context.Context, userID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.carts, userID)
	return nil
}

// liveEntry returns the user's entry if it exists and has not expired.
// Callers must hold the write lock.
func (s *InMemoryCartStore) liveEntry(userID uuid.UUID) *cartEntry {
	entry, exists := s.carts[userID]
	if !exists {
		return nil
	}
	if time.Now().After(entry.expiresAt) {
		delete(s.carts, userID)
		return nil
	}
	return entry
}

// Close stops the cleanup goroutine and releases resources.
// Safe to call multiple times.
func (s *InMemoryCartStore) Close() error {
	s.closeOnce.Do(func() {
		close(s.stopChan)
		s.wg.Wait()
	})
	return nil
}

// cleanupLoop periodically removes expired carts
func (s *InMemoryCartStore) cleanupLoop() {
	defer s.wg.Done()

	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-s.stopChan:
			return
		case <-ticker.C:
			s.cleanup()
		}
	}
}

func (s *InMemoryCartStore) cleanup() {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	for userID, entry := range s.carts {
		if now.After(entry.expiresAt) {
			delete(s.carts, userID)
		}
	}
}

// Size returns the number of live carts (for testing/monitoring)
func (s *InMemoryCartStore) Size() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.carts)
}

// Ensure InMemoryCartStore implements cart.Store
var _ cart.Store = (*InMemoryCartStore)(nil)
