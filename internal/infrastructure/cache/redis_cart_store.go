package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/farmmarket/backend/internal/domain/cart"
	"github.com/farmmarket/backend/internal/infrastructure/config"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// RedisCartStore implements cart.Store using Redis. This is the production
// backend: carts survive process restarts and are shared across instances.
//
// Each cart is stored as a JSON-encoded line item slice under a per-user
// key with a TTL that is renewed on every mutation. Concurrent mutations
// for the same user are last-write-wins, which matches the cart.Store
// contract.
type RedisCartStore struct {
	client    *redis.Client
	keyPrefix string
	ttl       time.Duration
}

// NewRedisCartStore creates a Redis-backed cart store
func NewRedisCartStore(cfg config.RedisConfig, ttl time.Duration) (*RedisCartStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr(),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis for cart store: %w", err)
	}

	return NewRedisCartStoreWithClient(client, ttl), nil
}

// NewRedisCartStoreWithClient creates a cart store with an existing Redis
// client. Useful for testing or when sharing a client across components.
func NewRedisCartStoreWithClient(client *redis.Client, ttl time.Duration) *RedisCartStore {
	return &RedisCartStore{
		client:    client,
		keyPrefix: "cart:",
		ttl:       ttl,
	}
}

func (s *RedisCartStore) key(userID uuid.UUID) string {
	return s.keyPrefix + userID.String()
}

// AddItem merges by offer: an existing line gets its quantity incremented,
// otherwise a new line is appended at the end.
func (s *RedisCartStore) AddItem(ctx context.Context, userID, offerID uuid.UUID, quantity int) error {
	items, err := s.load(ctx, userID)
	if err != nil {
		return err
	}

	merged := false
	for i := range items {
		if items[i].OfferID == offerID {
			items[i].Quantity += quantity
			merged = true
			break
		}
	}
	if !merged {
		items = append(items, cart.LineItem{OfferID: offerID, Quantity: quantity})
	}

	return s.save(ctx, userID, items)
}

// GetItems returns the user's line items in insertion order. An unknown
// user or an expired cart yields an empty slice.
func (s *RedisCartStore) GetItems(ctx context.Context, userID uuid.UUID) ([]cart.LineItem, error) {
	return s.load(ctx, userID)
}

// RemoveItem removes the line for that offer if present; no-op otherwise.
func (s *RedisCartStore) RemoveItem(ctx context.Context, userID, offerID uuid.UUID) error {
	items, err := s.load(ctx, userID)
	if err != nil {
		return err
	}
	if len(items) == 0 {
		return nil
	}

	for i := range items {
		if items[i].OfferID == offerID {
			items = append(items[:i], items[i+1:]...)
			break
		}
	}

	return s.save(ctx, userID, items)
}

// Clear discards all line items for the user
func (s *RedisCartStore) Clear(ctx context.Context, userID uuid.UUID) error {
	if err := s.client.Del(ctx, s.key(userID)).Err(); err != nil {
		return fmt.Errorf("failed to clear cart: %w", err)
	}
	return nil
}

func (s *RedisCartStore) load(ctx context.Context, userID uuid.UUID) ([]cart.LineItem, error) {
	raw, err := s.client.Get(ctx, s.key(userID)).Bytes()
	if err == redis.Nil {
		return []cart.LineItem{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load cart: %w", err)
	}

	var items []cart.LineItem
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, fmt.Errorf("failed to decode cart: %w", err)
	}
	return items, nil
}

func (s *RedisCartStore) save(ctx context.Context, userID uuid.UUID, items []cart.LineItem) error {
	raw, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("failed to encode cart: %w", err)
	}

	if err := s.client.Set(ctx, s.key(userID), raw, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to save cart: %w", err)
	}
	return nil
}

// Close closes the Redis client
func (s *RedisCartStore) Close() error {
	return s.client.Close()
}

// GetClient returns the underlying Redis client (for testing/monitoring)
func (s *RedisCartStore) GetClient() *redis.Client {
	return s.client
}

// Ensure RedisCartStore implements cart.Store
var _ cart.Store = (*RedisCartStore)(nil)
