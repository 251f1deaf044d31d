package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/sserranom/virtualpets-api/internal/api/metrics"
	"github.com/sserranom/virtualpets-api/internal/core/domain"
)

const defaultCacheTTL = 5 * time.Minute

// PetCache caches pet reads in Redis.
// Key format: pet:<id> for single pets, pets:owner:<owner_id> for owner lists.
// Writes invalidate both keys synchronously, so a read after a write always
// hits the repository.
type PetCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewPetCache creates a PetCache wrapping the given Redis client.
func NewPetCache(client *redis.Client, ttl time.Duration) *PetCache {
	if ttl <= 0 {
		ttl = defaultCacheTTL
	}
	return &PetCache{client: client, ttl: ttl}
}

// GetPet returns the cached pet, or (nil, nil) on a miss.
func (c *PetCache) GetPet(ctx context.Context, id string) (*domain.Pet, error) {
	raw, err := c.client.Get(ctx, petKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		metrics.PetCacheTotal.WithLabelValues("miss").Inc()
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("pet cache get: %w", err)
	}

	var pet domain.Pet
	if err := json.Unmarshal(raw, &pet); err != nil {
		return nil, fmt.Errorf("pet cache decode: %w", err)
	}
	metrics.PetCacheTotal.WithLabelValues("hit").Inc()
	return &pet, nil
}

// SetPet stores a pet under its id key.
func (c *PetCache) SetPet(ctx context.Context, pet *domain.Pet) error {
	raw, err := json.Marshal(pet)
	if err != nil {
		return fmt.Errorf("pet cache encode: %w", err)
	}
	return c.client.Set(ctx, petKey(pet.ID), raw, c.ttl).Err()
}

// GetOwnerList returns the cached pet list for an owner, or (nil, nil) on a
// miss. A cached empty list comes back as a non-nil empty slice.
func (c *PetCache) GetOwnerList(ctx context.Context, ownerID string) ([]domain.Pet, error) {
	raw, err := c.client.Get(ctx, ownerKey(ownerID)).Bytes()
	if errors.Is(err, redis.Nil) {
		metrics.PetCacheTotal.WithLabelValues("miss").Inc()
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("pet cache get: %w", err)
	}

	pets := make([]domain.Pet, 0)
	if err := json.Unmarshal(raw, &pets); err != nil {
		return nil, fmt.Errorf("pet cache decode: %w", err)
	}
	metrics.PetCacheTotal.WithLabelValues("hit").Inc()
	return pets, nil
}

// SetOwnerList stores an owner's pet list.
func (c *PetCache) SetOwnerList(ctx context.Context, ownerID string, pets []domain.Pet) error {
	raw, err := json.Marshal(pets)
	if err != nil {
		return fmt.Errorf("pet cache encode: %w", err)
	}
	return c.client.Set(ctx, ownerKey(ownerID), raw, c.ttl).Err()
}

// Invalidate drops the entries touched by a write to the given pet.
func (c *PetCache) Invalidate(ctx context.Context, id string, ownerID string) error {
	return c.client.Del(ctx, petKey(id), ownerKey(ownerID)).Err()
}

func petKey(id string) string {
	return "pet:" + id
}

func ownerKey(ownerID string) string {
	return "pets:owner:" + ownerID
}
