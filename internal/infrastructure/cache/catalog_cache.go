package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/kioskcrm/backend/internal/domain/geo"
	"github.com/redis/go-redis/v9"
)

const catalogKeyPrefix = "kiosk:geo:catalog:"

// CatalogSnapshot is the cached form of a tenant's regions and areas
type CatalogSnapshot struct {
	Regions []geo.Region `json:"regions"`
	Areas   []geo.Area   `json:"areas"`
}

// Catalog rebuilds the ordered catalog
func (s *CatalogSnapshot) Catalog() *geo.Catalog {
	return geo.NewCatalog(s.Regions, s.Areas)
}

// CatalogCache stores per-tenant region/area catalogs
type CatalogCache interface {
	// Get returns the cached snapshot; a miss is (nil, nil)
	Get(ctx context.Context, tenantID uuid.UUID) (*CatalogSnapshot, error)
	Set(ctx context.Context, tenantID uuid.UUID, snapshot *CatalogSnapshot) error
	Invalidate(ctx context.Context, tenantID uuid.UUID) error
}

// RedisCatalogCache implements CatalogCache using Redis
type RedisCatalogCache struct {
	client redis.Cmdable
	ttl    time.Duration
}

var _ CatalogCache = (*RedisCatalogCache)(nil)

// NewRedisCatalogCache creates a catalog cache on an existing client
func NewRedisCatalogCache(client redis.Cmdable, ttl time.Duration) *RedisCatalogCache {
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	return &RedisCatalogCache{client: client, ttl: ttl}
}

func catalogKey(tenantID uuid.UUID) string {
	return catalogKeyPrefix + tenantID.String()
}

func (c *RedisCatalogCache) Get(ctx context.Context, tenantID uuid.UUID) (*CatalogSnapshot, error) {
	data, err := c.client.Get(ctx, catalogKey(tenantID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog cache: %w", err)
	}

	var snapshot CatalogSnapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		// a corrupt entry is treated as a miss and dropped
		_ = c.client.Del(ctx, catalogKey(tenantID)).Err()
		return nil, nil
	}
	return &snapshot, nil
}

func (c *RedisCatalogCache) Set(ctx context.Context, tenantID uuid.UUID, snapshot *CatalogSnapshot) error {
	data, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("failed to encode catalog: %w", err)
	}
	if err := c.client.Set(ctx, catalogKey(tenantID), data, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to write catalog cache: %w", err)
	}
	return nil
}

func (c *RedisCatalogCache) Invalidate(ctx context.Context, tenantID uuid.UUID) error {
	if err := c.client.Del(ctx, catalogKey(tenantID)).Err(); err != nil {
		return fmt.Errorf("failed to invalidate catalog cache: %w", err)
	}
	return nil
}

// NoopCatalogCache is used when Redis is disabled; every read misses
type NoopCatalogCache struct{}

var _ CatalogCache = NoopCatalogCache{}

func (NoopCatalogCache) Get(context.Context, uuid.UUID) (*CatalogSnapshot, error) { return nil, nil }

func (NoopCatalogCache) Set(context.Context, uuid.UUID, *CatalogSnapshot) error { return nil }

func (NoopCatalogCache) Invalidate(context.Context, uuid.UUID) error { return nil }
