// Package cache provides a Redis read-through layer over vendor lookups.
// Vendors are immutable once created, so cached entries can never go stale in
// the "wrong data" sense; the TTL only bounds memory. Misses are not cached
// because a vendor may appear at any time.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"procure/internal/vendors/models"
	platformredis "procure/internal/platform/redis"
)

// VendorStore is the slice of the vendor store the cache decorates.
type VendorStore interface {
	Create(ctx context.Context, vendor *models.Vendor) error
	FindByID(ctx context.Context, id string) (*models.Vendor, error)
	List(ctx context.Context) ([]models.Vendor, error)
}

// Cached decorates a vendor store with Redis-backed FindByID caching.
// Create and List pass through untouched.
type Cached struct {
	next   VendorStore
	client *platformredis.Client
	ttl    time.Duration
	logger *slog.Logger
}

// Wrap returns a caching decorator over next. A nil client returns next
// unchanged so callers never branch on cache availability.
func Wrap(next VendorStore, client *platformredis.Client, ttl time.Duration, logger *slog.Logger) VendorStore {
	if client == nil {
		return next
	}
	return &Cached{next: next, client: client, ttl: ttl, logger: logger}
}

func (c *Cached) Create(ctx context.Context, vendor *models.Vendor) error {
	return c.next.Create(ctx, vendor)
}

func (c *Cached) FindByID(ctx context.Context, id string) (*models.Vendor, error) {
	key := "vendor:" + id

	raw, err := c.client.Get(ctx, key).Bytes()
	if err == nil {
		var vendor models.Vendor
		if err := json.Unmarshal(raw, &vendor); err == nil {
			return &vendor, nil
		}
		// Corrupt entry: fall through to the store and rewrite below.
	} else if !errors.Is(err, redis.Nil) && c.logger != nil {
		c.logger.WarnContext(ctx, "vendor cache read failed", "vendor_id", id, "error", err)
	}

	vendor, err := c.next.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if raw, err := json.Marshal(vendor); err == nil {
		if err := c.client.Set(ctx, key, raw, c.ttl).Err(); err != nil && c.logger != nil {
			c.logger.WarnContext(ctx, "vendor cache write failed", "vendor_id", id, "error", err)
		}
	}
	return vendor, nil
}

func (c *Cached) List(ctx context.Context) ([]models.Vendor, error) {
	return c.next.List(ctx)
}
