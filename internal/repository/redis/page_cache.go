package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Rrens/birthday-builder/internal/domain"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const (
	pageCachePrefix = "page:"
	defaultPageTTL  = time.Hour
)

var _ domain.PageRepository = (*PageCache)(nil)

// PageCache is a read-through, write-through cache in front of a page repository
type PageCache struct {
	client *Client
	next   domain.PageRepository
	ttl    time.Duration
}

// NewPageCache wraps next with a Redis cache
func NewPageCache(client *Client, next domain.PageRepository, ttl time.Duration) *PageCache {
	if ttl <= 0 {
		ttl = defaultPageTTL
	}
	return &PageCache{client: client, next: next, ttl: ttl}
}

func pageKey(slug string) string {
	return fmt.Sprintf("%s%s", pageCachePrefix, slug)
}

// Put writes to the repository, then refreshes the cached copy
func (c *PageCache) Put(ctx context.Context, page *domain.PageRecord) error {
	if err := c.next.Put(ctx, page); err != nil {
		return err
	}
	c.store(ctx, page)
	return nil
}

// Get serves from cache when possible and fills the cache on a miss
func (c *PageCache) Get(ctx context.Context, slug string) (*domain.PageRecord, error) {
	data, err := c.client.rdb.Get(ctx, pageKey(slug)).Bytes()
	switch {
	case err == nil:
		var page domain.PageRecord
		if err := json.Unmarshal(data, &page); err == nil {
			return &page, nil
		}
		log.Warn().Str("slug", slug).Msg("Discarding undecodable cached page")
	case !errors.Is(err, redis.Nil):
		log.Warn().Err(err).Str("slug", slug).Msg("Page cache unavailable, reading through")
	}

	page, err := c.next.Get(ctx, slug)
	if err != nil {
		return nil, err
	}
	c.store(ctx, page)
	return page, nil
}

// Exists checks the cache before the repository
func (c *PageCache) Exists(ctx context.Context, slug string) (bool, error) {
	if n, err := c.client.rdb.Exists(ctx, pageKey(slug)).Result(); err == nil && n > 0 {
		return true, nil
	}
	return c.next.Exists(ctx, slug)
}

// Ping reports the repository's health; the cache is optional
func (c *PageCache) Ping(ctx context.Context) error {
	return c.next.Ping(ctx)
}

// Invalidate removes the cached copy of a page
func (c *PageCache) Invalidate(ctx context.Context, slug string) error {
	return c.client.rdb.Del(ctx, pageKey(slug)).Err()
}

func (c *PageCache) store(ctx context.Context, page *domain.PageRecord) {
	data, err := json.Marshal(page)
	if err != nil {
		log.Warn().Err(err).Str("slug", page.Slug).Msg("Failed to marshal page for cache")
		return
	}
	if err := c.client.rdb.Set(ctx, pageKey(page.Slug), data, c.ttl).Err(); err != nil {
		log.Warn().Err(err).Str("slug", page.Slug).Msg("Failed to cache page")
	}
}
