package catalog

import (
	"context"
	"fmt"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
)

type cacheEntry struct {
	volumes  []Volume
	loadedAt time.Time
}

// CachedClient fronts a Client with a bounded LRU keyed by
// query+maxResults. Entries older than ttl are refetched.
type CachedClient struct {
	client *Client
	cache  *lru.Cache[string, cacheEntry]
	ttl    time.Duration
	now    func() time.Time
}

func NewCachedClient(client *Client, size int, ttl time.Duration) (*CachedClient, error) {
	if size <= 0 {
		size = 256
	}
	if ttl <= 0 {
		ttl = 15 * time.Minute
	}
	cache, err := lru.New[string, cacheEntry](size)
	if err != nil {
		return nil, err
	}
	return &CachedClient{client: client, cache: cache, ttl: ttl, now: time.Now}, nil
}

func (c *CachedClient) Search(ctx context.Context, query string, maxResults int) ([]Volume, error) {
	key := fmt.Sprintf("%s|%d", query, maxResults)
	if entry, ok := c.cache.Get(key); ok && c.now().Sub(entry.loadedAt) < c.ttl {
		return entry.volumes, nil
	}
	volumes, err := c.client.Search(ctx, query, maxResults)
	if err != nil {
		return nil, err
	}
	c.cache.Add(key, cacheEntry{volumes: volumes, loadedAt: c.now()})
	return volumes, nil
}

func (c *CachedClient) GetVolume(ctx context.Context, volumeID string) (*Volume, error) {
	return c.client.GetVolume(ctx, volumeID)
}
