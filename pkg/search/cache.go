package search

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
)

type localEntry struct {
	expires time.Time
	results *Results
}

// Cache is a results cache in front of the engine, redis-backed with a short
// in-process layer on top.
type Cache struct {
	client *redis.Client
	ctx    context.Context
	ttl    time.Duration
	local  map[string]localEntry
}

func NewCache(addr, password string, db int, ttl time.Duration) *Cache {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	return &Cache{
		client: rdb,
		ctx:    context.Background(),
		ttl:    ttl,
		local:  make(map[string]localEntry),
	}
}

func (c *Cache) Get(key string) (*Results, bool) {
	entry, found := c.local[key]
	if found {
		if time.Now().Before(entry.expires) {
			return entry.results, true
		}
		delete(c.local, key)
	}
	data, err := c.client.Get(c.ctx, key).Result()
	if err != nil {
		return nil, false
	}
	results := &Results{}
	if err := json.Unmarshal([]byte(data), results); err != nil {
		return nil, false
	}
	c.local[key] = localEntry{expires: time.Now().Add(time.Minute), results: results}
	return results, true
}

func (c *Cache) Set(key string, results *Results) {
	data, err := json.Marshal(results)
	if err != nil {
		return
	}
	c.local[key] = localEntry{expires: time.Now().Add(time.Minute), results: results}
	c.client.Set(c.ctx, key, data, c.ttl)
}
