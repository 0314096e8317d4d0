/*
Copyright 2025.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package inmemory

import (
	"context"
	"path"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/teamdir/teamdir/pkg/cache"
)

// Config holds the in-memory cache settings, both in seconds.
// Zero values fall back to never expiring and never sweeping.
type Config struct {
	DefaultExpiration int `mapstructure:"defaultExpiration"`
	CleanupInterval   int `mapstructure:"cleanupInterval"`
}

// Cache wraps patrickmn/go-cache behind the cache.Cache interface.
// Unbounded on purpose: entries only leave through explicit invalidation.
type Cache struct {
	store *gocache.Cache
}

var _ cache.Cache = (*Cache)(nil)

func NewCache(cfg *Config) (*Cache, error) {
	defaultExpiration := gocache.NoExpiration
	if cfg.DefaultExpiration > 0 {
		defaultExpiration = time.Duration(cfg.DefaultExpiration) * time.Second
	}
	cleanupInterval := time.Duration(cfg.CleanupInterval) * time.Second

	return &Cache{
		store: gocache.New(defaultExpiration, cleanupInterval),
	}, nil
}

func (c *Cache) Get(_ context.Context, key string) (interface{}, error) {
	val, found := c.store.Get(key)
	if !found {
		return nil, cache.ErrKeyNotFound
	}
	return val, nil
}

func (c *Cache) Set(_ context.Context, key string, value interface{}, expiration time.Duration) error {
	if expiration == cache.NoExpiration {
		expiration = gocache.NoExpiration
	}
	c.store.Set(key, value, expiration)
	return nil
}

func (c *Cache) Delete(_ context.Context, key string) error {
	c.store.Delete(key)
	return nil
}

func (c *Cache) GetByPattern(_ context.Context, pattern string) (map[string]interface{}, error) {
	results := make(map[string]interface{})
	for key, item := range c.store.Items() {
		matched, err := path.Match(pattern, key)
		if err != nil {
			return nil, err
		}
		if matched {
			results[key] = item.Object
		}
	}
	return results, nil
}

func (c *Cache) DeleteByPattern(_ context.Context, pattern string) error {
	for key := range c.store.Items() {
		matched, err := path.Match(pattern, key)
		if err != nil {
			return err
		}
		if matched {
			c.store.Delete(key)
		}
	}
	return nil
}

func (c *Cache) Ping(_ context.Context) error {
	return nil
}
