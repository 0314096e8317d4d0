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

// Package cache defines the key-value cache contract the rest of the service
// programs against. Backends live in subpackages; swapping one for a bounded
// or distributed implementation must not touch callers.
package cache

import (
	"context"
	"errors"
	"time"
)

// NoExpiration marks an entry that never expires on its own. Staleness is
// bounded only by explicit invalidation on writes.
const NoExpiration time.Duration = -1

// ErrKeyNotFound is returned by Get when the key has no entry.
var ErrKeyNotFound = errors.New("key not found in cache")

// Cache is a process-scoped key-value store. All operations are single-key
// (or single-pattern); implementations must be safe for concurrent use but
// callers get no compound-operation atomicity.
type Cache interface {
	Get(ctx context.Context, key string) (interface{}, error)
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error
	Delete(ctx context.Context, key string) error

	// GetByPattern returns all entries whose keys match a glob pattern,
	// e.g. "user:listing:*".
	GetByPattern(ctx context.Context, pattern string) (map[string]interface{}, error)

	// DeleteByPattern removes every entry whose key matches the pattern.
	DeleteByPattern(ctx context.Context, pattern string) error

	Ping(ctx context.Context) error
}
