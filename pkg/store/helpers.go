package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strconv"

	"github.com/teamdir/teamdir/pkg/cache"
	"github.com/teamdir/teamdir/pkg/telemetry"
)

const (
	roleByIDPrefix    = "role:id:"
	roleListingPrefix = "role:listing:"
	userByIDPrefix    = "user:id:"
	userListingPrefix = "user:listing:"
)

// ListingKey derives the cache key for one (page, filters) combination.
// The page is always embedded; url.Values.Encode sorts parameter names, so
// identical inputs always produce identical keys. Callers normalize filters
// (dropping empty values) before building the key.
func ListingKey(prefix string, page int, filters url.Values) string {
	params := url.Values{}
	for name, vals := range filters {
		for _, val := range vals {
			params.Add(name, val)
		}
	}
	params.Set("page", strconv.Itoa(page))
	return prefix + params.Encode()
}

// getEntry reads and unmarshals one cache entry. A missing key is a plain
// miss, not an error. Hit/miss is counted against the named store.
func getEntry[T any](ctx context.Context, c cache.Cache, storeName, key string) (*T, bool, error) {
	val, err := c.Get(ctx, key)
	if errors.Is(err, cache.ErrKeyNotFound) {
		telemetry.RecordCacheRequest(ctx, storeName, false)
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to read %s entry: %w", storeName, err)
	}

	raw, ok := val.(string)
	if !ok {
		return nil, false, fmt.Errorf("unexpected %s entry type %T", storeName, val)
	}

	entry := new(T)
	if err := json.Unmarshal([]byte(raw), entry); err != nil {
		return nil, false, fmt.Errorf("failed to unmarshal %s entry: %w", storeName, err)
	}

	telemetry.RecordCacheRequest(ctx, storeName, true)
	return entry, true, nil
}

// setEntry marshals and stores one cache entry. Entries never expire on
// their own; mutations clear them explicitly.
func setEntry[T any](ctx context.Context, c cache.Cache, storeName, key string, entry *T) error {
	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("failed to marshal %s entry: %w", storeName, err)
	}
	if err := c.Set(ctx, key, string(data), cache.NoExpiration); err != nil {
		return fmt.Errorf("failed to set %s entry: %w", storeName, err)
	}
	return nil
}

func clearPrefix(ctx context.Context, c cache.Cache, storeName, prefix string) error {
	if err := c.DeleteByPattern(ctx, prefix+"*"); err != nil {
		return fmt.Errorf("failed to clear %s entries: %w", storeName, err)
	}
	return nil
}
