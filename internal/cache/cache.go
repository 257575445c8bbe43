// Package cache is the device-local key/value store that holds the last known
// snapshot of every collection. Values are whole collections, replaced on write.
package cache

import (
	"encoding/json"
	"fmt"
)

// Cache is the key/value contract shared by the sqlite store and Memory.
type Cache interface {
	// Get reports ok=false for an absent key.
	Get(key string) (value string, ok bool, err error)
	Set(key, value string) error
	// SetAll writes every entry or none.
	SetAll(entries map[string]string) error
	Close() error
}

// GetJSON decodes the value at key into v. ok is false when the key is absent.
func GetJSON(c Cache, key string, v any) (bool, error) {
	raw, ok, err := c.Get(key)
	if err != nil || !ok {
		return false, err
	}
	if err := json.Unmarshal([]byte(raw), v); err != nil {
		return true, fmt.Errorf("decode cache entry %q: %w", key, err)
	}
	return true, nil
}

func SetJSON(c Cache, key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode cache entry %q: %w", key, err)
	}
	return c.Set(key, string(raw))
}
