package secrets

import (
	"encoding/base64"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/kevin07696/ufc-gateway/internal/adapters/ports"
)

// Cache keeps fetched secrets in memory for a fixed TTL.
// A zero TTL disables it.
type Cache struct {
	mu      sync.Mutex
	entries map[string]cacheEntry
	ttl     time.Duration
}

type cacheEntry struct {
	secret    *ports.Secret
	expiresAt time.Time
}

// NewCache creates a cache whose entries live for ttl
func NewCache(ttl time.Duration) *Cache {
	return &Cache{
		entries: make(map[string]cacheEntry),
		ttl:     ttl,
	}
}

// Get returns the cached secret for key, or nil when absent or expired
func (c *Cache) Get(key string) *ports.Secret {
	if c.ttl <= 0 {
		return nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[key]
	if !ok {
		return nil
	}
	if time.Now().After(entry.expiresAt) {
		delete(c.entries, key)
		return nil
	}
	return entry.secret
}

// Set stores secret under key
func (c *Cache) Set(key string, secret *ports.Secret) {
	if c.ttl <= 0 {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = cacheEntry{secret: secret, expiresAt: time.Now().Add(c.ttl)}
}

// decodeValue undoes a declared value encoding. Binary credentials such as
// PKCS#12 bundles are stored base64 encoded in text-only backends.
func decodeValue(value, encoding string) (string, error) {
	switch strings.ToLower(encoding) {
	case "", "plain", "text":
		return value, nil
	case "base64":
		data, err := base64.StdEncoding.DecodeString(strings.TrimSpace(value))
		if err != nil {
			return "", fmt.Errorf("invalid base64 secret value: %w", err)
		}
		return string(data), nil
	default:
		return "", fmt.Errorf("unsupported secret encoding: %s", encoding)
	}
}
