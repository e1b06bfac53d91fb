package cache

import (
	"crypto/sha256"
	"encoding/hex"
)

// Cache defines the interface for memoizing cleaned statements
type Cache interface {
	Get(key string) (string, bool)
	Set(key string, value string) error
	Delete(key string) error
	Clear() error
	Len() int
}

// CacheKey generates a cache key from a raw statement
func CacheKey(statement string) string {
	hash := sha256.Sum256([]byte(statement))
	return "citeprep:v1:" + hex.EncodeToString(hash[:])
}

// Nop is a Cache that stores nothing, used when caching is disabled
type Nop struct{}

func (Nop) Get(string) (string, bool) { return "", false }
func (Nop) Set(string, string) error { return nil }
func (Nop) Delete(string) error { return nil }
func (Nop) Clear() error { return nil }
func (Nop) Len() int { return 0 }
