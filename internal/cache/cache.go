package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/ppiankov/mirror/internal/model"
)

// Cache defines the interface for memoizing entry analyses
type Cache interface {
	Get(key string) (model.EntryAnalysis, bool)
	Set(key string, value model.EntryAnalysis, ttl time.Duration) error
	Delete(key string) error
	Clear() error
	Len() int
}

// Key generates a cache key from entry text.
// Entry text is never stored in the key itself.
func Key(text string) string {
	hash := sha256.Sum256([]byte(text))
	return "mirror:v1:" + hex.EncodeToString(hash[:])
}
